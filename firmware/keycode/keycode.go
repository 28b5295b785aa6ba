package keycode

// Keycode is a HID keyboard usage ID (usage page 0x07).
type Keycode uint8

// No is the "no event" sentinel. It never names a real key.
const No Keycode = 0x00

// ErrorRollOver is reported in every key slot when too many keys are down.
const ErrorRollOver Keycode = 0x01

const (
	A Keycode = iota + 0x04
	B
	C
	D
	E
	F
	G
	H
	I
	J
	K
	L
	M
	N
	O
	P
	Q
	R
	S
	T
	U
	V
	W
	X
	Y
	Z
	Kb1
	Kb2
	Kb3
	Kb4
	Kb5
	Kb6
	Kb7
	Kb8
	Kb9
	Kb0
	Enter
	Escape
	BSpace
	Tab
	Space
	Minus
	Equal
	LBracket
	RBracket
	Bslash
	NonUsHash
	SColon
	Quote
	Grave
	Comma
	Dot
	Slash
	CapsLock
	F1
	F2
	F3
	F4
	F5
	F6
	F7
	F8
	F9
	F10
	F11
	F12
)

const (
	Right Keycode = iota + 0x4F
	Left
	Down
	Up
)

// Modifiers occupy 0xE0..0xE7 and map onto the report's modifier byte.
const (
	LCtrl Keycode = iota + 0xE0
	LShift
	LAlt
	LGui
	RCtrl
	RShift
	RAlt
	RGui
)

// IsModifier reports whether k is one of the eight modifier usages.
func (k Keycode) IsModifier() bool {
	return k >= LCtrl && k <= RGui
}

// ModifierBit returns the bit for k in the HID modifier byte, or 0.
func (k Keycode) ModifierBit() uint8 {
	if !k.IsModifier() {
		return 0
	}
	return 1 << (k - LCtrl)
}

var names = map[Keycode]string{
	No: "No", ErrorRollOver: "RollOver",
	Enter: "Enter", Escape: "Esc", BSpace: "BSpace", Tab: "Tab", Space: "Space",
	Minus: "-", Equal: "=", LBracket: "[", RBracket: "]", Bslash: "\\",
	NonUsHash: "#", SColon: ";", Quote: "'", Grave: "`", Comma: ",", Dot: ".",
	Slash: "/", CapsLock: "Caps",
	Right: "Right", Left: "Left", Down: "Down", Up: "Up",
	LCtrl: "LCtrl", LShift: "LShift", LAlt: "LAlt", LGui: "LGui",
	RCtrl: "RCtrl", RShift: "RShift", RAlt: "RAlt", RGui: "RGui",
}

func (k Keycode) String() string {
	switch {
	case k >= A && k <= Z:
		return string(rune('A' + (k - A)))
	case k >= Kb1 && k <= Kb9:
		return string(rune('1' + (k - Kb1)))
	case k == Kb0:
		return "0"
	case k >= F1 && k <= F12:
		return "F" + itoa(int(k-F1)+1)
	}
	if s, ok := names[k]; ok {
		return s
	}
	return "0x" + hex(uint8(k))
}

func itoa(n int) string {
	if n < 10 {
		return string(rune('0' + n))
	}
	return string(rune('0'+n/10)) + string(rune('0'+n%10))
}

func hex(b uint8) string {
	const digits = "0123456789ABCDEF"
	return string([]byte{digits[b>>4], digits[b&0x0F]})
}
