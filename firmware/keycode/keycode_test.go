package keycode

import "testing"

func TestUsageValues(t *testing.T) {
	tests := []struct {
		k    Keycode
		want uint8
	}{
		{A, 0x04},
		{Z, 0x1D},
		{Kb1, 0x1E},
		{Kb0, 0x27},
		{Tab, 0x2B},
		{Grave, 0x35},
		{F1, 0x3A},
		{F12, 0x45},
		{Up, 0x52},
		{LCtrl, 0xE0},
		{LAlt, 0xE2},
		{RGui, 0xE7},
	}
	for _, tt := range tests {
		if uint8(tt.k) != tt.want {
			t.Fatalf("%s = 0x%02X, want 0x%02X", tt.k, uint8(tt.k), tt.want)
		}
	}
}

func TestModifierBit(t *testing.T) {
	if got := LCtrl.ModifierBit(); got != 0x01 {
		t.Fatalf("LCtrl.ModifierBit() = 0x%02X, want 0x01", got)
	}
	if got := LAlt.ModifierBit(); got != 0x04 {
		t.Fatalf("LAlt.ModifierBit() = 0x%02X, want 0x04", got)
	}
	if got := RGui.ModifierBit(); got != 0x80 {
		t.Fatalf("RGui.ModifierBit() = 0x%02X, want 0x80", got)
	}
	if got := Q.ModifierBit(); got != 0 {
		t.Fatalf("Q.ModifierBit() = 0x%02X, want 0", got)
	}
	if No.IsModifier() {
		t.Fatal("No.IsModifier() = true, want false")
	}
}

func TestString(t *testing.T) {
	tests := map[Keycode]string{
		Q:     "Q",
		Kb5:   "5",
		Kb0:   "0",
		F1:    "F1",
		F12:   "F12",
		LAlt:  "LAlt",
		No:    "No",
		Grave: "`",
		0x99:  "0x99",
	}
	for k, want := range tests {
		if got := k.String(); got != want {
			t.Fatalf("String(0x%02X) = %q, want %q", uint8(k), got, want)
		}
	}
}
