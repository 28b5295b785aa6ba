//go:build !tinygo && cgo

package hal

import "github.com/hajimehoshi/ebiten/v2"

// Desktop keys standing in for each board's switches, in physical order.
var hostKeyBindings = map[string][]ebiten.Key{
	"tx42": {
		ebiten.KeyTab, ebiten.KeyQ, ebiten.KeyW, ebiten.KeyE, ebiten.KeyR, ebiten.KeyT,
		ebiten.KeyEscape, ebiten.KeyA, ebiten.KeyS, ebiten.KeyD, ebiten.KeyF, ebiten.KeyG,
		ebiten.KeyShiftLeft, ebiten.KeyZ, ebiten.KeyX, ebiten.KeyC, ebiten.KeyV, ebiten.KeyB,
		ebiten.KeySpace, ebiten.KeyAltLeft, ebiten.KeyControlLeft,
	},
	"macropad": {
		ebiten.KeyQ, ebiten.KeyW, ebiten.KeyE,
		ebiten.KeyA, ebiten.KeyS, ebiten.KeyD,
	},
}

type hostKeyboard struct {
	h    *hostHAL
	keys []ebiten.Key
}

func newHostKeyboard(h *hostHAL) *hostKeyboard {
	return &hostKeyboard{h: h, keys: hostKeyBindings[h.board.Name]}
}

// poll mirrors the desktop key state onto the virtual switch lines.
func (k *hostKeyboard) poll() {
	for i, key := range k.keys {
		k.h.press(i, ebiten.IsKeyPressed(key))
	}
}
