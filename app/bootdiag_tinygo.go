//go:build tinygo && bootdebug

package app

import (
	"image/color"
	"sync"
	"time"

	"tx42/hal"

	"tinygo.org/x/tinyfont"
)

var (
	bootDiagMu   sync.Mutex
	bootDiagStep string
)

// bootDiagStart repeats the current boot step on the UART so a hang during
// bring-up can be located without a debugger.
func bootDiagStart(h hal.HAL) {
	if h == nil {
		return
	}
	l := h.Logger()

	go func() {
		for {
			bootDiagMu.Lock()
			step := bootDiagStep
			bootDiagMu.Unlock()

			if step == "" {
				step = "<empty>"
			}
			if l != nil {
				l.WriteLineString("bootdiag: " + step)
			}
			time.Sleep(250 * time.Millisecond)
		}
	}()
}

func bootStep(h hal.HAL, msg string) {
	bootDiagMu.Lock()
	bootDiagStep = msg
	bootDiagMu.Unlock()

	if h == nil || h.Display() == nil {
		return
	}
	fb := h.Display().Framebuffer()
	if fb == nil {
		return
	}
	fb.Clear()
	if msg == "ready" {
		return
	}
	d := haltDisplay{fb: fb}
	fg := color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	tinyfont.WriteLine(d, haltFont, 0, 12, "TX42 boot", fg)
	tinyfont.WriteLine(d, haltFont, 0, 28, msg, fg)
	_ = fb.Present()
}
