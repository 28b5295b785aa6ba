package app

import (
	"fmt"
	"image/color"
	"strings"

	"tx42/hal"

	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
)

var haltFont = &proggy.TinySZ8pt7b

const (
	haltLineHeight = 10
	haltFontOffset = 8
)

// halt reports a fatal error and stops. The keyboard is unusable past this
// point; only a reset recovers it.
func halt(h hal.HAL, err error) {
	showHalt(h, err)
	select {}
}

// showHalt logs err and draws it on the display.
func showHalt(h hal.HAL, err error) {
	if l := h.Logger(); l != nil {
		l.WriteLineString(fmt.Sprintf("[error] halt: %v", err))
	}

	disp := h.Display()
	if disp == nil {
		return
	}
	fb := disp.Framebuffer()
	if fb == nil || fb.Format() != hal.PixelFormatMono1 {
		return
	}
	fb.Clear()

	_, outboxWidth := tinyfont.LineWidth(haltFont, "0")
	fontWidth := int16(outboxWidth)
	if fontWidth <= 0 {
		_ = fb.Present()
		return
	}
	cols := fb.Width() / int(fontWidth)
	if cols <= 0 {
		cols = 1
	}

	d := haltDisplay{fb: fb}
	fg := color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	lines := []string{"TX42 halted:"}
	if err != nil {
		lines = append(lines, strings.Split(err.Error(), ": ")...)
	}

	y := int16(0)
	for _, line := range lines {
		for _, chunk := range wrap(line, cols) {
			if y+haltLineHeight > int16(fb.Height()) {
				_ = fb.Present()
				return
			}
			tinyfont.WriteLine(d, haltFont, 0, y+haltFontOffset, chunk, fg)
			y += haltLineHeight
		}
	}
	_ = fb.Present()
}

type haltDisplay struct {
	fb hal.Framebuffer
}

func (d haltDisplay) Size() (x, y int16) {
	return int16(d.fb.Width()), int16(d.fb.Height())
}

func (d haltDisplay) SetPixel(x, y int16, c color.RGBA) {
	if int(x) >= d.fb.Width() || int(y) >= d.fb.Height() {
		return
	}
	hal.SetMono(d.fb.Buffer(), d.fb.StrideBytes(), int(x), int(y), c.R|c.G|c.B != 0)
}

func (d haltDisplay) Display() error { return nil }

// wrap splits s into chunks of at most cols runes, dropping the spaces
// that would start a continuation line.
func wrap(s string, cols int) []string {
	var out []string
	r := []rune(s)
	for len(r) > 0 {
		n := cols
		if n > len(r) {
			n = len(r)
		}
		out = append(out, string(r[:n]))
		r = r[n:]
		for len(r) > 0 && r[0] == ' ' {
			r = r[1:]
		}
	}
	return out
}
