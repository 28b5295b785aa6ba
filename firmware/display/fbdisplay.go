package display

import (
	"image/color"

	"tx42/hal"

	"tinygo.org/x/drivers"
)

// FBDisplay draws into a 1bpp hal.Framebuffer. Any color with a channel at
// or above half intensity lights the pixel.
type FBDisplay struct {
	fb hal.Framebuffer
}

func NewFBDisplay(fb hal.Framebuffer) *FBDisplay {
	return &FBDisplay{fb: fb}
}

func lit(c color.RGBA) bool {
	return c.R >= 0x80 || c.G >= 0x80 || c.B >= 0x80
}

func (d *FBDisplay) ok() bool {
	return d.fb != nil && d.fb.Format() == hal.PixelFormatMono1 && d.fb.Buffer() != nil
}

func (d *FBDisplay) Size() (x, y int16) {
	if d.fb == nil {
		return 0, 0
	}
	return int16(d.fb.Width()), int16(d.fb.Height())
}

func (d *FBDisplay) SetPixel(x, y int16, c color.RGBA) {
	if !d.ok() {
		return
	}
	if int(x) >= d.fb.Width() || int(y) >= d.fb.Height() {
		return
	}
	hal.SetMono(d.fb.Buffer(), d.fb.StrideBytes(), int(x), int(y), lit(c))
}

func (d *FBDisplay) Display() error {
	if d.fb == nil {
		return nil
	}
	return d.fb.Present()
}

func (d *FBDisplay) FillRectangle(x, y, width, height int16, c color.RGBA) error {
	if !d.ok() {
		return nil
	}
	w, h := d.fb.Width(), d.fb.Height()
	x0 := clampInt(int(x), 0, w)
	y0 := clampInt(int(y), 0, h)
	x1 := clampInt(int(x)+int(width), 0, w)
	y1 := clampInt(int(y)+int(height), 0, h)

	buf, stride, on := d.fb.Buffer(), d.fb.StrideBytes(), lit(c)
	for py := y0; py < y1; py++ {
		for px := x0; px < x1; px++ {
			hal.SetMono(buf, stride, px, py, on)
		}
	}
	return nil
}

func (d *FBDisplay) SetScroll(line int16) {
	_ = line
}

func (d *FBDisplay) SetRotation(rotation drivers.Rotation) error {
	_ = rotation
	return nil
}

// region is a horizontal band of a display, addressed from its own top.
// SetScroll behaves like a panel's vertical scroll register: band row y is
// shown at (y - scroll) mod height. Display is a no-op; the owner presents
// the whole frame.
type region struct {
	base   *FBDisplay
	top    int16
	height int16
	scroll int16
}

func (r *region) Size() (x, y int16) {
	w, _ := r.base.Size()
	return w, r.height
}

func (r *region) row(y int16) int16 {
	if r.height <= 0 {
		return r.top
	}
	v := (y - r.scroll) % r.height
	if v < 0 {
		v += r.height
	}
	return r.top + v
}

func (r *region) SetPixel(x, y int16, c color.RGBA) {
	if y < 0 || y >= r.height {
		return
	}
	r.base.SetPixel(x, r.row(y), c)
}

func (r *region) Display() error { return nil }

func (r *region) FillRectangle(x, y, width, height int16, c color.RGBA) error {
	if y < 0 {
		height += y
		y = 0
	}
	if y+height > r.height {
		height = r.height - y
	}
	for i := int16(0); i < height; i++ {
		if err := r.base.FillRectangle(x, r.row(y+i), width, 1, c); err != nil {
			return err
		}
	}
	return nil
}

func (r *region) SetScroll(line int16) {
	if r.height > 0 {
		r.scroll = line % r.height
	}
}

func (r *region) SetRotation(rotation drivers.Rotation) error { return nil }

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
