package display

import (
	"context"
	"errors"
	"image/color"
	"testing"
	"time"

	"tx42/firmware/icons"
	"tx42/firmware/scan"
	"tx42/hal"
)

type monoFB struct {
	w, h     int
	buf      []byte
	presents int
	format   hal.PixelFormat
}

func newMonoFB(w, h int) *monoFB {
	return &monoFB{w: w, h: h, buf: make([]byte, (w+7)/8*h), format: hal.PixelFormatMono1}
}

func (f *monoFB) Width() int              { return f.w }
func (f *monoFB) Height() int             { return f.h }
func (f *monoFB) Format() hal.PixelFormat { return f.format }
func (f *monoFB) StrideBytes() int        { return (f.w + 7) / 8 }
func (f *monoFB) Buffer() []byte          { return f.buf }
func (f *monoFB) Clear() {
	for i := range f.buf {
		f.buf[i] = 0
	}
}
func (f *monoFB) Present() error {
	f.presents++
	return nil
}

func (f *monoFB) at(x, y int) bool { return hal.MonoAt(f.buf, f.StrideBytes(), x, y) }

func (f *monoFB) litIn(x0, y0, x1, y1 int) int {
	n := 0
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			if f.at(x, y) {
				n++
			}
		}
	}
	return n
}

func TestFBDisplay(t *testing.T) {
	fb := newMonoFB(16, 8)
	d := NewFBDisplay(fb)
	if w, h := d.Size(); w != 16 || h != 8 {
		t.Fatalf("Size() = %d, %d", w, h)
	}
	d.SetPixel(3, 2, color.RGBA{255, 255, 255, 255})
	d.SetPixel(4, 2, color.RGBA{0x20, 0x20, 0x20, 255})
	d.SetPixel(40, 2, color.RGBA{255, 255, 255, 255})
	if !fb.at(3, 2) || fb.at(4, 2) {
		t.Fatal("SetPixel threshold wrong")
	}
	_ = d.FillRectangle(-2, 5, 100, 10, color.RGBA{R: 200, A: 255})
	if got := fb.litIn(0, 5, 16, 8); got != 16*3 {
		t.Fatalf("FillRectangle lit %d pixels, want %d", got, 16*3)
	}
	if err := d.Display(); err != nil || fb.presents != 1 {
		t.Fatalf("Display() = %v, presents = %d", err, fb.presents)
	}
}

func TestRegionOffsets(t *testing.T) {
	fb := newMonoFB(8, 16)
	r := region{base: NewFBDisplay(fb), top: 10, height: 4}
	if _, h := r.Size(); h != 4 {
		t.Fatalf("region height = %d, want 4", h)
	}
	r.SetPixel(1, 0, white)
	r.SetPixel(1, 4, white)
	if !fb.at(1, 10) || fb.at(1, 14) {
		t.Fatal("region SetPixel not offset or not clipped")
	}
	_ = r.FillRectangle(0, 2, 8, 20, white)
	if got := fb.litIn(0, 0, 8, 16); got != 1+8*2 {
		t.Fatalf("lit %d pixels, want %d", got, 1+8*2)
	}
}

func TestRegionScroll(t *testing.T) {
	fb := newMonoFB(8, 16)
	r := &region{base: NewFBDisplay(fb), top: 4, height: 10}
	r.SetScroll(3)
	r.SetPixel(0, 3, white)
	r.SetPixel(1, 1, white)
	if !fb.at(0, 4) {
		t.Fatal("scroll line not shown at the top of the band")
	}
	if !fb.at(1, 12) {
		t.Fatal("row above the scroll line did not wrap to the bottom")
	}
	_ = r.FillRectangle(0, 2, 8, 2, white)
	if got := fb.litIn(0, 13, 8, 14); got != 8 {
		t.Fatalf("wrapped fill lit %d pixels in row 13, want 8", got)
	}
	if got := fb.litIn(0, 4, 8, 5); got != 8 {
		t.Fatalf("wrapped fill lit %d pixels in row 4, want 8", got)
	}
	r.SetScroll(23)
	if r.scroll != 3 {
		t.Fatalf("scroll = %d, want 3", r.scroll)
	}
}

func TestNewPanelDrawsBanner(t *testing.T) {
	fb := newMonoFB(128, 64)
	p, err := NewPanel(fb, "tx42")
	if err != nil {
		t.Fatalf("NewPanel: %v", err)
	}
	if fb.litIn(0, 0, 128, bannerHeight) == 0 {
		t.Fatal("banner is blank")
	}
	if got := fb.litIn(0, bannerHeight, 128, bannerHeight+1); got != 128 {
		t.Fatalf("divider has %d lit pixels, want 128", got)
	}
	if fb.litIn(0, consoleTop, 128, 64) != 0 {
		t.Fatal("console not blank")
	}
	if p.Status().Name != "base" {
		t.Fatalf("Status() = %+v", p.Status())
	}

	if err := p.Flush(); err != nil || fb.presents != 1 {
		t.Fatalf("Flush() = %v, presents = %d", err, fb.presents)
	}
	if err := p.Flush(); err != nil || fb.presents != 1 {
		t.Fatal("Flush presented an unchanged frame")
	}

	p.Println("[info] tapswitch: switch -> layer 2 (symbols)")
	if fb.litIn(0, consoleTop, 128, 64) == 0 {
		t.Fatal("console line not drawn")
	}
	p.Flush()
	if fb.presents != 2 {
		t.Fatalf("presents = %d, want 2", fb.presents)
	}
}

func TestShowChangesIcon(t *testing.T) {
	fb := newMonoFB(128, 64)
	p, err := NewPanel(fb, "macropad", WithLayerIcons([]*icons.Icon{icons.Cross, icons.Checker}))
	if err != nil {
		t.Fatalf("NewPanel: %v", err)
	}
	before := fb.litIn(0, 0, 26, bannerHeight)
	p.Show(scan.Status{Layer: 1, Name: "symbols"})
	after := fb.litIn(0, 0, 26, bannerHeight)
	if before == after {
		t.Fatalf("icon area unchanged (%d lit)", after)
	}
}

func TestNewPanelErrors(t *testing.T) {
	if _, err := NewPanel(nil, "tx42"); err == nil {
		t.Fatal("NewPanel(nil) = nil error")
	}
	fb := newMonoFB(8, 8)
	fb.format = 0
	if _, err := NewPanel(fb, "tx42"); err == nil {
		t.Fatal("NewPanel(wrong format) = nil error")
	}
}

func TestRun(t *testing.T) {
	fb := newMonoFB(128, 64)
	p, err := NewPanel(fb, "tx42", WithRefresh(time.Millisecond))
	if err != nil {
		t.Fatalf("NewPanel: %v", err)
	}
	status := make(chan scan.Status, 1)
	status <- scan.Status{Layer: 2, Name: "function"}
	p.WriteLineString("boot")

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if err := p.Run(ctx, status); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("Run() = %v, want deadline exceeded", err)
	}
	if p.Status().Layer != 2 {
		t.Fatalf("Status() = %+v, want layer 2", p.Status())
	}
	if fb.litIn(0, consoleTop, 128, 64) == 0 {
		t.Fatal("queued console line not drawn")
	}
	if fb.presents < 2 {
		t.Fatalf("presents = %d, want at least 2", fb.presents)
	}
}

func TestWriteLineDropsWhenFull(t *testing.T) {
	fb := newMonoFB(128, 64)
	p, _ := NewPanel(fb, "tx42")
	for i := 0; i < cap(p.lines)+5; i++ {
		p.WriteLineBytes([]byte("x"))
	}
	if len(p.lines) != cap(p.lines) {
		t.Fatalf("queued %d lines, want %d", len(p.lines), cap(p.lines))
	}
}
