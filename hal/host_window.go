//go:build !tinygo && cgo

package hal

import (
	"fmt"
	"image"
	"image/color"

	"tx42/internal/buildinfo"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

const (
	windowScale   = 4
	statusHeight  = 36
	oledLitRed    = 0x9f
	oledLitGreen  = 0xdf
	oledLitBlue   = 0xff
	statusPadding = 4
)

// RunWindow opens a desktop window that shows the OLED and maps desktop keys
// onto the board's switches. It blocks until the window closes.
func RunWindow(cfg WindowConfig, newApp func(HAL) func() error) error {
	if cfg.Board == "" {
		cfg.Board = DefaultBoard
	}
	h, err := newHostHAL(cfg.Board)
	if err != nil {
		return err
	}
	step := newApp(h)

	g := &hostGame{h: h, kbd: newHostKeyboard(h), step: step}
	if !cfg.Mute {
		g.clicker = newHostClicker()
	}
	ebiten.SetWindowTitle(fmt.Sprintf("TX42 %s (%s)", cfg.Board, buildinfo.Short()))
	ebiten.SetWindowSize(h.fb.width*windowScale, h.fb.height*windowScale+statusHeight)
	ebiten.SetTPS(1000)
	return ebiten.RunGame(g)
}

type hostGame struct {
	h       *hostHAL
	kbd     *hostKeyboard
	img     *image.RGBA
	fbImg   *ebiten.Image
	scratch []byte
	step    func() error

	clicker  *hostClicker
	lastSent uint64
}

func (g *hostGame) Update() error {
	g.kbd.poll()
	g.h.t.step()
	if g.step != nil {
		if err := g.step(); err != nil {
			return err
		}
	}
	if _, sent := g.h.hid.lastReport(); sent != g.lastSent {
		g.lastSent = sent
		g.clicker.click()
	}
	return nil
}

func (g *hostGame) Draw(screen *ebiten.Image) {
	fb := g.h.fb
	if g.img == nil {
		g.img = image.NewRGBA(image.Rect(0, 0, fb.width, fb.height))
		g.scratch = make([]byte, len(fb.buf))
		g.fbImg = ebiten.NewImage(fb.width, fb.height)
	}

	fb.snapshot(g.scratch)
	dst := g.img.Pix
	for y := 0; y < fb.height; y++ {
		for x := 0; x < fb.width; x++ {
			j := (y*fb.width + x) * 4
			if MonoAt(g.scratch, fb.stride, x, y) {
				dst[j+0], dst[j+1], dst[j+2] = oledLitRed, oledLitGreen, oledLitBlue
			} else {
				dst[j+0], dst[j+1], dst[j+2] = 0, 0, 0
			}
			dst[j+3] = 0xFF
		}
	}
	g.fbImg.WritePixels(g.img.Pix)

	screen.Fill(color.RGBA{0x20, 0x20, 0x20, 0xFF})
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(windowScale, windowScale)
	screen.DrawImage(g.fbImg, op)

	report, sent := g.h.hid.lastReport()
	led := "off"
	if g.h.led.isOn() {
		led = "on"
	}
	status := fmt.Sprintf("%s  led:%s  reports:%d\n% x", g.h.board.Name, led, sent, report[:])
	ebitenutil.DebugPrintAt(screen, status, statusPadding, fb.height*windowScale+statusPadding)
}

func (g *hostGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.h.fb.width * windowScale, g.h.fb.height*windowScale + statusHeight
}
