//go:build tinygo && baremetal

package hal

import (
	"fmt"
	"image/color"
	"machine"

	"tinygo.org/x/drivers/ssd1306"
)

const (
	oledWidth   = 128
	oledHeight  = 64
	oledAddress = 0x3C
)

var (
	oledOn  = color.RGBA{255, 255, 255, 255}
	oledOff = color.RGBA{0, 0, 0, 255}
)

// newSSD1306Framebuffer brings up the OLED and returns a framebuffer whose
// Present pushes the whole frame over I2C.
func newSSD1306Framebuffer() (*monoFramebuffer, error) {
	bus := machine.I2C1
	if err := bus.Configure(machine.I2CConfig{
		Frequency: 400_000,
		SDA:       machine.GP26,
		SCL:       machine.GP27,
	}); err != nil {
		return nil, fmt.Errorf("hal: i2c1: %w", err)
	}

	dev := ssd1306.NewI2C(bus)
	dev.Configure(ssd1306.Config{
		Width:    oledWidth,
		Height:   oledHeight,
		Address:  oledAddress,
		VccState: ssd1306.SWITCHCAPVCC,
	})
	dev.ClearDisplay()

	setPixel := dev.SetPixel
	display := dev.Display
	flush := func(front []byte, w, h, stride int) error {
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				c := oledOff
				if MonoAt(front, stride, x, y) {
					c = oledOn
				}
				setPixel(int16(x), int16(y), c)
			}
		}
		return display()
	}
	return newMonoFramebuffer(oledWidth, oledHeight, flush), nil
}
