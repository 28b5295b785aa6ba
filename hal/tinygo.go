//go:build tinygo && baremetal

package hal

import (
	"fmt"
	"machine"
	"sync"
)

type tinyGoHAL struct {
	board  string
	logger *uartLogger
	led    *pinLED
	keys   GPIO
	fb     Framebuffer
	t      *tinyGoTime
	hid    *usbHID
	cs     irqLock
}

// New returns the HAL for the board selected by build tag.
//
// UART: UART0 on GP0 (TX) / GP1 (RX), 115200 8N1.
// OLED: SSD1306 on I2C1, GP26 (SDA) / GP27 (SCL).
func New() HAL {
	uart := machine.UART0
	uart.Configure(machine.UARTConfig{
		BaudRate: 115200,
		TX:       machine.GP0,
		RX:       machine.GP1,
	})

	ledPin := machine.LED
	ledPin.Configure(machine.PinConfig{Mode: machine.PinOutput})

	board, err := LookupBoard(boardName)
	if err != nil {
		panic(err)
	}
	pins := make([]GPIOPin, len(board.KeyPins))
	for i, gp := range board.KeyPins {
		pins[i] = &machinePin{name: fmt.Sprintf("GP%d", gp), pin: machine.Pin(gp)}
	}

	fb, err := newSSD1306Framebuffer()
	if err != nil {
		panic(err)
	}

	return &tinyGoHAL{
		board:  board.Name,
		logger: &uartLogger{uart: uart},
		led:    &pinLED{pin: ledPin},
		keys:   newPinGPIO(pins),
		fb:     fb,
		t:      newTinyGoTime(),
		hid:    newUSBHID(),
	}
}

func (h *tinyGoHAL) Board() string                { return h.board }
func (h *tinyGoHAL) Logger() Logger               { return h.logger }
func (h *tinyGoHAL) LED() LED                     { return h.led }
func (h *tinyGoHAL) Keys() GPIO                   { return h.keys }
func (h *tinyGoHAL) Display() Display             { return tinyGoDisplay{fb: h.fb} }
func (h *tinyGoHAL) Time() Time                   { return h.t }
func (h *tinyGoHAL) HID() HID                     { return h.hid }
func (h *tinyGoHAL) CriticalSection() sync.Locker { return &h.cs }
