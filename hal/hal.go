package hal

import (
	"errors"
	"sync"
)

// Logger writes newline-delimited log lines.
type Logger interface {
	WriteLineString(s string)
	WriteLineBytes(b []byte)
}

// LED is a minimal output pin abstraction.
type LED interface {
	High()
	Low()
}

var ErrNotImplemented = errors.New("not implemented")

// USB identity reported by the firmware.
const (
	USBVendorID     uint16 = 0x1209
	USBProductID    uint16 = 0x0001
	USBManufacturer        = "Aaron's Crusty Keebs"
	USBProduct             = "TX42 Keeb"
	USBSerial              = "0101010"
)

// PixelFormat defines the framebuffer pixel encoding.
type PixelFormat uint8

const (
	// PixelFormatMono1 is 1bpp, row-major, MSB is the leftmost pixel.
	PixelFormatMono1 PixelFormat = iota + 1
)

// Framebuffer is a simple pixel buffer plus a "present" hook.
type Framebuffer interface {
	Width() int
	Height() int
	Format() PixelFormat
	StrideBytes() int
	Buffer() []byte
	Clear()
	Present() error
}

// Display provides access to the framebuffer (if available).
type Display interface {
	Framebuffer() Framebuffer
}

// Time provides a base tick stream.
//
// One tick is one millisecond on every platform.
type Time interface {
	Ticks() <-chan uint64
}

// HID is the host-facing keyboard report sink.
//
// SendReport returns sent=false when the endpoint is busy; the caller may
// simply try again with newer data later.
type HID interface {
	Configured() bool
	SendReport(r [8]byte) (sent bool, err error)
}

// HAL provides the only contact point between the firmware and the outside world.
type HAL interface {
	Board() string
	Logger() Logger
	LED() LED
	Keys() GPIO
	Display() Display
	Time() Time
	HID() HID

	// CriticalSection guards state shared with interrupt handlers.
	CriticalSection() sync.Locker
}
