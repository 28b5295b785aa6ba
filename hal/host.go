//go:build !tinygo

package hal

import (
	"fmt"
	"io"
	"os"
	"sync"
)

const (
	oledWidth  = 128
	oledHeight = 64
)

type hostHAL struct {
	board  BoardSpec
	logger *hostLogger
	led    *hostLED
	lines  []*virtualPin
	keys   GPIO
	fb     *monoFramebuffer
	t      *hostTime
	hid    *hostHID
	cs     sync.Mutex
}

// New returns a host HAL implementation for the default board.
func New() HAL {
	h, err := NewBoard(DefaultBoard)
	if err != nil {
		panic(err)
	}
	return h
}

// NewBoard returns a host HAL whose virtual matrix is wired like the named board.
func NewBoard(name string) (HAL, error) {
	return newHostHAL(name)
}

func newHostHAL(name string) (*hostHAL, error) {
	board, err := LookupBoard(name)
	if err != nil {
		return nil, err
	}
	logger := &hostLogger{w: os.Stdout}
	lines := make([]*virtualPin, len(board.KeyPins))
	pins := make([]GPIOPin, len(board.KeyPins))
	for i, gp := range board.KeyPins {
		lines[i] = newKeyLine(fmt.Sprintf("GP%d", gp))
		pins[i] = lines[i]
	}
	return &hostHAL{
		board:  board,
		logger: logger,
		led:    &hostLED{},
		lines:  lines,
		keys:   newPinGPIO(pins),
		fb:     newMonoFramebuffer(oledWidth, oledHeight, nil),
		t:      newHostTime(),
		hid:    &hostHID{},
	}, nil
}

func (h *hostHAL) Board() string                { return h.board.Name }
func (h *hostHAL) Logger() Logger               { return h.logger }
func (h *hostHAL) LED() LED                     { return h.led }
func (h *hostHAL) Keys() GPIO                   { return h.keys }
func (h *hostHAL) Display() Display             { return hostDisplay{fb: h.fb} }
func (h *hostHAL) Time() Time                   { return h.t }
func (h *hostHAL) HID() HID                     { return h.hid }
func (h *hostHAL) CriticalSection() sync.Locker { return &h.cs }

// press closes or opens the switch at physical key index i.
func (h *hostHAL) press(i int, down bool) {
	if i < 0 || i >= len(h.lines) {
		return
	}
	h.lines[i].setGrounded(down)
}

type hostDisplay struct {
	fb *monoFramebuffer
}

func (d hostDisplay) Framebuffer() Framebuffer { return d.fb }

type hostLogger struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *hostLogger) WriteLineString(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.w, s)
}

func (l *hostLogger) WriteLineBytes(b []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.w.Write(b)
	l.w.Write([]byte{'\n'})
}

type hostLED struct {
	mu sync.Mutex
	on bool
}

func (l *hostLED) High() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.on = true
}

func (l *hostLED) Low() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.on = false
}

func (l *hostLED) isOn() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.on
}

// hostHID accepts every report and remembers the last one for the window.
type hostHID struct {
	mu   sync.Mutex
	last [8]byte
	sent uint64
}

func (d *hostHID) Configured() bool { return true }

func (d *hostHID) SendReport(r [8]byte) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.last = r
	d.sent++
	return true, nil
}

func (d *hostHID) lastReport() ([8]byte, uint64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.last, d.sent
}

// WindowConfig controls the desktop window runner.
type WindowConfig struct {
	Board string
	// Mute disables the click played for every report.
	Mute bool
}
