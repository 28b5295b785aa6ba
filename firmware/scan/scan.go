// Package scan drives the keyboard pipeline: poll the matrix, resolve the
// active layer, run tap detection and hand the result to USB.
package scan

import (
	"context"
	"errors"

	"tx42/firmware/keycode"
	"tx42/firmware/keymap"
	"tx42/firmware/logger"
	"tx42/firmware/matrix"
	"tx42/firmware/report"
	"tx42/firmware/tapswitch"
	"tx42/hal"
)

// DefaultDivider is the number of 1 ms base ticks per pipeline cycle.
const DefaultDivider = 10

// Status describes the active layer for the display.
type Status struct {
	Layer int
	Name  string
}

// Loop owns every piece of pipeline state. It is not safe for concurrent
// use; one goroutine calls Tick or Run.
type Loop struct {
	scanner *matrix.Scanner
	sw      *tapswitch.Switch
	handoff *report.Handoff
	led     hal.LED
	log     *logger.Logger

	divider int
	count   int
	cycles  uint64

	snap   matrix.Snapshot
	out    keymap.Keys
	ledOn  bool
	status chan Status
}

// Option configures a Loop.
type Option func(*Loop)

// WithDivider sets the base ticks per cycle. Values below 1 are ignored.
func WithDivider(n int) Option {
	return func(l *Loop) {
		if n >= 1 {
			l.divider = n
		}
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(log *logger.Logger) Option {
	return func(l *Loop) { l.log = log }
}

var ErrSizeMismatch = errors.New("scan: keymap does not match matrix")

// New wires a loop. The keymap behind sw must cover every matrix line.
func New(sc *matrix.Scanner, sw *tapswitch.Switch, h *report.Handoff, led hal.LED, opts ...Option) (*Loop, error) {
	l := &Loop{
		scanner: sc,
		sw:      sw,
		handoff: h,
		led:     led,
		log:     logger.Discard(),
		divider: DefaultDivider,
		snap:    make(matrix.Snapshot, sc.Len()),
		status:  make(chan Status, 1),
	}
	for _, opt := range opts {
		opt(l)
	}
	if len(sw.ActiveLayer()) != sc.Len() {
		return nil, ErrSizeMismatch
	}
	if led != nil {
		led.Low()
	}
	l.publish(Status{Layer: sw.Layer(), Name: sw.LayerName()})
	return l, nil
}

// Status delivers layer changes. Only the latest value is kept; a slow
// reader sees the current layer, never a backlog.
func (l *Loop) Status() <-chan Status { return l.status }

// Divider returns the base ticks per cycle.
func (l *Loop) Divider() int { return l.divider }

// Cycles returns the number of completed pipeline cycles.
func (l *Loop) Cycles() uint64 { return l.cycles }

// Output returns the keys emitted by the last cycle.
func (l *Loop) Output() keymap.Keys { return l.out }

// Tick advances the base clock by one tick and runs a cycle on every
// Divider-th call.
func (l *Loop) Tick() error {
	l.count++
	if l.count < l.divider {
		return nil
	}
	l.count = 0
	_, err := l.Cycle()
	return err
}

// Cycle runs the pipeline once. Only a matrix read failure is an error.
func (l *Loop) Cycle() (keymap.Keys, error) {
	if err := l.scanner.PollInto(l.snap); err != nil {
		return keymap.Keys{}, err
	}

	from := l.sw.Layer()
	resolved := keymap.Resolve(l.snap, l.sw.ActiveLayer())
	out := l.sw.Step(resolved)
	if to := l.sw.Layer(); to != from {
		l.publish(Status{Layer: to, Name: l.sw.LayerName()})
	}

	if _, err := l.handoff.Offer(out); err != nil {
		l.log.Warnf("%v", err)
	}
	l.setLED(out[0] != keycode.No)

	l.out = out
	l.cycles++
	return out, nil
}

// Run calls Tick for every value received on ticks until ctx is done or a
// cycle fails.
func (l *Loop) Run(ctx context.Context, ticks <-chan uint64) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticks:
			if err := l.Tick(); err != nil {
				return err
			}
		}
	}
}

func (l *Loop) setLED(on bool) {
	if l.led == nil || on == l.ledOn {
		return
	}
	l.ledOn = on
	if on {
		l.led.High()
	} else {
		l.led.Low()
	}
}

func (l *Loop) publish(st Status) {
	for {
		select {
		case l.status <- st:
			return
		default:
		}
		select {
		case <-l.status:
		default:
		}
	}
}
