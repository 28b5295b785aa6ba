// Package matrix reads the keyboard's switch lines.
//
// Every switch sits between its own GPIO line and ground; lines are pulled
// up, so a pressed key reads low. There is no debouncing and no history:
// each poll reflects the instantaneous line levels.
package matrix

import (
	"errors"
	"fmt"

	"tx42/hal"
)

// Line is one switch input.
type Line interface {
	Name() string
	Read() (level bool, err error)
}

// Snapshot holds the pressed state of every key, indexed by physical key
// position.
type Snapshot []bool

// Count returns the number of pressed keys.
func (s Snapshot) Count() int {
	n := 0
	for _, down := range s {
		if down {
			n++
		}
	}
	return n
}

// Pressed reports whether key i is down. Out of range indexes are up.
func (s Snapshot) Pressed(i int) bool {
	return i >= 0 && i < len(s) && s[i]
}

func (s Snapshot) String() string {
	b := make([]byte, len(s))
	for i, down := range s {
		b[i] = '.'
		if down {
			b[i] = 'X'
		}
	}
	return string(b)
}

var ErrNoLines = errors.New("matrix: no key lines")

// Scanner polls an ordered set of lines.
type Scanner struct {
	lines []Line
}

// New configures every pin as an input with pull-up and returns a scanner
// over them in the given order.
func New(pins []hal.GPIOPin) (*Scanner, error) {
	if len(pins) == 0 {
		return nil, ErrNoLines
	}
	lines := make([]Line, len(pins))
	for i, p := range pins {
		if p == nil {
			return nil, fmt.Errorf("matrix: key %d: missing pin", i)
		}
		if err := p.Configure(hal.GPIOModeInput, hal.GPIOPullUp); err != nil {
			return nil, fmt.Errorf("matrix: key %d: %w", i, err)
		}
		lines[i] = p
	}
	return &Scanner{lines: lines}, nil
}

// FromGPIO builds a scanner over every pin of g.
func FromGPIO(g hal.GPIO) (*Scanner, error) {
	if g == nil {
		return nil, ErrNoLines
	}
	pins := make([]hal.GPIOPin, g.PinCount())
	for i := range pins {
		pins[i] = g.Pin(i)
	}
	return New(pins)
}

// NewLines wraps lines that are already configured.
func NewLines(lines []Line) *Scanner {
	return &Scanner{lines: lines}
}

// Len returns the number of keys.
func (s *Scanner) Len() int { return len(s.lines) }

// Poll reads every line once.
func (s *Scanner) Poll() (Snapshot, error) {
	snap := make(Snapshot, len(s.lines))
	if err := s.PollInto(snap); err != nil {
		return nil, err
	}
	return snap, nil
}

// PollInto reads every line into snap, which must have Len entries.
func (s *Scanner) PollInto(snap Snapshot) error {
	if len(snap) != len(s.lines) {
		return fmt.Errorf("matrix: snapshot has %d keys, want %d", len(snap), len(s.lines))
	}
	for i, l := range s.lines {
		level, err := l.Read()
		if err != nil {
			return fmt.Errorf("matrix: line %s: %w", l.Name(), err)
		}
		snap[i] = !level
	}
	return nil
}
