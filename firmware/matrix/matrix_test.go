package matrix

import (
	"errors"
	"strings"
	"testing"

	"tx42/hal"
)

type fakePin struct {
	name       string
	level      bool
	readErr    error
	cfgErr     error
	mode       hal.GPIOMode
	pull       hal.GPIOPull
	configured bool
}

func (p *fakePin) Name() string        { return p.name }
func (p *fakePin) Caps() hal.GPIOCaps  { return hal.GPIOCapInput | hal.GPIOCapPullUp }
func (p *fakePin) Write(bool) error    { return hal.ErrNotImplemented }
func (p *fakePin) Read() (bool, error) { return p.level, p.readErr }

func (p *fakePin) Configure(mode hal.GPIOMode, pull hal.GPIOPull) error {
	if p.cfgErr != nil {
		return p.cfgErr
	}
	p.mode, p.pull, p.configured = mode, pull, true
	return nil
}

func newPins(levels ...bool) []*fakePin {
	pins := make([]*fakePin, len(levels))
	for i, l := range levels {
		pins[i] = &fakePin{name: "GP" + string(rune('0'+i)), level: l}
	}
	return pins
}

func asGPIO(pins []*fakePin) []hal.GPIOPin {
	out := make([]hal.GPIOPin, len(pins))
	for i, p := range pins {
		out[i] = p
	}
	return out
}

func TestNewConfiguresPullUp(t *testing.T) {
	pins := newPins(true, true, true)
	if _, err := New(asGPIO(pins)); err != nil {
		t.Fatalf("New: %v", err)
	}
	for _, p := range pins {
		if !p.configured || p.mode != hal.GPIOModeInput || p.pull != hal.GPIOPullUp {
			t.Fatalf("pin %s: configured=%v mode=%v pull=%v", p.name, p.configured, p.mode, p.pull)
		}
	}
}

func TestNewErrors(t *testing.T) {
	if _, err := New(nil); !errors.Is(err, ErrNoLines) {
		t.Fatalf("New(nil) = %v, want ErrNoLines", err)
	}
	pins := newPins(true, true)
	pins[1].cfgErr = hal.ErrNotImplemented
	if _, err := New(asGPIO(pins)); !errors.Is(err, hal.ErrNotImplemented) {
		t.Fatalf("New = %v, want ErrNotImplemented", err)
	}
}

func TestPollActiveLow(t *testing.T) {
	pins := newPins(true, false, true, false)
	s, err := New(asGPIO(pins))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	snap, err := s.Poll()
	if err != nil {
		t.Fatalf("Poll: %v", err)
	}
	if got, want := snap.String(), ".X.X"; got != want {
		t.Fatalf("Poll() = %s, want %s", got, want)
	}
	if snap.Count() != 2 || !snap.Pressed(1) || snap.Pressed(0) || snap.Pressed(9) {
		t.Fatalf("Count/Pressed wrong for %s", snap)
	}

	pins[1].level = true
	pins[0].level = false
	if err := s.PollInto(snap); err != nil {
		t.Fatalf("PollInto: %v", err)
	}
	if got, want := snap.String(), "X..X"; got != want {
		t.Fatalf("PollInto() = %s, want %s", got, want)
	}
}

func TestPollAllPressed(t *testing.T) {
	s, err := New(asGPIO(newPins(false, false, false)))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	snap, _ := s.Poll()
	if snap.Count() != 3 {
		t.Fatalf("Count() = %d, want 3", snap.Count())
	}
}

func TestPollReadError(t *testing.T) {
	pins := newPins(true, true)
	s, err := New(asGPIO(pins))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	pins[1].readErr = errors.New("bus fault")
	_, err = s.Poll()
	if err == nil || !strings.Contains(err.Error(), "GP1") {
		t.Fatalf("Poll() = %v, want error naming GP1", err)
	}
	if err := s.PollInto(make(Snapshot, 5)); err == nil {
		t.Fatal("PollInto(short) = nil error")
	}
}
