// Package tapswitch turns quick single-key taps into layer switches.
//
// A tap is a press and release of one key with nothing else held, completed
// within MaxTapCount scan ticks. While the advance key is a tap candidate its
// keycode is hidden from the host, so a tap changes the layer without the
// host ever seeing a modifier go down.
package tapswitch

import (
	"errors"
	"fmt"

	"tx42/firmware/keycode"
	"tx42/firmware/keymap"
)

// MaxTapCount is the last elapsed tick count at which a release still counts as a tap.
const MaxTapCount = 15

// AnyLayer matches every layer in Rule.From.
const AnyLayer = -1

var ErrUnknownLayer = errors.New("tapswitch: unknown layer")

// Rule switches from layer From to layer To when Key is tapped.
type Rule struct {
	From int
	Key  keycode.Keycode
	To   int
}

// DefaultRules advance base -> symbols -> function on LAlt and return to
// base on LCtrl.
var DefaultRules = []Rule{
	{From: keymap.Base, Key: keycode.LAlt, To: keymap.Symbols},
	{From: keymap.Symbols, Key: keycode.LAlt, To: keymap.Function},
	{From: AnyLayer, Key: keycode.LCtrl, To: keymap.Base},
}

// AdvanceKey is masked from the output while it is the tap candidate.
const AdvanceKey = keycode.LAlt

// Logger receives state machine diagnostics.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
}

// Option configures a Switch.
type Option func(*Switch)

// WithLogger sets the diagnostics sink.
func WithLogger(l Logger) Option {
	return func(s *Switch) { s.log = l }
}

// WithHoldExpiry drops an armed candidate once it has been held longer than
// MaxTapCount ticks, instead of waiting for the release to be judged.
func WithHoldExpiry(on bool) Option {
	return func(s *Switch) { s.holdExpiry = on }
}

// Switch is the tap detection state machine. It owns the active layer.
type Switch struct {
	km    *keymap.Keymap
	rules []Rule

	active  int
	prev    keymap.Keys
	elapsed uint32

	candidate keycode.Keycode
	armed     bool

	holdExpiry bool
	log        Logger
}

// New returns a Switch on the keymap's first layer.
func New(km *keymap.Keymap, rules []Rule, opts ...Option) (*Switch, error) {
	if km == nil || len(km.Layers) == 0 {
		return nil, fmt.Errorf("tapswitch: empty keymap: %w", ErrUnknownLayer)
	}
	for i, r := range rules {
		if r.From != AnyLayer && (r.From < 0 || r.From >= len(km.Layers)) {
			return nil, fmt.Errorf("tapswitch: rule %d: from %d: %w", i, r.From, ErrUnknownLayer)
		}
		if r.To < 0 || r.To >= len(km.Layers) {
			return nil, fmt.Errorf("tapswitch: rule %d: to %d: %w", i, r.To, ErrUnknownLayer)
		}
	}
	s := &Switch{
		km:    km,
		rules: append([]Rule(nil), rules...),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Layer returns the active layer index.
func (s *Switch) Layer() int { return s.active }

// LayerName returns the active layer's display name.
func (s *Switch) LayerName() string { return s.km.LayerName(s.active) }

// ActiveLayer returns the active layer table.
func (s *Switch) ActiveLayer() keymap.Layer { return s.km.Layers[s.active] }

// Armed returns the tap candidate, if any.
func (s *Switch) Armed() (keycode.Keycode, bool) {
	return s.candidate, s.armed
}

// Elapsed returns ticks since the candidate was last armed.
func (s *Switch) Elapsed() uint32 { return s.elapsed }

// Step feeds one scan's resolved keys and returns the keys to report.
func (s *Switch) Step(keys keymap.Keys) keymap.Keys {
	if s.elapsed < ^uint32(0) {
		s.elapsed++
	}

	if keys != s.prev {
		wasIdle := s.prev[0] == keycode.No
		nowActive := keys[0] != keycode.No
		count := keys.Count()

		if wasIdle && nowActive {
			s.arm(keys[0])
		}
		if count > 1 && s.armed {
			s.debugf("multiple keys pressed, dropping tap candidate %s", s.candidate)
			s.disarm()
		}
		if s.armed && count == 0 {
			if s.elapsed <= MaxTapCount {
				s.tap(s.candidate)
			} else {
				s.debugf("%s released after %d ticks, not a tap", s.candidate, s.elapsed)
			}
			s.disarm()
		}
	}

	if s.holdExpiry && s.armed && s.elapsed > MaxTapCount {
		s.debugf("%s held past tap window, dropping tap candidate", s.candidate)
		s.disarm()
	}

	s.prev = keys

	if s.armed && s.candidate == AdvanceKey {
		keys[0] = keycode.No
	}
	return keys
}

func (s *Switch) arm(k keycode.Keycode) {
	s.candidate = k
	s.armed = true
	s.elapsed = 0
	s.debugf("tap start %s", k)
}

func (s *Switch) disarm() {
	s.candidate = keycode.No
	s.armed = false
}

func (s *Switch) tap(k keycode.Keycode) {
	for _, r := range s.rules {
		if r.Key != k || (r.From != AnyLayer && r.From != s.active) {
			continue
		}
		if r.To == s.active {
			break
		}
		s.active = r.To
		if s.log != nil {
			s.log.Infof("switch -> layer %d (%s)", s.active+1, s.km.LayerName(s.active))
		}
		return
	}
	s.debugf("ignoring tap %s on layer %d", k, s.active+1)
}

func (s *Switch) debugf(format string, args ...any) {
	if s.log != nil {
		s.log.Debugf(format, args...)
	}
}
