// Package report turns resolved keys into HID boot keyboard reports and
// hands them to the USB transport.
package report

import (
	"encoding/hex"
	"sync"

	"tx42/firmware/keycode"
	"tx42/firmware/keymap"
)

// Slots is the number of key slots in a boot report.
const Slots = 6

// Report is an 8-byte HID boot keyboard report: modifier bitmask, reserved
// byte, then six key slots.
type Report [8]byte

// Encode folds modifiers into the bitmask and packs the remaining keycodes
// in order. More than Slots keys produce the phantom state; modifiers are
// kept either way.
func Encode(keys keymap.Keys) Report {
	var r Report
	n := 0
	overflow := false
	for _, k := range keys {
		switch {
		case k == keycode.No:
		case k.IsModifier():
			r[0] |= k.ModifierBit()
		case r.has(k):
		case n < Slots:
			r[2+n] = byte(k)
			n++
		default:
			overflow = true
		}
	}
	if overflow {
		return r.phantom()
	}
	return r
}

func (r Report) has(k keycode.Keycode) bool {
	for _, b := range r[2:] {
		if b == byte(k) {
			return true
		}
	}
	return false
}

func (r Report) phantom() Report {
	out := Report{0: r[0]}
	for i := 2; i < len(out); i++ {
		out[i] = byte(keycode.ErrorRollOver)
	}
	return out
}

// Modifiers returns the modifier bitmask.
func (r Report) Modifiers() uint8 { return r[0] }

// Keys returns the non-empty key slots.
func (r Report) Keys() []keycode.Keycode {
	var out []keycode.Keycode
	for _, b := range r[2:] {
		if b != 0 {
			out = append(out, keycode.Keycode(b))
		}
	}
	return out
}

// Empty reports whether no key or modifier is down.
func (r Report) Empty() bool { return r == Report{} }

func (r Report) String() string { return hex.EncodeToString(r[:]) }

// Transport sends reports to the host. SendReport returns sent=false when
// the endpoint cannot take a report right now.
type Transport interface {
	Configured() bool
	SendReport(r [8]byte) (sent bool, err error)
}

// Guard owns a transport shared with interrupt context. Every access to the
// transport goes through With.
type Guard struct {
	mu sync.Locker
	t  Transport
}

// NewGuard wraps t. A nil locker falls back to a sync.Mutex.
func NewGuard(t Transport, mu sync.Locker) *Guard {
	if mu == nil {
		mu = &sync.Mutex{}
	}
	return &Guard{mu: mu, t: t}
}

// With runs fn while holding the guard.
func (g *Guard) With(fn func(Transport) error) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return fn(g.t)
}
