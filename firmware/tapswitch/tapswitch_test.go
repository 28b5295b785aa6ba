package tapswitch

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"tx42/firmware/keycode"
	"tx42/firmware/keymap"
)

// Physical positions on the TX42 layout.
const (
	posQ     = 1
	posA     = 7
	posSpace = 18
	posAlt   = 19
	posCtrl  = 20
)

type recLogger struct {
	lines []string
}

func (l *recLogger) Debugf(format string, args ...any) {
	l.lines = append(l.lines, "debug: "+fmt.Sprintf(format, args...))
}

func (l *recLogger) Infof(format string, args ...any) {
	l.lines = append(l.lines, "info: "+fmt.Sprintf(format, args...))
}

type harness struct {
	t  *testing.T
	sw *Switch
}

func newHarness(t *testing.T, opts ...Option) *harness {
	t.Helper()
	sw, err := New(&keymap.TX42, DefaultRules, opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return &harness{t: t, sw: sw}
}

// step resolves the given held positions on the active layer and runs one tick.
func (h *harness) step(held ...int) keymap.Keys {
	snap := make([]bool, 21)
	for _, i := range held {
		snap[i] = true
	}
	return h.sw.Step(keymap.Resolve(snap, h.sw.ActiveLayer()))
}

// tap presses pos alone, holds it for extra unchanged ticks, then releases.
func (h *harness) tap(pos, extra int) {
	h.step(pos)
	for i := 0; i < extra; i++ {
		h.step(pos)
	}
	h.step()
}

func (h *harness) wantLayer(want int) {
	h.t.Helper()
	if got := h.sw.Layer(); got != want {
		h.t.Fatalf("Layer() = %d, want %d", got, want)
	}
}

func TestTapAdvancesThroughLayers(t *testing.T) {
	h := newHarness(t)
	h.wantLayer(keymap.Base)

	h.tap(posAlt, 0)
	h.wantLayer(keymap.Symbols)

	h.tap(posAlt, 3)
	h.wantLayer(keymap.Function)

	h.tap(posAlt, 0)
	h.wantLayer(keymap.Function)
}

func TestResetTap(t *testing.T) {
	for _, start := range []int{keymap.Symbols, keymap.Function} {
		h := newHarness(t)
		for h.sw.Layer() != start {
			h.tap(posAlt, 0)
		}
		h.tap(posCtrl, 2)
		h.wantLayer(keymap.Base)
	}
}

func TestResetOnBaseIsNoop(t *testing.T) {
	log := &recLogger{}
	h := newHarness(t, WithLogger(log))
	h.tap(posCtrl, 0)
	h.wantLayer(keymap.Base)

	found := false
	for _, l := range log.lines {
		if strings.Contains(l, "ignoring tap LCtrl") {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected ignored tap in log, got %q", log.lines)
	}
}

func TestOtherKeyTapIsNoop(t *testing.T) {
	h := newHarness(t)
	h.tap(posQ, 0)
	h.wantLayer(keymap.Base)
	h.tap(posSpace, 0)
	h.wantLayer(keymap.Base)
}

func TestChordCancelsTap(t *testing.T) {
	h := newHarness(t)
	h.step(posAlt)
	if k, ok := h.sw.Armed(); !ok || k != keycode.LAlt {
		t.Fatalf("Armed() = %s, %v, want LAlt, true", k, ok)
	}

	h.step(posAlt, posQ)
	if _, ok := h.sw.Armed(); ok {
		t.Fatal("Armed() = true after chord, want false")
	}
	h.step(posAlt)
	h.step()
	h.wantLayer(keymap.Base)
}

func TestChordCancelsRegardlessOfHoldTime(t *testing.T) {
	for _, hold := range []int{0, 5, MaxTapCount, MaxTapCount + 10} {
		h := newHarness(t)
		h.step(posAlt)
		for i := 0; i < hold; i++ {
			h.step(posAlt)
		}
		h.step(posAlt, posA)
		h.step()
		h.wantLayer(keymap.Base)
	}
}

func TestTapWindowBoundary(t *testing.T) {
	tests := []struct {
		name  string
		extra int
		want  int
	}{
		{"released at MaxTapCount", MaxTapCount - 1, keymap.Symbols},
		{"released at MaxTapCount+1", MaxTapCount, keymap.Base},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			h.step(posAlt)
			for i := 0; i < tt.extra; i++ {
				h.step(posAlt)
			}
			if got, want := h.sw.Elapsed(), uint32(tt.extra); got != want {
				t.Fatalf("Elapsed() before release = %d, want %d", got, want)
			}
			h.step()
			h.wantLayer(tt.want)
			if _, ok := h.sw.Armed(); ok {
				t.Fatal("Armed() = true after release, want false")
			}
		})
	}
}

func TestMaskingWhileArmed(t *testing.T) {
	h := newHarness(t)

	out := h.step(posAlt)
	if out[0] != keycode.No {
		t.Fatalf("Step() slot 0 = %s while armed, want No", out[0])
	}
	out = h.step(posAlt)
	if out[0] != keycode.No {
		t.Fatalf("Step() slot 0 = %s while held, want No", out[0])
	}

	// Chord cancels the candidate and the modifier shows up immediately.
	out = h.step(posAlt, posQ)
	want := keymap.Keys{keycode.Q, keycode.LAlt}
	if out != want {
		t.Fatalf("Step() = %v after chord, want %v", out, want)
	}
	out = h.step(posAlt)
	if out[0] != keycode.LAlt {
		t.Fatalf("Step() slot 0 = %s after cancel, want LAlt", out[0])
	}
}

func TestMaskingEndsOnSwitch(t *testing.T) {
	h := newHarness(t)
	h.tap(posAlt, 0)
	h.wantLayer(keymap.Symbols)

	// Only the advance key is ever masked.
	out := h.step(posQ)
	if out[0] != keycode.Kb1 {
		t.Fatalf("Step() slot 0 = %s, want 1", out[0])
	}
}

func TestCtrlTapIsNotMasked(t *testing.T) {
	h := newHarness(t)
	out := h.step(posCtrl)
	if out[0] != keycode.LCtrl {
		t.Fatalf("Step() slot 0 = %s, want LCtrl", out[0])
	}
}

func TestLongHoldWithoutExpiryStaysArmed(t *testing.T) {
	h := newHarness(t)
	h.step(posAlt)
	for i := 0; i < MaxTapCount*3; i++ {
		out := h.step(posAlt)
		if out[0] != keycode.No {
			t.Fatalf("tick %d: slot 0 = %s, want No", i, out[0])
		}
	}
	h.step()
	h.wantLayer(keymap.Base)
}

func TestHoldExpiry(t *testing.T) {
	h := newHarness(t, WithHoldExpiry(true))
	h.step(posAlt)
	for i := 0; i < MaxTapCount-1; i++ {
		h.step(posAlt)
	}
	if _, ok := h.sw.Armed(); !ok {
		t.Fatal("Armed() = false inside tap window, want true")
	}
	out := h.step(posAlt)
	if _, ok := h.sw.Armed(); !ok {
		t.Fatal("Armed() = false at MaxTapCount, want true")
	}
	if out[0] != keycode.No {
		t.Fatalf("slot 0 = %s at MaxTapCount, want No", out[0])
	}
	out = h.step(posAlt)
	if _, ok := h.sw.Armed(); ok {
		t.Fatal("Armed() = true past tap window, want false")
	}
	if out[0] != keycode.LAlt {
		t.Fatalf("slot 0 = %s after expiry, want LAlt", out[0])
	}
	h.step()
	h.wantLayer(keymap.Base)
}

func TestUnchangedKeysAreNoop(t *testing.T) {
	h := newHarness(t)
	for i := 0; i < 5; i++ {
		if out := h.step(); out != (keymap.Keys{}) {
			t.Fatalf("Step() = %v on idle, want empty", out)
		}
	}
	if _, ok := h.sw.Armed(); ok {
		t.Fatal("Armed() = true on idle, want false")
	}
}

func TestNewRejectsUnknownLayers(t *testing.T) {
	bad := []Rule{{From: keymap.Base, Key: keycode.LAlt, To: 9}}
	if _, err := New(&keymap.TX42, bad); !errors.Is(err, ErrUnknownLayer) {
		t.Fatalf("New() = %v, want ErrUnknownLayer", err)
	}
	bad = []Rule{{From: 5, Key: keycode.LAlt, To: 0}}
	if _, err := New(&keymap.TX42, bad); !errors.Is(err, ErrUnknownLayer) {
		t.Fatalf("New() = %v, want ErrUnknownLayer", err)
	}
	if _, err := New(nil, DefaultRules); !errors.Is(err, ErrUnknownLayer) {
		t.Fatalf("New(nil) = %v, want ErrUnknownLayer", err)
	}
}

func TestSwitchLogsInfo(t *testing.T) {
	log := &recLogger{}
	h := newHarness(t, WithLogger(log))
	h.tap(posAlt, 0)
	want := "info: switch -> layer 2 (symbols)"
	for _, l := range log.lines {
		if l == want {
			return
		}
	}
	t.Fatalf("log = %q, want line %q", log.lines, want)
}
