//go:build !tinygo

package hal

import (
	"context"
	"fmt"
	"time"

	"tx42/internal/keyscript"
)

// HeadlessConfig controls the no-window host runner.
type HeadlessConfig struct {
	Enabled bool
	Board   string
	Hz      int
	Ticks   uint64

	// Script, if set, presses and releases switches at fixed ticks.
	Script *keyscript.Script
}

// RunHeadless runs the firmware without opening a window.
//
// Every timer period advances the clock by exactly one tick, so a script
// replays identically regardless of Hz.
func RunHeadless(ctx context.Context, newApp func(HAL) func() error, cfg HeadlessConfig) error {
	if cfg.Hz <= 0 {
		cfg.Hz = 1000
	}
	if cfg.Board == "" {
		cfg.Board = DefaultBoard
	}

	h, err := newHostHAL(cfg.Board)
	if err != nil {
		return err
	}
	step := newApp(h)

	d := time.Second / time.Duration(cfg.Hz)
	if d <= 0 {
		return fmt.Errorf("invalid headless hz: %d", cfg.Hz)
	}
	t := time.NewTicker(d)
	defer t.Stop()

	var tick uint64
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			for _, ev := range cfg.Script.At(tick) {
				h.press(ev.Key, ev.Down)
			}
			h.t.stepN(1)
			if step != nil {
				if err := step(); err != nil {
					return err
				}
			}
			tick++
			if cfg.Ticks > 0 && tick >= cfg.Ticks {
				return nil
			}
		}
	}
}
