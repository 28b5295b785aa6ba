package app

import (
	"context"
	"errors"
	"fmt"

	"tx42/firmware/display"
	"tx42/firmware/keymap"
	"tx42/firmware/logger"
	"tx42/firmware/matrix"
	"tx42/firmware/report"
	"tx42/firmware/scan"
	"tx42/firmware/tapswitch"
	"tx42/hal"
	"tx42/internal/buildinfo"
)

// Config holds the runtime knobs shared by the firmware and the simulator.
type Config struct {
	LogLevel   logger.Level
	HoldExpiry bool
	Divider    int
}

// DefaultConfig is what the firmware runs with.
func DefaultConfig() Config {
	return Config{LogLevel: logger.Info, Divider: scan.DefaultDivider}
}

type system struct {
	h     hal.HAL
	log   *logger.Logger
	loop  *scan.Loop
	panel *display.Panel

	cancel    context.CancelFunc
	panelDone chan struct{}
}

// New boots the keyboard with the default config and returns its step
// function (host entrypoint).
func New(h hal.HAL) func() error {
	return NewWithConfig(h, DefaultConfig())
}

// NewWithConfig boots the keyboard and returns a step function that runs
// every pending base tick. A boot or scan failure is drawn on the display
// and returned from every later call.
func NewWithConfig(h hal.HAL, cfg Config) func() error {
	s, err := boot(h, cfg)
	if err != nil {
		showHalt(h, err)
		return func() error { return err }
	}

	ticks := h.Time().Ticks()
	var failed error
	return func() error {
		if failed != nil {
			return failed
		}
		for {
			select {
			case <-ticks:
				if err := s.loop.Tick(); err != nil {
					s.stop()
					failed = err
					showHalt(h, err)
					return err
				}
			default:
				return nil
			}
		}
	}
}

// Run boots the keyboard and scans forever (TinyGo entrypoint).
func Run(h hal.HAL) {
	RunWithConfig(h, DefaultConfig())
}

func RunWithConfig(h hal.HAL, cfg Config) {
	s, err := boot(h, cfg)
	if err != nil {
		halt(h, err)
	}
	err = s.loop.Run(context.Background(), h.Time().Ticks())
	s.stop()
	halt(h, err)
}

func boot(h hal.HAL, cfg Config) (*system, error) {
	bootDiagStart(h)

	root := logger.New(h.Logger(), cfg.LogLevel)
	log := root.With("boot")
	log.Infof("tx42 %s board=%s", buildinfo.Long(), h.Board())

	bootStep(h, "display")
	var fb hal.Framebuffer
	if d := h.Display(); d != nil {
		fb = d.Framebuffer()
	}
	panel, err := display.NewPanel(fb, h.Board())
	if err != nil {
		return nil, err
	}
	root.AddSink(panel, logger.Info)

	bootStep(h, "keymap")
	km, err := keymap.ForBoard(h.Board())
	if err != nil {
		return nil, err
	}

	bootStep(h, "matrix")
	sc, err := matrix.FromGPIO(h.Keys())
	if err != nil {
		return nil, err
	}
	if err := km.Validate(sc.Len()); err != nil {
		return nil, err
	}

	bootStep(h, "tapswitch")
	sw, err := tapswitch.New(km, tapswitch.DefaultRules,
		tapswitch.WithLogger(root.With("tapswitch")),
		tapswitch.WithHoldExpiry(cfg.HoldExpiry),
	)
	if err != nil {
		return nil, err
	}

	bootStep(h, "usb")
	if h.HID() == nil {
		return nil, fmt.Errorf("app: board %s has no HID transport", h.Board())
	}
	handoff := report.NewHandoff(report.NewGuard(h.HID(), h.CriticalSection()), root.With("usb"))

	loop, err := scan.New(sc, sw, handoff, h.LED(),
		scan.WithDivider(cfg.Divider),
		scan.WithLogger(root.With("scan")),
	)
	if err != nil {
		return nil, err
	}

	bootStep(h, "ready")
	ctx, cancel := context.WithCancel(context.Background())
	s := &system{
		h:         h,
		log:       root,
		loop:      loop,
		panel:     panel,
		cancel:    cancel,
		panelDone: make(chan struct{}),
	}
	go func() {
		defer close(s.panelDone)
		if err := panel.Run(ctx, loop.Status()); err != nil && !errors.Is(err, context.Canceled) {
			root.With("display").Errorf("%v", err)
		}
	}()

	log.Infof("ready: %d keys, %d layers, cycle %d ms", sc.Len(), len(km.Layers), loop.Divider())
	return s, nil
}

// stop ends the display goroutine so the halt screen owns the framebuffer.
func (s *system) stop() {
	s.cancel()
	<-s.panelDone
}
