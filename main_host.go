//go:build !tinygo

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"tx42/app"
	"tx42/firmware/logger"
	"tx42/firmware/scan"
	"tx42/hal"
	"tx42/internal/keyscript"
)

func main() {
	var (
		cfg        hal.HeadlessConfig
		board      string
		scriptPath string
		level      string
		holdExpiry bool
		mute       bool
	)
	flag.BoolVar(&cfg.Enabled, "headless", false, "Run without a window.")
	flag.IntVar(&cfg.Hz, "hz", 1000, "Tick rate in headless mode.")
	flag.Uint64Var(&cfg.Ticks, "ticks", 0, "Stop after N ticks in headless mode (0 = run forever, or until the script ends).")
	flag.StringVar(&board, "board", hal.DefaultBoard, "Board to simulate ("+strings.Join(hal.BoardNames(), ", ")+").")
	flag.StringVar(&scriptPath, "script", "", "Key script to replay in headless mode.")
	flag.StringVar(&level, "log-level", "info", "Log level (debug, info, warn, error).")
	flag.BoolVar(&holdExpiry, "hold-expiry", false, "Drop a tap candidate held past the tap window.")
	flag.BoolVar(&mute, "mute", false, "Do not click on every report in window mode.")
	flag.Parse()

	lvl, err := logger.ParseLevel(level)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	appCfg := app.Config{LogLevel: lvl, HoldExpiry: holdExpiry, Divider: scan.DefaultDivider}
	newApp := func(h hal.HAL) func() error {
		return app.NewWithConfig(h, appCfg)
	}

	if cfg.Enabled {
		cfg.Board = board
		if scriptPath != "" {
			s, err := loadScript(scriptPath, board)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(2)
			}
			cfg.Script = s
			if cfg.Ticks == 0 {
				// Leave a few cycles for the final release to go out.
				cfg.Ticks = s.End + 5*scan.DefaultDivider
			}
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		if err := hal.RunHeadless(ctx, newApp, cfg); err != nil {
			if errors.Is(err, context.Canceled) {
				return
			}
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	if err := hal.RunWindow(hal.WindowConfig{Board: board, Mute: mute}, newApp); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadScript(path, board string) (*keyscript.Script, error) {
	wiring, err := hal.LookupBoard(board)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return keyscript.Parse(f, len(wiring.KeyPins))
}
