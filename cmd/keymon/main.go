// Command keymon tails the firmware's UART log.
//
//	keymon -port /dev/ttyUSB0 -level debug
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"go.bug.st/serial"
	"golang.org/x/sync/errgroup"

	"tx42/firmware/logger"
)

func main() {
	var (
		port  string
		baud  int
		level string
		list  bool
	)
	flag.StringVar(&port, "port", "", "Serial port the firmware UART is attached to.")
	flag.IntVar(&baud, "baud", 115200, "Baud rate.")
	flag.StringVar(&level, "level", "info", "Lowest level to print (debug, info, warn, error).")
	flag.BoolVar(&list, "list", false, "List serial ports and exit.")
	flag.Parse()

	if list {
		ports, err := serial.GetPortsList()
		if err != nil {
			fatal(err)
		}
		for _, p := range ports {
			fmt.Println(p)
		}
		return
	}
	if port == "" {
		fmt.Fprintln(os.Stderr, "keymon: -port is required (see -list)")
		os.Exit(2)
	}
	minLevel, err := logger.ParseLevel(level)
	if err != nil {
		fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := run(ctx, port, baud, minLevel, os.Stdout); err != nil && !errors.Is(err, context.Canceled) {
		fatal(err)
	}
}

func run(ctx context.Context, path string, baud int, minLevel logger.Level, out io.Writer) error {
	p, err := serial.Open(path, &serial.Mode{
		BaudRate: baud,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	})
	if err != nil {
		return fmt.Errorf("keymon: open %s: %w", path, err)
	}

	g, ctx := errgroup.WithContext(ctx)
	lines := make(chan string, 64)
	g.Go(func() error {
		<-ctx.Done()
		// Unblocks the reader.
		return p.Close()
	})
	g.Go(func() error {
		defer close(lines)
		err := readLines(ctx, p, lines)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err == nil {
			err = io.EOF
		}
		return fmt.Errorf("keymon: read %s: %w", path, err)
	})
	g.Go(func() error {
		return printLines(out, lines, minLevel, timestamp)
	})
	return g.Wait()
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
