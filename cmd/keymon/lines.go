package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"tx42/firmware/logger"
)

func timestamp() string { return time.Now().Format("15:04:05.000") }

// readLines splits r into lines, dropping the UART's carriage returns.
func readLines(ctx context.Context, r io.Reader, out chan<- string) error {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		if line == "" {
			continue
		}
		select {
		case out <- line:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return sc.Err()
}

// levelOf returns the level of a "[level] ..." line. Lines without a level
// prefix, such as boot diagnostics and HID dumps, count as info.
func levelOf(line string) logger.Level {
	if !strings.HasPrefix(line, "[") {
		return logger.Info
	}
	end := strings.IndexByte(line, ']')
	if end < 0 {
		return logger.Info
	}
	lvl, err := logger.ParseLevel(line[1:end])
	if err != nil {
		return logger.Info
	}
	return lvl
}

func printLines(w io.Writer, lines <-chan string, minLevel logger.Level, now func() string) error {
	for line := range lines {
		if levelOf(line) < minLevel {
			continue
		}
		if _, err := fmt.Fprintf(w, "%s %s\n", now(), line); err != nil {
			return err
		}
	}
	return nil
}
