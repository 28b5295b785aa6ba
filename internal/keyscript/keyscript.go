// Package keyscript parses the key scripts that drive the headless simulator.
//
// A script is a list of commands, one per line or separated by ';':
//
//	press <key>            close the switch at physical index <key>
//	release <key>          open it again
//	wait <ticks>           advance time by <ticks> milliseconds
//	tap <key> [<ticks>]    press, wait (default 30), release
//
// Text after '#' is ignored.
package keyscript

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/google/shlex"
)

// DefaultTapHold is the hold time used by "tap" without an explicit duration.
const DefaultTapHold = 30

// Event changes one switch at a given tick.
type Event struct {
	Tick uint64
	Key  int
	Down bool
}

// Script is a time-ordered list of switch changes.
type Script struct {
	Events []Event
	// End is the tick reached after the last command.
	End uint64
}

// At returns the events scheduled for tick.
func (s *Script) At(tick uint64) []Event {
	if s == nil {
		return nil
	}
	var out []Event
	for _, ev := range s.Events {
		if ev.Tick == tick {
			out = append(out, ev)
		}
		if ev.Tick > tick {
			break
		}
	}
	return out
}

// ParseString parses a script held in a string.
func ParseString(src string, nkeys int) (*Script, error) {
	return Parse(strings.NewReader(src), nkeys)
}

// Parse reads a script. Keys must be below nkeys when nkeys > 0.
func Parse(r io.Reader, nkeys int) (*Script, error) {
	p := &parser{nkeys: nkeys, s: &Script{}}
	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := sc.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		for _, cmd := range strings.Split(line, ";") {
			if err := p.command(cmd); err != nil {
				return nil, fmt.Errorf("keyscript: line %d: %w", lineNo, err)
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("keyscript: read: %w", err)
	}
	p.s.End = p.now
	return p.s, nil
}

type parser struct {
	nkeys int
	now   uint64
	s     *Script
}

func (p *parser) command(cmd string) error {
	args, err := shlex.Split(cmd)
	if err != nil {
		return fmt.Errorf("split %q: %w", cmd, err)
	}
	if len(args) == 0 {
		return nil
	}

	switch verb := strings.ToLower(args[0]); verb {
	case "press", "down", "release", "up":
		if len(args) != 2 {
			return fmt.Errorf("%s: want 1 argument, got %d", verb, len(args)-1)
		}
		key, err := p.key(args[1])
		if err != nil {
			return err
		}
		p.emit(key, verb == "press" || verb == "down")
	case "wait":
		if len(args) != 2 {
			return fmt.Errorf("wait: want 1 argument, got %d", len(args)-1)
		}
		n, err := ticks(args[1])
		if err != nil {
			return err
		}
		p.now += n
	case "tap":
		if len(args) < 2 || len(args) > 3 {
			return fmt.Errorf("tap: want 1 or 2 arguments, got %d", len(args)-1)
		}
		key, err := p.key(args[1])
		if err != nil {
			return err
		}
		hold := uint64(DefaultTapHold)
		if len(args) == 3 {
			if hold, err = ticks(args[2]); err != nil {
				return err
			}
		}
		p.emit(key, true)
		p.now += hold
		p.emit(key, false)
	default:
		return fmt.Errorf("unknown command %q", args[0])
	}
	return nil
}

func (p *parser) emit(key int, down bool) {
	p.s.Events = append(p.s.Events, Event{Tick: p.now, Key: key, Down: down})
}

func (p *parser) key(s string) (int, error) {
	k, err := strconv.Atoi(s)
	if err != nil || k < 0 {
		return 0, fmt.Errorf("bad key %q", s)
	}
	if p.nkeys > 0 && k >= p.nkeys {
		return 0, fmt.Errorf("key %d out of range (board has %d keys)", k, p.nkeys)
	}
	return k, nil
}

func ticks(s string) (uint64, error) {
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("bad tick count %q", s)
	}
	return n, nil
}
