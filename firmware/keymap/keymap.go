package keymap

import (
	"errors"
	"fmt"

	"tx42/firmware/keycode"
)

// MaxKeycodes is the number of keycode slots produced per scan.
const MaxKeycodes = 10

var ErrLayerSize = errors.New("keymap: layer size mismatch")

// Keys is one scan's resolved keycodes: front packed, padded with keycode.No.
type Keys [MaxKeycodes]keycode.Keycode

// Count returns the number of slots holding a real keycode.
func (k Keys) Count() int {
	n := 0
	for _, c := range k {
		if c != keycode.No {
			n++
		}
	}
	return n
}

// Slice returns the non-sentinel prefix.
func (k Keys) Slice() []keycode.Keycode {
	out := make([]keycode.Keycode, 0, MaxKeycodes)
	for _, c := range k {
		if c == keycode.No {
			break
		}
		out = append(out, c)
	}
	return out
}

func (k Keys) String() string {
	s := "["
	for i, c := range k.Slice() {
		if i > 0 {
			s += " "
		}
		s += c.String()
	}
	return s + "]"
}

// Layer holds the chord emitted by each physical key, indexed by position.
type Layer [][]keycode.Keycode

// Keymap is the set of layers compiled into a board's firmware.
type Keymap struct {
	Name   string
	Layers []Layer
	Names  []string
}

// Validate checks that every layer covers exactly nkeys positions.
func (m *Keymap) Validate(nkeys int) error {
	if len(m.Layers) == 0 {
		return fmt.Errorf("keymap %s: no layers", m.Name)
	}
	for i, l := range m.Layers {
		if len(l) != nkeys {
			return fmt.Errorf("keymap %s: layer %d has %d keys, matrix has %d: %w", m.Name, i+1, len(l), nkeys, ErrLayerSize)
		}
	}
	return nil
}

// LayerName returns a display name for layer i (0-based).
func (m *Keymap) LayerName(i int) string {
	if i >= 0 && i < len(m.Names) {
		return m.Names[i]
	}
	return fmt.Sprintf("layer %d", i+1)
}

// Resolve maps the pressed positions of snap through layer.
//
// Keycodes are emitted by ascending position, then in table order within a
// position. Anything beyond MaxKeycodes is dropped.
func Resolve(snap []bool, layer Layer) Keys {
	var keys Keys
	n := 0
	for i, down := range snap {
		if !down || i >= len(layer) {
			continue
		}
		for _, c := range layer[i] {
			if c == keycode.No {
				continue
			}
			if n >= MaxKeycodes {
				return keys
			}
			keys[n] = c
			n++
		}
	}
	return keys
}

// ForBoard returns the compiled keymap for a board name.
func ForBoard(name string) (*Keymap, error) {
	switch name {
	case TX42.Name:
		return &TX42, nil
	case Macropad.Name:
		return &Macropad, nil
	default:
		return nil, fmt.Errorf("keymap: unknown board %q", name)
	}
}
