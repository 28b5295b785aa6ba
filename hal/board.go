package hal

import "fmt"

// BoardSpec describes how a board's switches are wired.
//
// KeyPins lists RP2040 GPIO numbers in physical key order.
type BoardSpec struct {
	Name    string
	KeyPins []uint8
}

var boards = []BoardSpec{
	{
		// Three rows of six plus three thumb keys, GP2..GP22.
		Name: "tx42",
		KeyPins: []uint8{
			2, 3, 4, 5, 6, 7,
			8, 9, 10, 11, 12, 13,
			14, 15, 16, 17, 18, 19,
			20, 21, 22,
		},
	},
	{
		// Two rows of three.
		Name:    "macropad",
		KeyPins: []uint8{3, 9, 13, 2, 8, 12},
	},
}

// DefaultBoard is used when no board is selected.
const DefaultBoard = "tx42"

// LookupBoard returns the wiring for a board name.
func LookupBoard(name string) (BoardSpec, error) {
	for _, b := range boards {
		if b.Name == name {
			return b, nil
		}
	}
	return BoardSpec{}, fmt.Errorf("hal: unknown board %q", name)
}

// BoardNames lists the known boards.
func BoardNames() []string {
	names := make([]string, 0, len(boards))
	for _, b := range boards {
		names = append(names, b.Name)
	}
	return names
}
