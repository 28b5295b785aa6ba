// Package icons holds the small pixel-art icons shown on the OLED.
package icons

import (
	"image/color"

	"tinygo.org/x/drivers"
)

// Icon is a row-major bitmap written as strings; any character other than
// a space is a lit pixel.
type Icon struct {
	Name   string
	Author string
	Pixels []string
}

func (ic *Icon) Width() int {
	if len(ic.Pixels) == 0 {
		return 0
	}
	return len(ic.Pixels[0])
}

func (ic *Icon) Height() int { return len(ic.Pixels) }

// At reports whether pixel (x, y) is lit.
func (ic *Icon) At(x, y int) bool {
	if y < 0 || y >= len(ic.Pixels) || x < 0 || x >= len(ic.Pixels[y]) {
		return false
	}
	return ic.Pixels[y][x] != ' '
}

var (
	Cross = &Icon{
		Name:   "cross",
		Author: "emma",
		Pixels: []string{
			"  X  ", "  X  ", "  X  ", "XXXXX", "  X  ", "  X  ", "  X  ", "  X  ",
		},
	}
	SmallHeart = &Icon{
		Name:   "small heart",
		Author: "aaron",
		Pixels: []string{
			" XXX   XXX ",
			"XXXXX XXXXX",
			" XXXXXXXXX ",
			"   XXXXX   ",
			"     X     ",
		},
	}
	Bread = &Icon{
		Name:   "bread",
		Author: "anna",
		Pixels: []string{
			"   XXXXXX ",
			"  X      X",
			"   xxxxx X",
			" X xxxxx X",
			"   xxxxx X",
			"X  xxxxx X",
			"         X",
			" XXXXXXXX ",
		},
	}
	DoubleHeart = &Icon{
		Name:   "2heart",
		Author: "emma",
		Pixels: []string{
			" XX XX ", "X  X  X", "X X X X", "X XXX X", " X X X ", "  X X  ", "   X   ",
		},
	}
	Checker = &Icon{
		Name:   "checker",
		Author: "emma",
		Pixels: []string{
			"X X X", " X X ", "X X X", " X X ", "X X X", " X X ", "X X X", " X X ", "X X X",
		},
	}
	Candy = &Icon{
		Name:   "candy",
		Author: "emma",
		Pixels: []string{
			"X      X", "XX XX XX", "XXXXXXXX", "XXXXXXXX", "XX XX XX", "X      X",
		},
	}
	Lollipop = &Icon{
		Name:   "lollipop",
		Author: "anna",
		Pixels: []string{
			" XXX ", "XXXXX", "XXXXX", "XXXXX", " XXX ", "  X  ", "  X  ", "  X  ",
		},
	}
	Daisy = &Icon{
		Name:   "daisy",
		Author: "anna",
		Pixels: []string{" XXXX ", "X    X", "X xx X", "X    X", " XXXX "},
	}
)

// All lists every icon.
var All = []*Icon{Bread, Candy, Checker, Cross, Daisy, Lollipop, SmallHeart, DoubleHeart}

// Lookup finds an icon by name.
func Lookup(name string) (*Icon, bool) {
	for _, ic := range All {
		if ic.Name == name {
			return ic, true
		}
	}
	return nil, false
}

var black = color.RGBA{A: 255}

// Draw paints ic with its top-left corner at (x, y), each icon pixel
// becoming a scale x scale block. Unlit pixels are cleared; anything
// outside the display is skipped.
func Draw(d drivers.Displayer, ic *Icon, x, y int16, scale int, fg color.RGBA) {
	if ic == nil || scale <= 0 {
		return
	}
	w, h := d.Size()
	for py := 0; py < ic.Height()*scale; py++ {
		for px := 0; px < ic.Width()*scale; px++ {
			dx := int(x) + px
			dy := int(y) + py
			if dx < 0 || dy < 0 || dx >= int(w) || dy >= int(h) {
				continue
			}
			c := black
			if ic.At(px/scale, py/scale) {
				c = fg
			}
			d.SetPixel(int16(dx), int16(dy), c)
		}
	}
}
