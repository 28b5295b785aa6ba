package keymap

import kc "tx42/firmware/keycode"

// Layer indices shared by the compiled keymaps.
const (
	Base = iota
	Symbols
	Function
)

// TX42 is the 21-key split layout: three rows of six plus a thumb cluster.
var TX42 = Keymap{
	Name:  "tx42",
	Names: []string{"base", "symbols", "function"},
	Layers: []Layer{
		{
			{kc.Tab}, {kc.Q}, {kc.W}, {kc.E}, {kc.R}, {kc.T},
			{kc.Escape}, {kc.A}, {kc.S}, {kc.D}, {kc.F}, {kc.G},
			{kc.LShift}, {kc.Z}, {kc.X}, {kc.C}, {kc.V}, {kc.B},
			{kc.Space}, {kc.LAlt}, {kc.LCtrl},
		},
		{
			{kc.Grave}, {kc.Kb1}, {kc.Kb2}, {kc.Kb3}, {kc.Kb4}, {kc.Kb5},
			{kc.Escape}, {kc.LShift, kc.Kb1}, {kc.LShift, kc.Kb2}, {kc.LShift, kc.Kb3}, {kc.LShift, kc.Kb4}, {kc.LShift, kc.Kb5},
			{kc.LShift}, {}, {}, {}, {}, {},
			{kc.LGui}, {kc.LAlt}, {kc.LCtrl},
		},
		{
			{kc.F1}, {kc.F2}, {kc.F3}, {kc.F4}, {kc.F5}, {kc.F6},
			{kc.Escape}, {kc.Q}, {kc.W}, {kc.E}, {kc.R}, {kc.T},
			{kc.LShift}, {kc.A}, {kc.S}, {kc.D}, {kc.F}, {kc.G},
			{kc.Space}, {kc.LAlt}, {kc.LCtrl},
		},
	},
}

// Macropad is the 6-key board: two rows of three.
var Macropad = Keymap{
	Name:  "macropad",
	Names: []string{"base", "symbols", "function"},
	Layers: []Layer{
		{
			{kc.Escape}, {kc.Space}, {kc.Enter},
			{kc.LShift}, {kc.LAlt}, {kc.LCtrl},
		},
		{
			{kc.Kb1}, {kc.Kb2}, {kc.LShift, kc.Kb3},
			{kc.LShift}, {kc.LAlt}, {kc.LCtrl},
		},
		{
			{kc.F1}, {kc.F2}, {kc.F3},
			{kc.LShift}, {kc.LAlt}, {kc.LCtrl},
		},
	},
}
