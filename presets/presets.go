// Package presets holds ready made Turing machine programs.
package presets

import (
	"iter"
	"slices"

	"github.com/ezrec/turing/machine"
	"github.com/ezrec/turing/program"
)

const (
	L = machine.LEFT
	R = machine.RIGHT
	C = machine.STAY
)

// Parity counts the 1s on a tape of the form (0|1)*\* and overwrites the
// trailing * with e (even) or o (odd).
func Parity() *program.Program {
	return &program.Program{
		Name:  "parity",
		Start: "even",
		Tape:  "101*",
		Table: machine.Table{
			{From: "even", Read: '0', To: "even", Write: '0', Move: R},
			{From: "even", Read: '1', To: "odd", Write: '1', Move: R},
			{From: "even", Read: '*', To: "Halt", Write: 'e', Move: C, Halt: true},
			{From: "odd", Read: '0', To: "odd", Write: '0', Move: R},
			{From: "odd", Read: '1', To: "even", Write: '1', Move: R},
			{From: "odd", Read: '*', To: "Halt", Write: 'o', Move: C, Halt: true},
		},
	}
}

// BitFlipper walks a tape of the form \*(0|1)*\* to the right hand marker,
// then walks back flipping every bit.
func BitFlipper() *program.Program {
	return &program.Program{
		Name:  "flipper",
		Start: "Initial",
		Tape:  "*101*",
		Table: machine.Table{
			{From: "Initial", Read: '0', To: "GoRight", Write: '0', Move: R},
			{From: "Initial", Read: '1', To: "GoRight", Write: '1', Move: R},
			{From: "Initial", Read: '*', To: "GoRight", Write: '*', Move: R},

			{From: "GoRight", Read: '0', To: "GoRight", Write: '0', Move: R},
			{From: "GoRight", Read: '1', To: "GoRight", Write: '1', Move: R},
			{From: "GoRight", Read: '*', To: "GoLeft", Write: '*', Move: L},

			{From: "GoLeft", Read: '0', To: "GoLeft", Write: '1', Move: L},
			{From: "GoLeft", Read: '1', To: "GoLeft", Write: '0', Move: L},
			{From: "GoLeft", Read: '*', To: "Halt", Write: '*', Move: C, Halt: true},
		},
	}
}

// UnaryAdder adds the unary numbers of a tape of the form \*1*+1*= and writes
// the sum to the right of the =.
func UnaryAdder() *program.Program {
	return &program.Program{
		Name:  "adder",
		Start: "Initial",
		Tape:  "*11+111=",
		Table: machine.Table{
			{From: "Initial", Read: '*', To: "FindOnes", Write: '*', Move: R},

			{From: "FindOnes", Read: '1', To: "WriteOnes", Write: '0', Move: R},
			{From: "FindOnes", Read: '+', To: "FindOnes", Write: '+', Move: R},
			{From: "FindOnes", Read: '0', To: "FindOnes", Write: '0', Move: R},
			{From: "FindOnes", Read: '=', To: "Halt", Write: '=', Move: C, Halt: true},
			{From: "FindOnes", Read: '-', To: "ReplaceZeroesLeft", Write: '-', Move: L},

			{From: "WriteOnes", Read: '1', To: "WriteOnes", Write: '1', Move: R},
			{From: "WriteOnes", Read: '+', To: "WriteOnes", Write: '+', Move: R},
			{From: "WriteOnes", Read: '=', To: "WriteOnes", Write: '=', Move: R},
			{From: "WriteOnes", Read: '0', To: "WriteOnes", Write: '0', Move: R},
			{From: "WriteOnes", Read: '-', To: "FindEquals", Write: '1', Move: L},

			{From: "FindEquals", Read: '1', To: "FindEquals", Write: '1', Move: L},
			{From: "FindEquals", Read: '=', To: "FindOnesLeft", Write: '=', Move: L},

			{From: "FindOnesLeft", Read: '*', To: "ReplaceZeroes", Write: '*', Move: R},
			{From: "FindOnesLeft", Read: '0', To: "FindOnesLeft", Write: '0', Move: L},
			{From: "FindOnesLeft", Read: '=', To: "FindOnesLeft", Write: '=', Move: L},
			{From: "FindOnesLeft", Read: '1', To: "WriteOnes", Write: '0', Move: R},
			{From: "FindOnesLeft", Read: '+', To: "FindOnesLeft", Write: '+', Move: L},

			{From: "ReplaceZeroesLeft", Read: '*', To: "Halt", Write: '*', Move: C, Halt: true},
			{From: "ReplaceZeroesLeft", Read: '0', To: "ReplaceZeroesLeft", Write: '1', Move: L},
			{From: "ReplaceZeroesLeft", Read: '=', To: "ReplaceZeroesLeft", Write: '=', Move: L},
			{From: "ReplaceZeroesLeft", Read: '1', To: "ReplaceZeroesLeft", Write: '1', Move: L},
			{From: "ReplaceZeroesLeft", Read: '+', To: "ReplaceZeroesLeft", Write: '+', Move: L},

			{From: "ReplaceZeroes", Read: '-', To: "Halt", Write: '-', Move: C, Halt: true},
			{From: "ReplaceZeroes", Read: '0', To: "ReplaceZeroes", Write: '1', Move: R},
			{From: "ReplaceZeroes", Read: '=', To: "Halt", Write: '=', Move: C, Halt: true},
			{From: "ReplaceZeroes", Read: '1', To: "ReplaceZeroes", Write: '1', Move: R},
			{From: "ReplaceZeroes", Read: '+', To: "ReplaceZeroes", Write: '+', Move: R},
		},
	}
}

// Expander runs off both ends of its tape: it finds the 2, overwrites
// everything to its left with 2s, steps past the left edge, then runs back
// right past the right edge and writes an x.
func Expander() *program.Program {
	return &program.Program{
		Name:  "expander",
		Start: "Initial",
		Tape:  "101102",
		Table: machine.Table{
			{From: "Initial", Read: '1', To: "FindTwo", Write: '1', Move: R},

			{From: "FindTwo", Read: '0', To: "FindTwo", Write: '0', Move: R},
			{From: "FindTwo", Read: '1', To: "FindTwo", Write: '1', Move: R},
			{From: "FindTwo", Read: '2', To: "Overwrite", Write: '2', Move: L},

			{From: "Overwrite", Read: '1', To: "Overwrite", Write: '2', Move: L},
			{From: "Overwrite", Read: '0', To: "Overwrite", Write: '2', Move: L},
			{From: "Overwrite", Read: '-', To: "WriteOneRight", Write: '2', Move: R},

			{From: "WriteOneRight", Read: '2', To: "WriteOneRight", Write: '2', Move: R},
			{From: "WriteOneRight", Read: '-', To: "Halt", Write: 'x', Move: C, Halt: true},
		},
	}
}

type preset struct {
	name string
	make func() *program.Program
}

var _presets = []preset{
	{"parity", Parity},
	{"flipper", BitFlipper},
	{"adder", UnaryAdder},
	{"expander", Expander},
}

// Names returns the preset names.
func Names() (names []string) {
	for _, preset := range _presets {
		names = append(names, preset.name)
	}
	return
}

// All returns an iterator over fresh copies of every preset.
func All() iter.Seq2[string, *program.Program] {
	return func(yield func(string, *program.Program) bool) {
		for _, preset := range _presets {
			if !yield(preset.name, preset.make()) {
				return
			}
		}
	}
}

// Lookup returns a fresh copy of a preset by name.
func Lookup(name string) (prog *program.Program, ok bool) {
	index := slices.IndexFunc(_presets, func(p preset) bool {
		return p.name == name
	})
	if index < 0 {
		return
	}

	return _presets[index].make(), true
}
