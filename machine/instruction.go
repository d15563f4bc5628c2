package machine

import (
	"fmt"
	"strings"

	"github.com/ezrec/turing/tape"
)

// State is a named control state. States compare by name.
type State string

// Direction is the head motion applied after a write.
type Direction int

const (
	LEFT  = Direction(-1) // Move the head one cell left.
	STAY  = Direction(0)  // Leave the head in place.
	RIGHT = Direction(1)  // Move the head one cell right.
)

// String returns the single letter form of the direction.
func (dir Direction) String() string {
	switch dir {
	case LEFT:
		return "L"
	case RIGHT:
		return "R"
	case STAY:
		return "C"
	}
	return fmt.Sprintf("Direction(%d)", int(dir))
}

// ParseDirection parses L, R, C, S, N or left, right, stay.
func ParseDirection(word string) (dir Direction, err error) {
	switch strings.ToLower(word) {
	case "l", "left":
		dir = LEFT
	case "r", "right":
		dir = RIGHT
	case "c", "s", "n", "stay":
		dir = STAY
	default:
		err = ErrParseDirection(word)
	}
	return
}

// Instruction is a transition rule (From, Read) -> (To, Write, Move, Halt).
type Instruction struct {
	From  State       // State the rule applies in.
	Read  tape.Symbol // Symbol the rule applies to.
	To    State       // State to enter.
	Write tape.Symbol // Symbol to write under the head.
	Move  Direction   // Head motion after the write.
	Halt  bool        // If set, the machine halts after this rule.
}

// String returns the rule in assembler form.
func (inst Instruction) String() string {
	text := fmt.Sprintf("%v %c -> %v %c %v", inst.From, rune(inst.Read), inst.To, rune(inst.Write), inst.Move)
	if inst.Halt {
		text += " halt"
	}
	return text
}

// Table is an ordered list of instructions.
type Table []Instruction

// Lookup returns the last instruction matching (state, symbol).
// Later rules override earlier duplicates.
func (table Table) Lookup(state State, symbol tape.Symbol) (inst Instruction, ok bool) {
	for _, candidate := range table {
		if candidate.From == state && candidate.Read == symbol {
			inst = candidate
			ok = true
		}
	}
	return
}

// States returns every state named by the table, in first-seen order.
func (table Table) States() (states []State) {
	seen := map[State]bool{}
	for _, inst := range table {
		for _, state := range []State{inst.From, inst.To} {
			if !seen[state] {
				seen[state] = true
				states = append(states, state)
			}
		}
	}
	return
}

// Halts returns true if any instruction in the table halts the machine.
func (table Table) Halts() bool {
	for _, inst := range table {
		if inst.Halt {
			return true
		}
	}
	return false
}
