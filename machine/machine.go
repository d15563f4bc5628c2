// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package machine

import (
	"fmt"
	"iter"
	"log"
	"maps"

	"github.com/ezrec/turing/tape"
)

var _machine_defines = map[string]string{
	"LEFT":  LEFT.String(),
	"RIGHT": RIGHT.String(),
	"STAY":  STAY.String(),
}

// Machine is the simulation context of a single-tape Turing machine.
type Machine struct {
	Verbose bool // Set to enable verbose logging.

	State        State   // Current state.
	Position     int     // Head position, in initial tape coordinates.
	Displacement int     // Count of left expansions.
	Steps        int     // Elapsed steps.
	Halted       bool    // Set once the machine can no longer proceed.
	Outcome      Outcome // Cause of the halt.
	Fault        error   // Most recent lookup miss.

	Instruction *Instruction // Last executed instruction.

	Tape    *tape.Tape // Bound tape, owned by the machine.
	Table   Table      // Bound instruction table, read only.
	History History    // Snapshot after every executed step.

	initial Snapshot
}

// NewMachine creates a machine in state start with the head on cell 0.
// An empty tape is given a single blank cell.
func NewMachine(start State, table Table, tp *tape.Tape) (m *Machine) {
	if tp == nil {
		tp = tape.New(nil, 0)
	}
	if tp.Len() == 0 {
		tp.ExpandRight()
	}

	m = &Machine{
		State: start,
		Table: table,
		Tape:  tp,
	}

	m.initial = m.Snapshot()

	return
}

// Defines returns an iterator over the machine's assembler equates.
func Defines() iter.Seq2[string, string] {
	return maps.All(_machine_defines)
}

// SetPosition places the head on a tape cell. The current machine becomes
// the new undo baseline: earlier history is discarded.
func (m *Machine) SetPosition(position int) (err error) {
	if position < 0 || position >= m.Tape.Len() {
		err = &tape.ErrRange{Index: position, Length: m.Tape.Len()}
		return
	}

	m.Position = position - m.Displacement

	m.History.Reset()
	m.initial = m.Snapshot()

	return
}

// Head returns the effective tape index of the head.
func (m *Machine) Head() int {
	return m.Position + m.Displacement
}

// Symbol returns the symbol under the head.
func (m *Machine) Symbol() tape.Symbol {
	return m.Tape.Read(m.Head())
}

// Lookup finds the last instruction matching (state, symbol).
// A miss halts the machine.
func (m *Machine) Lookup(state State, symbol tape.Symbol) (inst Instruction, err error) {
	inst, ok := m.Table.Lookup(state, symbol)
	if ok {
		return
	}

	err = &ErrInstructionNotFound{State: state, Symbol: symbol}
	m.Fault = err
	if !m.Halted {
		m.Outcome = HALTED_BY_MISSING_TRANSITION
	}
	m.Halted = true

	return
}

// Execute applies an instruction to the machine.
//
// The write always happens. Head motion is skipped when the machine was
// already halted before this instruction. The halting flag of the instruction
// applies after its own motion.
func (m *Machine) Execute(inst Instruction) (outcome Outcome) {
	if m.Verbose {
		log.Printf("machine: %d: %v", m.Steps, inst)
	}

	last := inst
	m.Instruction = &last

	m.Tape.Write(m.Head(), inst.Write)

	switch {
	case inst.Move == LEFT && !m.Halted:
		if m.Head() == 0 {
			m.Tape.ExpandLeft()
			m.Displacement++
			if m.Verbose {
				log.Printf("machine: expand left, displacement %d", m.Displacement)
			}
		}
		m.Position--
	case inst.Move == RIGHT && !m.Halted:
		if m.Head() == m.Tape.Len()-1 {
			m.Tape.ExpandRight()
			if m.Verbose {
				log.Printf("machine: expand right, length %d", m.Tape.Len())
			}
		}
		m.Position++
	}

	m.State = inst.To
	m.Steps++

	if inst.Halt {
		if !m.Halted {
			m.Outcome = HALTED_BY_INSTRUCTION
		}
		m.Halted = true
	}

	m.History.Push(m.Snapshot())

	outcome = CONTINUED
	if m.Halted {
		outcome = m.Outcome
	}

	return
}

// Step reads the symbol under the head, then looks up and executes the
// matching instruction. A lookup miss is not an error to the caller: the
// machine halts and the returned outcome says why.
func (m *Machine) Step() (outcome Outcome) {
	inst, err := m.Lookup(m.State, m.Symbol())
	if err != nil {
		if m.Verbose {
			log.Printf("machine: %v", err)
		}
		outcome = m.Outcome
		return
	}

	outcome = m.Execute(inst)

	return
}

// Run steps the machine until it halts. It does not return for a machine
// that never reaches a halting instruction or a lookup miss.
func (m *Machine) Run() (outcome Outcome) {
	for !m.Halted {
		m.Step()
	}

	outcome = m.Outcome

	return
}

// StepBack undoes the most recent step, restoring the complete machine
// snapshot taken before it. Returns false if no step has been taken.
func (m *Machine) StepBack() (ok bool) {
	_, ok = m.History.Pop()
	if !ok {
		return
	}

	prev, has := m.History.Peek()
	if !has {
		prev = m.initial
	}

	m.restore(prev)

	if m.Verbose {
		log.Printf("machine: step back to %d", m.Steps)
	}

	return
}

func (m *Machine) restore(snap Snapshot) {
	m.Tape.Restore(snap.Tape)
	m.State = snap.State
	m.Position = snap.Position
	m.Displacement = snap.Displacement
	m.Steps = snap.Steps
	m.Halted = snap.Halted
	m.Outcome = snap.Outcome
	m.Instruction = snap.Last
	m.Fault = nil
}

// Snapshot returns an owned copy of the current machine state.
func (m *Machine) Snapshot() Snapshot {
	return Snapshot{
		Tape:         m.Tape.Symbols(),
		State:        m.State,
		Position:     m.Position,
		Displacement: m.Displacement,
		Steps:        m.Steps,
		Halted:       m.Halted,
		Outcome:      m.Outcome,
		Last:         m.Instruction,
	}
}

// String returns the current machine state as a string.
func (m *Machine) String() (text string) {
	regs := []string{
		"state", "head", "pos", "disp", "steps", "halt", "last", "tape",
	}
	for _, reg := range regs {
		var strval string
		switch reg {
		case "state":
			strval = string(m.State)
		case "head":
			strval = fmt.Sprintf("%d", m.Head())
		case "pos":
			strval = fmt.Sprintf("%d", m.Position)
		case "disp":
			strval = fmt.Sprintf("%d", m.Displacement)
		case "steps":
			strval = fmt.Sprintf("%d", m.Steps)
		case "halt":
			strval = "false"
			if m.Halted {
				strval = m.Outcome.String()
			}
		case "last":
			strval = "-"
			if m.Instruction != nil {
				strval = m.Instruction.String()
			}
		case "tape":
			strval = m.Tape.String()
		}
		text += fmt.Sprintf("% 5s: %v\n", reg, strval)
	}

	return
}
