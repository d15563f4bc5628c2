// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package emulator hosts a Turing machine program: it loads programs, bounds
// runs with a step limit, and renders the machine for display.
package emulator

import (
	"fmt"
	"iter"
	"log"
	"maps"
	"strings"

	"github.com/google/uuid"

	"github.com/ezrec/turing/internal"
	"github.com/ezrec/turing/machine"
	"github.com/ezrec/turing/presets"
	"github.com/ezrec/turing/program"
)

const (
	DEFAULT_LIMIT = 100000    // Default step limit of a run.
	PRESET_PREFIX = "preset:" // Program name prefix selecting a preset.
)

var _emulator_defines = map[string]string{
	"DEFAULT_LIMIT": fmt.Sprintf("%v", DEFAULT_LIMIT),
}

// Emulator state. Program + Machine + run bounds.
type Emulator struct {
	Verbose          bool             // If set, enables verbose logging.
	*machine.Machine                  // Reference to the machine simulation.
	Program          *program.Program // Reference to the currently loaded program.

	Limit  int       // If positive, the maximum steps of a run.
	Strict bool      // If set, a missing transition is a runtime error.
	ID     uuid.UUID // Run id, assigned by Reset.
}

// NewEmulator creates a new emulator.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Limit: DEFAULT_LIMIT,
	}

	return
}

// Defines returns an iterator over all of the defines.
func (emu *Emulator) Defines() iter.Seq2[string, string] {
	return internal.IterSeq2Concat(maps.All(_emulator_defines),
		machine.Defines(),
	)
}

// Load loads a program by file path, or a preset by "preset:NAME".
func (emu *Emulator) Load(name string) (err error) {
	var prog *program.Program

	if preset, found := strings.CutPrefix(name, PRESET_PREFIX); found {
		var ok bool
		prog, ok = presets.Lookup(preset)
		if !ok {
			err = fmt.Errorf("%v: %w", preset, ErrPresetUnknown)
			return
		}
	} else {
		prog, err = program.LoadDefines(name, emu.Defines())
		if err != nil {
			return
		}
	}

	if emu.Verbose {
		log.Printf("emulator: loaded %v (%d rules)", prog.Name, len(prog.Table))
	}

	emu.Program = prog
	emu.Machine = nil

	return
}

// Reset the emulator to the start of the program, with a new run id.
func (emu *Emulator) Reset() (err error) {
	if emu.Program == nil {
		err = ErrNoProgram
		return
	}

	m, err := emu.Program.NewMachine()
	if err != nil {
		return
	}

	id, err := uuid.NewV7()
	if err != nil {
		return
	}

	m.Verbose = emu.Verbose
	emu.Machine = m
	emu.ID = id

	if emu.Verbose {
		log.Printf("emulator: reset %v run %v", emu.Program.Name, emu.ID)
	}

	return
}

// Tick performs a single step of the emulator.
func (emu *Emulator) Tick() (done bool, err error) {
	if emu.Machine == nil {
		err = ErrNoProgram
		return
	}

	// Set machine verbosity
	emu.Machine.Verbose = emu.Verbose

	if emu.Halted {
		done = true
		return
	}

	if emu.Limit > 0 && emu.Steps >= emu.Limit {
		err = ErrStepLimit
		return
	}

	step := emu.Steps
	defer func() {
		if err != nil {
			err = &ErrRuntime{Step: step, Err: err}
		}
	}()

	switch emu.Step() {
	case machine.CONTINUED:
	case machine.HALTED_BY_MISSING_TRANSITION:
		done = true
		if emu.Strict {
			err = emu.Fault
		}
	default:
		done = true
	}

	return
}

// Run ticks the emulator until the machine halts, or an error occurs.
func (emu *Emulator) Run() (outcome machine.Outcome, err error) {
	for {
		var done bool
		done, err = emu.Tick()
		if err != nil || done {
			break
		}
	}

	if emu.Machine != nil {
		outcome = emu.Outcome
	}

	return
}

// Back undoes the most recent step.
func (emu *Emulator) Back() (err error) {
	if emu.Machine == nil {
		err = ErrNoProgram
		return
	}

	if !emu.StepBack() {
		err = machine.ErrHistoryEmpty
		return
	}

	return
}

// Render returns the tape row, a caret under the head, and the machine state.
// Before Reset there is no machine, and the render is empty.
func (emu *Emulator) Render() string {
	if emu.Machine == nil {
		return ""
	}

	var sb strings.Builder

	sb.WriteString("|")
	for _, sym := range emu.Tape.Symbols() {
		sb.WriteString(sym.String())
		sb.WriteString("|")
	}
	sb.WriteString("\n")

	sb.WriteString(strings.Repeat(" ", emu.Head()*2+1))
	sb.WriteString("^\n")

	fmt.Fprintf(&sb, "state = %v\n", emu.State)
	if !emu.Halted && emu.Instruction != nil {
		fmt.Fprintf(&sb, "direction = %v\n", emu.Instruction.Move)
	}
	fmt.Fprintf(&sb, "time = %d\n", emu.Steps)

	return sb.String()
}
