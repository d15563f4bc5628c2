package emulator

import (
	"github.com/google/uuid"
)

// Record is a single step of a run, for machine readable traces.
type Record struct {
	Run         uuid.UUID `json:"run"`
	Program     string    `json:"program"`
	Step        int       `json:"step"`
	State       string    `json:"state"`
	Head        int       `json:"head"`
	Tape        string    `json:"tape"`
	Halted      bool      `json:"halted"`
	Outcome     string    `json:"outcome"`
	Instruction string    `json:"instruction,omitempty"`
}

// Record returns the current step of the run. Before Reset only the
// program name is set.
func (emu *Emulator) Record() (rec Record) {
	if emu.Program != nil {
		rec.Program = emu.Program.Name
	}

	if emu.Machine == nil {
		return
	}

	rec.Run = emu.ID
	rec.Step = emu.Steps
	rec.State = string(emu.State)
	rec.Head = emu.Head()
	rec.Tape = emu.Tape.String()
	rec.Halted = emu.Halted
	rec.Outcome = emu.Outcome.String()

	if emu.Instruction != nil {
		rec.Instruction = emu.Instruction.String()
	}

	return
}
