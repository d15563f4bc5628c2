package machine

import (
	"slices"

	"github.com/ezrec/turing/tape"
)

// Snapshot is an owned copy of the machine after a step.
type Snapshot struct {
	Tape         []tape.Symbol // Tape contents.
	State        State         // Current state.
	Position     int           // Head position in initial tape coordinates.
	Displacement int           // Number of left expansions so far.
	Steps        int           // Elapsed steps.
	Halted       bool          // Halted flag.
	Outcome      Outcome       // Halt cause, if halted.
	Last         *Instruction  // Last executed instruction, if any.
}

// Head returns the effective tape index of the head.
func (snap Snapshot) Head() int {
	return snap.Position + snap.Displacement
}

// History is an append-only record of snapshots, one per executed step.
type History struct {
	Data []Snapshot
}

func (h *History) Push(snap Snapshot) {
	h.Data = append(h.Data, snap)
}

// Pop removes the most recent snapshot.
func (h *History) Pop() (snap Snapshot, ok bool) {
	snap, ok = h.Peek()
	if ok {
		h.Data = h.Data[:len(h.Data)-1]
	}
	return
}

// Peek returns the most recent snapshot.
func (h *History) Peek() (snap Snapshot, ok bool) {
	if h.Empty() {
		return
	}

	return h.Data[len(h.Data)-1], true
}

func (h *History) Empty() bool {
	return len(h.Data) == 0
}

func (h *History) Len() int {
	return len(h.Data)
}

// All returns a copy of every snapshot, oldest first.
func (h *History) All() []Snapshot {
	return slices.Clone(h.Data)
}

func (h *History) Reset() {
	if len(h.Data) > 0 {
		h.Data = h.Data[:0]
	}
}
