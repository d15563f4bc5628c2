package machine

// Outcome is the result of executing a step.
type Outcome int

const (
	CONTINUED                    = Outcome(0) // The machine can take another step.
	HALTED_BY_INSTRUCTION        = Outcome(1) // A halting instruction executed.
	HALTED_BY_MISSING_TRANSITION = Outcome(2) // No instruction matched (state, symbol).
)

func (oc Outcome) String() string {
	switch oc {
	case CONTINUED:
		return "continued"
	case HALTED_BY_INSTRUCTION:
		return "halted"
	case HALTED_BY_MISSING_TRANSITION:
		return "stuck"
	}
	return f("outcome(%d)", int(oc))
}

// Halted returns true if the outcome stops the machine.
func (oc Outcome) Halted() bool {
	return oc != CONTINUED
}
