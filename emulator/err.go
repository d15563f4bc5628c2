package emulator

import (
	"errors"

	"github.com/ezrec/turing/translate"
)

var f = translate.From

var (
	ErrStepLimit     = errors.New(f("step limit reached"))
	ErrNoProgram     = errors.New(f("no program loaded"))
	ErrPresetUnknown = errors.New(f("unknown preset"))
)

// ErrRuntime indicates the step of a runtime error.
type ErrRuntime struct {
	Step int
	Err  error
}

func (err *ErrRuntime) Error() string {
	return f("step %d %v", err.Step, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}
