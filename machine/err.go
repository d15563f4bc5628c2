package machine

import (
	"errors"

	"github.com/ezrec/turing/tape"
	"github.com/ezrec/turing/translate"
)

var f = translate.From

var (
	ErrNoInstruction = errors.New(f("instruction not found"))
	ErrDirection     = errors.New(f("direction invalid"))
	ErrHistoryEmpty  = errors.New(f("history empty"))
)

// ErrInstructionNotFound reports a lookup miss for a (state, symbol) pair.
type ErrInstructionNotFound struct {
	State  State
	Symbol tape.Symbol
}

func (err *ErrInstructionNotFound) Error() string {
	return f("instruction not found (state: %v, symbol: %c)", string(err.State), rune(err.Symbol))
}

func (err *ErrInstructionNotFound) Is(target error) bool {
	return target == ErrNoInstruction
}

// ErrParseDirection reports a word that names no head motion.
type ErrParseDirection string

func (err ErrParseDirection) Error() string {
	return f("'%v' is not a direction", string(err))
}

func (err ErrParseDirection) Unwrap() error {
	return ErrDirection
}
