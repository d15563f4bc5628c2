package tape

import (
	"errors"

	"github.com/ezrec/turing/translate"
)

var f = translate.From

var (
	// Tape errors
	ErrTapeEmpty = errors.New(f("tape empty"))
)

// ErrRange is raised (via panic) when a cell outside the materialized tape
// is accessed. It always indicates a head bookkeeping defect in the caller.
type ErrRange struct {
	Index  int
	Length int
}

func (err *ErrRange) Error() string {
	return f("tape index %d out of range [0,%d)", err.Index, err.Length)
}
