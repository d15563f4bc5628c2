package program

import (
	"errors"

	"github.com/ezrec/turing/translate"
)

var f = translate.From

var (
	// Program errors
	ErrStartMissing = errors.New(f("start state missing"))
	ErrStartUnused  = errors.New(f("start state has no instructions"))
	ErrHeadRange    = errors.New(f("head outside tape"))
	ErrNoHalt       = errors.New(f("no halting instruction"))
	ErrFormat       = errors.New(f("unknown program format"))

	// Assembler errors
	ErrEquateSyntax     = errors.New(f(".equ syntax"))
	ErrEquateDuplicate  = errors.New(f(".equ duplicated"))
	ErrDirectiveSyntax  = errors.New(f("directive syntax"))
	ErrDirectiveInvalid = errors.New(f("directive invalid"))
	ErrRuleSyntax       = errors.New(f("rule syntax"))
	ErrRuleExtraArgs    = errors.New(f("excessive arguments"))
)

type ErrParseSymbol string

func (err ErrParseSymbol) Error() string {
	return f("'%v' is not a symbol", string(err))
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}

type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}

// ErrRule locates an invalid rule in a definition file.
type ErrRule struct {
	Index int
	Err   error
}

func (err ErrRule) Error() string {
	return f("rule %d %v", err.Index, err.Err)
}

func (err ErrRule) Unwrap() error {
	return err.Err
}
