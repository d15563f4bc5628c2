// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package tape implements the growable symbol tape of a single-tape Turing
// machine.
//
// The tape only materializes the cells that have been visited. It grows by
// exactly one blank cell at either end on demand. Growing on the left
// renumbers every existing cell by +1; the tape does not track this, the
// caller must.
package tape

import (
	"bufio"
	"io"
	"slices"
	"strings"
	"unicode"
)

// Symbol is a single character of the tape alphabet.
type Symbol rune

const (
	BLANK = Symbol('-') // Default blank symbol.
)

// String returns the symbol as a one character string.
func (sym Symbol) String() string {
	return string(rune(sym))
}

// Tape is a finite, growable run of symbols.
type Tape struct {
	blank Symbol
	data  []Symbol
}

// New creates a tape holding a copy of symbols. A zero blank selects BLANK.
func New(symbols []Symbol, blank Symbol) (tp *Tape) {
	if blank == 0 {
		blank = BLANK
	}

	tp = &Tape{
		blank: blank,
		data:  slices.Clone(symbols),
	}

	return
}

// FromString creates a tape with one cell per rune of text.
func FromString(text string, blank Symbol) *Tape {
	var symbols []Symbol
	for _, r := range text {
		symbols = append(symbols, Symbol(r))
	}

	return New(symbols, blank)
}

// Blank returns the symbol placed in newly materialized cells.
func (tp *Tape) Blank() Symbol {
	return tp.blank
}

// Len returns the number of materialized cells.
func (tp *Tape) Len() int {
	return len(tp.data)
}

func (tp *Tape) check(index int) {
	if index < 0 || index >= len(tp.data) {
		panic(&ErrRange{Index: index, Length: len(tp.data)})
	}
}

// Read returns the symbol at index.
func (tp *Tape) Read(index int) Symbol {
	tp.check(index)
	return tp.data[index]
}

// Write overwrites the symbol at index.
func (tp *Tape) Write(index int, symbol Symbol) {
	tp.check(index)
	tp.data[index] = symbol
}

// ExpandLeft inserts a blank cell at index 0.
func (tp *Tape) ExpandLeft() {
	tp.data = slices.Insert(tp.data, 0, tp.blank)
}

// ExpandRight appends a blank cell.
func (tp *Tape) ExpandRight() {
	tp.data = append(tp.data, tp.blank)
}

// Symbols returns a copy of the tape contents.
func (tp *Tape) Symbols() []Symbol {
	return slices.Clone(tp.data)
}

// Restore replaces the tape contents with a copy of symbols.
func (tp *Tape) Restore(symbols []Symbol) {
	tp.data = slices.Clone(symbols)
}

// String returns the tape contents as text.
func (tp *Tape) String() string {
	var sb strings.Builder
	for _, sym := range tp.data {
		sb.WriteRune(rune(sym))
	}
	return sb.String()
}

// Unmarshal loads the tape from a reader, one cell per rune.
// Trailing whitespace is dropped. An empty input leaves a single blank cell.
func (tp *Tape) Unmarshal(file io.Reader) (err error) {
	if tp.blank == 0 {
		tp.blank = BLANK
	}

	var data []Symbol
	reader := bufio.NewReader(file)
	for {
		var r rune
		r, _, err = reader.ReadRune()
		if err == io.EOF {
			err = nil
			break
		}
		if err != nil {
			return
		}
		data = append(data, Symbol(r))
	}

	for len(data) > 0 && unicode.IsSpace(rune(data[len(data)-1])) {
		data = data[:len(data)-1]
	}

	if len(data) == 0 {
		data = []Symbol{tp.blank}
	}

	tp.data = data

	return
}

// Marshal writes the tape contents followed by a newline.
func (tp *Tape) Marshal(file io.Writer) (err error) {
	if len(tp.data) == 0 {
		err = ErrTapeEmpty
		return
	}

	_, err = io.WriteString(file, tp.String()+"\n")

	return
}
