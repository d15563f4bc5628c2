// Package program describes Turing machine programs: a start state, an
// initial tape and an instruction table. Programs are read from assembler
// text, YAML or CUE files.
package program

import (
	"fmt"
	"io"
	"iter"
	"os"
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ezrec/turing/machine"
	"github.com/ezrec/turing/tape"
)

// Program is everything needed to start a machine.
type Program struct {
	Name  string        // Display name.
	Start machine.State // Initial state.
	Blank tape.Symbol   // Blank symbol, zero for tape.BLANK.
	Tape  string        // Initial tape contents, one cell per rune.
	Head  int           // Initial head cell.
	Table machine.Table // Instruction table.
}

// NewTape creates a fresh copy of the initial tape.
func (prog *Program) NewTape() *tape.Tape {
	return tape.FromString(prog.Tape, prog.Blank)
}

// Validate checks the program can be started. Programs that start but look
// wrong are reported by Warnings instead.
func (prog *Program) Validate() (err error) {
	if len(prog.Start) == 0 {
		err = ErrStartMissing
		return
	}

	cells := max(1, utf8.RuneCountInString(prog.Tape))
	if prog.Head < 0 || prog.Head >= cells {
		err = ErrHeadRange
		return
	}

	return
}

// Warnings returns problems that do not stop the program from running.
func (prog *Program) Warnings() (warnings []error) {
	if !prog.Table.Halts() {
		warnings = append(warnings, ErrNoHalt)
	}

	if len(prog.Table) > 0 {
		used := false
		for _, inst := range prog.Table {
			if inst.From == prog.Start {
				used = true
				break
			}
		}
		if !used {
			warnings = append(warnings, ErrStartUnused)
		}
	}

	return
}

// NewMachine creates a machine at the start of the program.
func (prog *Program) NewMachine() (m *machine.Machine, err error) {
	err = prog.Validate()
	if err != nil {
		return
	}

	m = machine.NewMachine(prog.Start, prog.Table, prog.NewTape())
	err = m.SetPosition(prog.Head)
	if err != nil {
		m = nil
	}

	return
}

// Marshal writes the program as assembler text.
func (prog *Program) Marshal(file io.Writer) (err error) {
	var lines []string

	if len(prog.Name) != 0 {
		lines = append(lines, ".name "+prog.Name)
	}
	lines = append(lines, ".start "+string(prog.Start))
	if prog.Blank != 0 {
		lines = append(lines, ".blank "+encodeSymbol(prog.Blank))
	}
	if len(prog.Tape) != 0 {
		lines = append(lines, ".tape "+encodeText(prog.Tape))
	}
	if prog.Head != 0 {
		lines = append(lines, fmt.Sprintf(".head %d", prog.Head))
	}

	for _, inst := range prog.Table {
		line := fmt.Sprintf("%v %v -> %v %v %v",
			inst.From, encodeSymbol(inst.Read),
			inst.To, encodeSymbol(inst.Write),
			inst.Move)
		if inst.Halt {
			line += " halt"
		}
		lines = append(lines, line)
	}

	_, err = io.WriteString(file, strings.Join(lines, "\n")+"\n")

	return
}

// Load reads a program from a file, choosing the format by extension.
func Load(path string) (prog *Program, err error) {
	return LoadDefines(path, nil)
}

// LoadDefines is Load with assembler predefines for .tm files.
func LoadDefines(path string, defines iter.Seq2[string, string]) (prog *Program, err error) {
	inf, err := os.Open(path)
	if err != nil {
		return
	}
	defer inf.Close()

	ext := filepath.Ext(path)
	switch strings.ToLower(ext) {
	case ".tm", ".turing":
		asm := &Assembler{}
		if defines != nil {
			for equ, value := range defines {
				asm.Predefine(equ, value)
			}
		}
		prog, err = asm.Parse(inf)
	case ".yaml", ".yml":
		prog, err = LoadYAML(inf)
	case ".cue":
		var src []byte
		src, err = io.ReadAll(inf)
		if err != nil {
			return
		}
		prog, err = LoadCUE(path, src)
	default:
		err = fmt.Errorf("%v: %w", path, ErrFormat)
	}
	if err != nil {
		prog = nil
		return
	}

	if len(prog.Name) == 0 {
		prog.Name = strings.TrimSuffix(filepath.Base(path), ext)
	}

	return
}

// plainRune is true for runes that can appear as is in assembler text.
func plainRune(r rune) bool {
	if !unicode.IsGraphic(r) || unicode.IsSpace(r) {
		return false
	}
	return !strings.ContainsRune(`;#'$()`, r)
}

// encodeSymbol returns a symbol as a single assembler word.
func encodeSymbol(sym tape.Symbol) string {
	if plainRune(rune(sym)) {
		return string(rune(sym))
	}
	return fmt.Sprintf("#%d", rune(sym))
}

// encodeText returns text as assembler words, escaping runes that are not
// plain as #NN words.
func encodeText(text string) string {
	var words []string
	var plain strings.Builder
	for _, r := range text {
		if plainRune(r) {
			plain.WriteRune(r)
			continue
		}
		if plain.Len() > 0 {
			words = append(words, plain.String())
			plain.Reset()
		}
		words = append(words, encodeSymbol(tape.Symbol(r)))
	}
	if plain.Len() > 0 {
		words = append(words, plain.String())
	}
	return strings.Join(words, " ")
}
