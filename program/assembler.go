// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package program

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/turing/machine"
	"github.com/ezrec/turing/tape"
)

// Predefined system equates
var sysEquate = map[string]string{
	"LINENO": "0",
	"BLANK":  encodeSymbol(tape.BLANK),
}

// Assembler is a single pass assembler for Turing machine programs.
//
// Each line is a directive, an equate, or a rule:
//
//	.name NAME           ; display name
//	.start STATE         ; initial state (default: first rule's state)
//	.blank SYMBOL        ; blank symbol
//	.tape WORD...        ; initial tape, words are concatenated
//	.head N              ; initial head cell
//	.equ NAME VALUE      ; alias for symbol, motion and value words
//	FROM READ -> TO WRITE MOVE [halt]
//
// 'c' is a quoted symbol, #NN a symbol by code point, and $(...) a starlark
// expression evaluated at assembly time.
type Assembler struct {
	Verbose bool              // If set, verbosely logs the assembler actions.
	Equate  map[string]string // Map of equates.

	predefine map[string]string // Predefines
	program   *Program          // Program under construction.
	hasStart  bool              // Set when .start was seen.
}

// Predefine defines a new equate or redefines an existing equate.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

// symbolOf returns the symbol named by a word.
func symbolOf(word string) (sym tape.Symbol, err error) {
	if utf8.RuneCountInString(word) == 1 {
		r, _ := utf8.DecodeRuneInString(word)
		sym = tape.Symbol(r)
		return
	}

	if len(word) > 1 && word[0] == '#' {
		var code uint64
		code, err = strconv.ParseUint(word[1:], 0, 21)
		if err == nil && utf8.ValidRune(rune(code)) {
			sym = tape.Symbol(code)
			return
		}
	}

	err = ErrParseSymbol(word)
	return
}

// textOf decodes assembler words into text.
func textOf(words []string) (text string, err error) {
	var sb strings.Builder
	for _, word := range words {
		if len(word) > 1 && word[0] == '#' {
			var sym tape.Symbol
			sym, err = symbolOf(word)
			if err != nil {
				return
			}
			sb.WriteRune(rune(sym))
			continue
		}
		sb.WriteString(word)
	}
	text = sb.String()
	return
}

// parenEval does assembly time $(...) evaluations
func (asm *Assembler) parenEval(expr string) (value string, err error) {
	thread := starlark.Thread{Name: "asm"}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range asm.Equate {
		n, nerr := strconv.ParseInt(str, 0, 64)
		if nerr == nil {
			pred[key] = starlark.MakeInt64(n)
			continue
		}
		text, terr := textOf(strings.Fields(str))
		if terr != nil {
			continue
		}
		pred[key] = starlark.String(text)
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		return
	}

	switch rc := dict["rc"].(type) {
	case starlark.Int:
		n, ok := rc.Int64()
		if !ok {
			err = ErrParseExpression(expr)
			return
		}
		value = fmt.Sprintf("%d", n)
	case starlark.String:
		value = encodeText(rc.GoString())
	default:
		err = ErrParseExpression(expr)
	}

	return
}

var (
	reQuoted = regexp.MustCompile(`'\\?[^']'`)
	reParen  = regexp.MustCompile(`\$\([^\$]*\)`)
)

// parseLine expands a single line into words.
func (asm *Assembler) parseLine(line string, lineno int) (words []string, err error) {
	// Set line number.
	asm.Equate["LINENO"] = fmt.Sprintf("%v", lineno)

	// Do 'x' evaluations
	line = reQuoted.ReplaceAllStringFunc(line, func(word string) string {
		str := word[1 : len(word)-1]
		if str[0] == '\\' && len(str) > 1 {
			switch str[1:] {
			case "\\":
				str = "\\"
			case "n":
				str = "\n"
			case "t":
				str = "\t"
			case "s":
				str = " "
			default:
				return word
			}
		} else if utf8.RuneCountInString(str) != 1 {
			return word
		}
		r, _ := utf8.DecodeRuneInString(str)
		return fmt.Sprintf("#%d", r)
	})

	// Do $() evaluations
	line = reParen.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil {
			err = _err
		}
		return value
	})
	if err != nil {
		return
	}

	words = strings.Fields(line)
	if len(words) == 0 {
		return
	}

	// .equ CONST VALUE
	if words[0] == ".equ" {
		if len(words) != 3 {
			err = ErrEquateSyntax
			return
		}
		_, ok := asm.Equate[words[1]]
		if ok {
			err = ErrEquateDuplicate
			return
		}
		asm.Equate[words[1]] = words[2]
		words = words[:0]
		return
	}

	return
}

// expand replaces a word by its equate, if any. Only symbol, motion and
// value positions are expanded; state and program names are never touched.
func (asm *Assembler) expand(word string) string {
	equate, ok := asm.Equate[word]
	if ok {
		return equate
	}
	return word
}

// parseDirective handles a .directive line.
func (asm *Assembler) parseDirective(words []string) (err error) {
	prog := asm.program
	args := words[1:]

	switch words[0] {
	case ".name":
		prog.Name = strings.Join(args, " ")
	case ".start":
		if len(args) != 1 {
			err = ErrDirectiveSyntax
			return
		}
		prog.Start = machine.State(args[0])
		asm.hasStart = true
	case ".blank":
		if len(args) != 1 {
			err = ErrDirectiveSyntax
			return
		}
		prog.Blank, err = symbolOf(asm.expand(args[0]))
		if err != nil {
			return
		}
		asm.Equate["BLANK"] = encodeSymbol(prog.Blank)
	case ".tape":
		words := make([]string, len(args))
		for n, arg := range args {
			words[n] = asm.expand(arg)
		}
		prog.Tape, err = textOf(words)
	case ".head":
		if len(args) != 1 {
			err = ErrDirectiveSyntax
			return
		}
		value := asm.expand(args[0])
		prog.Head, err = strconv.Atoi(value)
		if err != nil {
			err = ErrParseNumber(value)
			return
		}
	default:
		err = ErrDirectiveInvalid
	}

	return
}

// parseRule parses FROM READ [->] TO WRITE MOVE [halt].
func (asm *Assembler) parseRule(words []string) (inst machine.Instruction, err error) {
	if len(words) > 2 && words[2] == "->" {
		words = slices.Delete(slices.Clone(words), 2, 3)
	}

	halt := false
	if len(words) == 6 {
		if !strings.EqualFold(words[5], "halt") {
			err = ErrRuleSyntax
			return
		}
		halt = true
		words = words[:5]
	}

	if len(words) > 6 {
		err = ErrRuleExtraArgs
		return
	}
	if len(words) != 5 {
		err = ErrRuleSyntax
		return
	}

	inst.From = machine.State(words[0])
	inst.Read, err = symbolOf(asm.expand(words[1]))
	if err != nil {
		return
	}
	inst.To = machine.State(words[2])
	inst.Write, err = symbolOf(asm.expand(words[3]))
	if err != nil {
		return
	}
	inst.Move, err = machine.ParseDirection(asm.expand(words[4]))
	if err != nil {
		return
	}
	inst.Halt = halt

	return
}

// Parse parses an input stream into a Program.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	scanner := bufio.NewScanner(input)

	var line string
	var lineno int

	defer func() {
		if err != nil {
			err = ErrSyntax{LineNo: lineno, Line: line, Err: err}
			prog = nil
		}
	}()

	asm.program = &Program{}
	asm.hasStart = false
	asm.Equate = maps.Clone(sysEquate)
	for attr, val := range asm.predefine {
		asm.Equate[attr] = val
	}

	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1

		if asm.Verbose {
			log.Printf("asm: %v: %v", lineno, text)
		}

		text_comment := strings.Split(text, ";")
		line = strings.TrimSpace(text_comment[0])

		var words []string
		words, err = asm.parseLine(line, lineno)
		if err != nil {
			return
		}

		if len(words) == 0 {
			continue
		}

		if strings.HasPrefix(words[0], ".") {
			err = asm.parseDirective(words)
			if err != nil {
				return
			}
			continue
		}

		var inst machine.Instruction
		inst, err = asm.parseRule(words)
		if err != nil {
			return
		}

		if !asm.hasStart && len(asm.program.Table) == 0 {
			asm.program.Start = inst.From
		}

		asm.program.Table = append(asm.program.Table, inst)
	}

	err = scanner.Err()
	if err != nil {
		return
	}

	prog = asm.program

	return
}
