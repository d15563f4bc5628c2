package program

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/turing/machine"
	"github.com/ezrec/turing/tape"
)

func parse(t *testing.T, program []string) (prog *Program, err error) {
	t.Helper()

	asm := &Assembler{}
	return asm.Parse(strings.NewReader(strings.Join(program, "\n")))
}

func TestAssembler(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	prog, err := asm.Parse(strings.NewReader(""))
	assert.NoError(err)
	assert.Equal(0, len(prog.Table))
	assert.Equal("0", asm.Equate["LINENO"])
	assert.Equal("-", asm.Equate["BLANK"])
}

func TestAssemblerRules(t *testing.T) {
	assert := assert.New(t)

	program := []string{
		"even 0 -> even 0 R",
		"even * -> halt e C halt ; comment",
		"odd 1 even 1 left", // quintuple form
		"",
		"; just a comment",
	}

	prog, err := parse(t, program)
	assert.NoError(err)
	if err != nil {
		t.Fatal(err)
	}

	expected := machine.Table{
		{From: "even", Read: '0', To: "even", Write: '0', Move: machine.RIGHT},
		{From: "even", Read: '*', To: "halt", Write: 'e', Move: machine.STAY, Halt: true},
		{From: "odd", Read: '1', To: "even", Write: '1', Move: machine.LEFT},
	}
	assert.Equal(expected, prog.Table)
	assert.Equal(machine.State("even"), prog.Start)
}

func TestAssemblerDirectives(t *testing.T) {
	assert := assert.New(t)

	program := []string{
		".name unary adder",
		".start Initial",
		".blank _",
		".tape * 11 + 1 =",
		".head 1",
		"Initial * -> FindOnes * R",
		"FindOnes BLANK -> Done BLANK C halt",
	}

	prog, err := parse(t, program)
	assert.NoError(err)

	assert.Equal("unary adder", prog.Name)
	assert.Equal(machine.State("Initial"), prog.Start)
	assert.Equal(tape.Symbol('_'), prog.Blank)
	assert.Equal("*11+1=", prog.Tape)
	assert.Equal(1, prog.Head)
	assert.Equal(tape.Symbol('_'), prog.Table[1].Read)
	assert.Equal(tape.Symbol('_'), prog.Table[1].Write)
}

func TestAssemblerQuoted(t *testing.T) {
	assert := assert.New(t)

	program := []string{
		"a ' ' -> b '\\s' R",
		"b #59 -> c 'é' L",
		".tape a #32 b",
	}

	prog, err := parse(t, program)
	assert.NoError(err)

	assert.Equal(tape.Symbol(' '), prog.Table[0].Read)
	assert.Equal(tape.Symbol(' '), prog.Table[0].Write)
	assert.Equal(tape.Symbol(';'), prog.Table[1].Read)
	assert.Equal(tape.Symbol('é'), prog.Table[1].Write)
	assert.Equal("a b", prog.Tape)
}

func TestAssemblerEqu(t *testing.T) {
	assert := assert.New(t)

	program := []string{
		".equ MARK *",
		".equ GO R",
		"s MARK -> s MARK GO",
	}

	prog, err := parse(t, program)
	assert.NoError(err)
	assert.Equal(machine.Instruction{From: "s", Read: '*', To: "s", Write: '*', Move: machine.RIGHT}, prog.Table[0])

	_, err = parse(t, []string{".equ A 1", ".equ A 2"})
	assert.ErrorIs(err, ErrEquateDuplicate)

	_, err = parse(t, []string{".equ A"})
	assert.ErrorIs(err, ErrEquateSyntax)
}

func TestAssemblerPredefine(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	asm.Predefine("MOVE", "L")
	asm.Predefine("MOVE", "R")

	prog, err := asm.Parse(strings.NewReader("s 0 -> s 0 MOVE"))
	assert.NoError(err)
	assert.Equal(machine.RIGHT, prog.Table[0].Move)
}

func TestAssemblerExpression(t *testing.T) {
	assert := assert.New(t)

	program := []string{
		".equ COUNT 3",
		`.tape $("*" + "1" * COUNT + "+" + "1" * 2 + "=")`,
		".head $(COUNT + 1)",
		`s $("x") -> s $(BLANK) R`,
	}

	prog, err := parse(t, program)
	assert.NoError(err)

	assert.Equal("*111+11=", prog.Tape)
	assert.Equal(4, prog.Head)
	assert.Equal(tape.Symbol('x'), prog.Table[0].Read)
	assert.Equal(tape.BLANK, prog.Table[0].Write)

	prog, err = parse(t, []string{`.tape $("a b")`})
	assert.NoError(err)
	assert.Equal("a b", prog.Tape)

	_, err = parse(t, []string{`.head $(1 +)`})
	assert.Error(err)

	_, err = parse(t, []string{`.tape $([1])`})
	assert.ErrorIs(err, ErrParseExpression("[1]"))
}

func TestAssemblerErrors(t *testing.T) {
	assert := assert.New(t)

	cases := []struct {
		line string
		err  error
	}{
		{"a 0 -> b", ErrRuleSyntax},
		{"a 0 -> b 1 R stop", ErrRuleSyntax},
		{"a 0 -> b 1 R halt extra", ErrRuleExtraArgs},
		{"a 00 -> b 1 R", ErrParseSymbol("00")},
		{"a 0 -> b 1 U", machine.ErrDirection},
		{".start", ErrDirectiveSyntax},
		{".blank ab", ErrParseSymbol("ab")},
		{".head x", ErrParseNumber("x")},
		{".bogus", ErrDirectiveInvalid},
	}

	for _, tc := range cases {
		_, err := parse(t, []string{"; first", tc.line})
		assert.ErrorIs(err, tc.err, tc.line)

		var syntax ErrSyntax
		if assert.True(errors.As(err, &syntax), tc.line) {
			assert.Equal(2, syntax.LineNo)
			assert.Equal(tc.line, syntax.Line)
		}
	}
}

func TestAssemblerMarshal(t *testing.T) {
	assert := assert.New(t)

	prog := &Program{
		Name:  "odd symbols",
		Start: "a",
		Blank: '_',
		Tape:  "x ;#y",
		Head:  2,
		Table: machine.Table{
			{From: "a", Read: ' ', To: "b", Write: ';', Move: machine.RIGHT},
			{From: "b", Read: '#', To: "c", Write: '$', Move: machine.STAY, Halt: true},
			{From: "c", Read: '_', To: "a", Write: 'x', Move: machine.LEFT},
		},
	}

	buff := &bytes.Buffer{}
	assert.NoError(prog.Marshal(buff))
	assert.Contains(buff.String(), ".tape x #32 #59 #35 y\n")
	assert.Contains(buff.String(), "a #32 -> b #59 R\n")

	asm := &Assembler{}
	parsed, err := asm.Parse(buff)
	assert.NoError(err)
	assert.Equal(prog, parsed)
}

func TestAssemblerEquStates(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	asm.Predefine("LEFT", "L")
	asm.Predefine("MARK", "*")

	program := []string{
		".start LEFT",
		".tape 0 MARK",
		"LEFT 0 -> MARK 1 LEFT",
		"MARK MARK -> LEFT MARK LEFT halt",
	}

	prog, err := asm.Parse(strings.NewReader(strings.Join(program, "\n")))
	assert.NoError(err)

	assert.Equal(machine.State("LEFT"), prog.Start)
	assert.Equal("0*", prog.Tape)
	assert.Equal(machine.Table{
		{From: "LEFT", Read: '0', To: "MARK", Write: '1', Move: machine.LEFT},
		{From: "MARK", Read: '*', To: "LEFT", Write: '*', Move: machine.LEFT, Halt: true},
	}, prog.Table)
}
