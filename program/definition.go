package program

import (
	"io"

	"gopkg.in/yaml.v3"

	"github.com/ezrec/turing/machine"
	"github.com/ezrec/turing/tape"
)

// Definition is the YAML and CUE form of a program.
type Definition struct {
	// Name is the display name of the program.
	Name string `yaml:"name,omitempty" json:"name,omitempty"`

	// Start is the initial state. Defaults to the first rule's state.
	Start string `yaml:"start,omitempty" json:"start,omitempty"`

	// Blank is the blank symbol. Defaults to "-".
	Blank string `yaml:"blank,omitempty" json:"blank,omitempty"`

	// Tape is the initial tape, one cell per character.
	Tape string `yaml:"tape,omitempty" json:"tape,omitempty"`

	// Head is the initial head cell.
	Head int `yaml:"head,omitempty" json:"head,omitempty"`

	// Rules is the instruction table, in lookup order.
	Rules []Rule `yaml:"rules" json:"rules"`
}

// Rule is a single instruction of a Definition.
type Rule struct {
	From  string `yaml:"from" json:"from"`
	Read  string `yaml:"read" json:"read"`
	To    string `yaml:"to" json:"to"`
	Write string `yaml:"write" json:"write"`
	Move  string `yaml:"move" json:"move"`
	Halt  bool   `yaml:"halt,omitempty" json:"halt,omitempty"`
}

// Program converts the definition into a Program.
func (def *Definition) Program() (prog *Program, err error) {
	prog = &Program{
		Name:  def.Name,
		Start: machine.State(def.Start),
		Tape:  def.Tape,
		Head:  def.Head,
	}

	if len(def.Blank) != 0 {
		prog.Blank, err = symbolOf(def.Blank)
		if err != nil {
			prog = nil
			return
		}
	}

	for n, rule := range def.Rules {
		var inst machine.Instruction
		inst, err = rule.Instruction()
		if err != nil {
			err = ErrRule{Index: n, Err: err}
			prog = nil
			return
		}
		prog.Table = append(prog.Table, inst)
	}

	if len(prog.Start) == 0 && len(prog.Table) > 0 {
		prog.Start = prog.Table[0].From
	}

	return
}

// Instruction converts the rule into a machine instruction.
func (rule Rule) Instruction() (inst machine.Instruction, err error) {
	inst.From = machine.State(rule.From)
	inst.To = machine.State(rule.To)
	inst.Halt = rule.Halt

	inst.Read, err = symbolOf(rule.Read)
	if err != nil {
		return
	}
	inst.Write, err = symbolOf(rule.Write)
	if err != nil {
		return
	}
	inst.Move, err = machine.ParseDirection(rule.Move)

	return
}

// DefinitionOf returns the definition form of a program.
func DefinitionOf(prog *Program) (def Definition) {
	def = Definition{
		Name:  prog.Name,
		Start: string(prog.Start),
		Tape:  prog.Tape,
		Head:  prog.Head,
	}

	if prog.Blank != 0 && prog.Blank != tape.BLANK {
		def.Blank = prog.Blank.String()
	}

	for _, inst := range prog.Table {
		def.Rules = append(def.Rules, Rule{
			From:  string(inst.From),
			Read:  inst.Read.String(),
			To:    string(inst.To),
			Write: inst.Write.String(),
			Move:  inst.Move.String(),
			Halt:  inst.Halt,
		})
	}

	return
}

// LoadYAML reads a YAML program definition.
func LoadYAML(file io.Reader) (prog *Program, err error) {
	var def Definition

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	err = decoder.Decode(&def)
	if err != nil {
		return
	}

	return def.Program()
}

// WriteYAML writes the program as a YAML definition.
func (prog *Program) WriteYAML(file io.Writer) (err error) {
	encoder := yaml.NewEncoder(file)
	encoder.SetIndent(2)
	err = encoder.Encode(DefinitionOf(prog))
	if err != nil {
		return
	}
	err = encoder.Close()
	return
}
