package program

import (
	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

// cueSchema constrains CUE program definitions.
const cueSchema = `
#Rule: {
	from:  string & != ""
	read:  string & != ""
	to:    string & != ""
	write: string & != ""
	move:  string & != ""
	halt:  bool | *false
}

#Program: {
	name?:  string
	start?: string & != ""
	blank?: string & != ""
	tape:   string | *""
	head:   int & >=0 | *0
	rules: [...#Rule]
}
`

// LoadCUE compiles a CUE program definition and validates it against the
// program schema.
func LoadCUE(filename string, src []byte) (prog *Program, err error) {
	ctx := cuecontext.New()

	schema := ctx.CompileString(cueSchema, cue.Filename("schema.cue"))
	if err = schema.Err(); err != nil {
		return
	}

	value := ctx.CompileBytes(src, cue.Filename(filename))
	if err = value.Err(); err != nil {
		return
	}

	unified := schema.LookupPath(cue.ParsePath("#Program")).Unify(value)
	if err = unified.Validate(cue.Final(), cue.Concrete(true)); err != nil {
		return
	}

	var def Definition
	err = unified.Decode(&def)
	if err != nil {
		return
	}

	return def.Program()
}
