package emulator

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"

	"github.com/ezrec/turing/machine"
	"github.com/ezrec/turing/presets"
	"github.com/ezrec/turing/program"
)

func TestEmulator(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()

	assert.False(emu.Verbose)
	assert.Nil(emu.Machine)
	assert.Equal(DEFAULT_LIMIT, emu.Limit)

	assert.Equal(ErrNoProgram, emu.Reset())
	_, err := emu.Tick()
	assert.Equal(ErrNoProgram, err)
	assert.Equal(ErrNoProgram, emu.Back())
}

func TestEmulator_BeforeReset(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	assert.Equal("", emu.Render())
	assert.Equal(Record{}, emu.Record())

	assert.NoError(emu.Load("preset:parity"))
	assert.Equal("", emu.Render())
	assert.Equal(Record{Program: "parity"}, emu.Record())

	assert.NoError(emu.Reset())
	assert.Contains(emu.Render(), "state = even\n")
	assert.Equal("even", emu.Record().State)
}

func TestEmulator_Load(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()

	assert.NoError(emu.Load("preset:flipper"))
	assert.Equal("flipper", emu.Program.Name)

	err := emu.Load("preset:bogus")
	assert.ErrorIs(err, ErrPresetUnknown)

	// Assembler files see the emulator defines.
	path := filepath.Join(t.TempDir(), "walker.tm")
	source := strings.Join([]string{
		".tape 000",
		"s 0 -> s 1 RIGHT",
		"s BLANK -> done BLANK STAY halt",
		".head $(DEFAULT_LIMIT - DEFAULT_LIMIT)",
	}, "\n")
	assert.NoError(os.WriteFile(path, []byte(source), 0644))

	assert.NoError(emu.Load(path))
	assert.Equal("walker", emu.Program.Name)
	assert.NoError(emu.Reset())

	outcome, err := emu.Run()
	assert.NoError(err)
	assert.Equal(machine.HALTED_BY_INSTRUCTION, outcome)
	assert.Equal("111-", emu.Tape.String())

	assert.Error(emu.Load(filepath.Join(t.TempDir(), "missing.tm")))
}

func TestEmulator_Defines(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()

	defines := map[string]string{}
	for equ, value := range emu.Defines() {
		defines[equ] = value
	}

	assert.Equal("100000", defines["DEFAULT_LIMIT"])
	assert.Equal("L", defines["LEFT"])
	assert.Equal("R", defines["RIGHT"])
	assert.Equal("C", defines["STAY"])
}

func TestEmulator_Reset(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	emu.Program = presets.Parity()

	assert.NoError(emu.Reset())
	first := emu.ID
	assert.NotEqual(uuid.Nil, first)
	assert.Equal(uuid.Version(7), first.Version())

	emu.Run()
	assert.True(emu.Halted)

	assert.NoError(emu.Reset())
	assert.NotEqual(first, emu.ID)
	assert.False(emu.Halted)
	assert.Equal(0, emu.Steps)
	assert.Equal("101*", emu.Tape.String())

	emu.Program = &program.Program{}
	assert.Equal(program.ErrStartMissing, emu.Reset())
}

func TestEmulator_Tick(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	emu.Program = presets.Parity()
	assert.NoError(emu.Reset())

	for range 3 {
		done, err := emu.Tick()
		assert.NoError(err)
		assert.False(done)
	}

	done, err := emu.Tick()
	assert.NoError(err)
	assert.True(done)
	assert.Equal(4, emu.Steps)

	// Ticking a halted machine is a no-op.
	done, err = emu.Tick()
	assert.NoError(err)
	assert.True(done)
	assert.Equal(4, emu.Steps)
}

func TestEmulator_Limit(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	emu.Program = &program.Program{
		Start: "a",
		Table: machine.Table{
			{From: "a", Read: '-', To: "a", Write: '1', Move: machine.RIGHT},
		},
	}
	emu.Limit = 5
	assert.NoError(emu.Reset())

	outcome, err := emu.Run()
	assert.Equal(ErrStepLimit, err)
	assert.Equal(machine.CONTINUED, outcome)
	assert.False(emu.Halted)
	assert.Equal(5, emu.Steps)
	assert.Equal("11111-", emu.Tape.String())
}

func TestEmulator_Strict(t *testing.T) {
	assert := assert.New(t)

	prog := &program.Program{
		Start: "a",
		Tape:  "0z",
		Table: machine.Table{
			{From: "a", Read: '0', To: "a", Write: '0', Move: machine.RIGHT},
		},
	}

	emu := NewEmulator()
	emu.Program = prog
	assert.NoError(emu.Reset())

	outcome, err := emu.Run()
	assert.NoError(err)
	assert.Equal(machine.HALTED_BY_MISSING_TRANSITION, outcome)

	emu.Strict = true
	assert.NoError(emu.Reset())

	outcome, err = emu.Run()
	assert.Equal(machine.HALTED_BY_MISSING_TRANSITION, outcome)
	assert.ErrorIs(err, machine.ErrNoInstruction)

	var runtime *ErrRuntime
	if assert.ErrorAs(err, &runtime) {
		assert.Equal(1, runtime.Step)
	}
	assert.Equal(f("step %d %v", 1, emu.Fault), err.Error())
}

func TestEmulator_Back(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	emu.Program = presets.BitFlipper()
	assert.NoError(emu.Reset())

	assert.ErrorIs(emu.Back(), machine.ErrHistoryEmpty)

	emu.Run()
	assert.NoError(emu.Back())
	assert.Equal(8, emu.Steps)
	assert.False(emu.Halted)
	assert.Equal("*010*", emu.Tape.String())
	assert.Equal(0, emu.Head())
	assert.Equal(machine.State("GoLeft"), emu.State)
}

func TestEmulator_Record(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	emu.Program = presets.Parity()
	assert.NoError(emu.Reset())

	rec := emu.Record()
	assert.Equal(Record{
		Run:     emu.ID,
		Program: "parity",
		State:   "even",
		Tape:    "101*",
		Outcome: "continued",
	}, rec)

	emu.Run()
	rec = emu.Record()
	assert.Equal(4, rec.Step)
	assert.True(rec.Halted)
	assert.Equal("halted", rec.Outcome)
	assert.Equal("even * -> Halt e C halt", rec.Instruction)

	data, err := json.Marshal(rec)
	assert.NoError(err)

	var decoded Record
	assert.NoError(json.Unmarshal(data, &decoded))
	assert.Equal(rec, decoded)
	assert.Contains(string(data), `"run":"`+emu.ID.String()+`"`)
}

func TestEmulator_Render(t *testing.T) {
	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)

	for name, prog := range presets.All() {
		emu := NewEmulator()
		emu.Program = prog
		if err := emu.Reset(); err != nil {
			t.Fatalf("%v: %v", name, err)
		}
		if _, err := emu.Run(); err != nil {
			t.Fatalf("%v: %v", name, err)
		}

		g.Assert(t, name, []byte(emu.Render()))
	}
}

func TestEmulator_RenderTrace(t *testing.T) {
	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)

	emu := NewEmulator()
	emu.Program = presets.Parity()
	if err := emu.Reset(); err != nil {
		t.Fatal(err)
	}

	frames := []string{emu.Render()}
	for {
		done, err := emu.Tick()
		if err != nil {
			t.Fatal(err)
		}
		frames = append(frames, emu.Render())
		if done {
			break
		}
	}

	g.Assert(t, "parity_trace", []byte(strings.Join(frames, "\n")))
}
