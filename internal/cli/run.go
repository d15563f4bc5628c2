package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/ezrec/turing/emulator"
	"github.com/ezrec/turing/machine"
	"github.com/ezrec/turing/tape"
)

// RunOptions holds flags for the run and trace commands.
type RunOptions struct {
	*RootOptions
	Limit    int
	Strict   bool
	Tape     string
	TapeFile string // "-" for stdin
	SaveTape string
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run <file|preset:NAME>",
		Short: "Run a program until it halts",
		Long: `Run a program until it halts, then print the final machine.

Examples:
  turing run preset:parity
  turing run --tape '*1111+11=' preset:adder
  turing run --limit 1000 --strict machine.tm
  turing run --tape-file input.txt --save-tape output.txt preset:flipper
  turing run --format json machine.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRun(opts, cmd, args[0])
		},
	}

	addRunFlags(cmd, opts)

	return cmd
}

func addRunFlags(cmd *cobra.Command, opts *RunOptions) {
	cmd.Flags().IntVar(&opts.Limit, "limit", emulator.DEFAULT_LIMIT, "maximum steps, 0 for no limit")
	cmd.Flags().BoolVar(&opts.Strict, "strict", false, "treat a missing transition as a failure")
	cmd.Flags().StringVar(&opts.Tape, "tape", "", "replace the initial tape")
	cmd.Flags().StringVar(&opts.TapeFile, "tape-file", "", "read the initial tape from a file (- for stdin)")
	cmd.Flags().StringVar(&opts.SaveTape, "save-tape", "", "write the final tape to a file")
	cmd.MarkFlagsMutuallyExclusive("tape", "tape-file")
}

// readTape reads an initial tape, one cell per rune.
func readTape(cmd *cobra.Command, path string, blank tape.Symbol) (text string, err error) {
	var inf io.Reader
	if path == "-" {
		inf = cmd.InOrStdin()
	} else {
		var file *os.File
		file, err = os.Open(path)
		if err != nil {
			return
		}
		defer file.Close()
		inf = file
	}

	tp := tape.New(nil, blank)
	err = tp.Unmarshal(inf)
	if err != nil {
		return
	}

	text = tp.String()
	return
}

// saveTape writes the final tape of a run, if requested.
func saveTape(opts *RunOptions, emu *emulator.Emulator) (err error) {
	if len(opts.SaveTape) == 0 {
		return
	}

	ouf, err := os.Create(opts.SaveTape)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to save tape", err)
	}
	defer ouf.Close()

	err = emu.Tape.Marshal(ouf)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to save tape", err)
	}

	slog.Debug("tape saved", "path", opts.SaveTape, "cells", emu.Tape.Len())

	return
}

// newEmulator loads and resets an emulator for a program name.
func newEmulator(opts *RunOptions, cmd *cobra.Command, name string) (emu *emulator.Emulator, err error) {
	emu = emulator.NewEmulator()
	emu.Verbose = opts.Verbose
	emu.Limit = opts.Limit
	emu.Strict = opts.Strict

	err = emu.Load(name)
	if err != nil {
		err = WrapExitError(ExitCommandError, "failed to load program", err)
		return
	}

	if len(opts.Tape) != 0 {
		emu.Program.Tape = opts.Tape
	}

	if len(opts.TapeFile) != 0 {
		emu.Program.Tape, err = readTape(cmd, opts.TapeFile, emu.Program.Blank)
		if err != nil {
			err = WrapExitError(ExitCommandError, "failed to read tape", err)
			return
		}
	}

	for _, warning := range emu.Program.Warnings() {
		slog.Warn("program", "name", emu.Program.Name, "warning", warning)
	}

	err = emu.Reset()
	if err != nil {
		err = WrapExitError(ExitCommandError, "failed to start program", err)
		return
	}

	slog.Debug("run", "program", emu.Program.Name, "id", emu.ID, "limit", emu.Limit)

	return
}

// runError maps an emulator run error to an exit error.
func runError(err error) error {
	if err == nil {
		return nil
	}

	var runtime *emulator.ErrRuntime
	switch {
	case errors.Is(err, emulator.ErrStepLimit):
		return WrapExitError(ExitFailure, "machine did not halt", err)
	case errors.As(err, &runtime):
		return WrapExitError(ExitFailure, "machine stuck", err)
	}

	return WrapExitError(ExitCommandError, "run failed", err)
}

func runRun(opts *RunOptions, cmd *cobra.Command, name string) error {
	emu, err := newEmulator(opts, cmd, name)
	if err != nil {
		return err
	}

	outcome, runErr := emu.Run()

	slog.Debug("run done", "program", emu.Program.Name, "outcome", outcome, "steps", emu.Steps)

	out := cmd.OutOrStdout()
	if opts.Format == "json" {
		err = writeJSON(out, emu.Record())
	} else {
		_, err = fmt.Fprint(out, emu.Render())
		if err == nil && outcome == machine.HALTED_BY_MISSING_TRANSITION {
			_, err = fmt.Fprintf(out, "outcome = %v (%v)\n", outcome, emu.Fault)
		}
	}
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to write output", err)
	}

	err = saveTape(opts, emu)
	if err != nil {
		return err
	}

	return runError(runErr)
}
