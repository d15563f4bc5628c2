package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewTraceCommand creates the trace command.
func NewTraceCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "trace <file|preset:NAME>",
		Short: "Print the machine after every step",
		Long: `Run a program, printing the machine before the first step and after
every step. With --format json, one record is written per line.

Examples:
  turing trace preset:flipper
  turing trace --format json --limit 50 machine.cue`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTrace(opts, cmd, args[0])
		},
	}

	addRunFlags(cmd, opts)

	return cmd
}

func runTrace(opts *RunOptions, cmd *cobra.Command, name string) error {
	emu, err := newEmulator(opts, cmd, name)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	frame := func() error {
		if opts.Format == "json" {
			return writeJSON(out, emu.Record())
		}
		_, err := fmt.Fprint(out, emu.Render())
		return err
	}

	err = frame()
	for err == nil {
		var done bool
		done, err = emu.Tick()
		if err != nil {
			return runError(err)
		}

		if opts.Format != "json" {
			_, err = fmt.Fprintln(out)
			if err != nil {
				break
			}
		}
		err = frame()
		if done {
			break
		}
	}

	if err != nil {
		return WrapExitError(ExitCommandError, "failed to write output", err)
	}

	return saveTape(opts, emu)
}
