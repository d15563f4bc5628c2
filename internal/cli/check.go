package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ezrec/turing/emulator"
)

// CheckOptions holds flags for the check command.
type CheckOptions struct {
	*RootOptions
	Emit string // "" | "tm" | "yaml"
}

// CheckResult is the summary of a checked program.
type CheckResult struct {
	Name     string   `json:"name"`
	Start    string   `json:"start"`
	Rules    int      `json:"rules"`
	States   int      `json:"states"`
	Valid    bool     `json:"valid"`
	Error    string   `json:"error,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

// NewCheckCommand creates the check command.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CheckOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "check <file|preset:NAME>",
		Short: "Load and validate a program",
		Long: `Load and validate a program, reporting its size and any warnings.

With --emit, the program is written back out as assembler text (tm) or
YAML (yaml) instead.

Examples:
  turing check machine.cue
  turing check --emit tm preset:adder`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(opts, cmd, args[0])
		},
	}

	cmd.Flags().StringVar(&opts.Emit, "emit", "", "write the program as tm or yaml")

	return cmd
}

func runCheck(opts *CheckOptions, cmd *cobra.Command, name string) (err error) {
	emu := emulator.NewEmulator()
	emu.Verbose = opts.Verbose

	err = emu.Load(name)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load program", err)
	}

	prog := emu.Program
	out := cmd.OutOrStdout()

	switch opts.Emit {
	case "":
	case "tm":
		err = prog.Marshal(out)
	case "yaml":
		err = prog.WriteYAML(out)
	default:
		return NewExitError(ExitCommandError, fmt.Sprintf("invalid emit %q: must be tm or yaml", opts.Emit))
	}
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to write output", err)
	}

	invalid := prog.Validate()

	if len(opts.Emit) == 0 {
		result := CheckResult{
			Name:   prog.Name,
			Start:  string(prog.Start),
			Rules:  len(prog.Table),
			States: len(prog.Table.States()),
			Valid:  invalid == nil,
		}
		if invalid != nil {
			result.Error = invalid.Error()
		}
		for _, warning := range prog.Warnings() {
			result.Warnings = append(result.Warnings, warning.Error())
		}

		if opts.Format == "json" {
			err = writeJSON(out, result)
		} else {
			err = writeCheck(cmd, result)
		}
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to write output", err)
		}
	}

	if invalid != nil {
		return WrapExitError(ExitFailure, "invalid program", invalid)
	}

	return nil
}

func writeCheck(cmd *cobra.Command, result CheckResult) (err error) {
	out := cmd.OutOrStdout()

	_, err = fmt.Fprintf(out, "%v: %d rules, %d states, start %v\n",
		result.Name, result.Rules, result.States, result.Start)
	if err != nil {
		return
	}

	for _, warning := range result.Warnings {
		_, err = fmt.Fprintf(out, "warning: %v\n", warning)
		if err != nil {
			return
		}
	}

	if result.Valid {
		_, err = fmt.Fprintln(out, "ok")
	} else {
		_, err = fmt.Fprintf(out, "invalid: %v\n", result.Error)
	}

	return
}
