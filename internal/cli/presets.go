package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ezrec/turing/emulator"
	"github.com/ezrec/turing/presets"
)

// PresetInfo describes a built in program.
type PresetInfo struct {
	Name  string `json:"name"`
	Start string `json:"start"`
	Tape  string `json:"tape"`
	Rules int    `json:"rules"`
}

// NewPresetsCommand creates the presets command.
func NewPresetsCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "presets",
		Short: "List the built in programs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPresets(rootOpts, cmd)
		},
	}

	return cmd
}

func runPresets(opts *RootOptions, cmd *cobra.Command) (err error) {
	var infos []PresetInfo
	for name, prog := range presets.All() {
		infos = append(infos, PresetInfo{
			Name:  name,
			Start: string(prog.Start),
			Tape:  prog.Tape,
			Rules: len(prog.Table),
		})
	}

	out := cmd.OutOrStdout()
	if opts.Format == "json" {
		err = writeJSON(out, infos)
	} else {
		for _, info := range infos {
			_, err = fmt.Fprintf(out, "%v%-10v %2d rules  tape %v\n",
				emulator.PRESET_PREFIX, info.Name, info.Rules, info.Tape)
			if err != nil {
				break
			}
		}
	}
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to write output", err)
	}

	return
}
