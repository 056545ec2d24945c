package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thunderstroke325/mage-ai/pkg/transformer"
)

// ApplyOptions holds options for the apply command.
type ApplyOptions struct {
	Out     string
	Preview int
}

// NewApplyCommand creates the apply command.
func NewApplyCommand() *cobra.Command {
	opts := &ApplyOptions{}

	cmd := &cobra.Command{
		Use:   "apply <file.csv> <actions.json>",
		Short: "Replay a recorded action list over a dataset",
		Long: `Load an action list saved by "mage clean --actions" (or exported from
the server) and replay it against a CSV file. Actions that reference
columns the file does not have fail before anything is transformed.`,
		Example: `  # Replay a recorded pipeline over fresh data
  mage apply new_users.csv pipeline.json --out new_users_clean.csv`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApply(cmd, args[0], args[1], opts)
		},
	}

	cmd.Flags().StringVar(&opts.Out, "out", "", "Write the transformed dataset to this CSV file")
	cmd.Flags().IntVar(&opts.Preview, "preview", 10, "Number of data rows to preview (0 to disable)")

	return cmd
}

func runApply(cmd *cobra.Command, dataPath, actionsPath string, opts *ApplyOptions) error {
	cc := NewCommandContextWithoutStore(cmd)

	f, err := readFrame(dataPath)
	if err != nil {
		return err
	}
	actions, err := transformer.LoadActions(actionsPath)
	if err != nil {
		return err
	}

	transformed, err := transformer.Transform(f, actions, false)
	if err != nil {
		return err
	}

	if opts.Out != "" {
		if err := writeFrame(transformed, opts.Out); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote transformed data to %s\n", opts.Out)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Applied %d actions\n", len(actions))
	if opts.Preview > 0 {
		cc.Renderer.Frame(transformed, opts.Preview)
	}
	return nil
}
