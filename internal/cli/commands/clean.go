package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thunderstroke325/mage-ai/internal/analysis"
	"github.com/thunderstroke325/mage-ai/pkg/transformer"
)

// CleanOptions holds options for the clean command.
type CleanOptions struct {
	Out     string
	Actions string
	Preview int
}

// NewCleanCommand creates the clean command.
func NewCleanCommand() *cobra.Command {
	opts := &CleanOptions{}

	cmd := &cobra.Command{
		Use:   "clean <file.csv>",
		Short: "Clean a dataset by applying every suggested action",
		Long: `Profile a CSV file, apply all suggested cleaning actions, and re-profile
the result. Use --out to write the cleaned data and --actions to record
the applied action list for later replay.`,
		Example: `  # Clean in place of a dry run, previewing the result
  mage clean users.csv

  # Write the cleaned data and the applied actions
  mage clean users.csv --out users_clean.csv --actions pipeline.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClean(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.Out, "out", "", "Write the cleaned dataset to this CSV file")
	cmd.Flags().StringVar(&opts.Actions, "actions", "", "Write the applied actions to this file (.json or .yaml)")
	cmd.Flags().IntVar(&opts.Preview, "preview", 10, "Number of data rows to preview (0 to disable)")

	return cmd
}

func runClean(cmd *cobra.Command, path string, opts *CleanOptions) error {
	cc := NewCommandContextWithoutStore(cmd)

	f, err := readFrame(path)
	if err != nil {
		return err
	}

	result, err := analysis.Clean(f, nil)
	if err != nil {
		return err
	}

	if opts.Out != "" {
		if err := writeFrame(result.Frame, opts.Out); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote cleaned data to %s\n", opts.Out)
	}
	if opts.Actions != "" {
		if err := transformer.SaveActions(opts.Actions, result.Actions); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d actions to %s\n", len(result.Actions), opts.Actions)
	}

	return cc.Renderer.Result(result, opts.Preview)
}
