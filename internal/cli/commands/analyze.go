package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/thunderstroke325/mage-ai/internal/analysis"
	"github.com/thunderstroke325/mage-ai/pkg/frame"
)

// AnalyzeOptions holds options for the analyze command.
type AnalyzeOptions struct {
	Preview int
}

// NewAnalyzeCommand creates the analyze command.
func NewAnalyzeCommand() *cobra.Command {
	opts := &AnalyzeOptions{}

	cmd := &cobra.Command{
		Use:   "analyze <file.csv>",
		Short: "Profile a dataset and suggest cleaning actions",
		Long: `Infer column types, compute per-column statistics, and evaluate the
cleaning rules against a CSV file. Nothing is transformed; the output is
the profile plus the suggested actions.`,
		Example: `  # Profile a CSV and list suggestions
  mage analyze users.csv

  # Same, as JSON
  mage analyze users.csv -o json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, args[0], opts)
		},
	}

	cmd.Flags().IntVar(&opts.Preview, "preview", 10, "Number of data rows to preview (0 to disable)")

	return cmd
}

func runAnalyze(cmd *cobra.Command, path string, opts *AnalyzeOptions) error {
	cc := NewCommandContextWithoutStore(cmd)

	f, err := readFrame(path)
	if err != nil {
		return err
	}

	result, err := analysis.Analyze(f, nil)
	if err != nil {
		return err
	}
	return cc.Renderer.Result(result, opts.Preview)
}

func readFrame(path string) (*frame.Frame, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	f, err := frame.ReadCSV(file)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return f, nil
}

func writeFrame(f *frame.Frame, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	if err := f.WriteCSV(file); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
