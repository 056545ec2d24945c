package commands

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thunderstroke325/mage-ai/internal/analysis"
)

// ImportOptions holds options for the import command.
type ImportOptions struct {
	Name string
}

// NewImportCommand creates the import command.
func NewImportCommand() *cobra.Command {
	opts := &ImportOptions{}

	cmd := &cobra.Command{
		Use:   "import <file.csv>",
		Short: "Import a CSV file into the local store as a feature set",
		Long: `Load a CSV file, profile it, and store it as a feature set with an
empty pipeline attached. The server then exposes it under
/feature_sets/{id}.`,
		Example: `  # Import under the file's base name
  mage import users.csv

  # Import under an explicit name
  mage import users.csv --name "Signup Users"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.Name, "name", "", "Feature set name (default: the file's base name)")

	return cmd
}

func runImport(cmd *cobra.Command, path string, opts *ImportOptions) error {
	cc, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	f, err := readFrame(path)
	if err != nil {
		return err
	}

	name := opts.Name
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	fs, err := cc.Store.CreateFeatureSet(name, f)
	if err != nil {
		return err
	}

	result, err := analysis.Analyze(f, nil)
	if err != nil {
		return err
	}
	fs.Metadata["column_types"] = result.ColumnTypes
	fs.Statistics = result.Statistics
	fs.Suggestions = result.Suggestions
	if err := cc.Store.UpdateFeatureSet(fs); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Imported %s as feature set %s (%d rows, %d columns)\n",
		path, fs.ID, f.NumRows(), f.NumColumns())
	return nil
}
