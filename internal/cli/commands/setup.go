package commands

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	cliconfig "github.com/thunderstroke325/mage-ai/internal/cli/config"
	"github.com/thunderstroke325/mage-ai/internal/cli/output"
	"github.com/thunderstroke325/mage-ai/internal/config"
	"github.com/thunderstroke325/mage-ai/internal/store"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Store    *store.Store
	Renderer *output.Renderer
}

// NewCommandContext creates a CommandContext with an opened store.
// Returns the context and a cleanup function that must be called
// (typically via defer).
func NewCommandContext(cmd *cobra.Command) (*CommandContext, func(), error) {
	cc := NewCommandContextWithoutStore(cmd)

	st, err := openStore(cc.Cfg.StatePath)
	if err != nil {
		return nil, nil, err
	}
	cc.Store = st

	cleanup := func() {
		_ = st.Close()
	}
	return cc, cleanup, nil
}

// NewCommandContextWithoutStore creates a CommandContext without opening
// the state database. Useful for commands that only read files.
func NewCommandContextWithoutStore(cmd *cobra.Command) *CommandContext {
	cfg := getConfig()
	logger := cliconfig.GetLogger(cmd.Context())
	mode := output.Mode(cfg.OutputFormat)
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode)

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Renderer: r,
	}
}

// getConfig returns the current configuration, falling back to
// environment variables when the root command has not loaded one.
func getConfig() *config.Config {
	if cfg := cliconfig.GetCurrentConfig(); cfg != nil {
		return cfg
	}

	cfg := &config.Config{
		Host:         os.Getenv("MAGE_HOST"),
		StatePath:    os.Getenv("MAGE_STATE_PATH"),
		APIKey:       os.Getenv("MAGE_API_KEY"),
		SyncURL:      os.Getenv("MAGE_SYNC_URL"),
		Verbose:      os.Getenv("MAGE_VERBOSE") == "true",
		OutputFormat: os.Getenv("MAGE_OUTPUT"),
	}
	cfg.ApplyDefaults()
	return cfg
}

func openStore(statePath string) (*store.Store, error) {
	stateDir := filepath.Dir(statePath)
	if stateDir != "." && stateDir != "" {
		if err := os.MkdirAll(stateDir, 0750); err != nil {
			return nil, err
		}
	}

	st := store.NewStore()
	if err := st.Open(statePath); err != nil {
		return nil, err
	}
	if err := st.InitSchema(); err != nil {
		_ = st.Close()
		return nil, err
	}
	return st, nil
}
