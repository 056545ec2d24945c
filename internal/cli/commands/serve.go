package commands

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/thunderstroke325/mage-ai/internal/server"
	syncclient "github.com/thunderstroke325/mage-ai/internal/sync"
)

// NewServeCommand creates the serve command.
func NewServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the feature-set and pipeline HTTP server",
		Long: `Start the HTTP API backed by the local SQLite store. Feature sets are
profiled and cleaned on demand; pipeline updates replay against the
original data and are versioned. With an API key configured, pipeline
updates are also pushed to the remote backend.`,
		Example: `  # Serve on the default port
  mage serve

  # Serve with remote sync enabled
  MAGE_API_KEY=secret mage serve --port 8080`,
		Args: cobra.NoArgs,
		RunE: runServe,
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	cc, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := server.NewServer(server.Config{
		Store:  cc.Store,
		Sync:   syncclient.New(cc.Cfg.SyncURL, cc.Logger),
		APIKey: cc.Cfg.APIKey,
		Host:   cc.Cfg.Host,
		Port:   cc.Cfg.Port,
		Logger: cc.Logger,
	})
	return srv.Serve(ctx)
}
