package commands

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"

	cliconfig "github.com/thunderstroke325/mage-ai/internal/cli/config"
	intconfig "github.com/thunderstroke325/mage-ai/internal/config"
)

func TestNewCommandContextWithoutStoreUsesContextLogger(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cmd := &cobra.Command{}
	cmd.SetContext(cliconfig.WithLogger(context.Background(), logger))

	cc := NewCommandContextWithoutStore(cmd)
	assert.Same(t, logger, cc.Logger)
	assert.NotNil(t, cc.Cfg)
	assert.NotNil(t, cc.Renderer)
}

func TestGetConfigEnvFallback(t *testing.T) {
	t.Setenv("MAGE_HOST", "envhost")
	t.Setenv("MAGE_API_KEY", "envkey")

	cfg := getConfig()
	assert.Equal(t, "envhost", cfg.Host)
	assert.Equal(t, "envkey", cfg.APIKey)
	assert.Equal(t, intconfig.DefaultPort, cfg.Port)
	assert.Equal(t, intconfig.DefaultOutputMode, cfg.OutputFormat)
}
