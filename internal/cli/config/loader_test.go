package config

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	intconfig "github.com/thunderstroke325/mage-ai/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, intconfig.DefaultHost, cfg.Host)
	assert.Equal(t, intconfig.DefaultPort, cfg.Port)
	assert.Equal(t, intconfig.DefaultStatePath, cfg.StatePath)
	assert.Equal(t, intconfig.DefaultSyncURL, cfg.SyncURL)
	assert.Equal(t, intconfig.DefaultOutputMode, cfg.OutputFormat)
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mage.yaml")
	require.NoError(t, os.WriteFile(path, []byte("port: 9000\nhost: 0.0.0.0\n"), 0o644))

	cfg, err := Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, "0.0.0.0", cfg.Host)
	assert.Equal(t, intconfig.DefaultStatePath, cfg.StatePath)
	assert.Equal(t, path, GetConfigFileUsed())
}

func TestLoadEnvironmentOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mage.yaml")
	require.NoError(t, os.WriteFile(path, []byte("port: 9000\n"), 0o644))

	t.Setenv("MAGE_PORT", "9100")
	t.Setenv("MAGE_API_KEY", "from-env")

	cfg, err := Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, 9100, cfg.Port)
	assert.Equal(t, "from-env", cfg.APIKey)
}

func TestLoadFlagsOverrideEverything(t *testing.T) {
	t.Setenv("MAGE_PORT", "9100")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Int("port", 0, "")
	flags.String("output", "", "")
	require.NoError(t, flags.Parse([]string{"--port", "9200", "--output", "json"}))

	cfg, err := Load("", flags)
	require.NoError(t, err)

	assert.Equal(t, 9200, cfg.Port)
	assert.Equal(t, "json", cfg.OutputFormat)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), nil)
	require.Error(t, err)
}

func TestGetCurrentConfig(t *testing.T) {
	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Same(t, cfg, GetCurrentConfig())
}

func TestLoggerContext(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx := WithLogger(context.Background(), logger)
	assert.Same(t, logger, GetLogger(ctx))

	// A bare context still yields a usable logger.
	assert.NotNil(t, GetLogger(context.Background()))
}
