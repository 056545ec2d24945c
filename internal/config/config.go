// Package config defines the project configuration shared by the CLI and
// the server.
package config

// Defaults applied when neither config file, environment, nor flags set a
// value.
const (
	DefaultHost       = "localhost"
	DefaultPort       = 5789
	DefaultStatePath  = ".mage_ai/store.db"
	DefaultSyncURL    = "https://api.mage.ai"
	DefaultOutputMode = "table"
)

// Config holds the resolved configuration.
type Config struct {
	Host         string `koanf:"host"`
	Port         int    `koanf:"port"`
	StatePath    string `koanf:"state_path"`
	APIKey       string `koanf:"api_key"`
	SyncURL      string `koanf:"sync_url"`
	Verbose      bool   `koanf:"verbose"`
	OutputFormat string `koanf:"output"`
}

// ApplyDefaults fills unset fields with the package defaults.
func (c *Config) ApplyDefaults() {
	if c.Host == "" {
		c.Host = DefaultHost
	}
	if c.Port == 0 {
		c.Port = DefaultPort
	}
	if c.StatePath == "" {
		c.StatePath = DefaultStatePath
	}
	if c.SyncURL == "" {
		c.SyncURL = DefaultSyncURL
	}
	if c.OutputFormat == "" {
		c.OutputFormat = DefaultOutputMode
	}
}
