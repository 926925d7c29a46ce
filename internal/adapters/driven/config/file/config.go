package file

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Config holds all tool settings. Airtable credentials are only needed by
// the export command; everything else operates on local files.
type Config struct {
	Airtable AirtableConfig `toml:"airtable"`
	Paths    PathsConfig    `toml:"paths"`
}

// AirtableConfig holds credentials and identifiers for the source base.
type AirtableConfig struct {
	// APIBase overrides the API root; empty means the public endpoint.
	APIBase string `toml:"api_base"`
	APIKey  string `toml:"api_key"`
	BaseID  string `toml:"base_id"`
	TableID string `toml:"table_id"`
}

// PathsConfig holds file locations used by the commands.
type PathsConfig struct {
	// ExportFile is where the export command writes the JSON dump and
	// where migrate/dump/inspect read it from.
	ExportFile string `toml:"export_file"`
	// DataDir holds the SQLite database used by the migrate command.
	DataDir string `toml:"data_dir"`
	// SQLOutput is where the dump command writes the generated SQL.
	SQLOutput string `toml:"sql_output"`
}

// DefaultPath returns the default config file location, ~/.dealflow/config.toml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".dealflow", "config.toml"), nil
}

// Load reads configuration from path. A missing file yields the defaults;
// a malformed file is an error.
func Load(path string) (*Config, error) {
	cfg := defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	cfg.applyDefaults()

	return cfg, nil
}

// Save writes the configuration to path, creating the directory if needed.
// The file is written with restricted permissions since it may hold an API key.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	return os.WriteFile(path, data, 0600)
}

func defaults() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Paths.ExportFile == "" {
		c.Paths.ExportFile = "pipeline_output.json"
	}
	if c.Paths.SQLOutput == "" {
		c.Paths.SQLOutput = "pipeline_dump.sql"
	}
	if c.Paths.DataDir == "" {
		if home, err := os.UserHomeDir(); err == nil {
			c.Paths.DataDir = filepath.Join(home, ".dealflow", "data")
		}
	}
}
