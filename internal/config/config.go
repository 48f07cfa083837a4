package config

import (
	"fmt"
	"os"

	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Journal struct {
		SQLitePath  string `yaml:"sqlite_path"`
		SummaryCron string `yaml:"summary_cron"`
	} `yaml:"journal"`
	Export struct {
		Dir string `yaml:"dir"`
	} `yaml:"export"`
	Log struct {
		File string `yaml:"file"`
	} `yaml:"log"`
}

// SummaryParser parses summary_cron specs. The leading seconds field matches
// the scheduler created by the session package.
var SummaryParser = cron.NewParser(
	cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// Load reads config from a YAML file, then applies environment variable overrides.
// A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("SPINLEDGER_JOURNAL_PATH"); v != "" {
		cfg.Journal.SQLitePath = v
	}
	if v := os.Getenv("SPINLEDGER_SUMMARY_CRON"); v != "" {
		cfg.Journal.SummaryCron = v
	}
	if v := os.Getenv("SPINLEDGER_EXPORT_DIR"); v != "" {
		cfg.Export.Dir = v
	}
	if v := os.Getenv("SPINLEDGER_LOG_FILE"); v != "" {
		cfg.Log.File = v
	}

	// Defaults. An empty sqlite_path keeps the journal disabled.
	if cfg.Journal.SummaryCron == "" {
		cfg.Journal.SummaryCron = "0 */5 * * * *"
	}
	if cfg.Export.Dir == "" {
		cfg.Export.Dir = "exports"
	}
	if cfg.Log.File == "" {
		cfg.Log.File = "spinledger.log"
	}

	return cfg, nil
}

// Validate checks that all fields hold usable values.
func (c *Config) Validate() error {
	if _, err := SummaryParser.Parse(c.Journal.SummaryCron); err != nil {
		return fmt.Errorf("journal.summary_cron: %w", err)
	}
	if c.Export.Dir == "" {
		return fmt.Errorf("export.dir is required")
	}
	if c.Log.File == "" {
		return fmt.Errorf("log.file is required")
	}
	return nil
}
