// Package config loads the TOML runtime configuration: server address,
// database location, per-bank statement passwords and user category rules.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/expensetrending/expensetrend/internal/categorize"
	"github.com/expensetrending/expensetrend/internal/models"
)

// Config is the top-level expensetrend.toml configuration.
type Config struct {
	ListenAddr    string                `toml:"listen_addr"`
	DBPath        string                `toml:"db_path"`
	StatementsDir string                `toml:"statements_dir"`
	Workers       int                   `toml:"workers"`
	Banks         map[string]BankConfig `toml:"banks"`
	Categories    []CategoryRule        `toml:"categories"`
}

// BankConfig holds per-bank settings. Card issuers usually password-protect
// emailed statement PDFs, so the password lives in config rather than being
// prompted per run.
type BankConfig struct {
	Password string `toml:"password"`
}

// CategoryRule is a user-defined keyword rule. User rules are evaluated
// before the built-in table, so they can override a default category for the
// same keyword.
type CategoryRule struct {
	Label    string   `toml:"label"`
	Keywords []string `toml:"keywords"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		ListenAddr:    ":8080",
		DBPath:        "expensetrend.db",
		StatementsDir: "statements",
	}
}

// Load reads a TOML config file. A missing file is not an error: defaults
// are returned so the tool works with zero setup.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %q: %w", path, err)
	}
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = Default().ListenAddr
	}
	if cfg.DBPath == "" {
		cfg.DBPath = Default().DBPath
	}
	return cfg, nil
}

// Password returns the statement password configured for a bank, or "".
func (c *Config) Password(bank models.Bank) string {
	if c == nil {
		return ""
	}
	return c.Banks[string(bank)].Password
}

// Categorizer builds the categorizer rule table: user rules first, built-in
// rules after.
func (c *Config) Categorizer() *categorize.Categorizer {
	if c == nil || len(c.Categories) == 0 {
		return categorize.Default()
	}
	rules := make([]categorize.Rule, 0, len(c.Categories))
	for _, r := range c.Categories {
		rules = append(rules, categorize.Rule{Label: r.Label, Keywords: r.Keywords})
	}
	return categorize.New(append(rules, categorize.DefaultRules()...))
}
