package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/etnz/holdings/logging"
	"github.com/pelletier/go-toml/v2"
)

// Environment variables read by pcs, and passed to its extensions.
const (
	EnvLedgerFile      = "PCS_LEDGER_FILE"
	EnvDefaultCurrency = "PCS_DEFAULT_CURRENCY"
	EnvVerbose         = "PCS_VERBOSE"
	EnvEODHDAPIKey     = "EODHD_API_KEY"
)

const (
	defaultLedger       = "ledger.jsonl"
	defaultConfig       = "pcs.toml"
	defaultCurrencyCode = "USD"
)

// Config is the resolved configuration of pcs.
//
// Each value comes from, by decreasing priority: the command line flags, the
// environment (and .env file), the TOML config file, the defaults.
type Config struct {
	Ledger      string    `toml:"ledger"`
	Currency    string    `toml:"currency"`
	EODHDAPIKey string    `toml:"eodhd_api_key"`
	QuoteURL    string    `toml:"quote_url"`
	CacheDir    string    `toml:"cache_dir"` // CacheDir holds the daily HTTP cache, the temp dir if empty.
	Verbose     bool      `toml:"verbose"`
	Log         LogConfig `toml:"log"`
}

// LogConfig is the [log] section of the config file.
type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

func defaultSettings() Config {
	return Config{
		Ledger:   defaultLedger,
		Currency: defaultCurrencyCode,
		Log:      LogConfig{Level: "warn"},
	}
}

// flagConfig returns the values set on the command line.
func flagConfig() Config {
	return Config{
		Ledger:      *ledgerFile,
		Currency:    *defaultCurrency,
		EODHDAPIKey: *eodhdAPIKey,
		Verbose:     *Verbose,
	}
}

// resolveConfig merges the config file at path, the environment read with
// getenv, and flags over the defaults. A missing config file is ignored.
func resolveConfig(path string, getenv func(string) string, flags Config) (Config, error) {
	cfg := defaultSettings()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return cfg, fmt.Errorf("reading config %q: %w", path, err)
		default:
			var file Config
			if err := toml.Unmarshal(data, &file); err != nil {
				return cfg, fmt.Errorf("parsing config %q: %w", path, err)
			}
			cfg = merge(cfg, file)
		}
	}

	env := Config{
		Ledger:      getenv(EnvLedgerFile),
		Currency:    getenv(EnvDefaultCurrency),
		EODHDAPIKey: getenv(EnvEODHDAPIKey),
	}
	env.Verbose, _ = strconv.ParseBool(getenv(EnvVerbose))
	cfg = merge(cfg, env)

	return merge(cfg, flags), nil
}

// merge returns base with every non zero value of over.
func merge(base, over Config) Config {
	set := func(dst *string, src string) {
		if src != "" {
			*dst = src
		}
	}
	set(&base.Ledger, over.Ledger)
	set(&base.Currency, over.Currency)
	set(&base.EODHDAPIKey, over.EODHDAPIKey)
	set(&base.QuoteURL, over.QuoteURL)
	set(&base.CacheDir, over.CacheDir)
	set(&base.Log.Level, over.Log.Level)
	set(&base.Log.File, over.Log.File)
	base.Verbose = base.Verbose || over.Verbose
	return base
}

// logging returns the logger configuration.
func (c Config) logging() logging.Config {
	cfg := logging.DefaultConfig()
	cfg.Level = c.Log.Level
	if c.Verbose {
		cfg.Level = "debug"
	}
	cfg.FilePath = c.Log.File
	return cfg
}
