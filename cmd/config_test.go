package cmd

import (
	"os"
	"path/filepath"
	"testing"
)

func TestResolveConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pcs.toml")
	content := `ledger = "from-toml.jsonl"
currency = "EUR"
eodhd_api_key = "toml-key"
quote_url = "http://localhost:8080"

[log]
level = "info"
file = "pcs.log"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	env := map[string]string{
		EnvEODHDAPIKey: "env-key",
		EnvLedgerFile:  "from-env.jsonl",
	}
	getenv := func(k string) string { return env[k] }

	tests := []struct {
		name  string
		path  string
		flags Config
		want  Config
	}{
		{
			name: "defaults",
			path: filepath.Join(dir, "missing.toml"),
			want: Config{Ledger: "from-env.jsonl", Currency: "USD", EODHDAPIKey: "env-key", Log: LogConfig{Level: "warn"}},
		},
		{
			name: "toml under env",
			path: path,
			want: Config{
				Ledger: "from-env.jsonl", Currency: "EUR", EODHDAPIKey: "env-key",
				QuoteURL: "http://localhost:8080", Log: LogConfig{Level: "info", File: "pcs.log"},
			},
		},
		{
			name:  "flags first",
			path:  path,
			flags: Config{Ledger: "from-flag.db", Currency: "GBP", Verbose: true},
			want: Config{
				Ledger: "from-flag.db", Currency: "GBP", EODHDAPIKey: "env-key", Verbose: true,
				QuoteURL: "http://localhost:8080", Log: LogConfig{Level: "info", File: "pcs.log"},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolveConfig(tt.path, getenv, tt.flags)
			if err != nil {
				t.Fatalf("resolveConfig() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("resolveConfig() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestResolveConfig_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pcs.toml")
	if err := os.WriteFile(path, []byte("ledger = \n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := resolveConfig(path, func(string) string { return "" }, Config{}); err == nil {
		t.Error("resolveConfig() accepted an invalid file")
	}
}

func TestConfig_Logging(t *testing.T) {
	cfg := Config{Log: LogConfig{Level: "error", File: "pcs.log"}}
	if got := cfg.logging(); got.Level != "error" || got.FilePath != "pcs.log" {
		t.Errorf("logging() = %+v", got)
	}
	cfg.Verbose = true
	if got := cfg.logging(); got.Level != "debug" {
		t.Errorf("verbose logging() level = %q, want debug", got.Level)
	}
}
