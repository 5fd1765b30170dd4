package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]zerolog.Level{
		"debug":   zerolog.DebugLevel,
		"INFO":    zerolog.InfoLevel,
		" warn ":  zerolog.WarnLevel,
		"warning": zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"verbose": zerolog.InfoLevel,
		"":        zerolog.InfoLevel,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestNew_ConsoleLevel(t *testing.T) {
	var buf bytes.Buffer
	log := newLogger(Config{Level: "warn", Console: true, NoColor: true}, &buf)

	log.Info().Msg("hidden")
	clog := Component(log, "quote")
	clog.Warn().Str("ticker", "AAPL").Msg("no quote")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info message logged at warn level:\n%s", out)
	}
	for _, want := range []string{"no quote", "component=quote", "ticker=AAPL"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output %q does not contain %q", out, want)
		}
	}
}

func TestNew_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "pcs.log")
	log := newLogger(Config{Level: "debug", FilePath: path, MaxSize: 1}, nil)
	log.Debug().Msg("written to file")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("log file was not created: %v", err)
	}
	if !bytes.Contains(data, []byte(`"message":"written to file"`)) {
		t.Errorf("log file = %s", data)
	}
}

func TestNew_Disabled(t *testing.T) {
	log := newLogger(Config{}, nil)
	if log.GetLevel() != zerolog.Disabled {
		t.Errorf("logger without writers has level %v, want disabled", log.GetLevel())
	}
}
