package config

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/simp-lee/logger"
)

func boolPtr(b bool) *bool { return &b }

// captureLogger builds the application logger from cfg with console output
// redirected to the returned buffer.
func captureLogger(t *testing.T, cfg *LogConfig) (*logger.Logger, *bytes.Buffer) {
	t.Helper()
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	log, err := SetupLogger(cfg, logger.WithConsoleWriter(&buf), logger.WithConsoleColor(false))
	if err != nil {
		t.Fatalf("SetupLogger error: %v", err)
	}
	t.Cleanup(func() { _ = log.Close() })
	return log, &buf
}

func TestSetupLogger_LevelGatesServiceLogs(t *testing.T) {
	tests := []struct {
		level       string
		wantListing bool
		wantSQL     bool
	}{
		{"debug", true, true},
		{"info", true, false},
		{"warn", false, false},
		{"", true, false},
	}
	for _, tt := range tests {
		t.Run("level="+tt.level, func(t *testing.T) {
			_, buf := captureLogger(t, &LogConfig{Level: tt.level, Format: "text"})

			slog.Info("listing users", "page", 0, "size", 10)
			slog.Debug("SELECT count(*) FROM users")

			out := buf.String()
			if got := strings.Contains(out, "listing users"); got != tt.wantListing {
				t.Errorf("info entry logged = %v, want %v:\n%s", got, tt.wantListing, out)
			}
			if got := strings.Contains(out, "SELECT count(*)"); got != tt.wantSQL {
				t.Errorf("debug entry logged = %v, want %v:\n%s", got, tt.wantSQL, out)
			}
		})
	}
}

func TestSetupLogger_CarriesRequestIDFromContext(t *testing.T) {
	for _, format := range []string{"text", "json"} {
		t.Run(format, func(t *testing.T) {
			_, buf := captureLogger(t, &LogConfig{Level: "info", Format: format})

			ctx := logger.WithContextAttrs(context.Background(), slog.String("request_id", "req-42"))
			slog.InfoContext(ctx, "listing users")

			out := buf.String()
			if !strings.Contains(out, "req-42") {
				t.Errorf("expected request_id in output, got:\n%s", out)
			}
			if format == "json" && !strings.Contains(out, `"request_id"`) {
				t.Errorf("expected quoted request_id key in json output, got:\n%s", out)
			}
		})
	}
}

func TestSetupLogger_InstallsDefault(t *testing.T) {
	log, _ := captureLogger(t, &LogConfig{Level: "warn", Format: "text"})

	if slog.Default().Handler() != log.Handler() {
		t.Error("SetupLogger did not install the logger as slog default")
	}
}

func TestSetupLogger_WritesLogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "userpage.log")
	log, _ := captureLogger(t, &LogConfig{
		Level:         "info",
		Format:        "json",
		FilePath:      path,
		MaxSizeMB:     5,
		RetentionDays: 7,
		MaxBackups:    2,
	})

	log.Info("users retrieved", "total", 25)
	if err := log.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), "users retrieved") {
		t.Errorf("log file missing entry:\n%s", data)
	}
}

func TestSetupLogger_NilConfig(t *testing.T) {
	if _, err := SetupLogger(nil); err == nil {
		t.Fatal("SetupLogger(nil) expected error, got nil")
	}
}

func TestBuildLoggerOpts_FileOptionsOnlyWithPath(t *testing.T) {
	tests := []struct {
		name string
		cfg  *LogConfig
		want int
	}{
		{"nil config", nil, 0},
		{"console only ignores rotation", &LogConfig{Level: "info", MaxSizeMB: 10, MaxBackups: 3}, 4},
		{"file without rotation", &LogConfig{FilePath: "app.log"}, 6},
		{"file with partial rotation", &LogConfig{FilePath: "app.log", RetentionDays: 7}, 7},
		{"file with full rotation", &LogConfig{
			FilePath: "app.log", MaxSizeMB: 10, RetentionDays: 7, MaxBackups: 3, CompressRotated: boolPtr(false),
		}, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := len(BuildLoggerOpts(tt.cfg)); got != tt.want {
				t.Errorf("len(BuildLoggerOpts) = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		" WARN ":  slog.LevelWarn,
		"error":   slog.LevelError,
		"info":    slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestParseFormat(t *testing.T) {
	tests := map[string]logger.OutputFormat{
		"text":   logger.FormatText,
		" JSON ": logger.FormatJSON,
		"":       logger.FormatCustom,
		"pretty": logger.FormatCustom,
	}
	for in, want := range tests {
		if got := parseFormat(in); got != want {
			t.Errorf("parseFormat(%q) = %v, want %v", in, got, want)
		}
	}
}
