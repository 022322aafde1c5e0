package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"weather-info/internal/config"
)

func TestNewProdIsJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, &config.Config{AppEnv: "prod", LogLevel: slog.LevelInfo})

	logger.Debug("hidden")
	logger.Info("hello", "city", "Moscow")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("not a single JSON line: %v (%q)", err, buf.String())
	}
	if entry["msg"] != "hello" || entry["city"] != "Moscow" || entry["app"] != appName || entry["env"] != "prod" {
		t.Fatalf("unexpected entry %v", entry)
	}
}

func TestNewDevIsText(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, &config.Config{AppEnv: "dev", LogLevel: slog.LevelDebug})

	logger.Debug("visible")

	out := buf.String()
	if !strings.Contains(out, "visible") || strings.HasPrefix(out, "{") {
		t.Fatalf("unexpected dev output %q", out)
	}
}
