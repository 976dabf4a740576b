package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	log "github.com/sirupsen/logrus"
)

func TestNewLevel(t *testing.T) {
	tests := []struct {
		level string
		want  log.Level
	}{
		{"", log.InfoLevel},
		{"debug", log.DebugLevel},
		{"WARN", log.WarnLevel},
	}
	for _, tt := range tests {
		logger, err := New(tt.level, "")
		if err != nil {
			t.Fatalf("New(%q): %v", tt.level, err)
		}
		if logger.GetLevel() != tt.want {
			t.Errorf("New(%q) level = %v, want %v", tt.level, logger.GetLevel(), tt.want)
		}
	}
}

func TestNewBadLevel(t *testing.T) {
	if _, err := New("loud", ""); err == nil {
		t.Error("New should reject an unknown level")
	}
}

func TestNewFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "realmforge.log")
	logger, err := New("info", path)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	logger.WithField("zone", "eldergrove").Info("zone generated")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), `"zone":"eldergrove"`) {
		t.Errorf("log file = %q, want zone field", data)
	}
}
