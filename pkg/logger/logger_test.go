package logger

import (
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap/zapcore"

	"github.com/queuex/go-queue/pkg/settings"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name      string
		logLevel  string
		wantDebug bool // whether debug entries are enabled
	}{
		{"debug_level", "debug", true},
		{"info_level", "info", false},
		{"error_level", "error", false},
		{"unknown_falls_back_to_info", "verbose", false},
		{"empty_falls_back_to_info", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log := New(settings.Logger{LogLevel: tt.logLevel})
			if log == nil {
				t.Fatal("New returned nil")
			}
			if got := log.Core().Enabled(zapcore.DebugLevel); got != tt.wantDebug {
				t.Errorf("debug enabled = %v, want %v", got, tt.wantDebug)
			}
		})
	}
}

func TestNew_FileOutput(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "queue.log")

	log := New(settings.Logger{
		LogLevel:    "info",
		FileLogName: file,
		MaxSize:     1,
		MaxBackups:  1,
		MaxAge:      1,
	})

	log.Info("hello")
	if err := log.Sync(); err != nil {
		t.Fatalf("Sync() error: %v", err)
	}

	data, err := os.ReadFile(file)
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	if len(data) == 0 {
		t.Error("log file is empty")
	}
}
