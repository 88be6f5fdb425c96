package config

import (
	"context"
	"log/slog"
	"testing"
)

func TestEnvironment(t *testing.T) {
	t.Setenv("GO_ENV", "")
	if got := environment(); got != "development" {
		t.Fatalf("expected development default, got %s", got)
	}
	t.Setenv("GO_ENV", "production")
	if got := environment(); got != "production" {
		t.Fatalf("expected production, got %s", got)
	}
}

func TestNewLogger_Level(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		level       string
		wantDebug   bool
		wantWarnMin bool
	}{
		{level: "debug", wantDebug: true},
		{level: "", wantDebug: false},
		{level: "ERROR", wantWarnMin: true},
	}

	for _, tt := range tests {
		t.Run("level "+tt.level, func(t *testing.T) {
			t.Setenv("LOG_LEVEL", tt.level)
			logger := NewLogger()
			if got := logger.Enabled(ctx, slog.LevelDebug); got != tt.wantDebug {
				t.Fatalf("debug enabled = %v, want %v", got, tt.wantDebug)
			}
			if tt.wantWarnMin && logger.Enabled(ctx, slog.LevelWarn) {
				t.Fatal("warn must be disabled at error level")
			}
			if !logger.Enabled(ctx, slog.LevelError) {
				t.Fatal("error level must always be enabled")
			}
		})
	}
}
