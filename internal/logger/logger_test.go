package logger

import (
	"testing"

	"go.uber.org/zap/zapcore"

	"treasuryhub/internal/config"
)

func TestNewBuildsForBothEncodings(t *testing.T) {
	for _, encoding := range []string{"json", "console"} {
		log, err := New(config.LogConfig{Level: "debug", Encoding: encoding})
		if err != nil {
			t.Fatalf("New(%s): %v", encoding, err)
		}
		if log == nil {
			t.Fatalf("New(%s) returned nil logger", encoding)
		}
	}
}

func TestNewUnknownLevelFallsBackToInfo(t *testing.T) {
	log, err := New(config.LogConfig{Level: "chatty", Encoding: "json"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if log.Core().Enabled(zapcore.DebugLevel) {
		t.Fatalf("unknown level should fall back to info, debug is enabled")
	}
}
