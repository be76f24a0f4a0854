package slogobs

import (
	"log/slog"
	"testing"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input string
		want  Format
	}{
		{"compact", FormatCompact},
		{"PRETTY", FormatPretty},
		{" json ", FormatJSON},
		{"xml", FormatCompact},
		{"", FormatCompact},
	}
	for _, tt := range tests {
		if got := ParseFormat(tt.input); got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestGetFormatFromEnv_Precedence(t *testing.T) {
	t.Setenv("WORLDSTATS_LOG_FORMAT", "json")
	t.Setenv("LOG_FORMAT", "pretty")
	if got := GetFormatFromEnv(); got != FormatJSON {
		t.Errorf("GetFormatFromEnv() = %q, want json", got)
	}

	t.Setenv("WORLDSTATS_LOG_FORMAT", "")
	if got := GetFormatFromEnv(); got != FormatPretty {
		t.Errorf("fallback GetFormatFromEnv() = %q, want pretty", got)
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"trace", LevelTrace},
		{"DEBUG", slog.LevelDebug},
		{"Info", slog.LevelInfo},
		{"warning", slog.LevelWarn},
		{" ERROR ", slog.LevelError},
		{"verbose", slog.LevelInfo},
		{"", slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := ParseLogLevel(tt.input); got != tt.want {
			t.Errorf("ParseLogLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestGetLogLevelFromEnv(t *testing.T) {
	t.Setenv("WORLDSTATS_LOG_LEVEL", "")
	t.Setenv("LOG_LEVEL", "")
	if got := GetLogLevelFromEnv(); got != slog.LevelInfo {
		t.Errorf("default level = %v, want INFO", got)
	}

	t.Setenv("LOG_LEVEL", "error")
	if got := GetLogLevelFromEnv(); got != slog.LevelError {
		t.Errorf("LOG_LEVEL fallback = %v, want ERROR", got)
	}

	t.Setenv("WORLDSTATS_LOG_LEVEL", "debug")
	if got := GetLogLevelFromEnv(); got != slog.LevelDebug {
		t.Errorf("WORLDSTATS_LOG_LEVEL = %v, want DEBUG", got)
	}
}
