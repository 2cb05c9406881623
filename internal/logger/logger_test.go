package logger

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLoggerRedactsSensitiveKeys(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.DebugLevel)
	log := FromZap(zap.New(core))

	log.Info("login", "username", "ana", "password", "hunter2", "auth_token", "abc")
	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected one entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["username"] != "ana" {
		t.Fatalf("username should pass through, got %v", fields["username"])
	}
	if fields["password"] != "[REDACTED]" || fields["auth_token"] != "[REDACTED]" {
		t.Fatalf("expected redaction, got %v", fields)
	}
}

func TestLoggerRedactsJWTLookingValues(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.DebugLevel)
	log := FromZap(zap.New(core)).With("component", "api")

	log.Warn("odd header", "value", "eyJhbGciOiJIUzI1NiJ9.eyJ1c2VyX2lkIjoxfQ.signature")
	fields := logs.All()[0].ContextMap()
	if fields["value"] != "[REDACTED]" {
		t.Fatalf("expected JWT redaction, got %v", fields["value"])
	}
	if fields["component"] != "api" {
		t.Fatalf("expected inherited field, got %v", fields["component"])
	}
}

func TestNewModes(t *testing.T) {
	t.Parallel()

	for _, mode := range []string{"dev", "production"} {
		log, err := New(mode)
		if err != nil {
			t.Fatalf("New(%q) unexpected error: %v", mode, err)
		}
		if log.SugaredLogger == nil {
			t.Fatalf("New(%q) returned empty logger", mode)
		}
	}
}

func TestPrintfSurvivesProductionLevel(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.InfoLevel)
	log := FromZap(zap.New(core))

	log.Printf("%s\n[%.3fms] [rows:%v] %s", "no such table: plans_old", 0.42, 0, "SELECT 1")
	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected one entry at info level, got %d", len(entries))
	}
	if entries[0].Level != zapcore.WarnLevel {
		t.Fatalf("expected warn level, got %v", entries[0].Level)
	}
}
