package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func jsonLogger(buf *bytes.Buffer, level string) *Logger {
	return NewWithWriter(&Config{Level: level, Format: FormatJSON}, "test", buf)
}

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()
	line := strings.TrimSpace(buf.String())
	if line == "" {
		t.Fatal("expected a log line")
	}
	var m map[string]interface{}
	if err := json.Unmarshal([]byte(line), &m); err != nil {
		t.Fatalf("invalid json log line %q: %v", line, err)
	}
	return m
}

func TestNewDefault(t *testing.T) {
	l := NewDefault("test-app")
	if l == nil {
		t.Fatal("expected non-nil logger")
	}
	if l.app != "test-app" {
		t.Errorf("expected app 'test-app', got %q", l.app)
	}
}

func TestNewInvalidLevel(t *testing.T) {
	var buf bytes.Buffer
	l := jsonLogger(&buf, "invalid-level")
	l.Info("hello")
	if decodeLine(t, &buf)["level"] != "info" {
		t.Error("expected fallback to info level")
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := jsonLogger(&buf, "warn")
	l.Info("dropped")
	if buf.Len() != 0 {
		t.Errorf("expected info to be filtered, got %q", buf.String())
	}
	l.Warn("kept")
	if decodeLine(t, &buf)["message"] != "kept" {
		t.Error("expected warn message to be written")
	}
}

func TestWithComponentAndFields(t *testing.T) {
	var buf bytes.Buffer
	l := jsonLogger(&buf, "debug").WithComponent("flow").WithFields(Fields(FieldFlow, "sign-in"))
	l.Debug("submitting", Fields(FieldPhase, "submitting"))

	m := decodeLine(t, &buf)
	if m[FieldComponent] != "flow" {
		t.Errorf("expected component=flow, got %v", m[FieldComponent])
	}
	if m[FieldFlow] != "sign-in" {
		t.Errorf("expected flow=sign-in, got %v", m[FieldFlow])
	}
	if m[FieldPhase] != "submitting" {
		t.Errorf("expected phase=submitting, got %v", m[FieldPhase])
	}
	if l.app != "test" {
		t.Errorf("app should be preserved, got %q", l.app)
	}
}

func TestWithError(t *testing.T) {
	var buf bytes.Buffer
	jsonLogger(&buf, "info").WithError(errors.New("boom")).Error("failed")
	if decodeLine(t, &buf)["error"] != "boom" {
		t.Error("expected error field")
	}
}

func TestWithContext(t *testing.T) {
	var buf bytes.Buffer
	ctx := ContextWithRequestID(context.Background(), "req-1")
	jsonLogger(&buf, "info").WithContext(ctx).Info("hi")
	if decodeLine(t, &buf)[FieldRequestID] != "req-1" {
		t.Error("expected request_id from context")
	}

	l := jsonLogger(&buf, "info")
	if l.WithContext(context.Background()) != l {
		t.Error("expected the same logger when context has no request id")
	}
}

func TestConsoleFormat(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&Config{Level: "info", Format: FormatConsole, NoColor: true}, "test", &buf)
	l.Info("console message")
	out := buf.String()
	if !strings.Contains(out, "[INF]") || !strings.Contains(out, "console message") {
		t.Errorf("unexpected console output %q", out)
	}
}

func TestNop(t *testing.T) {
	Nop().Error("nothing happens")
}

func TestGlobalAndRegistry(t *testing.T) {
	var buf bytes.Buffer
	SetGlobalLogger(jsonLogger(&buf, "info"))
	t.Cleanup(func() { SetGlobalLogger(nil) })

	first := Get("authclient")
	if Get("authclient") != first {
		t.Error("expected cached component logger")
	}
	first.Info("cached")
	if decodeLine(t, &buf)[FieldComponent] != "authclient" {
		t.Error("expected component field from registry logger")
	}

	custom := Nop()
	Register("authclient", custom)
	if Get("authclient") != custom {
		t.Error("expected registered logger to win")
	}

	SetGlobalLogger(jsonLogger(&buf, "info"))
	if Get("authclient") == custom {
		t.Error("expected registry reset on SetGlobalLogger")
	}
}

func TestGetGlobalLoggerDefault(t *testing.T) {
	SetGlobalLogger(nil)
	if GetGlobalLogger() == nil {
		t.Fatal("expected default global logger to be created")
	}
}

func TestConfigApplyDefaults(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()
	if cfg.Level != "info" || cfg.Format != "console" || cfg.Output != "stderr" {
		t.Errorf("unexpected defaults %+v", cfg)
	}
	if !cfg.Timestamp {
		t.Error("expected timestamp default true")
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"valid", Config{Level: "debug", Format: "json"}, false},
		{"bad level", Config{Level: "loud", Format: "json"}, true},
		{"bad format", Config{Level: "info", Format: "xml"}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if (err != nil) != tc.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestFields(t *testing.T) {
	m := Fields("a", 1, "b", "two", 3, "skipped", "dangling")
	if len(m) != 2 {
		t.Fatalf("expected 2 fields, got %d: %v", len(m), m)
	}
	if m["a"] != 1 || m["b"] != "two" {
		t.Errorf("unexpected fields %v", m)
	}
}

func TestErrorAndDurationFields(t *testing.T) {
	ef := ErrorFields("sign_in", errors.New("nope"))
	if ef[FieldOperation] != "sign_in" || ef[FieldError] != "nope" {
		t.Errorf("unexpected error fields %v", ef)
	}
	df := DurationFields("sign_in", 1500*time.Millisecond)
	if df[FieldDuration] != int64(1500) {
		t.Errorf("unexpected duration %v", df[FieldDuration])
	}
	merged := MergeWithError(nil, errors.New("x"))
	if merged[FieldError] != "x" {
		t.Errorf("unexpected merged fields %v", merged)
	}
}
