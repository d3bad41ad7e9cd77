// internal/logger/logger_test.go
package logger

import (
	"bytes"
	"strings"
	"testing"

	"go.uber.org/zap/zapcore"
)

func capture(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(zapcore.AddSync(&buf))
	t.Cleanup(func() {
		SetOutput(zapcore.Lock(zapcore.AddSync(&bytes.Buffer{})))
		SetLevel(InfoLevel)
	})
	return &buf
}

func TestLevelFiltering(t *testing.T) {
	buf := capture(t)
	SetLevel(WarnLevel)

	Info("hidden %d", 1)
	Warn("shown %d", 2)

	out := buf.String()
	if strings.Contains(out, "hidden 1") {
		t.Fatalf("info message printed at warn level: %q", out)
	}
	if !strings.Contains(out, "shown 2") {
		t.Fatalf("warn message missing: %q", out)
	}
}

func TestSetLevelFromString(t *testing.T) {
	capture(t)

	cases := map[string]string{
		"debug":   "debug",
		"WARNING": "warn",
		"error":   "error",
		"bogus":   "info",
	}
	for in, want := range cases {
		SetLevelFromString(in)
		if got := GetLevel(); got != want {
			t.Fatalf("SetLevelFromString(%q) => %s want %s", in, got, want)
		}
	}
}

func TestPrefixLogger(t *testing.T) {
	buf := capture(t)
	SetLevel(DebugLevel)

	WithPrefix("[panel] ").Debug("flush %s", "ok")

	if !strings.Contains(buf.String(), "[panel] flush ok") {
		t.Fatalf("prefix missing: %q", buf.String())
	}
}
