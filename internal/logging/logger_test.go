package logging

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestFieldHelpers(t *testing.T) {
	tests := []struct {
		name  string
		field Field
		key   string
		value any
	}{
		{"String", String("op", "cpu"), "op", "cpu"},
		{"Int", Int("items", 3), "items", 3},
		{"Uint64", Uint64("bytes", 1<<40), "bytes", uint64(1 << 40)},
		{"Float64", Float64("cpu", 12.5), "cpu", 12.5},
		{"Duration", Duration("interval", time.Second), "interval", time.Second},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.field.Key != tt.key {
				t.Errorf("Key = %q, want %q", tt.field.Key, tt.key)
			}
			if tt.field.Value != tt.value {
				t.Errorf("Value = %v, want %v", tt.field.Value, tt.value)
			}
		})
	}

	if f := Err(nil); f.Key != "error" || f.Value != nil {
		t.Errorf("Err(nil) = %+v", f)
	}
}

func TestNewLogger_IncludesComponent(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "collector")
	logger.Info("sample queued", Int("queued", 2))

	out := buf.String()
	for _, want := range []string{"collector", "sample queued", `"queued":2`, `"level":"info"`} {
		if !strings.Contains(out, want) {
			t.Errorf("output should contain %q, got: %s", want, out)
		}
	}
}

func TestZerologAdapter_Error(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "sampler")
	logger.Error("snapshot failed", errors.New("permission denied"), String("op", "disk"))

	out := buf.String()
	for _, want := range []string{"snapshot failed", "permission denied", "disk", `"level":"error"`} {
		if !strings.Contains(out, want) {
			t.Errorf("output should contain %q, got: %s", want, out)
		}
	}
}

func TestZerologAdapter_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "test").Level(zerolog.WarnLevel)

	logger.Debug("hidden")
	logger.Info("hidden too")
	logger.Warn("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug/info should be filtered, got: %s", out)
	}
	if !strings.Contains(out, "shown") {
		t.Errorf("warn should pass, got: %s", out)
	}
}

func TestZerologAdapter_Printf(t *testing.T) {
	var buf bytes.Buffer
	NewLogger(&buf, "test").Printf("drained %d items", 4)
	if !strings.Contains(buf.String(), "drained 4 items") {
		t.Errorf("Printf should format message, got: %s", buf.String())
	}
}

func TestNewNop(t *testing.T) {
	// Must not panic.
	l := NewNop()
	l.Info("nothing")
	l.Error("nothing", errors.New("x"))
}

func TestParseLevel(t *testing.T) {
	tests := map[string]zerolog.Level{
		"debug": zerolog.DebugLevel,
		"warn":  zerolog.WarnLevel,
		"":      zerolog.InfoLevel,
		"bogus": zerolog.InfoLevel,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}
