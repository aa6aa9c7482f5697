package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  Level
	}{
		{input: "trace", want: LevelTrace},
		{input: "TRACE", want: LevelTrace},
		{input: " debug ", want: LevelDebug},
		{input: " WARN ", want: LevelWarn},
		{input: "info", want: LevelInfo},
		{input: "warn", want: LevelWarn},
		{input: "error", want: LevelError},
		{input: "bogus", want: DefaultLevel},
		{input: "", want: DefaultLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseLevel(tt.input); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input string
		want  Format
	}{
		{input: "text", want: FormatText},
		{input: "JSON", want: FormatJSON},
		{input: "bogus", want: DefaultFormat},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseFormat(tt.input); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestLevelString(t *testing.T) {
	if got := LevelTrace.String(); got != "trace" {
		t.Errorf("expected %q, got %q", "trace", got)
	}
}

func TestZeroValueLoggerDiscards(t *testing.T) {
	var l Logger

	// Must not panic.
	l.Trace("trace")
	l.Debug("debug")
	l.Info("info")
	l.Warn("warn")
	l.Error("error", slog.String("key", "value"))
	l.With(slog.String("k", "v")).Info("chained")
}

func TestMake_JSONOutput(t *testing.T) {
	var buf bytes.Buffer

	l := Make(&buf, WithFormat(FormatJSON), WithLevel(LevelDebug))
	l.Debug("hello", slog.Int("n", 7))

	var record map[string]any

	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}

	if record["msg"] != "hello" {
		t.Errorf("unexpected msg %v", record["msg"])
	}

	if record["level"] != "DEBUG" {
		t.Errorf("unexpected level %v", record["level"])
	}

	if record["n"] != float64(7) {
		t.Errorf("unexpected attr %v", record["n"])
	}
}

func TestMake_LevelFilter(t *testing.T) {
	var buf bytes.Buffer

	l := Make(&buf, WithLevel(LevelWarn))
	l.Info("dropped")

	if buf.Len() != 0 {
		t.Errorf("expected info below warn to be dropped, got %q", buf.String())
	}

	l.Warn("kept")

	if buf.Len() == 0 {
		t.Error("expected warn message to be written")
	}
}

func TestMake_TraceLevelName(t *testing.T) {
	var buf bytes.Buffer

	l := Make(&buf, WithFormat(FormatText), WithLevel(LevelTrace))
	l.Trace("deep")

	if !strings.Contains(buf.String(), "TRACE") {
		t.Errorf("expected TRACE level name, got %q", buf.String())
	}
}

func TestMake_TimeLayout(t *testing.T) {
	var buf bytes.Buffer

	// An empty layout disables the time attribute entirely.
	l := Make(&buf, WithFormat(FormatText), WithTimeLayout(""))
	l.Info("no time")

	if strings.Contains(buf.String(), "time=") {
		t.Errorf("expected no time attribute, got %q", buf.String())
	}
}

func TestWrap_OverridesConfig(t *testing.T) {
	var buf bytes.Buffer

	l := Make(&buf, WithLevel(LevelError))

	if l.Level() != LevelError {
		t.Fatalf("unexpected level %v", l.Level())
	}

	wrapped := l.Wrap(WithLevel(LevelDebug))

	if wrapped.Level() != LevelDebug {
		t.Errorf("expected wrapped level debug, got %v", wrapped.Level())
	}

	// The original logger keeps its configuration.
	if l.Level() != LevelError {
		t.Errorf("expected original level unchanged, got %v", l.Level())
	}

	wrapped.Debug("visible")

	if buf.Len() == 0 {
		t.Error("expected wrapped logger to write at debug")
	}
}

func TestPrettyHandler(t *testing.T) {
	var buf bytes.Buffer

	l := Make(&buf,
		WithFormat(FormatText),
		WithPretty(true),
		WithLevel(LevelDebug),
		WithTimeLayout(""),
	)

	l.Warn("watch out", slog.String("path", "/tmp/x"))

	out := buf.String()

	if !strings.Contains(out, "watch out") {
		t.Errorf("expected message in output, got %q", out)
	}

	// The key and value are separated by a color reset sequence.
	if !strings.Contains(out, "path") || !strings.Contains(out, "/tmp/x") {
		t.Errorf("expected attribute in output, got %q", out)
	}

	if !strings.Contains(out, colorYellow) {
		t.Errorf("expected warn level color, got %q", out)
	}
}
