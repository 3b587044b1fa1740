package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
)

func TestInit_WritesJSONWithComponent(t *testing.T) {
	Reset()
	defer Reset()

	var buf bytes.Buffer
	Init(Options{Level: "debug", Output: &buf})

	log := Component("gate")
	log.Info().Msg("hello")

	var line map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line); err != nil {
		t.Fatalf("expected JSON line, got %q: %v", buf.String(), err)
	}
	if line["component"] != "gate" || line["message"] != "hello" {
		t.Fatalf("unexpected log line: %v", line)
	}
}

func TestComponent_BeforeInitIsNop(t *testing.T) {
	Reset()
	if got := Component("x").GetLevel(); got != zerolog.Disabled {
		t.Fatalf("expected disabled logger before Init, got %v", got)
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]zerolog.Level{
		"trace":   zerolog.TraceLevel,
		"DEBUG":   zerolog.DebugLevel,
		" warn ":  zerolog.WarnLevel,
		"warning": zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"":        zerolog.InfoLevel,
		"verbose": zerolog.InfoLevel,
	}
	for in, want := range tests {
		if got := parseLevel(in); got != want {
			t.Errorf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestOptionsFor(t *testing.T) {
	if OptionsFor("production", "info").Pretty {
		t.Fatalf("production logs must be JSON")
	}
	if !OptionsFor("development", "debug").Pretty {
		t.Fatalf("development logs should be pretty")
	}
}

func TestInit_ServiceFieldAndFirstCallWins(t *testing.T) {
	Reset()
	defer Reset()

	var first, second bytes.Buffer
	Init(Options{Service: "food-notes-ui", Output: &first})
	Init(Options{Service: "other", Output: &second})

	component := Component("backend")
	component.Warn().Msg("slow")

	if second.Len() != 0 {
		t.Fatalf("second Init must not replace the logger, got %q", second.String())
	}
	var line map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(first.Bytes()), &line); err != nil {
		t.Fatalf("expected JSON line, got %q: %v", first.String(), err)
	}
	if line["service"] != "food-notes-ui" || line["level"] != "warn" {
		t.Fatalf("unexpected log line: %v", line)
	}
	if _, ok := line["caller"]; ok {
		t.Fatalf("caller must be off unless requested: %v", line)
	}
}
