package obslog

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"
)

func newTestLogger(buf *bytes.Buffer, level slog.Level) *Logger {
	h := slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: level})
	return NewWithHandler(h)
}

func TestLogger_Component(t *testing.T) {
	var buf bytes.Buffer
	l := newTestLogger(&buf, slog.LevelDebug)
	child := l.Component("dispatch")

	child.Debug("call ok", "op", "G1_ADD", "output_len", 64)

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("unmarshal: %v (raw: %s)", err, buf.String())
	}
	if entry["component"] != "dispatch" {
		t.Fatalf("component = %v, want %q", entry["component"], "dispatch")
	}
	if entry["op"] != "G1_ADD" {
		t.Fatalf("op = %v, want %q", entry["op"], "G1_ADD")
	}
}

func TestLogger_ComponentChain(t *testing.T) {
	var buf bytes.Buffer
	l := newTestLogger(&buf, slog.LevelDebug)
	child := l.Component("dispatch").With("limb_width", 4)

	child.Debug("call failed", "op", "BN_PAIR")

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("unmarshal: %v (raw: %s)", err, buf.String())
	}
	if entry["component"] != "dispatch" {
		t.Fatalf("component = %v, want %q", entry["component"], "dispatch")
	}
	if entry["limb_width"] != float64(4) {
		t.Fatalf("limb_width = %v, want 4", entry["limb_width"])
	}
}
