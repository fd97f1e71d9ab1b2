package logger

import (
	"bytes"
	"encoding/json"
	"testing"
)

func TestNew_JSONWithService(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Output: &buf, Level: DEBUG, Service: "pricing"})

	log.With("tenant_id", "t-1").Debug("suggestions computed", "count", 3)

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected JSON log line, got %q: %v", buf.String(), err)
	}
	if entry[SERVICE] != "pricing" {
		t.Errorf("expected service attribute 'pricing', got %v", entry[SERVICE])
	}
	if entry["tenant_id"] != "t-1" {
		t.Errorf("expected tenant_id attribute 't-1', got %v", entry["tenant_id"])
	}
	if entry["count"] != float64(3) {
		t.Errorf("expected count 3, got %v", entry["count"])
	}
}

func TestNew_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Output: &buf, Level: WARN})

	log.Info("dropped")
	if buf.Len() != 0 {
		t.Errorf("info should be filtered at warn level, got %q", buf.String())
	}

	log.Warn("kept")
	if buf.Len() == 0 {
		t.Errorf("warn should be written at warn level")
	}
}
