package config

import (
	"path/filepath"
	"testing"

	"github.com/yielddrive/fleetyield/core/yield/logging"
)

func TestDecisionLogBuildSelectsBackend(t *testing.T) {
	dir := t.TempDir()

	cases := []struct {
		name string
		cfg  DecisionLogConfig
		want string
	}{
		{"jsonl", DecisionLogConfig{Backend: "jsonl", Path: filepath.Join(dir, "a.log")}, "*logging.JSONLStore"},
		{"rotating", DecisionLogConfig{Backend: "jsonl", Path: filepath.Join(dir, "b.log"), MaxSizeMB: 5}, "*logging.RotatingJSONLStore"},
		{"sqlite", DecisionLogConfig{Backend: "sqlite", Path: filepath.Join(dir, "c.db")}, "*logging.SQLiteStore"},
	}
	for _, c := range cases {
		store, err := c.cfg.Build()
		if err != nil {
			t.Fatalf("%s: build: %v", c.name, err)
		}
		var got string
		switch store.(type) {
		case *logging.JSONLStore:
			got = "*logging.JSONLStore"
		case *logging.RotatingJSONLStore:
			got = "*logging.RotatingJSONLStore"
		case *logging.SQLiteStore:
			got = "*logging.SQLiteStore"
		}
		if got != c.want {
			t.Errorf("%s: expected %s got %T", c.name, c.want, store)
		}
		if err := store.Close(); err != nil {
			t.Errorf("%s: close: %v", c.name, err)
		}
	}
}

func TestDecisionLogValidate(t *testing.T) {
	bad := DecisionLogConfig{Backend: "csv", Path: "x"}
	if err := bad.Validate(); err == nil {
		t.Fatalf("expected backend error")
	}
	neg := DecisionLogConfig{Backend: "jsonl", Path: "x", MaxBackups: -1}
	if err := neg.Validate(); err == nil {
		t.Fatalf("expected rotation error")
	}
	if _, err := (DecisionLogConfig{Backend: "csv", Path: "x"}).Build(); err == nil {
		t.Fatalf("expected build error for unknown backend")
	}
}
