package main

import (
	"os"
	"path/filepath"
	"testing"

	"linkctl/internal/config"
	"linkctl/internal/trace"
)

func TestNewTracerDisabledByDefault(t *testing.T) {
	t.Setenv("GREPTIMEDB_ENDPOINT", "")

	w, cleanup, err := newTracer(config.Default())
	if err != nil {
		t.Fatalf("newTracer failed: %v", err)
	}
	defer cleanup()
	if w != nil {
		t.Errorf("Expected nil writer without trace config, got %T", w)
	}
}

func TestNewTracerStdoutOnlyWithoutUI(t *testing.T) {
	t.Setenv("GREPTIMEDB_ENDPOINT", "")

	cfg := config.Default()
	cfg.TraceStdout = true

	w, cleanup, err := newTracer(cfg)
	if err != nil {
		t.Fatalf("newTracer failed: %v", err)
	}
	cleanup()
	if w != nil {
		t.Errorf("Expected no stdout writer while the display is on, got %T", w)
	}

	cfg.UI = false
	w, cleanup, err = newTracer(cfg)
	if err != nil {
		t.Fatalf("newTracer failed: %v", err)
	}
	cleanup()
	if _, ok := w.(*trace.StdoutWriter); !ok {
		t.Errorf("Expected StdoutWriter, got %T", w)
	}
}

func TestNewTracerFileWriter(t *testing.T) {
	t.Setenv("GREPTIMEDB_ENDPOINT", "")

	cfg := config.Default()
	cfg.TraceFile = filepath.Join(t.TempDir(), "trace.jsonl")

	w, cleanup, err := newTracer(cfg)
	if err != nil {
		t.Fatalf("newTracer failed: %v", err)
	}
	if _, ok := w.(*trace.FileWriter); !ok {
		t.Fatalf("Expected FileWriter, got %T", w)
	}
	cleanup()

	if _, err := os.Stat(cfg.TraceFile); err != nil {
		t.Errorf("Trace file not created: %v", err)
	}
}
