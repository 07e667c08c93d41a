package control

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestOpenCreatesFixedSizeFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ctl")
	ch, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer ch.Close()

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat failed: %v", err)
	}
	if info.Size() != RecordSize {
		t.Errorf("Expected %d byte file, got %d", RecordSize, info.Size())
	}
}

func TestOpenTruncatesExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ctl")
	if err := os.WriteFile(path, make([]byte, 64), 0o644); err != nil {
		t.Fatalf("seed file: %v", err)
	}
	ch, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer ch.Close()

	info, _ := os.Stat(path)
	if info.Size() != RecordSize {
		t.Errorf("Expected truncation to %d bytes, got %d", RecordSize, info.Size())
	}
}

func TestOpenFailsOnDirectory(t *testing.T) {
	_, err := Open(t.TempDir())
	if !errors.Is(err, ErrChannelUnavailable) {
		t.Errorf("Expected ErrChannelUnavailable, got %v", err)
	}
}

func TestPublishRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ctl")
	ch, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer ch.Close()

	rec := RecordFor(12.032, true)
	if err := ch.Publish(rec); err != nil {
		t.Fatalf("Publish failed: %v", err)
	}

	got, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if got.BitsPerSecond != 12032000 {
		t.Errorf("Expected 12032000 bps, got %d", got.BitsPerSecond)
	}
	if got.LinkRunning != 1 {
		t.Errorf("Expected linkRunning=1, got %d", got.LinkRunning)
	}
}

func TestPublishOverwritesFullRecord(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ctl")
	ch, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer ch.Close()

	if err := ch.Publish(RecordFor(100, true)); err != nil {
		t.Fatalf("Publish failed: %v", err)
	}
	if err := ch.Publish(RecordFor(0.012032, false)); err != nil {
		t.Fatalf("Publish failed: %v", err)
	}

	got, _ := ReadFile(path)
	if got.BitsPerSecond != 12032 || got.LinkRunning != 0 {
		t.Errorf("Expected (12032, 0), got (%d, %d)", got.BitsPerSecond, got.LinkRunning)
	}
}

func TestCloseIdempotent(t *testing.T) {
	ch, err := Open(filepath.Join(t.TempDir(), "ctl"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if err := ch.Close(); err != nil {
		t.Errorf("first Close failed: %v", err)
	}
	if err := ch.Close(); err != nil {
		t.Errorf("second Close failed: %v", err)
	}
	if err := ch.Publish(Record{}); !errors.Is(err, ErrChannelUnavailable) {
		t.Errorf("Publish after Close: expected ErrChannelUnavailable, got %v", err)
	}
}

func TestWriteStatic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "static")
	if err := WriteStatic(path, 12.032); err != nil {
		t.Fatalf("WriteStatic failed: %v", err)
	}

	got, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if got.BitsPerSecond != 12032000 || got.LinkRunning != 1 {
		t.Errorf("Expected (12032000, 1), got (%d, %d)", got.BitsPerSecond, got.LinkRunning)
	}

	if err := WriteStatic(path, 1.0); !errors.Is(err, os.ErrExist) {
		t.Errorf("Expected os.ErrExist on second write, got %v", err)
	}
}

func TestDecodeRecordShortBuffer(t *testing.T) {
	if _, err := DecodeRecord(make([]byte, 8)); err == nil {
		t.Error("Expected error for short buffer")
	}
}
