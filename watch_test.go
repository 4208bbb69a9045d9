package gesturekit

import (
	"os"
	"testing"
	"time"
)

func TestWatchConfigReloads(t *testing.T) {
	path := writeConfig(t, "spring:\n  damping: 0.5\n")
	w, err := WatchConfig(path)
	if err != nil {
		t.Fatalf("WatchConfig: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(path, []byte("spring:\n  damping: 0.25\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case cfg := <-w.Updates:
		if cfg.Spring.Damping != 0.25 {
			t.Errorf("damping = %v, want 0.25", cfg.Spring.Damping)
		}
	case err := <-w.Errors:
		t.Fatalf("watch error: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("no reload within 5s")
	}
}

func TestWatchConfigReportsInvalidFile(t *testing.T) {
	path := writeConfig(t, "debug: false\n")
	w, err := WatchConfig(path)
	if err != nil {
		t.Fatalf("WatchConfig: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(path, []byte("schema_version: v9\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case <-w.Updates:
		t.Fatal("invalid config delivered as an update")
	case err := <-w.Errors:
		if err == nil {
			t.Error("nil error")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no error within 5s")
	}
}

func TestWatchConfigClose(t *testing.T) {
	path := writeConfig(t, "debug: false\n")
	w, err := WatchConfig(path)
	if err != nil {
		t.Fatalf("WatchConfig: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
	if _, ok := <-w.Updates; ok {
		t.Error("Updates not closed")
	}
	if _, ok := <-w.Errors; ok {
		t.Error("Errors not closed")
	}
}
