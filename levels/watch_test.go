package levels

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatcherReportsLevelWrites(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	target := filepath.Join(dir, "level.yaml")
	if err := os.WriteFile(target, []byte("name: x\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	select {
	case name := <-w.Events:
		if name != target {
			t.Fatalf("expected %s, got %s", target, name)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for watcher event")
	}
}

func TestFileKinds(t *testing.T) {
	if !IsLevelFile("a/b.YAML") || !IsLevelFile("c.yml") || IsLevelFile("d.json") {
		t.Fatalf("IsLevelFile misclassified")
	}
	if !IsScriptFile("rating.tengo") || IsScriptFile("rating.lua") {
		t.Fatalf("IsScriptFile misclassified")
	}
}

func TestNilWatcherIsSafe(t *testing.T) {
	var w *Watcher
	if names := w.Drain(); names != nil {
		t.Fatalf("expected nil drain, got %v", names)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close on nil: %v", err)
	}
}
