package filewatcher

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestFileWatcher_TriggersOnChange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "watched.yaml")
	os.WriteFile(path, []byte("a"), 0644)

	fw := NewFileWatcherWithInterval(path, 10*time.Millisecond)
	defer fw.Close()

	// Give the watcher time to take its initial stat.
	time.Sleep(50 * time.Millisecond)
	os.WriteFile(path, []byte("abc"), 0644)

	select {
	case n := <-fw.ChangeTriggerChan:
		if n != 1 {
			t.Errorf("change counter = %d, want 1", n)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no change triggered")
	}
}

func TestFileWatcher_CloseEndsChannel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "watched.yaml")
	os.WriteFile(path, []byte("a"), 0644)

	fw := NewFileWatcherWithInterval(path, 10*time.Millisecond)
	fw.Close()
	fw.Close()

	if _, ok := <-fw.ChangeTriggerChan; ok {
		t.Error("ChangeTriggerChan still open after Close")
	}
}

func TestFileWatcher_MissingFile(t *testing.T) {
	fw := NewFileWatcher(filepath.Join(t.TempDir(), "missing"))

	select {
	case _, ok := <-fw.ChangeTriggerChan:
		if ok {
			t.Error("got a change for a missing file")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("watcher of a missing file did not stop")
	}
	fw.Close()
}
