package watcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatchTriggersDebouncedCallback(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(file, []byte("a: 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	fw, err := NewFileWatcher(20*time.Millisecond, nil)
	if err != nil {
		t.Fatalf("failed to create watcher: %v", err)
	}
	defer fw.Close()

	changed := make(chan string, 8)
	if err := fw.Watch([]string{file}, func(p string) { changed <- p }); err != nil {
		t.Fatalf("watch failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	fw.Start(ctx)

	for i := 0; i < 3; i++ {
		if err := os.WriteFile(file, []byte("a: 2\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	select {
	case p := <-changed:
		abs, _ := filepath.Abs(file)
		if p != abs {
			t.Errorf("expected %s, got %s", abs, p)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("expected change callback")
	}
}

func TestUnrelatedFileIgnored(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(file, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	fw, err := NewFileWatcher(10*time.Millisecond, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer fw.Close()

	changed := make(chan string, 8)
	if err := fw.Watch([]string{file}, func(p string) { changed <- p }); err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	fw.Start(ctx)

	if err := os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case p := <-changed:
		t.Errorf("unexpected callback for %s", p)
	case <-time.After(200 * time.Millisecond):
	}
}
