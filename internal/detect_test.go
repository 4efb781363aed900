package internal

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatalf("getting working directory: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("changing directory: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(old) })
}

func touchFile(t *testing.T, path string, mod time.Time) {
	t.Helper()
	if err := os.WriteFile(path, []byte("{}"), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
	if err := os.Chtimes(path, mod, mod); err != nil {
		t.Fatalf("setting times on %s: %v", path, err)
	}
}

func TestDetectArchiveSingleLocal(t *testing.T) {
	dir := t.TempDir()
	touchFile(t, filepath.Join(dir, "capture.har"), time.Now())
	chdir(t, dir)
	t.Setenv("HOME", t.TempDir())

	got, err := DetectArchive()
	if err != nil {
		t.Fatalf("DetectArchive() error = %v", err)
	}
	if filepath.Base(got) != "capture.har" {
		t.Errorf("DetectArchive() = %q, want capture.har in cwd", got)
	}
}

func TestDetectArchiveMultipleLocal(t *testing.T) {
	dir := t.TempDir()
	touchFile(t, filepath.Join(dir, "a.har"), time.Now())
	touchFile(t, filepath.Join(dir, "b.har"), time.Now())
	chdir(t, dir)

	_, err := DetectArchive()
	if err == nil {
		t.Fatal("DetectArchive() error = nil, want error for ambiguous cwd")
	}
	if !strings.Contains(err.Error(), "--archive") {
		t.Errorf("DetectArchive() error = %v, want a hint to pass --archive", err)
	}
}

func TestDetectArchiveNewestDownload(t *testing.T) {
	home := t.TempDir()
	downloads := filepath.Join(home, "Downloads")
	if err := os.MkdirAll(downloads, 0755); err != nil {
		t.Fatalf("creating downloads dir: %v", err)
	}

	now := time.Now()
	touchFile(t, filepath.Join(downloads, "old.har"), now.Add(-time.Hour))
	touchFile(t, filepath.Join(downloads, "new.har"), now)

	chdir(t, t.TempDir())
	t.Setenv("HOME", home)

	got, err := DetectArchive()
	if err != nil {
		t.Fatalf("DetectArchive() error = %v", err)
	}
	if filepath.Base(got) != "new.har" {
		t.Errorf("DetectArchive() = %q, want the newest download", got)
	}
}

func TestDetectArchiveNothingFound(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("HOME", t.TempDir())

	_, err := DetectArchive()
	if err == nil {
		t.Fatal("DetectArchive() error = nil, want error when nothing is found")
	}
	if !strings.Contains(err.Error(), "--archive") {
		t.Errorf("DetectArchive() error = %v, want a hint to pass --archive", err)
	}
}

func TestDetectArchiveLocalBeatsDownloads(t *testing.T) {
	home := t.TempDir()
	downloads := filepath.Join(home, "Downloads")
	if err := os.MkdirAll(downloads, 0755); err != nil {
		t.Fatalf("creating downloads dir: %v", err)
	}
	touchFile(t, filepath.Join(downloads, "remote.har"), time.Now())

	dir := t.TempDir()
	touchFile(t, filepath.Join(dir, "local.har"), time.Now())
	chdir(t, dir)
	t.Setenv("HOME", home)

	got, err := DetectArchive()
	if err != nil {
		t.Fatalf("DetectArchive() error = %v", err)
	}
	if filepath.Base(got) != "local.har" {
		t.Errorf("DetectArchive() = %q, want the local capture", got)
	}
}
