package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/iksnae/gemini-session/testutil"
)

func TestExportCommand(t *testing.T) {
	dir := testutil.CreateTempDir(t)
	har := testCapturePath(t, dir)
	t.Cleanup(func() {
		archivePath = ""
		sessionID = ""
		format = "json"
	})

	tests := []struct {
		name    string
		args    []string
		wantErr bool
	}{
		{
			name:    "invalid format",
			args:    []string{"export", "--archive", har, "--format", "invalid", "--out", filepath.Join(dir, "bad")},
			wantErr: true,
		},
		{
			name:    "unknown session id",
			args:    []string{"export", "--archive", har, "--format", "json", "--session-id", "Session_19990101_0000", "--out", filepath.Join(dir, "none")},
			wantErr: true,
		},
		{
			name:    "missing capture",
			args:    []string{"export", "--archive", "/nonexistent/capture.har", "--format", "json", "--session-id", "", "--out", filepath.Join(dir, "gone")},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rootCmd.SetArgs(tt.args)
			rootCmd.SetOut(&bytes.Buffer{})
			rootCmd.SetErr(&bytes.Buffer{})

			err := rootCmd.Execute()
			if (err != nil) != tt.wantErr {
				t.Errorf("exportCmd.Execute() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestExportCommand_JSONL(t *testing.T) {
	dir := testutil.CreateTempDir(t)
	har := testCapturePath(t, dir)
	outDir := filepath.Join(dir, "exports")
	t.Cleanup(func() { archivePath = "" })

	rootCmd.SetArgs([]string{"export", "--archive", har, "--format", "jsonl", "--session-id", "", "--out", outDir})
	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&bytes.Buffer{})

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("export command error = %v", err)
	}

	entries, err := os.ReadDir(outDir)
	if err != nil {
		t.Fatalf("Failed to read export directory: %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("Exported %d file(s), want 2", len(entries))
	}

	data, err := os.ReadFile(filepath.Join(outDir, "Session_20231114_2213.jsonl"))
	if err != nil {
		t.Fatalf("First session export was not written: %v", err)
	}
	if !strings.Contains(string(data), "how do goroutines work") {
		t.Error("Exported file does not contain the recovered prompt")
	}
}

func TestExportCommand_SessionFilter(t *testing.T) {
	dir := testutil.CreateTempDir(t)
	har := testCapturePath(t, dir)
	outDir := filepath.Join(dir, "exports")
	t.Cleanup(func() {
		archivePath = ""
		sessionID = ""
	})

	rootCmd.SetArgs([]string{"export", "--archive", har, "--format", "json", "--session-id", "Session_20231115_2213", "--out", outDir})
	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&bytes.Buffer{})

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("export command error = %v", err)
	}

	entries, err := os.ReadDir(outDir)
	if err != nil {
		t.Fatalf("Failed to read export directory: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("Exported %d file(s), want 1", len(entries))
	}
	if entries[0].Name() != "Session_20231115_2213.json" {
		t.Errorf("Exported file = %q, want %q", entries[0].Name(), "Session_20231115_2213.json")
	}
}

func TestExportCommand_SQLite(t *testing.T) {
	dir := testutil.CreateTempDir(t)
	har := testCapturePath(t, dir)
	outDir := filepath.Join(dir, "exports")
	t.Cleanup(func() { archivePath = "" })

	rootCmd.SetArgs([]string{"export", "--archive", har, "--format", "sqlite", "--session-id", "", "--out", outDir})
	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&bytes.Buffer{})

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("export command error = %v", err)
	}

	dbPath := filepath.Join(outDir, "sessions.db")
	if _, err := os.Stat(dbPath); err != nil {
		t.Fatalf("Database was not written: %v", err)
	}

	db := testutil.OpenSQLite(t, dbPath)
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM sessions").Scan(&count); err != nil {
		t.Fatalf("Failed to count sessions: %v", err)
	}
	if count != 2 {
		t.Errorf("Database holds %d session(s), want 2", count)
	}
}
