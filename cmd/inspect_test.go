package cmd

import (
	"bytes"
	"testing"

	"github.com/iksnae/gemini-session/internal"
	"github.com/iksnae/gemini-session/testutil"
)

func TestInspectCommand(t *testing.T) {
	dir := testutil.CreateTempDir(t)
	har := testCapturePath(t, dir)
	t.Cleanup(func() {
		archivePath = ""
		inspectAll = false
		inspectSample = 0
	})

	tests := []struct {
		name    string
		args    []string
		wantErr bool
	}{
		{
			name:    "positional capture path",
			args:    []string{"inspect", har},
			wantErr: false,
		},
		{
			name:    "archive flag",
			args:    []string{"inspect", "--archive", har},
			wantErr: false,
		},
		{
			name:    "nonexistent capture",
			args:    []string{"inspect", "/nonexistent/capture.har"},
			wantErr: true,
		},
		{
			name:    "show silent exchanges",
			args:    []string{"inspect", har, "--all"},
			wantErr: false,
		},
		{
			name:    "with body previews",
			args:    []string{"inspect", har, "--sample", "80"},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rootCmd.SetArgs(tt.args)
			rootCmd.SetOut(&bytes.Buffer{})
			rootCmd.SetErr(&bytes.Buffer{})

			err := rootCmd.Execute()
			if (err != nil) != tt.wantErr {
				t.Errorf("inspectCmd.Execute() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestDisplayTriage(t *testing.T) {
	cfg := internal.DefaultConfig()
	archive := &internal.Archive{
		Path: "capture.har",
		Exchanges: []internal.CapturedExchange{
			{URL: "https://gemini.google.com/_/BardChatUi/data/batchexecute", MimeType: "application/json", Body: "[]"},
			{URL: "https://gemini.google.com/static/app.js", MimeType: "text/javascript", Encoding: "base64"},
		},
	}

	tests := []struct {
		name    string
		entries []internal.TriageEntry
	}{
		{
			name:    "no entries",
			entries: nil,
		},
		{
			name: "contributing and silent exchanges",
			entries: []internal.TriageEntry{
				{URL: archive.Exchanges[0].URL, MimeType: "application/json", BodyBytes: 2048, Values: 3, Records: 2},
				{URL: archive.Exchanges[1].URL, MimeType: "text/javascript", Encoding: "base64", BodyBytes: 51200},
			},
		},
		{
			name: "only silent exchanges",
			entries: []internal.TriageEntry{
				{URL: archive.Exchanges[1].URL, MimeType: "text/javascript", BodyBytes: 100},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Test that function doesn't panic
			displayTriage(archive, tt.entries, cfg)
		})
	}
}
