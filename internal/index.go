package internal

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// SessionIndex is the at-a-glance summary written next to the recovered
// artifacts, so listing what a capture yielded does not require re-running
// the pipeline or parsing the full JSON document.
type SessionIndex struct {
	Sessions []IndexEntry `yaml:"sessions"`
	Totals   IndexTotals  `yaml:"totals"`
	Digest   string       `yaml:"digest,omitempty"`
}

// IndexEntry summarizes one recovered session.
type IndexEntry struct {
	ID           string `yaml:"id"`
	StartedAt    string `yaml:"started_at,omitempty"`
	EndedAt      string `yaml:"ended_at,omitempty"`
	MessageCount int    `yaml:"message_count"`
	Responses    int    `yaml:"responses"`
}

// IndexTotals carries run-level counts. Everything here is derived from the
// recovered records, never from the clock, so reruns stay byte-identical.
type IndexTotals struct {
	Sessions    int `yaml:"sessions"`
	Records     int `yaml:"records"`
	Unclustered int `yaml:"unclustered"`
}

// BuildIndex summarizes a recovery result. digest is the canonical digest
// of the combined JSON artifact, empty when unavailable.
func BuildIndex(result *Result, digest string) *SessionIndex {
	index := &SessionIndex{
		Sessions: make([]IndexEntry, 0, len(result.Sessions)),
		Totals: IndexTotals{
			Sessions:    len(result.Sessions),
			Records:     len(result.Records),
			Unclustered: len(result.Unclustered),
		},
		Digest: digest,
	}

	for _, s := range result.Sessions {
		entry := IndexEntry{
			ID:           s.ID,
			MessageCount: len(s.Messages),
		}
		if !s.StartedAt.IsZero() {
			entry.StartedAt = s.StartedAt.UTC().Format(time.RFC3339Nano)
		}
		if !s.EndedAt.IsZero() {
			entry.EndedAt = s.EndedAt.UTC().Format(time.RFC3339Nano)
		}
		for _, m := range s.Messages {
			if m.Response != nil {
				entry.Responses++
			}
		}
		index.Sessions = append(index.Sessions, entry)
	}
	return index
}

// SaveIndex writes the index as sessions.yaml into dir.
func SaveIndex(index *SessionIndex, dir string) error {
	data, err := yaml.Marshal(index)
	if err != nil {
		return fmt.Errorf("failed to marshal index: %w", err)
	}
	path := filepath.Join(dir, "sessions.yaml")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write index: %w", err)
	}
	return nil
}

// LoadIndex reads a previously written sessions.yaml.
func LoadIndex(dir string) (*SessionIndex, error) {
	data, err := os.ReadFile(filepath.Join(dir, "sessions.yaml"))
	if err != nil {
		return nil, err
	}
	var index SessionIndex
	if err := yaml.Unmarshal(data, &index); err != nil {
		return nil, fmt.Errorf("failed to unmarshal index: %w", err)
	}
	return &index, nil
}
