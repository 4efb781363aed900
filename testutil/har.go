package testutil

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
)

// HAREntry describes one exchange in a generated test capture.
type HAREntry struct {
	URL      string
	MimeType string
	Text     string
	Encoding string
}

// BuildHAR renders a minimal HAR 1.2 document containing the given entries.
func BuildHAR(t *testing.T, entries []HAREntry) []byte {
	t.Helper()

	harEntries := make([]map[string]interface{}, len(entries))
	for i, e := range entries {
		content := map[string]interface{}{
			"mimeType": e.MimeType,
			"text":     e.Text,
		}
		if e.Encoding != "" {
			content["encoding"] = e.Encoding
		}
		harEntries[i] = map[string]interface{}{
			"request": map[string]interface{}{
				"method": "GET",
				"url":    e.URL,
			},
			"response": map[string]interface{}{
				"status":  200,
				"content": content,
			},
		}
	}

	doc := map[string]interface{}{
		"log": map[string]interface{}{
			"version": "1.2",
			"creator": map[string]interface{}{"name": "test", "version": "1.0"},
			"entries": harEntries,
		},
	}

	data, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("Failed to build HAR document: %v", err)
	}
	return data
}

// WriteHAR writes a capture built from entries into dir and returns its
// path.
func WriteHAR(t *testing.T, dir string, entries []HAREntry) string {
	t.Helper()
	path := filepath.Join(dir, "capture.har")
	if err := os.WriteFile(path, BuildHAR(t, entries), 0644); err != nil {
		t.Fatalf("Failed to write HAR fixture: %v", err)
	}
	return path
}

// EnvelopeBody wraps inner JSON payloads the way the service serves them:
// guard prefix, length-indicator line, then one batched-RPC envelope with a
// chunk per payload. Each payload is JSON-string-encoded into its chunk, so
// reading it back needs the usual double parse.
func EnvelopeBody(payloads ...string) string {
	chunks := make([]string, len(payloads))
	for i, p := range payloads {
		inner, _ := json.Marshal(p)
		chunks[i] = fmt.Sprintf(`["wrb.fr","rpc%d",%s]`, i+1, inner)
	}
	body := "[" + strings.Join(chunks, ",") + "]"
	return ")]}'\n" + strconv.Itoa(len(body)) + "\n" + body
}

// RecordPayload renders the inner JSON for one prompt record the way the
// activity endpoint lays it out: timestamp in the fifth cell, signature
// sequence further along.
func RecordPayload(prompt string, micros int64) string {
	return fmt.Sprintf(`[[null,null,null,null,%d,null,null,null,null,[%q,true,"Prompted"]]]`, micros, prompt)
}

// Base64Entry builds an exchange whose body rides base64-encoded, the way
// browsers export binary-ish bodies.
func Base64Entry(url, body string) HAREntry {
	return HAREntry{
		URL:      url,
		MimeType: "application/json",
		Encoding: "base64",
		Text:     base64.StdEncoding.EncodeToString([]byte(body)),
	}
}

// JSONEntry builds a plain JSON exchange.
func JSONEntry(url, body string) HAREntry {
	return HAREntry{
		URL:      url,
		MimeType: "application/json",
		Text:     body,
	}
}
