package internal

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strconv"
)

// Deduplicator collapses records captured more than once: overlapping
// pagination windows in the archive hand the same record to the pipeline
// repeatedly.
type Deduplicator struct{}

// NewDeduplicator creates a new Deduplicator.
func NewDeduplicator() *Deduplicator {
	return &Deduplicator{}
}

// Deduplicate keeps one record per (timestamp, prompt) pair and returns the
// survivors in a canonical order. Both the winner among duplicates and the
// ordering are independent of input order, so reruns over the same archive
// produce identical output.
func (d *Deduplicator) Deduplicate(records []RawRecord) []RawRecord {
	seen := make(map[string]int)
	var unique []RawRecord

	for _, rec := range records {
		key := d.recordKey(rec)
		if i, ok := seen[key]; ok {
			unique[i] = preferred(unique[i], rec)
			continue
		}
		seen[key] = len(unique)
		unique = append(unique, rec)
	}

	sortRecords(unique)
	return unique
}

// recordKey hashes the fields that define record identity.
func (d *Deduplicator) recordKey(rec RawRecord) string {
	h := sha256.New()
	h.Write([]byte(strconv.FormatInt(rec.TimestampMicros, 10)))
	h.Write([]byte{0})
	h.Write([]byte(rec.Prompt))
	return hex.EncodeToString(h.Sum(nil))
}

// preferred picks which of two duplicates to keep: a response-bearing
// record wins over a bare one, then ties break on source URL and response
// text so the outcome never depends on encounter order.
func preferred(a, b RawRecord) RawRecord {
	if (a.Response != "") != (b.Response != "") {
		if a.Response != "" {
			return a
		}
		return b
	}
	if a.SourceURL != b.SourceURL {
		if a.SourceURL < b.SourceURL {
			return a
		}
		return b
	}
	if b.Response < a.Response {
		return b
	}
	return a
}

// sortRecords orders records by timestamp, then prompt, then source URL.
// Records without a timestamp sort last so the chronological run stays
// contiguous.
func sortRecords(records []RawRecord) {
	sort.Slice(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if a.HasTimestamp() != b.HasTimestamp() {
			return a.HasTimestamp()
		}
		if a.TimestampMicros != b.TimestampMicros {
			return a.TimestampMicros < b.TimestampMicros
		}
		if a.Prompt != b.Prompt {
			return a.Prompt < b.Prompt
		}
		return a.SourceURL < b.SourceURL
	})
}
