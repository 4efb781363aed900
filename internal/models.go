package internal

import "time"

// CapturedExchange is one request/response pair lifted out of the capture
// archive. Immutable once loaded: the pipeline reads it, nothing writes it
// back.
type CapturedExchange struct {
	URL      string
	MimeType string
	Encoding string // transport encoding tag, "base64" or ""
	Body     string
}

// RawRecord is a single recovered prompt record, produced by the extractor
// from one signature match.
type RawRecord struct {
	TimestampMicros int64  // microseconds since the Unix epoch, 0 when unrecoverable
	Prompt          string
	Response        string // rendered response fragment, "" when absent
	SourceURL       string // request URL of the exchange the record came from
}

// HasTimestamp reports whether the source carried a usable timestamp.
func (r RawRecord) HasTimestamp() bool {
	return r.TimestampMicros != 0
}

// Time returns the record timestamp in UTC.
func (r RawRecord) Time() time.Time {
	return time.UnixMicro(r.TimestampMicros).UTC()
}

// IntegrityReport compares the records extracted from one exchange against
// the count the server declared for it. Advisory only: a mismatch is
// reported, never acted on.
type IntegrityReport struct {
	SourceURL     string `json:"source_url"`
	ExpectedCount *int64 `json:"expected_count,omitempty"`
	ObservedCount int    `json:"observed_count"`
	Match         bool   `json:"match"`
}

// Stats counts what a pipeline run saw and what it skipped.
type Stats struct {
	Exchanges      int // exchanges present in the archive
	DecodeFailures int // exchanges skipped because the body would not decode
	Values         int // structured values recovered from bodies
	Envelopes      int // values that carried the RPC envelope shape
	Matches        int // signature matches found by the scanner
	Extracted      int // records extracted before deduplication
	Duplicates     int // records dropped as duplicates
	NoTimestamp    int // unique records lacking a timestamp
	Mismatches     int // integrity reports where expected != observed
}
