package internal

import "encoding/json"

// maxDeclaredCount bounds what the integrity check will believe as a
// server-declared item count. Larger integers at the top level are
// timestamps or identifiers, not counts.
const maxDeclaredCount = 1_000_000

// DeclaredCount looks for a server-declared item count in an unwrapped
// payload: a standalone non-negative integer sitting at the top level of
// the sequence. Returns false when the payload declares nothing.
func DeclaredCount(v any) (int64, bool) {
	seq, ok := asSequence(v)
	if !ok {
		return 0, false
	}
	for _, el := range seq {
		n, ok := el.(json.Number)
		if !ok {
			continue
		}
		c, err := n.Int64()
		if err != nil || c < 0 || c >= maxDeclaredCount {
			continue
		}
		return c, true
	}
	return 0, false
}

// CheckIntegrity builds the advisory report for one exchange. A mismatch
// flags likely truncation or a layout drift the scanner missed, but never
// fails the run.
func CheckIntegrity(sourceURL string, expected *int64, observed int) IntegrityReport {
	rep := IntegrityReport{
		SourceURL:     sourceURL,
		ExpectedCount: expected,
		ObservedCount: observed,
		Match:         true,
	}
	if expected != nil && *expected != int64(observed) {
		rep.Match = false
	}
	return rep
}
