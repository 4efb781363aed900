package internal

import (
	"encoding/base64"
	"encoding/json"
	"io"
	"strings"
)

// Normalizer turns one captured body into the discrete structured values it
// carries: transport decode, guard strip, then concatenated-JSON split.
type Normalizer struct {
	guard string
}

// NewNormalizer creates a Normalizer for the given anti-scraping guard
// prefix.
func NewNormalizer(guard string) *Normalizer {
	return &Normalizer{guard: guard}
}

// DecodeBody reverses the transport encoding the archive declared for the
// exchange. Only base64 occurs in practice; anything else passes through.
func (n *Normalizer) DecodeBody(ex CapturedExchange) (string, error) {
	if ex.Encoding != "base64" {
		return ex.Body, nil
	}
	raw, err := base64.StdEncoding.DecodeString(ex.Body)
	if err != nil {
		return "", &DecodeError{URL: ex.URL, Stage: "base64", Err: err}
	}
	return string(raw), nil
}

// StripGuard removes the anti-scraping guard prefix and, when one follows,
// the length-indicator line after it. Bodies without the guard come back
// unchanged, so feeding already-clean text through is harmless.
func (n *Normalizer) StripGuard(text string) string {
	if n.guard == "" || !strings.HasPrefix(text, n.guard) {
		return text
	}
	text = strings.TrimLeft(text[len(n.guard):], "\r\n")
	if i := strings.IndexByte(text, '\n'); i > 0 && isDigits(strings.TrimSpace(text[:i])) {
		text = text[i+1:]
	}
	return text
}

// SplitValues strips the guard and parses as many concatenated top-level
// JSON values as the text holds. A trailing remainder that does not parse
// is discarded; everything decoded before it is kept.
func (n *Normalizer) SplitValues(text string) []any {
	text = n.StripGuard(text)

	dec := json.NewDecoder(strings.NewReader(text))
	dec.UseNumber()

	var values []any
	for {
		var v any
		if err := dec.Decode(&v); err != nil {
			if err != io.EOF {
				Log().Debug().
					Int64("offset", dec.InputOffset()).
					Err(err).
					Msg("discarding unparseable remainder")
			}
			break
		}
		values = append(values, v)
	}
	return values
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
