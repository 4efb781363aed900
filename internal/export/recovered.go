package export

import (
	"encoding/json"
	"io"

	"github.com/iksnae/gemini-session/internal"
)

// RecoveredJSON renders the combined recovery artifact: every session in
// chronological order, one document. No sessions yields an empty array, not
// null, so consumers can always range over it.
func RecoveredJSON(sessions []*internal.Session) ([]byte, error) {
	if sessions == nil {
		sessions = []*internal.Session{}
	}
	return json.MarshalIndent(sessions, "", "  ")
}

// WriteRecovered writes the combined recovery artifact.
func WriteRecovered(sessions []*internal.Session, w io.Writer) error {
	data, err := RecoveredJSON(sessions)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return err
	}
	_, err = w.Write([]byte("\n"))
	return err
}

// SessionFileName returns the per-session artifact name for an extension.
// The session ID is already filesystem-safe and sorts chronologically.
func SessionFileName(s *internal.Session, ext string) string {
	return s.ID + "." + ext
}
