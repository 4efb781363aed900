package export

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/iksnae/gemini-session/internal"
)

// JSONLExporter exports sessions in JSONL format (one message per line)
type JSONLExporter struct{}

// Export exports a session to JSONL format
func (e *JSONLExporter) Export(session *internal.Session, w io.Writer) error {
	enc := json.NewEncoder(w)

	for _, msg := range session.Messages {
		obj := map[string]interface{}{
			"session": session.ID,
			"prompt":  msg.Prompt,
		}

		// Optional fields stay out of the line entirely when absent
		if msg.Date != "" {
			obj["date"] = msg.Date
		}
		if msg.Response != nil {
			obj["response"] = *msg.Response
		}

		if err := enc.Encode(obj); err != nil {
			return fmt.Errorf("failed to encode message: %w", err)
		}
	}

	return nil
}

// Extension returns the file extension for this format
func (e *JSONLExporter) Extension() string {
	return "jsonl"
}
