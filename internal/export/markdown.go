package export

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/iksnae/gemini-session/internal"
)

// MarkdownExporter exports sessions in Markdown format
type MarkdownExporter struct{}

// Export exports a session to Markdown format
func (e *MarkdownExporter) Export(session *internal.Session, w io.Writer) error {
	_, _ = fmt.Fprintf(w, "# %s\n\n", session.ID)

	if !session.StartedAt.IsZero() {
		_, _ = fmt.Fprintf(w, "**Started:** %s  \n", session.StartedAt.UTC().Format("2006-01-02 15:04 MST"))
	}
	_, _ = fmt.Fprintf(w, "**Messages:** %d\n\n", len(session.Messages))
	_, _ = fmt.Fprintf(w, "---\n\n")

	for i, msg := range session.Messages {
		_, _ = fmt.Fprintf(w, "### %s\n\n", messageHeading(msg.Date))
		_, _ = fmt.Fprintf(w, "%s\n\n", blockquote(msg.Prompt))

		if msg.Response != nil {
			// Responses are already markdown, rendered from the captured HTML
			_, _ = fmt.Fprintf(w, "%s\n\n", strings.TrimSpace(*msg.Response))
		} else {
			_, _ = fmt.Fprintf(w, "_(no response recovered)_\n\n")
		}

		if i < len(session.Messages)-1 {
			_, _ = fmt.Fprintf(w, "---\n\n")
		}
	}

	return nil
}

// messageHeading renders a message date as a bracketed minute-resolution
// heading. Messages without a date get an explicit placeholder.
func messageHeading(date string) string {
	if date == "" {
		return "[no timestamp]"
	}
	t, err := time.Parse(time.RFC3339Nano, date)
	if err != nil {
		return "[" + date + "]"
	}
	return t.UTC().Format("[2006-01-02 15:04]")
}

// blockquote prefixes every prompt line so multi-line prompts stay one
// quoted block.
func blockquote(text string) string {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	for i, line := range lines {
		lines[i] = "> " + line
	}
	return strings.Join(lines, "\n")
}

// Extension returns the file extension for this format
func (e *MarkdownExporter) Extension() string {
	return "md"
}
