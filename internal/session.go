package internal

import "time"

// Session is a reconstructed, time-bounded conversation. The grouping is a
// heuristic: the captures carry no conversation identifier, so records are
// clustered by timestamp gap instead.
type Session struct {
	ID        string    `json:"id" yaml:"id"`
	StartedAt time.Time `json:"-" yaml:"-"`
	EndedAt   time.Time `json:"-" yaml:"-"`
	Messages  []Message `json:"messages" yaml:"messages"`
}

// Message is one recovered prompt/response pair in its output form.
type Message struct {
	Date     string  `json:"date" yaml:"date"`
	Prompt   string  `json:"prompt" yaml:"prompt"`
	Response *string `json:"response" yaml:"response"`
}

// SessionID derives the deterministic identifier from a session's start
// time, e.g. Session_20231114_2213.
func SessionID(start time.Time) string {
	return "Session_" + start.UTC().Format("20060102_1504")
}

// NewMessage converts a recovered record into its output form. Absent
// responses become explicit nulls so consumers can tell "no answer
// recovered" from an empty answer.
func NewMessage(rec RawRecord) Message {
	m := Message{Prompt: rec.Prompt}
	if rec.HasTimestamp() {
		m.Date = rec.Time().Format(time.RFC3339Nano)
	}
	if rec.Response != "" {
		resp := rec.Response
		m.Response = &resp
	}
	return m
}

// Span returns how long the session ran.
func (s *Session) Span() time.Duration {
	if s.StartedAt.IsZero() || s.EndedAt.IsZero() {
		return 0
	}
	return s.EndedAt.Sub(s.StartedAt)
}
