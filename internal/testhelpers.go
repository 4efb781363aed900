package internal

import (
	"time"
)

// Fixed base instant used across tests: 2023-11-14T22:13:20Z.
const testBaseMicros = int64(1_700_000_000_000_000)

// CreateTestRecord creates a record offset the given number of minutes from
// the fixed base instant.
func CreateTestRecord(prompt string, minutesAfterBase int) RawRecord {
	return RawRecord{
		TimestampMicros: testBaseMicros + int64(minutesAfterBase)*60_000_000,
		Prompt:          prompt,
		SourceURL:       "https://example.com/activity?page=1",
	}
}

// CreateTestSession creates a session with custom messages
func CreateTestSession(id string, messages []Message) *Session {
	start := time.UnixMicro(testBaseMicros).UTC()
	return &Session{
		ID:        id,
		StartedAt: start,
		EndedAt:   start.Add(time.Duration(len(messages)) * time.Minute),
		Messages:  messages,
	}
}

// CreateTestMessage creates a message with an optional response
func CreateTestMessage(prompt, response string, minutesAfterBase int) Message {
	m := Message{
		Date:   time.UnixMicro(testBaseMicros + int64(minutesAfterBase)*60_000_000).UTC().Format(time.RFC3339Nano),
		Prompt: prompt,
	}
	if response != "" {
		m.Response = &response
	}
	return m
}
