package internal

import (
	"time"
)

// Clusterer groups deduplicated records into sessions: consecutive records
// no further apart than the gap belong together, a larger silence starts a
// new session. The gap is a heuristic standing in for the conversation
// identifier the captures never carry.
type Clusterer struct {
	gap time.Duration
}

// NewClusterer creates a Clusterer with the given idle gap.
func NewClusterer(gap time.Duration) *Clusterer {
	return &Clusterer{gap: gap}
}

// Cluster returns chronological sessions plus the records that had no
// usable timestamp and therefore cannot be placed. Input order does not
// matter; records are sorted before grouping.
func (c *Clusterer) Cluster(records []RawRecord) ([]*Session, []RawRecord) {
	var timed, untimed []RawRecord
	for _, rec := range records {
		if rec.HasTimestamp() {
			timed = append(timed, rec)
		} else {
			untimed = append(untimed, rec)
		}
	}
	sortRecords(timed)
	sortRecords(untimed)

	gapMicros := c.gap.Microseconds()
	var sessions []*Session
	var current *Session
	var prev int64

	for _, rec := range timed {
		if current == nil || rec.TimestampMicros-prev > gapMicros {
			start := rec.Time()
			current = &Session{
				ID:        SessionID(start),
				StartedAt: start,
				EndedAt:   start,
			}
			sessions = append(sessions, current)
		}
		current.Messages = append(current.Messages, NewMessage(rec))
		current.EndedAt = rec.Time()
		prev = rec.TimestampMicros
	}

	return sessions, untimed
}
