package review

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// DefaultActivityLimit caps the session activity log.
const DefaultActivityLimit = 20

// ActivityEvent is a session-local status-change record. It is never
// persisted; the log is rebuilt fresh each session.
type ActivityEvent struct {
	ID        string
	EntryID   string
	Text      string
	Timestamp time.Time
	Status    Status
	Kind      EntryKind
}

// ActivityLog is a bounded, most-recent-first append log.
type ActivityLog struct {
	limit  int
	events []ActivityEvent
}

func NewActivityLog(limit int) *ActivityLog {
	if limit <= 0 {
		limit = DefaultActivityLimit
	}
	return &ActivityLog{limit: limit}
}

// Append records a status change for the entry with the given id, looking up
// its name and kind in the current collection. The oldest events are evicted
// past the cap. Returns false when the entry is unknown.
func (l *ActivityLog) Append(entries []Entry, entryID string, status Status) (ActivityEvent, bool) {
	entry, ok := FindEntry(entries, entryID)
	if !ok {
		return ActivityEvent{}, false
	}

	event := ActivityEvent{
		ID:        uuid.NewString(),
		EntryID:   entryID,
		Text:      statusMessage(entry.Core().FullName, status),
		Timestamp: time.Now(),
		Status:    status,
		Kind:      entry.Kind(),
	}

	l.events = append([]ActivityEvent{event}, l.events...)
	if len(l.events) > l.limit {
		l.events = l.events[:l.limit]
	}
	return event, true
}

// Events returns the log most-recent-first.
func (l *ActivityLog) Events() []ActivityEvent {
	return l.events
}

func (l *ActivityLog) Len() int {
	return len(l.events)
}

var statusTemplates = map[Status]string{
	StatusUnderReview: "%s is back under review",
	StatusShortlisted: "%s was added to the shortlist",
	StatusInvited:     "%s was invited to speak",
	StatusRejected:    "%s was rejected",
	StatusContacted:   "%s was contacted",
	StatusFlagged:     "%s was flagged for attention",
}

func statusMessage(fullName string, status Status) string {
	if template, ok := statusTemplates[status]; ok {
		return fmt.Sprintf(template, fullName)
	}
	return fmt.Sprintf("%s changed status to %s", fullName, status.Display())
}
