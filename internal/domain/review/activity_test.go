package review

import (
	"fmt"
	"testing"
	"time"
)

func TestActivityLogAppendAndTemplates(t *testing.T) {
	entries := []Entry{
		sampleApplication("a1", "Jane Doe", StatusUnderReview),
	}
	log := NewActivityLog(DefaultActivityLimit)

	testCases := []struct {
		status Status
		want   string
	}{
		{status: StatusShortlisted, want: "Jane Doe was added to the shortlist"},
		{status: StatusInvited, want: "Jane Doe was invited to speak"},
		{status: StatusRejected, want: "Jane Doe was rejected"},
		{status: StatusContacted, want: "Jane Doe was contacted"},
		{status: StatusFlagged, want: "Jane Doe was flagged for attention"},
		{status: StatusUnderReview, want: "Jane Doe is back under review"},
	}

	for _, testCase := range testCases {
		event, ok := log.Append(entries, "a1", testCase.status)
		if !ok {
			t.Fatalf("Append(%s) failed", testCase.status)
		}
		if event.Text != testCase.want {
			t.Fatalf("text = %q, want %q", event.Text, testCase.want)
		}
		if event.EntryID != "a1" || event.Kind != KindApplication {
			t.Fatalf("event = %+v", event)
		}
		if event.ID == "" {
			t.Fatalf("event id must be assigned")
		}
	}

	if log.Len() != len(testCases) {
		t.Fatalf("len = %d, want %d", log.Len(), len(testCases))
	}
	// Most recent first.
	if log.Events()[0].Status != StatusUnderReview {
		t.Fatalf("newest event status = %s", log.Events()[0].Status)
	}
}

func TestActivityLogEvictsOldestPastCap(t *testing.T) {
	base := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
	entries := make([]Entry, 0, 25)
	for i := 0; i < 25; i++ {
		entries = append(entries, Application{EntryCore: EntryCore{
			ID:          fmt.Sprintf("a%02d", i),
			FullName:    fmt.Sprintf("Speaker %02d", i),
			Status:      StatusUnderReview,
			SubmittedAt: base,
		}})
	}

	log := NewActivityLog(20)
	for i := 0; i < 25; i++ {
		if _, ok := log.Append(entries, fmt.Sprintf("a%02d", i), StatusShortlisted); !ok {
			t.Fatalf("append %d failed", i)
		}
	}

	if log.Len() != 20 {
		t.Fatalf("len = %d, want 20", log.Len())
	}
	events := log.Events()
	if events[0].EntryID != "a24" {
		t.Fatalf("newest = %s, want a24", events[0].EntryID)
	}
	if events[19].EntryID != "a05" {
		t.Fatalf("oldest kept = %s, want a05", events[19].EntryID)
	}
}

func TestActivityLogUnknownEntry(t *testing.T) {
	log := NewActivityLog(0)
	if _, ok := log.Append(nil, "missing", StatusInvited); ok {
		t.Fatalf("append for unknown entry must fail")
	}
	if log.Len() != 0 {
		t.Fatalf("failed append must not grow the log")
	}
}
