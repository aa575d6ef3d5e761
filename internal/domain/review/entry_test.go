package review

import (
	"testing"
	"time"
)

func sampleApplication(id string, name string, status Status) Entry {
	return Application{
		EntryCore: EntryCore{
			ID:          id,
			FullName:    name,
			Topic:       "topic",
			Status:      status,
			SubmittedAt: time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC),
		},
		MobilePhone: "555-0100",
		Job:         "engineer",
	}
}

func TestWithCoreReturnsCopy(t *testing.T) {
	original := sampleApplication("a1", "Jane Doe", StatusUnderReview)

	core := original.Core()
	core.Status = StatusInvited
	core.Rating = 4
	modified := original.WithCore(core)

	if original.Core().Status != StatusUnderReview {
		t.Fatalf("original status changed to %s", original.Core().Status)
	}
	if modified.Core().Status != StatusInvited || modified.Core().Rating != 4 {
		t.Fatalf("modified core = %+v", modified.Core())
	}
	if modified.Kind() != KindApplication {
		t.Fatalf("kind changed to %s", modified.Kind())
	}
	if modified.(Application).MobilePhone != "555-0100" {
		t.Fatalf("variant fields must survive WithCore")
	}
}

func TestReplaceEntryDoesNotMutateInput(t *testing.T) {
	entries := []Entry{
		sampleApplication("a1", "Jane Doe", StatusUnderReview),
		sampleApplication("a2", "Mo Chen", StatusUnderReview),
	}

	next, found := ReplaceEntry(entries, "a2", func(entry Entry) Entry {
		core := entry.Core()
		core.Status = StatusRejected
		return entry.WithCore(core)
	})
	if !found {
		t.Fatalf("ReplaceEntry did not find a2")
	}
	if entries[1].Core().Status != StatusUnderReview {
		t.Fatalf("input slice was mutated")
	}
	if next[1].Core().Status != StatusRejected {
		t.Fatalf("replacement missing, status = %s", next[1].Core().Status)
	}
	if next[0].Core().ID != "a1" {
		t.Fatalf("order changed")
	}
}

func TestReplaceEntryUnknownID(t *testing.T) {
	entries := []Entry{sampleApplication("a1", "Jane Doe", StatusUnderReview)}

	next, found := ReplaceEntry(entries, "missing", func(entry Entry) Entry { return entry })
	if found {
		t.Fatalf("found unknown id")
	}
	if len(next) != 1 || next[0].Core().ID != "a1" {
		t.Fatalf("unknown id must return the input unchanged")
	}
}

func TestPrependEntry(t *testing.T) {
	entries := []Entry{sampleApplication("a1", "Jane Doe", StatusUnderReview)}
	next := PrependEntry(entries, sampleApplication("a2", "Mo Chen", StatusUnderReview))

	if len(next) != 2 || next[0].Core().ID != "a2" || next[1].Core().ID != "a1" {
		t.Fatalf("prepend order wrong: %s, %s", next[0].Core().ID, next[1].Core().ID)
	}
	if len(entries) != 1 {
		t.Fatalf("input slice was grown")
	}
}

func TestParseStatus(t *testing.T) {
	testCases := []struct {
		input string
		want  Status
		ok    bool
	}{
		{input: "shortlisted", want: StatusShortlisted, ok: true},
		{input: " Under_Review ", want: StatusUnderReview, ok: true},
		{input: "INVITED", want: StatusInvited, ok: true},
		{input: "archived", ok: false},
		{input: "", ok: false},
	}

	for _, testCase := range testCases {
		got, ok := ParseStatus(testCase.input)
		if ok != testCase.ok || got != testCase.want {
			t.Fatalf("ParseStatus(%q) = (%q, %v), want (%q, %v)", testCase.input, got, ok, testCase.want, testCase.ok)
		}
	}
}

func TestStatusDisplay(t *testing.T) {
	if got := StatusUnderReview.Display(); got != "under review" {
		t.Fatalf("Display() = %q, want %q", got, "under review")
	}
	if got := StatusShortlisted.Display(); got != "shortlisted" {
		t.Fatalf("Display() = %q, want %q", got, "shortlisted")
	}
}
