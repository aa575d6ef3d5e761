package review

import (
	"strings"
	"time"
)

// Status is the triage state of an entry. The set is flat: any status may
// move to any other directly.
type Status string

const (
	StatusUnderReview Status = "under_review"
	StatusShortlisted Status = "shortlisted"
	StatusInvited     Status = "invited"
	StatusRejected    Status = "rejected"
	StatusContacted   Status = "contacted"
	StatusFlagged     Status = "flagged"
)

// AllStatuses lists every status in display order.
var AllStatuses = []Status{
	StatusUnderReview,
	StatusShortlisted,
	StatusInvited,
	StatusRejected,
	StatusContacted,
	StatusFlagged,
}

func (s Status) Valid() bool {
	for _, known := range AllStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// Display renders the status for humans (underscores become spaces).
func (s Status) Display() string {
	return strings.ReplaceAll(string(s), "_", " ")
}

func ParseStatus(raw string) (Status, bool) {
	status := Status(strings.ToLower(strings.TrimSpace(raw)))
	if !status.Valid() {
		return "", false
	}
	return status, true
}

type EntryKind string

const (
	KindApplication EntryKind = "application"
	KindNomination  EntryKind = "nomination"
)

func (k EntryKind) Valid() bool {
	return k == KindApplication || k == KindNomination
}

const (
	MinRating = 0
	MaxRating = 5
)

// EntryCore holds the fields shared by both entry kinds.
type EntryCore struct {
	ID           string
	FullName     string
	Topic        string
	Status       Status
	PriorTEDTalk string
	Flagged      bool
	Notes        string
	Rating       int
	SubmittedAt  time.Time
}

// Entry is the sum type over the two reviewable kinds. Variant fields are
// only reachable through a type switch on the concrete value, so a wrong-kind
// access cannot compile. Implementations use value receivers: WithCore
// returns a modified copy and never touches the original.
type Entry interface {
	Kind() EntryKind
	Core() EntryCore
	WithCore(core EntryCore) Entry
}

// IdeaOutline is the structured talk-idea section of an application.
type IdeaOutline struct {
	CommonBelief    string
	CoreIdea        string
	PersonalInsight string
	PotentialImpact string
}

// Application is a self-submitted candidacy.
type Application struct {
	EntryCore

	Email                 string
	MobilePhone           string
	WeChatID              string
	Gender                string
	Job                   string
	RehearsalAvailability string
	Idea                  IdeaOutline
}

func (a Application) Kind() EntryKind { return KindApplication }
func (a Application) Core() EntryCore { return a.EntryCore }

func (a Application) WithCore(core EntryCore) Entry {
	a.EntryCore = core
	return a
}

// Nomination is a third-party-submitted candidacy.
type Nomination struct {
	EntryCore

	Contact     string
	NominatedBy string
}

func (n Nomination) Kind() EntryKind { return KindNomination }
func (n Nomination) Core() EntryCore { return n.EntryCore }

func (n Nomination) WithCore(core EntryCore) Entry {
	n.EntryCore = core
	return n
}

// FindEntry returns the entry with the given id, if present.
func FindEntry(entries []Entry, id string) (Entry, bool) {
	for _, entry := range entries {
		if entry.Core().ID == id {
			return entry, true
		}
	}
	return nil, false
}

// ReplaceEntry produces a new slice in which the entry with the given id is
// replaced by apply(entry). The input slice is never mutated. The second
// return reports whether the id was found.
func ReplaceEntry(entries []Entry, id string, apply func(Entry) Entry) ([]Entry, bool) {
	replaced := false
	out := make([]Entry, len(entries))
	for index, entry := range entries {
		if !replaced && entry.Core().ID == id {
			out[index] = apply(entry)
			replaced = true
			continue
		}
		out[index] = entry
	}
	if !replaced {
		return entries, false
	}
	return out, true
}

// PrependEntry returns a new slice with entry at the front.
func PrependEntry(entries []Entry, entry Entry) []Entry {
	out := make([]Entry, 0, len(entries)+1)
	out = append(out, entry)
	out = append(out, entries...)
	return out
}
