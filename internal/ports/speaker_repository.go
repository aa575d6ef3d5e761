package ports

import (
	"context"
	"errors"
)

var ErrEntryNotFound = errors.New("speaker entry not found")

// SpeakerApplication is the persistence shape of a self-submitted candidacy.
// Timestamps travel as RFC3339Nano strings at this boundary.
type SpeakerApplication struct {
	ID                    string
	FullName              string
	Topic                 string
	Email                 string
	MobilePhone           string
	WeChatID              string
	Gender                string
	Job                   string
	RehearsalAvailability string
	CommonBelief          string
	CoreIdea              string
	PersonalInsight       string
	PotentialImpact       string
	PriorTEDTalk          string
	Status                string
	Flagged               bool
	Notes                 string
	Rating                int
	SubmittedAt           string
}

// SpeakerNomination is the persistence shape of a third-party candidacy.
type SpeakerNomination struct {
	ID           string
	FullName     string
	Topic        string
	Contact      string
	NominatedBy  string
	PriorTEDTalk string
	Status       string
	Flagged      bool
	Notes        string
	Rating       int
	SubmittedAt  string
}

type SpeakerReadRepository interface {
	ListApplications(ctx context.Context) ([]SpeakerApplication, error)
	ListNominations(ctx context.Context) ([]SpeakerNomination, error)
	GetApplication(ctx context.Context, id string) (SpeakerApplication, error)
	GetNomination(ctx context.Context, id string) (SpeakerNomination, error)
}

// SpeakerRepository exposes one operation pair per entry kind, mirroring the
// two underlying tables. Expected failures surface as errors
// (ErrEntryNotFound for missing ids); implementations never panic on them.
type SpeakerRepository interface {
	SpeakerReadRepository

	CreateApplication(ctx context.Context, application SpeakerApplication) (SpeakerApplication, error)
	CreateNomination(ctx context.Context, nomination SpeakerNomination) (SpeakerNomination, error)

	UpdateApplicationStatus(ctx context.Context, id string, status string) error
	UpdateNominationStatus(ctx context.Context, id string, status string) error

	UpdateApplicationRating(ctx context.Context, id string, rating int) error
	UpdateNominationRating(ctx context.Context, id string, rating int) error

	UpdateApplicationNotes(ctx context.Context, id string, notes string) error
	UpdateNominationNotes(ctx context.Context, id string, notes string) error

	SetApplicationFlagged(ctx context.Context, id string, flagged bool) error
	SetNominationFlagged(ctx context.Context, id string, flagged bool) error

	// UpdateDetails variants replace structural fields only; status, rating,
	// notes and the flag keep their stored values.
	UpdateApplicationDetails(ctx context.Context, application SpeakerApplication) error
	UpdateNominationDetails(ctx context.Context, nomination SpeakerNomination) error
}
