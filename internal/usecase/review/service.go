package review

import (
	"context"
	"errors"

	domainreview "speakerdesk/internal/domain/review"
	"speakerdesk/internal/ports"
)

var (
	errFullNameRequired    = errors.New("full name is required")
	errTopicRequired       = errors.New("topic is required")
	errMobilePhoneRequired = errors.New("mobile phone is required")
	errJobRequired         = errors.New("job is required")
	errNominatedByRequired = errors.New("nominated by is required")
	errContactRequired     = errors.New("contact is required")
	errUnknownKind         = errors.New("unknown entry kind")
	errInvalidStatus       = errors.New("invalid status")
	errInvalidRating       = errors.New("rating must be between 0 and 5")
)

type Service struct {
	repo  ports.SpeakerRepository
	uow   ports.UnitOfWork
	cache ports.Cache
}

// NewService wires the review usecases with repository, unit of work and the
// optional best-effort cache.
func NewService(repo ports.SpeakerRepository, uow ports.UnitOfWork, cache ports.Cache) *Service {
	return &Service{
		repo:  repo,
		uow:   uow,
		cache: cache,
	}
}

// ApplicationDetails carries the application-only structural fields.
type ApplicationDetails struct {
	Email                 string
	MobilePhone           string
	WeChatID              string
	Gender                string
	Job                   string
	RehearsalAvailability string
	Idea                  domainreview.IdeaOutline
}

// NominationDetails carries the nomination-only structural fields.
type NominationDetails struct {
	Contact     string
	NominatedBy string
}

type CreateEntryInput struct {
	Kind         domainreview.EntryKind
	FullName     string
	Topic        string
	Status       domainreview.Status
	PriorTEDTalk string
	Application  ApplicationDetails
	Nomination   NominationDetails
}

type UpdateDetailsInput struct {
	ID           string
	Kind         domainreview.EntryKind
	FullName     string
	Topic        string
	PriorTEDTalk string
	Application  ApplicationDetails
	Nomination   NominationDetails
}

func (s *Service) setCacheBestEffort(ctx context.Context, key string, value string) {
	if s.cache == nil {
		return
	}
	_ = s.cache.Set(ctx, key, value, 0)
}
