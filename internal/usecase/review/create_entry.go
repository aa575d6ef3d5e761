package review

import (
	"context"
	"strings"

	domainreview "speakerdesk/internal/domain/review"
	"speakerdesk/internal/ports"
)

// CreateEntry validates and persists a new entry of either kind. The
// repository assigns the id; the submission instant is set here. The created
// entry is returned in domain form so callers can prepend it locally.
func (s *Service) CreateEntry(ctx context.Context, input CreateEntryInput) (domainreview.Entry, error) {
	if err := s.checkMutation(ctx); err != nil {
		return nil, err
	}
	if err := validateEntryFields(input.Kind, input.FullName, input.Topic, input.Application, input.Nomination); err != nil {
		return nil, err
	}

	status := input.Status
	if status == "" {
		status = domainreview.StatusUnderReview
	}
	if !status.Valid() {
		return nil, errInvalidStatus
	}

	now := nowUTCString()

	switch input.Kind {
	case domainreview.KindApplication:
		created, err := s.repo.CreateApplication(ctx, ports.SpeakerApplication{
			FullName:              strings.TrimSpace(input.FullName),
			Topic:                 strings.TrimSpace(input.Topic),
			Email:                 strings.TrimSpace(input.Application.Email),
			MobilePhone:           strings.TrimSpace(input.Application.MobilePhone),
			WeChatID:              strings.TrimSpace(input.Application.WeChatID),
			Gender:                strings.TrimSpace(input.Application.Gender),
			Job:                   strings.TrimSpace(input.Application.Job),
			RehearsalAvailability: strings.TrimSpace(input.Application.RehearsalAvailability),
			CommonBelief:          input.Application.Idea.CommonBelief,
			CoreIdea:              input.Application.Idea.CoreIdea,
			PersonalInsight:       input.Application.Idea.PersonalInsight,
			PotentialImpact:       input.Application.Idea.PotentialImpact,
			PriorTEDTalk:          strings.TrimSpace(input.PriorTEDTalk),
			Status:                string(status),
			SubmittedAt:           now,
		})
		if err != nil {
			return nil, err
		}
		s.setCacheBestEffort(ctx, cacheEntryStatusKey(created.ID), created.Status)
		return entryFromApplication(created), nil

	case domainreview.KindNomination:
		created, err := s.repo.CreateNomination(ctx, ports.SpeakerNomination{
			FullName:     strings.TrimSpace(input.FullName),
			Topic:        strings.TrimSpace(input.Topic),
			Contact:      strings.TrimSpace(input.Nomination.Contact),
			NominatedBy:  strings.TrimSpace(input.Nomination.NominatedBy),
			PriorTEDTalk: strings.TrimSpace(input.PriorTEDTalk),
			Status:       string(status),
			SubmittedAt:  now,
		})
		if err != nil {
			return nil, err
		}
		s.setCacheBestEffort(ctx, cacheEntryStatusKey(created.ID), created.Status)
		return entryFromNomination(created), nil

	default:
		return nil, errUnknownKind
	}
}

// validateEntryFields enforces the required set per kind, in the order the
// review form reports them: full name, topic, then the kind-specific pair.
func validateEntryFields(kind domainreview.EntryKind, fullName string, topic string, application ApplicationDetails, nomination NominationDetails) error {
	if strings.TrimSpace(fullName) == "" {
		return errFullNameRequired
	}
	if strings.TrimSpace(topic) == "" {
		return errTopicRequired
	}

	switch kind {
	case domainreview.KindApplication:
		if strings.TrimSpace(application.MobilePhone) == "" {
			return errMobilePhoneRequired
		}
		if strings.TrimSpace(application.Job) == "" {
			return errJobRequired
		}
		return nil
	case domainreview.KindNomination:
		if strings.TrimSpace(nomination.NominatedBy) == "" {
			return errNominatedByRequired
		}
		if strings.TrimSpace(nomination.Contact) == "" {
			return errContactRequired
		}
		return nil
	default:
		return errUnknownKind
	}
}
