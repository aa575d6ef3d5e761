package review

import (
	"context"
	"errors"
	"strings"

	domainreview "speakerdesk/internal/domain/review"
	"speakerdesk/internal/ports"
)

// UpdateDetails replaces an entry's structural fields. Status, rating, notes
// and the flag are deliberately untouched; status changes travel through
// UpdateStatus as a second call (the edit form treats the pair as one logical
// transaction and only applies locally when both succeed).
func (s *Service) UpdateDetails(ctx context.Context, input UpdateDetailsInput) error {
	if err := s.checkMutation(ctx); err != nil {
		return err
	}
	if strings.TrimSpace(input.ID) == "" {
		return errors.New("entry id is required")
	}
	if err := validateEntryFields(input.Kind, input.FullName, input.Topic, input.Application, input.Nomination); err != nil {
		return err
	}

	switch input.Kind {
	case domainreview.KindApplication:
		return s.repo.UpdateApplicationDetails(ctx, ports.SpeakerApplication{
			ID:                    input.ID,
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
		})
	case domainreview.KindNomination:
		return s.repo.UpdateNominationDetails(ctx, ports.SpeakerNomination{
			ID:           input.ID,
			FullName:     strings.TrimSpace(input.FullName),
			Topic:        strings.TrimSpace(input.Topic),
			Contact:      strings.TrimSpace(input.Nomination.Contact),
			NominatedBy:  strings.TrimSpace(input.Nomination.NominatedBy),
			PriorTEDTalk: strings.TrimSpace(input.PriorTEDTalk),
		})
	default:
		return errUnknownKind
	}
}
