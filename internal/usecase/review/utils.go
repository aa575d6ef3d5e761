package review

import (
	"time"

	domainreview "speakerdesk/internal/domain/review"
	"speakerdesk/internal/ports"
)

func nowUTCString() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}

func cacheEntryStatusKey(id string) string {
	return "entry_status:" + id
}

func parseSubmittedAt(raw string) time.Time {
	if parsed, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		return parsed
	}
	if parsed, err := time.Parse(time.RFC3339, raw); err == nil {
		return parsed
	}
	return time.Time{}
}

func parseStoredStatus(raw string) domainreview.Status {
	if status, ok := domainreview.ParseStatus(raw); ok {
		return status
	}
	return domainreview.StatusUnderReview
}

func entryFromApplication(row ports.SpeakerApplication) domainreview.Application {
	return domainreview.Application{
		EntryCore: domainreview.EntryCore{
			ID:           row.ID,
			FullName:     row.FullName,
			Topic:        row.Topic,
			Status:       parseStoredStatus(row.Status),
			PriorTEDTalk: row.PriorTEDTalk,
			Flagged:      row.Flagged,
			Notes:        row.Notes,
			Rating:       row.Rating,
			SubmittedAt:  parseSubmittedAt(row.SubmittedAt),
		},
		Email:                 row.Email,
		MobilePhone:           row.MobilePhone,
		WeChatID:              row.WeChatID,
		Gender:                row.Gender,
		Job:                   row.Job,
		RehearsalAvailability: row.RehearsalAvailability,
		Idea: domainreview.IdeaOutline{
			CommonBelief:    row.CommonBelief,
			CoreIdea:        row.CoreIdea,
			PersonalInsight: row.PersonalInsight,
			PotentialImpact: row.PotentialImpact,
		},
	}
}

func entryFromNomination(row ports.SpeakerNomination) domainreview.Nomination {
	return domainreview.Nomination{
		EntryCore: domainreview.EntryCore{
			ID:           row.ID,
			FullName:     row.FullName,
			Topic:        row.Topic,
			Status:       parseStoredStatus(row.Status),
			PriorTEDTalk: row.PriorTEDTalk,
			Flagged:      row.Flagged,
			Notes:        row.Notes,
			Rating:       row.Rating,
			SubmittedAt:  parseSubmittedAt(row.SubmittedAt),
		},
		Contact:     row.Contact,
		NominatedBy: row.NominatedBy,
	}
}
