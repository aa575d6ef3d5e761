package review

import (
	"context"
	"errors"
	"sort"

	domainreview "speakerdesk/internal/domain/review"
	"speakerdesk/internal/errs"
)

// ListEntries returns the merged collection of applications and nominations,
// newest submission first. This is the single session-start load; the console
// mutates its copy in memory afterwards.
func (s *Service) ListEntries(ctx context.Context) ([]domainreview.Entry, error) {
	if ctx == nil {
		return nil, errors.New("context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, errs.Wrap(err, "check context")
	}
	if s.repo == nil {
		return nil, errors.New("speaker repository is required")
	}

	applications, err := s.repo.ListApplications(ctx)
	if err != nil {
		return nil, errs.Wrap(err, "list applications")
	}
	nominations, err := s.repo.ListNominations(ctx)
	if err != nil {
		return nil, errs.Wrap(err, "list nominations")
	}

	entries := make([]domainreview.Entry, 0, len(applications)+len(nominations))
	for _, row := range applications {
		entries = append(entries, entryFromApplication(row))
	}
	for _, row := range nominations {
		entries = append(entries, entryFromNomination(row))
	}

	sort.SliceStable(entries, func(i int, j int) bool {
		left := entries[i].Core()
		right := entries[j].Core()
		if left.SubmittedAt.Equal(right.SubmittedAt) {
			return left.ID < right.ID
		}
		return left.SubmittedAt.After(right.SubmittedAt)
	})
	return entries, nil
}

// GetEntry returns a single entry by kind and id.
func (s *Service) GetEntry(ctx context.Context, kind domainreview.EntryKind, id string) (domainreview.Entry, error) {
	if ctx == nil {
		return nil, errors.New("context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, errs.Wrap(err, "check context")
	}
	if s.repo == nil {
		return nil, errors.New("speaker repository is required")
	}

	switch kind {
	case domainreview.KindApplication:
		row, err := s.repo.GetApplication(ctx, id)
		if err != nil {
			return nil, err
		}
		return entryFromApplication(row), nil
	case domainreview.KindNomination:
		row, err := s.repo.GetNomination(ctx, id)
		if err != nil {
			return nil, err
		}
		return entryFromNomination(row), nil
	default:
		return nil, errUnknownKind
	}
}
