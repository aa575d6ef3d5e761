package review

import (
	"context"
	"errors"

	domainreview "speakerdesk/internal/domain/review"
	"speakerdesk/internal/errs"
)

// UpdateStatus persists a status transition, dispatched to the table matching
// the entry kind. The status set is flat: any transition is legal.
func (s *Service) UpdateStatus(ctx context.Context, kind domainreview.EntryKind, id string, status domainreview.Status) error {
	if err := s.checkMutation(ctx); err != nil {
		return err
	}
	if !status.Valid() {
		return errInvalidStatus
	}

	var err error
	switch kind {
	case domainreview.KindApplication:
		err = s.repo.UpdateApplicationStatus(ctx, id, string(status))
	case domainreview.KindNomination:
		err = s.repo.UpdateNominationStatus(ctx, id, string(status))
	default:
		return errUnknownKind
	}
	if err != nil {
		return err
	}

	s.setCacheBestEffort(ctx, cacheEntryStatusKey(id), string(status))
	return nil
}

// UpdateRating persists a 0..5 rating.
func (s *Service) UpdateRating(ctx context.Context, kind domainreview.EntryKind, id string, rating int) error {
	if err := s.checkMutation(ctx); err != nil {
		return err
	}
	if rating < domainreview.MinRating || rating > domainreview.MaxRating {
		return errInvalidRating
	}

	switch kind {
	case domainreview.KindApplication:
		return s.repo.UpdateApplicationRating(ctx, id, rating)
	case domainreview.KindNomination:
		return s.repo.UpdateNominationRating(ctx, id, rating)
	default:
		return errUnknownKind
	}
}

// UpdateNotes replaces the reviewer notes.
func (s *Service) UpdateNotes(ctx context.Context, kind domainreview.EntryKind, id string, notes string) error {
	if err := s.checkMutation(ctx); err != nil {
		return err
	}

	switch kind {
	case domainreview.KindApplication:
		return s.repo.UpdateApplicationNotes(ctx, id, notes)
	case domainreview.KindNomination:
		return s.repo.UpdateNominationNotes(ctx, id, notes)
	default:
		return errUnknownKind
	}
}

// ToggleFlag flips the needs-attention marker inside one transaction and
// returns the new value.
func (s *Service) ToggleFlag(ctx context.Context, kind domainreview.EntryKind, id string) (bool, error) {
	if err := s.checkMutation(ctx); err != nil {
		return false, err
	}
	if s.uow == nil {
		return false, errors.New("unit of work is required")
	}

	var flagged bool
	err := s.uow.WithTx(ctx, func(txCtx context.Context) error {
		switch kind {
		case domainreview.KindApplication:
			row, err := s.repo.GetApplication(txCtx, id)
			if err != nil {
				return err
			}
			flagged = !row.Flagged
			return s.repo.SetApplicationFlagged(txCtx, id, flagged)
		case domainreview.KindNomination:
			row, err := s.repo.GetNomination(txCtx, id)
			if err != nil {
				return err
			}
			flagged = !row.Flagged
			return s.repo.SetNominationFlagged(txCtx, id, flagged)
		default:
			return errUnknownKind
		}
	})
	if err != nil {
		return false, err
	}
	return flagged, nil
}

func (s *Service) checkMutation(ctx context.Context) error {
	if ctx == nil {
		return errors.New("context is required")
	}
	if err := ctx.Err(); err != nil {
		return errs.Wrap(err, "check context")
	}
	if s.repo == nil {
		return errors.New("speaker repository is required")
	}
	return nil
}
