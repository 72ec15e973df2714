package preference

import (
	"context"
	"errors"

	"github.com/quillhaven/quillhaven/domain"
	"github.com/sirupsen/logrus"
)

// Service is the reaction engine. Per (subject, user) pair it drives a
// three-state machine {none, liked, disliked}:
//
//	none     --like-->    liked      (create)
//	liked    --dislike--> disliked   (flip)
//	liked    --like-->    none       (repeat is undo)
//
// and symmetrically for dislike. The whole read-decide-write sequence runs
// inside one store transaction, so two concurrent first reactions cannot
// both create a row and a caller never observes a half-applied toggle.
type Service struct {
	prefRepo domain.PreferenceRepository
}

var _ domain.PreferenceUsecase = (*Service)(nil)

func NewService(prefRepo domain.PreferenceRepository) *Service {
	return &Service{prefRepo: prefRepo}
}

func (s *Service) React(ctx context.Context, kind domain.SubjectKind, subjectID, userID int64, value domain.PreferenceValue) (domain.ReactionResult, error) {
	var res domain.ReactionResult

	err := s.prefRepo.Atomic(ctx, func(repo domain.PreferenceRepository) error {
		existing, err := repo.Find(ctx, kind, subjectID, userID)
		switch {
		case errors.Is(err, domain.ErrNotFound):
			// first reaction
			pref := &domain.Preference{
				SubjectKind: kind,
				SubjectID:   subjectID,
				UserID:      userID,
				Value:       value,
			}
			if err := repo.Create(ctx, pref); err != nil {
				return err
			}
			res.State = domain.PreferenceState(value)

		case err != nil:
			return err

		case existing.Value != value:
			// opposite reaction flips the row in one step
			if err := repo.UpdateValue(ctx, existing.ID, value); err != nil {
				return err
			}
			res.State = domain.PreferenceState(value)

		default:
			// repeating the same reaction clears it
			if err := repo.Delete(ctx, existing.ID); err != nil {
				return err
			}
			res.State = domain.NoPreference
		}

		res.LikeCount, err = repo.Count(ctx, kind, subjectID, domain.Like)
		if err != nil {
			return err
		}
		res.DislikeCount, err = repo.Count(ctx, kind, subjectID, domain.Dislike)
		return err
	})
	if err != nil {
		logrus.Errorf("react failed on %s %d by user %d: %v", kind, subjectID, userID, err)
		return domain.ReactionResult{}, err
	}

	return res, nil
}

func (s *Service) Counts(ctx context.Context, kind domain.SubjectKind, subjectID int64) (int64, int64, error) {
	likes, err := s.prefRepo.Count(ctx, kind, subjectID, domain.Like)
	if err != nil {
		return 0, 0, err
	}
	dislikes, err := s.prefRepo.Count(ctx, kind, subjectID, domain.Dislike)
	if err != nil {
		return 0, 0, err
	}
	return likes, dislikes, nil
}
