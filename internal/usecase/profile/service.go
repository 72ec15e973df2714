package profile

import (
	"context"

	"github.com/quillhaven/quillhaven/domain"
	"github.com/sirupsen/logrus"
)

// Service covers profile reads/updates and the follow engine. ToggleFollow
// is a two-state machine per ordered (actor, target) pair, flipped inside
// one store transaction.
type Service struct {
	profileRepo domain.ProfileRepository
	followRepo  domain.FollowRepository
}

var _ domain.ProfileUsecase = (*Service)(nil)

func NewService(profileRepo domain.ProfileRepository, followRepo domain.FollowRepository) *Service {
	return &Service{
		profileRepo: profileRepo,
		followRepo:  followRepo,
	}
}

func (s *Service) GetByUsername(ctx context.Context, username string, viewerUserID int64) (domain.Profile, error) {
	target, err := s.profileRepo.GetByUsername(ctx, username)
	if err != nil {
		return domain.Profile{}, err
	}

	if viewerUserID > 0 {
		viewer, err := s.profileRepo.GetByUserID(ctx, viewerUserID)
		if err == nil && viewer.ID != target.ID {
			following, err := s.followRepo.Exists(ctx, viewer.ID, target.ID)
			if err != nil {
				logrus.Warnf("failed to check follow edge: %v", err)
			}
			target.Following = following
		}
	}

	return target, nil
}

func (s *Service) GetOwn(ctx context.Context, userID int64) (domain.Profile, error) {
	return s.profileRepo.GetByUserID(ctx, userID)
}

func (s *Service) FetchOthers(ctx context.Context, viewerUserID int64) ([]domain.Profile, error) {
	profiles, err := s.profileRepo.FetchOthers(ctx, viewerUserID)
	if err != nil {
		return nil, err
	}

	viewer, err := s.profileRepo.GetByUserID(ctx, viewerUserID)
	if err != nil {
		return profiles, nil
	}

	followingIDs, err := s.followRepo.FollowingOf(ctx, viewer.ID)
	if err != nil {
		logrus.Warnf("failed to list following of profile %d: %v", viewer.ID, err)
		return profiles, nil
	}

	followingMap := make(map[int64]bool, len(followingIDs))
	for _, id := range followingIDs {
		followingMap[id] = true
	}
	for i := range profiles {
		profiles[i].Following = followingMap[profiles[i].ID]
	}

	return profiles, nil
}

func (s *Service) Update(ctx context.Context, userID int64, p *domain.Profile) (domain.Profile, error) {
	current, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return domain.Profile{}, err
	}

	current.Bio = p.Bio
	current.Image = p.Image
	current.FirstName = p.FirstName
	current.LastName = p.LastName
	current.Company = p.Company
	current.Location = p.Location

	if err := s.profileRepo.Update(ctx, &current); err != nil {
		return domain.Profile{}, err
	}
	return current, nil
}

// ToggleFollow flips the (actor, target) edge: existing edge is removed,
// missing edge is created. The handler already rejects self-follows; the
// check here is the engine's own invariant guard.
func (s *Service) ToggleFollow(ctx context.Context, actorID, targetID int64) (domain.FollowState, error) {
	if actorID == targetID {
		return domain.NotFollowing, domain.ErrSelfFollow
	}

	var state domain.FollowState
	err := s.followRepo.Atomic(ctx, func(repo domain.FollowRepository) error {
		exists, err := repo.Exists(ctx, actorID, targetID)
		if err != nil {
			return err
		}

		if exists {
			state = domain.NotFollowing
			return repo.Remove(ctx, actorID, targetID)
		}

		state = domain.Following
		return repo.Add(ctx, actorID, targetID)
	})
	if err != nil {
		logrus.Errorf("toggle follow %d -> %d failed: %v", actorID, targetID, err)
		return domain.NotFollowing, err
	}

	return state, nil
}

func (s *Service) Followers(ctx context.Context, profileID int64) ([]domain.Profile, error) {
	ids, err := s.followRepo.FollowersOf(ctx, profileID)
	if err != nil {
		return nil, err
	}
	return s.profileRepo.GetByIDs(ctx, ids)
}

func (s *Service) FollowingList(ctx context.Context, profileID int64) ([]domain.Profile, error) {
	ids, err := s.followRepo.FollowingOf(ctx, profileID)
	if err != nil {
		return nil, err
	}
	return s.profileRepo.GetByIDs(ctx, ids)
}
