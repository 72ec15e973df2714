package favorite

import (
	"context"

	"github.com/quillhaven/quillhaven/domain"
)

type service struct {
	favoriteRepo domain.FavoriteRepository
	articleRepo  domain.ArticleRepository
	bloomRepo    domain.BloomRepository
}

var _ domain.FavoriteUsecase = (*service)(nil)

func NewService(favoriteRepo domain.FavoriteRepository, articleRepo domain.ArticleRepository, bloomRepo domain.BloomRepository) *service {
	return &service{
		favoriteRepo: favoriteRepo,
		articleRepo:  articleRepo,
		bloomRepo:    bloomRepo,
	}
}

func (s *service) Favorite(ctx context.Context, articleID, userID int64) error {
	if exists, err := s.bloomRepo.Exists(ctx, articleID); err == nil && !exists {
		return domain.ErrNotFound
	}
	if _, err := s.articleRepo.GetByID(ctx, articleID); err != nil {
		return err
	}

	return s.favoriteRepo.Add(ctx, &domain.Favorite{
		ArticleID: articleID,
		UserID:    userID,
	})
}

func (s *service) Unfavorite(ctx context.Context, articleID, userID int64) error {
	return s.favoriteRepo.Remove(ctx, articleID, userID)
}

func (s *service) FetchOwn(ctx context.Context, userID int64) ([]domain.Article, error) {
	ids, err := s.favoriteRepo.FetchByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []domain.Article{}, nil
	}
	return s.articleRepo.GetByIDs(ctx, ids)
}
