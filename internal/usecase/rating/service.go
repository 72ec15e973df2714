package rating

import (
	"context"

	"github.com/quillhaven/quillhaven/domain"
	"github.com/sirupsen/logrus"
)

type service struct {
	ratingRepo  domain.RatingRepository
	articleRepo domain.ArticleRepository
}

var _ domain.RatingUsecase = (*service)(nil)

func NewService(ratingRepo domain.RatingRepository, articleRepo domain.ArticleRepository) *service {
	return &service{
		ratingRepo:  ratingRepo,
		articleRepo: articleRepo,
	}
}

// Rate scores an article 1-5. The author may not rate their own article;
// rating again replaces the previous score.
func (s *service) Rate(ctx context.Context, articleID, userID int64, score float64) (domain.RatingReport, error) {
	if score < domain.RatingMin || score > domain.RatingMax {
		return domain.RatingReport{}, domain.ErrBadParamInput
	}

	article, err := s.articleRepo.GetByID(ctx, articleID)
	if err != nil {
		return domain.RatingReport{}, err
	}
	if article.User.ID == userID {
		return domain.RatingReport{}, domain.ErrForbidden
	}

	r := &domain.Rating{
		ArticleID: articleID,
		UserID:    userID,
		Score:     score,
	}
	if err := s.ratingRepo.Upsert(ctx, r); err != nil {
		logrus.Errorf("failed to upsert rating for article %d by user %d: %v", articleID, userID, err)
		return domain.RatingReport{}, err
	}

	return s.ratingRepo.Report(ctx, articleID)
}

func (s *service) Report(ctx context.Context, articleID int64) (domain.RatingReport, error) {
	if _, err := s.articleRepo.GetByID(ctx, articleID); err != nil {
		return domain.RatingReport{}, err
	}
	return s.ratingRepo.Report(ctx, articleID)
}
