package rating

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/quillhaven/quillhaven/domain"
)

type mockRatingRepo struct {
	mock.Mock
}

var _ domain.RatingRepository = (*mockRatingRepo)(nil)

func (m *mockRatingRepo) Get(ctx context.Context, articleID, userID int64) (domain.Rating, error) {
	args := m.Called(ctx, articleID, userID)
	return args.Get(0).(domain.Rating), args.Error(1)
}

func (m *mockRatingRepo) Upsert(ctx context.Context, r *domain.Rating) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *mockRatingRepo) Report(ctx context.Context, articleID int64) (domain.RatingReport, error) {
	args := m.Called(ctx, articleID)
	return args.Get(0).(domain.RatingReport), args.Error(1)
}

type stubArticleRepo struct {
	domain.ArticleRepository

	articles map[int64]domain.Article
}

func (s *stubArticleRepo) GetByID(ctx context.Context, id int64) (domain.Article, error) {
	ar, ok := s.articles[id]
	if !ok {
		return domain.Article{}, domain.ErrNotFound
	}
	return ar, nil
}

func TestRate(t *testing.T) {
	ratingRepo := new(mockRatingRepo)
	articleRepo := &stubArticleRepo{articles: map[int64]domain.Article{
		7: {ID: 7, User: domain.User{ID: 1}},
	}}
	svc := NewService(ratingRepo, articleRepo)

	ratingRepo.On("Upsert", mock.Anything, mock.MatchedBy(func(r *domain.Rating) bool {
		return r.ArticleID == 7 && r.UserID == 2 && r.Score == 4
	})).Return(nil).Once()
	ratingRepo.On("Report", mock.Anything, int64(7)).
		Return(domain.RatingReport{ArticleID: 7, Average: 4, Count: 1}, nil).Once()

	report, err := svc.Rate(context.Background(), 7, 2, 4)
	require.NoError(t, err)
	assert.Equal(t, float64(4), report.Average)
	assert.Equal(t, int64(1), report.Count)
	ratingRepo.AssertExpectations(t)
}

func TestRateOwnArticleForbidden(t *testing.T) {
	ratingRepo := new(mockRatingRepo)
	articleRepo := &stubArticleRepo{articles: map[int64]domain.Article{
		7: {ID: 7, User: domain.User{ID: 1}},
	}}
	svc := NewService(ratingRepo, articleRepo)

	_, err := svc.Rate(context.Background(), 7, 1, 4)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	ratingRepo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestRateScoreOutOfRange(t *testing.T) {
	ratingRepo := new(mockRatingRepo)
	articleRepo := &stubArticleRepo{}
	svc := NewService(ratingRepo, articleRepo)

	_, err := svc.Rate(context.Background(), 7, 2, 6)
	assert.ErrorIs(t, err, domain.ErrBadParamInput)

	_, err = svc.Rate(context.Background(), 7, 2, 0.5)
	assert.ErrorIs(t, err, domain.ErrBadParamInput)
}

func TestRateMissingArticle(t *testing.T) {
	ratingRepo := new(mockRatingRepo)
	articleRepo := &stubArticleRepo{}
	svc := NewService(ratingRepo, articleRepo)

	_, err := svc.Rate(context.Background(), 99, 2, 4)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
