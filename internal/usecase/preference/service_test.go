package preference

import (
	"context"
	"testing"

	"github.com/quillhaven/quillhaven/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockPreferenceRepo struct {
	mock.Mock
}

var _ domain.PreferenceRepository = (*mockPreferenceRepo)(nil)

func (m *mockPreferenceRepo) Find(ctx context.Context, kind domain.SubjectKind, subjectID, userID int64) (domain.Preference, error) {
	args := m.Called(ctx, kind, subjectID, userID)
	return args.Get(0).(domain.Preference), args.Error(1)
}

func (m *mockPreferenceRepo) Create(ctx context.Context, p *domain.Preference) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *mockPreferenceRepo) UpdateValue(ctx context.Context, id int64, value domain.PreferenceValue) error {
	args := m.Called(ctx, id, value)
	return args.Error(0)
}

func (m *mockPreferenceRepo) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockPreferenceRepo) Count(ctx context.Context, kind domain.SubjectKind, subjectID int64, value domain.PreferenceValue) (int64, error) {
	args := m.Called(ctx, kind, subjectID, value)
	return args.Get(0).(int64), args.Error(1)
}

// Atomic runs fn against the mock itself, standing in for a tx-bound repo.
func (m *mockPreferenceRepo) Atomic(ctx context.Context, fn func(repo domain.PreferenceRepository) error) error {
	return fn(m)
}

func TestReactFirstReactionCreates(t *testing.T) {
	repo := new(mockPreferenceRepo)
	svc := NewService(repo)

	repo.On("Find", mock.Anything, domain.SubjectArticle, int64(7), int64(42)).
		Return(domain.Preference{}, domain.ErrNotFound).Once()
	repo.On("Create", mock.Anything, mock.MatchedBy(func(p *domain.Preference) bool {
		return p.SubjectKind == domain.SubjectArticle &&
			p.SubjectID == 7 && p.UserID == 42 && p.Value == domain.Like
	})).Return(nil).Once()
	repo.On("Count", mock.Anything, domain.SubjectArticle, int64(7), domain.Like).
		Return(int64(1), nil).Once()
	repo.On("Count", mock.Anything, domain.SubjectArticle, int64(7), domain.Dislike).
		Return(int64(0), nil).Once()

	res, err := svc.React(context.Background(), domain.SubjectArticle, 7, 42, domain.Like)
	require.NoError(t, err)
	assert.Equal(t, domain.Liked, res.State)
	assert.Equal(t, int64(1), res.LikeCount)
	assert.Equal(t, int64(0), res.DislikeCount)
	repo.AssertExpectations(t)
}

func TestReactOppositeValueFlips(t *testing.T) {
	repo := new(mockPreferenceRepo)
	svc := NewService(repo)

	existing := domain.Preference{
		ID:          3,
		SubjectKind: domain.SubjectComment,
		SubjectID:   11,
		UserID:      42,
		Value:       domain.Like,
	}
	repo.On("Find", mock.Anything, domain.SubjectComment, int64(11), int64(42)).
		Return(existing, nil).Once()
	repo.On("UpdateValue", mock.Anything, int64(3), domain.Dislike).
		Return(nil).Once()
	repo.On("Count", mock.Anything, domain.SubjectComment, int64(11), domain.Like).
		Return(int64(0), nil).Once()
	repo.On("Count", mock.Anything, domain.SubjectComment, int64(11), domain.Dislike).
		Return(int64(1), nil).Once()

	res, err := svc.React(context.Background(), domain.SubjectComment, 11, 42, domain.Dislike)
	require.NoError(t, err)
	assert.Equal(t, domain.Disliked, res.State)
	assert.Equal(t, int64(0), res.LikeCount)
	assert.Equal(t, int64(1), res.DislikeCount)
	repo.AssertExpectations(t)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestReactRepeatIsUndo(t *testing.T) {
	repo := new(mockPreferenceRepo)
	svc := NewService(repo)

	existing := domain.Preference{
		ID:          9,
		SubjectKind: domain.SubjectArticle,
		SubjectID:   7,
		UserID:      42,
		Value:       domain.Dislike,
	}
	repo.On("Find", mock.Anything, domain.SubjectArticle, int64(7), int64(42)).
		Return(existing, nil).Once()
	repo.On("Delete", mock.Anything, int64(9)).Return(nil).Once()
	repo.On("Count", mock.Anything, domain.SubjectArticle, int64(7), domain.Like).
		Return(int64(2), nil).Once()
	repo.On("Count", mock.Anything, domain.SubjectArticle, int64(7), domain.Dislike).
		Return(int64(0), nil).Once()

	res, err := svc.React(context.Background(), domain.SubjectArticle, 7, 42, domain.Dislike)
	require.NoError(t, err)
	assert.Equal(t, domain.NoPreference, res.State)
	assert.Equal(t, int64(2), res.LikeCount)
	assert.Equal(t, int64(0), res.DislikeCount)
	repo.AssertExpectations(t)
}

// like -> dislike -> dislike walks the full state machine back to none.
func TestReactLikeDislikeDislikeSequence(t *testing.T) {
	repo := new(mockPreferenceRepo)
	svc := NewService(repo)
	ctx := context.Background()

	// step 1: like creates
	repo.On("Find", mock.Anything, domain.SubjectArticle, int64(1), int64(5)).
		Return(domain.Preference{}, domain.ErrNotFound).Once()
	repo.On("Create", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			args.Get(1).(*domain.Preference).ID = 100
		}).Return(nil).Once()
	repo.On("Count", mock.Anything, domain.SubjectArticle, int64(1), domain.Like).
		Return(int64(1), nil).Once()
	repo.On("Count", mock.Anything, domain.SubjectArticle, int64(1), domain.Dislike).
		Return(int64(0), nil).Once()

	res, err := svc.React(ctx, domain.SubjectArticle, 1, 5, domain.Like)
	require.NoError(t, err)
	assert.Equal(t, domain.Liked, res.State)

	// step 2: dislike flips
	liked := domain.Preference{ID: 100, SubjectKind: domain.SubjectArticle, SubjectID: 1, UserID: 5, Value: domain.Like}
	repo.On("Find", mock.Anything, domain.SubjectArticle, int64(1), int64(5)).
		Return(liked, nil).Once()
	repo.On("UpdateValue", mock.Anything, int64(100), domain.Dislike).Return(nil).Once()
	repo.On("Count", mock.Anything, domain.SubjectArticle, int64(1), domain.Like).
		Return(int64(0), nil).Once()
	repo.On("Count", mock.Anything, domain.SubjectArticle, int64(1), domain.Dislike).
		Return(int64(1), nil).Once()

	res, err = svc.React(ctx, domain.SubjectArticle, 1, 5, domain.Dislike)
	require.NoError(t, err)
	assert.Equal(t, domain.Disliked, res.State)

	// step 3: dislike again clears
	disliked := liked
	disliked.Value = domain.Dislike
	repo.On("Find", mock.Anything, domain.SubjectArticle, int64(1), int64(5)).
		Return(disliked, nil).Once()
	repo.On("Delete", mock.Anything, int64(100)).Return(nil).Once()
	repo.On("Count", mock.Anything, domain.SubjectArticle, int64(1), domain.Like).
		Return(int64(0), nil).Once()
	repo.On("Count", mock.Anything, domain.SubjectArticle, int64(1), domain.Dislike).
		Return(int64(0), nil).Once()

	res, err = svc.React(ctx, domain.SubjectArticle, 1, 5, domain.Dislike)
	require.NoError(t, err)
	assert.Equal(t, domain.NoPreference, res.State)
	assert.Equal(t, int64(0), res.LikeCount)
	assert.Equal(t, int64(0), res.DislikeCount)
	repo.AssertExpectations(t)
}

func TestReactCreateErrorRollsUp(t *testing.T) {
	repo := new(mockPreferenceRepo)
	svc := NewService(repo)

	repo.On("Find", mock.Anything, domain.SubjectArticle, int64(7), int64(42)).
		Return(domain.Preference{}, domain.ErrNotFound).Once()
	repo.On("Create", mock.Anything, mock.Anything).
		Return(domain.ErrDuplicatePreference).Once()

	_, err := svc.React(context.Background(), domain.SubjectArticle, 7, 42, domain.Like)
	assert.ErrorIs(t, err, domain.ErrDuplicatePreference)
	repo.AssertNotCalled(t, "Count", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCounts(t *testing.T) {
	repo := new(mockPreferenceRepo)
	svc := NewService(repo)

	repo.On("Count", mock.Anything, domain.SubjectArticle, int64(7), domain.Like).
		Return(int64(4), nil).Once()
	repo.On("Count", mock.Anything, domain.SubjectArticle, int64(7), domain.Dislike).
		Return(int64(2), nil).Once()

	likes, dislikes, err := svc.Counts(context.Background(), domain.SubjectArticle, 7)
	require.NoError(t, err)
	assert.Equal(t, int64(4), likes)
	assert.Equal(t, int64(2), dislikes)
}
