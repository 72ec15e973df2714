package profile

import (
	"context"
	"testing"

	"github.com/quillhaven/quillhaven/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockProfileRepo struct {
	mock.Mock
}

var _ domain.ProfileRepository = (*mockProfileRepo)(nil)

func (m *mockProfileRepo) GetByUserID(ctx context.Context, userID int64) (domain.Profile, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(domain.Profile), args.Error(1)
}

func (m *mockProfileRepo) GetByUsername(ctx context.Context, username string) (domain.Profile, error) {
	args := m.Called(ctx, username)
	return args.Get(0).(domain.Profile), args.Error(1)
}

func (m *mockProfileRepo) GetByIDs(ctx context.Context, ids []int64) ([]domain.Profile, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]domain.Profile), args.Error(1)
}

func (m *mockProfileRepo) FetchOthers(ctx context.Context, excludeUserID int64) ([]domain.Profile, error) {
	args := m.Called(ctx, excludeUserID)
	return args.Get(0).([]domain.Profile), args.Error(1)
}

func (m *mockProfileRepo) Update(ctx context.Context, p *domain.Profile) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

type mockFollowRepo struct {
	mock.Mock
}

var _ domain.FollowRepository = (*mockFollowRepo)(nil)

func (m *mockFollowRepo) Exists(ctx context.Context, followerID, followedID int64) (bool, error) {
	args := m.Called(ctx, followerID, followedID)
	return args.Bool(0), args.Error(1)
}

func (m *mockFollowRepo) Add(ctx context.Context, followerID, followedID int64) error {
	args := m.Called(ctx, followerID, followedID)
	return args.Error(0)
}

func (m *mockFollowRepo) Remove(ctx context.Context, followerID, followedID int64) error {
	args := m.Called(ctx, followerID, followedID)
	return args.Error(0)
}

func (m *mockFollowRepo) FollowersOf(ctx context.Context, profileID int64) ([]int64, error) {
	args := m.Called(ctx, profileID)
	return args.Get(0).([]int64), args.Error(1)
}

func (m *mockFollowRepo) FollowingOf(ctx context.Context, profileID int64) ([]int64, error) {
	args := m.Called(ctx, profileID)
	return args.Get(0).([]int64), args.Error(1)
}

func (m *mockFollowRepo) Atomic(ctx context.Context, fn func(repo domain.FollowRepository) error) error {
	return fn(m)
}

func TestToggleFollowCreatesMissingEdge(t *testing.T) {
	profileRepo := new(mockProfileRepo)
	followRepo := new(mockFollowRepo)
	svc := NewService(profileRepo, followRepo)

	followRepo.On("Exists", mock.Anything, int64(1), int64(2)).Return(false, nil).Once()
	followRepo.On("Add", mock.Anything, int64(1), int64(2)).Return(nil).Once()

	state, err := svc.ToggleFollow(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.Equal(t, domain.Following, state)
	followRepo.AssertExpectations(t)
	followRepo.AssertNotCalled(t, "Remove", mock.Anything, mock.Anything, mock.Anything)
}

func TestToggleFollowRemovesExistingEdge(t *testing.T) {
	profileRepo := new(mockProfileRepo)
	followRepo := new(mockFollowRepo)
	svc := NewService(profileRepo, followRepo)

	followRepo.On("Exists", mock.Anything, int64(1), int64(2)).Return(true, nil).Once()
	followRepo.On("Remove", mock.Anything, int64(1), int64(2)).Return(nil).Once()

	state, err := svc.ToggleFollow(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.Equal(t, domain.NotFollowing, state)
	followRepo.AssertExpectations(t)
	followRepo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything, mock.Anything)
}

// Two toggles in a row land back where they started.
func TestToggleFollowTwiceIsSymmetric(t *testing.T) {
	profileRepo := new(mockProfileRepo)
	followRepo := new(mockFollowRepo)
	svc := NewService(profileRepo, followRepo)
	ctx := context.Background()

	followRepo.On("Exists", mock.Anything, int64(5), int64(9)).Return(false, nil).Once()
	followRepo.On("Add", mock.Anything, int64(5), int64(9)).Return(nil).Once()

	state, err := svc.ToggleFollow(ctx, 5, 9)
	require.NoError(t, err)
	assert.Equal(t, domain.Following, state)

	followRepo.On("Exists", mock.Anything, int64(5), int64(9)).Return(true, nil).Once()
	followRepo.On("Remove", mock.Anything, int64(5), int64(9)).Return(nil).Once()

	state, err = svc.ToggleFollow(ctx, 5, 9)
	require.NoError(t, err)
	assert.Equal(t, domain.NotFollowing, state)
	followRepo.AssertExpectations(t)
}

func TestToggleFollowRejectsSelfFollow(t *testing.T) {
	profileRepo := new(mockProfileRepo)
	followRepo := new(mockFollowRepo)
	svc := NewService(profileRepo, followRepo)

	_, err := svc.ToggleFollow(context.Background(), 4, 4)
	assert.ErrorIs(t, err, domain.ErrSelfFollow)
	followRepo.AssertNotCalled(t, "Exists", mock.Anything, mock.Anything, mock.Anything)
}

func TestGetByUsernameSetsFollowingForViewer(t *testing.T) {
	profileRepo := new(mockProfileRepo)
	followRepo := new(mockFollowRepo)
	svc := NewService(profileRepo, followRepo)

	target := domain.Profile{ID: 2, UserID: 20, Username: "jane"}
	viewer := domain.Profile{ID: 1, UserID: 10, Username: "john"}

	profileRepo.On("GetByUsername", mock.Anything, "jane").Return(target, nil).Once()
	profileRepo.On("GetByUserID", mock.Anything, int64(10)).Return(viewer, nil).Once()
	followRepo.On("Exists", mock.Anything, int64(1), int64(2)).Return(true, nil).Once()

	got, err := svc.GetByUsername(context.Background(), "jane", 10)
	require.NoError(t, err)
	assert.True(t, got.Following)
}

func TestFetchOthersMarksFollowedProfiles(t *testing.T) {
	profileRepo := new(mockProfileRepo)
	followRepo := new(mockFollowRepo)
	svc := NewService(profileRepo, followRepo)

	others := []domain.Profile{{ID: 2}, {ID: 3}, {ID: 4}}
	viewer := domain.Profile{ID: 1, UserID: 10}

	profileRepo.On("FetchOthers", mock.Anything, int64(10)).Return(others, nil).Once()
	profileRepo.On("GetByUserID", mock.Anything, int64(10)).Return(viewer, nil).Once()
	followRepo.On("FollowingOf", mock.Anything, int64(1)).Return([]int64{3}, nil).Once()

	got, err := svc.FetchOthers(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.False(t, got[0].Following)
	assert.True(t, got[1].Following)
	assert.False(t, got[2].Following)
}

func TestFollowersResolvesProfiles(t *testing.T) {
	profileRepo := new(mockProfileRepo)
	followRepo := new(mockFollowRepo)
	svc := NewService(profileRepo, followRepo)

	followRepo.On("FollowersOf", mock.Anything, int64(2)).Return([]int64{1, 3}, nil).Once()
	profileRepo.On("GetByIDs", mock.Anything, []int64{1, 3}).
		Return([]domain.Profile{{ID: 1}, {ID: 3}}, nil).Once()

	got, err := svc.Followers(context.Background(), 2)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}
