package user

import (
	"context"
	"testing"
	"time"

	"github.com/go-faker/faker/v4"
	"github.com/golang-jwt/jwt/v5"
	"github.com/quillhaven/quillhaven/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type mockUserRepo struct {
	mock.Mock
}

var _ domain.UserRepository = (*mockUserRepo)(nil)

func (m *mockUserRepo) GetByID(ctx context.Context, id int64) (domain.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *mockUserRepo) Insert(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *mockUserRepo) Update(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *mockUserRepo) GetByUsername(ctx context.Context, username string) (domain.User, error) {
	args := m.Called(ctx, username)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *mockUserRepo) GetByIDs(ctx context.Context, userIDs []int64) ([]domain.User, error) {
	args := m.Called(ctx, userIDs)
	return args.Get(0).([]domain.User), args.Error(1)
}

func TestRegisterHashesPassword(t *testing.T) {
	repo := new(mockUserRepo)
	svc := NewService(repo, []byte("secret"), time.Hour)

	username := faker.Username()
	password := faker.Password()

	repo.On("GetByUsername", mock.Anything, username).
		Return(domain.User{}, domain.ErrNotFound).Once()
	repo.On("Insert", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		if u.Username != username || u.Password == password {
			return false
		}
		return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) == nil
	})).Return(nil).Once()

	err := svc.Register(context.Background(), faker.Name(), username, faker.Email(), password)
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestRegisterExistingUsernameConflicts(t *testing.T) {
	repo := new(mockUserRepo)
	svc := NewService(repo, []byte("secret"), time.Hour)

	repo.On("GetByUsername", mock.Anything, "john").
		Return(domain.User{ID: 1, Username: "john"}, nil).Once()

	err := svc.Register(context.Background(), "John", "john", faker.Email(), faker.Password())
	assert.ErrorIs(t, err, domain.ErrConflict)
	repo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestLoginIssuesToken(t *testing.T) {
	repo := new(mockUserRepo)
	secret := []byte("secret")
	svc := NewService(repo, secret, time.Hour)

	password := faker.Password()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	repo.On("GetByUsername", mock.Anything, "john").
		Return(domain.User{ID: 42, Username: "john", Password: string(hashed)}, nil).Once()

	signed, err := svc.Login(context.Background(), "john", password)
	require.NoError(t, err)
	require.NotEmpty(t, signed)

	token, err := jwt.Parse(signed, func(t *jwt.Token) (any, error) {
		return secret, nil
	})
	require.NoError(t, err)
	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, float64(42), claims["user_id"])
}

func TestLoginWrongPassword(t *testing.T) {
	repo := new(mockUserRepo)
	svc := NewService(repo, []byte("secret"), time.Hour)

	hashed, err := bcrypt.GenerateFromPassword([]byte("right-password"), bcrypt.MinCost)
	require.NoError(t, err)

	repo.On("GetByUsername", mock.Anything, "john").
		Return(domain.User{ID: 42, Password: string(hashed)}, nil).Once()

	_, err = svc.Login(context.Background(), "john", "wrong-password")
	assert.ErrorIs(t, err, domain.ErrBadParamInput)
}

func TestLoginUnknownUser(t *testing.T) {
	repo := new(mockUserRepo)
	svc := NewService(repo, []byte("secret"), time.Hour)

	repo.On("GetByUsername", mock.Anything, "ghost").
		Return(domain.User{}, domain.ErrNotFound).Once()

	_, err := svc.Login(context.Background(), "ghost", "whatever")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestEditPassword(t *testing.T) {
	repo := new(mockUserRepo)
	svc := NewService(repo, []byte("secret"), time.Hour)

	oldPassword := faker.Password()
	newPassword := faker.Password()
	hashed, err := bcrypt.GenerateFromPassword([]byte(oldPassword), bcrypt.MinCost)
	require.NoError(t, err)

	repo.On("GetByID", mock.Anything, int64(42)).
		Return(domain.User{ID: 42, Password: string(hashed)}, nil).Once()
	repo.On("Update", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(newPassword)) == nil
	})).Return(nil).Once()

	err = svc.EditPassword(context.Background(), 42, oldPassword, newPassword)
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestEditPasswordWrongOldPassword(t *testing.T) {
	repo := new(mockUserRepo)
	svc := NewService(repo, []byte("secret"), time.Hour)

	hashed, err := bcrypt.GenerateFromPassword([]byte("right-password"), bcrypt.MinCost)
	require.NoError(t, err)

	repo.On("GetByID", mock.Anything, int64(42)).
		Return(domain.User{ID: 42, Password: string(hashed)}, nil).Once()

	err = svc.EditPassword(context.Background(), 42, "wrong-password", "new-password")
	assert.ErrorIs(t, err, domain.ErrBadParamInput)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}
