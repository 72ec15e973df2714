package domain

import (
	"context"
	"time"
)

// Profile holds the public author information attached to a user account.
// Every user owns exactly one profile; it is created together with the
// account inside the registration transaction.
type Profile struct {
	ID        int64
	UserID    int64
	Bio       string
	Image     string
	FirstName string
	LastName  string
	Company   string
	Location  string
	CreatedAt time.Time
	UpdatedAt time.Time

	// Username 冗余自 user 表，列表展示用
	Username string
	// Following reports whether the requesting profile follows this one.
	Following bool
}

// FollowState is the resulting state of an ordered (actor, target) pair
// after a toggle.
type FollowState int8

const (
	NotFollowing FollowState = 0
	Following    FollowState = 1
)

func (s FollowState) String() string {
	if s == Following {
		return "following"
	}
	return "not_following"
}

// ProfileRepository defines the contract for profile persistence.
type ProfileRepository interface {
	GetByUserID(ctx context.Context, userID int64) (Profile, error)
	GetByUsername(ctx context.Context, username string) (Profile, error)
	GetByIDs(ctx context.Context, ids []int64) ([]Profile, error)

	// FetchOthers lists all profiles except the given user's own.
	FetchOthers(ctx context.Context, excludeUserID int64) ([]Profile, error)

	// Update modifies the mutable profile fields.
	Update(ctx context.Context, p *Profile) error
}

// FollowRepository is the social graph store: directed follow edges between
// profiles, at most one per ordered pair.
type FollowRepository interface {
	Exists(ctx context.Context, followerID, followedID int64) (bool, error)
	Add(ctx context.Context, followerID, followedID int64) error
	Remove(ctx context.Context, followerID, followedID int64) error

	// FollowersOf returns the profile IDs following the given profile.
	FollowersOf(ctx context.Context, profileID int64) ([]int64, error)
	// FollowingOf returns the profile IDs the given profile follows.
	FollowingOf(ctx context.Context, profileID int64) ([]int64, error)

	// Atomic runs fn against a repository bound to one storage transaction,
	// making toggle-follow's read-decide-write serializable per edge.
	Atomic(ctx context.Context, fn func(repo FollowRepository) error) error
}

// ProfileUsecase covers profile reads/updates and the follow engine.
type ProfileUsecase interface {
	GetByUsername(ctx context.Context, username string, viewerUserID int64) (Profile, error)

	// GetOwn resolves the profile owned by the given user account.
	GetOwn(ctx context.Context, userID int64) (Profile, error)
	FetchOthers(ctx context.Context, viewerUserID int64) ([]Profile, error)
	Update(ctx context.Context, userID int64, p *Profile) (Profile, error)

	// ToggleFollow flips the (actor, target) edge. Actor and target are
	// profile IDs; a self-follow is refused with ErrSelfFollow.
	ToggleFollow(ctx context.Context, actorID, targetID int64) (FollowState, error)

	Followers(ctx context.Context, profileID int64) ([]Profile, error)
	FollowingList(ctx context.Context, profileID int64) ([]Profile, error)
}
