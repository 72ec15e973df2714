package domain

import (
	"context"
	"time"
)

// Favorite marks an article as favorited by a user. At most one row exists
// per (user, article).
type Favorite struct {
	ID        int64
	ArticleID int64
	UserID    int64
	CreatedAt time.Time
}

type FavoriteRepository interface {
	// Exists reports whether the user already favorited the article.
	Exists(ctx context.Context, articleID, userID int64) (bool, error)

	// Add stores a favorite; a duplicate surfaces as ErrConflict.
	Add(ctx context.Context, f *Favorite) error

	// Remove deletes a favorite, ErrNotFound when none exists.
	Remove(ctx context.Context, articleID, userID int64) error

	// FetchByUser lists the article IDs a user favorited, newest first.
	FetchByUser(ctx context.Context, userID int64) ([]int64, error)
}

type FavoriteUsecase interface {
	Favorite(ctx context.Context, articleID, userID int64) error
	Unfavorite(ctx context.Context, articleID, userID int64) error
	FetchOwn(ctx context.Context, userID int64) ([]Article, error)
}
