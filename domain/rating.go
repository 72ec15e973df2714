package domain

import (
	"context"
	"time"
)

const (
	RatingMin = 1
	RatingMax = 5
)

// Rating is a user's 1-5 score on an article. At most one rating exists per
// (user, article); rating again updates the score in place.
type Rating struct {
	ID        int64
	ArticleID int64
	UserID    int64
	Score     float64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// RatingReport aggregates the ratings of one article.
type RatingReport struct {
	ArticleID int64
	Average   float64
	Count     int64
}

type RatingRepository interface {
	// Get returns ErrNotFound when the user never rated the article.
	Get(ctx context.Context, articleID, userID int64) (Rating, error)

	// Upsert creates the rating or updates the score of an existing one.
	Upsert(ctx context.Context, r *Rating) error

	// Report returns the average score and rating count for an article.
	Report(ctx context.Context, articleID int64) (RatingReport, error)
}

type RatingUsecase interface {
	// Rate scores an article. The author may not rate their own article
	// (ErrForbidden); scores outside [RatingMin, RatingMax] are rejected
	// with ErrBadParamInput.
	Rate(ctx context.Context, articleID, userID int64, score float64) (RatingReport, error)

	Report(ctx context.Context, articleID int64) (RatingReport, error)
}
