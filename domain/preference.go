package domain

import (
	"context"
	"time"
)

// SubjectKind discriminates which entity collection a preference points at.
// A preference subject is a tagged pair (kind, id) stored as two columns, so
// articles and comments share one preference table.
type SubjectKind int8

const (
	SubjectArticle SubjectKind = 1
	SubjectComment SubjectKind = 2
)

func (k SubjectKind) String() string {
	switch k {
	case SubjectArticle:
		return "article"
	case SubjectComment:
		return "comment"
	default:
		return "unknown"
	}
}

// PreferenceValue is a two-valued reaction: Like = +1, Dislike = -1.
type PreferenceValue int8

const (
	Like    PreferenceValue = 1
	Dislike PreferenceValue = -1
)

func (v PreferenceValue) String() string {
	switch v {
	case Like:
		return "like"
	case Dislike:
		return "dislike"
	default:
		return "unknown"
	}
}

// PreferenceState is the resulting state of a (subject, user) pair after a
// reaction. Absence of a row is NoPreference.
type PreferenceState int8

const (
	NoPreference PreferenceState = 0
	Liked        PreferenceState = 1
	Disliked     PreferenceState = -1
)

func (s PreferenceState) String() string {
	switch s {
	case Liked:
		return "liked"
	case Disliked:
		return "disliked"
	default:
		return "none"
	}
}

// Preference is a user's like/dislike expression on a subject.
// At most one row exists per (SubjectKind, SubjectID, UserID) at any time.
type Preference struct {
	ID          int64
	SubjectKind SubjectKind
	SubjectID   int64
	UserID      int64
	Value       PreferenceValue
	CreatedAt   time.Time
}

// ReactionResult carries the state of the acting user's preference after a
// react call, plus the subject's current aggregate counts.
type ReactionResult struct {
	State        PreferenceState
	LikeCount    int64
	DislikeCount int64
}

// PreferenceRepository is the preference store contract. Create must be
// backed by a unique index on (subject_kind, subject_id, user_id); when two
// concurrent first reactions race, exactly one row survives and the loser
// retries once as an update of the surviving row.
type PreferenceRepository interface {
	// Find returns ErrNotFound when the user expressed no preference.
	Find(ctx context.Context, kind SubjectKind, subjectID, userID int64) (Preference, error)

	// Create inserts a preference row and backfills its ID.
	Create(ctx context.Context, p *Preference) error

	// UpdateValue flips an existing row to the given value.
	UpdateValue(ctx context.Context, id int64, value PreferenceValue) error

	// Delete removes a preference row.
	Delete(ctx context.Context, id int64) error

	// Count reports the number of rows holding value for the subject.
	Count(ctx context.Context, kind SubjectKind, subjectID int64, value PreferenceValue) (int64, error)

	// Atomic runs fn against a repository bound to one storage transaction.
	// The react read-decide-write sequence runs inside it so that partial
	// application can never be observed.
	Atomic(ctx context.Context, fn func(repo PreferenceRepository) error) error
}

// PreferenceUsecase is the reaction engine. React implements a three-state
// machine per (subject, user) pair: no row + react creates, opposite value
// flips, same value deletes (repeating a reaction is undo).
type PreferenceUsecase interface {
	React(ctx context.Context, kind SubjectKind, subjectID, userID int64, value PreferenceValue) (ReactionResult, error)

	// Counts reports the aggregate like/dislike counts for a subject.
	Counts(ctx context.Context, kind SubjectKind, subjectID int64) (likes, dislikes int64, err error)
}
