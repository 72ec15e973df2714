package domain

import "errors"

var (
	// ErrInternalServerError means an unexpected store or infrastructure failure
	ErrInternalServerError = errors.New("internal server error")
	// ErrNotFound means the requested item does not exist
	ErrNotFound = errors.New("your requested item is not found")
	// ErrConflict means the item already exists
	ErrConflict = errors.New("your item already exists")
	// ErrBadParamInput means the given request parameters are invalid
	ErrBadParamInput = errors.New("given param is not valid")
	// ErrForbidden means the acting user may not perform the operation
	ErrForbidden = errors.New("you are not allowed to perform this action")
	// ErrCacheMiss means the cache holds no entry for the key
	ErrCacheMiss = errors.New("cache miss")

	// ErrSelfFollow is the defensive invariant guard of the follow engine:
	// a profile never follows itself, even if the handler check is bypassed.
	ErrSelfFollow = errors.New("cannot follow yourself")
	// ErrDuplicatePreference is raised when the unique constraint on
	// (subject_kind, subject_id, user_id) is violated even after the
	// create-race retry. It signals a broken storage invariant, not a
	// legitimate race.
	ErrDuplicatePreference = errors.New("duplicate preference row")
)
