package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrEmptyContent indicates a fact draft with no text body.
	ErrEmptyContent = errors.New("fact content is empty")

	// ErrCorpusTooSmall indicates the vectorizer was given fewer
	// documents than it needs to produce meaningful differentiation.
	// Callers treat this as "no match", never as a user-facing failure.
	ErrCorpusTooSmall = errors.New("corpus too small to vectorize")

	// ErrReplySetEmpty indicates a reply category has no entries.
	ErrReplySetEmpty = errors.New("reply set has no entries for category")
)
