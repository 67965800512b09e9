package driven

import "github.com/factotum-labs/factotum-cli/internal/core/domain"

// ReplyStore provides the predefined response set: a mapping from a
// fixed set of categories to literal reply strings. Loaded once at
// startup and read-only during operation; implementations may refresh
// from their backing file but must always serve a consistent snapshot.
type ReplyStore interface {
	// Replies returns the alternatives for a category.
	// Returns domain.ErrReplySetEmpty when the category has none.
	Replies(category domain.ReplyCategory) ([]string, error)
}
