package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/factotum-labs/factotum-cli/internal/core/domain"
	"github.com/factotum-labs/factotum-cli/internal/core/ports/driven"
)

// Ensure ConversationStore implements the interface.
var _ driven.ConversationStore = (*ConversationStore)(nil)

// ConversationStore is an in-memory implementation of
// driven.ConversationStore. The log is append-only.
type ConversationStore struct {
	mu        sync.RWMutex
	exchanges []domain.Exchange
}

// NewConversationStore creates a new in-memory conversation store.
func NewConversationStore() *ConversationStore {
	return &ConversationStore{}
}

// SaveExchange appends an exchange to the log.
func (s *ConversationStore) SaveExchange(
	_ context.Context, userInput, response string, feedback int,
) (*domain.Exchange, error) {
	exchange := domain.Exchange{
		ID:        uuid.NewString(),
		UserInput: userInput,
		Response:  response,
		Feedback:  feedback,
		Timestamp: time.Now().UTC(),
	}

	s.mu.Lock()
	s.exchanges = append(s.exchanges, exchange)
	s.mu.Unlock()

	out := exchange
	return &out, nil
}

// RecentExchanges returns up to limit exchanges, newest first.
func (s *ConversationStore) RecentExchanges(_ context.Context, limit int) ([]domain.Exchange, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := len(s.exchanges)
	if limit <= 0 || limit > n {
		limit = n
	}

	result := make([]domain.Exchange, 0, limit)
	for i := n - 1; i >= n-limit; i-- {
		result = append(result, s.exchanges[i])
	}
	return result, nil
}

// CountExchanges returns the log size.
func (s *ConversationStore) CountExchanges(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.exchanges), nil
}
