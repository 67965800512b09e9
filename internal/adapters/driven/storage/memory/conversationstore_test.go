package memory

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConversationStore_SaveExchange(t *testing.T) {
	store := NewConversationStore()
	ctx := context.Background()

	exchange, err := store.SaveExchange(ctx, "hello", "hi there", 0)
	require.NoError(t, err)
	require.NotNil(t, exchange)

	assert.NotEmpty(t, exchange.ID)
	assert.Equal(t, "hello", exchange.UserInput)
	assert.Equal(t, "hi there", exchange.Response)
	assert.False(t, exchange.Timestamp.IsZero())
}

func TestConversationStore_RecentExchanges_NewestFirst(t *testing.T) {
	store := NewConversationStore()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := store.SaveExchange(ctx, fmt.Sprintf("input %d", i), "response", 0)
		require.NoError(t, err)
	}

	recent, err := store.RecentExchanges(ctx, 3)
	require.NoError(t, err)
	require.Len(t, recent, 3)
	assert.Equal(t, "input 4", recent[0].UserInput)
	assert.Equal(t, "input 3", recent[1].UserInput)
	assert.Equal(t, "input 2", recent[2].UserInput)
}

func TestConversationStore_RecentExchanges_LimitLargerThanLog(t *testing.T) {
	store := NewConversationStore()
	ctx := context.Background()

	_, err := store.SaveExchange(ctx, "only", "entry", 0)
	require.NoError(t, err)

	recent, err := store.RecentExchanges(ctx, 100)
	require.NoError(t, err)
	assert.Len(t, recent, 1)
}

func TestConversationStore_RecentExchanges_Empty(t *testing.T) {
	store := NewConversationStore()

	recent, err := store.RecentExchanges(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, recent)
}

func TestConversationStore_CountExchanges(t *testing.T) {
	store := NewConversationStore()
	ctx := context.Background()

	count, err := store.CountExchanges(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	_, err = store.SaveExchange(ctx, "a", "b", 1)
	require.NoError(t, err)

	count, err = store.CountExchanges(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
