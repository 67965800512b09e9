package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/factotum-labs/factotum-cli/internal/adapters/driven/storage/memory"
	"github.com/factotum-labs/factotum-cli/internal/adapters/driven/vectorizer/tfidf"
	"github.com/factotum-labs/factotum-cli/internal/core/domain"
)

// --- Mock implementations ---

// errFactStore implements driven.FactStore and fails every operation.
type errFactStore struct {
	err error
}

func (s *errFactStore) SaveFact(_ context.Context, _ domain.FactDraft) (*domain.Fact, error) {
	return nil, s.err
}

func (s *errFactStore) GetFact(_ context.Context, _ string) (*domain.Fact, error) {
	return nil, s.err
}

func (s *errFactStore) ListFacts(_ context.Context, _ string) ([]domain.Fact, error) {
	return nil, s.err
}

func (s *errFactStore) FactsByCategory(_ context.Context, _ string) ([]domain.Fact, error) {
	return nil, s.err
}

func (s *errFactStore) TouchAccess(_ context.Context, _ []string, _ time.Time) error {
	return s.err
}

func (s *errFactStore) CountFacts(_ context.Context) (int, error) {
	return 0, s.err
}

// --- Test helpers ---

func setupCapitalFacts(t *testing.T) (*memory.FactStore, []string) {
	t.Helper()
	store := memory.NewFactStore()
	ctx := context.Background()

	drafts := []domain.FactDraft{
		{Content: "The capital of France is Paris", Category: "geography", Importance: 0.9},
		{Content: "The capital of Germany is Berlin", Category: "geography", Importance: 0.8},
		{Content: "Whales are mammals that live in the ocean", Category: "biology", Importance: 0.5},
	}

	ids := make([]string, 0, len(drafts))
	for _, draft := range drafts {
		fact, err := store.SaveFact(ctx, draft)
		require.NoError(t, err)
		ids = append(ids, fact.ID)
	}
	return store, ids
}

func newTestRanker(store *memory.FactStore) *Ranker {
	return NewRanker(store, tfidf.New(), domain.DefaultEngineConfig())
}

// --- Tests ---

func TestRanker_SearchFacts_EmptyQuery(t *testing.T) {
	store, _ := setupCapitalFacts(t)
	ranker := newTestRanker(store)

	results, err := ranker.SearchFacts(context.Background(), "   \t ", domain.SearchOptions{})

	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestRanker_SearchFacts_EmptyCorpus(t *testing.T) {
	ranker := newTestRanker(memory.NewFactStore())

	results, err := ranker.SearchFacts(context.Background(), "anything at all", domain.SearchOptions{})

	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestRanker_SearchFacts_RanksBySimilarity(t *testing.T) {
	store, ids := setupCapitalFacts(t)
	ranker := newTestRanker(store)

	results, err := ranker.SearchFacts(
		context.Background(), "What is the capital of France", domain.SearchOptions{},
	)

	require.NoError(t, err)
	// The whale fact shares no vocabulary terms with the query, so it
	// scores zero and falls below the similarity threshold.
	require.Len(t, results, 2)
	assert.Equal(t, ids[0], results[0].Fact.ID)
	assert.Equal(t, ids[1], results[1].Fact.ID)
	assert.InDelta(t, 1.0, results[0].Similarity, 1e-9)
	assert.Greater(t, results[0].Similarity, results[1].Similarity)
	assert.Greater(t, results[0].Combined, results[1].Combined)
}

func TestRanker_SearchFacts_IncludeWeak(t *testing.T) {
	store, _ := setupCapitalFacts(t)
	ranker := newTestRanker(store)

	results, err := ranker.SearchFacts(
		context.Background(), "What is the capital of France",
		domain.SearchOptions{IncludeWeak: true},
	)

	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Zero(t, results[2].Similarity)
}

func TestRanker_SearchFacts_Limit(t *testing.T) {
	store, ids := setupCapitalFacts(t)
	ranker := newTestRanker(store)

	results, err := ranker.SearchFacts(
		context.Background(), "What is the capital of France",
		domain.SearchOptions{Limit: 1},
	)

	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, ids[0], results[0].Fact.ID)
}

func TestRanker_SearchFacts_CategoryFilter(t *testing.T) {
	store, ids := setupCapitalFacts(t)
	ranker := newTestRanker(store)

	results, err := ranker.SearchFacts(
		context.Background(), "whales in the ocean",
		domain.SearchOptions{Category: "biology"},
	)

	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, ids[2], results[0].Fact.ID)
	assert.Equal(t, "biology", results[0].Fact.Category)
}

func TestRanker_SearchFacts_ImportanceBreaksEqualSimilarity(t *testing.T) {
	store := memory.NewFactStore()
	ctx := context.Background()

	low, err := store.SaveFact(ctx, domain.FactDraft{Content: "the sky is blue", Importance: 0.3})
	require.NoError(t, err)
	high, err := store.SaveFact(ctx, domain.FactDraft{Content: "the sky is blue", Importance: 0.9})
	require.NoError(t, err)
	_, err = store.SaveFact(ctx, domain.FactDraft{Content: "unrelated filler words entirely", Importance: 0.5})
	require.NoError(t, err)

	ranker := newTestRanker(store)
	results, err := ranker.SearchFacts(ctx, "the sky is blue", domain.SearchOptions{})

	require.NoError(t, err)
	require.Len(t, results, 2)
	// Identical content means identical similarity; the higher stored
	// importance must win the combined score.
	assert.InDelta(t, results[0].Similarity, results[1].Similarity, 1e-9)
	assert.Equal(t, high.ID, results[0].Fact.ID)
	assert.Equal(t, low.ID, results[1].Fact.ID)
}

func TestRanker_SearchFacts_ImportanceTieBreakTwoFactCorpus(t *testing.T) {
	// The corpus holds nothing but the two identical-content facts, so
	// every term appears in every document and the vocabulary cutoffs
	// have to relax for ranking to work at all.
	store := memory.NewFactStore()
	ctx := context.Background()

	low, err := store.SaveFact(ctx, domain.FactDraft{Content: "the sky is blue", Importance: 0.3})
	require.NoError(t, err)
	high, err := store.SaveFact(ctx, domain.FactDraft{Content: "the sky is blue", Importance: 0.9})
	require.NoError(t, err)

	ranker := newTestRanker(store)
	results, err := ranker.SearchFacts(ctx, "the sky is blue", domain.SearchOptions{})

	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, high.ID, results[0].Fact.ID)
	assert.Equal(t, low.ID, results[1].Fact.ID)
	assert.InDelta(t, 1.0, results[0].Similarity, 1e-9)
	assert.InDelta(t, 1.0, results[1].Similarity, 1e-9)
	assert.Greater(t, results[0].Combined, results[1].Combined)
}

func TestRanker_SearchFacts_StableTieBreak(t *testing.T) {
	store := memory.NewFactStore()
	ctx := context.Background()

	first, err := store.SaveFact(ctx, domain.FactDraft{Content: "the sky is blue", Importance: 0.5})
	require.NoError(t, err)
	second, err := store.SaveFact(ctx, domain.FactDraft{Content: "the sky is blue", Importance: 0.5})
	require.NoError(t, err)
	_, err = store.SaveFact(ctx, domain.FactDraft{Content: "unrelated filler words entirely", Importance: 0.5})
	require.NoError(t, err)

	ranker := newTestRanker(store)
	results, err := ranker.SearchFacts(ctx, "the sky is blue", domain.SearchOptions{})

	require.NoError(t, err)
	require.Len(t, results, 2)
	// Fully tied scores keep insertion order.
	assert.Equal(t, first.ID, results[0].Fact.ID)
	assert.Equal(t, second.ID, results[1].Fact.ID)
}

func TestRanker_SearchFacts_IdenticalFactRoundTrip(t *testing.T) {
	store := memory.NewFactStore()
	ctx := context.Background()

	fact, err := store.SaveFact(ctx, domain.FactDraft{
		Content:  "Paris is the capital of France",
		Category: "geography",
	})
	require.NoError(t, err)

	ranker := newTestRanker(store)
	results, err := ranker.SearchFacts(ctx, "Paris is the capital of France", domain.SearchOptions{})

	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, fact.ID, results[0].Fact.ID)
	assert.InDelta(t, 1.0, results[0].Similarity, 1e-9)
}

func TestRanker_SearchFacts_Deterministic(t *testing.T) {
	store, _ := setupCapitalFacts(t)
	ranker := newTestRanker(store)
	ctx := context.Background()

	first, err := ranker.SearchFacts(ctx, "What is the capital of France", domain.SearchOptions{})
	require.NoError(t, err)
	second, err := ranker.SearchFacts(ctx, "What is the capital of France", domain.SearchOptions{})
	require.NoError(t, err)

	require.Len(t, second, len(first))
	for i := range first {
		assert.Equal(t, first[i].Fact.ID, second[i].Fact.ID)
		assert.InDelta(t, first[i].Similarity, second[i].Similarity, 1e-12)
		assert.InDelta(t, first[i].Combined, second[i].Combined, 1e-12)
	}
}

func TestRanker_SearchFacts_UpdatesAccessStats(t *testing.T) {
	store := memory.NewFactStore()
	ctx := context.Background()

	fact, err := store.SaveFact(ctx, domain.FactDraft{Content: "Paris is the capital of France"})
	require.NoError(t, err)

	ranker := newTestRanker(store)
	results, err := ranker.SearchFacts(ctx, "Paris is the capital of France", domain.SearchOptions{})

	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, 1, results[0].Fact.AccessCount)
	require.NotNil(t, results[0].Fact.LastAccessed)

	stored, err := store.GetFact(ctx, fact.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.AccessCount)
	require.NotNil(t, stored.LastAccessed)
}

func TestRanker_SearchFacts_StoreFailureDegrades(t *testing.T) {
	ranker := NewRanker(
		&errFactStore{err: errors.New("disk gone")},
		tfidf.New(),
		domain.DefaultEngineConfig(),
	)

	results, err := ranker.SearchFacts(context.Background(), "anything", domain.SearchOptions{})

	require.NoError(t, err)
	assert.Empty(t, results)
}
