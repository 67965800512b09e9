package services

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/factotum-labs/factotum-cli/internal/core/domain"
	"github.com/factotum-labs/factotum-cli/internal/core/ports/driven"
	"github.com/factotum-labs/factotum-cli/internal/core/ports/driving"
	"github.com/factotum-labs/factotum-cli/internal/logger"
)

// Ensure Ranker implements the interface.
var _ driving.SearchService = (*Ranker)(nil)

// defaultSearchLimit applies when SearchOptions.Limit is unset.
const defaultSearchLimit = 10

// Ranker implements fact search: it vectorizes the corpus together
// with the query, scores each fact by cosine similarity, and combines
// that with the fact's stored importance into the final ranking.
type Ranker struct {
	facts      driven.FactStore
	vectorizer driven.Vectorizer
	cfg        domain.EngineConfig

	// now is swappable for tests.
	now func() time.Time
}

// NewRanker creates a new ranking search service.
func NewRanker(facts driven.FactStore, vectorizer driven.Vectorizer, cfg domain.EngineConfig) *Ranker {
	return &Ranker{
		facts:      facts,
		vectorizer: vectorizer,
		cfg:        cfg.Normalise(),
		now:        time.Now,
	}
}

// SearchFacts ranks the stored facts against the query.
//
// The corpus and the query are vectorized together so they share one
// vocabulary and dimension. Ties in the combined score keep corpus
// (insertion) order: the sort is stable and ListFacts returns facts
// in insertion order.
//
// Every returned fact has its access statistics updated; a failure
// there is logged and the results are returned anyway.
func (r *Ranker) SearchFacts(
	ctx context.Context, query string, opts domain.SearchOptions,
) ([]domain.RankedFact, error) {
	logger.Section("Fact Search")
	query = strings.TrimSpace(query)
	if query == "" {
		logger.Debug("Empty query, returning no results")
		return []domain.RankedFact{}, nil
	}

	limit := opts.Limit
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	logger.Debug("Query: %q, limit: %d, category: %q", query, limit, opts.Category)

	corpus, err := r.facts.ListFacts(ctx, opts.Category)
	if err != nil {
		logger.Error("Listing facts failed: %v", err)
		return []domain.RankedFact{}, nil
	}
	if len(corpus) == 0 {
		logger.Debug("Empty corpus")
		return []domain.RankedFact{}, nil
	}

	docs := make([]string, 0, len(corpus)+1)
	for i := range corpus {
		docs = append(docs, corpus[i].Content)
	}
	docs = append(docs, query)

	matrix, err := r.vectorizer.FitTransform(docs)
	if err != nil {
		if errors.Is(err, domain.ErrCorpusTooSmall) {
			logger.Debug("Corpus too small to vectorize, no match")
		} else {
			logger.Warn("Vectorization failed: %v", err)
		}
		return []domain.RankedFact{}, nil
	}

	queryVec := matrix[len(matrix)-1]
	ranked := make([]domain.RankedFact, 0, len(corpus))
	for i := range corpus {
		similarity := dot(queryVec, matrix[i])
		ranked = append(ranked, domain.RankedFact{
			Fact:       corpus[i],
			Similarity: similarity,
			Combined:   r.cfg.Weights.Score(similarity, corpus[i].Importance),
		})
	}

	// Stable sort: equal combined scores keep insertion order.
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Combined > ranked[j].Combined
	})

	if !opts.IncludeWeak {
		usable := ranked[:0]
		for _, rf := range ranked {
			if rf.Similarity >= r.cfg.FactThreshold {
				usable = append(usable, rf)
			}
		}
		ranked = usable
	}

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	logger.Debug("Ranked results: %d", len(ranked))

	r.touchAccess(ctx, ranked)
	return ranked, nil
}

// touchAccess records the retrieval on every returned fact. It never
// fails the search: a stat update error is logged and dropped.
func (r *Ranker) touchAccess(ctx context.Context, ranked []domain.RankedFact) {
	if len(ranked) == 0 {
		return
	}

	now := r.now().UTC()
	ids := make([]string, len(ranked))
	for i := range ranked {
		ids[i] = ranked[i].Fact.ID
		ranked[i].Fact.AccessCount++
		ranked[i].Fact.LastAccessed = &now
	}

	if err := r.facts.TouchAccess(ctx, ids, now); err != nil {
		logger.Warn("Access-stat update failed: %v", err)
	}
}

// dot computes the dot product of two equal-length vectors. Rows from
// the vectorizer are L2-normalised, so this is cosine similarity.
func dot(a, b []float64) float64 {
	if len(a) != len(b) {
		return 0
	}
	var sum float64
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}
