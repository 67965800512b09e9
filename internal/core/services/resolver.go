package services

import (
	"context"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/factotum-labs/factotum-cli/internal/core/domain"
	"github.com/factotum-labs/factotum-cli/internal/core/ports/driven"
	"github.com/factotum-labs/factotum-cli/internal/core/ports/driving"
	"github.com/factotum-labs/factotum-cli/internal/logger"
)

// Ensure Resolver implements the interface.
var _ driving.ResolverService = (*Resolver)(nil)

// Keyword lists for the pattern tier. Matched as lowercase substrings,
// so entries must be distinctive enough not to hide inside ordinary
// words.
var (
	greetingKeywords = []string{
		"hola", "buenos días", "buenas tardes", "buenas noches", "saludos",
		"hello", "good morning", "good afternoon", "good evening", "greetings",
	}
	farewellKeywords = []string{
		"adiós", "hasta luego", "hasta pronto", "nos vemos", "chao",
		"goodbye", "farewell", "see you", "good night",
	}
)

// Canned text used when even the unknown reply set is unavailable.
// The unknown tier must never fail.
const lastResortReply = "I am not sure I understood that. Could you rephrase it?"

// Response composition for the fact tier.
const (
	factPrefix     = "Based on my knowledge: "
	factConnective = " Also, "
)

// Resolver answers queries through a fixed four-tier fallback:
// pattern match, fact search, conversation-history reuse, unknown.
// The first tier that produces a usable result wins, and the unknown
// tier is total, so Resolve always returns a non-empty response.
type Resolver struct {
	search        driving.SearchService
	conversations driven.ConversationStore
	vectorizer    driven.Vectorizer
	replies       driven.ReplyStore
	cfg           domain.EngineConfig

	// rng drives canned-reply selection. Guarded by mu: Resolve may
	// be called concurrently and rand.Rand is not safe for that.
	mu  sync.Mutex
	rng *rand.Rand
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithRand sets the randomness source for canned-reply selection.
// Tests inject a seeded source to assert exact output.
func WithRand(rng *rand.Rand) ResolverOption {
	return func(r *Resolver) {
		if rng != nil {
			r.rng = rng
		}
	}
}

// NewResolver creates a new response resolver.
func NewResolver(
	search driving.SearchService,
	conversations driven.ConversationStore,
	vectorizer driven.Vectorizer,
	replies driven.ReplyStore,
	cfg domain.EngineConfig,
	opts ...ResolverOption,
) *Resolver {
	r := &Resolver{
		search:        search,
		conversations: conversations,
		vectorizer:    vectorizer,
		replies:       replies,
		cfg:           cfg.Normalise(),
		rng:           rand.New(rand.NewSource(time.Now().UnixNano())), //nolint:gosec // reply selection, not crypto
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve runs the query through the tiers in order. Errors inside
// tiers 2 and 3 are logged and treated as "no usable result"; they
// never reach the caller.
func (r *Resolver) Resolve(ctx context.Context, query string) (domain.Resolution, error) {
	logger.Section("Resolve")
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		logger.Debug("Empty query, falling through to unknown tier")
		return r.unknownTier(), nil
	}

	if res, ok := r.patternTier(trimmed); ok {
		logger.Info("Resolved by pattern tier")
		return res, nil
	}

	if res, ok := r.factTier(ctx, trimmed); ok {
		logger.Info("Resolved by fact tier (similarity %.3f)", res.Similarity)
		return res, nil
	}

	if res, ok := r.historyTier(ctx, trimmed); ok {
		logger.Info("Resolved by history tier (similarity %.3f)", res.Similarity)
		return res, nil
	}

	logger.Info("Resolved by unknown tier")
	return r.unknownTier(), nil
}

// patternTier matches greeting and farewell keywords. O(1) against
// two small literal lists; no search is invoked.
func (r *Resolver) patternTier(query string) (domain.Resolution, bool) {
	lower := strings.ToLower(query)

	for _, keyword := range greetingKeywords {
		if strings.Contains(lower, keyword) {
			if text, err := r.pickReply(domain.ReplyGreeting); err == nil {
				return domain.Resolution{Text: text, Tier: domain.TierPattern}, true
			}
			break
		}
	}

	for _, keyword := range farewellKeywords {
		if strings.Contains(lower, keyword) {
			if text, err := r.pickReply(domain.ReplyFarewell); err == nil {
				return domain.Resolution{Text: text, Tier: domain.TierPattern}, true
			}
			break
		}
	}

	return domain.Resolution{}, false
}

// factTier searches the fact store and composes a response from the
// top results.
func (r *Resolver) factTier(ctx context.Context, query string) (domain.Resolution, bool) {
	results, err := r.search.SearchFacts(ctx, query, domain.SearchOptions{Limit: r.cfg.FactLimit})
	if err != nil {
		logger.Warn("Fact tier search failed: %v", err)
		return domain.Resolution{}, false
	}
	if len(results) == 0 || results[0].Similarity < r.cfg.FactThreshold {
		return domain.Resolution{}, false
	}

	var b strings.Builder
	b.WriteString(factPrefix)
	ids := make([]string, 0, len(results))
	for i := range results {
		if i > 0 {
			b.WriteString(factConnective)
		}
		b.WriteString(results[i].Fact.Content)
		ids = append(ids, results[i].Fact.ID)
	}
	if category := results[0].Fact.Category; category != "" {
		b.WriteString(" This relates to ")
		b.WriteString(category)
		b.WriteString(".")
	}

	return domain.Resolution{
		Text:       b.String(),
		Tier:       domain.TierFact,
		FactIDs:    ids,
		Similarity: results[0].Similarity,
	}, true
}

// historyTier reuses the stored response of the most similar past
// exchange, if it clears the history threshold. Requires a minimum
// amount of history before vectorization is attempted at all.
func (r *Resolver) historyTier(ctx context.Context, query string) (domain.Resolution, bool) {
	count, err := r.conversations.CountExchanges(ctx)
	if err != nil {
		logger.Warn("History tier count failed: %v", err)
		return domain.Resolution{}, false
	}
	if count < r.cfg.MinHistory {
		logger.Debug("History too short (%d < %d), skipping tier", count, r.cfg.MinHistory)
		return domain.Resolution{}, false
	}

	exchanges, err := r.conversations.RecentExchanges(ctx, r.cfg.HistoryWindow)
	if err != nil {
		logger.Warn("History tier fetch failed: %v", err)
		return domain.Resolution{}, false
	}

	docs := make([]string, 0, len(exchanges)+1)
	for i := range exchanges {
		docs = append(docs, exchanges[i].UserInput)
	}
	docs = append(docs, query)

	matrix, err := r.vectorizer.FitTransform(docs)
	if err != nil {
		logger.Debug("History vectorization yielded no match: %v", err)
		return domain.Resolution{}, false
	}

	queryVec := matrix[len(matrix)-1]
	best := -1
	bestSim := 0.0
	for i := range exchanges {
		if sim := dot(queryVec, matrix[i]); sim > bestSim {
			bestSim = sim
			best = i
		}
	}

	if best < 0 || bestSim <= r.cfg.HistoryThreshold {
		return domain.Resolution{}, false
	}

	return domain.Resolution{
		Text:       exchanges[best].Response,
		Tier:       domain.TierHistory,
		Similarity: bestSim,
	}, true
}

// unknownTier is the guaranteed final fallback.
func (r *Resolver) unknownTier() domain.Resolution {
	text, err := r.pickReply(domain.ReplyUnknown)
	if err != nil {
		logger.Warn("Unknown reply set unavailable: %v", err)
		text = lastResortReply
	}
	return domain.Resolution{Text: text, Tier: domain.TierUnknown}
}

// pickReply selects a random alternative for the category.
func (r *Resolver) pickReply(category domain.ReplyCategory) (string, error) {
	alternatives, err := r.replies.Replies(category)
	if err != nil {
		return "", err
	}
	if len(alternatives) == 0 {
		return "", domain.ErrReplySetEmpty
	}

	r.mu.Lock()
	idx := r.rng.Intn(len(alternatives))
	r.mu.Unlock()
	return alternatives[idx], nil
}
