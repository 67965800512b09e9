package domain

// SearchOptions configures a fact search.
type SearchOptions struct {
	// Limit is the maximum number of results.
	Limit int

	// Category restricts the corpus to a single category when non-empty.
	Category string

	// IncludeWeak keeps results below the similarity floor.
	// Used by diagnostic surfaces; the resolver never sets it.
	IncludeWeak bool
}

// RankedFact is a fact scored against a query.
type RankedFact struct {
	// Fact is the matched fact.
	Fact Fact

	// Similarity is the cosine similarity of the query and the fact
	// content, in [0,1].
	Similarity float64

	// Combined is the ranking score: a weighted sum of Similarity
	// and the fact's Importance.
	Combined float64
}

// RankWeights holds the similarity/importance mix for the combined score.
// Relevance dominates by default; importance breaks near-ties in favour
// of curated knowledge.
type RankWeights struct {
	Similarity float64
	Importance float64
}

// DefaultRankWeights is the 70/30 split used unless configured otherwise.
var DefaultRankWeights = RankWeights{Similarity: 0.7, Importance: 0.3}

// Score combines a similarity value with a fact importance.
func (w RankWeights) Score(similarity, importance float64) float64 {
	return w.Similarity*similarity + w.Importance*importance
}
