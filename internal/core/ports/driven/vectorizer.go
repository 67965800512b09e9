package driven

// Vectorizer converts a batch of strings into a shared-dimension
// numeric representation suitable for cosine comparison.
//
// FitTransform is a pure function of its input: no state is retained
// across calls, so concurrent searches are safe. Implementations must
// be deterministic for a fixed corpus and configuration.
type Vectorizer interface {
	// FitTransform returns one vector per input document, all with the
	// same dimension. Rows are L2-normalised so cosine similarity
	// reduces to a dot product.
	//
	// Returns domain.ErrCorpusTooSmall when fewer than two documents
	// carry usable terms; callers treat that as "no match".
	FitTransform(docs []string) ([][]float64, error)
}
