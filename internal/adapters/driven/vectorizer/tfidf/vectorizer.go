// Package tfidf implements the Vectorizer port with term-frequency /
// inverse-document-frequency weighting over unigrams and bigrams.
package tfidf

import (
	"math"
	"sort"
	"strings"
	"unicode"

	"github.com/factotum-labs/factotum-cli/internal/core/domain"
	"github.com/factotum-labs/factotum-cli/internal/core/ports/driven"
)

// Ensure Vectorizer implements the port.
var _ driven.Vectorizer = (*Vectorizer)(nil)

// Default vocabulary cutoffs. Terms present in more than maxDF of the
// documents carry no signal; terms present in fewer than minDF are
// single-occurrence noise.
const (
	defaultMaxDF       = 0.85
	defaultMinDF       = 2
	defaultMaxFeatures = 10000
)

// Vectorizer converts document batches into L2-normalised TF-IDF
// vectors. It holds only configuration; FitTransform retains no state
// across calls, so a single instance is safe for concurrent use.
type Vectorizer struct {
	maxDF       float64
	minDF       int
	maxFeatures int
}

// Option configures a Vectorizer.
type Option func(*Vectorizer)

// WithMaxDF sets the maximum document-frequency fraction for a term
// to be included in the vocabulary.
func WithMaxDF(f float64) Option {
	return func(v *Vectorizer) {
		if f > 0 && f <= 1 {
			v.maxDF = f
		}
	}
}

// WithMinDF sets the minimum document count for a term to be included
// in the vocabulary.
func WithMinDF(n int) Option {
	return func(v *Vectorizer) {
		if n > 0 {
			v.minDF = n
		}
	}
}

// WithMaxFeatures caps the vocabulary size.
func WithMaxFeatures(n int) Option {
	return func(v *Vectorizer) {
		if n > 0 {
			v.maxFeatures = n
		}
	}
}

// New creates a Vectorizer with the default cutoffs.
func New(opts ...Option) *Vectorizer {
	v := &Vectorizer{
		maxDF:       defaultMaxDF,
		minDF:       defaultMinDF,
		maxFeatures: defaultMaxFeatures,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// FitTransform vectorizes the batch. One row per document, shared
// dimension, rows L2-normalised so cosine similarity is a dot product.
func (v *Vectorizer) FitTransform(docs []string) ([][]float64, error) {
	tokenized := make([][]string, len(docs))
	nonEmpty := 0
	for i, doc := range docs {
		tokenized[i] = Tokenize(doc)
		if len(tokenized[i]) > 0 {
			nonEmpty++
		}
	}
	if nonEmpty < 2 {
		return nil, domain.ErrCorpusTooSmall
	}

	vocab := v.buildVocabulary(tokenized)
	if len(vocab) == 0 {
		return nil, domain.ErrCorpusTooSmall
	}

	// Document frequency per vocabulary term.
	df := make([]int, len(vocab))
	index := make(map[string]int, len(vocab))
	for i, term := range vocab {
		index[term] = i
	}
	for _, terms := range tokenized {
		seen := make(map[int]bool, len(terms))
		for _, term := range terms {
			if col, ok := index[term]; ok {
				seen[col] = true
			}
		}
		for col := range seen {
			df[col]++
		}
	}

	// Smoothed IDF: ln((1+n)/(1+df)) + 1. Keeps every vocabulary term
	// with a positive weight even when it appears in all documents.
	n := len(docs)
	idf := make([]float64, len(vocab))
	for col, d := range df {
		idf[col] = math.Log(float64(1+n)/float64(1+d)) + 1
	}

	matrix := make([][]float64, len(docs))
	for i, terms := range tokenized {
		row := make([]float64, len(vocab))
		for _, term := range terms {
			if col, ok := index[term]; ok {
				row[col] += idf[col]
			}
		}
		normalise(row)
		matrix[i] = row
	}

	return matrix, nil
}

// buildVocabulary selects terms within the document-frequency cutoffs.
// The result is sorted lexicographically so column order, and with it
// the whole transform, is deterministic for a fixed corpus.
func (v *Vectorizer) buildVocabulary(tokenized [][]string) []string {
	df := make(map[string]int)
	for _, terms := range tokenized {
		seen := make(map[string]bool, len(terms))
		for _, term := range terms {
			if !seen[term] {
				seen[term] = true
				df[term]++
			}
		}
	}

	maxCount := int(v.maxDF * float64(len(tokenized)))

	candidates := make([]string, 0, len(df))
	for term, count := range df {
		if count >= v.minDF && count <= maxCount {
			candidates = append(candidates, term)
		}
	}

	// On tiny corpora the two cutoffs can exclude everything: with few
	// documents every term is either below minDF or above the maxDF
	// cutoff. Relax the upper cutoff so a query identical to stored
	// content still scores 1.0.
	if len(candidates) == 0 {
		for term, count := range df {
			if count >= v.minDF {
				candidates = append(candidates, term)
			}
		}
	}

	if len(candidates) > v.maxFeatures {
		// Keep the most frequent terms; break frequency ties
		// lexicographically so the cap is deterministic too.
		sort.Slice(candidates, func(i, j int) bool {
			if df[candidates[i]] != df[candidates[j]] {
				return df[candidates[i]] > df[candidates[j]]
			}
			return candidates[i] < candidates[j]
		})
		candidates = candidates[:v.maxFeatures]
	}

	sort.Strings(candidates)
	return candidates
}

// Tokenize lowercases the text and produces unigrams plus bigrams.
// Bigrams are joined with a space, matching the vocabulary format.
func Tokenize(text string) []string {
	words := splitWords(text)
	if len(words) == 0 {
		return nil
	}

	terms := make([]string, 0, 2*len(words))
	terms = append(terms, words...)
	for i := 0; i+1 < len(words); i++ {
		terms = append(terms, words[i]+" "+words[i+1])
	}
	return terms
}

// splitWords lowercases and splits on anything that is not a letter
// or digit.
func splitWords(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// CosineSimilarity computes the cosine of two vectors. Returns 0 when
// either vector is zero.
func CosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

// Dot returns the dot product of two equal-length vectors. For the
// L2-normalised rows FitTransform produces, this is their cosine
// similarity.
func Dot(a, b []float64) float64 {
	if len(a) != len(b) {
		return 0
	}
	var sum float64
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}

func normalise(row []float64) {
	var sum float64
	for _, v := range row {
		sum += v * v
	}
	if sum == 0 {
		return
	}
	norm := math.Sqrt(sum)
	for i := range row {
		row[i] /= norm
	}
}
