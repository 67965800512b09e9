package domain

import (
	"strings"
	"time"
)

// DefaultImportance is assigned to facts inserted without an explicit weight.
const DefaultImportance = 0.8

// Fact represents a unit of stored knowledge.
// Content is immutable after creation; only access statistics change.
type Fact struct {
	// ID is the unique, stable identifier assigned at creation.
	ID string

	// Content is the non-empty text body of the fact.
	Content string

	// Category is an optional free-text grouping label.
	Category string

	// Importance is a curator-assigned weight in [0,1], independent
	// of any query. It feeds into the combined ranking score.
	Importance float64

	// Tags are optional free-text labels.
	Tags []string

	// Source is optional provenance; at most one per fact.
	Source *FactSource

	// CreatedAt is when the fact was inserted.
	CreatedAt time.Time

	// LastAccessed is updated every time the fact is returned by a
	// search. Nil until the first retrieval.
	LastAccessed *time.Time

	// AccessCount is incremented on every retrieval.
	AccessCount int
}

// FactSource records where a fact came from.
type FactSource struct {
	Type   string
	URL    string
	Title  string
	Author string
	Date   string
}

// FactDraft carries the caller-supplied fields for a new fact.
// The store assigns ID and CreatedAt.
type FactDraft struct {
	Content    string
	Category   string
	Importance float64
	Tags       []string
	Source     *FactSource
}

// Validate checks the draft against the fact invariants.
func (d FactDraft) Validate() error {
	if strings.TrimSpace(d.Content) == "" {
		return ErrEmptyContent
	}
	return nil
}

// ClampImportance forces v into the [0,1] range.
func ClampImportance(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
