package domain

// ReplyCategory keys the predefined response set.
type ReplyCategory string

// Reply categories. The set is fixed and loaded once at startup.
const (
	ReplyGreeting       ReplyCategory = "greeting"
	ReplyFarewell       ReplyCategory = "farewell"
	ReplyUnknown        ReplyCategory = "unknown"
	ReplyAcknowledgment ReplyCategory = "acknowledgment"
)

// IsValid returns true if the category is recognised.
func (c ReplyCategory) IsValid() bool {
	switch c {
	case ReplyGreeting, ReplyFarewell, ReplyUnknown, ReplyAcknowledgment:
		return true
	default:
		return false
	}
}

// Tier identifies which stage of the resolver produced a response.
type Tier string

// Resolver tiers, evaluated in this order. The first tier that
// produces a usable result wins.
const (
	// TierPattern matched a greeting/farewell keyword list.
	TierPattern Tier = "pattern"

	// TierFact composed a response from ranked fact search results.
	TierFact Tier = "fact"

	// TierHistory reused a stored response from a similar past exchange.
	TierHistory Tier = "history"

	// TierUnknown fell through to a canned unknown reply.
	TierUnknown Tier = "unknown"
)

// Resolution is the outcome of resolving one query.
// Text is always non-empty; the unknown tier guarantees it.
type Resolution struct {
	// Text is the response to present to the user.
	Text string

	// Tier is the stage that produced the response.
	Tier Tier

	// FactIDs lists the facts the response was composed from.
	// Empty unless Tier is TierFact.
	FactIDs []string

	// Similarity is the best similarity observed in the winning tier.
	// Zero for the pattern and unknown tiers.
	Similarity float64
}
