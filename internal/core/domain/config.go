package domain

// EngineConfig holds the tunable constants of the retrieval engine.
//
// The threshold values are configuration, not derived truths: the
// defaults mirror the historical behaviour of the system but carry no
// claim of being optimal.
type EngineConfig struct {
	// Weights is the similarity/importance mix for the combined score.
	Weights RankWeights

	// FactThreshold is the minimum cosine similarity for a fact to be
	// considered a usable match in the fact tier.
	FactThreshold float64

	// HistoryThreshold is the minimum cosine similarity for a past
	// exchange to be reused verbatim in the history tier.
	HistoryThreshold float64

	// HistoryWindow is how many recent exchanges the history tier
	// vectorizes.
	HistoryWindow int

	// MinHistory is the minimum number of stored exchanges before the
	// history tier is attempted at all.
	MinHistory int

	// FactLimit is how many ranked facts the fact tier requests.
	FactLimit int
}

// DefaultEngineConfig returns the engine defaults.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		Weights:          DefaultRankWeights,
		FactThreshold:    0.2,
		HistoryThreshold: 0.6,
		HistoryWindow:    100,
		MinHistory:       5,
		FactLimit:        3,
	}
}

// Normalise fills zero-valued fields with defaults and clamps the
// thresholds into [0,1]. It never fails: a broken config degrades to
// the defaults rather than refusing to start.
func (c EngineConfig) Normalise() EngineConfig {
	def := DefaultEngineConfig()
	if c.Weights.Similarity <= 0 && c.Weights.Importance <= 0 {
		c.Weights = def.Weights
	}
	if c.FactThreshold <= 0 {
		c.FactThreshold = def.FactThreshold
	}
	c.FactThreshold = ClampImportance(c.FactThreshold)
	if c.HistoryThreshold <= 0 {
		c.HistoryThreshold = def.HistoryThreshold
	}
	c.HistoryThreshold = ClampImportance(c.HistoryThreshold)
	if c.HistoryWindow <= 0 {
		c.HistoryWindow = def.HistoryWindow
	}
	if c.MinHistory <= 0 {
		c.MinHistory = def.MinHistory
	}
	if c.FactLimit <= 0 {
		c.FactLimit = def.FactLimit
	}
	return c
}
