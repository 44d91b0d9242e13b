package domain

import "time"

// ChangeType classifies a belief mutation.
type ChangeType string

const (
	ChangeNew    ChangeType = "new"
	ChangeUpdate ChangeType = "update"
)

// BeliefRecord is the stored state for one belief key. One record per key,
// mutated in place on every update, never deleted.
type BeliefRecord struct {
	Value          string    `json:"value"`
	BaseConfidence float64   `json:"confidence"`
	LastUpdated    time.Time `json:"last_updated"`
	DecayFactor    float64   `json:"decay_factor"`
	UpdateCount    int       `json:"update_count"`
}

// BeliefView is a read-time snapshot of a record with its confidence
// recomputed against the query clock.
type BeliefView struct {
	Key               string    `json:"key"`
	Value             string    `json:"value"`
	BaseConfidence    float64   `json:"confidence"`
	CurrentConfidence float64   `json:"current_confidence"`
	LastUpdated       time.Time `json:"last_updated"`
	DecayFactor       float64   `json:"decay_factor"`
	UpdateCount       int       `json:"update_count"`
}

// ChangeEvent is an immutable audit record of one belief mutation.
// OldValue is nil for the first update of a key.
type ChangeEvent struct {
	Key           string     `json:"key"`
	OldValue      *string    `json:"old_value"`
	NewValue      string     `json:"new_value"`
	OldConfidence float64    `json:"old_confidence"`
	NewConfidence float64    `json:"new_confidence"`
	Timestamp     time.Time  `json:"timestamp"`
	ChangeType    ChangeType `json:"change_type"`
}

// CausalEdge states that changes in Cause are expected to influence Effect.
// Endpoints need not reference an existing belief record.
type CausalEdge struct {
	Cause    string    `json:"cause"`
	Effect   string    `json:"effect"`
	Strength float64   `json:"strength"`
	Created  time.Time `json:"created"`
}

// InfluencedBelief pairs a resolved effect belief with the edge strength
// that links it to the queried cause.
type InfluencedBelief struct {
	Belief            BeliefView `json:"belief"`
	InfluenceStrength float64    `json:"influence_strength"`
}

// BeliefSummary partitions the visible beliefs into confidence tiers.
type BeliefSummary struct {
	TotalBeliefs     int           `json:"total_beliefs"`
	HighConfidence   []BeliefView  `json:"high_confidence"`
	MediumConfidence []BeliefView  `json:"medium_confidence"`
	LowConfidence    []BeliefView  `json:"low_confidence"`
	CausalLinksCount int           `json:"causal_links_count"`
	RecentChanges    []ChangeEvent `json:"recent_changes"`
}
