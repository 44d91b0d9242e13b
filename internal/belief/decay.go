package belief

import (
	"math"
	"time"
)

const (
	// DecayMinConfidence is the floor an effective confidence never drops below.
	DecayMinConfidence = 0.1
	// VisibilityThreshold is the cutoff below which a belief is excluded
	// from aggregate views. Records below it stay in storage.
	VisibilityThreshold = 0.2
	// HighConfidenceFloor and LowConfidenceCeiling bound the summary tiers.
	HighConfidenceFloor  = 0.7
	LowConfidenceCeiling = 0.4

	// decayPeriodHours is the window over which DecayFactor applies once.
	decayPeriodHours = 24.0
)

// EffectiveConfidence computes a record's confidence at query time:
// max(0.1, base * decayFactor^(hoursElapsed/24)). A decay factor of 1.0
// means no decay. Elapsed time is clamped to zero when now precedes
// lastUpdated, so clock skew can never inflate confidence above base.
func EffectiveConfidence(base, decayFactor float64, lastUpdated, now time.Time) float64 {
	hours := now.Sub(lastUpdated).Hours()
	if hours < 0 {
		hours = 0
	}

	decayed := base * math.Pow(decayFactor, hours/decayPeriodHours)
	return math.Max(DecayMinConfidence, decayed)
}
