package belief

import (
	"sync"
	"time"

	"github.com/moatlabs/sage/internal/domain"
)

const (
	// DefaultConfidence and DefaultDecayFactor apply when a caller has no
	// opinion of its own (news rules pass explicit confidences).
	DefaultConfidence  = 0.7
	DefaultDecayFactor = 0.95

	// summaryRecentChanges is how many trailing change events a summary carries.
	summaryRecentChanges = 5
)

// Tracker owns the current belief records and drives the change log and the
// causal graph. All operations are synchronous and in-memory; a single mutex
// serializes them so a reader never observes a change event without its
// record update or vice versa.
//
// Update inputs are stored as given: confidence and decay factor are not
// clamped to their documented ranges, preserving the pass-through behavior
// of observable outputs for out-of-range callers.
type Tracker struct {
	mu      sync.Mutex
	records map[string]*domain.BeliefRecord
	order   []string
	log     *ChangeLog
	graph   *CausalGraph
	now     func() time.Time
}

// NewTracker returns an empty tracker: no beliefs, no edges, no history.
func NewTracker() *Tracker {
	return &Tracker{
		records: make(map[string]*domain.BeliefRecord),
		log:     NewChangeLog(),
		graph:   NewCausalGraph(),
		now:     time.Now,
	}
}

// SetClock replaces the time source. Intended for tests.
func (t *Tracker) SetClock(now func() time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.now = now
}

// Update writes or overwrites the record for key, appending a change event
// first. The first update for a key emits a "new" event with a nil old
// value; every later update emits an "update" event carrying the prior
// value and confidence.
func (t *Tracker) Update(key, value string, confidence, decayFactor float64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()

	prev, exists := t.records[key]
	if exists {
		old := prev.Value
		t.log.Append(domain.ChangeEvent{
			Key:           key,
			OldValue:      &old,
			NewValue:      value,
			OldConfidence: prev.BaseConfidence,
			NewConfidence: confidence,
			Timestamp:     now,
			ChangeType:    domain.ChangeUpdate,
		})
	} else {
		t.log.Append(domain.ChangeEvent{
			Key:           key,
			OldValue:      nil,
			NewValue:      value,
			OldConfidence: 0.0,
			NewConfidence: confidence,
			Timestamp:     now,
			ChangeType:    domain.ChangeNew,
		})
		t.order = append(t.order, key)
	}

	count := 1
	if exists {
		count = prev.UpdateCount + 1
	}

	t.records[key] = &domain.BeliefRecord{
		Value:          value,
		BaseConfidence: confidence,
		LastUpdated:    now,
		DecayFactor:    decayFactor,
		UpdateCount:    count,
	}
}

// UpdateDefault writes key with DefaultConfidence and DefaultDecayFactor.
func (t *Tracker) UpdateDefault(key, value string) {
	t.Update(key, value, DefaultConfidence, DefaultDecayFactor)
}

// Get returns the live view of key, or false if the key was never updated.
// The stored record is never mutated by reads; decay is recomputed on every
// call instead of being written back.
func (t *Tracker) Get(key string) (domain.BeliefView, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.viewLocked(key, t.now())
}

// GetAll returns the view of every known key whose current confidence
// exceeds the visibility threshold, in key-creation order.
func (t *Tracker) GetAll() []domain.BeliefView {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.visibleLocked(t.now())
}

// Summary partitions the visible beliefs into confidence tiers and reports
// graph and change-log activity.
func (t *Tracker) Summary() domain.BeliefSummary {
	t.mu.Lock()
	defer t.mu.Unlock()

	visible := t.visibleLocked(t.now())

	summary := domain.BeliefSummary{
		TotalBeliefs:     len(visible),
		HighConfidence:   []domain.BeliefView{},
		MediumConfidence: []domain.BeliefView{},
		LowConfidence:    []domain.BeliefView{},
		CausalLinksCount: t.graph.CauseCount(),
		RecentChanges:    t.log.Recent(summaryRecentChanges),
	}

	for _, v := range visible {
		switch {
		case v.CurrentConfidence > HighConfidenceFloor:
			summary.HighConfidence = append(summary.HighConfidence, v)
		case v.CurrentConfidence >= LowConfidenceCeiling:
			summary.MediumConfidence = append(summary.MediumConfidence, v)
		default:
			summary.LowConfidence = append(summary.LowConfidence, v)
		}
	}

	return summary
}

// AddEdge records a causal relation from cause to effect. It always
// succeeds, even when neither endpoint has a belief yet.
func (t *Tracker) AddEdge(cause, effect string, strength float64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.graph.AddEdge(cause, effect, strength, t.now())
}

// AddEdgeDefault records a causal relation at DefaultEdgeStrength.
func (t *Tracker) AddEdgeDefault(cause, effect string) {
	t.AddEdge(cause, effect, DefaultEdgeStrength)
}

// Influenced resolves every outgoing edge of cause against the current
// belief state, in edge-insertion order. Edges to effects that were never
// created are silently skipped.
func (t *Tracker) Influenced(cause string) []domain.InfluencedBelief {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	influenced := []domain.InfluencedBelief{}
	for _, edge := range t.graph.Edges(cause) {
		view, ok := t.viewLocked(edge.Effect, now)
		if !ok {
			continue
		}
		influenced = append(influenced, domain.InfluencedBelief{
			Belief:            view,
			InfluenceStrength: edge.Strength,
		})
	}
	return influenced
}

// ChangeCount reports the total number of updates ever made.
func (t *Tracker) ChangeCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.log.Len()
}

// RecentChanges returns the last n change events in append order.
func (t *Tracker) RecentChanges(n int) []domain.ChangeEvent {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.log.Recent(n)
}

func (t *Tracker) viewLocked(key string, now time.Time) (domain.BeliefView, bool) {
	rec, ok := t.records[key]
	if !ok {
		return domain.BeliefView{}, false
	}

	return domain.BeliefView{
		Key:               key,
		Value:             rec.Value,
		BaseConfidence:    rec.BaseConfidence,
		CurrentConfidence: EffectiveConfidence(rec.BaseConfidence, rec.DecayFactor, rec.LastUpdated, now),
		LastUpdated:       rec.LastUpdated,
		DecayFactor:       rec.DecayFactor,
		UpdateCount:       rec.UpdateCount,
	}, true
}

func (t *Tracker) visibleLocked(now time.Time) []domain.BeliefView {
	visible := []domain.BeliefView{}
	for _, key := range t.order {
		view, ok := t.viewLocked(key, now)
		if ok && view.CurrentConfidence > VisibilityThreshold {
			visible = append(visible, view)
		}
	}
	return visible
}
