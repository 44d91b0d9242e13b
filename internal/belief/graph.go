package belief

import (
	"time"

	"github.com/moatlabs/sage/internal/domain"
)

// DefaultEdgeStrength is the strength applied when a caller does not supply one.
const DefaultEdgeStrength = 0.5

// CausalGraph is a directed weighted multigraph over belief keys, stored as
// an adjacency list keyed by cause. Duplicate (cause, effect) pairs are kept
// as distinct edges. Edges are never removed or merged, and endpoints need
// not reference an existing belief record. Not safe for concurrent use on
// its own; the owning Tracker serializes access.
type CausalGraph struct {
	edges map[string][]domain.CausalEdge
}

func NewCausalGraph() *CausalGraph {
	return &CausalGraph{edges: make(map[string][]domain.CausalEdge)}
}

func (g *CausalGraph) AddEdge(cause, effect string, strength float64, created time.Time) {
	g.edges[cause] = append(g.edges[cause], domain.CausalEdge{
		Cause:    cause,
		Effect:   effect,
		Strength: strength,
		Created:  created,
	})
}

// Edges returns the outgoing edges of cause in insertion order.
func (g *CausalGraph) Edges(cause string) []domain.CausalEdge {
	return g.edges[cause]
}

// CauseCount returns the number of distinct keys with outgoing edges.
func (g *CausalGraph) CauseCount() int {
	return len(g.edges)
}
