package belief

// seedBeliefs and seedEdges reproduce the default market worldview the agent
// boots with. Order matters: the change log and GetAll iteration order
// follow it.
var seedBeliefs = []struct {
	key        string
	value      string
	confidence float64
}{
	{"fed_policy", "neutral", 0.6},
	{"inflation_trend", "moderate", 0.5},
	{"market_sentiment", "cautious", 0.7},
	{"economic_growth", "steady", 0.6},
	{"interest_rates", "stable", 0.8},
	{"consumer_confidence", "moderate", 0.5},
	{"corporate_earnings", "growing", 0.6},
	{"geopolitical_risk", "elevated", 0.7},
	{"technology_disruption", "accelerating", 0.8},
	{"energy_transition", "ongoing", 0.9},
}

var seedEdges = []struct {
	cause    string
	effect   string
	strength float64
}{
	{"fed_policy", "interest_rates", 0.9},
	{"interest_rates", "market_sentiment", 0.7},
	{"inflation_trend", "fed_policy", 0.8},
	{"economic_growth", "corporate_earnings", 0.8},
	{"geopolitical_risk", "market_sentiment", 0.6},
	{"consumer_confidence", "economic_growth", 0.7},
}

// Seed applies the default beliefs and causal edges to a fresh tracker.
func Seed(t *Tracker) {
	for _, b := range seedBeliefs {
		t.Update(b.key, b.value, b.confidence, DefaultDecayFactor)
	}
	for _, e := range seedEdges {
		t.AddEdge(e.cause, e.effect, e.strength)
	}
}
