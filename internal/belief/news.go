package belief

import "strings"

// newsRule maps literal phrases to a belief update. A rule fires when any of
// its phrases is a case-insensitive substring of the input.
type newsRule struct {
	phrases     []string
	key         string
	value       string
	confidence  float64
	description string
}

// newsRules is evaluated in order; the phrases are part of the external
// contract and must not be reworded.
var newsRules = []newsRule{
	{
		phrases:     []string{"rate hike", "interest rate increase", "fed raises"},
		key:         "fed_policy",
		value:       "tightening",
		confidence:  0.8,
		description: "Updated Fed policy to tightening",
	},
	{
		phrases:     []string{"rate cut", "interest rate decrease", "fed lowers"},
		key:         "fed_policy",
		value:       "easing",
		confidence:  0.8,
		description: "Updated Fed policy to easing",
	},
	{
		phrases:     []string{"inflation rising", "price increases", "cpi up"},
		key:         "inflation_trend",
		value:       "rising",
		confidence:  0.7,
		description: "Updated inflation trend to rising",
	},
	{
		phrases:     []string{"market crash", "sell-off", "panic"},
		key:         "market_sentiment",
		value:       "fearful",
		confidence:  0.9,
		description: "Updated market sentiment to fearful",
	},
	{
		phrases:     []string{"market rally", "bull market", "optimism"},
		key:         "market_sentiment",
		value:       "greedy",
		confidence:  0.8,
		description: "Updated market sentiment to greedy",
	},
}

// NewsIngestor turns free text into belief updates by pure substring
// matching against a fixed rule table. No language understanding happens
// here; ambiguous or unmatched text results in no mutation.
type NewsIngestor struct {
	tracker *Tracker
}

func NewNewsIngestor(t *Tracker) *NewsIngestor {
	return &NewsIngestor{tracker: t}
}

// IngestText evaluates every rule against the lower-cased input. Each firing
// rule updates its target belief and contributes one description to the
// result. Text matching no rule returns an empty list and mutates nothing.
func (n *NewsIngestor) IngestText(text string) []string {
	lower := strings.ToLower(text)

	updates := []string{}
	for _, rule := range newsRules {
		if !rule.matches(lower) {
			continue
		}
		n.tracker.Update(rule.key, rule.value, rule.confidence, DefaultDecayFactor)
		updates = append(updates, rule.description)
	}
	return updates
}

func (r newsRule) matches(lower string) bool {
	for _, phrase := range r.phrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}
