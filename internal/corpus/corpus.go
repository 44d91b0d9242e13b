// Package corpus holds the static shareholder-letter passages the advisor
// quotes from, with a fixed bag-of-words similarity search over them.
package corpus

import "github.com/moatlabs/sage/internal/domain"

var documents = []domain.CorpusDocument{
	{
		ID:    "1977_01",
		Year:  1977,
		Text:  "The primary test of managerial economic performance is the achievement of a high earnings rate on equity capital employed (without undue leverage, accounting gimmickry, etc.) and not the achievement of consistent gains in earnings per share.",
		Topic: "management_performance",
	},
	{
		ID:    "1988_01",
		Year:  1988,
		Text:  "Time is the friend of the wonderful business, the enemy of the mediocre. You might think this principle is obvious, but I had to learn it the hard way - by buying Berkshire Hathaway.",
		Topic: "business_quality",
	},
	{
		ID:    "1989_01",
		Year:  1989,
		Text:  "It's far better to buy a wonderful company at a fair price than a fair company at a wonderful price.",
		Topic: "valuation_philosophy",
	},
	{
		ID:    "1992_01",
		Year:  1992,
		Text:  "Risk comes from not knowing what you're doing. The stock market is a voting machine in the short run, but a weighing machine in the long run.",
		Topic: "risk_management",
	},
	{
		ID:    "1996_01",
		Year:  1996,
		Text:  "Most investors, both institutional and individual, will find that the best way to own common stocks is through an index fund that charges minimal fees.",
		Topic: "investment_advice",
	},
	{
		ID:    "2001_01",
		Year:  2001,
		Text:  "In the business world, the rearview mirror is always clearer than the windshield. Predicting rain doesn't count; building arks does.",
		Topic: "market_prediction",
	},
	{
		ID:    "2008_01",
		Year:  2008,
		Text:  "Be fearful when others are greedy and greedy when others are fearful. A simple rule dictates my buying: Be fearful when others are greedy and greedy when others are fearful.",
		Topic: "market_sentiment",
	},
	{
		ID:    "2013_01",
		Year:  2013,
		Text:  "The stock market is designed to transfer money from the Active to the Patient. Our favorite holding period is forever.",
		Topic: "long_term_investing",
	},
	{
		ID:    "2016_01",
		Year:  2016,
		Text:  "Price is what you pay. Value is what you get. Whether we're talking about socks or stocks, I like buying quality merchandise when it's marked down.",
		Topic: "value_investing",
	},
	{
		ID:    "2020_01",
		Year:  2020,
		Text:  "Never bet against America. In the 20th century, the United States endured two world wars and other traumatic and expensive military conflicts; the Depression; a dozen or so recessions and financial panics; oil shocks; a flu epidemic; and the resignation of a disgraced president. Yet the Dow rose from 66 to 11,497.",
		Topic: "american_optimism",
	},
}

// Documents returns the full corpus in canonical order.
func Documents() []domain.CorpusDocument {
	out := make([]domain.CorpusDocument, len(documents))
	copy(out, documents)
	return out
}

// ByTopic returns the documents tagged with topic.
func ByTopic(topic string) []domain.CorpusDocument {
	var out []domain.CorpusDocument
	for _, doc := range documents {
		if doc.Topic == topic {
			out = append(out, doc)
		}
	}
	return out
}

// ByYearRange returns the documents whose letter year falls in [from, to].
func ByYearRange(from, to int) []domain.CorpusDocument {
	var out []domain.CorpusDocument
	for _, doc := range documents {
		if doc.Year >= from && doc.Year <= to {
			out = append(out, doc)
		}
	}
	return out
}
