package corpus

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/moatlabs/sage/internal/domain"
)

// lexicon is the fixed vocabulary the bag-of-words embedding counts.
// Its length and word order are part of the external contract: conversation
// embeddings persisted as vectors share this dimensionality.
var lexicon = []string{
	"buy", "sell", "value", "price", "market", "stock", "company", "business",
	"investment", "risk", "return", "growth", "earnings", "profit", "management",
	"quality", "time", "patient", "fearful", "greedy", "wonderful", "fair",
}

// Dimensions is the embedding vector length.
const Dimensions = 22

const defaultTopK = 3

var wordPattern = regexp.MustCompile(`\w+`)

// Embed converts text to an L2-normalized term-count vector over the
// lexicon. Text with no lexicon hits yields the zero vector.
func Embed(text string) []float32 {
	words := wordPattern.FindAllString(strings.ToLower(text), -1)

	counts := make(map[string]float64, len(words))
	for _, w := range words {
		counts[w]++
	}

	vec := make([]float32, len(lexicon))
	var sumSq float64
	for i, term := range lexicon {
		c := counts[term]
		vec[i] = float32(c)
		sumSq += c * c
	}

	if sumSq == 0 {
		return vec
	}
	norm := float32(math.Sqrt(sumSq))
	for i := range vec {
		vec[i] /= norm
	}
	return vec
}

// Search scores every document against the query and returns the topK best
// in descending order.
func Search(query string, topK int) []domain.CorpusResult {
	if topK <= 0 {
		topK = defaultTopK
	}

	queryVec := Embed(query)

	results := make([]domain.CorpusResult, 0, len(documents))
	for _, doc := range documents {
		score := dot(queryVec, Embed(doc.Text))
		results = append(results, domain.CorpusResult{
			Score:     score,
			Document:  doc,
			Relevance: relevance(score),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if topK > len(results) {
		topK = len(results)
	}
	return results[:topK]
}

// ContextForQuery formats the top results as quoted letter passages for the
// persona prompt.
func ContextForQuery(query string) string {
	results := Search(query, defaultTopK)

	parts := make([]string, 0, len(results))
	for _, r := range results {
		parts = append(parts, fmt.Sprintf("From %d letter: %s", r.Document.Year, r.Document.Text))
	}
	return strings.Join(parts, "\n\n")
}

func dot(a, b []float32) float32 {
	var sum float32
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}

func relevance(score float32) string {
	switch {
	case score > 0.3:
		return "high"
	case score > 0.1:
		return "medium"
	default:
		return "low"
	}
}
