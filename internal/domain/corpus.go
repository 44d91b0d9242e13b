package domain

// CorpusDocument is one passage from the static shareholder-letter corpus.
type CorpusDocument struct {
	ID    string `json:"id"`
	Year  int    `json:"year"`
	Text  string `json:"text"`
	Topic string `json:"topic"`
}

// CorpusResult is a scored retrieval hit.
type CorpusResult struct {
	Score     float32        `json:"score"`
	Document  CorpusDocument `json:"document"`
	Relevance string         `json:"relevance"`
}
