package retriever

import "voicekb/internal/vectorstore"

// ResultMetadata is the provenance stored alongside each chunk in the
// vector store, minus the text itself.
type ResultMetadata struct {
	Source string `json:"source"`
	Header string `json:"header"`
	Level  int    `json:"level"`
}

// RetrievalResult is one retrieved chunk with its similarity score.
// Results keep the vector store's descending-score ordering.
type RetrievalResult struct {
	Text  string         `json:"text"`
	Score float32        `json:"score"`
	Meta  ResultMetadata `json:"metadata"`
}

// SourceRef describes a retrieved chunk for display alongside the context,
// with the text truncated for UI use.
type SourceRef struct {
	Index  int     `json:"index"`
	Text   string  `json:"text"`
	Score  float64 `json:"score"`
	Header string  `json:"header"`
	Source string  `json:"source"`
}

// resultFromScoredPoint maps a vector-store point into a RetrievalResult,
// pulling the chunk text and provenance out of the payload.
func resultFromScoredPoint(point vectorstore.ScoredPoint) RetrievalResult {
	text, _ := point.Payload["text"].(string)
	source, _ := point.Payload["source"].(string)
	header, _ := point.Payload["header"].(string)

	// Qdrant integer payload values come back as int64.
	level := 0
	switch v := point.Payload["level"].(type) {
	case int64:
		level = int(v)
	case float64:
		level = int(v)
	case int:
		level = v
	}

	return RetrievalResult{
		Text:  text,
		Score: point.Score,
		Meta: ResultMetadata{
			Source: source,
			Header: header,
			Level:  level,
		},
	}
}
