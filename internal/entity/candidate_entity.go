package entity

// Candidate is a chunk returned by the hybrid search index for a single
// query, together with the relevance score the engine assigned. Scores from
// different queries are not comparable with each other.
//
// AdjustedScore is a derived value used only while re-ranking; it starts at
// zero and never leaves the re-ranker.
type Candidate struct {
	Chunk         *CVChunk
	Score         float64
	AdjustedScore float64
}
