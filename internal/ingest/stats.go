package ingest

import "math"

// Stats summarizes one ingestion run.
type Stats struct {
	FilesProcessed int `json:"files_processed"`
	FilesSkipped   int `json:"files_skipped"`
	FilesFailed    int `json:"files_failed"`
	ChunksCreated  int `json:"chunks_created"`
	ChunksEmbedded int `json:"chunks_embedded"`

	CharStats ChunkCharStats `json:"chunk_char_stats"`

	charCounts []int
}

// ChunkCharStats describes the character-count distribution of the chunks
// produced in a run.
type ChunkCharStats struct {
	Min  int     `json:"min"`
	Max  int     `json:"max"`
	Mean float64 `json:"mean"`
}

// recordChunks accumulates per-chunk character counts for the final stats.
func (s *Stats) recordChunks(charCounts []int) {
	s.ChunksCreated += len(charCounts)
	s.charCounts = append(s.charCounts, charCounts...)
}

// finalize computes the character distribution from the accumulated counts.
func (s *Stats) finalize() {
	if len(s.charCounts) == 0 {
		return
	}

	min, max, sum := s.charCounts[0], s.charCounts[0], 0
	for _, n := range s.charCounts {
		if n < min {
			min = n
		}
		if n > max {
			max = n
		}
		sum += n
	}

	mean := float64(sum) / float64(len(s.charCounts))
	s.CharStats = ChunkCharStats{
		Min:  min,
		Max:  max,
		Mean: math.Round(mean*100) / 100,
	}
}
