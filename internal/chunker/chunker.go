// Package chunker splits markdown documents into size-bounded chunks for
// embedding and vector storage.
//
// Documents are split on horizontal rules and headings into sections, each
// section is chunked with paragraph-level and then sentence-level fallback
// when it exceeds the size budget, and a final pass merges undersized
// adjacent chunks.
package chunker

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Defaults for chunker configuration. Sizes are in characters (runes).
const (
	DefaultChunkSize    = 500
	DefaultChunkOverlap = 50
	DefaultMinChunkSize = 50
)

// MarkdownChunker is a markdown-aware recursive splitter. Chunking is pure
// and side-effect-free apart from constructing chunks, so a single chunker
// is safe to use concurrently across documents.
type MarkdownChunker struct {
	chunkSize    int
	chunkOverlap int
	minChunkSize int
}

// NewMarkdownChunker creates a chunker with the given size parameters.
// Non-positive values fall back to the package defaults.
func NewMarkdownChunker(chunkSize, chunkOverlap, minChunkSize int) *MarkdownChunker {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	if chunkOverlap <= 0 {
		chunkOverlap = DefaultChunkOverlap
	}
	if minChunkSize <= 0 {
		minChunkSize = DefaultMinChunkSize
	}
	return &MarkdownChunker{
		chunkSize:    chunkSize,
		chunkOverlap: chunkOverlap,
		minChunkSize: minChunkSize,
	}
}

// ChunkDocument splits a markdown document into chunks. The source label is
// recorded in each chunk's metadata; empty source defaults to "unknown".
// Malformed or empty input degrades to zero chunks, never an error.
func (c *MarkdownChunker) ChunkDocument(text, source string) []Chunk {
	if source == "" {
		source = "unknown"
	}

	var chunks []Chunk
	for _, sec := range splitSections(text) {
		chunks = append(chunks, c.chunkSection(sec, source)...)
	}

	return c.mergeSmallChunks(chunks)
}

// chunkSection converts one section into one or more size-bounded chunks.
// The heading is reconstructed as a markdown prefix so each chunk keeps its
// section context.
func (c *MarkdownChunker) chunkSection(sec Section, source string) []Chunk {
	fullText := sec.Content
	if sec.Header != "" {
		marker := "##"
		if sec.Level == 3 {
			marker = "###"
		}
		fullText = marker + " " + sec.Header + "\n\n" + sec.Content
	}
	fullText = strings.TrimSpace(fullText)

	if fullText == "" {
		return nil
	}

	meta := Metadata{Source: source, Header: sec.Header, Level: sec.Level}

	if utf8.RuneCountInString(fullText) <= c.chunkSize {
		return []Chunk{newChunk(fullText, meta)}
	}

	return c.splitLargeSection(fullText, meta)
}

// splitLargeSection splits an oversized section at paragraph boundaries,
// greedily accumulating paragraphs up to the size budget. When a chunk is
// flushed, the tail of it (chunkOverlap characters) seeds the next buffer to
// preserve context continuity. A single paragraph that exceeds the budget on
// its own falls back to sentence-level splitting.
func (c *MarkdownChunker) splitLargeSection(text string, meta Metadata) []Chunk {
	var chunks []Chunk

	paragraphs := strings.Split(text, "\n\n")
	current := ""

	for _, para := range paragraphs {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}

		// The +2 accounts for the blank line joining buffer and paragraph.
		if utf8.RuneCountInString(current)+utf8.RuneCountInString(para)+2 > c.chunkSize {
			if current != "" {
				chunks = append(chunks, newChunk(strings.TrimSpace(current), meta))

				if overlap := c.overlapTail(current); overlap != "" {
					current = overlap + "\n\n" + para
				} else {
					current = para
				}
			} else {
				// Paragraph alone exceeds the budget: sentence fallback,
				// no overlap at this granularity.
				chunks = append(chunks, c.splitBySentences(para, meta)...)
				current = ""
			}
		} else {
			if current != "" {
				current += "\n\n" + para
			} else {
				current = para
			}
		}
	}

	if strings.TrimSpace(current) != "" {
		chunks = append(chunks, newChunk(strings.TrimSpace(current), meta))
	}

	return chunks
}

// overlapTail returns the last chunkOverlap characters of a flushed buffer,
// or "" when the buffer is too short for overlap to apply.
func (c *MarkdownChunker) overlapTail(buffer string) string {
	if c.chunkOverlap <= 0 {
		return ""
	}
	runes := []rune(buffer)
	if len(runes) <= c.chunkOverlap {
		return ""
	}
	return string(runes[len(runes)-c.chunkOverlap:])
}

// sentenceBoundary marks the whitespace run after sentence-ending punctuation.
var sentenceBoundary = regexp.MustCompile(`[.!?][ \t\r\n]+`)

// splitSentences splits text after sentence-ending punctuation, keeping the
// punctuation with the preceding sentence and dropping the whitespace run.
// Text without boundaries comes back as a single element.
func splitSentences(text string) []string {
	var sentences []string
	last := 0
	for _, loc := range sentenceBoundary.FindAllStringIndex(text, -1) {
		sentences = append(sentences, text[last:loc[0]+1])
		last = loc[1]
	}
	return append(sentences, text[last:])
}

// splitBySentences applies the greedy accumulation rule at sentence
// granularity. A single sentence longer than the budget is emitted as one
// oversized chunk rather than cut mid-sentence.
func (c *MarkdownChunker) splitBySentences(text string, meta Metadata) []Chunk {
	var chunks []Chunk
	current := ""

	for _, sentence := range splitSentences(text) {
		if utf8.RuneCountInString(current)+utf8.RuneCountInString(sentence)+1 > c.chunkSize {
			if current != "" {
				chunks = append(chunks, newChunk(strings.TrimSpace(current), meta))
			}
			current = sentence
		} else {
			if current != "" {
				current += " " + sentence
			} else {
				current = sentence
			}
		}
	}

	if strings.TrimSpace(current) != "" {
		chunks = append(chunks, newChunk(strings.TrimSpace(current), meta))
	}

	return chunks
}

// mergeSmallChunks coalesces undersized adjacent chunks in a single forward
// pass. A merged chunk inherits the earlier chunk's metadata and is not
// re-checked against the following chunk, so outputs are not guaranteed to
// reach minChunkSize.
func (c *MarkdownChunker) mergeSmallChunks(chunks []Chunk) []Chunk {
	if len(chunks) == 0 {
		return nil
	}

	merged := make([]Chunk, 0, len(chunks))
	current := chunks[0]

	for _, next := range chunks[1:] {
		if current.CharCount() < c.minChunkSize {
			combined := current.Text + "\n\n" + next.Text
			if utf8.RuneCountInString(combined) <= c.chunkSize {
				current = newChunk(combined, current.Meta)
				continue
			}
		}
		merged = append(merged, current)
		current = next
	}

	return append(merged, current)
}
