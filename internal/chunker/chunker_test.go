package chunker

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestNewMarkdownChunker_Defaults(t *testing.T) {
	c := NewMarkdownChunker(0, 0, 0)
	if c.chunkSize != DefaultChunkSize {
		t.Errorf("chunkSize = %d, want %d", c.chunkSize, DefaultChunkSize)
	}
	if c.chunkOverlap != DefaultChunkOverlap {
		t.Errorf("chunkOverlap = %d, want %d", c.chunkOverlap, DefaultChunkOverlap)
	}
	if c.minChunkSize != DefaultMinChunkSize {
		t.Errorf("minChunkSize = %d, want %d", c.minChunkSize, DefaultMinChunkSize)
	}
}

func TestChunkDocument_SingleSmallInput(t *testing.T) {
	c := NewMarkdownChunker(100, 50, 50)

	input := "This is a simple paragraph of text that should fit in one chunk."
	chunks := c.ChunkDocument(input, "test")

	if len(chunks) != 1 {
		t.Fatalf("ChunkDocument() returned %d chunks, want 1", len(chunks))
	}
	if chunks[0].Text != input {
		t.Errorf("chunk text = %q, want %q", chunks[0].Text, input)
	}
	if chunks[0].Meta.Source != "test" {
		t.Errorf("chunk source = %q, want %q", chunks[0].Meta.Source, "test")
	}
	if chunks[0].ID == "" {
		t.Error("chunk ID should be generated at creation")
	}
}

func TestChunkDocument_EmptyInput(t *testing.T) {
	c := NewMarkdownChunker(500, 50, 50)

	for _, input := range []string{"", "   \n\n\t  "} {
		if chunks := c.ChunkDocument(input, "test"); len(chunks) != 0 {
			t.Errorf("ChunkDocument(%q) returned %d chunks, want 0", input, len(chunks))
		}
	}
}

func TestChunkDocument_DefaultSource(t *testing.T) {
	c := NewMarkdownChunker(500, 50, 50)

	chunks := c.ChunkDocument("Some content here that is long enough to stand alone as a chunk.", "")
	if len(chunks) != 1 {
		t.Fatalf("ChunkDocument() returned %d chunks, want 1", len(chunks))
	}
	if chunks[0].Meta.Source != "unknown" {
		t.Errorf("source = %q, want %q", chunks[0].Meta.Source, "unknown")
	}
}

func TestChunkDocument_TwoHeadings(t *testing.T) {
	c := NewMarkdownChunker(200, 50, 50)

	input := "## Shipping Times\n\n" + strings.Repeat("Orders ship within two business days. ", 5) +
		"\n\n## Return Policy\n\n" + strings.Repeat("Returns are accepted for thirty days. ", 5)

	chunks := c.ChunkDocument(input, "faq.md")
	if len(chunks) < 2 {
		t.Fatalf("ChunkDocument() returned %d chunks, want at least 2", len(chunks))
	}

	var sawShipping, sawReturns bool
	for _, chunk := range chunks {
		if strings.Contains(chunk.Text, "Shipping Times") {
			sawShipping = true
		}
		if strings.Contains(chunk.Text, "Return Policy") {
			sawReturns = true
		}
	}
	if !sawShipping {
		t.Error("no chunk contains the first heading text")
	}
	if !sawReturns {
		t.Error("no chunk contains the second heading text")
	}
}

func TestChunkDocument_SeparatorBlocksPreserveOrder(t *testing.T) {
	c := NewMarkdownChunker(500, 50, 10)

	input := "Alpha block content for the first segment of the document.\n\n" +
		"---\n\n" +
		"Bravo block content for the middle segment of the document.\n\n" +
		"---\n\n" +
		"Charlie block content for the final segment of the document."

	chunks := c.ChunkDocument(input, "blocks.md")

	var all strings.Builder
	for _, chunk := range chunks {
		all.WriteString(chunk.Text)
		all.WriteString("\n")
	}
	joined := all.String()

	posA := strings.Index(joined, "Alpha block")
	posB := strings.Index(joined, "Bravo block")
	posC := strings.Index(joined, "Charlie block")

	if posA == -1 || posB == -1 || posC == -1 {
		t.Fatalf("missing block content in output: %q", joined)
	}
	if !(posA < posB && posB < posC) {
		t.Errorf("block order not preserved: positions %d, %d, %d", posA, posB, posC)
	}
}

func TestChunkDocument_OversizedSentence(t *testing.T) {
	c := NewMarkdownChunker(100, 50, 50)

	// One 300-character paragraph with no sentence boundaries.
	input := strings.Repeat("x", 300)
	chunks := c.ChunkDocument(input, "test")

	if len(chunks) != 1 {
		t.Fatalf("ChunkDocument() returned %d chunks, want 1", len(chunks))
	}
	if chunks[0].Text != input {
		t.Error("oversized sentence should be emitted whole, without data loss")
	}
}

func TestChunkDocument_SizeBound(t *testing.T) {
	c := NewMarkdownChunker(120, 30, 20)

	// A single oversized paragraph with sentence boundaries, so the
	// sentence-level fallback can always find a split point.
	input := strings.Repeat("This sentence is about forty characters. ", 20)

	for i, chunk := range c.ChunkDocument(input, "long.md") {
		if n := utf8.RuneCountInString(chunk.Text); n > 120 {
			t.Errorf("chunk[%d] has %d characters, exceeds budget 120", i, n)
		}
	}
}

func TestChunkDocument_NoContentLoss(t *testing.T) {
	c := NewMarkdownChunker(150, 40, 30)

	paragraphs := []string{
		"The quick brown fox jumps over the lazy dog near the river bank today.",
		"Pack my box with five dozen liquor jugs before the evening train leaves.",
		"How vexingly quick daft zebras jump across the wide open meadow grass.",
	}
	input := "## Animals\n\n" + strings.Join(paragraphs, "\n\n")

	chunks := c.ChunkDocument(input, "animals.md")
	joined := strings.Join(chunkTexts(chunks), " ")

	for _, para := range paragraphs {
		for _, token := range strings.Fields(para) {
			if !strings.Contains(joined, token) {
				t.Errorf("token %q lost during chunking", token)
			}
		}
	}
}

func TestChunkDocument_HeaderPropagation(t *testing.T) {
	c := NewMarkdownChunker(80, 20, 20)

	input := "### Billing\n\n" + strings.Repeat("Invoices are sent monthly by email. ", 10)

	chunks := c.ChunkDocument(input, "billing.md")
	if len(chunks) < 2 {
		t.Fatalf("expected the section to be split, got %d chunks", len(chunks))
	}
	for i, chunk := range chunks {
		if chunk.Meta.Header != "Billing" {
			t.Errorf("chunk[%d] header = %q, want %q", i, chunk.Meta.Header, "Billing")
		}
		if chunk.Meta.Level != 3 {
			t.Errorf("chunk[%d] level = %d, want 3", i, chunk.Meta.Level)
		}
	}
	if !strings.Contains(chunks[0].Text, "### Billing") {
		t.Error("first chunk should carry the reconstructed heading prefix")
	}
}

func TestChunkDocument_ParagraphOverlap(t *testing.T) {
	c := NewMarkdownChunker(100, 30, 10)

	paraA := strings.Repeat("a", 80)
	paraB := strings.Repeat("b", 80)
	input := paraA + "\n\n" + paraB

	chunks := c.ChunkDocument(input, "overlap.md")
	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(chunks))
	}

	// The second chunk is seeded with the 30-character tail of the first.
	want := strings.Repeat("a", 30) + "\n\n" + paraB
	if chunks[1].Text != want {
		t.Errorf("second chunk = %q, want overlap tail plus paragraph", chunks[1].Text)
	}
}

func TestMergeSmallChunks(t *testing.T) {
	c := NewMarkdownChunker(200, 50, 50)

	metaA := Metadata{Source: "a.md", Header: "First", Level: 2}
	metaB := Metadata{Source: "b.md", Header: "Second", Level: 3}

	t.Run("small chunk merges forward and keeps its metadata", func(t *testing.T) {
		chunks := []Chunk{
			newChunk("tiny", metaA),
			newChunk("a following chunk with plenty of content to absorb the fragment", metaB),
		}

		merged := c.mergeSmallChunks(chunks)
		if len(merged) != 1 {
			t.Fatalf("mergeSmallChunks() returned %d chunks, want 1", len(merged))
		}
		if merged[0].Meta != metaA {
			t.Errorf("merged metadata = %+v, want the earlier chunk's %+v", merged[0].Meta, metaA)
		}
		want := "tiny\n\na following chunk with plenty of content to absorb the fragment"
		if merged[0].Text != want {
			t.Errorf("merged text = %q, want %q", merged[0].Text, want)
		}
	})

	t.Run("merge skipped when combined text exceeds budget", func(t *testing.T) {
		chunks := []Chunk{
			newChunk("tiny", metaA),
			newChunk(strings.Repeat("z", 199), metaB),
		}

		merged := c.mergeSmallChunks(chunks)
		if len(merged) != 2 {
			t.Fatalf("mergeSmallChunks() returned %d chunks, want 2", len(merged))
		}
	})

	t.Run("accumulator keeps absorbing while under minimum", func(t *testing.T) {
		chunks := []Chunk{
			newChunk("one", metaA),
			newChunk("two", metaB),
			newChunk("three", metaB),
		}

		// one+two is still under minChunkSize, so three is absorbed too.
		merged := c.mergeSmallChunks(chunks)
		if len(merged) != 1 {
			t.Fatalf("mergeSmallChunks() returned %d chunks, want 1", len(merged))
		}
		if merged[0].Text != "one\n\ntwo\n\nthree" {
			t.Errorf("merged text = %q", merged[0].Text)
		}
		if merged[0].Meta != metaA {
			t.Errorf("merged metadata = %+v, want %+v", merged[0].Meta, metaA)
		}
	})

	t.Run("empty input", func(t *testing.T) {
		if got := c.mergeSmallChunks(nil); got != nil {
			t.Errorf("mergeSmallChunks(nil) = %v, want nil", got)
		}
	})
}

func TestChunkDocument_LonelyHeading(t *testing.T) {
	c := NewMarkdownChunker(500, 50, 50)

	chunks := c.ChunkDocument("## Placeholder", "stub.md")
	if len(chunks) != 1 {
		t.Fatalf("ChunkDocument() returned %d chunks, want 1", len(chunks))
	}
	if chunks[0].Text != "## Placeholder" {
		t.Errorf("chunk text = %q", chunks[0].Text)
	}
	if chunks[0].Meta.Header != "Placeholder" || chunks[0].Meta.Level != 2 {
		t.Errorf("metadata = %+v", chunks[0].Meta)
	}
}

func TestChunk_CharCount(t *testing.T) {
	chunk := newChunk("héllo wörld", Metadata{})
	if got := chunk.CharCount(); got != 11 {
		t.Errorf("CharCount() = %d, want 11 (runes, not bytes)", got)
	}
}

func chunkTexts(chunks []Chunk) []string {
	texts := make([]string, len(chunks))
	for i, chunk := range chunks {
		texts[i] = chunk.Text
	}
	return texts
}
