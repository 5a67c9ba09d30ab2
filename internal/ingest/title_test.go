package ingest

import "testing"

func TestExtractTitle(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		filename string
		want     string
	}{
		{
			name:     "first level-1 heading",
			content:  "# Getting Started\n\nSome intro.\n\n## Details\n",
			filename: "getting-started.md",
			want:     "Getting Started",
		},
		{
			name:     "level-1 heading wins over earlier level-2",
			content:  "## Preface\n\n# Real Title\n",
			filename: "doc.md",
			want:     "Real Title",
		},
		{
			name:     "level-2 heading when no level-1",
			content:  "## Billing FAQ\n\nQuestions and answers.\n",
			filename: "billing.md",
			want:     "Billing FAQ",
		},
		{
			name:     "inline code in heading is flattened",
			content:  "# Using `voicekb` locally\n",
			filename: "usage.md",
			want:     "Using voicekb locally",
		},
		{
			name:     "filename fallback capitalizes words",
			content:  "Just a paragraph with no headings.\n",
			filename: "device-setup_guide.md",
			want:     "Device Setup Guide",
		},
		{
			name:     "empty content uses filename",
			content:  "",
			filename: "notes.md",
			want:     "Notes",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := extractTitle([]byte(tt.content), tt.filename)
			if got != tt.want {
				t.Errorf("extractTitle() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestStatsFinalize(t *testing.T) {
	stats := &Stats{}
	stats.recordChunks([]int{100, 200, 150})
	stats.finalize()

	if stats.ChunksCreated != 3 {
		t.Errorf("ChunksCreated = %d, want 3", stats.ChunksCreated)
	}
	if stats.CharStats.Min != 100 || stats.CharStats.Max != 200 {
		t.Errorf("CharStats min/max = %d/%d, want 100/200", stats.CharStats.Min, stats.CharStats.Max)
	}
	if stats.CharStats.Mean != 150 {
		t.Errorf("CharStats.Mean = %v, want 150", stats.CharStats.Mean)
	}
}

func TestStatsFinalize_Empty(t *testing.T) {
	stats := &Stats{}
	stats.finalize()

	if stats.CharStats != (ChunkCharStats{}) {
		t.Errorf("CharStats = %+v, want zero value", stats.CharStats)
	}
}
