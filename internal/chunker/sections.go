package chunker

import (
	"regexp"
	"strings"
)

// Section is a document segment delimited by a markdown heading or a
// horizontal rule. Transient: sections only exist between splitting and
// chunking.
type Section struct {
	Header  string // Heading text, empty if the segment has no heading.
	Content string // Body text up to the next heading or end of segment.
	Level   int    // 1-3 for a recognized heading, 0 for headerless content.
}

var (
	// headingPattern matches markdown headings of depth 1-3 at line starts.
	headingPattern = regexp.MustCompile(`(?m)^(#{1,3})[ \t]+(.+)$`)
	// separatorPattern matches horizontal-rule lines (three or more dashes).
	separatorPattern = regexp.MustCompile(`(?m)^---+$`)
)

// splitSections breaks a raw document into ordered sections, first on
// horizontal-rule separators, then on heading lines within each part.
//
// Within a part that contains headings, any content preceding the first
// heading is discarded. That matches the ingestion output this service has
// always produced; changing it would shift chunk boundaries for every
// re-indexed document.
func splitSections(text string) []Section {
	parts := separatorPattern.Split(text, -1)

	var sections []Section
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		matches := headingPattern.FindAllStringSubmatchIndex(part, -1)
		if len(matches) == 0 {
			sections = append(sections, Section{Content: part})
			continue
		}

		for i, m := range matches {
			level := m[3] - m[2]
			header := strings.TrimSpace(part[m[4]:m[5]])

			start := m[1]
			end := len(part)
			if i+1 < len(matches) {
				end = matches[i+1][0]
			}
			content := strings.TrimSpace(part[start:end])

			if header != "" || content != "" {
				sections = append(sections, Section{
					Header:  header,
					Content: content,
					Level:   level,
				})
			}
		}
	}

	return sections
}
