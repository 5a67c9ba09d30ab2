package ingest

import (
	"path/filepath"
	"strings"
	"unicode"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	gmtext "github.com/yuin/goldmark/text"
)

// markdownParser is shared; goldmark parsers are safe for concurrent use.
var markdownParser = goldmark.New(goldmark.WithExtensions(extension.Table))

// extractTitle derives a document title from markdown content:
// the first level-1 heading, else the first level-2 heading, else the
// filename without extension with words capitalized.
func extractTitle(content []byte, filename string) string {
	if len(content) == 0 {
		return titleFromFilename(filename)
	}

	doc := markdownParser.Parser().Parse(gmtext.NewReader(content))

	var firstH1, firstH2 string
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		if heading, ok := n.(*ast.Heading); ok {
			headingText := headingPlainText(heading, content)
			if heading.Level == 1 && firstH1 == "" {
				firstH1 = headingText
			} else if heading.Level == 2 && firstH2 == "" && firstH1 == "" {
				firstH2 = headingText
			}
			if firstH1 != "" {
				return ast.WalkStop, nil
			}
		}
		return ast.WalkContinue, nil
	})

	if firstH1 != "" {
		return firstH1
	}
	if firstH2 != "" {
		return firstH2
	}
	return titleFromFilename(filename)
}

// headingPlainText collects the text content of a heading node, flattening
// inline markup like code spans and emphasis.
func headingPlainText(n ast.Node, content []byte) string {
	var b strings.Builder

	_ = ast.Walk(n, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch v := node.(type) {
		case *ast.Text:
			b.Write(v.Segment.Value(content))
		case *ast.String:
			b.Write(v.Value)
		}
		return ast.WalkContinue, nil
	})

	return strings.TrimSpace(b.String())
}

// titleFromFilename strips the extension and capitalizes each word.
func titleFromFilename(filename string) string {
	name := filepath.Base(filename)
	if ext := filepath.Ext(name); ext != "" {
		name = name[:len(name)-len(ext)]
	}

	name = strings.NewReplacer("-", " ", "_", " ").Replace(name)

	words := strings.Fields(name)
	for i, word := range words {
		runes := []rune(word)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}

	return strings.Join(words, " ")
}
