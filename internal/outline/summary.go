// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package outline

import (
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Summary counts the Markdown structures in a rendered outline.
type Summary struct {
	Headings  int
	ListItems int
	Links     int
	// MaxHeadingLevel is the deepest heading seen, 0 if none.
	MaxHeadingLevel int
}

// Summarize parses md with goldmark and counts headings, list items and
// inline links. Wikilink embeds are not CommonMark and are not counted.
func Summarize(md string) Summary {
	src := []byte(md)
	doc := goldmark.New().Parser().Parse(text.NewReader(src))

	var s Summary
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *ast.Heading:
			s.Headings++
			if node.Level > s.MaxHeadingLevel {
				s.MaxHeadingLevel = node.Level
			}
		case *ast.ListItem:
			s.ListItems++
		case *ast.Link:
			s.Links++
		}
		return ast.WalkContinue, nil
	})
	return s
}
