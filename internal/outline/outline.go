// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package outline renders a resolved canvas forest as nested Markdown.
// Levels 1-6 become ATX headings; deeper levels become dash bullets
// indented two spaces per level past six.
package outline

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/pdiddy/canvas-outline/internal/canvas"
	"github.com/pdiddy/canvas-outline/internal/forest"
	"github.com/pdiddy/canvas-outline/pkg/types"
)

const (
	// maxHeadingLevel is the deepest level rendered as an ATX heading.
	maxHeadingLevel = 6
	// indentUnit is the per-level indentation of bullets past maxHeadingLevel.
	indentUnit = "  "
	// fallbackLinkName names links whose URL has no www.<name>. host.
	fallbackLinkName = "webpage"
)

// DefaultImageExtensions are the file suffixes embedded as images.
var DefaultImageExtensions = []string{"png", "jpg", "jpeg", "gif"}

// ErrCycle is returned when a node is reached again from one of its own
// descendants.
var ErrCycle = errors.New("cycle in canvas graph")

var wwwName = regexp.MustCompile(`www\.([a-zA-Z0-9\-]+)\.`)

// Options tunes rendering.
type Options struct {
	// ImageExtensions overrides DefaultImageExtensions when non-empty.
	ImageExtensions []string
}

// OptionsFrom converts the outline config into Options.
func OptionsFrom(cfg types.OutlineConfig) Options {
	return Options{ImageExtensions: cfg.ImageExtensions}
}

func (o Options) imageExtensions() []string {
	if len(o.ImageExtensions) > 0 {
		return o.ImageExtensions
	}
	return DefaultImageExtensions
}

// Renderer walks a Forest and produces Markdown.
type Renderer struct {
	forest forest.Forest
	index  canvas.Index
	opts   Options
}

// New creates a Renderer over c.
func New(c *types.Canvas, opts Options) *Renderer {
	return &Renderer{
		forest: forest.Resolve(c),
		index:  canvas.NewIndex(c),
		opts:   opts,
	}
}

// Forest returns the resolved structure the renderer walks.
func (r *Renderer) Forest() forest.Forest {
	return r.forest
}

// Generate renders c with default options.
func Generate(c *types.Canvas) (string, error) {
	return New(c, Options{}).Render()
}

// Render returns the outline of every root subtree, concatenated in root
// order.
func (r *Renderer) Render() (string, error) {
	var b strings.Builder
	for _, id := range r.forest.Roots {
		sub, err := r.RenderSubtree(id, 1)
		if err != nil {
			return "", err
		}
		b.WriteString(sub)
	}
	return b.String(), nil
}

// RenderSubtree returns the block of id at level followed by the subtrees
// of its children at level+1, depth first.
func (r *Renderer) RenderSubtree(id string, level int) (string, error) {
	return r.subtree(id, level, map[string]bool{})
}

func (r *Renderer) subtree(id string, level int, ancestors map[string]bool) (string, error) {
	if ancestors[id] {
		return "", fmt.Errorf("%w: node %q is its own descendant", ErrCycle, id)
	}
	ancestors[id] = true
	defer delete(ancestors, id)

	var b strings.Builder
	b.WriteString(RenderBlock(r.index.Lookup(id), level, r.opts))
	for _, child := range r.forest.ChildrenOf(id) {
		sub, err := r.subtree(child, level+1, ancestors)
		if err != nil {
			return "", err
		}
		b.WriteString(sub)
	}
	return b.String(), nil
}

// RenderBlock returns the lines for a single node at level: the title line,
// any further body lines, and the embed line. It does not include children.
func RenderBlock(c canvas.Content, level int, opts Options) string {
	var b strings.Builder

	prefix, bodyIndent := linePrefix(level)

	title, rest := splitBody(c.Body)
	if c.Body == "" {
		title = fallbackTitle(c.Embed)
	}
	b.WriteString(prefix + title + "\n")

	for _, line := range rest {
		b.WriteString(bodyIndent + line + "\n")
	}

	if embed := embedLine(c.Embed, opts); embed != "" {
		b.WriteString(embed + "\n")
	}

	return b.String()
}

// linePrefix returns the title prefix for level and the indentation for the
// body lines that follow it.
func linePrefix(level int) (prefix, bodyIndent string) {
	if level <= maxHeadingLevel {
		return strings.Repeat("#", level) + " ", ""
	}
	indent := strings.Repeat(indentUnit, level-maxHeadingLevel)
	return indent + "- ", indent + indentUnit
}

// splitBody returns the first line of body as the title and the remaining
// non-blank lines, each trimmed.
func splitBody(body string) (string, []string) {
	if body == "" {
		return "", nil
	}
	lines := strings.Split(body, "\n")
	var rest []string
	for _, line := range lines[1:] {
		if line = strings.TrimSpace(line); line != "" {
			rest = append(rest, line)
		}
	}
	return strings.TrimSpace(lines[0]), rest
}

func fallbackTitle(e canvas.Embed) string {
	switch e.Kind {
	case canvas.EmbedFile:
		return canvas.FileStem(e.Target)
	case canvas.EmbedLink:
		return capitalize(LinkName(e.Target))
	}
	return ""
}

func embedLine(e canvas.Embed, opts Options) string {
	switch e.Kind {
	case canvas.EmbedFile:
		if isImage(e.Target, opts.imageExtensions()) {
			return "![[" + e.Target + "]]"
		}
		return "[[" + e.Target + "|" + canvas.FileStem(e.Target) + "]]"
	case canvas.EmbedLink:
		return "[" + LinkName(e.Target) + "](" + e.Target + ")"
	}
	return ""
}

func isImage(file string, exts []string) bool {
	for _, ext := range exts {
		if strings.HasSuffix(file, ext) {
			return true
		}
	}
	return false
}

// LinkName derives a display name from url: the <name> of the first
// www.<name>. match, or "webpage".
func LinkName(url string) string {
	if m := wwwName.FindStringSubmatch(url); m != nil {
		return m[1]
	}
	return fallbackLinkName
}

// capitalize upper-cases the first letter of s and leaves the rest as is.
func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
