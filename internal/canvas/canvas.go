// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package canvas reads canvas documents and exposes their nodes in the
// shape the outline renderer needs: an explicit body and embed per node.
package canvas

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path"
	"strings"

	"github.com/pdiddy/canvas-outline/pkg/types"
)

// Extension is the file extension of canvas documents.
const Extension = ".canvas"

// ErrInvalidDocument is returned when the input is not a JSON canvas.
var ErrInvalidDocument = errors.New("invalid canvas document")

// Parse decodes a canvas document. Missing "nodes" or "edges" keys decode
// to empty lists.
func Parse(data []byte) (*types.Canvas, error) {
	var c types.Canvas
	if err := json.NewDecoder(bytes.NewReader(data)).Decode(&c); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	if c.Nodes == nil {
		c.Nodes = []types.Node{}
	}
	if c.Edges == nil {
		c.Edges = []types.Edge{}
	}
	return &c, nil
}

// Load reads and parses the canvas file at p.
func Load(p string) (*types.Canvas, error) {
	data, err := os.ReadFile(p)
	if err != nil {
		return nil, fmt.Errorf("reading canvas %s: %w", p, err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing canvas %s: %w", p, err)
	}
	return c, nil
}

// EmbedKind identifies what a node links to, if anything.
type EmbedKind int

const (
	EmbedNone EmbedKind = iota
	EmbedFile
	EmbedLink
)

// Embed is the external reference carried by a file or link node. Target
// is the file path for EmbedFile and the URL for EmbedLink.
type Embed struct {
	Kind   EmbedKind
	Target string
}

// Content is the renderable view of a node.
type Content struct {
	// Body is the unescaped, trimmed node text. Empty means no text.
	Body  string
	Embed Embed
}

var unescaper = strings.NewReplacer(`\n`, "\n", `\t`, "\t")

// ContentOf builds the renderable view of n. A file node without a file
// path or a link node without a URL carries no embed.
func ContentOf(n types.Node) Content {
	c := Content{
		Body: strings.TrimSpace(unescaper.Replace(n.Text)),
	}
	switch {
	case n.Type == types.NodeFile && n.File != "":
		c.Embed = Embed{Kind: EmbedFile, Target: n.File}
	case n.Type == types.NodeLink && n.URL != "":
		c.Embed = Embed{Kind: EmbedLink, Target: n.URL}
	}
	return c
}

// FileStem returns the base name of a vault path without its extension.
// Dotfiles such as ".env" keep their full name.
func FileStem(file string) string {
	base := path.Base(file)
	stem := strings.TrimSuffix(base, path.Ext(base))
	if stem == "" {
		return base
	}
	return stem
}

// Index maps node ids to their content. When ids repeat, the first
// occurrence wins.
type Index map[string]Content

// NewIndex builds an Index over the nodes of c.
func NewIndex(c *types.Canvas) Index {
	idx := make(Index, len(c.Nodes))
	for _, n := range c.Nodes {
		if _, ok := idx[n.ID]; ok {
			continue
		}
		idx[n.ID] = ContentOf(n)
	}
	return idx
}

// Lookup returns the content of id. Unknown ids yield an empty Content,
// which renders as a placeholder.
func (idx Index) Lookup(id string) Content {
	return idx[id]
}
