// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package outline

import (
	"errors"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/canvas-outline/internal/canvas"
	"github.com/pdiddy/canvas-outline/pkg/types"
)

func render(t *testing.T, c types.Canvas) string {
	t.Helper()
	out, err := Generate(&c)
	require.NoError(t, err)
	return out
}

func TestGenerateScenarios(t *testing.T) {
	tests := []struct {
		name   string
		canvas types.Canvas
		want   string
	}{
		{
			name:   "empty canvas",
			canvas: types.Canvas{},
			want:   "",
		},
		{
			name: "root with body and child",
			canvas: types.Canvas{
				Nodes: []types.Node{{ID: "A", Text: `Root\nbody line`}, {ID: "B", Text: "Child"}},
				Edges: []types.Edge{{FromNode: "A", ToNode: "B"}},
			},
			want: "# Root\nbody line\n## Child\n",
		},
		{
			name:   "node without text or type",
			canvas: types.Canvas{Nodes: []types.Node{{ID: "A"}}},
			want:   "# \n",
		},
		{
			name: "real newlines and blank lines in body",
			canvas: types.Canvas{
				Nodes: []types.Node{{ID: "A", Type: types.NodeText, Text: "Title  \n\n  second  \n\nthird\n"}},
			},
			want: "# Title\nsecond\nthird\n",
		},
		{
			name: "roots concatenate without separators",
			canvas: types.Canvas{
				Nodes: []types.Node{{ID: "A", Text: "One"}, {ID: "B", Text: "Two"}},
			},
			want: "# One\n# Two\n",
		},
		{
			name: "children follow edge order depth first",
			canvas: types.Canvas{
				Nodes: []types.Node{
					{ID: "r", Text: "R"}, {ID: "a", Text: "A"}, {ID: "b", Text: "B"}, {ID: "a1", Text: "A1"},
				},
				Edges: []types.Edge{
					{FromNode: "r", ToNode: "b"},
					{FromNode: "r", ToNode: "a"},
					{FromNode: "a", ToNode: "a1"},
				},
			},
			want: "# R\n## B\n## A\n### A1\n",
		},
		{
			name: "shared child renders once per parent",
			canvas: types.Canvas{
				Nodes: []types.Node{{ID: "p", Text: "P"}, {ID: "q", Text: "Q"}, {ID: "s", Text: "S"}},
				Edges: []types.Edge{{FromNode: "p", ToNode: "s"}, {FromNode: "q", ToNode: "s"}},
			},
			want: "# P\n## S\n# Q\n## S\n",
		},
		{
			name: "dangling child renders as placeholder",
			canvas: types.Canvas{
				Nodes: []types.Node{{ID: "p", Text: "P"}},
				Edges: []types.Edge{{FromNode: "p", ToNode: "ghost"}},
			},
			want: "# P\n## \n",
		},
		{
			name: "text and file embed",
			canvas: types.Canvas{
				Nodes: []types.Node{{ID: "f", Type: types.NodeFile, File: "docs/spec.pdf", Text: "Read this"}},
			},
			want: "# Read this\n[[docs/spec.pdf|spec]]\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, render(t, tt.canvas))
		})
	}
}

func TestRenderBlockEmbeds(t *testing.T) {
	tests := []struct {
		name    string
		content canvas.Content
		level   int
		want    string
	}{
		{
			name:    "image file",
			content: canvas.Content{Embed: canvas.Embed{Kind: canvas.EmbedFile, Target: "diagram.png"}},
			level:   1,
			want:    "# diagram\n![[diagram.png]]\n",
		},
		{
			name:    "non-image file",
			content: canvas.Content{Embed: canvas.Embed{Kind: canvas.EmbedFile, Target: "notes.pdf"}},
			level:   2,
			want:    "## notes\n[[notes.pdf|notes]]\n",
		},
		{
			name:    "image suffix is case sensitive",
			content: canvas.Content{Embed: canvas.Embed{Kind: canvas.EmbedFile, Target: "photo.JPG"}},
			level:   1,
			want:    "# photo\n[[photo.JPG|photo]]\n",
		},
		{
			name:    "www link",
			content: canvas.Content{Embed: canvas.Embed{Kind: canvas.EmbedLink, Target: "https://www.example.com/page"}},
			level:   1,
			want:    "# Example\n[example](https://www.example.com/page)\n",
		},
		{
			name:    "link without www",
			content: canvas.Content{Embed: canvas.Embed{Kind: canvas.EmbedLink, Target: "https://example.org"}},
			level:   1,
			want:    "# Webpage\n[webpage](https://example.org)\n",
		},
		{
			name:    "link name keeps inner capitalization",
			content: canvas.Content{Embed: canvas.Embed{Kind: canvas.EmbedLink, Target: "https://www.gitHub.com"}},
			level:   3,
			want:    "### GitHub\n[gitHub](https://www.gitHub.com)\n",
		},
		{
			name:    "link with text keeps text title",
			content: canvas.Content{Body: "Docs", Embed: canvas.Embed{Kind: canvas.EmbedLink, Target: "https://www.go.dev/doc"}},
			level:   1,
			want:    "# Docs\n[go](https://www.go.dev/doc)\n",
		},
		{
			name:    "empty placeholder bullet",
			content: canvas.Content{},
			level:   7,
			want:    "  - \n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RenderBlock(tt.content, tt.level, Options{}))
		})
	}
}

func TestRenderBlockDepth(t *testing.T) {
	content := canvas.Content{Body: "Title\nmore"}
	for level := 1; level <= 10; level++ {
		got := RenderBlock(content, level, Options{})
		lines := strings.Split(strings.TrimSuffix(got, "\n"), "\n")
		require.Len(t, lines, 2)

		if level <= 6 {
			assert.Equal(t, strings.Repeat("#", level)+" Title", lines[0])
			assert.Equal(t, "more", lines[1])
			continue
		}
		indent := strings.Repeat(" ", 2*(level-6))
		assert.Equal(t, indent+"- Title", lines[0], "level %d", level)
		assert.Equal(t, indent+"  more", lines[1], "level %d", level)
	}
}

func TestRenderBlockDeepEmbedIsNotIndented(t *testing.T) {
	content := canvas.Content{Embed: canvas.Embed{Kind: canvas.EmbedFile, Target: "a/b.gif"}}
	assert.Equal(t, "    - b\n![[a/b.gif]]\n", RenderBlock(content, 8, Options{}))
}

func TestCustomImageExtensions(t *testing.T) {
	content := canvas.Content{Embed: canvas.Embed{Kind: canvas.EmbedFile, Target: "shot.webp"}}

	assert.Equal(t, "# shot\n[[shot.webp|shot]]\n", RenderBlock(content, 1, Options{}))
	assert.Equal(t, "# shot\n![[shot.webp]]\n", RenderBlock(content, 1, OptionsFrom(types.OutlineConfig{
		ImageExtensions: []string{"webp"},
	})))
}

// chainCanvas builds a single path N1 -> N2 -> ... -> Nn.
func chainCanvas(n int) types.Canvas {
	var c types.Canvas
	for i := 1; i <= n; i++ {
		id := strconv.Itoa(i)
		c.Nodes = append(c.Nodes, types.Node{ID: id, Text: "N" + id})
		if i > 1 {
			c.Edges = append(c.Edges, types.Edge{FromNode: strconv.Itoa(i - 1), ToNode: id})
		}
	}
	return c
}

func TestDeepChain(t *testing.T) {
	c := chainCanvas(8)
	want := "# N1\n## N2\n### N3\n#### N4\n##### N5\n###### N6\n  - N7\n    - N8\n"
	assert.Equal(t, want, render(t, c))
}

func TestEveryReachableNodeAppearsOnce(t *testing.T) {
	c := types.Canvas{
		Nodes: []types.Node{
			{ID: "a", Text: "alpha"}, {ID: "b", Text: "bravo"}, {ID: "c", Text: "charlie"},
			{ID: "d", Text: "delta"}, {ID: "e", Text: "echo"}, {ID: "f", Text: "foxtrot"},
		},
		Edges: []types.Edge{
			{FromNode: "a", ToNode: "b"}, {FromNode: "a", ToNode: "c"},
			{FromNode: "c", ToNode: "d"}, {FromNode: "e", ToNode: "f"},
		},
	}
	out := render(t, c)
	for _, n := range c.Nodes {
		assert.Equal(t, 1, strings.Count(out, n.Text), n.ID)
	}
}

func TestCycleIsReported(t *testing.T) {
	c := types.Canvas{
		Nodes: []types.Node{{ID: "root", Text: "Root"}, {ID: "a", Text: "A"}, {ID: "b", Text: "B"}},
		Edges: []types.Edge{
			{FromNode: "root", ToNode: "a"},
			{FromNode: "a", ToNode: "b"},
			{FromNode: "b", ToNode: "a"},
		},
	}
	_, err := Generate(&c)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrCycle))
	assert.Contains(t, err.Error(), `"a"`)
}

func TestCycleWithoutRootsRendersNothing(t *testing.T) {
	c := types.Canvas{
		Nodes: []types.Node{{ID: "a", Text: "A"}, {ID: "b", Text: "B"}},
		Edges: []types.Edge{{FromNode: "a", ToNode: "b"}, {FromNode: "b", ToNode: "a"}},
	}
	assert.Equal(t, "", render(t, c))
}

func TestRenderSubtree(t *testing.T) {
	c := types.Canvas{
		Nodes: []types.Node{{ID: "a", Text: "A"}, {ID: "b", Text: "B"}},
		Edges: []types.Edge{{FromNode: "a", ToNode: "b"}},
	}
	r := New(&c, Options{})

	got, err := r.RenderSubtree("a", 6)
	require.NoError(t, err)
	assert.Equal(t, "###### A\n  - B\n", got)
	assert.Equal(t, []string{"a"}, r.Forest().Roots)
}

func TestLinkName(t *testing.T) {
	tests := map[string]string{
		"https://www.example.com/page":   "example",
		"http://www.my-site.co.uk":       "my-site",
		"https://docs.www.python.org/3/": "python",
		"https://example.org":            "webpage",
		"www.nodot":                      "webpage",
		"":                               "webpage",
	}
	for url, want := range tests {
		assert.Equal(t, want, LinkName(url), url)
	}
}

func TestCapitalize(t *testing.T) {
	assert.Equal(t, "Example", capitalize("example"))
	assert.Equal(t, "MySite", capitalize("mySite"))
	assert.Equal(t, "", capitalize(""))
	assert.Equal(t, "9lives", capitalize("9lives"))
}
