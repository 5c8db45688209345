// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package forest resolves a canvas edge list into the parent/child lookup
// and root order that the outline renderer walks.
package forest

import "github.com/pdiddy/canvas-outline/pkg/types"

// Forest is the resolved structure of a canvas. Children preserves edge-list
// order per parent; Roots preserves node-list order.
//
// Edges are not required to form a tree. A node with several parents is
// listed under each of them, and ids that do not exist in the node list are
// kept as they appear in the edges.
type Forest struct {
	Children map[string][]string
	Roots    []string

	children map[string]struct{}
}

// Resolve derives the Forest of c. Roots are the node ids, in node-list
// order, that are never the target of an edge.
func Resolve(c *types.Canvas) Forest {
	f := Forest{
		Children: make(map[string][]string),
		Roots:    []string{},
		children: make(map[string]struct{}),
	}

	for _, e := range c.Edges {
		f.Children[e.FromNode] = append(f.Children[e.FromNode], e.ToNode)
		f.children[e.ToNode] = struct{}{}
	}

	for _, n := range c.Nodes {
		if f.IsRoot(n.ID) {
			f.Roots = append(f.Roots, n.ID)
		}
	}

	return f
}

// ChildrenOf returns the child ids of id in edge order.
func (f Forest) ChildrenOf(id string) []string {
	return f.Children[id]
}

// IsRoot reports whether id is never the target of an edge.
func (f Forest) IsRoot(id string) bool {
	_, ok := f.children[id]
	return !ok
}
