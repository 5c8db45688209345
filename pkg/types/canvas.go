// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for canvas-outline.
// Canvas, Node and Edge mirror the JSON canvas file format; ConversionRecord
// and the config structs are shared by the convert and history stages.
package types

// NodeType is the value of a canvas node's "type" key. Only file and link
// change how a node renders; every other value is treated as plain text.
type NodeType string

const (
	NodeText  NodeType = "text"
	NodeFile  NodeType = "file"
	NodeLink  NodeType = "link"
	NodeGroup NodeType = "group"
)

// Canvas is a decoded canvas document. Both lists default to empty when the
// keys are absent.
type Canvas struct {
	Nodes []Node `json:"nodes" yaml:"nodes"`
	Edges []Edge `json:"edges" yaml:"edges"`
}

// Node is a single card on the canvas.
type Node struct {
	// ID uniquely identifies the node within the canvas.
	ID string `json:"id" yaml:"id"`

	// Type selects the card kind: text, file, link, or group.
	Type NodeType `json:"type,omitempty" yaml:"type,omitempty"`

	// Text is the raw card text. It may contain literal "\n" and "\t"
	// escape sequences.
	Text string `json:"text,omitempty" yaml:"text,omitempty"`

	// File is the vault-relative path of a file card.
	File string `json:"file,omitempty" yaml:"file,omitempty"`

	// URL is the target of a link card.
	URL string `json:"url,omitempty" yaml:"url,omitempty"`

	// Geometry is decoded and ignored.
	X      float64 `json:"x,omitempty" yaml:"x,omitempty"`
	Y      float64 `json:"y,omitempty" yaml:"y,omitempty"`
	Width  float64 `json:"width,omitempty" yaml:"width,omitempty"`
	Height float64 `json:"height,omitempty" yaml:"height,omitempty"`
	Color  string  `json:"color,omitempty" yaml:"color,omitempty"`
}

// Edge is a directed parent -> child connection between two nodes.
type Edge struct {
	ID       string `json:"id,omitempty" yaml:"id,omitempty"`
	FromNode string `json:"fromNode" yaml:"fromNode"`
	ToNode   string `json:"toNode" yaml:"toNode"`
}
