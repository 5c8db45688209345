// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// ConversionStatus indicates the outcome of converting one canvas file.
type ConversionStatus string

const (
	ConversionDone    ConversionStatus = "converted"
	ConversionSkipped ConversionStatus = "skipped"
	ConversionFailed  ConversionStatus = "failed"
)

// ConversionRecord describes a completed conversion. It is stored in the
// history database and exported as YAML or JSON.
type ConversionRecord struct {
	// SourcePath is the absolute path of the canvas file.
	SourcePath string `json:"source_path" yaml:"source_path"`

	// OutputPath is where the Markdown was written.
	OutputPath string `json:"output_path" yaml:"output_path"`

	// SourceModTime is the canvas modification time at conversion.
	SourceModTime time.Time `json:"source_mod_time" yaml:"source_mod_time"`

	// Nodes, Edges and Roots count the canvas structure.
	Nodes int `json:"nodes" yaml:"nodes"`
	Edges int `json:"edges" yaml:"edges"`
	Roots int `json:"roots" yaml:"roots"`

	// Headings, ListItems and Links summarize the generated outline.
	// MaxHeadingLevel is the deepest heading written, 0 if none.
	Headings        int `json:"headings" yaml:"headings"`
	ListItems       int `json:"list_items" yaml:"list_items"`
	Links           int `json:"links" yaml:"links"`
	MaxHeadingLevel int `json:"max_heading_level" yaml:"max_heading_level"`

	// ConfigHash identifies the settings that shaped the output, so a
	// change of image extensions or frontmatter forces a rewrite.
	ConfigHash string `json:"config_hash" yaml:"config_hash"`

	// ConvertedAt is when the output was written.
	ConvertedAt time.Time `json:"converted_at" yaml:"converted_at"`
}
