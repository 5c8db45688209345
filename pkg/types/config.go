// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// OutlineConfig holds rendering settings for the outline stage.
type OutlineConfig struct {
	// ImageExtensions lists file suffixes embedded as images rather than
	// wikilinks (default png, jpg, jpeg, gif). Matching is a case-sensitive
	// suffix check on the full file string.
	ImageExtensions []string `json:"image_extensions" yaml:"image_extensions"`
}

// ConversionConfig holds settings for the convert stage.
type ConversionConfig struct {
	Outline OutlineConfig `json:"outline" yaml:"outline"`

	// OutputDir redirects the generated .md files. Empty writes each file
	// next to its source canvas.
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// Force overwrites existing Markdown files and ignores history.
	Force bool `json:"force" yaml:"force"`

	// Frontmatter prepends a YAML frontmatter block to each output.
	Frontmatter bool `json:"frontmatter" yaml:"frontmatter"`
}

// HistoryConfig holds settings for the conversion history database.
type HistoryConfig struct {
	// DBPath is the SQLite database file. Empty disables history.
	DBPath string `json:"db_path" yaml:"db_path"`
}
