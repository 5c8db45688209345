// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package preview renders generated Markdown for display in a terminal.
package preview

import (
	"fmt"
	"io"

	"github.com/charmbracelet/glamour"
)

// DefaultWidth is the word-wrap width of the preview.
const DefaultWidth = 100

// Render returns md styled for the terminal. style is a glamour style
// name ("dark", "light", "notty", ...); empty picks one from the terminal.
func Render(md, style string, width int) (string, error) {
	if width <= 0 {
		width = DefaultWidth
	}
	opts := []glamour.TermRendererOption{glamour.WithWordWrap(width)}
	if style == "" {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStandardStyle(style))
	}

	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return "", fmt.Errorf("initializing preview renderer: %w", err)
	}
	out, err := r.Render(md)
	if err != nil {
		return "", fmt.Errorf("rendering preview: %w", err)
	}
	return out, nil
}

// Write renders md and writes it to w.
func Write(w io.Writer, md, style string, width int) error {
	out, err := Render(md, style, width)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, out)
	return err
}
