// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package prompt asks the user for a canvas path on the terminal.
package prompt

import (
	"errors"
	"os"
	"strings"

	goprompt "github.com/c-bata/go-prompt"
	"github.com/c-bata/go-prompt/completer"

	"github.com/pdiddy/canvas-outline/internal/canvas"
)

// Question is the text shown before the input line.
const Question = "Please provide the path to your .canvas file: "

// ErrEmptyPath is returned when the cleaned input is empty.
var ErrEmptyPath = errors.New("no canvas path provided")

// InputFunc reads one line from the user after showing prefix.
type InputFunc func(prefix string) string

// Terminal returns an InputFunc backed by go-prompt with file path
// completion limited to directories and .canvas files.
func Terminal() InputFunc {
	fc := completer.FilePathCompleter{
		IgnoreCase: true,
		Filter: func(fi os.FileInfo) bool {
			return fi.IsDir() || strings.HasSuffix(fi.Name(), canvas.Extension)
		},
	}
	return func(prefix string) string {
		return goprompt.Input(prefix, fc.Complete,
			goprompt.OptionTitle("canvas-outline"),
			goprompt.OptionCompletionWordSeparator(completer.FilePathCompletionSeparator),
		)
	}
}

// AskPath asks for a canvas path with in and returns it cleaned.
func AskPath(in InputFunc) (string, error) {
	p := CleanPath(in(Question))
	if p == "" {
		return "", ErrEmptyPath
	}
	return p, nil
}

// CleanPath normalizes a path pasted into a terminal: every single quote
// and ampersand is removed (shells add them when a file is dragged in),
// surrounding double quotes are dropped, and whitespace is trimmed.
func CleanPath(raw string) string {
	p := strings.NewReplacer("'", "", "&", "").Replace(raw)
	p = strings.TrimSpace(p)
	if len(p) >= 2 && strings.HasPrefix(p, `"`) && strings.HasSuffix(p, `"`) {
		p = strings.TrimSpace(p[1 : len(p)-1])
	}
	return p
}
