//go:build mage

package main

import (
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Convert converts every .canvas file in $CANVAS_DIR (default: examples).
func Convert() error {
	mg.Deps(Build)
	dir := os.Getenv("CANVAS_DIR")
	if dir == "" {
		dir = "examples"
	}
	return sh.RunV(filepath.Join(binDir, binName), "convert", "--dir", dir, "--history-db", "")
}
