// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert turns canvas files into Markdown outline files. It owns
// output naming, frontmatter, incremental skipping and batch summaries;
// rendering itself is delegated to the outline package.
package convert

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/canvas-outline/internal/canvas"
	"github.com/pdiddy/canvas-outline/internal/outline"
	"github.com/pdiddy/canvas-outline/pkg/types"
)

const markdownExt = ".md"

// History remembers previous conversions so incremental batches can skip
// unchanged canvases. *history.Store implements it.
type History interface {
	Lookup(ctx context.Context, sourcePath string) (types.ConversionRecord, bool, error)
	Record(ctx context.Context, rec types.ConversionRecord) error
}

// BatchResult holds the outcome of a batch conversion run.
type BatchResult struct {
	Converted int
	Skipped   int
	Failed    int
}

// Total returns the total number of canvases processed.
func (r BatchResult) Total() int {
	return r.Converted + r.Skipped + r.Failed
}

// HasFailures reports whether any canvas failed conversion.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// Outcome describes what ConvertFile did with one canvas.
type Outcome struct {
	Status     types.ConversionStatus
	OutputPath string
	Record     types.ConversionRecord
}

// Converter converts canvas files according to a ConversionConfig.
type Converter struct {
	cfg         types.ConversionConfig
	history     History
	incremental bool
	logger      *log.Logger
	now         func() time.Time
}

// Option customizes a Converter.
type Option func(*Converter)

// WithHistory enables incremental conversion backed by h.
func WithHistory(h History) Option {
	return func(c *Converter) { c.history = h }
}

// WithIncremental makes ConvertBatch skip canvases that are unchanged since
// their recorded conversion.
func WithIncremental() Option {
	return func(c *Converter) { c.incremental = true }
}

// WithLogger sets the logger used for debug output.
func WithLogger(l *log.Logger) Option {
	return func(c *Converter) { c.logger = l }
}

// NewConverter creates a Converter.
func NewConverter(cfg types.ConversionConfig, opts ...Option) *Converter {
	c := &Converter{
		cfg:    cfg,
		logger: log.Default(),
		now:    time.Now,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// OutputPath returns the Markdown path for src: the same base name with a
// .md extension, in outputDir if set, else next to src.
func OutputPath(src, outputDir string) string {
	base := strings.TrimSuffix(filepath.Base(src), filepath.Ext(src)) + markdownExt
	if outputDir != "" {
		return filepath.Join(outputDir, base)
	}
	return filepath.Join(filepath.Dir(src), base)
}

// Render loads src and returns its complete Markdown output, including
// frontmatter when configured, along with a record describing it. Nothing
// is written.
func (c *Converter) Render(src string) (string, types.ConversionRecord, error) {
	doc, err := canvas.Load(src)
	if err != nil {
		return "", types.ConversionRecord{}, err
	}

	r := outline.New(doc, outline.OptionsFrom(c.cfg.Outline))
	body, err := r.Render()
	if err != nil {
		return "", types.ConversionRecord{}, fmt.Errorf("rendering %s: %w", src, err)
	}

	hash, err := c.configHash()
	if err != nil {
		return "", types.ConversionRecord{}, err
	}

	summary := outline.Summarize(body)
	rec := types.ConversionRecord{
		SourcePath:      src,
		OutputPath:      OutputPath(src, c.cfg.OutputDir),
		Nodes:           len(doc.Nodes),
		Edges:           len(doc.Edges),
		Roots:           len(r.Forest().Roots),
		Headings:        summary.Headings,
		ListItems:       summary.ListItems,
		Links:           summary.Links,
		MaxHeadingLevel: summary.MaxHeadingLevel,
		ConfigHash:      hash,
		ConvertedAt:     c.now().UTC(),
	}

	if !c.cfg.Frontmatter {
		return body, rec, nil
	}
	content, err := addFrontmatter(rec, body)
	if err != nil {
		return "", types.ConversionRecord{}, err
	}
	return content, rec, nil
}

// ConvertFile converts one canvas and writes its Markdown, replacing any
// existing output. Errors are returned, not logged.
func (c *Converter) ConvertFile(ctx context.Context, src string) (Outcome, error) {
	abs, modTime, err := locate(ctx, src)
	if err != nil {
		return Outcome{Status: types.ConversionFailed}, err
	}
	return c.write(ctx, abs, modTime)
}

// ConvertChanged is ConvertFile for incremental runs. It leaves the output
// alone when history shows it was written from the same canvas with the
// same settings and it still exists. Force disables the check.
func (c *Converter) ConvertChanged(ctx context.Context, src string) (Outcome, error) {
	abs, modTime, err := locate(ctx, src)
	if err != nil {
		return Outcome{Status: types.ConversionFailed}, err
	}
	outPath := OutputPath(abs, c.cfg.OutputDir)

	skip, err := c.unchanged(ctx, abs, outPath, modTime)
	if err != nil {
		return Outcome{Status: types.ConversionFailed, OutputPath: outPath}, err
	}
	if skip {
		return Outcome{Status: types.ConversionSkipped, OutputPath: outPath}, nil
	}
	return c.write(ctx, abs, modTime)
}

// locate resolves src to an absolute path and reads its modification time.
func locate(ctx context.Context, src string) (string, time.Time, error) {
	if err := ctx.Err(); err != nil {
		return "", time.Time{}, err
	}
	abs, err := filepath.Abs(src)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("resolving %s: %w", src, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("reading canvas %s: %w", src, err)
	}
	return abs, info.ModTime().UTC(), nil
}

func (c *Converter) write(ctx context.Context, abs string, modTime time.Time) (Outcome, error) {
	outPath := OutputPath(abs, c.cfg.OutputDir)

	content, rec, err := c.Render(abs)
	if err != nil {
		return Outcome{Status: types.ConversionFailed, OutputPath: outPath}, err
	}
	rec.SourceModTime = modTime

	if err := writeFileAtomic(outPath, []byte(content)); err != nil {
		return Outcome{Status: types.ConversionFailed, OutputPath: outPath}, err
	}
	c.logger.Debug("wrote outline", "path", outPath,
		"nodes", rec.Nodes, "roots", rec.Roots, "headings", rec.Headings,
		"bullets", rec.ListItems, "max_heading", rec.MaxHeadingLevel)

	if c.history != nil {
		if err := c.history.Record(ctx, rec); err != nil {
			c.logger.Warn("recording history failed", "source", abs, "err", err)
		}
	}

	return Outcome{Status: types.ConversionDone, OutputPath: outPath, Record: rec}, nil
}

func (c *Converter) unchanged(ctx context.Context, src, outPath string, modTime time.Time) (bool, error) {
	if c.cfg.Force || c.history == nil {
		return false, nil
	}
	if _, err := os.Stat(outPath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("checking output %s: %w", outPath, err)
	}
	rec, ok, err := c.history.Lookup(ctx, src)
	if err != nil || !ok {
		return false, err
	}
	hash, err := c.configHash()
	if err != nil {
		return false, err
	}
	if !rec.SourceModTime.Equal(modTime) || rec.ConfigHash != hash || rec.OutputPath != outPath {
		c.logger.Debug("canvas or settings changed since last conversion", "source", src)
		return false, nil
	}
	return true, nil
}

// settings are the options that change rendered output for the same canvas.
type settings struct {
	ImageExtensions []string `yaml:"image_extensions"`
	Frontmatter     bool     `yaml:"frontmatter"`
}

// configHash fingerprints the output-shaping settings.
func (c *Converter) configHash() (string, error) {
	exts := c.cfg.Outline.ImageExtensions
	if len(exts) == 0 {
		exts = outline.DefaultImageExtensions
	}
	data, err := yaml.Marshal(settings{ImageExtensions: exts, Frontmatter: c.cfg.Frontmatter})
	if err != nil {
		return "", fmt.Errorf("marshaling settings: %w", err)
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:8]), nil
}

// ConvertBatch converts each path in order, printing per-file status to w
// and returning a summary. With WithIncremental it uses ConvertChanged. It
// stops early if ctx is cancelled.
func (c *Converter) ConvertBatch(ctx context.Context, paths []string, w io.Writer) BatchResult {
	convert := c.ConvertFile
	if c.incremental {
		convert = c.ConvertChanged
	}

	var result BatchResult
	for _, p := range paths {
		if ctx.Err() != nil {
			break
		}
		name := filepath.Base(p)
		out, err := convert(ctx, p)
		switch {
		case err != nil:
			fmt.Fprintf(w, "failed:    %s (%v)\n", name, err)
			result.Failed++
		case out.Status == types.ConversionSkipped:
			fmt.Fprintf(w, "skipped:   %s (unchanged)\n", name)
			result.Skipped++
		default:
			fmt.Fprintf(w, "converted: %s -> %s\n", name, out.OutputPath)
			result.Converted++
		}
	}
	fmt.Fprintf(w, "\nBatch summary: %d converted, %d skipped, %d failed (total: %d)\n",
		result.Converted, result.Skipped, result.Failed, result.Total())
	return result
}

// FindCanvases returns the .canvas files directly inside dir, sorted by name.
func FindCanvases(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading directory %s: %w", dir, err)
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != canvas.Extension {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}

// frontmatter is the YAML block prepended with --frontmatter.
type frontmatter struct {
	Source      string `yaml:"source"`
	ConvertedAt string `yaml:"converted_at"`
	Nodes       int    `yaml:"nodes"`
	Edges       int    `yaml:"edges"`
	Roots       int    `yaml:"roots"`
}

// addFrontmatter prepends YAML frontmatter to the rendered outline.
func addFrontmatter(rec types.ConversionRecord, body string) (string, error) {
	data, err := yaml.Marshal(frontmatter{
		Source:      filepath.Base(rec.SourcePath),
		ConvertedAt: rec.ConvertedAt.Format(time.RFC3339),
		Nodes:       rec.Nodes,
		Edges:       rec.Edges,
		Roots:       rec.Roots,
	})
	if err != nil {
		return "", fmt.Errorf("marshaling frontmatter: %w", err)
	}
	var b strings.Builder
	b.WriteString("---\n")
	b.Write(data)
	b.WriteString("---\n\n")
	b.WriteString(body)
	return b.String(), nil
}

// writeFileAtomic writes data to a temporary file beside path and renames
// it into place, so a failed write leaves no partial output.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating output directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file for %s: %w", path, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("setting permissions on %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("renaming into %s: %w", path, err)
	}
	return nil
}
