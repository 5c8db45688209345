// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/canvas-outline/internal/convert"
	"github.com/pdiddy/canvas-outline/internal/history"
	"github.com/pdiddy/canvas-outline/internal/preview"
	"github.com/pdiddy/canvas-outline/internal/prompt"
	"github.com/pdiddy/canvas-outline/pkg/types"
)

// promptInput reads the canvas path when convert gets no arguments.
var promptInput = prompt.Terminal()

var convertCmd = &cobra.Command{
	Use:   "convert [canvas files...]",
	Short: "Convert canvas files to Markdown outlines",
	Long: `Convert reads each canvas file and writes a Markdown outline with the same
base name and a .md extension. Cards without incoming arrows start a new
top-level heading; arrows nest cards below their source, as headings down to
level six and as indented bullets after that. File and link cards add an
embed line.

Without arguments, convert asks for a path. Named canvases are always
written, replacing any existing Markdown. With --dir, every .canvas file in
the directory is converted and a summary is printed; canvases the history
shows unchanged since their last conversion, with the same settings, are
skipped unless --force is set.`,
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().String("output-dir", "", "directory for .md files (default: next to each canvas)")
	convertCmd.Flags().String("dir", "", "convert every .canvas file in this directory")
	convertCmd.Flags().Bool("force", false, "reconvert unchanged canvases in --dir mode")
	convertCmd.Flags().Bool("frontmatter", false, "prepend YAML frontmatter to each output")
	convertCmd.Flags().Bool("stdout", false, "print Markdown to stdout instead of writing files")
	convertCmd.Flags().Bool("preview", false, "print a terminal preview of the written outline")
	convertCmd.Flags().String("preview-style", "", "preview style: dark, light, notty (default: detect)")
	convertCmd.Flags().StringSlice("image-ext", nil, "file suffixes embedded as images (default png,jpg,jpeg,gif)")

	_ = viper.BindPFlag("convert.output_dir", convertCmd.Flags().Lookup("output-dir"))
	_ = viper.BindPFlag("convert.force", convertCmd.Flags().Lookup("force"))
	_ = viper.BindPFlag("convert.frontmatter", convertCmd.Flags().Lookup("frontmatter"))
	_ = viper.BindPFlag("convert.preview", convertCmd.Flags().Lookup("preview"))
	_ = viper.BindPFlag("convert.preview_style", convertCmd.Flags().Lookup("preview-style"))
	_ = viper.BindPFlag("outline.image_extensions", convertCmd.Flags().Lookup("image-ext"))

	rootCmd.AddCommand(convertCmd)
}

// conversionConfig assembles the convert settings from flags, config file,
// and environment.
func conversionConfig() types.ConversionConfig {
	return types.ConversionConfig{
		Outline: types.OutlineConfig{
			ImageExtensions: viper.GetStringSlice("outline.image_extensions"),
		},
		OutputDir:   viper.GetString("convert.output_dir"),
		Force:       viper.GetBool("convert.force"),
		Frontmatter: viper.GetBool("convert.frontmatter"),
	}
}

func runConvert(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)
	out := cmd.OutOrStdout()

	paths := append([]string(nil), args...)
	dir, _ := cmd.Flags().GetString("dir")
	if dir != "" {
		found, err := convert.FindCanvases(dir)
		if err != nil {
			return err
		}
		if len(found) == 0 {
			logger.Warn("no canvas files found", "dir", dir)
		}
		paths = append(paths, found...)
	}

	if len(paths) == 0 && dir == "" {
		p, err := prompt.AskPath(promptInput)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Input as received: %s\n", p)
		paths = []string{p}
	}

	cfg := conversionConfig()
	opts := []convert.Option{convert.WithLogger(logger)}

	if toStdout, _ := cmd.Flags().GetBool("stdout"); toStdout {
		conv := convert.NewConverter(cfg, opts...)
		for _, p := range paths {
			content, _, err := conv.Render(p)
			if err != nil {
				return err
			}
			fmt.Fprint(out, content)
		}
		return nil
	}

	hcfg := types.HistoryConfig{DBPath: viper.GetString("history.db_path")}
	if hcfg.DBPath != "" {
		store, err := history.Open(hcfg.DBPath)
		if err != nil {
			return err
		}
		defer store.Close()
		opts = append(opts, convert.WithHistory(store))
	}
	if dir != "" {
		opts = append(opts, convert.WithIncremental())
	}
	conv := convert.NewConverter(cfg, opts...)

	if len(paths) == 1 && dir == "" {
		res, err := conv.ConvertFile(ctx, paths[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Markdown file has been saved to: %s\n", res.OutputPath)
		if viper.GetBool("convert.preview") {
			return previewFile(cmd, res.OutputPath)
		}
		return nil
	}

	result := conv.ConvertBatch(ctx, paths, out)
	if result.HasFailures() {
		return fmt.Errorf("%d canvas file(s) failed conversion", result.Failed)
	}
	return nil
}

func previewFile(cmd *cobra.Command, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s for preview: %w", path, err)
	}
	return preview.Write(cmd.OutOrStdout(), string(data), viper.GetString("convert.preview_style"), preview.DefaultWidth)
}
