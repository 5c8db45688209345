// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the canvas-outline CLI, which turns
// canvas boards into nested Markdown outlines.
package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/canvas-outline/internal/history"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the canvas-outline CLI.
var rootCmd = &cobra.Command{
	Use:   "canvas-outline",
	Short: "Convert canvas boards into Markdown outlines",
	Long: `canvas-outline reads a canvas document (cards connected by arrows) and
writes a Markdown outline next to it. Each card becomes a heading, or an
indented bullet below heading level six, and arrows decide nesting.

Run "canvas-outline convert" without arguments to be asked for a file.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbose, _ := cmd.Flags().GetBool("verbose")
		level := log.InfoLevel
		if verbose {
			level = log.DebugLevel
		}
		logger := newLogger(cmd.ErrOrStderr(), level)
		if used := viper.ConfigFileUsed(); used != "" {
			logger.Debug("using config file", "path", used)
		}
		cmd.SetContext(withLogger(cmd.Context(), logger))
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./canvas-outline.yaml or ~/.config/canvas-outline/config.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().String("history-db", history.DefaultPath, "conversion history database (empty disables history)")

	_ = viper.BindPFlag("history.db_path", rootCmd.PersistentFlags().Lookup("history-db"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("canvas-outline")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "canvas-outline"))
		}
	}

	viper.SetEnvPrefix("CANVAS_OUTLINE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	_ = viper.ReadInConfig()
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
