// Package cmd implements the git-hunk CLI commands using Cobra.
package cmd

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/toyinlola/githunk/pkg/config"
)

var (
	cfgFile   string
	verbose   bool
	porcelain bool
	colorMode string
	cfg       *config.Config
	useColor  bool
)

var rootCmd = &cobra.Command{
	Use:   "git-hunk",
	Short: "Hunk-level staging, unstaging, restoring, and stashing for git",
	Long: `git-hunk is a non-interactive companion to git for enumerating
and selecting individual diff hunks — or even sub-hunk line ranges —
and staging, unstaging, restoring, or stashing exactly those, addressed
by a stable content hash rather than a line number that shifts as peer
hunks are applied.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := setupLogging(); err != nil {
			return err
		}
		return loadRuntimeConfig()
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command and returns any error.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file path (default: .githunk.yml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().BoolVar(&porcelain, "porcelain", false, "machine-readable tab-separated output")
	rootCmd.PersistentFlags().StringVar(&colorMode, "color", "", "color mode: auto|always|never (default: from config)")
}

func setupLogging() error {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))

	return nil
}

// loadRuntimeConfig loads .githunk.yml once per command and resolves
// the color decision once (§9), rather than re-deriving it per write.
func loadRuntimeConfig() error {
	c, err := config.LoadConfig(cfgFile)
	if err != nil {
		return err
	}
	cfg = c

	if colorMode == "" {
		colorMode = cfg.Output.Color
	}
	useColor = colorEnabled(colorMode)

	if porcelain {
		cfg.Output.Format = "porcelain"
	}

	return nil
}

// outputIsPorcelain reports whether the active command should emit
// machine-readable output.
func outputIsPorcelain() bool {
	return cfg != nil && cfg.Output.Format == "porcelain"
}
