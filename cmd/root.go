package cmd

import (
	"fmt"
	"os"

	"github.com/iksnae/gemini-session/internal"
	"github.com/spf13/cobra"
)

var (
	verbose     bool
	archivePath string
	markerToken string
	gapMinutes  int
	matchURL    []string
	version     string = "dev"
	commit      string = "unknown"
	date        string = "unknown"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "gemini-session",
	Short: "Recover Gemini conversations from a browser HAR capture",
	Long: `A CLI tool to recover Gemini conversation history from a browser
network capture (HAR archive).

The service's activity endpoints return obfuscated batched-RPC payloads
with no documented schema. This tool digs the prompt records out of them,
deduplicates overlapping pagination windows, clusters records into
sessions by time gap, and writes readable artifacts.

Features:
  • Recover prompts, timestamps and responses from raw captures
  • List and view reconstructed sessions
  • Export in multiple formats (JSON, JSONL, Markdown, YAML, SQLite)
  • Advisory integrity checks against server-declared counts
  • Deterministic output: the same capture always yields the same files

Quick Start:
  gemini-session recover                  # Recover from the detected .har
  gemini-session list                     # List recovered sessions
  gemini-session show Session_20231114_2213
  gemini-session export --format md       # Export sessions as Markdown

For detailed usage, see: https://github.com/iksnae/gemini-session`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		internal.SetVerbose(verbose)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&archivePath, "archive", "a", "", "Path to the HAR capture (default: auto-detect)")
	rootCmd.PersistentFlags().StringVar(&markerToken, "marker", "", "Override the record marker token")
	rootCmd.PersistentFlags().IntVar(&gapMinutes, "gap-minutes", 0, "Override the session gap in minutes")
	rootCmd.PersistentFlags().StringSliceVar(&matchURL, "match-url", nil, "Only scan exchanges whose URL contains one of these substrings")

	// Set version template to ensure --version flag works
	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)
}

// pipelineConfig layers command-line overrides onto the loaded
// configuration. Flags win over environment, environment over defaults.
func pipelineConfig() (internal.Config, error) {
	cfg, err := internal.LoadConfig()
	if err != nil {
		return cfg, err
	}
	flags := rootCmd.PersistentFlags()
	if flags.Changed("marker") {
		cfg.Marker = markerToken
	}
	if flags.Changed("gap-minutes") {
		cfg.SessionGapMinutes = gapMinutes
	}
	if flags.Changed("match-url") {
		cfg.URLFilter = matchURL
	}
	return cfg, nil
}

// resolveArchive returns the capture to read: the --archive flag when
// given, otherwise auto-detection.
func resolveArchive() (string, error) {
	if archivePath != "" {
		return archivePath, nil
	}
	return internal.DetectArchive()
}

// runRecovery loads the resolved archive and runs the full pipeline.
// Shared by every command that needs recovered sessions.
func runRecovery() (*internal.Result, error) {
	cfg, err := pipelineConfig()
	if err != nil {
		return nil, err
	}
	path, err := resolveArchive()
	if err != nil {
		return nil, err
	}
	archive, err := internal.LoadArchive(path)
	if err != nil {
		return nil, err
	}
	return internal.NewPipeline(cfg).Run(archive), nil
}
