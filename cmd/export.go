package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/iksnae/gemini-session/internal"
	"github.com/iksnae/gemini-session/internal/export"
	"github.com/spf13/cobra"
)

var (
	format    string
	outputDir string
	sessionID string
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export recovered sessions to file",
	Long: `Recover sessions from the capture and export them in various formats
(json, jsonl, md, yaml, sqlite).

You can export all sessions or a specific session by ID.
Use 'gemini-session list' to see available session IDs.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var result *internal.Result
		err := internal.ShowProgress(cmd.Context(), "Recovering sessions from capture", func() error {
			var err error
			result, err = runRecovery()
			return err
		})
		if err != nil {
			return err
		}

		sessions := result.Sessions
		if sessionID != "" {
			session, err := findSession(sessions, sessionID)
			if err != nil {
				return err
			}
			sessions = []*internal.Session{session}
		}

		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}

		// sqlite writes one database, not one file per session
		if format == "sqlite" {
			dbPath := filepath.Join(outputDir, "sessions.db")
			exporter := &export.SQLiteExporter{Path: dbPath}
			err := internal.ShowProgress(cmd.Context(), fmt.Sprintf("Exporting %d session(s) to %s", len(sessions), dbPath), func() error {
				return exporter.Export(sessions)
			})
			if err != nil {
				return err
			}
			internal.PrintSuccess(fmt.Sprintf("Export complete: %d session(s) written to %s", len(sessions), dbPath))
			return nil
		}

		exporter, err := export.NewExporter(format)
		if err != nil {
			return err
		}

		err = internal.ShowProgress(cmd.Context(), fmt.Sprintf("Exporting %d session(s) to %s", len(sessions), outputDir), func() error {
			for _, session := range sessions {
				path := filepath.Join(outputDir, export.SessionFileName(session, exporter.Extension()))

				file, err := os.Create(path)
				if err != nil {
					internal.Log().Error().Str("path", path).Err(err).Msg("failed to create file")
					continue
				}
				if err := exporter.Export(session, file); err != nil {
					_ = file.Close()
					internal.Log().Error().Str("session", session.ID).Err(err).Msg("failed to export session")
					continue
				}
				if err := file.Close(); err != nil {
					internal.Log().Warn().Str("path", path).Err(err).Msg("failed to close file")
				}
			}
			return nil
		})
		if err != nil {
			return err
		}

		internal.PrintSuccess(fmt.Sprintf("Export complete: %d session(s) exported to %s", len(sessions), outputDir))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&format, "format", "f", "json", "Export format (json, jsonl, md, yaml, sqlite)")
	exportCmd.Flags().StringVarP(&outputDir, "out", "o", "./exports", "Output directory")
	exportCmd.Flags().StringVar(&sessionID, "session-id", "", "Export a specific session by ID")
}
