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
	recoverOutput string
)

// recoverCmd represents the recover command
var recoverCmd = &cobra.Command{
	Use:   "recover",
	Short: "Recover sessions from a HAR capture and write artifacts",
	Long: `Run the full recovery pipeline over a HAR capture and write the
recovered artifacts: a combined recovered_sessions.json plus one Markdown
document per session.

Artifacts are deterministic: running twice over the same capture produces
byte-identical files.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var result *internal.Result

		steps := []internal.ProgressStep{
			{
				Message: "Recovering sessions from capture",
				Fn: func() error {
					var err error
					result, err = runRecovery()
					return err
				},
			},
			{
				Message: "Writing artifacts",
				Fn: func() error {
					return writeArtifacts(result, recoverOutput)
				},
			},
		}
		if err := internal.ShowProgressWithSteps(cmd.Context(), steps); err != nil {
			return err
		}

		st := result.Stats
		internal.PrintSuccess(fmt.Sprintf(
			"Recovered %d record(s) in %d session(s) from %d exchange(s)",
			len(result.Records), len(result.Sessions), st.Exchanges))
		if st.Duplicates > 0 {
			internal.PrintInfo(fmt.Sprintf("Dropped %d duplicate record(s)", st.Duplicates))
		}
		if st.DecodeFailures > 0 {
			internal.PrintWarning(fmt.Sprintf("Skipped %d exchange(s) whose body would not decode", st.DecodeFailures))
		}
		if st.NoTimestamp > 0 {
			internal.PrintWarning(fmt.Sprintf("%d record(s) carried no timestamp and were not clustered", st.NoTimestamp))
		}
		if st.Mismatches > 0 {
			internal.PrintWarning(fmt.Sprintf("%d exchange(s) declared a different record count than was recovered (see audit)", st.Mismatches))
		}
		return nil
	},
}

// writeArtifacts writes the combined JSON document, one Markdown file per
// session and the sessions.yaml index, then logs the canonical digest of
// the combined document.
func writeArtifacts(result *internal.Result, outDir string) error {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	doc, err := export.RecoveredJSON(result.Sessions)
	if err != nil {
		return &internal.ExportError{Format: "json", Path: outDir, Err: err}
	}
	combined := filepath.Join(outDir, "recovered_sessions.json")
	if err := os.WriteFile(combined, append(doc, '\n'), 0644); err != nil {
		return &internal.ExportError{Format: "json", Path: combined, Err: err}
	}

	md := &export.MarkdownExporter{}
	for _, session := range result.Sessions {
		path := filepath.Join(outDir, export.SessionFileName(session, md.Extension()))
		f, err := os.Create(path)
		if err != nil {
			return &internal.ExportError{Format: "md", Path: path, Err: err}
		}
		if err := md.Export(session, f); err != nil {
			_ = f.Close()
			return &internal.ExportError{Format: "md", Path: path, Err: err}
		}
		if err := f.Close(); err != nil {
			return &internal.ExportError{Format: "md", Path: path, Err: err}
		}
	}

	digest, err := internal.CanonicalDigest(doc)
	if err != nil {
		digest = ""
	}
	if err := internal.SaveIndex(internal.BuildIndex(result, digest), outDir); err != nil {
		return &internal.ExportError{Format: "yaml", Path: outDir, Err: err}
	}
	if digest != "" {
		internal.Log().Info().Str("digest", digest).Str("path", combined).Msg("combined artifact written")
	}
	return nil
}

func init() {
	rootCmd.AddCommand(recoverCmd)
	recoverCmd.Flags().StringVarP(&recoverOutput, "out", "o", "./recovered", "Output directory for recovered artifacts")
}
