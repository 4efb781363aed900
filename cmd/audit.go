package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/iksnae/gemini-session/internal"
	"github.com/iksnae/gemini-session/internal/export"
	"github.com/spf13/cobra"
)

var (
	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39"))

	sectionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("62")).
			Bold(true).
			Underline(true)
)

// auditCmd represents the audit command
var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Audit a recovery run against the capture",
	Long: `Run the recovery pipeline and report everything that deserves a second
look:
  • Exchanges that were skipped because their body would not decode
  • Declared record counts versus what was actually recovered
  • Records that carried no timestamp and could not be clustered
  • The canonical digest of the combined artifact

All findings are advisory. The capture is undocumented territory, so the
audit points at likely truncation or layout drift instead of failing.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println(sectionStyle.Render("🔍 Capture Audit"))
		fmt.Println()

		// Step 1: Locate and load the capture
		fmt.Println(infoStyle.Render("Step 1: Loading capture..."))
		cfg, err := pipelineConfig()
		if err != nil {
			fmt.Println(errorStyle.Render("❌ Failed to load configuration:"), err)
			return err
		}
		path, err := resolveArchive()
		if err != nil {
			fmt.Println(errorStyle.Render("❌ Failed to locate a capture:"), err)
			return err
		}
		archive, err := internal.LoadArchive(path)
		if err != nil {
			fmt.Println(errorStyle.Render("❌ Failed to load capture:"), err)
			return err
		}
		fmt.Println(successStyle.Render(fmt.Sprintf("✅ Loaded %d exchange(s)", len(archive.Exchanges))))
		if verbose {
			fmt.Printf("   Capture: %s\n", archive.Path)
			fmt.Printf("   Marker: %q  Envelope: %q  Gap: %s\n", cfg.Marker, cfg.EnvelopeTag, cfg.SessionGap())
		}
		fmt.Println()

		// Step 2: Run the pipeline
		fmt.Println(infoStyle.Render("Step 2: Running recovery pipeline..."))
		result := internal.NewPipeline(cfg).Run(archive)
		st := result.Stats
		fmt.Println(successStyle.Render(fmt.Sprintf(
			"✅ Recovered %d unique record(s) in %d session(s)", len(result.Records), len(result.Sessions))))
		if verbose {
			fmt.Printf("   Values parsed: %d  Envelopes: %d  Matches: %d\n", st.Values, st.Envelopes, st.Matches)
			fmt.Printf("   Extracted: %d  Duplicates dropped: %d\n", st.Extracted, st.Duplicates)
		}
		fmt.Println()

		// Step 3: Skipped exchanges
		fmt.Println(infoStyle.Render("Step 3: Checking skipped exchanges..."))
		if st.DecodeFailures == 0 {
			fmt.Println(successStyle.Render("✅ Every body decoded"))
		} else {
			fmt.Println(warningStyle.Render(fmt.Sprintf("⚠️  %d exchange(s) skipped, body would not decode", st.DecodeFailures)))
		}
		fmt.Println()

		// Step 4: Declared counts
		fmt.Println(infoStyle.Render("Step 4: Checking declared counts..."))
		displayIntegrity(result.Reports)
		fmt.Println()

		// Step 5: Unplaceable records
		fmt.Println(infoStyle.Render("Step 5: Checking timestamps..."))
		if len(result.Unclustered) == 0 {
			fmt.Println(successStyle.Render("✅ Every record carries a timestamp"))
		} else {
			fmt.Println(warningStyle.Render(fmt.Sprintf("⚠️  %d record(s) have no timestamp and were not clustered", len(result.Unclustered))))
			if verbose {
				for i, rec := range result.Unclustered {
					if i >= 5 {
						fmt.Printf("   ... and %d more\n", len(result.Unclustered)-5)
						break
					}
					fmt.Printf("   [%d] %s\n", i+1, truncate(rec.Prompt, 60))
				}
			}
		}
		fmt.Println()

		// Step 6: Artifact digest
		fmt.Println(infoStyle.Render("Step 6: Computing artifact digest..."))
		doc, err := export.RecoveredJSON(result.Sessions)
		if err == nil {
			if digest, derr := internal.CanonicalDigest(doc); derr == nil {
				fmt.Println(successStyle.Render("✅ Canonical digest: ") + digest)
			} else {
				fmt.Println(warningStyle.Render("⚠️  Digest unavailable:"), derr)
			}
		} else {
			fmt.Println(warningStyle.Render("⚠️  Could not render combined artifact:"), err)
		}
		fmt.Println()

		// Summary
		fmt.Println(sectionStyle.Render("📊 Summary"))
		fmt.Println()
		clean := st.DecodeFailures == 0 && st.Mismatches == 0 && len(result.Unclustered) == 0
		if clean {
			fmt.Println(successStyle.Render("✅ Audit clean"))
			fmt.Println(successStyle.Render(fmt.Sprintf("   • Sessions: %d", len(result.Sessions))))
			fmt.Println(successStyle.Render(fmt.Sprintf("   • Records: %d", len(result.Records))))
		} else {
			fmt.Println(warningStyle.Render("⚠️  Audit finished with advisories"))
			if st.DecodeFailures > 0 {
				fmt.Println(fmt.Sprintf("   • %d undecodable exchange(s)", st.DecodeFailures))
			}
			if st.Mismatches > 0 {
				fmt.Println(fmt.Sprintf("   • %d declared-count mismatch(es)", st.Mismatches))
			}
			if len(result.Unclustered) > 0 {
				fmt.Println(fmt.Sprintf("   • %d record(s) without a timestamp", len(result.Unclustered)))
			}
		}
		return nil
	},
}

func displayIntegrity(reports []internal.IntegrityReport) {
	if len(reports) == 0 {
		fmt.Println(warningStyle.Render("⚠️  No exchange declared a count or yielded records"))
		return
	}

	mismatches := 0
	for _, rep := range reports {
		if !rep.Match {
			mismatches++
		}
	}
	if mismatches == 0 {
		fmt.Println(successStyle.Render(fmt.Sprintf("✅ %d exchange(s) consistent with their declared counts", len(reports))))
		if !verbose {
			return
		}
	} else {
		fmt.Println(warningStyle.Render(fmt.Sprintf("⚠️  %d of %d exchange(s) mismatched", mismatches, len(reports))))
	}

	w := tabwriter.NewWriter(lipgloss.DefaultRenderer().Output(), 0, 0, 3, ' ', 0)
	_, _ = fmt.Fprintln(w, "   "+titleStyle.Render("Source")+"\t"+titleStyle.Render("Expected")+"\t"+titleStyle.Render("Observed")+"\t")
	for _, rep := range reports {
		if rep.Match && !verbose {
			continue
		}
		expected := "—"
		if rep.ExpectedCount != nil {
			expected = fmt.Sprintf("%d", *rep.ExpectedCount)
		}
		mark := successStyle.Render("✓")
		if !rep.Match {
			mark = warningStyle.Render("✗")
		}
		_, _ = fmt.Fprintf(w, "   %s %s\t%s\t%d\t\n", mark, truncate(rep.SourceURL, 56), expected, rep.ObservedCount)
	}
	_ = w.Flush()
}

func truncate(s string, max int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}

func init() {
	rootCmd.AddCommand(auditCmd)
}
