package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/iksnae/gemini-session/internal"
	"github.com/spf13/cobra"
)

var (
	inspectAll    bool
	inspectSample int
)

// inspectCmd represents the inspect command
var inspectCmd = &cobra.Command{
	Use:   "inspect [archive-path]",
	Short: "Inspect a capture and show what each exchange contributes",
	Long: `Walk every exchange in a HAR capture through the extraction stages
individually and show what each one yields.

This is the fastest way to find out which endpoints actually carry
conversation records, and whether a capture is worth recovering from at
all.

Examples:
  gemini-session inspect                       # Auto-detect and inspect
  gemini-session inspect ./MyActivity.har      # Inspect a specific capture
  gemini-session inspect --all --sample 120    # Every exchange, with body previews`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := pipelineConfig()
		if err != nil {
			return err
		}

		path := archivePath
		if len(args) > 0 {
			path = args[0]
		}
		if path == "" {
			path, err = internal.DetectArchive()
			if err != nil {
				return err
			}
		}

		archive, err := internal.LoadArchive(path)
		if err != nil {
			return err
		}

		fmt.Printf("📋 Capture: %s\n", archive.Path)
		fmt.Printf("📊 %d exchange(s)\n\n", len(archive.Exchanges))

		entries := internal.NewPipeline(cfg).Triage(archive)
		displayTriage(archive, entries, cfg)
		return nil
	},
}

func displayTriage(archive *internal.Archive, entries []internal.TriageEntry, cfg internal.Config) {
	contributing := 0
	for _, e := range entries {
		if e.Records > 0 {
			contributing++
		}
	}

	w := tabwriter.NewWriter(lipgloss.DefaultRenderer().Output(), 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, titleStyle.Render("#")+"\t"+titleStyle.Render("URL")+"\t"+titleStyle.Render("Type")+"\t"+titleStyle.Render("Enc")+"\t"+titleStyle.Render("Bytes")+"\t"+titleStyle.Render("Values")+"\t"+titleStyle.Render("Records")+"\t")

	shown := 0
	for i, e := range entries {
		if e.Records == 0 && e.Values == 0 && !inspectAll {
			continue
		}
		shown++
		enc := e.Encoding
		if enc == "" {
			enc = "—"
		}
		records := fmt.Sprintf("%d", e.Records)
		if e.Records > 0 {
			records = countStyle.Render(records)
		}
		_, _ = fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d\t%d\t%s\t\n",
			i+1, truncate(e.URL, 52), truncate(e.MimeType, 24), enc, e.BodyBytes, e.Values, records)
	}
	_ = w.Flush()

	if shown == 0 {
		fmt.Println(warningStyle.Render("⚠️  No exchange parsed into structured values (use --all to list everything)"))
	}
	fmt.Println()
	fmt.Printf("%d of %d exchange(s) contribute records\n", contributing, len(entries))
	if !inspectAll && shown < len(entries) {
		fmt.Println(idStyle.Render(fmt.Sprintf("(%d silent exchange(s) hidden, use --all to show them)", len(entries)-shown)))
	}

	if inspectSample > 0 {
		showBodyPreviews(archive, entries, cfg)
	}
}

// showBodyPreviews prints the decoded head of each contributing body, which
// is usually enough to eyeball the guard prefix and envelope tag.
func showBodyPreviews(archive *internal.Archive, entries []internal.TriageEntry, cfg internal.Config) {
	normalizer := internal.NewNormalizer(cfg.GuardPrefix)
	fmt.Println()
	for i, e := range entries {
		if e.Records == 0 {
			continue
		}
		body, err := normalizer.DecodeBody(archive.Exchanges[i])
		if err != nil {
			continue
		}
		preview := body
		if len(preview) > inspectSample {
			preview = preview[:inspectSample] + "..."
		}
		fmt.Printf("━━ #%d %s\n", i+1, truncate(e.URL, 64))
		fmt.Printf("%s\n\n", strings.ReplaceAll(preview, "\n", "\\n"))
	}
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().BoolVar(&inspectAll, "all", false, "Show exchanges that yield nothing")
	inspectCmd.Flags().IntVar(&inspectSample, "sample", 0, "Preview this many bytes of each contributing body")
}
