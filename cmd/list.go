package cmd

import (
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/iksnae/gemini-session/internal"
	"github.com/spf13/cobra"
)

var (
	// Styles
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62")).
			Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212"))

	idStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("240")).
		Italic(true)

	countStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	dateStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List recovered sessions",
	Long:  `Recover sessions from the capture and list them with message counts and time spans.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := runRecovery()
		if err != nil {
			return err
		}

		displaySessions(result)
		return nil
	},
}

func displaySessions(result *internal.Result) {
	sessions := result.Sessions
	if len(sessions) == 0 {
		fmt.Println(headerStyle.Render("📋 No sessions recovered"))
		return
	}

	header := headerStyle.Render(fmt.Sprintf("📋 Recovered %d session(s)", len(sessions)))
	fmt.Println(header)
	fmt.Println()

	// Use tabwriter for aligned columns with better spacing
	w := tabwriter.NewWriter(lipgloss.DefaultRenderer().Output(), 0, 0, 3, ' ', tabwriter.AlignRight)

	_, _ = fmt.Fprintln(w, titleStyle.Render("ID")+"\t"+titleStyle.Render("Messages")+"\t"+titleStyle.Render("Started")+"\t"+titleStyle.Render("Span")+"\t")
	_, _ = fmt.Fprintln(w, strings.Repeat("─", 80))

	for _, session := range sessions {
		id := idStyle.Render(session.ID)
		msgCount := countStyle.Render(strconv.Itoa(len(session.Messages)))
		started := dateStyle.Render(relativeDate(session.StartedAt))
		span := dateStyle.Render(formatSpan(session.Span()))

		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t\n", id, msgCount, started, span)
	}

	_ = w.Flush()
	fmt.Println()

	if len(result.Unclustered) > 0 {
		internal.PrintWarning(fmt.Sprintf("%d record(s) had no timestamp and are not listed (see audit)", len(result.Unclustered)))
	}
	fmt.Println(idStyle.Render("💡 Tip: Use ") +
		lipgloss.NewStyle().Foreground(lipgloss.Color("62")).Render(sessions[0].ID) +
		idStyle.Render(" with `gemini-session show <id>`"))
}

// relativeDate renders recent times compactly and older ones as plain dates
func relativeDate(t time.Time) string {
	if t.IsZero() {
		return "—"
	}
	t = t.Local()
	diff := time.Since(t)
	switch {
	case diff < 24*time.Hour:
		return t.Format("Today 15:04")
	case diff < 7*24*time.Hour:
		return t.Format("Mon 15:04")
	case diff < 365*24*time.Hour:
		return t.Format("Jan 02 15:04")
	default:
		return t.Format("2006-01-02")
	}
}

func formatSpan(d time.Duration) string {
	if d == 0 {
		return "—"
	}
	d = d.Round(time.Minute)
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	if h > 0 {
		return fmt.Sprintf("%dh%02dm", h, m)
	}
	return fmt.Sprintf("%dm", m)
}

func init() {
	rootCmd.AddCommand(listCmd)
}
