package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/iksnae/gemini-session/internal"
	"github.com/spf13/cobra"
)

var (
	limit int
	since string
)

var (
	// Styles for show command
	sessionHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("212")).
				Padding(0, 1).
				MarginBottom(1)

	sessionMetaStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("243")).
				MarginBottom(1)

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Bold(true).
			Padding(0, 1)

	responseStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("135")).
			Bold(true).
			Padding(0, 1)

	messageContentStyle = lipgloss.NewStyle().
				Padding(0, 2).
				MarginBottom(1)

	timestampStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("240")).
		Italic(true)
)

// showCmd represents the show command
var showCmd = &cobra.Command{
	Use:   "show <session-id>",
	Short: "Show messages for a recovered session",
	Long: `Display the prompts and responses of one recovered session.

The session ID may be abbreviated to any unique prefix, e.g.
"Session_20231114" when only one session started that day.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := runRecovery()
		if err != nil {
			return err
		}

		session, err := findSession(result.Sessions, args[0])
		if err != nil {
			return err
		}

		displaySessionHeader(session)

		messagesToShow := session.Messages
		if since != "" {
			sinceTime, err := time.Parse(time.RFC3339, since)
			if err != nil {
				return fmt.Errorf("invalid --since timestamp format (expected RFC3339): %w", err)
			}
			filtered := make([]internal.Message, 0, len(messagesToShow))
			for _, msg := range messagesToShow {
				if msg.Date == "" {
					continue
				}
				if msgTime, err := time.Parse(time.RFC3339Nano, msg.Date); err == nil {
					if !msgTime.Before(sinceTime) {
						filtered = append(filtered, msg)
					}
				}
			}
			messagesToShow = filtered
		}

		totalFiltered := len(messagesToShow)
		if limit > 0 && limit < len(messagesToShow) {
			messagesToShow = messagesToShow[:limit]
		}

		for i, msg := range messagesToShow {
			displayMessage(i+1, msg, totalFiltered)
		}

		if limit > 0 && limit < totalFiltered {
			remaining := totalFiltered - limit
			fmt.Println()
			fmt.Println(lipgloss.NewStyle().
				Foreground(lipgloss.Color("243")).
				Italic(true).
				Render(fmt.Sprintf("... (%d more message(s))", remaining)))
		}

		return nil
	},
}

// findSession resolves an exact session ID or a unique prefix of one.
func findSession(sessions []*internal.Session, id string) (*internal.Session, error) {
	var matches []*internal.Session
	for _, s := range sessions {
		if s.ID == id {
			return s, nil
		}
		if strings.HasPrefix(s.ID, id) {
			matches = append(matches, s)
		}
	}
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("session not found: %s (run `gemini-session list` to see IDs)", id)
	case 1:
		return matches[0], nil
	default:
		ids := make([]string, len(matches))
		for i, s := range matches {
			ids[i] = s.ID
		}
		return nil, fmt.Errorf("ambiguous session ID %s, matches: %s", id, strings.Join(ids, ", "))
	}
}

func displaySessionHeader(session *internal.Session) {
	if session == nil {
		return
	}
	header := sessionHeaderStyle.Render(fmt.Sprintf("💬 %s", session.ID))
	fmt.Println(header)

	var metaParts []string
	if !session.StartedAt.IsZero() {
		metaParts = append(metaParts, fmt.Sprintf("Started: %s", session.StartedAt.UTC().Format("2006-01-02 15:04 MST")))
	}
	metaParts = append(metaParts, fmt.Sprintf("Messages: %d", len(session.Messages)))
	if span := session.Span(); span > 0 {
		metaParts = append(metaParts, fmt.Sprintf("Span: %s", formatSpan(span)))
	}

	meta := sessionMetaStyle.Render(strings.Join(metaParts, " • "))
	fmt.Println(meta)
	fmt.Println()
}

func displayMessage(index int, msg internal.Message, total int) {
	header := promptStyle.Render("👤 Prompt") + " " + timestampStyle.Render(fmt.Sprintf("[%d/%d]", index, total))
	if msg.Date != "" {
		if t, err := time.Parse(time.RFC3339Nano, msg.Date); err == nil {
			header += " " + timestampStyle.Render(t.Local().Format("15:04:05"))
		} else {
			header += " " + timestampStyle.Render(msg.Date)
		}
	}
	fmt.Println(header)

	prompt := strings.TrimSpace(msg.Prompt)
	if prompt != "" {
		fmt.Println(messageContentStyle.Render(wrapText(prompt, 80)))
	} else {
		fmt.Println(messageContentStyle.Foreground(lipgloss.Color("240")).Render("(empty prompt)"))
	}

	fmt.Println(responseStyle.Render("🤖 Response"))
	if msg.Response != nil {
		fmt.Println(renderResponse(*msg.Response))
	} else {
		fmt.Println(messageContentStyle.Foreground(lipgloss.Color("240")).Render("(no response recovered)"))
	}

	fmt.Println()
}

// renderResponse pretty-prints a markdown response on a terminal and falls
// back to plain text anywhere else.
func renderResponse(response string) string {
	response = strings.TrimSpace(response)
	if !isTTY() {
		return messageContentStyle.Render(wrapText(response, 80))
	}
	out, err := glamour.Render(response, "dark")
	if err != nil {
		return messageContentStyle.Render(wrapText(response, 80))
	}
	return strings.TrimRight(out, "\n")
}

func isTTY() bool {
	stat, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) != 0
}

func wrapText(text string, width int) string {
	lines := strings.Split(text, "\n")
	var wrapped []string

	for _, line := range lines {
		if len(line) <= width {
			wrapped = append(wrapped, line)
			continue
		}

		words := strings.Fields(line)
		currentLine := ""
		for _, word := range words {
			if len(currentLine)+len(word)+1 > width {
				if currentLine != "" {
					wrapped = append(wrapped, currentLine)
					currentLine = word
				} else {
					wrapped = append(wrapped, word)
					currentLine = ""
				}
			} else {
				if currentLine == "" {
					currentLine = word
				} else {
					currentLine += " " + word
				}
			}
		}
		if currentLine != "" {
			wrapped = append(wrapped, currentLine)
		}
	}

	return strings.Join(wrapped, "\n")
}

func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.Flags().IntVarP(&limit, "limit", "n", 0, "Limit number of messages to show")
	showCmd.Flags().StringVar(&since, "since", "", "Show messages since timestamp (ISO8601)")
}
