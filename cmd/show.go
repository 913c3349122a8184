package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/iksnae/chat-transcripts/internal"
	"github.com/spf13/cobra"
)

var (
	showLimit  int
	showSince  string
	showSource string
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

	userMessageStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("39")).
				Bold(true).
				Padding(0, 1)

	assistantMessageStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("135")).
				Bold(true).
				Padding(0, 1)

	messageContentStyle = lipgloss.NewStyle().
				Padding(0, 2).
				MarginBottom(1)

	toolStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	timestampStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)
)

// showCmd represents the show command
var showCmd = &cobra.Command{
	Use:   "show <session-id>",
	Short: "Show messages for a specific transcript",
	Long: `Display the messages of one transcript in the terminal.

The session ID may be abbreviated to any unique prefix.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		// show has its own --limit, so only the persistent flags feed the config
		a, err := newApp(cmd, cmd.InheritedFlags())
		if err != nil {
			return err
		}

		filter, err := internal.ParseSourceFilter(showSource)
		if err != nil {
			return err
		}

		rec, err := a.scanner.Find(filter, args[0])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		displayRecordHeader(out, rec)

		messages := rec.Messages
		if showSince != "" {
			sinceTime, ok := internal.ParseTimestamp(showSince)
			if !ok {
				return fmt.Errorf("invalid --since timestamp %q (expected ISO 8601)", showSince)
			}
			filtered := make([]internal.Message, 0, len(messages))
			for _, msg := range messages {
				if t, ok := internal.ParseTimestamp(msg.Timestamp); ok && !t.Before(sinceTime) {
					filtered = append(filtered, msg)
				}
			}
			messages = filtered
		}

		total := len(messages)
		start := 0
		if showLimit > 0 && showLimit < total {
			start = total - showLimit
			fmt.Fprintln(out, lipgloss.NewStyle().
				Foreground(lipgloss.Color("243")).
				Italic(true).
				Render(fmt.Sprintf("... (%d earlier message(s))", start)))
			fmt.Fprintln(out)
		}

		for i := start; i < total; i++ {
			displayMessage(out, i+1, messages[i], total)
		}

		return nil
	},
}

func displayRecordHeader(out io.Writer, rec *internal.Record) {
	fmt.Fprintln(out, sessionHeaderStyle.Render(fmt.Sprintf("💬 %s", internal.ExtractTitle(rec))))

	metaParts := []string{
		fmt.Sprintf("Source: %s", rec.Source.Label()),
		fmt.Sprintf("Session: %s", rec.ID),
		fmt.Sprintf("Started: %s", internal.FormatTimestamp(rec.StartTime())),
		fmt.Sprintf("Messages: %d", len(rec.Messages)),
	}
	if rec.Project != "" {
		metaParts = append(metaParts, fmt.Sprintf("Project: %s", rec.Project))
	}
	fmt.Fprintln(out, sessionMetaStyle.Render(strings.Join(metaParts, " • ")))
	fmt.Fprintln(out)
}

func displayMessage(out io.Writer, index int, msg internal.Message, total int) {
	var roleStyle lipgloss.Style
	var roleLabel string

	switch msg.Role {
	case "user":
		roleStyle = userMessageStyle
		roleLabel = "👤 User"
	case "assistant", "gemini", "model":
		roleStyle = assistantMessageStyle
		roleLabel = "🤖 " + capitalize(msg.Role)
	default:
		roleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
		roleLabel = fmt.Sprintf("🔧 %s", msg.Role)
	}

	header := roleStyle.Render(roleLabel) + " " + timestampStyle.Render(fmt.Sprintf("[%d/%d]", index, total))
	if msg.Timestamp != "" {
		if t, ok := internal.ParseTimestamp(msg.Timestamp); ok {
			header += " " + timestampStyle.Render(t.Format("15:04:05"))
		} else {
			header += " " + timestampStyle.Render(msg.Timestamp)
		}
	}
	fmt.Fprintln(out, header)

	var parts []string
	if text := strings.TrimSpace(messageText(msg)); text != "" {
		parts = append(parts, wrapText(text, 80))
	}
	for _, line := range toolLines(msg) {
		parts = append(parts, toolStyle.Render(line))
	}

	if len(parts) == 0 {
		fmt.Fprintln(out, messageContentStyle.Foreground(lipgloss.Color("240")).Render("(empty message)"))
	} else {
		fmt.Fprintln(out, messageContentStyle.Render(strings.Join(parts, "\n")))
	}
}

// messageText joins plain text and text blocks
func messageText(msg internal.Message) string {
	parts := []string{msg.Text}
	for _, b := range msg.Blocks {
		if b.Type == internal.BlockText {
			parts = append(parts, b.Text)
		}
	}
	return strings.TrimSpace(strings.Join(parts, "\n\n"))
}

// toolLines summarizes tool activity, one line per call or result
func toolLines(msg internal.Message) []string {
	var lines []string
	for _, b := range msg.Blocks {
		if b.Tool == nil {
			continue
		}
		switch b.Type {
		case internal.BlockToolUse:
			lines = append(lines, fmt.Sprintf("⚙ %s", b.Tool.Name))
		case internal.BlockToolResult:
			lines = append(lines, resultLine(*b.Tool))
		}
	}
	for _, call := range msg.ToolCalls {
		lines = append(lines, fmt.Sprintf("⚙ %s", call.Name))
		if len(call.Result) > 0 {
			lines = append(lines, resultLine(call))
		}
	}
	return lines
}

func resultLine(call internal.ToolCall) string {
	label := "↳ result"
	if call.IsError {
		label = "↳ error"
	}
	return fmt.Sprintf("%s (%d bytes)", label, len(call.Result))
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
	showCmd.Flags().IntVarP(&showLimit, "limit", "n", 0, "Show only the last N messages")
	showCmd.Flags().StringVar(&showSince, "since", "", "Show messages since timestamp (ISO 8601)")
	showCmd.Flags().StringVarP(&showSource, "source", "s", string(internal.FilterAll), "Source to search: gemini, claude, or all")
}
