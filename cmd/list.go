package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/iksnae/chat-transcripts/internal"
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

	projectStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("135")).
			Italic(true)

	sourceStyles = map[internal.Source]lipgloss.Style{
		internal.SourceGemini: lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Bold(true),
		internal.SourceClaude: lipgloss.NewStyle().Foreground(lipgloss.Color("208")).Bold(true),
	}
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the latest transcripts",
	Long: `List the most recent Gemini CLI and Claude Code transcripts, newest first.

The index in the first column matches the numbers offered by the interactive prompt.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd, cmd.Flags())
		if err != nil {
			return err
		}

		records := a.latest(cmd)
		displayRecords(cmd.OutOrStdout(), records, time.Now())
		return nil
	},
}

func displayRecords(out io.Writer, records []*internal.Record, now time.Time) {
	if len(records) == 0 {
		fmt.Fprintln(out, headerStyle.Render("📋 No transcripts found"))
		return
	}

	fmt.Fprintln(out, headerStyle.Render(fmt.Sprintf("📋 Latest %d transcript(s)", len(records))))
	fmt.Fprintln(out)

	w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)

	_, _ = fmt.Fprintln(w, strings.Join([]string{
		titleStyle.Render("#"),
		titleStyle.Render("Source"),
		titleStyle.Render("Date"),
		titleStyle.Render("Title"),
		titleStyle.Render("Messages"),
		titleStyle.Render("Project"),
		titleStyle.Render("ID"),
	}, "\t")+"\t")

	for i, rec := range records {
		name := internal.ExtractTitle(rec)
		if len([]rune(name)) > 50 {
			name = string([]rune(name)[:47]) + "..."
		}

		created := dateStyle.Render("—")
		if t, ok := internal.ParseTimestamp(rec.SortKey()); ok {
			created = dateStyle.Render(relativeDate(t, now))
		}

		project := dateStyle.Render("—")
		if rec.Project != "" {
			p := rec.Project
			if len(p) > 25 {
				p = "..." + p[len(p)-22:]
			}
			project = projectStyle.Render(p)
		}

		shortID := rec.ID
		if len(shortID) > 8 {
			shortID = shortID[:8]
		}

		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t\n",
			strconv.Itoa(i+1),
			sourceStyles[rec.Source].Render(rec.Source.String()),
			created,
			name,
			countStyle.Render(strconv.Itoa(len(rec.Messages))),
			project,
			idStyle.Render(shortID))
	}

	_ = w.Flush()
	fmt.Fprintln(out)
	fmt.Fprintln(out, idStyle.Render("💡 Tip: Use the ID (e.g., ")+
		lipgloss.NewStyle().Foreground(lipgloss.Color("62")).Render(records[0].ID)+
		idStyle.Render(") with `chat-transcripts show <id>` or `chat-transcripts export <id>`"))
}

// relativeDate formats t relative to now: today, this week, this year, or older
func relativeDate(t, now time.Time) string {
	diff := now.Sub(t)
	switch {
	case diff >= 0 && diff < 24*time.Hour && t.Day() == now.Day():
		return t.Format("Today 15:04")
	case diff >= 0 && diff < 7*24*time.Hour:
		return t.Format("Mon 15:04")
	case diff >= 0 && diff < 365*24*time.Hour:
		return t.Format("Jan 02 15:04")
	default:
		return t.Format("2006-01-02")
	}
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().StringP("source", "s", string(internal.FilterAll), "Source of transcripts: gemini, claude, or all")
	listCmd.Flags().IntP("limit", "n", internal.DefaultListLimit, "Number of transcripts to list")
}
