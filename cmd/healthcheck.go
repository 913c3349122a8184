package cmd

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/iksnae/chat-transcripts/internal"
	"github.com/iksnae/chat-transcripts/internal/config"
	"github.com/iksnae/chat-transcripts/internal/llm"
	"github.com/iksnae/chat-transcripts/internal/title"
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

// healthcheckCmd represents the healthcheck command
var healthcheckCmd = &cobra.Command{
	Use:   "healthcheck",
	Short: "Check that transcripts and the title model are reachable",
	Long: `Check the health of chat-transcripts by verifying:
  • Transcript directory detection
  • Gemini CLI and Claude Code session files
  • Title model routing and provider credentials

Use --verbose to print the resolved paths.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, sectionStyle.Render("🔍 Chat Transcripts Health Check"))
		fmt.Fprintln(out)

		// Step 1: Load config and resolve paths
		fmt.Fprintln(out, infoStyle.Render("Step 1: Resolving transcript directories..."))
		a, err := newApp(cmd, cmd.Flags())
		if err != nil {
			fmt.Fprintln(out, errorStyle.Render("❌ Failed to load configuration:"), err)
			return err
		}
		paths := a.scanner.Paths()
		fmt.Fprintln(out, successStyle.Render("✅ Transcript directories resolved"))
		if verbose {
			if a.cfg.Path != "" {
				fmt.Fprintf(out, "   Config: %s\n", a.cfg.Path)
			}
			fmt.Fprintf(out, "   Gemini: %s\n", paths.GeminiDir)
			fmt.Fprintf(out, "   Claude: %s\n", paths.ClaudeDir)
		}
		fmt.Fprintln(out)

		// Steps 2-3: one per source
		counts := a.scanner.Count(internal.FilterAll)
		available := 0
		total := 0
		for i, src := range internal.Sources {
			fmt.Fprintln(out, infoStyle.Render(fmt.Sprintf("Step %d: Checking %s transcripts...", i+2, src.Label())))
			if !paths.Exists(src) {
				fmt.Fprintln(out, warningStyle.Render(fmt.Sprintf("⚠️  %s directory not found", src.Label())))
				if verbose {
					fmt.Fprintf(out, "   Expected: %s\n", paths.Dir(src))
				}
				fmt.Fprintln(out)
				continue
			}
			available++
			n := counts[src]
			total += n
			if n > 0 {
				fmt.Fprintln(out, successStyle.Render(fmt.Sprintf("✅ Found %d %s session file(s)", n, src.Label())))
			} else {
				fmt.Fprintln(out, warningStyle.Render(fmt.Sprintf("⚠️  %s directory exists but holds no session files", src.Label())))
			}
			if verbose {
				fmt.Fprintf(out, "   Pattern: %s\n", paths.Pattern(src))
			}
			fmt.Fprintln(out)
		}

		// Step 4: Title model
		fmt.Fprintln(out, infoStyle.Render(fmt.Sprintf("Step %d: Checking title model...", len(internal.Sources)+2)))
		modelOK := checkTitleModel(cmd, a.cfg.NoAITitle, a.cfg.TitleModel, title.NewRegistry(a.cfg.Providers()))
		fmt.Fprintln(out)

		// Summary
		fmt.Fprintln(out, sectionStyle.Render("📊 Summary"))
		fmt.Fprintln(out)

		switch {
		case available == 0:
			fmt.Fprintln(out, errorStyle.Render("❌ Health check failed"))
			fmt.Fprintln(out, "   • No transcript directory is available")
			return errors.New("health check failed: no transcript directory available")
		case total == 0:
			fmt.Fprintln(out, warningStyle.Render("⚠️  Transcript directories available but no sessions found"))
		default:
			fmt.Fprintln(out, successStyle.Render("✅ Health check passed!"))
			fmt.Fprintln(out, successStyle.Render(fmt.Sprintf("   • Sessions: %d found", total)))
		}
		if !modelOK {
			fmt.Fprintln(out, "   • Files will be named <source>-<session-id> until the title model is configured")
		}
		return nil
	},
}

// checkTitleModel reports whether titles can be generated. It does not
// contact the provider.
func checkTitleModel(cmd *cobra.Command, disabled bool, modelID string, registry *title.Registry) bool {
	out := cmd.OutOrStdout()
	if disabled {
		fmt.Fprintln(out, warningStyle.Render("⚠️  AI titles disabled"))
		return false
	}

	provider, err := registry.Check(modelID)
	switch {
	case err == nil:
		fmt.Fprintln(out, successStyle.Render(fmt.Sprintf("✅ Model %s routes to %s", modelID, provider)))
		return true
	case errors.Is(err, llm.ErrMissingKey):
		fmt.Fprintln(out, warningStyle.Render(fmt.Sprintf("⚠️  No API key configured for %s", provider)))
	case errors.Is(err, llm.ErrUnknownModel):
		fmt.Fprintln(out, warningStyle.Render(fmt.Sprintf("⚠️  Model '%s' is not available", modelID)))
	default:
		fmt.Fprintln(out, warningStyle.Render("⚠️  Title model check failed:"), err)
	}
	return false
}

func init() {
	rootCmd.AddCommand(healthcheckCmd)
	healthcheckCmd.Flags().String("model", config.Default().TitleModel, "Model used to generate titles")
	healthcheckCmd.Flags().Bool("no-ai-title", false, "Skip the title model check")
}
