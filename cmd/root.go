package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/iksnae/chat-transcripts/internal"
	"github.com/iksnae/chat-transcripts/internal/config"
	"github.com/iksnae/chat-transcripts/internal/export"
	"github.com/iksnae/chat-transcripts/internal/saver"
	"github.com/iksnae/chat-transcripts/internal/title"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	verbose    bool
	configPath string
	version    string = "dev"
	commit     string = "unknown"
	date       string = "unknown"
)

var (
	indexStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Bold(true)

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243")).
			Italic(true)
)

// rootCmd lists recent transcripts and saves the ones the user picks
var rootCmd = &cobra.Command{
	Use:   "chat-transcripts",
	Short: "Save Gemini CLI and Claude Code transcripts as HTML",
	Long: `Interactively select and save transcripts from Gemini CLI and Claude Code.

The latest transcripts from ~/.gemini/tmp and ~/.claude/projects are listed
newest first. Pick the ones to keep and each is rendered to a standalone file
named after an AI-generated title.

Quick Start:
  chat-transcripts                       # Pick from the 10 latest transcripts
  chat-transcripts -s claude -f md       # Only Claude Code, saved as Markdown
  chat-transcripts list                  # Show the latest transcripts
  chat-transcripts export --all          # Save the latest transcripts without prompting`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	RunE:    runInteractive,
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
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ~/.config/chat-transcripts/config.yaml)")
	rootCmd.PersistentFlags().String("gemini-dir", "", "Gemini CLI transcript directory (default ~/.gemini/tmp)")
	rootCmd.PersistentFlags().String("claude-dir", "", "Claude Code transcript directory (default ~/.claude/projects)")

	addSaveFlags(rootCmd.Flags())

	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)
}

// addSaveFlags registers the flags shared by every command that writes files
func addSaveFlags(flags *pflag.FlagSet) {
	def := config.Default()
	flags.StringP("output-dir", "o", def.OutputDir, "Directory to save the transcripts")
	flags.StringP("source", "s", def.Source, "Source of transcripts: gemini, claude, or all")
	flags.StringP("format", "f", def.Format, "Output format: html, md, json, yaml, jsonl")
	flags.IntP("limit", "n", def.Limit, "Number of recent transcripts to offer")
	flags.String("model", def.TitleModel, "Model used to generate titles")
	flags.Bool("no-ai-title", false, "Skip AI titles and name files <source>-<id>")
}

// app bundles what every command needs once flags are parsed
type app struct {
	cfg      *config.Config
	log      *internal.Logger
	scanner  *internal.Scanner
	progress *internal.Progress
}

// newApp loads configuration with flags taking precedence over the config
// file and environment
func newApp(cmd *cobra.Command, flags *pflag.FlagSet) (*app, error) {
	loader := config.NewLoader()
	if err := loader.BindFlags(flags); err != nil {
		return nil, err
	}
	cfg, err := loader.Load(configPath)
	if err != nil {
		return nil, err
	}

	log := internal.NewLogger(cmd.ErrOrStderr(), internal.LogLevelInfo)
	log.SetVerbose(verbose)
	if cfg.Path != "" {
		log.Debug("Using config file %s", cfg.Path)
	}

	paths, err := cfg.TranscriptPaths()
	if err != nil {
		return nil, fmt.Errorf("failed to get transcript paths: %w", err)
	}

	return &app{
		cfg:      cfg,
		log:      log,
		scanner:  internal.NewScanner(paths, log),
		progress: internal.NewProgress(cmd.ErrOrStderr(), log),
	}, nil
}

// titleGenerator returns nil when AI titles are disabled
func (a *app) titleGenerator() saver.TitleGenerator {
	if a.cfg.NoAITitle {
		return nil
	}
	return title.NewGenerator(a.cfg.TitleModel, title.NewRegistry(a.cfg.Providers()), a.log)
}

// latest scans all transcripts and returns the newest ones
func (a *app) latest(cmd *cobra.Command) []*internal.Record {
	var records []*internal.Record
	_ = a.progress.Run(cmd.Context(), "Scanning for transcripts...", func() error {
		records = a.scanner.All(a.cfg.SourceFilter())
		return nil
	})
	return internal.Latest(records, a.cfg.Limit)
}

// save writes records with the configured format and title model
func (a *app) save(cmd *cobra.Command, records []*internal.Record) error {
	out := cmd.OutOrStdout()

	exporter, err := export.NewExporter(a.cfg.Format)
	if err != nil {
		return err
	}

	s := saver.New(a.cfg.OutputDir, exporter, a.titleGenerator(), a.log)
	if err := s.Prepare(); err != nil {
		return err
	}

	fmt.Fprintf(out, "Saving %d transcript(s) to %s...\n", len(records), s.OutputDir())
	summary, err := s.SaveAll(cmd.Context(), records, a.progress)
	if err != nil {
		return err
	}

	for _, path := range summary.Paths {
		a.log.Info("Wrote %s", path)
	}
	if summary.Failed > 0 {
		internal.PrintWarning(out, fmt.Sprintf("Saved %d transcript(s), %d failed", summary.Saved, summary.Failed))
		return nil
	}
	internal.PrintSuccess(out, "Done!")
	return nil
}

func runInteractive(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd, cmd.Flags())
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	top := a.latest(cmd)
	if len(top) == 0 {
		internal.PrintWarning(out, "No transcripts found.")
		return nil
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, headerStyle.Render("Latest Transcripts:"))
	for i, rec := range top {
		fmt.Fprintf(out, "%s %s\n", indexStyle.Render(fmt.Sprintf("%d.", i+1)), internal.DisplayLabel(rec))
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, hintStyle.Render(fmt.Sprintf(
		"Enter the numbers of the transcripts to save (e.g. '1 3'), 'all' for these %d, or 'q' to quit.", len(top))))

	sel, err := promptSelection(cmd.InOrStdin(), out, len(top))
	if err != nil {
		return err
	}
	if sel.Quit {
		internal.PrintWarning(out, "Exiting.")
		return nil
	}

	return a.save(cmd, sel.Pick(top))
}

// promptSelection asks until the answer parses. End of input counts as quit.
func promptSelection(in io.Reader, out io.Writer, n int) (internal.Selection, error) {
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "Select: ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			if err := scanner.Err(); err != nil {
				return internal.Selection{}, fmt.Errorf("failed to read selection: %w", err)
			}
			return internal.Selection{Quit: true}, nil
		}

		sel, err := internal.ParseSelection(scanner.Text(), n)
		if err == nil {
			return sel, nil
		}

		var selErr *internal.SelectionError
		if !errors.As(err, &selErr) {
			return internal.Selection{}, err
		}
		internal.PrintError(out, capitalize(selErr.Reason)+". Try again.")
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
