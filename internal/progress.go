package internal

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"time"

	"github.com/charmbracelet/lipgloss"
)

var (
	progressStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("62")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true)
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// ProgressStep is a single step in a multi-step process.
// An Optional step that fails is reported and the remaining steps still run.
type ProgressStep struct {
	Message  string
	Fn       func() error
	Optional bool
}

// Progress renders spinners and status lines on a writer, usually stderr.
// When the writer is not a terminal it degrades to plain info logging.
type Progress struct {
	out io.Writer
	log *Logger
	tty bool
}

// NewProgress creates a Progress writing to out
func NewProgress(out io.Writer, log *Logger) *Progress {
	return &Progress{out: out, log: log, tty: isTerminal(out)}
}

// Run executes fn while showing a spinner labelled with message.
// fn always runs to completion; it observes cancellation through its own context.
func (p *Progress) Run(ctx context.Context, message string, fn func() error) error {
	if !p.tty {
		p.log.Info("%s", message)
		return fn()
	}
	if gumAvailable() {
		return p.runWithGum(ctx, message, fn)
	}
	return p.runSimple(message, fn)
}

// RunSteps executes steps in order and returns how many optional steps
// failed. A failing required step stops the run.
func (p *Progress) RunSteps(ctx context.Context, steps []ProgressStep) (int, error) {
	failed := 0
	for i, step := range steps {
		if err := ctx.Err(); err != nil {
			return failed, err
		}
		msg := step.Message
		if p.tty {
			msg = fmt.Sprintf("[%d/%d] %s", i+1, len(steps), step.Message)
		}
		if err := p.Run(ctx, msg, step.Fn); err != nil {
			if ctx.Err() != nil || !step.Optional {
				return failed, fmt.Errorf("%s: %w", step.Message, err)
			}
			p.log.Warn("%s: %v", step.Message, err)
			failed++
		}
	}
	return failed, nil
}

func (p *Progress) runWithGum(ctx context.Context, message string, fn func() error) error {
	spinCtx, stop := context.WithCancel(ctx)
	defer stop()

	cmd := exec.CommandContext(spinCtx, "gum", "spin", "--spinner", "dot", "--title", message,
		"--", "sh", "-c", "while true; do sleep 0.1; done")
	cmd.Stderr = p.out
	cmd.Stdout = p.out

	spinnerDone := make(chan struct{})
	go func() {
		defer close(spinnerDone)
		_ = cmd.Run()
	}()

	err := fn()
	stop()
	<-spinnerDone
	return p.finish(message, err)
}

func (p *Progress) runSimple(message string, fn func() error) error {
	stopSpinner := make(chan struct{})
	spinnerDone := make(chan struct{})

	go func() {
		defer close(spinnerDone)
		ticker := time.NewTicker(100 * time.Millisecond)
		defer ticker.Stop()
		for i := 0; ; i++ {
			select {
			case <-stopSpinner:
				return
			case <-ticker.C:
				fmt.Fprintf(p.out, "\r%s %s", progressStyle.Render(spinnerFrames[i%len(spinnerFrames)]), message)
			}
		}
	}()

	err := fn()
	close(stopSpinner)
	<-spinnerDone
	return p.finish(message, err)
}

func (p *Progress) finish(message string, err error) error {
	if err != nil {
		fmt.Fprintf(p.out, "\r%s %s\n", errorStyle.Render("✗"), message)
		return err
	}
	fmt.Fprintf(p.out, "\r%s %s\n", successStyle.Render("✓"), message)
	return nil
}

func gumAvailable() bool {
	_, err := exec.LookPath("gum")
	return err == nil
}

// isTerminal checks if the writer is a terminal
func isTerminal(w io.Writer) bool {
	if f, ok := w.(*os.File); ok {
		stat, err := f.Stat()
		if err != nil {
			return false
		}
		return (stat.Mode() & os.ModeCharDevice) != 0
	}
	return false
}

// PrintSuccess prints a success message
func PrintSuccess(w io.Writer, message string) {
	if isTerminal(w) {
		fmt.Fprintf(w, "%s %s\n", successStyle.Render("✓"), message)
	} else {
		fmt.Fprintln(w, message)
	}
}

// PrintError prints an error message
func PrintError(w io.Writer, message string) {
	if isTerminal(w) {
		fmt.Fprintf(w, "%s %s\n", errorStyle.Render("✗"), message)
	} else {
		fmt.Fprintln(w, message)
	}
}

// PrintInfo prints an info message
func PrintInfo(w io.Writer, message string) {
	if isTerminal(w) {
		fmt.Fprintf(w, "%s %s\n", progressStyle.Render("ℹ"), message)
	} else {
		fmt.Fprintln(w, message)
	}
}

// PrintWarning prints a warning message
func PrintWarning(w io.Writer, message string) {
	if isTerminal(w) {
		fmt.Fprintf(w, "%s %s\n", warningStyle.Render("⚠"), message)
	} else {
		fmt.Fprintf(w, "WARNING: %s\n", message)
	}
}
