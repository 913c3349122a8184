package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/iksnae/chat-transcripts/testutil"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// runCommand executes rootCmd with args and stdin, returning stdout and stderr.
// Flag state left over from earlier runs is reset first.
func runCommand(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	return runCommandWithEnv(t, nil, stdin, args...)
}

// runCommandWithEnv is runCommand with extra environment variables set
// after the environment has been isolated
func runCommandWithEnv(t *testing.T, env map[string]string, stdin string, args ...string) (string, string, error) {
	t.Helper()
	isolateEnv(t)
	for k, v := range env {
		t.Setenv(k, v)
	}
	resetFlags(rootCmd)

	var stdout, stderr bytes.Buffer
	rootCmd.SetArgs(args)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	t.Cleanup(func() {
		rootCmd.SetIn(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	})

	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

// mockArgs points the scanner at a fixture tree
func mockArgs(dirs testutil.MockDirs, args ...string) []string {
	return append(args, "--gemini-dir", dirs.GeminiDir, "--claude-dir", dirs.ClaudeDir)
}

// isolateEnv keeps the user's config file and API keys out of tests
func isolateEnv(t *testing.T) {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", home+"/.config")
	for _, name := range []string{
		"GEMINI_API_KEY", "GOOGLE_API_KEY", "ANTHROPIC_API_KEY",
		"OPENAI_API_KEY", "OPENAI_BASE_URL", "OLLAMA_HOST",
	} {
		t.Setenv(name, "")
	}
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

