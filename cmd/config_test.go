package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestConfigCommands(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	stdout, _, err := runCommand(t, "", "config", "path", "--config", path)
	if err != nil {
		t.Fatalf("config path error = %v", err)
	}
	if strings.TrimSpace(stdout) != path {
		t.Errorf("config path = %q, want %q", strings.TrimSpace(stdout), path)
	}

	if _, _, err := runCommand(t, "", "config", "init", "--config", path); err != nil {
		t.Fatalf("config init error = %v", err)
	}
	if info, err := os.Stat(path); err != nil {
		t.Fatalf("config file not written: %v", err)
	} else if info.Mode().Perm() != 0600 {
		t.Errorf("config file mode = %v, want 0600", info.Mode().Perm())
	}

	if _, _, err := runCommand(t, "", "config", "init", "--config", path); err == nil {
		t.Error("config init should refuse to overwrite without --force")
	}
	if _, _, err := runCommand(t, "", "config", "init", "--config", path, "--force"); err != nil {
		t.Errorf("config init --force error = %v", err)
	}
}

func TestConfigShow_MasksKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("format: md\nanthropic_api_key: sk-ant-1234567890abcd\n"), 0600); err != nil {
		t.Fatal(err)
	}

	stdout, _, err := runCommandWithEnv(t, map[string]string{"OPENAI_API_KEY": "sk-openai-secret-value"}, "",
		"config", "show", "--config", path)
	if err != nil {
		t.Fatalf("config show error = %v", err)
	}

	for _, want := range []string{"# " + path, "format: md", "anthropic_api_key: sk-a****abcd", "openai_api_key: sk-o****alue", "title_model: gemini-3-flash-preview"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("output should contain %q, got:\n%s", want, stdout)
		}
	}
	for _, secret := range []string{"sk-ant-1234567890abcd", "sk-openai-secret-value"} {
		if strings.Contains(stdout, secret) {
			t.Errorf("output leaks %q", secret)
		}
	}
}

func TestConfigShow_Defaults(t *testing.T) {
	stdout, _, err := runCommand(t, "", "config", "show")
	if err != nil {
		t.Fatalf("config show error = %v", err)
	}
	if !strings.Contains(stdout, "no config file") || !strings.Contains(stdout, "format: html") {
		t.Errorf("unexpected output:\n%s", stdout)
	}
}

func TestConfigShow_MissingExplicitFile(t *testing.T) {
	_, _, err := runCommand(t, "", "config", "show", "--config", filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Error("expected error for a missing --config file")
	}
}
