package paths

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestConfigDir_UsesXDGConfigHomeWhenSet(t *testing.T) {
	td := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", td)

	got, err := ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir() error: %v", err)
	}
	if got != filepath.Join(td, "spyglass") {
		t.Fatalf("ConfigDir() = %q, want %q", got, filepath.Join(td, "spyglass"))
	}
}

func TestConfigDir_FallsBackToHome(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "")

	got, err := ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir() error: %v", err)
	}
	if !strings.HasSuffix(got, filepath.Join(".config", "spyglass")) {
		t.Fatalf("ConfigDir() = %q, want ~/.config/spyglass", got)
	}
}

func TestConfigFile(t *testing.T) {
	td := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", td)

	got, err := ConfigFile()
	if err != nil {
		t.Fatalf("ConfigFile() error: %v", err)
	}
	if !strings.HasSuffix(got, "/config.yaml") {
		t.Fatalf("ConfigFile() = %q, missing suffix", got)
	}
}

func TestActionLogFile(t *testing.T) {
	td := t.TempDir()
	t.Setenv("XDG_DATA_HOME", td)

	got, err := ActionLogFile()
	if err != nil {
		t.Fatalf("ActionLogFile() error: %v", err)
	}
	if got != filepath.Join(td, "spyglass", "actions.log") {
		t.Fatalf("ActionLogFile() = %q, want under %q", got, td)
	}
}
