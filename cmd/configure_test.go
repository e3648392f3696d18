package cmd

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/term"

	"github.com/aikawa-h/instapipe/utils/config"
)

// TestConfigureEnvPathOverride ensures a configuration written through the
// configure flow's env path resolution survives a reload with every section
// intact.
func TestConfigureEnvPathOverride(t *testing.T) {
	testEnvPath := filepath.Join(t.TempDir(), ".instapipe.env")
	t.Setenv("INSTAPIPE_ENV", testEnvPath)

	if got := config.GetEnvPath(); got != testEnvPath {
		t.Fatalf("GetEnvPath() = %q, want the INSTAPIPE_ENV override", got)
	}

	testConfig := &config.EnvConfig{
		Providers: map[string]*config.Provider{
			"openai": {
				APIKey: "test-key",
				Models: []config.Model{
					{Name: "gpt-4.1-mini", Type: "external"},
				},
			},
			"google": {
				APIKey: "test-key",
				Models: []config.Model{
					{Name: "gemini-2.0-flash", Type: "external"},
				},
			},
		},
		Search:    config.SearchConfig{APIKey: "cs-key", EngineID: "engine-1"},
		Storage:   config.StorageConfig{Bucket: "carousel-staging"},
		Instagram: config.InstagramConfig{UserID: "17841400000000000", AccessToken: "EAAG-token"},
	}

	if err := config.SaveEnvConfig(config.GetEnvPath(), testConfig); err != nil {
		t.Fatalf("Failed to save test config: %v", err)
	}

	loaded, err := config.LoadEnvConfig(config.GetEnvPath())
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	for _, provider := range []string{"openai", "google"} {
		cfg, err := loaded.GetProviderConfig(provider)
		if err != nil {
			t.Errorf("Provider %s not found after reload: %v", provider, err)
			continue
		}
		if cfg.APIKey != "test-key" {
			t.Errorf("Provider %s API key = %q, want %q", provider, cfg.APIKey, "test-key")
		}
		if len(cfg.Models) != 1 {
			t.Errorf("Provider %s has %d models, want 1", provider, len(cfg.Models))
		}
	}

	if err := loaded.ValidateSearch(); err != nil {
		t.Errorf("ValidateSearch() after reload: %v", err)
	}
	if err := loaded.ValidatePublish(); err != nil {
		t.Errorf("ValidatePublish() after reload: %v", err)
	}
}

// TestReadSecretFallback covers the non-terminal path used when stdin is a
// pipe, as it is under go test.
func TestReadSecretFallback(t *testing.T) {
	if term.IsTerminal(int(os.Stdin.Fd())) {
		t.Skip("stdin is a terminal; fallback path not reachable")
	}

	reader := bufio.NewReader(strings.NewReader("  sk-secret-key  \n"))
	if got := readSecret(reader, ""); got != "sk-secret-key" {
		t.Errorf("readSecret() = %q, want trimmed %q", got, "sk-secret-key")
	}
}

func TestReadLineTrims(t *testing.T) {
	reader := bufio.NewReader(strings.NewReader("  engine-1  \n"))
	if got := readLine(reader, ""); got != "engine-1" {
		t.Errorf("readLine() = %q, want %q", got, "engine-1")
	}
}
