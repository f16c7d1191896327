package cmd_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	cmd "github.com/rohmanhakim/html2md/internal/cli"
	"github.com/rohmanhakim/html2md/internal/config"
)

// TestInitConfigNoFlags tests that InitConfig returns a Config with default values
func TestInitConfigNoFlags(t *testing.T) {
	cmd.ResetFlags()

	cfg, err := cmd.InitConfigWithError()
	if err != nil {
		t.Errorf("Unexpected error: %v", err)
	}

	defaultCfg, err := config.WithDefault().Build()
	if err != nil {
		t.Errorf("should not have any error, got %v", err)
	}

	if cfg.CacheEnabled() != defaultCfg.CacheEnabled() {
		t.Errorf("Expected CacheEnabled %t, got %t", defaultCfg.CacheEnabled(), cfg.CacheEnabled())
	}
	if cfg.CacheDefaultTTL() != defaultCfg.CacheDefaultTTL() {
		t.Errorf("Expected CacheDefaultTTL %v, got %v", defaultCfg.CacheDefaultTTL(), cfg.CacheDefaultTTL())
	}
	if cfg.FetchTimeout() != defaultCfg.FetchTimeout() {
		t.Errorf("Expected FetchTimeout %v, got %v", defaultCfg.FetchTimeout(), cfg.FetchTimeout())
	}
	if cfg.MaxFetchSize() != defaultCfg.MaxFetchSize() {
		t.Errorf("Expected MaxFetchSize %d, got %d", defaultCfg.MaxFetchSize(), cfg.MaxFetchSize())
	}
	if cfg.MaxTokens() != defaultCfg.MaxTokens() {
		t.Errorf("Expected MaxTokens %d, got %d", defaultCfg.MaxTokens(), cfg.MaxTokens())
	}
}

// TestInitConfigWithFlags tests that flag values override the defaults
func TestInitConfigWithFlags(t *testing.T) {
	cmd.ResetFlags()

	cmd.SetCacheEnabledForTest(true)
	cmd.SetCacheTTLForTest(2 * time.Hour)
	cmd.SetTimeoutForTest(45 * time.Second)
	cmd.SetMaxSizeForTest(20 * 1024 * 1024)
	cmd.SetUserAgentForTest("cli-agent")
	cmd.SetSummaryDirForTest("/tmp/html2md-summaries")
	cmd.SetMaxAttemptsForTest(5)
	cmd.SetRandomSeedForTest(42)
	defer cmd.ResetFlags()

	cfg, err := cmd.InitConfigWithError()
	if err != nil {
		t.Errorf("Unexpected error: %v", err)
	}

	if !cfg.CacheEnabled() {
		t.Error("Expected CacheEnabled true")
	}
	if cfg.CacheDefaultTTL() != 2*time.Hour {
		t.Errorf("Expected CacheDefaultTTL 2h, got %v", cfg.CacheDefaultTTL())
	}
	if cfg.FetchTimeout() != 45*time.Second {
		t.Errorf("Expected FetchTimeout 45s, got %v", cfg.FetchTimeout())
	}
	if cfg.MaxFetchSize() != 20*1024*1024 {
		t.Errorf("Expected MaxFetchSize 20MiB, got %d", cfg.MaxFetchSize())
	}
	if cfg.UserAgent() != "cli-agent" {
		t.Errorf("Expected UserAgent cli-agent, got %s", cfg.UserAgent())
	}
	if cfg.SummaryDir() != "/tmp/html2md-summaries" {
		t.Errorf("Expected SummaryDir /tmp/html2md-summaries, got %s", cfg.SummaryDir())
	}
	if cfg.MaxAttempts() != 5 {
		t.Errorf("Expected MaxAttempts 5, got %d", cfg.MaxAttempts())
	}
	if cfg.RandomSeed() != 42 {
		t.Errorf("Expected RandomSeed 42, got %d", cfg.RandomSeed())
	}
}

// TestInitConfigWithConfigFile tests loading configuration from a JSON file
func TestInitConfigWithConfigFile(t *testing.T) {
	cmd.ResetFlags()
	defer cmd.ResetFlags()

	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	content := `{"cacheEnabled": true, "userAgent": "file-agent"}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	cmd.SetConfigFileForTest(path)

	cfg, err := cmd.InitConfigWithError()
	if err != nil {
		t.Errorf("Unexpected error: %v", err)
	}

	if !cfg.CacheEnabled() {
		t.Error("Expected CacheEnabled true from config file")
	}
	if cfg.UserAgent() != "file-agent" {
		t.Errorf("Expected UserAgent file-agent, got %s", cfg.UserAgent())
	}
}

// TestInitConfigWithMissingConfigFile tests the error path for a bad path
func TestInitConfigWithMissingConfigFile(t *testing.T) {
	cmd.ResetFlags()
	defer cmd.ResetFlags()

	cmd.SetConfigFileForTest(filepath.Join(t.TempDir(), "missing.json"))

	_, err := cmd.InitConfigWithError()
	if err == nil {
		t.Fatal("Expected an error for a missing config file")
	}
	if !errors.Is(err, config.ErrFileDoesNotExist) {
		t.Errorf("Expected ErrFileDoesNotExist, got %v", err)
	}
}
