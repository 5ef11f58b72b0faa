package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vinayakankugoyal/junior/internal/testenv"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.ServerAddr != "http://127.0.0.1:8080" {
		t.Errorf("server addr = %q", cfg.ServerAddr)
	}
	if cfg.ListPollSeconds != 2 || cfg.DetailPollSeconds != 1 {
		t.Errorf("poll cadence = %d/%d, want 2/1", cfg.ListPollSeconds, cfg.DetailPollSeconds)
	}
}

func TestDataDirEnvOverride(t *testing.T) {
	t.Setenv("JUNIOR_DATA_DIR", "/tmp/junior-test")
	if got := DataDir(); got != "/tmp/junior-test" {
		t.Errorf("DataDir() = %q", got)
	}
}

func TestLoadGlobalFromMissingFile(t *testing.T) {
	cfg, err := LoadGlobalFrom(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("LoadGlobalFrom: %v", err)
	}
	if cfg.ServerAddr != DefaultConfig().ServerAddr {
		t.Errorf("missing file should yield defaults, got %q", cfg.ServerAddr)
	}
}

func TestLoadGlobalFrom(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := "server_addr = \"http://10.0.0.5:9000\"\ngithub_token = \"ghp_secret1234\"\nlist_poll_seconds = 5\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadGlobalFrom(path)
	if err != nil {
		t.Fatalf("LoadGlobalFrom: %v", err)
	}
	if cfg.ServerAddr != "http://10.0.0.5:9000" {
		t.Errorf("server addr = %q", cfg.ServerAddr)
	}
	if cfg.GitHubToken != "ghp_secret1234" {
		t.Errorf("token = %q", cfg.GitHubToken)
	}
	if cfg.ListPollSeconds != 5 {
		t.Errorf("list poll = %d", cfg.ListPollSeconds)
	}
	// Keys absent from the file keep their defaults.
	if cfg.DetailPollSeconds != 1 {
		t.Errorf("detail poll = %d, want default 1", cfg.DetailPollSeconds)
	}
}

func TestSaveGlobalRoundTrip(t *testing.T) {
	testenv.SetDataDir(t)

	cfg := DefaultConfig()
	cfg.ServerAddr = "http://localhost:4000"
	cfg.GitHubToken = "tok"
	if err := SaveGlobal(cfg); err != nil {
		t.Fatalf("SaveGlobal: %v", err)
	}

	loaded, err := LoadGlobal()
	if err != nil {
		t.Fatalf("LoadGlobal: %v", err)
	}
	if loaded.ServerAddr != "http://localhost:4000" || loaded.GitHubToken != "tok" {
		t.Errorf("round trip lost values: %+v", loaded)
	}
}

func TestResolveServerAddr(t *testing.T) {
	cfg := &Config{ServerAddr: "http://from-config:1"}

	if got := ResolveServerAddr("http://explicit:2", cfg); got != "http://explicit:2" {
		t.Errorf("explicit flag should win, got %q", got)
	}

	t.Setenv("JUNIOR_SERVER", "http://from-env:3")
	if got := ResolveServerAddr("", cfg); got != "http://from-env:3" {
		t.Errorf("env should beat config, got %q", got)
	}

	t.Setenv("JUNIOR_SERVER", "")
	if got := ResolveServerAddr("", cfg); got != "http://from-config:1" {
		t.Errorf("config should be used, got %q", got)
	}

	if got := ResolveServerAddr("", nil); got != DefaultConfig().ServerAddr {
		t.Errorf("nil config should fall back to default, got %q", got)
	}
}

func TestResolveGitHubToken(t *testing.T) {
	cfg := &Config{GitHubToken: "from-config"}

	t.Setenv("GITHUB_TOKEN", "from-env")
	if got := ResolveGitHubToken(cfg); got != "from-env" {
		t.Errorf("env should win, got %q", got)
	}

	t.Setenv("GITHUB_TOKEN", "")
	if got := ResolveGitHubToken(cfg); got != "from-config" {
		t.Errorf("config should be used, got %q", got)
	}
}
