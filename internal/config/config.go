package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds the dashboard configuration
type Config struct {
	ServerAddr  string `toml:"server_addr"`
	GitHubToken string `toml:"github_token" sensitive:"true"`

	// Poll cadence, in seconds
	ListPollSeconds   int `toml:"list_poll_seconds"`
	DetailPollSeconds int `toml:"detail_poll_seconds"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		ServerAddr:        "http://127.0.0.1:8080",
		ListPollSeconds:   2,
		DetailPollSeconds: 1,
	}
}

// DataDir returns the junior data directory.
// Uses JUNIOR_DATA_DIR env var if set, otherwise ~/.junior
func DataDir() string {
	if dir := os.Getenv("JUNIOR_DATA_DIR"); dir != "" {
		return dir
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".junior")
}

// GlobalConfigPath returns the path to the global config file
func GlobalConfigPath() string {
	return filepath.Join(DataDir(), "config.toml")
}

// LoadGlobal loads the global configuration from the default path
func LoadGlobal() (*Config, error) {
	return LoadGlobalFrom(GlobalConfigPath())
}

// LoadGlobalFrom loads the global configuration from a specific path
func LoadGlobalFrom(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SaveGlobal saves the global configuration
func SaveGlobal(cfg *Config) error {
	path := GlobalConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}

// ResolveServerAddr determines the server address based on priority:
// 1. Explicit flag value (if non-empty)
// 2. JUNIOR_SERVER env var
// 3. Config file
func ResolveServerAddr(explicit string, cfg *Config) string {
	if explicit != "" {
		return explicit
	}
	if addr := os.Getenv("JUNIOR_SERVER"); addr != "" {
		return addr
	}
	if cfg != nil && cfg.ServerAddr != "" {
		return cfg.ServerAddr
	}
	return DefaultConfig().ServerAddr
}

// ResolveGitHubToken determines the GitHub token based on priority:
// 1. GITHUB_TOKEN env var
// 2. Config file
func ResolveGitHubToken(cfg *Config) string {
	if tok := os.Getenv("GITHUB_TOKEN"); tok != "" {
		return tok
	}
	if cfg != nil {
		return cfg.GitHubToken
	}
	return ""
}
