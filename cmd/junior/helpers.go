package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/vinayakankugoyal/junior/internal/api"
	"github.com/vinayakankugoyal/junior/internal/config"
)

// exitError is an error that signals a specific exit code
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit code %d", e.code)
}

// loadConfig loads the global config, falling back to defaults when the
// file is unreadable.
func loadConfig() *config.Config {
	cfg, err := config.LoadGlobal()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: load config: %v\n", err)
		return config.DefaultConfig()
	}
	return cfg
}

// newClient builds an API client for the configured server, honoring
// the --server flag and JUNIOR_SERVER env var.
func newClient(cfg *config.Config) *api.HTTPClient {
	addr := config.ResolveServerAddr(serverAddr, cfg)
	if !strings.HasPrefix(addr, "http://") && !strings.HasPrefix(addr, "https://") {
		addr = "http://" + addr
	}
	return api.NewHTTPClient(addr)
}

// taskText returns the task description from args or piped stdin.
func taskText(args []string) (string, error) {
	var text string
	if len(args) > 0 {
		text = strings.Join(args, " ")
	} else {
		stat, err := os.Stdin.Stat()
		if err != nil {
			return "", fmt.Errorf("unable to read stdin: %w", err)
		}
		if (stat.Mode() & os.ModeCharDevice) == 0 {
			data, err := io.ReadAll(os.Stdin)
			if err != nil {
				return "", fmt.Errorf("reading stdin: %w", err)
			}
			text = string(data)
		} else {
			return "", fmt.Errorf("no task provided - pass as argument or pipe via stdin")
		}
	}

	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("empty task")
	}
	return strings.TrimSpace(text), nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// taskElapsed formats a task's wall-clock time: final duration for
// finished tasks, a running counter otherwise.
func taskElapsed(t api.Task) string {
	if t.StartTime.IsZero() {
		return ""
	}
	if t.EndTime != nil && !t.EndTime.IsZero() {
		return t.EndTime.Sub(t.StartTime.Time).Round(time.Second).String()
	}
	return time.Since(t.StartTime.Time).Round(time.Second).String() + "..."
}

func truncate(s string, max int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
