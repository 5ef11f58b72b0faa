package tui

import (
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/charmbracelet/lipgloss"
	"github.com/vinayakankugoyal/junior/internal/api"
)

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func truncate(s string, max int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
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

func statusStyleFor(status api.TaskStatus) lipgloss.Style {
	switch status {
	case api.StatusRunning:
		return runningStyle
	case api.StatusCompleted:
		return completedStyle
	case api.StatusFailed:
		return failedStyle
	}
	return statusStyle
}

// ansiEscapePattern matches ANSI escape sequences (colors, cursor movement, etc.)
// Handles CSI sequences (\x1b[...X) and OSC sequences terminated by BEL (\x07) or ST (\x1b\\)
var ansiEscapePattern = regexp.MustCompile(`\x1b\[[0-9;?]*[a-zA-Z]|\x1b\]([^\x07\x1b]|\x1b[^\\])*(\x07|\x1b\\)`)

// sanitizeForDisplay strips ANSI escape sequences and control characters
// from text to prevent terminal injection when displaying untrusted
// content (e.g., agent output).
func sanitizeForDisplay(s string) string {
	s = ansiEscapePattern.ReplaceAllString(s, "")
	var result strings.Builder
	result.Grow(len(s))
	for _, r := range s {
		if r == '\n' || r == '\t' || !unicode.IsControl(r) {
			result.WriteRune(r)
		}
	}
	return result.String()
}
