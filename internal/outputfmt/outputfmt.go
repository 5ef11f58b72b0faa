// Package outputfmt parses and renders agent output. The server stores
// a task's output as a JSON array of typed messages; this package
// decodes that stream and renders text messages as terminal markdown.
package outputfmt

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	gansi "github.com/charmbracelet/glamour/ansi"
	"github.com/charmbracelet/glamour/styles"
	"github.com/muesli/termenv"
)

// Message is one entry in an agent's output stream.
type Message struct {
	Type    string `json:"type"`
	Content string `json:"content"`
}

// ParseMessages decodes a task's raw output into its message stream.
// Returns ok=false when the output is not the structured format, in
// which case callers should display the raw text.
func ParseMessages(output string) ([]Message, bool) {
	trimmed := strings.TrimSpace(output)
	if !strings.HasPrefix(trimmed, "[") {
		return nil, false
	}
	var msgs []Message
	if err := json.Unmarshal([]byte(trimmed), &msgs); err != nil {
		return nil, false
	}
	return msgs, true
}

// Text concatenates the textual content of a message stream, skipping
// tool-use and other non-text entries.
func Text(msgs []Message) string {
	var b strings.Builder
	for _, m := range msgs {
		if m.Type != "" && m.Type != "text" && m.Type != "assistant" {
			continue
		}
		if m.Content == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(m.Content)
	}
	return b.String()
}

// GlamourStyle returns a glamour style config with zero margins.
// Detects dark/light background once.
func GlamourStyle() gansi.StyleConfig {
	style := styles.LightStyleConfig
	if termenv.HasDarkBackground() {
		style = styles.DarkStyleConfig
	}
	zeroMargin := uint(0)
	style.Document.Margin = &zeroMargin
	style.CodeBlock.Margin = &zeroMargin
	style.Code.Prefix = ""
	style.Code.Suffix = ""
	return style
}

// Render renders a task's output for the terminal. Structured output
// has its text messages extracted and rendered as markdown; anything
// else is returned as-is. Falls back to plain text if markdown
// rendering fails.
func Render(output string, width int) string {
	return RenderWithStyle(output, width, GlamourStyle())
}

// RenderWithStyle is Render with a caller-provided glamour style,
// for callers that detect the style once and reuse it.
func RenderWithStyle(output string, width int, style gansi.StyleConfig) string {
	text := output
	if msgs, ok := ParseMessages(output); ok {
		text = Text(msgs)
	}
	if strings.TrimSpace(text) == "" {
		return ""
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStyles(style),
		glamour.WithWordWrap(width),
		glamour.WithPreservedNewLines(),
	)
	if err != nil {
		return text
	}
	out, err := r.Render(text)
	if err != nil {
		return text
	}
	return strings.TrimRight(out, "\n")
}

// Summary returns the first line of a task's output text, truncated to
// max runes, for list displays.
func Summary(output string, max int) string {
	text := output
	if msgs, ok := ParseMessages(output); ok {
		text = Text(msgs)
	}
	line := strings.TrimSpace(text)
	if i := strings.IndexByte(line, '\n'); i >= 0 {
		line = line[:i]
	}
	runes := []rune(line)
	if len(runes) > max {
		return fmt.Sprintf("%s…", string(runes[:max-1]))
	}
	return line
}
