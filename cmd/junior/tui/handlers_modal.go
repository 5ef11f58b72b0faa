package tui

import (
	"strings"
	"unicode"

	tea "github.com/charmbracelet/bubbletea"
)

// handleSubmitKey handles key input in the submit form. The form needs
// both a task description and a repository before it will submit.
func (m model) handleSubmitKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.submitPending {
		return m, nil // wait for the in-flight submit to settle
	}
	repos := m.session.Repos()

	switch msg.String() {
	case "esc":
		m.currentView = viewList
		m.submitErr = ""
		return m, nil
	case "enter":
		text := strings.TrimSpace(m.submitText)
		if text == "" {
			m.submitErr = "task description is required"
			return m, nil
		}
		if len(repos) == 0 {
			m.submitErr = "no repositories available (sign in with junior login)"
			return m, nil
		}
		repo := repos[m.submitRepoIdx%len(repos)].FullName
		m.submitPending = true
		m.submitErr = ""
		return m, m.submitTask(text, repo)
	case "up", "ctrl+p":
		if m.submitRepoIdx > 0 {
			m.submitRepoIdx--
		}
		return m, nil
	case "down", "ctrl+n", "tab":
		if m.submitRepoIdx < len(repos)-1 {
			m.submitRepoIdx++
		} else {
			m.submitRepoIdx = 0
		}
		return m, nil
	case "backspace":
		if len(m.submitText) > 0 {
			runes := []rune(m.submitText)
			m.submitText = string(runes[:len(runes)-1])
		}
		return m, nil
	default:
		if msg.String() == "shift+enter" || msg.String() == "ctrl+j" {
			m.submitText += "\n"
		} else if len(msg.Runes) > 0 {
			for _, r := range msg.Runes {
				if unicode.IsPrint(r) || r == '\n' || r == '\t' {
					m.submitText += string(r)
				}
			}
		}
		return m, nil
	}
}

func (m model) handleConfirmDeleteKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.deletePending {
		return m, nil // wait for the in-flight delete to settle
	}

	switch msg.String() {
	case "y", "enter":
		m.deletePending = true
		m.deleteErr = ""
		return m, m.deleteTask(m.deleteTaskID)
	case "n", "esc", "q":
		m.deleteTaskID = ""
		m.deleteErr = ""
		if m.current != nil {
			m.currentView = viewDetail
		} else {
			m.currentView = viewList
		}
		return m, nil
	}
	return m, nil
}

// handlePRKey handles key input in the pull request modal. Tab moves
// between the title and body fields.
func (m model) handlePRKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.prPending {
		return m, nil
	}

	field := &m.prTitle
	if m.prField == 1 {
		field = &m.prBody
	}

	switch msg.String() {
	case "esc":
		m.currentView = viewDetail
		m.prErr = ""
		return m, nil
	case "tab", "shift+tab":
		m.prField = 1 - m.prField
		return m, nil
	case "enter":
		if strings.TrimSpace(m.prTitle) == "" {
			m.prErr = "title is required"
			return m, nil
		}
		m.prPending = true
		m.prErr = ""
		return m, m.createPR(m.current.ID, m.session.Token(), m.prTitle, m.prBody)
	case "backspace":
		if len(*field) > 0 {
			runes := []rune(*field)
			*field = string(runes[:len(runes)-1])
		}
		return m, nil
	default:
		if msg.String() == "shift+enter" || msg.String() == "ctrl+j" {
			if m.prField == 1 {
				m.prBody += "\n"
			}
		} else if len(msg.Runes) > 0 {
			for _, r := range msg.Runes {
				if unicode.IsPrint(r) {
					*field += string(r)
				}
			}
		}
		return m, nil
	}
}

func (m model) handleFeedbackKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.feedbackPending {
		return m, nil
	}

	switch msg.String() {
	case "esc":
		m.currentView = viewDetail
		m.feedbackText = ""
		m.feedbackErr = ""
		return m, nil
	case "enter":
		text := strings.TrimSpace(m.feedbackText)
		if text == "" {
			return m, nil
		}
		m.feedbackPending = true
		m.feedbackErr = ""
		return m, m.sendFeedback(m.current.ID, text)
	case "backspace":
		if len(m.feedbackText) > 0 {
			runes := []rune(m.feedbackText)
			m.feedbackText = string(runes[:len(runes)-1])
		}
		return m, nil
	default:
		if msg.String() == "shift+enter" || msg.String() == "ctrl+j" {
			m.feedbackText += "\n"
		} else if len(msg.Runes) > 0 {
			for _, r := range msg.Runes {
				if unicode.IsPrint(r) || r == '\n' || r == '\t' {
					m.feedbackText += string(r)
				}
			}
		}
		return m, nil
	}
}
