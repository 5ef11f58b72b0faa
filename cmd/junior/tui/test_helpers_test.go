package tui

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/vinayakankugoyal/junior/internal/api"
	"github.com/vinayakankugoyal/junior/internal/github"
)

// mockClient implements api.Client with pluggable function fields so each
// test only wires the calls it expects.
type mockClient struct {
	submitFn       func(task, repository string) (string, error)
	statusFn       func(taskID string) (*api.Task, error)
	listFn         func(filter api.ListFilter) ([]api.Task, error)
	contentFn      func(taskID string) (*api.TaskContent, error)
	deleteFn       func(taskID string) error
	createPRFn     func(taskID, token, title, body string) (*api.PullRequest, error)
	sendFeedbackFn func(taskID, feedback string) (*api.FeedbackResponse, error)

	contentCalls int
	listCalls    int
}

func (c *mockClient) Submit(task, repository string) (string, error) {
	if c.submitFn != nil {
		return c.submitFn(task, repository)
	}
	return "task-1", nil
}

func (c *mockClient) Status(taskID string) (*api.Task, error) {
	if c.statusFn != nil {
		return c.statusFn(taskID)
	}
	return &api.Task{ID: taskID, Status: api.StatusRunning}, nil
}

func (c *mockClient) List(filter api.ListFilter) ([]api.Task, error) {
	c.listCalls++
	if c.listFn != nil {
		return c.listFn(filter)
	}
	return nil, nil
}

func (c *mockClient) Content(taskID string) (*api.TaskContent, error) {
	c.contentCalls++
	if c.contentFn != nil {
		return c.contentFn(taskID)
	}
	return &api.TaskContent{TaskID: taskID}, nil
}

func (c *mockClient) Delete(taskID string) error {
	if c.deleteFn != nil {
		return c.deleteFn(taskID)
	}
	return nil
}

func (c *mockClient) CreatePR(taskID, token, title, body string) (*api.PullRequest, error) {
	if c.createPRFn != nil {
		return c.createPRFn(taskID, token, title, body)
	}
	return &api.PullRequest{Success: true}, nil
}

func (c *mockClient) SendFeedback(taskID, feedback string) (*api.FeedbackResponse, error) {
	if c.sendFeedbackFn != nil {
		return c.sendFeedbackFn(taskID, feedback)
	}
	return &api.FeedbackResponse{TaskID: taskID}, nil
}

func (c *mockClient) WaitForTask(taskID string) (*api.Task, error) {
	return c.Status(taskID)
}

// mockClipboard implements ClipboardWriter for testing
type mockClipboard struct {
	lastText string
	err      error
}

func (m *mockClipboard) WriteText(text string) error {
	if m.err != nil {
		return m.err
	}
	m.lastText = text
	return nil
}

type testModelOption func(*model)

func withCurrentView(v viewKind) testModelOption {
	return func(m *model) { m.currentView = v }
}

func withTasks(tasks ...api.Task) testModelOption {
	return func(m *model) { m.tasks = tasks }
}

func withSelection(idx int, taskID string) testModelOption {
	return func(m *model) {
		m.selectedIdx = idx
		m.selectedID = taskID
	}
}

func withCurrent(task *api.Task) testModelOption {
	return func(m *model) { m.current = task }
}

func withContent(content *api.TaskContent) testModelOption {
	return func(m *model) { m.content = content }
}

func withGitHubToken(token string) testModelOption {
	return func(m *model) { m.session.SetToken(token) }
}

// withRepos installs a session that has the given repositories loaded,
// backed by a stub GitHub server that lives for the test.
func withRepos(t *testing.T, fullNames ...string) testModelOption {
	t.Helper()
	repos := make([]github.Repository, len(fullNames))
	for i, name := range fullNames {
		repos[i] = github.Repository{FullName: name}
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/user" {
			fmt.Fprint(w, `{"login": "octocat"}`)
			return
		}
		json.NewEncoder(w).Encode(repos)
	}))
	t.Cleanup(srv.Close)

	session := github.NewSessionAt(srv.URL)
	session.SetToken("ghp_test")
	if err := session.Load(); err != nil {
		t.Fatalf("session load: %v", err)
	}
	return func(m *model) { m.session = session }
}

func withClipboard(c ClipboardWriter) testModelOption {
	return func(m *model) { m.clipboard = c }
}

func initTestModel(client api.Client, opts ...testModelOption) model {
	if client == nil {
		client = &mockClient{}
	}
	m := newModel(Config{ServerAddr: "http://localhost:8080", client: client})
	m.width = 80
	m.height = 24
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

func pressKey(m model, r rune) (model, tea.Cmd) {
	return updateModel(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
}

func pressSpecial(m model, k tea.KeyType) (model, tea.Cmd) {
	return updateModel(m, tea.KeyMsg{Type: k})
}

func updateModel(m model, msg tea.Msg) (model, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(model), cmd
}

// drainCmd runs a command and any batch it expands to, returning every
// message produced.
func drainCmd(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	var msgs []tea.Msg
	switch msg := cmd().(type) {
	case tea.BatchMsg:
		for _, sub := range msg {
			msgs = append(msgs, drainCmd(sub)...)
		}
	default:
		msgs = append(msgs, msg)
	}
	return msgs
}

func runningTask(id, text string) api.Task {
	return api.Task{
		ID:        id,
		Task:      text,
		Status:    api.StatusRunning,
		StartTime: api.Timestamp{Time: time.Now().Add(-time.Minute)},
	}
}

func completedTask(id, text string) api.Task {
	t := runningTask(id, text)
	t.Status = api.StatusCompleted
	t.EndTime = &api.Timestamp{Time: time.Now()}
	return t
}

func assertView(t *testing.T, m model, want viewKind) {
	t.Helper()
	if m.currentView != want {
		t.Errorf("currentView = %v, want %v", m.currentView, want)
	}
}
