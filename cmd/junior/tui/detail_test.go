package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/vinayakankugoyal/junior/internal/api"
)

func TestSilentPollUnchangedKeepsTaskReference(t *testing.T) {
	task := runningTask("abc123", "add README")
	m := initTestModel(nil, withCurrentView(viewDetail), withCurrent(&task))
	before := m.current

	// A fresh snapshot with identical tracked fields must not replace
	// the displayed task.
	snapshot := task
	snapshot.TempDir = "/tmp/other" // untracked field, still "unchanged"
	m, cmd := updateModel(m, taskMsg{task: &snapshot, taskID: "abc123", silent: true})

	if m.current != before {
		t.Error("unchanged snapshot replaced the displayed task")
	}
	if cmd != nil {
		t.Error("unchanged snapshot produced a command")
	}
}

func TestSilentPollErrorLeavesPanelUntouched(t *testing.T) {
	task := runningTask("abc123", "add README")
	m := initTestModel(nil, withCurrentView(viewDetail), withCurrent(&task))

	m, cmd := updateModel(m, taskMsg{taskID: "abc123", silent: true, err: errors.New("connect refused")})

	if m.err != nil {
		t.Errorf("silent poll error surfaced: %v", m.err)
	}
	if m.current == nil || m.current.ID != "abc123" {
		t.Error("silent poll error disturbed the panel")
	}
	if cmd != nil {
		t.Error("silent poll error produced a command")
	}
}

func TestDetailRefreshFailureShownInPanel(t *testing.T) {
	task := completedTask("abc123", "add README")
	m := initTestModel(nil, withCurrentView(viewDetail), withCurrent(&task))

	m, _ = updateModel(m, taskMsg{taskID: "abc123", err: errors.New("connection refused")})

	if m.detailErr == nil {
		t.Fatal("refresh failure not recorded on the panel")
	}
	if m.err != nil {
		t.Errorf("panel failure leaked into the list error: %v", m.err)
	}
	if view := m.View(); !strings.Contains(view, "connection refused") {
		t.Error("refresh failure not rendered in the detail view")
	}
}

func TestDetailRefreshFailureClearedByFreshSnapshot(t *testing.T) {
	task := completedTask("abc123", "add README")
	m := initTestModel(nil, withCurrentView(viewDetail), withCurrent(&task))

	m, _ = updateModel(m, taskMsg{taskID: "abc123", err: errors.New("connection refused")})
	snapshot := task
	m, _ = updateModel(m, taskMsg{task: &snapshot, taskID: "abc123", silent: true})

	if m.detailErr != nil {
		t.Errorf("refresh failure kept after a fresh snapshot: %v", m.detailErr)
	}
	if view := m.View(); strings.Contains(view, "connection refused") {
		t.Error("stale refresh failure still rendered")
	}
}

func TestTaskMsgForClosedPanelIsDropped(t *testing.T) {
	task := runningTask("abc123", "add README")
	m := initTestModel(nil, withCurrentView(viewDetail), withCurrent(&task))

	other := runningTask("def456", "other")
	other.Output = "something"
	m, _ = updateModel(m, taskMsg{task: &other, taskID: "def456", silent: true})

	if m.current.ID != "abc123" {
		t.Errorf("panel switched to %s", m.current.ID)
	}
}

func TestContentFetchedOncePerTransition(t *testing.T) {
	client := &mockClient{}
	task := runningTask("abc123", "add README")
	m := initTestModel(client, withCurrentView(viewDetail), withCurrent(&task), withTasks(task))

	done := completedTask("abc123", "add README")
	done.Output = "done"
	m, cmd := updateModel(m, taskMsg{task: &done, taskID: "abc123", silent: true})

	if !m.contentLoading {
		t.Error("contentLoading not set on running to terminal transition")
	}
	if cmd == nil {
		t.Fatal("no content fetch issued on transition")
	}
	msg := cmd()
	if _, ok := msg.(contentMsg); !ok {
		t.Fatalf("expected contentMsg, got %T", msg)
	}
	if client.contentCalls != 1 {
		t.Fatalf("content fetched %d times, want 1", client.contentCalls)
	}
	m, _ = updateModel(m, msg)

	// A later snapshot of the already-terminal task (output grew) must
	// not refetch content.
	later := done
	later.Output = "done\nand more"
	_, cmd = updateModel(m, taskMsg{task: &later, taskID: "abc123", silent: true})
	if cmd != nil {
		t.Error("terminal-to-terminal update refetched content")
	}
	if client.contentCalls != 1 {
		t.Errorf("content fetched %d times, want 1", client.contentCalls)
	}
}

func TestTransitionSyncsTaskIntoList(t *testing.T) {
	task := runningTask("abc123", "add README")
	m := initTestModel(nil, withCurrentView(viewDetail), withCurrent(&task), withTasks(task))

	done := completedTask("abc123", "add README")
	m, _ = updateModel(m, taskMsg{task: &done, taskID: "abc123", silent: true})

	if m.tasks[0].Status != api.StatusCompleted {
		t.Errorf("list status = %s, want completed", m.tasks[0].Status)
	}
}

func TestOpenDetailTerminalTaskFetchesContentImmediately(t *testing.T) {
	client := &mockClient{}
	task := completedTask("abc123", "add README")
	m := initTestModel(client, withTasks(task), withSelection(0, "abc123"))

	m, cmd := pressSpecial(m, tea.KeyEnter)

	assertView(t, m, viewDetail)
	if !m.contentLoading {
		t.Error("contentLoading not set when opening a finished task")
	}
	if cmd == nil {
		t.Fatal("expected fetch commands")
	}
	drainCmd(cmd)
	if client.contentCalls != 1 {
		t.Errorf("content fetched %d times, want 1", client.contentCalls)
	}
}

func TestOpenDetailRunningTaskStartsSilentPoll(t *testing.T) {
	client := &mockClient{}
	task := runningTask("abc123", "add README")
	m := initTestModel(client, withTasks(task), withSelection(0, "abc123"))

	m, _ = pressSpecial(m, tea.KeyEnter)

	assertView(t, m, viewDetail)
	if m.contentLoading {
		t.Error("contentLoading set for a running task")
	}
	if client.contentCalls != 0 {
		t.Errorf("content fetched %d times for a running task", client.contentCalls)
	}
}

func TestDetailTickStopsWhenTaskFinishes(t *testing.T) {
	task := completedTask("abc123", "add README")
	m := initTestModel(nil, withCurrentView(viewDetail), withCurrent(&task))

	_, cmd := updateModel(m, detailTickMsg{seq: m.detailSeq})
	if cmd != nil {
		t.Error("detail tick kept polling a finished task")
	}
}

func TestReopenDetailOrphansOldTickChain(t *testing.T) {
	task := runningTask("abc123", "add README")
	m := initTestModel(nil, withTasks(task), withSelection(0, "abc123"))

	m, _ = pressSpecial(m, tea.KeyEnter)
	oldSeq := m.detailSeq
	m, _ = pressSpecial(m, tea.KeyEsc)
	m, _ = pressSpecial(m, tea.KeyEnter)

	// A tick scheduled before the close must die instead of re-arming
	// alongside the new chain.
	_, cmd := updateModel(m, detailTickMsg{seq: oldSeq})
	if cmd != nil {
		t.Error("tick from the closed panel re-armed")
	}
	_, cmd = updateModel(m, detailTickMsg{seq: m.detailSeq})
	if cmd == nil {
		t.Error("current tick chain stopped polling a running task")
	}
}

func TestContentMsgForOtherTaskDropped(t *testing.T) {
	task := completedTask("abc123", "add README")
	m := initTestModel(nil, withCurrentView(viewDetail), withCurrent(&task))
	m.contentLoading = true

	m, _ = updateModel(m, contentMsg{taskID: "zzz", content: &api.TaskContent{TaskID: "zzz"}})

	if m.content != nil {
		t.Error("content for another task was installed")
	}
	if !m.contentLoading {
		t.Error("stray content cleared the loading state")
	}
}

func TestCopyDetailPrefersDiffOverOutput(t *testing.T) {
	mock := &mockClipboard{}
	task := completedTask("abc123", "add README")
	task.Output = "agent output"
	content := &api.TaskContent{
		TaskID:      "abc123",
		ContentType: api.ContentDiff,
		Diff:        "--- a/README.md\n+++ b/README.md\n",
		Count:       1,
	}
	m := initTestModel(nil,
		withCurrentView(viewDetail), withCurrent(&task),
		withContent(content), withClipboard(mock))

	_, cmd := pressKey(m, 'y')
	if cmd == nil {
		t.Fatal("expected clipboard command")
	}
	if msg := cmd(); msg.(clipboardResultMsg).err != nil {
		t.Fatalf("copy failed: %v", msg.(clipboardResultMsg).err)
	}
	if !strings.Contains(mock.lastText, "+++ b/README.md") {
		t.Errorf("copied %q, want the diff", mock.lastText)
	}
}

func TestEscapeClosesDetail(t *testing.T) {
	task := completedTask("abc123", "add README")
	m := initTestModel(nil, withCurrentView(viewDetail), withCurrent(&task),
		withContent(&api.TaskContent{TaskID: "abc123"}))

	m, _ = pressSpecial(m, tea.KeyEsc)

	assertView(t, m, viewList)
	if m.current != nil || m.content != nil {
		t.Error("detail state not cleared on close")
	}
}
