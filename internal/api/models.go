package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// TaskStatus is the lifecycle state of a task on the server.
type TaskStatus string

const (
	StatusRunning   TaskStatus = "running"
	StatusCompleted TaskStatus = "completed"
	StatusFailed    TaskStatus = "failed"
)

// Terminal reports whether the status is a final state. A task only ever
// moves from running to completed or failed, never back.
func (s TaskStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// Timestamp wraps time.Time to accept the server's timestamp encoding.
// The server emits ISO 8601 without a zone offset; we also accept
// RFC 3339 so round-trips through our own marshaling stay valid.
type Timestamp struct {
	time.Time
}

// isoNoZone matches Python's datetime.isoformat() output.
const isoNoZone = "2006-01-02T15:04:05.999999"

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		return nil
	}
	if parsed, err := time.Parse(time.RFC3339Nano, s); err == nil {
		t.Time = parsed
		return nil
	}
	parsed, err := time.ParseInLocation(isoNoZone, s, time.Local)
	if err != nil {
		return fmt.Errorf("parse timestamp %q: %w", s, err)
	}
	t.Time = parsed
	return nil
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Format(time.RFC3339Nano))
}

// FeedbackEntry is one follow-up instruction previously sent to a task.
type FeedbackEntry struct {
	Feedback  string    `json:"feedback"`
	Timestamp Timestamp `json:"timestamp"`
}

// Task is the server's record of a submitted coding task.
type Task struct {
	ID              string          `json:"id"`
	Task            string          `json:"task"`
	Status          TaskStatus      `json:"status"`
	StartTime       Timestamp       `json:"start_time"`
	EndTime         *Timestamp      `json:"end_time"`
	Output          string          `json:"output"`
	Error           string          `json:"error"`
	ReturnCode      *int            `json:"return_code"`
	TempDir         string          `json:"temp_dir"`
	SessionID       string          `json:"session_id"`
	OriginalTask    string          `json:"original_task"`
	FeedbackHistory []FeedbackEntry `json:"feedback_history"`
}

// Changed reports whether any field a watcher cares about differs between
// two snapshots of the same task. Fields that never change after creation
// (id, task text, start time) are ignored.
func (t Task) Changed(other Task) bool {
	if t.Status != other.Status {
		return true
	}
	if !timestampPtrEqual(t.EndTime, other.EndTime) {
		return true
	}
	if t.Output != other.Output || t.Error != other.Error {
		return true
	}
	if len(t.FeedbackHistory) != len(other.FeedbackHistory) {
		return true
	}
	return false
}

func timestampPtrEqual(a, b *Timestamp) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(b.Time)
}

// ContentType distinguishes the two shapes of task content the server
// returns: a unified diff for git repos, a file listing otherwise.
type ContentType string

const (
	ContentDiff  ContentType = "diff"
	ContentFiles ContentType = "files"
)

// ContentFile is one entry in a non-git task's file listing.
type ContentFile struct {
	Path    string `json:"path"`
	Name    string `json:"name"`
	Type    string `json:"type"`
	Content string `json:"content"`
	Size    int64  `json:"size"`
}

// TaskContent is the result of a task: either a diff string or a set of
// files, depending on whether the task's workspace was a git repository.
type TaskContent struct {
	TaskID      string        `json:"task_id"`
	IsGitRepo   bool          `json:"is_git_repo"`
	ContentType ContentType   `json:"content_type"`
	Diff        string        `json:"-"`
	Files       []ContentFile `json:"-"`
	Count       int           `json:"count"`
}

// UnmarshalJSON handles the polymorphic "content" field, which is a diff
// string for git tasks, an array of files otherwise, or null when the
// task produced nothing.
func (tc *TaskContent) UnmarshalJSON(data []byte) error {
	var raw struct {
		TaskID      string          `json:"task_id"`
		IsGitRepo   bool            `json:"is_git_repo"`
		ContentType ContentType     `json:"content_type"`
		Content     json.RawMessage `json:"content"`
		Count       int             `json:"count"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	tc.TaskID = raw.TaskID
	tc.IsGitRepo = raw.IsGitRepo
	tc.ContentType = raw.ContentType
	tc.Count = raw.Count
	tc.Diff = ""
	tc.Files = nil
	if len(raw.Content) == 0 || bytes.Equal(raw.Content, []byte("null")) {
		return nil
	}
	switch raw.ContentType {
	case ContentFiles:
		return json.Unmarshal(raw.Content, &tc.Files)
	default:
		return json.Unmarshal(raw.Content, &tc.Diff)
	}
}

// Empty reports whether the task produced no content at all.
func (tc *TaskContent) Empty() bool {
	if tc.ContentType == ContentFiles {
		return len(tc.Files) == 0
	}
	return tc.Diff == ""
}

// SubmitResponse is the server's acknowledgment of a new task.
type SubmitResponse struct {
	TaskID  string `json:"task_id"`
	Message string `json:"message"`
}

// DeleteResponse acknowledges a task deletion.
type DeleteResponse struct {
	Message string `json:"message"`
	TaskID  string `json:"task_id"`
}

// PullRequest is the result of asking the server to open a PR from a
// task's changes.
type PullRequest struct {
	Success    bool   `json:"success"`
	PRURL      string `json:"pr_url"`
	PRNumber   int    `json:"pr_number"`
	BranchName string `json:"branch_name"`
	Message    string `json:"message"`
	Error      string `json:"error"`
}

// FeedbackResponse acknowledges a follow-up instruction. TaskID is the
// task that resumed; the server reuses the original task's ID.
type FeedbackResponse struct {
	TaskID  string `json:"task_id"`
	Message string `json:"message"`
}

// ListFilter selects which subset of tasks to fetch.
type ListFilter string

const (
	FilterAll       ListFilter = "all"
	FilterRunning   ListFilter = "running"
	FilterCompleted ListFilter = "completed"
)
