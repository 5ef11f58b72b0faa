package api

import (
	"encoding/json"
	"testing"
	"time"
)

func TestTimestampUnmarshal(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  time.Time
	}{
		{
			name:  "python isoformat without zone",
			input: `"2024-06-01T10:30:00.123456"`,
			want:  time.Date(2024, 6, 1, 10, 30, 0, 123456000, time.Local),
		},
		{
			name:  "python isoformat without fraction",
			input: `"2024-06-01T10:30:00"`,
			want:  time.Date(2024, 6, 1, 10, 30, 0, 0, time.Local),
		},
		{
			name:  "rfc3339",
			input: `"2024-06-01T10:30:00Z"`,
			want:  time.Date(2024, 6, 1, 10, 30, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ts Timestamp
			if err := json.Unmarshal([]byte(tt.input), &ts); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if !ts.Equal(tt.want) {
				t.Errorf("got %v, want %v", ts.Time, tt.want)
			}
		})
	}
}

func TestTimestampUnmarshalNull(t *testing.T) {
	var ts Timestamp
	if err := json.Unmarshal([]byte("null"), &ts); err != nil {
		t.Fatalf("unmarshal null: %v", err)
	}
	if !ts.IsZero() {
		t.Errorf("expected zero time, got %v", ts.Time)
	}
}

func TestTimestampUnmarshalInvalid(t *testing.T) {
	var ts Timestamp
	if err := json.Unmarshal([]byte(`"not a time"`), &ts); err == nil {
		t.Error("expected error for invalid timestamp")
	}
}

func TestStatusTerminal(t *testing.T) {
	if StatusRunning.Terminal() {
		t.Error("running should not be terminal")
	}
	if !StatusCompleted.Terminal() {
		t.Error("completed should be terminal")
	}
	if !StatusFailed.Terminal() {
		t.Error("failed should be terminal")
	}
}

func TestTaskChanged(t *testing.T) {
	end := Timestamp{time.Date(2024, 6, 1, 11, 0, 0, 0, time.UTC)}
	base := Task{
		ID:     "abc123",
		Task:   "add README",
		Status: StatusRunning,
		Output: "working",
	}

	tests := []struct {
		name   string
		mutate func(*Task)
		want   bool
	}{
		{"identical", func(t *Task) {}, false},
		{"status change", func(t *Task) { t.Status = StatusCompleted }, true},
		{"end time set", func(t *Task) { t.EndTime = &end }, true},
		{"output change", func(t *Task) { t.Output = "done" }, true},
		{"error change", func(t *Task) { t.Error = "boom" }, true},
		{"feedback appended", func(t *Task) {
			t.FeedbackHistory = append(t.FeedbackHistory, FeedbackEntry{Feedback: "retry"})
		}, true},
		// Fields fixed at creation never count as a change.
		{"temp dir change", func(t *Task) { t.TempDir = "/tmp/other" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			updated := base
			tt.mutate(&updated)
			if got := base.Changed(updated); got != tt.want {
				t.Errorf("Changed() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTaskChangedSameEndTime(t *testing.T) {
	a := Timestamp{time.Date(2024, 6, 1, 11, 0, 0, 0, time.UTC)}
	b := Timestamp{time.Date(2024, 6, 1, 11, 0, 0, 0, time.UTC)}
	t1 := Task{Status: StatusCompleted, EndTime: &a}
	t2 := Task{Status: StatusCompleted, EndTime: &b}
	if t1.Changed(t2) {
		t.Error("equal end times through distinct pointers should not count as a change")
	}
}

func TestTaskContentUnmarshalDiff(t *testing.T) {
	data := `{
		"task_id": "abc123",
		"is_git_repo": true,
		"content_type": "diff",
		"content": "diff --git a/main.go b/main.go\n",
		"count": 1
	}`

	var tc TaskContent
	if err := json.Unmarshal([]byte(data), &tc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if tc.ContentType != ContentDiff {
		t.Errorf("content type = %q, want diff", tc.ContentType)
	}
	if tc.Diff == "" || tc.Files != nil {
		t.Errorf("expected diff content, got diff=%q files=%v", tc.Diff, tc.Files)
	}
	if tc.Empty() {
		t.Error("content with a diff should not be empty")
	}
}

func TestTaskContentUnmarshalFiles(t *testing.T) {
	data := `{
		"task_id": "abc123",
		"is_git_repo": false,
		"content_type": "files",
		"content": [{"path": "main.go", "name": "main.go", "type": "file", "content": "package main\n", "size": 13}],
		"count": 1
	}`

	var tc TaskContent
	if err := json.Unmarshal([]byte(data), &tc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if tc.ContentType != ContentFiles {
		t.Errorf("content type = %q, want files", tc.ContentType)
	}
	if len(tc.Files) != 1 || tc.Files[0].Path != "main.go" {
		t.Errorf("unexpected files: %+v", tc.Files)
	}
}

func TestTaskContentUnmarshalNullContent(t *testing.T) {
	data := `{"task_id": "abc123", "is_git_repo": true, "content_type": "diff", "content": null, "count": 0}`

	var tc TaskContent
	if err := json.Unmarshal([]byte(data), &tc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !tc.Empty() {
		t.Error("null content should be empty")
	}
}
