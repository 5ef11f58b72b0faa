package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/vinayakankugoyal/junior/internal/poll"
)

// Client provides an interface for interacting with the junior server.
// This abstraction allows for easy mocking in tests.
type Client interface {
	// Submit starts a new task and returns its ID
	Submit(task, repository string) (string, error)

	// Status fetches the current state of a task
	Status(taskID string) (*Task, error)

	// List fetches tasks matching the filter
	List(filter ListFilter) ([]Task, error)

	// Content fetches the diff or file listing a task produced
	Content(taskID string) (*TaskContent, error)

	// Delete removes a task and its workspace
	Delete(taskID string) error

	// CreatePR asks the server to open a pull request from a task's changes
	CreatePR(taskID, token, title, body string) (*PullRequest, error)

	// SendFeedback resumes a completed task with a follow-up instruction
	SendFeedback(taskID, feedback string) (*FeedbackResponse, error)

	// WaitForTask blocks until a task reaches a terminal status
	WaitForTask(taskID string) (*Task, error)
}

// DefaultPollInterval is the default polling interval for WaitForTask.
// Tests can override this to speed up polling-based tests.
var DefaultPollInterval = 2 * time.Second

// HTTPClient is the default HTTP-based implementation of Client
type HTTPClient struct {
	addr         string
	httpClient   *http.Client
	pollInterval time.Duration
}

// NewHTTPClient creates a new client for the server at addr
func NewHTTPClient(addr string) *HTTPClient {
	return &HTTPClient{
		addr:         addr,
		httpClient:   &http.Client{Timeout: 10 * time.Second},
		pollInterval: DefaultPollInterval,
	}
}

// SetPollInterval sets the polling interval for WaitForTask
func (c *HTTPClient) SetPollInterval(interval time.Duration) {
	c.pollInterval = interval
}

// Addr returns the server address the client talks to.
func (c *HTTPClient) Addr() string {
	return c.addr
}

func (c *HTTPClient) Submit(task, repository string) (string, error) {
	reqBody, _ := json.Marshal(map[string]string{
		"task":       task,
		"repository": repository,
	})

	resp, err := c.httpClient.Post(c.addr+"/execute", "application/json", bytes.NewReader(reqBody))
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", responseError("submit", resp)
	}

	var result SubmitResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", err
	}
	if result.TaskID == "" {
		return "", fmt.Errorf("submit: server returned no task id")
	}

	return result.TaskID, nil
}

func (c *HTTPClient) Status(taskID string) (*Task, error) {
	resp, err := c.httpClient.Get(c.addr + "/status/" + url.PathEscape(taskID))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, responseError("status", resp)
	}

	var task Task
	if err := json.NewDecoder(resp.Body).Decode(&task); err != nil {
		return nil, err
	}

	return &task, nil
}

func (c *HTTPClient) List(filter ListFilter) ([]Task, error) {
	path := "/tasks"
	key := "tasks"
	switch filter {
	case FilterRunning:
		path = "/running"
		key = "running_tasks"
	case FilterCompleted:
		path = "/completed"
		key = "completed_tasks"
	}

	resp, err := c.httpClient.Get(c.addr + path)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, responseError("list", resp)
	}

	var result map[string]json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}

	var tasks []Task
	if raw, ok := result[key]; ok {
		if err := json.Unmarshal(raw, &tasks); err != nil {
			return nil, err
		}
	}

	return tasks, nil
}

func (c *HTTPClient) Content(taskID string) (*TaskContent, error) {
	resp, err := c.httpClient.Get(c.addr + "/content/" + url.PathEscape(taskID))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, responseError("content", resp)
	}

	var content TaskContent
	if err := json.NewDecoder(resp.Body).Decode(&content); err != nil {
		return nil, err
	}

	return &content, nil
}

func (c *HTTPClient) Delete(taskID string) error {
	req, err := http.NewRequest(http.MethodDelete, c.addr+"/delete/"+url.PathEscape(taskID), nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return responseError("delete", resp)
	}

	return nil
}

func (c *HTTPClient) CreatePR(taskID, token, title, body string) (*PullRequest, error) {
	reqBody, _ := json.Marshal(map[string]string{
		"github_token": token,
		"pr_title":     title,
		"pr_body":      body,
	})

	resp, err := c.httpClient.Post(c.addr+"/create-pr/"+url.PathEscape(taskID), "application/json", bytes.NewReader(reqBody))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	// The server reports PR failures with a 400 plus a structured body;
	// surface those through the PullRequest result rather than an error.
	var pr PullRequest
	if err := json.NewDecoder(resp.Body).Decode(&pr); err != nil {
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("create pr: server returned %s", resp.Status)
		}
		return nil, err
	}
	if resp.StatusCode != http.StatusOK && pr.Error == "" && pr.Message == "" {
		return nil, fmt.Errorf("create pr: server returned %s", resp.Status)
	}

	return &pr, nil
}

func (c *HTTPClient) SendFeedback(taskID, feedback string) (*FeedbackResponse, error) {
	reqBody, _ := json.Marshal(map[string]string{
		"feedback": feedback,
	})

	resp, err := c.httpClient.Post(c.addr+"/feedback/"+url.PathEscape(taskID), "application/json", bytes.NewReader(reqBody))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, responseError("feedback", resp)
	}

	var result FeedbackResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}

	return &result, nil
}

// WaitForTask polls a task's status until it reaches a terminal state.
func (c *HTTPClient) WaitForTask(taskID string) (*Task, error) {
	type result struct {
		task *Task
		err  error
	}
	done := make(chan result, 1)

	check := func() {
		task, err := c.Status(taskID)
		if err != nil {
			select {
			case done <- result{nil, fmt.Errorf("polling task %s: %w", taskID, err)}:
			default:
			}
			return
		}
		if task.Status.Terminal() {
			select {
			case done <- result{task, nil}:
			default:
			}
		}
	}

	// Check once up front so already-finished tasks return without
	// waiting a full poll interval.
	check()
	select {
	case r := <-done:
		return r.task, r.err
	default:
	}

	ticker := poll.New(c.pollInterval, check)
	defer ticker.Close()
	ticker.SetEnabled(true)

	r := <-done
	return r.task, r.err
}

// responseError builds an error from a non-200 response, preferring the
// server's {"error": "..."} body when present.
func responseError(op string, resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	var errBody struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &errBody); err == nil && errBody.Error != "" {
		return fmt.Errorf("%s: %s", op, errBody.Error)
	}

	return fmt.Errorf("%s: server returned %s: %s", op, resp.Status, bytes.TrimSpace(body))
}
