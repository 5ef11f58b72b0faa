// Package github provides a minimal GitHub API client for identifying
// the signed-in user and listing repositories they can submit tasks
// against.
package github

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultBaseURL is the public GitHub API endpoint.
const DefaultBaseURL = "https://api.github.com"

// User is the authenticated GitHub account.
type User struct {
	Login     string `json:"login"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url"`
}

// Repository is a repo the user owns.
type Repository struct {
	ID          int64  `json:"id"`
	FullName    string `json:"full_name"`
	Private     bool   `json:"private"`
	Description string `json:"description"`
	Language    string `json:"language"`
	UpdatedAt   string `json:"updated_at"`
}

// Client talks to the GitHub REST API with a personal access token.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient creates a client for the public GitHub API.
func NewClient(token string) *Client {
	return &Client{
		baseURL:    DefaultBaseURL,
		token:      token,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// SetBaseURL overrides the API endpoint. Tests use this to point the
// client at a local server.
func (c *Client) SetBaseURL(u string) {
	c.baseURL = u
}

// User fetches the account the token belongs to.
func (c *Client) User() (*User, error) {
	var user User
	if err := c.getJSON("/user", &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Repos fetches repositories owned by the user, most recently updated
// first.
func (c *Client) Repos() ([]Repository, error) {
	var repos []Repository
	if err := c.getJSON("/user/repos?type=owner&sort=updated&per_page=100", &repos); err != nil {
		return nil, err
	}
	return repos, nil
}

func (c *Client) getJSON(path string, out interface{}) error {
	req, err := http.NewRequest(http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return fmt.Errorf("github: bad credentials")
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("github: %s: %s", resp.Status, body)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
