package github

import "sync"

// Session holds the signed-in user's identity and repositories so every
// part of the UI reads the same authentication state. A session with no
// token is simply unauthenticated; callers degrade rather than fail.
type Session struct {
	mu    sync.Mutex
	token string
	user  *User
	repos []Repository
	err   string

	newClient func(token string) *Client
}

// NewSession creates an empty, unauthenticated session.
func NewSession() *Session {
	return &Session{newClient: NewClient}
}

// NewSessionAt creates a session whose API calls go to the given base
// URL instead of api.github.com. Used to load sessions from test
// servers.
func NewSessionAt(base string) *Session {
	return &Session{newClient: func(token string) *Client {
		c := NewClient(token)
		c.SetBaseURL(base)
		return c
	}}
}

// SetToken installs the access token to use for subsequent loads. It
// clears any previously loaded identity.
func (s *Session) SetToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.user = nil
	s.repos = nil
	s.err = ""
}

// Load fetches the user and their repositories concurrently. Both
// results are stored together; if either fetch fails the session keeps
// whatever succeeded and records the error.
func (s *Session) Load() error {
	s.mu.Lock()
	token := s.token
	client := s.newClient(token)
	s.mu.Unlock()

	if token == "" {
		s.mu.Lock()
		s.err = "no GitHub token configured"
		s.mu.Unlock()
		return nil
	}

	var (
		wg       sync.WaitGroup
		user     *User
		repos    []Repository
		userErr  error
		reposErr error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		user, userErr = client.User()
	}()
	go func() {
		defer wg.Done()
		repos, reposErr = client.Repos()
	}()
	wg.Wait()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = user
	s.repos = repos
	s.err = ""
	if userErr != nil {
		s.err = userErr.Error()
		return userErr
	}
	if reposErr != nil {
		s.err = reposErr.Error()
		return reposErr
	}
	return nil
}

// RefreshRepos refetches the repository list only.
func (s *Session) RefreshRepos() error {
	s.mu.Lock()
	token := s.token
	client := s.newClient(token)
	s.mu.Unlock()

	if token == "" {
		return nil
	}

	repos, err := client.Repos()
	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.err = err.Error()
		return err
	}
	s.repos = repos
	return nil
}

// Clear drops the token and all loaded state.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.user = nil
	s.repos = nil
	s.err = ""
}

// Authenticated reports whether a user identity has been loaded.
func (s *Session) Authenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user != nil
}

// Token returns the configured access token, if any.
func (s *Session) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// User returns the loaded user, or nil when unauthenticated.
func (s *Session) User() *User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

// Repos returns the loaded repository list.
func (s *Session) Repos() []Repository {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.repos
}

// Err returns the last load error message, empty when healthy.
func (s *Session) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}
