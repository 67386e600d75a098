package banking

import (
	"strings"
	"sync"
)

// Mode selects the execution strategy for a Client. It is fixed at
// construction and never changes for the lifetime of the Client.
type Mode int

const (
	// ModeBlocking performs each request on the calling goroutine.
	ModeBlocking Mode = iota
	// ModeConcurrent schedules requests on a dispatcher pool; callers
	// suspend only at the request boundary.
	ModeConcurrent
)

// String returns a human-readable mode name
func (m Mode) String() string {
	switch m {
	case ModeBlocking:
		return "blocking"
	case ModeConcurrent:
		return "concurrent"
	default:
		return "unknown"
	}
}

// session holds the connection state owned by a single Client. The token
// is written once by Authenticate and read by every accessor; the mutex
// makes the async surface safe without callers caring.
type session struct {
	baseURL  string
	username string
	password string
	mode     Mode

	mu        sync.RWMutex
	token     string
	tokenType string
}

func newSession(baseURL, username, password string, mode Mode) *session {
	return &session{
		baseURL:  strings.TrimRight(baseURL, "/"),
		username: username,
		password: password,
		mode:     mode,
	}
}

// setToken stores the credentials returned by the token endpoint.
// An empty tokenType falls back to "bearer".
func (s *session) setToken(token, tokenType string) {
	if tokenType == "" {
		tokenType = "bearer"
	}
	s.mu.Lock()
	s.token = token
	s.tokenType = tokenType
	s.mu.Unlock()
}

// authorization returns the Authorization header value and whether a
// token is currently held.
func (s *session) authorization() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.token == "" {
		return "", false
	}
	return s.tokenType + " " + s.token, true
}

// authenticated reports whether a token is held.
func (s *session) authenticated() bool {
	_, ok := s.authorization()
	return ok
}
