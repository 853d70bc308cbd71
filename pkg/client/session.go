package client

import (
	"context"
	"sync"
)

// User is the identity returned by register and login.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Session holds the caller's credentials. Clear is the single teardown: it drops
// the credentials and cancels every request started under them.
type Session struct {
	mu     sync.RWMutex
	token  string
	user   User
	ctx    context.Context
	cancel context.CancelFunc
}

// NewSession returns an empty, unauthenticated session.
func NewSession() *Session {
	s := &Session{}
	s.ctx, s.cancel = context.WithCancel(context.Background())
	return s
}

// Set stores credentials after a successful login.
func (s *Session) Set(token string, user User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.user = user
}

// Clear drops the credentials and cancels in-flight requests.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.user = User{}
	s.cancel()
	s.ctx, s.cancel = context.WithCancel(context.Background())
}

// Token returns the bearer token, empty when logged out.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// User returns the logged in user.
func (s *Session) User() User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// Role returns the logged in user's role.
func (s *Session) Role() string {
	return s.User().Role
}

// Authenticated reports whether a token is held.
func (s *Session) Authenticated() bool {
	return s.Token() != ""
}

// scope returns the context that Clear cancels, paired with the current token.
func (s *Session) scope() (context.Context, string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ctx, s.token
}

// DashboardPath returns the landing page for role after login.
func DashboardPath(role string) string {
	switch role {
	case "admin":
		return "/admin-dashboard"
	case "donor":
		return "/donor-dashboard"
	case "recipient":
		return "/recipient-dashboard"
	default:
		return "/dashboard"
	}
}
