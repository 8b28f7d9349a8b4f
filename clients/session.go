package clients

import (
	"sync"

	"github.com/joanie-store/storefront/models"
)

// Session holds the signed-in shopper and their token. The zero value is an
// anonymous session.
type Session struct {
	mu    sync.RWMutex
	user  *models.User
	token string
}

// NewSession returns an anonymous session.
func NewSession() *Session {
	return &Session{}
}

// Set replaces the signed-in user and token. A nil user makes the session anonymous.
func (s *Session) Set(user *models.User, token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = user
	s.token = token
}

// Clear signs the session out.
func (s *Session) Clear() {
	s.Set(nil, "")
}

// Token returns the bearer token, or "" when anonymous.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// UserID returns "" when nobody is signed in.
func (s *Session) UserID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return ""
	}
	return s.user.ID
}

// Authenticated reports whether a user is signed in.
func (s *Session) Authenticated() bool {
	return s.UserID() != ""
}
