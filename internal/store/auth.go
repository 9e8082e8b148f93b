package store

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/tgienger/crmdash/internal/api"
	"github.com/tgienger/crmdash/internal/models"
)

// Authenticator performs the login round trip
type Authenticator interface {
	Login(ctx context.Context, creds api.Credentials) (api.User, error)
}

// AuthPhase is the position of the auth container in its state machine
type AuthPhase int

const (
	PhaseAnonymous AuthPhase = iota
	PhaseAuthenticating
	PhaseAuthenticated
	PhaseAuthFailed
)

func (p AuthPhase) String() string {
	switch p {
	case PhaseAuthenticating:
		return "authenticating"
	case PhaseAuthenticated:
		return "authenticated"
	case PhaseAuthFailed:
		return "auth-failed"
	}
	return "anonymous"
}

// AuthState is a snapshot of the auth container
type AuthState struct {
	User      *models.User
	ExpiresAt time.Time // zero when the token carries no exp claim
	Loading   bool
	Err       string
}

// AuthStore holds the current session
type AuthStore struct {
	mu    sync.RWMutex
	svc   Authenticator
	state AuthState
}

func NewAuthStore(svc Authenticator) *AuthStore {
	return &AuthStore{svc: svc}
}

// Login authenticates and stores the returned user. A failed attempt keeps
// any existing session.
func (s *AuthStore) Login(ctx context.Context, username, password string) error {
	s.mu.Lock()
	s.state.Loading = true
	s.state.Err = ""
	s.mu.Unlock()

	resp, err := s.svc.Login(ctx, api.Credentials{Username: username, Password: password})

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Loading = false
	if err != nil {
		s.state.Err = failureMessage(err, "Login failed")
		log.Printf("login %q failed: %v", username, err)
		return err
	}

	user := models.User{
		ID:        string(resp.ID),
		Username:  resp.Username,
		Email:     resp.Email,
		FirstName: resp.FirstName,
		LastName:  resp.LastName,
		Token:     resp.SessionToken(),
		Role:      resp.Role,
	}
	s.state.User = &user
	s.state.ExpiresAt = tokenExpiry(user.Token)
	return nil
}

// Logout drops the session without contacting the service
func (s *AuthStore) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.User = nil
	s.state.ExpiresAt = time.Time{}
	s.state.Err = ""
}

// State returns a copy of the current state
func (s *AuthStore) State() AuthState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st := s.state
	if st.User != nil {
		u := *st.User
		st.User = &u
	}
	return st
}

func (s *AuthStore) Phase() AuthPhase {
	s.mu.RLock()
	defer s.mu.RUnlock()
	switch {
	case s.state.Loading:
		return PhaseAuthenticating
	case s.state.Err != "":
		return PhaseAuthFailed
	case s.state.User != nil:
		return PhaseAuthenticated
	}
	return PhaseAnonymous
}

// Authenticated reports whether a session is present and not expired at now
func (s *AuthStore) Authenticated(now time.Time) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state.User == nil {
		return false
	}
	return s.state.ExpiresAt.IsZero() || now.Before(s.state.ExpiresAt)
}

// tokenExpiry reads the exp claim without verifying the signature; the
// token is only ever sent back to the service that issued it.
func tokenExpiry(token string) time.Time {
	if token == "" {
		return time.Time{}
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}
	}
	return exp.Time
}

// failureMessage turns an error into the text shown to the user
func failureMessage(err error, fallback string) string {
	var httpErr *api.HTTPError
	if errors.As(err, &httpErr) {
		if httpErr.Message == "" {
			return fallback
		}
		return httpErr.Message
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return fallback
}
