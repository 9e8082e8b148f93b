package store

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/tgienger/crmdash/internal/api"
)

func newAuthServer(t *testing.T, status int, body string) (*AuthStore, *atomic.Int32) {
	t.Helper()
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		if r.URL.Path != "/auth/login" {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	client := api.NewClient(api.Config{BaseURL: srv.URL, RateLimit: 1000})
	return NewAuthStore(client), &calls
}

func TestLoginSuccess(t *testing.T) {
	s, _ := newAuthServer(t, http.StatusOK,
		`{"id":1,"username":"emilys","email":"emily@x.com","firstName":"Emily","lastName":"Johnson","token":"abc","role":"admin"}`)

	if err := s.Login(context.Background(), "emilys", "emilyspass"); err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	st := s.State()
	if st.User == nil {
		t.Fatal("Expected a user")
	}
	if st.User.ID != "1" || st.User.Name() != "Emily Johnson" || st.User.Token != "abc" {
		t.Errorf("Unexpected user %+v", st.User)
	}
	if st.Loading || st.Err != "" {
		t.Errorf("Expected idle state, got loading=%v err=%q", st.Loading, st.Err)
	}
	if s.Phase() != PhaseAuthenticated {
		t.Errorf("Expected authenticated, got %s", s.Phase())
	}
	if !s.Authenticated(time.Now()) {
		t.Error("Expected session without exp claim to never expire")
	}
}

func TestLoginFailure(t *testing.T) {
	s, _ := newAuthServer(t, http.StatusUnauthorized, `{"message":"Invalid credentials"}`)

	if err := s.Login(context.Background(), "emilys", "wrong"); err == nil {
		t.Fatal("Expected login to fail")
	}

	st := s.State()
	if st.User != nil {
		t.Errorf("Expected no user, got %+v", st.User)
	}
	if st.Err != "Invalid credentials" {
		t.Errorf("Expected service message, got %q", st.Err)
	}
	if st.Loading {
		t.Error("Expected loading to be cleared")
	}
	if s.Phase() != PhaseAuthFailed {
		t.Errorf("Expected auth-failed, got %s", s.Phase())
	}
}

func TestLoginFailureWithoutMessage(t *testing.T) {
	s, _ := newAuthServer(t, http.StatusUnauthorized, `{}`)

	if err := s.Login(context.Background(), "emilys", "wrong"); err == nil {
		t.Fatal("Expected login to fail")
	}
	if st := s.State(); st.Err != "Login failed" {
		t.Errorf("Expected fallback message, got %q", st.Err)
	}
}

func TestFailedReloginKeepsSession(t *testing.T) {
	var status atomic.Int32
	status.Store(http.StatusOK)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		code := int(status.Load())
		w.WriteHeader(code)
		if code == http.StatusOK {
			w.Write([]byte(`{"id":1,"username":"emilys","token":"abc"}`))
			return
		}
		w.Write([]byte(`{"message":"Invalid credentials"}`))
	}))
	defer srv.Close()
	s := NewAuthStore(api.NewClient(api.Config{BaseURL: srv.URL, RateLimit: 1000}))

	if err := s.Login(context.Background(), "emilys", "emilyspass"); err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	status.Store(http.StatusUnauthorized)
	s.Login(context.Background(), "emilys", "wrong")

	st := s.State()
	if st.User == nil || st.User.Username != "emilys" {
		t.Errorf("Expected existing session to survive, got %+v", st.User)
	}
	if st.Err == "" {
		t.Error("Expected error to be recorded")
	}
}

func TestLogoutIsLocal(t *testing.T) {
	s, calls := newAuthServer(t, http.StatusOK, `{"id":1,"username":"emilys","token":"abc"}`)

	if err := s.Login(context.Background(), "emilys", "emilyspass"); err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	before := calls.Load()

	s.Logout()

	if s.State().User != nil {
		t.Error("Expected user to be cleared")
	}
	if calls.Load() != before {
		t.Errorf("Expected no network call on logout, got %d extra", calls.Load()-before)
	}
	if s.Phase() != PhaseAnonymous {
		t.Errorf("Expected anonymous, got %s", s.Phase())
	}
}

func TestSessionExpiryFromToken(t *testing.T) {
	exp := time.Now().Add(30 * time.Minute).Truncate(time.Second)
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":  1,
		"exp": exp.Unix(),
	}).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	s, _ := newAuthServer(t, http.StatusOK, `{"id":1,"username":"emilys","accessToken":"`+token+`"}`)
	if err := s.Login(context.Background(), "emilys", "emilyspass"); err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	if got := s.State().ExpiresAt; !got.Equal(exp) {
		t.Errorf("Expected expiry %v, got %v", exp, got)
	}
	if !s.Authenticated(exp.Add(-time.Minute)) {
		t.Error("Expected session to be valid before expiry")
	}
	if s.Authenticated(exp.Add(time.Minute)) {
		t.Error("Expected session to be invalid after expiry")
	}
}
