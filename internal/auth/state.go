// Package auth tracks the process-wide Provena authentication state.
// It is the single source of truth for "are we currently authenticated":
// the gateway checks it before every remote call, and the login/logout
// tools transition it.
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"strings"
	"sync"

	"golang.org/x/oauth2"
)

// Login result statuses, mirrored into tool outcomes.
const (
	StatusAuthenticated        = "authenticated"
	StatusAlreadyAuthenticated = "already_authenticated"
	StatusError                = "error"
)

// ErrNotAuthenticated is returned when a credential is required but absent.
var ErrNotAuthenticated = errors.New("not authenticated")

// LoginResult reports the outcome of a login attempt.
type LoginResult struct {
	Status  string
	Message string
}

// DeviceFlow runs the external device authorization ritual and yields a token.
// It may block on human interaction in a browser.
type DeviceFlow interface {
	Authorize(ctx context.Context) (*oauth2.Token, error)
}

// State holds the current credential. All transitions are serialized by a
// mutex so a gateway call never proceeds on a credential that is being
// cleared concurrently.
type State struct {
	mu        sync.Mutex
	flow      DeviceFlow
	tokenFile string
	token     *oauth2.Token
	log       *slog.Logger
}

// New creates a State, reloading any token cached on disk by a previous run.
func New(flow DeviceFlow, tokenFile string) *State {
	s := &State{
		flow:      flow,
		tokenFile: tokenFile,
		log:       slog.Default().With("component", "auth"),
	}
	s.loadToken()
	return s
}

// Login runs the device flow unless a usable credential is already held.
// It is idempotent when already authenticated.
func (s *State) Login(ctx context.Context) LoginResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.authenticated() {
		return LoginResult{
			Status:  StatusAlreadyAuthenticated,
			Message: "Already authenticated",
		}
	}

	s.token = nil

	token, err := s.flow.Authorize(ctx)
	if err != nil {
		s.log.Error("device flow failed", "error", err)
		return LoginResult{Status: StatusError, Message: err.Error()}
	}

	s.token = token
	if !s.authenticated() {
		s.token = nil
		return LoginResult{
			Status:  StatusError,
			Message: "Device flow completed but no tokens were received",
		}
	}

	s.saveToken()
	return LoginResult{
		Status:  StatusAuthenticated,
		Message: "Authentication completed successfully",
	}
}

// Logout clears the in-memory credential and any persisted token material.
// Clearing an already-empty state is a no-op, not an error.
func (s *State) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = nil
	if s.tokenFile != "" {
		if err := os.Remove(s.tokenFile); err != nil && !os.IsNotExist(err) {
			s.log.Warn("failed to remove token file", "path", s.tokenFile, "error", err)
		}
	}
}

// IsAuthenticated reports whether a usable credential is currently held.
func (s *State) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.authenticated()
}

// AccessToken returns the current bearer token, or ErrNotAuthenticated.
func (s *State) AccessToken() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.authenticated() {
		return "", ErrNotAuthenticated
	}
	return s.token.AccessToken, nil
}

// authenticated requires the caller to hold s.mu.
// A usable access token is non-empty and JWT-shaped (two dots). Expiry
// detection is delegated to the remote services.
func (s *State) authenticated() bool {
	if s.token == nil {
		return false
	}
	access := s.token.AccessToken
	return access != "" && strings.Count(access, ".") == 2
}

func (s *State) loadToken() {
	if s.tokenFile == "" {
		return
	}
	data, err := os.ReadFile(s.tokenFile)
	if err != nil {
		return
	}
	var token oauth2.Token
	if err := json.Unmarshal(data, &token); err != nil {
		s.log.Warn("ignoring malformed token file", "path", s.tokenFile, "error", err)
		return
	}
	s.token = &token
}

// saveToken requires the caller to hold s.mu.
func (s *State) saveToken() {
	if s.tokenFile == "" || s.token == nil {
		return
	}
	data, err := json.Marshal(s.token)
	if err != nil {
		return
	}
	if err := os.WriteFile(s.tokenFile, data, 0o600); err != nil {
		s.log.Warn("failed to persist token", "path", s.tokenFile, "error", err)
	}
}
