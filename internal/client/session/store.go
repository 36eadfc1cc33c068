// Package session owns the client's authentication state: the resolution
// status, the current user, and the in-memory access token, backed by a
// durable credential slot that survives restarts.
//
// All reads go through accessors and all writes through the named
// operations below; nothing else touches the durable slot.
package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/dverbis/itemkeeper/internal/client/api"
	"github.com/dverbis/itemkeeper/internal/client/models"
	"github.com/dverbis/itemkeeper/internal/client/repositories/metadata"
	"github.com/dverbis/itemkeeper/internal/common"
	"github.com/dverbis/itemkeeper/internal/logging"
)

// Status is the session's resolution status. It starts Unresolved, becomes
// Anonymous or Authenticated exactly once during Initialize, and never
// returns to Unresolved afterwards.
type Status int

const (
	StatusUnresolved Status = iota
	StatusAnonymous
	StatusAuthenticated
)

func (s Status) String() string {
	switch s {
	case StatusUnresolved:
		return "unresolved"
	case StatusAnonymous:
		return "anonymous"
	case StatusAuthenticated:
		return "authenticated"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Store tracks one session. Mutations hold the lock only while swapping
// state, so concurrent login attempts resolve last-write-wins.
type Store struct {
	api    api.AuthClient
	slot   metadata.Repository
	logger logging.Logger

	mu       sync.RWMutex
	status   Status
	user     *models.User
	token    string
	onChange func(Status)
}

func NewStore(client api.AuthClient, slot metadata.Repository, logger logging.Logger) *Store {
	return &Store{
		api:    client,
		slot:   slot,
		logger: logger.With("component", "session"),
		status: StatusUnresolved,
	}
}

// OnChange registers fn to be invoked after every status transition. Set it
// before Initialize; the access guard uses this to re-evaluate.
func (s *Store) OnChange(fn func(Status)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onChange = fn
}

// Initialize rehydrates a previously persisted credential. It always leaves
// the store resolved: Authenticated when the remote API accepts the stored
// token, Anonymous otherwise (erasing the slot on any failure). Calling it
// on an already resolved store is a no-op.
func (s *Store) Initialize(ctx context.Context) error {
	if s.Status() != StatusUnresolved {
		return nil
	}

	stored, err := s.slot.Get(ctx, common.CredentialSlotKey)
	if err != nil {
		s.setState(StatusAnonymous, nil, "")
		return fmt.Errorf("reading credential slot: %w", err)
	}
	if len(stored) == 0 {
		s.setState(StatusAnonymous, nil, "")
		return nil
	}

	token := string(stored)
	user, err := s.api.Me(ctx, token)
	if err != nil {
		// Rejected or unreachable: either way the stored credential cannot
		// back an authenticated session.
		s.logger.Warn(ctx, "stored credential not usable, dropping it", "err", err)
		if delErr := s.slot.Delete(ctx, common.CredentialSlotKey); delErr != nil {
			s.logger.Error(ctx, "failed to erase credential slot", "err", delErr)
		}
		s.setState(StatusAnonymous, nil, "")
		return nil
	}

	s.setState(StatusAuthenticated, user, token)
	s.logger.Info(ctx, "session rehydrated", "username", user.Username)
	return nil
}

// Login authenticates against the remote API. On success the credential is
// persisted before the in-memory state flips to Authenticated, so the
// durable slot is never behind an Authenticated status. On failure the
// session state is left untouched.
func (s *Store) Login(ctx context.Context, username, password string) error {
	token, user, err := s.api.Login(ctx, username, password)
	if err != nil {
		return err
	}

	if err := s.slot.Set(ctx, common.CredentialSlotKey, []byte(token)); err != nil {
		return fmt.Errorf("persisting credential: %w", err)
	}

	s.setState(StatusAuthenticated, user, token)
	s.logger.Info(ctx, "logged in", "username", user.Username)
	return nil
}

// Register creates a new account. It performs no session state change; the
// user must log in afterwards.
func (s *Store) Register(ctx context.Context, email, username, password string) error {
	if _, err := s.api.Register(ctx, email, username, password); err != nil {
		return err
	}
	s.logger.Info(ctx, "registered", "username", username)
	return nil
}

// Logout erases the durable credential and resets the session to Anonymous.
// Idempotent: logging out an anonymous session is a no-op.
func (s *Store) Logout(ctx context.Context) error {
	return s.clear(ctx, "logout")
}

// ForceLogout is the reactive variant invoked by the gateway when the
// server rejects a credential mid-session. Same effect as Logout; kept
// separate so callers can distinguish a deliberate logout in logs and
// redirect immediately.
func (s *Store) ForceLogout(ctx context.Context) error {
	return s.clear(ctx, "forced logout")
}

func (s *Store) clear(ctx context.Context, reason string) error {
	err := s.slot.Delete(ctx, common.CredentialSlotKey)
	if err != nil {
		s.logger.Error(ctx, "failed to erase credential slot", "reason", reason, "err", err)
	}
	s.setState(StatusAnonymous, nil, "")
	s.logger.Info(ctx, "session cleared", "reason", reason)
	return err
}

// Status returns the current resolution status.
func (s *Store) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

// User returns a copy of the current user, or nil when not authenticated.
func (s *Store) User() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user.Clone()
}

// Token returns the current in-memory credential, or "" when anonymous.
// The gateway reads this on every outbound call; it never reads the
// durable slot directly.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *Store) setState(status Status, user *models.User, token string) {
	s.mu.Lock()
	changed := s.status != status
	s.status = status
	s.user = user
	s.token = token
	fn := s.onChange
	s.mu.Unlock()

	if changed && fn != nil {
		fn(status)
	}
}
