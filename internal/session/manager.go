package session

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/cajimenez96/gym-console/internal/lib/sl"
	"github.com/cajimenez96/gym-console/internal/models"
	"github.com/cajimenez96/gym-console/internal/upstream"
)

// AuthAPI is the slice of the backend the manager needs. Tests substitute a
// fake without touching the network or the store.
type AuthAPI interface {
	Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error)
	Logout(ctx context.Context, token string) error
	Me(ctx context.Context, token string) (*models.User, error)
}

// Manager drives the session state machine: login, revalidation and logout
// against the backend, with the durable record in the Store.
type Manager struct {
	auth       AuthAPI
	store      Store
	log        *slog.Logger
	revalidate time.Duration
	group      singleflight.Group
}

// NewManager creates a Manager. revalidate caps how long a persisted session
// is trusted before it is checked against the backend again.
func NewManager(auth AuthAPI, store Store, log *slog.Logger, revalidate time.Duration) *Manager {
	return &Manager{
		auth:       auth,
		store:      store,
		log:        log,
		revalidate: revalidate,
	}
}

// Login exchanges credentials for a backend token and persists a new session
// record. An upstream 401 surfaces as ErrInvalidCredentials.
func (m *Manager) Login(ctx context.Context, req models.LoginRequest) (*Session, error) {
	const op = "session.Login"

	resp, err := m.auth.Login(ctx, req)
	if err != nil {
		if upstream.IsUnauthorized(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	now := time.Now()
	s := &Session{
		ID:            uuid.NewString(),
		Token:         resp.Token,
		User:          resp.User,
		CreatedAt:     now,
		LastValidated: now,
	}
	if err := m.store.Save(ctx, s); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	m.log.Info("session created",
		slog.String("session_id", s.ID),
		slog.String("username", s.User.Username),
		slog.String("role", s.User.Role))
	return s, nil
}

// Validate loads the persisted session and, when the record is stale,
// revalidates the token against the backend. Any revalidation failure clears
// the durable record so no stale token is retained. Concurrent calls for the
// same session id coalesce into one flight; callers block until it settles.
func (m *Manager) Validate(ctx context.Context, sessionID string) (*Session, error) {
	v, err, _ := m.group.Do(sessionID, func() (any, error) {
		return m.validate(ctx, sessionID)
	})
	if err != nil {
		return nil, err
	}
	return v.(*Session), nil
}

func (m *Manager) validate(ctx context.Context, sessionID string) (*Session, error) {
	const op = "session.Validate"

	s, err := m.store.Load(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if s == nil {
		return nil, ErrNotAuthenticated
	}

	if time.Since(s.LastValidated) < m.revalidate {
		return s, nil
	}

	user, err := m.auth.Me(ctx, s.Token)
	if err != nil {
		m.log.Warn("session revalidation failed, clearing session",
			slog.String("session_id", sessionID), sl.Err(err))
		if delErr := m.store.Delete(ctx, sessionID); delErr != nil {
			m.log.Error("failed to clear stale session", sl.Err(delErr))
		}
		return nil, ErrNotAuthenticated
	}

	s.User = *user
	s.LastValidated = time.Now()
	if err := m.store.Save(ctx, s); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return s, nil
}

// Logout invalidates the token with the backend on a best-effort basis and
// always clears the durable record, so the user is never stuck logged in
// locally because the backend was unreachable.
func (m *Manager) Logout(ctx context.Context, sessionID string) error {
	const op = "session.Logout"

	s, err := m.store.Load(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if s != nil {
		if err := m.auth.Logout(ctx, s.Token); err != nil {
			m.log.Warn("backend logout failed, clearing local session anyway",
				slog.String("session_id", sessionID), sl.Err(err))
		}
	}
	if err := m.store.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	m.log.Info("session destroyed", slog.String("session_id", sessionID))
	return nil
}
