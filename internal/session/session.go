// Package session owns the console's login state: an explicit state machine
// over a durable session cache. The upstream bearer token never leaves this
// package; route guards and handlers see the gateway session only.
package session

import (
	"errors"
	"time"

	"github.com/cajimenez96/gym-console/internal/models"
)

// State is the externally observable authentication state. Guards consult it
// and must never make a decision while the state is still settling.
type State int

const (
	// StateUninitialized means no session check has happened yet.
	StateUninitialized State = iota
	// StateLoading means a login or revalidation is in flight.
	StateLoading
	// StateAuthenticated means user and token are present and validated.
	StateAuthenticated
	// StateUnauthenticated means there is no valid session.
	StateUnauthenticated
	// StateError means the last operation failed with a surfaced message.
	StateError
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateLoading:
		return "loading"
	case StateAuthenticated:
		return "authenticated"
	case StateUnauthenticated:
		return "unauthenticated"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// Settled reports whether guards may act on this state.
func (s State) Settled() bool {
	return s == StateAuthenticated || s == StateUnauthenticated || s == StateError
}

// Session is one durable login record. Every tab and process sharing the
// store observes the same record, so a logout anywhere is a logout
// everywhere.
type Session struct {
	ID            string      `json:"id"`
	Token         string      `json:"token"`
	User          models.User `json:"user"`
	CreatedAt     time.Time   `json:"createdAt"`
	LastValidated time.Time   `json:"lastValidated"`
}

// Errors surfaced by the manager.
var (
	// ErrInvalidCredentials means the backend rejected the login.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrNotAuthenticated means no session exists or revalidation failed
	// and the durable record was cleared.
	ErrNotAuthenticated = errors.New("not authenticated")
)
