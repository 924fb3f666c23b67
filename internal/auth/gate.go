// Package auth implements the shared-credential access gate.  There is
// exactly one privileged role, shared by all operators; presenting the
// correct secret yields a privileged Session.  The session is an
// explicit value threaded through service calls rather than ambient
// global state, so tests can construct privileged and unprivileged
// sessions directly.
package auth

import (
	"crypto/subtle"
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredential is returned when the presented secret does not
// match the configured one.  The caller's session is left unchanged.
var ErrInvalidCredential = errors.New("invalid credential")

// Session carries the caller's capability set through service calls.
// A zero Session is unprivileged.  Sessions are never persisted; over
// HTTP they are reconstructed per request from the admin token.
type Session struct {
	Privileged bool
}

// Admin returns a privileged session.  Intended for the login flow and
// for tests.
func Admin() Session { return Session{Privileged: true} }

// Gate validates the shared admin secret.  Exactly one of hash or
// plain is consulted: when a bcrypt hash is configured it wins, and
// the plain secret is only a fallback for deployments that have not
// hashed their credential yet.  Both paths compare in constant time.
type Gate struct {
	hash  string // bcrypt hash of the shared secret, may be empty
	plain string // plain shared secret, used only when hash is empty
}

// NewGate builds a Gate from the configured credential.  hash takes
// precedence over plain when both are set.
func NewGate(hash, plain string) *Gate {
	return &Gate{hash: hash, plain: plain}
}

// Authenticate checks a candidate secret.  On success it returns a
// privileged Session; on failure it returns ErrInvalidCredential and
// the zero Session.
func (g *Gate) Authenticate(candidate string) (Session, error) {
	if candidate == "" {
		return Session{}, ErrInvalidCredential
	}
	if g.hash != "" {
		if bcrypt.CompareHashAndPassword([]byte(g.hash), []byte(candidate)) != nil {
			return Session{}, ErrInvalidCredential
		}
		return Admin(), nil
	}
	if g.plain == "" {
		// No credential configured: nobody gets in.
		return Session{}, ErrInvalidCredential
	}
	if subtle.ConstantTimeCompare([]byte(g.plain), []byte(candidate)) != 1 {
		return Session{}, ErrInvalidCredential
	}
	return Admin(), nil
}
