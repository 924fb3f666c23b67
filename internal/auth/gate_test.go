package auth

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestGatePlainSecret(t *testing.T) {
	g := NewGate("", "DEL2025BUS")

	if _, err := g.Authenticate("wrong"); err != ErrInvalidCredential {
		t.Fatalf("wrong secret: got %v, want ErrInvalidCredential", err)
	}
	sess, err := g.Authenticate("DEL2025BUS")
	if err != nil {
		t.Fatalf("correct secret rejected: %v", err)
	}
	if !sess.Privileged {
		t.Fatalf("successful authenticate should yield a privileged session")
	}
}

func TestGateHashedSecret(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	// A plain value is also set: the hash must win, so the plain value
	// alone must not unlock the gate.
	g := NewGate(string(hash), "s3cret-plain")

	if _, err := g.Authenticate("s3cret-plain"); err != ErrInvalidCredential {
		t.Fatalf("plain fallback used despite configured hash")
	}
	sess, err := g.Authenticate("s3cret")
	if err != nil {
		t.Fatalf("hashed secret rejected: %v", err)
	}
	if !sess.Privileged {
		t.Fatalf("session should be privileged")
	}
}

func TestGateEmptyInputs(t *testing.T) {
	if _, err := NewGate("", "x").Authenticate(""); err != ErrInvalidCredential {
		t.Fatalf("empty candidate accepted")
	}
	if _, err := NewGate("", "").Authenticate("anything"); err != ErrInvalidCredential {
		t.Fatalf("unconfigured gate accepted a secret")
	}
}

func TestFailedAuthenticateLeavesSessionUnprivileged(t *testing.T) {
	g := NewGate("", "DEL2025BUS")
	sess, _ := g.Authenticate("wrong")
	if sess.Privileged {
		t.Fatalf("failed authenticate must return an unprivileged session")
	}
}
