package security

import (
	"errors"
	"testing"
)

func TestUnlockWithCorrectPIN(t *testing.T) {
	hash, err := HashPIN("1234")
	if err != nil {
		t.Fatalf("HashPIN failed: %v", err)
	}

	gate := NewParentGate("test-secret")
	token, err := gate.Unlock("1234", hash)
	if err != nil {
		t.Fatalf("Unlock failed: %v", err)
	}
	if token == "" {
		t.Fatal("expected a token")
	}

	if err := gate.Verify(token); err != nil {
		t.Errorf("Verify rejected a fresh token: %v", err)
	}
}

func TestUnlockRejectsWrongPIN(t *testing.T) {
	hash, err := HashPIN("1234")
	if err != nil {
		t.Fatalf("HashPIN failed: %v", err)
	}

	gate := NewParentGate("test-secret")
	if _, err := gate.Unlock("9999", hash); !errors.Is(err, ErrWrongPIN) {
		t.Errorf("expected ErrWrongPIN, got %v", err)
	}
}

func TestUnlockRejectsWhenNoPINConfigured(t *testing.T) {
	gate := NewParentGate("test-secret")
	if _, err := gate.Unlock("1234", ""); !errors.Is(err, ErrWrongPIN) {
		t.Errorf("expected ErrWrongPIN with empty hash, got %v", err)
	}
}

func TestVerifyRejectsGarbageAndForeignTokens(t *testing.T) {
	gate := NewParentGate("test-secret")

	if err := gate.Verify(""); err == nil {
		t.Error("expected error for empty token")
	}
	if err := gate.Verify("not.a.token"); err == nil {
		t.Error("expected error for malformed token")
	}

	// Token signed with a different secret
	hash, err := HashPIN("1234")
	if err != nil {
		t.Fatalf("HashPIN failed: %v", err)
	}
	other := NewParentGate("other-secret")
	foreign, err := other.Unlock("1234", hash)
	if err != nil {
		t.Fatalf("Unlock failed: %v", err)
	}
	if err := gate.Verify(foreign); err == nil {
		t.Error("expected error for token signed with another secret")
	}
}

func TestHashPINProducesDistinctHashes(t *testing.T) {
	first, err := HashPIN("1234")
	if err != nil {
		t.Fatalf("HashPIN failed: %v", err)
	}
	second, err := HashPIN("1234")
	if err != nil {
		t.Fatalf("HashPIN failed: %v", err)
	}
	if first == second {
		t.Error("bcrypt hashes should be salted and distinct")
	}
}
