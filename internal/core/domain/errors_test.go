package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestError_IsMatchesKindNotCode(t *testing.T) {
	// Signup and signout share SGR-001 but are different failures.
	if errors.Is(ErrAlreadySignedOut, ErrDuplicateUsername) {
		t.Fatalf("AlreadySignedOut must not match DuplicateUsername")
	}
	if !errors.Is(ErrSignedOut.WithMessage("signed out, sign in to edit"), ErrSignedOut) {
		t.Fatalf("re-messaged error should still match its sentinel")
	}
}

func TestError_IsThroughWrapping(t *testing.T) {
	err := fmt.Errorf("edit answer: %w", ErrForbidden.WithMessage("Only the answer owner can edit the answer"))

	var de *Error
	if !errors.As(err, &de) {
		t.Fatalf("expected *Error in chain")
	}
	if de.Code != "ATHR-003" {
		t.Fatalf("unexpected code %s", de.Code)
	}
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden")
	}
}

func TestRole_Valid(t *testing.T) {
	for _, r := range []Role{RoleUser, RoleAdmin} {
		if !r.Valid() {
			t.Fatalf("%q should be valid", r)
		}
	}
	if Role("nonadmin").Valid() {
		t.Fatalf("free-text role must be rejected")
	}
}
