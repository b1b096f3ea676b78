package errkind

import (
	"errors"
	"testing"
)

func TestNegotiationErrorWrapsCause(t *testing.T) {
	cause := errors.New("boom")
	err := New(RoundingDrift, true, cause, "vendor %s round %d", "vnd-1", 3)

	if !errors.Is(err, cause) {
		t.Fatal("expected errors.Is to unwrap to cause")
	}
	var ne *NegotiationError
	if !errors.As(err, &ne) {
		t.Fatal("expected errors.As to match *NegotiationError")
	}
	if ne.Kind != RoundingDrift {
		t.Fatalf("kind = %v, want %v", ne.Kind, RoundingDrift)
	}
	if !ne.Blocking {
		t.Fatal("expected Blocking to be true")
	}
	if ne.Message != "vendor vnd-1 round 3" {
		t.Fatalf("message = %q", ne.Message)
	}
}

func TestNegotiationErrorWithoutCause(t *testing.T) {
	err := New(Validation, false, nil, "missing field %s", "currency")
	if err.Unwrap() != nil {
		t.Fatal("expected nil Unwrap with no cause")
	}
	want := "validation: missing field currency"
	if err.Error() != want {
		t.Fatalf("Error() = %q, want %q", err.Error(), want)
	}
}
