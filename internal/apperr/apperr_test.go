package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestStatusMapping(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{Invalid("bad input"), http.StatusBadRequest},
		{Unauthorized("no token"), http.StatusUnauthorized},
		{NotFound("missing"), http.StatusNotFound},
		{Conflict("duplicate"), http.StatusConflict},
		{Internal("boom", errors.New("db down")), http.StatusInternalServerError},
		{errors.New("plain"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if got := Status(tc.err); got != tc.want {
			t.Errorf("Status(%v) = %d, want %d", tc.err, got, tc.want)
		}
	}
}

func TestKindOfWrapped(t *testing.T) {
	inner := NotFound("user not found")
	wrapped := fmt.Errorf("loading caller: %w", inner)

	if KindOf(wrapped) != KindNotFound {
		t.Errorf("KindOf(wrapped) = %v, want KindNotFound", KindOf(wrapped))
	}
	if !IsNotFound(wrapped) {
		t.Error("IsNotFound(wrapped) = false, want true")
	}
}

func TestClientMessage(t *testing.T) {
	if got := ClientMessage(NotFound("vehicle not found")); got != "vehicle not found" {
		t.Errorf("ClientMessage = %q", got)
	}
	if got := ClientMessage(Internal("query failed", errors.New("syntax error"))); got != "internal server error" {
		t.Errorf("internal ClientMessage = %q, leaked details", got)
	}
	if got := ClientMessage(errors.New("pq: relation missing")); got != "internal server error" {
		t.Errorf("untyped ClientMessage = %q, leaked details", got)
	}
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("connection reset")
	err := Wrap(KindInternal, "notify recipient", cause)

	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
	if err.Error() != "notify recipient: connection reset" {
		t.Errorf("Error() = %q", err.Error())
	}
}
