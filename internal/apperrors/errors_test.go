package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", Validation("bad %s", "name"), http.StatusBadRequest},
		{"not found", NotFound("city %q not found", "X"), http.StatusNotFound},
		{"upstream", Upstream(errors.New("dial tcp"), "weather provider unavailable"), http.StatusBadGateway},
		{"wrapped validation", fmt.Errorf("create city: %w", Validation("bad")), http.StatusBadRequest},
		{"plain", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HTTPStatus(tt.err); got != tt.want {
				t.Fatalf("HTTPStatus=%d want=%d", got, tt.want)
			}
		})
	}
}

func TestUpstreamUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := Upstream(cause, "weather provider unavailable")
	if !errors.Is(err, cause) {
		t.Fatalf("expected errors.Is to find the cause")
	}
	if got, want := err.Error(), "weather provider unavailable: connection refused"; got != want {
		t.Fatalf("Error()=%q want=%q", got, want)
	}
}

func TestPublicMessage(t *testing.T) {
	if got := PublicMessage(errors.New("pq: password authentication failed")); got != "internal error" {
		t.Fatalf("PublicMessage leaked internal error: %q", got)
	}
	if got := PublicMessage(NotFound("user not found")); got != "user not found" {
		t.Fatalf("PublicMessage=%q want=%q", got, "user not found")
	}
}
