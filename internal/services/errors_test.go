package services_test

import (
	"errors"
	"strings"
	"testing"

	"pagemark/internal/services"
)

func TestWrapIncludesContext(t *testing.T) {
	base := errors.New("boom")
	err := services.Wrap(services.ErrProvider, "tagging", "complete", "request failed", base)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, services.ErrProvider) {
		t.Fatalf("expected marker to be retained, got %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped error to contain base error, got %v", err)
	}
	msg := err.Error()
	for _, fragment := range []string{"tagging", "complete", "request failed"} {
		if !strings.Contains(msg, fragment) {
			t.Fatalf("expected %q in error string %q", fragment, msg)
		}
	}
}

func TestWrapDefaultsMarker(t *testing.T) {
	err := services.Wrap(nil, "tagging", "attach", "", nil)
	if !errors.Is(err, services.ErrTransient) {
		t.Fatalf("expected transient marker for nil marker, got %v", err)
	}
}

func TestIsTerminal(t *testing.T) {
	if !services.IsTerminal(services.Wrap(services.ErrValidation, "tagging", "prepare", "empty content", nil)) {
		t.Fatal("expected validation error to be terminal")
	}
	if !services.IsTerminal(services.Wrap(services.ErrNotFound, "tagging", "load", "missing bookmark", nil)) {
		t.Fatal("expected not-found error to be terminal")
	}
	if services.IsTerminal(services.Wrap(services.ErrProvider, "tagging", "complete", "http 500", nil)) {
		t.Fatal("provider errors should be retryable")
	}
	if services.IsTerminal(nil) {
		t.Fatal("nil error is not terminal")
	}
}
