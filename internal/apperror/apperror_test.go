package apperror

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"validation", NewValidation("bad input"), KindValidation},
		{"transient", NewTransient("db down", errors.New("timeout")), KindTransient},
		{"capacity", NewCapacity("quota exceeded"), KindCapacity},
		{"not found", NewNotFound("missing"), KindNotFound},
		{"wrapped transient", fmt.Errorf("outer: %w", NewTransient("inner", nil)), KindTransient},
		{"plain error", errors.New("plain"), Kind("")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := KindOf(tt.err)
			if got != tt.want {
				t.Errorf("KindOf = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPredicates(t *testing.T) {
	if !IsValidation(NewValidation("x")) {
		t.Error("IsValidation failed")
	}
	if !IsTransient(NewTransient("x", nil)) {
		t.Error("IsTransient failed")
	}
	if !IsCapacity(NewCapacity("x")) {
		t.Error("IsCapacity failed")
	}
	if !IsNotFound(NewNotFound("x")) {
		t.Error("IsNotFound failed")
	}
	if IsNotFound(NewValidation("x")) {
		t.Error("IsNotFound matched a validation error")
	}
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewTransient("store unavailable", cause)

	if !errors.Is(err, cause) {
		t.Error("wrapped cause not reachable via errors.Is")
	}
}
