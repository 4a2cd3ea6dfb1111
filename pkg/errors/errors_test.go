package errors

import (
	"errors"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeNotInstalled, "product not installed")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if err.Code != ErrCodeNotInstalled {
		t.Errorf("expected code %s, got %s", ErrCodeNotInstalled, err.Code)
	}
	if err.Message != "product not installed" {
		t.Errorf("expected message 'product not installed', got %s", err.Message)
	}
	if err.Cause != nil {
		t.Errorf("expected nil cause, got %v", err.Cause)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(ErrCodeTransport, "dispatch failed", cause)

	if err.Code != ErrCodeTransport {
		t.Errorf("expected code %s, got %s", ErrCodeTransport, err.Code)
	}
	if !errors.Is(err, cause) {
		t.Errorf("expected cause to be wrapped")
	}
}

func TestWrapWithContext(t *testing.T) {
	cause := errors.New("timeout")
	ctx := map[string]interface{}{
		"host": "node-1",
	}

	err := WrapWithContext(ErrCodeTimeout, "probe timed out", cause, ctx)

	if err.Code != ErrCodeTimeout {
		t.Errorf("expected code %s, got %s", ErrCodeTimeout, err.Code)
	}
	if err.Context == nil {
		t.Fatal("expected context to be set")
	}
	if err.Context["host"] != "node-1" {
		t.Errorf("expected host to be node-1")
	}
}

func TestError(t *testing.T) {
	tests := []struct {
		name     string
		err      *StructuredError
		expected string
	}{
		{
			name:     "error without cause",
			err:      New(ErrCodeNotFound, "not found"),
			expected: "[NOT_FOUND] not found",
		},
		{
			name:     "error with cause",
			err:      Wrap(ErrCodeInternal, "failed", errors.New("root cause")),
			expected: "[INTERNAL] failed: root cause",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.err.Error()
			if got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := Wrap(ErrCodeInternal, "wrapped", cause)

	if !errors.Is(err, cause) {
		t.Errorf("errors.Is should work with Unwrap")
	}
}

func TestCodeOf(t *testing.T) {
	err := New(ErrCodeUnreachable, "host unreachable")
	if CodeOf(err) != ErrCodeUnreachable {
		t.Errorf("expected %s, got %s", ErrCodeUnreachable, CodeOf(err))
	}

	// wrapped once more via %w
	if CodeOf(Wrap(ErrCodeTransport, "outer", err)) != ErrCodeTransport {
		t.Error("expected outermost code")
	}

	if CodeOf(errors.New("plain")) != ErrCodeInternal {
		t.Error("expected ErrCodeInternal for plain errors")
	}
}

func TestIsCode(t *testing.T) {
	err := New(ErrCodeAmbiguousInstall, "single entry found")
	if !IsCode(err, ErrCodeAmbiguousInstall) {
		t.Error("expected IsCode to match")
	}
	if IsCode(err, ErrCodeTransport) {
		t.Error("expected IsCode not to match a different code")
	}
	if IsCode(errors.New("plain"), ErrCodeTransport) {
		t.Error("expected IsCode false for plain errors")
	}
}
