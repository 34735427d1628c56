package apperrors

import (
	"errors"
	"fmt"
	"testing"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name   string
		err    *Error
		status int
		code   string
	}{
		{"unsupported media type", UnsupportedMediaType("bad type"), 415, CodeUnsupportedMediaType},
		{"not found", NotFound("no such file"), 404, CodeNotFound},
		{"storage io", StorageIO("disk failed", errors.New("enospc")), 500, CodeStorageIO},
		{"storage", Storage("db failed", errors.New("conn refused")), 500, CodeStorage},
	}

	for _, tt := range tests {
		if tt.err.Status != tt.status {
			t.Errorf("%s: status = %d, expected %d", tt.name, tt.err.Status, tt.status)
		}
		if tt.err.Code != tt.code {
			t.Errorf("%s: code = %q, expected %q", tt.name, tt.err.Code, tt.code)
		}
	}
}

func TestErrorMessageIncludesCause(t *testing.T) {
	err := StorageIO("disk failed", errors.New("permission denied"))
	if err.Error() != "disk failed: permission denied" {
		t.Errorf("Error() = %q", err.Error())
	}

	plain := NotFound("File not found")
	if plain.Error() != "File not found" {
		t.Errorf("Error() = %q", plain.Error())
	}
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("pool exhausted")
	err := Storage("db failed", cause)

	if !errors.Is(err, cause) {
		t.Error("errors.Is should see the wrapped cause")
	}

	wrapped := fmt.Errorf("handler: %w", err)
	var appErr *Error
	if !errors.As(wrapped, &appErr) {
		t.Fatal("errors.As should find *Error through wrapping")
	}
	if appErr.Code != CodeStorage {
		t.Errorf("code = %q, expected %q", appErr.Code, CodeStorage)
	}
}

func TestFrom(t *testing.T) {
	original := NotFound("File not found")
	if got := From(fmt.Errorf("wrap: %w", original)); got != original {
		t.Errorf("From should return the original *Error, got %v", got)
	}

	generic := From(errors.New("boom"))
	if generic.Code != CodeStorage || generic.Status != 500 {
		t.Errorf("From(plain error) = %+v, expected generic storage error", generic)
	}
}
