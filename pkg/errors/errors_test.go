// pkg/errors/errors_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test error creation, wrapping, and classification

package errors_test

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/arthur-debert/toolstrap/pkg/errors"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    errors.ErrorCode
		message string
		wantStr string
	}{
		{
			name:    "platform_error",
			code:    errors.ErrPlatform,
			message: "unsupported host",
			wantStr: "[PLATFORM] unsupported host",
		},
		{
			name:    "invalid_input_error",
			code:    errors.ErrInvalidInput,
			message: "line has no key",
			wantStr: "[INVALID_INPUT] line has no key",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := errors.New(tt.code, tt.message)

			if err.Code != tt.code {
				t.Errorf("New() code = %v, want %v", err.Code, tt.code)
			}

			if err.Details == nil {
				t.Error("New() details should be initialized")
			}

			if got := err.Error(); got != tt.wantStr {
				t.Errorf("Error() = %q, want %q", got, tt.wantStr)
			}
		})
	}
}

func TestWrap(t *testing.T) {
	baseErr := stderrors.New("exit status 128")

	t.Run("wrap_non_nil_error", func(t *testing.T) {
		err := errors.Wrap(baseErr, errors.ErrClone, "clone failed")

		if err.Wrapped != baseErr {
			t.Error("Wrap() should preserve wrapped error")
		}

		wantStr := "[CLONE] clone failed: exit status 128"
		if got := err.Error(); got != wantStr {
			t.Errorf("Error() = %q, want %q", got, wantStr)
		}
	})

	t.Run("wrap_nil_error_returns_nil", func(t *testing.T) {
		err := errors.Wrap(nil, errors.ErrClone, "clone failed")
		if err != nil {
			t.Error("Wrap(nil) should return nil")
		}
	})

	t.Run("wrapf_formats_message", func(t *testing.T) {
		err := errors.Wrapf(baseErr, errors.ErrRefresh, "cannot refresh %s", "/tmp/brew")
		if err.Message != "cannot refresh /tmp/brew" {
			t.Errorf("Wrapf() message = %q", err.Message)
		}
	})
}

func TestWithDetail(t *testing.T) {
	err := errors.New(errors.ErrFileWrite, "cannot append").
		WithDetail("path", "/home/u/.Renviron").
		WithDetail("key", "CC=")

	if err.Details["path"] != "/home/u/.Renviron" {
		t.Errorf("WithDetail() path = %v", err.Details["path"])
	}
	if got := errors.GetErrorDetails(err)["key"]; got != "CC=" {
		t.Errorf("GetErrorDetails() key = %v", got)
	}
}

func TestIs(t *testing.T) {
	err1 := errors.New(errors.ErrShellenv, "error 1")
	err2 := errors.New(errors.ErrShellenv, "error 2")
	err3 := errors.New(errors.ErrInternal, "error 3")

	if !stderrors.Is(err1, err2) {
		t.Error("errors.Is() should match on code")
	}
	if err1.Is(err3) {
		t.Error("Is() should return false for different codes")
	}
}

func TestIsErrorCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     errors.ErrorCode
		expected bool
	}{
		{"matching_code", errors.New(errors.ErrClone, "x"), errors.ErrClone, true},
		{"different_code", errors.New(errors.ErrClone, "x"), errors.ErrRefresh, false},
		{"wrapped_by_fmt", fmt.Errorf("outer: %w", errors.New(errors.ErrClone, "x")), errors.ErrClone, true},
		{"standard_error", stderrors.New("plain"), errors.ErrClone, false},
		{"nil_error", nil, errors.ErrClone, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := errors.IsErrorCode(tt.err, tt.code); got != tt.expected {
				t.Errorf("IsErrorCode() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetErrorCode(t *testing.T) {
	if got := errors.GetErrorCode(stderrors.New("plain")); got != errors.ErrUnknown {
		t.Errorf("GetErrorCode() = %v, want UNKNOWN", got)
	}
	if got := errors.GetErrorCode(nil); got != errors.ErrUnknown {
		t.Errorf("GetErrorCode(nil) = %v, want UNKNOWN", got)
	}
}

func TestIsAdvisory(t *testing.T) {
	tests := []struct {
		code     errors.ErrorCode
		advisory bool
	}{
		{errors.ErrRefresh, true},
		{errors.ErrPackageInstall, true},
		{errors.ErrDiagnostic, true},
		{errors.ErrPlatform, false},
		{errors.ErrShellenv, false},
		{errors.ErrClone, false},
		{errors.ErrFileWrite, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			if got := errors.IsAdvisory(errors.New(tt.code, "x")); got != tt.advisory {
				t.Errorf("IsAdvisory(%s) = %v, want %v", tt.code, got, tt.advisory)
			}
		})
	}

	if errors.IsAdvisory(nil) {
		t.Error("IsAdvisory(nil) should be false")
	}
	if errors.IsAdvisory(stderrors.New("plain")) {
		t.Error("plain errors are never advisory")
	}
}
