package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		want string
	}{
		{
			name: "without cause",
			err:  &AppError{Code: ErrCodeNotFound, Message: "user not found"},
			want: "user not found",
		},
		{
			name: "with cause",
			err:  &AppError{Code: ErrCodeUnavailable, Message: "directory unavailable", Cause: errors.New("dial tcp: refused")},
			want: "directory unavailable: dial tcp: refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("AppError.Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		code ErrorCode
		msg  string
	}{
		{"not found", NotFound("missing"), ErrCodeNotFound, "missing"},
		{"not found formatted", NotFoundf("user %s missing", "u1"), ErrCodeNotFound, "user u1 missing"},
		{"conflict", Conflict("dup"), ErrCodeConflict, "dup"},
		{"validation", Validation("bad"), ErrCodeValidation, "bad"},
		{"validation formatted", Validationf("role %q invalid", "x"), ErrCodeValidation, `role "x" invalid`},
		{"validation literal percent", Validation("100% wrong"), ErrCodeValidation, "100% wrong"},
		{"unavailable", Unavailable("down"), ErrCodeUnavailable, "down"},
		{"internal", Internal("boom"), ErrCodeInternal, "boom"},
		{"not found literal verb", NotFound("path %s/data"), ErrCodeNotFound, "path %s/data"},
		{"conflict literal verb", Conflict("email %d taken"), ErrCodeConflict, "email %d taken"},
		{"unavailable literal percent", Unavailable("50%% done"), ErrCodeUnavailable, "50%% done"},
		{"internal literal verb", Internal("%v"), ErrCodeInternal, "%v"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.code {
				t.Errorf("Code = %v, want %v", tt.err.Code, tt.code)
			}
			if tt.err.Message != tt.msg {
				t.Errorf("Message = %q, want %q", tt.err.Message, tt.msg)
			}
		})
	}
}

func TestValidationField(t *testing.T) {
	err := ValidationField("email", "email is required")
	if err.Message != "email is required" {
		t.Errorf("Message = %q", err.Message)
	}
	if got := GetField(err); got != "email" {
		t.Errorf("GetField() = %q, want %q", got, "email")
	}
	if !IsValidation(err) {
		t.Errorf("IsValidation() = false, want true")
	}
}

func TestWrap(t *testing.T) {
	if Wrap(nil, ErrCodeInternal, "ignored") != nil {
		t.Fatal("Wrap(nil) should return nil")
	}

	cause := errors.New("connection reset")
	err := Wrapf(cause, ErrCodeUnavailable, "fetch %s", "users.json")
	if !errors.Is(err, cause) {
		t.Errorf("wrapped error does not match cause")
	}
	if err.Message != "fetch users.json" {
		t.Errorf("Message = %q", err.Message)
	}
}

func TestIsHelpersThroughWrapping(t *testing.T) {
	base := Unavailable("directory unavailable")
	wrapped := fmt.Errorf("sign in: %w", base)

	if !IsUnavailable(wrapped) {
		t.Errorf("IsUnavailable() = false through fmt wrapping")
	}
	if IsNotFound(wrapped) {
		t.Errorf("IsNotFound() = true, want false")
	}
	if got := GetCode(wrapped); got != ErrCodeUnavailable {
		t.Errorf("GetCode() = %v", got)
	}
	if got := GetCode(errors.New("plain")); got != "" {
		t.Errorf("GetCode(plain) = %v, want empty", got)
	}
}
