package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		appErr   *AppError
		expected string
	}{
		{
			name:     "without underlying error",
			appErr:   &AppError{Code: CodeNotFound, Message: "Property not found"},
			expected: "NOT_FOUND: Property not found",
		},
		{
			name: "with underlying error",
			appErr: &AppError{
				Code:    CodeInternal,
				Message: "internal error",
				Err:     errors.New("database connection failed"),
			},
			expected: "INTERNAL_ERROR: internal error (caused by: database connection failed)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.appErr.Error()
			if got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestWrap_Unwrap(t *testing.T) {
	originalErr := errors.New("original error")
	appErr := Wrap(originalErr, CodeInternal, "wrapped", http.StatusInternalServerError)

	if errors.Unwrap(appErr) != originalErr {
		t.Errorf("Unwrap() should return original error")
	}
	if appErr.StatusCode() != http.StatusInternalServerError {
		t.Errorf("StatusCode() = %d, want %d", appErr.StatusCode(), http.StatusInternalServerError)
	}
}

func TestNotFoundWithID(t *testing.T) {
	err := NotFoundWithID("Property", "abc")

	if err.Code != CodeNotFound {
		t.Errorf("expected code %s, got %s", CodeNotFound, err.Code)
	}
	if err.HTTPStatus != http.StatusNotFound {
		t.Errorf("expected status %d, got %d", http.StatusNotFound, err.HTTPStatus)
	}
	if err.Details["id"] != "abc" {
		t.Errorf("expected id 'abc', got %v", err.Details["id"])
	}
}

func TestValidation(t *testing.T) {
	err := Validation("Season rule validation failed", map[string]any{"field": "start"})

	if err.HTTPStatus != http.StatusUnprocessableEntity {
		t.Errorf("expected status %d, got %d", http.StatusUnprocessableEntity, err.HTTPStatus)
	}
	if err.Details["field"] != "start" {
		t.Errorf("expected field 'start', got %v", err.Details["field"])
	}
}

func TestApplyFailed(t *testing.T) {
	cause := errors.New("write timeout")
	err := ApplyFailed("p-1", cause)

	if err.Code != CodeApplyFailed {
		t.Errorf("expected code %s, got %s", CodeApplyFailed, err.Code)
	}
	if err.HTTPStatus != http.StatusBadGateway {
		t.Errorf("expected status %d, got %d", http.StatusBadGateway, err.HTTPStatus)
	}
	if err.Message != "could not apply price" {
		t.Errorf("unexpected message %q", err.Message)
	}
	if !errors.Is(err, cause) {
		t.Errorf("expected ApplyFailed to wrap its cause")
	}
}

func TestMissingTenant(t *testing.T) {
	err := MissingTenant("X-Tenant-ID")

	if err.HTTPStatus != http.StatusBadRequest {
		t.Errorf("expected status %d, got %d", http.StatusBadRequest, err.HTTPStatus)
	}
	if err.Message != "X-Tenant-ID header is required" {
		t.Errorf("unexpected message %q", err.Message)
	}
}

func TestAsAppError(t *testing.T) {
	original := Conflict("already applied")
	wrapped := fmt.Errorf("service: %w", original)

	if got := AsAppError(wrapped); got != original {
		t.Errorf("AsAppError should unwrap to the original AppError")
	}
	if !IsAppError(wrapped) {
		t.Errorf("IsAppError should see through wrapping")
	}

	plain := errors.New("boom")
	got := AsAppError(plain)
	if got.Code != CodeInternal {
		t.Errorf("expected code %s for plain error, got %s", CodeInternal, got.Code)
	}
	if IsAppError(plain) {
		t.Errorf("IsAppError(plain) should be false")
	}
}
