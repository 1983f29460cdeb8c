package shared

import (
	"errors"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestAPIError_ToHTTP(t *testing.T) {
	apiErr := NewAPIError("test_code", "test message")
	httpErr := apiErr.ToHTTP(http.StatusBadRequest)

	if httpErr.Code != http.StatusBadRequest {
		t.Errorf("expected status %d, got %d", http.StatusBadRequest, httpErr.Code)
	}

	body, ok := httpErr.Message.(*APIError)
	if !ok {
		t.Fatalf("expected *APIError message, got %T", httpErr.Message)
	}
	if body.Code != "test_code" {
		t.Errorf("expected code 'test_code', got '%s'", body.Code)
	}
}

func TestAPIError_WithDetails(t *testing.T) {
	apiErr := NewAPIError("validation_failed", "bad input").WithDetails(map[string]string{
		"email": "already registered",
	})

	details, ok := apiErr.Details.(map[string]string)
	if !ok {
		t.Fatalf("expected map details, got %T", apiErr.Details)
	}
	if details["email"] != "already registered" {
		t.Errorf("unexpected details: %v", details)
	}
}

func TestHelpers_StatusCodes(t *testing.T) {
	tests := []struct {
		name string
		fn   func(string, string) *echo.HTTPError
		want int
	}{
		{"bad request", BadRequest, http.StatusBadRequest},
		{"unauthorized", Unauthorized, http.StatusUnauthorized},
		{"forbidden", Forbidden, http.StatusForbidden},
		{"not found", NotFound, http.StatusNotFound},
		{"conflict", Conflict, http.StatusConflict},
		{"internal", InternalError, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.fn("code", "message")
			if err.Code != tt.want {
				t.Errorf("expected status %d, got %d", tt.want, err.Code)
			}
		})
	}
}

func TestConflictError_Unwraps(t *testing.T) {
	err := &ConflictError{Field: "email"}
	if !errors.Is(err, ErrConflict) {
		t.Error("ConflictError should match ErrConflict")
	}
	if err.Field != "email" {
		t.Errorf("expected field 'email', got '%s'", err.Field)
	}
}

func TestNewID(t *testing.T) {
	id1 := NewID("user_")
	id2 := NewID("user_")

	if id1 == id2 {
		t.Error("ids should be unique")
	}
	if len(id1) != len("user_")+32 {
		t.Errorf("unexpected id length: %d", len(id1))
	}
}

func TestProvider_Valid(t *testing.T) {
	if !ProviderGitHub.Valid() || !ProviderCredentials.Valid() {
		t.Error("known providers should be valid")
	}
	if Provider("gitlab").Valid() {
		t.Error("unknown provider should be invalid")
	}
}
