package platformerrors

import (
	"context"
	"errors"
	"net/http"
	"testing"
)

func TestNewError(t *testing.T) {
	ctx := context.WithValue(context.Background(), requestIDKey, "req-123") //nolint:staticcheck // key matches middleware
	cause := errors.New("connection refused")

	err := NewError(ctx, LayerRepository, ErrorTypeDatabaseError, "failed to insert media", cause, "a1b2c3d4")

	if err.GetUUID() != "a1b2c3d4" {
		t.Errorf("UUID = %q, want custom reference code", err.GetUUID())
	}
	if err.GetRequestID() != "req-123" {
		t.Errorf("RequestID = %q, want req-123", err.GetRequestID())
	}
	if !errors.Is(err, cause) {
		t.Error("expected the cause to be in the error chain")
	}
}

func TestNewError_GeneratesUUID(t *testing.T) {
	err := NewError(context.Background(), LayerDomain, ErrorTypeInternal, "boom", nil, "")
	if err.GetUUID() == "" {
		t.Error("expected a generated reference code")
	}
}

func TestAsError_PreservesTypeAndCode(t *testing.T) {
	ctx := context.Background()
	inner := NewError(ctx, LayerRepository, ErrorTypeConflict, "duplicate key", nil, "dup-001")

	wrapped := AsError(ctx, LayerDomain, inner, "registration failed")
	if wrapped.Type != ErrorTypeConflict {
		t.Errorf("Type = %q, want inner type preserved", wrapped.Type)
	}
	if wrapped.UUID != "dup-001" {
		t.Errorf("UUID = %q, want inner reference code preserved", wrapped.UUID)
	}

	plain := AsError(ctx, LayerDomain, errors.New("boom"), "oops")
	if plain.Type != ErrorTypeInternal {
		t.Errorf("Type = %q, want INTERNAL for plain errors", plain.Type)
	}

	if AsError(ctx, LayerDomain, nil, "noop") != nil {
		t.Error("AsError(nil) should be nil")
	}
}

func TestErrorTypeToHTTPStatus(t *testing.T) {
	tests := []struct {
		errorType ErrorType
		want      int
	}{
		{ErrorTypeNotFound, http.StatusNotFound},
		{ErrorTypeValidation, http.StatusBadRequest},
		{ErrorTypeConflict, http.StatusConflict},
		{ErrorTypeUnauthorized, http.StatusUnauthorized},
		{ErrorTypeForbidden, http.StatusForbidden},
		{ErrorTypeUnavailable, http.StatusServiceUnavailable},
		{ErrorTypeExternal, http.StatusUnprocessableEntity},
		{ErrorTypeDatabaseError, http.StatusInternalServerError},
		{ErrorTypeInternal, http.StatusInternalServerError},
		{ErrorType("unknown"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		if got := ErrorTypeToHTTPStatus(tt.errorType); got != tt.want {
			t.Errorf("ErrorTypeToHTTPStatus(%q) = %d, want %d", tt.errorType, got, tt.want)
		}
	}
}
