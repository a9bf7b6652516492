package responses

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domain "media-registry/internal/domain/registry"
	"media-registry/internal/utils/platformerrors"
)

// ErrorResponse represents an error response body.
type ErrorResponse struct {
	Code      string `json:"code,omitempty"` // reference code from PlatformError
	Kind      string `json:"kind,omitempty"` // registry rejection kind
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

// kindToHTTPStatus maps registry rejection kinds to HTTP status codes.
func kindToHTTPStatus(kind domain.Kind) int {
	switch kind {
	case domain.KindPaused:
		return http.StatusServiceUnavailable
	case domain.KindUnauthorized:
		return http.StatusUnauthorized
	case domain.KindForbidden:
		return http.StatusForbidden
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindDuplicatePrimary:
		return http.StatusConflict
	case domain.KindLimitExceeded, domain.KindInvalidReference:
		return http.StatusBadRequest
	case domain.KindOriginTokenNotFound:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// HandleError maps domain and platform errors to HTTP responses.
func HandleError(reqCtx *gin.Context, err error, message string) {
	var regErr *domain.Error
	if errors.As(err, &regErr) {
		reqCtx.AbortWithStatusJSON(kindToHTTPStatus(regErr.Kind), ErrorResponse{
			Kind:  string(regErr.Kind),
			Error: regErr.Message,
		})
		return
	}

	if errors.Is(err, domain.ErrAlreadyPaused) || errors.Is(err, domain.ErrNotPaused) {
		reqCtx.AbortWithStatusJSON(http.StatusConflict, ErrorResponse{
			Error: err.Error(),
		})
		return
	}

	var platformErr *platformerrors.PlatformError
	if errors.As(err, &platformErr) {
		statusCode := platformerrors.ErrorTypeToHTTPStatus(platformErr.GetErrorType())
		errorMessage := platformErr.Message
		if errorMessage == "" {
			errorMessage = message
		}
		reqCtx.AbortWithStatusJSON(statusCode, ErrorResponse{
			Code:      platformErr.GetUUID(),
			Error:     errorMessage,
			RequestID: platformErr.GetRequestID(),
		})
		return
	}

	reqCtx.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{
		Error: message,
	})
}

// HandleBindError reports a malformed request body.
func HandleBindError(reqCtx *gin.Context, err error) {
	reqCtx.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{
		Error: err.Error(),
	})
}
