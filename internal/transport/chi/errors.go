package chi

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/kailas-cloud/learnhub/internal/domain"
	"github.com/kailas-cloud/learnhub/internal/logger"
)

// ErrorCode is the stable machine-readable error code in every error response.
type ErrorCode string

// Error codes.
const (
	CodeBadRequest          ErrorCode = "bad_request"
	CodeValidationFailed    ErrorCode = "validation_failed"
	CodeInvalidScale        ErrorCode = "invalid_scale"
	CodeNotFound            ErrorCode = "not_found"
	CodeUnauthorized        ErrorCode = "unauthorized"
	CodeSessionExpired      ErrorCode = "session_expired"
	CodeMissingCredentials  ErrorCode = "missing_credentials"
	CodeInvalidCredentials  ErrorCode = "invalid_credentials"
	CodeOAuthUnsupported    ErrorCode = "oauth_unsupported"
	CodeOAuthStateMismatch  ErrorCode = "oauth_state_mismatch"
	CodeTooManyRequests     ErrorCode = "too_many_requests"
	CodeProviderUnavailable ErrorCode = "provider_unavailable"
	CodeInternalError       ErrorCode = "internal_error"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// clientMessages are the texts shown for sentinel errors. Anything else is "internal error".
var clientMessages = []struct {
	sentinel error
	message  string
}{
	{domain.ErrMissingCredentials, "Please fill in all fields"},
	{domain.ErrInvalidCredentials, "Invalid email or password"},
	{domain.ErrSessionExpired, "Your session has expired. Please sign in again."},
	{domain.ErrUnauthorized, "Sign in required"},
	{domain.ErrOAuthUnsupported, domain.ErrOAuthUnsupported.Error()},
	{domain.ErrOAuthStateMismatch, "Sign-in link expired or already used. Please try again."},
	{domain.ErrTooManyAttempts, "Too many sign-in attempts. Please try again later."},
	{domain.ErrProviderUnavailable, "Sign-in is temporarily unavailable"},
	{domain.ErrInvalidScale, "scale must be a positive number"},
	{domain.ErrInvalidInput, domain.ErrInvalidInput.Error()},
	{domain.ErrNotFound, domain.ErrNotFound.Error()},
}

// defaultErrorHandlers is the ordered chain used by handleDomainError.
func defaultErrorHandlers() []errorHandler {
	return []errorHandler{
		providerMessageHandler,
		sentinelHandler(domain.ErrMissingCredentials, http.StatusBadRequest, CodeMissingCredentials),
		sentinelHandler(domain.ErrInvalidCredentials, http.StatusUnauthorized, CodeInvalidCredentials),
		sentinelHandler(domain.ErrSessionExpired, http.StatusUnauthorized, CodeSessionExpired),
		sentinelHandler(domain.ErrUnauthorized, http.StatusUnauthorized, CodeUnauthorized),
		sentinelHandler(domain.ErrOAuthUnsupported, http.StatusNotImplemented, CodeOAuthUnsupported),
		sentinelHandler(domain.ErrOAuthStateMismatch, http.StatusBadRequest, CodeOAuthStateMismatch),
		sentinelHandler(domain.ErrTooManyAttempts, http.StatusTooManyRequests, CodeTooManyRequests),
		sentinelHandler(domain.ErrProviderUnavailable, http.StatusBadGateway, CodeProviderUnavailable),
		sentinelHandler(domain.ErrInvalidScale, http.StatusBadRequest, CodeInvalidScale),
		sentinelHandler(domain.ErrInvalidInput, http.StatusBadRequest, CodeValidationFailed),
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound, CodeNotFound),
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorCode, message string) {
	writeJSON(w, status, ErrorResponse{Code: code, Message: message})
}

// safeDomainMessage returns a client message for a sentinel error without exposing internals.
func safeDomainMessage(err error) string {
	for _, m := range clientMessages {
		if errors.Is(err, m.sentinel) {
			return m.message
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code ErrorCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

// providerMessageHandler surfaces the message an identity provider attached to a rejection.
func providerMessageHandler(w http.ResponseWriter, err error, _ string) bool {
	var pe *domain.ProviderError
	if !errors.As(err, &pe) || pe.Message == "" {
		return false
	}
	status, code := http.StatusUnauthorized, CodeInvalidCredentials
	if errors.Is(err, domain.ErrProviderUnavailable) {
		status, code = http.StatusBadGateway, CodeProviderUnavailable
	}
	writeError(w, status, code, pe.Message)
	return true
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromContext(r.Context())
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			log.Warn("domain error", zap.Error(err))
			return
		}
	}
	log.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, CodeInternalError, "internal error")
}
