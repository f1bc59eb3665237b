package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"evalgo.org/pvegraph/internal/proxmox"
	"evalgo.org/pvegraph/internal/topology"
)

// APIError represents a structured API error with HTTP status code. The
// message is rendered under "error", the key the front end reads.
type APIError struct {
	Code       int                    `json:"code"`
	Message    string                 `json:"error"`
	Details    string                 `json:"details,omitempty"`
	FieldError map[string]string      `json:"field_errors,omitempty"`
	Context    map[string]interface{} `json:"context,omitempty"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Message, e.Details)
	}
	return e.Message
}

// NewAPIError creates a new API error.
func NewAPIError(code int, message string, details string) *APIError {
	return &APIError{
		Code:    code,
		Message: message,
		Details: details,
	}
}

// Common error constructors
func BadRequestError(message, details string) *APIError {
	return NewAPIError(http.StatusBadRequest, message, details)
}

func ValidationError(message string, fieldErrors map[string]string) *APIError {
	return &APIError{
		Code:       http.StatusBadRequest,
		Message:    message,
		FieldError: fieldErrors,
	}
}

func InternalError(message, details string) *APIError {
	return NewAPIError(http.StatusInternalServerError, message, details)
}

// NotConfiguredError is returned by every Proxmox backed route while the
// server runs without valid credentials.
func NotConfiguredError() *APIError {
	return NewAPIError(http.StatusInternalServerError, topology.ErrNotConfigured.Error(), "")
}

// UpstreamError reports a failed Proxmox API call. The underlying message
// is passed through.
func UpstreamError(err error) *APIError {
	apiErr := NewAPIError(http.StatusBadGateway, err.Error(), "")

	var reqErr *proxmox.RequestError
	if errors.As(err, &reqErr) {
		apiErr.Context = map[string]interface{}{
			"upstream_status": reqErr.StatusCode,
			"path":            reqErr.Path,
		}
	}
	return apiErr
}

// fromProxmoxError maps an error of the Proxmox client or the topology
// builder to the response sent to the caller.
func fromProxmoxError(err error) *APIError {
	var apiErr *APIError
	switch {
	case errors.As(err, &apiErr):
		return apiErr
	case errors.Is(err, topology.ErrNotConfigured):
		return NotConfiguredError()
	default:
		return UpstreamError(err)
	}
}

// HTTPErrorHandler is a custom error handler for Echo.
func HTTPErrorHandler(err error, c echo.Context) {
	// Don't send response if already sent
	if c.Response().Committed {
		return
	}

	var apiErr *APIError
	code := http.StatusInternalServerError

	var he *echo.HTTPError
	switch {
	case errors.As(err, &he):
		code = he.Code
		apiErr = &APIError{
			Code:    code,
			Message: getHTTPMessage(code),
			Details: fmt.Sprintf("%v", he.Message),
		}
	case errors.As(err, &apiErr):
		code = apiErr.Code
		// copy so the redaction below never touches a shared value
		cp := *apiErr
		apiErr = &cp
	default:
		apiErr = &APIError{
			Code:    code,
			Message: "Internal server error",
			Details: err.Error(),
		}
	}

	// Don't expose internal errors in production
	if code == http.StatusInternalServerError && apiErr.Details != "" && !c.Echo().Debug {
		apiErr.Details = "An internal error occurred. Please try again later."
	}

	if err := c.JSON(code, apiErr); err != nil {
		c.Logger().Error(err)
	}
}

// getHTTPMessage returns a user-friendly message for HTTP status codes.
func getHTTPMessage(code int) string {
	messages := map[int]string{
		http.StatusBadRequest:          "Bad request",
		http.StatusNotFound:            "Resource not found",
		http.StatusMethodNotAllowed:    "Method not allowed",
		http.StatusNotAcceptable:       "Not acceptable",
		http.StatusTooManyRequests:     "Too many requests",
		http.StatusInternalServerError: "Internal server error",
		http.StatusBadGateway:          "Bad gateway",
		http.StatusServiceUnavailable:  "Service unavailable",
	}

	if msg, ok := messages[code]; ok {
		return msg
	}
	return http.StatusText(code)
}
