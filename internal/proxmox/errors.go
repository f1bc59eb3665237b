package proxmox

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is returned by New when the client cannot be built.
var ErrInvalidConfig = errors.New("invalid proxmox client configuration")

// RequestError is returned when the API answers with a non-2xx status.
type RequestError struct {
	Method     string
	Path       string
	StatusCode int
	Status     string
}

// Error implements the error interface.
func (e *RequestError) Error() string {
	return fmt.Sprintf("%s %s: %s", e.Method, e.Path, e.Status)
}
