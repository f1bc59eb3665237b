package topology

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// ErrNotConfigured is returned when no API client is available.
var ErrNotConfigured = errors.New("Proxmox client not configured") //nolint:staticcheck // shown to users as is

// FatalFetchError aborts a build. Only the physical node list produces it.
type FatalFetchError struct {
	Call string
	Err  error
}

// Error implements the error interface.
func (e *FatalFetchError) Error() string {
	return fmt.Sprintf("%s: %v", e.Call, e.Err)
}

// Unwrap returns the underlying API error.
func (e *FatalFetchError) Unwrap() error {
	return e.Err
}

// attempt runs one best-effort API call. A failure is logged at lvl with the
// call name and attrs, and reported as ok=false with the zero value.
func attempt[T any](ctx context.Context, log *slog.Logger, lvl slog.Level, call string, fn func(context.Context) (T, error), attrs ...any) (T, bool) {
	v, err := fn(ctx)
	if err != nil {
		args := append([]any{"call", call, "error", err}, attrs...)
		log.Log(ctx, lvl, "degraded fetch, continuing without it", args...)
		var zero T
		return zero, false
	}
	return v, true
}
