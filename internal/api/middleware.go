package api

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"evalgo.org/pvegraph/internal/logging"
	"evalgo.org/pvegraph/internal/validation"
)

// ValidateAcceptHeader middleware ensures that clients can accept JSON responses
func ValidateAcceptHeader(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		accept := c.Request().Header.Get("Accept")

		// If no Accept header, assume */*
		if accept == "" {
			return next(c)
		}

		if !strings.Contains(accept, "application/json") &&
			!strings.Contains(accept, "*/*") &&
			!strings.Contains(accept, "application/*") {
			return BadRequestError(
				"Invalid Accept header",
				"API only returns JSON. Accept header must include 'application/json' or '*/*'. Got: "+accept,
			)
		}

		return next(c)
	}
}

// ValidateNodeParam rejects requests whose :node path parameter is not a
// valid node name before any Proxmox call is made.
func ValidateNodeParam(v *validation.Validator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			result := v.ValidateNodeName(c.Param("node"))
			if !result.Valid {
				fields := make(map[string]string, len(result.Errors))
				for _, e := range result.Errors {
					fields[e.Field] = e.Message
				}
				return ValidationError("Invalid node name", fields)
			}
			return next(c)
		}
	}
}

// ValidateQueryParams middleware validates common query parameters
func ValidateQueryParams(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if pretty := c.QueryParam("pretty"); pretty != "" {
			if _, err := strconv.ParseBool(pretty); err != nil {
				return BadRequestError(
					"Invalid pretty parameter",
					"pretty must be a boolean. Got: "+pretty,
				)
			}
		}

		return next(c)
	}
}

// SecurityHeaders middleware adds security headers to responses
func SecurityHeaders(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		c.Response().Header().Set("X-Content-Type-Options", "nosniff")
		c.Response().Header().Set("X-Frame-Options", "DENY")
		c.Response().Header().Set("X-XSS-Protection", "1; mode=block")
		c.Response().Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		return next(c)
	}
}

// RequestLogger logs one line per request and stores a request scoped logger
// in the request context.
func RequestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:    true,
		LogMethod:    true,
		LogURI:       true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		BeforeNextFunc: func(c echo.Context) {
			reqLogger := logger.With("request_id", c.Response().Header().Get(echo.HeaderXRequestID))
			ctx := logging.WithLogger(c.Request().Context(), reqLogger)
			c.SetRequest(c.Request().WithContext(ctx))
		},
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			level := slog.LevelInfo
			switch {
			case v.Status >= 500:
				level = slog.LevelError
			case v.Status >= 400:
				level = slog.LevelWarn
			}

			attrs := []any{
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency,
				"request_id", v.RequestID,
			}
			if v.Error != nil {
				attrs = append(attrs, "error", v.Error)
			}
			logger.Log(context.Background(), level, "request", attrs...)
			return nil
		},
	})
}
