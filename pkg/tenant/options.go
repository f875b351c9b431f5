package tenant

import (
	"context"
	"errors"
	"net/http"
)

// ErrorHandler handles errors that occur during tenant resolution.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

// middlewareConfig holds middleware configuration.
type middlewareConfig struct {
	errorHandler  ErrorHandler
	skipPaths     []string
	eager         bool
	requireActive bool
}

// MiddlewareOption configures the middleware.
type MiddlewareOption func(*middlewareConfig)

// WithErrorHandler sets a custom error handler.
func WithErrorHandler(handler ErrorHandler) MiddlewareOption {
	return func(c *middlewareConfig) {
		if handler != nil {
			c.errorHandler = handler
		}
	}
}

// WithSkipPaths sets path prefixes that should skip tenant resolution.
func WithSkipPaths(paths []string) MiddlewareOption {
	return func(c *middlewareConfig) {
		c.skipPaths = paths
	}
}

// WithEagerResolution controls whether the middleware resolves the tenant
// before calling the next handler. When disabled, resolution happens on the
// first FromContext call and errors surface there.
func WithEagerResolution(eager bool) MiddlewareOption {
	return func(c *middlewareConfig) {
		c.eager = eager
	}
}

// WithRequireActive rejects requests resolved to an inactive tenant.
// Applies to eager resolution only.
func WithRequireActive(require bool) MiddlewareOption {
	return func(c *middlewareConfig) {
		c.requireActive = require
	}
}

func defaultErrorHandler(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, context.Canceled):
		// Client is gone, nobody reads the response.
	case errors.Is(err, context.DeadlineExceeded):
		http.Error(w, "Tenant resolution timed out", http.StatusGatewayTimeout)
	case errors.Is(err, ErrNoTenant), errors.Is(err, ErrTenantNotFound):
		http.Error(w, "Tenant not found", http.StatusNotFound)
	case errors.Is(err, ErrInactiveTenant):
		http.Error(w, "Tenant is inactive", http.StatusForbidden)
	default:
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}
