package tenant

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/dmitrymomot/tenantkit/pkg/logger"
)

// contextKey is a private type to prevent collisions with other context keys.
type contextKey struct{}

// WithScope attaches a resolution scope to the context.
func WithScope(ctx context.Context, s *Scope) context.Context {
	return context.WithValue(ctx, contextKey{}, s)
}

// ScopeFromContext retrieves the resolution scope from the context.
func ScopeFromContext(ctx context.Context) (*Scope, bool) {
	s, ok := ctx.Value(contextKey{}).(*Scope)
	return s, ok && s != nil
}

// WithTenant attaches an already resolved tenant to the context.
// Useful for background jobs and tests. A nil tenant marks the context as
// resolved to no tenant.
func WithTenant(ctx context.Context, t *Tenant) context.Context {
	return WithScope(ctx, resolvedScope(t))
}

// FromContext returns the request's tenant, resolving it on first access.
// Returns ErrNoTenant if the request has no tenant or no scope is attached.
// Directory failures and cancellation are returned as is.
func FromContext(ctx context.Context) (*Tenant, error) {
	s, ok := ScopeFromContext(ctx)
	if !ok {
		return nil, ErrNoTenant
	}
	t, err := s.Resolve(ctx)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, ErrNoTenant
	}
	return t, nil
}

// IDFromContext retrieves just the tenant ID from the context.
// Returns zero UUID and false if no tenant is available.
func IDFromContext(ctx context.Context) (uuid.UUID, bool) {
	t, err := FromContext(ctx)
	if err != nil {
		return uuid.UUID{}, false
	}
	return t.ID, true
}

// MustFromContext panics if no tenant is available. Use this only in handlers
// mounted behind RequireTenant.
func MustFromContext(ctx context.Context) *Tenant {
	t, err := FromContext(ctx)
	if err != nil {
		panic("tenant: " + err.Error())
	}
	return t
}

// LoggerExtractor returns a ContextExtractor for the logger that adds the
// tenant ID once resolution has completed. It never triggers resolution.
func LoggerExtractor() func(ctx context.Context) (slog.Attr, bool) {
	return func(ctx context.Context) (slog.Attr, bool) {
		s, ok := ScopeFromContext(ctx)
		if !ok {
			return slog.Attr{}, false
		}
		if t, ok := s.Tenant(); ok {
			return logger.TenantID(t.ID.String()), true
		}
		return slog.Attr{}, false
	}
}
