package tenant

import (
	"net/http"
	"strings"
)

// Middleware creates HTTP middleware that attaches a resolution scope to every
// request. By default the tenant is resolved before the next handler runs;
// requests without a tenant continue with an empty scope.
func Middleware(res *Resolver, opts ...MiddlewareOption) func(http.Handler) http.Handler {
	if res == nil {
		panic("tenant: Middleware requires a resolver")
	}

	cfg := &middlewareConfig{
		errorHandler:  defaultErrorHandler,
		eager:         true,
		requireActive: true,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for _, skip := range cfg.skipPaths {
				if strings.HasPrefix(r.URL.Path, skip) {
					next.ServeHTTP(w, r)
					return
				}
			}

			scope := NewScope(res, r)
			ctx := WithScope(r.Context(), scope)
			r = r.WithContext(ctx)

			if !cfg.eager {
				next.ServeHTTP(w, r)
				return
			}

			t, err := scope.Resolve(ctx)
			if err != nil {
				cfg.errorHandler(w, r, err)
				return
			}
			if t != nil && cfg.requireActive && !t.Active {
				cfg.errorHandler(w, r, ErrInactiveTenant)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireTenant creates middleware that ensures the request resolves to a tenant.
// Mount it after Middleware on routes that cannot work without a tenant.
func RequireTenant(errorHandler ErrorHandler) func(http.Handler) http.Handler {
	if errorHandler == nil {
		errorHandler = defaultErrorHandler
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, err := FromContext(r.Context()); err != nil {
				errorHandler(w, r, err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
