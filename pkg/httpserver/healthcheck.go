package httpserver

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/tenantkit/pkg/logger"
)

// Check is a named readiness dependency, e.g. the tenant directory backend.
type Check struct {
	Name string
	Fn   func(context.Context) error
}

// LivenessHandler always answers 200 with body "ALIVE".
func LivenessHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ALIVE"))
	}
}

// ReadinessHandler runs all checks concurrently with a per-request timeout
// and answers 200 when every check passes, 503 otherwise. The body maps
// check names to "ok" or the error text.
func ReadinessHandler(log *slog.Logger, timeout time.Duration, checks ...Check) http.HandlerFunc {
	if log == nil {
		log = slog.Default()
	}

	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}

		var (
			mu     sync.Mutex
			status = make(map[string]string, len(checks))
			failed bool
		)

		// Checks report individually, so the group never cancels siblings.
		var g errgroup.Group
		for _, c := range checks {
			g.Go(func() error {
				err := c.Fn(ctx)

				mu.Lock()
				defer mu.Unlock()
				if err != nil {
					failed = true
					status[c.Name] = err.Error()
					log.ErrorContext(ctx, "readiness check failed", slog.String("check", c.Name), logger.Error(err))
					return nil
				}
				status[c.Name] = "ok"
				return nil
			})
		}
		_ = g.Wait()

		code := http.StatusOK
		if failed {
			code = http.StatusServiceUnavailable
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		_ = json.NewEncoder(w).Encode(status)
	}
}
