package metrics

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrymomot/tenantkit/pkg/tenant"
)

// Lookup results recorded by InstrumentDirectory.
const (
	ResultFound    = "found"
	ResultNotFound = "not_found"
	ResultCanceled = "canceled"
	ResultError    = "error"
)

type instrumentedDirectory struct {
	next    tenant.Directory
	backend string
	m       *Metrics
}

// InstrumentDirectory wraps dir so every lookup is timed and counted under backend.
// Results and errors pass through unchanged.
func (m *Metrics) InstrumentDirectory(backend string, dir tenant.Directory) tenant.Directory {
	return &instrumentedDirectory{next: dir, backend: backend, m: m}
}

func (d *instrumentedDirectory) FindByCanonicalName(ctx context.Context, name string) (*tenant.Tenant, error) {
	start := time.Now()
	t, err := d.next.FindByCanonicalName(ctx, name)
	d.m.lookupDuration.WithLabelValues(d.backend).Observe(time.Since(start).Seconds())
	d.m.lookupsTotal.WithLabelValues(d.backend, lookupResult(t, err)).Inc()
	return t, err
}

func (d *instrumentedDirectory) DiagnosticID(t *tenant.Tenant) string {
	return d.next.DiagnosticID(t)
}

func lookupResult(t *tenant.Tenant, err error) string {
	switch {
	case err == nil && t != nil:
		return ResultFound
	case err == nil, errors.Is(err, tenant.ErrTenantNotFound):
		return ResultNotFound
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return ResultCanceled
	default:
		return ResultError
	}
}
