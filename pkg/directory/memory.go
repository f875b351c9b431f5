package directory

import (
	"context"
	"sync"

	"github.com/dmitrymomot/tenantkit/pkg/tenant"
)

// Memory is a map-backed directory for tests and local development.
type Memory struct {
	mu      sync.RWMutex
	tenants map[string]*tenant.Tenant
	norm    tenant.Normalizer
}

// NewMemory creates a directory holding tenants. Canonical names are
// normalized on insert with tenant.DefaultNormalizer so they match what a
// resolver using the same normalizer looks up.
func NewMemory(tenants ...*tenant.Tenant) *Memory {
	return NewMemoryWithNormalizer(tenant.DefaultNormalizer(), tenants...)
}

// NewMemoryWithNormalizer is like NewMemory but keys tenants with norm.
// Pass the normalizer the resolver is built with. Nil uses the default.
func NewMemoryWithNormalizer(norm tenant.Normalizer, tenants ...*tenant.Tenant) *Memory {
	if norm == nil {
		norm = tenant.DefaultNormalizer()
	}
	m := &Memory{
		tenants: make(map[string]*tenant.Tenant, len(tenants)),
		norm:    norm,
	}
	for _, t := range tenants {
		m.Add(t)
	}
	return m
}

// Add stores t, replacing any tenant with the same canonical name.
func (m *Memory) Add(t *tenant.Tenant) {
	if t == nil {
		return
	}
	key := m.norm.Normalize(t.CanonicalName)
	if key == "" {
		return
	}
	m.mu.Lock()
	m.tenants[key] = t
	m.mu.Unlock()
}

// Remove deletes the tenant with the given canonical name.
func (m *Memory) Remove(name string) {
	m.mu.Lock()
	delete(m.tenants, m.norm.Normalize(name))
	m.mu.Unlock()
}

// Len returns the number of stored tenants.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.tenants)
}

func (m *Memory) FindByCanonicalName(ctx context.Context, name string) (*tenant.Tenant, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	t, ok := m.tenants[name]
	m.mu.RUnlock()
	if !ok {
		return nil, tenant.ErrTenantNotFound
	}
	return t, nil
}

func (m *Memory) DiagnosticID(t *tenant.Tenant) string {
	return diagnosticID(t)
}
