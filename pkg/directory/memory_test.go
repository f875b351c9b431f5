package directory_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/tenantkit/pkg/directory"
	"github.com/dmitrymomot/tenantkit/pkg/tenant"
)

func TestMemory(t *testing.T) {
	t.Parallel()

	t.Run("contract", func(t *testing.T) {
		t.Parallel()

		acme := newTenant("acme")
		assertContract(t, directory.NewMemory(acme), acme)
	})

	t.Run("normalizes names on insert", func(t *testing.T) {
		t.Parallel()

		acme := newTenant("  ACME ")
		dir := directory.NewMemory(acme, nil)

		got, err := dir.FindByCanonicalName(context.Background(), "acme")
		assert.NoError(t, err)
		assert.Same(t, acme, got)
		assert.Equal(t, 1, dir.Len())
	})

	t.Run("keys tenants with the resolver normalizer", func(t *testing.T) {
		t.Parallel()

		norm := tenant.NormalizerFunc(func(raw string) string {
			return strings.TrimPrefix(tenant.Normalize(raw), "org-")
		})
		acme := newTenant("ORG-Acme")
		dir := directory.NewMemoryWithNormalizer(norm, acme)

		res, err := tenant.NewResolver(dir, norm, tenant.WithParsers(tenant.NewHeaderParser("")))
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Tenant-ID", "org-acme")

		got, err := res.Resolve(context.Background(), req)
		require.NoError(t, err)
		assert.Same(t, acme, got)

		dir.Remove("Org-ACME")
		assert.Zero(t, dir.Len())
	})

	t.Run("nil normalizer uses the default", func(t *testing.T) {
		t.Parallel()

		acme := newTenant(" Acme ")
		got, err := directory.NewMemoryWithNormalizer(nil, acme).FindByCanonicalName(context.Background(), "acme")
		require.NoError(t, err)
		assert.Same(t, acme, got)
	})

	t.Run("remove", func(t *testing.T) {
		t.Parallel()

		dir := directory.NewMemory(newTenant("acme"))
		dir.Remove("Acme")

		_, err := dir.FindByCanonicalName(context.Background(), "acme")
		assert.ErrorIs(t, err, tenant.ErrTenantNotFound)
		assert.Zero(t, dir.Len())
	})

	t.Run("honours canceled context", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := directory.NewMemory(newTenant("acme")).FindByCanonicalName(ctx, "acme")
		assert.ErrorIs(t, err, context.Canceled)
	})
}
