package tenant_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/tenantkit/pkg/tenant"
)

func TestPipeline_Build(t *testing.T) {
	t.Parallel()

	t.Run("keeps registration order", func(t *testing.T) {
		t.Parallel()

		res, err := tenant.NewPipeline().
			Header("X-Tenant-ID").
			HostParent("tenants.example.com").
			PathPrefix("/tenants/").
			Query("tenant").
			Domain().
			Specs(tenant.ParserSpec{Kind: tenant.KindHeader, Value: "X-Org"}).
			Build(newMockDirectory(), tenant.DefaultNormalizer())
		require.NoError(t, err)

		names := make([]string, 0)
		for _, p := range res.Parsers() {
			names = append(names, p.Name())
		}
		assert.Equal(t, []string{
			"header:X-Tenant-ID",
			`host:(?i)^([\w-]+)\.tenants\.example\.com$`,
			`path:^/tenants/([\w-]+)(?:/.*)?$`,
			"query:tenant",
			"domain",
			"header:X-Org",
		}, names)
	})

	t.Run("joins construction errors", func(t *testing.T) {
		t.Parallel()

		res, err := tenant.NewPipeline().
			Host("(").
			Path("^/no-group$").
			Specs(tenant.ParserSpec{Kind: "cookie"}).
			Header("X-Tenant-ID").
			Build(newMockDirectory(), tenant.DefaultNormalizer())
		assert.Nil(t, res)
		assert.ErrorIs(t, err, tenant.ErrInvalidPattern)
		assert.ErrorIs(t, err, tenant.ErrInvalidParserSpec)
	})

	t.Run("resolver options are applied", func(t *testing.T) {
		t.Parallel()

		acme := createTestTenant("acme", true)
		rec := &eventRecorder{}
		res, err := tenant.NewPipeline().
			Path(`^/api/orgs/([^/]+)`).
			Build(newMockDirectory(acme), tenant.DefaultNormalizer(), tenant.WithObserver(rec))
		require.NoError(t, err)

		got, err := res.Resolve(context.Background(), httptest.NewRequest(http.MethodGet, "/api/orgs/Acme/users", nil))
		require.NoError(t, err)
		assert.Same(t, acme, got)
		assert.Equal(t, []tenant.EventKind{tenant.EventTenantFound}, rec.kinds())
	})

	t.Run("nil directory", func(t *testing.T) {
		t.Parallel()

		_, err := tenant.NewPipeline().Header("").Build(nil, tenant.DefaultNormalizer())
		assert.ErrorIs(t, err, tenant.ErrNilDirectory)
	})
}
