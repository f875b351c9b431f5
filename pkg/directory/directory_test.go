package directory_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/tenantkit/pkg/tenant"
)

func newTenant(name string) *tenant.Tenant {
	return &tenant.Tenant{
		ID:            uuid.New(),
		CanonicalName: name,
		Subdomain:     name,
		Name:          name + " Inc",
		PlanID:        "starter",
		Active:        true,
		CreatedAt:     time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

// assertContract checks behaviour every backend shares: known names resolve,
// unknown names report ErrTenantNotFound, DiagnosticID is the tenant UUID.
func assertContract(t *testing.T, dir tenant.Directory, known *tenant.Tenant) {
	t.Helper()

	got, err := dir.FindByCanonicalName(context.Background(), known.CanonicalName)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, known.ID, got.ID)
	assert.Equal(t, known.CanonicalName, got.CanonicalName)
	assert.Equal(t, known.Name, got.Name)
	assert.Equal(t, known.Active, got.Active)
	assert.Equal(t, known.ID.String(), dir.DiagnosticID(got))

	got, err = dir.FindByCanonicalName(context.Background(), "missing")
	assert.Nil(t, got)
	assert.ErrorIs(t, err, tenant.ErrTenantNotFound)
}
