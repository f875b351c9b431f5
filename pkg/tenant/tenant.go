package tenant

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Tenant represents a tenant in the system with minimal information
// needed for request-scoped operations and UI display.
// Records are owned by the Directory; the resolver only passes them along.
type Tenant struct {
	ID            uuid.UUID `json:"id" bson:"id"`
	CanonicalName string    `json:"canonical_name" bson:"canonical_name"`
	Subdomain     string    `json:"subdomain" bson:"subdomain"`
	Name          string    `json:"name" bson:"name"`
	PlanID        string    `json:"plan_id" bson:"plan_id"`
	Active        bool      `json:"active" bson:"active"`
	CreatedAt     time.Time `json:"created_at" bson:"created_at"`
}

// Directory maps canonical identifiers to tenants.
type Directory interface {
	// FindByCanonicalName returns the tenant registered under name.
	// Returns ErrTenantNotFound if no tenant matches. Any other error is
	// treated as a lookup failure and propagated to the caller.
	FindByCanonicalName(ctx context.Context, name string) (*Tenant, error)

	// DiagnosticID returns the identifier used in diagnostics for t.
	DiagnosticID(t *Tenant) string
}
