package directory

import (
	"context"
	"embed"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmitrymomot/tenantkit/pkg/pg"
	"github.com/dmitrymomot/tenantkit/pkg/tenant"
)

//go:embed migrations/*.sql
var migrations embed.FS

const selectTenantByName = `
SELECT id, canonical_name, subdomain, name, plan_id, active, created_at
FROM tenants
WHERE canonical_name = $1`

const upsertTenant = `
INSERT INTO tenants (id, canonical_name, subdomain, name, plan_id, active, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (id) DO UPDATE SET
    canonical_name = EXCLUDED.canonical_name,
    subdomain      = EXCLUDED.subdomain,
    name           = EXCLUDED.name,
    plan_id        = EXCLUDED.plan_id,
    active         = EXCLUDED.active`

// Querier is the subset of *pgxpool.Pool used by Postgres.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Postgres looks tenants up in the tenants table.
type Postgres struct {
	db Querier
}

// NewPostgres creates a directory on top of a pgx pool or transaction.
func NewPostgres(db Querier) *Postgres {
	return &Postgres{db: db}
}

func (p *Postgres) FindByCanonicalName(ctx context.Context, name string) (*tenant.Tenant, error) {
	var t tenant.Tenant
	err := p.db.QueryRow(ctx, selectTenantByName, name).Scan(
		&t.ID,
		&t.CanonicalName,
		&t.Subdomain,
		&t.Name,
		&t.PlanID,
		&t.Active,
		&t.CreatedAt,
	)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return nil, tenant.ErrTenantNotFound
		}
		return nil, err
	}
	return &t, nil
}

// Save inserts or updates t by ID.
func (p *Postgres) Save(ctx context.Context, t *tenant.Tenant) error {
	if t == nil || t.CanonicalName == "" {
		return ErrInvalidRecord
	}
	_, err := p.db.Exec(ctx, upsertTenant,
		t.ID, t.CanonicalName, t.Subdomain, t.Name, t.PlanID, t.Active, t.CreatedAt,
	)
	return err
}

func (p *Postgres) DiagnosticID(t *tenant.Tenant) string {
	return diagnosticID(t)
}

// MigratePostgres creates or upgrades the tenants table.
func MigratePostgres(ctx context.Context, pool *pgxpool.Pool, cfg pg.Config, log *slog.Logger) error {
	return pg.Migrate(ctx, pool, migrations, "migrations", cfg, log)
}
