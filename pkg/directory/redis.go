package directory

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/tenantkit/pkg/tenant"
)

// DefaultRedisPrefix namespaces tenant keys.
const DefaultRedisPrefix = "tenant"

// Redis stores each tenant as a JSON document at "<prefix>:<canonical name>".
type Redis struct {
	client redis.Cmdable
	prefix string
}

// NewRedis creates a directory. An empty prefix uses DefaultRedisPrefix.
func NewRedis(client redis.Cmdable, prefix string) *Redis {
	if prefix == "" {
		prefix = DefaultRedisPrefix
	}
	return &Redis{client: client, prefix: prefix}
}

// Key returns the key holding the tenant with the given canonical name.
func (r *Redis) Key(name string) string {
	return r.prefix + ":" + name
}

func (r *Redis) FindByCanonicalName(ctx context.Context, name string) (*tenant.Tenant, error) {
	data, err := r.client.Get(ctx, r.Key(name)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, tenant.ErrTenantNotFound
		}
		return nil, err
	}
	return decodeRecord(data)
}

// Save writes t under its canonical name. A zero ttl keeps the key forever.
func (r *Redis) Save(ctx context.Context, t *tenant.Tenant, ttl time.Duration) error {
	data, err := encodeRecord(t)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, r.Key(t.CanonicalName), data, ttl).Err()
}

// Delete removes the tenant with the given canonical name.
func (r *Redis) Delete(ctx context.Context, name string) error {
	return r.client.Del(ctx, r.Key(name)).Err()
}

func (r *Redis) DiagnosticID(t *tenant.Tenant) string {
	return diagnosticID(t)
}
