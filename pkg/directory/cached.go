package directory

import (
	"context"
	"errors"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/sync/singleflight"

	"github.com/dmitrymomot/tenantkit/pkg/tenant"
)

// Cached decorates a directory with an expiring LRU of found tenants.
//
// Only hits are cached: a name that is unknown now may be created later,
// and failures must reach the resolver. Concurrent misses for the same
// name share one backend call.
type Cached struct {
	next  tenant.Directory
	lru   *expirable.LRU[string, *tenant.Tenant]
	group singleflight.Group
}

// NewCached wraps next. size bounds the number of entries, ttl their age.
// A non-positive ttl keeps entries until they are evicted by size.
func NewCached(next tenant.Directory, size int, ttl time.Duration) *Cached {
	if size <= 0 {
		size = 1024
	}
	return &Cached{
		next: next,
		lru:  expirable.NewLRU[string, *tenant.Tenant](size, nil, max(ttl, 0)),
	}
}

func (c *Cached) FindByCanonicalName(ctx context.Context, name string) (*tenant.Tenant, error) {
	if t, ok := c.lru.Get(name); ok {
		return t, nil
	}

	ch := c.group.DoChan(name, func() (any, error) {
		t, err := c.next.FindByCanonicalName(ctx, name)
		if err != nil {
			return nil, err
		}
		if t == nil {
			return nil, tenant.ErrTenantNotFound
		}
		c.lru.Add(name, t)
		return t, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			// The shared call ran on another request's context. If that one
			// was canceled and ours is still alive, look up on our own.
			if isContextErr(res.Err) && ctx.Err() == nil {
				return c.next.FindByCanonicalName(ctx, name)
			}
			return nil, res.Err
		}
		return res.Val.(*tenant.Tenant), nil
	}
}

func (c *Cached) DiagnosticID(t *tenant.Tenant) string {
	return c.next.DiagnosticID(t)
}

// Invalidate drops the cached entry for name, e.g. after the tenant changed.
func (c *Cached) Invalidate(name string) {
	c.lru.Remove(name)
}

// Purge drops every cached entry.
func (c *Cached) Purge() {
	c.lru.Purge()
}

// Len returns the number of cached tenants.
func (c *Cached) Len() int {
	return c.lru.Len()
}

func isContextErr(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
