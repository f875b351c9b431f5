package tenant

import (
	"context"
	"net/http"
	"sync/atomic"

	"golang.org/x/sync/semaphore"
)

// State is the resolution state of one request.
type State uint8

const (
	// StateUnresolved means resolution has not completed yet.
	StateUnresolved State = iota
	// StateResolved means a tenant was found.
	StateResolved
	// StateNone means the chain was exhausted without a tenant.
	StateNone
)

func (s State) String() string {
	switch s {
	case StateResolved:
		return "resolved"
	case StateNone:
		return "none"
	default:
		return "unresolved"
	}
}

type outcome struct {
	tenant *Tenant
}

// Scope memoizes the resolution of a single request.
//
// The first successful Resolve call runs the parser chain; every later call
// returns the same result without touching the directory. Concurrent callers
// wait for the running resolution instead of starting their own. Failed or
// canceled runs leave the scope unresolved so the next call retries.
type Scope struct {
	resolver *Resolver
	req      *http.Request
	sem      *semaphore.Weighted
	done     atomic.Pointer[outcome]
}

// NewScope creates an unresolved scope for req.
// A nil resolver yields a scope that resolves to no tenant.
func NewScope(res *Resolver, req *http.Request) *Scope {
	s := &Scope{
		resolver: res,
		req:      req,
		sem:      semaphore.NewWeighted(1),
	}
	if res == nil {
		s.done.Store(&outcome{})
	}
	return s
}

// resolvedScope returns a scope already in a terminal state.
func resolvedScope(t *Tenant) *Scope {
	s := &Scope{sem: semaphore.NewWeighted(1)}
	s.done.Store(&outcome{tenant: t})
	return s
}

// Resolve returns the request's tenant, running the chain on first use.
// A nil tenant with a nil error means the request has no tenant.
func (s *Scope) Resolve(ctx context.Context) (*Tenant, error) {
	if o := s.done.Load(); o != nil {
		return o.tenant, nil
	}

	if err := s.sem.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	defer s.sem.Release(1)

	// Another caller may have finished while we waited.
	if o := s.done.Load(); o != nil {
		return o.tenant, nil
	}

	t, err := s.resolver.Resolve(ctx, s.req)
	if err != nil {
		return nil, err
	}

	s.done.Store(&outcome{tenant: t})
	return t, nil
}

// State reports the current resolution state without triggering resolution.
func (s *Scope) State() State {
	o := s.done.Load()
	switch {
	case o == nil:
		return StateUnresolved
	case o.tenant == nil:
		return StateNone
	default:
		return StateResolved
	}
}

// Tenant returns the resolved tenant without triggering resolution.
func (s *Scope) Tenant() (*Tenant, bool) {
	o := s.done.Load()
	if o == nil || o.tenant == nil {
		return nil, false
	}
	return o.tenant, true
}
