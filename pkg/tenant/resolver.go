package tenant

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"slices"
)

// Resolver walks an ordered parser chain and returns the tenant of the first
// candidate the directory knows. It holds no per-request state and is safe
// for concurrent use; per-request memoization lives in Scope.
type Resolver struct {
	parsers    []Parser
	directory  Directory
	normalizer Normalizer
	observer   Observer
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithParsers appends parsers to the chain. Order is significant:
// earlier parsers win when a request matches several strategies.
func WithParsers(parsers ...Parser) Option {
	return func(r *Resolver) {
		r.parsers = append(r.parsers, parsers...)
	}
}

// WithObserver sets the destination for resolution events. Nil is ignored.
func WithObserver(o Observer) Option {
	return func(r *Resolver) {
		if o != nil {
			r.observer = o
		}
	}
}

// NewResolver creates a resolver. The chain is fixed once this returns.
// A resolver without parsers is valid and always resolves to no tenant.
func NewResolver(dir Directory, norm Normalizer, opts ...Option) (*Resolver, error) {
	if dir == nil {
		return nil, ErrNilDirectory
	}
	if norm == nil {
		return nil, ErrNilNormalizer
	}

	r := &Resolver{
		directory:  dir,
		normalizer: norm,
		observer:   nopObserver{},
	}
	for _, opt := range opts {
		opt(r)
	}

	for i, p := range r.parsers {
		if p == nil {
			return nil, fmt.Errorf("%w: position %d", ErrNilParser, i)
		}
	}
	r.parsers = slices.Clip(r.parsers)

	return r, nil
}

// Parsers returns a copy of the parser chain in evaluation order.
func (r *Resolver) Parsers() []Parser {
	return slices.Clone(r.parsers)
}

// Resolve runs the chain once for req.
//
// It returns the tenant of the first parser whose normalized candidate the
// directory knows, or nil, nil when the chain is exhausted. A candidate the
// directory does not know moves on to the next parser. Directory failures and
// context cancellation are returned unmodified and stop the chain.
func (r *Resolver) Resolve(ctx context.Context, req *http.Request) (*Tenant, error) {
	url := displayURL(req)

	for _, p := range r.parsers {
		name := p.Name()

		candidate, ok := p.Parse(req)
		if !ok {
			r.observer.Observe(ctx, Event{Kind: EventParserSkipped, Parser: name, URL: url})
			continue
		}

		canonical := r.normalizer.Normalize(candidate)
		if canonical == "" {
			r.observer.Observe(ctx, Event{Kind: EventParserSkipped, Parser: name, Candidate: candidate, URL: url})
			continue
		}

		if err := ctx.Err(); err != nil {
			r.observer.Observe(ctx, Event{Kind: EventLookupFailed, Parser: name, Candidate: candidate, Canonical: canonical, URL: url, Err: err})
			return nil, err
		}

		t, err := r.directory.FindByCanonicalName(ctx, canonical)
		switch {
		case err == nil && t != nil:
			r.observer.Observe(ctx, Event{
				Kind:      EventTenantFound,
				Parser:    name,
				Candidate: candidate,
				Canonical: canonical,
				TenantID:  r.directory.DiagnosticID(t),
				URL:       url,
			})
			return t, nil

		case err == nil || errors.Is(err, ErrTenantNotFound):
			r.observer.Observe(ctx, Event{Kind: EventTenantNotFound, Parser: name, Candidate: candidate, Canonical: canonical, URL: url})

		default:
			r.observer.Observe(ctx, Event{Kind: EventLookupFailed, Parser: name, Candidate: candidate, Canonical: canonical, URL: url, Err: err})
			return nil, err
		}
	}

	// A directory that ignores ctx may report not-found for a canceled request;
	// that must not become a cached "no tenant".
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.observer.Observe(ctx, Event{Kind: EventNoTenant, URL: url})
	return nil, nil
}

// displayURL renders the request for diagnostics.
func displayURL(r *http.Request) string {
	if r.URL == nil {
		return r.Host
	}
	u := *r.URL
	if u.Host == "" && r.Host != "" {
		u.Host = r.Host
		if u.Scheme == "" {
			u.Scheme = "http"
			if r.TLS != nil {
				u.Scheme = "https"
			}
		}
	}
	return u.String()
}
