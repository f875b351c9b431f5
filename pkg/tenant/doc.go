// Package tenant identifies which tenant an inbound HTTP request belongs to.
//
// A Resolver walks a fixed, ordered chain of parsers. Each parser extracts a
// raw candidate from the request (host name, subdomain, path segment, header
// or query parameter). The first candidate is normalized and looked up in a
// Directory; a candidate the directory does not know falls through to the
// next parser. The first successful lookup wins. When the chain is exhausted
// the request has no tenant, which is a regular outcome rather than an error.
//
// # Usage
//
//	import "github.com/dmitrymomot/tenantkit/pkg/tenant"
//
//	res, err := tenant.NewPipeline().
//		Header("X-Tenant-ID").
//		HostParent("tenants.example.com").
//		PathPrefix("/tenants/").
//		Build(dir, tenant.DefaultNormalizer(),
//			tenant.WithObserver(tenant.LogObserver(log)),
//		)
//	if err != nil {
//		return err
//	}
//
//	router.Use(tenant.Middleware(res,
//		tenant.WithSkipPaths([]string{"/health", "/metrics"}),
//	))
//
//	func handler(w http.ResponseWriter, r *http.Request) {
//		t, err := tenant.FromContext(r.Context())
//		if errors.Is(err, tenant.ErrNoTenant) {
//			// Request without tenant.
//		}
//		// ...
//	}
//
// # Request scope
//
// Middleware attaches a Scope to each request. The scope runs the chain at
// most once: repeated and concurrent FromContext calls share the first
// result and never query the directory again. Directory failures and
// cancellation are not remembered, so a later call re-runs the whole chain.
// With WithEagerResolution(false) the chain only runs when a handler asks.
//
// # Parsers
//
//   - DomainParser: the full host name without port
//   - HeaderParser: a request header, "X-Tenant-ID" by default
//   - QueryParser: a query parameter, "tenant" by default
//   - HostParser: first capture group of a host name expression
//   - PathParser: first capture group of a path expression
//
// HostPattern and PathPattern build anchored expressions from plain parent
// domains and path prefixes where "*" matches one identifier segment.
// Pipelines can also be described declaratively with ParserSpec, either in
// YAML (LoadPipelineFile) or in the compact "kind:value" form.
//
// # Diagnostics
//
// Every decision point is reported to an Observer as an Event. LogObserver
// writes them to a slog logger; pkg/metrics counts them for Prometheus.
package tenant
