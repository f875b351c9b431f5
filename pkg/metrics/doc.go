// Package metrics exposes tenant resolution as Prometheus metrics.
//
// Metrics is a tenant.Observer that counts resolution events by kind and
// parser, and InstrumentDirectory wraps a tenant.Directory to record lookup
// latency per backend and outcome.
//
//	m := metrics.New()
//	dir := m.InstrumentDirectory("postgres", pgDirectory)
//	res, _ := tenant.NewResolver(dir, tenant.DefaultNormalizer(),
//		tenant.WithParsers(tenant.NewHeaderParser("")),
//		tenant.WithObserver(m),
//	)
//	router.Handle("/metrics", m.Handler())
package metrics
