// Package directory provides tenant.Directory implementations backed by
// memory, PostgreSQL, Redis, MongoDB, S3 and OpenSearch, plus an LRU
// decorator for any of them.
//
// Every backend looks tenants up by canonical name, the normalized identifier
// produced by the resolver, and reports an unknown name as
// tenant.ErrTenantNotFound so the resolver moves on to the next parser. Any
// other error, including context cancellation, is returned unchanged.
//
//	pool, _ := pg.Connect(ctx, pgCfg)
//	dir := directory.NewCached(directory.NewPostgres(pool), 1024, time.Minute)
//
//	res, err := tenant.NewPipeline().
//		Header("X-Tenant-ID").
//		Build(dir, tenant.DefaultNormalizer())
package directory
