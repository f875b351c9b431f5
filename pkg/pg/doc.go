// Package pg wraps pgx/v5 connection pooling and goose migrations for the
// PostgreSQL tenant directory.
//
//	var cfg pg.Config
//	config.MustLoad(&cfg)
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer pool.Close()
//
//	if err := pg.Migrate(ctx, pool, migrations, "migrations", cfg, log); err != nil {
//		return err
//	}
//
// Connect retries failed dials with a pause that grows with every attempt.
// Migrate reads migrations from an fs.FS so schemas can ship embedded in the
// binary. Healthcheck adapts the pool to a readiness probe, and
// IsNotFoundError / IsDuplicateKeyError classify driver errors.
package pg
