// Command tenantd serves tenant resolution over HTTP.
//
// Each request passes through the parser chain configured with TENANT_PARSERS
// (or TENANT_PIPELINE_FILE) and is looked up in the directory backend selected
// by TENANT_DIRECTORY. GET /whoami answers with the resolved tenant.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/tenantkit/pkg/config"
	"github.com/dmitrymomot/tenantkit/pkg/directory"
	"github.com/dmitrymomot/tenantkit/pkg/httpserver"
	"github.com/dmitrymomot/tenantkit/pkg/logger"
	"github.com/dmitrymomot/tenantkit/pkg/metrics"
	"github.com/dmitrymomot/tenantkit/pkg/tenant"
)

func main() {
	if err := run(context.Background()); err != nil {
		slog.Error("tenantd stopped", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	var cfg appConfig
	if err := config.Load(&cfg); err != nil {
		return err
	}

	log := logger.New(
		logger.WithEnvironment(cfg.Env, cfg.ServiceName),
		logger.WithLevelName(cfg.LogLevel),
		logger.WithContextValue("request_id", middleware.RequestIDKey),
		logger.WithContextExtractors(tenant.LoggerExtractor()),
	)
	logger.SetAsDefault(log)

	specs, err := cfg.parserSpecs()
	if err != nil {
		return err
	}

	be, err := openBackend(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer be.close(context.WithoutCancel(ctx))

	m := metrics.New(metrics.WithRuntimeMetrics())
	dir := m.InstrumentDirectory(cfg.Directory, be.dir)
	if cfg.CacheSize > 0 {
		dir = directory.NewCached(dir, cfg.CacheSize, cfg.CacheTTL)
	}

	res, err := tenant.NewPipeline().
		Specs(specs...).
		Build(dir, tenant.DefaultNormalizer(),
			tenant.WithObserver(tenant.MultiObserver(tenant.LogObserver(log), m)),
		)
	if err != nil {
		return err
	}

	log.InfoContext(ctx, "tenant resolver ready",
		logger.Backend(cfg.Directory),
		slog.Any("parsers", specs),
	)

	var serverCfg httpserver.Config
	if err := config.Load(&serverCfg); err != nil {
		return err
	}

	handler := newRouter(routerDeps{
		log:      log,
		resolver: res,
		middleware: []tenant.MiddlewareOption{
			tenant.WithRequireActive(cfg.RequireActive),
			tenant.WithEagerResolution(!cfg.LazyResolution),
		},
		checks:       be.checks,
		readyTimeout: cfg.ReadyTimeout,
		metrics:      m.Handler(),
	})

	return httpserver.NewFromConfig(serverCfg, httpserver.WithLogger(log)).Run(ctx, handler)
}
