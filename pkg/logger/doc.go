// Package logger builds slog loggers with functional options and a handler
// that adds request-scoped attributes pulled from context.Context.
//
// New picks a text or JSON handler, applies static attributes and wraps the
// result in ContextHandler, which runs every registered ContextExtractor on
// each record. The tenant package ships an extractor that adds the resolved
// tenant ID without forcing resolution.
//
// # Usage
//
//	log := logger.New(
//		logger.WithEnvironment(cfg.Env, "tenantd"),
//		logger.WithLevelName(cfg.LogLevel),
//		logger.WithContextExtractors(tenant.LoggerExtractor()),
//	)
//	logger.SetAsDefault(log)
//
//	log.WarnContext(ctx, "tenant lookup failed",
//		logger.Parser(name),
//		logger.Canonical(canonical),
//		logger.Error(err),
//	)
//
// Attribute helpers in attr.go keep key names consistent. Helpers for optional
// values (Error, TenantID, Parser, ...) return an empty slog.Attr for zero input,
// which slog drops, so call sites need no nil checks.
package logger
