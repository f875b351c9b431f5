// Package httpserver runs the tenant service's HTTP server with graceful
// shutdown and provides liveness and readiness handlers.
//
//	srv := httpserver.NewFromConfig(cfg, httpserver.WithLogger(log))
//	if err := srv.Run(ctx, router); err != nil {
//		return err
//	}
//
// Run returns once ctx is canceled or SIGINT/SIGTERM arrives and in-flight
// requests are drained. ReadinessHandler reports each named Check so a
// failing directory backend is visible in the probe response.
package httpserver
