// Package httpserver runs an http.Handler with context-driven graceful
// shutdown and provides liveness/readiness handlers.
//
//	srv := httpserver.New(cfg.HTTP, httpserver.WithLogger(log))
//	if err := srv.Run(ctx, router); err != nil {
//	    // errors.Is(err, httpserver.ErrStart)
//	}
//
// Run returns when ctx is cancelled, after in-flight requests have had
// Config.ShutdownTimeout to complete. Signal handling is left to the caller,
// typically via signal.NotifyContext.
package httpserver
