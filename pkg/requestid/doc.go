// Package requestid tags every HTTP request with a correlation identifier.
//
// Middleware reuses a well-formed X-Request-ID header sent by the client or
// generates a UUIDv4, stores it in the request context and echoes it in the
// response. LoggerExtractor plugs the id into structured logs:
//
//	log := logger.New(logger.WithContextExtractors(requestid.LoggerExtractor()))
//	r.Use(requestid.Middleware)
package requestid
