// Package logger builds *slog.Logger instances from functional options and
// injects request-scoped values (such as the request id) from context.Context.
//
// New picks a text or JSON handler, applies static attributes and wraps the
// result in LogHandlerDecorator, which runs every registered ContextExtractor
// before a record is written:
//
//	log := logger.New(
//	    logger.WithEnvironment(environment.Production, "esflavor"),
//	    logger.WithContextExtractors(requestid.LoggerExtractor()),
//	)
//	log.InfoContext(ctx, "identifier validated",
//	    logger.Kind("identity_card"),
//	    logger.Code("valid"),
//	)
//
// Attribute helpers in attr.go keep key names consistent across packages.
package logger
