// Package clientip resolves the address of the HTTP client and carries it in
// the request context for logging and rate limiting.
//
// Proxy headers (CF-Connecting-IP, X-Forwarded-For, X-Real-IP) are trusted
// only when the direct peer is listed in a Resolver's trusted prefixes:
//
//	res, err := clientip.NewResolver("10.0.0.0/8", "127.0.0.1")
//	router.Use(res.Middleware)
package clientip
