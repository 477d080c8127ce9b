// Package ratelimiter implements an in-memory token bucket keyed by string,
// plus an HTTP middleware that sets the X-RateLimit-* headers and answers
// 429 when a key runs out of tokens.
//
//	lim, err := ratelimiter.New(ratelimiter.Config{
//		Capacity:       60,
//		RefillRate:     1,
//		RefillInterval: time.Second,
//	})
//	r.Use(ratelimiter.Middleware(lim, func(r *http.Request) string {
//		return clientip.FromContext(r.Context())
//	}))
package ratelimiter
