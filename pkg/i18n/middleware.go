package i18n

import (
	"context"
	"net/http"
)

type localeContextKey struct{}

// WithLocale stores lang in ctx.
func WithLocale(ctx context.Context, lang string) context.Context {
	return context.WithValue(ctx, localeContextKey{}, lang)
}

// Locale returns the language stored in ctx, or DefaultLanguage.
func Locale(ctx context.Context) string {
	if lang, _ := ctx.Value(localeContextKey{}).(string); lang != "" {
		return lang
	}
	return DefaultLanguage
}

// Middleware negotiates the request language against the translator's
// catalogs and stores it in the request context.
func Middleware(t *Translator) func(http.Handler) http.Handler {
	supported := t.Languages()
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			lang := Negotiate(r.Header.Get("Accept-Language"), supported, t.DefaultLanguage())
			w.Header().Set("Content-Language", lang)
			next.ServeHTTP(w, r.WithContext(WithLocale(r.Context(), lang)))
		})
	}
}
