package clientip

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/netip"
	"strings"
)

// Headers lists the proxy headers consulted, in order, when the direct peer
// is a trusted proxy.
var Headers = []string{
	"CF-Connecting-IP",
	"X-Forwarded-For",
	"X-Real-IP",
}

const forwardedFor = "X-Forwarded-For"

type contextKey struct{}

// Resolver determines the client address of a request. Proxy headers are
// honoured only when the direct peer falls inside a trusted prefix; the zero
// value trusts nobody and always answers with RemoteAddr.
type Resolver struct {
	trusted []netip.Prefix
}

// NewResolver parses trusted proxies given as IPs or CIDR prefixes.
func NewResolver(trusted ...string) (*Resolver, error) {
	r := &Resolver{trusted: make([]netip.Prefix, 0, len(trusted))}
	for _, s := range trusted {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if p, err := netip.ParsePrefix(s); err == nil {
			r.trusted = append(r.trusted, p.Masked())
			continue
		}
		addr, err := netip.ParseAddr(s)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidTrustedProxy, s)
		}
		addr = addr.Unmap()
		r.trusted = append(r.trusted, netip.PrefixFrom(addr, addr.BitLen()))
	}
	return r, nil
}

func (r *Resolver) isTrusted(addr netip.Addr) bool {
	if r == nil {
		return false
	}
	for _, p := range r.trusted {
		if p.Contains(addr) {
			return true
		}
	}
	return false
}

// FromRequest returns the normalized client address of req, or "" when no
// valid address is found. X-Forwarded-For is walked from the right and the
// first hop outside the trusted prefixes wins.
func (r *Resolver) FromRequest(req *http.Request) string {
	peer, ok := remoteAddr(req.RemoteAddr)
	if !ok {
		return ""
	}
	if !r.isTrusted(peer) {
		return peer.String()
	}

	for _, h := range Headers {
		v := req.Header.Get(h)
		if v == "" {
			continue
		}
		if h == forwardedFor {
			if ip, ok := r.fromForwardedFor(v); ok {
				return ip.String()
			}
			continue
		}
		if ip, ok := parse(v); ok {
			return ip.String()
		}
	}
	return peer.String()
}

func (r *Resolver) fromForwardedFor(v string) (netip.Addr, bool) {
	hops := strings.Split(v, ",")
	var last netip.Addr
	for i := len(hops) - 1; i >= 0; i-- {
		ip, ok := parse(hops[i])
		if !ok {
			break
		}
		if !r.isTrusted(ip) {
			return ip, true
		}
		last = ip
	}
	return last, last.IsValid()
}

// Middleware stores the client address in the request context.
func (r *Resolver) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		next.ServeHTTP(w, req.WithContext(WithContext(req.Context(), r.FromRequest(req))))
	})
}

// FromRequest returns the address of the direct peer, ignoring proxy headers.
func FromRequest(r *http.Request) string {
	return (*Resolver)(nil).FromRequest(r)
}

// Middleware stores the direct peer address in the request context.
func Middleware(next http.Handler) http.Handler {
	return (*Resolver)(nil).Middleware(next)
}

func remoteAddr(s string) (netip.Addr, bool) {
	host, _, err := net.SplitHostPort(s)
	if err != nil {
		host = s
	}
	return parse(host)
}

func parse(s string) (netip.Addr, bool) {
	addr, err := netip.ParseAddr(strings.TrimSpace(s))
	if err != nil {
		return netip.Addr{}, false
	}
	return addr.Unmap().WithZone(""), true
}

func WithContext(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, contextKey{}, ip)
}

func FromContext(ctx context.Context) string {
	ip, _ := ctx.Value(contextKey{}).(string)
	return ip
}

// LoggerExtractor returns a logger context extractor for the client address.
func LoggerExtractor() func(ctx context.Context) (slog.Attr, bool) {
	return func(ctx context.Context) (slog.Attr, bool) {
		if ip := FromContext(ctx); ip != "" {
			return slog.String("client_ip", ip), true
		}
		return slog.Attr{}, false
	}
}
