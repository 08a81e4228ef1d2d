package transport

import (
	"net"
	"net/http"

	"github.com/rpggio/worklog/internal/domain/activity"
)

// RemoteAddrMiddleware records the client IP in the request context for the
// activity log. Run it after middleware.RealIP so proxy headers are honored.
func RemoteAddrMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		addr := r.RemoteAddr
		if host, _, err := net.SplitHostPort(addr); err == nil {
			addr = host
		}
		next.ServeHTTP(w, r.WithContext(activity.WithRemoteAddr(r.Context(), addr)))
	})
}
