package http

import (
	"net"
	"net/http"
	"strings"

	"github.com/tair/retail-dashboard/internal/session/usecase"
	"github.com/tair/retail-dashboard/pkg/httpapi"
	"github.com/tair/retail-dashboard/pkg/logger"
)

// SessionMiddleware resolves the bearer token into the acting principal.
// Requests without a live session continue as anonymous; the use cases
// decide what anonymous callers may do.
func SessionMiddleware(controller *usecase.Controller) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			sess, err := controller.Resolve(r.Context(), token)
			if err != nil {
				logger.Debug(r.Context()).Err(err).Msg("Bearer token not accepted")
				next.ServeHTTP(w, r)
				return
			}

			ctx := httpapi.WithPrincipal(r.Context(), sess.Principal(), sess.ID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) string {
	parts := strings.SplitN(r.Header.Get("Authorization"), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func remoteHost(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
