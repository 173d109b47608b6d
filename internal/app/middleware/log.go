package middleware

import (
	"net/http"
	"time"

	"github.com/justinas/alice"
	"github.com/rs/zerolog/hlog"

	"skinsbay/internal/app/logger"
)

// Log attaches a request-scoped logger and writes one access log line per
// request.
func Log(l logger.Logger) func(next http.Handler) http.Handler {
	chain := alice.New(
		hlog.NewHandler(l.Logger),
		hlog.AccessHandler(func(r *http.Request, status, size int, duration time.Duration) {
			hlog.FromRequest(r).Info().
				Str("method", r.Method).
				Stringer("url", r.URL).
				Int("status", status).
				Int("size", size).
				Dur("duration", duration).
				Msg("Request")
		}),
		hlog.RemoteAddrHandler("ip"),
		hlog.UserAgentHandler("user_agent"),
		hlog.RequestIDHandler("req_id", "Request-Id"),
	)

	return func(next http.Handler) http.Handler {
		return chain.Then(next)
	}
}
