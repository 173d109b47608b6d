package middleware

import (
	"context"
	"net/http"
	"strings"

	"skinsbay/internal/app/apperr"
	"skinsbay/internal/app/handler"
	"skinsbay/internal/app/logger"
	"skinsbay/internal/app/session"
)

func Auth(jwt session.Reader) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			log := logger.Get(r.Context(), "Middleware.Auth")

			reqHeader := r.Header.Get("Authorization")
			splitToken := strings.Split(reqHeader, "Bearer ")
			if len(splitToken) != 2 {
				log.Debug().Str("header", reqHeader).Msg("Invalid Authorization header")
				handler.WriteError(w, apperr.ErrUnauthorized, http.StatusUnauthorized)
				return
			}

			u, err := jwt.Read(r.Context(), splitToken[1])
			if err != nil {
				log.Debug().Err(err).Msg("Token validation failed")
				handler.WriteError(w, apperr.ErrUnauthorized, http.StatusUnauthorized)
				return
			}

			log.Debug().Str("user_id", u.ID.String()).Msg("User authorized")
			r = r.WithContext(context.WithValue(r.Context(), handler.ContextKeyUser{}, u))
			next.ServeHTTP(w, r)
		})
	}
}

// AdminToken guards operator-only endpoints behind a shared static token.
func AdminToken(token string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if token == "" || r.Header.Get("X-Admin-Token") != token {
				handler.WriteError(w, apperr.ErrUnauthorized, http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
