package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"go.uber.org/zap"

	"github.com/rustyeddy/tradejournal/internal/auth"
	"github.com/rustyeddy/tradejournal/journal"
)

func requestID(r *http.Request) string {
	return middleware.GetReqID(r.Context())
}

// requestLogger logs one line per request after it completes.
func requestLogger(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			fields := []zap.Field{
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", status),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("duration", time.Since(start)),
				zap.String("request_id", requestID(r)),
			}
			if c, ok := auth.ClaimsFromContext(r.Context()); ok {
				fields = append(fields, zap.String("user_id", c.UserID))
			}

			switch {
			case status >= 500:
				log.Error("request", fields...)
			case status >= 400:
				log.Warn("request", fields...)
			default:
				log.Info("request", fields...)
			}
		})
	}
}

func (s *Server) unauthorized(w http.ResponseWriter, r *http.Request) {
	_ = render.Render(w, r, errUnauthorized())
}

// requireSubscription lets through users whose stored subscription is active
// or trialing. The stored status is checked rather than the one in the
// session so that a change made by an operator applies at once.
func (s *Server) requireSubscription(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := auth.ClaimsFromContext(r.Context())
		if !ok {
			s.unauthorized(w, r)
			return
		}

		user, err := s.store.GetUser(r.Context(), claims.UserID)
		if errors.Is(err, journal.ErrNotFound) {
			// The account behind a valid token is gone.
			s.sessions.ClearCookie(w)
			s.unauthorized(w, r)
			return
		}
		if err != nil {
			s.fail(w, r, err)
			return
		}
		if !user.HasAccess() {
			_ = render.Render(w, r, errSubscriptionRequired())
			return
		}

		next.ServeHTTP(w, r)
	})
}
