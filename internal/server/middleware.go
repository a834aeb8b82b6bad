package server

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/ext"
	"go.uber.org/zap"

	"max.ks1230/expense-service/internal/logger"
)

type ctxKey int

const ownerIDKey ctxKey = iota

// statusWriter remembers the status code written by a handler.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// instrument wraps a handler with a tracing span, response-time metrics
// and request logging, all keyed by the route name.
func (s *Server) instrument(route string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		span, ctx := opentracing.StartSpanFromContext(r.Context(), route)
		defer span.Finish()

		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next(sw, r.WithContext(ctx))
		elapsed := time.Since(start)

		if sw.status >= http.StatusInternalServerError {
			ext.Error.Set(span, true)
		}
		observeResponse(route, sw.status, elapsed)
		logger.Info("request",
			zap.String("route", route),
			zap.Int("status", sw.status),
			zap.Duration("elapsed", elapsed),
		)
	}
}

// withAuth resolves the bearer token to an owner identity before the
// handler runs. Handlers never see unauthenticated requests.
func (s *Server) withAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, err := s.auth.Authenticate(r.Context(), bearerToken(r))
		if err != nil {
			writeMessage(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		ctx := context.WithValue(r.Context(), ownerIDKey, ownerID)
		next(w, r.WithContext(ctx))
	}
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimPrefix(header, prefix)
}

func ownerFromContext(ctx context.Context) int64 {
	ownerID, _ := ctx.Value(ownerIDKey).(int64)
	return ownerID
}
