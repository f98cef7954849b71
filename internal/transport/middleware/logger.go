package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/heartmarshall/domainshare-backend/pkg/ctxutil"
)

type requestLogKey struct{}

// requestLog collects identifiers that inner middleware resolve after Logger
// has already handed the request on.
type requestLog struct {
	principalID string
}

// notePrincipal records the principal for the enclosing Logger, if any.
func notePrincipal(r *http.Request, id string) {
	if rl, ok := r.Context().Value(requestLogKey{}).(*requestLog); ok {
		rl.principalID = id
	}
}

// Logger logs one line per request, including requests an inner Auth
// rejects. The principal comes from the request context or from an inner Auth.
func Logger(logger *slog.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			rl := &requestLog{}
			if p, ok := ctxutil.PrincipalFromCtx(r.Context()); ok {
				rl.principalID = p.ID
			}

			next.ServeHTTP(sw, r.WithContext(context.WithValue(r.Context(), requestLogKey{}, rl)))

			attrs := []slog.Attr{
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", sw.status),
				slog.Duration("duration", time.Since(start)),
				slog.String("request_id", ctxutil.RequestIDFromCtx(r.Context())),
			}
			if rl.principalID != "" {
				attrs = append(attrs, slog.String("principal_id", rl.principalID))
			}

			level := slog.LevelInfo
			switch {
			case sw.status >= 500:
				level = slog.LevelError
			case sw.status == http.StatusTooManyRequests, sw.status == http.StatusUnauthorized:
				level = slog.LevelWarn
			}
			logger.LogAttrs(r.Context(), level, "http.request", attrs...)
		})
	}
}

// statusWriter captures the response status code.
type statusWriter struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (w *statusWriter) WriteHeader(code int) {
	if !w.wroteHeader {
		w.status = code
		w.wroteHeader = true
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.wroteHeader = true
	}
	return w.ResponseWriter.Write(b)
}
