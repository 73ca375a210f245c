package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/you/user-dashboard/internal/infra"
)

const RequestIDHeader = "X-Request-ID"

type ctxKey struct{}

// NewRequestID returns "req_" followed by a fresh ULID.
func NewRequestID() string {
	return "req_" + strings.ToLower(ulid.Make().String())
}

// RequestIDFrom returns the id assigned by RequestLog, or "" outside a request.
func RequestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

// WithRequestID stores id in ctx for RequestIDFrom.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// RequestLog tags every request with an id (reusing the caller's X-Request-ID if
// present) and logs method, path, status and duration once it completes.
func RequestLog(log infra.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(RequestIDHeader)
			if id == "" {
				id = NewRequestID()
			}
			w.Header().Set(RequestIDHeader, id)

			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			start := time.Now()
			next.ServeHTTP(rec, r.WithContext(WithRequestID(r.Context(), id)))

			log.Infof("%s %s %d %s id=%s", r.Method, r.URL.Path, rec.status, time.Since(start).Round(time.Microsecond), id)
		})
	}
}
