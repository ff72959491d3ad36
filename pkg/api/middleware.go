package api

import (
	"log/slog"
	"net/http"
	"time"

	"tagbot/pkg/metrics"

	"github.com/gorilla/mux"
)

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// instrument logs every request and records it under its route template, so
// guild ids do not end up as metric labels.
func instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		route := "unmatched"
		if current := mux.CurrentRoute(r); current != nil {
			if template, err := current.GetPathTemplate(); err == nil {
				route = template
			}
		}
		duration := time.Since(start)
		metrics.RecordHTTPRequest(r.Method, route, rw.statusCode, duration)
		slog.Debug("tagbot: handled an API request",
			slog.String("http.method", r.Method),
			slog.String("http.route", route),
			slog.Int("http.status", rw.statusCode),
			slog.Duration("http.duration", duration))
	})
}

func recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				slog.Error("tagbot: panic while handling an API request",
					slog.Any("panic", err),
					slog.String("http.path", r.URL.Path))
				writeFailure(w, http.StatusInternalServerError, "internal server error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}
