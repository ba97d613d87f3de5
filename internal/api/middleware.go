package api

import (
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
)

// requestLogger logs one line per request with its id, status and duration
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		kv := []any{
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		}
		if status >= http.StatusInternalServerError {
			s.log.Warn("request", kv...)
			return
		}
		s.log.Info("request", kv...)
	})
}

// rateLimit rejects clients that exceed their per-IP budget with 429
func (s *Server) rateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := clientIP(r)
		if !s.limiter.Allow(key) {
			s.log.Warn("rate limit exceeded", "ip", key, "path", r.URL.Path)
			w.Header().Set("Retry-After", "1")
			writeJSON(w, http.StatusTooManyRequests, errorBody{
				Error: "too many requests",
				Code:  "RATE_LIMITED",
			}, s.log)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// clientIP strips the port; RealIP has already applied forwarding headers
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
