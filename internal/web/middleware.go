package web

import (
	"net/http"
	"time"

	"github.com/dmorgan81/rcgraphics/internal/log"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.FromContextOrDiscard(r.Context())
		if s.Logger != nil {
			logger = s.Logger
		}
		logger = logger.WithGroup("http").With("method", r.Method, "path", r.URL.Path)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(rec, r.WithContext(log.NewContext(r.Context(), logger)))
		logger.Info("request", "status", rec.status, "duration", time.Since(start))
	})
}
