package pipeline

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// RequestIDHeader carries a per-call id to the backend.
const RequestIDHeader = "X-Request-Id"

// Logging returns a stage that logs each call once it completes.
func Logging(log *slog.Logger) Stage {
	return func(next http.RoundTripper) http.RoundTripper {
		return RoundTripperFunc(func(req *http.Request) (*http.Response, error) {
			start := time.Now()

			id := req.Header.Get(RequestIDHeader)
			if id == "" {
				id = uuid.NewString()
				req = req.Clone(req.Context())
				req.Header.Set(RequestIDHeader, id)
			}

			resp, err := next.RoundTrip(req)
			duration := time.Since(start)
			if err != nil {
				log.Warn("backend call failed",
					"id", id,
					"method", req.Method,
					"path", req.URL.Path,
					"duration", duration,
					"error", err,
				)
				return nil, err
			}

			log.Debug("backend call",
				"id", id,
				"method", req.Method,
				"path", req.URL.Path,
				"status", resp.StatusCode,
				"size", resp.ContentLength,
				"duration", duration,
			)
			return resp, nil
		})
	}
}
