package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/christiancanari/advance-ticket-service/internal/common"
)

// withRequestID assigns a request id to every request and logs completion.
func withRequestID(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		ctx := common.WithRequestID(r.Context(), id)
		start := time.Now()

		next.ServeHTTP(w, r.WithContext(ctx))

		logger.Debug("http.request.done",
			"request_id", id,
			"method", r.Method,
			"path", r.URL.Path,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
	})
}
