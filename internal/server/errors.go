package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/christiancanari/advance-ticket-service/internal/common"
)

// errorResponse is the JSON error body returned to callers.
type errorResponse struct {
	Status    int    `json:"status"`
	Error     string `json:"error"`
	Message   string `json:"message"`
	Type      string `json:"type"`
	Timestamp string `json:"timestamp"`
}

// writeError maps a pipeline failure to an HTTP status and a uniform JSON
// body. Uncategorized errors surface as UNEXPECTED_ERROR.
func (s *Service) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	code := common.CodeUnexpected
	message := "unexpected error"

	if ce, ok := common.AsCore(err); ok {
		status = statusFor(ce)
		code = ce.Code
		message = ce.Message
	}

	s.logger.Error("http.request.failed",
		"request_id", common.RequestIDFromContext(r.Context()),
		"status", status,
		"type", code,
		"err", err,
	)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorResponse{
		Status:    status,
		Error:     http.StatusText(status),
		Message:   message,
		Type:      code,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

func statusFor(ce *common.CoreError) int {
	if ce.Category == common.Business || ce.Category == common.Request {
		return http.StatusBadRequest
	}
	switch ce.Code {
	case common.CodeExcelInvalid:
		return http.StatusBadRequest
	case common.CodeStorageAccess:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
