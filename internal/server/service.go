// Package server exposes the processing pipeline over HTTP.
package server

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/christiancanari/advance-ticket-service/constants"
	"github.com/christiancanari/advance-ticket-service/internal/common"
)

// TicketProcessor runs a full batch: folders workbook in, result workbook out.
type TicketProcessor interface {
	Process(ctx context.Context, input io.Reader) ([]byte, error)
}

// maxUploadBytes caps the folders workbook upload.
const maxUploadBytes = 10 << 20

// Service wires the HTTP boundary to the batch use case.
type Service struct {
	batch  TicketProcessor
	logger *slog.Logger
}

func NewService(batch TicketProcessor, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{batch: batch, logger: logger}
}

// Router returns the HTTP handler with all routes registered.
func (s *Service) Router() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/advances/process-ticket", s.handleProcessTicket)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return withRequestID(s.logger, mux)
}

func (s *Service) handleProcessTicket(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	file, _, err := r.FormFile("file")
	if err != nil {
		s.writeError(w, r, common.NewRequestError(common.CodeExcelInvalid,
			"the folders workbook upload is required", err))
		return
	}
	defer func() { _ = file.Close() }()

	s.logger.Info("http.process.start", "request_id", common.RequestIDFromContext(r.Context()))

	out, err := s.batch.Process(r.Context(), file)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", constants.XLSXContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", resultFilename(time.Now())))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(out)
}

// resultFilename builds resultado_yyyyMMdd_HHmmss.xlsx.
func resultFilename(now time.Time) string {
	return "resultado_" + now.Format("20060102_150405") + ".xlsx"
}
