package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/christiancanari/advance-ticket-service/internal/classifier"
	"github.com/christiancanari/advance-ticket-service/internal/common"
	"github.com/christiancanari/advance-ticket-service/internal/extract"
	"github.com/christiancanari/advance-ticket-service/internal/pipeline"
	"github.com/christiancanari/advance-ticket-service/internal/policy"
	"github.com/christiancanari/advance-ticket-service/internal/server"
	"github.com/christiancanari/advance-ticket-service/internal/storage"
	"github.com/christiancanari/advance-ticket-service/internal/storage/drive"
	"github.com/christiancanari/advance-ticket-service/internal/storage/s3"
	"github.com/christiancanari/advance-ticket-service/internal/workbook"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg := common.LoadConfig()
	if cfg.RulesPath != "" {
		rules, err := common.LoadRules(cfg.RulesPath)
		if err != nil {
			logger.Error("config.rules.invalid", "path", cfg.RulesPath, "err", err)
			os.Exit(1)
		}
		cfg.ApplyRules(rules)
	}
	if err := cfg.Validate(); err != nil {
		logger.Error("config.invalid", "err", err)
		os.Exit(1)
	}

	batch, err := buildPipeline(ctx, cfg, logger)
	if err != nil {
		logger.Error("startup.failed", "err", err)
		os.Exit(1)
	}
	svc := server.NewService(batch, logger)

	srv := &http.Server{
		Addr:              cfg.Server.HTTPAddr,
		Handler:           svc.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info("http.serving", "addr", cfg.Server.HTTPAddr, "backend", cfg.Storage.Backend)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("http.serve.failed", "err", err)
		os.Exit(1)
	}
	logger.Info("http.stopped")
}

func buildPipeline(ctx context.Context, cfg *common.Config, logger *slog.Logger) (*pipeline.BatchUseCase, error) {
	store, err := buildStore(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	cls, err := classifier.New(cfg.Classifier.InvoiceRegex, cfg.Classifier.ReceiptRegex)
	if err != nil {
		return nil, err
	}
	pol, err := policy.New(cfg.Policy.Keywords)
	if err != nil {
		return nil, err
	}

	ex := extract.NewExtractor(extract.NewPDFTextExtractor(), cls, logger)
	folders := pipeline.NewFolderProcessor(store, ex, pol, logger)
	return pipeline.NewBatchUseCase(workbook.NewFolderReader(), workbook.NewRecordWriter(), folders, logger), nil
}

func buildStore(ctx context.Context, cfg *common.Config, logger *slog.Logger) (storage.FolderRepository, error) {
	switch cfg.Storage.Backend {
	case common.BackendDrive:
		return drive.NewRepository(ctx, drive.Config{
			CredentialsFile: cfg.Storage.DriveCredentials,
			TicketSubfolder: cfg.Storage.TicketSubfolder,
		}, logger)
	case common.BackendS3:
		return s3.NewRepository(s3.Config{
			Endpoint:        cfg.Storage.S3.Endpoint,
			AccessKey:       cfg.Storage.S3.AccessKey,
			SecretKey:       cfg.Storage.S3.SecretKey,
			Bucket:          cfg.Storage.S3.Bucket,
			UseSSL:          cfg.Storage.S3.UseSSL,
			TicketSubfolder: cfg.Storage.TicketSubfolder,
		}, logger)
	default:
		return nil, fmt.Errorf("unknown storage backend: %q", cfg.Storage.Backend)
	}
}
