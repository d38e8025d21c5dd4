package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/christiancanari/advance-ticket-service/internal/classifier"
	"github.com/christiancanari/advance-ticket-service/internal/common"
	"github.com/christiancanari/advance-ticket-service/internal/extract"
	"github.com/christiancanari/advance-ticket-service/internal/pipeline"
	"github.com/christiancanari/advance-ticket-service/internal/policy"
	"github.com/christiancanari/advance-ticket-service/internal/storage"
	"github.com/christiancanari/advance-ticket-service/internal/storage/drive"
	"github.com/christiancanari/advance-ticket-service/internal/storage/s3"
	"github.com/christiancanari/advance-ticket-service/internal/workbook"
)

// printError prints an error message to stderr, falling back to stdout if stderr fails
func printError(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		fmt.Printf(format, args...)
	}
}

func main() {
	var (
		in  = flag.String("in", "", "input XLSX with folder names (required)")
		out = flag.String("out", "", "output XLSX path (optional, defaults next to the input)")
	)
	flag.Parse()

	if *in == "" {
		printError("Error: --in is required\n")
		os.Exit(1)
	}
	if *out == "" {
		*out = filepath.Join(filepath.Dir(*in), "resultado.xlsx")
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	ctx := context.Background()

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

	f, err := os.Open(*in)
	if err != nil {
		logger.Error("batch.input.open_failed", "path", *in, "err", err)
		os.Exit(1)
	}
	defer func() { _ = f.Close() }()

	data, err := batch.Process(ctx, f)
	if err != nil {
		logger.Error("batch.failed", "err", err)
		os.Exit(1)
	}
	if err := os.WriteFile(*out, data, 0o644); err != nil {
		logger.Error("batch.output.write_failed", "path", *out, "err", err)
		os.Exit(1)
	}
	logger.Info("batch.written", "path", *out, "bytes", len(data))
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
