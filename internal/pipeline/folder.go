// Package pipeline contains the folder processing and batch orchestration
// stages.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/christiancanari/advance-ticket-service/internal/common"
	"github.com/christiancanari/advance-ticket-service/internal/entity"
	"github.com/christiancanari/advance-ticket-service/internal/extract"
	"github.com/christiancanari/advance-ticket-service/internal/policy"
	"github.com/christiancanari/advance-ticket-service/internal/storage"
)

// FolderProcessor resolves one named folder to its extracted ticket records.
type FolderProcessor struct {
	store     storage.FolderRepository
	extractor *extract.Extractor
	policy    *policy.Policy
	logger    *slog.Logger
}

func NewFolderProcessor(store storage.FolderRepository, ex *extract.Extractor, pol *policy.Policy, logger *slog.Logger) *FolderProcessor {
	if logger == nil {
		logger = slog.Default()
	}
	return &FolderProcessor{store: store, extractor: ex, policy: pol, logger: logger}
}

// Process runs the lookup chain for folderName. Absence at any lookup stage
// yields an empty list, not a failure. A failed extraction aborts the
// folder immediately. Already categorized failures pass through unchanged;
// anything else is wrapped into a folder-scoped technical failure.
func (p *FolderProcessor) Process(ctx context.Context, folderName string) ([]entity.TicketRecord, error) {
	p.logger.Debug("folder.process.start", "folder", folderName)

	records, err := p.process(ctx, folderName)
	if err != nil {
		if _, ok := common.AsCore(err); ok {
			return nil, err
		}
		p.logger.Error("folder.process.failed", "folder", folderName, "err", err)
		return nil, common.NewTechnicalError(common.CodeStorageAccess,
			fmt.Sprintf("processing folder: %s", folderName), err)
	}
	return records, nil
}

func (p *FolderProcessor) process(ctx context.Context, folderName string) ([]entity.TicketRecord, error) {
	folderID, ok, err := p.store.FindFolderID(ctx, folderName)
	if err != nil {
		return nil, err
	}
	if !ok {
		p.logger.Warn("folder.not_found", "folder", folderName)
		return []entity.TicketRecord{}, nil
	}

	ticketsID, ok, err := p.store.FindTicketSubfolderID(ctx, folderID)
	if err != nil {
		return nil, err
	}
	if !ok {
		p.logger.Warn("folder.tickets.not_found", "folder", folderName)
		return []entity.TicketRecord{}, nil
	}

	files, err := p.store.ListPDFEntries(ctx, ticketsID)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		p.logger.Info("folder.no_pdfs", "folder", folderName)
		return []entity.TicketRecord{}, nil
	}

	records := make([]entity.TicketRecord, 0, len(files))
	for _, file := range files {
		if !p.policy.IsValid(file.Name) {
			p.logger.Debug("folder.file.skipped", "folder", folderName, "file", file.Name)
			continue
		}
		rec, err := p.extractFile(ctx, folderName, file)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

// extractFile opens the download stream for one file, extracts it, and
// closes the stream on every exit path before the next file starts.
func (p *FolderProcessor) extractFile(ctx context.Context, folderName string, file entity.FileHandle) (entity.TicketRecord, error) {
	stream, err := p.store.DownloadContent(ctx, file.ID)
	if err != nil {
		return entity.TicketRecord{}, wrapPDFFailure(file.Name, err)
	}
	defer func() { _ = stream.Close() }()

	rec, err := p.extractor.Extract(folderName, file.Name, stream)
	if err != nil {
		p.logger.Error("folder.file.failed", "folder", folderName, "file", file.Name, "err", err)
		return entity.TicketRecord{}, wrapPDFFailure(file.Name, err)
	}
	return rec, nil
}

func wrapPDFFailure(fileName string, err error) error {
	if _, ok := common.AsCore(err); ok {
		return err
	}
	return common.NewTechnicalError(common.CodePDFProcessing,
		fmt.Sprintf("processing PDF file: %s", fileName), err)
}
