package pipeline

import (
	"context"
	"io"
	"log/slog"

	"github.com/christiancanari/advance-ticket-service/internal/common"
	"github.com/christiancanari/advance-ticket-service/internal/entity"
	"github.com/christiancanari/advance-ticket-service/internal/workbook"
)

// FolderSource processes a single named folder.
type FolderSource interface {
	Process(ctx context.Context, folderName string) ([]entity.TicketRecord, error)
}

// BatchUseCase orchestrates a whole run: folders workbook in, result
// workbook out. Folders are processed sequentially in input order and the
// per-folder results are flattened without reordering or deduplication.
type BatchUseCase struct {
	reader  workbook.FolderReader
	writer  workbook.RecordWriter
	folders FolderSource
	logger  *slog.Logger
}

func NewBatchUseCase(reader workbook.FolderReader, writer workbook.RecordWriter, folders FolderSource, logger *slog.Logger) *BatchUseCase {
	if logger == nil {
		logger = slog.Default()
	}
	return &BatchUseCase{reader: reader, writer: writer, folders: folders, logger: logger}
}

// Process reads folder names from input, processes each folder in order and
// returns the rendered result workbook. There is no partial success: the
// first failure terminates the run, and an empty folder list is a business
// failure raised before the writer is ever invoked.
func (u *BatchUseCase) Process(ctx context.Context, input io.Reader) ([]byte, error) {
	u.logger.Info("batch.start")

	folders, err := u.readFolders(input)
	if err != nil {
		return nil, err
	}
	if len(folders) == 0 {
		u.logger.Warn("batch.no_folders")
		return nil, common.NewBusinessError(common.CodeNoFoldersFound, "no folders to process")
	}

	var records []entity.TicketRecord
	for _, folder := range folders {
		recs, err := u.folders.Process(ctx, folder)
		if err != nil {
			return nil, err
		}
		records = append(records, recs...)
	}
	u.logger.Info("batch.processed", "folders", len(folders), "records", len(records))

	out, err := u.writer.Export(records)
	if err != nil {
		u.logger.Error("batch.export.failed", "err", err)
		return nil, common.EnsureTechnical(err, common.CodeFileGeneration, "generating the result workbook")
	}
	u.logger.Info("batch.ok", "bytes", len(out))
	return out, nil
}

func (u *BatchUseCase) readFolders(input io.Reader) ([]string, error) {
	folders, err := u.reader.ReadFolderNames(input)
	if err != nil {
		u.logger.Error("batch.read.failed", "err", err)
		return nil, common.EnsureTechnical(err, common.CodeExcelInvalid, "the folders workbook is not valid")
	}
	u.logger.Debug("batch.read.ok", "folders", len(folders))
	return folders, nil
}
