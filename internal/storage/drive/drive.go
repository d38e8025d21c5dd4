// Package drive implements the folder repository against Google Drive.
package drive

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/christiancanari/advance-ticket-service/constants"
	"github.com/christiancanari/advance-ticket-service/internal/common"
	"github.com/christiancanari/advance-ticket-service/internal/entity"
	"github.com/christiancanari/advance-ticket-service/internal/storage"
)

// Config holds the Drive client settings.
type Config struct {
	CredentialsFile string
	TicketSubfolder string
}

// Repository queries folders and files through the Drive v3 API. Shared
// drives are included in every query.
type Repository struct {
	svc             *drive.Service
	ticketSubfolder string
	logger          *slog.Logger
}

var _ storage.FolderRepository = (*Repository)(nil)

// NewRepository builds a read-only Drive client from a service account
// credentials file.
func NewRepository(ctx context.Context, cfg Config, logger *slog.Logger) (*Repository, error) {
	if logger == nil {
		logger = slog.Default()
	}
	svc, err := drive.NewService(ctx,
		option.WithCredentialsFile(cfg.CredentialsFile),
		option.WithScopes(drive.DriveReadonlyScope),
	)
	if err != nil {
		return nil, fmt.Errorf("create drive service: %w", err)
	}
	return &Repository{svc: svc, ticketSubfolder: cfg.TicketSubfolder, logger: logger}, nil
}

func (r *Repository) FindFolderID(ctx context.Context, name string) (string, bool, error) {
	query := fmt.Sprintf("mimeType='%s' and name contains '%s' and trashed=false",
		constants.DriveFolderMimeType, escapeQuery(name))

	id, ok, err := r.firstFolder(ctx, query)
	if err != nil {
		return "", false, common.NewTechnicalError(common.CodeStorageAccess,
			fmt.Sprintf("searching Drive for folder: %s", name), err)
	}
	if !ok {
		r.logger.Warn("drive.folder.not_found", "folder", name)
		return "", false, nil
	}
	r.logger.Debug("drive.folder.found", "folder", name, "id", id)
	return id, true, nil
}

func (r *Repository) FindTicketSubfolderID(ctx context.Context, parentID string) (string, bool, error) {
	query := fmt.Sprintf("'%s' in parents and mimeType='%s' and name contains '%s' and trashed=false",
		parentID, constants.DriveFolderMimeType, escapeQuery(r.ticketSubfolder))

	id, ok, err := r.firstFolder(ctx, query)
	if err != nil {
		return "", false, common.NewTechnicalError(common.CodeStorageAccess,
			"searching Drive for the ticket subfolder", err)
	}
	if !ok {
		r.logger.Warn("drive.tickets.not_found", "parent_id", parentID)
		return "", false, nil
	}
	return id, true, nil
}

// firstFolder runs a folder query and returns the first hit. The tie-break
// among multiple matches is Drive's listing order.
func (r *Repository) firstFolder(ctx context.Context, query string) (string, bool, error) {
	list, err := r.svc.Files.List().
		Q(query).
		Fields(googleapi.Field("files(id)")).
		SupportsAllDrives(true).
		IncludeItemsFromAllDrives(true).
		Context(ctx).
		Do()
	if err != nil {
		return "", false, err
	}
	if len(list.Files) == 0 {
		return "", false, nil
	}
	return list.Files[0].Id, true, nil
}

func (r *Repository) ListPDFEntries(ctx context.Context, folderID string) ([]entity.FileHandle, error) {
	query := fmt.Sprintf("'%s' in parents and mimeType='%s' and trashed=false",
		folderID, constants.PDFMimeType)

	list, err := r.svc.Files.List().
		Q(query).
		Fields(googleapi.Field("files(id, name)")).
		SupportsAllDrives(true).
		IncludeItemsFromAllDrives(true).
		Context(ctx).
		Do()
	if err != nil {
		return nil, common.NewTechnicalError(common.CodeStorageAccess,
			"listing PDF files in Drive", err)
	}

	files := make([]entity.FileHandle, 0, len(list.Files))
	for _, f := range list.Files {
		files = append(files, entity.FileHandle{ID: f.Id, Name: f.Name})
	}
	r.logger.Debug("drive.list.ok", "folder_id", folderID, "files", len(files))
	return files, nil
}

func (r *Repository) DownloadContent(ctx context.Context, fileID string) (io.ReadCloser, error) {
	resp, err := r.svc.Files.Get(fileID).Context(ctx).Download()
	if err != nil {
		return nil, common.NewTechnicalError(common.CodeStorageAccess,
			fmt.Sprintf("downloading file from Drive: %s", fileID), err)
	}
	return resp.Body, nil
}

// escapeQuery escapes backslashes and single quotes for Drive query strings.
func escapeQuery(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `'`, `\'`)
}
