// Package storage defines the document-store port consumed by the pipeline.
package storage

import (
	"context"
	"io"

	"github.com/christiancanari/advance-ticket-service/internal/entity"
)

// FolderRepository is the remote document store consumed by the pipeline.
// Lookups that can legitimately find nothing report absence through the
// boolean, never through the error; errors are reserved for faults.
type FolderRepository interface {
	// FindFolderID resolves a folder by name using a contains match. When
	// several folders match, the first result of the backing listing wins;
	// the tie-break is the store's ordering, not this port's.
	FindFolderID(ctx context.Context, name string) (id string, ok bool, err error)

	// FindTicketSubfolderID resolves the ticket subfolder under parentID,
	// matched by the configured name fragment.
	FindTicketSubfolderID(ctx context.Context, parentID string) (id string, ok bool, err error)

	// ListPDFEntries lists the PDF files directly under folderID.
	ListPDFEntries(ctx context.Context, folderID string) ([]entity.FileHandle, error)

	// DownloadContent opens the content stream of a file. The caller owns
	// the stream and must close it.
	DownloadContent(ctx context.Context, fileID string) (io.ReadCloser, error)
}
