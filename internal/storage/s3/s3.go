// Package s3 implements the folder repository against an S3-compatible
// object store, treating key prefixes as folders.
package s3

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/christiancanari/advance-ticket-service/constants"
	"github.com/christiancanari/advance-ticket-service/internal/common"
	"github.com/christiancanari/advance-ticket-service/internal/entity"
	"github.com/christiancanari/advance-ticket-service/internal/storage"
)

// Config holds the object-store connection settings.
type Config struct {
	Endpoint        string
	AccessKey       string
	SecretKey       string
	Bucket          string
	UseSSL          bool
	TicketSubfolder string
}

// Repository lists folders as common prefixes of a single bucket. Folder
// ids are full key prefixes ending in "/"; file ids are object keys.
type Repository struct {
	api             *minio.Client
	bucket          string
	ticketSubfolder string
	logger          *slog.Logger
}

var _ storage.FolderRepository = (*Repository)(nil)

func NewRepository(cfg Config, logger *slog.Logger) (*Repository, error) {
	if logger == nil {
		logger = slog.Default()
	}
	api, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create s3 client: %w", err)
	}
	return &Repository{
		api:             api,
		bucket:          cfg.Bucket,
		ticketSubfolder: cfg.TicketSubfolder,
		logger:          logger,
	}, nil
}

// FindFolderID resolves the first top-level prefix whose name contains name.
func (r *Repository) FindFolderID(ctx context.Context, name string) (string, bool, error) {
	return r.findPrefix(ctx, "", name)
}

// FindTicketSubfolderID resolves the ticket prefix directly under parentID.
func (r *Repository) FindTicketSubfolderID(ctx context.Context, parentID string) (string, bool, error) {
	return r.findPrefix(ctx, parentID, r.ticketSubfolder)
}

// findPrefix scans the non-recursive listing under parent for the first
// "directory" key containing fragment, case-insensitively. Listing order is
// the store's key order.
func (r *Repository) findPrefix(ctx context.Context, parent, fragment string) (string, bool, error) {
	fragment = strings.ToLower(fragment)
	opts := minio.ListObjectsOptions{Prefix: parent, Recursive: false}
	for obj := range r.api.ListObjects(ctx, r.bucket, opts) {
		if obj.Err != nil {
			return "", false, common.NewTechnicalError(common.CodeStorageAccess,
				"listing object-store folders", obj.Err)
		}
		if !strings.HasSuffix(obj.Key, "/") {
			continue
		}
		if strings.Contains(strings.ToLower(folderLeaf(obj.Key)), fragment) {
			return obj.Key, true, nil
		}
	}
	r.logger.Warn("s3.prefix.not_found", "parent", parent, "fragment", fragment)
	return "", false, nil
}

func (r *Repository) ListPDFEntries(ctx context.Context, folderID string) ([]entity.FileHandle, error) {
	opts := minio.ListObjectsOptions{Prefix: folderID, Recursive: false}
	var files []entity.FileHandle
	for obj := range r.api.ListObjects(ctx, r.bucket, opts) {
		if obj.Err != nil {
			return nil, common.NewTechnicalError(common.CodeStorageAccess,
				"listing PDF files in the object store", obj.Err)
		}
		if obj.Key == folderID || strings.HasSuffix(obj.Key, "/") {
			continue
		}
		name := objectBaseName(obj.Key)
		if constants.NormalizeExt(path.Ext(name)) != "pdf" {
			continue
		}
		files = append(files, entity.FileHandle{ID: obj.Key, Name: name})
	}
	r.logger.Debug("s3.list.ok", "prefix", folderID, "files", len(files))
	return files, nil
}

func (r *Repository) DownloadContent(ctx context.Context, fileID string) (io.ReadCloser, error) {
	obj, err := r.api.GetObject(ctx, r.bucket, fileID, minio.GetObjectOptions{})
	if err != nil {
		return nil, common.NewTechnicalError(common.CodeStorageAccess,
			fmt.Sprintf("downloading file from the object store: %s", fileID), err)
	}
	return obj, nil
}

// folderLeaf returns the last path element of a prefix key ("a/b/c/" -> "c").
func folderLeaf(key string) string {
	return path.Base(strings.TrimSuffix(key, "/"))
}

// objectBaseName returns the file name of an object key.
func objectBaseName(key string) string {
	return path.Base(key)
}
