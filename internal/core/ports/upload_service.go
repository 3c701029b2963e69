package ports

import (
	"context"
	"io"

	"github.com/talenthub/jobboard-api/internal/core/domain"
)

// UploadInput carries one uploaded multipart file.
type UploadInput struct {
	OwnerID  string
	Purpose  domain.Purpose
	Filename string
	Size     int64
	MIMEType string
	Content  io.Reader
}

// DownloadResult resolves a stored file for serving.
type DownloadResult struct {
	AbsPath     string
	Filename    string
	ContentType string
}

// UploadService implements the file upload lifecycle: policy validation,
// purpose-scoped storage, replacement of the previous file, and path
// bookkeeping on the owning identity.
type UploadService interface {
	// Store validates and persists one file, returning the relative path
	// recorded on the identity.
	Store(ctx context.Context, in UploadInput) (string, error)

	// Resolve locates the identity's stored file for a purpose.
	Resolve(ctx context.Context, userID string, purpose domain.Purpose) (*DownloadResult, error)

	// Delete clears the identity's path field and removes the file.
	Delete(ctx context.Context, userID string, purpose domain.Purpose) error
}
