package ports

import (
	"io"
	"time"
)

// StoredFileInfo describes one file in a storage directory listing.
type StoredFileInfo struct {
	Name    string
	ModTime time.Time
}

// FileStore abstracts the purpose-scoped upload tree. Paths are relative to
// the upload root and use forward slashes (e.g. "resumes/resume-….pdf").
type FileStore interface {
	// WriteTemp streams content to rel's temporary sibling (rel + ".part").
	WriteTemp(rel string, r io.Reader) error
	// Promote renames the temporary file into its final name.
	Promote(rel string) error
	// DiscardTemp removes a temporary file left by a failed upload.
	DiscardTemp(rel string) error

	// Remove deletes a stored file. Returns domain.ErrFileNotFound when the
	// file does not exist.
	Remove(rel string) error
	Exists(rel string) bool
	AbsPath(rel string) string

	// ListDir returns the regular files directly inside dir (relative to the
	// root; "" lists the root itself, excluding subdirectories).
	ListDir(dir string) ([]StoredFileInfo, error)

	// Relocate moves a file sitting in the upload root into dir.
	Relocate(name, dir string) error
}
