package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/talenthub/jobboard-api/internal/core/domain"
	"github.com/talenthub/jobboard-api/internal/core/ports"
)

const tempSuffix = ".part"

// LocalStore keeps uploaded files on the local filesystem under a single
// root with purpose-scoped subdirectories (profiles/, resumes/).
type LocalStore struct {
	root string
}

// NewLocalStore creates the upload root and its purpose subdirectories.
func NewLocalStore(root string) (*LocalStore, error) {
	for _, dir := range []string{
		root,
		filepath.Join(root, domain.PurposeAvatar.Subdir()),
		filepath.Join(root, domain.PurposeResume.Subdir()),
	} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create upload dir %s: %w", dir, err)
		}
	}
	return &LocalStore{root: root}, nil
}

func (s *LocalStore) abs(rel string) string {
	return filepath.Join(s.root, filepath.FromSlash(rel))
}

// WriteTemp streams content to rel's temporary sibling (rel + ".part").
func (s *LocalStore) WriteTemp(rel string, r io.Reader) error {
	f, err := os.Create(s.abs(rel) + tempSuffix)
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(f.Name())
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return fmt.Errorf("close temp file: %w", err)
	}
	return nil
}

// Promote renames the temporary file into its final name.
func (s *LocalStore) Promote(rel string) error {
	abs := s.abs(rel)
	if err := os.Rename(abs+tempSuffix, abs); err != nil {
		return fmt.Errorf("promote %s: %w", rel, err)
	}
	return nil
}

// DiscardTemp removes a temporary file left by a failed upload.
func (s *LocalStore) DiscardTemp(rel string) error {
	if err := os.Remove(s.abs(rel) + tempSuffix); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("discard temp %s: %w", rel, err)
	}
	return nil
}

// Remove deletes a stored file. A missing file maps to ErrFileNotFound.
func (s *LocalStore) Remove(rel string) error {
	if err := os.Remove(s.abs(rel)); err != nil {
		if os.IsNotExist(err) {
			return domain.ErrFileNotFound
		}
		return fmt.Errorf("remove %s: %w", rel, err)
	}
	return nil
}

func (s *LocalStore) Exists(rel string) bool {
	info, err := os.Stat(s.abs(rel))
	return err == nil && info.Mode().IsRegular()
}

func (s *LocalStore) AbsPath(rel string) string {
	return s.abs(rel)
}

// ListDir returns the regular files directly inside dir, skipping
// subdirectories. An empty dir lists the upload root itself.
func (s *LocalStore) ListDir(dir string) ([]ports.StoredFileInfo, error) {
	entries, err := os.ReadDir(filepath.Join(s.root, filepath.FromSlash(dir)))
	if err != nil {
		return nil, fmt.Errorf("list %q: %w", dir, err)
	}

	files := make([]ports.StoredFileInfo, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		files = append(files, ports.StoredFileInfo{Name: e.Name(), ModTime: info.ModTime()})
	}
	return files, nil
}

// Relocate moves a file sitting in the upload root into dir.
func (s *LocalStore) Relocate(name, dir string) error {
	if err := os.Rename(filepath.Join(s.root, name), filepath.Join(s.root, dir, name)); err != nil {
		return fmt.Errorf("relocate %s to %s: %w", name, dir, err)
	}
	return nil
}
