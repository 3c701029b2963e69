package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/talenthub/jobboard-api/internal/core/domain"
)

func newTestStore(t *testing.T) (*LocalStore, string) {
	t.Helper()
	root := t.TempDir()
	s, err := NewLocalStore(root)
	if err != nil {
		t.Fatalf("NewLocalStore failed: %v", err)
	}
	return s, root
}

func TestLocalStore_CreatesPurposeDirectories(t *testing.T) {
	_, root := newTestStore(t)

	for _, dir := range []string{"profiles", "resumes"} {
		info, err := os.Stat(filepath.Join(root, dir))
		if err != nil || !info.IsDir() {
			t.Fatalf("expected directory %s, got %v", dir, err)
		}
	}
}

func TestLocalStore_WriteTempThenPromote(t *testing.T) {
	s, root := newTestStore(t)
	rel := "resumes/cv.pdf"

	if err := s.WriteTemp(rel, strings.NewReader("pdf-bytes")); err != nil {
		t.Fatalf("WriteTemp failed: %v", err)
	}
	if s.Exists(rel) {
		t.Fatalf("final name must not exist before promote")
	}
	if _, err := os.Stat(filepath.Join(root, "resumes", "cv.pdf.part")); err != nil {
		t.Fatalf("temp file missing: %v", err)
	}

	if err := s.Promote(rel); err != nil {
		t.Fatalf("Promote failed: %v", err)
	}
	if !s.Exists(rel) {
		t.Fatalf("final file missing after promote")
	}
	if _, err := os.Stat(filepath.Join(root, "resumes", "cv.pdf.part")); !os.IsNotExist(err) {
		t.Fatalf("temp file left after promote: %v", err)
	}

	b, err := os.ReadFile(s.AbsPath(rel))
	if err != nil || string(b) != "pdf-bytes" {
		t.Fatalf("unexpected content %q, err %v", b, err)
	}
}

func TestLocalStore_DiscardTemp(t *testing.T) {
	s, root := newTestStore(t)
	rel := "profiles/photo.png"

	if err := s.WriteTemp(rel, strings.NewReader("img")); err != nil {
		t.Fatalf("WriteTemp failed: %v", err)
	}
	if err := s.DiscardTemp(rel); err != nil {
		t.Fatalf("DiscardTemp failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, "profiles", "photo.png.part")); !os.IsNotExist(err) {
		t.Fatalf("temp file still present: %v", err)
	}
	// Discarding again is a no-op.
	if err := s.DiscardTemp(rel); err != nil {
		t.Fatalf("second DiscardTemp failed: %v", err)
	}
}

func TestLocalStore_RemoveMissingFile(t *testing.T) {
	s, _ := newTestStore(t)

	if err := s.Remove("resumes/missing.pdf"); err != domain.ErrFileNotFound {
		t.Fatalf("expected ErrFileNotFound, got %v", err)
	}
}

func TestLocalStore_ListDirSkipsSubdirectories(t *testing.T) {
	s, root := newTestStore(t)

	if err := os.WriteFile(filepath.Join(root, "stray.pdf"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	files, err := s.ListDir("")
	if err != nil {
		t.Fatalf("ListDir failed: %v", err)
	}
	if len(files) != 1 || files[0].Name != "stray.pdf" {
		t.Fatalf("expected only stray.pdf in root listing, got %+v", files)
	}
}

func TestLocalStore_Relocate(t *testing.T) {
	s, root := newTestStore(t)

	if err := os.WriteFile(filepath.Join(root, "cv.pdf"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := s.Relocate("cv.pdf", "resumes"); err != nil {
		t.Fatalf("Relocate failed: %v", err)
	}
	if !s.Exists("resumes/cv.pdf") {
		t.Fatalf("relocated file missing")
	}
	if _, err := os.Stat(filepath.Join(root, "cv.pdf")); !os.IsNotExist(err) {
		t.Fatalf("original still present: %v", err)
	}
}
