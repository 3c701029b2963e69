package sweep

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/talenthub/jobboard-api/internal/infrastructure/storage"
)

type stubLister struct {
	paths []string
	err   error
}

func (l *stubLister) ListUploadPaths(context.Context) ([]string, error) {
	return l.paths, l.err
}

func newTestSweeper(t *testing.T, lister *stubLister, grace time.Duration) (*Sweeper, string) {
	t.Helper()
	root := t.TempDir()
	store, err := storage.NewLocalStore(root)
	if err != nil {
		t.Fatalf("NewLocalStore failed: %v", err)
	}
	return New(lister, store, time.Hour, grace, zerolog.Nop()), root
}

// writeAged creates a file whose modification time is well outside any grace
// window.
func writeAged(t *testing.T, root, rel string) {
	t.Helper()
	abs := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.WriteFile(abs, []byte("content"), 0o644); err != nil {
		t.Fatalf("write %s: %v", rel, err)
	}
	old := time.Now().Add(-2 * time.Hour)
	if err := os.Chtimes(abs, old, old); err != nil {
		t.Fatalf("chtimes %s: %v", rel, err)
	}
}

func TestSweeper_DeletesOrphansKeepsReferenced(t *testing.T) {
	lister := &stubLister{paths: []string{"profiles/avatar-u1.png", "resumes/resume-u1.pdf"}}
	s, root := newTestSweeper(t, lister, time.Minute)

	writeAged(t, root, "profiles/avatar-u1.png")
	writeAged(t, root, "profiles/avatar-orphan.png")
	writeAged(t, root, "resumes/resume-u1.pdf")
	writeAged(t, root, "resumes/resume-orphan.pdf")

	res := s.Run(context.Background())
	if res.Deleted != 2 {
		t.Fatalf("expected 2 deletions, got %+v", res)
	}
	if _, err := os.Stat(filepath.Join(root, "profiles", "avatar-u1.png")); err != nil {
		t.Fatalf("referenced avatar deleted: %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, "profiles", "avatar-orphan.png")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected orphan avatar gone, got %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, "resumes", "resume-orphan.pdf")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected orphan resume gone, got %v", err)
	}

	// A second run finds nothing left to collect.
	res = s.Run(context.Background())
	if res.Deleted != 0 {
		t.Fatalf("expected idempotent second run, got %+v", res)
	}
}

func TestSweeper_GraceWindowProtectsFreshFiles(t *testing.T) {
	lister := &stubLister{}
	s, root := newTestSweeper(t, lister, time.Hour)

	// Fresh orphan: unreferenced but written moments ago.
	abs := filepath.Join(root, "profiles", "avatar-inflight.png")
	if err := os.WriteFile(abs, []byte("content"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	res := s.Run(context.Background())
	if res.Deleted != 0 {
		t.Fatalf("fresh file must survive the sweep, got %+v", res)
	}
	if _, err := os.Stat(abs); err != nil {
		t.Fatalf("fresh file deleted: %v", err)
	}
}

func TestSweeper_SkipsTempAndHiddenFiles(t *testing.T) {
	lister := &stubLister{}
	s, root := newTestSweeper(t, lister, time.Minute)

	writeAged(t, root, "resumes/resume-upload.pdf.part")
	writeAged(t, root, "resumes/.DS_Store")

	res := s.Run(context.Background())
	if res.Deleted != 0 {
		t.Fatalf("temp and hidden files must not be deleted, got %+v", res)
	}
	if _, err := os.Stat(filepath.Join(root, "resumes", "resume-upload.pdf.part")); err != nil {
		t.Fatalf("temp file deleted: %v", err)
	}
}

func TestSweeper_RelocatesStrays(t *testing.T) {
	lister := &stubLister{}
	s, root := newTestSweeper(t, lister, time.Minute)

	writeAged(t, root, "stray-resume.pdf")
	writeAged(t, root, "stray-photo.png")
	writeAged(t, root, "notes.txt")

	res := s.Run(context.Background())
	if res.Relocated != 2 {
		t.Fatalf("expected 2 relocations, got %+v", res)
	}
	if _, err := os.Stat(filepath.Join(root, "resumes", "stray-resume.pdf")); err != nil {
		t.Fatalf("resume not relocated: %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, "profiles", "stray-photo.png")); err != nil {
		t.Fatalf("photo not relocated: %v", err)
	}
	// Unknown extension stays where it is.
	if _, err := os.Stat(filepath.Join(root, "notes.txt")); err != nil {
		t.Fatalf("unknown-extension file moved: %v", err)
	}
}

func TestSweeper_RelocationCollisionLeavesStray(t *testing.T) {
	lister := &stubLister{paths: []string{"resumes/cv.pdf"}}
	s, root := newTestSweeper(t, lister, time.Minute)

	writeAged(t, root, "resumes/cv.pdf")
	writeAged(t, root, "cv.pdf")

	res := s.Run(context.Background())
	if res.Relocated != 0 {
		t.Fatalf("colliding stray must not overwrite, got %+v", res)
	}
	if _, err := os.Stat(filepath.Join(root, "cv.pdf")); err != nil {
		t.Fatalf("stray removed on collision: %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, "resumes", "cv.pdf")); err != nil {
		t.Fatalf("organized file lost: %v", err)
	}
}

func TestSweeper_AbortsWithoutReferencedSet(t *testing.T) {
	lister := &stubLister{err: errors.New("mongo down")}
	s, root := newTestSweeper(t, lister, time.Minute)

	writeAged(t, root, "profiles/avatar-orphan.png")

	res := s.Run(context.Background())
	if res.Deleted != 0 || res.Errors == 0 {
		t.Fatalf("sweep must abort without the referenced set, got %+v", res)
	}
	if _, err := os.Stat(filepath.Join(root, "profiles", "avatar-orphan.png")); err != nil {
		t.Fatalf("file deleted during aborted sweep: %v", err)
	}
}
