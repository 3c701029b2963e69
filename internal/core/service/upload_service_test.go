package service

import (
	"context"
	"strings"
	"testing"

	"github.com/talenthub/jobboard-api/internal/core/domain"
	"github.com/talenthub/jobboard-api/internal/core/ports"
)

func newTestUploadService() (*UploadService, *stubUserRepo, *memStore, string) {
	repo := newStubUserRepo()
	owner := repo.add(&domain.User{Email: "alice@example.com", Role: domain.RoleJobseeker, IsActive: true})
	store := newMemStore()
	return NewUploadService(repo, store, testLog), repo, store, owner.ID
}

func avatarInput(ownerID, filename string, content string) ports.UploadInput {
	return ports.UploadInput{
		OwnerID:  ownerID,
		Purpose:  domain.PurposeAvatar,
		Filename: filename,
		Size:     int64(len(content)),
		MIMEType: "image/png",
		Content:  strings.NewReader(content),
	}
}

func TestUploadService_RejectsOversizedFile(t *testing.T) {
	svc, _, store, owner := newTestUploadService()

	in := avatarInput(owner, "photo.png", "x")
	in.Size = 5<<20 + 1
	if _, err := svc.Store(context.Background(), in); err != domain.ErrFileTooLarge {
		t.Fatalf("expected ErrFileTooLarge, got %v", err)
	}
	if len(store.files) != 0 || len(store.temps) != 0 {
		t.Fatalf("rejected upload must not leave files behind")
	}
}

func TestUploadService_RejectsWrongMIMEType(t *testing.T) {
	svc, _, _, owner := newTestUploadService()

	in := ports.UploadInput{
		OwnerID:  owner,
		Purpose:  domain.PurposeResume,
		Filename: "cv.pdf",
		Size:     10,
		MIMEType: "image/png",
		Content:  strings.NewReader("not a pdf"),
	}
	if _, err := svc.Store(context.Background(), in); err != domain.ErrInvalidFileType {
		t.Fatalf("expected ErrInvalidFileType, got %v", err)
	}
}

func TestUploadService_RejectsBadFilenames(t *testing.T) {
	svc, _, store, owner := newTestUploadService()

	for _, name := range []string{
		"../../etc/passwd.png",
		"photo.png.exe",
		"ph\x00oto.png",
		"résumé.png",
		"photo",
	} {
		if _, err := svc.Store(context.Background(), avatarInput(owner, name, "img")); err != domain.ErrInvalidFilename {
			t.Fatalf("filename %q: expected ErrInvalidFilename, got %v", name, err)
		}
	}
	if len(store.files) != 0 || len(store.temps) != 0 {
		t.Fatalf("rejected uploads must not leave files behind")
	}
}

func TestUploadService_AcceptsUppercaseExtension(t *testing.T) {
	svc, _, store, owner := newTestUploadService()

	rel, err := svc.Store(context.Background(), avatarInput(owner, "Photo (1).PNG", "img"))
	if err != nil {
		t.Fatalf("Store returned error: %v", err)
	}
	if !strings.HasSuffix(rel, ".png") {
		t.Fatalf("expected lowercased stored extension, got %s", rel)
	}
	if !store.Exists(rel) {
		t.Fatalf("stored file missing")
	}
}

func TestUploadService_RejectsUnknownPurpose(t *testing.T) {
	svc, _, _, owner := newTestUploadService()

	in := avatarInput(owner, "photo.png", "img")
	in.Purpose = domain.Purpose("banner")
	if _, err := svc.Store(context.Background(), in); err != domain.ErrUnknownField {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}
}

func TestUploadService_StoreCommitsReferenceAndPromotes(t *testing.T) {
	svc, repo, store, owner := newTestUploadService()

	rel, err := svc.Store(context.Background(), avatarInput(owner, "photo.png", "img-bytes"))
	if err != nil {
		t.Fatalf("Store returned error: %v", err)
	}
	if !strings.HasPrefix(rel, "profiles/") {
		t.Fatalf("expected purpose-scoped path, got %s", rel)
	}
	if !store.Exists(rel) {
		t.Fatalf("final file missing")
	}
	if len(store.temps) != 0 {
		t.Fatalf("temp file left behind after promote")
	}

	user, err := repo.FindByID(context.Background(), owner)
	if err != nil {
		t.Fatalf("FindByID failed: %v", err)
	}
	if user.ProfilePicturePath != rel {
		t.Fatalf("expected path %s recorded on user, got %s", rel, user.ProfilePicturePath)
	}
}

func TestUploadService_ReplacesPreviousFile(t *testing.T) {
	svc, repo, store, owner := newTestUploadService()

	first, err := svc.Store(context.Background(), avatarInput(owner, "old.png", "v1"))
	if err != nil {
		t.Fatalf("first Store failed: %v", err)
	}
	second, err := svc.Store(context.Background(), avatarInput(owner, "new.png", "v2"))
	if err != nil {
		t.Fatalf("second Store failed: %v", err)
	}

	if store.Exists(first) {
		t.Fatalf("replaced file %s still present", first)
	}
	if !store.Exists(second) {
		t.Fatalf("replacement file %s missing", second)
	}
	user, _ := repo.FindByID(context.Background(), owner)
	if user.ProfilePicturePath != second {
		t.Fatalf("expected path %s, got %s", second, user.ProfilePicturePath)
	}
}

func TestUploadService_CompensatesFailedCommit(t *testing.T) {
	svc, repo, store, owner := newTestUploadService()
	repo.failSetUploadPath = true

	if _, err := svc.Store(context.Background(), avatarInput(owner, "photo.png", "img")); err != domain.ErrPersistenceFailed {
		t.Fatalf("expected ErrPersistenceFailed, got %v", err)
	}
	if len(store.files) != 0 || len(store.temps) != 0 {
		t.Fatalf("failed commit must not leave files behind")
	}
	user, _ := repo.FindByID(context.Background(), owner)
	if user.ProfilePicturePath != "" {
		t.Fatalf("expected no path recorded, got %s", user.ProfilePicturePath)
	}
}

func TestUploadService_ResolveUnsetIsNotFound(t *testing.T) {
	svc, _, _, owner := newTestUploadService()

	if _, err := svc.Resolve(context.Background(), owner, domain.PurposeResume); err != domain.ErrFileNotFound {
		t.Fatalf("expected ErrFileNotFound, got %v", err)
	}
}

func TestUploadService_ResolveReturnsContentType(t *testing.T) {
	svc, _, _, owner := newTestUploadService()

	in := ports.UploadInput{
		OwnerID:  owner,
		Purpose:  domain.PurposeResume,
		Filename: "cv.pdf",
		Size:     9,
		MIMEType: "application/pdf",
		Content:  strings.NewReader("pdf-bytes"),
	}
	rel, err := svc.Store(context.Background(), in)
	if err != nil {
		t.Fatalf("Store failed: %v", err)
	}

	res, err := svc.Resolve(context.Background(), owner, domain.PurposeResume)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if res.ContentType != "application/pdf" {
		t.Fatalf("unexpected content type %s", res.ContentType)
	}
	if res.Filename != strings.TrimPrefix(rel, "resumes/") {
		t.Fatalf("unexpected filename %s", res.Filename)
	}
}

func TestUploadService_ResumeLifecycle(t *testing.T) {
	svc, repo, store, owner := newTestUploadService()
	ctx := context.Background()

	resume := func(name, content string) ports.UploadInput {
		return ports.UploadInput{
			OwnerID:  owner,
			Purpose:  domain.PurposeResume,
			Filename: name,
			Size:     int64(len(content)),
			MIMEType: "application/pdf",
			Content:  strings.NewReader(content),
		}
	}

	first, err := svc.Store(ctx, resume("resume.pdf", "first version"))
	if err != nil {
		t.Fatalf("first upload failed: %v", err)
	}
	user, _ := repo.FindByID(ctx, owner)
	if user.ResumePath != first || !store.Exists(first) {
		t.Fatalf("expected %s referenced and stored", first)
	}

	second, err := svc.Store(ctx, resume("resume2.pdf", "second version"))
	if err != nil {
		t.Fatalf("second upload failed: %v", err)
	}
	if store.Exists(first) {
		t.Fatalf("old resume still on storage")
	}
	user, _ = repo.FindByID(ctx, owner)
	if user.ResumePath != second {
		t.Fatalf("expected reference moved to %s, got %s", second, user.ResumePath)
	}

	oversized := resume("resume3.pdf", "x")
	oversized.Size = 10<<20 + 1
	if _, err := svc.Store(ctx, oversized); err != domain.ErrFileTooLarge {
		t.Fatalf("expected ErrFileTooLarge, got %v", err)
	}
	user, _ = repo.FindByID(ctx, owner)
	if user.ResumePath != second || !store.Exists(second) {
		t.Fatalf("rejected upload must not disturb the stored resume")
	}
}

func TestUploadService_DeleteTwiceIsNotFound(t *testing.T) {
	svc, repo, store, owner := newTestUploadService()

	in := ports.UploadInput{
		OwnerID:  owner,
		Purpose:  domain.PurposeResume,
		Filename: "cv.docx",
		Size:     5,
		MIMEType: "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		Content:  strings.NewReader("bytes"),
	}
	rel, err := svc.Store(context.Background(), in)
	if err != nil {
		t.Fatalf("Store failed: %v", err)
	}

	if err := svc.Delete(context.Background(), owner, domain.PurposeResume); err != nil {
		t.Fatalf("first Delete failed: %v", err)
	}
	if store.Exists(rel) {
		t.Fatalf("file still present after delete")
	}
	user, _ := repo.FindByID(context.Background(), owner)
	if user.ResumePath != "" {
		t.Fatalf("expected cleared path, got %s", user.ResumePath)
	}

	if err := svc.Delete(context.Background(), owner, domain.PurposeResume); err != domain.ErrFileNotFound {
		t.Fatalf("expected ErrFileNotFound on second delete, got %v", err)
	}
}
