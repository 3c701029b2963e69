package service

import (
	"context"
	"errors"
	"fmt"
	"path"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/talenthub/jobboard-api/internal/core/domain"
	"github.com/talenthub/jobboard-api/internal/core/ports"
)

// UploadService implements the file upload lifecycle: per-purpose policy
// validation, purpose-scoped storage, replacement of the previous file, and
// path bookkeeping on the owning identity.
//
// New files are written under a temporary name and renamed into place only
// after the identity's path field commits, so the sweeper never sees a final
// file without a reference and a failed commit never leaves a final file.
type UploadService struct {
	users ports.UserRepository
	store ports.FileStore
	log   zerolog.Logger
	now   func() time.Time
	// suffix yields the random component of stored file names.
	suffix func() string
}

func NewUploadService(users ports.UserRepository, store ports.FileStore, log zerolog.Logger) *UploadService {
	return &UploadService{
		users:  users,
		store:  store,
		log:    log,
		now:    time.Now,
		suffix: func() string { return uuid.NewString()[:8] },
	}
}

// filenamePattern builds the allowed-filename regexp for a policy. The
// character class keeps path separators and control characters out of
// client-supplied names.
func filenamePattern(policy domain.UploadPolicy) *regexp.Regexp {
	exts := make([]string, len(policy.Extensions))
	for i, e := range policy.Extensions {
		exts[i] = regexp.QuoteMeta(strings.TrimPrefix(e, "."))
	}
	return regexp.MustCompile(`(?i)^[A-Za-z0-9 _.()-]+\.(` + strings.Join(exts, "|") + `)$`)
}

var filenamePatterns = func() map[domain.Purpose]*regexp.Regexp {
	patterns := make(map[domain.Purpose]*regexp.Regexp, 2)
	for _, p := range []domain.Purpose{domain.PurposeAvatar, domain.PurposeResume} {
		policy, _ := domain.PolicyFor(p)
		patterns[p] = filenamePattern(policy)
	}
	return patterns
}()

// validate applies the fixed per-purpose policy table.
func validate(in ports.UploadInput) error {
	policy, ok := domain.PolicyFor(in.Purpose)
	if !ok {
		return domain.ErrUnknownField
	}
	if in.Size > policy.MaxSize {
		return domain.ErrFileTooLarge
	}
	if _, ok := policy.MIMETypes[strings.ToLower(in.MIMEType)]; !ok {
		return domain.ErrInvalidFileType
	}
	if !filenamePatterns[in.Purpose].MatchString(in.Filename) {
		return domain.ErrInvalidFilename
	}
	return nil
}

// Store validates and persists one file, returning the relative path recorded
// on the identity. The previous file for the same purpose is deleted
// best-effort after the new reference commits; a failed delete leaves an
// orphan for the sweeper.
func (s *UploadService) Store(ctx context.Context, in ports.UploadInput) (string, error) {
	if err := validate(in); err != nil {
		return "", err
	}

	user, err := s.users.FindByID(ctx, in.OwnerID)
	if err != nil {
		return "", err
	}
	oldPath := user.UploadPath(in.Purpose)

	ext := strings.ToLower(path.Ext(in.Filename))
	name := fmt.Sprintf("%s-%s-%d-%s%s", in.Purpose, in.OwnerID, s.now().UnixNano(), s.suffix(), ext)
	rel := in.Purpose.Subdir() + "/" + name

	if err := s.store.WriteTemp(rel, in.Content); err != nil {
		s.log.Error().Err(err).Str("path", rel).Msg("upload write failed")
		return "", domain.ErrStorageFailed
	}

	if err := s.users.SetUploadPath(ctx, in.OwnerID, in.Purpose, rel); err != nil {
		// Compensate: the temp file must not outlive the failed commit.
		if derr := s.store.DiscardTemp(rel); derr != nil {
			s.log.Warn().Err(derr).Str("path", rel).Msg("could not discard temp file")
		}
		s.log.Error().Err(err).Str("user_id", in.OwnerID).Msg("upload reference update failed")
		return "", domain.ErrPersistenceFailed
	}

	if err := s.store.Promote(rel); err != nil {
		// Reference committed but the final rename failed; the dangling
		// reference surfaces as 404 on access and the part file is swept.
		s.log.Error().Err(err).Str("path", rel).Msg("upload promote failed")
		return "", domain.ErrStorageFailed
	}

	if oldPath != "" && oldPath != rel {
		if err := s.store.Remove(oldPath); err != nil && !errors.Is(err, domain.ErrFileNotFound) {
			s.log.Warn().Err(err).Str("path", oldPath).Msg("could not delete replaced file, leaving orphan")
		}
	}

	s.log.Info().
		Str("user_id", in.OwnerID).
		Str("purpose", string(in.Purpose)).
		Str("path", rel).
		Int64("size", in.Size).
		Msg("file uploaded")

	return rel, nil
}

// Resolve locates the identity's stored file for a purpose. An unset field or
// a missing file both surface as ErrFileNotFound.
func (s *UploadService) Resolve(ctx context.Context, userID string, purpose domain.Purpose) (*ports.DownloadResult, error) {
	if _, ok := domain.PolicyFor(purpose); !ok {
		return nil, domain.ErrUnknownField
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	rel := user.UploadPath(purpose)
	if rel == "" || !s.store.Exists(rel) {
		return nil, domain.ErrFileNotFound
	}

	return &ports.DownloadResult{
		AbsPath:     s.store.AbsPath(rel),
		Filename:    path.Base(rel),
		ContentType: domain.ContentTypeFor(strings.ToLower(path.Ext(rel))),
	}, nil
}

// Delete clears the identity's path field and removes the file. A second
// delete finds the field unset and reports ErrFileNotFound.
func (s *UploadService) Delete(ctx context.Context, userID string, purpose domain.Purpose) error {
	if _, ok := domain.PolicyFor(purpose); !ok {
		return domain.ErrUnknownField
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	rel := user.UploadPath(purpose)
	if rel == "" {
		return domain.ErrFileNotFound
	}

	if err := s.users.SetUploadPath(ctx, userID, purpose, ""); err != nil {
		return domain.ErrPersistenceFailed
	}

	if err := s.store.Remove(rel); err != nil && !errors.Is(err, domain.ErrFileNotFound) {
		s.log.Warn().Err(err).Str("path", rel).Msg("could not delete stored file, leaving orphan")
	}

	return nil
}
