package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/talenthub/jobboard-api/internal/core/domain"
	"github.com/talenthub/jobboard-api/internal/core/ports"
)

// UserService covers profile reads/updates and admin account management,
// including the cascading identity delete.
type UserService struct {
	users ports.UserRepository
	jobs  ports.JobRepository
	store ports.FileStore
	log   zerolog.Logger
}

func NewUserService(users ports.UserRepository, jobs ports.JobRepository, store ports.FileStore, log zerolog.Logger) *UserService {
	return &UserService{users: users, jobs: jobs, store: store, log: log}
}

func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	return s.users.FindByID(ctx, id)
}

func (s *UserService) UpdateProfile(ctx context.Context, id string, in ports.UpdateProfileInput) (*domain.User, error) {
	if err := s.users.UpdateProfile(ctx, id, in.FullName, in.Headline); err != nil {
		return nil, err
	}
	return s.users.FindByID(ctx, id)
}

func (s *UserService) List(ctx context.Context, limit, offset int64) ([]*domain.User, error) {
	return s.users.List(ctx, limit, offset)
}

// SetRole changes an account's role, keeping the isAdmin flag consistent.
func (s *UserService) SetRole(ctx context.Context, id, role string) error {
	if !domain.ValidRole(role) {
		return domain.ErrForbidden
	}
	return s.users.SetRole(ctx, id, role, role == domain.RoleAdmin)
}

func (s *UserService) SetActive(ctx context.Context, id string, active bool) error {
	return s.users.SetActive(ctx, id, active)
}

// Delete removes the identity and everything referencing it. Each step is
// idempotent so a partially failed delete can be retried:
//
//  1. strip the id from every job's applicant list
//  2. delete the identity's own postings if it is a recruiter
//  3. delete its stored files
//  4. delete the record
func (s *UserService) Delete(ctx context.Context, id string) error {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.jobs.RemoveApplicantFromAll(ctx, id); err != nil {
		return err
	}

	if user.Role == domain.RoleRecruiter || user.IsAdmin {
		if err := s.jobs.DeleteByPoster(ctx, id); err != nil {
			return err
		}
	}

	for _, purpose := range []domain.Purpose{domain.PurposeAvatar, domain.PurposeResume} {
		path := user.UploadPath(purpose)
		if path == "" {
			continue
		}
		if err := s.store.Remove(path); err != nil && !errors.Is(err, domain.ErrFileNotFound) {
			// The sweeper reclaims what we could not delete here.
			s.log.Warn().Err(err).Str("path", path).Msg("could not delete stored file during cascade")
		}
	}

	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}

	s.log.Info().Str("user_id", id).Str("role", user.Role).Msg("identity deleted with cascade")
	return nil
}

func (s *UserService) Stats(ctx context.Context) (*ports.StatsResult, error) {
	byRole, err := s.users.CountByRole(ctx)
	if err != nil {
		return nil, err
	}
	totalJobs, err := s.jobs.CountJobs(ctx)
	if err != nil {
		return nil, err
	}
	totalApplications, err := s.jobs.CountApplications(ctx)
	if err != nil {
		return nil, err
	}
	return &ports.StatsResult{
		UsersByRole:       byRole,
		TotalJobs:         totalJobs,
		TotalApplications: totalApplications,
	}, nil
}
