package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/talenthub/jobboard-api/internal/core/domain"
	"github.com/talenthub/jobboard-api/internal/core/ports"
)

// JobService covers posting CRUD, applications and saved jobs.
type JobService struct {
	jobs  ports.JobRepository
	users ports.UserRepository
	log   zerolog.Logger
}

func NewJobService(jobs ports.JobRepository, users ports.UserRepository, log zerolog.Logger) *JobService {
	return &JobService{jobs: jobs, users: users, log: log}
}

func (s *JobService) Create(ctx context.Context, in ports.CreateJobInput) (*domain.Job, error) {
	now := time.Now().UTC()
	job := &domain.Job{
		Title:        in.Title,
		Company:      in.Company,
		Location:     in.Location,
		Description:  in.Description,
		Requirements: in.Requirements,
		SalaryRange:  in.SalaryRange,
		PostedBy:     in.PostedBy,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.jobs.Create(ctx, job)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("job_id", created.ID).Str("posted_by", created.PostedBy).Msg("job posted")
	return created, nil
}

func (s *JobService) Get(ctx context.Context, id string) (*domain.Job, error) {
	return s.jobs.FindByID(ctx, id)
}

func (s *JobService) List(ctx context.Context, filter ports.JobFilter) ([]*domain.Job, error) {
	return s.jobs.List(ctx, filter)
}

// Update modifies a posting. Only its poster or an admin may do so.
func (s *JobService) Update(ctx context.Context, id string, actor ports.Actor, in ports.UpdateJobInput) (*domain.Job, error) {
	job, err := s.jobs.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if job.PostedBy != actor.ID && !actor.IsAdmin {
		return nil, domain.ErrForbidden
	}

	job.Title = in.Title
	job.Company = in.Company
	job.Location = in.Location
	job.Description = in.Description
	job.Requirements = in.Requirements
	job.SalaryRange = in.SalaryRange
	job.UpdatedAt = time.Now().UTC()

	if err := s.jobs.Update(ctx, job); err != nil {
		return nil, err
	}
	return job, nil
}

// Delete removes a posting. Only its poster or an admin may do so.
func (s *JobService) Delete(ctx context.Context, id string, actor ports.Actor) error {
	job, err := s.jobs.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if job.PostedBy != actor.ID && !actor.IsAdmin {
		return domain.ErrForbidden
	}
	return s.jobs.Delete(ctx, id)
}

// Apply records a (job, applicant) pair. A duplicate pair is a conflict.
func (s *JobService) Apply(ctx context.Context, jobID, userID string) error {
	if err := s.jobs.AddApplicant(ctx, jobID, userID); err != nil {
		return err
	}
	s.log.Info().Str("job_id", jobID).Str("user_id", userID).Msg("application recorded")
	return nil
}

func (s *JobService) Save(ctx context.Context, jobID, userID string) error {
	if _, err := s.jobs.FindByID(ctx, jobID); err != nil {
		return err
	}
	return s.users.AddSavedJob(ctx, userID, jobID)
}

func (s *JobService) Unsave(ctx context.Context, jobID, userID string) error {
	return s.users.RemoveSavedJob(ctx, userID, jobID)
}
