package ports

import (
	"context"

	"github.com/talenthub/jobboard-api/internal/core/domain"
)

// JobFilter narrows job listings. Zero values mean no filtering.
type JobFilter struct {
	Title   string
	Company string
	Limit   int64
	Offset  int64
}

// JobRepository defines the persistence interface for job postings.
type JobRepository interface {
	Create(ctx context.Context, job *domain.Job) (*domain.Job, error)
	FindByID(ctx context.Context, id string) (*domain.Job, error)
	List(ctx context.Context, filter JobFilter) ([]*domain.Job, error)
	Update(ctx context.Context, job *domain.Job) error
	Delete(ctx context.Context, id string) error

	// AddApplicant appends userID to the job's applicant list. Returns
	// domain.ErrAlreadyApplied when the pair already exists.
	AddApplicant(ctx context.Context, jobID, userID string) error

	// RemoveApplicantFromAll strips userID from every job's applicant list.
	// Part of the cascading identity delete; idempotent.
	RemoveApplicantFromAll(ctx context.Context, userID string) error

	// DeleteByPoster removes every job posted by the given identity.
	DeleteByPoster(ctx context.Context, posterID string) error

	CountJobs(ctx context.Context) (int64, error)
	CountApplications(ctx context.Context) (int64, error)
}
