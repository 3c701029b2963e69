package ports

import (
	"context"

	"github.com/talenthub/jobboard-api/internal/core/domain"
)

// CreateJobInput carries the data for a new posting.
type CreateJobInput struct {
	Title        string
	Company      string
	Location     string
	Description  string
	Requirements []string
	SalaryRange  string
	PostedBy     string
}

// UpdateJobInput carries the mutable posting fields.
type UpdateJobInput struct {
	Title        string
	Company      string
	Location     string
	Description  string
	Requirements []string
	SalaryRange  string
}

// Actor identifies who is performing a job mutation, for ownership checks.
type Actor struct {
	ID      string
	IsAdmin bool
}

// JobService covers posting CRUD, applications and saved jobs.
type JobService interface {
	Create(ctx context.Context, in CreateJobInput) (*domain.Job, error)
	Get(ctx context.Context, id string) (*domain.Job, error)
	List(ctx context.Context, filter JobFilter) ([]*domain.Job, error)
	Update(ctx context.Context, id string, actor Actor, in UpdateJobInput) (*domain.Job, error)
	Delete(ctx context.Context, id string, actor Actor) error

	Apply(ctx context.Context, jobID, userID string) error
	Save(ctx context.Context, jobID, userID string) error
	Unsave(ctx context.Context, jobID, userID string) error
}
