package ports

import (
	"context"

	"github.com/talenthub/jobboard-api/internal/core/domain"
)

// UpdateProfileInput carries the mutable profile fields.
type UpdateProfileInput struct {
	FullName string
	Headline string
}

// StatsResult is the admin dashboard snapshot.
type StatsResult struct {
	UsersByRole       map[string]int64 `json:"users_by_role"`
	TotalJobs         int64            `json:"total_jobs"`
	TotalApplications int64            `json:"total_applications"`
}

// UserService covers profile and admin account management.
type UserService interface {
	Get(ctx context.Context, id string) (*domain.User, error)
	UpdateProfile(ctx context.Context, id string, in UpdateProfileInput) (*domain.User, error)

	List(ctx context.Context, limit, offset int64) ([]*domain.User, error)
	SetRole(ctx context.Context, id, role string) error
	SetActive(ctx context.Context, id string, active bool) error

	// Delete removes an identity and everything that references it:
	// applicant entries on jobs, the identity's own postings if it is a
	// recruiter, its stored files, and finally the record itself.
	Delete(ctx context.Context, id string) error

	Stats(ctx context.Context) (*StatsResult, error)
}
