package ports

import (
	"context"

	"github.com/talenthub/jobboard-api/internal/core/domain"
)

// UserRepository defines the persistence interface for identities.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context, limit, offset int64) ([]*domain.User, error)

	UpdateProfile(ctx context.Context, id, fullName, headline string) error
	SetRole(ctx context.Context, id, role string, isAdmin bool) error
	SetActive(ctx context.Context, id string, active bool) error
	Delete(ctx context.Context, id string) error

	// SetUploadPath records the stored file path for a purpose. An empty
	// path clears the reference.
	SetUploadPath(ctx context.Context, id string, purpose domain.Purpose, path string) error

	AddSavedJob(ctx context.Context, id, jobID string) error
	RemoveSavedJob(ctx context.Context, id, jobID string) error

	// ListUploadPaths returns every non-empty avatar and resume path across
	// all identities. Used by the orphan sweeper to build the referenced set.
	ListUploadPaths(ctx context.Context) ([]string, error)

	CountByRole(ctx context.Context) (map[string]int64, error)
}
