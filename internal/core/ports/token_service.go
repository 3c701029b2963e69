package ports

import (
	"time"

	"github.com/talenthub/jobboard-api/internal/core/domain"
)

// Claims is the decoded, verified content of a bearer token.
type Claims struct {
	Subject   string
	Role      string
	IsAdmin   bool
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// TokenService issues and verifies signed, expiring bearer tokens.
// Verification is a pure function of (token, secret, current time).
type TokenService interface {
	Issue(user *domain.User) (string, error)
	Verify(token string) (*Claims, error)
}
