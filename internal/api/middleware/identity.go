package middleware

import "github.com/labstack/echo/v4"

const identityKey = "auth_identity"

// AuthIdentity is the normalized view of the authenticated account attached
// to the request context. Downstream handlers read it instead of raw claims.
type AuthIdentity struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	IsAdmin  bool   `json:"is_admin"`
	FullName string `json:"full_name,omitempty"`
}

// SetIdentity attaches the authenticated identity to the request context.
func SetIdentity(c echo.Context, id *AuthIdentity) {
	c.Set(identityKey, id)
}

// IdentityFrom extracts the identity injected by the Auth middleware.
func IdentityFrom(c echo.Context) (*AuthIdentity, bool) {
	id, ok := c.Get(identityKey).(*AuthIdentity)
	return id, ok && id != nil
}
