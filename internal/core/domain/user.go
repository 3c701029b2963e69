package domain

import "time"

const (
	RoleJobseeker = "jobseeker"
	RoleRecruiter = "recruiter"
	RoleAdmin     = "admin"
)

// ValidRole reports whether role is one of the known account roles.
func ValidRole(role string) bool {
	return role == RoleJobseeker || role == RoleRecruiter || role == RoleAdmin
}

// User models a registered account: jobseeker, recruiter, or admin.
//
// Role and IsAdmin must stay consistent on every write: Role == admin ⇔
// IsAdmin == true. Normalize enforces that.
type User struct {
	ID                 string    `json:"id"`
	Email              string    `json:"email"`
	PasswordHash       string    `json:"-"`
	Role               string    `json:"role"`
	IsAdmin            bool      `json:"is_admin"`
	IsActive           bool      `json:"is_active"`
	FullName           string    `json:"full_name,omitempty"`
	Headline           string    `json:"headline,omitempty"`
	ProfilePicturePath string    `json:"profile_picture_path,omitempty"`
	ResumePath         string    `json:"resume_path,omitempty"`
	SavedJobIDs        []string  `json:"saved_job_ids,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// Normalize reconciles the Role / IsAdmin pair in both directions.
func (u *User) Normalize() {
	if u.Role == RoleAdmin {
		u.IsAdmin = true
	} else if u.IsAdmin {
		u.Role = RoleAdmin
	}
}

// UploadPath returns the stored path for the given upload purpose.
func (u *User) UploadPath(p Purpose) string {
	if p == PurposeAvatar {
		return u.ProfilePicturePath
	}
	return u.ResumePath
}
