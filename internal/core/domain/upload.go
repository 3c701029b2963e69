package domain

// Purpose is the upload category determining validation policy and the
// storage subtree a file lands in.
type Purpose string

const (
	PurposeAvatar Purpose = "avatar"
	PurposeResume Purpose = "resume"
)

// Subdir returns the purpose-scoped directory name under the upload root.
func (p Purpose) Subdir() string {
	if p == PurposeAvatar {
		return "profiles"
	}
	return "resumes"
}

// UploadPolicy is the fixed per-purpose validation table.
type UploadPolicy struct {
	MaxSize    int64
	MIMETypes  map[string]struct{}
	Extensions []string
}

const (
	maxAvatarSize = 5 << 20
	maxResumeSize = 10 << 20
)

var uploadPolicies = map[Purpose]UploadPolicy{
	PurposeAvatar: {
		MaxSize: maxAvatarSize,
		MIMETypes: map[string]struct{}{
			"image/jpeg": {},
			"image/png":  {},
			"image/gif":  {},
			"image/webp": {},
		},
		Extensions: []string{".jpg", ".jpeg", ".png", ".gif", ".webp"},
	},
	PurposeResume: {
		MaxSize: maxResumeSize,
		MIMETypes: map[string]struct{}{
			"application/pdf":    {},
			"application/msword": {},
			"application/vnd.openxmlformats-officedocument.wordprocessingml.document": {},
		},
		Extensions: []string{".pdf", ".doc", ".docx"},
	},
}

// PolicyFor returns the validation policy for a purpose. The second return is
// false for an unrecognized purpose.
func PolicyFor(p Purpose) (UploadPolicy, bool) {
	policy, ok := uploadPolicies[p]
	return policy, ok
}

// ContentTypeFor maps a stored file extension to the content type used when
// serving it back. Defaults to application/octet-stream.
func ContentTypeFor(ext string) string {
	switch ext {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	case ".pdf":
		return "application/pdf"
	case ".doc":
		return "application/msword"
	case ".docx":
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	default:
		return "application/octet-stream"
	}
}
