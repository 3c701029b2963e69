package domain

import "time"

// Job is a posting created by a recruiter. Applications are the membership of
// jobseeker ids in Applicants; a (job, applicant) pair is unique.
type Job struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Company      string    `json:"company"`
	Location     string    `json:"location,omitempty"`
	Description  string    `json:"description"`
	Requirements []string  `json:"requirements,omitempty"`
	SalaryRange  string    `json:"salary_range,omitempty"`
	PostedBy     string    `json:"posted_by"`
	Applicants   []string  `json:"applicants,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// HasApplicant reports whether userID already applied to the job.
func (j *Job) HasApplicant(userID string) bool {
	for _, id := range j.Applicants {
		if id == userID {
			return true
		}
	}
	return false
}
