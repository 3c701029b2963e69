package service

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/talenthub/jobboard-api/internal/core/domain"
	"github.com/talenthub/jobboard-api/internal/core/ports"
)

var testLog = zerolog.Nop()

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	clone.SavedJobIDs = append([]string(nil), u.SavedJobIDs...)
	return &clone
}

func cloneJob(j *domain.Job) *domain.Job {
	if j == nil {
		return nil
	}
	clone := *j
	clone.Requirements = append([]string(nil), j.Requirements...)
	clone.Applicants = append([]string(nil), j.Applicants...)
	return &clone
}

type stubUserRepo struct {
	users  map[string]*domain.User
	nextID int

	failSetUploadPath bool
	listPathsErr      error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func (r *stubUserRepo) add(u *domain.User) *domain.User {
	copy := cloneUser(u)
	if copy.ID == "" {
		r.nextID++
		copy.ID = fmt.Sprintf("u%d", r.nextID)
	}
	r.users[copy.ID] = copy
	return cloneUser(copy)
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrUserExists
		}
	}
	return r.add(user), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) List(_ context.Context, _, _ int64) ([]*domain.User, error) {
	out := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, cloneUser(u))
	}
	return out, nil
}

func (r *stubUserRepo) UpdateProfile(_ context.Context, id, fullName, headline string) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.FullName = fullName
	u.Headline = headline
	return nil
}

func (r *stubUserRepo) SetRole(_ context.Context, id, role string, isAdmin bool) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Role = role
	u.IsAdmin = isAdmin
	return nil
}

func (r *stubUserRepo) SetActive(_ context.Context, id string, active bool) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.IsActive = active
	return nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *stubUserRepo) SetUploadPath(_ context.Context, id string, purpose domain.Purpose, path string) error {
	if r.failSetUploadPath {
		return fmt.Errorf("write concern failed")
	}
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	if purpose == domain.PurposeAvatar {
		u.ProfilePicturePath = path
	} else {
		u.ResumePath = path
	}
	return nil
}

func (r *stubUserRepo) AddSavedJob(_ context.Context, id, jobID string) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	for _, saved := range u.SavedJobIDs {
		if saved == jobID {
			return nil
		}
	}
	u.SavedJobIDs = append(u.SavedJobIDs, jobID)
	return nil
}

func (r *stubUserRepo) RemoveSavedJob(_ context.Context, id, jobID string) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	kept := u.SavedJobIDs[:0]
	for _, saved := range u.SavedJobIDs {
		if saved != jobID {
			kept = append(kept, saved)
		}
	}
	u.SavedJobIDs = kept
	return nil
}

func (r *stubUserRepo) ListUploadPaths(_ context.Context) ([]string, error) {
	if r.listPathsErr != nil {
		return nil, r.listPathsErr
	}
	var paths []string
	for _, u := range r.users {
		if u.ProfilePicturePath != "" {
			paths = append(paths, u.ProfilePicturePath)
		}
		if u.ResumePath != "" {
			paths = append(paths, u.ResumePath)
		}
	}
	return paths, nil
}

func (r *stubUserRepo) CountByRole(_ context.Context) (map[string]int64, error) {
	counts := make(map[string]int64)
	for _, u := range r.users {
		counts[u.Role]++
	}
	return counts, nil
}

type stubJobRepo struct {
	jobs   map[string]*domain.Job
	nextID int
}

func newStubJobRepo() *stubJobRepo {
	return &stubJobRepo{jobs: make(map[string]*domain.Job)}
}

func (r *stubJobRepo) Create(_ context.Context, job *domain.Job) (*domain.Job, error) {
	copy := cloneJob(job)
	if copy.ID == "" {
		r.nextID++
		copy.ID = fmt.Sprintf("j%d", r.nextID)
	}
	r.jobs[copy.ID] = copy
	return cloneJob(copy), nil
}

func (r *stubJobRepo) FindByID(_ context.Context, id string) (*domain.Job, error) {
	j, ok := r.jobs[id]
	if !ok {
		return nil, domain.ErrJobNotFound
	}
	return cloneJob(j), nil
}

func (r *stubJobRepo) List(_ context.Context, filter ports.JobFilter) ([]*domain.Job, error) {
	out := make([]*domain.Job, 0, len(r.jobs))
	for _, j := range r.jobs {
		if filter.Title != "" && !strings.Contains(strings.ToLower(j.Title), strings.ToLower(filter.Title)) {
			continue
		}
		if filter.Company != "" && !strings.Contains(strings.ToLower(j.Company), strings.ToLower(filter.Company)) {
			continue
		}
		out = append(out, cloneJob(j))
	}
	return out, nil
}

func (r *stubJobRepo) Update(_ context.Context, job *domain.Job) error {
	if _, ok := r.jobs[job.ID]; !ok {
		return domain.ErrJobNotFound
	}
	r.jobs[job.ID] = cloneJob(job)
	return nil
}

func (r *stubJobRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.jobs[id]; !ok {
		return domain.ErrJobNotFound
	}
	delete(r.jobs, id)
	return nil
}

func (r *stubJobRepo) AddApplicant(_ context.Context, jobID, userID string) error {
	j, ok := r.jobs[jobID]
	if !ok {
		return domain.ErrJobNotFound
	}
	if j.HasApplicant(userID) {
		return domain.ErrAlreadyApplied
	}
	j.Applicants = append(j.Applicants, userID)
	return nil
}

func (r *stubJobRepo) RemoveApplicantFromAll(_ context.Context, userID string) error {
	for _, j := range r.jobs {
		kept := j.Applicants[:0]
		for _, id := range j.Applicants {
			if id != userID {
				kept = append(kept, id)
			}
		}
		j.Applicants = kept
	}
	return nil
}

func (r *stubJobRepo) DeleteByPoster(_ context.Context, posterID string) error {
	for id, j := range r.jobs {
		if j.PostedBy == posterID {
			delete(r.jobs, id)
		}
	}
	return nil
}

func (r *stubJobRepo) CountJobs(_ context.Context) (int64, error) {
	return int64(len(r.jobs)), nil
}

func (r *stubJobRepo) CountApplications(_ context.Context) (int64, error) {
	var n int64
	for _, j := range r.jobs {
		n += int64(len(j.Applicants))
	}
	return n, nil
}

// memStore is an in-memory ports.FileStore. Temp and final files live in
// separate maps so tests can assert the promote step happened.
type memStore struct {
	files map[string][]byte
	temps map[string][]byte
	mtime map[string]time.Time
}

func newMemStore() *memStore {
	return &memStore{
		files: make(map[string][]byte),
		temps: make(map[string][]byte),
		mtime: make(map[string]time.Time),
	}
}

func (s *memStore) WriteTemp(rel string, r io.Reader) error {
	b, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	s.temps[rel] = b
	return nil
}

func (s *memStore) Promote(rel string) error {
	b, ok := s.temps[rel]
	if !ok {
		return fmt.Errorf("no temp file for %s", rel)
	}
	delete(s.temps, rel)
	s.files[rel] = b
	s.mtime[rel] = time.Now()
	return nil
}

func (s *memStore) DiscardTemp(rel string) error {
	delete(s.temps, rel)
	return nil
}

func (s *memStore) Remove(rel string) error {
	if _, ok := s.files[rel]; !ok {
		return domain.ErrFileNotFound
	}
	delete(s.files, rel)
	delete(s.mtime, rel)
	return nil
}

func (s *memStore) Exists(rel string) bool {
	_, ok := s.files[rel]
	return ok
}

func (s *memStore) AbsPath(rel string) string {
	return "/mem/" + rel
}

func (s *memStore) ListDir(dir string) ([]ports.StoredFileInfo, error) {
	var out []ports.StoredFileInfo
	for rel := range s.files {
		d, name := "", rel
		if i := strings.LastIndex(rel, "/"); i >= 0 {
			d, name = rel[:i], rel[i+1:]
		}
		if d == dir {
			out = append(out, ports.StoredFileInfo{Name: name, ModTime: s.mtime[rel]})
		}
	}
	return out, nil
}

func (s *memStore) Relocate(name, dir string) error {
	b, ok := s.files[name]
	if !ok {
		return fmt.Errorf("no file %s", name)
	}
	delete(s.files, name)
	s.files[dir+"/"+name] = b
	return nil
}

// stubThrottle counts failures in memory with a fixed trip limit.
type stubThrottle struct {
	failures map[string]int
	limit    int
}

func newStubThrottle(limit int) *stubThrottle {
	return &stubThrottle{failures: make(map[string]int), limit: limit}
}

func (t *stubThrottle) TooMany(_ context.Context, email string) (bool, error) {
	return t.failures[email] >= t.limit, nil
}

func (t *stubThrottle) RecordFailure(_ context.Context, email string) error {
	t.failures[email]++
	return nil
}

func (t *stubThrottle) Reset(_ context.Context, email string) error {
	delete(t.failures, email)
	return nil
}
