package services

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/yoockh/joblynk/internal/models"
	"github.com/yoockh/joblynk/internal/utils"
)

type fakeUserRepo struct {
	users map[string]*models.User
}

func newFakeUserRepo() *fakeUserRepo { return &fakeUserRepo{users: map[string]*models.User{}} }

func (r *fakeUserRepo) Create(_ context.Context, u *models.User) error {
	if _, ok := r.users[u.ID]; ok {
		return utils.ErrDuplicate
	}
	for _, other := range r.users {
		if other.Email == u.Email {
			return utils.ErrDuplicate
		}
	}
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, utils.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) Update(_ context.Context, id string, updates map[string]any) error {
	u, ok := r.users[id]
	if !ok {
		return utils.ErrNotFound
	}
	for k, v := range updates {
		switch k {
		case "first_name":
			u.FirstName = v.(string)
		case "last_name":
			u.LastName = v.(string)
		case "email":
			for oid, other := range r.users {
				if oid != id && other.Email == v.(string) {
					return utils.ErrDuplicate
				}
			}
			u.Email = v.(string)
		case "phone":
			p := v.(string)
			u.Phone = &p
		case "role":
			role := v.(models.Role)
			u.Role = &role
		}
	}
	return nil
}

type fakeSeekerRepo struct {
	byUser map[string]*models.Seeker
}

func newFakeSeekerRepo() *fakeSeekerRepo { return &fakeSeekerRepo{byUser: map[string]*models.Seeker{}} }

func (r *fakeSeekerRepo) Create(_ context.Context, s *models.Seeker) error {
	if _, ok := r.byUser[s.UserID]; ok {
		return utils.ErrDuplicate
	}
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	cp := *s
	r.byUser[s.UserID] = &cp
	return nil
}

func (r *fakeSeekerRepo) GetByUserID(_ context.Context, userID string) (*models.Seeker, error) {
	s, ok := r.byUser[userID]
	if !ok {
		return nil, utils.ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *fakeSeekerRepo) UpdateByUserID(_ context.Context, userID string, updates map[string]any) error {
	s, ok := r.byUser[userID]
	if !ok {
		return utils.ErrNotFound
	}
	if v, ok := updates["employment_status"]; ok {
		str := v.(string)
		s.EmploymentStatus = &str
	}
	if v, ok := updates["resume_url"]; ok {
		str := v.(string)
		s.ResumeURL = &str
	}
	return nil
}

type fakeRecruiterRepo struct {
	byUser map[string]*models.Recruiter
}

func newFakeRecruiterRepo() *fakeRecruiterRepo {
	return &fakeRecruiterRepo{byUser: map[string]*models.Recruiter{}}
}

func (r *fakeRecruiterRepo) Create(_ context.Context, rec *models.Recruiter) error {
	if _, ok := r.byUser[rec.UserID]; ok {
		return utils.ErrDuplicate
	}
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	cp := *rec
	r.byUser[rec.UserID] = &cp
	return nil
}

func (r *fakeRecruiterRepo) GetByUserID(_ context.Context, userID string) (*models.Recruiter, error) {
	rec, ok := r.byUser[userID]
	if !ok {
		return nil, utils.ErrNotFound
	}
	cp := *rec
	return &cp, nil
}

func (r *fakeRecruiterRepo) UpdateByUserID(_ context.Context, userID string, updates map[string]any) error {
	rec, ok := r.byUser[userID]
	if !ok {
		return utils.ErrNotFound
	}
	if v, ok := updates["company_name"]; ok {
		str := v.(string)
		rec.CompanyName = &str
	}
	if v, ok := updates["company_url"]; ok {
		str := v.(string)
		rec.CompanyURL = &str
	}
	return nil
}

type fakeJobRepo struct {
	jobs    map[string]*models.Job
	deleted map[string]bool
	seq     int
	failGet error
}

func newFakeJobRepo() *fakeJobRepo {
	return &fakeJobRepo{jobs: map[string]*models.Job{}, deleted: map[string]bool{}}
}

func (r *fakeJobRepo) Create(_ context.Context, j *models.Job) error {
	if j.ID == "" {
		j.ID = uuid.NewString()
	}
	r.seq++
	j.CreatedAt = time.Date(2025, 1, 1, 0, 0, r.seq, 0, time.UTC)
	cp := *j
	r.jobs[j.ID] = &cp
	return nil
}

func (r *fakeJobRepo) GetByID(_ context.Context, id string) (*models.Job, error) {
	if r.failGet != nil {
		return nil, r.failGet
	}
	j, ok := r.jobs[id]
	if !ok || r.deleted[id] {
		return nil, utils.ErrNotFound
	}
	cp := *j
	return &cp, nil
}

func (r *fakeJobRepo) List(_ context.Context, f models.JobFilter, p utils.Page) ([]models.Job, int64, error) {
	var out []models.Job
	for id, j := range r.jobs {
		if r.deleted[id] {
			continue
		}
		if f.RecruiterID != "" {
			if j.RecruiterID != f.RecruiterID {
				continue
			}
		} else if j.Status != models.JobStatusActive {
			continue
		}
		if f.Search != "" {
			term := strings.ToLower(f.Search)
			if !strings.Contains(strings.ToLower(j.Title), term) &&
				!strings.Contains(strings.ToLower(j.DescriptionMarkdown), term) {
				continue
			}
		}
		if f.Location != "" && !strings.Contains(strings.ToLower(j.Location), strings.ToLower(f.Location)) {
			continue
		}
		if f.JobType != "" && j.JobType != f.JobType {
			continue
		}
		out = append(out, *j)
	}
	sort.Slice(out, func(a, b int) bool { return out[a].CreatedAt.After(out[b].CreatedAt) })
	total := int64(len(out))
	start := p.Offset()
	if start > len(out) {
		start = len(out)
	}
	end := start + p.PageSize
	if end > len(out) {
		end = len(out)
	}
	return out[start:end], total, nil
}

func (r *fakeJobRepo) Update(_ context.Context, id string, updates map[string]any) error {
	j, ok := r.jobs[id]
	if !ok || r.deleted[id] {
		return utils.ErrNotFound
	}
	for k, v := range updates {
		switch k {
		case "title":
			j.Title = v.(string)
		case "description_markdown":
			j.DescriptionMarkdown = v.(string)
		case "location":
			j.Location = v.(string)
		case "apply_url":
			j.ApplyURL = v.(string)
		case "job_type":
			j.JobType = v.(models.JobType)
		case "salary_min":
			n := v.(int)
			j.SalaryMin = &n
		case "salary_max":
			n := v.(int)
			j.SalaryMax = &n
		case "salary_currency":
			s := v.(string)
			j.SalaryCurrency = &s
		case "status":
			j.Status = v.(models.JobStatus)
		case "posted_at":
			t := v.(time.Time)
			j.PostedAt = &t
		case "expires_at":
			t := v.(time.Time)
			j.ExpiresAt = &t
		case "easy_apply":
			j.EasyApply = v.(bool)
		case "skills":
			j.Skills = v.(models.StringArray)
		}
	}
	return nil
}

func (r *fakeJobRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.jobs[id]; !ok || r.deleted[id] {
		return utils.ErrNotFound
	}
	r.deleted[id] = true
	return nil
}

func (r *fakeJobRepo) ExpireDue(_ context.Context, now time.Time) ([]string, error) {
	var ids []string
	for id, j := range r.jobs {
		if r.deleted[id] || j.Status != models.JobStatusActive || j.ExpiresAt == nil {
			continue
		}
		if j.ExpiresAt.Before(now) {
			j.Status = models.JobStatusExpired
			ids = append(ids, id)
		}
	}
	return ids, nil
}

type fakeAppRepo struct {
	jobs *fakeJobRepo
	apps map[string]*models.Application
	// skipExists makes Exists miss so Create hits the constraint path.
	skipExists bool
}

func newFakeAppRepo(jobs *fakeJobRepo) *fakeAppRepo {
	return &fakeAppRepo{jobs: jobs, apps: map[string]*models.Application{}}
}

func (r *fakeAppRepo) Create(_ context.Context, a *models.Application) error {
	for _, other := range r.apps {
		if other.JobID == a.JobID && other.SeekerID == a.SeekerID {
			return errors.Join(utils.ErrDuplicate, errors.New("UNIQUE constraint failed"))
		}
	}
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.Status == "" {
		a.Status = models.ApplicationApplied
	}
	a.ApplicationDate = time.Now().UTC()
	cp := *a
	r.apps[a.ID] = &cp
	return nil
}

func (r *fakeAppRepo) Exists(_ context.Context, jobID, seekerID string) (bool, error) {
	if r.skipExists {
		return false, nil
	}
	for _, a := range r.apps {
		if a.JobID == jobID && a.SeekerID == seekerID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeAppRepo) GetByID(_ context.Context, id string) (*models.Application, error) {
	a, ok := r.apps[id]
	if !ok {
		return nil, utils.ErrNotFound
	}
	cp := *a
	if j, ok := r.jobs.jobs[a.JobID]; ok {
		jc := *j
		cp.Job = &jc
	}
	return &cp, nil
}

func (r *fakeAppRepo) list(match func(*models.Application) bool, p utils.Page) ([]models.Application, int64, error) {
	out := []models.Application{}
	for _, a := range r.apps {
		if match(a) {
			out = append(out, *a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	total := int64(len(out))
	start := p.Offset()
	if start > len(out) {
		start = len(out)
	}
	end := start + p.PageSize
	if end > len(out) {
		end = len(out)
	}
	return out[start:end], total, nil
}

func (r *fakeAppRepo) ListBySeeker(_ context.Context, seekerID string, p utils.Page) ([]models.Application, int64, error) {
	return r.list(func(a *models.Application) bool { return a.SeekerID == seekerID }, p)
}

func (r *fakeAppRepo) ListByRecruiter(_ context.Context, recruiterID string, status models.ApplicationStatus, p utils.Page) ([]models.Application, int64, error) {
	return r.list(func(a *models.Application) bool {
		j, ok := r.jobs.jobs[a.JobID]
		if !ok || j.RecruiterID != recruiterID {
			return false
		}
		return status == "" || a.Status == status
	}, p)
}

func (r *fakeAppRepo) UpdateStatus(_ context.Context, id string, status models.ApplicationStatus) error {
	a, ok := r.apps[id]
	if !ok {
		return utils.ErrNotFound
	}
	a.Status = status
	return nil
}

func (r *fakeAppRepo) RejectAllForJob(_ context.Context, jobID string) (int64, error) {
	var n int64
	for _, a := range r.apps {
		if a.JobID == jobID {
			a.Status = models.ApplicationRejected
			n++
		}
	}
	return n, nil
}

type fakeTx struct {
	calls int
}

func (t *fakeTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	t.calls++
	return fn(ctx)
}

type fakeCache struct {
	mu      sync.Mutex
	data    map[string][]byte
	getErr  error
	deleted []string
}

func newFakeCache() *fakeCache { return &fakeCache{data: map[string][]byte{}} }

func (c *fakeCache) GetJSON(_ context.Context, key string, dst any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.getErr != nil {
		return false, c.getErr
	}
	b, ok := c.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, dst)
}

func (c *fakeCache) SetJSON(_ context.Context, key string, val any, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, err := json.Marshal(val)
	if err != nil {
		return err
	}
	c.data[key] = b
	return nil
}

func (c *fakeCache) Del(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.data, k)
		c.deleted = append(c.deleted, k)
	}
	return nil
}

type fakeActivityRepo struct {
	mu     sync.Mutex
	events []models.Activity
	err    error
}

func (r *fakeActivityRepo) Insert(_ context.Context, a *models.Activity) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.events = append(r.events, *a)
	return nil
}

func (r *fakeActivityRepo) ListByRecruiter(_ context.Context, recruiterID string, limit int64) ([]models.Activity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.Activity{}
	for _, e := range r.events {
		if e.RecruiterID == recruiterID && int64(len(out)) < limit {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *fakeActivityRepo) actions() []models.ActivityAction {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.ActivityAction, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Action)
	}
	return out
}

type fakeSigner struct {
	err     error
	lastKey string
	lastCT  string
}

func (s *fakeSigner) SignedPutURL(_ context.Context, objectName, contentType string, _ time.Duration) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.lastKey, s.lastCT = objectName, contentType
	return "https://bucket.example/" + objectName + "?sig=put", nil
}

func (s *fakeSigner) SignedGetURL(_ context.Context, objectName string, _ time.Duration) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.lastKey = objectName
	return "https://bucket.example/" + objectName + "?sig=get", nil
}
