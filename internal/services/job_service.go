package services

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yoockh/joblynk/internal/cache"
	"github.com/yoockh/joblynk/internal/models"
	"github.com/yoockh/joblynk/internal/observability/metrics"
	"github.com/yoockh/joblynk/internal/principal"
	pgrepo "github.com/yoockh/joblynk/internal/repositories/postgres"
	"github.com/yoockh/joblynk/internal/utils"
)

type JobService interface {
	List(ctx context.Context, f models.JobFilter, p utils.Page) (*JobPage, error)
	Get(ctx context.Context, id string) (*models.Job, error)
	Create(ctx context.Context, j *models.Job) (*models.Job, error)
	Update(ctx context.Context, id string, patch JobPatch) (*models.Job, error)
	UpdateStatus(ctx context.Context, id string, status models.JobStatus) (*models.Job, error)
	Delete(ctx context.Context, id string) error
	ExpireDue(ctx context.Context, now time.Time) (int, error)
}

type JobPage struct {
	Jobs        []models.Job `json:"jobs"`
	Total       int64        `json:"total"`
	CurrentPage int          `json:"currentPage"`
	TotalPages  int          `json:"totalPages"`
}

// JobPatch is a partial update; nil fields are left untouched.
type JobPatch struct {
	Title               *string
	DescriptionMarkdown *string
	Location            *string
	JobType             *models.JobType
	SalaryMin           *int
	SalaryMax           *int
	SalaryCurrency      *string
	ApplyURL            *string
	Status              *models.JobStatus
	PostedAt            *time.Time
	ExpiresAt           *time.Time
	EasyApply           *bool
	Skills              *[]string
}

type JobServiceDeps struct {
	Jobs         pgrepo.JobRepository
	Applications ApplicationService
	Tx           pgrepo.Transactor
	Cache        cache.Cache
	CacheTTL     time.Duration
	Activity     ActivityService
	Log          *logrus.Logger
}

type jobService struct {
	jobs     pgrepo.JobRepository
	apps     ApplicationService
	tx       pgrepo.Transactor
	cache    cache.Cache
	cacheTTL time.Duration
	activity ActivityService
	log      *logrus.Logger
	now      func() time.Time
}

func NewJobService(d JobServiceDeps) JobService {
	c := d.Cache
	if c == nil {
		c = cache.Noop{}
	}
	return &jobService{
		jobs:     d.Jobs,
		apps:     d.Applications,
		tx:       d.Tx,
		cache:    c,
		cacheTTL: d.CacheTTL,
		activity: d.Activity,
		log:      d.Log,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

var currencyRe = regexp.MustCompile(`^[A-Za-z]{3}$`)

func (s *jobService) List(ctx context.Context, f models.JobFilter, p utils.Page) (*JobPage, error) {
	const op = "JobService.List"

	if f.JobType != "" && !f.JobType.Valid() {
		return nil, utils.E(utils.CodeInvalidArgument, op, "invalid jobType", nil)
	}
	p = p.Normalize()

	jobs, total, err := s.jobs.List(ctx, f, p)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list jobs", err)
	}
	return &JobPage{
		Jobs:        jobs,
		Total:       total,
		CurrentPage: p.Page,
		TotalPages:  p.TotalPages(total),
	}, nil
}

func (s *jobService) Get(ctx context.Context, id string) (*models.Job, error) {
	const op = "JobService.Get"

	if id == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "jobId is required", nil)
	}

	key := cache.JobKey(id)
	var cached models.Job
	hit, err := s.cache.GetJSON(ctx, key, &cached)
	switch {
	case err != nil:
		metrics.ObserveCache("error")
		s.log.WithError(err).WithField("job_id", id).Warn("job cache read failed")
	case hit:
		metrics.ObserveCache("hit")
		return &cached, nil
	default:
		metrics.ObserveCache("miss")
	}

	j, err := s.jobs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "Job not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to get job", err)
	}

	if err := s.cache.SetJSON(ctx, key, j, s.cacheTTL); err != nil {
		s.log.WithError(err).WithField("job_id", id).Warn("job cache write failed")
	}
	return j, nil
}

func (s *jobService) Create(ctx context.Context, j *models.Job) (*models.Job, error) {
	const op = "JobService.Create"

	if j == nil || j.RecruiterID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "recruiterId is required", nil)
	}
	j.ID = ""
	if j.Status == "" {
		j.Status = models.JobStatusDraft
	}
	if err := validateJob(j); err != nil {
		return nil, utils.E(utils.CodeInvalidArgument, op, err.Error(), nil)
	}
	if j.SalaryCurrency != nil {
		cur := strings.ToUpper(*j.SalaryCurrency)
		j.SalaryCurrency = &cur
	}
	if j.Status == models.JobStatusActive && j.PostedAt == nil {
		now := s.now()
		j.PostedAt = &now
	}

	if err := s.jobs.Create(ctx, j); err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "Recruiter not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to create job", err)
	}
	metrics.IncJobsCreated()
	return j, nil
}

func validateJob(j *models.Job) error {
	switch {
	case strings.TrimSpace(j.Title) == "":
		return errors.New("title is required")
	case strings.TrimSpace(j.DescriptionMarkdown) == "":
		return errors.New("descriptionMarkdown is required")
	case strings.TrimSpace(j.Location) == "":
		return errors.New("location is required")
	case strings.TrimSpace(j.ApplyURL) == "":
		return errors.New("applyUrl is required")
	case !j.JobType.Valid():
		return errors.New("invalid jobType")
	case !j.Status.Valid():
		return errors.New("invalid job status")
	}
	return validateSalary(j.SalaryMin, j.SalaryMax, j.SalaryCurrency)
}

func validateSalary(min, max *int, currency *string) error {
	if min != nil && *min < 0 || max != nil && *max < 0 {
		return errors.New("salary cannot be negative")
	}
	if min != nil && max != nil && *min > *max {
		return errors.New("salaryMin cannot exceed salaryMax")
	}
	if currency != nil && !currencyRe.MatchString(*currency) {
		return errors.New("salaryCurrency must be a 3-letter code")
	}
	return nil
}

func (s *jobService) Update(ctx context.Context, id string, patch JobPatch) (*models.Job, error) {
	const op = "JobService.Update"

	cur, err := s.jobs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "Job not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to get job", err)
	}

	updates, err := s.buildJobUpdates(cur, patch)
	if err != nil {
		return nil, utils.E(utils.CodeInvalidArgument, op, err.Error(), nil)
	}
	if len(updates) == 0 {
		return nil, utils.E(utils.CodeInvalidArgument, op, "No updates provided.", nil)
	}

	if err := s.jobs.Update(ctx, id, updates); err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "Job not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to update job", err)
	}
	s.invalidate(ctx, id)

	if patch.Status != nil && *patch.Status != cur.Status {
		s.activity.Record(ctx, models.Activity{
			ActorID:     principal.UserID(ctx),
			RecruiterID: cur.RecruiterID,
			EntityType:  "job",
			EntityID:    id,
			Action:      models.ActivityJobStatusChanged,
			From:        string(cur.Status),
			To:          string(*patch.Status),
		})
	}

	updated, err := s.jobs.GetByID(ctx, id)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to reload job", err)
	}
	return updated, nil
}

func (s *jobService) buildJobUpdates(cur *models.Job, p JobPatch) (map[string]any, error) {
	updates := map[string]any{}

	setText := func(col, name string, v *string) error {
		if v == nil {
			return nil
		}
		if strings.TrimSpace(*v) == "" {
			return errors.New(name + " cannot be empty")
		}
		updates[col] = *v
		return nil
	}
	if err := setText("title", "title", p.Title); err != nil {
		return nil, err
	}
	if err := setText("description_markdown", "descriptionMarkdown", p.DescriptionMarkdown); err != nil {
		return nil, err
	}
	if err := setText("location", "location", p.Location); err != nil {
		return nil, err
	}
	if err := setText("apply_url", "applyUrl", p.ApplyURL); err != nil {
		return nil, err
	}

	if p.JobType != nil {
		if !p.JobType.Valid() {
			return nil, errors.New("invalid jobType")
		}
		updates["job_type"] = *p.JobType
	}

	min, max, currency := cur.SalaryMin, cur.SalaryMax, cur.SalaryCurrency
	if p.SalaryMin != nil {
		min = p.SalaryMin
		updates["salary_min"] = *p.SalaryMin
	}
	if p.SalaryMax != nil {
		max = p.SalaryMax
		updates["salary_max"] = *p.SalaryMax
	}
	if p.SalaryCurrency != nil {
		c := strings.ToUpper(*p.SalaryCurrency)
		currency = &c
		updates["salary_currency"] = c
	}
	if err := validateSalary(min, max, currency); err != nil {
		return nil, err
	}

	if p.Status != nil {
		if !p.Status.Valid() {
			return nil, errors.New("Invalid job status: " + string(*p.Status))
		}
		updates["status"] = *p.Status
		if *p.Status == models.JobStatusActive && cur.PostedAt == nil && p.PostedAt == nil {
			updates["posted_at"] = s.now()
		}
	}
	if p.PostedAt != nil {
		updates["posted_at"] = p.PostedAt.UTC()
	}
	if p.ExpiresAt != nil {
		updates["expires_at"] = p.ExpiresAt.UTC()
	}
	if p.EasyApply != nil {
		updates["easy_apply"] = *p.EasyApply
	}
	if p.Skills != nil {
		updates["skills"] = models.StringArray(*p.Skills)
	}
	return updates, nil
}

// UpdateStatus accepts any enum value from any current status.
func (s *jobService) UpdateStatus(ctx context.Context, id string, status models.JobStatus) (*models.Job, error) {
	const op = "JobService.UpdateStatus"

	if !status.Valid() {
		return nil, utils.E(utils.CodeInvalidArgument, op, "Invalid job status: "+string(status), nil)
	}
	return s.Update(ctx, id, JobPatch{Status: &status})
}

// Delete removes the job first and then rejects its applications, in one
// transaction. Application rows are kept.
func (s *jobService) Delete(ctx context.Context, id string) error {
	const op = "JobService.Delete"

	cur, err := s.jobs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return utils.E(utils.CodeNotFound, op, "Job not found", err)
		}
		return utils.E(utils.CodeInternal, op, "failed to get job", err)
	}

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.jobs.Delete(ctx, id); err != nil {
			return err
		}
		_, err := s.apps.RejectAllForJob(ctx, id)
		return err
	})
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return utils.E(utils.CodeNotFound, op, "Job not found", err)
		}
		return utils.E(utils.CodeInternal, op, "failed to delete job", err)
	}
	s.invalidate(ctx, id)

	s.activity.Record(ctx, models.Activity{
		ActorID:     principal.UserID(ctx),
		RecruiterID: cur.RecruiterID,
		EntityType:  "job",
		EntityID:    id,
		Action:      models.ActivityJobDeleted,
		From:        string(cur.Status),
	})
	return nil
}

func (s *jobService) ExpireDue(ctx context.Context, now time.Time) (int, error) {
	const op = "JobService.ExpireDue"

	ids, err := s.jobs.ExpireDue(ctx, now)
	if err != nil {
		return 0, utils.E(utils.CodeInternal, op, "failed to expire jobs", err)
	}
	if len(ids) == 0 {
		return 0, nil
	}
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = cache.JobKey(id)
	}
	if err := s.cache.Del(ctx, keys...); err != nil {
		s.log.WithError(err).Warn("job cache invalidation failed")
	}
	metrics.AddJobsExpired(len(ids))
	return len(ids), nil
}

func (s *jobService) invalidate(ctx context.Context, id string) {
	if err := s.cache.Del(ctx, cache.JobKey(id)); err != nil {
		s.log.WithError(err).WithField("job_id", id).Warn("job cache invalidation failed")
	}
}
