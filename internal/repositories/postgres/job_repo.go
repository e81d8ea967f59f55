package postgres

import (
	"context"
	"strings"
	"time"

	"github.com/yoockh/joblynk/internal/models"
	"github.com/yoockh/joblynk/internal/utils"
	"gorm.io/gorm"
)

type JobRepository interface {
	Create(ctx context.Context, j *models.Job) error
	GetByID(ctx context.Context, id string) (*models.Job, error)
	List(ctx context.Context, f models.JobFilter, p utils.Page) ([]models.Job, int64, error)
	Update(ctx context.Context, id string, updates map[string]any) error
	Delete(ctx context.Context, id string) error
	ExpireDue(ctx context.Context, now time.Time) ([]string, error)
}

type jobRepo struct {
	db *gorm.DB
}

func NewJobRepo(db *gorm.DB) JobRepository {
	return &jobRepo{db: db}
}

func (r *jobRepo) Create(ctx context.Context, j *models.Job) error {
	return translate(conn(ctx, r.db).Create(j).Error)
}

func (r *jobRepo) GetByID(ctx context.Context, id string) (*models.Job, error) {
	var j models.Job
	err := conn(ctx, r.db).
		Preload("Recruiter").
		Where("id = ?", id).
		Take(&j).Error
	if err != nil {
		return nil, translate(err)
	}
	return &j, nil
}

func (r *jobRepo) List(ctx context.Context, f models.JobFilter, p utils.Page) ([]models.Job, int64, error) {
	q := conn(ctx, r.db).Model(&models.Job{})

	if s := strings.TrimSpace(f.Search); s != "" {
		pat := containsPattern(s)
		q = q.Where(`(LOWER(title) LIKE ? ESCAPE '\' OR LOWER(description_markdown) LIKE ? ESCAPE '\')`, pat, pat)
	}
	if l := strings.TrimSpace(f.Location); l != "" {
		q = q.Where(`LOWER(location) LIKE ? ESCAPE '\'`, containsPattern(l))
	}
	if f.JobType != "" {
		q = q.Where("job_type = ?", f.JobType)
	}
	if f.RecruiterID != "" {
		q = q.Where("recruiter_id = ?", f.RecruiterID)
	} else {
		q = q.Where("status = ?", models.JobStatusActive)
	}
	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	jobs := []models.Job{}
	err := q.
		Omit("description_markdown").
		Preload("Recruiter").
		Order("created_at DESC").
		Offset(p.Offset()).
		Limit(p.PageSize).
		Find(&jobs).Error
	if err != nil {
		return nil, 0, err
	}
	return jobs, total, nil
}

func (r *jobRepo) Update(ctx context.Context, id string, updates map[string]any) error {
	res := conn(ctx, r.db).Model(&models.Job{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return utils.ErrNotFound
	}
	return nil
}

// Delete is a soft delete; application rows keep referencing the job.
func (r *jobRepo) Delete(ctx context.Context, id string) error {
	res := conn(ctx, r.db).Where("id = ?", id).Delete(&models.Job{})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return utils.ErrNotFound
	}
	return nil
}

// ExpireDue moves active jobs whose expiresAt has passed to expired and
// returns their ids.
func (r *jobRepo) ExpireDue(ctx context.Context, now time.Time) ([]string, error) {
	db := conn(ctx, r.db)

	var ids []string
	err := db.Model(&models.Job{}).
		Where("status = ? AND expires_at IS NOT NULL AND expires_at < ?", models.JobStatusActive, now.UTC()).
		Pluck("id", &ids).Error
	if err != nil || len(ids) == 0 {
		return nil, err
	}

	err = db.Model(&models.Job{}).
		Where("id IN ? AND status = ?", ids, models.JobStatusActive).
		Update("status", models.JobStatusExpired).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}
