package postgres

import (
	"context"

	"github.com/yoockh/joblynk/internal/models"
	"github.com/yoockh/joblynk/internal/utils"
	"gorm.io/gorm"
)

type ApplicationRepository interface {
	Create(ctx context.Context, a *models.Application) error
	Exists(ctx context.Context, jobID, seekerID string) (bool, error)
	GetByID(ctx context.Context, id string) (*models.Application, error)
	ListBySeeker(ctx context.Context, seekerID string, p utils.Page) ([]models.Application, int64, error)
	ListByRecruiter(ctx context.Context, recruiterID string, status models.ApplicationStatus, p utils.Page) ([]models.Application, int64, error)
	UpdateStatus(ctx context.Context, id string, status models.ApplicationStatus) error
	RejectAllForJob(ctx context.Context, jobID string) (int64, error)
}

type applicationRepo struct {
	db *gorm.DB
}

func NewApplicationRepo(db *gorm.DB) ApplicationRepository {
	return &applicationRepo{db: db}
}

// jobs are soft deleted, applications must still see them.
func withDeletedJob(db *gorm.DB) *gorm.DB { return db.Unscoped() }

func (r *applicationRepo) Create(ctx context.Context, a *models.Application) error {
	return translate(conn(ctx, r.db).Create(a).Error)
}

func (r *applicationRepo) Exists(ctx context.Context, jobID, seekerID string) (bool, error) {
	var count int64
	err := conn(ctx, r.db).
		Model(&models.Application{}).
		Where("job_id = ? AND seeker_id = ?", jobID, seekerID).
		Count(&count).Error
	return count > 0, err
}

func (r *applicationRepo) GetByID(ctx context.Context, id string) (*models.Application, error) {
	var a models.Application
	err := conn(ctx, r.db).
		Preload("Job", withDeletedJob).
		Preload("Seeker.User").
		Where("id = ?", id).
		Take(&a).Error
	if err != nil {
		return nil, translate(err)
	}
	return &a, nil
}

func (r *applicationRepo) ListBySeeker(ctx context.Context, seekerID string, p utils.Page) ([]models.Application, int64, error) {
	q := conn(ctx, r.db).
		Model(&models.Application{}).
		Where("seeker_id = ?", seekerID).
		Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	apps := []models.Application{}
	err := q.
		Preload("Job", withDeletedJob).
		Preload("Job.Recruiter").
		Order("application_date DESC").
		Offset(p.Offset()).
		Limit(p.PageSize).
		Find(&apps).Error
	if err != nil {
		return nil, 0, err
	}
	return apps, total, nil
}

func (r *applicationRepo) ListByRecruiter(ctx context.Context, recruiterID string, status models.ApplicationStatus, p utils.Page) ([]models.Application, int64, error) {
	q := conn(ctx, r.db).
		Model(&models.Application{}).
		Joins("JOIN jobs ON jobs.id = applications.job_id AND jobs.recruiter_id = ?", recruiterID)
	if status != "" {
		q = q.Where("applications.status = ?", status)
	}
	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	apps := []models.Application{}
	err := q.
		Preload("Job", withDeletedJob).
		Preload("Seeker.User").
		Order("applications.application_date DESC").
		Offset(p.Offset()).
		Limit(p.PageSize).
		Find(&apps).Error
	if err != nil {
		return nil, 0, err
	}
	return apps, total, nil
}

func (r *applicationRepo) UpdateStatus(ctx context.Context, id string, status models.ApplicationStatus) error {
	res := conn(ctx, r.db).Model(&models.Application{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return utils.ErrNotFound
	}
	return nil
}

func (r *applicationRepo) RejectAllForJob(ctx context.Context, jobID string) (int64, error) {
	res := conn(ctx, r.db).
		Model(&models.Application{}).
		Where("job_id = ?", jobID).
		Update("status", models.ApplicationRejected)
	return res.RowsAffected, res.Error
}
