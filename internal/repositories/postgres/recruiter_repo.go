package postgres

import (
	"context"

	"github.com/yoockh/joblynk/internal/models"
	"github.com/yoockh/joblynk/internal/utils"
	"gorm.io/gorm"
)

type RecruiterRepository interface {
	Create(ctx context.Context, rec *models.Recruiter) error
	GetByUserID(ctx context.Context, userID string) (*models.Recruiter, error)
	UpdateByUserID(ctx context.Context, userID string, updates map[string]any) error
}

type recruiterRepo struct {
	db *gorm.DB
}

func NewRecruiterRepo(db *gorm.DB) RecruiterRepository {
	return &recruiterRepo{db: db}
}

func (r *recruiterRepo) Create(ctx context.Context, rec *models.Recruiter) error {
	return translate(conn(ctx, r.db).Create(rec).Error)
}

func (r *recruiterRepo) GetByUserID(ctx context.Context, userID string) (*models.Recruiter, error) {
	var rec models.Recruiter
	if err := conn(ctx, r.db).Where("user_id = ?", userID).Take(&rec).Error; err != nil {
		return nil, translate(err)
	}
	return &rec, nil
}

func (r *recruiterRepo) UpdateByUserID(ctx context.Context, userID string, updates map[string]any) error {
	res := conn(ctx, r.db).Model(&models.Recruiter{}).Where("user_id = ?", userID).Updates(updates)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return utils.ErrNotFound
	}
	return nil
}
