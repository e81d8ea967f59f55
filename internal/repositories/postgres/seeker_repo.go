package postgres

import (
	"context"

	"github.com/yoockh/joblynk/internal/models"
	"github.com/yoockh/joblynk/internal/utils"
	"gorm.io/gorm"
)

type SeekerRepository interface {
	Create(ctx context.Context, s *models.Seeker) error
	GetByUserID(ctx context.Context, userID string) (*models.Seeker, error)
	UpdateByUserID(ctx context.Context, userID string, updates map[string]any) error
}

type seekerRepo struct {
	db *gorm.DB
}

func NewSeekerRepo(db *gorm.DB) SeekerRepository {
	return &seekerRepo{db: db}
}

func (r *seekerRepo) Create(ctx context.Context, s *models.Seeker) error {
	return translate(conn(ctx, r.db).Create(s).Error)
}

func (r *seekerRepo) GetByUserID(ctx context.Context, userID string) (*models.Seeker, error) {
	var s models.Seeker
	if err := conn(ctx, r.db).Where("user_id = ?", userID).Take(&s).Error; err != nil {
		return nil, translate(err)
	}
	return &s, nil
}

func (r *seekerRepo) UpdateByUserID(ctx context.Context, userID string, updates map[string]any) error {
	res := conn(ctx, r.db).Model(&models.Seeker{}).Where("user_id = ?", userID).Updates(updates)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return utils.ErrNotFound
	}
	return nil
}
