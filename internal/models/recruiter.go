package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Recruiter struct {
	ID          string    `gorm:"column:id;primaryKey" json:"id"`
	UserID      string    `gorm:"column:user_id;uniqueIndex;not null" json:"userId"`
	CompanyName *string   `gorm:"column:company_name" json:"companyName,omitempty"`
	CompanyURL  *string   `gorm:"column:company_url" json:"companyUrl,omitempty"`
	User        *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	CreatedAt   time.Time `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"column:updated_at" json:"updatedAt"`
}

func (Recruiter) TableName() string { return "recruiters" }

func (r *Recruiter) BeforeCreate(*gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
