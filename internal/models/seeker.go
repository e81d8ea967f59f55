package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Seeker struct {
	ID               string    `gorm:"column:id;primaryKey" json:"id"`
	UserID           string    `gorm:"column:user_id;uniqueIndex;not null" json:"userId"`
	EmploymentStatus *string   `gorm:"column:employment_status" json:"employmentStatus,omitempty"`
	ResumeURL        *string   `gorm:"column:resume_url" json:"resumeUrl,omitempty"`
	User             *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	CreatedAt        time.Time `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt        time.Time `gorm:"column:updated_at" json:"updatedAt"`
}

func (Seeker) TableName() string { return "seekers" }

func (s *Seeker) BeforeCreate(*gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}
