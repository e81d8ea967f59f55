package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ApplicationStatus string

const (
	ApplicationApplied      ApplicationStatus = "Applied"
	ApplicationReviewed     ApplicationStatus = "Reviewed"
	ApplicationInterviewing ApplicationStatus = "Interviewing"
	ApplicationRejected     ApplicationStatus = "Rejected"
	ApplicationHired        ApplicationStatus = "Hired"
	ApplicationWithdrawn    ApplicationStatus = "Withdrawn"
)

func (s ApplicationStatus) Valid() bool {
	switch s {
	case ApplicationApplied, ApplicationReviewed, ApplicationInterviewing,
		ApplicationRejected, ApplicationHired, ApplicationWithdrawn:
		return true
	}
	return false
}

type Application struct {
	ID              string            `gorm:"column:id;primaryKey" json:"id"`
	JobID           string            `gorm:"column:job_id;not null;uniqueIndex:idx_applications_job_seeker" json:"jobId"`
	Job             *Job              `gorm:"foreignKey:JobID" json:"job,omitempty"`
	SeekerID        string            `gorm:"column:seeker_id;not null;uniqueIndex:idx_applications_job_seeker" json:"seekerId"`
	Seeker          *Seeker           `gorm:"foreignKey:SeekerID" json:"seeker,omitempty"`
	ApplicationDate time.Time         `gorm:"column:application_date;not null" json:"applicationDate"`
	Status          ApplicationStatus `gorm:"column:status;not null" json:"status"`
	CreatedAt       time.Time         `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt       time.Time         `gorm:"column:updated_at" json:"updatedAt"`
}

func (Application) TableName() string { return "applications" }

func (a *Application) BeforeCreate(*gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.Status == "" {
		a.Status = ApplicationApplied
	}
	if a.ApplicationDate.IsZero() {
		a.ApplicationDate = time.Now().UTC()
	}
	return nil
}
