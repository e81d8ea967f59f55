package models

import (
	"database/sql/driver"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

type JobType string

const (
	JobTypeFullTime   JobType = "full-time"
	JobTypePartTime   JobType = "part-time"
	JobTypeContract   JobType = "contract"
	JobTypeInternship JobType = "internship"
)

func (t JobType) Valid() bool {
	switch t {
	case JobTypeFullTime, JobTypePartTime, JobTypeContract, JobTypeInternship:
		return true
	}
	return false
}

type JobStatus string

const (
	JobStatusDraft   JobStatus = "draft"
	JobStatusActive  JobStatus = "active"
	JobStatusExpired JobStatus = "expired"
	JobStatusFilled  JobStatus = "filled"
)

// Valid reports enum membership only. Any status may follow any other.
func (s JobStatus) Valid() bool {
	switch s {
	case JobStatusDraft, JobStatusActive, JobStatusExpired, JobStatusFilled:
		return true
	}
	return false
}

type Job struct {
	ID                  string         `gorm:"column:id;primaryKey" json:"id"`
	RecruiterID         string         `gorm:"column:recruiter_id;index;not null" json:"recruiterId"`
	Recruiter           *Recruiter     `gorm:"foreignKey:RecruiterID" json:"recruiter,omitempty"`
	Title               string         `gorm:"column:title;not null" json:"title"`
	DescriptionMarkdown string         `gorm:"column:description_markdown" json:"descriptionMarkdown,omitempty"`
	Location            string         `gorm:"column:location" json:"location"`
	JobType             JobType        `gorm:"column:job_type;not null" json:"jobType"`
	SalaryMin           *int           `gorm:"column:salary_min" json:"salaryMin,omitempty"`
	SalaryMax           *int           `gorm:"column:salary_max" json:"salaryMax,omitempty"`
	SalaryCurrency      *string        `gorm:"column:salary_currency" json:"salaryCurrency,omitempty"`
	ApplyURL            string         `gorm:"column:apply_url" json:"applyUrl"`
	Status              JobStatus      `gorm:"column:status;index;not null" json:"status"`
	PostedAt            *time.Time     `gorm:"column:posted_at" json:"postedAt,omitempty"`
	ExpiresAt           *time.Time     `gorm:"column:expires_at" json:"expiresAt,omitempty"`
	EasyApply           bool           `gorm:"column:easy_apply" json:"easyApply"`
	Skills              StringArray    `gorm:"column:skills" json:"skills"`
	CreatedAt           time.Time      `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt           time.Time      `gorm:"column:updated_at" json:"updatedAt"`
	DeletedAt           gorm.DeletedAt `gorm:"column:deleted_at;index" json:"-"`
}

func (Job) TableName() string { return "jobs" }

func (j *Job) BeforeCreate(*gorm.DB) error {
	if j.ID == "" {
		j.ID = uuid.NewString()
	}
	if j.Status == "" {
		j.Status = JobStatusDraft
	}
	return nil
}

// JobFilter narrows a job listing. An empty RecruiterID means the public
// listing, which only ever contains active jobs.
type JobFilter struct {
	Search      string
	Location    string
	JobType     JobType
	RecruiterID string
}

// StringArray is a postgres text[] column, encoded with lib/pq.
type StringArray []string

func (a StringArray) Value() (driver.Value, error) {
	if a == nil {
		return nil, nil
	}
	return pq.StringArray(a).Value()
}

func (a *StringArray) Scan(src any) error {
	var pa pq.StringArray
	if err := pa.Scan(src); err != nil {
		return err
	}
	*a = StringArray(pa)
	return nil
}

func (StringArray) GormDataType() string { return "text[]" }

func (StringArray) GormDBDataType(db *gorm.DB, _ *schema.Field) string {
	if db.Dialector.Name() == "postgres" {
		return "text[]"
	}
	return "text"
}
