package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/yoockh/joblynk/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Discard,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Seeker{},
		&models.Recruiter{},
		&models.Job{},
		&models.Application{},
	))
	return db
}

type fixture struct {
	t   *testing.T
	ctx context.Context
	db  *gorm.DB
}

func newFixture(t *testing.T) *fixture {
	return &fixture{t: t, ctx: context.Background(), db: newTestDB(t)}
}

func (f *fixture) user(id string) *models.User {
	u := &models.User{ID: id, FirstName: "First", LastName: "Last", Email: id + "@example.com"}
	require.NoError(f.t, NewUserRepo(f.db).Create(f.ctx, u))
	return u
}

func (f *fixture) recruiter(userID string) *models.Recruiter {
	f.user(userID)
	name := "Acme " + userID
	rec := &models.Recruiter{UserID: userID, CompanyName: &name}
	require.NoError(f.t, NewRecruiterRepo(f.db).Create(f.ctx, rec))
	return rec
}

func (f *fixture) seeker(userID string) *models.Seeker {
	f.user(userID)
	s := &models.Seeker{UserID: userID}
	require.NoError(f.t, NewSeekerRepo(f.db).Create(f.ctx, s))
	return s
}

var baseTime = time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

func (f *fixture) job(recruiterID, title string, status models.JobStatus, age int) *models.Job {
	j := &models.Job{
		RecruiterID:         recruiterID,
		Title:               title,
		DescriptionMarkdown: "Work on " + title,
		Location:            "Remote",
		JobType:             models.JobTypeFullTime,
		ApplyURL:            "https://example.com/apply",
		Status:              status,
		Skills:              models.StringArray{"go"},
		CreatedAt:           baseTime.Add(-time.Duration(age) * time.Hour),
	}
	require.NoError(f.t, NewJobRepo(f.db).Create(f.ctx, j))
	return j
}

func (f *fixture) application(jobID, seekerID string, age int) *models.Application {
	a := &models.Application{
		JobID:           jobID,
		SeekerID:        seekerID,
		ApplicationDate: baseTime.Add(-time.Duration(age) * time.Hour),
	}
	require.NoError(f.t, NewApplicationRepo(f.db).Create(f.ctx, a))
	return a
}
