package services

import (
	"context"
	"errors"

	"github.com/yoockh/joblynk/internal/models"
	"github.com/yoockh/joblynk/internal/observability/metrics"
	"github.com/yoockh/joblynk/internal/principal"
	pgrepo "github.com/yoockh/joblynk/internal/repositories/postgres"
	"github.com/yoockh/joblynk/internal/utils"
)

type ApplicationService interface {
	Create(ctx context.Context, jobID, seekerID string) (*models.Application, error)
	Get(ctx context.Context, id string) (*models.Application, error)
	ListForSeeker(ctx context.Context, seekerID string, p utils.Page) (*ApplicationPage, error)
	ListForRecruiter(ctx context.Context, recruiterID string, status models.ApplicationStatus, p utils.Page) (*ApplicationPage, error)
	UpdateStatus(ctx context.Context, id string, status models.ApplicationStatus) (*models.Application, error)
	RejectAllForJob(ctx context.Context, jobID string) (int64, error)
}

type ApplicationPage struct {
	Applications []models.Application `json:"applications"`
	Total        int64                `json:"total"`
	CurrentPage  int                  `json:"currentPage"`
	TotalPages   int                  `json:"totalPages"`
}

type applicationService struct {
	apps     pgrepo.ApplicationRepository
	jobs     pgrepo.JobRepository
	activity ActivityService
}

func NewApplicationService(apps pgrepo.ApplicationRepository, jobs pgrepo.JobRepository, activity ActivityService) ApplicationService {
	return &applicationService{apps: apps, jobs: jobs, activity: activity}
}

// Create inserts one application per (job, seeker). The Exists lookup only
// produces a friendlier error; the unique index decides races.
func (s *applicationService) Create(ctx context.Context, jobID, seekerID string) (*models.Application, error) {
	const op = "ApplicationService.Create"

	if jobID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "Job ID is required.", nil)
	}
	if seekerID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "Seeker profile not found.", nil)
	}

	job, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "Job not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to load job", err)
	}

	exists, err := s.apps.Exists(ctx, jobID, seekerID)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to check application", err)
	}
	if exists {
		return nil, utils.E(utils.CodeConflict, op, "Application already exists", nil)
	}

	app := &models.Application{JobID: jobID, SeekerID: seekerID}
	if err := s.apps.Create(ctx, app); err != nil {
		switch {
		case errors.Is(err, utils.ErrDuplicate):
			return nil, utils.E(utils.CodeConflict, op, "Application already exists", err)
		case errors.Is(err, utils.ErrNotFound):
			return nil, utils.E(utils.CodeNotFound, op, "Job or seeker not found", err)
		default:
			return nil, utils.E(utils.CodeInternal, op, "Failed to create application", err)
		}
	}

	metrics.IncApplicationsCreated()
	s.activity.Record(ctx, models.Activity{
		ActorID:     principal.UserID(ctx),
		RecruiterID: job.RecruiterID,
		EntityType:  "application",
		EntityID:    app.ID,
		Action:      models.ActivityApplicationCreated,
		To:          string(app.Status),
	})
	return app, nil
}

func (s *applicationService) Get(ctx context.Context, id string) (*models.Application, error) {
	const op = "ApplicationService.Get"

	if id == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "Application ID is required.", nil)
	}
	app, err := s.apps.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "Application not found.", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to load application", err)
	}
	return app, nil
}

func (s *applicationService) ListForSeeker(ctx context.Context, seekerID string, p utils.Page) (*ApplicationPage, error) {
	const op = "ApplicationService.ListForSeeker"

	p = p.Normalize()
	apps, total, err := s.apps.ListBySeeker(ctx, seekerID, p)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list applications", err)
	}
	return newApplicationPage(apps, total, p), nil
}

func (s *applicationService) ListForRecruiter(ctx context.Context, recruiterID string, status models.ApplicationStatus, p utils.Page) (*ApplicationPage, error) {
	const op = "ApplicationService.ListForRecruiter"

	if status != "" && !status.Valid() {
		return nil, utils.E(utils.CodeInvalidArgument, op, "Invalid application status: "+string(status), nil)
	}
	p = p.Normalize()
	apps, total, err := s.apps.ListByRecruiter(ctx, recruiterID, status, p)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list applications", err)
	}
	return newApplicationPage(apps, total, p), nil
}

func newApplicationPage(apps []models.Application, total int64, p utils.Page) *ApplicationPage {
	if apps == nil {
		apps = []models.Application{}
	}
	return &ApplicationPage{
		Applications: apps,
		Total:        total,
		CurrentPage:  p.Page,
		TotalPages:   p.TotalPages(total),
	}
}

// UpdateStatus accepts any enum value from any current status. Ownership is
// checked by the caller.
func (s *applicationService) UpdateStatus(ctx context.Context, id string, status models.ApplicationStatus) (*models.Application, error) {
	const op = "ApplicationService.UpdateStatus"

	if !status.Valid() {
		return nil, utils.E(utils.CodeInvalidArgument, op, "Invalid application status: "+string(status), nil)
	}

	prev, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.apps.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "Application not found.", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "Failed to update application status", err)
	}
	metrics.IncApplicationStatusChange(string(status))

	recruiterID := ""
	if prev.Job != nil {
		recruiterID = prev.Job.RecruiterID
	}
	s.activity.Record(ctx, models.Activity{
		ActorID:     principal.UserID(ctx),
		RecruiterID: recruiterID,
		EntityType:  "application",
		EntityID:    id,
		Action:      models.ActivityApplicationStatusChanged,
		From:        string(prev.Status),
		To:          string(status),
	})

	return s.Get(ctx, id)
}

func (s *applicationService) RejectAllForJob(ctx context.Context, jobID string) (int64, error) {
	const op = "ApplicationService.RejectAllForJob"

	n, err := s.apps.RejectAllForJob(ctx, jobID)
	if err != nil {
		return 0, utils.E(utils.CodeInternal, op, "failed to reject applications", err)
	}
	if n > 0 {
		metrics.IncApplicationStatusChange(string(models.ApplicationRejected))
	}
	return n, nil
}
