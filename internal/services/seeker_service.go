package services

import (
	"context"
	"errors"

	"github.com/yoockh/joblynk/internal/models"
	pgrepo "github.com/yoockh/joblynk/internal/repositories/postgres"
	"github.com/yoockh/joblynk/internal/utils"
)

type SeekerService interface {
	Create(ctx context.Context, userID string) (*models.Seeker, error)
	GetByUserID(ctx context.Context, userID string) (*models.Seeker, error)
	Update(ctx context.Context, userID string, in SeekerUpdate) (*models.Seeker, error)
}

type SeekerUpdate struct {
	EmploymentStatus *string
	ResumeURL        *string
}

type seekerService struct {
	seekers pgrepo.SeekerRepository
}

func NewSeekerService(seekers pgrepo.SeekerRepository) SeekerService {
	return &seekerService{seekers: seekers}
}

// Create is idempotent: a second call for the same user returns the profile
// created first.
func (s *seekerService) Create(ctx context.Context, userID string) (*models.Seeker, error) {
	const op = "SeekerService.Create"

	if userID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "User ID is required.", nil)
	}

	seeker := &models.Seeker{UserID: userID}
	err := s.seekers.Create(ctx, seeker)
	switch {
	case err == nil:
		return seeker, nil
	case errors.Is(err, utils.ErrDuplicate):
		existing, gerr := s.seekers.GetByUserID(ctx, userID)
		if gerr != nil {
			return nil, utils.E(utils.CodeInternal, op, "Failed to create seeker profile.", gerr)
		}
		return existing, nil
	case errors.Is(err, utils.ErrNotFound):
		return nil, utils.E(utils.CodeNotFound, op, "User not found.", err)
	default:
		return nil, utils.E(utils.CodeInternal, op, "Failed to create seeker profile.", err)
	}
}

func (s *seekerService) GetByUserID(ctx context.Context, userID string) (*models.Seeker, error) {
	const op = "SeekerService.GetByUserID"

	seeker, err := s.seekers.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "Seeker profile not found for this user.", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to load seeker profile", err)
	}
	return seeker, nil
}

func (s *seekerService) Update(ctx context.Context, userID string, in SeekerUpdate) (*models.Seeker, error) {
	const op = "SeekerService.Update"

	if userID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "User ID is required.", nil)
	}
	updates := map[string]any{}
	if in.EmploymentStatus != nil {
		updates["employment_status"] = *in.EmploymentStatus
	}
	if in.ResumeURL != nil {
		updates["resume_url"] = *in.ResumeURL
	}
	if len(updates) == 0 {
		return nil, utils.E(utils.CodeInvalidArgument, op, "No updates provided.", nil)
	}

	if err := s.seekers.UpdateByUserID(ctx, userID, updates); err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "Seeker profile not found for this user.", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "Failed to update seeker profile.", err)
	}
	return s.GetByUserID(ctx, userID)
}
