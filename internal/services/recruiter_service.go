package services

import (
	"context"
	"errors"

	"github.com/yoockh/joblynk/internal/models"
	pgrepo "github.com/yoockh/joblynk/internal/repositories/postgres"
	"github.com/yoockh/joblynk/internal/utils"
)

type RecruiterService interface {
	Create(ctx context.Context, userID string) (*models.Recruiter, error)
	GetByUserID(ctx context.Context, userID string) (*models.Recruiter, error)
	Update(ctx context.Context, userID string, in RecruiterUpdate) (*models.Recruiter, error)
}

type RecruiterUpdate struct {
	CompanyName *string
	CompanyURL  *string
}

type recruiterService struct {
	recruiters pgrepo.RecruiterRepository
}

func NewRecruiterService(recruiters pgrepo.RecruiterRepository) RecruiterService {
	return &recruiterService{recruiters: recruiters}
}

// Create returns the existing profile when the user already has one.
func (s *recruiterService) Create(ctx context.Context, userID string) (*models.Recruiter, error) {
	const op = "RecruiterService.Create"

	if userID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "User ID is required.", nil)
	}

	rec := &models.Recruiter{UserID: userID}
	err := s.recruiters.Create(ctx, rec)
	switch {
	case err == nil:
		return rec, nil
	case errors.Is(err, utils.ErrDuplicate):
		existing, gerr := s.recruiters.GetByUserID(ctx, userID)
		if gerr != nil {
			return nil, utils.E(utils.CodeInternal, op, "Failed to create recruiter profile.", gerr)
		}
		return existing, nil
	case errors.Is(err, utils.ErrNotFound):
		return nil, utils.E(utils.CodeNotFound, op, "User not found.", err)
	default:
		return nil, utils.E(utils.CodeInternal, op, "Failed to create recruiter profile.", err)
	}
}

func (s *recruiterService) GetByUserID(ctx context.Context, userID string) (*models.Recruiter, error) {
	const op = "RecruiterService.GetByUserID"

	rec, err := s.recruiters.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "Recruiter profile not found for this user.", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to load recruiter profile", err)
	}
	return rec, nil
}

func (s *recruiterService) Update(ctx context.Context, userID string, in RecruiterUpdate) (*models.Recruiter, error) {
	const op = "RecruiterService.Update"

	if userID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "User ID is required.", nil)
	}
	updates := map[string]any{}
	if in.CompanyName != nil {
		updates["company_name"] = *in.CompanyName
	}
	if in.CompanyURL != nil {
		updates["company_url"] = *in.CompanyURL
	}
	if len(updates) == 0 {
		return nil, utils.E(utils.CodeInvalidArgument, op, "No updates provided.", nil)
	}

	if err := s.recruiters.UpdateByUserID(ctx, userID, updates); err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "Recruiter profile not found for this user.", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "Failed to update recruiter profile.", err)
	}
	return s.GetByUserID(ctx, userID)
}
