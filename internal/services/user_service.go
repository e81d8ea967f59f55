package services

import (
	"context"
	"errors"
	"strings"

	"github.com/yoockh/joblynk/internal/models"
	pgrepo "github.com/yoockh/joblynk/internal/repositories/postgres"
	"github.com/yoockh/joblynk/internal/utils"
)

type UserService interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetProfile(ctx context.Context, id string) (*models.Profile, error)
	Create(ctx context.Context, u *models.User) (*models.User, error)
	Update(ctx context.Context, id string, in UserUpdate) (*models.User, error)
	SetRole(ctx context.Context, id string, role models.Role) (*models.Profile, error)
}

type UserUpdate struct {
	FirstName *string
	LastName  *string
	Email     *string
	Phone     *string
}

func (u UserUpdate) empty() bool {
	return u.FirstName == nil && u.LastName == nil && u.Email == nil && u.Phone == nil
}

type userService struct {
	users      pgrepo.UserRepository
	seekers    SeekerService
	recruiters RecruiterService
}

func NewUserService(users pgrepo.UserRepository, seekers SeekerService, recruiters RecruiterService) UserService {
	return &userService{users: users, seekers: seekers, recruiters: recruiters}
}

func (s *userService) GetByID(ctx context.Context, id string) (*models.User, error) {
	const op = "UserService.GetByID"

	if id == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "user id is required", nil)
	}
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "User not found.", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to retrieve user", err)
	}
	return u, nil
}

// GetProfile loads the user plus the sub-profile matching its role. A role
// without a sub-profile yet is not an error.
func (s *userService) GetProfile(ctx context.Context, id string) (*models.Profile, error) {
	u, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	p := &models.Profile{User: u}
	switch {
	case u.HasRole(models.RoleSeeker):
		seeker, err := s.seekers.GetByUserID(ctx, id)
		if err != nil && !utils.IsCode(err, utils.CodeNotFound) {
			return nil, err
		}
		p.Seeker = seeker
	case u.HasRole(models.RoleRecruiter):
		rec, err := s.recruiters.GetByUserID(ctx, id)
		if err != nil && !utils.IsCode(err, utils.CodeNotFound) {
			return nil, err
		}
		p.Recruiter = rec
	}
	return p, nil
}

func (s *userService) Create(ctx context.Context, u *models.User) (*models.User, error) {
	const op = "UserService.Create"

	if u == nil || u.ID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "user id is required", nil)
	}
	u.Email = strings.TrimSpace(u.Email)
	if u.Email == "" || strings.TrimSpace(u.FirstName) == "" || strings.TrimSpace(u.LastName) == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "firstName, lastName and email are required", nil)
	}
	if u.Role != nil && !u.Role.Valid() {
		return nil, utils.E(utils.CodeInvalidArgument, op, "invalid role", nil)
	}

	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, utils.ErrDuplicate) {
			return nil, utils.E(utils.CodeConflict, op, "User with this email/username already exists.", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to create user", err)
	}
	return u, nil
}

func (s *userService) Update(ctx context.Context, id string, in UserUpdate) (*models.User, error) {
	const op = "UserService.Update"

	if in.empty() {
		return nil, utils.E(utils.CodeInvalidArgument, op, "No updates provided.", nil)
	}

	updates := map[string]any{}
	if in.FirstName != nil {
		updates["first_name"] = strings.TrimSpace(*in.FirstName)
	}
	if in.LastName != nil {
		updates["last_name"] = strings.TrimSpace(*in.LastName)
	}
	if in.Email != nil {
		email := strings.TrimSpace(*in.Email)
		if email == "" {
			return nil, utils.E(utils.CodeInvalidArgument, op, "email cannot be empty", nil)
		}
		updates["email"] = email
	}
	if in.Phone != nil {
		updates["phone"] = *in.Phone
	}

	if err := s.users.Update(ctx, id, updates); err != nil {
		switch {
		case errors.Is(err, utils.ErrNotFound):
			return nil, utils.E(utils.CodeNotFound, op, "User not found.", err)
		case errors.Is(err, utils.ErrDuplicate):
			return nil, utils.E(utils.CodeConflict, op, "The updated value for this attribute already exists for another user.", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to update user", err)
	}
	return s.GetByID(ctx, id)
}

// SetRole stores the role and makes sure the matching sub-profile exists.
func (s *userService) SetRole(ctx context.Context, id string, role models.Role) (*models.Profile, error) {
	const op = "UserService.SetRole"

	if !role.Valid() {
		return nil, utils.E(utils.CodeInvalidArgument, op, "role must be seeker or recruiter", nil)
	}

	if err := s.users.Update(ctx, id, map[string]any{"role": role}); err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "User not found.", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to update role", err)
	}

	var err error
	switch role {
	case models.RoleSeeker:
		_, err = s.seekers.Create(ctx, id)
	case models.RoleRecruiter:
		_, err = s.recruiters.Create(ctx, id)
	}
	if err != nil {
		return nil, err
	}
	return s.GetProfile(ctx, id)
}
