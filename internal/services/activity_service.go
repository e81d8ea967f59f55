package services

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/yoockh/joblynk/internal/models"
	mongorepo "github.com/yoockh/joblynk/internal/repositories/mongo"
	"github.com/yoockh/joblynk/internal/utils"
)

const (
	defaultActivityLimit = 50
	maxActivityLimit     = 200
)

// ActivityService keeps the lifecycle audit trail. Recording is best effort
// and never fails the caller.
type ActivityService interface {
	Record(ctx context.Context, a models.Activity)
	ListForRecruiter(ctx context.Context, recruiterID string, limit int64) ([]models.Activity, error)
}

type activityService struct {
	repo mongorepo.ActivityRepository // nil when mongo is not configured
	log  *logrus.Logger
}

func NewActivityService(repo mongorepo.ActivityRepository, log *logrus.Logger) ActivityService {
	return &activityService{repo: repo, log: log}
}

func (s *activityService) Record(ctx context.Context, a models.Activity) {
	if s.repo == nil {
		return
	}
	if err := s.repo.Insert(ctx, &a); err != nil {
		s.log.WithError(err).WithFields(logrus.Fields{
			"action":    a.Action,
			"entity_id": a.EntityID,
		}).Warn("failed to record activity")
	}
}

func (s *activityService) ListForRecruiter(ctx context.Context, recruiterID string, limit int64) ([]models.Activity, error) {
	const op = "ActivityService.ListForRecruiter"

	if recruiterID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "recruiterId is required", nil)
	}
	if s.repo == nil {
		return []models.Activity{}, nil
	}
	if limit <= 0 {
		limit = defaultActivityLimit
	}
	if limit > maxActivityLimit {
		limit = maxActivityLimit
	}

	out, err := s.repo.ListByRecruiter(ctx, recruiterID, limit)
	if err != nil {
		return nil, utils.E(utils.CodeUnavailable, op, "failed to load activity", err)
	}
	return out, nil
}
