package mongo

import (
	"context"
	"time"

	"github.com/yoockh/joblynk/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ActivityRepository interface {
	Insert(ctx context.Context, a *models.Activity) error
	ListByRecruiter(ctx context.Context, recruiterID string, limit int64) ([]models.Activity, error)
}

type activityRepo struct {
	col *mongo.Collection
	ttl time.Duration
}

func NewActivityRepo(db *mongo.Database, collection string, ttl time.Duration) ActivityRepository {
	return &activityRepo{col: db.Collection(collection), ttl: ttl}
}

func (r *activityRepo) Insert(ctx context.Context, a *models.Activity) error {
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}
	if a.ExpiresAt.IsZero() {
		a.ExpiresAt = a.CreatedAt.Add(r.ttl)
	}
	_, err := r.col.InsertOne(ctx, a)
	return err
}

func (r *activityRepo) ListByRecruiter(ctx context.Context, recruiterID string, limit int64) ([]models.Activity, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit)

	cur, err := r.col.Find(ctx, bson.M{"recruiter_id": recruiterID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Activity{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
