package visitorstore

import (
	"context"

	"github.com/dalemusser/chapterhub/internal/app/store/queries/trendqueries"
	"github.com/dalemusser/chapterhub/internal/app/system/window"
	"github.com/dalemusser/chapterhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("visitors")}
}

// CountInvitedBy counts visitors memberID brought, created inside w.
func (s *Store) CountInvitedBy(ctx context.Context, memberID primitive.ObjectID, w window.Window) (int64, error) {
	return s.c.CountDocuments(ctx, w.Apply(bson.M{"inviting_member_id": memberID}, "created_at"))
}

// WeeklyInvitedBy buckets visitors memberID brought by ISO week of created_at.
func (s *Store) WeeklyInvitedBy(ctx context.Context, memberID primitive.ObjectID, tz string) ([]models.WeekBucket, error) {
	return trendqueries.WeeklyCounts(ctx, s.c, bson.M{"inviting_member_id": memberID}, "created_at", tz)
}

// Monthly buckets all visitors created inside w by calendar month.
func (s *Store) Monthly(ctx context.Context, w window.Window, tz string) ([]models.MonthBucket, error) {
	return trendqueries.MonthlyCounts(ctx, s.c, w.Apply(bson.M{}, "created_at"), "created_at", tz, "")
}
