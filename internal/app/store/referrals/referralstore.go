package referralstore

import (
	"context"

	"github.com/dalemusser/chapterhub/internal/app/store/queries/partyqueries"
	"github.com/dalemusser/chapterhub/internal/app/store/queries/trendqueries"
	"github.com/dalemusser/chapterhub/internal/app/system/window"
	"github.com/dalemusser/chapterhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var parties = partyqueries.Fields{Given: "referrer_id", Received: "referee_id"}

// Store reads referrals. Referrer is the giving side.
type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("referrals")}
}

// Count returns the number of referrals on memberID's dir side created
// inside w.
func (s *Store) Count(ctx context.Context, memberID primitive.ObjectID, dir models.Direction, w window.Window) (int64, error) {
	filter := w.Apply(parties.Filter(memberID, dir), "created_at")
	return s.c.CountDocuments(ctx, filter)
}

// WeeklyGiven buckets the referrals memberID gave by ISO week of created_at.
func (s *Store) WeeklyGiven(ctx context.Context, memberID primitive.ObjectID, tz string) ([]models.WeekBucket, error) {
	return trendqueries.WeeklyCounts(ctx, s.c, bson.M{"referrer_id": memberID}, "created_at", tz)
}

// Monthly buckets all referrals created inside w by calendar month.
func (s *Store) Monthly(ctx context.Context, w window.Window, tz string) ([]models.MonthBucket, error) {
	return trendqueries.MonthlyCounts(ctx, s.c, w.Apply(bson.M{}, "created_at"), "created_at", tz, "")
}

// List returns memberID's referrals on the dir side created inside w,
// newest first.
func (s *Store) List(ctx context.Context, memberID primitive.ObjectID, dir models.Direction, w window.Window) ([]models.Referral, error) {
	filter := w.Apply(parties.Filter(memberID, dir), "created_at")
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})

	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Referral{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
