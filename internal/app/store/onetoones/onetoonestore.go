package onetoonestore

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

// member1 is credited as the giver of a one-to-one.
var parties = partyqueries.Fields{Given: "member1_id", Received: "member2_id"}

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("one_to_ones")}
}

// CountInvolving counts meetings where memberID is in either slot, created inside w.
func (s *Store) CountInvolving(ctx context.Context, memberID primitive.ObjectID, w window.Window) (int64, error) {
	filter := w.Apply(parties.Filter(memberID, models.DirectionAny), "created_at")
	return s.c.CountDocuments(ctx, filter)
}

// WeeklyInvolving buckets meetings involving memberID by ISO week of meeting_date.
func (s *Store) WeeklyInvolving(ctx context.Context, memberID primitive.ObjectID, tz string) ([]models.WeekBucket, error) {
	return trendqueries.WeeklyCounts(ctx, s.c, parties.Filter(memberID, models.DirectionAny), "meeting_date", tz)
}

// Monthly buckets all meetings whose meeting_date falls inside w by calendar month.
func (s *Store) Monthly(ctx context.Context, w window.Window, tz string) ([]models.MonthBucket, error) {
	return trendqueries.MonthlyCounts(ctx, s.c, w.Apply(bson.M{}, "meeting_date"), "meeting_date", tz, "")
}

// List returns meetings with memberID in the dir slot created inside w,
// newest first.
func (s *Store) List(ctx context.Context, memberID primitive.ObjectID, dir models.Direction, w window.Window) ([]models.OneToOneMeeting, error) {
	filter := w.Apply(parties.Filter(memberID, dir), "created_at")
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})

	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.OneToOneMeeting{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
