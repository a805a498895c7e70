package tyftbstore

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

var parties = partyqueries.Fields{Given: "payer_id", Received: "receiver_id"}

// Store reads TYFTB records. The payer is the giving side.
type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("tyftbs")}
}

// Totals is a record count with the sum of business_amount over the same records.
type Totals struct {
	Count  int64         `bson:"count"`
	Amount models.Amount `bson:"amount"`
}

// sumAmount is the $sum expression for business_amount. Missing or null
// amounts contribute zero.
var sumAmount = bson.M{"$sum": bson.M{"$ifNull": bson.A{"$business_amount", 0}}}

// Totals counts and sums memberID's records on the dir side created inside w.
func (s *Store) Totals(ctx context.Context, memberID primitive.ObjectID, dir models.Direction, w window.Window) (Totals, error) {
	return s.totals(ctx, w.Apply(parties.Filter(memberID, dir), "created_at"))
}

// SumPaidBy sums business_amount over records with the given status paid by
// any member in payerIDs. An empty payer set sums to zero without querying.
func (s *Store) SumPaidBy(ctx context.Context, payerIDs []primitive.ObjectID, status bool) (models.Amount, error) {
	if len(payerIDs) == 0 {
		return models.ZeroAmount, nil
	}
	t, err := s.totals(ctx, bson.M{"payer_id": bson.M{"$in": payerIDs}, "status": status})
	if err != nil {
		return models.ZeroAmount, err
	}
	return t.Amount, nil
}

func (s *Store) totals(ctx context.Context, match bson.M) (Totals, error) {
	pipeline := []bson.M{
		{"$match": match},
		{"$group": bson.M{
			"_id":    nil,
			"count":  bson.M{"$sum": 1},
			"amount": sumAmount,
		}},
	}

	cur, err := s.c.Aggregate(ctx, pipeline)
	if err != nil {
		return Totals{}, err
	}
	defer cur.Close(ctx)

	var out Totals
	if cur.Next(ctx) {
		if err := cur.Decode(&out); err != nil {
			return Totals{}, err
		}
	}
	if err := cur.Err(); err != nil {
		return Totals{}, err
	}
	return out, nil
}

// WeeklyGiven buckets the records memberID paid by ISO week of created_at.
func (s *Store) WeeklyGiven(ctx context.Context, memberID primitive.ObjectID, tz string) ([]models.WeekBucket, error) {
	return trendqueries.WeeklyCounts(ctx, s.c, bson.M{"payer_id": memberID}, "created_at", tz)
}

// Monthly buckets all records created inside w by calendar month, with the
// business_amount total of each month.
func (s *Store) Monthly(ctx context.Context, w window.Window, tz string) ([]models.MonthBucket, error) {
	return trendqueries.MonthlyCounts(ctx, s.c, w.Apply(bson.M{}, "created_at"), "created_at", tz, "business_amount")
}

// List returns memberID's records on the dir side created inside w, newest first.
func (s *Store) List(ctx context.Context, memberID primitive.ObjectID, dir models.Direction, w window.Window) ([]models.TYFTB, error) {
	filter := w.Apply(parties.Filter(memberID, dir), "created_at")
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})

	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.TYFTB{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
