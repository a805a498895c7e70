// Package trendqueries provides read-only time-bucketing aggregations shared
// by the activity record stores.
package trendqueries

import (
	"context"

	"github.com/dalemusser/chapterhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// WeeklyCounts groups documents matching match by ISO week-year and ISO week
// of dateField (evaluated in tz) and returns buckets sorted ascending.
func WeeklyCounts(
	ctx context.Context,
	c *mongo.Collection,
	match bson.M,
	dateField string,
	tz string,
) ([]models.WeekBucket, error) {
	date := bson.M{"date": "$" + dateField, "timezone": tz}
	pipeline := []bson.M{
		{"$match": match},
		{"$group": bson.M{
			"_id": bson.M{
				"year": bson.M{"$isoWeekYear": date},
				"week": bson.M{"$isoWeek": date},
			},
			"count": bson.M{"$sum": 1},
		}},
		{"$project": bson.M{
			"_id":   0,
			"year":  "$_id.year",
			"week":  "$_id.week",
			"count": 1,
		}},
		{"$sort": bson.D{{Key: "year", Value: 1}, {Key: "week", Value: 1}}},
	}

	cur, err := c.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.WeekBucket{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// MonthlyCounts groups documents matching match by calendar year and month of
// dateField (evaluated in tz). When amountField is non-empty each bucket also
// carries the sum of that field, with missing values counted as zero.
//
// Months without documents are absent; callers fill gaps.
func MonthlyCounts(
	ctx context.Context,
	c *mongo.Collection,
	match bson.M,
	dateField string,
	tz string,
	amountField string,
) ([]models.MonthBucket, error) {
	date := bson.M{"date": "$" + dateField, "timezone": tz}
	group := bson.M{
		"_id": bson.M{
			"year":  bson.M{"$year": date},
			"month": bson.M{"$month": date},
		},
		"count": bson.M{"$sum": 1},
	}
	project := bson.M{
		"_id":   0,
		"year":  "$_id.year",
		"month": "$_id.month",
		"count": 1,
	}
	if amountField != "" {
		group["total_amount"] = bson.M{"$sum": bson.M{"$ifNull": bson.A{"$" + amountField, 0}}}
		project["total_amount"] = 1
	}

	pipeline := []bson.M{
		{"$match": match},
		{"$group": group},
		{"$project": project},
		{"$sort": bson.D{{Key: "year", Value: 1}, {Key: "month", Value: 1}}},
	}

	cur, err := c.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.MonthBucket{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
