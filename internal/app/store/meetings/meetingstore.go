package meetingstore

import (
	"context"
	"time"

	"github.com/dalemusser/chapterhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c   *mongo.Collection
	loc *time.Location
}

// New returns a meeting store. loc is the zone meeting dates and "HH:MM"
// start times are expressed in; nil means UTC.
func New(db *mongo.Database, loc *time.Location) *Store {
	if loc == nil {
		loc = time.UTC
	}
	return &Store{c: db.Collection("meetings"), loc: loc}
}

// NextUpcoming returns the earliest meeting of chapterID with status
// "upcoming" that has not started before now, ordered by (date, time).
// It returns nil, nil when there is none.
//
// Meetings dated today whose start time has already passed are skipped.
func (s *Store) NextUpcoming(ctx context.Context, chapterID primitive.ObjectID, now time.Time) (*models.Meeting, error) {
	local := now.In(s.loc)
	today := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, s.loc)

	filter := bson.M{
		"chapter_id":     chapterID,
		"meeting_status": models.MeetingUpcoming,
		"date":           bson.M{"$gte": today},
	}
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "time", Value: 1}})

	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	for cur.Next(ctx) {
		var m models.Meeting
		if err := cur.Decode(&m); err != nil {
			return nil, err
		}
		if StartsAt(m, s.loc).Before(now) {
			continue
		}
		return &m, nil
	}
	return nil, cur.Err()
}

// StartsAt combines a meeting's date and "HH:MM" time in loc.
// A missing or malformed time means the start of the day.
func StartsAt(m models.Meeting, loc *time.Location) time.Time {
	d := m.Date.In(loc)
	start := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, loc)
	if clock, err := time.Parse("15:04", m.Time); err == nil {
		start = start.Add(time.Duration(clock.Hour())*time.Hour + time.Duration(clock.Minute())*time.Minute)
	}
	return start
}
