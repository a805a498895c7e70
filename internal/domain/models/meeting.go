// internal/domain/models/meeting.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Meeting statuses.
const (
	MeetingCompleted  = "completed"
	MeetingUpcoming   = "upcoming"
	MeetingCancelled  = "cancelled"
	MeetingInProgress = "inprogress"
)

// Meeting is a scheduled chapter meeting.
// Date carries the calendar day; Time is the local start time as "HH:MM".
type Meeting struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ChapterID     primitive.ObjectID `bson:"chapter_id" json:"chapter_id"`
	Date          time.Time          `bson:"date" json:"date"`
	Time          string             `bson:"time" json:"time"`
	MeetingStatus string             `bson:"meeting_status" json:"meeting_status"`
	CreatedAt     time.Time          `bson:"created_at" json:"created_at"`
}
