// internal/domain/models/membership.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Membership links a member to a chapter.
// A member has at most one membership with MembershipStatus=true at a time;
// historical rows keep MembershipStatus=false.
type Membership struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	MemberID         primitive.ObjectID `bson:"member_id" json:"member_id"`
	ChapterID        primitive.ObjectID `bson:"chapter_id" json:"chapter_id"`
	MembershipStatus bool               `bson:"membership_status" json:"membership_status"`
	Role             string             `bson:"role" json:"role"`
	CreatedAt        time.Time          `bson:"created_at" json:"created_at"`
}
