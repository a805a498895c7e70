// internal/domain/models/activityrecords.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// The Status flag on the records below is kept opaque: its business meaning
// differs between call sites and is interpreted only where documented.

// Referral is a directed referral from ReferrerID to RefereeID.
type Referral struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ReferrerID primitive.ObjectID `bson:"referrer_id" json:"referrer_id"`
	RefereeID  primitive.ObjectID `bson:"referee_id" json:"referee_id"`
	Status     bool               `bson:"status" json:"status"`
	Notes      string             `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt  time.Time          `bson:"created_at" json:"created_at"`
}

// TYFTB ("thank you for the business") records closed business flowing
// from PayerID to ReceiverID.
type TYFTB struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	PayerID        primitive.ObjectID `bson:"payer_id" json:"payer_id"`
	ReceiverID     primitive.ObjectID `bson:"receiver_id" json:"receiver_id"`
	BusinessAmount Amount             `bson:"business_amount" json:"business_amount"`
	Status         bool               `bson:"status" json:"status"`
	Notes          string             `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt      time.Time          `bson:"created_at" json:"created_at"`
}

// OneToOneMeeting pairs two members. Member1 is credited as the giver.
type OneToOneMeeting struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Member1ID   primitive.ObjectID `bson:"member1_id" json:"member1_id"`
	Member2ID   primitive.ObjectID `bson:"member2_id" json:"member2_id"`
	MeetingDate time.Time          `bson:"meeting_date" json:"meeting_date"`
	Status      bool               `bson:"status" json:"status"`
	Notes       string             `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
}

// Visitor is a guest invited to a chapter meeting.
type Visitor struct {
	ID               primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	InvitingMemberID primitive.ObjectID  `bson:"inviting_member_id" json:"inviting_member_id"`
	ChapterID        *primitive.ObjectID `bson:"chapter_id,omitempty" json:"chapter_id,omitempty"`
	VisitorName      string              `bson:"visitor_name" json:"visitor_name"`
	Status           bool                `bson:"status" json:"status"`
	CreatedAt        time.Time           `bson:"created_at" json:"created_at"`
}
