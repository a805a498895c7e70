// internal/domain/models/activitykinds.go
package models

import "strings"

// RecordKind names an activity record type in query parameters and trend output.
type RecordKind string

const (
	KindReferral RecordKind = "referral"
	KindTYFTB    RecordKind = "tyftb"
	KindOneToOne RecordKind = "m2m"
	KindVisitor  RecordKind = "visitor"
)

// ParseRecordKind normalizes s; ok is false for unknown kinds.
func ParseRecordKind(s string) (RecordKind, bool) {
	switch k := RecordKind(strings.ToLower(strings.TrimSpace(s))); k {
	case KindReferral, KindTYFTB, KindOneToOne, KindVisitor:
		return k, true
	}
	return "", false
}

// Direction selects records given by or received by a member.
// DirectionAny (the zero value) means no direction filter.
type Direction string

const (
	DirectionAny      Direction = ""
	DirectionGiven    Direction = "given"
	DirectionReceived Direction = "received"
)

// ParseDirection maps "", "given" and "received"; ok is false otherwise.
func ParseDirection(s string) (Direction, bool) {
	switch d := Direction(strings.ToLower(strings.TrimSpace(s))); d {
	case DirectionAny, DirectionGiven, DirectionReceived:
		return d, true
	}
	return "", false
}

// WeekBucket is one ISO week of activity.
type WeekBucket struct {
	Year  int   `bson:"year" json:"year"`
	Week  int   `bson:"week" json:"week"`
	Count int64 `bson:"count" json:"count"`
}

// MonthBucket is one calendar month of activity.
// TotalAmount is set only for TYFTB trends.
type MonthBucket struct {
	Year        int     `bson:"year" json:"year"`
	Month       int     `bson:"month" json:"month"`
	Label       string  `bson:"-" json:"label"`
	Count       int64   `bson:"count" json:"count"`
	TotalAmount *Amount `bson:"total_amount,omitempty" json:"totalAmount,omitempty"`
}
