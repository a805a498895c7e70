// internal/domain/models/chapter.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Region groups chapters.
type Region struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}

// Chapter is a local branch of the organization.
type Chapter struct {
	ID        primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Name      string              `bson:"name" json:"name"`
	RegionID  *primitive.ObjectID `bson:"region_id,omitempty" json:"region_id,omitempty"`
	FoundedOn time.Time           `bson:"founded_on" json:"founded_on"`
	CreatedAt time.Time           `bson:"created_at" json:"created_at"`
}

// UnknownChapterName is shown when members still reference a chapter whose
// row no longer exists.
const UnknownChapterName = "Unknown"

// ChapterSummary is a rollup maintained outside this service.
// Only TotalVisitors is read here.
type ChapterSummary struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ChapterID     primitive.ObjectID `bson:"chapter_id" json:"chapter_id"`
	TotalVisitors int64              `bson:"total_visitors" json:"total_visitors"`
	UpdatedAt     time.Time          `bson:"updated_at" json:"updated_at"`
}
