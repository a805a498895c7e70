package chapterstore

import (
	"context"

	"github.com/dalemusser/chapterhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store reads chapters and the externally maintained chapter rollups.
type Store struct {
	c         *mongo.Collection
	summaries *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{
		c:         db.Collection("chapters"),
		summaries: db.Collection("chapter_summaries"),
	}
}

// GetByID loads a chapter. It returns nil, nil when the chapter does not exist.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Chapter, error) {
	var ch models.Chapter
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&ch)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ch, nil
}

// TotalVisitors returns the visitor total from the chapter's rollup record,
// or 0 when no rollup exists yet.
func (s *Store) TotalVisitors(ctx context.Context, chapterID primitive.ObjectID) (int64, error) {
	var sum models.ChapterSummary
	opts := options.FindOne().SetProjection(bson.M{"total_visitors": 1})
	err := s.summaries.FindOne(ctx, bson.M{"chapter_id": chapterID}, opts).Decode(&sum)
	if err == mongo.ErrNoDocuments {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return sum.TotalVisitors, nil
}
