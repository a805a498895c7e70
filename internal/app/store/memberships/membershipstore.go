// internal/app/store/memberships/membershipstore.go
package membershipstore

import (
	"context"

	"github.com/dalemusser/chapterhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store reads chapter memberships.
type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("memberships")}
}

// ActiveMemberIDs returns the roster of chapterID: member IDs with an active
// membership, ordered by member ID ascending. An empty chapter yields an empty
// (non-nil) slice and no error.
func (s *Store) ActiveMemberIDs(ctx context.Context, chapterID primitive.ObjectID) ([]primitive.ObjectID, error) {
	opts := options.Find().
		SetProjection(bson.M{"member_id": 1}).
		SetSort(bson.D{{Key: "member_id", Value: 1}})

	cur, err := s.c.Find(ctx, bson.M{"chapter_id": chapterID, "membership_status": true}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	ids := []primitive.ObjectID{}
	seen := make(map[primitive.ObjectID]struct{})
	for cur.Next(ctx) {
		var row struct {
			MemberID primitive.ObjectID `bson:"member_id"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, err
		}
		if _, dup := seen[row.MemberID]; dup {
			continue
		}
		seen[row.MemberID] = struct{}{}
		ids = append(ids, row.MemberID)
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}
	return ids, nil
}

// CountActive returns the number of active memberships in chapterID.
func (s *Store) CountActive(ctx context.Context, chapterID primitive.ObjectID) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{"chapter_id": chapterID, "membership_status": true})
}

// ActiveForMember returns the member's active membership, or nil when the
// member has none. When several rows are active the newest wins.
func (s *Store) ActiveForMember(ctx context.Context, memberID primitive.ObjectID) (*models.Membership, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "created_at", Value: -1}})

	var m models.Membership
	err := s.c.FindOne(ctx, bson.M{"member_id": memberID, "membership_status": true}, opts).Decode(&m)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}
