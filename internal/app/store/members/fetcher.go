package memberstore

import (
	"context"
	"strings"

	"github.com/dalemusser/chapterhub/internal/app/system/auth"
	"github.com/dalemusser/chapterhub/internal/app/system/timeouts"
	"github.com/dalemusser/chapterhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Fetcher implements auth.UserFetcher to load fresh member data on each request.
type Fetcher struct {
	members *mongo.Collection
}

// NewFetcher creates a UserFetcher that queries the given database.
func NewFetcher(db *mongo.Database) *Fetcher {
	return &Fetcher{members: db.Collection("members")}
}

// FetchUser retrieves a member by ID and returns nil if the member is not
// found, disabled, or if any error occurs.
func (f *Fetcher) FetchUser(ctx context.Context, memberID string) *auth.SessionUser {
	oid, err := primitive.ObjectIDFromHex(memberID)
	if err != nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, timeouts.Short())
	defer cancel()

	var m models.Member
	proj := options.FindOne().SetProjection(bson.M{
		"_id":       1,
		"full_name": 1,
		"email":     1,
		"role":      1,
		"status":    1,
	})
	if err := f.members.FindOne(ctx, bson.M{"_id": oid}, proj).Decode(&m); err != nil {
		return nil
	}

	if strings.EqualFold(strings.TrimSpace(m.Status), "disabled") {
		return nil
	}

	role := strings.ToLower(strings.TrimSpace(m.Role))
	if role == "" {
		role = models.RoleMember
	}
	return &auth.SessionUser{
		ID:    m.ID.Hex(),
		Name:  m.FullName,
		Email: m.Email,
		Role:  role,
	}
}
