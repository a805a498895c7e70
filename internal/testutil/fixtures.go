package testutil

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/dalemusser/chapterhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		rctx = chi.NewRouteContext()
	}
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

func (f *Fixtures) insert(ctx context.Context, coll string, doc any) {
	f.t.Helper()
	if _, err := f.db.Collection(coll).InsertOne(ctx, doc); err != nil {
		f.t.Fatalf("failed to insert test %s: %v", coll, err)
	}
}

// CreateChapter creates a chapter with the given name.
func (f *Fixtures) CreateChapter(ctx context.Context, name string) models.Chapter {
	f.t.Helper()

	now := time.Now().UTC()
	ch := models.Chapter{
		ID:        primitive.NewObjectID(),
		Name:      name,
		FoundedOn: now.AddDate(-3, 0, 0),
		CreatedAt: now,
	}
	f.insert(ctx, "chapters", ch)
	return ch
}

// CreateMember creates an ordinary member.
func (f *Fixtures) CreateMember(ctx context.Context, fullName, email string) models.Member {
	f.t.Helper()
	return f.CreateMemberWithRole(ctx, fullName, email, models.RoleMember)
}

// CreateMemberWithRole creates a member with the given role.
func (f *Fixtures) CreateMemberWithRole(ctx context.Context, fullName, email, role string) models.Member {
	f.t.Helper()

	now := time.Now().UTC()
	m := models.Member{
		ID:        primitive.NewObjectID(),
		FullName:  fullName,
		Email:     email,
		Role:      role,
		Status:    "active",
		CreatedAt: now,
		UpdatedAt: now,
	}
	f.insert(ctx, "members", m)
	return m
}

// CreateMembership links a member to a chapter.
func (f *Fixtures) CreateMembership(ctx context.Context, memberID, chapterID primitive.ObjectID, active bool) models.Membership {
	f.t.Helper()

	ms := models.Membership{
		ID:               primitive.NewObjectID(),
		MemberID:         memberID,
		ChapterID:        chapterID,
		MembershipStatus: active,
		Role:             models.RoleMember,
		CreatedAt:        time.Now().UTC(),
	}
	f.insert(ctx, "memberships", ms)
	return ms
}

// CreateReferral records a referral from referrer to referee.
func (f *Fixtures) CreateReferral(ctx context.Context, referrerID, refereeID primitive.ObjectID, createdAt time.Time) models.Referral {
	f.t.Helper()

	ref := models.Referral{
		ID:         primitive.NewObjectID(),
		ReferrerID: referrerID,
		RefereeID:  refereeID,
		Status:     true,
		CreatedAt:  createdAt.UTC(),
	}
	f.insert(ctx, "referrals", ref)
	return ref
}

// CreateTYFTB records business paid by payer to receiver.
func (f *Fixtures) CreateTYFTB(ctx context.Context, payerID, receiverID primitive.ObjectID, amount string, status bool, createdAt time.Time) models.TYFTB {
	f.t.Helper()

	rec := models.TYFTB{
		ID:             primitive.NewObjectID(),
		PayerID:        payerID,
		ReceiverID:     receiverID,
		BusinessAmount: models.MustAmount(amount),
		Status:         status,
		CreatedAt:      createdAt.UTC(),
	}
	f.insert(ctx, "tyftbs", rec)
	return rec
}

// CreateTYFTBWithoutAmount inserts a TYFTB document that has no
// business_amount field at all.
func (f *Fixtures) CreateTYFTBWithoutAmount(ctx context.Context, payerID, receiverID primitive.ObjectID, createdAt time.Time) primitive.ObjectID {
	f.t.Helper()

	id := primitive.NewObjectID()
	f.insert(ctx, "tyftbs", bson.M{
		"_id":         id,
		"payer_id":    payerID,
		"receiver_id": receiverID,
		"status":      true,
		"created_at":  createdAt.UTC(),
	})
	return id
}

// CreateOneToOne records a one-to-one meeting between two members.
func (f *Fixtures) CreateOneToOne(ctx context.Context, member1ID, member2ID primitive.ObjectID, meetingDate, createdAt time.Time) models.OneToOneMeeting {
	f.t.Helper()

	m := models.OneToOneMeeting{
		ID:          primitive.NewObjectID(),
		Member1ID:   member1ID,
		Member2ID:   member2ID,
		MeetingDate: meetingDate.UTC(),
		Status:      true,
		CreatedAt:   createdAt.UTC(),
	}
	f.insert(ctx, "one_to_ones", m)
	return m
}

// CreateVisitor records a visitor invited by a member.
func (f *Fixtures) CreateVisitor(ctx context.Context, invitingMemberID primitive.ObjectID, name string, createdAt time.Time) models.Visitor {
	f.t.Helper()

	v := models.Visitor{
		ID:               primitive.NewObjectID(),
		InvitingMemberID: invitingMemberID,
		VisitorName:      name,
		CreatedAt:        createdAt.UTC(),
	}
	f.insert(ctx, "visitors", v)
	return v
}

// CreateMeeting schedules a chapter meeting.
func (f *Fixtures) CreateMeeting(ctx context.Context, chapterID primitive.ObjectID, date time.Time, clock, status string) models.Meeting {
	f.t.Helper()

	m := models.Meeting{
		ID:            primitive.NewObjectID(),
		ChapterID:     chapterID,
		Date:          date.UTC(),
		Time:          clock,
		MeetingStatus: status,
		CreatedAt:     time.Now().UTC(),
	}
	f.insert(ctx, "meetings", m)
	return m
}

// CreateChapterSummary stores a chapter rollup.
func (f *Fixtures) CreateChapterSummary(ctx context.Context, chapterID primitive.ObjectID, totalVisitors int64) models.ChapterSummary {
	f.t.Helper()

	s := models.ChapterSummary{
		ID:            primitive.NewObjectID(),
		ChapterID:     chapterID,
		TotalVisitors: totalVisitors,
		UpdatedAt:     time.Now().UTC(),
	}
	f.insert(ctx, "chapter_summaries", s)
	return s
}
