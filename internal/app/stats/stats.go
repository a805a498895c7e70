// Package stats computes member and chapter activity statistics: per-member
// activity counts, chapter leaderboards, weekly and monthly trends, the
// chapter dashboard overview and the activity detail listing.
//
// Builders are read-only and request scoped. Every chapter-scoped builder
// takes an explicit ChapterContext rather than reading it from the request.
package stats

import (
	"context"
	"errors"
	"time"

	chapterstore "github.com/dalemusser/chapterhub/internal/app/store/chapters"
	meetingstore "github.com/dalemusser/chapterhub/internal/app/store/meetings"
	memberstore "github.com/dalemusser/chapterhub/internal/app/store/members"
	membershipstore "github.com/dalemusser/chapterhub/internal/app/store/memberships"
	onetoonestore "github.com/dalemusser/chapterhub/internal/app/store/onetoones"
	referralstore "github.com/dalemusser/chapterhub/internal/app/store/referrals"
	tyftbstore "github.com/dalemusser/chapterhub/internal/app/store/tyftbs"
	visitorstore "github.com/dalemusser/chapterhub/internal/app/store/visitors"
	"github.com/dalemusser/chapterhub/internal/app/system/metrics"
	"github.com/dalemusser/chapterhub/internal/app/system/window"
	"github.com/dalemusser/chapterhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	// ErrMemberNotFound means the member id does not resolve to a stored member.
	ErrMemberNotFound = errors.New("member not found")
	// ErrChapterNotFound means the chapter id does not resolve to a stored chapter.
	ErrChapterNotFound = errors.New("chapter not found")
	// ErrNoActiveMembership means the member has no active chapter membership.
	ErrNoActiveMembership = errors.New("member has no active chapter membership")
	// ErrInvalidKind is returned for an unknown record kind or detail type.
	ErrInvalidKind = errors.New("invalid record kind")
)

// DefaultConcurrency bounds the per-member fan-out of a leaderboard.
const DefaultConcurrency = 8

// ChapterContext identifies the chapter a request is scoped to and the
// member making it.
type ChapterContext struct {
	ChapterID primitive.ObjectID
	MemberID  primitive.ObjectID
}

// Roster resolves chapter membership.
type Roster interface {
	ActiveMemberIDs(ctx context.Context, chapterID primitive.ObjectID) ([]primitive.ObjectID, error)
	CountActive(ctx context.Context, chapterID primitive.ObjectID) (int64, error)
	ActiveForMember(ctx context.Context, memberID primitive.ObjectID) (*models.Membership, error)
}

// Members looks up member rows.
type Members interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Member, error)
	RefsByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.MemberRef, error)
}

// Chapters looks up chapters and their rollups.
type Chapters interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Chapter, error)
	TotalVisitors(ctx context.Context, chapterID primitive.ObjectID) (int64, error)
}

// Meetings finds scheduled chapter meetings.
type Meetings interface {
	NextUpcoming(ctx context.Context, chapterID primitive.ObjectID, now time.Time) (*models.Meeting, error)
}

// Referrals reads referral records.
type Referrals interface {
	Count(ctx context.Context, memberID primitive.ObjectID, dir models.Direction, w window.Window) (int64, error)
	WeeklyGiven(ctx context.Context, memberID primitive.ObjectID, tz string) ([]models.WeekBucket, error)
	Monthly(ctx context.Context, w window.Window, tz string) ([]models.MonthBucket, error)
	List(ctx context.Context, memberID primitive.ObjectID, dir models.Direction, w window.Window) ([]models.Referral, error)
}

// TYFTBs reads TYFTB records.
type TYFTBs interface {
	Totals(ctx context.Context, memberID primitive.ObjectID, dir models.Direction, w window.Window) (tyftbstore.Totals, error)
	SumPaidBy(ctx context.Context, payerIDs []primitive.ObjectID, status bool) (models.Amount, error)
	WeeklyGiven(ctx context.Context, memberID primitive.ObjectID, tz string) ([]models.WeekBucket, error)
	Monthly(ctx context.Context, w window.Window, tz string) ([]models.MonthBucket, error)
	List(ctx context.Context, memberID primitive.ObjectID, dir models.Direction, w window.Window) ([]models.TYFTB, error)
}

// OneToOnes reads one-to-one meeting records.
type OneToOnes interface {
	CountInvolving(ctx context.Context, memberID primitive.ObjectID, w window.Window) (int64, error)
	WeeklyInvolving(ctx context.Context, memberID primitive.ObjectID, tz string) ([]models.WeekBucket, error)
	Monthly(ctx context.Context, w window.Window, tz string) ([]models.MonthBucket, error)
	List(ctx context.Context, memberID primitive.ObjectID, dir models.Direction, w window.Window) ([]models.OneToOneMeeting, error)
}

// Visitors reads visitor records.
type Visitors interface {
	CountInvitedBy(ctx context.Context, memberID primitive.ObjectID, w window.Window) (int64, error)
	WeeklyInvitedBy(ctx context.Context, memberID primitive.ObjectID, tz string) ([]models.WeekBucket, error)
	Monthly(ctx context.Context, w window.Window, tz string) ([]models.MonthBucket, error)
}

// Sources are the stores the builders read from.
type Sources struct {
	Roster    Roster
	Members   Members
	Chapters  Chapters
	Meetings  Meetings
	Referrals Referrals
	TYFTBs    TYFTBs
	OneToOnes OneToOnes
	Visitors  Visitors
}

// Config tunes a Service. Zero values select defaults.
type Config struct {
	// Location is the server time zone used for calendar bucketing.
	Location *time.Location
	// Concurrency bounds concurrent per-member work in a leaderboard.
	Concurrency int
	// Now returns the current time; defaults to time.Now.
	Now func() time.Time
	// Metrics records builder latency; nil disables it.
	Metrics *metrics.Metrics
}

// Service runs the statistics builders.
type Service struct {
	src     Sources
	loc     *time.Location
	limit   int
	now     func() time.Time
	metrics *metrics.Metrics
}

// New builds a Service over src.
func New(src Sources, cfg Config) *Service {
	s := &Service{
		src:     src,
		loc:     cfg.Location,
		limit:   cfg.Concurrency,
		now:     cfg.Now,
		metrics: cfg.Metrics,
	}
	if s.loc == nil {
		s.loc = time.UTC
	}
	if s.limit <= 0 {
		s.limit = DefaultConcurrency
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// NewFromDB wires a Service to the MongoDB stores.
func NewFromDB(db *mongo.Database, cfg Config) *Service {
	loc := cfg.Location
	if loc == nil {
		loc = time.UTC
	}
	return New(Sources{
		Roster:    membershipstore.New(db),
		Members:   memberstore.New(db),
		Chapters:  chapterstore.New(db),
		Meetings:  meetingstore.New(db, loc),
		Referrals: referralstore.New(db),
		TYFTBs:    tyftbstore.New(db),
		OneToOnes: onetoonestore.New(db),
		Visitors:  visitorstore.New(db),
	}, cfg)
}

// Location returns the time zone used for calendar bucketing.
func (s *Service) Location() *time.Location { return s.loc }

// Now returns the service clock's current time.
func (s *Service) Now() time.Time { return s.now() }

// tz is the zone name passed to aggregation date operators.
func (s *Service) tz() string { return s.loc.String() }

// ResolveChapter finds the chapter of memberID's active membership.
func (s *Service) ResolveChapter(ctx context.Context, memberID primitive.ObjectID) (ChapterContext, error) {
	if err := s.requireMember(ctx, memberID); err != nil {
		return ChapterContext{}, err
	}
	ms, err := s.src.Roster.ActiveForMember(ctx, memberID)
	if err != nil {
		return ChapterContext{}, err
	}
	if ms == nil {
		return ChapterContext{}, ErrNoActiveMembership
	}
	return ChapterContext{ChapterID: ms.ChapterID, MemberID: memberID}, nil
}

func (s *Service) requireMember(ctx context.Context, memberID primitive.ObjectID) error {
	m, err := s.src.Members.GetByID(ctx, memberID)
	if err != nil {
		return err
	}
	if m == nil {
		return ErrMemberNotFound
	}
	return nil
}

func (s *Service) requireChapter(ctx context.Context, chapterID primitive.ObjectID) (*models.Chapter, error) {
	ch, err := s.src.Chapters.GetByID(ctx, chapterID)
	if err != nil {
		return nil, err
	}
	if ch == nil {
		return nil, ErrChapterNotFound
	}
	return ch, nil
}

// chapterName returns the name of chapterID. A missing chapter row that
// active memberships still reference yields UnknownChapterName; with no
// active members it is ErrChapterNotFound.
func (s *Service) chapterName(ctx context.Context, chapterID primitive.ObjectID) (string, error) {
	ch, err := s.src.Chapters.GetByID(ctx, chapterID)
	if err != nil {
		return "", err
	}
	if ch != nil {
		return ch.Name, nil
	}
	n, err := s.src.Roster.CountActive(ctx, chapterID)
	if err != nil {
		return "", err
	}
	if n == 0 {
		return "", ErrChapterNotFound
	}
	return models.UnknownChapterName, nil
}
