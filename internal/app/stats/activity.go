package stats

import (
	"context"
	"time"

	"github.com/dalemusser/chapterhub/internal/app/system/window"
	"github.com/dalemusser/chapterhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ActivityCounts are one member's activity totals over a window.
// Each field is computed independently; no record counts toward two fields.
type ActivityCounts struct {
	ReferralsGiven         int64         `json:"referralsGiven"`
	ReferralsReceived      int64         `json:"referralsReceived"`
	TYFTBGiven             int64         `json:"tyftbGiven"`
	TYFTBReceived          int64         `json:"tyftbReceived"`
	BusinessAmountReceived models.Amount `json:"businessAmountReceived"`
	BusinessAmountGiven    models.Amount `json:"businessAmountGiven"`
	OneToOnes              int64         `json:"oneToOnes"`
	VisitorsBrought        int64         `json:"visitorsBrought"`
}

// ActivityFor returns memberID's activity counts for records created inside w.
// An unknown member is ErrMemberNotFound; a member with no records gets all
// zeros.
func (s *Service) ActivityFor(ctx context.Context, memberID primitive.ObjectID, w window.Window) (out ActivityCounts, err error) {
	defer func(start time.Time) { s.metrics.ObserveBuild("activity", start, err) }(time.Now())

	if err := s.requireMember(ctx, memberID); err != nil {
		return ActivityCounts{}, err
	}
	return s.countActivity(ctx, memberID, w)
}

// countActivity computes the counts without checking that the member exists.
// Leaderboards use it directly for roster members.
func (s *Service) countActivity(ctx context.Context, memberID primitive.ObjectID, w window.Window) (ActivityCounts, error) {
	var c ActivityCounts
	var err error

	if c.ReferralsGiven, err = s.src.Referrals.Count(ctx, memberID, models.DirectionGiven, w); err != nil {
		return ActivityCounts{}, err
	}
	if c.ReferralsReceived, err = s.src.Referrals.Count(ctx, memberID, models.DirectionReceived, w); err != nil {
		return ActivityCounts{}, err
	}

	given, err := s.src.TYFTBs.Totals(ctx, memberID, models.DirectionGiven, w)
	if err != nil {
		return ActivityCounts{}, err
	}
	c.TYFTBGiven, c.BusinessAmountGiven = given.Count, given.Amount

	received, err := s.src.TYFTBs.Totals(ctx, memberID, models.DirectionReceived, w)
	if err != nil {
		return ActivityCounts{}, err
	}
	c.TYFTBReceived, c.BusinessAmountReceived = received.Count, received.Amount

	if c.OneToOnes, err = s.src.OneToOnes.CountInvolving(ctx, memberID, w); err != nil {
		return ActivityCounts{}, err
	}
	if c.VisitorsBrought, err = s.src.Visitors.CountInvitedBy(ctx, memberID, w); err != nil {
		return ActivityCounts{}, err
	}
	return c, nil
}
