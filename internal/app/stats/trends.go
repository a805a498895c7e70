package stats

import (
	"context"
	"fmt"
	"time"

	"github.com/dalemusser/chapterhub/internal/app/system/window"
	"github.com/dalemusser/chapterhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TrendMonths is the number of calendar months in a monthly trend.
const TrendMonths = 12

// WeeklyTrend buckets memberID's records of kind by ISO week, ascending.
// Referrals, TYFTB and visitors count the member's given side by created_at;
// one-to-ones count meetings involving the member by meeting_date.
func (s *Service) WeeklyTrend(ctx context.Context, memberID primitive.ObjectID, kind models.RecordKind) (out []models.WeekBucket, err error) {
	defer func(start time.Time) { s.metrics.ObserveBuild("weekly_trend", start, err) }(time.Now())

	if err := s.requireMember(ctx, memberID); err != nil {
		return nil, err
	}

	switch kind {
	case models.KindReferral:
		return s.src.Referrals.WeeklyGiven(ctx, memberID, s.tz())
	case models.KindTYFTB:
		return s.src.TYFTBs.WeeklyGiven(ctx, memberID, s.tz())
	case models.KindOneToOne:
		return s.src.OneToOnes.WeeklyInvolving(ctx, memberID, s.tz())
	case models.KindVisitor:
		return s.src.Visitors.WeeklyInvitedBy(ctx, memberID, s.tz())
	}
	return nil, fmt.Errorf("%w: %q", ErrInvalidKind, kind)
}

// MonthlyTrend returns organization-wide monthly counts of kind for exactly
// TrendMonths consecutive calendar months ending with the current month.
// Months without records are present with zero counts. TYFTB buckets also
// carry the month's total business amount.
func (s *Service) MonthlyTrend(ctx context.Context, kind models.RecordKind) (out []models.MonthBucket, err error) {
	defer func(start time.Time) { s.metrics.ObserveBuild("monthly_trend", start, err) }(time.Now())

	first, w := MonthlyWindow(s.now(), s.loc)

	var found []models.MonthBucket
	switch kind {
	case models.KindReferral:
		found, err = s.src.Referrals.Monthly(ctx, w, s.tz())
	case models.KindTYFTB:
		found, err = s.src.TYFTBs.Monthly(ctx, w, s.tz())
	case models.KindOneToOne:
		found, err = s.src.OneToOnes.Monthly(ctx, w, s.tz())
	case models.KindVisitor:
		found, err = s.src.Visitors.Monthly(ctx, w, s.tz())
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidKind, kind)
	}
	if err != nil {
		return nil, err
	}

	return FillMonths(first, found, kind == models.KindTYFTB), nil
}

// MonthlyWindow returns the first day of the earliest trend month and the
// window from that instant to the end of the current month, both in loc.
func MonthlyWindow(now time.Time, loc *time.Location) (time.Time, window.Window) {
	now = now.In(loc)
	thisMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)
	first := thisMonth.AddDate(0, -(TrendMonths - 1), 0)
	last := window.EndOfDay(thisMonth.AddDate(0, 1, -1), loc)
	return first, window.Between(first, last)
}

// FillMonths lays found buckets onto TrendMonths consecutive months starting
// at first, zero-filling the gaps and labelling each month ("January 2026").
// When withAmount is set every bucket carries a total amount, zero if absent.
func FillMonths(first time.Time, found []models.MonthBucket, withAmount bool) []models.MonthBucket {
	type ym struct{ y, m int }
	byMonth := make(map[ym]models.MonthBucket, len(found))
	for _, b := range found {
		byMonth[ym{b.Year, b.Month}] = b
	}

	out := make([]models.MonthBucket, 0, TrendMonths)
	for i := 0; i < TrendMonths; i++ {
		t := first.AddDate(0, i, 0)
		b := models.MonthBucket{Year: t.Year(), Month: int(t.Month())}
		if got, ok := byMonth[ym{b.Year, b.Month}]; ok {
			b.Count = got.Count
			b.TotalAmount = got.TotalAmount
		}
		if withAmount && b.TotalAmount == nil {
			zero := models.ZeroAmount
			b.TotalAmount = &zero
		}
		if !withAmount {
			b.TotalAmount = nil
		}
		b.Label = t.Format("January 2006")
		out = append(out, b)
	}
	return out
}
