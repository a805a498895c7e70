package stats

import (
	"context"
	"time"

	meetingstore "github.com/dalemusser/chapterhub/internal/app/store/meetings"
	"github.com/dalemusser/chapterhub/internal/domain/models"
	"golang.org/x/sync/errgroup"
)

// NoUpcomingMeeting is reported when a chapter has nothing scheduled.
const NoUpcomingMeeting = "No upcoming meeting"

// Overview is the chapter dashboard snapshot.
type Overview struct {
	ChapterName     string        `json:"chapterName"`
	MemberCount     int64         `json:"memberCount"`
	NextMeetingDate string        `json:"nextMeetingDate"`
	NextMeetingTime string        `json:"nextMeetingTime,omitempty"`
	TotalRevenue    models.Amount `json:"totalRevenue"`
	TotalVisitors   int64         `json:"totalVisitors"`
}

// ChapterOverview composes the dashboard snapshot for cc's chapter.
//
// TotalRevenue sums business_amount over TYFTB records with status=true
// paid by members currently on the roster. TotalVisitors comes from the
// chapter's rollup record and is 0 when there is none. A chapter whose row
// is gone but still has active members is reported as UnknownChapterName.
func (s *Service) ChapterOverview(ctx context.Context, cc ChapterContext) (out Overview, err error) {
	defer func(start time.Time) { s.metrics.ObserveBuild("overview", start, err) }(time.Now())

	name, err := s.chapterName(ctx, cc.ChapterID)
	if err != nil {
		return Overview{}, err
	}
	out = Overview{ChapterName: name, NextMeetingDate: NoUpcomingMeeting, TotalRevenue: models.ZeroAmount}
	now := s.now()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := s.src.Roster.CountActive(gctx, cc.ChapterID)
		out.MemberCount = n
		return err
	})
	g.Go(func() error {
		m, err := s.src.Meetings.NextUpcoming(gctx, cc.ChapterID, now)
		if err != nil || m == nil {
			return err
		}
		out.NextMeetingDate = meetingstore.StartsAt(*m, s.loc).Format("2006-01-02")
		out.NextMeetingTime = m.Time
		return nil
	})
	g.Go(func() error {
		roster, err := s.src.Roster.ActiveMemberIDs(gctx, cc.ChapterID)
		if err != nil || len(roster) == 0 {
			return err
		}
		sum, err := s.src.TYFTBs.SumPaidBy(gctx, roster, true)
		out.TotalRevenue = sum
		return err
	})
	g.Go(func() error {
		n, err := s.src.Chapters.TotalVisitors(gctx, cc.ChapterID)
		out.TotalVisitors = n
		return err
	})
	if err := g.Wait(); err != nil {
		return Overview{}, err
	}
	return out, nil
}
