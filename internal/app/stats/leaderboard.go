package stats

import (
	"context"
	"sort"
	"time"

	"github.com/dalemusser/chapterhub/internal/app/system/window"
	"github.com/dalemusser/chapterhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/sync/errgroup"
)

// LeaderboardEntry is one ranked member of a chapter.
type LeaderboardEntry struct {
	MemberID primitive.ObjectID `json:"memberId"`
	Name     string             `json:"name"`
	Rank     int                `json:"rank"`
	ActivityCounts
}

// Leaderboard ranks every active member of cc's chapter by activity inside w.
//
// Entries are ordered by (businessAmountGiven, businessAmountReceived,
// referralsGiven, tyftbGiven, oneToOnes) descending; members equal on all
// five keys keep roster order (member id ascending). Rank is position + 1,
// so equal scores still get distinct ranks. An empty roster yields an empty
// list, or ErrChapterNotFound when the chapter row is missing too. A roster
// whose chapter row is gone is still ranked. A failure computing any member
// fails the whole leaderboard.
func (s *Service) Leaderboard(ctx context.Context, cc ChapterContext, w window.Window) (out []LeaderboardEntry, err error) {
	defer func(start time.Time) { s.metrics.ObserveBuild("leaderboard", start, err) }(time.Now())

	roster, err := s.src.Roster.ActiveMemberIDs(ctx, cc.ChapterID)
	if err != nil {
		return nil, err
	}
	s.metrics.ObserveRoster(len(roster))
	if len(roster) == 0 {
		if _, err := s.requireChapter(ctx, cc.ChapterID); err != nil {
			return nil, err
		}
		return []LeaderboardEntry{}, nil
	}

	refs, err := s.src.Members.RefsByIDs(ctx, roster)
	if err != nil {
		return nil, err
	}

	entries := make([]LeaderboardEntry, len(roster))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.limit)
	for i, id := range roster {
		g.Go(func() error {
			counts, err := s.countActivity(gctx, id, w)
			if err != nil {
				return err
			}
			name := models.UnknownMemberName
			if ref, ok := refs[id]; ok {
				name = ref.Name
			}
			entries[i] = LeaderboardEntry{MemberID: id, Name: name, ActivityCounts: counts}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	RankEntries(entries)
	return entries, nil
}

// RankEntries sorts entries by the leaderboard key and assigns ranks.
// The sort is stable, so input order breaks full ties.
func RankEntries(entries []LeaderboardEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return compareEntries(entries[i], entries[j]) > 0
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}
}

// compareEntries orders a before b when the result is positive.
func compareEntries(a, b LeaderboardEntry) int {
	if c := a.BusinessAmountGiven.Cmp(b.BusinessAmountGiven); c != 0 {
		return c
	}
	if c := a.BusinessAmountReceived.Cmp(b.BusinessAmountReceived); c != 0 {
		return c
	}
	for _, pair := range [][2]int64{
		{a.ReferralsGiven, b.ReferralsGiven},
		{a.TYFTBGiven, b.TYFTBGiven},
		{a.OneToOnes, b.OneToOnes},
	} {
		switch {
		case pair[0] > pair[1]:
			return 1
		case pair[0] < pair[1]:
			return -1
		}
	}
	return 0
}
