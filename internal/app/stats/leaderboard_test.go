package stats

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/dalemusser/chapterhub/internal/app/system/window"
	"github.com/dalemusser/chapterhub/internal/domain/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestLeaderboard_UnknownChapter(t *testing.T) {
	svc := newTestService(newDataset())

	_, err := svc.Leaderboard(context.Background(), ChapterContext{ChapterID: primitive.NewObjectID()}, window.Full())
	require.ErrorIs(t, err, ErrChapterNotFound)
}

func TestLeaderboard_EmptyRoster(t *testing.T) {
	d := newDataset()
	ch := d.addChapter("Empty")
	svc := newTestService(d)

	got, err := svc.Leaderboard(context.Background(), ChapterContext{ChapterID: ch}, window.Full())
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestLeaderboard_ChapterRowMissingStillRanksRoster(t *testing.T) {
	d := newDataset()
	ch := primitive.NewObjectID()
	m1 := d.addMember("Ada")
	m2 := d.addMember("Ben")
	d.enroll(m1, ch, true)
	d.enroll(m2, ch, true)
	d.referral(m2, m1, day(2026, 2, 14))
	svc := newTestService(d)

	cc, err := svc.ResolveChapter(context.Background(), m1)
	require.NoError(t, err)
	assert.Equal(t, ch, cc.ChapterID)

	got, err := svc.Leaderboard(context.Background(), cc, window.Full())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, m2, got[0].MemberID)
	assert.Equal(t, 1, got[0].Rank)
	assert.Equal(t, m1, got[1].MemberID)
	assert.Equal(t, 2, got[1].Rank)
}

func TestLeaderboard_RanksByBusinessGiven(t *testing.T) {
	d := newDataset()
	ch := d.addChapter("North")
	m1 := d.addMember("Ada")
	m2 := d.addMember("Ben")
	d.enroll(m1, ch, true)
	d.enroll(m2, ch, true)

	at := day(2026, 2, 14)
	for i := 0; i < 3; i++ {
		d.referral(m1, m2, at)
	}
	d.tyftb(m1, m2, "500", true, at)
	svc := newTestService(d)

	got, err := svc.Leaderboard(context.Background(), ChapterContext{ChapterID: ch, MemberID: m2}, window.Full())
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, m1, got[0].MemberID)
	assert.Equal(t, "Ada", got[0].Name)
	assert.Equal(t, 1, got[0].Rank)
	assert.Equal(t, int64(3), got[0].ReferralsGiven)
	assert.Equal(t, "500.00", got[0].BusinessAmountGiven.String())

	assert.Equal(t, m2, got[1].MemberID)
	assert.Equal(t, 2, got[1].Rank)
	assert.Equal(t, int64(3), got[1].ReferralsReceived)
	assert.Equal(t, "500.00", got[1].BusinessAmountReceived.String())
}

func TestLeaderboard_OnlyActiveMembers(t *testing.T) {
	d := newDataset()
	ch := d.addChapter("North")
	other := d.addChapter("South")
	active := d.addMember("active")
	lapsed := d.addMember("lapsed")
	elsewhere := d.addMember("elsewhere")
	d.enroll(active, ch, true)
	d.enroll(lapsed, ch, false)
	d.enroll(elsewhere, other, true)
	svc := newTestService(d)

	got, err := svc.Leaderboard(context.Background(), ChapterContext{ChapterID: ch}, window.Full())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, active, got[0].MemberID)
}

func TestLeaderboard_TotalOrderAndDenseRanks(t *testing.T) {
	d := newDataset()
	ch := d.addChapter("North")
	sink := d.addMember("sink")
	at := day(2026, 1, 20)

	members := make([]primitive.ObjectID, 6)
	for i := range members {
		members[i] = d.addMember("m")
		d.enroll(members[i], ch, true)
	}
	// Vary each key so every comparison level is exercised.
	d.tyftb(members[0], sink, "100", true, at)
	d.tyftb(members[1], sink, "100", true, at)
	d.tyftb(sink, members[1], "5", true, at)
	d.referral(members[2], sink, at)
	d.referral(members[2], sink, at)
	d.referral(members[3], sink, at)
	d.oneToOne(members[3], sink, at, at)
	d.oneToOne(members[4], sink, at, at)
	svc := newTestService(d)

	got, err := svc.Leaderboard(context.Background(), ChapterContext{ChapterID: ch}, window.Full())
	require.NoError(t, err)
	require.Len(t, got, len(members))

	for i := range got {
		assert.Equal(t, i+1, got[i].Rank)
		if i > 0 {
			assert.GreaterOrEqual(t, compareEntries(got[i-1], got[i]), 0,
				"entry %d must not outrank entry %d", i, i-1)
		}
	}
	assert.Equal(t, members[1], got[0].MemberID)
	assert.Equal(t, members[0], got[1].MemberID)
	assert.Equal(t, members[2], got[2].MemberID)
	assert.Equal(t, members[3], got[3].MemberID)
	assert.Equal(t, members[4], got[4].MemberID)
	assert.Equal(t, members[5], got[5].MemberID)
}

func TestLeaderboard_FullTiesKeepRosterOrder(t *testing.T) {
	d := newDataset()
	ch := d.addChapter("North")
	ids := []primitive.ObjectID{d.addMember("a"), d.addMember("b"), d.addMember("c")}
	for _, id := range ids {
		d.enroll(id, ch, true)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].Hex() < ids[j].Hex() })
	svc := newTestService(d)

	got, err := svc.Leaderboard(context.Background(), ChapterContext{ChapterID: ch}, window.Full())
	require.NoError(t, err)
	require.Len(t, got, 3)
	for i, e := range got {
		assert.Equal(t, ids[i], e.MemberID)
		assert.Equal(t, i+1, e.Rank)
	}
}

func TestLeaderboard_MissingMemberRowIsUnknown(t *testing.T) {
	d := newDataset()
	ch := d.addChapter("North")
	ghost := primitive.NewObjectID()
	d.enroll(ghost, ch, true)
	svc := newTestService(d)

	got, err := svc.Leaderboard(context.Background(), ChapterContext{ChapterID: ch}, window.Full())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, models.UnknownMemberName, got[0].Name)
}

func TestLeaderboard_MemberFailureFailsRequest(t *testing.T) {
	d := newDataset()
	ch := d.addChapter("North")
	ok := d.addMember("ok")
	bad := d.addMember("bad")
	d.enroll(ok, ch, true)
	d.enroll(bad, ch, true)
	boom := errors.New("boom")
	d.failFor, d.failErr = bad, boom
	svc := New(d.sources(), Config{Concurrency: 1})

	got, err := svc.Leaderboard(context.Background(), ChapterContext{ChapterID: ch}, window.Full())
	require.ErrorIs(t, err, boom)
	assert.Nil(t, got)
}

func TestRankEntries_KeyPrecedence(t *testing.T) {
	amt := models.MustAmount
	tests := []struct {
		name string
		a, b ActivityCounts
	}{
		{"business given first",
			ActivityCounts{BusinessAmountGiven: amt("10"), ReferralsGiven: 0},
			ActivityCounts{BusinessAmountGiven: amt("9.99"), ReferralsGiven: 50}},
		{"then business received",
			ActivityCounts{BusinessAmountReceived: amt("1")},
			ActivityCounts{ReferralsGiven: 9, TYFTBGiven: 9, OneToOnes: 9}},
		{"then referrals given",
			ActivityCounts{ReferralsGiven: 2},
			ActivityCounts{ReferralsGiven: 1, TYFTBGiven: 5, OneToOnes: 5}},
		{"then tyftb given",
			ActivityCounts{TYFTBGiven: 1},
			ActivityCounts{OneToOnes: 7}},
		{"then one-to-ones",
			ActivityCounts{OneToOnes: 1, VisitorsBrought: 0},
			ActivityCounts{VisitorsBrought: 10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries := []LeaderboardEntry{{Name: "b", ActivityCounts: tt.b}, {Name: "a", ActivityCounts: tt.a}}
			RankEntries(entries)
			assert.Equal(t, "a", entries[0].Name)
			assert.Equal(t, 1, entries[0].Rank)
			assert.Equal(t, 2, entries[1].Rank)
		})
	}
}

func TestRankEntries_VisitorsDoNotAffectOrder(t *testing.T) {
	entries := []LeaderboardEntry{
		{Name: "first", ActivityCounts: ActivityCounts{VisitorsBrought: 0}},
		{Name: "second", ActivityCounts: ActivityCounts{VisitorsBrought: 99}},
	}
	RankEntries(entries)
	assert.Equal(t, "first", entries[0].Name)
	assert.Equal(t, "second", entries[1].Name)
}
