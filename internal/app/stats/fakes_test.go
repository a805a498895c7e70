package stats

import (
	"context"
	"sort"
	"time"

	meetingstore "github.com/dalemusser/chapterhub/internal/app/store/meetings"
	tyftbstore "github.com/dalemusser/chapterhub/internal/app/store/tyftbs"
	"github.com/dalemusser/chapterhub/internal/app/system/window"
	"github.com/dalemusser/chapterhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// dataset is an in-memory stand-in for the document store. The fake stores
// below read it without locking, so tests must not mutate it while a
// builder is running.
type dataset struct {
	members     map[primitive.ObjectID]models.Member
	memberships []models.Membership
	chapters    map[primitive.ObjectID]models.Chapter
	summaries   map[primitive.ObjectID]int64
	meetings    []models.Meeting
	referrals   []models.Referral
	tyftbs      []models.TYFTB
	oneToOnes   []models.OneToOneMeeting
	visitors    []models.Visitor

	// failFor makes every per-member count for that member fail.
	failFor primitive.ObjectID
	failErr error
}

func newDataset() *dataset {
	return &dataset{
		members:   map[primitive.ObjectID]models.Member{},
		chapters:  map[primitive.ObjectID]models.Chapter{},
		summaries: map[primitive.ObjectID]int64{},
	}
}

func (d *dataset) sources() Sources {
	return Sources{
		Roster:    fakeRoster{d},
		Members:   fakeMembers{d},
		Chapters:  fakeChapters{d},
		Meetings:  fakeMeetings{d},
		Referrals: fakeReferrals{d},
		TYFTBs:    fakeTYFTBs{d},
		OneToOnes: fakeOneToOnes{d},
		Visitors:  fakeVisitors{d},
	}
}

func (d *dataset) check(memberID primitive.ObjectID) error {
	if d.failErr != nil && memberID == d.failFor {
		return d.failErr
	}
	return nil
}

/* ---- builders for test data ---- */

func (d *dataset) addChapter(name string) primitive.ObjectID {
	id := primitive.NewObjectID()
	d.chapters[id] = models.Chapter{ID: id, Name: name}
	return id
}

func (d *dataset) addMember(name string) primitive.ObjectID {
	id := primitive.NewObjectID()
	d.members[id] = models.Member{ID: id, FullName: name, Email: name + "@example.com", Role: models.RoleMember}
	return id
}

func (d *dataset) enroll(memberID, chapterID primitive.ObjectID, active bool) {
	d.memberships = append(d.memberships, models.Membership{
		ID: primitive.NewObjectID(), MemberID: memberID, ChapterID: chapterID, MembershipStatus: active,
	})
}

func (d *dataset) referral(from, to primitive.ObjectID, at time.Time) models.Referral {
	r := models.Referral{ID: primitive.NewObjectID(), ReferrerID: from, RefereeID: to, Status: true, CreatedAt: at}
	d.referrals = append(d.referrals, r)
	return r
}

func (d *dataset) tyftb(from, to primitive.ObjectID, amount string, status bool, at time.Time) models.TYFTB {
	r := models.TYFTB{
		ID: primitive.NewObjectID(), PayerID: from, ReceiverID: to,
		BusinessAmount: models.MustAmount(amount), Status: status, CreatedAt: at,
	}
	d.tyftbs = append(d.tyftbs, r)
	return r
}

func (d *dataset) oneToOne(m1, m2 primitive.ObjectID, meetingDate, at time.Time) models.OneToOneMeeting {
	r := models.OneToOneMeeting{ID: primitive.NewObjectID(), Member1ID: m1, Member2ID: m2, MeetingDate: meetingDate, CreatedAt: at}
	d.oneToOnes = append(d.oneToOnes, r)
	return r
}

func (d *dataset) visitor(inviter primitive.ObjectID, at time.Time) {
	d.visitors = append(d.visitors, models.Visitor{ID: primitive.NewObjectID(), InvitingMemberID: inviter, CreatedAt: at})
}

/* ---- shared helpers ---- */

func onSide(member, given, received primitive.ObjectID, dir models.Direction) bool {
	switch dir {
	case models.DirectionGiven:
		return given == member
	case models.DirectionReceived:
		return received == member
	}
	return given == member || received == member
}

func weekly(dates []time.Time) []models.WeekBucket {
	type yw struct{ y, w int }
	counts := map[yw]int64{}
	for _, t := range dates {
		y, w := t.UTC().ISOWeek()
		counts[yw{y, w}]++
	}
	out := []models.WeekBucket{}
	for k, n := range counts {
		out = append(out, models.WeekBucket{Year: k.y, Week: k.w, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year < out[j].Year
		}
		return out[i].Week < out[j].Week
	})
	return out
}

func monthly(dates []time.Time, amounts []models.Amount) []models.MonthBucket {
	type ym struct{ y, m int }
	buckets := map[ym]*models.MonthBucket{}
	for i, t := range dates {
		t = t.UTC()
		k := ym{t.Year(), int(t.Month())}
		b, ok := buckets[k]
		if !ok {
			b = &models.MonthBucket{Year: k.y, Month: k.m}
			if amounts != nil {
				zero := models.ZeroAmount
				b.TotalAmount = &zero
			}
			buckets[k] = b
		}
		b.Count++
		if amounts != nil {
			sum := b.TotalAmount.Add(amounts[i])
			b.TotalAmount = &sum
		}
	}
	out := []models.MonthBucket{}
	for _, b := range buckets {
		out = append(out, *b)
	}
	return out
}

/* ---- fake stores ---- */

type fakeRoster struct{ d *dataset }

func (f fakeRoster) ActiveMemberIDs(_ context.Context, chapterID primitive.ObjectID) ([]primitive.ObjectID, error) {
	ids := []primitive.ObjectID{}
	seen := map[primitive.ObjectID]bool{}
	for _, ms := range f.d.memberships {
		if ms.ChapterID == chapterID && ms.MembershipStatus && !seen[ms.MemberID] {
			seen[ms.MemberID] = true
			ids = append(ids, ms.MemberID)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].Hex() < ids[j].Hex() })
	return ids, nil
}

func (f fakeRoster) CountActive(_ context.Context, chapterID primitive.ObjectID) (int64, error) {
	var n int64
	for _, ms := range f.d.memberships {
		if ms.ChapterID == chapterID && ms.MembershipStatus {
			n++
		}
	}
	return n, nil
}

func (f fakeRoster) ActiveForMember(_ context.Context, memberID primitive.ObjectID) (*models.Membership, error) {
	for _, ms := range f.d.memberships {
		if ms.MemberID == memberID && ms.MembershipStatus {
			m := ms
			return &m, nil
		}
	}
	return nil, nil
}

type fakeMembers struct{ d *dataset }

func (f fakeMembers) GetByID(_ context.Context, id primitive.ObjectID) (*models.Member, error) {
	m, ok := f.d.members[id]
	if !ok {
		return nil, nil
	}
	return &m, nil
}

func (f fakeMembers) RefsByIDs(_ context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.MemberRef, error) {
	out := map[primitive.ObjectID]models.MemberRef{}
	for _, id := range ids {
		if m, ok := f.d.members[id]; ok {
			out[id] = m.Ref()
		}
	}
	return out, nil
}

type fakeChapters struct{ d *dataset }

func (f fakeChapters) GetByID(_ context.Context, id primitive.ObjectID) (*models.Chapter, error) {
	ch, ok := f.d.chapters[id]
	if !ok {
		return nil, nil
	}
	return &ch, nil
}

func (f fakeChapters) TotalVisitors(_ context.Context, chapterID primitive.ObjectID) (int64, error) {
	return f.d.summaries[chapterID], nil
}

type fakeMeetings struct{ d *dataset }

func (f fakeMeetings) NextUpcoming(_ context.Context, chapterID primitive.ObjectID, now time.Time) (*models.Meeting, error) {
	var best *models.Meeting
	for _, m := range f.d.meetings {
		if m.ChapterID != chapterID || m.MeetingStatus != models.MeetingUpcoming {
			continue
		}
		if meetingstore.StartsAt(m, time.UTC).Before(now) {
			continue
		}
		if best == nil || meetingstore.StartsAt(m, time.UTC).Before(meetingstore.StartsAt(*best, time.UTC)) {
			m := m
			best = &m
		}
	}
	return best, nil
}

type fakeReferrals struct{ d *dataset }

func (f fakeReferrals) Count(_ context.Context, memberID primitive.ObjectID, dir models.Direction, w window.Window) (int64, error) {
	if err := f.d.check(memberID); err != nil {
		return 0, err
	}
	var n int64
	for _, r := range f.d.referrals {
		if onSide(memberID, r.ReferrerID, r.RefereeID, dir) && w.Contains(r.CreatedAt) {
			n++
		}
	}
	return n, nil
}

func (f fakeReferrals) WeeklyGiven(_ context.Context, memberID primitive.ObjectID, _ string) ([]models.WeekBucket, error) {
	var dates []time.Time
	for _, r := range f.d.referrals {
		if r.ReferrerID == memberID {
			dates = append(dates, r.CreatedAt)
		}
	}
	return weekly(dates), nil
}

func (f fakeReferrals) Monthly(_ context.Context, w window.Window, _ string) ([]models.MonthBucket, error) {
	var dates []time.Time
	for _, r := range f.d.referrals {
		if w.Contains(r.CreatedAt) {
			dates = append(dates, r.CreatedAt)
		}
	}
	return monthly(dates, nil), nil
}

func (f fakeReferrals) List(_ context.Context, memberID primitive.ObjectID, dir models.Direction, w window.Window) ([]models.Referral, error) {
	out := []models.Referral{}
	for _, r := range f.d.referrals {
		if onSide(memberID, r.ReferrerID, r.RefereeID, dir) && w.Contains(r.CreatedAt) {
			out = append(out, r)
		}
	}
	return out, nil
}

type fakeTYFTBs struct{ d *dataset }

func (f fakeTYFTBs) Totals(_ context.Context, memberID primitive.ObjectID, dir models.Direction, w window.Window) (tyftbstore.Totals, error) {
	if err := f.d.check(memberID); err != nil {
		return tyftbstore.Totals{}, err
	}
	var t tyftbstore.Totals
	for _, r := range f.d.tyftbs {
		if onSide(memberID, r.PayerID, r.ReceiverID, dir) && w.Contains(r.CreatedAt) {
			t.Count++
			t.Amount = t.Amount.Add(r.BusinessAmount)
		}
	}
	return t, nil
}

func (f fakeTYFTBs) SumPaidBy(_ context.Context, payerIDs []primitive.ObjectID, status bool) (models.Amount, error) {
	in := map[primitive.ObjectID]bool{}
	for _, id := range payerIDs {
		in[id] = true
	}
	sum := models.ZeroAmount
	for _, r := range f.d.tyftbs {
		if in[r.PayerID] && r.Status == status {
			sum = sum.Add(r.BusinessAmount)
		}
	}
	return sum, nil
}

func (f fakeTYFTBs) WeeklyGiven(_ context.Context, memberID primitive.ObjectID, _ string) ([]models.WeekBucket, error) {
	var dates []time.Time
	for _, r := range f.d.tyftbs {
		if r.PayerID == memberID {
			dates = append(dates, r.CreatedAt)
		}
	}
	return weekly(dates), nil
}

func (f fakeTYFTBs) Monthly(_ context.Context, w window.Window, _ string) ([]models.MonthBucket, error) {
	var dates []time.Time
	amounts := []models.Amount{}
	for _, r := range f.d.tyftbs {
		if w.Contains(r.CreatedAt) {
			dates = append(dates, r.CreatedAt)
			amounts = append(amounts, r.BusinessAmount)
		}
	}
	return monthly(dates, amounts), nil
}

func (f fakeTYFTBs) List(_ context.Context, memberID primitive.ObjectID, dir models.Direction, w window.Window) ([]models.TYFTB, error) {
	out := []models.TYFTB{}
	for _, r := range f.d.tyftbs {
		if onSide(memberID, r.PayerID, r.ReceiverID, dir) && w.Contains(r.CreatedAt) {
			out = append(out, r)
		}
	}
	return out, nil
}

type fakeOneToOnes struct{ d *dataset }

func (f fakeOneToOnes) CountInvolving(_ context.Context, memberID primitive.ObjectID, w window.Window) (int64, error) {
	if err := f.d.check(memberID); err != nil {
		return 0, err
	}
	var n int64
	for _, r := range f.d.oneToOnes {
		if onSide(memberID, r.Member1ID, r.Member2ID, models.DirectionAny) && w.Contains(r.CreatedAt) {
			n++
		}
	}
	return n, nil
}

func (f fakeOneToOnes) WeeklyInvolving(_ context.Context, memberID primitive.ObjectID, _ string) ([]models.WeekBucket, error) {
	var dates []time.Time
	for _, r := range f.d.oneToOnes {
		if onSide(memberID, r.Member1ID, r.Member2ID, models.DirectionAny) {
			dates = append(dates, r.MeetingDate)
		}
	}
	return weekly(dates), nil
}

func (f fakeOneToOnes) Monthly(_ context.Context, w window.Window, _ string) ([]models.MonthBucket, error) {
	var dates []time.Time
	for _, r := range f.d.oneToOnes {
		if w.Contains(r.MeetingDate) {
			dates = append(dates, r.MeetingDate)
		}
	}
	return monthly(dates, nil), nil
}

func (f fakeOneToOnes) List(_ context.Context, memberID primitive.ObjectID, dir models.Direction, w window.Window) ([]models.OneToOneMeeting, error) {
	out := []models.OneToOneMeeting{}
	for _, r := range f.d.oneToOnes {
		if onSide(memberID, r.Member1ID, r.Member2ID, dir) && w.Contains(r.CreatedAt) {
			out = append(out, r)
		}
	}
	return out, nil
}

type fakeVisitors struct{ d *dataset }

func (f fakeVisitors) CountInvitedBy(_ context.Context, memberID primitive.ObjectID, w window.Window) (int64, error) {
	if err := f.d.check(memberID); err != nil {
		return 0, err
	}
	var n int64
	for _, v := range f.d.visitors {
		if v.InvitingMemberID == memberID && w.Contains(v.CreatedAt) {
			n++
		}
	}
	return n, nil
}

func (f fakeVisitors) WeeklyInvitedBy(_ context.Context, memberID primitive.ObjectID, _ string) ([]models.WeekBucket, error) {
	var dates []time.Time
	for _, v := range f.d.visitors {
		if v.InvitingMemberID == memberID {
			dates = append(dates, v.CreatedAt)
		}
	}
	return weekly(dates), nil
}

func (f fakeVisitors) Monthly(_ context.Context, w window.Window, _ string) ([]models.MonthBucket, error) {
	var dates []time.Time
	for _, v := range f.d.visitors {
		if w.Contains(v.CreatedAt) {
			dates = append(dates, v.CreatedAt)
		}
	}
	return monthly(dates, nil), nil
}
