package stats

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/dalemusser/chapterhub/internal/app/store/queries/partyqueries"
	"github.com/dalemusser/chapterhub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/chapterhub/internal/app/system/window"
	"github.com/dalemusser/chapterhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DetailType selects which record kinds a detail listing includes.
type DetailType string

const (
	DetailAll      DetailType = "all"
	DetailTYFTB    DetailType = DetailType(models.KindTYFTB)
	DetailOneToOne DetailType = DetailType(models.KindOneToOne)
	DetailReferral DetailType = DetailType(models.KindReferral)
)

// ParseDetailType maps the "type" parameter. Empty means all.
func ParseDetailType(s string) (DetailType, error) {
	switch t := DetailType(strings.ToLower(strings.TrimSpace(s))); t {
	case "":
		return DetailAll, nil
	case DetailAll, DetailTYFTB, DetailOneToOne, DetailReferral:
		return t, nil
	}
	return "", fmt.Errorf("%w: type %q", ErrInvalidKind, s)
}

func (t DetailType) includes(k models.RecordKind) bool {
	return t == DetailAll || t == DetailType(k)
}

// DetailQuery filters a detail listing.
type DetailQuery struct {
	Type      DetailType
	Direction models.Direction
	Window    window.Window
}

// DetailItem is one record in a member's activity listing. Only the party
// fields that apply to Type are set. Missing members appear as the
// "Unknown" placeholder reference.
type DetailItem struct {
	ID          primitive.ObjectID `json:"id"`
	Type        models.RecordKind  `json:"type"`
	Direction   models.Direction   `json:"direction"`
	Referrer    *models.MemberRef  `json:"referrer,omitempty"`
	Referee     *models.MemberRef  `json:"referee,omitempty"`
	Payer       *models.MemberRef  `json:"payer,omitempty"`
	Receiver    *models.MemberRef  `json:"receiver,omitempty"`
	Member1     *models.MemberRef  `json:"member1,omitempty"`
	Member2     *models.MemberRef  `json:"member2,omitempty"`
	Amount      *models.Amount     `json:"businessAmount,omitempty"`
	MeetingDate *time.Time         `json:"meetingDate,omitempty"`
	Status      bool               `json:"status"`
	Notes       string             `json:"notes"`
	CreatedAt   time.Time          `json:"createdAt"`
}

// Details lists memberID's TYFTB, one-to-one and referral records matching q,
// merged newest first.
func (s *Service) Details(ctx context.Context, memberID primitive.ObjectID, q DetailQuery) (out []DetailItem, err error) {
	defer func(start time.Time) { s.metrics.ObserveBuild("details", start, err) }(time.Now())

	if q.Type == "" {
		q.Type = DetailAll
	}
	if err := s.requireMember(ctx, memberID); err != nil {
		return nil, err
	}

	type pending struct {
		item     DetailItem
		from, to primitive.ObjectID
		setFrom  func(*DetailItem, *models.MemberRef)
		setTo    func(*DetailItem, *models.MemberRef)
	}
	var rows []pending

	if q.Type.includes(models.KindTYFTB) {
		recs, err := s.src.TYFTBs.List(ctx, memberID, q.Direction, q.Window)
		if err != nil {
			return nil, err
		}
		for _, r := range recs {
			amt := r.BusinessAmount
			rows = append(rows, pending{
				item: DetailItem{
					ID: r.ID, Type: models.KindTYFTB,
					Direction: partyqueries.DirectionOf(memberID, r.PayerID),
					Amount:    &amt, Status: r.Status, Notes: r.Notes, CreatedAt: r.CreatedAt,
				},
				from: r.PayerID, to: r.ReceiverID,
				setFrom: func(d *DetailItem, ref *models.MemberRef) { d.Payer = ref },
				setTo:   func(d *DetailItem, ref *models.MemberRef) { d.Receiver = ref },
			})
		}
	}

	if q.Type.includes(models.KindOneToOne) {
		recs, err := s.src.OneToOnes.List(ctx, memberID, q.Direction, q.Window)
		if err != nil {
			return nil, err
		}
		for _, r := range recs {
			md := r.MeetingDate
			rows = append(rows, pending{
				item: DetailItem{
					ID: r.ID, Type: models.KindOneToOne,
					Direction:   partyqueries.DirectionOf(memberID, r.Member1ID),
					MeetingDate: &md, Status: r.Status, Notes: r.Notes, CreatedAt: r.CreatedAt,
				},
				from: r.Member1ID, to: r.Member2ID,
				setFrom: func(d *DetailItem, ref *models.MemberRef) { d.Member1 = ref },
				setTo:   func(d *DetailItem, ref *models.MemberRef) { d.Member2 = ref },
			})
		}
	}

	if q.Type.includes(models.KindReferral) {
		recs, err := s.src.Referrals.List(ctx, memberID, q.Direction, q.Window)
		if err != nil {
			return nil, err
		}
		for _, r := range recs {
			rows = append(rows, pending{
				item: DetailItem{
					ID: r.ID, Type: models.KindReferral,
					Direction: partyqueries.DirectionOf(memberID, r.ReferrerID),
					Status:    r.Status, Notes: r.Notes, CreatedAt: r.CreatedAt,
				},
				from: r.ReferrerID, to: r.RefereeID,
				setFrom: func(d *DetailItem, ref *models.MemberRef) { d.Referrer = ref },
				setTo:   func(d *DetailItem, ref *models.MemberRef) { d.Referee = ref },
			})
		}
	}

	ids := make([]primitive.ObjectID, 0, 2*len(rows))
	seen := make(map[primitive.ObjectID]struct{})
	for _, p := range rows {
		for _, id := range []primitive.ObjectID{p.from, p.to} {
			if _, ok := seen[id]; !ok {
				seen[id] = struct{}{}
				ids = append(ids, id)
			}
		}
	}
	refs, err := s.src.Members.RefsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	lookup := func(id primitive.ObjectID) *models.MemberRef {
		if ref, ok := refs[id]; ok {
			return &ref
		}
		ref := models.UnknownMemberRef()
		return &ref
	}

	out = make([]DetailItem, 0, len(rows))
	for _, p := range rows {
		item := p.item
		item.Notes = htmlsanitize.PlainText(item.Notes)
		p.setFrom(&item, lookup(p.from))
		p.setTo(&item, lookup(p.to))
		out = append(out, item)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID.Hex() > out[j].ID.Hex()
	})
	return out, nil
}
