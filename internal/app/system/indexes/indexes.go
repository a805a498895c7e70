// internal/app/system/indexes/indexes.go
package indexes

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

/*
EnsureAll is called at startup. Each ensure* function is idempotent.
Errors are aggregated so every problem is visible and startup can fail fast.
*/
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	steps := []struct {
		name string
		fn   func(context.Context, *mongo.Database) error
	}{
		{"members", ensureMembers},
		{"memberships", ensureMemberships},
		{"referrals", ensureReferrals},
		{"tyftbs", ensureTYFTBs},
		{"one_to_ones", ensureOneToOnes},
		{"visitors", ensureVisitors},
		{"meetings", ensureMeetings},
		{"chapter_summaries", ensureChapterSummaries},
	}
	for _, s := range steps {
		if err := s.fn(ctx, db); err != nil {
			problems = append(problems, s.name+": "+err.Error())
		}
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

/* -------------------------------------------------------------------------- */
/* Core helper: reconcile a set of desired indexes for one collection         */
/* -------------------------------------------------------------------------- */

type existingIndex struct {
	Name   string `bson:"name"`
	Key    bson.D `bson:"key"`
	Unique *bool  `bson:"unique,omitempty"`
}

func keySig(keys bson.D) string {
	parts := make([]string, 0, len(keys))
	for _, kv := range keys {
		parts = append(parts, fmt.Sprintf("%s:%v", kv.Key, kv.Value))
	}
	return strings.Join(parts, ", ")
}

func boolVal(b *bool) bool { return b != nil && *b }

func isDuplicateKeyErr(err error) bool {
	if err == nil {
		return false
	}
	if mongo.IsDuplicateKeyError(err) {
		return true
	}
	return strings.Contains(err.Error(), "E11000")
}

// listBySig maps key signature to the existing index with that key pattern.
func listBySig(ctx context.Context, coll *mongo.Collection) (map[string]existingIndex, error) {
	cur, err := coll.Indexes().List(ctx)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := map[string]existingIndex{}
	for cur.Next(ctx) {
		var idx existingIndex
		if err := cur.Decode(&idx); err != nil {
			zap.L().Warn("failed to decode existing index",
				zap.String("collection", coll.Name()),
				zap.Error(err))
			continue
		}
		out[keySig(idx.Key)] = idx
	}
	return out, cur.Err()
}

// ensureIndexSet creates each desired index, reusing an existing index with
// the same keys and options. An index with the same keys but a different
// name or uniqueness is dropped and recreated.
func ensureIndexSet(ctx context.Context, coll *mongo.Collection, models []mongo.IndexModel) error {
	var errs []string

	existing, err := listBySig(ctx, coll)
	if err != nil {
		// Collection may not exist yet; CreateOne will create it.
		existing = map[string]existingIndex{}
	}

	for _, m := range models {
		var name string
		var unique *bool
		if m.Options != nil {
			if m.Options.Name != nil {
				name = *m.Options.Name
			}
			unique = m.Options.Unique
		}
		sig := keySig(m.Keys.(bson.D))
		start := time.Now()

		log := zap.L().With(
			zap.String("collection", coll.Name()),
			zap.String("name", name),
			zap.String("keys", sig),
			zap.Bool("unique", boolVal(unique)))

		if ex, ok := existing[sig]; ok {
			if boolVal(ex.Unique) == boolVal(unique) && (name == "" || ex.Name == name) {
				log.Debug("reusing existing index", zap.Duration("took", time.Since(start)))
				continue
			}
			log.Info("replacing index with mismatched name or options", zap.String("existing", ex.Name))
			if _, err := coll.Indexes().DropOne(ctx, ex.Name); err != nil {
				errs = append(errs, fmt.Sprintf("%s(%s): drop failed: %v", coll.Name(), name, err))
				continue
			}
		}

		if _, err := coll.Indexes().CreateOne(ctx, m); err != nil {
			if isDuplicateKeyErr(err) && boolVal(unique) {
				errs = append(errs, fmt.Sprintf("%s(%s): cannot create unique index (duplicates present)", coll.Name(), name))
			} else {
				errs = append(errs, fmt.Sprintf("%s(%s): %v", coll.Name(), name, err))
			}
			log.Warn("index ensure failed", zap.Duration("took", time.Since(start)), zap.Error(err))
			continue
		}
		log.Info("index ensured", zap.Duration("took", time.Since(start)))
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

/* -------------------------------------------------------------------------- */
/* Collection-specific index sets                                              */
/* -------------------------------------------------------------------------- */

func ensureMembers(ctx context.Context, db *mongo.Database) error {
	return ensureIndexSet(ctx, db.Collection("members"), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetName("idx_members_email"),
		},
	})
}

func ensureMemberships(ctx context.Context, db *mongo.Database) error {
	return ensureIndexSet(ctx, db.Collection("memberships"), []mongo.IndexModel{
		// Roster: {chapter, active} filter sorted by member_id.
		{
			Keys: bson.D{
				{Key: "chapter_id", Value: 1},
				{Key: "membership_status", Value: 1},
				{Key: "member_id", Value: 1},
			},
			Options: options.Index().SetName("idx_memberships_chapter_status_member"),
		},
		// Chapter context for a signed-in member.
		{
			Keys: bson.D{
				{Key: "member_id", Value: 1},
				{Key: "membership_status", Value: 1},
			},
			Options: options.Index().SetName("idx_memberships_member_status"),
		},
	})
}

func ensureReferrals(ctx context.Context, db *mongo.Database) error {
	return ensureIndexSet(ctx, db.Collection("referrals"), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "referrer_id", Value: 1}, {Key: "created_at", Value: 1}},
			Options: options.Index().SetName("idx_referrals_referrer_created"),
		},
		{
			Keys:    bson.D{{Key: "referee_id", Value: 1}, {Key: "created_at", Value: 1}},
			Options: options.Index().SetName("idx_referrals_referee_created"),
		},
	})
}

func ensureTYFTBs(ctx context.Context, db *mongo.Database) error {
	return ensureIndexSet(ctx, db.Collection("tyftbs"), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "payer_id", Value: 1}, {Key: "created_at", Value: 1}},
			Options: options.Index().SetName("idx_tyftbs_payer_created"),
		},
		{
			Keys:    bson.D{{Key: "receiver_id", Value: 1}, {Key: "created_at", Value: 1}},
			Options: options.Index().SetName("idx_tyftbs_receiver_created"),
		},
	})
}

func ensureOneToOnes(ctx context.Context, db *mongo.Database) error {
	return ensureIndexSet(ctx, db.Collection("one_to_ones"), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "member1_id", Value: 1}, {Key: "created_at", Value: 1}},
			Options: options.Index().SetName("idx_onetoones_member1_created"),
		},
		{
			Keys:    bson.D{{Key: "member2_id", Value: 1}, {Key: "created_at", Value: 1}},
			Options: options.Index().SetName("idx_onetoones_member2_created"),
		},
	})
}

func ensureVisitors(ctx context.Context, db *mongo.Database) error {
	return ensureIndexSet(ctx, db.Collection("visitors"), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "inviting_member_id", Value: 1}, {Key: "created_at", Value: 1}},
			Options: options.Index().SetName("idx_visitors_inviter_created"),
		},
	})
}

func ensureMeetings(ctx context.Context, db *mongo.Database) error {
	return ensureIndexSet(ctx, db.Collection("meetings"), []mongo.IndexModel{
		// Next upcoming meeting: equality on chapter+status, range+sort on date,time.
		{
			Keys: bson.D{
				{Key: "chapter_id", Value: 1},
				{Key: "meeting_status", Value: 1},
				{Key: "date", Value: 1},
				{Key: "time", Value: 1},
			},
			Options: options.Index().SetName("idx_meetings_chapter_status_date_time"),
		},
	})
}

func ensureChapterSummaries(ctx context.Context, db *mongo.Database) error {
	return ensureIndexSet(ctx, db.Collection("chapter_summaries"), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "chapter_id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_chapter_summaries_chapter"),
		},
	})
}
