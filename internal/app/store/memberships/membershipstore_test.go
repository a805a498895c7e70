package membershipstore_test

import (
	"testing"

	membershipstore "github.com/dalemusser/chapterhub/internal/app/store/memberships"
	"github.com/dalemusser/chapterhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestStore_ActiveMemberIDs(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := membershipstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	chapter := fixtures.CreateChapter(ctx, "Downtown")
	other := fixtures.CreateChapter(ctx, "Uptown")
	m1 := fixtures.CreateMember(ctx, "Alice", "alice@example.com")
	m2 := fixtures.CreateMember(ctx, "Bob", "bob@example.com")
	gone := fixtures.CreateMember(ctx, "Carol", "carol@example.com")
	elsewhere := fixtures.CreateMember(ctx, "Dan", "dan@example.com")

	fixtures.CreateMembership(ctx, m2.ID, chapter.ID, true)
	fixtures.CreateMembership(ctx, m1.ID, chapter.ID, true)
	fixtures.CreateMembership(ctx, gone.ID, chapter.ID, false)
	fixtures.CreateMembership(ctx, elsewhere.ID, other.ID, true)

	ids, err := store.ActiveMemberIDs(ctx, chapter.ID)
	if err != nil {
		t.Fatalf("ActiveMemberIDs failed: %v", err)
	}
	if len(ids) != 2 {
		t.Fatalf("expected 2 active members, got %d", len(ids))
	}

	// Ordered by member ID ascending.
	want := []primitive.ObjectID{m1.ID, m2.ID}
	if m2.ID.Hex() < m1.ID.Hex() {
		want = []primitive.ObjectID{m2.ID, m1.ID}
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("ids[%d]: got %s, want %s", i, ids[i].Hex(), want[i].Hex())
		}
	}
}

func TestStore_ActiveMemberIDs_EmptyChapter(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := membershipstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	ids, err := store.ActiveMemberIDs(ctx, primitive.NewObjectID())
	if err != nil {
		t.Fatalf("ActiveMemberIDs failed: %v", err)
	}
	if ids == nil {
		t.Error("expected empty non-nil slice")
	}
	if len(ids) != 0 {
		t.Errorf("expected 0 ids, got %d", len(ids))
	}
}

func TestStore_CountActive(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := membershipstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	chapter := fixtures.CreateChapter(ctx, "Downtown")
	for _, active := range []bool{true, true, false} {
		m := fixtures.CreateMember(ctx, "Member", "m@example.com")
		fixtures.CreateMembership(ctx, m.ID, chapter.ID, active)
	}

	n, err := store.CountActive(ctx, chapter.ID)
	if err != nil {
		t.Fatalf("CountActive failed: %v", err)
	}
	if n != 2 {
		t.Errorf("CountActive: got %d, want 2", n)
	}
}

func TestStore_ActiveForMember(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := membershipstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	chapter := fixtures.CreateChapter(ctx, "Downtown")
	old := fixtures.CreateChapter(ctx, "Old Chapter")
	m := fixtures.CreateMember(ctx, "Alice", "alice@example.com")
	fixtures.CreateMembership(ctx, m.ID, old.ID, false)
	fixtures.CreateMembership(ctx, m.ID, chapter.ID, true)

	ms, err := store.ActiveForMember(ctx, m.ID)
	if err != nil {
		t.Fatalf("ActiveForMember failed: %v", err)
	}
	if ms == nil {
		t.Fatal("expected an active membership")
	}
	if ms.ChapterID != chapter.ID {
		t.Errorf("ChapterID: got %s, want %s", ms.ChapterID.Hex(), chapter.ID.Hex())
	}
}

func TestStore_ActiveForMember_None(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := membershipstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	chapter := fixtures.CreateChapter(ctx, "Downtown")
	m := fixtures.CreateMember(ctx, "Alice", "alice@example.com")
	fixtures.CreateMembership(ctx, m.ID, chapter.ID, false)

	ms, err := store.ActiveForMember(ctx, m.ID)
	if err != nil {
		t.Fatalf("ActiveForMember failed: %v", err)
	}
	if ms != nil {
		t.Errorf("expected nil membership, got %+v", ms)
	}
}
