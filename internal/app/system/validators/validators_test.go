package validators_test

import (
	"testing"
	"time"

	groupstore "github.com/dalemusser/huddle/internal/app/store/groups"
	"github.com/dalemusser/huddle/internal/app/system/validators"
	"github.com/dalemusser/huddle/internal/domain/models"
	"github.com/dalemusser/huddle/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

func TestEnsureAll_Idempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	for i := 0; i < 2; i++ {
		if err := validators.EnsureAll(ctx, db, zap.NewNop()); err != nil {
			t.Fatalf("EnsureAll #%d failed: %v", i+1, err)
		}
	}

	names, err := db.ListCollectionNames(ctx, bson.M{})
	if err != nil {
		t.Fatalf("ListCollectionNames failed: %v", err)
	}
	found := false
	for _, n := range names {
		if n == groupstore.Collection {
			found = true
		}
	}
	if !found {
		t.Errorf("expected collection %q to exist, got %v", groupstore.Collection, names)
	}
}

func TestGroupsValidator_RequiredFields(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := validators.EnsureAll(ctx, db, zap.NewNop()); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	_, err := db.Collection(groupstore.Collection).InsertOne(ctx, bson.M{"name": "No Creator"})
	if err == nil {
		t.Error("expected validation error when inserting group without required fields")
	}
}

func TestGroupsValidator_MemberNeedsUserID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := validators.EnsureAll(ctx, db, zap.NewNop()); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	now := time.Now()
	_, err := db.Collection(groupstore.Collection).InsertOne(ctx, bson.M{
		"name":       "Bad Member",
		"created_by": "u1",
		"is_active":  true,
		"members":    bson.A{bson.M{"name": "Nobody"}},
		"created_at": now,
		"updated_at": now,
	})
	if err == nil {
		t.Error("expected validation error for a member without user_id")
	}
}

func TestGroupsValidator_AcceptsStoreWrites(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := validators.EnsureAll(ctx, db, zap.NewNop()); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	store := groupstore.New(db)
	g, err := store.Create(ctx, "creator", models.GroupInput{Name: "Valid", MaxMembers: 10})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if err := store.AddMember(ctx, g.ID, models.Member{UserID: "u1", Name: "One"}); err != nil {
		t.Fatalf("AddMember failed: %v", err)
	}
	if err := store.ReplaceMembers(ctx, g.ID, []models.Member{{UserID: "u1", Name: "One", Bio: "b"}}); err != nil {
		t.Fatalf("ReplaceMembers failed: %v", err)
	}
}
