package testutil

import (
	"context"
	"net/http"
	"testing"
	"time"

	groupstore "github.com/dalemusser/huddle/internal/app/store/groups"
	"github.com/dalemusser/huddle/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx, _ := r.Context().Value(chi.RouteCtxKey).(*chi.Context)
	if rctx == nil {
		rctx = chi.NewRouteContext()
	}
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// NewUserID returns a random external user identifier.
func NewUserID() string {
	return uuid.NewString()
}

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// CreateGroup inserts an active group owned by creatorID with the given members.
// Timestamps are set one hour in the past so tests can detect refreshes.
func (f *Fixtures) CreateGroup(ctx context.Context, name, creatorID string, members ...models.Member) models.Group {
	f.t.Helper()

	if members == nil {
		members = []models.Member{}
	}
	then := time.Now().UTC().Add(-time.Hour).Truncate(time.Millisecond)
	g := models.Group{
		ID:          primitive.NewObjectID(),
		Name:        name,
		NameCI:      text.Fold(name),
		Description: "fixture group",
		CreatedBy:   creatorID,
		IsActive:    true,
		Members:     members,
		CreatedAt:   then,
		UpdatedAt:   then,
	}

	if _, err := f.db.Collection(groupstore.Collection).InsertOne(ctx, g); err != nil {
		f.t.Fatalf("failed to create test group: %v", err)
	}
	return g
}

// CreateInactiveGroup inserts a soft-deleted group.
func (f *Fixtures) CreateInactiveGroup(ctx context.Context, name, creatorID string, members ...models.Member) models.Group {
	f.t.Helper()

	g := f.CreateGroup(ctx, name, creatorID, members...)
	_, err := f.db.Collection(groupstore.Collection).UpdateByID(ctx, g.ID,
		map[string]any{"$set": map[string]any{"is_active": false}})
	if err != nil {
		f.t.Fatalf("failed to deactivate test group: %v", err)
	}
	g.IsActive = false
	return g
}

// ReloadGroup reads a group straight from the collection.
func (f *Fixtures) ReloadGroup(ctx context.Context, id primitive.ObjectID) models.Group {
	f.t.Helper()

	var g models.Group
	if err := f.db.Collection(groupstore.Collection).FindOne(ctx, map[string]any{"_id": id}).Decode(&g); err != nil {
		f.t.Fatalf("failed to reload group %s: %v", id.Hex(), err)
	}
	return g
}
