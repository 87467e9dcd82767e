// internal/app/store/groups/groupstore.go
package groupstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/huddle/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Collection is the name of the groups collection.
const Collection = "groups"

type Store struct {
	c *mongo.Collection
}

var (
	ErrGroupNotFound   = errors.New("group not found")
	ErrDuplicateMember = errors.New("user is already a member of this group")
)

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection(Collection)}
}

// Create stores a new active group owned by creatorID and returns it with
// its assigned ID. The input is not validated here.
func (s *Store) Create(ctx context.Context, creatorID string, in models.GroupInput) (models.Group, error) {
	now := time.Now().UTC()
	members := in.Members
	if members == nil {
		members = []models.Member{}
	}
	g := models.Group{
		ID:          primitive.NewObjectID(),
		Name:        in.Name,
		NameCI:      text.Fold(in.Name),
		Description: in.Description,
		Category:    in.Category,
		Location:    in.Location,
		MaxMembers:  in.MaxMembers,
		IsPrivate:   in.IsPrivate,
		CreatedBy:   creatorID,
		IsActive:    true,
		Members:     members,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if _, err := s.c.InsertOne(ctx, g); err != nil {
		return models.Group{}, err
	}
	return g, nil
}

// GetByID returns the group, or nil if no document has that ID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Group, error) {
	var g models.Group
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&g); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &g, nil
}

// ListActive returns every active group. Order is whatever the server returns.
func (s *Store) ListActive(ctx context.Context) ([]models.Group, error) {
	return s.find(ctx, bson.M{"is_active": true})
}

// ListByCreator returns the active groups created by userID.
func (s *Store) ListByCreator(ctx context.Context, userID string) ([]models.Group, error) {
	return s.find(ctx, bson.M{"created_by": userID, "is_active": true})
}

// ListByMember returns the active groups whose members include userID.
//
// Membership is filtered in-process after loading every active group, so the
// cost grows with the number of active groups, not with the user's groups.
func (s *Store) ListByMember(ctx context.Context, userID string) ([]models.Group, error) {
	active, err := s.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.Group, 0, len(active))
	for _, g := range active {
		if g.HasMember(userID) {
			out = append(out, g)
		}
	}
	return out, nil
}

// CountActive returns the number of active groups.
func (s *Store) CountActive(ctx context.Context) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{"is_active": true})
}

// Update applies the non-nil fields of upd and refreshes updated_at.
// A missing group is not an error; nothing is written.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, upd models.GroupUpdate) error {
	set := bson.M{
		"updated_at": time.Now().UTC(),
	}
	if upd.Name != nil {
		set["name"] = *upd.Name
		set["name_ci"] = text.Fold(*upd.Name)
	}
	if upd.Description != nil {
		set["description"] = *upd.Description
	}
	if upd.Category != nil {
		set["category"] = *upd.Category
	}
	if upd.Location != nil {
		set["location"] = *upd.Location
	}
	if upd.MaxMembers != nil {
		set["max_members"] = *upd.MaxMembers
	}
	if upd.IsPrivate != nil {
		set["is_private"] = *upd.IsPrivate
	}
	_, err := s.c.UpdateByID(ctx, id, bson.M{"$set": set})
	return err
}

// Deactivate soft-deletes a group. Calling it again is harmless.
func (s *Store) Deactivate(ctx context.Context, id primitive.ObjectID) error {
	_, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"is_active":  false,
		"updated_at": time.Now().UTC(),
	}})
	return err
}

// AddMember appends m to the group's members.
//
// The duplicate check runs against a fresh read, so two concurrent adds of
// the same user can both pass it. The write itself is $addToSet, which keeps
// concurrent adds of different users and never stores an identical member twice.
func (s *Store) AddMember(ctx context.Context, id primitive.ObjectID, m models.Member) error {
	g, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if g == nil {
		return ErrGroupNotFound
	}
	if g.HasMember(m.UserID) {
		return ErrDuplicateMember
	}

	_, err = s.c.UpdateByID(ctx, id, bson.M{
		"$addToSet": bson.M{"members": m.Doc()},
		"$set":      bson.M{"updated_at": time.Now().UTC()},
	})
	return err
}

// ReplaceMembers overwrites the whole members array and refreshes updated_at.
//
// This is a last-writer-wins write of the entire array: a concurrent
// AddMember that lands between the caller's read and this write is lost.
func (s *Store) ReplaceMembers(ctx context.Context, id primitive.ObjectID, members []models.Member) error {
	docs := make(bson.A, 0, len(members))
	for _, m := range members {
		docs = append(docs, m.Doc())
	}
	_, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"members":    docs,
		"updated_at": time.Now().UTC(),
	}})
	return err
}

func (s *Store) find(ctx context.Context, filter bson.M) ([]models.Group, error) {
	cur, err := s.c.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	groups := []models.Group{}
	if err := cur.All(ctx, &groups); err != nil {
		return nil, err
	}
	return groups, nil
}
