// internal/domain/models/group.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Group is a user-created group that other users can join.
//
// NOTE:
//   - Members are embedded on the group document. Each Member caches the
//     user's profile name/photo; the profile subsystem owns the source of
//     truth and membersync keeps the copies current.
//   - Groups are never physically deleted. IsActive=false is a soft delete.
type Group struct {
	ID          primitive.ObjectID `bson:"_id" json:"id"`
	Name        string             `bson:"name" json:"name"`
	NameCI      string             `bson:"name_ci" json:"-"`
	Description string             `bson:"description" json:"description"`
	Category    string             `bson:"category,omitempty" json:"category,omitempty"`
	Location    string             `bson:"location,omitempty" json:"location,omitempty"`
	MaxMembers  int                `bson:"max_members,omitempty" json:"max_members,omitempty"`
	IsPrivate   bool               `bson:"is_private" json:"is_private"`

	CreatedBy string   `bson:"created_by" json:"created_by"`
	IsActive  bool     `bson:"is_active" json:"is_active"`
	Members   []Member `bson:"members" json:"members"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// MemberIndex returns the position of userID in g.Members, or -1.
func (g Group) MemberIndex(userID string) int {
	for i, m := range g.Members {
		if m.UserID == userID {
			return i
		}
	}
	return -1
}

// HasMember reports whether userID appears in g.Members.
func (g Group) HasMember(userID string) bool {
	return g.MemberIndex(userID) >= 0
}

// GroupInput carries the descriptive fields supplied when a group is created.
type GroupInput struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Category    string   `json:"category,omitempty"`
	Location    string   `json:"location,omitempty"`
	MaxMembers  int      `json:"max_members,omitempty"`
	IsPrivate   bool     `json:"is_private"`
	Members     []Member `json:"members,omitempty"`
}

// GroupUpdate is a partial update. Nil fields are left untouched.
type GroupUpdate struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Category    *string `json:"category,omitempty"`
	Location    *string `json:"location,omitempty"`
	MaxMembers  *int    `json:"max_members,omitempty"`
	IsPrivate   *bool   `json:"is_private,omitempty"`
}

// IsEmpty reports whether no field is set.
func (u GroupUpdate) IsEmpty() bool {
	return u.Name == nil && u.Description == nil && u.Category == nil &&
		u.Location == nil && u.MaxMembers == nil && u.IsPrivate == nil
}
