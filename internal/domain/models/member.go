// internal/domain/models/member.go
package models

import "go.mongodb.org/mongo-driver/bson"

// Member is a user's entry inside Group.Members.
//
// PhotoURL and Bio are optional. They are omitted from the stored document
// when empty; the document never carries an explicit null for them.
type Member struct {
	UserID   string `bson:"user_id" json:"user_id"`
	Name     string `bson:"name" json:"name"`
	PhotoURL string `bson:"photo_url,omitempty" json:"photo_url,omitempty"`
	Bio      string `bson:"bio,omitempty" json:"bio,omitempty"`
}

// Doc renders m as an ordered document containing only the fields that
// have a value. $addToSet compares whole documents including field order,
// so every writer of member documents must go through this.
func (m Member) Doc() bson.D {
	d := bson.D{
		{Key: "user_id", Value: m.UserID},
		{Key: "name", Value: m.Name},
	}
	if m.PhotoURL != "" {
		d = append(d, bson.E{Key: "photo_url", Value: m.PhotoURL})
	}
	if m.Bio != "" {
		d = append(d, bson.E{Key: "bio", Value: m.Bio})
	}
	return d
}
