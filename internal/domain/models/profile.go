// internal/domain/models/profile.go
package models

import "strings"

// DefaultMemberName is used when a profile has neither a display name nor
// an email address.
const DefaultMemberName = "User"

// Profile is the identity of a user as seen by the profile subsystem.
// Only the fields that are cached on Member are carried here.
type Profile struct {
	UserID      string `json:"user_id"`
	DisplayName string `json:"display_name"`
	Email       string `json:"email,omitempty"`
	PhotoURL    string `json:"photo_url,omitempty"`
}

// MemberName resolves the name cached on Member: the display name, else
// the local part of the email, else DefaultMemberName.
func (p Profile) MemberName() string {
	if p.DisplayName != "" {
		return p.DisplayName
	}
	if local, _, _ := strings.Cut(p.Email, "@"); local != "" {
		return local
	}
	return DefaultMemberName
}

// Member builds a fresh Member from the profile.
func (p Profile) Member() Member {
	return Member{
		UserID:   p.UserID,
		Name:     p.MemberName(),
		PhotoURL: p.PhotoURL,
	}
}
