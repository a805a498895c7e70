// internal/domain/models/member.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Member roles.
const (
	RolePresident   = "president"
	RoleAdmin       = "admin"
	RoleCoordinator = "coordinator"
	RoleMember      = "member"
)

// Member is a person enrolled in the organization.
//
// NOTE:
//   - Chapter affiliation is not stored on Member.
//     Use the memberships collection to find a member's active chapter.
type Member struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FullName  string             `bson:"full_name" json:"full_name"`
	Email     string             `bson:"email" json:"email"`
	Role      string             `bson:"role" json:"role"` // president | admin | coordinator | member
	Status    string             `bson:"status,omitempty" json:"status,omitempty"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
}

// UnknownMemberName is shown wherever a referenced member no longer exists.
const UnknownMemberName = "Unknown"

// MemberRef is the joined view of a member embedded in listings.
// A nil ID marks a reference whose member row is gone.
type MemberRef struct {
	ID    *primitive.ObjectID `json:"_id"`
	Name  string              `json:"name"`
	Email string              `json:"email"`
}

// UnknownMemberRef is the placeholder for a missing join.
func UnknownMemberRef() MemberRef {
	return MemberRef{ID: nil, Name: UnknownMemberName, Email: ""}
}

// Ref returns the listing reference for m.
func (m Member) Ref() MemberRef {
	id := m.ID
	return MemberRef{ID: &id, Name: m.FullName, Email: m.Email}
}
