// internal/app/system/authz/authz.go
package authz

import (
	"net/http"
	"strings"

	"github.com/dalemusser/chapterhub/internal/app/system/auth"
	"github.com/dalemusser/chapterhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserCtx returns the user's role (lowercased), name, member ObjectID, and a found flag.
// If no user is present in context or the member ID is malformed, it returns
// "visitor", "", NilObjectID, false, so ok=true always means a signed-in
// member with a valid ObjectID.
func UserCtx(r *http.Request) (role string, name string, memberID primitive.ObjectID, ok bool) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		return "visitor", "", primitive.NilObjectID, false
	}
	memberID, err := primitive.ObjectIDFromHex(user.ID)
	if err != nil {
		// Malformed member ID in session: fail closed.
		return "visitor", "", primitive.NilObjectID, false
	}
	return strings.ToLower(user.Role), user.Name, memberID, true
}

// CanViewMember reports whether the user may read another member's
// statistics. Everyone may read their own.
func CanViewMember(r *http.Request, memberID primitive.ObjectID) bool {
	_, _, self, ok := UserCtx(r)
	if !ok {
		return false
	}
	if self == memberID {
		return true
	}
	return HasAnyRole(r, models.RoleAdmin, models.RoleCoordinator, models.RolePresident)
}
