// internal/app/system/authz/roles.go
package authz

import (
	"net/http"
	"strings"

	"github.com/dalemusser/chapterhub/internal/domain/models"
)

// KnownRole maps a stored role string to its models constant.
// Unknown roles report ok=false.
func KnownRole(s string) (string, bool) {
	switch role := strings.ToLower(strings.TrimSpace(s)); role {
	case models.RolePresident, models.RoleAdmin, models.RoleCoordinator, models.RoleMember:
		return role, true
	}
	return "", false
}

// Role returns the signed-in member's role as a models constant.
// ok is false with no user or an unrecognised role.
func Role(r *http.Request) (string, bool) {
	role, _, _, ok := UserCtx(r)
	if !ok {
		return "", false
	}
	return KnownRole(role)
}

// HasAnyRole reports whether the signed-in member holds one of roles.
func HasAnyRole(r *http.Request, roles ...string) bool {
	cur, ok := Role(r)
	if !ok {
		return false
	}
	for _, want := range roles {
		if known, ok := KnownRole(want); ok && known == cur {
			return true
		}
	}
	return false
}
