// internal/app/system/authz/authz.go
package authz

import (
	"net/http"
	"strings"

	"github.com/dalemusser/tankerhub/internal/app/system/auth"
)

// UserCtx returns the user's role (lowercased), display name, backend id,
// and a found flag. With no user it returns "visitor", "", "", false.
func UserCtx(r *http.Request) (role, name, userID string, ok bool) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		return "visitor", "", "", false
	}
	return strings.ToLower(user.Role), user.DisplayName(), user.ID, true
}

// IsSuperAdmin reports whether the current request's user is a superadmin.
func IsSuperAdmin(r *http.Request) bool {
	role, _, _, ok := UserCtx(r)
	return ok && role == auth.RoleSuperAdmin
}

// IsAdmin reports whether the current request's user is an admin.
// Note: Superadmins are also considered admins for permission purposes.
func IsAdmin(r *http.Request) bool {
	role, _, _, ok := UserCtx(r)
	return ok && (role == auth.RoleAdmin || role == auth.RoleSuperAdmin)
}

// CanManageAdmins reports whether the user may create, edit, disable or
// delete other admins.
func CanManageAdmins(r *http.Request) bool { return IsSuperAdmin(r) }

// IsSelf reports whether id is the signed-in user's own backend id.
func IsSelf(r *http.Request, id string) bool {
	_, _, uid, ok := UserCtx(r)
	return ok && uid != "" && uid == id
}

// HasAnyRole reports whether the current request's user has any of the given roles.
// Returns false if no user is present (i.e., not signed in).
func HasAnyRole(r *http.Request, roles ...string) bool {
	role, _, _, ok := UserCtx(r)
	if !ok {
		return false
	}
	for _, want := range roles {
		if role == strings.ToLower(strings.TrimSpace(want)) {
			return true
		}
	}
	return false
}

// Role returns the current user's role (lowercased) and whether a user is present.
func Role(r *http.Request) (string, bool) {
	role, _, _, ok := UserCtx(r)
	return role, ok
}
