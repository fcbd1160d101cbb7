package authz_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/tankerhub/internal/app/system/auth"
	"github.com/dalemusser/tankerhub/internal/app/system/authz"
)

func reqAs(role, id string) *http.Request {
	req := httptest.NewRequest("GET", "/test", nil)
	if role == "" {
		return req
	}
	return auth.WithTestUser(req, &auth.SessionUser{ID: id, Name: "Test", Role: role, Token: "t"})
}

func TestRolePredicates(t *testing.T) {
	tests := []struct {
		role                       string
		wantAdmin, wantSuper, want bool
	}{
		{"superadmin", true, true, true},
		{"admin", true, false, true},
		{"ADMIN", true, false, true},
		{"driver", false, false, true},
		{"", false, false, false},
	}

	for _, tc := range tests {
		t.Run(tc.role, func(t *testing.T) {
			req := reqAs(tc.role, "a1")
			if got := authz.IsAdmin(req); got != tc.wantAdmin {
				t.Errorf("IsAdmin = %v, want %v", got, tc.wantAdmin)
			}
			if got := authz.IsSuperAdmin(req); got != tc.wantSuper {
				t.Errorf("IsSuperAdmin = %v, want %v", got, tc.wantSuper)
			}
			if got := authz.CanManageAdmins(req); got != tc.wantSuper {
				t.Errorf("CanManageAdmins = %v, want %v", got, tc.wantSuper)
			}
			if _, ok := authz.Role(req); ok != tc.want {
				t.Errorf("Role ok = %v, want %v", ok, tc.want)
			}
		})
	}
}

func TestUserCtx_NoUser(t *testing.T) {
	role, name, id, ok := authz.UserCtx(httptest.NewRequest("GET", "/", nil))
	if ok || role != "visitor" || name != "" || id != "" {
		t.Errorf("UserCtx without user = %q %q %q %v", role, name, id, ok)
	}
}

func TestIsSelf(t *testing.T) {
	req := reqAs("superadmin", "a1")
	if !authz.IsSelf(req, "a1") {
		t.Error("expected IsSelf for own id")
	}
	if authz.IsSelf(req, "a2") {
		t.Error("expected !IsSelf for other id")
	}
	if authz.IsSelf(reqAs("admin", ""), "") {
		t.Error("blank ids never match")
	}
}

func TestHasAnyRole(t *testing.T) {
	req := reqAs("admin", "a1")
	if !authz.HasAnyRole(req, " Admin ", "superadmin") {
		t.Error("expected admin to match")
	}
	if authz.HasAnyRole(req, "superadmin") {
		t.Error("admin should not match superadmin")
	}
	if authz.HasAnyRole(reqAs("", ""), "admin") {
		t.Error("visitor should match nothing")
	}
}
