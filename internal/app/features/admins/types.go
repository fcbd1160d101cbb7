// internal/app/features/admins/types.go
package admins

import (
	"time"

	"github.com/dalemusser/tankerhub/internal/app/system/formutil"
	"github.com/dalemusser/tankerhub/internal/app/system/listing"
	"github.com/dalemusser/tankerhub/internal/app/system/viewdata"
	"github.com/dalemusser/tankerhub/internal/domain/models"
)

const tableID = "admins-table-wrap"

var (
	adminStatuses = []string{models.StatusActive, models.StatusDisabled}
	roles         = []string{models.RoleAdmin, models.RoleSuperAdmin}
)

type listData struct {
	viewdata.BaseVM
	listing.View[models.Admin]
	SelfID string
}

type formData struct {
	formutil.Base

	ID     string
	Action string
	Name   string
	Email  string
	Phone  string
	Role   string
	Roles  []string
	IsSelf bool // own account: role is locked
}

// adminInput defines validation rules for creating or editing an admin.
// The password is required on create only.
type adminInput struct {
	Name     string `validate:"required,max=100" label:"Name"`
	Email    string `validate:"required,email" label:"Email"`
	Phone    string `validate:"omitempty,phone" label:"Phone"`
	Password string `validate:"omitempty,min=8,max=128" label:"Password"`
	Role     string `validate:"required,oneof=admin superadmin" label:"Role"`
}

// status treats a blank backend status as active.
func status(a models.Admin) string {
	if a.IsActive() {
		return models.StatusActive
	}
	return models.StatusDisabled
}

var adminSpec = listing.Spec[models.Admin]{
	Text: func(a models.Admin) []string {
		return []string{a.Name, a.Email, a.Phone, a.Role}
	},
	Status: status,
	Sorts: map[string]func(a, b models.Admin) int{
		"name":    listing.ByString(func(a models.Admin) string { return a.Name }),
		"email":   listing.ByString(func(a models.Admin) string { return a.Email }),
		"role":    listing.ByString(func(a models.Admin) string { return a.Role }),
		"created": listing.ByTime(func(a models.Admin) time.Time { return a.CreatedAt }),
	},
	DefaultSort: "name",
}

// activeSuperAdmins counts superadmins that can still sign in.
func activeSuperAdmins(all []models.Admin) int {
	n := 0
	for _, a := range all {
		if a.Role == models.RoleSuperAdmin && a.IsActive() {
			n++
		}
	}
	return n
}
