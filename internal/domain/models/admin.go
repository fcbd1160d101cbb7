// internal/domain/models/admin.go
package models

import (
	"encoding/json"
	"time"
)

// Dashboard roles.
const (
	RoleAdmin      = "admin"
	RoleSuperAdmin = "superadmin"
)

// Admin is a dashboard operator as returned by the backend.
type Admin struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Role      string    `json:"role"`             // admin | superadmin
	Status    string    `json:"status,omitempty"` // active | disabled
	CreatedAt time.Time `json:"createdAt"`
}

// IsActive reports whether the admin may sign in. A blank status is
// treated as active because older backend records never set it.
func (a Admin) IsActive() bool {
	s := Key(a.Status)
	return s == "" || s == StatusActive
}

// AuthResult is the body returned by the login endpoints.
type AuthResult struct {
	Token string `json:"token"`
	Admin Admin  `json:"admin"`
}

// UnmarshalJSON reads the date fields leniently (see Time) and folds
// the case of enumerated values.
func (a *Admin) UnmarshalJSON(data []byte) error {
	type plain Admin
	aux := struct {
		*plain
		CreatedAt Time `json:"createdAt"`
	}{plain: (*plain)(a)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	a.CreatedAt = aux.CreatedAt.Time
	a.Role = Key(a.Role)
	a.Status = Key(a.Status)
	return nil
}
