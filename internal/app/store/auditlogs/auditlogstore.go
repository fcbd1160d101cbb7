package auditlogstore

import (
	"context"

	reststore "github.com/dalemusser/tankerhub/internal/app/store/rest"
	"github.com/dalemusser/tankerhub/internal/app/system/backend"
	"github.com/dalemusser/tankerhub/internal/domain/models"
)

// Store reads the backend audit trail. It is read-only.
type Store struct {
	rs *reststore.Store[models.AuditLog]
}

func New(api *backend.Client) *Store {
	return &Store{rs: reststore.New[models.AuditLog](api, reststore.Paths{List: "/api/auditLogs/all"})}
}

func (s *Store) List(ctx context.Context) ([]models.AuditLog, error) { return s.rs.List(ctx) }

// Actions returns the distinct action names in logs, in first-seen order.
func Actions(logs []models.AuditLog) []string {
	seen := make(map[string]bool)
	var out []string
	for _, l := range logs {
		if l.Action == "" || seen[l.Action] {
			continue
		}
		seen[l.Action] = true
		out = append(out, l.Action)
	}
	return out
}
