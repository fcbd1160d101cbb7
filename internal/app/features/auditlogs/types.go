// internal/app/features/auditlogs/types.go
package auditlogs

import (
	"time"

	"github.com/dalemusser/tankerhub/internal/app/system/listing"
	"github.com/dalemusser/tankerhub/internal/app/system/viewdata"
	"github.com/dalemusser/tankerhub/internal/domain/models"
)

const tableID = "auditlogs-table-wrap"

type listData struct {
	viewdata.BaseVM
	listing.View[models.AuditLog]

	ExportQuery string // current filters for the CSV link
}

// The action filter rides on the shared status control.
var logSpec = listing.Spec[models.AuditLog]{
	Text: func(l models.AuditLog) []string {
		return []string{l.Actor, l.ActorRole, l.Action, l.Entity, l.EntityID, l.Details, l.IP}
	},
	Status: func(l models.AuditLog) string { return l.Action },
	Date:   func(l models.AuditLog) time.Time { return l.CreatedAt },
	Sorts: map[string]func(a, b models.AuditLog) int{
		"actor":  listing.ByString(func(l models.AuditLog) string { return l.Actor }),
		"action": listing.ByString(func(l models.AuditLog) string { return l.Action }),
		"entity": listing.ByString(func(l models.AuditLog) string { return l.Entity }),
		"time":   listing.ByTime(func(l models.AuditLog) time.Time { return l.CreatedAt }),
	},
	DefaultSort: "time",
	DefaultDesc: true,
}
