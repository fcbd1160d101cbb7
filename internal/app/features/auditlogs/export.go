// internal/app/features/auditlogs/export.go
package auditlogs

import (
	"fmt"
	"net/http"
	"time"

	"github.com/dalemusser/tankerhub/internal/app/system/csvutil"
	"github.com/dalemusser/tankerhub/internal/app/system/listing"
	"github.com/dalemusser/tankerhub/internal/app/system/timeouts"
	"github.com/dalemusser/tankerhub/internal/domain/models"
	"go.uber.org/zap"
)

var csvHeader = []string{"Time (UTC)", "Actor", "Role", "Action", "Entity", "Entity ID", "Details", "IP"}

// ServeCSV exports the filtered audit trail (all pages) as CSV.
//
// Route: GET /audit-logs/export.csv (same filters as the list)
func (h *Handler) ServeCSV(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long(), h.Log, "audit logs export")
	defer cancel()

	all, err := h.Logs.List(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list audit logs for export failed", err, "Unable to export the audit trail.", "/audit-logs")
		return
	}
	rows := listing.All(all, listing.Parse(r), logSpec)

	records := make([][]string, len(rows))
	for i, l := range rows {
		records[i] = record(l)
	}

	csvutil.SetAttachment(w, fmt.Sprintf("audit_logs_%s.csv", time.Now().UTC().Format("20060102_150405")))
	if err := csvutil.Write(w, csvHeader, records); err != nil {
		h.Log.Error("audit logs CSV write failed", zap.Error(err))
		return
	}

	h.Audit.AuditExported(ctx, r, len(rows))
}

func record(l models.AuditLog) []string {
	ts := ""
	if !l.CreatedAt.IsZero() {
		ts = l.CreatedAt.UTC().Format("2006-01-02 15:04:05")
	}
	return []string{ts, l.Actor, l.ActorRole, l.Action, l.Entity, l.EntityID, l.Details, l.IP}
}
