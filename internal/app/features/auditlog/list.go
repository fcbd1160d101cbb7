// internal/app/features/auditlog/list.go
package auditlog

import (
	"net/http"
	"strings"
	"time"

	"github.com/dalemusser/tankerhub/internal/app/store/audit"
	"github.com/dalemusser/tankerhub/internal/app/system/paging"
	"github.com/dalemusser/tankerhub/internal/app/system/timeouts"
	"github.com/dalemusser/tankerhub/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

// ServeList handles GET /audit: newest events first, filtered by
// category, event type, actor email and date range, 50 per page.
// Unknown filter values are dropped rather than rejected.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long(), h.Log, "audit log list")
	defer cancel()

	data := listData{
		Category:   strings.TrimSpace(query.Get(r, "category")),
		EventType:  strings.TrimSpace(query.Get(r, "event_type")),
		ActorEmail: strings.ToLower(strings.TrimSpace(query.Get(r, "actor"))),
		StartDate:  strings.TrimSpace(query.Get(r, "start_date")),
		EndDate:    strings.TrimSpace(query.Get(r, "end_date")),
		Categories: allCategories(),
	}
	if !validCategory(data.Category) {
		data.Category = ""
	}
	if data.EventType != "" && !validEventType(data.Category, data.EventType) {
		data.EventType = ""
	}
	data.EventTypes = eventTypesForCategory(data.Category)

	filter := audit.QueryFilter{
		Category:   data.Category,
		EventType:  data.EventType,
		ActorEmail: data.ActorEmail,
	}
	if t, ok := parseDay(data.StartDate); ok {
		filter.StartTime = &t
	} else {
		data.StartDate = ""
	}
	if t, ok := parseDay(data.EndDate); ok {
		end := t.AddDate(0, 0, 1).Add(-time.Nanosecond)
		filter.EndTime = &end
	} else {
		data.EndDate = ""
	}

	total, err := h.Events.CountByFilter(ctx, filter)
	if err != nil {
		h.Log.Error("count audit events failed", zap.Error(err))
		h.ErrLog.LogServerError(w, r, "database error", err, "Unable to load the audit log.", "/dashboard")
		return
	}

	win := paging.Compute(int(total), paging.ParsePage(r), pageSize)
	filter.Limit = int64(win.PerPage)
	filter.Offset = int64((win.Page - 1) * win.PerPage)

	events, err := h.Events.Query(ctx, filter)
	if err != nil {
		h.Log.Error("query audit events failed", zap.Error(err))
		h.ErrLog.LogServerError(w, r, "database error", err, "Unable to load the audit log.", "/dashboard")
		return
	}

	data.Items = events
	data.Window = win
	data.PrevQuery = data.pageQuery(win.PrevPage())
	data.NextQuery = data.pageQuery(win.NextPage())
	data.BaseVM = viewdata.NewBaseVM(w, r, "Dashboard Audit Log", "/dashboard")

	templates.Render(w, r, "audit_list", data)
}
