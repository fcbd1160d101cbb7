// internal/app/features/activity/history.go
package activity

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/dalemusser/tankerhub/internal/app/system/csvutil"
	"github.com/dalemusser/tankerhub/internal/app/system/timeouts"
	"github.com/dalemusser/tankerhub/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

var historyHeader = []string{"Session", "Login (UTC)", "Logout (UTC)", "Last active (UTC)", "Duration (sec)", "End reason", "Last page", "IP", "User agent"}

func (h *Handler) historyRows(ctx context.Context, adminID string) ([]sessionRow, error) {
	now := h.now()
	sessions, err := h.Sessions.History(ctx, adminID, historyLimit)
	if err != nil {
		return nil, err
	}
	rows := make([]sessionRow, len(sessions))
	for i, s := range sessions {
		rows[i] = row(s, now, h.IdleAfter)
	}
	return rows, nil
}

// ServeHistory lists an admin's most recent dashboard sessions.
// GET /activity/admin/{adminID}
func (h *Handler) ServeHistory(w http.ResponseWriter, r *http.Request) {
	adminID := strings.TrimSpace(chi.URLParam(r, "adminID"))

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "activity history")
	defer cancel()

	rows, err := h.historyRows(ctx, adminID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load session history failed", err, "Unable to load session history.", "/activity")
		return
	}

	data := historyData{
		BaseVM:   viewdata.NewBaseVM(w, r, "Session History", "/activity"),
		AdminID:  adminID,
		Sessions: rows,
	}
	var total int64
	for _, s := range rows {
		if data.Email == "" {
			data.Email, data.Name = s.Email, s.Name
		}
		if s.Open() {
			total += int64(h.now().Sub(s.LoginAt).Seconds())
		} else {
			total += s.DurationSecs
		}
	}
	data.Total = formatDuration(total)

	templates.Render(w, r, "activity_history", data)
}

// ServeHistoryCSV exports the same sessions as ServeHistory.
// GET /activity/admin/{adminID}/sessions.csv
func (h *Handler) ServeHistoryCSV(w http.ResponseWriter, r *http.Request) {
	adminID := strings.TrimSpace(chi.URLParam(r, "adminID"))

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "activity history export")
	defer cancel()

	rows, err := h.historyRows(ctx, adminID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load session history for export failed", err, "Unable to export session history.", "/activity")
		return
	}

	records := make([][]string, len(rows))
	for i, s := range rows {
		logout := ""
		if s.LogoutAt != nil {
			logout = stamp(*s.LogoutAt)
		}
		records[i] = []string{
			s.ID,
			stamp(s.LoginAt),
			logout,
			stamp(s.LastActiveAt),
			fmt.Sprint(s.DurationSecs),
			s.EndReason,
			s.CurrentPage,
			s.IP,
			s.UserAgent,
		}
	}

	csvutil.SetAttachment(w, fmt.Sprintf("sessions_%s_%s.csv", adminID, h.now().Format("20060102")))
	if err := csvutil.Write(w, historyHeader, records); err != nil {
		h.Log.Error("session history CSV write failed", zap.Error(err), zap.String("admin_id", adminID))
	}
}
