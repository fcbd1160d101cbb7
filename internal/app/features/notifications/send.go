// internal/app/features/notifications/send.go
package notifications

import (
	"context"
	"net/http"

	uierrors "github.com/dalemusser/tankerhub/internal/app/features/errors"
	notificationstore "github.com/dalemusser/tankerhub/internal/app/store/notifications"
	"github.com/dalemusser/tankerhub/internal/app/system/formutil"
	"github.com/dalemusser/tankerhub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/tankerhub/internal/app/system/inputval"
	"github.com/dalemusser/tankerhub/internal/app/system/navigation"
	"github.com/dalemusser/tankerhub/internal/app/system/normalize"
	"github.com/dalemusser/tankerhub/internal/app/system/timeouts"
	"github.com/dalemusser/tankerhub/internal/app/system/toast"
	"github.com/dalemusser/tankerhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

// ServeNew renders the "Send Notification" form. ?customer= preselects
// the single-customer audience.
func (h *Handler) ServeNew(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "notification new")
	defer cancel()

	data := formData{Audience: models.AudienceAll}
	if c := query.Get(r, "customer"); c != "" {
		data.Audience = models.AudienceCustomer
		data.CustomerID = c
	}
	h.render(ctx, w, r, data, "")
}

// HandleSend validates and sends a notification. The message is
// sanitised before it leaves the dashboard.
func (h *Handler) HandleSend(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form submission.", "/notifications")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "notification send")
	defer cancel()

	in := notificationstore.Input{
		Title:      formutil.Trimmed(r, "title"),
		Message:    htmlsanitize.Sanitize(formutil.Trimmed(r, "message")),
		Audience:   normalize.Status(r.FormValue("audience")),
		CustomerID: formutil.Trimmed(r, "customer_id"),
	}
	res := inputval.Validate(notificationInput{
		Title:      in.Title,
		Message:    htmlsanitize.PlainText(in.Message),
		Audience:   in.Audience,
		CustomerID: in.CustomerID,
	})
	if res.HasErrors() {
		data := formData{
			Heading:    in.Title,
			Message:    formutil.Trimmed(r, "message"),
			Audience:   in.Audience,
			CustomerID: in.CustomerID,
		}
		h.render(ctx, w, r, data, res.First())
		return
	}

	sent, err := h.Notifications.Send(ctx, in)
	if err != nil {
		h.ErrLog.Upstream(w, r, "send notification failed", err, "Could not send the notification.", "/notifications")
		return
	}
	h.Audit.NotificationSent(ctx, r, sent.ID, in.Audience, in.Title)

	toast.Success(w, r, "Notification sent.")
	uierrors.Redirect(w, r, navigation.SafeBackURL(r, navigation.NotificationsBackURL))
}

func (h *Handler) render(ctx context.Context, w http.ResponseWriter, r *http.Request, data formData, msg string) {
	cs, err := h.Customers.List(ctx)
	if err != nil {
		h.Log.Warn("list customers for notification form failed", zap.Error(err))
	}
	data.Customers = cs
	data.Audiences = models.Audiences
	formutil.SetBase(&data.Base, w, r, "Send Notification", "/notifications")
	if msg != "" {
		data.SetError(msg)
	}

	if r.Header.Get("HX-Request") != "" && r.Header.Get("HX-Target") == "modal" {
		templates.RenderSnippet(w, "notification_form", data)
		return
	}
	templates.Render(w, r, "notification_form_page", data)
}
