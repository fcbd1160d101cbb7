// internal/app/features/login/handler.go
package login

import (
	"context"
	"errors"
	"net/http"

	uierrors "github.com/dalemusser/tankerhub/internal/app/features/errors"
	"github.com/dalemusser/tankerhub/internal/app/store/activity"
	adminstore "github.com/dalemusser/tankerhub/internal/app/store/admins"
	"github.com/dalemusser/tankerhub/internal/app/system/auditlog"
	"github.com/dalemusser/tankerhub/internal/app/system/auth"
	"github.com/dalemusser/tankerhub/internal/app/system/backend"
	"github.com/dalemusser/tankerhub/internal/app/system/inputval"
	"github.com/dalemusser/tankerhub/internal/app/system/normalize"
	"github.com/dalemusser/tankerhub/internal/app/system/ratelimit"
	"github.com/dalemusser/tankerhub/internal/app/system/timeouts"
	"github.com/dalemusser/tankerhub/internal/app/system/viewdata"
	"github.com/dalemusser/tankerhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/dalemusser/waffle/pantry/urlutil"
	"go.uber.org/zap"
)

// Tracker opens activity sessions at sign-in.
type Tracker interface {
	Create(ctx context.Context, sess activity.Session) (activity.Session, error)
}

type Handler struct {
	Admins     *adminstore.Store
	SessionMgr *auth.SessionManager
	Activity   Tracker // optional
	Limiter    *ratelimit.LoginLimiter
	ErrLog     *uierrors.ErrorLogger
	AuditLog   *auditlog.Logger
	Log        *zap.Logger
}

func NewHandler(api *backend.Client, sessionMgr *auth.SessionManager, tracker Tracker, errLog *uierrors.ErrorLogger, audit *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{
		Admins:     adminstore.New(api),
		SessionMgr: sessionMgr,
		Activity:   tracker,
		Limiter:    ratelimit.NewLoginLimiter(),
		ErrLog:     errLog,
		AuditLog:   audit,
		Log:        logger,
	}
}

/*─────────────────────────────────────────────────────────────────────────────*
| Template-data                                                               |
*─────────────────────────────────────────────────────────────────────────────*/

type loginFormData struct {
	viewdata.BaseVM
	Error     string
	Email     string
	Role      string
	Roles     []string
	ReturnURL string
}

type loginInput struct {
	Email    string `validate:"required,email" label:"Email"`
	Password string `validate:"required" label:"Password"`
	Role     string `validate:"required,oneof=admin superadmin" label:"Role"`
}

const (
	msgInvalid     = "Invalid email or password."
	msgDisabled    = "This account has been disabled. Contact a superadmin."
	msgUnreachable = "The TankerHub service is not reachable right now. Please try again shortly."
	msgFailed      = "Sign-in failed. Please try again."
)

/*─────────────────────────────────────────────────────────────────────────────*
| GET /login                                                                  |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeLogin(w http.ResponseWriter, r *http.Request) {
	ret := query.Get(r, "return")
	if _, ok := auth.CurrentUser(r); ok {
		http.Redirect(w, r, urlutil.SafeReturn(ret, "", "/dashboard"), http.StatusSeeOther)
		return
	}
	h.render(w, r, loginFormData{Role: models.RoleAdmin, ReturnURL: ret})
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /login                                                                 |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleLoginPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", "/login")
		return
	}

	in := loginInput{
		Email:    normalize.Email(r.FormValue("email")),
		Password: r.FormValue("password"),
		Role:     normalize.Role(r.FormValue("role")),
	}
	if in.Role == "" {
		in.Role = models.RoleAdmin
	}
	form := loginFormData{Email: in.Email, Role: in.Role, ReturnURL: r.FormValue("return")}

	if msg := inputval.Validate(in).First(); msg != "" {
		form.Error = msg
		h.render(w, r, form)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "login")
	defer cancel()

	if ok, msg := h.Limiter.Check(r, in.Email); !ok {
		h.AuditLog.LoginFailed(ctx, r, in.Email, in.Role, "rate limited")
		w.WriteHeader(http.StatusTooManyRequests)
		form.Error = msg
		h.render(w, r, form)
		return
	}

	res, err := h.Admins.Login(ctx, in.Role, in.Email, in.Password)
	if err != nil {
		form.Error = h.loginFailure(ctx, r, in, err)
		h.render(w, r, form)
		return
	}

	if !res.Admin.IsActive() {
		h.AuditLog.LoginFailedDisabled(ctx, r, in.Email, in.Role)
		form.Error = msgDisabled
		h.render(w, r, form)
		return
	}

	u := auth.SessionUser{
		ID:    res.Admin.ID,
		Name:  res.Admin.Name,
		Email: res.Admin.Email,
		Role:  res.Admin.Role,
		Token: res.Token,
	}
	u.ActivityID = h.openActivity(ctx, r, u)

	if err := h.SessionMgr.SignIn(w, r, res.Token, u); err != nil {
		h.ErrLog.LogServerError(w, r, "sign in failed", err, msgFailed, "/login")
		return
	}
	h.Limiter.ResetEmail(in.Email)
	h.AuditLog.LoginSuccess(ctx, r, u)
	h.Log.Info("admin signed in",
		zap.String("admin_id", u.ID),
		zap.String("role", u.Role))

	http.Redirect(w, r, urlutil.SafeReturn(form.ReturnURL, "", "/dashboard"), http.StatusSeeOther)
}

// loginFailure audits a refused sign-in and picks the message shown on
// the form. Credentials problems never reveal which part was wrong.
func (h *Handler) loginFailure(ctx context.Context, r *http.Request, in loginInput, err error) string {
	switch {
	case errors.Is(err, backend.ErrUnavailable):
		h.AuditLog.LoginFailedUnreachable(ctx, r, in.Email, in.Role)
		h.Log.Warn("login: backend unreachable", zap.Error(err))
		return msgUnreachable
	case backend.StatusOf(err) >= 400 && backend.StatusOf(err) < 500:
		h.AuditLog.LoginFailed(ctx, r, in.Email, in.Role, backend.UserMessage(err, "rejected"))
		return msgInvalid
	default:
		h.AuditLog.LoginFailed(ctx, r, in.Email, in.Role, err.Error())
		h.Log.Error("login failed", zap.Error(err), zap.String("role", in.Role))
		return msgFailed
	}
}

// openActivity starts an activity session and returns its id. Tracking
// failures never block a sign-in.
func (h *Handler) openActivity(ctx context.Context, r *http.Request, u auth.SessionUser) string {
	if h.Activity == nil {
		return ""
	}
	sess, err := h.Activity.Create(ctx, activity.Session{
		AdminID:   u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		IP:        r.RemoteAddr,
		UserAgent: r.UserAgent(),
	})
	if err != nil {
		h.Log.Warn("activity session not started", zap.Error(err), zap.String("admin_id", u.ID))
		return ""
	}
	return sess.ID
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, data loginFormData) {
	data.BaseVM = viewdata.NewBaseVM(w, r, "Sign in", "/")
	data.Roles = []string{models.RoleAdmin, models.RoleSuperAdmin}
	templates.Render(w, r, "login", data)
}
