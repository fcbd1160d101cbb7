package auth

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dalemusser/tankerhub/internal/app/system/backend"
	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

/*─────────────────────────────────────────────────────────────────────────────*
| Cookie & session constants                                                 |
*─────────────────────────────────────────────────────────────────────────────*/

const (
	// AdminTokenCookie carries the backend token of an admin.
	AdminTokenCookie = "admin_token"
	// AccessTokenCookie carries the token of a superadmin, and of sessions
	// created by older dashboard builds.
	AccessTokenCookie = "access_token"

	RoleAdmin      = "admin"
	RoleSuperAdmin = "superadmin"

	userIDKey     = "user_id"
	userNameKey   = "user_name"
	userEmailKey  = "user_email"
	userRoleKey   = "user_role"
	activityIDKey = "activity_id"
)

/*─────────────────────────────────────────────────────────────────────────────*
| Current-User helper                                                        |
*─────────────────────────────────────────────────────────────────────────────*/

// SessionUser is what we cache in the session & inject into r.Context().
// Token is never stored in the session; it is read from its cookie on
// every request.
type SessionUser struct {
	ID         string
	Name       string
	Email      string
	Role       string
	Token      string
	ActivityID string
}

// IsSuperAdmin reports whether the user manages other admins.
func (u *SessionUser) IsSuperAdmin() bool {
	return strings.EqualFold(u.Role, RoleSuperAdmin)
}

// DisplayName falls back to the email, then to the role, when the
// profile has no name.
func (u *SessionUser) DisplayName() string {
	switch {
	case u.Name != "":
		return u.Name
	case u.Email != "":
		return u.Email
	}
	return u.Role
}

type ctxKey string

const currentUserKey ctxKey = "currentUser"

// CurrentUser returns the user & “found?” flag.
func CurrentUser(r *http.Request) (*SessionUser, bool) {
	u, ok := r.Context().Value(currentUserKey).(*SessionUser)
	return u, ok
}

// WithTestUser injects u into the request context the same way
// LoadSessionUser does. Intended for handler tests.
func WithTestUser(r *http.Request, u *SessionUser) *http.Request {
	return withUser(r, u)
}

/*─────────────────────────────────────────────────────────────────────────────*
| SessionManager                                                             |
*─────────────────────────────────────────────────────────────────────────────*/

// SessionManager owns the signed profile session and the token cookies.
type SessionManager struct {
	store  *sessions.CookieStore
	name   string
	domain string
	secure bool
	maxAge time.Duration
	log    *zap.Logger
}

// NewSessionManager builds the cookie store. secure marks cookies Secure
// (production over HTTPS); maxAge bounds both the session and the token
// cookies.
func NewSessionManager(sessionKey, name, domain string, maxAge time.Duration, secure bool, logger *zap.Logger) (*SessionManager, error) {
	if sessionKey == "" {
		return nil, errors.New("session key is empty; provide ≥32 random chars")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if len(sessionKey) < 32 {
		logger.Warn("session key is short; 32+ chars recommended",
			zap.Int("length", len(sessionKey)))
	}
	if name == "" {
		name = "tankerhub-session"
	}
	if maxAge <= 0 {
		maxAge = 24 * time.Hour
	}

	store := sessions.NewCookieStore([]byte(sessionKey))
	store.Options = &sessions.Options{
		Domain:   domain,
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		Secure:   secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}

	return &SessionManager{
		store:  store,
		name:   name,
		domain: domain,
		secure: secure,
		maxAge: maxAge,
		log:    logger,
	}, nil
}

// Session returns the dashboard session for r. Decode errors (rotated
// key, tampered cookie) yield a fresh session.
func (sm *SessionManager) Session(r *http.Request) *sessions.Session {
	sess, err := sm.store.Get(r, sm.name)
	if err != nil {
		var scErr securecookie.Error
		if errors.As(err, &scErr) && scErr.IsDecode() {
			sm.log.Debug("session decode failed; starting fresh", zap.Error(err))
		} else {
			sm.log.Warn("session store error; starting fresh", zap.Error(err))
		}
	}
	return sess
}

// TokenFromRequest returns the backend token carried by the admin or
// legacy cookie.
func TokenFromRequest(r *http.Request) string {
	for _, name := range []string{AdminTokenCookie, AccessTokenCookie} {
		if c, err := r.Cookie(name); err == nil && strings.TrimSpace(c.Value) != "" {
			return strings.TrimSpace(c.Value)
		}
	}
	return ""
}

// LoadSessionUser injects the user into context when a token cookie is
// present. Presence of the cookie is the whole check: the backend decides
// whether the token is still good. Profile fields come from the signed
// session written by SignIn. Without one the user is a plain admin: the
// cookie name never grants a role.
// The token is also placed on the context for backend calls.
func (sm *SessionManager) LoadSessionUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := TokenFromRequest(r)
		if token == "" {
			next.ServeHTTP(w, r)
			return
		}

		sess := sm.Session(r)
		u := &SessionUser{
			ID:         getString(sess, userIDKey),
			Name:       getString(sess, userNameKey),
			Email:      getString(sess, userEmailKey),
			Role:       strings.ToLower(getString(sess, userRoleKey)),
			Token:      token,
			ActivityID: getString(sess, activityIDKey),
		}
		if u.Role == "" {
			u.Role = RoleAdmin
		}
		next.ServeHTTP(w, withUser(r, u))
	})
}

// RequireSignedIn ensures there is a user in context (set by LoadSessionUser).
// If not signed in:
//   - HTMX: sends HX-Redirect to /login?return=...
//   - HTML: 303 redirect to /login?return=...
//   - API:  401 Unauthorized with a plain error body.
func (sm *SessionManager) RequireSignedIn(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := CurrentUser(r); ok {
			next.ServeHTTP(w, r)
			return
		}
		denyUnauthenticated(w, r)
	})
}

// RequireRole ensures the signed-in user holds one of allowed. A
// superadmin satisfies a requirement for admin.
func (sm *SessionManager) RequireRole(allowed ...string) func(http.Handler) http.Handler {
	set := make(map[string]struct{}, len(allowed))
	for _, role := range allowed {
		set[strings.ToLower(strings.TrimSpace(role))] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, ok := CurrentUser(r)
			if !ok {
				denyUnauthenticated(w, r)
				return
			}
			if !roleAllowed(set, u.Role) {
				denyForbidden(w, r)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func roleAllowed(set map[string]struct{}, role string) bool {
	role = strings.ToLower(role)
	if _, ok := set[role]; ok {
		return true
	}
	if role == RoleSuperAdmin {
		_, ok := set[RoleAdmin]
		return ok
	}
	return false
}

// SignIn stores the token cookie for u.Role and the profile session.
func (sm *SessionManager) SignIn(w http.ResponseWriter, r *http.Request, token string, u SessionUser) error {
	if strings.TrimSpace(token) == "" {
		return errors.New("sign in: empty token")
	}
	role := strings.ToLower(u.Role)
	if role == "" {
		role = RoleAdmin
	}

	keep, drop := AdminTokenCookie, AccessTokenCookie
	if role == RoleSuperAdmin {
		keep, drop = AccessTokenCookie, AdminTokenCookie
	}
	http.SetCookie(w, sm.tokenCookie(keep, token, int(sm.maxAge.Seconds())))
	http.SetCookie(w, sm.tokenCookie(drop, "", -1))

	sess := sm.Session(r)
	sess.Values[userIDKey] = u.ID
	sess.Values[userNameKey] = u.Name
	sess.Values[userEmailKey] = u.Email
	sess.Values[userRoleKey] = role
	sess.Values[activityIDKey] = u.ActivityID
	return sess.Save(r, w)
}

// SignOut expires both token cookies and the profile session.
func (sm *SessionManager) SignOut(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, sm.tokenCookie(AdminTokenCookie, "", -1))
	http.SetCookie(w, sm.tokenCookie(AccessTokenCookie, "", -1))

	sess := sm.Session(r)
	for k := range sess.Values {
		delete(sess.Values, k)
	}
	sess.Options.MaxAge = -1
	if err := sess.Save(r, w); err != nil {
		sm.log.Warn("sign out: session save failed", zap.Error(err))
	}
}

func (sm *SessionManager) tokenCookie(name, value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Domain:   sm.domain,
		MaxAge:   maxAge,
		Secure:   sm.secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

// helpers

func withUser(r *http.Request, u *SessionUser) *http.Request {
	ctx := context.WithValue(r.Context(), currentUserKey, u)
	if u != nil && u.Token != "" {
		ctx = backend.WithToken(ctx, u.Token)
	}
	return r.WithContext(ctx)
}

// getString safely extracts a string from a session value.
func getString(s *sessions.Session, key string) string {
	if v, ok := s.Values[key].(string); ok {
		return v
	}
	return ""
}

func denyUnauthenticated(w http.ResponseWriter, r *http.Request) {
	ret := url.QueryEscape(currentURI(r))

	// HTMX: full-page client redirect (no partial swap)
	if r.Header.Get("HX-Request") == "true" {
		w.Header().Set("HX-Redirect", "/login?return="+ret)
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	if wantsHTML(r) {
		http.Redirect(w, r, "/login?return="+ret, http.StatusSeeOther)
		return
	}
	http.Error(w, "unauthorized", http.StatusUnauthorized)
}

func denyForbidden(w http.ResponseWriter, r *http.Request) {
	if r.Header.Get("HX-Request") == "true" {
		w.Header().Set("HX-Redirect", "/forbidden")
		w.WriteHeader(http.StatusForbidden)
		return
	}
	if wantsHTML(r) {
		http.Redirect(w, r, "/forbidden", http.StatusSeeOther)
		return
	}
	http.Error(w, "forbidden", http.StatusForbidden)
}

func wantsHTML(r *http.Request) bool {
	// Very light heuristic: treat it as HTML if it's HTMX or Accepts text/html.
	if r.Header.Get("HX-Request") == "true" {
		return true
	}
	return strings.Contains(r.Header.Get("Accept"), "text/html")
}

func currentURI(r *http.Request) string {
	u := *r.URL
	return u.RequestURI()
}
