// Package toast carries one-shot feedback messages across the
// post/redirect/get cycle using session flashes.
package toast

import (
	"net/http"
	"strings"

	"github.com/gorilla/sessions"
)

// Kind selects the toast styling.
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
	KindInfo    Kind = "info"
	KindWarning Kind = "warning"
)

// Toast is one message waiting to be shown.
type Toast struct {
	Kind    Kind
	Message string
}

// SessionSource yields the request's session. *auth.SessionManager
// satisfies it.
type SessionSource interface {
	Session(r *http.Request) *sessions.Session
}

var source SessionSource

// Use installs the session source. Until it is called every function in
// this package is a no-op, which keeps handler tests free of cookies.
func Use(s SessionSource) { source = s }

// Add queues a toast for the next rendered page.
func Add(w http.ResponseWriter, r *http.Request, kind Kind, msg string) {
	msg = strings.TrimSpace(msg)
	if source == nil || msg == "" {
		return
	}
	sess := source.Session(r)
	sess.AddFlash(string(kind) + "|" + msg)
	_ = sess.Save(r, w)
}

func Success(w http.ResponseWriter, r *http.Request, msg string) { Add(w, r, KindSuccess, msg) }
func Error(w http.ResponseWriter, r *http.Request, msg string)   { Add(w, r, KindError, msg) }
func Info(w http.ResponseWriter, r *http.Request, msg string)    { Add(w, r, KindInfo, msg) }
func Warning(w http.ResponseWriter, r *http.Request, msg string) { Add(w, r, KindWarning, msg) }

// Pop returns the queued toasts and clears them. It must run before the
// response body is written.
func Pop(w http.ResponseWriter, r *http.Request) []Toast {
	if source == nil {
		return nil
	}
	sess := source.Session(r)
	flashes := sess.Flashes()
	if len(flashes) == 0 {
		return nil
	}
	_ = sess.Save(r, w)

	out := make([]Toast, 0, len(flashes))
	for _, f := range flashes {
		s, ok := f.(string)
		if !ok {
			continue
		}
		kind, msg, found := strings.Cut(s, "|")
		if !found {
			kind, msg = string(KindInfo), s
		}
		out = append(out, Toast{Kind: Kind(kind), Message: msg})
	}
	return out
}
