// internal/app/system/viewdata/viewdata.go
package viewdata

import (
	"html/template"
	"net/http"

	"github.com/dalemusser/tankerhub/internal/app/system/auth"
	"github.com/dalemusser/tankerhub/internal/app/system/authz"
	"github.com/dalemusser/tankerhub/internal/app/system/navigation"
	"github.com/dalemusser/tankerhub/internal/app/system/toast"
	"github.com/dalemusser/waffle/pantry/httpnav"
	"github.com/gorilla/csrf"
)

// DefaultSiteName is shown in the header and page titles.
const DefaultSiteName = "TankerHub"

// BaseVM contains common fields for all view models.
// Embed this struct in your feature-specific view models.
//
// Usage:
//
//	type listData struct {
//	    viewdata.BaseVM
//	    // page-specific fields...
//	}
//
//	data := listData{
//	    BaseVM: viewdata.NewBaseVM(w, r, "Bookings", "/dashboard"),
//	}
type BaseVM struct {
	SiteName string

	// User context (from auth middleware)
	IsLoggedIn   bool
	Role         string
	UserName     string
	UserID       string
	IsSuperAdmin bool

	// Page context
	Title       string
	BackURL     string
	CurrentPath string
	Nav         []navigation.Item

	// CSRF protection
	CSRFToken string
	CSRFField template.HTML

	// Flash messages queued by the previous request
	Toasts []toast.Toast
}

var siteName = DefaultSiteName

// SetSiteName overrides the site name (from report_company_name).
// Call this once at startup from bootstrap.
func SetSiteName(name string) {
	if name != "" {
		siteName = name
	}
}

// NewBaseVM creates a fully populated BaseVM for a page. It pops pending
// toasts, so it must be called before the response body is written.
func NewBaseVM(w http.ResponseWriter, r *http.Request, title, backDefault string) BaseVM {
	role, name, id, signedIn := authz.UserCtx(r)
	isSuper := false
	if u, ok := auth.CurrentUser(r); ok {
		isSuper = u.IsSuperAdmin()
	}
	current := httpnav.CurrentPath(r)

	vm := BaseVM{
		SiteName:     siteName,
		IsLoggedIn:   signedIn,
		Role:         role,
		UserName:     name,
		UserID:       id,
		IsSuperAdmin: isSuper,
		Title:        title,
		BackURL:      httpnav.ResolveBackURL(r, backDefault),
		CurrentPath:  current,
		CSRFToken:    csrf.Token(r),
		CSRFField:    csrf.TemplateField(r),
		Toasts:       toast.Pop(w, r),
	}
	if signedIn {
		vm.Nav = navigation.Menu(current, isSuper)
	}
	return vm
}
