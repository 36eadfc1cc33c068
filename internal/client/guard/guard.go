// Package guard decides whether protected functionality may be shown for
// a given session status. The decision is a pure function of status, so
// re-evaluating after every transition is cheap.
package guard

import "github.com/dverbis/itemkeeper/internal/client/session"

// Decision is what the caller should do with a protected surface.
type Decision int

const (
	// ShowLoading: resolution is still in flight; show neither the
	// protected content nor the login flow.
	ShowLoading Decision = iota
	// RedirectToLogin: the session resolved anonymous.
	RedirectToLogin
	// RenderProtected: the session is authenticated.
	RenderProtected
)

func (d Decision) String() string {
	switch d {
	case ShowLoading:
		return "loading"
	case RedirectToLogin:
		return "redirect_to_login"
	case RenderProtected:
		return "render_protected"
	default:
		return "unknown"
	}
}

// Decide maps a session status to the action for protected surfaces.
// Unresolved never leaks protected content and never bounces to login.
func Decide(status session.Status) Decision {
	switch status {
	case session.StatusAuthenticated:
		return RenderProtected
	case session.StatusAnonymous:
		return RedirectToLogin
	default:
		return ShowLoading
	}
}
