// ABOUTME: Route guards deciding which screens may render for a session
// ABOUTME: Decisions wait out the initial restore to avoid redirect flicker

package tui

import "github.com/evmarket/evmarket-cli/internal/session"

// Decision is a guard's verdict for the current session snapshot.
type Decision int

const (
	// DecisionWait means the session is still restoring; render a loading
	// affordance and decide on the next snapshot.
	DecisionWait Decision = iota
	// DecisionAllow renders the guarded screen.
	DecisionAllow
	// DecisionRedirect sends the visitor to the screen's alternative.
	DecisionRedirect
)

// PublicOnly guards screens that only make sense for anonymous visitors
// (login, register). Authenticated visitors are redirected home. While the
// session is unknown or loading the guard does not decide, so a logged-in
// user never sees a login flash during restore.
func PublicOnly(snap session.Snapshot) Decision {
	if snap.Loading || snap.State == session.StateUnknown {
		return DecisionWait
	}
	if snap.IsAuthenticated() {
		return DecisionRedirect
	}
	return DecisionAllow
}

// AdminHome reports whether the home screen should hand an admin off to the
// back office. The redirect happens at most once per session so an admin who
// navigates back to home stays there.
func AdminHome(snap session.Snapshot, alreadyRedirected bool) bool {
	if alreadyRedirected {
		return false
	}
	if snap.Loading || snap.State == session.StateUnknown {
		return false
	}
	return snap.IsAdmin()
}
