package routes

import "net/url"

// Decision is the guard's answer for one navigation attempt.
type Decision struct {
	// Allow means the target may render.
	Allow bool
	// RedirectTo is the login detour, set when Allow is false. It carries
	// the attempted target in its from parameter.
	RedirectTo string
}

// Evaluate is the route guard: a pure function of the derived auth state and
// the requested path. An anonymous visit to a protected path is redirected
// to login with the target (path plus query) captured for replay; everything
// else renders.
func Evaluate(authenticated bool, target string) Decision {
	if authenticated || !IsProtected(target) {
		return Decision{Allow: true}
	}
	return Decision{RedirectTo: LoginRedirect(target)}
}

// LoginRedirect builds the login detour URL for an attempted target.
func LoginRedirect(from string) string {
	return RouteLogin + "?from=" + url.QueryEscape(from)
}

// PendingFromRedirect extracts the captured destination from a login detour
// URL. Anything that is not a known protected console route (a foreign URL,
// the login view itself, a malformed encoding) is rejected so navigation
// stays inside the console.
func PendingFromRedirect(redirect string) (string, bool) {
	parsed, err := url.Parse(redirect)
	if err != nil {
		return "", false
	}
	from := parsed.Query().Get("from")
	if from == "" {
		return "", false
	}
	if !Known(from) || !IsProtected(from) {
		return "", false
	}
	return from, true
}
