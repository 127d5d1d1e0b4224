package routes

import (
	"sync"

	"github.com/rs/zerolog"

	apperrors "github.com/rentdesk/rentdesk/internal/errors"
)

// AuthState is the slice of the session manager the navigator needs.
type AuthState interface {
	IsAuthenticated() bool
	Subscribe(func(authenticated bool))
}

// Navigator tracks the current route, applies the guard on every move, and
// holds the pending destination captured by a login detour. It also
// implements the pipeline's Redirector so a 401 anywhere lands the operator
// on the login view.
//
// The sequence number increments on every completed navigation. A view
// fetch records the sequence at issue time and drops its result when the
// navigator has moved on; a response for a since-left view never touches
// the current one.
type Navigator struct {
	auth   AuthState
	logger zerolog.Logger

	lock    sync.Mutex
	current string
	pending string
	seq     uint64
	expired bool
}

// NewNavigator creates a navigator starting on the default landing route
// (or its login detour, per the guard). It re-evaluates the guard on every
// auth state change: an invalidation while a protected view is mounted
// redirects immediately rather than leaving stale content visible.
func NewNavigator(auth AuthState, logger zerolog.Logger) *Navigator {
	n := &Navigator{
		auth:   auth,
		logger: logger.With().Str("component", "navigator").Logger(),
	}
	n.apply(Evaluate(auth.IsAuthenticated(), RouteDashboard), RouteDashboard, false)
	auth.Subscribe(n.onAuthChange)
	return n
}

// Go navigates to target, applying the guard. It returns the route actually
// landed on: the target itself, or its login detour with the target captured
// as the pending destination.
func (n *Navigator) Go(target string) (string, error) {
	if !Known(target) {
		return n.Current(), apperrors.Wrapf(apperrors.ErrRouteNotFound, "navigate to %q", target)
	}

	n.lock.Lock()
	defer n.lock.Unlock()
	n.apply(Evaluate(n.auth.IsAuthenticated(), target), target, false)
	return n.current, nil
}

// apply commits a guard decision. Callers other than the constructor hold
// the lock.
func (n *Navigator) apply(decision Decision, target string, expired bool) {
	if decision.Allow {
		n.current = target
	} else {
		n.current = decision.RedirectTo
		n.pending = target
		if expired {
			n.expired = true
		}
		n.logger.Info().Str("from", target).Msg("redirecting to login")
	}
	n.seq++
}

// RedirectToLogin implements the pipeline's Redirector: a 401 cleared the
// session, so move to the login view carrying the interrupted path. A no-op
// when the login view is already showing, which also makes 401 bursts from
// parallel fetches converge on a single detour.
func (n *Navigator) RedirectToLogin(from string) {
	n.lock.Lock()
	defer n.lock.Unlock()

	if basePath(n.current) == RouteLogin {
		return
	}
	if !Known(from) || !IsProtected(from) {
		from = n.current
	}
	n.apply(Decision{RedirectTo: LoginRedirect(from)}, from, true)
}

// LoginSucceeded consumes the pending destination: the first login after a
// detour lands on the interrupted route, later logins land on the default
// landing view. The session-expired notice is cleared either way.
func (n *Navigator) LoginSucceeded() string {
	n.lock.Lock()
	defer n.lock.Unlock()

	target := n.pending
	if target == "" {
		target = RouteDashboard
	}
	n.pending = ""
	n.expired = false
	n.apply(Decision{Allow: true}, target, false)
	return n.current
}

// Current returns the route now showing, including any query.
func (n *Navigator) Current() string {
	n.lock.Lock()
	defer n.lock.Unlock()
	return n.current
}

// Seq returns the current navigation sequence number.
func (n *Navigator) Seq() uint64 {
	n.lock.Lock()
	defer n.lock.Unlock()
	return n.seq
}

// SessionExpired reports whether the current login detour came from an
// invalidated session rather than a plain anonymous visit, so the login
// view can show a "session expired, please sign in again" notice.
func (n *Navigator) SessionExpired() bool {
	n.lock.Lock()
	defer n.lock.Unlock()
	return n.expired
}

// onAuthChange re-runs the guard for the mounted route whenever the session
// manager reports a transition.
func (n *Navigator) onAuthChange(authenticated bool) {
	n.lock.Lock()
	defer n.lock.Unlock()

	if !authenticated && IsProtected(n.current) {
		target := n.current
		n.apply(Evaluate(false, target), target, false)
	}
}
