// Package guard gates rendering of protected UI subtrees on the client
// side of the catalog site. It mirrors the server enforcement model but
// consumes already-fetched auth state: it makes no network calls and holds
// the three-state session machine the identity listener drives.
package guard

import (
	"sync"

	"github.com/eduquip/catalog-backend/internal/auth"
	"github.com/eduquip/catalog-backend/internal/rbac"
)

// State of the session as reported by the identity provider's listener.
type State int

const (
	// StateLoading means the identity check is still in flight. No
	// authorization decision may be made yet; callers render a neutral
	// loading indicator, never a premature allow or deny.
	StateLoading State = iota
	StateUnauthenticated
	StateAuthenticated
)

// The only two denial reasons this component surfaces. Everything else a UI
// shows around them is cosmetic.
const (
	ReasonAuthRequired            = "authentication required"
	ReasonInsufficientPermissions = "insufficient permissions"
)

// Requirement describes what a protected subtree demands: the coarse admin
// gate, a specific permission, or both. The admin gate is evaluated first.
type Requirement struct {
	RequireAdmin bool
	Permission   rbac.Permission
}

type OutcomeKind int

const (
	OutcomeLoading OutcomeKind = iota
	OutcomeRedirect
	OutcomeDenied
	OutcomeAllowed
)

// Outcome is the rendering decision for one evaluation.
type Outcome struct {
	Kind           OutcomeKind
	RedirectTarget string // set only for OutcomeRedirect
	Reason         string // set only for OutcomeDenied
}

// Guard is the client-side enforcement point. The identity listener calls
// SetAuthState as the session resolves; render passes call Evaluate. Both
// may run on different goroutines.
type Guard struct {
	mu         sync.Mutex
	state      State
	principal  *auth.Principal
	redirectTo string
	redirected bool
}

// New returns a Guard in StateLoading. redirectTo, when non-empty, is where
// an unauthenticated session is sent; it is reported exactly once per
// unauthenticated transition so re-renders cannot trigger navigation loops.
func New(redirectTo string) *Guard {
	return &Guard{state: StateLoading, redirectTo: redirectTo}
}

// SetAuthState records the listener's latest callback. A nil principal
// means no session. Re-delivering the same unauthenticated state is a
// no-op; only a fresh transition re-arms the one-shot redirect.
func (g *Guard) SetAuthState(principal *auth.Principal) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if principal == nil {
		if g.state != StateUnauthenticated {
			g.state = StateUnauthenticated
			g.principal = nil
			g.redirected = false
		}
		return
	}

	g.state = StateAuthenticated
	g.principal = principal
}

// State returns the current session state.
func (g *Guard) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// Evaluate decides how to render a subtree with the given requirement.
// While loading it always returns OutcomeLoading. When unauthenticated it
// returns OutcomeRedirect once (if a target is configured) and a denied
// outcome thereafter. When authenticated, the admin gate runs first, then
// the permission gate; the first failing check short-circuits.
func (g *Guard) Evaluate(req Requirement) Outcome {
	g.mu.Lock()
	defer g.mu.Unlock()

	switch g.state {
	case StateLoading:
		return Outcome{Kind: OutcomeLoading}

	case StateUnauthenticated:
		if g.redirectTo != "" && !g.redirected {
			g.redirected = true
			return Outcome{Kind: OutcomeRedirect, RedirectTarget: g.redirectTo}
		}
		return Outcome{Kind: OutcomeDenied, Reason: ReasonAuthRequired}
	}

	if req.RequireAdmin && !rbac.CanAccessAdminArea(g.principal.Role) {
		return Outcome{Kind: OutcomeDenied, Reason: ReasonInsufficientPermissions}
	}

	if req.Permission != "" && !rbac.HasPermission(g.principal.Permissions, req.Permission) {
		return Outcome{Kind: OutcomeDenied, Reason: ReasonInsufficientPermissions}
	}

	return Outcome{Kind: OutcomeAllowed}
}
