// Package nav implements the console's role-gated navigation contract: a
// declarative route table plus a pure decision function evaluated before any
// page handler or data fetch runs.
package nav

import (
	"github.com/cajimenez96/gym-console/internal/models"
	"github.com/cajimenez96/gym-console/internal/session"
)

// LoginRoute is where unauthenticated navigation is sent. The originally
// requested path travels along in the redirect query so login can return
// there.
const LoginRoute = "/login"

// RedirectParam is the query parameter carrying the post-login destination.
const RedirectParam = "redirect"

// DecisionKind classifies a guard verdict.
type DecisionKind int

const (
	// Allow lets navigation proceed.
	Allow DecisionKind = iota
	// RedirectLogin sends the visitor to the login route, preserving the
	// requested path.
	RedirectLogin
	// Redirect sends an authenticated visitor to the role's default page.
	Redirect
	// Wait means session state has not settled; deciding now would act on
	// indeterminate state.
	Wait
)

// Decision is the guard verdict for one navigation attempt.
type Decision struct {
	Kind     DecisionKind
	Location string
}

// Route declares one guarded console route.
type Route struct {
	Path  string
	Roles []string
}

// Table is the console route table, mirroring the sidebar access rules:
// members and check-in are shared, everything touching money or plans is
// owner-only.
var Table = []Route{
	{Path: "/members", Roles: []string{models.RoleOwner, models.RoleAdmin}},
	{Path: "/check-in", Roles: []string{models.RoleOwner, models.RoleAdmin}},
	{Path: "/register", Roles: []string{models.RoleOwner}},
	{Path: "/membership-plans", Roles: []string{models.RoleOwner}},
	{Path: "/payment", Roles: []string{models.RoleOwner}},
	{Path: "/payment-history", Roles: []string{models.RoleOwner}},
	{Path: "/dashboard/owner", Roles: []string{models.RoleOwner}},
}

// DefaultPage is the landing page for a role, used both after login and when
// a role is turned away from a restricted route. Admins live at the check-in
// desk; owners start at the member list.
func DefaultPage(role string) string {
	if role == models.RoleAdmin {
		return "/check-in"
	}
	return "/members"
}

// Find returns the route declaration for path, or nil for unguarded paths.
func Find(path string) *Route {
	for i := range Table {
		if Table[i].Path == path {
			return &Table[i]
		}
	}
	return nil
}

// Evaluate decides one navigation attempt. It must be called with state read
// from the session manager at evaluation time, never a captured copy.
func Evaluate(path string, state session.State, role string) Decision {
	route := Find(path)
	if route == nil {
		return Decision{Kind: Allow}
	}

	if !state.Settled() {
		return Decision{Kind: Wait}
	}

	if state != session.StateAuthenticated {
		return Decision{Kind: RedirectLogin, Location: LoginRoute}
	}

	for _, allowed := range route.Roles {
		if role == allowed {
			return Decision{Kind: Allow}
		}
	}
	return Decision{Kind: Redirect, Location: DefaultPage(role)}
}
