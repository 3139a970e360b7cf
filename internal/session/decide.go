package session

import "github.com/MetinovAdik/kopuro-frontend/internal/domain"

// Portal routes used by gating decisions.
const (
	RouteHome      = "/"
	RouteLogin     = "/login"
	RouteRegister  = "/register"
	RouteDashboard = "/dashboard"
	RouteAdmin     = "/admin"
)

// Messages surfaced alongside gating redirects.
const (
	MsgLoggedOut     = "You have been logged out."
	MsgLoginRequired = "Please login to access your dashboard."
	MsgNotConfirmed  = "Your account is not active or not confirmed. Please contact an administrator."
)

// publicRoutes never require a session and never receive a logout redirect.
var publicRoutes = map[string]bool{
	RouteHome:     true,
	RouteLogin:    true,
	RouteRegister: true,
}

// IsPublicRoute reports whether a path is on the public allow-list.
func IsPublicRoute(path string) bool {
	return publicRoutes[path]
}

// State is a read-only snapshot of the gate.
type State struct {
	Token   string
	User    *domain.User
	Loading bool
}

// Authenticated is true only when both token and user are present. A token
// alone (profile fetch in flight or failed) does not count.
func (s State) Authenticated() bool {
	return s.Token != "" && s.User != nil
}

// Area identifies a gated part of the portal.
type Area string

const (
	// AreaPublic requires no session at all.
	AreaPublic Area = "public"

	// AreaDashboard is the worker operational dashboard.
	AreaDashboard Area = "dashboard"

	// AreaAdmin is the user administration area.
	AreaAdmin Area = "admin"

	// AreaEmployee admits any logged-in employee, admin or confirmed
	// worker alike (statistics views).
	AreaEmployee Area = "employee"
)

// Decision is the outcome of gating one request. Exactly one of Allow,
// Pending or Redirect applies; ForceLogout asks the caller to tear the
// session down before redirecting.
type Decision struct {
	Allow       bool
	Pending     bool
	Redirect    string
	Message     string
	ForceLogout bool
}

// Decide applies the role/flag gating rules for an area to a gate snapshot.
// While the snapshot is still loading no navigation happens; afterwards the
// visitor is either admitted, sent to the area matching their role, or sent
// to login (logging out first when the account is inactive/unconfirmed).
func Decide(s State, area Area) Decision {
	if area == AreaPublic {
		return Decision{Allow: true}
	}
	if s.Loading {
		return Decision{Pending: true}
	}
	if !s.Authenticated() {
		return Decision{Redirect: RouteLogin, Message: MsgLoginRequired}
	}

	user := s.User
	switch area {
	case AreaAdmin:
		if user.Role == domain.RoleAdmin {
			return Decision{Allow: true}
		}
		if user.CanUseWorkerArea() {
			return Decision{Redirect: RouteDashboard}
		}
	case AreaDashboard:
		if user.CanUseWorkerArea() {
			return Decision{Allow: true}
		}
		if user.Role == domain.RoleAdmin {
			return Decision{Redirect: RouteAdmin}
		}
	case AreaEmployee:
		if user.Role == domain.RoleAdmin || user.CanUseWorkerArea() {
			return Decision{Allow: true}
		}
	}

	return Decision{Redirect: RouteLogin, Message: MsgNotConfirmed, ForceLogout: true}
}
