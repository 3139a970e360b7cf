package session

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MetinovAdik/kopuro-frontend/internal/domain"
)

func adminUser() *domain.User {
	return &domain.User{ID: 1, Email: "admin@kopuro.kg", IsActive: true, Role: domain.RoleAdmin}
}

func confirmedWorker() *domain.User {
	return &domain.User{ID: 2, Email: "worker@kopuro.kg", IsActive: true, IsConfirmedByAdmin: true, Role: domain.RoleWorker}
}

func unconfirmedWorker() *domain.User {
	return &domain.User{ID: 3, Email: "new@kopuro.kg", IsActive: true, Role: domain.RoleWorker}
}

func TestState_Authenticated(t *testing.T) {
	assert.False(t, State{}.Authenticated())
	assert.False(t, State{Token: "tok"}.Authenticated(), "token alone is not authenticated")
	assert.False(t, State{User: adminUser()}.Authenticated())
	assert.True(t, State{Token: "tok", User: adminUser()}.Authenticated())
}

func TestDecide_PublicAreaAlwaysAllowed(t *testing.T) {
	assert.True(t, Decide(State{}, AreaPublic).Allow)
	assert.True(t, Decide(State{Loading: true}, AreaPublic).Allow)
	assert.True(t, Decide(State{Token: "tok", User: adminUser()}, AreaPublic).Allow)
}

func TestDecide_LoadingIsPending(t *testing.T) {
	decision := Decide(State{Loading: true}, AreaDashboard)
	assert.True(t, decision.Pending)
	assert.False(t, decision.Allow)
	assert.Empty(t, decision.Redirect, "no navigation while loading")
}

func TestDecide_UnauthenticatedRedirectsToLogin(t *testing.T) {
	for _, area := range []Area{AreaDashboard, AreaAdmin, AreaEmployee} {
		decision := Decide(State{}, area)
		assert.Equal(t, RouteLogin, decision.Redirect, "area %s", area)
		assert.Equal(t, MsgLoginRequired, decision.Message)
		assert.False(t, decision.ForceLogout)
	}
}

func TestDecide_Dashboard(t *testing.T) {
	worker := State{Token: "t", User: confirmedWorker()}
	assert.True(t, Decide(worker, AreaDashboard).Allow)

	admin := State{Token: "t", User: adminUser()}
	decision := Decide(admin, AreaDashboard)
	assert.False(t, decision.Allow)
	assert.Equal(t, RouteAdmin, decision.Redirect, "admins belong in the admin area")
	assert.False(t, decision.ForceLogout)

	pending := State{Token: "t", User: unconfirmedWorker()}
	decision = Decide(pending, AreaDashboard)
	assert.False(t, decision.Allow)
	assert.Equal(t, RouteLogin, decision.Redirect)
	assert.Equal(t, MsgNotConfirmed, decision.Message)
	assert.True(t, decision.ForceLogout)
}

func TestDecide_Admin(t *testing.T) {
	admin := State{Token: "t", User: adminUser()}
	assert.True(t, Decide(admin, AreaAdmin).Allow)

	worker := State{Token: "t", User: confirmedWorker()}
	decision := Decide(worker, AreaAdmin)
	assert.False(t, decision.Allow)
	assert.Equal(t, RouteDashboard, decision.Redirect)

	pending := State{Token: "t", User: unconfirmedWorker()}
	decision = Decide(pending, AreaAdmin)
	assert.True(t, decision.ForceLogout)
	assert.Equal(t, RouteLogin, decision.Redirect)
}

func TestDecide_EmployeeArea(t *testing.T) {
	assert.True(t, Decide(State{Token: "t", User: adminUser()}, AreaEmployee).Allow)
	assert.True(t, Decide(State{Token: "t", User: confirmedWorker()}, AreaEmployee).Allow)

	decision := Decide(State{Token: "t", User: unconfirmedWorker()}, AreaEmployee)
	assert.False(t, decision.Allow)
	assert.True(t, decision.ForceLogout)
}

func TestIsPublicRoute(t *testing.T) {
	assert.True(t, IsPublicRoute(RouteHome))
	assert.True(t, IsPublicRoute(RouteLogin))
	assert.True(t, IsPublicRoute(RouteRegister))
	assert.False(t, IsPublicRoute(RouteDashboard))
	assert.False(t, IsPublicRoute(RouteAdmin))
	assert.False(t, IsPublicRoute("/track"))
}
