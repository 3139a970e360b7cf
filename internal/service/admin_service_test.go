package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MetinovAdik/kopuro-frontend/internal/domain"
	"github.com/MetinovAdik/kopuro-frontend/internal/dto"
)

// mockAdminBackend scripts the admin endpoints
type mockAdminBackend struct {
	users       []domain.User
	unconfirmed []domain.User
	usersErr    error
	confirmed   map[int64]bool
}

func (m *mockAdminBackend) Users(ctx context.Context, token string, skip, limit int) ([]domain.User, error) {
	if m.usersErr != nil {
		return nil, m.usersErr
	}
	return m.users, nil
}

func (m *mockAdminBackend) UnconfirmedWorkers(ctx context.Context, token string, skip, limit int) ([]domain.User, error) {
	return m.unconfirmed, nil
}

func (m *mockAdminBackend) ConfirmWorker(ctx context.Context, token string, userID int64) (*domain.User, error) {
	if m.confirmed == nil {
		m.confirmed = make(map[int64]bool)
	}
	m.confirmed[userID] = true
	return &domain.User{ID: userID, IsActive: true, IsConfirmedByAdmin: true, Role: domain.RoleWorker}, nil
}

func TestAdminService_OverviewFetchesBothLists(t *testing.T) {
	backend := &mockAdminBackend{
		users: []domain.User{
			{ID: 1, Email: "admin@kopuro.kg", Role: domain.RoleAdmin},
			{ID: 2, Email: "worker@kopuro.kg", Role: domain.RoleWorker},
		},
		unconfirmed: []domain.User{
			{ID: 3, Email: "new@kopuro.kg", Role: domain.RoleWorker},
		},
	}
	svc := NewAdminService(backend)

	overview, err := svc.Overview(context.Background(), "tok", nil)
	require.NoError(t, err)
	assert.Len(t, overview.Users, 2)
	require.Len(t, overview.UnconfirmedWorkers, 1)
	assert.Equal(t, int64(3), overview.UnconfirmedWorkers[0].ID)
}

func TestAdminService_OverviewPropagatesFailure(t *testing.T) {
	boom := errors.New("upstream down")
	backend := &mockAdminBackend{usersErr: boom}
	svc := NewAdminService(backend)

	overview, err := svc.Overview(context.Background(), "tok", &dto.ListUsersRequest{Limit: 50})
	require.ErrorIs(t, err, boom)
	assert.Nil(t, overview)
}

func TestAdminService_ConfirmWorker(t *testing.T) {
	backend := &mockAdminBackend{}
	svc := NewAdminService(backend)

	result, err := svc.ConfirmWorker(context.Background(), "tok", 42)
	require.NoError(t, err)
	assert.True(t, result.IsConfirmedByAdmin)
	assert.True(t, backend.confirmed[42])
}
