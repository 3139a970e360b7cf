package session

import (
	"context"

	"github.com/MetinovAdik/kopuro-frontend/internal/domain"
)

// Repository stores server-side session records.
// Implementations return (nil, nil) when a session does not exist.
type Repository interface {
	GetByID(ctx context.Context, id string) (*domain.Session, error)
	Save(ctx context.Context, session *domain.Session) error
	Delete(ctx context.Context, id string) error
}
