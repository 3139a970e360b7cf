package session

import (
	"context"
	"time"

	"github.com/MetinovAdik/kopuro-frontend/internal/domain"
)

// repositoryTokenStore binds a TokenStore to one session record. Clearing
// the token keeps the record alive so the theme preference survives logout.
type repositoryTokenStore struct {
	repo Repository
	id   string
	ttl  time.Duration
}

// NewTokenStore returns a TokenStore reading and writing the session record
// identified by sessionID.
func NewTokenStore(repo Repository, sessionID string, ttl time.Duration) TokenStore {
	return &repositoryTokenStore{repo: repo, id: sessionID, ttl: ttl}
}

func (s *repositoryTokenStore) Token(ctx context.Context) (string, error) {
	record, err := s.repo.GetByID(ctx, s.id)
	if err != nil {
		return "", err
	}
	if record == nil || record.Expired(time.Now()) {
		return "", nil
	}
	return record.Token, nil
}

func (s *repositoryTokenStore) SaveToken(ctx context.Context, token string) error {
	now := time.Now()

	record, err := s.repo.GetByID(ctx, s.id)
	if err != nil {
		return err
	}
	if record == nil {
		record = &domain.Session{ID: s.id, CreatedAt: now}
	}

	record.Token = token
	record.UpdatedAt = now
	record.ExpiresAt = now.Add(s.ttl)
	return s.repo.Save(ctx, record)
}

func (s *repositoryTokenStore) ClearToken(ctx context.Context) error {
	record, err := s.repo.GetByID(ctx, s.id)
	if err != nil {
		return err
	}
	if record == nil {
		return nil
	}

	record.Token = ""
	record.UpdatedAt = time.Now()
	return s.repo.Save(ctx, record)
}
