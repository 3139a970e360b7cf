package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/MetinovAdik/kopuro-frontend/internal/domain"
)

// PostgresRepository stores session records in the sessions table. Useful
// when the portal runs without Redis.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a PostgreSQL-backed session repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// GetByID returns the session with the given id, or (nil, nil) when missing.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*domain.Session, error) {
	query := `
		SELECT id, token, theme, created_at, updated_at, expires_at
		FROM sessions
		WHERE id = $1
	`

	var session domain.Session
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&session.ID,
		&session.Token,
		&session.Theme,
		&session.CreatedAt,
		&session.UpdatedAt,
		&session.ExpiresAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	return &session, nil
}

// Save upserts the session record.
func (r *PostgresRepository) Save(ctx context.Context, session *domain.Session) error {
	query := `
		INSERT INTO sessions (id, token, theme, created_at, updated_at, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			token = EXCLUDED.token,
			theme = EXCLUDED.theme,
			updated_at = EXCLUDED.updated_at,
			expires_at = EXCLUDED.expires_at
	`

	_, err := r.pool.Exec(ctx, query,
		session.ID,
		session.Token,
		session.Theme,
		session.CreatedAt,
		session.UpdatedAt,
		session.ExpiresAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// Delete removes the session. Deleting a missing session is not an error.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM sessions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// DeleteExpired removes sessions past their expiry and returns the number
// removed.
func (r *PostgresRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM sessions WHERE expires_at < $1`, now)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired sessions: %w", err)
	}
	return tag.RowsAffected(), nil
}
