package service

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel/codes"

	"github.com/MetinovAdik/kopuro-frontend/internal/domain"
	"github.com/MetinovAdik/kopuro-frontend/internal/session"
	"github.com/MetinovAdik/kopuro-frontend/pkg/telemetry"
)

var ErrInvalidTheme = errors.New("theme must be light or dark")

// PreferenceService stores per-session display preferences.
type PreferenceService interface {
	// Theme returns the stored preference, defaulting to light
	Theme(ctx context.Context, sessionID string) (domain.Theme, error)
	// SetTheme stores the preference on the session record
	SetTheme(ctx context.Context, sessionID string, theme domain.Theme) error
}

type preferenceService struct {
	sessions session.Repository
	ttl      time.Duration
}

// NewPreferenceService creates a new PreferenceService
func NewPreferenceService(sessions session.Repository, ttl time.Duration) PreferenceService {
	return &preferenceService{sessions: sessions, ttl: ttl}
}

func (s *preferenceService) Theme(ctx context.Context, sessionID string) (domain.Theme, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.preference.theme")
	defer span.End()

	record, err := s.sessions.GetByID(ctx, sessionID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}

	span.SetStatus(codes.Ok, "")
	if record == nil || record.Theme == "" {
		return domain.ThemeLight, nil
	}
	return record.Theme, nil
}

func (s *preferenceService) SetTheme(ctx context.Context, sessionID string, theme domain.Theme) error {
	ctx, span := telemetry.StartSpan(ctx, "service.preference.set_theme")
	defer span.End()

	if theme != domain.ThemeLight && theme != domain.ThemeDark {
		span.SetStatus(codes.Error, "invalid theme")
		return ErrInvalidTheme
	}

	record, err := s.sessions.GetByID(ctx, sessionID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	now := time.Now()
	if record == nil {
		record = &domain.Session{
			ID:        sessionID,
			CreatedAt: now,
			ExpiresAt: now.Add(s.ttl),
		}
	}
	record.Theme = theme
	record.UpdatedAt = now

	if err := s.sessions.Save(ctx, record); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	span.SetStatus(codes.Ok, "")
	return nil
}
