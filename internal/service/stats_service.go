package service

import (
	"context"

	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"

	"github.com/MetinovAdik/kopuro-frontend/internal/dto"
	"github.com/MetinovAdik/kopuro-frontend/internal/upstream"
	"github.com/MetinovAdik/kopuro-frontend/pkg/telemetry"
)

// StatsBackend is the slice of the backend client used by StatsService.
type StatsBackend interface {
	Overall(ctx context.Context, token string) (*upstream.OverallStats, error)
	Timeline(ctx context.Context, token, groupByPeriod string) ([]upstream.TimelinePoint, error)
	TopAddresses(ctx context.Context, token string, limit int) ([]upstream.AddressStat, error)
}

// StatsConfig tunes the statistics overview.
type StatsConfig struct {
	TopAddressesLimit int
	GroupByPeriod     string
}

// StatsService aggregates the dashboard statistics feeds.
type StatsService interface {
	// Overview fetches the three statistics feeds concurrently. The calls
	// share one cancellation scope: the first failure (or the caller's
	// cancellation) aborts the rest, and no partial result is returned.
	Overview(ctx context.Context, token string) (*dto.StatsOverview, error)
}

type statsService struct {
	backend StatsBackend
	config  StatsConfig
}

// NewStatsService creates a new StatsService
func NewStatsService(backend StatsBackend, config StatsConfig) StatsService {
	if config.TopAddressesLimit <= 0 {
		config.TopAddressesLimit = 5
	}
	if config.GroupByPeriod == "" {
		config.GroupByPeriod = "day"
	}
	return &statsService{backend: backend, config: config}
}

func (s *statsService) Overview(ctx context.Context, token string) (*dto.StatsOverview, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.stats.overview")
	defer span.End()

	overview := &dto.StatsOverview{}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		overall, err := s.backend.Overall(gctx, token)
		if err != nil {
			return err
		}
		overview.Overall = overall
		return nil
	})
	g.Go(func() error {
		points, err := s.backend.Timeline(gctx, token, s.config.GroupByPeriod)
		if err != nil {
			return err
		}
		overview.Timeline = points
		return nil
	})
	g.Go(func() error {
		addresses, err := s.backend.TopAddresses(gctx, token, s.config.TopAddressesLimit)
		if err != nil {
			return err
		}
		overview.TopAddresses = addresses
		return nil
	})

	if err := g.Wait(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	// a cancelled caller gets no partial batch even if all three settled
	if err := ctx.Err(); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetStatus(codes.Ok, "")
	return overview, nil
}
