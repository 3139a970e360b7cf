package service

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MetinovAdik/kopuro-frontend/internal/upstream"
)

// mockStatsBackend lets each feed be scripted per test
type mockStatsBackend struct {
	overall      func(ctx context.Context, token string) (*upstream.OverallStats, error)
	timeline     func(ctx context.Context, token, period string) ([]upstream.TimelinePoint, error)
	topAddresses func(ctx context.Context, token string, limit int) ([]upstream.AddressStat, error)
}

func (m *mockStatsBackend) Overall(ctx context.Context, token string) (*upstream.OverallStats, error) {
	return m.overall(ctx, token)
}

func (m *mockStatsBackend) Timeline(ctx context.Context, token, period string) ([]upstream.TimelinePoint, error) {
	return m.timeline(ctx, token, period)
}

func (m *mockStatsBackend) TopAddresses(ctx context.Context, token string, limit int) ([]upstream.AddressStat, error) {
	return m.topAddresses(ctx, token, limit)
}

func TestStatsService_OverviewAggregatesAllFeeds(t *testing.T) {
	backend := &mockStatsBackend{
		overall: func(ctx context.Context, token string) (*upstream.OverallStats, error) {
			assert.Equal(t, "tok", token)
			return &upstream.OverallStats{TotalIssues: 42}, nil
		},
		timeline: func(ctx context.Context, token, period string) ([]upstream.TimelinePoint, error) {
			assert.Equal(t, "day", period)
			return []upstream.TimelinePoint{{Period: "2026-08-30", Count: 7}}, nil
		},
		topAddresses: func(ctx context.Context, token string, limit int) ([]upstream.AddressStat, error) {
			assert.Equal(t, 5, limit)
			return []upstream.AddressStat{{AddressText: "ул. Манаса 12", Count: 3}}, nil
		},
	}

	svc := NewStatsService(backend, StatsConfig{})
	overview, err := svc.Overview(context.Background(), "tok")
	require.NoError(t, err)
	require.NotNil(t, overview.Overall)
	assert.Equal(t, int64(42), overview.Overall.TotalIssues)
	assert.Len(t, overview.Timeline, 1)
	assert.Len(t, overview.TopAddresses, 1)
}

func TestStatsService_OneFailureCancelsTheBatch(t *testing.T) {
	var timelineCancelled atomic.Bool
	boom := errors.New("overall feed down")

	backend := &mockStatsBackend{
		overall: func(ctx context.Context, token string) (*upstream.OverallStats, error) {
			return nil, boom
		},
		timeline: func(ctx context.Context, token, period string) ([]upstream.TimelinePoint, error) {
			select {
			case <-ctx.Done():
				timelineCancelled.Store(true)
				return nil, ctx.Err()
			case <-time.After(2 * time.Second):
				return []upstream.TimelinePoint{}, nil
			}
		},
		topAddresses: func(ctx context.Context, token string, limit int) ([]upstream.AddressStat, error) {
			return []upstream.AddressStat{}, nil
		},
	}

	svc := NewStatsService(backend, StatsConfig{})
	overview, err := svc.Overview(context.Background(), "tok")
	require.ErrorIs(t, err, boom)
	assert.Nil(t, overview, "no partial batch escapes on failure")
	assert.True(t, timelineCancelled.Load(), "sibling fetch must observe cancellation")
}

func TestStatsService_CallerCancellationSuppressesResults(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	backend := &mockStatsBackend{
		overall: func(ctx context.Context, token string) (*upstream.OverallStats, error) {
			cancel() // consumer goes away mid-flight
			return &upstream.OverallStats{TotalIssues: 42}, nil
		},
		timeline: func(ctx context.Context, token, period string) ([]upstream.TimelinePoint, error) {
			return []upstream.TimelinePoint{}, nil
		},
		topAddresses: func(ctx context.Context, token string, limit int) ([]upstream.AddressStat, error) {
			return []upstream.AddressStat{}, nil
		},
	}

	svc := NewStatsService(backend, StatsConfig{})
	overview, err := svc.Overview(ctx, "tok")
	require.Error(t, err)
	assert.Nil(t, overview, "settled results are discarded once the caller is gone")
}

func TestStatsService_ConfigDefaults(t *testing.T) {
	var gotPeriod string
	var gotLimit int

	backend := &mockStatsBackend{
		overall: func(ctx context.Context, token string) (*upstream.OverallStats, error) {
			return &upstream.OverallStats{}, nil
		},
		timeline: func(ctx context.Context, token, period string) ([]upstream.TimelinePoint, error) {
			gotPeriod = period
			return nil, nil
		},
		topAddresses: func(ctx context.Context, token string, limit int) ([]upstream.AddressStat, error) {
			gotLimit = limit
			return nil, nil
		},
	}

	svc := NewStatsService(backend, StatsConfig{TopAddressesLimit: 10, GroupByPeriod: "week"})
	_, err := svc.Overview(context.Background(), "tok")
	require.NoError(t, err)
	assert.Equal(t, "week", gotPeriod)
	assert.Equal(t, 10, gotLimit)
}
