package upstream

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/MetinovAdik/kopuro-frontend/internal/domain"
)

// OverallStats is the reply from GET /stats/overall.
type OverallStats struct {
	TotalIssues int64                        `json:"total_issues"`
	ByStatus    map[domain.IssueStatus]int64 `json:"by_status"`
	BySeverity  map[string]int64             `json:"by_severity,omitempty"`
}

// TimelinePoint is one bucket of GET /stats/timeline.
type TimelinePoint struct {
	Period string `json:"period"`
	Count  int64  `json:"count"`
}

// AddressStat is one entry of GET /stats/top_problematic_addresses.
type AddressStat struct {
	AddressText string `json:"address_text"`
	District    string `json:"district,omitempty"`
	Count       int64  `json:"count"`
}

// Overall fetches aggregated issue counts.
func (c *Client) Overall(ctx context.Context, token string) (*OverallStats, error) {
	var out OverallStats
	err := c.do(ctx, request{
		method: http.MethodGet,
		path:   "/stats/overall",
		token:  token,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Timeline fetches issue counts bucketed by period ("day", "week", "month").
func (c *Client) Timeline(ctx context.Context, token, groupByPeriod string) ([]TimelinePoint, error) {
	query := url.Values{}
	query.Set("group_by_period", groupByPeriod)

	var out []TimelinePoint
	err := c.do(ctx, request{
		method: http.MethodGet,
		path:   "/stats/timeline",
		token:  token,
		query:  query,
	}, &out)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// TopAddresses fetches the addresses with the most issues.
func (c *Client) TopAddresses(ctx context.Context, token string, limit int) ([]AddressStat, error) {
	query := url.Values{}
	query.Set("limit", strconv.Itoa(limit))

	var out []AddressStat
	err := c.do(ctx, request{
		method: http.MethodGet,
		path:   "/stats/top_problematic_addresses",
		token:  token,
		query:  query,
	}, &out)
	if err != nil {
		return nil, err
	}
	return out, nil
}
