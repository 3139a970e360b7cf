package dto

import "github.com/MetinovAdik/kopuro-frontend/internal/upstream"

// StatsOverview bundles the three statistics feeds consumed by the employee
// dashboard into one reply
type StatsOverview struct {
	Overall      *upstream.OverallStats   `json:"overall"`
	Timeline     []upstream.TimelinePoint `json:"timeline"`
	TopAddresses []upstream.AddressStat   `json:"top_addresses"`
}
