package storage

import "time"

// Tariff holds the client-billing hourly rates of a project, one per profile.
type Tariff struct {
	ID             int64   `json:"id"`
	RateConception float64 `json:"rate_conception"`
	RateCrea       float64 `json:"rate_crea"`
	RateDev        float64 `json:"rate_dev"`
}

// InternalCost is one dated record of internal day-rates. The applicable
// record is the one with the latest effective_from (nulls last), tie-broken
// by latest created_at.
type InternalCost struct {
	RateConception float64   `json:"rate_conception"`
	RateCrea       float64   `json:"rate_crea"`
	RateDev        float64   `json:"rate_dev"`
	EffectiveFrom  *string   `json:"effective_from"`
	CreatedAt      time.Time `json:"created_at"`
}
