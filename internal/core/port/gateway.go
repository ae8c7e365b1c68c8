package port

import (
	"context"

	"campaign-optimizer/internal/core/domain"
)

// SeriesRequest asks for the latest Periods observations of a vector.
type SeriesRequest struct {
	Vector  int64
	Periods int
}

// StatisticsGateway is a client of a national statistics time-series API.
// A series with a non-success status is absent from the result; an error
// means the whole request failed.
type StatisticsGateway interface {
	FetchSeries(ctx context.Context, reqs []SeriesRequest) ([]domain.Series, error)
}

// CentralBankGateway reads observation series of a central bank.
type CentralBankGateway interface {
	FetchObservations(ctx context.Context, series string, periods int) ([]domain.Observation, error)
}

// ConsumerSnapshot is the raw consumer-behaviour payload. Nil fields were
// absent upstream and are defaulted by the caller.
type ConsumerSnapshot struct {
	DigitalAdoptionRate   *float64           `json:"digital_adoption_rate"`
	DigitalAdoptionGrowth *float64           `json:"digital_adoption_growth"`
	OnlinePreference      *float64           `json:"online_preference"`
	PrimaryAgeGroup       *string            `json:"primary_age_group"`
	PlatformUsage         map[string]float64 `json:"platform_usage"`
}

// ConsumerBehaviorSource returns usage and adoption data for a market.
type ConsumerBehaviorSource interface {
	Fetch(ctx context.Context, industry, geography string) (*ConsumerSnapshot, error)
}
