package port

import (
	"context"
	"time"

	"campaign-optimizer/internal/core/domain"
)

// CampaignRepository reads campaigns and organizations owned by the
// surrounding application. Getters return nil, nil when the row is absent.
type CampaignRepository interface {
	GetCampaign(ctx context.Context, id string) (*domain.Campaign, error)
	GetOrganization(ctx context.Context, id string) (*domain.Organization, error)
	// UpdateCampaign persists the fields the apply step may change: start
	// date, platform, budgets, targeting.
	UpdateCampaign(ctx context.Context, c domain.Campaign) error
	// CountPriorCampaigns counts campaigns of the organization created since
	// the given time in completed or active status, excluding one campaign.
	CountPriorCampaigns(ctx context.Context, orgID, excludeID string, since time.Time) (int, error)
}

// CompleteParams is everything persisted by the analyzing -> completed
// transition.
type CompleteParams struct {
	Recommendations domain.Recommendations
	Confidence      domain.ConfidenceScores
	MarketSource    domain.MarketSource
	MarketAnalysis  *domain.MarketSummary
	DataSources     []string
	ProcessingTime  float64
	CompletedAt     time.Time
}

// OptimizationRepository is the arena of optimization records. All status
// changes are compare-and-set: they succeed only if the stored status
// equals the expected one, and return ErrInvalidTransition otherwise.
// Implementations must be safe for concurrent use.
type OptimizationRepository interface {
	// CreateOrGetPending inserts opt unless the campaign already has an
	// active optimization. It returns the stored record and whether it was
	// created. An existing analyzing record yields ErrOptimizationInProgress.
	CreateOrGetPending(ctx context.Context, opt domain.Optimization) (*domain.Optimization, bool, error)
	Get(ctx context.Context, id string) (*domain.Optimization, error)
	// ListByCampaign returns the campaign's optimizations, newest first.
	ListByCampaign(ctx context.Context, campaignID string, limit int) ([]domain.Optimization, error)

	// SubmitResponses stores responses and moves pending -> analyzing.
	SubmitResponses(ctx context.Context, id string, responses domain.Responses, at time.Time) error
	// Complete moves analyzing -> completed and stores the result atomically.
	Complete(ctx context.Context, id string, p CompleteParams) error
	// Fail moves analyzing -> failed recording msg. No recommendation is stored.
	Fail(ctx context.Context, id string, msg string, at time.Time) error
	// MarkApplied stamps the applied marker on a completed optimization.
	MarkApplied(ctx context.Context, id string, applied domain.AppliedRecommendations, at time.Time) error
}

// MarketCache stores market intelligence per (industry, geography). Get
// returns nil, nil on a miss or an expired entry.
type MarketCache interface {
	Get(ctx context.Context, industry, geography string) (*domain.MarketIntelligence, error)
	Put(ctx context.Context, mi domain.MarketIntelligence) error
}

// Locker serialises work on a key across goroutines or processes. TryLock
// returns ErrLockNotAcquired when somebody else holds the key.
type Locker interface {
	TryLock(ctx context.Context, key string) (release func(context.Context) error, err error)
}

// AnalysisQueue defers RunAnalysis for an optimization.
type AnalysisQueue interface {
	Enqueue(ctx context.Context, optimizationID string) error
}
