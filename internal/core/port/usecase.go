package port

import (
	"context"

	"campaign-optimizer/internal/core/domain"
)

// MarketIntelligence produces market intelligence for an industry. It
// never fails: unavailable upstream data is replaced by static fallbacks
// and reported through the result's Source.
type MarketIntelligence interface {
	Get(ctx context.Context, industry, geography string, lookbackMonths int) domain.MarketIntelligence
	Summary(ctx context.Context, industry string) domain.MarketSummary
}

// Questionnaire generates and validates optimization questionnaires.
type Questionnaire interface {
	Generate(ctx context.Context, campaign domain.Campaign, org domain.Organization) domain.Questionnaire
	Validate(ctx context.Context, responses domain.Responses, campaign domain.Campaign, org domain.Organization) domain.ValidationResult
}

// Optimizer is the primary port driving the optimization lifecycle.
type Optimizer interface {
	StartOptimization(ctx context.Context, campaignID, userID string, t domain.OptimizationType) (*domain.Optimization, error)
	GetQuestionnaire(ctx context.Context, campaignID, userID string) (*domain.Questionnaire, error)
	ProcessQuestionnaire(ctx context.Context, optimizationID, userID string, responses domain.Responses) (*domain.ProcessResult, error)
	// RunAnalysis runs the five analyses for an optimization in analyzing
	// state and completes or fails it.
	RunAnalysis(ctx context.Context, optimizationID string) (*domain.Optimization, error)
	GetStatus(ctx context.Context, optimizationID, userID string) (*domain.Optimization, error)
	GetRecommendations(ctx context.Context, optimizationID, userID string) (*domain.Optimization, error)
	History(ctx context.Context, campaignID, userID string) ([]domain.Optimization, error)
	ApplyRecommendations(ctx context.Context, optimizationID, userID string, sel domain.ApplySelection) (*domain.ApplyResult, error)
}
