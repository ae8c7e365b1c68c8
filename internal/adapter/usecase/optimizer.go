package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"slices"
	"time"

	"github.com/google/uuid"

	"campaign-optimizer/internal/adapter/memory"
	"campaign-optimizer/internal/core/analysis"
	"campaign-optimizer/internal/core/domain"
	"campaign-optimizer/internal/core/port"
)

const (
	defaultHistoryLimit = 20
	historyWindow       = 365 * 24 * time.Hour
	lockPrefix          = "optimization:"
)

// OptimizerService drives the optimization lifecycle
// pending -> analyzing -> completed | failed. It implements port.Optimizer.
type OptimizerService struct {
	campaigns     port.CampaignRepository
	optimizations port.OptimizationRepository
	market        port.MarketIntelligence
	questionnaire port.Questionnaire
	locker        port.Locker
	queue         port.AnalysisQueue
	analyzer      *analysis.Analyzer
	logger        *slog.Logger

	historyLimit int
	now          func() time.Time
	newID        func() string
}

// OptimizerOption configures an OptimizerService.
type OptimizerOption func(*OptimizerService)

// WithQueue defers analyses to q instead of running them inline.
func WithQueue(q port.AnalysisQueue) OptimizerOption {
	return func(s *OptimizerService) { s.queue = q }
}

// WithLocker replaces the default single-process locker.
func WithLocker(l port.Locker) OptimizerOption {
	return func(s *OptimizerService) { s.locker = l }
}

// WithAnalyzer replaces the analyzer built from the embedded tables.
func WithAnalyzer(a *analysis.Analyzer) OptimizerOption {
	return func(s *OptimizerService) { s.analyzer = a }
}

// WithOptimizerClock replaces time.Now.
func WithOptimizerClock(now func() time.Time) OptimizerOption {
	return func(s *OptimizerService) { s.now = now }
}

// WithIDGenerator replaces uuid.NewString for new optimizations.
func WithIDGenerator(f func() string) OptimizerOption {
	return func(s *OptimizerService) { s.newID = f }
}

// NewOptimizerService wires the orchestrator. Without WithLocker analyses
// are serialised by an in-process lock.
func NewOptimizerService(
	campaigns port.CampaignRepository,
	optimizations port.OptimizationRepository,
	market port.MarketIntelligence,
	questionnaire port.Questionnaire,
	logger *slog.Logger,
	opts ...OptimizerOption,
) *OptimizerService {
	s := &OptimizerService{
		campaigns:     campaigns,
		optimizations: optimizations,
		market:        market,
		questionnaire: questionnaire,
		logger:        logger,
		historyLimit:  defaultHistoryLimit,
		now:           time.Now,
		newID:         uuid.NewString,
	}
	for _, o := range opts {
		o(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.analyzer == nil {
		s.analyzer = analysis.New(nil)
	}
	if s.locker == nil {
		s.locker = memory.NewKeyedLocker()
	}
	return s
}

// StartOptimization creates a pending optimization for a campaign owned by
// userID. A pending optimization that already exists is returned as is.
func (s *OptimizerService) StartOptimization(ctx context.Context, campaignID, userID string, t domain.OptimizationType) (*domain.Optimization, error) {
	if t == "" {
		t = domain.OptimizationFull
	}
	if !t.Valid() {
		return nil, &port.ValidationError{Errors: []string{fmt.Sprintf("unknown optimization type %q", t)}}
	}
	c, err := s.ownedCampaign(ctx, campaignID, userID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	opt, created, err := s.optimizations.CreateOrGetPending(ctx, domain.Optimization{
		ID:         s.newID(),
		CampaignID: c.ID,
		OrgID:      c.OrgID,
		UserID:     userID,
		Type:       t,
		Status:     domain.StatusPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	})
	if err != nil {
		return nil, err
	}
	if created {
		s.logger.Info("optimization started",
			slog.String("optimization_id", opt.ID),
			slog.String("campaign_id", c.ID),
			slog.String("type", string(t)))
	}
	return opt, nil
}

// GetQuestionnaire generates the questionnaire for a campaign owned by
// userID.
func (s *OptimizerService) GetQuestionnaire(ctx context.Context, campaignID, userID string) (*domain.Questionnaire, error) {
	c, err := s.ownedCampaign(ctx, campaignID, userID)
	if err != nil {
		return nil, err
	}
	org, err := s.organization(ctx, c.OrgID)
	if err != nil {
		return nil, err
	}
	qn := s.questionnaire.Generate(ctx, *c, org)
	return &qn, nil
}

// ProcessQuestionnaire validates the responses, moves the optimization to
// analyzing and either runs the analysis inline or queues it. Invalid
// responses are rejected as a whole with a *port.ValidationError.
func (s *OptimizerService) ProcessQuestionnaire(ctx context.Context, optimizationID, userID string, responses domain.Responses) (*domain.ProcessResult, error) {
	opt, err := s.ownedOptimization(ctx, optimizationID, userID)
	if err != nil {
		return nil, err
	}
	if opt.Status != domain.StatusPending {
		return nil, port.ErrInvalidTransition
	}
	c, err := s.ownedCampaign(ctx, opt.CampaignID, userID)
	if err != nil {
		return nil, err
	}
	org, err := s.organization(ctx, c.OrgID)
	if err != nil {
		return nil, err
	}

	res := s.questionnaire.Validate(ctx, responses, *c, org)
	if !res.Valid {
		return nil, &port.ValidationError{Errors: res.Errors, Warnings: res.Warnings}
	}
	if err = s.optimizations.SubmitResponses(ctx, opt.ID, responses, s.now()); err != nil {
		return nil, err
	}
	log := s.logger.With(slog.String("optimization_id", opt.ID), slog.String("campaign_id", c.ID))
	log.Info("questionnaire accepted", slog.Int("warnings", len(res.Warnings)))

	if s.queue != nil {
		if err = s.queue.Enqueue(ctx, opt.ID); err != nil {
			// nobody will pick the record up, so it must not stay analyzing
			if ferr := s.optimizations.Fail(ctx, opt.ID, "enqueue analysis: "+err.Error(), s.now()); ferr != nil {
				log.Error("mark optimization failed", slog.Any("error", ferr))
			}
			return nil, fmt.Errorf("enqueue analysis: %w", err)
		}
		return &domain.ProcessResult{OptimizationID: opt.ID, Status: domain.StatusAnalyzing}, nil
	}

	done, err := s.RunAnalysis(ctx, opt.ID)
	if err != nil {
		return nil, err
	}
	return &domain.ProcessResult{
		OptimizationID:        done.ID,
		Status:                done.Status,
		Recommendations:       done.Recommendations,
		Confidence:            done.Confidence,
		ProcessingTimeSeconds: done.ProcessingTimeSeconds,
	}, nil
}

// RunAnalysis runs the five analyses for an optimization in analyzing state
// and completes it. Any error or panic on the way fails the optimization
// without storing recommendations and is returned wrapped.
func (s *OptimizerService) RunAnalysis(ctx context.Context, optimizationID string) (*domain.Optimization, error) {
	release, err := s.locker.TryLock(ctx, lockPrefix+optimizationID)
	if err != nil {
		return nil, err
	}
	log := s.logger.With(slog.String("optimization_id", optimizationID))
	defer func() {
		if rerr := release(context.WithoutCancel(ctx)); rerr != nil {
			log.Warn("release analysis lock", slog.Any("error", rerr))
		}
	}()

	opt, err := s.optimizations.Get(ctx, optimizationID)
	if err != nil {
		return nil, err
	}
	if opt == nil {
		return nil, port.ErrOptimizationNotFound
	}
	if opt.Status != domain.StatusAnalyzing {
		return nil, port.ErrInvalidTransition
	}

	start := s.now()
	out, err := s.analyze(ctx, *opt)
	if err != nil {
		log.Error("analysis failed", slog.String("campaign_id", opt.CampaignID), slog.Any("error", err))
		if ferr := s.optimizations.Fail(context.WithoutCancel(ctx), opt.ID, err.Error(), s.now()); ferr != nil {
			log.Error("mark optimization failed", slog.Any("error", ferr))
		}
		return nil, fmt.Errorf("analysis: %w", err)
	}

	end := s.now()
	// the result is persisted even when the caller has gone away
	persistCtx := context.WithoutCancel(ctx)
	err = s.optimizations.Complete(persistCtx, opt.ID, port.CompleteParams{
		Recommendations: out.recs,
		Confidence:      out.confidence,
		MarketSource:    out.source,
		MarketAnalysis:  out.market,
		DataSources:     out.sources,
		ProcessingTime:  math.Round(end.Sub(start).Seconds()*1000) / 1000,
		CompletedAt:     end,
	})
	if err != nil {
		if errors.Is(err, port.ErrInvalidTransition) {
			return nil, err
		}
		log.Error("store analysis result", slog.Any("error", err))
		if ferr := s.optimizations.Fail(persistCtx, opt.ID, "store result: "+err.Error(), s.now()); ferr != nil {
			log.Error("mark optimization failed", slog.Any("error", ferr))
		}
		return nil, fmt.Errorf("store result: %w", err)
	}
	log.Info("analysis completed",
		slog.String("campaign_id", opt.CampaignID),
		slog.String("source", string(out.source)),
		slog.Float64("confidence", out.confidence.Overall))

	done, err := s.optimizations.Get(ctx, opt.ID)
	if err != nil {
		return nil, err
	}
	if done == nil {
		return nil, port.ErrOptimizationNotFound
	}
	return done, nil
}

type analysisOutput struct {
	recs       domain.Recommendations
	confidence domain.ConfidenceScores
	source     domain.MarketSource
	market     *domain.MarketSummary
	sources    []string
}

func (s *OptimizerService) analyze(ctx context.Context, opt domain.Optimization) (out analysisOutput, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()

	c, err := s.campaigns.GetCampaign(ctx, opt.CampaignID)
	if err != nil {
		return out, err
	}
	if c == nil {
		return out, port.ErrCampaignNotFound
	}
	org, err := s.organization(ctx, c.OrgID)
	if err != nil {
		return out, err
	}

	now := s.now()
	mi := s.market.Get(ctx, org.Industry, "", 0)
	prior, err := s.campaigns.CountPriorCampaigns(ctx, c.OrgID, c.ID, now.Add(-historyWindow))
	if err != nil {
		return out, fmt.Errorf("count prior campaigns: %w", err)
	}

	recs, conf := s.analyzer.Run(analysis.Input{
		Campaign:       *c,
		Org:            org,
		Responses:      opt.Responses,
		Market:         mi,
		PriorCampaigns: prior,
		Now:            now,
	})
	if err = domain.Validator().Struct(conf); err != nil {
		return out, fmt.Errorf("confidence scores: %w", err)
	}
	summary := mi.Summarize()
	return analysisOutput{
		recs:       recs,
		confidence: conf,
		source:     mi.Source,
		market:     &summary,
		sources:    dataSources(mi),
	}, nil
}

func dataSources(mi domain.MarketIntelligence) []string {
	out := []string{"questionnaire", "campaign_history"}
	if mi.Source == domain.SourceFresh {
		out = append(out, "market_cache")
	}
	sections := []struct {
		name string
		live bool
	}{
		{"economic_indicators", mi.Economic.Live},
		{"retail_trends", mi.Retail.Live},
		{"seasonal_patterns", mi.Seasonal.Live},
		{"consumer_behavior", mi.Consumer.Live},
	}
	fallback := false
	for _, sec := range sections {
		if sec.live {
			out = append(out, sec.name)
		} else {
			fallback = true
		}
	}
	if fallback {
		out = append(out, "reference_fallbacks")
	}
	return out
}

// GetStatus returns the optimization if userID owns it.
func (s *OptimizerService) GetStatus(ctx context.Context, optimizationID, userID string) (*domain.Optimization, error) {
	return s.ownedOptimization(ctx, optimizationID, userID)
}

// GetRecommendations returns a completed optimization.
func (s *OptimizerService) GetRecommendations(ctx context.Context, optimizationID, userID string) (*domain.Optimization, error) {
	opt, err := s.ownedOptimization(ctx, optimizationID, userID)
	if err != nil {
		return nil, err
	}
	if opt.Status != domain.StatusCompleted {
		return nil, port.ErrNotCompleted
	}
	return opt, nil
}

// History lists the optimizations of a campaign, newest first.
func (s *OptimizerService) History(ctx context.Context, campaignID, userID string) ([]domain.Optimization, error) {
	if _, err := s.ownedCampaign(ctx, campaignID, userID); err != nil {
		return nil, err
	}
	return s.optimizations.ListByCampaign(ctx, campaignID, s.historyLimit)
}

// ApplyRecommendations copies the selected recommendation dimensions onto
// the campaign and stamps the optimization as applied. The updated campaign
// must still satisfy its invariants.
func (s *OptimizerService) ApplyRecommendations(ctx context.Context, optimizationID, userID string, sel domain.ApplySelection) (*domain.ApplyResult, error) {
	opt, err := s.ownedOptimization(ctx, optimizationID, userID)
	if err != nil {
		return nil, err
	}
	if opt.Status != domain.StatusCompleted || opt.Recommendations == nil {
		return nil, port.ErrNotCompleted
	}
	c, err := s.ownedCampaign(ctx, opt.CampaignID, userID)
	if err != nil {
		return nil, err
	}

	recs := opt.Recommendations
	updated := *c
	changes := []string{}
	if sel.Timing && !recs.Timing.OptimalLaunchDate.IsZero() {
		start := recs.Timing.OptimalLaunchDate
		updated.StartDate = &start
		changes = append(changes, "start_date")
	}
	if sel.Platform && recs.Platform.PrimaryPlatform != "" {
		updated.Platform = recs.Platform.PrimaryPlatform
		changes = append(changes, "platform")
	}
	if sel.Budget && recs.Budget.RecommendedDaily.IsPositive() {
		updated.DailyBudget.Decimal, updated.DailyBudget.Valid = recs.Budget.RecommendedDaily, true
		updated.TotalBudget.Decimal, updated.TotalBudget.Valid = recs.Budget.RecommendedTotal, true
		changes = append(changes, "daily_budget", "total_budget")
	}
	if sel.Audience {
		age := recs.Audience.AgeRange
		updated.Targeting.AgeRange = &age
		interests := slices.Clone(c.Targeting.Interests)
		for _, i := range recs.Audience.InterestExpansion {
			if !slices.Contains(interests, i) {
				interests = append(interests, i)
			}
		}
		updated.Targeting.Interests = interests
		changes = append(changes, "age_range", "interests")
	}

	if err = domain.ValidateCampaign(updated); err != nil {
		return nil, &port.ValidationError{Errors: []string{err.Error()}}
	}
	now := s.now()
	if len(changes) > 0 {
		updated.UpdatedAt = now
		if err = s.campaigns.UpdateCampaign(ctx, updated); err != nil {
			return nil, err
		}
	}
	err = s.optimizations.MarkApplied(ctx, opt.ID, domain.AppliedRecommendations{Selection: sel, Changes: changes}, now)
	if err != nil {
		return nil, err
	}
	s.logger.Info("recommendations applied",
		slog.String("optimization_id", opt.ID),
		slog.String("campaign_id", c.ID),
		slog.Any("changes", changes))
	return &domain.ApplyResult{OptimizationID: opt.ID, CampaignID: c.ID, AppliedChanges: changes}, nil
}

func (s *OptimizerService) ownedCampaign(ctx context.Context, campaignID, userID string) (*domain.Campaign, error) {
	c, err := s.campaigns.GetCampaign(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	if c == nil || c.UserID != userID {
		return nil, port.ErrCampaignNotFound
	}
	return c, nil
}

func (s *OptimizerService) ownedOptimization(ctx context.Context, optimizationID, userID string) (*domain.Optimization, error) {
	opt, err := s.optimizations.Get(ctx, optimizationID)
	if err != nil {
		return nil, err
	}
	if opt == nil || opt.UserID != userID {
		return nil, port.ErrOptimizationNotFound
	}
	return opt, nil
}

// organization returns a bare organization when the row is gone; the
// analyses then use default industry data.
func (s *OptimizerService) organization(ctx context.Context, id string) (domain.Organization, error) {
	org, err := s.campaigns.GetOrganization(ctx, id)
	if err != nil {
		return domain.Organization{}, err
	}
	if org == nil {
		return domain.Organization{ID: id}, nil
	}
	return *org, nil
}

var _ port.Optimizer = (*OptimizerService)(nil)
