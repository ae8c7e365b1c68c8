package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"campaign-optimizer/internal/adapter/memory"
	"campaign-optimizer/internal/core/domain"
	"campaign-optimizer/internal/core/port"
	"campaign-optimizer/internal/core/port/mocks"
)

var optNow = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func liveMarket() domain.MarketIntelligence {
	latest := 101.0
	return domain.MarketIntelligence{
		Industry:  "retail",
		Geography: "Canada",
		Economic: domain.EconomicIndicators{
			Live: true,
			Indicators: map[string]domain.Indicator{
				"retail_sales":        {Name: "retail_sales", Trend: domain.TrendIncreasing, Latest: &latest, Observations: []domain.Observation{{Value: latest}}},
				"consumer_confidence": {Name: "consumer_confidence", Trend: domain.TrendStable, Latest: &latest, Observations: []domain.Observation{{Value: latest}}},
			},
		},
		Retail: domain.RetailTrends{GrowthRate: 1.0, Trend: domain.TrendIncreasing, Live: true},
		Seasonal: domain.SeasonalPattern{
			PeakMonths:        []int{11, 12},
			LowMonths:         []int{7, 8},
			RecommendedMonths: []int{9, 10, 11},
			AvoidMonths:       []int{7, 8},
			Strength:          0.4,
			Multipliers:       map[int]float64{9: 1.1},
			Live:              true,
		},
		Consumer: domain.ConsumerBehavior{
			PrimaryAgeGroup: "25-44",
			PlatformUsage:   map[string]float64{"mobile": 0.7, "desktop": 0.3},
			Live:            true,
		},
		Timing:          domain.TimingInsights{Economic: domain.EconomicFactors{RiskLevel: domain.RiskLow, Favorable: true}},
		Source:          domain.SourceFetched,
		ConfidenceScore: 0.85,
		FetchedAt:       optNow,
		ExpiresAt:       optNow.Add(24 * time.Hour),
	}
}

func optimizerCampaign() domain.Campaign {
	return domain.Campaign{
		ID:               "camp-1",
		OrgID:            "org-1",
		UserID:           "user-1",
		Name:             "Spring push",
		CampaignType:     "search",
		Status:           "draft",
		PrimaryObjective: "sales",
		DailyBudget:      decimal.NewNullDecimal(decimal.NewFromInt(20)),
		Currency:         "CAD",
		Targeting:        domain.Targeting{Locations: []string{"Toronto"}, Interests: []string{"shopping"}},
		CreatedAt:        optNow.AddDate(0, -1, 0),
	}
}

func submission() domain.Responses {
	r := validResponses()
	r["audience_expansion"] = "similar_interests"
	return r
}

type fixture struct {
	svc       *OptimizerService
	campaigns *memory.CampaignStore
	store     *memory.OptimizationStore
}

func newFixture(t *testing.T, campaigns port.CampaignRepository, market port.MarketIntelligence, opts ...OptimizerOption) fixture {
	t.Helper()
	store := memory.NewOptimizationStore()
	mem := memory.NewCampaignStore()
	mem.PutCampaign(optimizerCampaign())
	mem.PutOrganization(retailOrg())
	if campaigns == nil {
		campaigns = mem
	}
	if market == nil {
		m := mocks.NewMockMarketIntelligence(t)
		m.EXPECT().Get(mock.Anything, "Retail", "", 0).Return(liveMarket()).Maybe()
		market = m
	}
	var seq atomic.Int32
	opts = append([]OptimizerOption{
		WithOptimizerClock(func() time.Time { return optNow }),
		WithIDGenerator(func() string { return fmt.Sprintf("opt-%d", seq.Add(1)) }),
	}, opts...)
	svc := NewOptimizerService(campaigns, store, market, NewQuestionnaireService(nil), nil, opts...)
	return fixture{svc: svc, campaigns: mem, store: store}
}

// failingCount breaks the prior-campaign lookup of the analysis step.
type failingCount struct {
	*memory.CampaignStore
}

func (failingCount) CountPriorCampaigns(context.Context, string, string, time.Time) (int, error) {
	return 0, errors.New("connection reset")
}

func TestStartOptimizationIsIdempotent(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil, nil)

	first, err := f.svc.StartOptimization(ctx, "camp-1", "user-1", "")
	require.NoError(t, err)
	second, err := f.svc.StartOptimization(ctx, "camp-1", "user-1", domain.OptimizationFull)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, domain.StatusPending, second.Status)
	assert.Equal(t, domain.OptimizationFull, second.Type)
	assert.Equal(t, "org-1", second.OrgID)
}

func TestStartOptimizationRejects(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil, nil)

	_, err := f.svc.StartOptimization(ctx, "camp-1", "someone-else", "")
	assert.ErrorIs(t, err, port.ErrCampaignNotFound)
	_, err = f.svc.StartOptimization(ctx, "missing", "user-1", "")
	assert.ErrorIs(t, err, port.ErrCampaignNotFound)
	_, err = f.svc.StartOptimization(ctx, "camp-1", "user-1", "everything")
	assert.ErrorIs(t, err, port.ErrValidationFailed)

	list, err := f.store.ListByCampaign(ctx, "camp-1", 0)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestInlineLifecycle(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil, nil)

	opt, err := f.svc.StartOptimization(ctx, "camp-1", "user-1", "")
	require.NoError(t, err)

	qn, err := f.svc.GetQuestionnaire(ctx, "camp-1", "user-1")
	require.NoError(t, err)
	_, ok := qn.Question("audience_expansion")
	assert.True(t, ok)

	res, err := f.svc.ProcessQuestionnaire(ctx, opt.ID, "user-1", submission())
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, res.Status)
	require.NotNil(t, res.Recommendations)
	require.NotNil(t, res.Confidence)
	require.NoError(t, domain.Validator().Struct(*res.Confidence))

	got, err := f.svc.GetRecommendations(ctx, opt.ID, "user-1")
	require.NoError(t, err)
	assert.Equal(t, domain.SourceFetched, got.MarketSource)
	assert.Equal(t, optNow, *got.QuestionnaireCompletedAt)
	assert.Equal(t, optNow, *got.CompletedAt)
	assert.Equal(t, "flexible", got.Responses["campaign_urgency"])
	assert.Contains(t, got.DataSourcesUsed, "economic_indicators")
	assert.NotContains(t, got.DataSourcesUsed, "reference_fallbacks")
	require.NotNil(t, got.MarketAnalysis)
	assert.Equal(t, domain.SourceFetched, got.MarketAnalysis.Source)
	assert.Equal(t, "live", got.MarketAnalysis.DataQuality)
	assert.Equal(t, []int{7, 8}, got.MarketAnalysis.AvoidMonths)
	assert.Equal(t, domain.TrendIncreasing, got.MarketAnalysis.IndicatorTrends["retail_sales"])
	assert.Equal(t, time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC), got.Recommendations.Timing.OptimalLaunchDate)

	_, err = f.svc.ProcessQuestionnaire(ctx, opt.ID, "user-1", submission())
	assert.ErrorIs(t, err, port.ErrInvalidTransition)

	next, err := f.svc.StartOptimization(ctx, "camp-1", "user-1", domain.OptimizationTimingOnly)
	require.NoError(t, err)
	assert.NotEqual(t, opt.ID, next.ID)

	history, err := f.svc.History(ctx, "camp-1", "user-1")
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, next.ID, history[0].ID)

	_, err = f.svc.History(ctx, "camp-1", "intruder")
	assert.ErrorIs(t, err, port.ErrCampaignNotFound)
}

func TestProcessQuestionnaireValidation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil, nil)
	opt, err := f.svc.StartOptimization(ctx, "camp-1", "user-1", "")
	require.NoError(t, err)

	r := submission()
	delete(r, "campaign_urgency")
	r["competitive_intensity"] = float64(6)
	_, err = f.svc.ProcessQuestionnaire(ctx, opt.ID, "user-1", r)
	require.ErrorIs(t, err, port.ErrValidationFailed)
	var verr *port.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Errors, 2)

	got, err := f.svc.GetStatus(ctx, opt.ID, "user-1")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, got.Status)
	assert.Nil(t, got.Responses)

	_, err = f.svc.ProcessQuestionnaire(ctx, opt.ID, "intruder", submission())
	assert.ErrorIs(t, err, port.ErrOptimizationNotFound)
	_, err = f.svc.GetStatus(ctx, opt.ID, "intruder")
	assert.ErrorIs(t, err, port.ErrOptimizationNotFound)
}

func TestQueuedAnalysis(t *testing.T) {
	ctx := context.Background()
	queue := mocks.NewMockAnalysisQueue(t)
	f := newFixture(t, nil, nil, WithQueue(queue))
	opt, err := f.svc.StartOptimization(ctx, "camp-1", "user-1", "")
	require.NoError(t, err)
	queue.EXPECT().Enqueue(mock.Anything, opt.ID).Return(nil).Once()

	res, err := f.svc.ProcessQuestionnaire(ctx, opt.ID, "user-1", submission())
	require.NoError(t, err)
	assert.Equal(t, domain.StatusAnalyzing, res.Status)
	assert.Nil(t, res.Recommendations)

	_, err = f.svc.StartOptimization(ctx, "camp-1", "user-1", "")
	assert.ErrorIs(t, err, port.ErrOptimizationInProgress)
	_, err = f.svc.GetRecommendations(ctx, opt.ID, "user-1")
	assert.ErrorIs(t, err, port.ErrNotCompleted)

	done, err := f.svc.RunAnalysis(ctx, opt.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, done.Status)

	_, err = f.svc.RunAnalysis(ctx, opt.ID)
	assert.ErrorIs(t, err, port.ErrInvalidTransition)
}

func TestEnqueueFailureFailsOptimization(t *testing.T) {
	ctx := context.Background()
	queue := mocks.NewMockAnalysisQueue(t)
	f := newFixture(t, nil, nil, WithQueue(queue))
	opt, err := f.svc.StartOptimization(ctx, "camp-1", "user-1", "")
	require.NoError(t, err)
	queue.EXPECT().Enqueue(mock.Anything, opt.ID).Return(errors.New("broker down")).Once()

	_, err = f.svc.ProcessQuestionnaire(ctx, opt.ID, "user-1", submission())
	require.Error(t, err)

	got, err := f.store.Get(ctx, opt.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusFailed, got.Status)
	assert.Contains(t, got.Error, "broker down")
}

func TestFailedAnalysisStoresNoRecommendations(t *testing.T) {
	ctx := context.Background()

	panicking := mocks.NewMockMarketIntelligence(t)
	panicking.EXPECT().Get(mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		RunAndReturn(func(context.Context, string, string, int) domain.MarketIntelligence { panic("nil map") }).Once()

	tests := []struct {
		name      string
		campaigns func(*memory.CampaignStore) port.CampaignRepository
		market    port.MarketIntelligence
		message   string
	}{
		{
			name:      "repository error",
			campaigns: func(s *memory.CampaignStore) port.CampaignRepository { return failingCount{s} },
			message:   "connection reset",
		},
		{
			name:    "panic",
			market:  panicking,
			message: "panic: nil map",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base := newFixture(t, nil, tt.market)
			f := base
			if tt.campaigns != nil {
				f = newFixture(t, tt.campaigns(base.campaigns), tt.market)
			}
			opt, err := f.svc.StartOptimization(ctx, "camp-1", "user-1", "")
			require.NoError(t, err)

			_, err = f.svc.ProcessQuestionnaire(ctx, opt.ID, "user-1", submission())
			require.Error(t, err)
			assert.Contains(t, err.Error(), "analysis: ")
			assert.Contains(t, err.Error(), tt.message)

			got, err := f.store.Get(ctx, opt.ID)
			require.NoError(t, err)
			assert.Equal(t, domain.StatusFailed, got.Status)
			assert.Contains(t, got.Error, tt.message)
			assert.Nil(t, got.Recommendations)
			assert.Nil(t, got.Confidence)
		})
	}
}

// failingComplete loses the connection while storing a finished analysis.
type failingComplete struct {
	*memory.OptimizationStore
}

func (failingComplete) Complete(context.Context, string, port.CompleteParams) error {
	return errors.New("conn reset")
}

func TestStoreResultFailureReleasesCampaign(t *testing.T) {
	ctx := context.Background()
	campaigns := memory.NewCampaignStore()
	campaigns.PutCampaign(optimizerCampaign())
	campaigns.PutOrganization(retailOrg())
	market := mocks.NewMockMarketIntelligence(t)
	market.EXPECT().Get(mock.Anything, "Retail", "", 0).Return(liveMarket()).Once()
	store := memory.NewOptimizationStore()

	var seq atomic.Int32
	svc := NewOptimizerService(campaigns, failingComplete{store}, market, NewQuestionnaireService(nil), nil,
		WithOptimizerClock(func() time.Time { return optNow }),
		WithIDGenerator(func() string { return fmt.Sprintf("opt-%d", seq.Add(1)) }))

	opt, err := svc.StartOptimization(ctx, "camp-1", "user-1", "")
	require.NoError(t, err)

	_, err = svc.ProcessQuestionnaire(ctx, opt.ID, "user-1", submission())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "conn reset")

	got, err := store.Get(ctx, opt.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusFailed, got.Status)
	assert.Contains(t, got.Error, "conn reset")
	assert.Nil(t, got.Recommendations)

	next, err := svc.StartOptimization(ctx, "camp-1", "user-1", "")
	require.NoError(t, err)
	assert.NotEqual(t, opt.ID, next.ID)
	assert.Equal(t, domain.StatusPending, next.Status)
}

func TestConcurrentSubmissionsExactlyOneWins(t *testing.T) {
	ctx := context.Background()
	queue := mocks.NewMockAnalysisQueue(t)
	f := newFixture(t, nil, nil, WithQueue(queue))
	opt, err := f.svc.StartOptimization(ctx, "camp-1", "user-1", "")
	require.NoError(t, err)
	queue.EXPECT().Enqueue(mock.Anything, opt.ID).Return(nil).Once()

	const n = 16
	var wins, conflicts atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.svc.ProcessQuestionnaire(ctx, opt.ID, "user-1", submission())
			switch {
			case err == nil:
				wins.Add(1)
			case errors.Is(err, port.ErrInvalidTransition):
				conflicts.Add(1)
			}
		}()
	}
	wg.Wait()
	assert.EqualValues(t, 1, wins.Load())
	assert.EqualValues(t, n-1, conflicts.Load())
}

func TestRunAnalysisHonoursLock(t *testing.T) {
	ctx := context.Background()
	locker := memory.NewKeyedLocker()
	f := newFixture(t, nil, nil, WithLocker(locker))

	release, err := locker.TryLock(ctx, "optimization:opt-1")
	require.NoError(t, err)
	defer func() { _ = release(ctx) }()

	_, err = f.svc.RunAnalysis(ctx, "opt-1")
	assert.ErrorIs(t, err, port.ErrLockNotAcquired)
}

func TestApplyRecommendations(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil, nil)
	opt, err := f.svc.StartOptimization(ctx, "camp-1", "user-1", "")
	require.NoError(t, err)

	_, err = f.svc.ApplyRecommendations(ctx, opt.ID, "user-1", domain.ApplySelection{Timing: true})
	assert.ErrorIs(t, err, port.ErrNotCompleted)

	_, err = f.svc.ProcessQuestionnaire(ctx, opt.ID, "user-1", submission())
	require.NoError(t, err)
	done, err := f.svc.GetRecommendations(ctx, opt.ID, "user-1")
	require.NoError(t, err)

	sel := domain.ApplySelection{Timing: true, Platform: true, Budget: true, Audience: true}
	res, err := f.svc.ApplyRecommendations(ctx, opt.ID, "user-1", sel)
	require.NoError(t, err)
	assert.Equal(t, []string{"start_date", "platform", "daily_budget", "total_budget", "age_range", "interests"}, res.AppliedChanges)

	c, err := f.campaigns.GetCampaign(ctx, "camp-1")
	require.NoError(t, err)
	recs := done.Recommendations
	assert.Equal(t, recs.Timing.OptimalLaunchDate, *c.StartDate)
	assert.Equal(t, recs.Platform.PrimaryPlatform, c.Platform)
	assert.True(t, recs.Budget.RecommendedDaily.Equal(c.DailyBudget.Decimal))
	assert.Equal(t, recs.Audience.AgeRange, *c.Targeting.AgeRange)
	assert.Equal(t, []string{"shopping", "deals", "fashion"}, c.Targeting.Interests)

	stamped, err := f.store.Get(ctx, opt.ID)
	require.NoError(t, err)
	require.NotNil(t, stamped.Applied)
	assert.Equal(t, sel, stamped.Applied.Selection)
	assert.Equal(t, optNow, *stamped.AppliedAt)
}

func TestApplyRecommendationsKeepsCampaignValid(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil, nil)
	c := optimizerCampaign()
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)
	c.StartDate, c.EndDate = &start, &end
	f.campaigns.PutCampaign(c)

	opt, err := f.svc.StartOptimization(ctx, "camp-1", "user-1", "")
	require.NoError(t, err)
	_, err = f.svc.ProcessQuestionnaire(ctx, opt.ID, "user-1", submission())
	require.NoError(t, err)

	_, err = f.svc.ApplyRecommendations(ctx, opt.ID, "user-1", domain.ApplySelection{Timing: true})
	assert.ErrorIs(t, err, port.ErrValidationFailed)

	unchanged, err := f.campaigns.GetCampaign(ctx, "camp-1")
	require.NoError(t, err)
	assert.Equal(t, start, *unchanged.StartDate)
}

func TestStartOptimizationPropagatesRepositoryError(t *testing.T) {
	boom := errors.New("connection refused")
	repo := mocks.NewMockCampaignRepository(t)
	repo.EXPECT().GetCampaign(mock.Anything, "camp-1").Return(nil, boom).Once()

	f := newFixture(t, repo, nil)
	_, err := f.svc.StartOptimization(context.Background(), "camp-1", "user-1", "")
	assert.ErrorIs(t, err, boom)

	list, err := f.store.ListByCampaign(context.Background(), "camp-1", 10)
	require.NoError(t, err)
	assert.Empty(t, list)
}
