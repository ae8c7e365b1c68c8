package usecase

import (
	"context"
	"log/slog"
	"sort"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"campaign-optimizer/internal/core/domain"
	"campaign-optimizer/internal/core/port"
	"campaign-optimizer/internal/core/series"
	"campaign-optimizer/internal/reference"
)

const (
	defaultGeography      = "Canada"
	defaultLookbackMonths = 12
	defaultCacheTTL       = 24 * time.Hour
	maxSeasonalMonths     = 36

	liveConfidence     = 0.85
	fallbackConfidence = 0.5

	timingBaseConfidence = 0.6
	timingGroupBonus     = 0.1
	timingMaxConfidence  = 0.9
	liveWindowConfidence = 0.8
)

// MarketIntelligenceService builds market intelligence from the statistics
// gateways and keeps it in a cache. It implements port.MarketIntelligence.
type MarketIntelligenceService struct {
	stats    port.StatisticsGateway
	bank     port.CentralBankGateway
	consumer port.ConsumerBehaviorSource
	cache    port.MarketCache
	tables   *reference.Tables
	logger   *slog.Logger

	ttl       time.Duration
	geography string
	lookback  int
	now       func() time.Time
}

// MarketOption configures a MarketIntelligenceService.
type MarketOption func(*MarketIntelligenceService)

// WithCentralBank adds the policy rate indicator read from a central bank.
func WithCentralBank(gw port.CentralBankGateway) MarketOption {
	return func(s *MarketIntelligenceService) { s.bank = gw }
}

// WithCacheTTL overrides how long a fetched result stays fresh.
func WithCacheTTL(ttl time.Duration) MarketOption {
	return func(s *MarketIntelligenceService) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithMarketDefaults sets the geography and lookback used when callers pass
// zero values.
func WithMarketDefaults(geography string, lookbackMonths int) MarketOption {
	return func(s *MarketIntelligenceService) {
		if geography != "" {
			s.geography = geography
		}
		if lookbackMonths > 0 {
			s.lookback = lookbackMonths
		}
	}
}

// WithMarketClock replaces time.Now.
func WithMarketClock(now func() time.Time) MarketOption {
	return func(s *MarketIntelligenceService) { s.now = now }
}

// WithTables replaces the embedded reference tables.
func WithTables(t *reference.Tables) MarketOption {
	return func(s *MarketIntelligenceService) { s.tables = t }
}

// NewMarketIntelligenceService wires the service. consumer may be nil, in
// which case consumer behaviour always comes from the static defaults.
func NewMarketIntelligenceService(
	stats port.StatisticsGateway,
	consumer port.ConsumerBehaviorSource,
	cache port.MarketCache,
	logger *slog.Logger,
	opts ...MarketOption,
) *MarketIntelligenceService {
	s := &MarketIntelligenceService{
		stats:     stats,
		consumer:  consumer,
		cache:     cache,
		tables:    reference.Default(),
		logger:    logger,
		ttl:       defaultCacheTTL,
		geography: defaultGeography,
		lookback:  defaultLookbackMonths,
		now:       time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s
}

// Get returns cached intelligence when it is still fresh, otherwise fetches
// every section concurrently and substitutes the static fallback for the
// sections that failed. It never returns an error.
func (s *MarketIntelligenceService) Get(ctx context.Context, industry, geography string, lookbackMonths int) domain.MarketIntelligence {
	industry = reference.Normalize(industry)
	if industry == "" {
		industry = "default"
	}
	if geography == "" {
		geography = s.geography
	}
	if lookbackMonths <= 0 {
		lookbackMonths = s.lookback
	}
	log := s.logger.With(slog.String("industry", industry), slog.String("geography", geography))

	now := s.now()
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, industry, geography)
		switch {
		case err != nil:
			log.Warn("market cache read failed", slog.Any("error", err))
		case cached != nil && cached.Usable(now):
			cached.Source = domain.SourceFresh
			log.Debug("market intelligence served from cache")
			return *cached
		}
	}

	mi := s.build(ctx, log, industry, geography, lookbackMonths, now)

	if mi.Source == domain.SourceFetched && s.cache != nil {
		if err := s.cache.Put(ctx, mi); err != nil {
			log.Warn("market cache write failed", slog.Any("error", err))
		}
	}
	log.Info("market intelligence built", slog.String("source", string(mi.Source)))
	return mi
}

func (s *MarketIntelligenceService) build(ctx context.Context, log *slog.Logger, industry, geography string, lookback int, now time.Time) domain.MarketIntelligence {
	var (
		economic domain.EconomicIndicators
		retail   domain.RetailTrends
		seasonal domain.SeasonalPattern
		consumer domain.ConsumerBehavior
	)

	// every section degrades on its own, so the group never carries an error
	var g errgroup.Group
	g.Go(func() error {
		economic = s.economic(ctx, log, lookback)
		return nil
	})
	g.Go(func() error {
		retail, seasonal = s.retail(ctx, log, industry, lookback)
		return nil
	})
	g.Go(func() error {
		consumer = s.consumerBehavior(ctx, log, industry, geography)
		return nil
	})
	_ = g.Wait()

	mi := domain.MarketIntelligence{
		Industry:  industry,
		Geography: geography,
		Economic:  economic,
		Retail:    retail,
		Seasonal:  seasonal,
		Consumer:  consumer,
		Source:    domain.SourceFetched,
		FetchedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}
	// without a consumer source the static defaults are the configured data
	consumerOK := consumer.Live || s.consumer == nil
	if !(economic.Live && retail.Live && seasonal.Live && consumerOK) {
		mi.Source = domain.SourceFallback
	}
	mi.ConfidenceScore = liveConfidence
	if mi.Source == domain.SourceFallback {
		mi.ConfidenceScore = fallbackConfidence
	}
	mi.Timing = s.timing(mi)
	return mi
}

func (s *MarketIntelligenceService) economic(ctx context.Context, log *slog.Logger, lookback int) domain.EconomicIndicators {
	byVector := make(map[string]string)
	var reqs []port.SeriesRequest
	for _, spec := range s.tables.Indicators {
		for _, v := range spec.Vectors {
			byVector[strconv.FormatInt(v, 10)] = spec.Name
			reqs = append(reqs, port.SeriesRequest{Vector: v, Periods: lookback})
		}
	}

	list, err := s.stats.FetchSeries(ctx, reqs)
	if err != nil {
		log.Warn("economic indicators unavailable, using fallback", slog.Any("error", err))
		return s.economicFallback()
	}

	grouped := make(map[string][]domain.Series)
	for _, sr := range list {
		if name, ok := byVector[sr.ID]; ok {
			grouped[name] = append(grouped[name], sr)
		}
	}

	out := domain.EconomicIndicators{Indicators: make(map[string]domain.Indicator), Live: true}
	for _, spec := range s.tables.Indicators {
		obs := series.Merge(grouped[spec.Name])
		if len(obs) == 0 {
			continue
		}
		out.Indicators[spec.Name] = indicator(spec.Name, spec.Description, spec.Impact, obs)
	}

	if s.bank != nil {
		cb := s.tables.CentralBank
		obs, err := s.bank.FetchObservations(ctx, cb.Series, lookback)
		switch {
		case err != nil:
			log.Warn("central bank series unavailable", slog.String("series", cb.Series), slog.Any("error", err))
		case len(obs) > 0:
			out.Indicators[cb.Name] = indicator(cb.Name, cb.Description, cb.Impact, obs)
		}
	}

	if len(out.Indicators) == 0 {
		log.Warn("economic indicators returned no data, using fallback")
		return s.economicFallback()
	}
	return out
}

func indicator(name, description, impact string, obs []domain.Observation) domain.Indicator {
	values := series.Values(obs)
	latest := values[len(values)-1]
	return domain.Indicator{
		Name:             name,
		Description:      description,
		Impact:           impact,
		Observations:     obs,
		Trend:            series.Direction(values),
		Latest:           &latest,
		ChangePercentage: series.ChangePercentage(values),
	}
}

func (s *MarketIntelligenceService) economicFallback() domain.EconomicIndicators {
	out := domain.EconomicIndicators{Indicators: make(map[string]domain.Indicator, len(s.tables.EconomicFallback))}
	for name, f := range s.tables.EconomicFallback {
		out.Indicators[name] = domain.Indicator{
			Name:             name,
			Description:      f.Description,
			Impact:           f.Impact,
			Trend:            f.Trend,
			ChangePercentage: f.ChangePercentage,
		}
	}
	return out
}

// retail fetches the industry series once; the same observations feed the
// trend statistics and the seasonal decomposition.
func (s *MarketIntelligenceService) retail(ctx context.Context, log *slog.Logger, industry string, lookback int) (domain.RetailTrends, domain.SeasonalPattern) {
	periods := min(lookback, maxSeasonalMonths)
	vectors := s.tables.VectorsFor(industry)
	reqs := make([]port.SeriesRequest, 0, len(vectors))
	for _, v := range vectors {
		reqs = append(reqs, port.SeriesRequest{Vector: v, Periods: periods})
	}

	var obs []domain.Observation
	list, err := s.stats.FetchSeries(ctx, reqs)
	if err != nil {
		log.Warn("retail series unavailable, using fallback", slog.Any("error", err))
	} else {
		obs = series.Merge(list)
	}

	retail := domain.RetailTrends{
		GrowthRate: s.tables.RetailFallback.GrowthRate,
		Trend:      s.tables.RetailFallback.Trend,
	}
	if len(obs) > 0 {
		values := series.Values(obs)
		retail = domain.RetailTrends{
			Observations: obs,
			GrowthRate:   series.GrowthRate(values),
			Trend:        series.Direction(values),
			Volatility:   series.Volatility(values),
			Live:         true,
		}
	}

	seasonal, ok := series.Decompose(obs)
	if !ok {
		if len(obs) > 0 {
			log.Info("retail series too short for seasonal decomposition, using fallback", slog.Int("observations", len(obs)))
		}
		return retail, s.tables.SeasonalPattern(industry)
	}
	return retail, seasonal
}

func (s *MarketIntelligenceService) consumerBehavior(ctx context.Context, log *slog.Logger, industry, geography string) domain.ConsumerBehavior {
	f := s.tables.ConsumerFallback
	out := domain.ConsumerBehavior{
		DigitalAdoptionRate:   f.DigitalAdoptionRate,
		DigitalAdoptionGrowth: f.DigitalAdoptionGrowth,
		OnlinePreference:      f.OnlinePreference,
		PrimaryAgeGroup:       f.PrimaryAgeGroup,
		PlatformUsage:         copyUsage(f.PlatformUsage),
	}
	if s.consumer == nil {
		return out
	}
	snap, err := s.consumer.Fetch(ctx, industry, geography)
	if err != nil || snap == nil {
		log.Warn("consumer behaviour unavailable, using fallback", slog.Any("error", err))
		return out
	}

	out.Live = true
	if snap.DigitalAdoptionRate != nil {
		out.DigitalAdoptionRate = *snap.DigitalAdoptionRate
	}
	if snap.DigitalAdoptionGrowth != nil {
		out.DigitalAdoptionGrowth = *snap.DigitalAdoptionGrowth
	}
	if snap.OnlinePreference != nil {
		out.OnlinePreference = *snap.OnlinePreference
	}
	if snap.PrimaryAgeGroup != nil && *snap.PrimaryAgeGroup != "" {
		out.PrimaryAgeGroup = *snap.PrimaryAgeGroup
	}
	if len(snap.PlatformUsage) > 0 {
		out.PlatformUsage = copyUsage(snap.PlatformUsage)
	}
	return out
}

func copyUsage(in map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func (s *MarketIntelligenceService) timing(mi domain.MarketIntelligence) domain.TimingInsights {
	f := s.tables.TimingFallback
	out := domain.TimingInsights{
		LaunchWindow: domain.LaunchWindow{StartMonth: f.StartMonth, EndMonth: f.EndMonth, Confidence: f.WindowConfidence},
		AvoidPeriods: append([]int(nil), mi.Seasonal.AvoidMonths...),
	}
	if rec := mi.Seasonal.RecommendedMonths; len(rec) > 0 {
		out.LaunchWindow = domain.LaunchWindow{
			StartMonth: rec[0],
			EndMonth:   rec[min(2, len(rec)-1)],
			Confidence: f.WindowConfidence,
		}
		if mi.Seasonal.Live {
			out.LaunchWindow.Confidence = liveWindowConfidence
		}
	}

	declining := []string{}
	for name, ind := range mi.Economic.Indicators {
		if ind.Trend == domain.TrendDecreasing {
			declining = append(declining, name)
		}
	}
	sort.Strings(declining)
	risk := domain.RiskLow
	switch {
	case len(declining) >= 2:
		risk = domain.RiskHigh
	case len(declining) == 1:
		risk = domain.RiskMedium
	}
	out.Economic = domain.EconomicFactors{
		Favorable:           risk == domain.RiskLow,
		RiskLevel:           risk,
		DecliningIndicators: declining,
	}

	conf := timingBaseConfidence
	for _, live := range []bool{mi.Economic.Live, mi.Retail.Live, mi.Seasonal.Live, mi.Consumer.Live} {
		if live {
			conf += timingGroupBonus
		}
	}
	out.Confidence = series.Round2(min(conf, timingMaxConfidence))
	return out
}

// Summary condenses the intelligence of an industry in the default
// geography.
func (s *MarketIntelligenceService) Summary(ctx context.Context, industry string) domain.MarketSummary {
	return s.Get(ctx, industry, "", 0).Summarize()
}
