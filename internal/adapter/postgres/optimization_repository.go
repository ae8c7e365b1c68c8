package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"campaign-optimizer/internal/core/domain"
	"campaign-optimizer/internal/core/port"
)

// createAttempts bounds the insert/read loop of CreateOrGetPending when the
// active record changes state between the two statements.
const createAttempts = 3

// OptimizationRepository implements port.OptimizationRepository. Status
// changes are single UPDATE statements guarded by the expected status.
type OptimizationRepository struct {
	pool *pgxpool.Pool
}

// NewOptimizationRepository returns a repository over the
// campaign_optimizations table. The pool is owned by the caller and must
// point at a database migrated with db/migrations.
func NewOptimizationRepository(pool *pgxpool.Pool) *OptimizationRepository {
	return &OptimizationRepository{pool: pool}
}

const optimizationColumns = `id, campaign_id, org_id, user_id, optimization_type, status,
	questionnaire_responses, recommendations, confidence_scores, market_source, market_analysis, data_sources_used,
	processing_time_seconds, error, recommendations_applied, created_at, updated_at,
	questionnaire_completed_at, completed_at, applied_at`

// CreateOrGetPending relies on the partial unique index over active rows:
// a conflicting insert does nothing and the active row is read instead.
func (r *OptimizationRepository) CreateOrGetPending(ctx context.Context, opt domain.Optimization) (*domain.Optimization, bool, error) {
	for i := 0; i < createAttempts; i++ {
		tag, err := r.pool.Exec(ctx, `INSERT INTO campaign_optimizations
    (id, campaign_id, org_id, user_id, optimization_type, status, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, 'pending', $6, $7)
ON CONFLICT (campaign_id) WHERE status IN ('pending', 'analyzing') DO NOTHING`,
			opt.ID, opt.CampaignID, opt.OrgID, opt.UserID, opt.Type, opt.CreatedAt, opt.UpdatedAt)
		if err != nil {
			return nil, false, err
		}
		if tag.RowsAffected() == 1 {
			created, err := r.Get(ctx, opt.ID)
			return created, true, err
		}

		existing, err := r.scanOne(r.pool.QueryRow(ctx, `SELECT `+optimizationColumns+`
FROM campaign_optimizations WHERE campaign_id = $1 AND status IN ('pending', 'analyzing')`, opt.CampaignID))
		if err != nil {
			return nil, false, err
		}
		switch {
		case existing == nil:
			// finished between the two statements; insert again
			continue
		case existing.Status == domain.StatusAnalyzing:
			return nil, false, port.ErrOptimizationInProgress
		default:
			return existing, false, nil
		}
	}
	return nil, false, fmt.Errorf("create optimization for campaign %s: too much contention", opt.CampaignID)
}

// Get returns an optimization by id, or nil when absent.
func (r *OptimizationRepository) Get(ctx context.Context, id string) (*domain.Optimization, error) {
	return r.scanOne(r.pool.QueryRow(ctx, `SELECT `+optimizationColumns+` FROM campaign_optimizations WHERE id = $1`, id))
}

// ListByCampaign returns the newest optimizations of a campaign first.
func (r *OptimizationRepository) ListByCampaign(ctx context.Context, campaignID string, limit int) ([]domain.Optimization, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := r.pool.Query(ctx, `SELECT `+optimizationColumns+`
FROM campaign_optimizations WHERE campaign_id = $1 ORDER BY created_at DESC, id DESC LIMIT $2`, campaignID, limit)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Optimization, error) {
		o, err := scanOptimization(row)
		if err != nil {
			return domain.Optimization{}, err
		}
		return *o, nil
	})
}

// SubmitResponses stores the answers and moves a pending row to analyzing
// in one guarded UPDATE.
func (r *OptimizationRepository) SubmitResponses(ctx context.Context, id string, responses domain.Responses, at time.Time) error {
	raw, err := json.Marshal(responses)
	if err != nil {
		return err
	}
	tag, err := r.pool.Exec(ctx, `UPDATE campaign_optimizations
SET status = 'analyzing', questionnaire_responses = $2, questionnaire_completed_at = $3, updated_at = $3
WHERE id = $1 AND status = 'pending'`, id, raw, at)
	if err != nil {
		return err
	}
	return r.checkCAS(ctx, id, tag.RowsAffected())
}

// Complete writes the analysis result and moves an analyzing row to
// completed. Recommendations, confidence and market analysis land in the
// same statement, so readers never see them apart.
func (r *OptimizationRepository) Complete(ctx context.Context, id string, p port.CompleteParams) error {
	recs, err := json.Marshal(p.Recommendations)
	if err != nil {
		return err
	}
	conf, err := json.Marshal(p.Confidence)
	if err != nil {
		return err
	}
	var market []byte
	if p.MarketAnalysis != nil {
		if market, err = json.Marshal(p.MarketAnalysis); err != nil {
			return err
		}
	}
	sources := p.DataSources
	if sources == nil {
		sources = []string{}
	}
	tag, err := r.pool.Exec(ctx, `UPDATE campaign_optimizations
SET status = 'completed', recommendations = $2, confidence_scores = $3, market_source = $4,
    market_analysis = $5, data_sources_used = $6, processing_time_seconds = $7,
    completed_at = $8, updated_at = $8
WHERE id = $1 AND status = 'analyzing'`,
		id, recs, conf, string(p.MarketSource), market, sources, p.ProcessingTime, p.CompletedAt)
	if err != nil {
		return err
	}
	return r.checkCAS(ctx, id, tag.RowsAffected())
}

// Fail records msg and moves an analyzing row to failed. Recommendations
// stay NULL.
func (r *OptimizationRepository) Fail(ctx context.Context, id string, msg string, at time.Time) error {
	tag, err := r.pool.Exec(ctx, `UPDATE campaign_optimizations
SET status = 'failed', error = $2, completed_at = $3, updated_at = $3
WHERE id = $1 AND status = 'analyzing'`, id, msg, at)
	if err != nil {
		return err
	}
	return r.checkCAS(ctx, id, tag.RowsAffected())
}

// MarkApplied stamps a completed row with the applied marker. The status
// does not change.
func (r *OptimizationRepository) MarkApplied(ctx context.Context, id string, applied domain.AppliedRecommendations, at time.Time) error {
	raw, err := json.Marshal(applied)
	if err != nil {
		return err
	}
	tag, err := r.pool.Exec(ctx, `UPDATE campaign_optimizations
SET recommendations_applied = $2, applied_at = $3, updated_at = $3
WHERE id = $1 AND status = 'completed'`, id, raw, at)
	if err != nil {
		return err
	}
	return r.checkCAS(ctx, id, tag.RowsAffected())
}

// checkCAS tells a missing row from a status mismatch after an UPDATE that
// touched nothing.
func (r *OptimizationRepository) checkCAS(ctx context.Context, id string, affected int64) error {
	if affected > 0 {
		return nil
	}
	var exists bool
	if err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM campaign_optimizations WHERE id = $1)`, id).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return port.ErrOptimizationNotFound
	}
	return port.ErrInvalidTransition
}

func (r *OptimizationRepository) scanOne(row pgx.Row) (*domain.Optimization, error) {
	o, err := scanOptimization(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return o, nil
}

func scanOptimization(row pgx.Row) (*domain.Optimization, error) {
	var (
		o                              domain.Optimization
		responses, recs, conf, applied []byte
		market                         []byte
		source                         string
	)
	err := row.Scan(
		&o.ID, &o.CampaignID, &o.OrgID, &o.UserID, &o.Type, &o.Status,
		&responses, &recs, &conf, &source, &market, &o.DataSourcesUsed,
		&o.ProcessingTimeSeconds, &o.Error, &applied, &o.CreatedAt, &o.UpdatedAt,
		&o.QuestionnaireCompletedAt, &o.CompletedAt, &o.AppliedAt,
	)
	if err != nil {
		return nil, err
	}
	o.MarketSource = domain.MarketSource(source)
	if responses != nil {
		if err = json.Unmarshal(responses, &o.Responses); err != nil {
			return nil, fmt.Errorf("decode responses of %s: %w", o.ID, err)
		}
	}
	if recs != nil {
		o.Recommendations = new(domain.Recommendations)
		if err = json.Unmarshal(recs, o.Recommendations); err != nil {
			return nil, fmt.Errorf("decode recommendations of %s: %w", o.ID, err)
		}
	}
	if conf != nil {
		o.Confidence = new(domain.ConfidenceScores)
		if err = json.Unmarshal(conf, o.Confidence); err != nil {
			return nil, fmt.Errorf("decode confidence of %s: %w", o.ID, err)
		}
	}
	if market != nil {
		o.MarketAnalysis = new(domain.MarketSummary)
		if err = json.Unmarshal(market, o.MarketAnalysis); err != nil {
			return nil, fmt.Errorf("decode market analysis of %s: %w", o.ID, err)
		}
	}
	if applied != nil {
		o.Applied = new(domain.AppliedRecommendations)
		if err = json.Unmarshal(applied, o.Applied); err != nil {
			return nil, fmt.Errorf("decode applied marker of %s: %w", o.ID, err)
		}
	}
	return &o, nil
}
