// Package memory holds in-process implementations of the repository,
// cache and lock ports. They back tests and single-node deployments.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"campaign-optimizer/internal/core/domain"
	"campaign-optimizer/internal/core/port"
)

// OptimizationStore is an arena of optimization records guarded by one
// mutex. Every status change is a compare-and-set under that mutex.
type OptimizationStore struct {
	mu   sync.Mutex
	byID map[string]*record
	seq  int64
}

type record struct {
	opt domain.Optimization
	seq int64
}

// NewOptimizationStore returns an empty store. The zero value is not usable;
// always construct the store through this function.
func NewOptimizationStore() *OptimizationStore {
	return &OptimizationStore{byID: make(map[string]*record)}
}

// CreateOrGetPending implements port.OptimizationRepository.
func (s *OptimizationStore) CreateOrGetPending(_ context.Context, opt domain.Optimization) (*domain.Optimization, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.byID {
		if r.opt.CampaignID != opt.CampaignID || !r.opt.Status.Active() {
			continue
		}
		if r.opt.Status == domain.StatusAnalyzing {
			return nil, false, port.ErrOptimizationInProgress
		}
		out := clone(r.opt)
		return &out, false, nil
	}
	s.seq++
	opt.Status = domain.StatusPending
	s.byID[opt.ID] = &record{opt: clone(opt), seq: s.seq}
	out := clone(opt)
	return &out, true, nil
}

// Get returns a copy of the record, or nil, nil when no record has the id.
// Callers may modify the copy freely.
func (s *OptimizationStore) Get(_ context.Context, id string) (*domain.Optimization, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.byID[id]
	if !ok {
		return nil, nil
	}
	out := clone(r.opt)
	return &out, nil
}

// ListByCampaign returns newest first; records created in the same instant
// keep insertion order reversed.
func (s *OptimizationStore) ListByCampaign(_ context.Context, campaignID string, limit int) ([]domain.Optimization, error) {
	s.mu.Lock()
	var rs []*record
	for _, r := range s.byID {
		if r.opt.CampaignID == campaignID {
			rs = append(rs, r)
		}
	}
	sort.Slice(rs, func(i, j int) bool {
		if !rs[i].opt.CreatedAt.Equal(rs[j].opt.CreatedAt) {
			return rs[i].opt.CreatedAt.After(rs[j].opt.CreatedAt)
		}
		return rs[i].seq > rs[j].seq
	})
	if limit > 0 && len(rs) > limit {
		rs = rs[:limit]
	}
	out := make([]domain.Optimization, 0, len(rs))
	for _, r := range rs {
		out = append(out, clone(r.opt))
	}
	s.mu.Unlock()
	return out, nil
}

// SubmitResponses stores the questionnaire answers and moves a pending
// record to analyzing. It returns port.ErrInvalidTransition when the record
// is in any other state.
func (s *OptimizationStore) SubmitResponses(_ context.Context, id string, responses domain.Responses, at time.Time) error {
	return s.transition(id, domain.StatusPending, domain.StatusAnalyzing, func(o *domain.Optimization) {
		o.Responses = copyResponses(responses)
		o.QuestionnaireCompletedAt = &at
		o.UpdatedAt = at
	})
}

// Complete stores the analysis result and moves an analyzing record to
// completed. Recommendations, confidence and the market analysis are set
// together in one step.
func (s *OptimizationStore) Complete(_ context.Context, id string, p port.CompleteParams) error {
	return s.transition(id, domain.StatusAnalyzing, domain.StatusCompleted, func(o *domain.Optimization) {
		recs := p.Recommendations
		conf := p.Confidence
		secs := p.ProcessingTime
		at := p.CompletedAt
		o.Recommendations = &recs
		o.Confidence = &conf
		o.MarketSource = p.MarketSource
		if p.MarketAnalysis != nil {
			m := *p.MarketAnalysis
			o.MarketAnalysis = &m
		}
		o.DataSourcesUsed = append([]string(nil), p.DataSources...)
		o.ProcessingTimeSeconds = &secs
		o.CompletedAt = &at
		o.UpdatedAt = at
	})
}

// Fail records the error message and moves an analyzing record to failed.
// No recommendations are stored.
func (s *OptimizationStore) Fail(_ context.Context, id string, msg string, at time.Time) error {
	return s.transition(id, domain.StatusAnalyzing, domain.StatusFailed, func(o *domain.Optimization) {
		o.Error = msg
		o.CompletedAt = &at
		o.UpdatedAt = at
	})
}

// MarkApplied stamps a completed record. The status does not change.
func (s *OptimizationStore) MarkApplied(_ context.Context, id string, applied domain.AppliedRecommendations, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.byID[id]
	if !ok {
		return port.ErrOptimizationNotFound
	}
	if r.opt.Status != domain.StatusCompleted {
		return port.ErrInvalidTransition
	}
	a := applied
	a.Changes = append([]string(nil), applied.Changes...)
	r.opt.Applied = &a
	r.opt.AppliedAt = &at
	r.opt.UpdatedAt = at
	return nil
}

func (s *OptimizationStore) transition(id string, from, to domain.Status, apply func(*domain.Optimization)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.byID[id]
	if !ok {
		return port.ErrOptimizationNotFound
	}
	if r.opt.Status != from || !from.CanTransition(to) {
		return port.ErrInvalidTransition
	}
	r.opt.Status = to
	apply(&r.opt)
	return nil
}

func clone(o domain.Optimization) domain.Optimization {
	o.Responses = copyResponses(o.Responses)
	o.DataSourcesUsed = append([]string(nil), o.DataSourcesUsed...)
	return o
}

func copyResponses(r domain.Responses) domain.Responses {
	if r == nil {
		return nil
	}
	out := make(domain.Responses, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}
