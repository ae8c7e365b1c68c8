package memory

import (
	"context"
	"sync"
	"time"

	"campaign-optimizer/internal/core/domain"
	"campaign-optimizer/internal/core/port"
)

// CampaignStore keeps campaigns and organizations in maps.
type CampaignStore struct {
	mu        sync.RWMutex
	campaigns map[string]domain.Campaign
	orgs      map[string]domain.Organization
}

func NewCampaignStore() *CampaignStore {
	return &CampaignStore{
		campaigns: make(map[string]domain.Campaign),
		orgs:      make(map[string]domain.Organization),
	}
}

// PutCampaign inserts or replaces a campaign.
func (s *CampaignStore) PutCampaign(c domain.Campaign) {
	s.mu.Lock()
	s.campaigns[c.ID] = c
	s.mu.Unlock()
}

// PutOrganization inserts or replaces an organization.
func (s *CampaignStore) PutOrganization(o domain.Organization) {
	s.mu.Lock()
	s.orgs[o.ID] = o
	s.mu.Unlock()
}

func (s *CampaignStore) GetCampaign(_ context.Context, id string) (*domain.Campaign, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.campaigns[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (s *CampaignStore) GetOrganization(_ context.Context, id string) (*domain.Organization, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	o, ok := s.orgs[id]
	if !ok {
		return nil, nil
	}
	return &o, nil
}

func (s *CampaignStore) UpdateCampaign(_ context.Context, c domain.Campaign) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.campaigns[c.ID]; !ok {
		return port.ErrCampaignNotFound
	}
	s.campaigns[c.ID] = c
	return nil
}

func (s *CampaignStore) CountPriorCampaigns(_ context.Context, orgID, excludeID string, since time.Time) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, c := range s.campaigns {
		if c.OrgID != orgID || c.ID == excludeID || c.CreatedAt.Before(since) {
			continue
		}
		if c.Status == "completed" || c.Status == "active" {
			n++
		}
	}
	return n, nil
}
