package service

import (
	"context"
	"fmt"
	"time"

	"debtster-insights/internal/calendar"
	"debtster-insights/internal/domain"
	"debtster-insights/internal/recommend"
	"debtster-insights/internal/repository"
)

type AgentsProvider interface {
	List(ctx context.Context) ([]domain.Agent, error)
}

type RecommendService struct {
	repo        DebtsProvider
	agents      AgentsProvider
	weights     recommend.Weights
	maxDefault  int
	now         func() time.Time
	businessDay recommend.BusinessDayFunc
}

func NewRecommendService(repo DebtsProvider, agents AgentsProvider, maxDefault int) *RecommendService {
	return &RecommendService{
		repo:        repo,
		agents:      agents,
		weights:     recommend.DefaultWeights,
		maxDefault:  maxDefault,
		now:         time.Now,
		businessDay: calendar.IsBusinessDay,
	}
}

// ForCustomer ranks collection actions for a single customer. With
// onlyActionable set, live-contact actions are dropped outside business hours.
func (s *RecommendService) ForCustomer(ctx context.Context, customerID string, onlyActionable bool) ([]domain.Recommendation, error) {
	record, err := s.repo.GetByCustomerID(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load customer %s: %w", customerID, err)
	}

	recs := recommend.ForCustomer(record, s.weights, s.now())
	if onlyActionable {
		recs = recommend.FilterTimeAppropriate(recs, s.now(), s.businessDay)
	}
	return recs, nil
}

// Bulk produces the prioritized work queue across all open debts.
func (s *RecommendService) Bulk(ctx context.Context, max int, onlyActionable bool) ([]domain.Recommendation, error) {
	records, err := s.repo.List(ctx, repository.DebtsFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to load debt records: %w", err)
	}

	if max <= 0 {
		max = s.maxDefault
	}

	recs := recommend.Bulk(records, max, s.weights, s.now())
	if onlyActionable {
		recs = recommend.FilterTimeAppropriate(recs, s.now(), s.businessDay)
	}
	return recs, nil
}

// AgentSummaries groups the bulk work queue by collection agent.
func (s *RecommendService) AgentSummaries(ctx context.Context) (map[string]*domain.AgentSummary, error) {
	records, err := s.repo.List(ctx, repository.DebtsFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to load debt records: %w", err)
	}

	recs := recommend.Bulk(records, s.maxDefault, s.weights, s.now())
	return recommend.SummarizeByAgent(records, recs), nil
}

// Agents returns the collection agent roster with caseload counts.
func (s *RecommendService) Agents(ctx context.Context) ([]domain.Agent, error) {
	if s.agents == nil {
		return nil, fmt.Errorf("agent repository not configured")
	}
	return s.agents.List(ctx)
}
