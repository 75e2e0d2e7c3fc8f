package service

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"time"

	"debtster-insights/internal/clients"
	"debtster-insights/internal/domain"
	"debtster-insights/internal/repository"
	"debtster-insights/internal/search"
)

type DebtsProvider interface {
	List(ctx context.Context, f repository.DebtsFilter) ([]domain.DebtRecord, error)
	GetByCustomerID(ctx context.Context, customerID string) (*domain.DebtRecord, error)
}

type SearchResponse struct {
	Results []domain.SearchResult `json:"results"`
	Summary domain.SearchSummary  `json:"summary"`
}

type SearchService struct {
	repo       DebtsProvider
	redis      *clients.RedisClient
	maxResults int
	cacheTTL   time.Duration
}

func NewSearchService(repo DebtsProvider, redis *clients.RedisClient, maxResults int, cacheTTL time.Duration) *SearchService {
	return &SearchService{
		repo:       repo,
		redis:      redis,
		maxResults: maxResults,
		cacheTTL:   cacheTTL,
	}
}

// Search runs a fuzzy single-query search over all debt records.
func (s *SearchService) Search(ctx context.Context, query string, opts search.Options) (*SearchResponse, error) {
	return s.run(ctx, "simple", query, opts, search.Search)
}

// AdvancedSearch splits the query into terms and requires every term to match.
func (s *SearchService) AdvancedSearch(ctx context.Context, query string, opts search.Options) (*SearchResponse, error) {
	return s.run(ctx, "advanced", query, opts, search.AdvancedSearch)
}

type searchFunc func(records []domain.DebtRecord, query string, opts search.Options) []domain.SearchResult

func (s *SearchService) run(ctx context.Context, mode, query string, opts search.Options, fn searchFunc) (*SearchResponse, error) {
	if opts.MaxResults == 0 && s.maxResults > 0 {
		opts.MaxResults = s.maxResults
	}

	cacheKey := s.cacheKey(mode, query, opts)

	if cached := s.fromCache(ctx, cacheKey); cached != nil {
		return cached, nil
	}

	records, err := s.repo.List(ctx, repository.DebtsFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to load debt records: %w", err)
	}

	started := time.Now()
	results := fn(records, query, opts)
	elapsed := time.Since(started).Milliseconds()

	resp := &SearchResponse{
		Results: results,
		Summary: search.Summarize(results, elapsed),
	}

	s.toCache(ctx, cacheKey, resp)
	return resp, nil
}

func (s *SearchService) cacheKey(mode, query string, opts search.Options) string {
	payload, _ := json.Marshal(struct {
		Mode  string         `json:"mode"`
		Query string         `json:"query"`
		Opts  search.Options `json:"opts"`
	}{mode, query, opts})

	sum := sha256.Sum256(payload)
	return fmt.Sprintf("search:%x", sum[:16])
}

func (s *SearchService) fromCache(ctx context.Context, key string) *SearchResponse {
	if s.redis == nil || s.cacheTTL <= 0 {
		return nil
	}

	data, err := s.redis.Get(ctx, key)
	if err != nil {
		return nil
	}

	var resp SearchResponse
	if err := json.Unmarshal([]byte(data), &resp); err != nil {
		return nil
	}
	return &resp
}

func (s *SearchService) toCache(ctx context.Context, key string, resp *SearchResponse) {
	if s.redis == nil || s.cacheTTL <= 0 {
		return
	}

	data, err := json.Marshal(resp)
	if err != nil {
		return
	}
	_ = s.redis.Set(ctx, key, string(data), s.cacheTTL)
}
