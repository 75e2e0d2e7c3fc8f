package rest

import (
	"context"
	"net/http"
	"time"

	"debtster-insights/internal/domain"
	"debtster-insights/internal/search"
	"debtster-insights/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type Searcher interface {
	Search(ctx context.Context, query string, opts search.Options) (*service.SearchResponse, error)
	AdvancedSearch(ctx context.Context, query string, opts search.Options) (*service.SearchResponse, error)
}

type Recommender interface {
	ForCustomer(ctx context.Context, customerID string, onlyActionable bool) ([]domain.Recommendation, error)
	Bulk(ctx context.Context, max int, onlyActionable bool) ([]domain.Recommendation, error)
	AgentSummaries(ctx context.Context) (map[string]*domain.AgentSummary, error)
	Agents(ctx context.Context) ([]domain.Agent, error)
}

type ReportExporter interface {
	StartRecommendationsExport(
		ctx context.Context,
		selected []string,
		maxRecommendations int,
		userID int64,
	) (string, error)
}

type Handler struct {
	searcher    Searcher
	recommender Recommender
	reports     ReportExporter
	exportList  ExportListService
}

func NewHandler(searcher Searcher, recommender Recommender, reports ReportExporter, exportList ExportListService) *Handler {
	return &Handler{
		searcher:    searcher,
		recommender: recommender,
		reports:     reports,
		exportList:  exportList,
	}
}

func (h *Handler) InitRouter() *chi.Mux {
	return h.InitRouterWithAuth(nil)
}

func (h *Handler) InitRouterWithAuth(authMiddleware func(http.Handler) http.Handler) *chi.Mux {
	r := chi.NewRouter()

	r.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Logger,
		middleware.Recoverer,
		middleware.Timeout(60*time.Second),
	)

	if authMiddleware != nil {
		r.Use(authMiddleware)
	}

	r.Route("/search", func(r chi.Router) {
		r.Post("/", h.search)
		r.Post("/advanced", h.advancedSearch)
	})

	r.Get("/customers/{customer_id}/recommendations", h.customerRecommendations)

	r.Route("/recommendations", func(r chi.Router) {
		r.Post("/", h.bulkRecommendations)
		r.Get("/agents", h.agentSummaries)
	})

	r.Get("/agents", h.listAgents)

	r.Route("/export", func(r chi.Router) {
		r.Get("/", h.listExports)
		r.Get("/{export_id}", h.getExport)
		r.Post("/recommendations", h.exportRecommendations)
	})

	return r
}
