package rest

import (
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

func (h *Handler) customerRecommendations(w http.ResponseWriter, r *http.Request) {
	customerID := chi.URLParam(r, "customer_id")
	if customerID == "" {
		ErrorBadRequest(w, "customer_id is required")
		return
	}

	onlyActionable := false
	if v := r.URL.Query().Get("only_actionable"); v != "" {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			ErrorBadRequest(w, "only_actionable must be boolean")
			return
		}
		onlyActionable = parsed
	}

	recs, err := h.recommender.ForCustomer(r.Context(), customerID, onlyActionable)
	if err != nil {
		log.Printf("[HTTP] customer recommendations error: %v", err)
		ErrorNotFound(w, "customer not found")
		return
	}

	Success(w, "", recs)
}

func (h *Handler) bulkRecommendations(w http.ResponseWriter, r *http.Request) {
	req, err := ValidateRecommendationsRequest(r)
	if err != nil {
		if _, ok := err.(*ValidationError); ok {
			ErrorBadRequest(w, err.Error())
			return
		}
		ErrorBadRequest(w, "invalid JSON")
		return
	}

	recs, err := h.recommender.Bulk(r.Context(), req.MaxRecommendations, req.OnlyActionable)
	if err != nil {
		log.Printf("[HTTP] bulk recommendations error: %v", err)
		ErrorInternal(w, "failed to build recommendations")
		return
	}

	Success(w, "", recs)
}

func (h *Handler) agentSummaries(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.recommender.AgentSummaries(r.Context())
	if err != nil {
		log.Printf("[HTTP] agent summaries error: %v", err)
		ErrorInternal(w, "failed to build agent summaries")
		return
	}

	Success(w, "", summaries)
}

func (h *Handler) listAgents(w http.ResponseWriter, r *http.Request) {
	agents, err := h.recommender.Agents(r.Context())
	if err != nil {
		log.Printf("[HTTP] list agents error: %v", err)
		ErrorInternal(w, "failed to list agents")
		return
	}

	Success(w, "", agents)
}
