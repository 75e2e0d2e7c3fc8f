package rest

import (
	"log"
	"net/http"
)

func (h *Handler) search(w http.ResponseWriter, r *http.Request) {
	req, err := ValidateSearchRequest(r)
	if err != nil {
		if _, ok := err.(*ValidationError); ok {
			ErrorBadRequest(w, err.Error())
			return
		}
		ErrorBadRequest(w, "invalid JSON")
		return
	}

	resp, err := h.searcher.Search(r.Context(), req.Query, req.ToOptions(0))
	if err != nil {
		log.Printf("[HTTP] search error: %v", err)
		ErrorInternal(w, "search failed")
		return
	}

	Success(w, "", resp)
}

func (h *Handler) advancedSearch(w http.ResponseWriter, r *http.Request) {
	req, err := ValidateSearchRequest(r)
	if err != nil {
		if _, ok := err.(*ValidationError); ok {
			ErrorBadRequest(w, err.Error())
			return
		}
		ErrorBadRequest(w, "invalid JSON")
		return
	}

	resp, err := h.searcher.AdvancedSearch(r.Context(), req.Query, req.ToOptions(0))
	if err != nil {
		log.Printf("[HTTP] advanced search error: %v", err)
		ErrorInternal(w, "search failed")
		return
	}

	Success(w, "", resp)
}
