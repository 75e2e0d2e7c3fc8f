package rest

import (
	"log"
	"net/http"

	"debtster-insights/internal/transport/auth"
)

func (h *Handler) exportRecommendations(w http.ResponseWriter, r *http.Request) {
	req, err := ValidateReportExportRequest(r)
	if err != nil {
		if _, ok := err.(*ValidationError); ok {
			ErrorBadRequest(w, err.Error())
			return
		}
		ErrorBadRequest(w, "invalid JSON")
		return
	}

	userID, err := auth.GetUserID(r.Context())
	if err != nil {
		ErrorUnauthorized(w, "Unauthorized")
		return
	}

	exportID, err := h.reports.StartRecommendationsExport(r.Context(), req.Fields, req.MaxRecommendations, userID)
	if err != nil {
		log.Printf("[HTTP] startRecommendationsExport error: %v", err)
		ErrorInternal(w, "failed to start export")
		return
	}

	SuccessAccepted(w, "הייצוא נוסף לתור", map[string]interface{}{
		"export_id": exportID,
	})
}
