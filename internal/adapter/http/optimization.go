package httpadapter

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"campaign-optimizer/internal/core/domain"
)

type statusResponse struct {
	OptimizationID string        `json:"optimization_id"`
	CampaignID     string        `json:"campaign_id"`
	Status         domain.Status `json:"status"`
	Error          string        `json:"error,omitempty"`
	Ready          bool          `json:"recommendations_ready"`
}

func (h *Handler) handleStatus(w http.ResponseWriter, r *http.Request) {
	opt, err := h.optimizer.GetStatus(r.Context(), chi.URLParam(r, "optimizationID"), userID(r))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, statusResponse{
		OptimizationID: opt.ID,
		CampaignID:     opt.CampaignID,
		Status:         opt.Status,
		Error:          opt.Error,
		Ready:          opt.Status == domain.StatusCompleted,
	})
}

func (h *Handler) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	opt, err := h.optimizer.GetRecommendations(r.Context(), chi.URLParam(r, "optimizationID"), userID(r))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, opt)
}

// handleApply reads the dimensions to apply. An empty body applies all
// of them.
func (h *Handler) handleApply(w http.ResponseWriter, r *http.Request) {
	sel := domain.ApplySelection{Timing: true, Platform: true, Budget: true, Audience: true}
	if r.ContentLength != 0 {
		sel = domain.ApplySelection{}
		if err := decodeBody(r, &sel); err != nil {
			http.Error(w, "invalid JSON", http.StatusBadRequest)
			return
		}
	}
	res, err := h.optimizer.ApplyRecommendations(r.Context(), chi.URLParam(r, "optimizationID"), userID(r), sel)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, res)
}
