package httpadapter

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"campaign-optimizer/internal/core/domain"
	"campaign-optimizer/internal/core/port"
)

type startRequest struct {
	OptimizationType domain.OptimizationType `json:"optimization_type"`
}

type submitRequest struct {
	OptimizationID string           `json:"optimization_id" validate:"required"`
	Responses      domain.Responses `json:"responses" validate:"required"`
}

// handleStart creates a pending optimization, or returns the pending one.
func (h *Handler) handleStart(w http.ResponseWriter, r *http.Request) {
	var req startRequest
	if err := decodeBody(r, &req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	campaignID := chi.URLParam(r, "campaignID")
	opt, err := h.optimizer.StartOptimization(r.Context(), campaignID, userID(r), req.OptimizationType)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, opt)
}

func (h *Handler) handleQuestionnaire(w http.ResponseWriter, r *http.Request) {
	qn, err := h.optimizer.GetQuestionnaire(r.Context(), chi.URLParam(r, "campaignID"), userID(r))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, qn)
}

// handleSubmit validates the answers and starts the analysis. An inline
// analysis answers 200 with recommendations; a deferred one answers 202.
func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if err := decodeBody(r, &req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		http.Error(w, "optimization_id and responses are required", http.StatusBadRequest)
		return
	}

	opt, err := h.optimizer.GetStatus(r.Context(), req.OptimizationID, userID(r))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if opt.CampaignID != chi.URLParam(r, "campaignID") {
		h.writeError(w, r, port.ErrOptimizationNotFound)
		return
	}

	res, err := h.optimizer.ProcessQuestionnaire(r.Context(), req.OptimizationID, userID(r), req.Responses)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	status := http.StatusOK
	if res.Status == domain.StatusAnalyzing {
		status = http.StatusAccepted
	}
	h.writeJSON(w, status, res)
}

func (h *Handler) handleHistory(w http.ResponseWriter, r *http.Request) {
	list, err := h.optimizer.History(r.Context(), chi.URLParam(r, "campaignID"), userID(r))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if list == nil {
		list = []domain.Optimization{}
	}
	h.writeJSON(w, http.StatusOK, map[string]any{"optimizations": list})
}
