package httpadapter

import (
	"net/http"
	"strconv"
)

// handleMarketIntelligence returns the full record, or the summary when
// summary=true. Unavailable upstream data never fails the request.
func (h *Handler) handleMarketIntelligence(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	industry := q.Get("industry")
	if q.Get("summary") == "true" {
		h.writeJSON(w, http.StatusOK, h.market.Summary(r.Context(), industry))
		return
	}
	lookback := 0
	if s := q.Get("lookback_months"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 {
			http.Error(w, "invalid lookback_months", http.StatusBadRequest)
			return
		}
		lookback = n
	}
	h.writeJSON(w, http.StatusOK, h.market.Get(r.Context(), industry, q.Get("geography"), lookback))
}
