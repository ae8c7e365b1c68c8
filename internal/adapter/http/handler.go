package httpadapter

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"

	"campaign-optimizer/internal/core/domain"
	"campaign-optimizer/internal/core/port"
)

// userHeader carries the caller identity set by the upstream gateway.
const userHeader = "X-User-ID"

// Handler is the inbound HTTP adapter. It holds the optimizer and the
// market intelligence service and registers their routes on a chi.Router.
type Handler struct {
	optimizer port.Optimizer
	market    port.MarketIntelligence
	logger    *slog.Logger
	validate  *validator.Validate
	router    chi.Router
}

// NewHandler creates a handler with all routes configured.
func NewHandler(optimizer port.Optimizer, market port.MarketIntelligence, logger *slog.Logger) *Handler {
	h := &Handler{
		optimizer: optimizer,
		market:    market,
		logger:    logger,
		validate:  domain.Validator(),
	}
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.Recoverer)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/market-intelligence", h.handleMarketIntelligence)

		r.Group(func(r chi.Router) {
			r.Use(requireUser)
			r.Route("/campaigns/{campaignID}/optimize", func(r chi.Router) {
				r.Post("/", h.handleStart)
				r.Get("/questionnaire", h.handleQuestionnaire)
				r.Post("/questionnaire", h.handleSubmit)
				r.Get("/history", h.handleHistory)
			})
			r.Route("/optimizations/{optimizationID}", func(r chi.Router) {
				r.Get("/status", h.handleStatus)
				r.Get("/recommendations", h.handleRecommendations)
				r.Post("/apply", h.handleApply)
			})
		})
	})
	h.router = r
	return h
}

// Router returns the underlying http.Handler.
func (h *Handler) Router() http.Handler {
	return h.router
}

func requireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get(userHeader) == "" {
			http.Error(w, "missing "+userHeader, http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func userID(r *http.Request) string {
	return r.Header.Get(userHeader)
}
