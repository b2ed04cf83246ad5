package handlers

import (
	"net/http"

	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/api/response"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/apperrors"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/service"
)

// PortfolioHandler serves the derived portfolio: holdings, summary and allocation.
type PortfolioHandler struct {
	portfolioService *service.PortfolioService
}

// NewPortfolioHandler creates a new PortfolioHandler.
func NewPortfolioHandler(portfolioService *service.PortfolioService) *PortfolioHandler {
	return &PortfolioHandler{
		portfolioService: portfolioService,
	}
}

// View handles GET requests for the full derived view in one response.
//
// Endpoint: GET /api/portfolio/view
// Response: 200 OK with PortfolioView
// Error: 500 Internal Server Error if the transaction log cannot be read
func (h *PortfolioHandler) View(w http.ResponseWriter, r *http.Request) {
	view, err := h.portfolioService.View(r.Context())
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToDerivePortfolio.Error(), err.Error())
		return
	}
	response.RespondJSON(w, http.StatusOK, view)
}

// Holdings handles GET requests for the valued open positions.
//
// Endpoint: GET /api/portfolio/holdings
// Response: 200 OK with array of ValuedPosition
func (h *PortfolioHandler) Holdings(w http.ResponseWriter, r *http.Request) {
	holdings, err := h.portfolioService.Holdings(r.Context())
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToDerivePortfolio.Error(), err.Error())
		return
	}
	response.RespondJSON(w, http.StatusOK, holdings)
}

// Summary handles GET requests for the headline metrics.
//
// Endpoint: GET /api/portfolio/summary
// Response: 200 OK with PortfolioSummary
func (h *PortfolioHandler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.portfolioService.Summary(r.Context())
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToDerivePortfolio.Error(), err.Error())
		return
	}
	response.RespondJSON(w, http.StatusOK, summary)
}

// Allocation handles GET requests for the allocation chart.
//
// Endpoint: GET /api/portfolio/allocation
// Response: 200 OK with array of AllocationSlice, cash first
func (h *PortfolioHandler) Allocation(w http.ResponseWriter, r *http.Request) {
	allocation, err := h.portfolioService.Allocation(r.Context())
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToDerivePortfolio.Error(), err.Error())
		return
	}
	response.RespondJSON(w, http.StatusOK, allocation)
}
