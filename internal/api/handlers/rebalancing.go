package handlers

import (
	"net/http"

	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/api/request"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/api/response"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/apperrors"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/service"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/validation"
)

// RebalancingHandler handles target weights and rebalancing suggestions.
type RebalancingHandler struct {
	rebalancingService *service.RebalancingService
}

// NewRebalancingHandler creates a new RebalancingHandler.
func NewRebalancingHandler(rebalancingService *service.RebalancingService) *RebalancingHandler {
	return &RebalancingHandler{
		rebalancingService: rebalancingService,
	}
}

// Targets handles GET /api/rebalancing/targets.
func (h *RebalancingHandler) Targets(w http.ResponseWriter, r *http.Request) {
	targets, err := h.rebalancingService.Targets(r.Context())
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToDerivePortfolio.Error(), err.Error())
		return
	}
	response.RespondJSON(w, http.StatusOK, targets)
}

// SetTarget handles PUT requests setting the target weight of one asset.
//
// Endpoint: PUT /api/rebalancing/targets/{asset}
// Request Body: {"target": 70}
// Response: 200 OK with the updated array of TargetAllocation
// Error: 400 Bad Request if the target is missing or outside 0..100
// Error: 404 Not Found if the asset is not held
func (h *RebalancingHandler) SetTarget(w http.ResponseWriter, r *http.Request) {
	asset, err := pathParam(r, "asset")
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid asset in path", err.Error())
		return
	}

	req, err := parseJSON[request.SetTargetRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateSetTarget(asset, req); err != nil {
		respondValidationError(w, err)
		return
	}

	targets, err := h.rebalancingService.SetTarget(r.Context(), asset, req.Target.Decimal)
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToDerivePortfolio)
		return
	}
	response.RespondJSON(w, http.StatusOK, targets)
}

// ResetTargets handles POST /api/rebalancing/targets/reset.
// Every target is set back to the asset's current weight.
func (h *RebalancingHandler) ResetTargets(w http.ResponseWriter, r *http.Request) {
	targets, err := h.rebalancingService.ResetTargets(r.Context())
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToDerivePortfolio.Error(), err.Error())
		return
	}
	response.RespondJSON(w, http.StatusOK, targets)
}

// Suggestions handles GET /api/rebalancing/suggestions.
func (h *RebalancingHandler) Suggestions(w http.ResponseWriter, r *http.Request) {
	suggestions, err := h.rebalancingService.Suggestions(r.Context())
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToDerivePortfolio.Error(), err.Error())
		return
	}
	response.RespondJSON(w, http.StatusOK, suggestions)
}
