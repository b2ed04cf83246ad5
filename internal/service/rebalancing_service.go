package service

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/model"
)

// RebalancingService manages target weights and produces rebalancing suggestions.
// Targets live in the TargetBook of the PortfolioService and are not persisted.
type RebalancingService struct {
	portfolio *PortfolioService
}

// NewRebalancingService creates a new RebalancingService on top of portfolio.
func NewRebalancingService(portfolio *PortfolioService) *RebalancingService {
	return &RebalancingService{portfolio: portfolio}
}

// Targets returns the current and target weight of every held asset, in holdings order.
func (s *RebalancingService) Targets(ctx context.Context) ([]model.TargetAllocation, error) {
	view, err := s.portfolio.View(ctx)
	if err != nil {
		return nil, err
	}
	return view.Targets, nil
}

// SetTarget stores the target weight of asset and returns the updated target list.
//
// The view is derived first so that assets bought since the last read are known.
// Returns apperrors.ErrAssetNotFound when asset is not held and apperrors.ErrInvalidTarget
// when target is outside 0..100.
func (s *RebalancingService) SetTarget(ctx context.Context, asset string, target decimal.Decimal) ([]model.TargetAllocation, error) {
	if _, err := s.portfolio.View(ctx); err != nil {
		return nil, err
	}
	if err := s.portfolio.TargetBook().Set(asset, target); err != nil {
		return nil, err
	}
	return s.Targets(ctx)
}

// ResetTargets sets every target back to the asset's current weight.
func (s *RebalancingService) ResetTargets(ctx context.Context) ([]model.TargetAllocation, error) {
	if _, err := s.portfolio.View(ctx); err != nil {
		return nil, err
	}
	s.portfolio.TargetBook().Reset()
	return s.Targets(ctx)
}

// Suggestions returns the trades that move the portfolio toward its normalized targets.
func (s *RebalancingService) Suggestions(ctx context.Context) ([]model.RebalancingSuggestion, error) {
	view, err := s.portfolio.View(ctx)
	if err != nil {
		return nil, err
	}
	return view.Suggestions, nil
}
