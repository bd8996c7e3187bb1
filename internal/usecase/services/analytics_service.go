package services

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/api-sage/deposit-ledger/internal/adapter/http/models"
	"github.com/api-sage/deposit-ledger/internal/commons"
	"github.com/api-sage/deposit-ledger/internal/domain"
	"github.com/api-sage/deposit-ledger/internal/logger"
)

// AnalyticsService exposes the read-only projections the chart layer
// consumes. Everything here is a pure read with no write side effects.
type AnalyticsService struct {
	depositRepo domain.DepositRepository
}

func NewAnalyticsService(depositRepo domain.DepositRepository) *AnalyticsService {
	return &AnalyticsService{depositRepo: depositRepo}
}

func (s *AnalyticsService) DepositsByType(ctx context.Context) (commons.Response[[]models.DepositTypeAggregateResponse], error) {
	aggregates, err := s.depositRepo.ActiveSumsByType(ctx)
	if err != nil {
		logger.Error("analytics service deposits by type failed", err, nil)
		return commons.ErrorResponse[[]models.DepositTypeAggregateResponse]("failed to load analytics", "Unable to load analytics right now"), err
	}

	return commons.SuccessResponse("analytics retrieved", mapTypeAggregates(aggregates)), nil
}

func (s *AnalyticsService) DepositsTimeline(ctx context.Context) (commons.Response[[]models.TimelinePointResponse], error) {
	points, err := s.depositRepo.OpenTimeline(ctx)
	if err != nil {
		logger.Error("analytics service timeline failed", err, nil)
		return commons.ErrorResponse[[]models.TimelinePointResponse]("failed to load analytics", "Unable to load analytics right now"), err
	}

	return commons.SuccessResponse("analytics retrieved", mapTimelinePoints(points)), nil
}

func (s *AnalyticsService) ActiveAmounts(ctx context.Context) (commons.Response[[]string], error) {
	amounts, err := s.depositRepo.ActiveAmounts(ctx)
	if err != nil {
		logger.Error("analytics service active amounts failed", err, nil)
		return commons.ErrorResponse[[]string]("failed to load analytics", "Unable to load analytics right now"), err
	}

	out := make([]string, 0, len(amounts))
	for _, amount := range amounts {
		out = append(out, amount.StringFixed(2))
	}

	return commons.SuccessResponse("analytics retrieved", out), nil
}

// Dashboard fans the three projections out concurrently; they are
// independent reads against the same store.
func (s *AnalyticsService) Dashboard(ctx context.Context) (commons.Response[models.DashboardResponse], error) {
	var (
		aggregates []domain.DepositTypeAggregate
		points     []domain.TimelinePoint
		amounts    []string
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		aggregates, err = s.depositRepo.ActiveSumsByType(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		points, err = s.depositRepo.OpenTimeline(gctx)
		return err
	})
	g.Go(func() error {
		raw, err := s.depositRepo.ActiveAmounts(gctx)
		if err != nil {
			return err
		}
		amounts = make([]string, 0, len(raw))
		for _, amount := range raw {
			amounts = append(amounts, amount.StringFixed(2))
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("analytics service dashboard failed", err, nil)
		return commons.ErrorResponse[models.DashboardResponse]("failed to load analytics", "Unable to load analytics right now"), err
	}

	response := models.DashboardResponse{
		ByType:        mapTypeAggregates(aggregates),
		Timeline:      mapTimelinePoints(points),
		ActiveAmounts: amounts,
	}

	return commons.SuccessResponse("analytics retrieved", response), nil
}

func mapTypeAggregates(aggregates []domain.DepositTypeAggregate) []models.DepositTypeAggregateResponse {
	out := make([]models.DepositTypeAggregateResponse, 0, len(aggregates))
	for _, agg := range aggregates {
		out = append(out, models.DepositTypeAggregateResponse{
			DepositType:  agg.DepositType,
			DepositCount: agg.DepositCount,
			TotalAmount:  agg.TotalAmount.StringFixed(2),
		})
	}
	return out
}

func mapTimelinePoints(points []domain.TimelinePoint) []models.TimelinePointResponse {
	out := make([]models.TimelinePointResponse, 0, len(points))
	for _, point := range points {
		out = append(out, models.TimelinePointResponse{
			OpenDate:    point.OpenDate.Format(dateLayout),
			TotalAmount: point.TotalAmount.StringFixed(2),
		})
	}
	return out
}
