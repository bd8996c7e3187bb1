package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/api-sage/deposit-ledger/internal/adapter/http/models"
	"github.com/api-sage/deposit-ledger/internal/commons"
	"github.com/api-sage/deposit-ledger/internal/domain"
	"github.com/api-sage/deposit-ledger/internal/logger"
)

type DepositPlanService struct {
	planRepo domain.DepositPlanRepository
}

func NewDepositPlanService(planRepo domain.DepositPlanRepository) *DepositPlanService {
	return &DepositPlanService{planRepo: planRepo}
}

func (s *DepositPlanService) CreatePlan(ctx context.Context, req models.SaveDepositPlanRequest) (commons.Response[models.DepositPlanResponse], error) {
	logger.Info("plan service create plan request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		logger.Error("plan service create plan validation failed", err, nil)
		return commons.ErrorResponse[models.DepositPlanResponse]("validation failed", err.Error()),
			fmt.Errorf("%w: %s", domain.ErrValidation, err.Error())
	}

	plan, err := planFromRequest(req)
	if err != nil {
		return commons.ErrorResponse[models.DepositPlanResponse]("validation failed", err.Error()),
			fmt.Errorf("%w: %s", domain.ErrValidation, err.Error())
	}

	created, err := s.planRepo.Create(ctx, plan)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateEntity) {
			return commons.ErrorResponse[models.DepositPlanResponse]("duplicate entity", "a plan with this name already exists"), err
		}
		logger.Error("plan service create plan repository failed", err, nil)
		return commons.ErrorResponse[models.DepositPlanResponse]("failed to create plan", "Unable to create plan right now"), err
	}

	logger.Info("plan service create plan success", logger.Fields{
		"planId": created.ID,
	})

	return commons.SuccessResponse("plan created successfully", mapPlanToResponse(created)), nil
}

func (s *DepositPlanService) UpdatePlan(ctx context.Context, id int64, req models.SaveDepositPlanRequest) (commons.Response[models.DepositPlanResponse], error) {
	logger.Info("plan service update plan request", logger.Fields{
		"planId":  id,
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		logger.Error("plan service update plan validation failed", err, nil)
		return commons.ErrorResponse[models.DepositPlanResponse]("validation failed", err.Error()),
			fmt.Errorf("%w: %s", domain.ErrValidation, err.Error())
	}

	plan, err := planFromRequest(req)
	if err != nil {
		return commons.ErrorResponse[models.DepositPlanResponse]("validation failed", err.Error()),
			fmt.Errorf("%w: %s", domain.ErrValidation, err.Error())
	}
	plan.ID = id

	updated, err := s.planRepo.Update(ctx, plan)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return commons.ErrorResponse[models.DepositPlanResponse]("plan not found"), err
		}
		if errors.Is(err, domain.ErrDuplicateEntity) {
			return commons.ErrorResponse[models.DepositPlanResponse]("duplicate entity", "a plan with this name already exists"), err
		}
		logger.Error("plan service update plan repository failed", err, logger.Fields{
			"planId": id,
		})
		return commons.ErrorResponse[models.DepositPlanResponse]("failed to update plan", "Unable to update plan right now"), err
	}

	logger.Info("plan service update plan success", logger.Fields{
		"planId": updated.ID,
	})

	return commons.SuccessResponse("plan updated successfully", mapPlanToResponse(updated)), nil
}

func (s *DepositPlanService) DeletePlan(ctx context.Context, id int64) (commons.Response[struct{}], error) {
	logger.Info("plan service delete plan request", logger.Fields{
		"planId": id,
	})

	if err := s.planRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return commons.ErrorResponse[struct{}]("plan not found"), err
		}
		if errors.Is(err, domain.ErrInvalidStateTransition) {
			return commons.ErrorResponse[struct{}]("plan is in use", "plan is referenced by open deposits and cannot be deleted"), err
		}
		logger.Error("plan service delete plan repository failed", err, logger.Fields{
			"planId": id,
		})
		return commons.ErrorResponse[struct{}]("failed to delete plan", "Unable to delete plan right now"), err
	}

	logger.Info("plan service delete plan success", logger.Fields{
		"planId": id,
	})

	return commons.SuccessResponse("plan deleted successfully", struct{}{}), nil
}

func (s *DepositPlanService) ListPlans(ctx context.Context) (commons.Response[[]models.DepositPlanResponse], error) {
	plans, err := s.planRepo.List(ctx)
	if err != nil {
		logger.Error("plan service list plans failed", err, nil)
		return commons.ErrorResponse[[]models.DepositPlanResponse]("failed to list plans", "Unable to list plans right now"), err
	}

	return commons.SuccessResponse("plans retrieved", mapPlansToResponses(plans)), nil
}

func (s *DepositPlanService) ListActivePlans(ctx context.Context) (commons.Response[[]models.DepositPlanResponse], error) {
	plans, err := s.planRepo.ListActive(ctx)
	if err != nil {
		logger.Error("plan service list active plans failed", err, nil)
		return commons.ErrorResponse[[]models.DepositPlanResponse]("failed to list plans", "Unable to list plans right now"), err
	}

	return commons.SuccessResponse("plans retrieved", mapPlansToResponses(plans)), nil
}

func (s *DepositPlanService) PlanStats(ctx context.Context, id int64) (commons.Response[models.DepositPlanStatsResponse], error) {
	if _, err := s.planRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return commons.ErrorResponse[models.DepositPlanStatsResponse]("plan not found"), err
		}
		logger.Error("plan service plan stats lookup failed", err, logger.Fields{
			"planId": id,
		})
		return commons.ErrorResponse[models.DepositPlanStatsResponse]("failed to load plan stats", "Unable to load plan stats right now"), err
	}

	stats, err := s.planRepo.Stats(ctx, id)
	if err != nil {
		logger.Error("plan service plan stats failed", err, logger.Fields{
			"planId": id,
		})
		return commons.ErrorResponse[models.DepositPlanStatsResponse]("failed to load plan stats", "Unable to load plan stats right now"), err
	}

	response := models.DepositPlanStatsResponse{
		PlanID:            stats.PlanID,
		TotalDeposits:     stats.TotalDeposits,
		ActiveDeposits:    stats.ActiveDeposits,
		ClosedDeposits:    stats.ClosedDeposits,
		TotalActiveAmount: stats.TotalActiveAmount.StringFixed(2),
		TotalAmount:       stats.TotalAmount.StringFixed(2),
	}

	return commons.SuccessResponse("plan stats retrieved", response), nil
}

func planFromRequest(req models.SaveDepositPlanRequest) (domain.DepositPlan, error) {
	rate, err := decimal.NewFromString(strings.TrimSpace(req.InterestRate))
	if err != nil {
		return domain.DepositPlan{}, fmt.Errorf("invalid interest rate: %w", err)
	}

	minAmount, err := decimal.NewFromString(strings.TrimSpace(req.MinAmount))
	if err != nil {
		return domain.DepositPlan{}, fmt.Errorf("invalid min amount: %w", err)
	}

	var maxAmount *decimal.Decimal
	if raw := strings.TrimSpace(req.MaxAmount); raw != "" {
		parsed, err := decimal.NewFromString(raw)
		if err != nil {
			return domain.DepositPlan{}, fmt.Errorf("invalid max amount: %w", err)
		}
		maxAmount = &parsed
	}

	penalty := decimal.Zero
	if raw := strings.TrimSpace(req.EarlyWithdrawalPenalty); raw != "" {
		parsed, err := decimal.NewFromString(raw)
		if err != nil {
			return domain.DepositPlan{}, fmt.Errorf("invalid early withdrawal penalty: %w", err)
		}
		penalty = parsed
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	return domain.DepositPlan{
		Name:                   strings.TrimSpace(req.Name),
		Description:            strings.TrimSpace(req.Description),
		InterestRate:           rate,
		MinAmount:              minAmount,
		MaxAmount:              maxAmount,
		DurationMonths:         req.DurationMonths,
		EarlyWithdrawalPenalty: penalty,
		IsActive:               isActive,
	}, nil
}
