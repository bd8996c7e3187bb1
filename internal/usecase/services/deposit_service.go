package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/api-sage/deposit-ledger/internal/adapter/http/models"
	"github.com/api-sage/deposit-ledger/internal/commons"
	"github.com/api-sage/deposit-ledger/internal/domain"
	"github.com/api-sage/deposit-ledger/internal/interest"
	"github.com/api-sage/deposit-ledger/internal/logger"
	"github.com/api-sage/deposit-ledger/internal/observability/metrics"
)

// DepositService orchestrates the deposit lifecycle. All journal writes
// happen inside the repository's transactions; this layer resolves plan
// terms, re-validates invariants, and computes interest.
type DepositService struct {
	depositRepo     domain.DepositRepository
	clientRepo      domain.ClientRepository
	planRepo        domain.DepositPlanRepository
	transactionRepo domain.TransactionRepository
	now             func() time.Time
}

func NewDepositService(
	depositRepo domain.DepositRepository,
	clientRepo domain.ClientRepository,
	planRepo domain.DepositPlanRepository,
	transactionRepo domain.TransactionRepository,
) *DepositService {
	return &DepositService{
		depositRepo:     depositRepo,
		clientRepo:      clientRepo,
		planRepo:        planRepo,
		transactionRepo: transactionRepo,
		now:             time.Now,
	}
}

func (s *DepositService) OpenDeposit(ctx context.Context, req models.OpenDepositRequest) (commons.Response[models.DepositResponse], error) {
	logger.Info("deposit service open deposit request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	deposit, err := s.resolveOpenTerms(ctx, req)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			return commons.ErrorResponse[models.DepositResponse]("validation failed", err.Error()), err
		}
		if errors.Is(err, domain.ErrRecordNotFound) {
			return commons.ErrorResponse[models.DepositResponse]("record not found", err.Error()), err
		}
		logger.Error("deposit service open deposit resolve failed", err, nil)
		return commons.ErrorResponse[models.DepositResponse]("failed to open deposit", "Unable to open deposit right now"), err
	}

	created, err := s.depositRepo.Open(ctx, deposit)
	if err != nil {
		logger.Error("deposit service open deposit repository failed", err, logger.Fields{
			"clientId": deposit.ClientID,
		})
		return commons.ErrorResponse[models.DepositResponse]("failed to open deposit", "Unable to open deposit right now"), err
	}

	metrics.ObserveDepositOpened(created.DepositType)

	logger.Info("deposit service open deposit success", logger.Fields{
		"depositId": created.ID,
		"clientId":  created.ClientID,
	})

	return commons.SuccessResponse("deposit opened successfully", mapDepositToResponse(created)), nil
}

// RequestDeposit records a pending deposit request against an active plan.
// It stays out of the journal until an operator approves it.
func (s *DepositService) RequestDeposit(ctx context.Context, clientID int64, req models.RequestDepositRequest) (commons.Response[models.DepositResponse], error) {
	logger.Info("deposit service request deposit", logger.Fields{
		"clientId": clientID,
		"payload":  logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		return commons.ErrorResponse[models.DepositResponse]("validation failed", err.Error()),
			fmt.Errorf("%w: %s", domain.ErrValidation, err.Error())
	}

	planID := req.PlanID
	deposit, err := s.resolveOpenTerms(ctx, models.OpenDepositRequest{
		ClientID: clientID,
		PlanID:   &planID,
		Amount:   req.Amount,
	})
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			return commons.ErrorResponse[models.DepositResponse]("validation failed", err.Error()), err
		}
		if errors.Is(err, domain.ErrRecordNotFound) {
			return commons.ErrorResponse[models.DepositResponse]("record not found", err.Error()), err
		}
		logger.Error("deposit service request deposit resolve failed", err, nil)
		return commons.ErrorResponse[models.DepositResponse]("failed to request deposit", "Unable to request deposit right now"), err
	}

	created, err := s.depositRepo.Request(ctx, deposit)
	if err != nil {
		logger.Error("deposit service request deposit repository failed", err, logger.Fields{
			"clientId": clientID,
		})
		return commons.ErrorResponse[models.DepositResponse]("failed to request deposit", "Unable to request deposit right now"), err
	}

	logger.Info("deposit service request deposit success", logger.Fields{
		"depositId": created.ID,
		"clientId":  clientID,
	})

	return commons.SuccessResponse("deposit request submitted", mapDepositToResponse(created)), nil
}

func (s *DepositService) CloseDeposit(ctx context.Context, depositID int64, req models.CloseDepositRequest) (commons.Response[models.CloseDepositResponse], error) {
	logger.Info("deposit service close deposit request", logger.Fields{
		"depositId": depositID,
	})

	if err := req.Validate(); err != nil {
		return commons.ErrorResponse[models.CloseDepositResponse]("validation failed", err.Error()),
			fmt.Errorf("%w: %s", domain.ErrValidation, err.Error())
	}

	asOf := s.today()
	if raw := strings.TrimSpace(req.AsOfDate); raw != "" {
		parsed, err := time.Parse(dateLayout, raw)
		if err != nil {
			return commons.ErrorResponse[models.CloseDepositResponse]("validation failed", "asOfDate must be in YYYY-MM-DD format"),
				fmt.Errorf("%w: invalid asOfDate", domain.ErrValidation)
		}
		asOf = parsed
	}

	deposit, err := s.depositRepo.GetByID(ctx, depositID)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return commons.ErrorResponse[models.CloseDepositResponse]("deposit not found"), err
		}
		logger.Error("deposit service close deposit lookup failed", err, logger.Fields{
			"depositId": depositID,
		})
		return commons.ErrorResponse[models.CloseDepositResponse]("failed to close deposit", "Unable to close deposit right now"), err
	}

	if deposit.Status != domain.DepositStatusActive {
		err := fmt.Errorf("cannot close deposit in status %q: %w", deposit.Status, domain.ErrInvalidStateTransition)
		return commons.ErrorResponse[models.CloseDepositResponse]("invalid state transition", "only active deposits can be closed"), err
	}

	if asOf.Before(deposit.OpenDate) {
		err := fmt.Errorf("%w: close date precedes open date", domain.ErrValidation)
		return commons.ErrorResponse[models.CloseDepositResponse]("validation failed", "asOfDate cannot precede the open date"), err
	}

	// Principal, rate and open date are immutable once the deposit exists,
	// so the payout computed here stays valid inside the conditional
	// close; only the status can race, and the repository resolves that.
	accrued := interest.Accrued(deposit.Amount, deposit.InterestRate, deposit.OpenDate, asOf)
	payout := deposit.Amount.Add(accrued)

	if err := s.depositRepo.Close(ctx, depositID, asOf, payout); err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return commons.ErrorResponse[models.CloseDepositResponse]("deposit not found"), err
		}
		if errors.Is(err, domain.ErrInvalidStateTransition) {
			return commons.ErrorResponse[models.CloseDepositResponse]("invalid state transition", "only active deposits can be closed"), err
		}
		logger.Error("deposit service close deposit repository failed", err, logger.Fields{
			"depositId": depositID,
		})
		return commons.ErrorResponse[models.CloseDepositResponse]("failed to close deposit", "Unable to close deposit right now"), err
	}

	metrics.ObserveDepositClosed(deposit.DepositType)

	logger.Info("deposit service close deposit success", logger.Fields{
		"depositId": depositID,
		"payout":    payout.StringFixed(2),
	})

	response := models.CloseDepositResponse{
		DepositID: depositID,
		Principal: deposit.Amount.StringFixed(2),
		Interest:  accrued.StringFixed(2),
		Payout:    payout.StringFixed(2),
		CloseDate: asOf.Format(dateLayout),
	}

	return commons.SuccessResponse("deposit closed successfully", response), nil
}

// CalculateInterest returns the live accrued interest for an active
// deposit without mutating state.
func (s *DepositService) CalculateInterest(ctx context.Context, depositID int64, asOfDate string) (commons.Response[models.InterestResponse], error) {
	asOf := s.today()
	if raw := strings.TrimSpace(asOfDate); raw != "" {
		parsed, err := time.Parse(dateLayout, raw)
		if err != nil {
			return commons.ErrorResponse[models.InterestResponse]("validation failed", "asOfDate must be in YYYY-MM-DD format"),
				fmt.Errorf("%w: invalid asOfDate", domain.ErrValidation)
		}
		asOf = parsed
	}

	deposit, err := s.depositRepo.GetByID(ctx, depositID)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return commons.ErrorResponse[models.InterestResponse]("deposit not found"), err
		}
		logger.Error("deposit service calculate interest lookup failed", err, logger.Fields{
			"depositId": depositID,
		})
		return commons.ErrorResponse[models.InterestResponse]("failed to calculate interest", "Unable to calculate interest right now"), err
	}

	if deposit.Status != domain.DepositStatusActive {
		err := fmt.Errorf("active deposit %d: %w", depositID, domain.ErrRecordNotFound)
		return commons.ErrorResponse[models.InterestResponse]("deposit not found", "no active deposit with this id"), err
	}

	accrued := interest.Accrued(deposit.Amount, deposit.InterestRate, deposit.OpenDate, asOf)

	response := models.InterestResponse{
		DepositID:       depositID,
		AccruedInterest: accrued.StringFixed(2),
		AsOfDate:        asOf.Format(dateLayout),
	}

	return commons.SuccessResponse("interest calculated", response), nil
}

func (s *DepositService) GetClientDeposits(ctx context.Context, clientID int64) (commons.Response[[]models.DepositResponse], error) {
	if _, err := s.clientRepo.GetByID(ctx, clientID); err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return commons.ErrorResponse[[]models.DepositResponse]("client not found"), err
		}
		logger.Error("deposit service get client deposits lookup failed", err, logger.Fields{
			"clientId": clientID,
		})
		return commons.ErrorResponse[[]models.DepositResponse]("failed to list deposits", "Unable to list deposits right now"), err
	}

	deposits, err := s.depositRepo.ListByClient(ctx, clientID)
	if err != nil {
		logger.Error("deposit service get client deposits failed", err, logger.Fields{
			"clientId": clientID,
		})
		return commons.ErrorResponse[[]models.DepositResponse]("failed to list deposits", "Unable to list deposits right now"), err
	}

	return commons.SuccessResponse("deposits retrieved", mapDepositsToResponses(deposits)), nil
}

// GetClientDepositsWithAccrual is the portal listing: each active deposit
// carries its live accrued interest. Accrual here is display-only, so a
// failure downgrades to zero instead of failing the listing.
func (s *DepositService) GetClientDepositsWithAccrual(ctx context.Context, clientID int64) (commons.Response[[]models.DepositResponse], error) {
	deposits, err := s.depositRepo.ListByClient(ctx, clientID)
	if err != nil {
		logger.Error("deposit service portal deposits failed", err, logger.Fields{
			"clientId": clientID,
		})
		return commons.ErrorResponse[[]models.DepositResponse]("failed to list deposits", "Unable to list deposits right now"), err
	}

	asOf := s.today()
	responses := make([]models.DepositResponse, 0, len(deposits))
	for _, deposit := range deposits {
		resp := mapDepositToResponse(deposit)
		accrued := decimal.Zero
		if deposit.Status == domain.DepositStatusActive {
			accrued = interest.Accrued(deposit.Amount, deposit.InterestRate, deposit.OpenDate, asOf)
		}
		resp.AccruedInterest = accrued.StringFixed(2)
		responses = append(responses, resp)
	}

	return commons.SuccessResponse("deposits retrieved", responses), nil
}

func (s *DepositService) GetDepositTransactions(ctx context.Context, depositID int64) (commons.Response[[]models.TransactionResponse], error) {
	if _, err := s.depositRepo.GetByID(ctx, depositID); err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return commons.ErrorResponse[[]models.TransactionResponse]("deposit not found"), err
		}
		logger.Error("deposit service get transactions lookup failed", err, logger.Fields{
			"depositId": depositID,
		})
		return commons.ErrorResponse[[]models.TransactionResponse]("failed to list transactions", "Unable to list transactions right now"), err
	}

	transactions, err := s.transactionRepo.ListForDeposit(ctx, depositID)
	if err != nil {
		logger.Error("deposit service get transactions failed", err, logger.Fields{
			"depositId": depositID,
		})
		return commons.ErrorResponse[[]models.TransactionResponse]("failed to list transactions", "Unable to list transactions right now"), err
	}

	responses := make([]models.TransactionResponse, 0, len(transactions))
	for _, txn := range transactions {
		responses = append(responses, mapTransactionToResponse(txn))
	}

	return commons.SuccessResponse("transactions retrieved", responses), nil
}

func (s *DepositService) ListPendingDeposits(ctx context.Context) (commons.Response[[]models.DepositResponse], error) {
	deposits, err := s.depositRepo.ListPending(ctx)
	if err != nil {
		logger.Error("deposit service list pending failed", err, nil)
		return commons.ErrorResponse[[]models.DepositResponse]("failed to list pending deposits", "Unable to list pending deposits right now"), err
	}

	return commons.SuccessResponse("pending deposits retrieved", mapDepositsToResponses(deposits)), nil
}

func (s *DepositService) ApproveDeposit(ctx context.Context, depositID int64) (commons.Response[struct{}], error) {
	logger.Info("deposit service approve deposit", logger.Fields{
		"depositId": depositID,
	})

	if err := s.depositRepo.Approve(ctx, depositID, s.today()); err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return commons.ErrorResponse[struct{}]("deposit not found"), err
		}
		if errors.Is(err, domain.ErrInvalidStateTransition) {
			return commons.ErrorResponse[struct{}]("invalid state transition", "only pending deposits can be approved"), err
		}
		logger.Error("deposit service approve deposit failed", err, logger.Fields{
			"depositId": depositID,
		})
		return commons.ErrorResponse[struct{}]("failed to approve deposit", "Unable to approve deposit right now"), err
	}

	metrics.ObserveDepositApproved()

	return commons.SuccessResponse("deposit approved", struct{}{}), nil
}

func (s *DepositService) RejectDeposit(ctx context.Context, depositID int64) (commons.Response[struct{}], error) {
	logger.Info("deposit service reject deposit", logger.Fields{
		"depositId": depositID,
	})

	if err := s.depositRepo.Reject(ctx, depositID); err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return commons.ErrorResponse[struct{}]("deposit not found"), err
		}
		if errors.Is(err, domain.ErrInvalidStateTransition) {
			return commons.ErrorResponse[struct{}]("invalid state transition", "only pending deposits can be rejected"), err
		}
		logger.Error("deposit service reject deposit failed", err, logger.Fields{
			"depositId": depositID,
		})
		return commons.ErrorResponse[struct{}]("failed to reject deposit", "Unable to reject deposit right now"), err
	}

	metrics.ObserveDepositRejected()

	return commons.SuccessResponse("deposit rejected", struct{}{}), nil
}

// resolveOpenTerms re-validates everything the store must hold true for a
// new contract, regardless of what the caller already checked: positive
// amount, non-negative rate, an existing client, and plan terms copied at
// open time.
func (s *DepositService) resolveOpenTerms(ctx context.Context, req models.OpenDepositRequest) (domain.Deposit, error) {
	if err := req.Validate(); err != nil {
		return domain.Deposit{}, fmt.Errorf("%w: %s", domain.ErrValidation, err.Error())
	}

	amount, err := decimal.NewFromString(strings.TrimSpace(req.Amount))
	if err != nil {
		return domain.Deposit{}, fmt.Errorf("%w: amount must be numeric", domain.ErrValidation)
	}

	if _, err := s.clientRepo.GetByID(ctx, req.ClientID); err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return domain.Deposit{}, fmt.Errorf("client %d: %w", req.ClientID, domain.ErrRecordNotFound)
		}
		return domain.Deposit{}, err
	}

	openDate := s.today()
	if raw := strings.TrimSpace(req.OpenDate); raw != "" {
		parsed, err := time.Parse(dateLayout, raw)
		if err != nil {
			return domain.Deposit{}, fmt.Errorf("%w: openDate must be in YYYY-MM-DD format", domain.ErrValidation)
		}
		openDate = parsed
	}

	deposit := domain.Deposit{
		ClientID:    req.ClientID,
		DepositType: strings.TrimSpace(req.DepositType),
		Amount:      amount,
		OpenDate:    openDate,
	}

	if req.PlanID == nil {
		rate, err := decimal.NewFromString(strings.TrimSpace(req.InterestRate))
		if err != nil {
			return domain.Deposit{}, fmt.Errorf("%w: interestRate must be numeric", domain.ErrValidation)
		}
		deposit.InterestRate = rate
		return deposit, nil
	}

	plan, err := s.planRepo.GetByID(ctx, *req.PlanID)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return domain.Deposit{}, fmt.Errorf("plan %d: %w", *req.PlanID, domain.ErrRecordNotFound)
		}
		return domain.Deposit{}, err
	}

	if !plan.IsActive {
		return domain.Deposit{}, fmt.Errorf("%w: plan %q is not accepting new deposits", domain.ErrValidation, plan.Name)
	}
	if amount.LessThan(plan.MinAmount) {
		return domain.Deposit{}, fmt.Errorf("%w: amount is below the plan minimum of %s", domain.ErrValidation, plan.MinAmount.StringFixed(2))
	}
	if plan.MaxAmount != nil && amount.GreaterThan(*plan.MaxAmount) {
		return domain.Deposit{}, fmt.Errorf("%w: amount is above the plan maximum of %s", domain.ErrValidation, plan.MaxAmount.StringFixed(2))
	}

	// Contract terms are copied from the plan at open time; later plan
	// edits never change existing deposits.
	planID := plan.ID
	deposit.DepositPlanID = &planID
	deposit.InterestRate = plan.InterestRate
	if deposit.DepositType == "" {
		deposit.DepositType = plan.Name
	}

	return deposit, nil
}

func (s *DepositService) today() time.Time {
	now := s.now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
