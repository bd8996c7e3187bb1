package services_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/api-sage/deposit-ledger/internal/adapter/http/models"
	"github.com/api-sage/deposit-ledger/internal/domain"
	"github.com/api-sage/deposit-ledger/internal/usecase/services"
)

func seedClient(repo *fakeClientRepo) domain.Client {
	client, _ := repo.Create(context.Background(), domain.Client{
		FullName:     "Petrov Petr Petrovich",
		PassportData: "4510 123456",
		PhoneNumber:  "+7-900-000-00-00",
	})
	return client
}

func newDepositService(deposits *fakeDepositRepo, clients *fakeClientRepo, plans *fakePlanRepo, transactions *fakeTransactionRepo) *services.DepositService {
	if deposits == nil {
		deposits = newFakeDepositRepo()
	}
	if clients == nil {
		clients = newFakeClientRepo()
	}
	if plans == nil {
		plans = newFakePlanRepo()
	}
	if transactions == nil {
		transactions = &fakeTransactionRepo{}
	}
	return services.NewDepositService(deposits, clients, plans, transactions)
}

func TestDepositServiceOpenDepositValidationError(t *testing.T) {
	svc := newDepositService(nil, nil, nil, nil)

	_, err := svc.OpenDeposit(context.Background(), models.OpenDepositRequest{})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation sentinel, got %v", err)
	}
}

func TestDepositServiceOpenDepositUnknownClient(t *testing.T) {
	svc := newDepositService(nil, nil, nil, nil)

	_, err := svc.OpenDeposit(context.Background(), models.OpenDepositRequest{
		ClientID:     42,
		DepositType:  "Срочный",
		Amount:       "1000",
		InterestRate: "5.5",
	})
	if !errors.Is(err, domain.ErrRecordNotFound) {
		t.Fatalf("expected not found sentinel, got %v", err)
	}
}

func TestDepositServiceOpenDepositCopiesPlanTerms(t *testing.T) {
	clients := newFakeClientRepo()
	client := seedClient(clients)

	plans := newFakePlanRepo()
	plan := plans.add(domain.DepositPlan{
		Name:         "Накопительный",
		InterestRate: decimal.NewFromFloat(5.5),
		MinAmount:    decimal.NewFromInt(1000),
		IsActive:     true,
	})

	deposits := newFakeDepositRepo()
	svc := newDepositService(deposits, clients, plans, nil)

	resp, err := svc.OpenDeposit(context.Background(), models.OpenDepositRequest{
		ClientID: client.ID,
		PlanID:   &plan.ID,
		Amount:   "5000",
		OpenDate: "2024-06-01",
	})
	if err != nil {
		t.Fatalf("expected open to succeed, got %v", err)
	}
	if resp.Data == nil {
		t.Fatal("expected response data")
	}
	if resp.Data.InterestRate != "5.50" {
		t.Fatalf("expected rate copied from plan, got %q", resp.Data.InterestRate)
	}
	if resp.Data.DepositType != "Накопительный" {
		t.Fatalf("expected type defaulted to plan name, got %q", resp.Data.DepositType)
	}
	if resp.Data.PlanID == nil || *resp.Data.PlanID != plan.ID {
		t.Fatalf("expected plan reference on the deposit, got %+v", resp.Data.PlanID)
	}
	if resp.Data.Status != string(domain.DepositStatusActive) {
		t.Fatalf("expected active status, got %q", resp.Data.Status)
	}

	stored := deposits.deposits[resp.Data.ID]
	if !stored.InterestRate.Equal(plan.InterestRate) {
		t.Fatalf("expected stored rate %s, got %s", plan.InterestRate, stored.InterestRate)
	}
}

func TestDepositServiceOpenDepositRejectsInactivePlan(t *testing.T) {
	clients := newFakeClientRepo()
	client := seedClient(clients)

	plans := newFakePlanRepo()
	plan := plans.add(domain.DepositPlan{
		Name:         "Архивный",
		InterestRate: decimal.NewFromFloat(4.0),
		MinAmount:    decimal.NewFromInt(1000),
		IsActive:     false,
	})

	svc := newDepositService(nil, clients, plans, nil)

	_, err := svc.OpenDeposit(context.Background(), models.OpenDepositRequest{
		ClientID: client.ID,
		PlanID:   &plan.ID,
		Amount:   "5000",
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation sentinel for inactive plan, got %v", err)
	}
}

func TestDepositServiceOpenDepositEnforcesPlanBounds(t *testing.T) {
	clients := newFakeClientRepo()
	client := seedClient(clients)

	plans := newFakePlanRepo()
	maxAmount := decimal.NewFromInt(10000)
	plan := plans.add(domain.DepositPlan{
		Name:         "Срочный",
		InterestRate: decimal.NewFromFloat(7.0),
		MinAmount:    decimal.NewFromInt(1000),
		MaxAmount:    &maxAmount,
		IsActive:     true,
	})

	svc := newDepositService(nil, clients, plans, nil)

	_, err := svc.OpenDeposit(context.Background(), models.OpenDepositRequest{
		ClientID: client.ID,
		PlanID:   &plan.ID,
		Amount:   "500",
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation sentinel below minimum, got %v", err)
	}

	_, err = svc.OpenDeposit(context.Background(), models.OpenDepositRequest{
		ClientID: client.ID,
		PlanID:   &plan.ID,
		Amount:   "20000",
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation sentinel above maximum, got %v", err)
	}
}

func TestDepositServiceCloseDepositComputesPayout(t *testing.T) {
	clients := newFakeClientRepo()
	client := seedClient(clients)

	deposits := newFakeDepositRepo()
	opened, _ := deposits.Open(context.Background(), domain.Deposit{
		ClientID:     client.ID,
		DepositType:  "Срочный",
		Amount:       decimal.NewFromInt(1000),
		InterestRate: decimal.NewFromFloat(5.5),
		OpenDate:     time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC),
	})

	svc := newDepositService(deposits, clients, nil, nil)

	resp, err := svc.CloseDeposit(context.Background(), opened.ID, models.CloseDepositRequest{AsOfDate: "2024-01-01"})
	if err != nil {
		t.Fatalf("expected close to succeed, got %v", err)
	}
	if resp.Data == nil {
		t.Fatal("expected response data")
	}
	if resp.Data.Interest != "55.00" {
		t.Fatalf("expected interest 55.00, got %q", resp.Data.Interest)
	}
	if resp.Data.Payout != "1055.00" {
		t.Fatalf("expected payout 1055.00, got %q", resp.Data.Payout)
	}

	stored := deposits.deposits[opened.ID]
	if stored.Status != domain.DepositStatusClosed {
		t.Fatalf("expected closed status, got %q", stored.Status)
	}
	if stored.CloseDate == nil || stored.CloseDate.Format("2006-01-02") != "2024-01-01" {
		t.Fatalf("expected close date stamped, got %+v", stored.CloseDate)
	}
	if payout := deposits.payouts[opened.ID]; payout.StringFixed(2) != "1055.00" {
		t.Fatalf("expected journaled payout 1055.00, got %s", payout.StringFixed(2))
	}
}

func TestDepositServiceCloseDepositAlreadyClosed(t *testing.T) {
	clients := newFakeClientRepo()
	client := seedClient(clients)

	deposits := newFakeDepositRepo()
	opened, _ := deposits.Open(context.Background(), domain.Deposit{
		ClientID:     client.ID,
		DepositType:  "Срочный",
		Amount:       decimal.NewFromInt(1000),
		InterestRate: decimal.NewFromFloat(5.5),
		OpenDate:     time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC),
	})

	svc := newDepositService(deposits, clients, nil, nil)

	if _, err := svc.CloseDeposit(context.Background(), opened.ID, models.CloseDepositRequest{AsOfDate: "2024-01-01"}); err != nil {
		t.Fatalf("expected first close to succeed, got %v", err)
	}

	_, err := svc.CloseDeposit(context.Background(), opened.ID, models.CloseDepositRequest{AsOfDate: "2024-01-02"})
	if !errors.Is(err, domain.ErrInvalidStateTransition) {
		t.Fatalf("expected state transition sentinel on second close, got %v", err)
	}
}

func TestDepositServiceCloseDepositMissing(t *testing.T) {
	svc := newDepositService(nil, nil, nil, nil)

	_, err := svc.CloseDeposit(context.Background(), 99, models.CloseDepositRequest{})
	if !errors.Is(err, domain.ErrRecordNotFound) {
		t.Fatalf("expected not found sentinel, got %v", err)
	}
}

func TestDepositServiceCloseDepositBeforeOpenDate(t *testing.T) {
	clients := newFakeClientRepo()
	client := seedClient(clients)

	deposits := newFakeDepositRepo()
	opened, _ := deposits.Open(context.Background(), domain.Deposit{
		ClientID:     client.ID,
		DepositType:  "Срочный",
		Amount:       decimal.NewFromInt(1000),
		InterestRate: decimal.NewFromFloat(5.5),
		OpenDate:     time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC),
	})

	svc := newDepositService(deposits, clients, nil, nil)

	_, err := svc.CloseDeposit(context.Background(), opened.ID, models.CloseDepositRequest{AsOfDate: "2024-06-01"})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation sentinel for close before open, got %v", err)
	}

	if deposits.deposits[opened.ID].Status != domain.DepositStatusActive {
		t.Fatal("expected deposit to stay active after rejected close")
	}
}

func TestDepositServiceCalculateInterestInactiveDeposit(t *testing.T) {
	deposits := newFakeDepositRepo()
	requested, _ := deposits.Request(context.Background(), domain.Deposit{
		ClientID:     1,
		DepositType:  "Срочный",
		Amount:       decimal.NewFromInt(1000),
		InterestRate: decimal.NewFromFloat(5.5),
		OpenDate:     time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
	})

	svc := newDepositService(deposits, nil, nil, nil)

	_, err := svc.CalculateInterest(context.Background(), requested.ID, "")
	if !errors.Is(err, domain.ErrRecordNotFound) {
		t.Fatalf("expected not found sentinel for non-active deposit, got %v", err)
	}
}

func TestDepositServiceCalculateInterest(t *testing.T) {
	deposits := newFakeDepositRepo()
	opened, _ := deposits.Open(context.Background(), domain.Deposit{
		ClientID:     1,
		DepositType:  "Срочный",
		Amount:       decimal.NewFromInt(100000),
		InterestRate: decimal.NewFromFloat(6.0),
		OpenDate:     time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC),
	})

	svc := newDepositService(deposits, nil, nil, nil)

	resp, err := svc.CalculateInterest(context.Background(), opened.ID, "2024-01-01")
	if err != nil {
		t.Fatalf("expected interest calculation to succeed, got %v", err)
	}
	if resp.Data == nil || resp.Data.AccruedInterest != "6000.00" {
		t.Fatalf("expected accrued 6000.00, got %+v", resp.Data)
	}
}

func TestDepositServiceRequestDepositCreatesPending(t *testing.T) {
	clients := newFakeClientRepo()
	client := seedClient(clients)

	plans := newFakePlanRepo()
	plan := plans.add(domain.DepositPlan{
		Name:         "Накопительный",
		InterestRate: decimal.NewFromFloat(5.5),
		MinAmount:    decimal.NewFromInt(1000),
		IsActive:     true,
	})

	deposits := newFakeDepositRepo()
	svc := newDepositService(deposits, clients, plans, nil)

	resp, err := svc.RequestDeposit(context.Background(), client.ID, models.RequestDepositRequest{
		PlanID: plan.ID,
		Amount: "2500",
	})
	if err != nil {
		t.Fatalf("expected request to succeed, got %v", err)
	}
	if resp.Data == nil || resp.Data.Status != string(domain.DepositStatusPending) {
		t.Fatalf("expected pending status, got %+v", resp.Data)
	}

	pending, _ := deposits.ListPending(context.Background())
	if len(pending) != 1 {
		t.Fatalf("expected one pending deposit, got %d", len(pending))
	}
}

func TestDepositServiceApproveActivatesPending(t *testing.T) {
	deposits := newFakeDepositRepo()
	requested, _ := deposits.Request(context.Background(), domain.Deposit{
		ClientID:     1,
		DepositType:  "Накопительный",
		Amount:       decimal.NewFromInt(2500),
		InterestRate: decimal.NewFromFloat(5.5),
	})

	svc := newDepositService(deposits, nil, nil, nil)

	if _, err := svc.ApproveDeposit(context.Background(), requested.ID); err != nil {
		t.Fatalf("expected approve to succeed, got %v", err)
	}

	stored := deposits.deposits[requested.ID]
	if stored.Status != domain.DepositStatusActive {
		t.Fatalf("expected active status after approval, got %q", stored.Status)
	}
	if stored.OpenDate.IsZero() {
		t.Fatal("expected open date stamped at approval")
	}

	_, err := svc.ApproveDeposit(context.Background(), requested.ID)
	if !errors.Is(err, domain.ErrInvalidStateTransition) {
		t.Fatalf("expected state transition sentinel on second approval, got %v", err)
	}
}

func TestDepositServiceRejectPendingDeposit(t *testing.T) {
	deposits := newFakeDepositRepo()
	requested, _ := deposits.Request(context.Background(), domain.Deposit{
		ClientID:     1,
		DepositType:  "Накопительный",
		Amount:       decimal.NewFromInt(2500),
		InterestRate: decimal.NewFromFloat(5.5),
	})

	svc := newDepositService(deposits, nil, nil, nil)

	if _, err := svc.RejectDeposit(context.Background(), requested.ID); err != nil {
		t.Fatalf("expected reject to succeed, got %v", err)
	}
	if deposits.deposits[requested.ID].Status != domain.DepositStatusRejected {
		t.Fatal("expected rejected status")
	}

	_, err := svc.RejectDeposit(context.Background(), requested.ID)
	if !errors.Is(err, domain.ErrInvalidStateTransition) {
		t.Fatalf("expected state transition sentinel on second rejection, got %v", err)
	}
}

func TestDepositServiceGetClientDepositsUnknownClient(t *testing.T) {
	svc := newDepositService(nil, nil, nil, nil)

	_, err := svc.GetClientDeposits(context.Background(), 99)
	if !errors.Is(err, domain.ErrRecordNotFound) {
		t.Fatalf("expected not found sentinel, got %v", err)
	}
}

func TestDepositServiceGetClientDepositsWithAccrual(t *testing.T) {
	clients := newFakeClientRepo()
	client := seedClient(clients)

	deposits := newFakeDepositRepo()
	active, _ := deposits.Open(context.Background(), domain.Deposit{
		ClientID:     client.ID,
		DepositType:  "Срочный",
		Amount:       decimal.NewFromInt(100000),
		InterestRate: decimal.NewFromFloat(6.0),
		OpenDate:     time.Now().UTC().AddDate(-1, 0, 0),
	})
	closed, _ := deposits.Open(context.Background(), domain.Deposit{
		ClientID:     client.ID,
		DepositType:  "Срочный",
		Amount:       decimal.NewFromInt(1000),
		InterestRate: decimal.NewFromFloat(5.5),
		OpenDate:     time.Now().UTC().AddDate(-1, 0, 0),
	})
	if err := deposits.Close(context.Background(), closed.ID, time.Now().UTC(), decimal.NewFromInt(1055)); err != nil {
		t.Fatalf("expected seed close to succeed, got %v", err)
	}

	svc := newDepositService(deposits, clients, nil, nil)

	resp, err := svc.GetClientDepositsWithAccrual(context.Background(), client.ID)
	if err != nil {
		t.Fatalf("expected listing to succeed, got %v", err)
	}
	if resp.Data == nil || len(*resp.Data) != 2 {
		t.Fatalf("expected two deposits, got %+v", resp.Data)
	}

	for _, item := range *resp.Data {
		switch item.ID {
		case active.ID:
			if item.AccruedInterest == "0.00" {
				t.Fatal("expected positive accrual on the active deposit")
			}
		case closed.ID:
			if item.AccruedInterest != "0.00" {
				t.Fatalf("expected zero accrual on the closed deposit, got %q", item.AccruedInterest)
			}
		default:
			t.Fatalf("unexpected deposit id %d", item.ID)
		}
	}
}

func TestDepositServiceGetDepositTransactions(t *testing.T) {
	deposits := newFakeDepositRepo()
	opened, _ := deposits.Open(context.Background(), domain.Deposit{
		ClientID:     1,
		DepositType:  "Срочный",
		Amount:       decimal.NewFromInt(1000),
		InterestRate: decimal.NewFromFloat(5.5),
		OpenDate:     time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
	})

	transactions := &fakeTransactionRepo{entries: []domain.Transaction{
		{ID: 1, DepositID: opened.ID, Type: domain.TransactionTypeOpen, Amount: decimal.NewFromInt(1000), TransactionDate: time.Now()},
		{ID: 2, DepositID: 999, Type: domain.TransactionTypeOpen, Amount: decimal.NewFromInt(500), TransactionDate: time.Now()},
	}}

	svc := newDepositService(deposits, nil, nil, transactions)

	resp, err := svc.GetDepositTransactions(context.Background(), opened.ID)
	if err != nil {
		t.Fatalf("expected listing to succeed, got %v", err)
	}
	if resp.Data == nil || len(*resp.Data) != 1 {
		t.Fatalf("expected one journal entry, got %+v", resp.Data)
	}
	if (*resp.Data)[0].Type != string(domain.TransactionTypeOpen) {
		t.Fatalf("expected open entry, got %q", (*resp.Data)[0].Type)
	}

	_, err = svc.GetDepositTransactions(context.Background(), 12345)
	if !errors.Is(err, domain.ErrRecordNotFound) {
		t.Fatalf("expected not found sentinel, got %v", err)
	}
}

func TestDepositServiceOpenDepositManualTerms(t *testing.T) {
	clients := newFakeClientRepo()
	client := seedClient(clients)

	deposits := newFakeDepositRepo()
	svc := newDepositService(deposits, clients, nil, nil)

	resp, err := svc.OpenDeposit(context.Background(), models.OpenDepositRequest{
		ClientID:     client.ID,
		DepositType:  "Индивидуальный",
		Amount:       "3000.50",
		InterestRate: "4.25",
		OpenDate:     "2024-06-01",
	})
	if err != nil {
		t.Fatalf("expected open to succeed, got %v", err)
	}
	if resp.Data == nil {
		t.Fatal("expected response data")
	}
	if resp.Data.Amount != "3000.50" {
		t.Fatalf("expected amount 3000.50, got %q", resp.Data.Amount)
	}
	if resp.Data.PlanID != nil {
		t.Fatal("expected no plan reference on a manual deposit")
	}
	if !strings.HasPrefix(resp.Data.OpenDate, "2024-06-01") {
		t.Fatalf("expected requested open date, got %q", resp.Data.OpenDate)
	}
}
