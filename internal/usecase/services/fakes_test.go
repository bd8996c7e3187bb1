package services_test

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/api-sage/deposit-ledger/internal/domain"
)

// The fakes below hold state in plain maps and enforce the same state
// rules the store enforces: conditional transitions fail with the domain
// sentinels instead of silently rewriting rows.

type fakeClientRepo struct {
	nextID    int64
	clients   map[int64]domain.Client
	createErr error
	searched  string
}

func newFakeClientRepo() *fakeClientRepo {
	return &fakeClientRepo{clients: make(map[int64]domain.Client)}
}

func (f *fakeClientRepo) Create(_ context.Context, client domain.Client) (domain.Client, error) {
	if f.createErr != nil {
		return domain.Client{}, f.createErr
	}
	f.nextID++
	client.ID = f.nextID
	client.CreatedAt = time.Now()
	f.clients[client.ID] = client
	return client, nil
}

func (f *fakeClientRepo) GetByID(_ context.Context, id int64) (domain.Client, error) {
	client, ok := f.clients[id]
	if !ok {
		return domain.Client{}, domain.ErrRecordNotFound
	}
	return client, nil
}

func (f *fakeClientRepo) GetByEmail(_ context.Context, email string) (domain.Client, error) {
	for _, client := range f.clients {
		if client.Email != nil && *client.Email == email {
			return client, nil
		}
	}
	return domain.Client{}, domain.ErrRecordNotFound
}

func (f *fakeClientRepo) List(_ context.Context) ([]domain.Client, error) {
	out := make([]domain.Client, 0, len(f.clients))
	for _, client := range f.clients {
		out = append(out, client)
	}
	return out, nil
}

func (f *fakeClientRepo) Search(_ context.Context, term string) ([]domain.Client, error) {
	f.searched = term
	return f.List(context.Background())
}

type fakePlanRepo struct {
	nextID    int64
	plans     map[int64]domain.DepositPlan
	deleteErr error
	stats     domain.DepositPlanStats
}

func newFakePlanRepo() *fakePlanRepo {
	return &fakePlanRepo{plans: make(map[int64]domain.DepositPlan)}
}

func (f *fakePlanRepo) add(plan domain.DepositPlan) domain.DepositPlan {
	if plan.ID == 0 {
		f.nextID++
		plan.ID = f.nextID
	}
	f.plans[plan.ID] = plan
	return plan
}

func (f *fakePlanRepo) Create(_ context.Context, plan domain.DepositPlan) (domain.DepositPlan, error) {
	for _, existing := range f.plans {
		if existing.Name == plan.Name {
			return domain.DepositPlan{}, domain.ErrDuplicateEntity
		}
	}
	return f.add(plan), nil
}

func (f *fakePlanRepo) Update(_ context.Context, plan domain.DepositPlan) (domain.DepositPlan, error) {
	if _, ok := f.plans[plan.ID]; !ok {
		return domain.DepositPlan{}, domain.ErrRecordNotFound
	}
	f.plans[plan.ID] = plan
	return plan, nil
}

func (f *fakePlanRepo) GetByID(_ context.Context, id int64) (domain.DepositPlan, error) {
	plan, ok := f.plans[id]
	if !ok {
		return domain.DepositPlan{}, domain.ErrRecordNotFound
	}
	return plan, nil
}

func (f *fakePlanRepo) List(_ context.Context) ([]domain.DepositPlan, error) {
	out := make([]domain.DepositPlan, 0, len(f.plans))
	for _, plan := range f.plans {
		out = append(out, plan)
	}
	return out, nil
}

func (f *fakePlanRepo) ListActive(_ context.Context) ([]domain.DepositPlan, error) {
	out := make([]domain.DepositPlan, 0, len(f.plans))
	for _, plan := range f.plans {
		if plan.IsActive {
			out = append(out, plan)
		}
	}
	return out, nil
}

func (f *fakePlanRepo) Delete(_ context.Context, id int64) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	if _, ok := f.plans[id]; !ok {
		return domain.ErrRecordNotFound
	}
	delete(f.plans, id)
	return nil
}

func (f *fakePlanRepo) Stats(_ context.Context, id int64) (domain.DepositPlanStats, error) {
	stats := f.stats
	stats.PlanID = id
	return stats, nil
}

type fakeDepositRepo struct {
	nextID    int64
	deposits  map[int64]domain.Deposit
	payouts   map[int64]decimal.Decimal
	byType    []domain.DepositTypeAggregate
	byTypeErr error
	timeline  []domain.TimelinePoint
	amounts   []decimal.Decimal
}

func newFakeDepositRepo() *fakeDepositRepo {
	return &fakeDepositRepo{
		deposits: make(map[int64]domain.Deposit),
		payouts:  make(map[int64]decimal.Decimal),
	}
}

func (f *fakeDepositRepo) add(deposit domain.Deposit) domain.Deposit {
	f.nextID++
	deposit.ID = f.nextID
	f.deposits[deposit.ID] = deposit
	return deposit
}

func (f *fakeDepositRepo) Open(_ context.Context, deposit domain.Deposit) (domain.Deposit, error) {
	deposit.Status = domain.DepositStatusActive
	return f.add(deposit), nil
}

func (f *fakeDepositRepo) Request(_ context.Context, deposit domain.Deposit) (domain.Deposit, error) {
	deposit.Status = domain.DepositStatusPending
	return f.add(deposit), nil
}

func (f *fakeDepositRepo) GetByID(_ context.Context, id int64) (domain.Deposit, error) {
	deposit, ok := f.deposits[id]
	if !ok {
		return domain.Deposit{}, domain.ErrRecordNotFound
	}
	return deposit, nil
}

func (f *fakeDepositRepo) Close(_ context.Context, id int64, closeDate time.Time, payout decimal.Decimal) error {
	deposit, ok := f.deposits[id]
	if !ok {
		return domain.ErrRecordNotFound
	}
	if deposit.Status != domain.DepositStatusActive {
		return domain.ErrInvalidStateTransition
	}
	deposit.Status = domain.DepositStatusClosed
	deposit.CloseDate = &closeDate
	f.deposits[id] = deposit
	f.payouts[id] = payout
	return nil
}

func (f *fakeDepositRepo) Approve(_ context.Context, id int64, openDate time.Time) error {
	deposit, ok := f.deposits[id]
	if !ok {
		return domain.ErrRecordNotFound
	}
	if deposit.Status != domain.DepositStatusPending {
		return domain.ErrInvalidStateTransition
	}
	deposit.Status = domain.DepositStatusActive
	deposit.OpenDate = openDate
	f.deposits[id] = deposit
	return nil
}

func (f *fakeDepositRepo) Reject(_ context.Context, id int64) error {
	deposit, ok := f.deposits[id]
	if !ok {
		return domain.ErrRecordNotFound
	}
	if deposit.Status != domain.DepositStatusPending {
		return domain.ErrInvalidStateTransition
	}
	deposit.Status = domain.DepositStatusRejected
	f.deposits[id] = deposit
	return nil
}

func (f *fakeDepositRepo) ListByClient(_ context.Context, clientID int64) ([]domain.Deposit, error) {
	out := make([]domain.Deposit, 0)
	for _, deposit := range f.deposits {
		if deposit.ClientID == clientID {
			out = append(out, deposit)
		}
	}
	return out, nil
}

func (f *fakeDepositRepo) ListPending(_ context.Context) ([]domain.Deposit, error) {
	out := make([]domain.Deposit, 0)
	for _, deposit := range f.deposits {
		if deposit.Status == domain.DepositStatusPending {
			out = append(out, deposit)
		}
	}
	return out, nil
}

func (f *fakeDepositRepo) ActiveSumsByType(_ context.Context) ([]domain.DepositTypeAggregate, error) {
	if f.byTypeErr != nil {
		return nil, f.byTypeErr
	}
	return f.byType, nil
}

func (f *fakeDepositRepo) OpenTimeline(_ context.Context) ([]domain.TimelinePoint, error) {
	return f.timeline, nil
}

func (f *fakeDepositRepo) ActiveAmounts(_ context.Context) ([]decimal.Decimal, error) {
	return f.amounts, nil
}

type fakeTransactionRepo struct {
	entries []domain.Transaction
}

func (f *fakeTransactionRepo) ListForDeposit(_ context.Context, depositID int64) ([]domain.Transaction, error) {
	out := make([]domain.Transaction, 0)
	for _, entry := range f.entries {
		if entry.DepositID == depositID {
			out = append(out, entry)
		}
	}
	return out, nil
}
