package domain

import "context"

type DepositPlanRepository interface {
	Create(ctx context.Context, plan DepositPlan) (DepositPlan, error)
	Update(ctx context.Context, plan DepositPlan) (DepositPlan, error)
	GetByID(ctx context.Context, id int64) (DepositPlan, error)
	List(ctx context.Context) ([]DepositPlan, error)
	ListActive(ctx context.Context) ([]DepositPlan, error)
	Delete(ctx context.Context, id int64) error
	Stats(ctx context.Context, id int64) (DepositPlanStats, error)
}
