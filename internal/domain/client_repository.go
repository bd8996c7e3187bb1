package domain

import "context"

type ClientRepository interface {
	Create(ctx context.Context, client Client) (Client, error)
	GetByID(ctx context.Context, id int64) (Client, error)
	GetByEmail(ctx context.Context, email string) (Client, error)
	List(ctx context.Context) ([]Client, error)
	Search(ctx context.Context, term string) ([]Client, error)
}
