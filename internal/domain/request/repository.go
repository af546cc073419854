package request

import "context"

type Filter struct {
	Status      Status
	Kind        Kind
	RequesterID uint64
}

type Repository interface {
	Create(ctx context.Context, r *Request) error
	Save(ctx context.Context, r *Request) error
	GetByID(ctx context.Context, id uint64) (*Request, error)
	GetByIDForUpdate(ctx context.Context, id uint64) (*Request, error)
	List(ctx context.Context, f Filter) ([]Request, error)
	Delete(ctx context.Context, id uint64) error
	CountByStatus(ctx context.Context, status Status) (int64, error)
}
