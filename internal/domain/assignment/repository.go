package assignment

import "context"

type Filter struct {
	ProductID  uint64
	PersonID   uint64
	LocationID uint64
	Status     Status
}

type Repository interface {
	// Create fails with ErrActiveExists when the product already has an active row.
	Create(ctx context.Context, a *Assignment) error
	Save(ctx context.Context, a *Assignment) error
	GetByID(ctx context.Context, id uint64) (*Assignment, error)
	GetByIDForUpdate(ctx context.Context, id uint64) (*Assignment, error)
	GetActiveByProductID(ctx context.Context, productID uint64) (*Assignment, error)
	List(ctx context.Context, f Filter) ([]Assignment, error)
	Delete(ctx context.Context, id uint64) error
	CountByProductID(ctx context.Context, productID uint64) (int64, error)
}
