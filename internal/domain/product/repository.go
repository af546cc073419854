package product

import "context"

type Repository interface {
	Create(ctx context.Context, p *Product) error
	GetByID(ctx context.Context, id uint64) (*Product, error)
	// GetByIDForUpdate locks the product row until the surrounding transaction ends.
	GetByIDForUpdate(ctx context.Context, id uint64) (*Product, error)
	List(ctx context.Context, status Status) ([]Product, error)
	UpdateStatus(ctx context.Context, id uint64, status Status) error
	Delete(ctx context.Context, id uint64) error
	CountInvoiceLines(ctx context.Context, productID uint64) (int64, error)
}
