package productmock

import (
	"context"

	domain "asset-custody/internal/domain/product"

	"gorm.io/gorm"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
// Getters default to gorm.ErrRecordNotFound, writers to nil.
type Repo struct {
	CreateFn            func(ctx context.Context, p *domain.Product) error
	GetByIDFn           func(ctx context.Context, id uint64) (*domain.Product, error)
	GetByIDForUpdateFn  func(ctx context.Context, id uint64) (*domain.Product, error)
	ListFn              func(ctx context.Context, status domain.Status) ([]domain.Product, error)
	UpdateStatusFn      func(ctx context.Context, id uint64, status domain.Status) error
	DeleteFn            func(ctx context.Context, id uint64) error
	CountInvoiceLinesFn func(ctx context.Context, productID uint64) (int64, error)
}

func (m *Repo) Create(ctx context.Context, p *domain.Product) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, p)
	}
	return nil
}

func (m *Repo) GetByID(ctx context.Context, id uint64) (*domain.Product, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) GetByIDForUpdate(ctx context.Context, id uint64) (*domain.Product, error) {
	if m.GetByIDForUpdateFn != nil {
		return m.GetByIDForUpdateFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) List(ctx context.Context, status domain.Status) ([]domain.Product, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, status)
	}
	return nil, nil
}

func (m *Repo) UpdateStatus(ctx context.Context, id uint64, status domain.Status) error {
	if m.UpdateStatusFn != nil {
		return m.UpdateStatusFn(ctx, id, status)
	}
	return nil
}

func (m *Repo) Delete(ctx context.Context, id uint64) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return nil
}

func (m *Repo) CountInvoiceLines(ctx context.Context, productID uint64) (int64, error) {
	if m.CountInvoiceLinesFn != nil {
		return m.CountInvoiceLinesFn(ctx, productID)
	}
	return 0, nil
}
