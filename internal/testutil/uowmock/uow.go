package uowmock

import (
	"context"
	"errors"

	"asset-custody/internal/domain/product"
	"asset-custody/internal/domain/uow"
)

// Ensure compile-time compliance
var _ uow.UnitOfWork = (*UoW)(nil)

var errUnimplemented = errors.New("uowmock: method not implemented")

// UoW is a function-backed mock that satisfies uow.UnitOfWork.
// Fill in the function fields you need in a test; unfilled ones return errUnimplemented.
type UoW struct {
	WithinTxFn        func(ctx context.Context, fn func(r uow.Repos) error) error
	WithinProductTxFn func(ctx context.Context, productID uint64, fn func(r uow.Repos, p *product.Product) error) error
}

func New() *UoW { return &UoW{} }

// Passthrough runs callbacks directly against repos. WithinProductTx resolves
// the product through repos.Products.GetByIDForUpdate like the real one.
func Passthrough(repos uow.Repos) *UoW {
	return &UoW{
		WithinTxFn: func(_ context.Context, fn func(uow.Repos) error) error {
			return fn(repos)
		},
		WithinProductTxFn: func(ctx context.Context, productID uint64, fn func(uow.Repos, *product.Product) error) error {
			p, err := repos.Products.GetByIDForUpdate(ctx, productID)
			if err != nil {
				return err
			}
			return fn(repos, p)
		},
	}
}

func (m *UoW) WithWithinTx(fn func(context.Context, func(uow.Repos) error) error) *UoW {
	m.WithinTxFn = fn
	return m
}
func (m *UoW) WithWithinProductTx(fn func(context.Context, uint64, func(uow.Repos, *product.Product) error) error) *UoW {
	m.WithinProductTxFn = fn
	return m
}
func (m *UoW) Reset() { *m = UoW{} }

func (m *UoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	if m.WithinTxFn != nil {
		return m.WithinTxFn(ctx, fn)
	}
	return errUnimplemented
}
func (m *UoW) WithinProductTx(ctx context.Context, productID uint64, fn func(r uow.Repos, p *product.Product) error) error {
	if m.WithinProductTxFn != nil {
		return m.WithinProductTxFn(ctx, productID, fn)
	}
	return errUnimplemented
}
