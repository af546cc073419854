package assignmentmock

import (
	"context"

	domain "asset-custody/internal/domain/assignment"

	"gorm.io/gorm"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn               func(ctx context.Context, a *domain.Assignment) error
	SaveFn                 func(ctx context.Context, a *domain.Assignment) error
	GetByIDFn              func(ctx context.Context, id uint64) (*domain.Assignment, error)
	GetByIDForUpdateFn     func(ctx context.Context, id uint64) (*domain.Assignment, error)
	GetActiveByProductIDFn func(ctx context.Context, productID uint64) (*domain.Assignment, error)
	ListFn                 func(ctx context.Context, f domain.Filter) ([]domain.Assignment, error)
	DeleteFn               func(ctx context.Context, id uint64) error
	CountByProductIDFn     func(ctx context.Context, productID uint64) (int64, error)
}

func (m *Repo) Create(ctx context.Context, a *domain.Assignment) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, a)
	}
	return nil
}

func (m *Repo) Save(ctx context.Context, a *domain.Assignment) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, a)
	}
	return nil
}

func (m *Repo) GetByID(ctx context.Context, id uint64) (*domain.Assignment, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) GetByIDForUpdate(ctx context.Context, id uint64) (*domain.Assignment, error) {
	if m.GetByIDForUpdateFn != nil {
		return m.GetByIDForUpdateFn(ctx, id)
	}
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) GetActiveByProductID(ctx context.Context, productID uint64) (*domain.Assignment, error) {
	if m.GetActiveByProductIDFn != nil {
		return m.GetActiveByProductIDFn(ctx, productID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) List(ctx context.Context, f domain.Filter) ([]domain.Assignment, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, f)
	}
	return nil, nil
}

func (m *Repo) Delete(ctx context.Context, id uint64) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return nil
}

func (m *Repo) CountByProductID(ctx context.Context, productID uint64) (int64, error) {
	if m.CountByProductIDFn != nil {
		return m.CountByProductIDFn(ctx, productID)
	}
	return 0, nil
}
