package requestmock

import (
	"context"

	domain "asset-custody/internal/domain/request"

	"gorm.io/gorm"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn           func(ctx context.Context, r *domain.Request) error
	SaveFn             func(ctx context.Context, r *domain.Request) error
	GetByIDFn          func(ctx context.Context, id uint64) (*domain.Request, error)
	GetByIDForUpdateFn func(ctx context.Context, id uint64) (*domain.Request, error)
	ListFn             func(ctx context.Context, f domain.Filter) ([]domain.Request, error)
	DeleteFn           func(ctx context.Context, id uint64) error
	CountByStatusFn    func(ctx context.Context, status domain.Status) (int64, error)
}

func (m *Repo) Create(ctx context.Context, r *domain.Request) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, r)
	}
	return nil
}

func (m *Repo) Save(ctx context.Context, r *domain.Request) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, r)
	}
	return nil
}

func (m *Repo) GetByID(ctx context.Context, id uint64) (*domain.Request, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) GetByIDForUpdate(ctx context.Context, id uint64) (*domain.Request, error) {
	if m.GetByIDForUpdateFn != nil {
		return m.GetByIDForUpdateFn(ctx, id)
	}
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) List(ctx context.Context, f domain.Filter) ([]domain.Request, error) {
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

func (m *Repo) CountByStatus(ctx context.Context, status domain.Status) (int64, error) {
	if m.CountByStatusFn != nil {
		return m.CountByStatusFn(ctx, status)
	}
	return 0, nil
}
