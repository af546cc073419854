package usermock

import (
	"context"

	domain "asset-custody/internal/domain/user"

	"gorm.io/gorm"
)

var _ domain.Repository = (*Repo)(nil)

type Repo struct {
	CreateFn  func(ctx context.Context, u *domain.User) error
	GetByIDFn func(ctx context.Context, id uint64) (*domain.User, error)
}

func (m *Repo) Create(ctx context.Context, u *domain.User) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, u)
	}
	return nil
}

func (m *Repo) GetByID(ctx context.Context, id uint64) (*domain.User, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

// Static resolves ids from a fixed set; anything else is not found.
func Static(users ...domain.User) *Repo {
	byID := make(map[uint64]domain.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}
	return &Repo{GetByIDFn: func(_ context.Context, id uint64) (*domain.User, error) {
		u, ok := byID[id]
		if !ok {
			return nil, gorm.ErrRecordNotFound
		}
		return &u, nil
	}}
}
