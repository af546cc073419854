package mysql

import (
	"context"

	"asset-custody/internal/domain/product"
	"asset-custody/internal/domain/uow"

	"gorm.io/gorm"
)

type GormUoW struct{ db *gorm.DB }

func NewGormUoW(db *gorm.DB) *GormUoW { return &GormUoW{db: db} }

func reposFor(tx *gorm.DB) uow.Repos {
	return uow.Repos{
		Products:    &ProductRepository{db: tx},
		Assignments: &AssignmentRepository{db: tx},
		Requests:    &RequestRepository{db: tx},
		Users:       &UserRepository{db: tx},
	}
}

func (u *GormUoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(reposFor(tx))
	})
}

func (u *GormUoW) WithinProductTx(ctx context.Context, productID uint64, fn func(r uow.Repos, p *product.Product) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := reposFor(tx)
		// lock the product row up-front; every custody change for a product
		// serializes on this lock
		p, err := r.Products.GetByIDForUpdate(ctx, productID)
		if err != nil {
			return err
		}
		return fn(r, p)
	})
}
