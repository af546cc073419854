package mysql

import (
	"context"

	"asset-custody/internal/domain/product"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProductRepository struct{ db *gorm.DB }

func NewProductRepository(db *gorm.DB) *ProductRepository { return &ProductRepository{db: db} }

func (r *ProductRepository) Create(ctx context.Context, p *product.Product) error {
	if p.Status == "" {
		p.Status = product.StatusAvailable
	}
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *ProductRepository) GetByID(ctx context.Context, id uint64) (*product.Product, error) {
	var out product.Product
	res := r.db.WithContext(ctx).Where("id = ?", id).First(&out)
	return &out, res.Error
}

func (r *ProductRepository) GetByIDForUpdate(ctx context.Context, id uint64) (*product.Product, error) {
	var out product.Product
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&out)
	return &out, res.Error
}

func (r *ProductRepository) List(ctx context.Context, status product.Status) ([]product.Product, error) {
	var out []product.Product
	q := r.db.WithContext(ctx).Order("id ASC")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	return out, q.Find(&out).Error
}

// UpdateStatus does not check RowsAffected: MySQL reports 0 for a same-value
// write and callers always hold the locked row already.
func (r *ProductRepository) UpdateStatus(ctx context.Context, id uint64, status product.Status) error {
	return r.db.WithContext(ctx).
		Model(&product.Product{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *ProductRepository) Delete(ctx context.Context, id uint64) error {
	res := r.db.WithContext(ctx).Delete(&product.Product{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *ProductRepository) CountInvoiceLines(ctx context.Context, productID uint64) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&product.InvoiceLine{}).
		Where("product_id = ?", productID).
		Count(&n).Error
	return n, err
}
