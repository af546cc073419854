package mysql

import (
	"context"
	"errors"

	"asset-custody/internal/domain/assignment"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AssignmentRepository struct{ db *gorm.DB }

func NewAssignmentRepository(db *gorm.DB) *AssignmentRepository {
	return &AssignmentRepository{db: db}
}

// the active_product_id unique index is the last line of defence for
// "one active assignment per product"
func translateAssignmentErr(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return assignment.ErrActiveExists
	}
	return err
}

func (r *AssignmentRepository) Create(ctx context.Context, a *assignment.Assignment) error {
	return translateAssignmentErr(r.db.WithContext(ctx).Create(a).Error)
}

func (r *AssignmentRepository) Save(ctx context.Context, a *assignment.Assignment) error {
	return translateAssignmentErr(r.db.WithContext(ctx).Save(a).Error)
}

func (r *AssignmentRepository) GetByID(ctx context.Context, id uint64) (*assignment.Assignment, error) {
	var out assignment.Assignment
	res := r.db.WithContext(ctx).Where("id = ?", id).First(&out)
	return &out, res.Error
}

func (r *AssignmentRepository) GetByIDForUpdate(ctx context.Context, id uint64) (*assignment.Assignment, error) {
	var out assignment.Assignment
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&out)
	return &out, res.Error
}

func (r *AssignmentRepository) GetActiveByProductID(ctx context.Context, productID uint64) (*assignment.Assignment, error) {
	var out assignment.Assignment
	res := r.db.WithContext(ctx).
		Where("product_id = ? AND status = ?", productID, assignment.StatusActive).
		Order("id DESC").
		First(&out)
	return &out, res.Error
}

func (r *AssignmentRepository) List(ctx context.Context, f assignment.Filter) ([]assignment.Assignment, error) {
	var out []assignment.Assignment
	q := r.db.WithContext(ctx).Order("assigned_at DESC, id DESC")
	if f.ProductID != 0 {
		q = q.Where("product_id = ?", f.ProductID)
	}
	if f.PersonID != 0 {
		q = q.Where("person_id = ?", f.PersonID)
	}
	if f.LocationID != 0 {
		q = q.Where("location_id = ?", f.LocationID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	return out, q.Find(&out).Error
}

func (r *AssignmentRepository) Delete(ctx context.Context, id uint64) error {
	res := r.db.WithContext(ctx).Delete(&assignment.Assignment{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *AssignmentRepository) CountByProductID(ctx context.Context, productID uint64) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&assignment.Assignment{}).
		Where("product_id = ?", productID).
		Count(&n).Error
	return n, err
}
