package mysql

import (
	"context"

	"asset-custody/internal/domain/request"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RequestRepository struct{ db *gorm.DB }

func NewRequestRepository(db *gorm.DB) *RequestRepository { return &RequestRepository{db: db} }

func (r *RequestRepository) Create(ctx context.Context, req *request.Request) error {
	return r.db.WithContext(ctx).Create(req).Error
}

func (r *RequestRepository) Save(ctx context.Context, req *request.Request) error {
	return r.db.WithContext(ctx).Save(req).Error
}

func (r *RequestRepository) GetByID(ctx context.Context, id uint64) (*request.Request, error) {
	var out request.Request
	res := r.db.WithContext(ctx).Where("id = ?", id).First(&out)
	return &out, res.Error
}

func (r *RequestRepository) GetByIDForUpdate(ctx context.Context, id uint64) (*request.Request, error) {
	var out request.Request
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&out)
	return &out, res.Error
}

func (r *RequestRepository) List(ctx context.Context, f request.Filter) ([]request.Request, error) {
	var out []request.Request
	q := r.db.WithContext(ctx).Order("created_at DESC, id DESC")
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Kind != "" {
		q = q.Where("kind = ?", f.Kind)
	}
	if f.RequesterID != 0 {
		q = q.Where("requester_id = ?", f.RequesterID)
	}
	return out, q.Find(&out).Error
}

func (r *RequestRepository) Delete(ctx context.Context, id uint64) error {
	res := r.db.WithContext(ctx).Delete(&request.Request{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *RequestRepository) CountByStatus(ctx context.Context, status request.Status) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&request.Request{}).
		Where("status = ?", status).
		Count(&n).Error
	return n, err
}
