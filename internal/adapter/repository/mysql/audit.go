package mysql

import (
	"context"

	"asset-custody/internal/domain/audit"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AuditRepository is the gorm-backed audit.Sink. It always writes outside any
// business transaction so a failing insert never rolls back the change it describes.
type AuditRepository struct{ db *gorm.DB }

func NewAuditRepository(db *gorm.DB) *AuditRepository { return &AuditRepository{db: db} }

func (r *AuditRepository) Log(ctx context.Context, e audit.Entry) error {
	rec := &audit.Record{
		EventID:    uuid.NewString(),
		Action:     e.Action,
		EntityType: e.EntityType,
		EntityID:   e.EntityID,
		Details:    e.Details,
		UserName:   e.UserName,
		IPAddress:  e.IPAddress,
		RequestID:  e.RequestID,
	}
	if e.UserID != 0 {
		uid := e.UserID
		rec.UserID = &uid
	}
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *AuditRepository) ListByEntity(ctx context.Context, et audit.EntityType, entityID uint64) ([]audit.Record, error) {
	var out []audit.Record
	err := r.db.WithContext(ctx).
		Where("entity_type = ? AND entity_id = ?", et, entityID).
		Order("id ASC").
		Find(&out).Error
	return out, err
}
