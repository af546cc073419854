package audit

import (
	"context"
	"time"
)

type Action string

const (
	ActionCreate  Action = "create"
	ActionUpdate  Action = "update"
	ActionDelete  Action = "delete"
	ActionApprove Action = "approve"
	ActionReject  Action = "reject"
)

type EntityType string

const (
	EntityProduct    EntityType = "urun"
	EntityAssignment EntityType = "zimmet"
	EntityRequest    EntityType = "talep"
)

func (t EntityType) Valid() bool {
	switch t {
	case EntityProduct, EntityAssignment, EntityRequest:
		return true
	}
	return false
}

// Entry is what the core hands to a Sink. Actor fields are filled from the
// context by Recorder when left empty.
type Entry struct {
	Action     Action
	EntityType EntityType
	EntityID   uint64
	Details    string
	UserID     uint64
	UserName   string
	IPAddress  string
	RequestID  string
}

// Table: audit_logs
type Record struct {
	ID         uint64     `gorm:"column:id;primaryKey;autoIncrement"`
	EventID    string     `gorm:"column:event_id;type:char(36);not null;uniqueIndex:ux_audit_logs_event"`
	Action     Action     `gorm:"column:action;size:16;not null"`
	EntityType EntityType `gorm:"column:entity_type;size:32;not null;index:idx_audit_logs_entity"`
	EntityID   uint64     `gorm:"column:entity_id;not null;index:idx_audit_logs_entity"`
	Details    string     `gorm:"column:details;type:text"`
	UserID     *uint64    `gorm:"column:user_id;index:idx_audit_logs_user"`
	UserName   string     `gorm:"column:user_name;size:255"`
	IPAddress  string     `gorm:"column:ip_address;size:64"`
	RequestID  string     `gorm:"column:request_id;size:64"`
	CreatedAt  time.Time  `gorm:"column:created_at;autoCreateTime"`
}

func (Record) TableName() string { return "audit_logs" }

type Sink interface {
	Log(ctx context.Context, e Entry) error
}

// Reader returns one entity's trail, oldest first.
type Reader interface {
	ListByEntity(ctx context.Context, et EntityType, entityID uint64) ([]Record, error)
}
