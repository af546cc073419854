package assignment

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

type Status string

const (
	StatusActive   Status = "active"
	StatusReturned Status = "returned"
	StatusLost     Status = "lost"
)

// AutoReturnNote is appended to the note of an active record that gets closed
// because its product was handed to someone else.
const AutoReturnNote = " (auto-returned — reassigned)"

var (
	ErrNotFound        = errors.New("assignment not found")
	ErrAlreadyReturned = errors.New("assignment already returned")
	ErrActiveExists    = errors.New("product already has an active assignment")
	ErrHolderRequired  = errors.New("assignment needs a person or a location")
	ErrInvalidStatus   = errors.New("invalid assignment status")
)

func (s Status) Valid() bool {
	return s == StatusActive || s == StatusReturned || s == StatusLost
}

// Holder is who (or where) has the product. At least one side must be set.
type Holder struct {
	PersonID   *uint64 `gorm:"column:person_id;index:idx_assignments_person"`
	LocationID *uint64 `gorm:"column:location_id;index:idx_assignments_location"`
}

func (h Holder) Empty() bool { return h.PersonID == nil && h.LocationID == nil }

// Table: assignments (zimmet records)
type Assignment struct {
	ID        uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	ProductID uint64 `gorm:"column:product_id;not null;index:idx_assignments_product"`
	Holder
	AssignedAt time.Time  `gorm:"column:assigned_at;not null"`
	ReturnedAt *time.Time `gorm:"column:returned_at"`
	Status     Status     `gorm:"column:status;size:16;not null;default:active;index:idx_assignments_status"`
	Note       string     `gorm:"column:note;type:text"`
	// ActiveProductID mirrors ProductID while the record is active and is NULL
	// otherwise, so the unique index allows a single active row per product.
	ActiveProductID *uint64   `gorm:"column:active_product_id;uniqueIndex:ux_assignments_active_product"`
	CreatedAt       time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Assignment) TableName() string { return "assignments" }

func (a *Assignment) syncActiveKey() {
	if a.Status == StatusActive {
		pid := a.ProductID
		a.ActiveProductID = &pid
		return
	}
	a.ActiveProductID = nil
}

// BeforeSave runs on both create and save.
func (a *Assignment) BeforeSave(*gorm.DB) error {
	a.syncActiveKey()
	return nil
}
