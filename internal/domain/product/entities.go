package product

import (
	"errors"
	"fmt"
	"time"
)

type Status string

const (
	StatusAvailable      Status = "available"
	StatusAssigned       Status = "assigned"
	StatusInMaintenance  Status = "in_maintenance"
	StatusAwaitingRepair Status = "awaiting_repair"
	StatusScrapped       Status = "scrapped"
	StatusInactive       Status = "inactive"
)

var (
	ErrNotFound      = errors.New("product not found")
	ErrConflict      = errors.New("product is still referenced")
	ErrInvalidStatus = errors.New("invalid product status")
)

// Valid reports whether s is one of the known lifecycle statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusAvailable, StatusAssigned, StatusInMaintenance,
		StatusAwaitingRepair, StatusScrapped, StatusInactive:
		return true
	}
	return false
}

// ExpectedTransition reports whether from -> to is part of the normal lifecycle.
// Transitions outside the table are still allowed; callers only warn about them.
func ExpectedTransition(from, to Status) bool {
	if from == to {
		return true
	}
	switch to {
	case StatusScrapped, StatusInactive:
		return true
	}
	switch from {
	case StatusAvailable:
		return to == StatusAssigned || to == StatusInMaintenance || to == StatusAwaitingRepair
	case StatusAssigned:
		return to == StatusAvailable
	}
	return false
}

// ConflictError is returned when a product cannot be deleted because other
// records still point at it. It matches ErrConflict with errors.Is.
type ConflictError struct {
	ProductID    uint64
	Assignments  int64
	InvoiceLines int64
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("cannot delete product %d: still referenced by %d assignment(s) and %d invoice line(s)",
		e.ProductID, e.Assignments, e.InvoiceLines)
}

func (e *ConflictError) Is(target error) bool { return target == ErrConflict }

type Product struct {
	ID        uint64    `gorm:"primaryKey;column:id" json:"id"`
	Name      string    `gorm:"column:name;size:255;not null" json:"name"`
	Status    Status    `gorm:"column:status;size:32;not null;default:available;index:idx_products_status" json:"status"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Product) TableName() string { return "products" }

// InvoiceLine is owned by the invoicing module; only the product reference is read here.
type InvoiceLine struct {
	ID        uint64    `gorm:"primaryKey;column:id"`
	ProductID uint64    `gorm:"column:product_id;not null;index:idx_invoice_lines_product"`
	Quantity  int       `gorm:"column:quantity;not null;default:1"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (InvoiceLine) TableName() string { return "invoice_lines" }
