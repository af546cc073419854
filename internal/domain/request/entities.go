package request

import (
	"errors"
	"time"

	"asset-custody/internal/domain/product"
)

type Kind string

// Kinds are the request types users can file. Cari is the supplier/customer
// account directory.
const (
	KindCariAdd        Kind = "cari_add"
	KindCariEdit       Kind = "cari_edit"
	KindCariDelete     Kind = "cari_delete"
	KindLocationAdd    Kind = "location_add"
	KindLocationEdit   Kind = "location_edit"
	KindLocationDelete Kind = "location_delete"
	KindCategoryAdd    Kind = "category_add"
	KindCategoryEdit   Kind = "category_edit"
	KindCategoryDelete Kind = "category_delete"
	KindMaintenance    Kind = "maintenance"
	KindRepair         Kind = "repair"
)

var kinds = map[Kind]struct{}{
	KindCariAdd: {}, KindCariEdit: {}, KindCariDelete: {},
	KindLocationAdd: {}, KindLocationEdit: {}, KindLocationDelete: {},
	KindCategoryAdd: {}, KindCategoryEdit: {}, KindCategoryDelete: {},
	KindMaintenance: {}, KindRepair: {},
}

func (k Kind) Valid() bool {
	_, ok := kinds[k]
	return ok
}

// ProductEffect is the product status an approved request of this kind puts
// its referenced product into. Only maintenance and repair have one.
func (k Kind) ProductEffect() (product.Status, bool) {
	switch k {
	case KindMaintenance:
		return product.StatusInMaintenance, true
	case KindRepair:
		return product.StatusAwaitingRepair, true
	}
	return "", false
}

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

func (s Status) Valid() bool {
	return s == StatusPending || s == StatusApproved || s == StatusRejected
}

var (
	ErrNotFound          = errors.New("request not found")
	ErrAlreadyDecided    = errors.New("request already decided")
	ErrInvalidKind       = errors.New("invalid request kind")
	ErrInvalidStatus     = errors.New("invalid request status")
	ErrTitleRequired     = errors.New("request title is required")
	ErrRequesterNotFound = errors.New("requester not found")
	ErrApproverNotFound  = errors.New("approver not found")
)

// Table: requests (talep records)
type Request struct {
	ID              uint64     `gorm:"column:id;primaryKey;autoIncrement"`
	Kind            Kind       `gorm:"column:kind;size:32;not null;index:idx_requests_kind"`
	RequesterID     uint64     `gorm:"column:requester_id;not null;index:idx_requests_requester"`
	RequesterName   string     `gorm:"column:requester_name;size:255"`
	Title           string     `gorm:"column:title;size:255;not null"`
	Details         string     `gorm:"column:details;type:text"`
	Payload         string     `gorm:"column:payload;type:text"`
	Status          Status     `gorm:"column:status;size:16;not null;default:pending;index:idx_requests_status"`
	ApproverID      *uint64    `gorm:"column:approver_id"`
	ApproverName    string     `gorm:"column:approver_name;size:255"`
	DecisionAt      *time.Time `gorm:"column:decision_at"`
	RejectionReason *string    `gorm:"column:rejection_reason;type:text"`
	CreatedAt       time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

func (Request) TableName() string { return "requests" }

// Decided is true once the request left pending. Decided requests are final.
func (r *Request) Decided() bool { return r.Status != StatusPending }
