package assignment

import (
	"time"

	domainAssignment "asset-custody/internal/domain/assignment"
)

type AssignInput struct {
	ProductID  uint64
	PersonID   *uint64
	LocationID *uint64
	AssignedAt time.Time // zero means now
	Note       string
}

type UpdateInput struct {
	ProductID  uint64
	PersonID   *uint64
	LocationID *uint64
	AssignedAt time.Time // zero keeps the stored value
	Status     domainAssignment.Status
	Note       string
}

type AssignmentDTO struct {
	ID         uint64     `json:"id"`
	ProductID  uint64     `json:"product_id"`
	PersonID   *uint64    `json:"person_id,omitempty"`
	LocationID *uint64    `json:"location_id,omitempty"`
	AssignedAt time.Time  `json:"assigned_at"`
	ReturnedAt *time.Time `json:"returned_at,omitempty"`
	Status     string     `json:"status"`
	Note       string     `json:"note"`
}

func toDTO(a *domainAssignment.Assignment) *AssignmentDTO {
	return &AssignmentDTO{
		ID:         a.ID,
		ProductID:  a.ProductID,
		PersonID:   a.PersonID,
		LocationID: a.LocationID,
		AssignedAt: a.AssignedAt,
		ReturnedAt: a.ReturnedAt,
		Status:     string(a.Status),
		Note:       a.Note,
	}
}
