package product

import (
	"time"

	domainProduct "asset-custody/internal/domain/product"
)

type CreateInput struct {
	Name   string
	Status domainProduct.Status // empty means available
}

type ProductDTO struct {
	ID        uint64    `json:"id"`
	Name      string    `json:"name"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toDTO(p *domainProduct.Product) *ProductDTO {
	return &ProductDTO{
		ID:        p.ID,
		Name:      p.Name,
		Status:    string(p.Status),
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
