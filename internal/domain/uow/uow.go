package uow

import (
	"context"

	"asset-custody/internal/domain/assignment"
	"asset-custody/internal/domain/product"
	"asset-custody/internal/domain/request"
	"asset-custody/internal/domain/user"
)

// Repos are bound to the running transaction.
type Repos struct {
	Products    product.Repository
	Assignments assignment.Repository
	Requests    request.Repository
	Users       user.Repository
}

type UnitOfWork interface {
	// plain tx
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// lock the product row first, then pass it in
	WithinProductTx(ctx context.Context, productID uint64, fn func(r Repos, p *product.Product) error) error
}
