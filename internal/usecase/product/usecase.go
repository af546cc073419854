package product

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"asset-custody/internal/domain/audit"
	domainProduct "asset-custody/internal/domain/product"
	"asset-custody/internal/domain/uow"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var ErrNameRequired = errors.New("product name is required")

// Usecase is the product registry. Other components change product status only
// through ApplyStatus so every write goes through the same transition check.
type Usecase struct {
	repo  domainProduct.Repository
	uow   uow.UnitOfWork
	audit *audit.Recorder
	log   logrus.FieldLogger
}

func NewUsecase(products domainProduct.Repository, tx uow.UnitOfWork, rec *audit.Recorder, log logrus.FieldLogger) *Usecase {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Usecase{repo: products, uow: tx, audit: rec, log: log}
}

// ApplyStatus writes status on p through repo, which must be bound to the
// caller's transaction. Transitions outside the usual lifecycle are logged,
// not refused.
func (u *Usecase) ApplyStatus(ctx context.Context, repo domainProduct.Repository, p *domainProduct.Product, to domainProduct.Status) error {
	if !to.Valid() {
		return domainProduct.ErrInvalidStatus
	}
	if !domainProduct.ExpectedTransition(p.Status, to) {
		u.log.WithFields(logrus.Fields{
			"product_id": p.ID,
			"from":       p.Status,
			"to":         to,
		}).Warn("unexpected product status transition")
	}
	if err := repo.UpdateStatus(ctx, p.ID, to); err != nil {
		return err
	}
	p.Status = to
	return nil
}

func (u *Usecase) Create(ctx context.Context, in CreateInput) (*ProductDTO, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, ErrNameRequired
	}
	status := in.Status
	if status == "" {
		status = domainProduct.StatusAvailable
	}
	if !status.Valid() {
		return nil, domainProduct.ErrInvalidStatus
	}
	p := &domainProduct.Product{Name: name, Status: status}
	if err := u.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	u.audit.Record(ctx, audit.Entry{
		Action:     audit.ActionCreate,
		EntityType: audit.EntityProduct,
		EntityID:   p.ID,
		Details:    fmt.Sprintf("product %q created as %s", p.Name, p.Status),
	})
	return toDTO(p), nil
}

func (u *Usecase) Get(ctx context.Context, id uint64) (*ProductDTO, error) {
	p, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return toDTO(p), nil
}

func (u *Usecase) List(ctx context.Context, status domainProduct.Status) ([]ProductDTO, error) {
	if status != "" && !status.Valid() {
		return nil, domainProduct.ErrInvalidStatus
	}
	items, err := u.repo.List(ctx, status)
	if err != nil {
		return nil, err
	}
	out := make([]ProductDTO, 0, len(items))
	for i := range items {
		out = append(out, *toDTO(&items[i]))
	}
	return out, nil
}

// SetStatus is the direct, operator-facing status change.
func (u *Usecase) SetStatus(ctx context.Context, id uint64, to domainProduct.Status) (*ProductDTO, error) {
	if !to.Valid() {
		return nil, domainProduct.ErrInvalidStatus
	}
	var out *ProductDTO
	var from domainProduct.Status
	err := u.uow.WithinProductTx(ctx, id, func(r uow.Repos, p *domainProduct.Product) error {
		from = p.Status
		if err := u.ApplyStatus(ctx, r.Products, p, to); err != nil {
			return err
		}
		out = toDTO(p)
		return nil
	})
	if err != nil {
		return nil, notFound(err)
	}
	u.audit.Record(ctx, audit.Entry{
		Action:     audit.ActionUpdate,
		EntityType: audit.EntityProduct,
		EntityID:   id,
		Details:    fmt.Sprintf("status %s -> %s", from, to),
	})
	return out, nil
}

// Delete refuses while any assignment or invoice line still references the product.
func (u *Usecase) Delete(ctx context.Context, id uint64) error {
	err := u.uow.WithinProductTx(ctx, id, func(r uow.Repos, p *domainProduct.Product) error {
		assignments, err := r.Assignments.CountByProductID(ctx, p.ID)
		if err != nil {
			return err
		}
		lines, err := r.Products.CountInvoiceLines(ctx, p.ID)
		if err != nil {
			return err
		}
		if assignments > 0 || lines > 0 {
			return &domainProduct.ConflictError{ProductID: p.ID, Assignments: assignments, InvoiceLines: lines}
		}
		return r.Products.Delete(ctx, p.ID)
	})
	if err != nil {
		return notFound(err)
	}
	u.audit.Record(ctx, audit.Entry{
		Action:     audit.ActionDelete,
		EntityType: audit.EntityProduct,
		EntityID:   id,
		Details:    fmt.Sprintf("product %d deleted", id),
	})
	return nil
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domainProduct.ErrNotFound
	}
	return err
}
