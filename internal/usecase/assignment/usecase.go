package assignment

import (
	"context"
	"errors"
	"fmt"
	"time"

	domainAssignment "asset-custody/internal/domain/assignment"
	"asset-custody/internal/domain/audit"
	domainProduct "asset-custody/internal/domain/product"
	"asset-custody/internal/domain/uow"

	"gorm.io/gorm"
)

var errNoUnitOfWork = errors.New("assignment: unit of work not configured")

// StatusSetter is the product registry's status write, run inside our transaction.
type StatusSetter interface {
	ApplyStatus(ctx context.Context, repo domainProduct.Repository, p *domainProduct.Product, to domainProduct.Status) error
}

type Usecase struct {
	repo         domainAssignment.Repository
	uow          uow.UnitOfWork
	registry     StatusSetter
	audit        *audit.Recorder
	syncOnUpdate bool
	now          func() time.Time
}

type Option func(*Usecase)

// WithStatusSyncOnUpdate makes Update derive the product status from the
// record's new status. Off by default: Update leaves the product alone.
func WithStatusSyncOnUpdate(on bool) Option { return func(u *Usecase) { u.syncOnUpdate = on } }

func WithClock(now func() time.Time) Option { return func(u *Usecase) { u.now = now } }

func NewUsecase(assignments domainAssignment.Repository, tx uow.UnitOfWork, registry StatusSetter, rec *audit.Recorder, opts ...Option) *Usecase {
	u := &Usecase{
		repo:     assignments,
		uow:      tx,
		registry: registry,
		audit:    rec,
		now:      func() time.Time { return time.Now().UTC() },
	}
	for _, o := range opts {
		o(u)
	}
	return u
}

// Assign hands a product to a person and/or location. An existing active
// record for the product is closed first, all under the product row lock.
func (u *Usecase) Assign(ctx context.Context, in AssignInput) (*AssignmentDTO, error) {
	if u.uow == nil {
		return nil, errNoUnitOfWork
	}
	holder := domainAssignment.Holder{PersonID: in.PersonID, LocationID: in.LocationID}
	if holder.Empty() {
		return nil, domainAssignment.ErrHolderRequired
	}
	now := u.now()
	assignedAt := in.AssignedAt
	if assignedAt.IsZero() {
		assignedAt = now
	}

	var created, closed *domainAssignment.Assignment
	err := u.uow.WithinProductTx(ctx, in.ProductID, func(r uow.Repos, p *domainProduct.Product) error {
		cur, err := r.Assignments.GetActiveByProductID(ctx, p.ID)
		switch {
		case err == nil:
			cur.Status = domainAssignment.StatusReturned
			cur.ReturnedAt = &now
			cur.Note += domainAssignment.AutoReturnNote
			if err := r.Assignments.Save(ctx, cur); err != nil {
				return err
			}
			closed = cur
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return err
		}

		a := &domainAssignment.Assignment{
			ProductID:  p.ID,
			Holder:     holder,
			AssignedAt: assignedAt.UTC(),
			Status:     domainAssignment.StatusActive,
			Note:       in.Note,
		}
		if err := r.Assignments.Create(ctx, a); err != nil {
			return err
		}
		if err := u.registry.ApplyStatus(ctx, r.Products, p, domainProduct.StatusAssigned); err != nil {
			return err
		}
		created = a
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainProduct.ErrNotFound
		}
		return nil, err
	}

	if closed != nil {
		u.audit.Record(ctx, audit.Entry{
			Action:     audit.ActionUpdate,
			EntityType: audit.EntityAssignment,
			EntityID:   closed.ID,
			Details:    fmt.Sprintf("assignment %d auto-returned, product %d reassigned", closed.ID, closed.ProductID),
		})
	}
	u.audit.Record(ctx, audit.Entry{
		Action:     audit.ActionCreate,
		EntityType: audit.EntityAssignment,
		EntityID:   created.ID,
		Details:    fmt.Sprintf("product %d assigned to %s", created.ProductID, describeHolder(created.Holder)),
	})
	return toDTO(created), nil
}

// Return closes the record and frees its product. Lost records can still be returned.
func (u *Usecase) Return(ctx context.Context, id uint64) (*AssignmentDTO, error) {
	if u.uow == nil {
		return nil, errNoUnitOfWork
	}
	now := u.now()
	var out *domainAssignment.Assignment
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		a, p, err := lockRecord(ctx, r, id)
		if err != nil {
			return err
		}
		if a.Status == domainAssignment.StatusReturned {
			return domainAssignment.ErrAlreadyReturned
		}
		a.Status = domainAssignment.StatusReturned
		a.ReturnedAt = &now
		if err := r.Assignments.Save(ctx, a); err != nil {
			return err
		}
		if err := u.registry.ApplyStatus(ctx, r.Products, p, domainProduct.StatusAvailable); err != nil {
			return err
		}
		out = a
		return nil
	})
	if err != nil {
		return nil, err
	}
	u.audit.Record(ctx, audit.Entry{
		Action:     audit.ActionUpdate,
		EntityType: audit.EntityAssignment,
		EntityID:   out.ID,
		Details:    fmt.Sprintf("product %d returned", out.ProductID),
	})
	return toDTO(out), nil
}

// Update rewrites the record. The product status is left alone unless the
// usecase was built with WithStatusSyncOnUpdate; then an active record moved
// to another product also frees the product it left.
func (u *Usecase) Update(ctx context.Context, id uint64, in UpdateInput) (*AssignmentDTO, error) {
	if u.uow == nil {
		return nil, errNoUnitOfWork
	}
	holder := domainAssignment.Holder{PersonID: in.PersonID, LocationID: in.LocationID}
	if holder.Empty() {
		return nil, domainAssignment.ErrHolderRequired
	}
	if !in.Status.Valid() {
		return nil, domainAssignment.ErrInvalidStatus
	}
	now := u.now()

	var out *domainAssignment.Assignment
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		a, from, to, err := lockForUpdate(ctx, r, id, in.ProductID)
		if err != nil {
			return err
		}
		wasActive := a.Status == domainAssignment.StatusActive
		moved := from.ID != to.ID
		a.ProductID = to.ID
		if in.Status == domainAssignment.StatusActive {
			cur, err := r.Assignments.GetActiveByProductID(ctx, a.ProductID)
			if err == nil && cur.ID != a.ID {
				return domainAssignment.ErrActiveExists
			}
			if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
		}

		a.Holder = holder
		if !in.AssignedAt.IsZero() {
			a.AssignedAt = in.AssignedAt.UTC()
		}
		switch {
		case in.Status == domainAssignment.StatusReturned && a.ReturnedAt == nil:
			a.ReturnedAt = &now
		case in.Status == domainAssignment.StatusActive:
			a.ReturnedAt = nil
		}
		a.Status = in.Status
		a.Note = in.Note
		if err := r.Assignments.Save(ctx, a); err != nil {
			return err
		}
		if u.syncOnUpdate {
			// the old product loses the custody this record held
			if moved && wasActive {
				if err := u.registry.ApplyStatus(ctx, r.Products, from, domainProduct.StatusAvailable); err != nil {
					return err
				}
			}
			if err := u.registry.ApplyStatus(ctx, r.Products, to, productStatusFor(a.Status)); err != nil {
				return err
			}
		}
		out = a
		return nil
	})
	if err != nil {
		return nil, err
	}
	u.audit.Record(ctx, audit.Entry{
		Action:     audit.ActionUpdate,
		EntityType: audit.EntityAssignment,
		EntityID:   out.ID,
		Details:    fmt.Sprintf("assignment updated: product %d, %s, %s", out.ProductID, out.Status, describeHolder(out.Holder)),
	})
	return toDTO(out), nil
}

// Delete removes the record outright and sets its product back to available,
// whatever the record's status was.
func (u *Usecase) Delete(ctx context.Context, id uint64) error {
	if u.uow == nil {
		return errNoUnitOfWork
	}
	var productID uint64
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		a, p, err := lockRecord(ctx, r, id)
		if err != nil {
			return err
		}
		if err := r.Assignments.Delete(ctx, a.ID); err != nil {
			return err
		}
		productID = a.ProductID
		return u.registry.ApplyStatus(ctx, r.Products, p, domainProduct.StatusAvailable)
	})
	if err != nil {
		return err
	}
	u.audit.Record(ctx, audit.Entry{
		Action:     audit.ActionDelete,
		EntityType: audit.EntityAssignment,
		EntityID:   id,
		Details:    fmt.Sprintf("assignment deleted, product %d set available", productID),
	})
	return nil
}

func (u *Usecase) Get(ctx context.Context, id uint64) (*AssignmentDTO, error) {
	a, err := u.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainAssignment.ErrNotFound
		}
		return nil, err
	}
	return toDTO(a), nil
}

// ActiveForProduct returns the product's open custody record, ErrNotFound when
// nobody holds it.
func (u *Usecase) ActiveForProduct(ctx context.Context, productID uint64) (*AssignmentDTO, error) {
	a, err := u.repo.GetActiveByProductID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainAssignment.ErrNotFound
		}
		return nil, err
	}
	return toDTO(a), nil
}

func (u *Usecase) List(ctx context.Context, f domainAssignment.Filter) ([]AssignmentDTO, error) {
	if f.Status != "" && !f.Status.Valid() {
		return nil, domainAssignment.ErrInvalidStatus
	}
	items, err := u.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]AssignmentDTO, 0, len(items))
	for i := range items {
		out = append(out, *toDTO(&items[i]))
	}
	return out, nil
}

// lockRecord takes the product lock before the record lock, the same order
// Assign uses, then re-reads the record under it.
func lockRecord(ctx context.Context, r uow.Repos, id uint64) (*domainAssignment.Assignment, *domainProduct.Product, error) {
	a, p, _, err := lockForUpdate(ctx, r, id, 0)
	return a, p, err
}

// lockForUpdate locks the record's product and, when target names another
// product, that one too. Products are locked in ascending id order so two
// opposite moves cannot deadlock; the record is locked last. from and to are
// the same product when target is zero or already the record's.
func lockForUpdate(ctx context.Context, r uow.Repos, id, target uint64) (*domainAssignment.Assignment, *domainProduct.Product, *domainProduct.Product, error) {
	for attempt := 0; attempt < 3; attempt++ {
		cur, err := r.Assignments.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, nil, nil, domainAssignment.ErrNotFound
			}
			return nil, nil, nil, err
		}
		dst := target
		if dst == 0 {
			dst = cur.ProductID
		}
		ids := []uint64{cur.ProductID, dst}
		if ids[1] < ids[0] {
			ids[0], ids[1] = ids[1], ids[0]
		}
		products := make(map[uint64]*domainProduct.Product, 2)
		for _, pid := range ids {
			if _, ok := products[pid]; ok {
				continue
			}
			p, err := r.Products.GetByIDForUpdate(ctx, pid)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return nil, nil, nil, domainProduct.ErrNotFound
				}
				return nil, nil, nil, err
			}
			products[pid] = p
		}
		locked, err := r.Assignments.GetByIDForUpdate(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, nil, nil, domainAssignment.ErrNotFound
			}
			return nil, nil, nil, err
		}
		if locked.ProductID == cur.ProductID {
			return locked, products[cur.ProductID], products[dst], nil
		}
		// moved to another product between the two reads
	}
	return nil, nil, nil, fmt.Errorf("assignment %d: product changed concurrently", id)
}

func productStatusFor(s domainAssignment.Status) domainProduct.Status {
	switch s {
	case domainAssignment.StatusActive:
		return domainProduct.StatusAssigned
	case domainAssignment.StatusLost:
		return domainProduct.StatusInactive
	}
	return domainProduct.StatusAvailable
}

func describeHolder(h domainAssignment.Holder) string {
	switch {
	case h.PersonID != nil && h.LocationID != nil:
		return fmt.Sprintf("person %d at location %d", *h.PersonID, *h.LocationID)
	case h.PersonID != nil:
		return fmt.Sprintf("person %d", *h.PersonID)
	case h.LocationID != nil:
		return fmt.Sprintf("location %d", *h.LocationID)
	}
	return "nobody"
}
