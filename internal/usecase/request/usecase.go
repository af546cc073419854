package request

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"asset-custody/internal/domain/audit"
	domainProduct "asset-custody/internal/domain/product"
	domainRequest "asset-custody/internal/domain/request"
	"asset-custody/internal/domain/uow"
	"asset-custody/internal/domain/user"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var errNoUnitOfWork = errors.New("request: unit of work not configured")

// StatusSetter is the product registry's status write, run inside our transaction.
type StatusSetter interface {
	ApplyStatus(ctx context.Context, repo domainProduct.Repository, p *domainProduct.Product, to domainProduct.Status) error
}

// PendingCache holds the pending count between writes. Implementations
// swallow their own errors; a miss always falls back to the database.
// Load hands out a generation token and Store drops the write when an
// Invalidate has run since, so a slow reader cannot cache a stale count.
type PendingCache interface {
	Load(ctx context.Context) (n int64, gen string, ok bool)
	Store(ctx context.Context, n int64, gen string)
	Invalidate(ctx context.Context)
}

type Usecase struct {
	repo     domainRequest.Repository
	users    user.Repository
	uow      uow.UnitOfWork
	registry StatusSetter
	audit    *audit.Recorder
	cache    PendingCache
	log      logrus.FieldLogger
	now      func() time.Time
}

type Option func(*Usecase)

func WithPendingCache(c PendingCache) Option { return func(u *Usecase) { u.cache = c } }

func WithClock(now func() time.Time) Option { return func(u *Usecase) { u.now = now } }

func WithLogger(log logrus.FieldLogger) Option { return func(u *Usecase) { u.log = log } }

func NewUsecase(requests domainRequest.Repository, users user.Repository, tx uow.UnitOfWork, registry StatusSetter, rec *audit.Recorder, opts ...Option) *Usecase {
	u := &Usecase{
		repo:     requests,
		users:    users,
		uow:      tx,
		registry: registry,
		audit:    rec,
		log:      logrus.StandardLogger(),
		now:      func() time.Time { return time.Now().UTC() },
	}
	for _, o := range opts {
		o(u)
	}
	return u
}

func (u *Usecase) Create(ctx context.Context, in CreateInput) (*RequestDTO, error) {
	if !in.Kind.Valid() {
		return nil, domainRequest.ErrInvalidKind
	}
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, domainRequest.ErrTitleRequired
	}
	requester, err := u.users.GetByID(ctx, in.RequesterID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainRequest.ErrRequesterNotFound
		}
		return nil, err
	}

	r := &domainRequest.Request{
		Kind:          in.Kind,
		RequesterID:   requester.ID,
		RequesterName: requester.Name,
		Title:         title,
		Details:       in.Details,
		Payload:       in.Payload,
		Status:        domainRequest.StatusPending,
	}
	if err := u.repo.Create(ctx, r); err != nil {
		return nil, err
	}
	u.invalidate(ctx)
	u.audit.Record(ctx, audit.Entry{
		Action:     audit.ActionCreate,
		EntityType: audit.EntityRequest,
		EntityID:   r.ID,
		Details:    fmt.Sprintf("%s request %q by %s", r.Kind, r.Title, r.RequesterName),
	})
	return toDTO(r), nil
}

// Approve decides a pending request. Maintenance and repair requests also move
// the product named in the payload; a missing or unknown product is logged and
// the approval still goes through.
func (u *Usecase) Approve(ctx context.Context, id uint64, in DecisionInput) (*RequestDTO, error) {
	if u.uow == nil {
		return nil, errNoUnitOfWork
	}
	var out *domainRequest.Request
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		req, approver, err := u.lockPending(ctx, r, id, in.ApproverID)
		if err != nil {
			return err
		}
		if to, ok := req.Kind.ProductEffect(); ok {
			if err := u.applyProductEffect(ctx, r, req, to); err != nil {
				return err
			}
		}
		u.decide(req, approver, domainRequest.StatusApproved)
		if err := r.Requests.Save(ctx, req); err != nil {
			return err
		}
		out = req
		return nil
	})
	if err != nil {
		return nil, err
	}
	u.invalidate(ctx)
	u.audit.Record(ctx, audit.Entry{
		Action:     audit.ActionApprove,
		EntityType: audit.EntityRequest,
		EntityID:   out.ID,
		Details:    fmt.Sprintf("%s request approved by %s", out.Kind, out.ApproverName),
	})
	return toDTO(out), nil
}

func (u *Usecase) Reject(ctx context.Context, id uint64, in DecisionInput) (*RequestDTO, error) {
	if u.uow == nil {
		return nil, errNoUnitOfWork
	}
	var out *domainRequest.Request
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		req, approver, err := u.lockPending(ctx, r, id, in.ApproverID)
		if err != nil {
			return err
		}
		u.decide(req, approver, domainRequest.StatusRejected)
		if reason := strings.TrimSpace(in.Reason); reason != "" {
			req.RejectionReason = &reason
		}
		if err := r.Requests.Save(ctx, req); err != nil {
			return err
		}
		out = req
		return nil
	})
	if err != nil {
		return nil, err
	}
	u.invalidate(ctx)
	details := fmt.Sprintf("%s request rejected by %s", out.Kind, out.ApproverName)
	if out.RejectionReason != nil {
		details += ": " + *out.RejectionReason
	}
	u.audit.Record(ctx, audit.Entry{
		Action:     audit.ActionReject,
		EntityType: audit.EntityRequest,
		EntityID:   out.ID,
		Details:    details,
	})
	return toDTO(out), nil
}

// Delete removes a request in any status.
func (u *Usecase) Delete(ctx context.Context, id uint64) error {
	req, err := u.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domainRequest.ErrNotFound
		}
		return err
	}
	if err := u.repo.Delete(ctx, req.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domainRequest.ErrNotFound
		}
		return err
	}
	u.invalidate(ctx)
	u.audit.Record(ctx, audit.Entry{
		Action:     audit.ActionDelete,
		EntityType: audit.EntityRequest,
		EntityID:   req.ID,
		Details:    fmt.Sprintf("%s request %q deleted while %s", req.Kind, req.Title, req.Status),
	})
	return nil
}

func (u *Usecase) PendingCount(ctx context.Context) (int64, error) {
	var gen string
	if u.cache != nil {
		n, g, ok := u.cache.Load(ctx)
		if ok {
			return n, nil
		}
		gen = g
	}
	n, err := u.repo.CountByStatus(ctx, domainRequest.StatusPending)
	if err != nil {
		return 0, err
	}
	if u.cache != nil {
		u.cache.Store(ctx, n, gen)
	}
	return n, nil
}

func (u *Usecase) Get(ctx context.Context, id uint64) (*RequestDTO, error) {
	r, err := u.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainRequest.ErrNotFound
		}
		return nil, err
	}
	return toDTO(r), nil
}

func (u *Usecase) List(ctx context.Context, f domainRequest.Filter) ([]RequestDTO, error) {
	if f.Status != "" && !f.Status.Valid() {
		return nil, domainRequest.ErrInvalidStatus
	}
	if f.Kind != "" && !f.Kind.Valid() {
		return nil, domainRequest.ErrInvalidKind
	}
	items, err := u.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]RequestDTO, 0, len(items))
	for i := range items {
		out = append(out, *toDTO(&items[i]))
	}
	return out, nil
}

// lockPending loads the request under lock, refuses decided ones and
// resolves the approver, failing closed when the approver is unknown.
func (u *Usecase) lockPending(ctx context.Context, r uow.Repos, id, approverID uint64) (*domainRequest.Request, *user.User, error) {
	req, err := r.Requests.GetByIDForUpdate(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, domainRequest.ErrNotFound
		}
		return nil, nil, err
	}
	if req.Decided() {
		return nil, nil, domainRequest.ErrAlreadyDecided
	}
	approver, err := r.Users.GetByID(ctx, approverID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, domainRequest.ErrApproverNotFound
		}
		return nil, nil, err
	}
	return req, approver, nil
}

func (u *Usecase) decide(req *domainRequest.Request, approver *user.User, status domainRequest.Status) {
	now := u.now()
	aid := approver.ID
	req.Status = status
	req.ApproverID = &aid
	req.ApproverName = approver.Name
	req.DecisionAt = &now
}

func (u *Usecase) applyProductEffect(ctx context.Context, r uow.Repos, req *domainRequest.Request, to domainProduct.Status) error {
	log := u.log.WithFields(logrus.Fields{"request_id": req.ID, "kind": req.Kind})
	pid, ok := ProductRef(req.Payload)
	if !ok {
		log.Warn("approved request has no usable product reference in payload")
		return nil
	}
	p, err := r.Products.GetByIDForUpdate(ctx, pid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.WithField("product_id", pid).Warn("approved request references unknown product")
			return nil
		}
		return err
	}
	return u.registry.ApplyStatus(ctx, r.Products, p, to)
}

func (u *Usecase) invalidate(ctx context.Context) {
	if u.cache != nil {
		u.cache.Invalidate(ctx)
	}
}
