package mysql_test

import (
	"context"
	"errors"
	"testing"
	"time"

	mysqlrepo "asset-custody/internal/adapter/repository/mysql"
	"asset-custody/internal/domain/assignment"
	"asset-custody/internal/domain/audit"
	"asset-custody/internal/domain/product"
	"asset-custody/internal/domain/request"
	"asset-custody/internal/domain/uow"
	"asset-custody/internal/domain/user"
	"asset-custody/internal/testutil/testdb"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func u64(v uint64) *uint64 { return &v }

func seedProduct(t *testing.T, repo *mysqlrepo.ProductRepository, name string) *product.Product {
	t.Helper()
	p := &product.Product{Name: name}
	require.NoError(t, repo.Create(context.Background(), p))
	return p
}

func TestProductRepository(t *testing.T) {
	gdb := testdb.Open(t)
	repo := mysqlrepo.NewProductRepository(gdb)
	ctx := context.Background()

	p := seedProduct(t, repo, "Monitor")
	assert.Equal(t, product.StatusAvailable, p.Status, "empty status defaults to available")
	seedProduct(t, repo, "Pump")

	require.NoError(t, repo.UpdateStatus(ctx, p.ID, product.StatusInMaintenance))
	// same value again is not an error
	require.NoError(t, repo.UpdateStatus(ctx, p.ID, product.StatusInMaintenance))

	got, err := repo.GetByIDForUpdate(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, product.StatusInMaintenance, got.Status)

	list, err := repo.List(ctx, product.StatusAvailable)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Pump", list[0].Name)

	require.NoError(t, gdb.Create(&product.InvoiceLine{ProductID: p.ID, Quantity: 2}).Error)
	n, err := repo.CountInvoiceLines(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	_, err = repo.GetByID(ctx, 999)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, 999), gorm.ErrRecordNotFound)
}

func TestAssignmentRepository_SingleActivePerProduct(t *testing.T) {
	gdb := testdb.Open(t)
	products := mysqlrepo.NewProductRepository(gdb)
	repo := mysqlrepo.NewAssignmentRepository(gdb)
	ctx := context.Background()
	p := seedProduct(t, products, "Defibrillator")

	first := &assignment.Assignment{ProductID: p.ID, Holder: assignment.Holder{PersonID: u64(1)}, AssignedAt: time.Now().UTC(), Status: assignment.StatusActive}
	require.NoError(t, repo.Create(ctx, first))
	require.NotNil(t, first.ActiveProductID)

	second := &assignment.Assignment{ProductID: p.ID, Holder: assignment.Holder{LocationID: u64(2)}, AssignedAt: time.Now().UTC(), Status: assignment.StatusActive}
	assert.ErrorIs(t, repo.Create(ctx, second), assignment.ErrActiveExists)

	// closing the first frees the slot
	first.Status = assignment.StatusReturned
	require.NoError(t, repo.Save(ctx, first))
	assert.Nil(t, first.ActiveProductID)

	second.ID = 0
	require.NoError(t, repo.Create(ctx, second))

	active, err := repo.GetActiveByProductID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, second.ID, active.ID)

	// reopening the old one collides on save too
	first.Status = assignment.StatusActive
	assert.ErrorIs(t, repo.Save(ctx, first), assignment.ErrActiveExists)

	n, err := repo.CountByProductID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}

func TestAssignmentRepository_ListFilters(t *testing.T) {
	gdb := testdb.Open(t)
	products := mysqlrepo.NewProductRepository(gdb)
	repo := mysqlrepo.NewAssignmentRepository(gdb)
	ctx := context.Background()
	p1 := seedProduct(t, products, "A")
	p2 := seedProduct(t, products, "B")
	base := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Create(ctx, &assignment.Assignment{ProductID: p1.ID, Holder: assignment.Holder{PersonID: u64(7)}, AssignedAt: base, Status: assignment.StatusReturned}))
	require.NoError(t, repo.Create(ctx, &assignment.Assignment{ProductID: p1.ID, Holder: assignment.Holder{PersonID: u64(7)}, AssignedAt: base.Add(time.Hour), Status: assignment.StatusActive}))
	require.NoError(t, repo.Create(ctx, &assignment.Assignment{ProductID: p2.ID, Holder: assignment.Holder{LocationID: u64(3)}, AssignedAt: base, Status: assignment.StatusActive}))

	all, err := repo.List(ctx, assignment.Filter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, base.Add(time.Hour), all[0].AssignedAt.UTC(), "newest first")

	byPerson, err := repo.List(ctx, assignment.Filter{PersonID: 7, Status: assignment.StatusActive})
	require.NoError(t, err)
	require.Len(t, byPerson, 1)
	assert.Equal(t, p1.ID, byPerson[0].ProductID)

	byLocation, err := repo.List(ctx, assignment.Filter{LocationID: 3})
	require.NoError(t, err)
	assert.Len(t, byLocation, 1)

	assert.ErrorIs(t, repo.Delete(ctx, 12345), gorm.ErrRecordNotFound)
}

func TestRequestRepository(t *testing.T) {
	gdb := testdb.Open(t)
	repo := mysqlrepo.NewRequestRepository(gdb)
	ctx := context.Background()

	mk := func(kind request.Kind, requester uint64) *request.Request {
		r := &request.Request{Kind: kind, RequesterID: requester, Title: string(kind), Status: request.StatusPending}
		require.NoError(t, repo.Create(ctx, r))
		return r
	}
	a := mk(request.KindMaintenance, 1)
	mk(request.KindRepair, 1)
	mk(request.KindCariDelete, 2)

	n, err := repo.CountByStatus(ctx, request.StatusPending)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	locked, err := repo.GetByIDForUpdate(ctx, a.ID)
	require.NoError(t, err)
	now := time.Now().UTC()
	reason := "no budget"
	locked.Status = request.StatusRejected
	locked.ApproverID = u64(5)
	locked.DecisionAt = &now
	locked.RejectionReason = &reason
	require.NoError(t, repo.Save(ctx, locked))

	got, err := repo.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, request.StatusRejected, got.Status)
	require.NotNil(t, got.RejectionReason)
	assert.Equal(t, reason, *got.RejectionReason)

	pending, err := repo.List(ctx, request.Filter{Status: request.StatusPending, RequesterID: 1})
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, request.KindRepair, pending[0].Kind)

	cariDeletes, err := repo.List(ctx, request.Filter{Kind: request.KindCariDelete})
	require.NoError(t, err)
	assert.Len(t, cariDeletes, 1)

	require.NoError(t, repo.Delete(ctx, a.ID))
	assert.ErrorIs(t, repo.Delete(ctx, a.ID), gorm.ErrRecordNotFound)
}

func TestUserRepository_DefaultsRole(t *testing.T) {
	repo := mysqlrepo.NewUserRepository(testdb.Open(t))
	ctx := context.Background()

	u := &user.User{Name: "Nurse"}
	require.NoError(t, repo.Create(ctx, u))
	got, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, user.RoleUser, got.Role)

	_, err = repo.GetByID(ctx, 77)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestAuditRepository(t *testing.T) {
	repo := mysqlrepo.NewAuditRepository(testdb.Open(t))
	ctx := context.Background()

	require.NoError(t, repo.Log(ctx, audit.Entry{Action: audit.ActionCreate, EntityType: audit.EntityAssignment, EntityID: 4, UserID: 2, UserName: "Ali", RequestID: "r1"}))
	require.NoError(t, repo.Log(ctx, audit.Entry{Action: audit.ActionUpdate, EntityType: audit.EntityAssignment, EntityID: 4}))
	require.NoError(t, repo.Log(ctx, audit.Entry{Action: audit.ActionCreate, EntityType: audit.EntityRequest, EntityID: 4}))

	recs, err := repo.ListByEntity(ctx, audit.EntityAssignment, 4)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Len(t, recs[0].EventID, 36)
	assert.NotEqual(t, recs[0].EventID, recs[1].EventID)
	require.NotNil(t, recs[0].UserID)
	assert.Equal(t, uint64(2), *recs[0].UserID)
	assert.Nil(t, recs[1].UserID, "system entries carry no user")
}

func TestGormUoW(t *testing.T) {
	gdb := testdb.Open(t)
	products := mysqlrepo.NewProductRepository(gdb)
	tx := mysqlrepo.NewGormUoW(gdb)
	ctx := context.Background()
	p := seedProduct(t, products, "Scanner")

	t.Run("commit", func(t *testing.T) {
		err := tx.WithinProductTx(ctx, p.ID, func(r uow.Repos, locked *product.Product) error {
			assert.Equal(t, p.ID, locked.ID)
			return r.Products.UpdateStatus(ctx, locked.ID, product.StatusAssigned)
		})
		require.NoError(t, err)
		got, err := products.GetByID(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, product.StatusAssigned, got.Status)
	})

	t.Run("rollback", func(t *testing.T) {
		boom := errors.New("boom")
		err := tx.WithinTx(ctx, func(r uow.Repos) error {
			require.NoError(t, r.Products.UpdateStatus(ctx, p.ID, product.StatusScrapped))
			return boom
		})
		assert.ErrorIs(t, err, boom)
		got, err := products.GetByID(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, product.StatusAssigned, got.Status)
	})

	t.Run("missing product", func(t *testing.T) {
		called := false
		err := tx.WithinProductTx(ctx, 999, func(uow.Repos, *product.Product) error {
			called = true
			return nil
		})
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
		assert.False(t, called)
	})
}
