package request_test

import (
	"context"
	"strconv"
	"testing"
	"time"

	mysqlrepo "asset-custody/internal/adapter/repository/mysql"
	"asset-custody/internal/domain/audit"
	domainProduct "asset-custody/internal/domain/product"
	domainRequest "asset-custody/internal/domain/request"
	"asset-custody/internal/domain/user"
	"asset-custody/internal/infrastructure/cache"
	"asset-custody/internal/testutil/testdb"
	productuc "asset-custody/internal/usecase/product"
	"asset-custody/internal/usecase/request"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type workflowEnv struct {
	workflow *request.Usecase
	products *mysqlrepo.ProductRepository
	audits   *mysqlrepo.AuditRepository
	redis    *miniredis.Miniredis
	nurse    *user.User
	manager  *user.User
}

func newWorkflowEnv(t *testing.T) *workflowEnv {
	t.Helper()
	gdb := testdb.Open(t)
	ctx := context.Background()

	users := mysqlrepo.NewUserRepository(gdb)
	nurse := &user.User{Name: "Ayse", Role: user.RoleUser}
	manager := &user.User{Name: "Mehmet", Role: user.RoleManager}
	require.NoError(t, users.Create(ctx, nurse))
	require.NoError(t, users.Create(ctx, manager))

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	audits := mysqlrepo.NewAuditRepository(gdb)
	rec := audit.NewRecorder(audits, nil)
	tx := mysqlrepo.NewGormUoW(gdb)
	products := mysqlrepo.NewProductRepository(gdb)
	registry := productuc.NewUsecase(products, tx, rec, nil)

	return &workflowEnv{
		workflow: request.NewUsecase(mysqlrepo.NewRequestRepository(gdb), users, tx, registry, rec,
			request.WithPendingCache(cache.NewPendingCountCache(rdb, time.Minute, nil))),
		products: products,
		audits:   audits,
		redis:    mr,
		nurse:    nurse,
		manager:  manager,
	}
}

func TestWorkflow_MaintenanceApprovalMovesProduct(t *testing.T) {
	env := newWorkflowEnv(t)
	ctx := audit.WithActor(context.Background(), audit.Actor{UserID: 2, UserName: "Mehmet", IPAddress: "10.0.0.5", RequestID: "req-1"})

	p := &domainProduct.Product{Name: "Ultrasound"}
	require.NoError(t, env.products.Create(ctx, p))

	req, err := env.workflow.Create(ctx, request.CreateInput{
		Kind:        domainRequest.KindMaintenance,
		RequesterID: env.nurse.ID,
		Title:       "Probe flickers",
		Payload:     `{"productId": ` + itoa(p.ID) + `}`,
	})
	require.NoError(t, err)

	n, err := env.workflow.PendingCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	approved, err := env.workflow.Approve(ctx, req.ID, request.DecisionInput{ApproverID: env.manager.ID})
	require.NoError(t, err)
	assert.Equal(t, "approved", approved.Status)
	assert.Equal(t, "Mehmet", approved.ApproverName)

	got, err := env.products.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, domainProduct.StatusInMaintenance, got.Status)

	n, err = env.workflow.PendingCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), n, "approval must invalidate the cached count")

	_, err = env.workflow.Approve(ctx, req.ID, request.DecisionInput{ApproverID: env.manager.ID})
	assert.ErrorIs(t, err, domainRequest.ErrAlreadyDecided)
	_, err = env.workflow.Reject(ctx, req.ID, request.DecisionInput{ApproverID: env.manager.ID})
	assert.ErrorIs(t, err, domainRequest.ErrAlreadyDecided)

	recs, err := env.audits.ListByEntity(ctx, audit.EntityRequest, req.ID)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, audit.ActionCreate, recs[0].Action)
	assert.Equal(t, audit.ActionApprove, recs[1].Action)
	assert.Equal(t, "10.0.0.5", recs[1].IPAddress)
	assert.Equal(t, "req-1", recs[1].RequestID)
	require.NotNil(t, recs[1].UserID)
	assert.Equal(t, uint64(2), *recs[1].UserID)
}

func TestWorkflow_RepairApprovalWithUnknownProductStillApproves(t *testing.T) {
	env := newWorkflowEnv(t)
	ctx := context.Background()

	req, err := env.workflow.Create(ctx, request.CreateInput{
		Kind:        domainRequest.KindRepair,
		RequesterID: env.nurse.ID,
		Title:       "Broken caster",
		Payload:     `{"urunId": "12345"}`,
	})
	require.NoError(t, err)

	approved, err := env.workflow.Approve(ctx, req.ID, request.DecisionInput{ApproverID: env.manager.ID})
	require.NoError(t, err)
	assert.Equal(t, "approved", approved.Status)
}

func TestWorkflow_RejectKeepsProduct(t *testing.T) {
	env := newWorkflowEnv(t)
	ctx := context.Background()

	p := &domainProduct.Product{Name: "ECG"}
	require.NoError(t, env.products.Create(ctx, p))

	req, err := env.workflow.Create(ctx, request.CreateInput{
		Kind:        domainRequest.KindRepair,
		RequesterID: env.nurse.ID,
		Title:       "Lead cable",
		Payload:     `{"productId": ` + itoa(p.ID) + `}`,
	})
	require.NoError(t, err)

	rejected, err := env.workflow.Reject(ctx, req.ID, request.DecisionInput{ApproverID: env.manager.ID, Reason: "spare on shelf"})
	require.NoError(t, err)
	assert.Equal(t, "rejected", rejected.Status)

	got, err := env.products.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, domainProduct.StatusAvailable, got.Status)

	require.NoError(t, env.workflow.Delete(ctx, req.ID))
	_, err = env.workflow.Get(ctx, req.ID)
	assert.ErrorIs(t, err, domainRequest.ErrNotFound)
}

func TestWorkflow_PendingCountSurvivesRedisOutage(t *testing.T) {
	env := newWorkflowEnv(t)
	ctx := context.Background()

	_, err := env.workflow.Create(ctx, request.CreateInput{Kind: domainRequest.KindLocationAdd, RequesterID: env.nurse.ID, Title: "Ward 4B"})
	require.NoError(t, err)

	env.redis.Close()
	n, err := env.workflow.PendingCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func itoa(v uint64) string { return strconv.FormatUint(v, 10) }
