package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	httpadp "asset-custody/internal/adapter/http"
	custodymw "asset-custody/internal/adapter/middleware"
	mysqlrepo "asset-custody/internal/adapter/repository/mysql"
	"asset-custody/internal/domain/audit"
	"asset-custody/internal/infrastructure/cache"
	"asset-custody/internal/infrastructure/db"
	assignmentuc "asset-custody/internal/usecase/assignment"
	productuc "asset-custody/internal/usecase/product"
	requestuc "asset-custody/internal/usecase/request"
	"asset-custody/pkg/id"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
}

func runServe(parent context.Context) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := logrus.StandardLogger()

	gdb, err := openDB(cfg)
	if err != nil {
		return err
	}
	if err := db.Migrate(gdb); err != nil {
		return err
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		return err
	}
	defer rdb.Close()

	// repositories
	products := mysqlrepo.NewProductRepository(gdb)
	assignments := mysqlrepo.NewAssignmentRepository(gdb)
	requests := mysqlrepo.NewRequestRepository(gdb)
	users := mysqlrepo.NewUserRepository(gdb)
	tx := mysqlrepo.NewGormUoW(gdb)
	audits := mysqlrepo.NewAuditRepository(gdb)
	rec := audit.NewRecorder(audits, log)

	// usecases
	registry := productuc.NewUsecase(products, tx, rec, log)
	ledger := assignmentuc.NewUsecase(assignments, tx, registry, rec,
		assignmentuc.WithStatusSyncOnUpdate(cfg.UpdateSyncsStatus))
	pending := cache.NewPendingCountCache(rdb, time.Duration(cfg.PendingCacheTTLSecs)*time.Second, log)
	workflow := requestuc.NewUsecase(requests, users, tx, registry, rec,
		requestuc.WithPendingCache(pending), requestuc.WithLogger(log))

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	if e.IPExtractor, err = custodymw.ClientIP(cfg.TrustedProxies); err != nil {
		return err
	}
	e.Use(middleware.Logger(), middleware.Recover())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{Generator: id.NewID32}))

	httpadp.RegisterRoutes(e, httpadp.Handlers{
		Health:      httpadp.NewHandler(sqlDB),
		Products:    httpadp.NewProductHandler(registry),
		Assignments: httpadp.NewAssignmentHandler(ledger),
		Requests:    httpadp.NewRequestHandler(workflow),
		Audit:       httpadp.NewAuditHandler(audits),
	},
		custodymw.Require(custodymw.NewRoleGate(users)),
		custodymw.Actor(users),
		custodymw.Idempotency(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second),
	)

	addr := ":" + cfg.AppPort
	errCh := make(chan error, 1)
	go func() {
		log.WithField("addr", addr).Info("listening")
		errCh <- e.Start(addr)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
