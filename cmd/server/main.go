package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	grpchandler "github.com/aquaticavenue/paynow-hub/internal/delivery/grpc"
	httpdelivery "github.com/aquaticavenue/paynow-hub/internal/delivery/http"
	"github.com/aquaticavenue/paynow-hub/internal/domain/paynow"
	"github.com/aquaticavenue/paynow-hub/internal/domain/repository"
	"github.com/aquaticavenue/paynow-hub/internal/infrastructure/config"
	"github.com/aquaticavenue/paynow-hub/internal/infrastructure/memory"
	"github.com/aquaticavenue/paynow-hub/internal/infrastructure/postgres"
	"github.com/aquaticavenue/paynow-hub/internal/infrastructure/qrgenerator"
	"github.com/aquaticavenue/paynow-hub/internal/usecase/generateqr"
	"github.com/aquaticavenue/paynow-hub/internal/usecase/issue"
)

const (
	readHeaderTimeout     = 5 * time.Second
	gracefulShutdownDelay = 5 * time.Second

	dbMaxConns        = 10
	dbMinConns        = 2
	dbMaxConnLifetime = 30 * time.Minute
	dbMaxConnIdleTime = 5 * time.Minute
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, logger); err != nil {
		logger.Error("server stopped", "error", err)
		cancel()
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *slog.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	encoder, err := paynow.NewEncoder(cfg.Merchant.PayNow())
	if err != nil {
		return err
	}

	uow, closeStore, err := openStore(ctx, cfg.DatabaseURL, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	references := paynow.NewReferenceGenerator()
	qrGen := qrgenerator.NewGenerator(cfg.QRCodeSize)

	generateQRUC := generateqr.NewUseCase(encoder, references, qrGen)
	issueUC := issue.NewUseCase(uow, encoder, references)

	handler := httpdelivery.NewHandler(generateQRUC, issueUC, logger)
	router := httpdelivery.NewRouter(handler)

	httpSrv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	grpcSrv := grpc.NewServer()
	grpchandler.Register(grpcSrv, grpchandler.NewHandler(encoder, references))
	healthSrv := health.NewServer()
	healthpb.RegisterHealthServer(grpcSrv, healthSrv)
	healthSrv.SetServingStatus(grpchandler.ServiceName, healthpb.HealthCheckResponse_SERVING)
	reflection.Register(grpcSrv)

	lis, err := net.Listen("tcp", cfg.GRPCAddr)
	if err != nil {
		return err
	}

	logger.Info("merchant configured",
		"uen", encoder.Merchant().ProxyID,
		"name", encoder.Merchant().Name,
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("HTTP server starting", "addr", cfg.HTTPAddr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		logger.Info("gRPC server starting", "addr", cfg.GRPCAddr)
		return grpcSrv.Serve(lis)
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down...")

		healthSrv.Shutdown()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), gracefulShutdownDelay)
		defer shutdownCancel()
		err := httpSrv.Shutdown(shutdownCtx)
		grpcSrv.GracefulStop()
		return err
	})

	return g.Wait()
}

// openStore connects to Postgres when url is set and falls back to an
// in-memory store otherwise.
func openStore(ctx context.Context, url string, logger *slog.Logger) (repository.UnitOfWork, func(), error) {
	if url == "" {
		logger.Warn("DATABASE_URL not set, payment requests are kept in memory")
		return memory.NewUnitOfWork(memory.NewStore()), func() {}, nil
	}

	pool, err := initDB(ctx, url)
	if err != nil {
		return nil, nil, err
	}
	if err := postgres.EnsureSchema(ctx, pool); err != nil {
		pool.Close()
		return nil, nil, err
	}
	return postgres.NewUnitOfWork(pool), pool.Close, nil
}

func initDB(ctx context.Context, url string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, err
	}

	cfg.MaxConns = dbMaxConns
	cfg.MinConns = dbMinConns
	cfg.MaxConnLifetime = dbMaxConnLifetime
	cfg.MaxConnIdleTime = dbMaxConnIdleTime

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return pool, nil
}
