package app

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/GlebRadaev/paybridge/internal/cache"
	"github.com/GlebRadaev/paybridge/internal/config"
	"github.com/GlebRadaev/paybridge/internal/handlers"
	"github.com/GlebRadaev/paybridge/internal/pg"
	"github.com/GlebRadaev/paybridge/internal/relay"
	"github.com/GlebRadaev/paybridge/internal/repo"
	"github.com/GlebRadaev/paybridge/internal/service"
	"github.com/GlebRadaev/paybridge/pkg/auth"
	"github.com/GlebRadaev/paybridge/pkg/clients"
	"github.com/GlebRadaev/paybridge/pkg/logger"
	"github.com/GlebRadaev/paybridge/pkg/ratelimit"
)

type ApplicationI interface {
	Start(ctx context.Context) error
	Wait(ctx context.Context, cancel context.CancelFunc) error
}

type Application struct {
	cfg       *config.Config
	api       *handlers.Handlers
	srv       *service.Services
	repo      *repo.Repositories
	relay     *relay.Service
	publisher relay.Publisher
	pool      *pgxpool.Pool
	redis     *redis.Client

	errCh chan error
	wg    sync.WaitGroup
	ready atomic.Bool
}

func New() *Application {
	return &Application{
		errCh: make(chan error),
	}
}

func (a *Application) Start(ctx context.Context) error {
	cfg := config.New()

	err := logger.InitLogger(cfg)
	if err != nil {
		return fmt.Errorf("can't init logger: %w", err)
	}

	pool, err := getPgxpool(ctx, cfg)
	if err != nil {
		zap.L().Error("build pgx pool failed: ", zap.Error(err))
		return fmt.Errorf("can't build pgx pool: %w", err)
	}
	if err := pg.RunMigrations(pool); err != nil {
		zap.L().Error("migrations failed: ", zap.Error(err))
		return fmt.Errorf("can't run migrations: %w", err)
	}
	txManager := pg.NewTXManager(pool)

	publisher, err := relay.NewPublisher(cfg.Kafka)
	if err != nil {
		zap.L().Error("kafka producer failed: ", zap.Error(err))
		return fmt.Errorf("can't create outbox publisher: %w", err)
	}

	conn := pg.New(pool)
	a.cfg = cfg
	a.pool = pool
	a.redis = cache.InitRedis(ctx, cfg.Redis)
	a.repo = repo.New(conn, txManager)
	a.srv = service.New(cfg, a.repo, txManager, cache.New(a.redis, cfg.Redis.TTL), clients.NewHTTPClient())

	limiter := ratelimit.NewIPRateLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst)
	limiter.StartCleanup(ctx)
	a.api = handlers.New(a.srv, auth.NewJWTService(cfg.JWTSecret), limiter)
	a.api.SetReadiness(a.ready.Load)

	a.publisher = publisher
	a.relay = relay.New(cfg.Relay, a.repo.OutboxRepo, publisher)

	if err = a.startHTTPServer(ctx); err != nil {
		return fmt.Errorf("can't start http server: %w", err)
	}

	a.startRelay(ctx)

	a.ready.Store(true)
	zap.L().Info("all systems started successfully")
	return nil
}

func getPgxpool(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	cfgpool, err := pgxpool.ParseConfig(cfg.Database)
	if err != nil {
		return nil, err
	}
	dbpool, err := pgxpool.NewWithConfig(ctx, cfgpool)
	if err != nil {
		return nil, err
	}
	if err = dbpool.Ping(ctx); err != nil {
		dbpool.Close()
		return nil, err
	}
	return dbpool, nil
}

func (a *Application) startHTTPServer(ctx context.Context) error {
	router := chi.NewRouter()
	a.api.InitRoutes(router)
	server := http.Server{
		Addr:              a.cfg.Address,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		<-ctx.Done()
		a.ready.Store(false)

		sCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(sCtx); err != nil {
			zap.L().Error("http server shutdown failed", zap.Error(err))
		}
	}()

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		zap.L().Info("starting http server on port", zap.String("port", a.cfg.Address))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.errCh <- fmt.Errorf("http server exited with error: %w", err)
		}
	}()

	return nil
}

func (a *Application) startRelay(ctx context.Context) {
	a.relay.Start(ctx)

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		<-a.relay.Done()
		if err := a.publisher.Close(); err != nil {
			zap.L().Error("outbox publisher close failed", zap.Error(err))
		}
	}()
}

func (a *Application) Wait(ctx context.Context, cancel context.CancelFunc) error {
	var appErr error

	var wg sync.WaitGroup
	wg.Add(1)

	go func() {
		defer wg.Done()

		for err := range a.errCh {
			cancel()
			zap.L().Error(err.Error())
			appErr = err
		}
	}()

	<-ctx.Done()
	a.wg.Wait()
	close(a.errCh)
	wg.Wait()

	a.closeConnections()
	return appErr
}

func (a *Application) closeConnections() {
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			zap.L().Error("redis close failed", zap.Error(err))
		}
	}
	if a.pool != nil {
		a.pool.Close()
	}
}
