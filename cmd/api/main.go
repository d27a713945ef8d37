package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"storefront/internal/catalog/remote"
	"storefront/internal/config"
	"storefront/internal/db"
	"storefront/internal/domain"
	"storefront/internal/httpserver"
	"storefront/internal/logging"
	"storefront/internal/metrics"
	addressrepo "storefront/internal/repository/address"
	couponrepo "storefront/internal/repository/coupon"
	orderrepo "storefront/internal/repository/order"
	productrepo "storefront/internal/repository/product"
	"storefront/internal/seed"
	"storefront/internal/service/address"
	catalogsvc "storefront/internal/service/catalog"
	"storefront/internal/service/checkout"
	ordersvc "storefront/internal/service/order"
	"storefront/internal/service/session"
)

func main() {
	_ = godotenv.Load()
	cfg := config.FromEnv()
	logger, err := logging.New(cfg.LogLevel, cfg.LogJSON)
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()
	logger = logger.Named("api")

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	var dbpool *pgxpool.Pool
	if cfg.NeedsDB() {
		dbpool, err = db.Connect(ctx, cfg.DBConnString, logger)
		if err != nil {
			logger.Fatal("connect to db", zap.Error(err))
		}
		defer dbpool.Close()
	}

	var source catalogsvc.Source
	switch cfg.CatalogSource {
	case config.CatalogPostgres:
		source = catalogsvc.RepositorySource(productrepo.NewPostgres(dbpool, logger))
	case config.CatalogRemote:
		client := remote.New(cfg.CatalogAPIBase, cfg.CatalogTimeout, logger)
		source = catalogsvc.RemoteSource(client, remote.Query{
			Category:    cfg.CatalogCategory,
			Subcategory: cfg.CatalogSubcategory,
		})
	default:
		logger.Fatal("unknown catalog source", zap.String("source", cfg.CatalogSource))
	}
	catalog := catalogsvc.New(source, cfg.CatalogTimeout, logger)

	var store ordersvc.Store
	switch cfg.OrderStore {
	case config.OrderStorePostgres:
		store = orderrepo.NewPostgres(dbpool, logger)
	case config.OrderStoreRedis:
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		defer client.Close()
		if err := client.Ping(ctx).Err(); err != nil {
			logger.Fatal("connect to redis", zap.String("addr", cfg.RedisAddr), zap.Error(err))
		}
		store = orderrepo.NewRedis(client, cfg.RedisPrefix, logger)
	case config.OrderStoreFile:
		store = orderrepo.NewFile(cfg.OrderFile, logger)
	default:
		logger.Fatal("unknown order store", zap.String("store", cfg.OrderStore))
	}
	orders := ordersvc.NewRegistry(store, logger)

	coupons := loadCoupons(ctx, dbpool, logger)
	m := metrics.New()
	var addressStore address.Store = addressrepo.NewMemory()
	if dbpool != nil {
		addressStore = addressrepo.NewPostgres(dbpool, logger)
	}
	addresses := address.New(addressStore, logger)
	checkoutSvc := checkout.New(cfg.PricingRules(coupons), orders, m, logger).WithAddresses(addresses)

	sessions := session.NewRegistry(cfg.SessionTTL, session.Options{
		ToastTTL:    cfg.ToastDuration,
		SearchDelay: cfg.SearchDelay,
	}, logger)
	defer sessions.Close()
	go sessions.Run(ctx, cfg.SweepInterval)

	go func() {
		if err := catalog.Refresh(ctx); err != nil {
			logger.Warn("initial catalog load failed", zap.Error(err))
		}
	}()

	srv, err := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		Catalog:   catalog,
		Sessions:  sessions,
		Checkout:  checkoutSvc,
		Orders:    orders,
		Addresses: addresses,
		Metrics:   m,
	}, httpserver.Options{
		JWTSecret:      cfg.JWTSecret,
		CORSOrigins:    cfg.CORSOrigins,
		RateLimitRPS:   cfg.RateLimitRPS,
		RateLimitBurst: cfg.RateLimitBurst,
	})
	if err != nil {
		logger.Fatal("init server", zap.Error(err))
	}

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Info("received signal, shutting down", zap.String("signal", sig.String()))
	case err := <-serverErr:
		logger.Error("server error", zap.Error(err))
	}
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	} else {
		logger.Info("server stopped")
	}
}

// loadCoupons reads the coupon table, falling back to the built-in codes without a
// database.
func loadCoupons(ctx context.Context, pool *pgxpool.Pool, logger *zap.Logger) []domain.Coupon {
	if pool == nil {
		return seed.Coupons()
	}
	coupons, err := couponrepo.NewPostgres(pool, logger).List(ctx)
	if err != nil {
		logger.Warn("load coupons failed, using built-in codes", zap.Error(err))
		return seed.Coupons()
	}
	logger.Info("coupons loaded", zap.Int("count", len(coupons)))
	return coupons
}
