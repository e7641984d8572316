package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/wellport/wellport-backend/api/routes"
	"github.com/wellport/wellport-backend/internal/addresses"
	"github.com/wellport/wellport-backend/internal/auth"
	"github.com/wellport/wellport-backend/internal/dependants"
	"github.com/wellport/wellport-backend/internal/gym"
	"github.com/wellport/wellport-backend/internal/pharmacy"
	pharmacart "github.com/wellport/wellport-backend/internal/pharmacy/cart"
	"github.com/wellport/wellport-backend/internal/pharmacy/catalog"
	"github.com/wellport/wellport-backend/internal/pharmacy/coupons"
	"github.com/wellport/wellport-backend/internal/pharmacy/inventory"
	pharmaorders "github.com/wellport/wellport-backend/internal/pharmacy/orders"
	"github.com/wellport/wellport-backend/internal/pharmacy/pricing"
	"github.com/wellport/wellport-backend/internal/pharmacy/vendors"
	"github.com/wellport/wellport-backend/internal/profile"
	"github.com/wellport/wellport-backend/internal/users"
	"github.com/wellport/wellport-backend/pkg/auth/session"
	"github.com/wellport/wellport-backend/pkg/config"
	"github.com/wellport/wellport-backend/pkg/db"
	"github.com/wellport/wellport-backend/pkg/logger"
	"github.com/wellport/wellport-backend/pkg/metrics"
	"github.com/wellport/wellport-backend/pkg/migrate"
	"github.com/wellport/wellport-backend/pkg/redis"
)

const shutdownGrace = 15 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	pharmacyMetrics := metrics.NewPharmacyMetrics(registry)

	authService, err := auth.NewService(auth.ServiceParams{
		UserRepo:       users.NewRepository(dbClient.DB()),
		SessionManager: sessionManager,
		JWTConfig:      cfg.JWT,
		PasswordConfig: cfg.Password,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	profileService, err := profile.NewService(users.NewRepository(dbClient.DB()), redisClient, redisClient, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create profile service", err)
		os.Exit(1)
	}

	addressService, err := addresses.NewService(addresses.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create address service", err)
		os.Exit(1)
	}

	dependantService, err := dependants.NewService(dependants.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create dependant service", err)
		os.Exit(1)
	}

	gymService, err := gym.NewService(gym.NewRepository(dbClient.DB()), logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create gym service", err)
		os.Exit(1)
	}

	pharmacyService, err := buildPharmacyService(cfg, logg, dbClient, redisClient, pharmacyMetrics)
	if err != nil {
		logg.Error(context.Background(), "failed to create pharmacy service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Config:     cfg,
			Logger:     logg,
			DB:         dbClient,
			Redis:      redisClient,
			Sessions:   sessionManager,
			Registry:   registry,
			Auth:       authService,
			Profile:    profileService,
			Addresses:  addressService,
			Dependants: dependantService,
			Gym:        gymService,
			Pharmacy:   pharmacyService,
		}),
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case sig := <-stop:
		logg.Info(logg.WithField(ctx, "signal", sig.String()), "shutting down api server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "graceful shutdown failed", err)
		}
	}
}

func buildPharmacyService(
	cfg *config.Config,
	logg *logger.Logger,
	dbClient *db.Client,
	redisClient *redis.Client,
	m *metrics.PharmacyMetrics,
) (pharmacy.Service, error) {
	vendorA, err := vendors.NewVendorA(cfg.Pharmacy.VendorABaseURL, cfg.Pharmacy.GatewayTimeout)
	if err != nil {
		return nil, err
	}
	vendorB, err := vendors.NewVendorB(cfg.Pharmacy.VendorBBaseURL, cfg.Pharmacy.GatewayTimeout)
	if err != nil {
		return nil, err
	}

	cartStore, err := pharmacart.NewStore(redisClient, logg, cfg.Pharmacy.CartTTL)
	if err != nil {
		return nil, err
	}

	// Vendor A carries the order flow so it stays wired even when flagged off
	// for browsing.
	var catalogService catalog.Service
	var reconciler *inventory.Reconciler
	if cfg.Pharmacy.VendorBEnabled {
		catalogService, err = catalog.NewService(logg, cfg.Pharmacy.GatewayTimeout, vendorA, vendorB)
	} else {
		catalogService, err = catalog.NewService(logg, cfg.Pharmacy.GatewayTimeout, vendorA)
	}
	if err != nil {
		return nil, err
	}
	if cfg.Pharmacy.VendorBEnabled {
		reconciler, err = inventory.NewReconciler(cartStore, logg, m, cfg.Pharmacy.GatewayTimeout, vendorA, vendorB)
	} else {
		reconciler, err = inventory.NewReconciler(cartStore, logg, m, cfg.Pharmacy.GatewayTimeout, vendorA)
	}
	if err != nil {
		return nil, err
	}

	historyRepo, err := pharmaorders.NewHistoryRepo(dbClient)
	if err != nil {
		return nil, err
	}
	orderService, err := pharmaorders.NewService(vendorA, cartStore, historyRepo, logg, m)
	if err != nil {
		return nil, err
	}

	offlineRepo, err := coupons.NewOfflineRepo(dbClient)
	if err != nil {
		return nil, err
	}
	offlineService, err := coupons.NewOfflineService(offlineRepo, logg)
	if err != nil {
		return nil, err
	}

	return pharmacy.NewService(
		cartStore,
		reconciler,
		catalogService,
		orderService,
		offlineService,
		coupons.NewStaticRegistry(cfg.Pharmacy.Coupons),
		pricing.DefaultsFromConfig(cfg.Pharmacy),
		logg,
		m,
	)
}
