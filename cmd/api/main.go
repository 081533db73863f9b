package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/multierr"

	"github.com/angelmondragon/coilbill-backend/api/routes"
	"github.com/angelmondragon/coilbill-backend/internal/admins"
	"github.com/angelmondragon/coilbill-backend/internal/auth"
	"github.com/angelmondragon/coilbill-backend/internal/brands"
	"github.com/angelmondragon/coilbill-backend/internal/media"
	productsvc "github.com/angelmondragon/coilbill-backend/internal/products"
	"github.com/angelmondragon/coilbill-backend/internal/quotations"
	"github.com/angelmondragon/coilbill-backend/pkg/config"
	"github.com/angelmondragon/coilbill-backend/pkg/db"
	"github.com/angelmondragon/coilbill-backend/pkg/logger"
	"github.com/angelmondragon/coilbill-backend/pkg/metrics"
	"github.com/angelmondragon/coilbill-backend/pkg/migrate"
	"github.com/angelmondragon/coilbill-backend/pkg/redis"
)

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
		Console:     cfg.App.ConsoleLogs(),
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// The handle connects lazily; warming it here only saves the first request
	// a dial. A store that is down at boot is retried per request.
	store := db.NewHandle(cfg.DB, logg, nil)
	if client, err := store.Client(ctx); err != nil {
		logg.Error(ctx, "database warm-up failed, will retry on demand", err)
	} else if err := migrate.MaybeRunDev(ctx, cfg, logg, client); err != nil {
		logg.Error(ctx, "failed to run dev migrations", err)
		os.Exit(1)
	}

	var redisClient *redis.Client
	if cfg.Redis.Enabled() {
		redisClient, err = redis.New(ctx, cfg.Redis, logg)
		if err != nil {
			logg.Error(ctx, "failed to bootstrap redis", err)
			os.Exit(1)
		}
	} else {
		logg.Warn(ctx, "redis not configured, login rate limiting and idempotency disabled")
	}

	logos, err := media.NewLogoStore(cfg.Media, logg)
	if err != nil {
		logg.Error(ctx, "failed to prepare upload directory", err)
		os.Exit(1)
	}

	adminRepo := admins.NewRepository(store)
	brandRepo := brands.NewRepository(store)

	authService, err := auth.NewService(auth.ServiceParams{
		AdminRepo:      adminRepo,
		JWTConfig:      cfg.JWT,
		PasswordConfig: cfg.Password,
		Logger:         logg,
	})
	requireService(ctx, logg, "auth", err)

	brandService, err := brands.NewService(brandRepo, logos)
	requireService(ctx, logg, "brands", err)

	productService, err := productsvc.NewService(productsvc.NewRepository(store), brandRepo)
	requireService(ctx, logg, "products", err)

	quotationService, err := quotations.NewService(quotations.NewRepository(store), quotations.DefaultsFromConfig(cfg.Quotation))
	requireService(ctx, logg, "quotations", err)

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	httpMetrics := metrics.NewHTTPMetrics(registry)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx = logg.WithFields(ctx, map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			store,
			redisClient,
			httpMetrics,
			authService,
			brandService,
			productService,
			quotationService,
			logos.Root(),
		),
		ReadTimeout:  cfg.App.ReadTimeout,
		WriteTimeout: cfg.App.WriteTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		logg.Info(ctx, "starting api server")
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		logg.Info(ctx, "shutting down api server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
	defer cancel()

	shutdownErr := server.Shutdown(shutdownCtx)
	shutdownErr = multierr.Append(shutdownErr, store.Close())
	if redisClient != nil {
		shutdownErr = multierr.Append(shutdownErr, redisClient.Close())
	}
	if shutdownErr != nil {
		logg.Error(shutdownCtx, "unclean shutdown", shutdownErr)
		os.Exit(1)
	}
	logg.Info(shutdownCtx, "api server stopped")
}

func requireService(ctx context.Context, logg *logger.Logger, name string, err error) {
	if err == nil {
		return
	}
	logg.Error(logg.WithField(ctx, "service", name), "failed to create service", err)
	os.Exit(1)
}
