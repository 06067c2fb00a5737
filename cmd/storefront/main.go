package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/aureliajewels/storefront-api/api/routes"
	adminsvc "github.com/aureliajewels/storefront-api/internal/admin"
	"github.com/aureliajewels/storefront-api/internal/identity"
	noticesvc "github.com/aureliajewels/storefront-api/internal/notices"
	ordersvc "github.com/aureliajewels/storefront-api/internal/orders"
	profilesvc "github.com/aureliajewels/storefront-api/internal/profile"
	"github.com/aureliajewels/storefront-api/pkg/backend"
	"github.com/aureliajewels/storefront-api/pkg/config"
	"github.com/aureliajewels/storefront-api/pkg/logger"
	"github.com/aureliajewels/storefront-api/pkg/media"
	"github.com/aureliajewels/storefront-api/pkg/metrics"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "storefront"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "storefront",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	backendClient, err := backend.NewClient(cfg.Backend, backend.NewSession(), logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create backend client", err)
		os.Exit(1)
	}

	if cfg.Identity.Domain != "" && cfg.Identity.ClientID != "" {
		fetcher := identity.ClientCredentials(cfg.Identity, nil)
		provider := identity.NewCachingProvider(cfg.Identity, fetcher, logg)
		provider.SignIn(identity.User{Name: "storefront-service"}, "")
		backendClient.SetTokenSource(provider)
	} else {
		logg.Warn(context.Background(), "no identity credentials configured, anonymous backend requests")
	}

	ordersService, err := ordersvc.NewService(backendClient, nil, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create orders service", err)
		os.Exit(1)
	}

	noticesService, err := noticesvc.NewService(backendClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create notices service", err)
		os.Exit(1)
	}

	profileService, err := profilesvc.NewService(backendClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create profile service", err)
		os.Exit(1)
	}

	adminService, err := adminsvc.NewService(backendClient, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create admin service", err)
		os.Exit(1)
	}

	var mediaClient *media.Client
	if cfg.Cloudinary.CloudName != "" {
		mediaClient, err = media.NewClient(cfg.Cloudinary, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to create media client", err)
			os.Exit(1)
		}
	} else {
		logg.Warn(context.Background(), "media upload disabled: no cloudinary configuration")
	}

	httpMetrics := metrics.NewHTTPMetrics(prometheus.DefaultRegisterer)
	backendClient.SetMetrics(httpMetrics)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":     cfg.App.Env,
		"addr":    addr,
		"backend": cfg.Backend.BaseURL,
	})
	logg.Info(ctx, "starting storefront server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			backendClient,
			ordersService,
			noticesService,
			profileService,
			adminService,
			mediaClient,
			httpMetrics,
		),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "storefront server stopped unexpectedly", err)
		os.Exit(1)
	}
}
