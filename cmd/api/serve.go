package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"hotelrp/cmd/internal/http/handler"
	"hotelrp/cmd/internal/http/middleware"
	"hotelrp/cmd/internal/service"
	"hotelrp/cmd/internal/service/jobs"
	"hotelrp/cmd/internal/utils"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		Long: `Start the HTTP API server.

Environment variables:
  PORT                   Server port (default: 8000)
  STORE_DRIVER           Company store: sqlite, json (default: sqlite)
  DB_PATH                SQLite file (default: hotel_rp.db)
  DATA_DIR               empresas.json and reference overrides (default: data)
  REFERENCE_BUCKET       S3 bucket with reference files
  REFERENCE_PREFIX       Key prefix inside REFERENCE_BUCKET (default: reference/)
  EXPORT_BUCKET          S3 bucket for published exports
  REGISTRY_PROVIDER      receitaws, minhareceita (default: receitaws)
  REGISTRY_PLAN          gratuito, comercial (default: gratuito)
  REGISTRY_API_KEY       Key for the commercial plan
  AUTH_JWT_SECRET        HMAC secret for bearer tokens
  AUTH_JWKS_URL          JWKS endpoint for bearer tokens
  LOG_LEVEL              DEBUG, INFO, WARN, ERROR (default: INFO)`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
}

func runServe(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.close()

	auth, err := utils.NewAuthenticator(a.cfg.Auth.JWTSecret, a.cfg.Auth.JWKSURL)
	if err != nil {
		return err
	}
	if auth == nil {
		log.Warn("AUTH_JWT_SECRET and AUTH_JWKS_URL are unset, mutating routes are open")
	}

	// Getting services
	registryService, err := service.NewRegistryService(a.cfg.RegistryConfig(), a.classifier, a.registry, a.companies, a.validate)
	if err != nil {
		return err
	}
	companyService := service.NewCompanyService(a.companies, a.classifier, a.validate)
	referenceService := service.NewReferenceService(a.reference, a.validate)
	analyticsService := service.NewAnalyticsService(a.companies, a.reference, a.engine)
	exportService := service.NewExportService(a.companies, a.reference, a.engine, a.exports)

	e := echo.New()
	e.HideBanner = true
	e.Logger.SetLevel(a.cfg.Level())
	e.Use(echomw.Recover())
	e.Use(echomw.Logger())
	e.Use(echomw.CORS())
	e.Use(echomw.BodyLimit("2M"))

	handler.Register(e, &handler.Routes{
		Base:      handler.NewBaseRoute(analyticsService),
		Companies: handler.NewCompanyRoute(companyService),
		Events:    handler.NewEventRoute(referenceService),
		Market:    handler.NewMarketRoute(referenceService),
		Analytics: handler.NewAnalyticsRoute(analyticsService),
		Registry:  handler.NewRegistryRoute(registryService),
		Exports:   handler.NewExportRoute(exportService),
	}, middleware.NewAuthMiddleware(&middleware.AuthMiddlewareConfig{Validator: auth}))

	cleaner := jobs.NewRegistryCacheCleaner(a.registry, a.cfg.CacheTTL, a.cfg.CacheSweepInterval)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		cleaner.Start(gctx)
		return nil
	})
	g.Go(func() error {
		log.Infof("listening on %s (store=%s)", a.cfg.Addr(), a.cfg.StoreDriver)
		if err := e.Start(a.cfg.Addr()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
