package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"mpass/internal/config"
	"mpass/internal/handler"
	"mpass/internal/logging"
	"mpass/internal/lookup"
	"mpass/internal/port"
	"mpass/internal/repository/postgres"
	"mpass/internal/router"
	"mpass/internal/service"
	"mpass/internal/storage"
	"mpass/internal/storage/noop"
	s3storage "mpass/internal/storage/s3"
	"mpass/internal/vault"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize adapters
	credentialRepo := postgres.NewCredentialRepo(db)
	credentialLookup, err := lookup.NewCachedLookup(credentialRepo, cfg.Lookup.CacheSize, cfg.Lookup.CacheTTL)
	if err != nil {
		return fmt.Errorf("failed to initialize lookup cache: %w", err)
	}
	authorizer := vault.NewStoreAuthorizer(credentialRepo, logger)

	archive, err := newArchive(ctx, &cfg.Archive, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize snapshot archive: %w", err)
	}

	// Initialize services
	engine, err := service.NewEngine(cfg.Autofill, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize autofill engine: %w", err)
	}
	autofillSvc := service.NewAutofillService(
		engine,
		credentialLookup,
		authorizer,
		archive,
		service.NewClientStateCodec(cfg.Token),
		service.AutofillOptions{
			SelfPackage:   cfg.Autofill.SelfPackage,
			LookupTimeout: cfg.Lookup.Timeout,
		},
		logger,
	)

	// Initialize handlers
	autofillH := handler.NewAutofillHandler(autofillSvc)
	healthH := handler.NewHealthHandler(db)

	// Setup router
	r := router.Setup(logger, service.NewAccessTokenService(cfg.Token), autofillH, healthH)

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("server starting", zap.String("addr", cfg.Server.Port), zap.String("env", cfg.Server.Environment))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("server shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func newArchive(ctx context.Context, cfg *config.ArchiveConfig, logger *zap.Logger) (port.SnapshotArchive, error) {
	switch cfg.Provider {
	case "", "noop":
		return noop.NewNoopArchive(logger), nil
	case "s3":
		client, err := s3storage.NewS3Client(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return storage.NewSnapshotArchive(client, cfg.Bucket, cfg.Prefix), nil
	default:
		return nil, fmt.Errorf("unknown archive provider %q", cfg.Provider)
	}
}
