package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"docroom/config"
	"docroom/config/database"
	"docroom/internal/auth"
	"docroom/internal/docmeta/store"
	"docroom/pkg/logger"
	"docroom/router"

	"github.com/joho/godotenv"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables from OS")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger.Init(cfg.LogLevel)
	defer logger.Sync()

	// The signing key and the store live for the whole process; everything
	// downstream receives them explicitly instead of reading globals.
	key, err := auth.ParseJWK([]byte(cfg.AuthPrivateKey))
	if err != nil {
		logger.Sugar.Fatalf("Invalid AUTH_PRIVATE_KEY: %v", err)
	}

	issuer, err := auth.NewIssuer(key, cfg.Issuer)
	if err != nil {
		logger.Sugar.Fatalf("Failed to build token issuer: %v", err)
	}

	var st store.Store
	switch cfg.StoreDriver {
	case config.StorePostgres:
		st, err = store.NewPGStore(database.Connect())
	default:
		st, err = store.NewFileStore(cfg.StorePath)
	}
	if err != nil {
		logger.Sugar.Fatalf("Failed to initialize %s store: %v", cfg.StoreDriver, err)
	}

	handler := router.Setup(router.Deps{
		Store:      st,
		Issuer:     issuer,
		Authorizer: auth.NewDocAuthorizer(st),
		DemoUserID: cfg.DemoUserID,
		ProtectAPI: cfg.ProtectAPI,
	})

	srv := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: handler,
	}

	go func() {
		logger.Sugar.Infof("docroom listening on %s", cfg.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Sugar.Fatalf("Server error: %v", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	logger.Sugar.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Sugar.Errorf("Server shutdown error: %v", err)
	}

	// The file store removes its backing file here: demo deployments keep no
	// metadata across runs.
	if err := st.Close(); err != nil {
		logger.Sugar.Errorf("Store cleanup error: %v", err)
	}
}
