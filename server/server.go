package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"streammusic/config"
	"streammusic/core/auth"
	"streammusic/core/catalog"
	"streammusic/core/identity"
	"streammusic/core/media"
	"streammusic/db"
	"streammusic/logger"
	"streammusic/repository"
	"streammusic/storage"

	"gorm.io/gorm"
)

// Deps are the collaborators NewHandler wires together.
type Deps struct {
	DB     *gorm.DB
	Files  *storage.Local
	Mirror catalog.MediaMirror // optional
	Config *config.Config
}

// NewHandler builds the services and the routed handler.
func NewHandler(d Deps) http.Handler {
	store := repository.NewStore(d.DB)
	tokens := auth.NewTokenManager(d.Config.JWTSecret, d.Config.JWTIssuer, d.Config.TokenTTL)

	apiHandler := NewAPIHandler(
		identity.NewService(store, tokens, d.Config.DefaultPlanID),
		catalog.NewService(store, d.Files, d.Mirror),
		media.NewResolver(d.Files),
		d.Config,
	)
	return NewRouter(apiHandler)
}

// Start connects to the database, migrates, and serves until SIGINT or SIGTERM.
func Start(cfg *config.Config) error {
	gdb, err := db.Open(cfg)
	if err != nil {
		return err
	}
	defer db.Close(gdb)

	if err := db.AutoMigrate(gdb); err != nil {
		return err
	}
	if err := db.SeedPlans(context.Background(), gdb); err != nil {
		return err
	}

	files, err := storage.NewLocal(cfg.UploadDir)
	if err != nil {
		return err
	}

	deps := Deps{DB: gdb, Files: files, Config: cfg}
	if cfg.MinioEnabled() {
		mirror, err := storage.NewMirror(context.Background(), cfg)
		if err != nil {
			// streaming never depends on the mirror
			logger.Warn("MinIO mirror disabled", logger.ErrorField(err))
		} else {
			deps.Mirror = mirror
		}
	}

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           NewHandler(deps),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", logger.String("addr", server.Addr), logger.String("uploadDir", cfg.UploadDir))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-stop:
	}

	logger.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return err
	}
	logger.Info("server stopped")
	return nil
}
