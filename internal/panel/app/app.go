package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/veligame/adminpanel/internal/panel/http"
	"github.com/veligame/adminpanel/internal/panel/service"
	"github.com/veligame/adminpanel/internal/panel/store"
	"github.com/veligame/adminpanel/internal/panel/store/drivers/mongo"
	"github.com/veligame/adminpanel/internal/panel/store/drivers/sqlite"
	"github.com/veligame/adminpanel/pkg/cryptox"
	"github.com/veligame/adminpanel/pkg/httpx"
	"github.com/veligame/adminpanel/pkg/jwtx"
	"github.com/veligame/adminpanel/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags. Later problem
	BuildVersion = "v0.1.0"
)

// Application encapsulates the admin panel backend with all its dependencies
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	db             store.Store
	configurations store.Configurations
	signer         jwtx.Signer
	verifier       jwtx.Verifier

	// Services
	authService          *service.AuthService
	userService          *service.UserService
	configurationService *service.ConfigurationService

	// HTTP server
	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "panel-api",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	// Set pepper path for password hashing and load it now rather than
	// on the first login.
	cryptox.SetPepperPath(app.cfg.PepperFile)
	cryptox.GetPepper()

	if err := app.initSigning(); err != nil {
		return nil, err
	}
	if err := app.initDatabase(); err != nil {
		return nil, err
	}
	if err := app.initDocumentStore(); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	app.initServices()
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	app.logger.Info("panel api starting", "port", app.cfg.Port, "version", BuildVersion)

	// Start server in a goroutine
	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	// Setup signal handling for graceful shutdown
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a shutdown signal or server error
	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down panel api...")

	// Give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	// Shutdown the HTTP server
	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	// Close document store connection
	if err := app.configurations.Close(ctx); err != nil {
		app.logger.Error("error closing document store", "error", err)
	}

	// Close database connection
	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("panel api stopped")
	return nil
}

// initSigning prepares the token signer and verifier from the configured
// shared secret. Without a configured secret a random one is generated, so
// every outstanding token dies with the process.
func (app *Application) initSigning() error {
	secret := app.cfg.SigningSecret
	if secret == "" {
		generated, err := cryptox.GenerateSecret(cryptox.SecretSize256)
		if err != nil {
			return fmt.Errorf("failed to generate signing secret: %w", err)
		}
		secret = generated
		app.logger.Warn("AUTH_SIGNING_SECRET not set, generated an ephemeral secret; tokens will not survive a restart")
	}

	signer, err := jwtx.NewSignerHS256([]byte(secret))
	if err != nil {
		return fmt.Errorf("failed to initialize token signer: %w", err)
	}

	app.signer = signer
	app.verifier = jwtx.NewVerifierHS256([]byte(secret), app.cfg.Issuer, app.cfg.Audience)
	return nil
}

// initDatabase initializes the database and applies migrations
func (app *Application) initDatabase() error {
	host := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", app.cfg.DatabaseFile)
	db, err := sqlite.NewStore(host)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully")
	return nil
}

// initDocumentStore connects to the building-configuration collection
func (app *Application) initDocumentStore() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	configurations, err := mongo.NewConfigurations(ctx, app.cfg.MongoURI, app.cfg.MongoDatabase)
	if err != nil {
		return fmt.Errorf("failed to initialize document store: %w", err)
	}

	app.configurations = configurations
	app.logger.Info("document store connected", "database", app.cfg.MongoDatabase)
	return nil
}

// initServices initializes all business logic services
func (app *Application) initServices() {
	app.authService = &service.AuthService{
		Store:    app.db,
		Signer:   app.signer,
		Issuer:   app.cfg.Issuer,
		Audience: app.cfg.Audience,
		TokenTTL: app.cfg.TokenTTL,
	}

	app.userService = &service.UserService{Store: app.db}
	app.configurationService = &service.ConfigurationService{Store: app.configurations}
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.verifier,
		BuildVersion,
		app.db,
		app.configurations,
		httpx.CORSConfig{AllowedOrigins: app.cfg.CORSAllowedOrigins},
		app.logger,
	)

	// Wire services to router
	router.AuthService = app.authService
	router.UserService = app.userService
	router.ConfigurationService = app.configurationService
	router.ApplyRoutes()

	app.router = router

	// Initialize HTTP server
	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
