package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gitea.com/go-chi/session"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/blogem/regdesk/authenticator"
	"github.com/blogem/regdesk/cache"
	"github.com/blogem/regdesk/config"
	"github.com/blogem/regdesk/controllers"
	"github.com/blogem/regdesk/database"
	"github.com/blogem/regdesk/datastore"
	"github.com/blogem/regdesk/logger"
	"github.com/blogem/regdesk/metrics"
	authmiddleware "github.com/blogem/regdesk/middleware"
	"github.com/blogem/regdesk/notify"
	"github.com/blogem/regdesk/repositories"
	"github.com/blogem/regdesk/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zl, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zl.Sync()

	if err := run(cfg, zl); err != nil {
		zl.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, zl *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Data source
	client, closeStore, err := openDataStore(ctx, cfg, zl)
	if err != nil {
		return err
	}
	defer closeStore.Close()

	// Report cache
	var reportCache cache.Cache = cache.Noop{}
	if cfg.Redis.Address != "" {
		rc := cache.NewRedis(cfg.Redis)
		if err := rc.Ping(ctx); err != nil {
			zl.Warn("redis unavailable, report caching disabled", zap.String("address", cfg.Redis.Address), zap.Error(err))
			rc.Close()
		} else {
			defer rc.Close()
			reportCache = rc
		}
	}

	notifier, err := notify.New(ctx, cfg.Notify, zl)
	if err != nil {
		return fmt.Errorf("failed to initialize notifier: %w", err)
	}

	repos := repositories.NewRepositories(client)
	srvs := services.NewServices(repos, reportCache, notifier, zl, services.Options{
		List:      services.ListOptions{PageSize: cfg.List.PageSize, FetchLimit: cfg.List.FetchLimit},
		ReportTTL: cfg.Redis.ReportTTL,
	})

	auth, err := authenticator.NewOpenIDProvider(ctx, cfg.Auth)
	if err != nil {
		return fmt.Errorf("failed to initialize identity provider: %w", err)
	}

	ctrl := controllers.NewControllers(srvs, auth, zl)

	r, err := setupRouter(ctrl, cfg.Server, zl)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		zl.Info("registration review desk starting",
			zap.String("port", cfg.Server.Port),
			zap.String("data_source", cfg.DataSource.Kind))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	zl.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// openDataStore builds the data client selected by DATA_SOURCE
func openDataStore(ctx context.Context, cfg *config.Config, zl *zap.Logger) (datastore.Client, io.Closer, error) {
	if cfg.DataSource.Kind == "memory" {
		store := datastore.NewMemoryClient()
		services.SeedMemory(store, time.Now())
		zl.Info("using in-memory data source with sample data")
		return store, nopCloser{}, nil
	}

	db, err := database.Initialize(ctx, cfg.Database.Driver, cfg.Database.DSN, zl)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	return datastore.NewSQLClient(db, cfg.Database.Driver, zl), db, nil
}

// setupRouter configures all routes
func setupRouter(ctrl *controllers.Controllers, cfg config.ServerConfig, zl *zap.Logger) (*chi.Mux, error) {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(authmiddleware.RequestMeta)
	r.Use(authmiddleware.RequestLogger(zl))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	r.Use(middleware.Compress(5))

	// Session middleware
	sessionHandler, err := session.Sessioner(session.Options{
		Provider:       "memory",
		ProviderConfig: "",
		CookieName:     "regdesk_session",
		Secure:         cfg.UseHTTPS,
		Gclifetime:     cfg.SessionLifetime,
		Maxlifetime:    cfg.SessionLifetime,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize session: %w", err)
	}
	r.Use(sessionHandler)

	// PUBLIC ROUTES (no authentication required)
	r.Get("/", ctrl.Dashboard.Index) // landing page or dashboard depending on auth
	r.Get("/login", ctrl.Auth.Login)
	r.Get("/callback", ctrl.Auth.Callback)
	r.Get("/logout", ctrl.Auth.Logout)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, `{"status": "healthy", "service": "regdesk"}`)
	})
	r.Handle("/metrics", metrics.Handler())

	// PROTECTED ROUTES (authentication required)
	r.Group(func(r chi.Router) {
		r.Use(authmiddleware.RequireAuth)

		r.Route("/applications", func(r chi.Router) {
			r.Get("/", ctrl.Applications.Index)
			r.Get("/export", ctrl.Applications.Export)
			r.Post("/bulk", ctrl.Applications.Bulk)
			r.Post("/selection/toggle", ctrl.Applications.ToggleSelection)
			r.Post("/selection/all", ctrl.Applications.ToggleAll)
			r.Post("/selection/clear", ctrl.Applications.ClearSelection)
			r.Get("/new", ctrl.Applications.New)
			r.Post("/new", ctrl.Applications.Create)
			r.Get("/{id}", ctrl.Applications.Show)
			r.Post("/{id}/decision", ctrl.Applications.Decide)
			r.Post("/{id}/assign", ctrl.Applications.Assign)
			r.Post("/{id}/messages", ctrl.Applications.SendMessage)
		})

		r.Route("/users", func(r chi.Router) {
			r.Get("/", ctrl.Users.Index)
			r.Get("/export", ctrl.Users.Export)
			r.Get("/pending", ctrl.Users.Pending)
			r.Post("/pending/bulk", ctrl.Users.BulkPending)
			r.Post("/pending/selection/toggle", ctrl.Users.TogglePending)
			r.Post("/pending/selection/all", ctrl.Users.ToggleAllPending)
			r.Post("/pending/selection/clear", ctrl.Users.ClearPending)
			r.Post("/{id}/approve", ctrl.Users.Approve)
			r.Post("/{id}/reject", ctrl.Users.Reject)
		})

		r.Route("/audit", func(r chi.Router) {
			r.Get("/", ctrl.Audit.Index)
			r.Get("/export", ctrl.Audit.Export)
		})

		r.Route("/reports", func(r chi.Router) {
			r.Get("/", ctrl.Reports.Index)
			r.Get("/export", ctrl.Reports.Export)
		})

		r.Get("/settings", ctrl.Settings.Show)
		r.Post("/settings", ctrl.Settings.Save)
	})

	return r, nil
}
