package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/clinic-portal/internal/access"
	httptransport "github.com/spec-kit/clinic-portal/internal/api/http"
	"github.com/spec-kit/clinic-portal/internal/api/http/handlers"
	"github.com/spec-kit/clinic-portal/internal/api/http/views"
	"github.com/spec-kit/clinic-portal/internal/authclient"
	"github.com/spec-kit/clinic-portal/internal/config"
	"github.com/spec-kit/clinic-portal/internal/events"
	"github.com/spec-kit/clinic-portal/internal/guard"
	"github.com/spec-kit/clinic-portal/internal/i18n"
	"github.com/spec-kit/clinic-portal/internal/observability"
	"github.com/spec-kit/clinic-portal/internal/persistence"
	"github.com/spec-kit/clinic-portal/internal/repository"
	"github.com/spec-kit/clinic-portal/internal/service"
	"github.com/spec-kit/clinic-portal/internal/session"
	"github.com/spec-kit/clinic-portal/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	metrics := observability.NewMetrics()
	dependencies := []handlers.Dependency{}

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	var staffRepo repository.StaffRepository
	var appointmentRepo repository.AppointmentRepository
	if pg.Enabled() {
		if cfg.Postgres.RunMigrations {
			if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
				logger.Fatal("failed to run migrations", zap.Error(err))
			}
		}
		staffRepo = repository.NewStaffRepository(pg.PoolHandle())
		appointmentRepo = repository.NewAppointmentRepository(pg.PoolHandle())
		dependencies = append(dependencies, handlers.Dependency{Name: "postgres", Pinger: pg})
	} else {
		now := time.Now()
		staffRepo = repository.NewMemoryStaffRepository(repository.SeedStaff(now))
		appointmentRepo = repository.NewMemoryAppointmentRepository(repository.SeedAppointments(now))
	}

	store, sessionsDep, closeSessions, err := openSessionStore(cfg.Session, cfg.Redis, logger)
	if err != nil {
		logger.Fatal("failed to init session store", zap.Error(err))
	}
	defer closeSessions()
	dependencies = append(dependencies, sessionsDep)

	sessions := session.NewManager(store, session.ManagerConfig{
		CookieName: cfg.Session.CookieName,
		Secure:     cfg.Session.CookieSecure,
		Lifetime:   cfg.Session.Lifetime(),
	})

	authClient := authclient.New(authclient.Config{BaseURL: cfg.Auth.BaseURL, Timeout: cfg.Auth.RequestTimeout()}, logger)
	dependencies = append(dependencies, handlers.Dependency{Name: "auth", Pinger: authClient})

	dispatcher := events.NewInMemoryDispatcher()
	worker.StartAuditWorker(service.NewAuditService(dispatcher, logger))
	worker.StartLastLoginWorker(dispatcher, authClient, cfg.Auth.LastLoginTimeout(), logger)

	routeGuard := guard.New(authClient, cfg.Auth.VerifyTimeout(), logger, metrics, dispatcher)

	loginService := service.NewLoginService(service.LoginDependencies{
		Auth:       authClient,
		Dispatcher: dispatcher,
		Logger:     logger,
		Metrics:    metrics,
	}, guard.DashboardPath, cfg.UI.RedirectDelay())
	dashboardService := service.NewDashboardService(service.DashboardDependencies{
		Gate:            access.NewGate(access.DefaultItems()),
		StaffRepo:       staffRepo,
		AppointmentRepo: appointmentRepo,
		Logger:          logger,
	})

	renderer, err := views.New()
	if err != nil {
		logger.Fatal("failed to load views", zap.Error(err))
	}

	app := fiber.New(fiber.Config{AppName: cfg.App.Name, DisableStartupMessage: true})
	httptransport.RegisterMiddlewares(app, logger, metrics, httptransport.MiddlewareConfig{
		Timeout:         cfg.App.RequestTimeout(),
		DefaultLanguage: i18n.Normalize(cfg.UI.DefaultLanguage),
		Views:           renderer,
	})

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:    handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, dependencies...),
		Login:     handlers.NewLoginHandler(loginService, sessions, renderer, logger),
		Dashboard: handlers.NewDashboardHandler(dashboardService, renderer),
		Guard:     routeGuard,
		Sessions:  sessions,
	})

	go func() {
		logger.Info("portal listening", zap.String("addr", cfg.App.Addr()), zap.String("session_driver", cfg.Session.Driver))
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
