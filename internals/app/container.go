package app

import (
	"context"
	"urlmonitor/config"
	middle "urlmonitor/internals/middleware"
	"urlmonitor/internals/modules/check"
	"urlmonitor/internals/modules/monitor"
	"urlmonitor/internals/modules/notification"
	"urlmonitor/internals/modules/proxy"
	"urlmonitor/internals/modules/scheduler"
	"urlmonitor/internals/modules/user"
	"urlmonitor/internals/security"
	"urlmonitor/pkg/mailer"
	"urlmonitor/pkg/telegram"

	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

type Container struct {
	DB     *pgxpool.Pool
	Logger *zerolog.Logger

	Scheduler *scheduler.Scheduler

	userHandler    *user.Handler
	proxyHandler   *proxy.Handler
	monitorHandler *monitor.Handler
	notifHandler   *notification.Handler
	authMW         *middle.AuthMiddleware
}

func NewContainer(ctx context.Context, db *pgxpool.Pool, cfg *config.Config, logger *zerolog.Logger) (*Container, error) {
	validate := validator.New()

	proxyRepo := proxy.NewRepository(db, logger)
	monitorRepo := monitor.NewRepository(db, logger)
	notifRepo := notification.NewRepository(db, logger)
	userRepo := user.NewRepository(db, logger)

	tokenSvc := security.NewTokenService(cfg.Auth)
	userSvc := user.NewService(userRepo, tokenSvc, logger)
	monitorSvc := monitor.NewService(monitorRepo, proxyRepo, logger)

	dispatcher := notification.NewDispatcher(notifRepo, mailer.New(), telegram.New(), logger)
	checker := check.NewChecker(cfg.Checker.Timeout)
	executor := check.NewExecutor(monitorRepo, proxyRepo, checker, dispatcher, logger)

	sched := scheduler.NewScheduler(monitorRepo, executor, cfg.Scheduler.Interval, cfg.Scheduler.Concurrency, logger)

	if err := userSvc.EnsureDefaultAdmin(ctx, cfg.Auth.AdminUsername, cfg.Auth.AdminPassword); err != nil {
		return nil, err
	}

	return &Container{
		DB:             db,
		Logger:         logger,
		Scheduler:      sched,
		userHandler:    user.NewHandler(userSvc, validate),
		proxyHandler:   proxy.NewHandler(proxyRepo, validate),
		monitorHandler: monitor.NewHandler(monitorSvc, executor, validate),
		notifHandler:   notification.NewHandler(notifRepo, dispatcher, validate),
		authMW:         middle.NewAuthMiddleware(tokenSvc),
	}, nil
}

func (c *Container) Shutdown() error {
	if c.DB != nil {
		c.DB.Close()
	}
	return nil
}
