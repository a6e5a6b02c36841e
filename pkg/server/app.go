package server

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	xhttp "SwingSignal/pkg/http"
	applogger "SwingSignal/pkg/logger"
)

// Service is a background component started before the HTTP server and
// stopped after it.
type Service struct {
	Name  string
	Start func() error
	Stop  func(ctx context.Context) error
}

// App owns the process lifecycle.
type App struct {
	log             *applogger.Logger
	http            *xhttp.Server
	services        []Service
	shutdownTimeout time.Duration
}

type Option func(*App)

func WithService(s Service) Option {
	return func(a *App) { a.services = append(a.services, s) }
}

func WithShutdownTimeout(d time.Duration) Option {
	return func(a *App) {
		if d > 0 {
			a.shutdownTimeout = d
		}
	}
}

// New builds the app. httpServer may be nil for worker-only processes.
func New(log *applogger.Logger, httpServer *xhttp.Server, opts ...Option) *App {
	a := &App{log: log, http: httpServer, shutdownTimeout: 10 * time.Second}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Run starts every service, then the HTTP server, and blocks until ctx is
// done or SIGINT/SIGTERM arrives.
func (a *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	started := 0
	for _, s := range a.services {
		if s.Start == nil {
			started++
			continue
		}
		if err := s.Start(); err != nil {
			a.log.Error("service start failed", applogger.String("service", s.Name), applogger.Error(err))
			a.stopServices(a.services[:started])
			return fmt.Errorf("start %s: %w", s.Name, err)
		}
		a.log.Info("service started", applogger.String("service", s.Name))
		started++
	}

	if a.http != nil {
		if err := a.http.Start(); err != nil {
			a.stopServices(a.services)
			return fmt.Errorf("start http: %w", err)
		}
	}

	<-ctx.Done()
	a.log.Info("shutdown signal received")
	return a.shutdown()
}

func (a *App) shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), a.shutdownTimeout)
	defer cancel()

	var errs []error
	if a.http != nil {
		if err := a.http.Stop(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	errs = append(errs, a.stopServicesCtx(ctx, a.services)...)

	a.log.Info("shutdown complete")
	return errors.Join(errs...)
}

func (a *App) stopServices(services []Service) {
	ctx, cancel := context.WithTimeout(context.Background(), a.shutdownTimeout)
	defer cancel()
	_ = a.stopServicesCtx(ctx, services)
}

// stopServicesCtx stops services in reverse start order.
func (a *App) stopServicesCtx(ctx context.Context, services []Service) []error {
	var errs []error
	for i := len(services) - 1; i >= 0; i-- {
		s := services[i]
		if s.Stop == nil {
			continue
		}
		if err := s.Stop(ctx); err != nil {
			a.log.Warn("service stop failed", applogger.String("service", s.Name), applogger.Error(err))
			errs = append(errs, fmt.Errorf("stop %s: %w", s.Name, err))
		}
	}
	return errs
}
