package app

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/paymint/paymint-bot/internal/client/db/pg"
	"github.com/paymint/paymint-bot/internal/closer"
	"github.com/paymint/paymint-bot/internal/config"
)

var configPath string

func init() {
	flag.StringVar(&configPath, "config-path", ".env", "path to config file")
}

type App struct {
	serviceProvider *ServiceProvider
	httpServer      *http.Server
	cancelScheduler context.CancelFunc
}

func NewApp(ctx context.Context) (*App, error) {
	a := &App{}

	err := a.initDeps(ctx)
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (a *App) Run() error {
	defer func() {
		closer.CloseAll()
	}()

	return a.runHTTPServer()
}

func (a *App) initDeps(ctx context.Context) error {
	inits := []func(context.Context) error{
		a.initConfig,
		a.initServiceProvider,
		a.initDatabase,
		a.initScheduler,
		a.initHTTPServer,
	}

	for _, f := range inits {
		err := f(ctx)
		if err != nil {
			return err
		}
	}
	return nil
}

func (a *App) initConfig(context.Context) error {
	err := config.Load(configPath)
	if err != nil {
		return err
	}
	return nil
}

func (a *App) initServiceProvider(context.Context) error {
	a.serviceProvider = NewServiceProvider()
	return nil
}

func (a *App) initDatabase(ctx context.Context) error {
	return pg.Migrate(a.serviceProvider.SQLDB(ctx))
}

func (a *App) initScheduler(ctx context.Context) error {
	schedulerCtx, cancel := context.WithCancel(context.Background())
	a.cancelScheduler = cancel
	go a.serviceProvider.Scheduler(ctx).Start(schedulerCtx)
	return nil
}

func (a *App) initHTTPServer(ctx context.Context) error {
	a.httpServer = &http.Server{
		Addr:    ":" + a.serviceProvider.AppConfig().Port(),
		Handler: a.serviceProvider.Router(ctx),
	}
	return nil
}

func (a *App) runHTTPServer() error {
	log.Printf("🤖 Paymint bot listening on %s", a.httpServer.Addr)

	errChan := make(chan error, 1)
	go func() {
		if err := a.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		return err
	case <-sigChan:
		log.Println("⏹️  Shutting down gracefully...")
	}

	a.cancelScheduler()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return a.httpServer.Shutdown(shutdownCtx)
}
