package gateway

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"sync"

	"github.com/alovak/cardvalidation/card"
	"github.com/alovak/cardvalidation/gateway/iso8583"
	"github.com/alovak/cardvalidation/internal/middleware"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"golang.org/x/exp/slog"
)

// App is the main application, it contains all the components of the gateway
// and is responsible for starting and stopping them.
type App struct {
	srv               *http.Server
	wg                *sync.WaitGroup
	Addr              string
	ISO8583ServerAddr string
	logger            *slog.Logger
	iso8583Server     io.Closer
	config            *Config
	validator         *card.Validator
}

func NewApp(logger *slog.Logger, config *Config, opts ...card.Option) *App {
	logger = logger.With(slog.String("app", "cardvalidation"))

	if config == nil {
		config = DefaultConfig()
	}

	return &App{
		wg:        &sync.WaitGroup{},
		logger:    logger,
		config:    config,
		validator: card.NewValidator(opts...),
	}
}

func (a *App) Start() error {
	a.logger.Info("starting app...")

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.NewStructuredLogger(a.logger))
	router.Use(chimw.Recoverer)

	service := NewService(a.validator, a.logger)

	if a.config.ISO8583Enabled {
		iso8583Server := iso8583.NewServer(a.logger, a.config.ISO8583Addr, service)
		err := iso8583Server.Start()
		if err != nil {
			return fmt.Errorf("starting iso8583 server: %w", err)
		}
		a.ISO8583ServerAddr = iso8583Server.Addr
		a.iso8583Server = iso8583Server
	}

	api := NewAPI(service)
	api.AppendRoutes(router)

	router.Get("/-/live", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	router.Get("/-/ready", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })

	l, err := net.Listen("tcp", a.config.HTTPAddr)
	if err != nil {
		a.closeISO8583()
		return fmt.Errorf("listening tcp port: %w", err)
	}

	a.Addr = l.Addr().String()

	a.srv = &http.Server{
		Handler: router,
	}

	a.wg.Add(1)
	go func() {
		a.logger.Info("http server started", slog.String("addr", a.Addr))

		if err := a.srv.Serve(l); err != nil {
			if err != http.ErrServerClosed {
				a.logger.Error("starting http server", "err", err)
			}

			a.logger.Info("http server stopped")
		}

		a.wg.Done()
	}()

	return nil
}

func (a *App) Shutdown(ctx context.Context) {
	a.logger.Info("shutting down app...")

	if a.srv != nil {
		if err := a.srv.Shutdown(ctx); err != nil {
			a.logger.Error("shutting down http server", "err", err)
		}
	}

	a.closeISO8583()

	a.wg.Wait()

	a.logger.Info("app stopped")
}

func (a *App) closeISO8583() {
	if a.iso8583Server == nil {
		return
	}
	if err := a.iso8583Server.Close(); err != nil {
		a.logger.Error("closing iso8583 server", "err", err)
	}
	a.iso8583Server = nil
}
