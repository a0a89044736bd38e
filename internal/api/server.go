package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/justinas/alice"
	"github.com/vfg2006/flow-erp-api/internal/api/handler"
	"github.com/vfg2006/flow-erp-api/internal/api/handler/router"
	"github.com/vfg2006/flow-erp-api/internal/config"
	"github.com/vfg2006/flow-erp-api/internal/usecases/authenticating"
	"github.com/vfg2006/flow-erp-api/internal/usecases/ledger"
	"github.com/vfg2006/flow-erp-api/internal/usecases/pipeline"
	"github.com/vfg2006/flow-erp-api/internal/usecases/reporting"
	"github.com/vfg2006/flow-erp-api/internal/usecases/team"
	"github.com/vfg2006/flow-erp-api/pkg/log"
	"github.com/vfg2006/flow-erp-api/pkg/middleware"
)

const shutdownTimeout = 15 * time.Second

// Services reúne os casos de uso expostos pela API
type Services struct {
	Authenticator authenticating.Authenticator
	Pipeline      pipeline.Pipeline
	Ledger        ledger.Ledger
	Team          team.Team
	Reporter      reporting.Reporter
	CronJobs      handler.CronJobServices
	Dependencies  map[string]handler.Pinger
}

type Server struct {
	httpServer *http.Server
}

func New(cfg *config.Config, services Services) (*Server, error) {
	if services.Authenticator == nil {
		return nil, fmt.Errorf("autenticador não configurado")
	}

	rt := router.New(
		router.WithRoutes(handler.Healthcheck(services.Dependencies)...),
		router.WithRoutes(handler.Metrics()...),
		router.WithRoutes(handler.Authentication(services.Authenticator)...),
		router.WithRoutes(handler.User(services.Authenticator)...),
		router.WithRoutes(handler.Cards(services.Pipeline)...),
		router.WithRoutes(handler.Ledger(services.Ledger)...),
		router.WithRoutes(handler.Team(services.Team)...),
		router.WithRoutes(handler.Reports(services.Reporter)...),
		router.WithRoutes(handler.CronJobs(services.CronJobs)...),
	)

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
			Handler:           Chain(cfg, services.Authenticator).Then(rt),
			ReadHeaderTimeout: 2 * time.Second,
		},
	}, nil
}

// Chain monta a cadeia de middlewares globais
func Chain(cfg *config.Config, validator middleware.TokenValidator) alice.Chain {
	return alice.New(
		middleware.LogPanicMiddleware(),
		middleware.LoggingMiddleware(),
		middleware.Cors(cfg.CORS.AllowedOrigins),
		middleware.AuthMiddleware(validator),
	)
}

func (s Server) Run(ctx context.Context) error {
	serverErr := make(chan error, 1)
	go func() {
		log.L.WithField("address", s.httpServer.Addr).Info("Servidor iniciando")

		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.L.WithError(err).Error("Erro durante a execução do servidor")
			serverErr <- err
		}
	}()

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(done)

	select {
	case <-done:
		log.L.Info("Sinal de interrupção recebido")
	case <-ctx.Done():
		log.L.Info("Contexto de aplicação cancelado")
	case err := <-serverErr:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	log.L.WithField("timeout", shutdownTimeout.String()).Info("Iniciando desligamento gracioso do servidor")

	if err := s.Shutdown(shutdownCtx); err != nil {
		log.L.WithError(err).Error("Erro durante o desligamento do servidor")
		return err
	}

	log.L.Info("Servidor desligado com sucesso")
	return nil
}

func (s Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// Handler expõe a cadeia completa, usado nos testes
func (s Server) Handler() http.Handler {
	return s.httpServer.Handler
}
