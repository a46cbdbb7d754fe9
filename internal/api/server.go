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
	"github.com/sirupsen/logrus"

	"github.com/lrodrigues/costura-backoffice-api/internal/api/handler"
	"github.com/lrodrigues/costura-backoffice-api/internal/api/handler/router"
	"github.com/lrodrigues/costura-backoffice-api/internal/config"
	"github.com/lrodrigues/costura-backoffice-api/internal/scheduler"
	"github.com/lrodrigues/costura-backoffice-api/internal/usecases/authenticating"
	"github.com/lrodrigues/costura-backoffice-api/internal/usecases/costura"
	"github.com/lrodrigues/costura-backoffice-api/internal/usecases/expedicao"
	"github.com/lrodrigues/costura-backoffice-api/internal/usecases/monitoring"
	"github.com/lrodrigues/costura-backoffice-api/pkg/middleware"
	"github.com/lrodrigues/costura-backoffice-api/pkg/sse"
)

type Server struct {
	httpServer *http.Server
}

func New(
	config *config.Config,
	authenticator authenticating.Authenticator,
	monitorService monitoring.LinkMonitor,
	expedicaoService expedicao.ExpedicaoService,
	jobService costura.JobService,
	hub *sse.Hub,
	linkRefreshService *scheduler.LinkRefreshService,
) (*Server, error) {
	cronServices := handler.CronJobServices{
		LinkRefresh: linkRefreshService,
	}

	rt := router.New(
		router.WithRoutes(handler.Healthcheck()...),
		router.WithRoutes(handler.Links(monitorService)...),
		router.WithRoutes(handler.Expedicao(expedicaoService)...),
		router.WithRoutes(handler.Jobs(jobService)...),
		router.WithRoutes(handler.JobLogs(jobService)...),
		router.WithRoutes(handler.Events(hub)...),
		router.WithRoutes(handler.CronJobs(cronServices)...),
	)

	middlewares := []alice.Constructor{
		middleware.LogPanicMiddleware(),
		middleware.LoggingMiddleware(),
		middleware.Cors(),
		middleware.AuthMiddleware(authenticator),
	}

	handler := alice.New(middlewares...).Then(rt)

	srv := &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port),
			Handler:           handler,
			ReadHeaderTimeout: 2 * time.Second,
		},
	}

	return srv, nil
}

func (s Server) Run(ctx context.Context) error {
	go func() {
		logrus.WithFields(logrus.Fields{
			"address": s.httpServer.Addr,
		}).Info("Servidor iniciando")

		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Error("Erro durante a execução do servidor")
		}
	}()

	// Canal para aguardar sinais de término
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	select {
	case <-done:
		logrus.Info("Sinal de interrupção recebido")
	case <-ctx.Done():
		logrus.Info("Contexto de aplicação cancelado")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	logrus.WithFields(logrus.Fields{
		"timeout": "15s",
	}).Info("Iniciando desligamento gracioso do servidor")

	if err := s.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("Erro durante o desligamento do servidor")
		return err
	}

	logrus.Info("Servidor desligado com sucesso")
	return nil
}

func (s Server) Shutdown(ctx context.Context) error {
	err := s.httpServer.Shutdown(ctx)
	if err != nil {
		return err
	}

	logrus.Info("Servidor HTTP desligado com sucesso")
	return nil
}
