package main

import (
	"context"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/lrodrigues/costura-backoffice-api/infrastructure/database/postgres"
	"github.com/lrodrigues/costura-backoffice-api/infrastructure/mail"
	"github.com/lrodrigues/costura-backoffice-api/infrastructure/repository"
	"github.com/lrodrigues/costura-backoffice-api/infrastructure/scraper"
	"github.com/lrodrigues/costura-backoffice-api/internal/api"
	"github.com/lrodrigues/costura-backoffice-api/internal/config"
	"github.com/lrodrigues/costura-backoffice-api/internal/scheduler"
	"github.com/lrodrigues/costura-backoffice-api/internal/usecases/authenticating"
	"github.com/lrodrigues/costura-backoffice-api/internal/usecases/costura"
	"github.com/lrodrigues/costura-backoffice-api/internal/usecases/expedicao"
	"github.com/lrodrigues/costura-backoffice-api/internal/usecases/monitoring"
	"github.com/lrodrigues/costura-backoffice-api/pkg/sse"
)

func main() {
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	linkRepo := repository.NewLinkRepository(pgConn)
	expedicaoRepo := repository.NewExpedicaoRepository(pgConn)
	jobRepo := repository.NewJobRepository(pgConn)
	jobLogRepo := repository.NewJobLogRepository(pgConn)
	userRepo := repository.NewUserRepository(pgConn)

	authenticator := authenticating.NewService(cfg)

	// Hub de eventos compartilhado entre os usecases e a rota /v1/events
	hub := sse.NewHub()

	// O extractor lê a página do anúncio; quando todas as tentativas falham,
	// o fetcher degrada para o último preço conhecido no banco
	extractor := scraper.NewPageExtractor(cfg.Scraper)
	fetcher := scraper.NewRetryFetcher(extractor, monitoring.NewLinkStaleSource(linkRepo), cfg.Scraper)

	monitorService := monitoring.NewService(linkRepo, fetcher, extractor, cfg)
	expedicaoService := expedicao.NewService(expedicaoRepo, hub)
	jobService := costura.NewService(jobRepo, jobLogRepo, hub, cfg)

	mailer := mail.NewSMTPMailer(cfg.Mail)

	linkRefreshService := scheduler.NewLinkRefreshService(monitorService, userRepo, mailer, cfg)

	if err := linkRefreshService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de refresh de links")
	} else {
		logrus.Info("Agendador de refresh de links iniciado com sucesso")
	}

	server, err := api.New(
		cfg,
		authenticator,
		monitorService,
		expedicaoService,
		jobService,
		hub,
		linkRefreshService,
	)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	_, file, _, _ := runtime.Caller(0)
	dir := path.Dir(file)
	os.Chdir(dir)

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	err = conn.Ping(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao testar conexão com PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
