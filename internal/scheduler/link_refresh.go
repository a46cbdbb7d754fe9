package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"

	"github.com/lrodrigues/costura-backoffice-api/infrastructure/mail"
	"github.com/lrodrigues/costura-backoffice-api/infrastructure/repository"
	"github.com/lrodrigues/costura-backoffice-api/internal/config"
	"github.com/lrodrigues/costura-backoffice-api/internal/usecases/monitoring"
)

// LinkRefreshConfig representa a configuração do agendador de refresh de links
type LinkRefreshConfig struct {
	CronSchedule        string
	RequestDelaySeconds int
	SyncEnabled         bool
}

// LinkRefreshService agenda a revisita periódica dos links monitorados de
// cada tenant e o envio do relatório de preços por e-mail.
type LinkRefreshService struct {
	scheduler *gocron.Scheduler
	config    LinkRefreshConfig
	monitor   monitoring.LinkMonitor
	userRepo  repository.UserRepository
	mailer    mail.Mailer

	// tenants com refresh em andamento; invocação sobreposta é ignorada
	runningMutex sync.Mutex
	running      map[string]bool

	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
}

// NewLinkRefreshService cria uma nova instância do agendador de refresh
func NewLinkRefreshService(
	monitor monitoring.LinkMonitor,
	userRepo repository.UserRepository,
	mailer mail.Mailer,
	appConfig *config.Config,
) *LinkRefreshService {
	refreshConfig := LinkRefreshConfig{
		CronSchedule:        appConfig.LinkSync.CronSchedule,
		RequestDelaySeconds: appConfig.LinkSync.RequestDelaySeconds,
		SyncEnabled:         appConfig.LinkSync.Enabled,
	}

	scheduler := gocron.NewScheduler(time.Local)

	logrus.WithFields(logrus.Fields{
		"cron_schedule":         refreshConfig.CronSchedule,
		"request_delay_seconds": refreshConfig.RequestDelaySeconds,
		"sync_enabled":          refreshConfig.SyncEnabled,
	}).Info("Configuração do agendador de refresh de links carregada")

	return &LinkRefreshService{
		scheduler: scheduler,
		config:    refreshConfig,
		monitor:   monitor,
		userRepo:  userRepo,
		mailer:    mailer,
		running:   make(map[string]bool),
	}
}

// Start inicia o agendador
func (s *LinkRefreshService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Refresh agendado de links desabilitado por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de refresh de links")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.refreshAllTenants(ctx)
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar refresh de links: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de refresh de links")
		s.scheduler.Stop()
	}()

	return nil
}

// refreshAllTenants percorre os donos de conta e atualiza os links de cada
// um em série.
func (s *LinkRefreshService) refreshAllTenants(ctx context.Context) {
	inicio := time.Now()

	s.runningMutex.Lock()
	s.lastSyncStartedAt = inicio
	s.runningMutex.Unlock()

	owners, err := s.userRepo.ListOwners()
	if err != nil {
		logrus.WithError(err).Error("Falha ao listar os donos de conta para o refresh")
		return
	}

	for _, owner := range owners {
		s.RefreshTenant(ctx, owner.ID)
	}

	fim := time.Now()

	s.runningMutex.Lock()
	s.lastSyncCompletedAt = fim
	s.runningMutex.Unlock()

	logrus.WithFields(logrus.Fields{
		"tenants": len(owners),
		"duracao": fim.Sub(inicio).String(),
	}).Info("Ciclo de refresh de links concluído")
}

// RefreshTenant atualiza os links de um tenant e envia o relatório aos
// usuários com notificação habilitada. Chamadas sobrepostas para o mesmo
// tenant são ignoradas.
func (s *LinkRefreshService) RefreshTenant(ctx context.Context, tenantID string) {
	s.runningMutex.Lock()
	if s.running[tenantID] {
		s.runningMutex.Unlock()
		logrus.WithField("tenant", tenantID).Info("Refresh já em andamento para o tenant, ignorando")
		return
	}
	s.running[tenantID] = true
	s.runningMutex.Unlock()

	defer func() {
		s.runningMutex.Lock()
		delete(s.running, tenantID)
		s.runningMutex.Unlock()
	}()

	alerts, err := s.monitor.RefreshTenant(ctx, tenantID)
	if err != nil {
		logrus.WithError(err).WithField("tenant", tenantID).Error("Falha no refresh dos links do tenant")
	}

	if len(alerts) == 0 {
		return
	}

	users, err := s.userRepo.GetNotifiableUsers(tenantID)
	if err != nil {
		logrus.WithError(err).WithField("tenant", tenantID).Error("Falha ao listar os destinatários do relatório")
		return
	}

	recipients := make([]string, 0, len(users))
	for _, user := range users {
		address := user.EmailNotify
		if address == "" {
			address = user.Email
		}
		if address != "" {
			recipients = append(recipients, address)
		}
	}

	if err := s.mailer.SendPriceReport(recipients, alerts); err != nil {
		logrus.WithError(err).WithField("tenant", tenantID).Error("Falha ao enviar o relatório de preços")
	}
}

// TriggerManualSync inicia manualmente um refresh para o tenant
func (s *LinkRefreshService) TriggerManualSync(tenantID string) {
	logrus.WithField("tenant", tenantID).Info("Iniciando refresh manual de links")
	go s.RefreshTenant(context.Background(), tenantID)
}

// GetStatus retorna o status atual do agendador
func (s *LinkRefreshService) GetStatus() map[string]any {
	s.runningMutex.Lock()
	emAndamento := len(s.running)
	iniciadoEm := s.lastSyncStartedAt
	concluidoEm := s.lastSyncCompletedAt
	s.runningMutex.Unlock()

	return map[string]any{
		"sync_enabled":           s.config.SyncEnabled,
		"sync_cron":              s.config.CronSchedule,
		"sync_request_delay_s":   s.config.RequestDelaySeconds,
		"tenants_em_andamento":   emAndamento,
		"last_sync_started_at":   iniciadoEm,
		"last_sync_completed_at": concluidoEm,
	}
}
