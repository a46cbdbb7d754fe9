package scheduler

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/lrodrigues/costura-backoffice-api/infrastructure/repository/mocks"
	"github.com/lrodrigues/costura-backoffice-api/internal/config"
	"github.com/lrodrigues/costura-backoffice-api/internal/domain"
	"github.com/lrodrigues/costura-backoffice-api/internal/usecases/monitoring"
)

type monitorStub struct {
	mu      sync.Mutex
	calls   int
	alerts  []domain.PriceAlert
	started chan struct{}
	release chan struct{}
}

func (m *monitorStub) RefreshTenant(_ context.Context, _ string) ([]domain.PriceAlert, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()

	if m.started != nil {
		m.started <- struct{}{}
		<-m.release
	}
	return m.alerts, nil
}

func (m *monitorStub) AddLink(context.Context, string, monitoring.AddLinkRequest) (*domain.MonitoredLink, error) {
	return nil, nil
}
func (m *monitorStub) ImportSearchPage(context.Context, string, monitoring.ImportRequest) (*monitoring.ImportResult, error) {
	return nil, nil
}
func (m *monitorStub) RefreshStore(context.Context, string, domain.StoreName, func(monitoring.ProgressEvent)) ([]domain.PriceAlert, error) {
	return nil, nil
}
func (m *monitorStub) UpdateAnnotations(string, monitoring.UpdateAnnotationsRequest) (*domain.MonitoredLink, error) {
	return nil, nil
}
func (m *monitorStub) RemoveTag(string, string, domain.StoreName, string) (*domain.MonitoredLink, error) {
	return nil, nil
}
func (m *monitorStub) UniqueTags(string) ([]string, error) { return nil, nil }
func (m *monitorStub) List(string, *domain.StoreName, int, int) (*monitoring.ListResult, error) {
	return nil, nil
}
func (m *monitorStub) Delete(string, string) (int64, error)                  { return 0, nil }
func (m *monitorStub) DeleteStore(string, domain.StoreName) (int64, error)   { return 0, nil }
func (m *monitorStub) ClearRates(string, domain.StoreName) error             { return nil }

type mailerSpy struct {
	mu    sync.Mutex
	sends [][]string
}

func (m *mailerSpy) SendPriceReport(to []string, _ []domain.PriceAlert) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sends = append(m.sends, to)
	return nil
}

func newRefreshService(t *testing.T, monitor *monitorStub, mailer *mailerSpy) (*LinkRefreshService, *mocks.MockUserRepository) {
	ctrl := gomock.NewController(t)

	userRepo := mocks.NewMockUserRepository(ctrl)

	cfg := &config.Config{}
	cfg.LinkSync.CronSchedule = "0 * * * *"
	cfg.LinkSync.Enabled = true

	return NewLinkRefreshService(monitor, userRepo, mailer, cfg), userRepo
}

func TestRefreshTenantEnviaRelatorio(t *testing.T) {
	monitor := &monitorStub{alerts: []domain.PriceAlert{{Name: "Cortina", NewPrice: 80, OldPrice: 100}}}
	mailer := &mailerSpy{}

	service, userRepo := newRefreshService(t, monitor, mailer)

	userRepo.EXPECT().
		GetNotifiableUsers("owner-1").
		Return([]*domain.User{
			{ID: "owner-1", Email: "dona@loja.com", SendEmail: true},
			{ID: "op-1", EmailNotify: "operador@loja.com", SendEmail: true},
		}, nil)

	service.RefreshTenant(context.Background(), "owner-1")

	assert.Equal(t, 1, monitor.calls)
	assert.Equal(t, [][]string{{"dona@loja.com", "operador@loja.com"}}, mailer.sends)
}

func TestRefreshTenantSemMudancasNaoEnviaEmail(t *testing.T) {
	monitor := &monitorStub{}
	mailer := &mailerSpy{}

	service, _ := newRefreshService(t, monitor, mailer)

	service.RefreshTenant(context.Background(), "owner-1")

	assert.Equal(t, 1, monitor.calls)
	assert.Empty(t, mailer.sends)
}

func TestRefreshSobrepostoIgnorado(t *testing.T) {
	monitor := &monitorStub{
		started: make(chan struct{}, 1),
		release: make(chan struct{}),
	}
	mailer := &mailerSpy{}

	service, _ := newRefreshService(t, monitor, mailer)

	go service.RefreshTenant(context.Background(), "owner-1")

	select {
	case <-monitor.started:
	case <-time.After(time.Second):
		t.Fatal("primeiro refresh não começou")
	}

	// segunda invocação enquanto a primeira está presa deve ser ignorada
	service.RefreshTenant(context.Background(), "owner-1")
	assert.Equal(t, 1, monitor.calls)

	close(monitor.release)
}

func TestGetStatusConcorrenteComCicloDeRefresh(t *testing.T) {
	monitor := &monitorStub{}
	mailer := &mailerSpy{}

	service, userRepo := newRefreshService(t, monitor, mailer)

	userRepo.EXPECT().
		ListOwners().
		Return([]*domain.User{{ID: "owner-1"}}, nil).
		AnyTimes()

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		for i := 0; i < 50; i++ {
			service.refreshAllTenants(context.Background())
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 50; i++ {
			service.GetStatus()
		}
	}()

	wg.Wait()

	status := service.GetStatus()
	assert.False(t, status["last_sync_started_at"].(time.Time).IsZero())
	assert.False(t, status["last_sync_completed_at"].(time.Time).IsZero())
}
