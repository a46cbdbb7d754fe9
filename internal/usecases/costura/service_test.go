package costura

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/lrodrigues/costura-backoffice-api/infrastructure/repository"
	"github.com/lrodrigues/costura-backoffice-api/infrastructure/repository/mocks"
	"github.com/lrodrigues/costura-backoffice-api/internal/config"
	"github.com/lrodrigues/costura-backoffice-api/internal/domain"
)

var actor = Actor{UserID: "user-1", OwnerID: "owner-1"}

var referencia = time.Date(2025, 3, 10, 14, 30, 0, 0, time.Local)

type testDeps struct {
	jobRepo *mocks.MockJobRepository
	logRepo *mocks.MockJobLogRepository
	service *Service
}

func newTestService(t *testing.T) testDeps {
	ctrl := gomock.NewController(t)

	cfg := &config.Config{}
	cfg.Costura.CustoPorMetro = 0.4

	jobRepo := mocks.NewMockJobRepository(ctrl)
	logRepo := mocks.NewMockJobLogRepository(ctrl)

	service := NewService(jobRepo, logRepo, nil, cfg)
	service.now = func() time.Time { return referencia }

	return testDeps{jobRepo: jobRepo, logRepo: logRepo, service: service}
}

func TestCusteio(t *testing.T) {
	tests := []struct {
		name          string
		qtd           float64
		larg          float64
		compr         float64
		emenda        bool
		wantMetros    float64
		wantOrcamento float64
	}{
		{
			name: "sem emenda",
			qtd:  10, larg: 1.5, compr: 1.5, emenda: false,
			wantMetros: 60, wantOrcamento: 24,
		},
		{
			name: "com emenda o comprimento entra três vezes",
			qtd:  10, larg: 1.5, compr: 1.5, emenda: true,
			wantMetros: 82.5, wantOrcamento: 33,
		},
		{
			name: "arredonda para duas casas",
			qtd:  3, larg: 1.33, compr: 2.17, emenda: false,
			wantMetros: 21, wantOrcamento: 8.4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			metros, orcamento := Custeio(tt.qtd, tt.larg, tt.compr, tt.emenda, 0.4)
			assert.Equal(t, tt.wantMetros, metros)
			assert.Equal(t, tt.wantOrcamento, orcamento)
		})
	}
}

func TestCreateJobCalculaOrcamento(t *testing.T) {
	deps := newTestService(t)

	var saved *domain.Job
	deps.jobRepo.EXPECT().
		Create(gomock.Any()).
		DoAndReturn(func(job *domain.Job) error {
			saved = job
			return nil
		})
	deps.logRepo.EXPECT().Append(gomock.Any()).Return(nil)

	job, err := deps.service.CreateJob(actor, CreateJobRequest{
		Lote:          "L-2025-014",
		Qtd:           10,
		Larg:          1.5,
		Compr:         1.5,
		FaccionistaID: "fac-1",
	})
	require.NoError(t, err)

	assert.Equal(t, 60.0, job.TotMetros)
	assert.Equal(t, 24.0, job.Orcamento)
	assert.Equal(t, "owner-1", job.OwnerID)
	assert.Equal(t, saved, job)
}

func TestCreateJobValidacoes(t *testing.T) {
	deps := newTestService(t)

	_, err := deps.service.CreateJob(actor, CreateJobRequest{Qtd: 1, Larg: 1, Compr: 1})
	assert.True(t, errors.Is(err, ErrLoteRequired))

	_, err = deps.service.CreateJob(actor, CreateJobRequest{Lote: "L1", Qtd: 0, Larg: 1, Compr: 1})
	assert.True(t, errors.Is(err, ErrInvalidDimension))
}

func TestTogglePagoCarimbaData(t *testing.T) {
	deps := newTestService(t)

	job := &domain.Job{ID: "j1", OwnerID: "owner-1"}

	deps.jobRepo.EXPECT().GetByID("j1", "owner-1").Return(job, nil)
	deps.jobRepo.EXPECT().Update(job).Return(nil)
	deps.logRepo.EXPECT().Append(gomock.Any()).Return(nil)

	updated, err := deps.service.ToggleField(actor, ToggleRequest{ID: "j1", Field: "pago", Value: true})
	require.NoError(t, err)

	assert.True(t, updated.Pago)
	require.NotNil(t, updated.DataPgto)
	assert.Equal(t, referencia, *updated.DataPgto)
}

func TestToggleRecebidoSemAprovacaoEntraEmAnalise(t *testing.T) {
	deps := newTestService(t)

	job := &domain.Job{ID: "j1", OwnerID: "owner-1"}

	deps.jobRepo.EXPECT().GetByID("j1", "owner-1").Return(job, nil)
	deps.jobRepo.EXPECT().Update(job).Return(nil)
	deps.logRepo.EXPECT().Append(gomock.Any()).Return(nil)

	updated, err := deps.service.ToggleField(actor, ToggleRequest{ID: "j1", Field: "recebido", Value: true})
	require.NoError(t, err)

	assert.True(t, updated.Recebido)
	assert.True(t, updated.EmAnalise)
}

func TestToggleAprovadoEncerraAnalise(t *testing.T) {
	deps := newTestService(t)

	job := &domain.Job{ID: "j1", OwnerID: "owner-1", Recebido: true, EmAnalise: true}

	deps.jobRepo.EXPECT().GetByID("j1", "owner-1").Return(job, nil)
	deps.jobRepo.EXPECT().Update(job).Return(nil)
	deps.logRepo.EXPECT().Append(gomock.Any()).Return(nil)

	updated, err := deps.service.ToggleField(actor, ToggleRequest{ID: "j1", Field: "aprovado", Value: true})
	require.NoError(t, err)

	assert.True(t, updated.Aprovado)
	assert.False(t, updated.EmAnalise)
}

func TestToggleEmendaRecalculaOrcamento(t *testing.T) {
	deps := newTestService(t)

	job := &domain.Job{
		ID: "j1", OwnerID: "owner-1",
		Qtd: 10, Larg: 1.5, Compr: 1.5,
		TotMetros: 60, Orcamento: 24,
	}

	deps.jobRepo.EXPECT().GetByID("j1", "owner-1").Return(job, nil)
	deps.jobRepo.EXPECT().Update(job).Return(nil)
	deps.logRepo.EXPECT().Append(gomock.Any()).Return(nil)

	updated, err := deps.service.ToggleField(actor, ToggleRequest{ID: "j1", Field: "emenda", Value: true})
	require.NoError(t, err)

	assert.Equal(t, 82.5, updated.TotMetros)
	assert.Equal(t, 33.0, updated.Orcamento)
}

func TestToggleCampoDesconhecido(t *testing.T) {
	deps := newTestService(t)

	_, err := deps.service.ToggleField(actor, ToggleRequest{ID: "j1", Field: "orcamento", Value: true})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidField))
}

func TestFalhaDeAuditoriaNaoDesfazMutacao(t *testing.T) {
	deps := newTestService(t)

	job := &domain.Job{ID: "j1", OwnerID: "owner-1"}

	deps.jobRepo.EXPECT().GetByID("j1", "owner-1").Return(job, nil)
	deps.jobRepo.EXPECT().Update(job).Return(nil)
	deps.logRepo.EXPECT().Append(gomock.Any()).Return(errors.New("log indisponível"))

	updated, err := deps.service.ToggleField(actor, ToggleRequest{ID: "j1", Field: "pago", Value: true})
	require.NoError(t, err)
	assert.True(t, updated.Pago)
}

func TestToggleManyAtualizaTodos(t *testing.T) {
	deps := newTestService(t)

	jobs := []*domain.Job{
		{ID: "j1", OwnerID: "owner-1"},
		{ID: "j2", OwnerID: "owner-1"},
	}

	deps.jobRepo.EXPECT().ListByIDs([]string{"j1", "j2"}, "owner-1").Return(jobs, nil)
	deps.jobRepo.EXPECT().Update(gomock.Any()).Return(nil).Times(2)
	deps.logRepo.EXPECT().Append(gomock.Any()).Return(nil).Times(2)

	updated, err := deps.service.ToggleMany(actor, ToggleManyRequest{
		IDs: []string{"j1", "j2"}, Field: "isArchived", Value: true,
	})
	require.NoError(t, err)

	require.Len(t, updated, 2)
	assert.True(t, updated[0].IsArchived)
	assert.True(t, updated[1].IsArchived)
}

func TestUpdateSizesRecalculaERegistraMudancas(t *testing.T) {
	deps := newTestService(t)

	job := &domain.Job{
		ID: "j1", OwnerID: "owner-1",
		Qtd: 10, Larg: 1.5, Compr: 1.5,
		TotMetros: 60, Orcamento: 24,
	}

	deps.jobRepo.EXPECT().GetByID("j1", "owner-1").Return(job, nil)
	deps.jobRepo.EXPECT().Update(job).Return(nil)

	var entries []*domain.JobChange
	deps.logRepo.EXPECT().
		Append(gomock.Any()).
		DoAndReturn(func(entry *domain.JobChange) error {
			entries = append(entries, entry)
			return nil
		}).
		Times(2)

	novaQtd := 20.0
	novaLarg := 2.0
	updated, err := deps.service.UpdateSizes(actor, UpdateSizesRequest{
		ID: "j1", Qtd: &novaQtd, Larg: &novaLarg,
	})
	require.NoError(t, err)

	assert.Equal(t, 140.0, updated.TotMetros) // (2*2 + 1.5*2) * 20
	assert.Equal(t, 56.0, updated.Orcamento)

	require.Len(t, entries, 2)
	assert.Equal(t, "qtd", entries[0].Field)
	assert.Equal(t, "10", entries[0].OldValue)
	assert.Equal(t, "20", entries[0].NewValue)
	assert.Equal(t, "larg", entries[1].Field)
}

func TestUpdateRate(t *testing.T) {
	deps := newTestService(t)

	job := &domain.Job{ID: "j1", OwnerID: "owner-1"}

	deps.jobRepo.EXPECT().GetByID("j1", "owner-1").Return(job, nil)
	deps.jobRepo.EXPECT().Update(job).Return(nil)
	deps.logRepo.EXPECT().Append(gomock.Any()).Return(nil)

	updated, err := deps.service.UpdateRate(actor, "j1", 8)
	require.NoError(t, err)
	require.NotNil(t, updated.RateLote)
	assert.Equal(t, 8, *updated.RateLote)

	_, err = deps.service.UpdateRate(actor, "j1", 11)
	assert.True(t, errors.Is(err, ErrInvalidRate))
}

func TestListJobsRepassaFiltro(t *testing.T) {
	deps := newTestService(t)

	deps.jobRepo.EXPECT().
		List(repository.JobFilter{OwnerID: "owner-1", FaccionistaID: "fac-1"}).
		Return([]*domain.Job{{ID: "j1"}}, nil)

	jobs, err := deps.service.ListJobs(actor, ListJobsRequest{FaccionistaID: "fac-1"})
	require.NoError(t, err)
	assert.Len(t, jobs, 1)
}

func TestJobInexistente(t *testing.T) {
	deps := newTestService(t)

	deps.jobRepo.EXPECT().GetByID("nao-existe", "owner-1").Return(nil, nil)

	_, err := deps.service.GetJob(actor, "nao-existe")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrJobNotFound))
}
