package costura

import (
	"fmt"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/lrodrigues/costura-backoffice-api/infrastructure/repository"
	"github.com/lrodrigues/costura-backoffice-api/internal/config"
	"github.com/lrodrigues/costura-backoffice-api/internal/domain"
	"github.com/lrodrigues/costura-backoffice-api/pkg/apiErrors"
	"github.com/lrodrigues/costura-backoffice-api/pkg/sse"
	"github.com/lrodrigues/costura-backoffice-api/pkg/utils"
)

const EventJobUpdated = "jobUpdated"

// Actor identifica quem executa a mutação, para o log de auditoria e o
// escopo de tenant.
type Actor struct {
	UserID  string
	OwnerID string
}

type CreateJobRequest struct {
	Lote                 string     `json:"lote"`
	Data                 *time.Time `json:"-"`
	Qtd                  float64    `json:"qtd"`
	Larg                 float64    `json:"larg"`
	Compr                float64    `json:"compr"`
	Emenda               bool       `json:"emenda"`
	FaccionistaID        string     `json:"faccionistaId"`
	Observacao           string     `json:"observacao"`
	AdvancedMoneyPayment float64    `json:"advancedMoneyPayment"`
}

type ToggleRequest struct {
	ID    string `json:"id"`
	Field string `json:"field"`
	Value bool   `json:"value"`
}

type ToggleManyRequest struct {
	IDs   []string `json:"ids"`
	Field string   `json:"field"`
	Value bool     `json:"value"`
}

type UpdateSizesRequest struct {
	ID    string   `json:"id"`
	Qtd   *float64 `json:"qtd"`
	Larg  *float64 `json:"larg"`
	Compr *float64 `json:"compr"`
}

type ListJobsRequest struct {
	FaccionistaID   string
	Lote            string
	From            *time.Time
	To              *time.Time
	IncludeArchived bool
}

type ListChangesRequest struct {
	JobID string
	Lote  string
	From  *time.Time
	To    *time.Time
	Limit uint64
}

type JobService interface {
	CreateJob(actor Actor, req CreateJobRequest) (*domain.Job, error)
	GetJob(actor Actor, id string) (*domain.Job, error)
	ToggleField(actor Actor, req ToggleRequest) (*domain.Job, error)
	ToggleMany(actor Actor, req ToggleManyRequest) ([]*domain.Job, error)
	UpdateSizes(actor Actor, req UpdateSizesRequest) (*domain.Job, error)
	UpdateRate(actor Actor, id string, rate int) (*domain.Job, error)
	ListJobs(actor Actor, req ListJobsRequest) ([]*domain.Job, error)
	ListChanges(actor Actor, req ListChangesRequest) ([]*domain.JobChange, error)
}

type Service struct {
	jobRepo   repository.JobRepository
	logRepo   repository.JobLogRepository
	publisher sse.Publisher
	cfg       *config.Config

	now func() time.Time
}

func NewService(
	jobRepo repository.JobRepository,
	logRepo repository.JobLogRepository,
	publisher sse.Publisher,
	cfg *config.Config,
) *Service {
	return &Service{
		jobRepo:   jobRepo,
		logRepo:   logRepo,
		publisher: publisher,
		cfg:       cfg,
		now:       time.Now,
	}
}

// Custeio calcula os metros totais e o orçamento de um lote. Com emenda o
// comprimento entra três vezes no perímetro em vez de duas.
func Custeio(qtd, larg, compr float64, emenda bool, custoPorMetro float64) (totMetros, orcamento float64) {
	comprFator := 2.0
	if emenda {
		comprFator = 3.0
	}

	totMetros = utils.RoundWithTwoDecimalPlace((larg*2 + compr*comprFator) * qtd)
	orcamento = utils.RoundWithTwoDecimalPlace(totMetros * custoPorMetro)
	return totMetros, orcamento
}

func (s *Service) recalcular(job *domain.Job) {
	job.TotMetros, job.Orcamento = Custeio(job.Qtd, job.Larg, job.Compr, job.Emenda, s.cfg.Costura.CustoPorMetro)
}

func (s *Service) CreateJob(actor Actor, req CreateJobRequest) (*domain.Job, error) {
	if req.Lote == "" {
		return nil, NewCosturaError(ErrLoteRequired, apiErrors.ErrMissingRequiredData, "Informe o número do lote")
	}

	if req.Qtd <= 0 || req.Larg <= 0 || req.Compr <= 0 {
		return nil, NewCosturaError(ErrInvalidDimension, apiErrors.ErrInvalidRequest, "Quantidade, largura e comprimento devem ser positivos")
	}

	id, err := utils.GenerateID()
	if err != nil {
		return nil, err
	}

	agora := s.now()

	data := agora
	if req.Data != nil {
		data = *req.Data
	}

	job := &domain.Job{
		ID:                   id,
		Lote:                 req.Lote,
		Data:                 data,
		Qtd:                  req.Qtd,
		Larg:                 req.Larg,
		Compr:                req.Compr,
		Emenda:               req.Emenda,
		AdvancedMoneyPayment: req.AdvancedMoneyPayment,
		Observacao:           req.Observacao,
		FaccionistaID:        req.FaccionistaID,
		OwnerID:              actor.OwnerID,
		CreatedAt:            agora,
		UpdatedAt:            agora,
	}

	s.recalcular(job)

	if err := s.jobRepo.Create(job); err != nil {
		return nil, NewCosturaError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao salvar o lote")
	}

	s.audit(actor, job.ID, domain.JobActionCreate, "lote", "", job.Lote)
	s.publishJob(job)

	return job, nil
}

func (s *Service) GetJob(actor Actor, id string) (*domain.Job, error) {
	return s.getRequiredJob(actor, id)
}

// ToggleField muda um dos campos booleanos do lote. O conjunto de campos é
// fechado: cada um tem as próprias consequências de carimbo e recálculo.
func (s *Service) ToggleField(actor Actor, req ToggleRequest) (*domain.Job, error) {
	field, ok := domain.ParseJobToggleField(req.Field)
	if !ok {
		return nil, NewCosturaError(ErrInvalidField, apiErrors.ErrInvalidRequest, fmt.Sprintf("Campo %q não pode ser alternado", req.Field))
	}

	job, err := s.getRequiredJob(actor, req.ID)
	if err != nil {
		return nil, err
	}

	oldValue := s.applyToggle(job, field, req.Value)

	job.UpdatedAt = s.now()

	if err := s.jobRepo.Update(job); err != nil {
		return nil, NewCosturaErrorWithJob(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, job.ID, "Falha ao atualizar o lote")
	}

	s.audit(actor, job.ID, domain.JobActionUpdate, string(field), strconv.FormatBool(oldValue), strconv.FormatBool(req.Value))
	s.publishJob(job)

	return job, nil
}

func (s *Service) ToggleMany(actor Actor, req ToggleManyRequest) ([]*domain.Job, error) {
	field, ok := domain.ParseJobToggleField(req.Field)
	if !ok {
		return nil, NewCosturaError(ErrInvalidField, apiErrors.ErrInvalidRequest, fmt.Sprintf("Campo %q não pode ser alternado", req.Field))
	}

	if len(req.IDs) == 0 {
		return nil, NewCosturaError(ErrJobIDRequired, apiErrors.ErrMissingRequiredData, "Informe os lotes")
	}

	jobs, err := s.jobRepo.ListByIDs(req.IDs, actor.OwnerID)
	if err != nil {
		return nil, NewCosturaError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao consultar os lotes")
	}

	agora := s.now()
	updated := make([]*domain.Job, 0, len(jobs))

	for _, job := range jobs {
		oldValue := s.applyToggle(job, field, req.Value)
		job.UpdatedAt = agora

		if err := s.jobRepo.Update(job); err != nil {
			logrus.WithError(err).WithField("jobId", job.ID).Error("Falha ao atualizar lote em massa")
			continue
		}

		s.audit(actor, job.ID, domain.JobActionUpdate, string(field), strconv.FormatBool(oldValue), strconv.FormatBool(req.Value))
		s.publishJob(job)

		updated = append(updated, job)
	}

	return updated, nil
}

// applyToggle aplica o valor e os efeitos colaterais do campo, devolvendo o
// valor anterior para o log de auditoria.
func (s *Service) applyToggle(job *domain.Job, field domain.JobToggleField, value bool) (oldValue bool) {
	agora := s.now()

	stamp := func(when **time.Time) {
		if value {
			*when = &agora
		} else {
			*when = nil
		}
	}

	switch field {
	case domain.ToggleRecebidoConferido:
		oldValue = job.RecebidoConferido
		job.RecebidoConferido = value
		stamp(&job.DataRecebidoConferido)

	case domain.ToggleLotePronto:
		oldValue = job.LotePronto
		job.LotePronto = value
		stamp(&job.DataLotePronto)

	case domain.ToggleRecebido:
		oldValue = job.Recebido
		job.Recebido = value
		if value && !job.Aprovado {
			job.EmAnalise = true
		} else if !value {
			job.EmAnalise = false
		}

	case domain.ToggleAprovado:
		oldValue = job.Aprovado
		job.Aprovado = value
		if value {
			job.EmAnalise = false
		} else if job.Recebido {
			job.EmAnalise = true
		}

	case domain.TogglePago:
		oldValue = job.Pago
		job.Pago = value
		stamp(&job.DataPgto)

	case domain.ToggleEmenda:
		oldValue = job.Emenda
		job.Emenda = value
		s.recalcular(job)

	case domain.ToggleIsArchived:
		oldValue = job.IsArchived
		job.IsArchived = value
	}

	return oldValue
}

func (s *Service) UpdateSizes(actor Actor, req UpdateSizesRequest) (*domain.Job, error) {
	job, err := s.getRequiredJob(actor, req.ID)
	if err != nil {
		return nil, err
	}

	type change struct {
		field    string
		old, new float64
	}
	changes := make([]change, 0, 3)

	apply := func(field string, target *float64, value *float64) error {
		if value == nil || *value == *target {
			return nil
		}
		if *value <= 0 {
			return NewCosturaErrorWithJob(ErrInvalidDimension, apiErrors.ErrInvalidRequest, job.ID, fmt.Sprintf("%s deve ser positivo", field))
		}
		changes = append(changes, change{field: field, old: *target, new: *value})
		*target = *value
		return nil
	}

	if err := apply("qtd", &job.Qtd, req.Qtd); err != nil {
		return nil, err
	}
	if err := apply("larg", &job.Larg, req.Larg); err != nil {
		return nil, err
	}
	if err := apply("compr", &job.Compr, req.Compr); err != nil {
		return nil, err
	}

	if len(changes) == 0 {
		return job, nil
	}

	s.recalcular(job)
	job.UpdatedAt = s.now()

	if err := s.jobRepo.Update(job); err != nil {
		return nil, NewCosturaErrorWithJob(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, job.ID, "Falha ao atualizar o lote")
	}

	for _, c := range changes {
		s.audit(actor, job.ID, domain.JobActionUpdate, c.field,
			strconv.FormatFloat(c.old, 'f', -1, 64),
			strconv.FormatFloat(c.new, 'f', -1, 64))
	}
	s.publishJob(job)

	return job, nil
}

func (s *Service) UpdateRate(actor Actor, id string, rate int) (*domain.Job, error) {
	if rate < 1 || rate > 10 {
		return nil, NewCosturaError(ErrInvalidRate, apiErrors.ErrInvalidRequest, strconv.Itoa(rate))
	}

	job, err := s.getRequiredJob(actor, id)
	if err != nil {
		return nil, err
	}

	oldValue := ""
	if job.RateLote != nil {
		oldValue = strconv.Itoa(*job.RateLote)
	}

	job.RateLote = &rate
	job.UpdatedAt = s.now()

	if err := s.jobRepo.Update(job); err != nil {
		return nil, NewCosturaErrorWithJob(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, job.ID, "Falha ao atualizar o lote")
	}

	s.audit(actor, job.ID, domain.JobActionUpdate, "rateLote", oldValue, strconv.Itoa(rate))
	s.publishJob(job)

	return job, nil
}

func (s *Service) ListJobs(actor Actor, req ListJobsRequest) ([]*domain.Job, error) {
	jobs, err := s.jobRepo.List(repository.JobFilter{
		OwnerID:         actor.OwnerID,
		FaccionistaID:   req.FaccionistaID,
		Lote:            req.Lote,
		From:            req.From,
		To:              req.To,
		IncludeArchived: req.IncludeArchived,
	})
	if err != nil {
		return nil, NewCosturaError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao listar os lotes")
	}

	return jobs, nil
}

func (s *Service) ListChanges(actor Actor, req ListChangesRequest) ([]*domain.JobChange, error) {
	changes, err := s.logRepo.List(repository.JobChangeFilter{
		OwnerID: actor.OwnerID,
		JobID:   req.JobID,
		Lote:    req.Lote,
		From:    req.From,
		To:      req.To,
		Limit:   req.Limit,
	})
	if err != nil {
		return nil, NewCosturaError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao listar o histórico")
	}

	return changes, nil
}

func (s *Service) getRequiredJob(actor Actor, id string) (*domain.Job, error) {
	if id == "" {
		return nil, NewCosturaError(ErrJobIDRequired, apiErrors.ErrMissingRequiredData, "Informe o lote")
	}

	job, err := s.jobRepo.GetByID(id, actor.OwnerID)
	if err != nil {
		return nil, NewCosturaErrorWithJob(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, id, "Falha ao consultar o lote")
	}
	if job == nil {
		return nil, NewCosturaErrorWithJob(ErrJobNotFound, apiErrors.ErrNotFound, id, "Lote não encontrado")
	}

	return job, nil
}

// audit grava a entrada no log de alterações. Falha de auditoria é registrada
// e seguimos em frente: a mutação principal já foi aplicada e não volta.
func (s *Service) audit(actor Actor, jobID, action, field, oldValue, newValue string) {
	id, err := utils.GenerateID()
	if err != nil {
		logrus.WithError(err).Error("Falha ao gerar id da entrada de auditoria")
		return
	}

	entry := &domain.JobChange{
		ID:        id,
		JobID:     jobID,
		UserID:    actor.UserID,
		Action:    action,
		Field:     field,
		OldValue:  oldValue,
		NewValue:  newValue,
		OwnerID:   actor.OwnerID,
		Timestamp: s.now(),
	}

	if err := s.logRepo.Append(entry); err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"jobId": jobID,
			"campo": field,
		}).Error("Falha ao gravar entrada de auditoria")
	}
}

func (s *Service) publishJob(job *domain.Job) {
	if s.publisher == nil {
		return
	}
	s.publisher.Publish(sse.Event{Name: EventJobUpdated, Data: job})
}
