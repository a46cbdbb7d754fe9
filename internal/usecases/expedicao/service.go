package expedicao

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/lrodrigues/costura-backoffice-api/infrastructure/repository"
	"github.com/lrodrigues/costura-backoffice-api/internal/domain"
	"github.com/lrodrigues/costura-backoffice-api/pkg/apiErrors"
	"github.com/lrodrigues/costura-backoffice-api/pkg/sse"
	"github.com/lrodrigues/costura-backoffice-api/pkg/utils"
)

const (
	EventRegistro     = "expedicao:update"
	EventDiaEncerrado = "expedicao:dia_encerrado"
)

type RegistrarRequest struct {
	OrderID string                  `json:"orderId"`
	MesaID  domain.MesaID           `json:"mesaId"`
	Seller  *domain.ExpedicaoSeller `json:"seller"`
}

type ConfigurarMetaRequest struct {
	Data             *time.Time                   `json:"-"`
	TipoConfiguracao string                       `json:"tipoConfiguracao"`
	Total            *int                         `json:"total"`
	PorSeller        *domain.MetaPorSellerValores `json:"porSeller"`
	HorariosColeta   *domain.HorariosColeta       `json:"horariosColeta"`
}

type ExpedicaoService interface {
	Verificar(orderID string) (*domain.ExpedicaoRegistro, error)
	Registrar(req RegistrarRequest) (*domain.ExpedicaoRegistro, error)
	EncerrarDia(data *time.Time, encerradoPor string) (*domain.ExpedicaoDiaEncerrado, error)
	ObterDiaEncerrado(data *time.Time) (*domain.ExpedicaoDiaEncerrado, error)
	ObterMeta(data *time.Time) (*domain.ExpedicaoMeta, error)
	ConfigurarMeta(req ConfigurarMetaRequest) (*domain.ExpedicaoMeta, error)
	Produtividade(data *time.Time) (*domain.Produtividade, error)
}

type Service struct {
	repo      repository.ExpedicaoRepository
	publisher sse.Publisher

	// injetável para os testes de virada de dia
	now func() time.Time
}

func NewService(repo repository.ExpedicaoRepository, publisher sse.Publisher) *Service {
	return &Service{
		repo:      repo,
		publisher: publisher,
		now:       time.Now,
	}
}

func (s *Service) Verificar(orderID string) (*domain.ExpedicaoRegistro, error) {
	if orderID == "" {
		return nil, NewExpedicaoError(ErrOrderIDRequired, apiErrors.ErrMissingRequiredData, "Informe o código de barras")
	}

	registro, err := s.repo.GetRegistroByOrderID(orderID)
	if err != nil {
		return nil, NewExpedicaoError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao consultar o registro")
	}

	return registro, nil
}

// Registrar conta um pacote bipado em uma mesa. A data contábil é decidida
// aqui, no momento da bipagem: hoje, ou amanhã quando o dia de hoje já foi
// encerrado. Ela nunca é recalculada depois.
func (s *Service) Registrar(req RegistrarRequest) (*domain.ExpedicaoRegistro, error) {
	if req.OrderID == "" {
		return nil, NewExpedicaoError(ErrOrderIDRequired, apiErrors.ErrMissingRequiredData, "Informe o código de barras")
	}

	if !req.MesaID.Valid() {
		return nil, NewExpedicaoError(ErrInvalidMesa, apiErrors.ErrInvalidRequest, fmt.Sprintf("Mesa %q não existe", req.MesaID))
	}

	if req.Seller != nil && !req.Seller.Valid() {
		return nil, NewExpedicaoError(ErrInvalidSeller, apiErrors.ErrInvalidRequest, fmt.Sprintf("Canal %q não reconhecido", *req.Seller))
	}

	existing, err := s.repo.GetRegistroByOrderID(req.OrderID)
	if err != nil {
		return nil, NewExpedicaoError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao consultar o registro")
	}
	if existing != nil {
		return nil, &DuplicateError{Existing: existing}
	}

	dataContabilizacao, err := s.dataContabilizacaoEfetiva()
	if err != nil {
		return nil, err
	}

	id, err := utils.GenerateID()
	if err != nil {
		return nil, err
	}

	registro := &domain.ExpedicaoRegistro{
		ID:                 id,
		OrderID:            req.OrderID,
		MesaID:             req.MesaID,
		Seller:             req.Seller,
		DataContabilizacao: dataContabilizacao,
		CreatedAt:          s.now(),
	}

	if err := s.repo.CreateRegistro(registro); err != nil {
		return nil, NewExpedicaoError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao salvar o registro")
	}

	s.publish(EventRegistro, registro)

	return registro, nil
}

// EncerrarDia congela os totais da data. O total de pacotes gravado é o
// retrato do momento do encerramento; bipagens posteriores vão para o dia
// seguinte e não alteram o total congelado.
func (s *Service) EncerrarDia(data *time.Time, encerradoPor string) (*domain.ExpedicaoDiaEncerrado, error) {
	hoje := utils.StartOfDay(s.now())

	alvo := hoje
	if data != nil {
		alvo = utils.StartOfDay(*data)
	}

	if alvo.After(hoje) {
		return nil, NewExpedicaoError(ErrFutureDate, apiErrors.ErrInvalidRequest, utils.FormatDate(alvo))
	}

	existing, err := s.repo.GetDiaEncerrado(alvo)
	if err != nil {
		return nil, NewExpedicaoError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao consultar o encerramento")
	}
	if existing != nil {
		return nil, &AlreadyClosedError{Existing: existing}
	}

	total, err := s.repo.CountByDataContabilizacao(alvo)
	if err != nil {
		return nil, NewExpedicaoError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao contar os pacotes do dia")
	}

	id, err := utils.GenerateID()
	if err != nil {
		return nil, err
	}

	agora := s.now()
	dia := &domain.ExpedicaoDiaEncerrado{
		ID:           id,
		Data:         alvo,
		EncerradoEm:  agora,
		EncerradoPor: encerradoPor,
		TotalPacotes: total,
		CreatedAt:    agora,
	}

	if err := s.repo.CreateDiaEncerrado(dia); err != nil {
		return nil, NewExpedicaoError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao salvar o encerramento")
	}

	s.publish(EventDiaEncerrado, dia)

	return dia, nil
}

// ObterDiaEncerrado devolve o encerramento da data, nil quando o dia ainda
// está aberto.
func (s *Service) ObterDiaEncerrado(data *time.Time) (*domain.ExpedicaoDiaEncerrado, error) {
	alvo := utils.StartOfDay(s.now())
	if data != nil {
		alvo = utils.StartOfDay(*data)
	}

	dia, err := s.repo.GetDiaEncerrado(alvo)
	if err != nil {
		return nil, NewExpedicaoError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao consultar o encerramento")
	}

	return dia, nil
}

// ObterMeta devolve a meta da data contábil efetiva (ou da data pedida).
// Sem configuração salva, devolve os defaults de horário sem meta numérica.
func (s *Service) ObterMeta(data *time.Time) (*domain.ExpedicaoMeta, error) {
	alvo, err := s.resolveData(data)
	if err != nil {
		return nil, err
	}

	meta, err := s.repo.GetMeta(alvo)
	if err != nil {
		return nil, NewExpedicaoError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao consultar a meta")
	}

	if meta == nil {
		return &domain.ExpedicaoMeta{
			Data:           alvo,
			HorariosColeta: domain.DefaultHorariosColeta(),
		}, nil
	}

	return meta, nil
}

func (s *Service) ConfigurarMeta(req ConfigurarMetaRequest) (*domain.ExpedicaoMeta, error) {
	switch req.TipoConfiguracao {
	case domain.MetaTotal:
		if req.Total == nil || *req.Total <= 0 {
			return nil, NewExpedicaoError(ErrInvalidMetaMode, apiErrors.ErrInvalidRequest, "Meta total exige um valor positivo")
		}
		req.PorSeller = nil
	case domain.MetaPorSeller:
		if req.PorSeller == nil {
			return nil, NewExpedicaoError(ErrInvalidMetaMode, apiErrors.ErrInvalidRequest, "Meta por canal exige os valores por seller")
		}
		req.Total = nil
	default:
		return nil, NewExpedicaoError(ErrInvalidMetaMode, apiErrors.ErrInvalidRequest, fmt.Sprintf("Modo %q não reconhecido", req.TipoConfiguracao))
	}

	alvo, err := s.resolveData(req.Data)
	if err != nil {
		return nil, err
	}

	horarios := domain.DefaultHorariosColeta()
	if req.HorariosColeta != nil {
		horarios = *req.HorariosColeta
	}

	id, err := utils.GenerateID()
	if err != nil {
		return nil, err
	}

	agora := s.now()
	meta := &domain.ExpedicaoMeta{
		ID:               id,
		Data:             alvo,
		TipoConfiguracao: req.TipoConfiguracao,
		Total:            req.Total,
		PorSeller:        req.PorSeller,
		HorariosColeta:   horarios,
		CreatedAt:        agora,
		UpdatedAt:        agora,
	}

	if err := s.repo.UpsertMeta(meta); err != nil {
		return nil, NewExpedicaoError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao salvar a meta")
	}

	return meta, nil
}

const (
	horaInicioExpediente = 7
	horaFimExpediente    = 17
)

// Produtividade monta o painel da data contábil efetiva: com hoje encerrado,
// o painel já mostra amanhã, que é onde as novas bipagens caem. Totais e
// distribuição por mesa seguem a data contábil; o ritmo da última hora e as
// faixas horárias seguem o horário real da bipagem (created_at), de
// propósito: medem cadência física, não contabilidade.
func (s *Service) Produtividade(data *time.Time) (*domain.Produtividade, error) {
	alvo, err := s.resolveData(data)
	if err != nil {
		return nil, err
	}

	registros, err := s.repo.ListByDataContabilizacao(alvo)
	if err != nil {
		return nil, NewExpedicaoError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao listar os registros do dia")
	}

	// o flag reflete o encerramento de hoje, não o da data consultada
	dia, err := s.repo.GetDiaEncerrado(utils.StartOfDay(s.now()))
	if err != nil {
		return nil, NewExpedicaoError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao consultar o encerramento")
	}

	meta, err := s.repo.GetMeta(alvo)
	if err != nil {
		return nil, NewExpedicaoError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao consultar a meta")
	}

	totalGeral := len(registros)

	painel := &domain.Produtividade{
		Data:         utils.FormatDate(alvo),
		DiaEncerrado: dia != nil,
		TotalGeral:   totalGeral,
		PorSeller:    s.progressoPorSeller(registros, meta),
		PorMesa:      s.produtividadePorMesa(registros),
	}

	if meta != nil {
		painel.Meta = &domain.MetaResumo{
			TipoConfiguracao: meta.TipoConfiguracao,
			Total:            meta.Total,
			PorSeller:        meta.PorSeller,
		}

		if metaTotal := metaTotalPacotes(meta); metaTotal > 0 {
			pct := utils.RoundWithTwoDecimalPlace(float64(totalGeral) / float64(metaTotal) * 100)
			painel.PorcentagemConcluida = &pct
		}
	}

	return painel, nil
}

func (s *Service) progressoPorSeller(registros []*domain.ExpedicaoRegistro, meta *domain.ExpedicaoMeta) map[string]domain.SellerProgresso {
	contagem := make(map[domain.ExpedicaoSeller]int)
	for _, registro := range registros {
		seller := domain.SellerOutros
		if registro.Seller != nil {
			seller = *registro.Seller
		}
		contagem[seller]++
	}

	progresso := make(map[string]domain.SellerProgresso, len(domain.ExpedicaoSellers))
	for _, seller := range domain.ExpedicaoSellers {
		item := domain.SellerProgresso{Atual: contagem[seller]}

		if goal := metaDoSeller(meta, seller); goal > 0 {
			item.Meta = goal
			item.Porcentagem = utils.RoundWithTwoDecimalPlace(float64(item.Atual) / float64(goal) * 100)
		}

		progresso[string(seller)] = item
	}

	return progresso
}

func (s *Service) produtividadePorMesa(registros []*domain.ExpedicaoRegistro) map[string]domain.MesaProdutividade {
	umaHoraAtras := s.now().Add(-time.Hour)

	porMesa := make(map[string]domain.MesaProdutividade, len(domain.Mesas))

	for _, mesa := range domain.Mesas {
		item := domain.MesaProdutividade{
			PorHora: make(map[string]int),
		}

		for hora := horaInicioExpediente; hora < horaFimExpediente; hora++ {
			item.PorHora[faixaHoraria(hora)] = 0
		}

		for _, registro := range registros {
			if registro.MesaID != mesa {
				continue
			}

			item.TotalDia++

			hora := registro.CreatedAt.Hour()
			if hora >= horaInicioExpediente && hora < horaFimExpediente {
				item.PorHora[faixaHoraria(hora)]++
			}
		}

		ritmo, err := s.repo.CountByMesaSince(mesa, umaHoraAtras)
		if err != nil {
			logrus.WithError(err).WithField("mesa", mesa).Warn("Falha ao calcular o ritmo da mesa")
		} else {
			item.RitmoAtual = ritmo
		}

		porMesa[string(mesa)] = item
	}

	return porMesa
}

// faixaHoraria é o rótulo da faixa usado pelos painéis ("07:00 às 08:00")
func faixaHoraria(hora int) string {
	return fmt.Sprintf("%02d:00 às %02d:00", hora, hora+1)
}

// dataContabilizacaoEfetiva é hoje, ou amanhã quando hoje já foi encerrado.
// A decisão é tomada a cada chamada; nunca há rolagem automática na virada
// da meia-noite.
func (s *Service) dataContabilizacaoEfetiva() (time.Time, error) {
	hoje := utils.StartOfDay(s.now())

	dia, err := s.repo.GetDiaEncerrado(hoje)
	if err != nil {
		return time.Time{}, NewExpedicaoError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao consultar o encerramento")
	}

	if dia != nil {
		return utils.NextDay(hoje), nil
	}

	return hoje, nil
}

func (s *Service) resolveData(data *time.Time) (time.Time, error) {
	if data != nil {
		return utils.StartOfDay(*data), nil
	}
	return s.dataContabilizacaoEfetiva()
}

func (s *Service) publish(name string, payload any) {
	if s.publisher == nil {
		return
	}
	s.publisher.Publish(sse.Event{Name: name, Data: payload})
}

func metaDoSeller(meta *domain.ExpedicaoMeta, seller domain.ExpedicaoSeller) int {
	if meta == nil || meta.TipoConfiguracao != domain.MetaPorSeller || meta.PorSeller == nil {
		return 0
	}

	var valor *int
	switch seller {
	case domain.SellerMercadoLivre:
		valor = meta.PorSeller.MercadoLivre
	case domain.SellerShopee:
		valor = meta.PorSeller.Shopee
	case domain.SellerAmazon:
		valor = meta.PorSeller.Amazon
	case domain.SellerOutros:
		valor = meta.PorSeller.Outros
	}

	if valor == nil {
		return 0
	}
	return *valor
}

func metaTotalPacotes(meta *domain.ExpedicaoMeta) int {
	switch meta.TipoConfiguracao {
	case domain.MetaTotal:
		if meta.Total != nil {
			return *meta.Total
		}
	case domain.MetaPorSeller:
		if meta.PorSeller == nil {
			return 0
		}
		total := 0
		for _, valor := range []*int{
			meta.PorSeller.MercadoLivre,
			meta.PorSeller.Shopee,
			meta.PorSeller.Amazon,
			meta.PorSeller.Outros,
		} {
			if valor != nil {
				total += *valor
			}
		}
		return total
	}
	return 0
}
