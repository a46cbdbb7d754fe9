package expedicao

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/lrodrigues/costura-backoffice-api/infrastructure/repository/mocks"
	"github.com/lrodrigues/costura-backoffice-api/internal/domain"
	"github.com/lrodrigues/costura-backoffice-api/pkg/sse"
	"github.com/lrodrigues/costura-backoffice-api/pkg/utils"
)

type publisherSpy struct {
	events []sse.Event
}

func (p *publisherSpy) Publish(event sse.Event) {
	p.events = append(p.events, event)
}

// 10 de março de 2025, 14:30 local
var referencia = time.Date(2025, 3, 10, 14, 30, 0, 0, time.Local)

func hojeZerado() time.Time {
	return time.Date(2025, 3, 10, 0, 0, 0, 0, time.Local)
}

func newFixedService(repo *mocks.MockExpedicaoRepository, publisher *publisherSpy) *Service {
	service := NewService(repo, publisher)
	service.now = func() time.Time { return referencia }
	return service
}

func sellerPtr(s domain.ExpedicaoSeller) *domain.ExpedicaoSeller {
	return &s
}

func intPtr(i int) *int {
	return &i
}

func TestRegistrarComDiaAberto(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockExpedicaoRepository(ctrl)
	publisher := &publisherSpy{}
	service := newFixedService(repo, publisher)

	repo.EXPECT().GetRegistroByOrderID("PED-1").Return(nil, nil)
	repo.EXPECT().GetDiaEncerrado(hojeZerado()).Return(nil, nil)

	var saved *domain.ExpedicaoRegistro
	repo.EXPECT().
		CreateRegistro(gomock.Any()).
		DoAndReturn(func(registro *domain.ExpedicaoRegistro) error {
			saved = registro
			return nil
		})

	registro, err := service.Registrar(RegistrarRequest{
		OrderID: "PED-1",
		MesaID:  domain.MesaM2,
		Seller:  sellerPtr(domain.SellerShopee),
	})
	require.NoError(t, err)

	assert.Equal(t, hojeZerado(), registro.DataContabilizacao)
	assert.Equal(t, domain.MesaM2, registro.MesaID)
	assert.Equal(t, saved, registro)

	require.Len(t, publisher.events, 1)
	assert.Equal(t, EventRegistro, publisher.events[0].Name)
}

func TestRegistrarComDiaEncerradoContabilizaAmanha(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockExpedicaoRepository(ctrl)
	service := newFixedService(repo, &publisherSpy{})

	repo.EXPECT().GetRegistroByOrderID("PED-2").Return(nil, nil)
	repo.EXPECT().GetDiaEncerrado(hojeZerado()).Return(&domain.ExpedicaoDiaEncerrado{ID: "d1", Data: hojeZerado()}, nil)
	repo.EXPECT().CreateRegistro(gomock.Any()).Return(nil)

	registro, err := service.Registrar(RegistrarRequest{OrderID: "PED-2", MesaID: domain.MesaM1})
	require.NoError(t, err)

	amanha := hojeZerado().AddDate(0, 0, 1)
	assert.Equal(t, amanha, registro.DataContabilizacao)
}

func TestRegistrarDuplicadoCarregaRegistroExistente(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockExpedicaoRepository(ctrl)
	service := newFixedService(repo, &publisherSpy{})

	existente := &domain.ExpedicaoRegistro{ID: "r1", OrderID: "PED-3", MesaID: domain.MesaM4}
	repo.EXPECT().GetRegistroByOrderID("PED-3").Return(existente, nil)

	_, err := service.Registrar(RegistrarRequest{OrderID: "PED-3", MesaID: domain.MesaM1})
	require.Error(t, err)

	var dup *DuplicateError
	require.True(t, errors.As(err, &dup))
	assert.Equal(t, existente, dup.Existing)
}

func TestRegistrarValidacoes(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockExpedicaoRepository(ctrl)
	service := newFixedService(repo, &publisherSpy{})

	_, err := service.Registrar(RegistrarRequest{OrderID: "", MesaID: domain.MesaM1})
	assert.True(t, errors.Is(err, ErrOrderIDRequired))

	_, err = service.Registrar(RegistrarRequest{OrderID: "PED-4", MesaID: "M9"})
	assert.True(t, errors.Is(err, ErrInvalidMesa))

	invalido := domain.ExpedicaoSeller("ebay")
	_, err = service.Registrar(RegistrarRequest{OrderID: "PED-4", MesaID: domain.MesaM1, Seller: &invalido})
	assert.True(t, errors.Is(err, ErrInvalidSeller))
}

func TestEncerrarDiaCongelaTotal(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockExpedicaoRepository(ctrl)
	publisher := &publisherSpy{}
	service := newFixedService(repo, publisher)

	repo.EXPECT().GetDiaEncerrado(hojeZerado()).Return(nil, nil)
	repo.EXPECT().CountByDataContabilizacao(hojeZerado()).Return(42, nil)
	repo.EXPECT().CreateDiaEncerrado(gomock.Any()).Return(nil)

	dia, err := service.EncerrarDia(nil, "operador-1")
	require.NoError(t, err)

	assert.Equal(t, 42, dia.TotalPacotes)
	assert.Equal(t, "operador-1", dia.EncerradoPor)
	assert.Equal(t, hojeZerado(), dia.Data)

	require.Len(t, publisher.events, 1)
	assert.Equal(t, EventDiaEncerrado, publisher.events[0].Name)
}

func TestEncerrarDiaFuturoRejeitado(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockExpedicaoRepository(ctrl)
	service := newFixedService(repo, &publisherSpy{})

	futuro := referencia.AddDate(0, 0, 1)
	_, err := service.EncerrarDia(&futuro, "operador-1")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrFutureDate))
}

func TestEncerrarDiaJaEncerrado(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockExpedicaoRepository(ctrl)
	service := newFixedService(repo, &publisherSpy{})

	existente := &domain.ExpedicaoDiaEncerrado{ID: "d1", Data: hojeZerado(), TotalPacotes: 10}
	repo.EXPECT().GetDiaEncerrado(hojeZerado()).Return(existente, nil)

	_, err := service.EncerrarDia(nil, "operador-1")
	require.Error(t, err)

	var closed *AlreadyClosedError
	require.True(t, errors.As(err, &closed))
	assert.Equal(t, existente, closed.Existing)
}

func TestObterDiaEncerrado(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockExpedicaoRepository(ctrl)
	service := newFixedService(repo, &publisherSpy{})

	existente := &domain.ExpedicaoDiaEncerrado{ID: "d1", Data: hojeZerado(), TotalPacotes: 10}
	repo.EXPECT().GetDiaEncerrado(hojeZerado()).Return(existente, nil)

	dia, err := service.ObterDiaEncerrado(nil)
	require.NoError(t, err)
	assert.Equal(t, existente, dia)

	ontem := hojeZerado().AddDate(0, 0, -1)
	repo.EXPECT().GetDiaEncerrado(ontem).Return(nil, nil)

	dia, err = service.ObterDiaEncerrado(&ontem)
	require.NoError(t, err)
	assert.Nil(t, dia)
}

func TestObterMetaSemConfiguracaoDevolveDefaults(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockExpedicaoRepository(ctrl)
	service := newFixedService(repo, &publisherSpy{})

	repo.EXPECT().GetDiaEncerrado(hojeZerado()).Return(nil, nil)
	repo.EXPECT().GetMeta(hojeZerado()).Return(nil, nil)

	meta, err := service.ObterMeta(nil)
	require.NoError(t, err)

	assert.Equal(t, domain.DefaultHorariosColeta(), meta.HorariosColeta)
	assert.Nil(t, meta.Total)
	assert.Empty(t, meta.TipoConfiguracao)
}

func TestConfigurarMetaComDiaEncerradoUsaAmanha(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockExpedicaoRepository(ctrl)
	service := newFixedService(repo, &publisherSpy{})

	repo.EXPECT().GetDiaEncerrado(hojeZerado()).Return(&domain.ExpedicaoDiaEncerrado{ID: "d1"}, nil)

	var saved *domain.ExpedicaoMeta
	repo.EXPECT().
		UpsertMeta(gomock.Any()).
		DoAndReturn(func(meta *domain.ExpedicaoMeta) error {
			saved = meta
			return nil
		})

	meta, err := service.ConfigurarMeta(ConfigurarMetaRequest{
		TipoConfiguracao: domain.MetaTotal,
		Total:            intPtr(300),
	})
	require.NoError(t, err)

	amanha := hojeZerado().AddDate(0, 0, 1)
	assert.Equal(t, amanha, meta.Data)
	assert.Equal(t, 300, *saved.Total)
	assert.Nil(t, saved.PorSeller)
}

func TestConfigurarMetaModoInvalido(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockExpedicaoRepository(ctrl)
	service := newFixedService(repo, &publisherSpy{})

	_, err := service.ConfigurarMeta(ConfigurarMetaRequest{TipoConfiguracao: "percentual"})
	assert.True(t, errors.Is(err, ErrInvalidMetaMode))

	_, err = service.ConfigurarMeta(ConfigurarMetaRequest{TipoConfiguracao: domain.MetaTotal})
	assert.True(t, errors.Is(err, ErrInvalidMetaMode))
}

func TestProdutividadeSeparaDataContabilDeRelogio(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockExpedicaoRepository(ctrl)
	service := newFixedService(repo, &publisherSpy{})

	registros := []*domain.ExpedicaoRegistro{
		{ID: "1", MesaID: domain.MesaM1, Seller: sellerPtr(domain.SellerMercadoLivre), CreatedAt: referencia.Add(-3 * time.Hour)},
		{ID: "2", MesaID: domain.MesaM1, Seller: sellerPtr(domain.SellerMercadoLivre), CreatedAt: referencia.Add(-30 * time.Minute)},
		{ID: "3", MesaID: domain.MesaM2, Seller: sellerPtr(domain.SellerShopee), CreatedAt: referencia.Add(-10 * time.Minute)},
		{ID: "4", MesaID: domain.MesaM2, CreatedAt: referencia}, // sem seller conta como outros
	}

	meta := &domain.ExpedicaoMeta{
		TipoConfiguracao: domain.MetaPorSeller,
		PorSeller: &domain.MetaPorSellerValores{
			MercadoLivre: intPtr(4),
			Shopee:       intPtr(2),
		},
	}

	repo.EXPECT().GetDiaEncerrado(hojeZerado()).Return(nil, nil).Times(2)
	repo.EXPECT().ListByDataContabilizacao(hojeZerado()).Return(registros, nil)
	repo.EXPECT().GetMeta(hojeZerado()).Return(meta, nil)

	umaHoraAtras := referencia.Add(-time.Hour)
	repo.EXPECT().CountByMesaSince(domain.MesaM1, umaHoraAtras).Return(1, nil)
	repo.EXPECT().CountByMesaSince(domain.MesaM2, umaHoraAtras).Return(2, nil)
	repo.EXPECT().CountByMesaSince(domain.MesaM3, umaHoraAtras).Return(0, nil)
	repo.EXPECT().CountByMesaSince(domain.MesaM4, umaHoraAtras).Return(0, nil)

	painel, err := service.Produtividade(nil)
	require.NoError(t, err)

	assert.Equal(t, 4, painel.TotalGeral)
	assert.False(t, painel.DiaEncerrado)

	ml := painel.PorSeller[string(domain.SellerMercadoLivre)]
	assert.Equal(t, 2, ml.Atual)
	assert.Equal(t, 4, ml.Meta)
	assert.Equal(t, 50.0, ml.Porcentagem)

	outros := painel.PorSeller[string(domain.SellerOutros)]
	assert.Equal(t, 1, outros.Atual)
	assert.Equal(t, 0, outros.Meta)

	m1 := painel.PorMesa[string(domain.MesaM1)]
	assert.Equal(t, 2, m1.TotalDia)
	assert.Equal(t, 1, m1.RitmoAtual)
	assert.Equal(t, 1, m1.PorHora["11:00 às 12:00"]) // 14:30 - 3h
	assert.Equal(t, 1, m1.PorHora["14:00 às 15:00"])

	m2 := painel.PorMesa[string(domain.MesaM2)]
	assert.Equal(t, 2, m2.TotalDia)
	assert.Equal(t, 2, m2.RitmoAtual)

	// meta por canal: 4 de 6 pacotes
	require.NotNil(t, painel.PorcentagemConcluida)
	assert.Equal(t, 66.67, *painel.PorcentagemConcluida)
}

func TestProdutividadeComDiaEncerradoMostraAmanha(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockExpedicaoRepository(ctrl)
	service := newFixedService(repo, &publisherSpy{})

	amanha := utils.NextDay(hojeZerado())
	registrosAmanha := []*domain.ExpedicaoRegistro{
		{ID: "1", MesaID: domain.MesaM1, CreatedAt: referencia},
		{ID: "2", MesaID: domain.MesaM3, CreatedAt: referencia},
	}

	// hoje encerrado: o painel sem data explícita já contabiliza amanhã
	repo.EXPECT().GetDiaEncerrado(hojeZerado()).Return(&domain.ExpedicaoDiaEncerrado{TotalPacotes: 120}, nil).Times(2)
	repo.EXPECT().ListByDataContabilizacao(amanha).Return(registrosAmanha, nil)
	repo.EXPECT().GetMeta(amanha).Return(nil, nil)
	repo.EXPECT().CountByMesaSince(gomock.Any(), gomock.Any()).Return(0, nil).Times(4)

	painel, err := service.Produtividade(nil)
	require.NoError(t, err)

	assert.Equal(t, utils.FormatDate(amanha), painel.Data)
	assert.True(t, painel.DiaEncerrado)
	assert.Equal(t, 2, painel.TotalGeral)
	assert.Nil(t, painel.PorcentagemConcluida)
}

func TestProdutividadeDataExplicitaUsaEncerramentoDeHoje(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockExpedicaoRepository(ctrl)
	service := newFixedService(repo, &publisherSpy{})

	ontem := hojeZerado().AddDate(0, 0, -1)

	repo.EXPECT().ListByDataContabilizacao(ontem).Return(nil, nil)
	repo.EXPECT().GetDiaEncerrado(hojeZerado()).Return(nil, nil)
	repo.EXPECT().GetMeta(ontem).Return(nil, nil)
	repo.EXPECT().CountByMesaSince(gomock.Any(), gomock.Any()).Return(0, nil).Times(4)

	painel, err := service.Produtividade(&ontem)
	require.NoError(t, err)

	assert.Equal(t, utils.FormatDate(ontem), painel.Data)
	assert.False(t, painel.DiaEncerrado)
	assert.Equal(t, 0, painel.TotalGeral)
}
