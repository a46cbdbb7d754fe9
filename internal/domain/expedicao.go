package domain

import "time"

// MesaID identifica uma das quatro mesas físicas de empacotamento
type MesaID string

const (
	MesaM1 MesaID = "M1"
	MesaM2 MesaID = "M2"
	MesaM3 MesaID = "M3"
	MesaM4 MesaID = "M4"
)

// Mesas lista as mesas na ordem usada pelos painéis
var Mesas = []MesaID{MesaM1, MesaM2, MesaM3, MesaM4}

func (m MesaID) Valid() bool {
	switch m {
	case MesaM1, MesaM2, MesaM3, MesaM4:
		return true
	}
	return false
}

// ExpedicaoSeller é o canal de venda de um pacote escaneado
type ExpedicaoSeller string

const (
	SellerMercadoLivre ExpedicaoSeller = "mercadoLivre"
	SellerShopee       ExpedicaoSeller = "shopee"
	SellerAmazon       ExpedicaoSeller = "amazon"
	SellerOutros       ExpedicaoSeller = "outros"
)

var ExpedicaoSellers = []ExpedicaoSeller{SellerMercadoLivre, SellerShopee, SellerAmazon, SellerOutros}

func (s ExpedicaoSeller) Valid() bool {
	switch s {
	case SellerMercadoLivre, SellerShopee, SellerAmazon, SellerOutros:
		return true
	}
	return false
}

// ExpedicaoRegistro é um pacote escaneado em uma mesa.
// OrderID é único globalmente; DataContabilizacao é atribuída no momento do
// registro conforme o estado de encerramento do dia e nunca muda depois.
type ExpedicaoRegistro struct {
	ID                 string           `json:"id"`
	OrderID            string           `json:"orderId"`
	MesaID             MesaID           `json:"mesaId"`
	Seller             *ExpedicaoSeller `json:"seller"`
	DataContabilizacao time.Time        `json:"dataContabilizacao"`
	CreatedAt          time.Time        `json:"createdAt"`
}

// ExpedicaoDiaEncerrado congela os totais de uma data. No máximo um
// encerramento por data; uma vez criado é imutável.
type ExpedicaoDiaEncerrado struct {
	ID           string    `json:"id"`
	Data         time.Time `json:"data"`
	EncerradoEm  time.Time `json:"encerradoEm"`
	EncerradoPor string    `json:"encerradoPor"`
	TotalPacotes int       `json:"totalPacotes"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Modos de configuração da meta diária
const (
	MetaTotal     = "total"
	MetaPorSeller = "porSeller"
)

// MetaPorSellerValores traz as metas individuais por canal
type MetaPorSellerValores struct {
	MercadoLivre *int `json:"mercadoLivre"`
	Shopee       *int `json:"shopee"`
	Amazon       *int `json:"amazon"`
	Outros       *int `json:"outros"`
}

// HorariosColeta são os horários de coleta por canal (HH:MM)
type HorariosColeta struct {
	MercadoLivre string `json:"mercadoLivre"`
	Shopee       string `json:"shopee"`
	Amazon       string `json:"amazon"`
	Outros       string `json:"outros"`
}

// DefaultHorariosColeta replica os horários padrão da operação
func DefaultHorariosColeta() HorariosColeta {
	return HorariosColeta{
		MercadoLivre: "11:00",
		Shopee:       "14:00",
		Amazon:       "16:00",
		Outros:       "17:30",
	}
}

// ExpedicaoMeta é a meta de pacotes de uma data. Exatamente um entre Total e
// PorSeller é preenchido, conforme TipoConfiguracao.
type ExpedicaoMeta struct {
	ID               string                `json:"id"`
	Data             time.Time             `json:"data"`
	TipoConfiguracao string                `json:"tipoConfiguracao"`
	Total            *int                  `json:"total"`
	PorSeller        *MetaPorSellerValores `json:"porSeller"`
	HorariosColeta   HorariosColeta        `json:"horariosColeta"`
	CreatedAt        time.Time             `json:"createdAt"`
	UpdatedAt        time.Time             `json:"updatedAt"`
}

// SellerProgresso é o avanço de um canal frente à meta configurada
type SellerProgresso struct {
	Atual       int     `json:"atual"`
	Meta        int     `json:"meta"`
	Porcentagem float64 `json:"porcentagem"`
}

// MesaProdutividade resume uma mesa: total do dia contábil, ritmo da última
// hora (relógio de parede) e distribuição por faixa horária de criação.
type MesaProdutividade struct {
	TotalDia   int            `json:"totalDia"`
	RitmoAtual int            `json:"ritmoAtual"`
	PorHora    map[string]int `json:"porHora"`
}

// MetaResumo é a meta projetada na resposta de produtividade
type MetaResumo struct {
	TipoConfiguracao string                `json:"tipoConfiguracao"`
	Total            *int                  `json:"total"`
	PorSeller        *MetaPorSellerValores `json:"porSeller"`
}

// Produtividade é o painel do dia contábil resolvido
type Produtividade struct {
	Data                 string                       `json:"data"`
	DiaEncerrado         bool                         `json:"diaEncerrado"`
	Meta                 *MetaResumo                  `json:"meta"`
	TotalGeral           int                          `json:"totalGeral"`
	PorcentagemConcluida *float64                     `json:"porcentagemConcluida"`
	PorSeller            map[string]SellerProgresso   `json:"porSeller"`
	PorMesa              map[string]MesaProdutividade `json:"porMesa"`
}
