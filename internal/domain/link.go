package domain

import (
	"strings"
	"time"
)

// StoreName identifica o marketplace de origem de um link monitorado
type StoreName string

const (
	StoreMercadoLivre StoreName = "mercadolivre"
	StoreShopee       StoreName = "shopee"
)

// StoreFromURL infere o marketplace a partir da URL do anúncio
func StoreFromURL(url string) StoreName {
	if strings.Contains(url, "shopee") {
		return StoreShopee
	}
	return StoreMercadoLivre
}

func (s StoreName) Valid() bool {
	return s == StoreMercadoLivre || s == StoreShopee
}

// Availability segue o vocabulário do schema.org usado nos anúncios
type Availability string

const (
	InStock    Availability = "InStock"
	OutOfStock Availability = "OutOfStock"
)

// Classificação do preço monitorado frente ao preço de referência do tenant
const (
	PriceGanhando = "Ganhando"
	PricePerdendo = "Perdendo"
)

// PriceHistoryLimit limita o histórico de preços por link (os mais antigos saem)
const PriceHistoryLimit = 20

type PriceEntry struct {
	Price      float64   `json:"price"`
	Seller     string    `json:"seller"`
	ObservedAt time.Time `json:"observedAt"`
}

// MonitoredLink é um anúncio de concorrente acompanhado por um tenant.
// A identidade para criação é (sku, tenantId, storeName).
type MonitoredLink struct {
	ID           string       `json:"id"`
	TenantID     string       `json:"-"`
	SKU          string       `json:"sku"`
	URL          string       `json:"link"`
	Name         string       `json:"name"`
	StoreName    StoreName    `json:"storeName"`
	Status       Availability `json:"status"`
	MyPrice      float64      `json:"myPrice"`
	NowPrice     float64      `json:"nowPrice"`
	LastPrice    float64      `json:"lastPrice"`
	Image        string       `json:"image"`
	Seller       string       `json:"seller"`
	RatingSeller string       `json:"ratingSeller"`
	Full         bool         `json:"full"`
	Catalog      bool         `json:"catalog"`
	Tags         []string     `json:"tags"`
	History      []PriceEntry `json:"history"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// PushHistory adiciona a observação mais recente e descarta além do limite
func (l *MonitoredLink) PushHistory(entry PriceEntry) {
	l.History = append(l.History, entry)
	if len(l.History) > PriceHistoryLimit {
		l.History = l.History[len(l.History)-PriceHistoryLimit:]
	}
}

// Classification compara o preço de referência do tenant com o preço atual
// do concorrente. Sem preço de referência o link é tratado como Perdendo.
func (l *MonitoredLink) Classification() string {
	if l.MyPrice > 0 && l.MyPrice <= l.NowPrice {
		return PriceGanhando
	}
	return PricePerdendo
}

// PriceAlert é a linha enviada ao colaborador de e-mail após um refresh
type PriceAlert struct {
	Name     string  `json:"name"`
	Link     string  `json:"link"`
	NewPrice float64 `json:"newPrice"`
	OldPrice float64 `json:"oldPrice"`
	MyPrice  float64 `json:"myPrice"`
	Status   string  `json:"status"`
	Full     bool    `json:"full"`
}
