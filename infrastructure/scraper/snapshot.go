// Package scraper extrai dados estruturados de páginas de anúncio do
// Mercado Livre e da Shopee.
package scraper

import (
	"github.com/lrodrigues/costura-backoffice-api/internal/domain"
)

// ProductSnapshot é o registro normalizado extraído de uma página de anúncio.
// Campos opcionais ausentes ficam com o valor zero em vez de falhar a extração.
type ProductSnapshot struct {
	SKU          string
	Name         string
	Price        float64
	Availability domain.Availability
	Image        string
	Seller       string
	RatingSeller string
	Full         bool
	Catalog      bool
	Store        domain.StoreName
}

// Freshness distingue uma leitura recém-extraída de uma degradada para o
// último registro persistido.
type Freshness int

const (
	Fresh Freshness = iota
	Stale
)

// Result é o retorno do fetch com retry: o snapshot mais o seu frescor, para
// que o chamador possa tratar leituras degradadas de forma diferente.
type Result struct {
	Snapshot  *ProductSnapshot
	Freshness Freshness
}
