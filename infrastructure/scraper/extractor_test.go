package scraper

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lrodrigues/costura-backoffice-api/internal/domain"
)

const paginaComJSONLD = `
<html><head>
<script type="application/ld+json">
{"@context":"https://schema.org","@type":"Product","sku":"MLB123456","name":"Capa de Almofada 45x45","image":"https://http2.mlstatic.com/capa.jpg","offers":{"@type":"Offer","price":49.90,"availability":"https://schema.org/InStock"}}
</script>
</head><body>
<div class="ui-pdp-seller__link-trigger non-selectable">Loja Oficial Tecidos</div>
<div class="ui-seller-data-status__info-title">MercadoLíder Platinum</div>
<svg class="ui-pdp-icon--full"></svg>
</body></html>`

const paginaSemJSONLD = `
<html><body>
<h1 class="ui-pdp-title">Jogo de Lençol Queen</h1>
<meta property="og:image" content="https://http2.mlstatic.com/lencol.jpg"/>
<div class="ui-pdp-price__second-line"><span class="andes-money-amount__fraction">1.299</span></div>
<div class="ui-pdp-actions"><button type="submit">Comprar agora</button></div>
</body></html>`

const paginaPausada = `
<html><head>
<script type="application/ld+json">
{"@type":"Product","sku":"MLB777","name":"Edredom Casal","offers":{"price":"199.90","availability":"https://schema.org/InStock"}}
</script>
</head><body>
<div class="ui-pdp-message">Anúncio pausado pelo vendedor</div>
</body></html>`

func docFromHTML(t *testing.T, html string) *goquery.Document {
	t.Helper()

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func TestExtractFromJSONLD(t *testing.T) {
	doc := docFromHTML(t, paginaComJSONLD)

	snapshot, ok := extractFromJSONLD(doc)
	require.True(t, ok)

	assert.Equal(t, "MLB123456", snapshot.SKU)
	assert.Equal(t, "Capa de Almofada 45x45", snapshot.Name)
	assert.Equal(t, 49.90, snapshot.Price)
	assert.Equal(t, domain.InStock, snapshot.Availability)
	assert.Equal(t, "https://http2.mlstatic.com/capa.jpg", snapshot.Image)
}

func TestExtractFromJSONLD_SemBloco(t *testing.T) {
	doc := docFromHTML(t, paginaSemJSONLD)

	_, ok := extractFromJSONLD(doc)
	assert.False(t, ok)
}

func TestExtractFromDOM_Fallback(t *testing.T) {
	doc := docFromHTML(t, paginaSemJSONLD)

	snapshot, ok := extractFromDOM(doc)
	require.True(t, ok)

	assert.Equal(t, "Jogo de Lençol Queen", snapshot.Name)
	assert.Equal(t, 1299.0, snapshot.Price)
	assert.Equal(t, domain.InStock, snapshot.Availability, "botão de compra ativo implica disponível")
	assert.Equal(t, "https://http2.mlstatic.com/lencol.jpg", snapshot.Image)
}

func TestExtractFromDOM_PaginaIrreconhecivel(t *testing.T) {
	doc := docFromHTML(t, `<html><body><p>bloqueado</p></body></html>`)

	_, ok := extractFromDOM(doc)
	assert.False(t, ok)
}

func TestApplyOverlays(t *testing.T) {
	doc := docFromHTML(t, paginaComJSONLD)

	snapshot := &ProductSnapshot{}
	applyOverlays(doc, snapshot)

	assert.Equal(t, "Loja Oficial Tecidos", snapshot.Seller)
	assert.Equal(t, "MercadoLíder Platinum", snapshot.RatingSeller)
	assert.True(t, snapshot.Full)
	assert.False(t, snapshot.Catalog)
}

func TestApplyOverlays_AnuncioPausadoForcaOutOfStock(t *testing.T) {
	doc := docFromHTML(t, paginaPausada)

	snapshot, ok := extractFromJSONLD(doc)
	require.True(t, ok)
	require.Equal(t, domain.InStock, snapshot.Availability)

	applyOverlays(doc, snapshot)

	assert.Equal(t, domain.OutOfStock, snapshot.Availability)
}

func TestParsePrice(t *testing.T) {
	tests := []struct {
		texto    string
		esperado float64
	}{
		{"49,90", 49.90},
		{"1.299", 1299},
		{"1.299,99", 1299.99},
		{"R$ 10,00", 10},
		{"", 0},
		{"abc", 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.esperado, parsePrice(tt.texto), "texto %q", tt.texto)
	}
}
