package scraper

import (
	"bytes"
	"context"
	"encoding/json"
	"net"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/lrodrigues/costura-backoffice-api/internal/config"
	"github.com/lrodrigues/costura-backoffice-api/internal/domain"
)

var (
	// ErrPageUnrecognized indica que nem o bloco JSON-LD nem os seletores de
	// fallback resolveram nada na página.
	ErrPageUnrecognized = errors.New("estrutura da página não reconhecida")
)

// Extractor é o contrato do extrator de páginas de anúncio
type Extractor interface {
	Extract(ctx context.Context, url string) (*ProductSnapshot, error)
	ExtractLinks(ctx context.Context, url string) ([]string, error)
}

// PageExtractor busca a página com timeouts limitados e tenta, nesta ordem,
// o bloco JSON-LD do anúncio e os seletores de DOM conhecidos.
type PageExtractor struct {
	client *resty.Client
}

func NewPageExtractor(cfg config.Scraper) *PageExtractor {
	transport := &http.Transport{
		DialContext: (&net.Dialer{
			Timeout: time.Duration(cfg.ConnectTimeoutSeconds) * time.Second,
		}).DialContext,
	}

	client := resty.New().
		SetTransport(transport).
		SetTimeout(time.Duration(cfg.TotalTimeoutSeconds)*time.Second).
		SetHeader("User-Agent", cfg.UserAgent).
		SetHeader("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8").
		SetHeader("Accept-Language", "pt-BR,pt;q=0.9,en-US;q=0.8,en;q=0.7")

	return &PageExtractor{client: client}
}

// Extract busca a URL e monta o snapshot normalizado do anúncio
func (e *PageExtractor) Extract(ctx context.Context, url string) (*ProductSnapshot, error) {
	doc, err := e.fetch(ctx, url)
	if err != nil {
		return nil, err
	}

	snapshot, ok := extractFromJSONLD(doc)
	if !ok {
		snapshot, ok = extractFromDOM(doc)
		if !ok {
			return nil, errors.Wrapf(ErrPageUnrecognized, "url %s", url)
		}
	}

	snapshot.Store = domain.StoreFromURL(url)
	applyOverlays(doc, snapshot)

	return snapshot, nil
}

// ExtractLinks coleta os links de anúncio de uma página de resultados de
// busca do marketplace, sem o fragmento de tracking e sem duplicatas.
func (e *PageExtractor) ExtractLinks(ctx context.Context, url string) ([]string, error) {
	doc, err := e.fetch(ctx, url)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	links := make([]string, 0)

	doc.Find(".ui-search-result__wrapper a").Each(func(_ int, s *goquery.Selection) {
		href, exists := s.Attr("href")
		if !exists {
			return
		}
		href = strings.SplitN(href, "#", 2)[0]
		if href == "" {
			return
		}
		if _, dup := seen[href]; dup {
			return
		}
		seen[href] = struct{}{}
		links = append(links, href)
	})

	logrus.WithField("quantidade", len(links)).Debug("Links extraídos da página de busca")

	return links, nil
}

func (e *PageExtractor) fetch(ctx context.Context, url string) (*goquery.Document, error) {
	resp, err := e.client.R().SetContext(ctx).Get(url)
	if err != nil {
		return nil, errors.Wrapf(err, "erro ao buscar a página %s", url)
	}

	if resp.StatusCode() != http.StatusOK {
		return nil, errors.Errorf("status %d ao buscar a página %s", resp.StatusCode(), url)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(resp.Body()))
	if err != nil {
		return nil, errors.Wrap(err, "erro ao interpretar o HTML")
	}

	return doc, nil
}

// jsonLDProduct é o subconjunto do bloco application/ld+json que interessa
type jsonLDProduct struct {
	SKU    string          `json:"sku"`
	Name   string          `json:"name"`
	Image  json.RawMessage `json:"image"`
	Offers jsonLDOffers    `json:"offers"`
}

type jsonLDOffers struct {
	Price        json.Number `json:"price"`
	Availability string      `json:"availability"`
}

// extractFromJSONLD procura um script ld+json que declare @type Product
func extractFromJSONLD(doc *goquery.Document) (*ProductSnapshot, bool) {
	var raw string

	doc.Find("script[type='application/ld+json']").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		content := s.Text()
		if strings.Contains(content, `"@type":"Product"`) || strings.Contains(content, `"@type": "Product"`) {
			raw = content
			return false
		}
		return true
	})

	if raw == "" {
		return nil, false
	}

	var product jsonLDProduct
	if err := json.Unmarshal([]byte(raw), &product); err != nil {
		logrus.WithError(err).Debug("Bloco JSON-LD inválido, caindo para o fallback de DOM")
		return nil, false
	}

	price, _ := product.Offers.Price.Float64()

	availability := domain.OutOfStock
	if strings.Contains(product.Offers.Availability, string(domain.InStock)) {
		availability = domain.InStock
	}

	return &ProductSnapshot{
		SKU:          product.SKU,
		Name:         product.Name,
		Price:        price,
		Availability: availability,
		Image:        firstImage(product.Image),
	}, true
}

// firstImage aceita tanto string quanto lista de strings no campo image
func firstImage(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	var single string
	if err := json.Unmarshal(raw, &single); err == nil {
		return single
	}

	var many []string
	if err := json.Unmarshal(raw, &many); err == nil && len(many) > 0 {
		return many[0]
	}

	return ""
}

// extractFromDOM é a estratégia de fallback quando o anúncio não expõe o
// bloco estruturado (variações de layout ou bloqueio parcial).
func extractFromDOM(doc *goquery.Document) (*ProductSnapshot, bool) {
	name := strings.TrimSpace(doc.Find("h1.ui-pdp-title").First().Text())

	var priceText string
	for _, selector := range []string{
		".ui-pdp-price__second-line .andes-money-amount__fraction",
		"[data-testid='price'] .andes-money-amount__fraction",
		".andes-money-amount__fraction",
		".price-tag-fraction",
	} {
		priceText = strings.TrimSpace(doc.Find(selector).First().Text())
		if priceText != "" {
			break
		}
	}

	price := parsePrice(priceText)

	if name == "" && price == 0 {
		return nil, false
	}

	image, _ := doc.Find("meta[property='og:image']").First().Attr("content")

	// Disponibilidade derivada da presença de um botão de compra ativo
	availability := domain.OutOfStock
	if doc.Find(".ui-pdp-actions button[type='submit'], .ui-pdp-actions .andes-button--loud").Length() > 0 {
		availability = domain.InStock
	}

	return &ProductSnapshot{
		Name:         name,
		Price:        price,
		Availability: availability,
		Image:        image,
	}, true
}

// applyOverlays agrega os sinais específicos do marketplace raspados
// diretamente do DOM, independentes do registro base.
func applyOverlays(doc *goquery.Document, snapshot *ProductSnapshot) {
	if seller := strings.TrimSpace(doc.Find("div.ui-pdp-seller__link-trigger.non-selectable").First().Text()); seller != "" {
		snapshot.Seller = seller
	} else if seller := strings.TrimSpace(doc.Find(".ui-pdp-seller__header__title").First().Text()); seller != "" {
		snapshot.Seller = seller
	}

	if rating := strings.TrimSpace(doc.Find(".ui-seller-data-status__info-title").First().Text()); rating != "" {
		snapshot.RatingSeller = rating
	}

	snapshot.Full = doc.Find(".ui-pdp-icon--full, .ui-pdp-promotions-pill-label--full").Length() > 0
	snapshot.Catalog = doc.Find(".ui-pdp-other-sellers, .ui-pdp-container__row--compats-widget").Length() > 0

	// Anúncio pausado vence qualquer disponibilidade do bloco estruturado
	banner := strings.ToLower(doc.Find(".ui-pdp-message, .ui-vpp-message").Text())
	if strings.Contains(banner, "pausado") || strings.Contains(banner, "pausada") {
		snapshot.Availability = domain.OutOfStock
	}
}

var nonPriceChars = regexp.MustCompile(`[^0-9.]`)

// parsePrice lida com o formato brasileiro: ponto de milhar, vírgula decimal
func parsePrice(text string) float64 {
	if text == "" {
		return 0
	}

	text = strings.ReplaceAll(text, ".", "")
	text = strings.ReplaceAll(text, ",", ".")
	text = nonPriceChars.ReplaceAllString(text, "")

	price, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0
	}

	return price
}
