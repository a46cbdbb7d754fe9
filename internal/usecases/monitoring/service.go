package monitoring

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/lrodrigues/costura-backoffice-api/infrastructure/repository"
	"github.com/lrodrigues/costura-backoffice-api/infrastructure/scraper"
	"github.com/lrodrigues/costura-backoffice-api/internal/config"
	"github.com/lrodrigues/costura-backoffice-api/internal/domain"
	"github.com/lrodrigues/costura-backoffice-api/pkg/apiErrors"
	"github.com/lrodrigues/costura-backoffice-api/pkg/utils"
)

// PageFetcher é o fetch com retry e degradação do pacote scraper
type PageFetcher interface {
	Fetch(ctx context.Context, tenantID, url string) (*scraper.Result, error)
}

// SearchExtractor coleta os links de anúncio de uma página de busca
type SearchExtractor interface {
	ExtractLinks(ctx context.Context, url string) ([]string, error)
}

type AddLinkRequest struct {
	SKU     string  `json:"sku"`
	URL     string  `json:"link"`
	MyPrice float64 `json:"myPrice"`
}

type ImportRequest struct {
	URL string `json:"link"`
}

type ImportResult struct {
	Total    int      `json:"total"`
	Added    int      `json:"added"`
	Skipped  int      `json:"skipped"`
	Failures []string `json:"failures"`
}

type UpdateAnnotationsRequest struct {
	SKU     string           `json:"sku"`
	Store   domain.StoreName `json:"storeName"`
	MyPrice *float64         `json:"myPrice"`
	Tags    *[]string        `json:"tags"`
}

// ProgressEvent é emitido a cada item durante um refresh, para o stream SSE
// de acompanhamento no painel.
type ProgressEvent struct {
	Item    *domain.MonitoredLink `json:"item"`
	Index   int                   `json:"index"`
	Total   int                   `json:"total"`
	Percent int                   `json:"percent"`
}

type ListResult struct {
	Items   []*domain.MonitoredLink `json:"items"`
	Total   int                     `json:"total"`
	Page    int                     `json:"page"`
	PerPage int                     `json:"perPage"`
}

type LinkMonitor interface {
	AddLink(ctx context.Context, tenantID string, req AddLinkRequest) (*domain.MonitoredLink, error)
	ImportSearchPage(ctx context.Context, tenantID string, req ImportRequest) (*ImportResult, error)
	RefreshStore(ctx context.Context, tenantID string, store domain.StoreName, onProgress func(ProgressEvent)) ([]domain.PriceAlert, error)
	RefreshTenant(ctx context.Context, tenantID string) ([]domain.PriceAlert, error)
	UpdateAnnotations(tenantID string, req UpdateAnnotationsRequest) (*domain.MonitoredLink, error)
	RemoveTag(tenantID, sku string, store domain.StoreName, tag string) (*domain.MonitoredLink, error)
	UniqueTags(tenantID string) ([]string, error)
	List(tenantID string, store *domain.StoreName, page, perPage int) (*ListResult, error)
	Delete(tenantID, sku string) (int64, error)
	DeleteStore(tenantID string, store domain.StoreName) (int64, error)
	ClearRates(tenantID string, store domain.StoreName) error
}

type Service struct {
	linkRepo     repository.LinkRepository
	fetcher      PageFetcher
	searcher     SearchExtractor
	requestDelay time.Duration
}

func NewService(
	linkRepo repository.LinkRepository,
	fetcher PageFetcher,
	searcher SearchExtractor,
	cfg *config.Config,
) LinkMonitor {
	return &Service{
		linkRepo:     linkRepo,
		fetcher:      fetcher,
		searcher:     searcher,
		requestDelay: time.Duration(cfg.LinkSync.RequestDelaySeconds) * time.Second,
	}
}

// AddLink registra um anúncio para monitoramento. A identidade é
// (sku, tenant, loja): um cadastro repetido vira um refresh do link existente
// em vez de erro ou duplicata.
func (s *Service) AddLink(ctx context.Context, tenantID string, req AddLinkRequest) (*domain.MonitoredLink, error) {
	if req.URL == "" {
		return nil, NewMonitoringError(ErrLinkRequired, apiErrors.ErrMissingRequiredData, "Informe o link do anúncio")
	}

	store := domain.StoreFromURL(req.URL)

	result, err := s.fetcher.Fetch(ctx, tenantID, req.URL)
	if err != nil {
		return nil, err
	}

	snapshot := result.Snapshot

	sku := req.SKU
	if sku == "" {
		sku = snapshot.SKU
	}
	if sku == "" {
		return nil, NewMonitoringError(ErrSKURequired, apiErrors.ErrMissingRequiredData, "Não foi possível identificar o sku do anúncio")
	}

	existing, err := s.linkRepo.GetBySKU(tenantID, sku, store)
	if err != nil {
		return nil, NewMonitoringErrorWithSKU(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, sku, "Falha ao consultar o link")
	}

	now := time.Now()

	if existing != nil {
		// Leitura degradada é o próprio registro persistido; nada a atualizar
		if result.Freshness == scraper.Stale {
			return existing, nil
		}
		s.applySnapshot(existing, result, now)
		if err := s.linkRepo.Update(existing); err != nil {
			return nil, NewMonitoringErrorWithSKU(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, sku, "Falha ao atualizar o link")
		}
		return existing, nil
	}

	id, err := utils.GenerateID()
	if err != nil {
		return nil, err
	}

	link := &domain.MonitoredLink{
		ID:           id,
		TenantID:     tenantID,
		SKU:          sku,
		URL:          req.URL,
		Name:         snapshot.Name,
		StoreName:    store,
		Status:       snapshot.Availability,
		MyPrice:      req.MyPrice,
		NowPrice:     snapshot.Price,
		LastPrice:    snapshot.Price,
		Image:        snapshot.Image,
		Seller:       snapshot.Seller,
		RatingSeller: snapshot.RatingSeller,
		Full:         snapshot.Full,
		Catalog:      snapshot.Catalog,
		Tags:         []string{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	link.PushHistory(domain.PriceEntry{
		Price:      snapshot.Price,
		Seller:     snapshot.Seller,
		ObservedAt: now,
	})

	if err := s.linkRepo.Create(link); err != nil {
		return nil, NewMonitoringErrorWithSKU(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, sku, "Falha ao salvar o link")
	}

	return link, nil
}

// ImportSearchPage coleta os anúncios de uma página de busca e cadastra um a
// um, em série, respeitando o intervalo entre requisições.
func (s *Service) ImportSearchPage(ctx context.Context, tenantID string, req ImportRequest) (*ImportResult, error) {
	if req.URL == "" {
		return nil, NewMonitoringError(ErrLinkRequired, apiErrors.ErrMissingRequiredData, "Informe o link da página de busca")
	}

	urls, err := s.searcher.ExtractLinks(ctx, req.URL)
	if err != nil {
		return nil, err
	}

	result := &ImportResult{
		Total:    len(urls),
		Failures: make([]string, 0),
	}

	for i, url := range urls {
		if i > 0 {
			if err := s.waitDelay(ctx); err != nil {
				return result, err
			}
		}

		_, err := s.AddLink(ctx, tenantID, AddLinkRequest{URL: url})
		if err != nil {
			logrus.WithError(err).WithField("url", url).Warn("Falha ao importar anúncio da busca")
			result.Failures = append(result.Failures, url)
			continue
		}

		result.Added++
	}

	result.Skipped = result.Total - result.Added - len(result.Failures)

	return result, nil
}

// RefreshStore revisita cada link da loja em série. A cada item o callback de
// progresso recebe o link atualizado e o percentual concluído; o retorno traz
// os alertas de mudança de preço para o relatório.
func (s *Service) RefreshStore(ctx context.Context, tenantID string, store domain.StoreName, onProgress func(ProgressEvent)) ([]domain.PriceAlert, error) {
	if !store.Valid() {
		return nil, NewMonitoringError(ErrInvalidStore, apiErrors.ErrInvalidRequest, string(store))
	}

	links, err := s.linkRepo.List(tenantID, &store)
	if err != nil {
		return nil, NewMonitoringError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao listar os links")
	}

	alerts := make([]domain.PriceAlert, 0)

	total := len(links)
	for i, link := range links {
		if i > 0 {
			if err := s.waitDelay(ctx); err != nil {
				return alerts, err
			}
		}

		alert, err := s.refreshLink(ctx, link)
		if err != nil {
			logrus.WithError(err).WithFields(logrus.Fields{
				"sku":  link.SKU,
				"loja": link.StoreName,
			}).Warn("Falha ao atualizar link monitorado")
		} else if alert != nil {
			alerts = append(alerts, *alert)
		}

		if onProgress != nil {
			onProgress(ProgressEvent{
				Item:    link,
				Index:   i + 1,
				Total:   total,
				Percent: (i + 1) * 100 / total,
			})
		}
	}

	return alerts, nil
}

// RefreshTenant é o caminho do agendador: revisita todas as lojas do tenant e
// devolve os alertas acumulados para o e-mail de resumo.
func (s *Service) RefreshTenant(ctx context.Context, tenantID string) ([]domain.PriceAlert, error) {
	alerts := make([]domain.PriceAlert, 0)

	for _, store := range []domain.StoreName{domain.StoreMercadoLivre, domain.StoreShopee} {
		storeAlerts, err := s.RefreshStore(ctx, tenantID, store, nil)
		if err != nil {
			return alerts, err
		}
		alerts = append(alerts, storeAlerts...)
	}

	return alerts, nil
}

func (s *Service) refreshLink(ctx context.Context, link *domain.MonitoredLink) (*domain.PriceAlert, error) {
	result, err := s.fetcher.Fetch(ctx, link.TenantID, link.URL)
	if err != nil {
		return nil, err
	}

	// Leitura degradada é o próprio registro persistido; nada a atualizar
	if result.Freshness == scraper.Stale {
		return nil, nil
	}

	now := time.Now()
	priceChanged := s.applySnapshot(link, result, now)

	if err := s.linkRepo.Update(link); err != nil {
		return nil, NewMonitoringErrorWithSKU(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, link.SKU, "Falha ao atualizar o link")
	}

	if !priceChanged {
		return nil, nil
	}

	return &domain.PriceAlert{
		Name:     link.Name,
		Link:     link.URL,
		NewPrice: link.NowPrice,
		OldPrice: link.LastPrice,
		MyPrice:  link.MyPrice,
		Status:   link.Classification(),
		Full:     link.Full,
	}, nil
}

// applySnapshot aplica uma leitura fresca ao link. O preço anterior só é
// deslocado quando o preço extraído difere do atual e não é zero; zero
// significa extração parcial, nunca anúncio gratuito.
func (s *Service) applySnapshot(link *domain.MonitoredLink, result *scraper.Result, now time.Time) bool {
	snapshot := result.Snapshot

	priceChanged := false
	if snapshot.Price != 0 && snapshot.Price != link.NowPrice {
		link.LastPrice = link.NowPrice
		link.NowPrice = snapshot.Price
		priceChanged = true
	}

	if snapshot.Name != "" {
		link.Name = snapshot.Name
	}
	if snapshot.Image != "" {
		link.Image = snapshot.Image
	}
	if snapshot.Seller != "" {
		link.Seller = snapshot.Seller
	}
	if snapshot.RatingSeller != "" {
		link.RatingSeller = snapshot.RatingSeller
	}

	link.Status = snapshot.Availability
	link.Full = snapshot.Full
	link.Catalog = snapshot.Catalog

	link.PushHistory(domain.PriceEntry{
		Price:      link.NowPrice,
		Seller:     link.Seller,
		ObservedAt: now,
	})

	link.UpdatedAt = now

	return priceChanged
}

func (s *Service) UpdateAnnotations(tenantID string, req UpdateAnnotationsRequest) (*domain.MonitoredLink, error) {
	link, err := s.getRequiredLink(tenantID, req.SKU, req.Store)
	if err != nil {
		return nil, err
	}

	if req.MyPrice != nil {
		if *req.MyPrice < 0 {
			return nil, NewMonitoringErrorWithSKU(ErrInvalidRating, apiErrors.ErrInvalidRequest, req.SKU, "O preço de referência não pode ser negativo")
		}
		link.MyPrice = *req.MyPrice
	}

	if req.Tags != nil {
		link.Tags = *req.Tags
	}

	link.UpdatedAt = time.Now()

	if err := s.linkRepo.Update(link); err != nil {
		return nil, NewMonitoringErrorWithSKU(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, req.SKU, "Falha ao atualizar o link")
	}

	return link, nil
}

func (s *Service) RemoveTag(tenantID, sku string, store domain.StoreName, tag string) (*domain.MonitoredLink, error) {
	if tag == "" {
		return nil, NewMonitoringErrorWithSKU(ErrTagRequired, apiErrors.ErrMissingRequiredData, sku, "Informe a tag a remover")
	}

	link, err := s.getRequiredLink(tenantID, sku, store)
	if err != nil {
		return nil, err
	}

	tags := make([]string, 0, len(link.Tags))
	for _, t := range link.Tags {
		if t != tag {
			tags = append(tags, t)
		}
	}
	link.Tags = tags
	link.UpdatedAt = time.Now()

	if err := s.linkRepo.Update(link); err != nil {
		return nil, NewMonitoringErrorWithSKU(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, sku, "Falha ao atualizar o link")
	}

	return link, nil
}

func (s *Service) UniqueTags(tenantID string) ([]string, error) {
	tags, err := s.linkRepo.UniqueTags(tenantID)
	if err != nil {
		return nil, NewMonitoringError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao listar as tags")
	}

	return tags, nil
}

func (s *Service) List(tenantID string, store *domain.StoreName, page, perPage int) (*ListResult, error) {
	links, err := s.linkRepo.List(tenantID, store)
	if err != nil {
		return nil, NewMonitoringError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao listar os links")
	}

	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 50
	}

	total := len(links)
	start := (page - 1) * perPage
	if start > total {
		start = total
	}
	end := start + perPage
	if end > total {
		end = total
	}

	return &ListResult{
		Items:   links[start:end],
		Total:   total,
		Page:    page,
		PerPage: perPage,
	}, nil
}

func (s *Service) Delete(tenantID, sku string) (int64, error) {
	if sku == "" {
		return 0, NewMonitoringError(ErrSKURequired, apiErrors.ErrMissingRequiredData, "Informe o sku")
	}

	deleted, err := s.linkRepo.DeleteBySKU(tenantID, sku)
	if err != nil {
		return 0, NewMonitoringErrorWithSKU(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, sku, "Falha ao remover o link")
	}

	return deleted, nil
}

func (s *Service) DeleteStore(tenantID string, store domain.StoreName) (int64, error) {
	if !store.Valid() {
		return 0, NewMonitoringError(ErrInvalidStore, apiErrors.ErrInvalidRequest, string(store))
	}

	deleted, err := s.linkRepo.DeleteByStore(tenantID, store)
	if err != nil {
		return 0, NewMonitoringError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao remover os links da loja")
	}

	return deleted, nil
}

func (s *Service) ClearRates(tenantID string, store domain.StoreName) error {
	if !store.Valid() {
		return NewMonitoringError(ErrInvalidStore, apiErrors.ErrInvalidRequest, string(store))
	}

	if err := s.linkRepo.ClearRates(tenantID, store); err != nil {
		return NewMonitoringError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao reiniciar a base de comparação")
	}

	return nil
}

func (s *Service) getRequiredLink(tenantID, sku string, store domain.StoreName) (*domain.MonitoredLink, error) {
	if sku == "" {
		return nil, NewMonitoringError(ErrSKURequired, apiErrors.ErrMissingRequiredData, "Informe o sku")
	}
	if !store.Valid() {
		return nil, NewMonitoringErrorWithSKU(ErrInvalidStore, apiErrors.ErrInvalidRequest, sku, string(store))
	}

	link, err := s.linkRepo.GetBySKU(tenantID, sku, store)
	if err != nil {
		return nil, NewMonitoringErrorWithSKU(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, sku, "Falha ao consultar o link")
	}
	if link == nil {
		return nil, NewMonitoringErrorWithSKU(ErrLinkNotFound, apiErrors.ErrNotFound, sku, "Link não encontrado")
	}

	return link, nil
}

func (s *Service) waitDelay(ctx context.Context) error {
	if s.requestDelay <= 0 {
		return nil
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(s.requestDelay):
		return nil
	}
}

// LinkStaleSource adapta o repositório como fonte de leituras degradadas do
// fetch com retry.
type LinkStaleSource struct {
	linkRepo repository.LinkRepository
}

func NewLinkStaleSource(linkRepo repository.LinkRepository) *LinkStaleSource {
	return &LinkStaleSource{linkRepo: linkRepo}
}

func (s *LinkStaleSource) LastKnownSnapshot(ctx context.Context, tenantID, url string) (*scraper.ProductSnapshot, error) {
	link, err := s.linkRepo.GetByURL(tenantID, url)
	if err != nil || link == nil {
		return nil, err
	}

	return &scraper.ProductSnapshot{
		SKU:          link.SKU,
		Name:         link.Name,
		Price:        link.NowPrice,
		Availability: link.Status,
		Image:        link.Image,
		Seller:       link.Seller,
		RatingSeller: link.RatingSeller,
		Full:         link.Full,
		Catalog:      link.Catalog,
		Store:        link.StoreName,
	}, nil
}
