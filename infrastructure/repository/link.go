package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	_ "github.com/lib/pq"
	"github.com/lrodrigues/costura-backoffice-api/infrastructure/database/postgres"
	"github.com/lrodrigues/costura-backoffice-api/internal/domain"
)

const monitoredLinksTable = "monitored_links ml"

type LinkRepository interface {
	GetBySKU(tenantID, sku string, store domain.StoreName) (*domain.MonitoredLink, error)
	GetByURL(tenantID, url string) (*domain.MonitoredLink, error)
	Create(link *domain.MonitoredLink) error
	Update(link *domain.MonitoredLink) error
	List(tenantID string, store *domain.StoreName) ([]*domain.MonitoredLink, error)
	DeleteBySKU(tenantID, sku string) (int64, error)
	DeleteByStore(tenantID string, store domain.StoreName) (int64, error)
	ClearRates(tenantID string, store domain.StoreName) error
	UniqueTags(tenantID string) ([]string, error)
}

type linkRepository struct {
	conn *postgres.Connection
}

func NewLinkRepository(conn *postgres.Connection) LinkRepository {
	return &linkRepository{
		conn: conn,
	}
}

const linkColumns = "ml.id, ml.tenant_id, ml.sku, ml.url, ml.name, ml.store, ml.status, " +
	"ml.my_price, ml.now_price, ml.last_price, ml.image, ml.seller, ml.rating_seller, " +
	"ml.is_full, ml.is_catalog, ml.tags, ml.history, ml.created_at, ml.updated_at"

func (r *linkRepository) GetBySKU(tenantID, sku string, store domain.StoreName) (*domain.MonitoredLink, error) {
	return r.getLink(squirrel.Eq{"ml.tenant_id": tenantID, "ml.sku": sku, "ml.store": store})
}

func (r *linkRepository) GetByURL(tenantID, url string) (*domain.MonitoredLink, error) {
	return r.getLink(squirrel.Eq{"ml.tenant_id": tenantID, "ml.url": url})
}

func (r *linkRepository) getLink(whereClause map[string]interface{}) (*domain.MonitoredLink, error) {
	linkSQL, linkArgs, err := squirrel.
		Select(linkColumns).
		From(monitoredLinksTable).
		Where(whereClause).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	row := r.conn.QueryRow(linkSQL, linkArgs...)

	link, err := deserializeLink(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return link, nil
}

func (r *linkRepository) Create(link *domain.MonitoredLink) error {
	tagsJSON, historyJSON, err := serializeLinkDocuments(link)
	if err != nil {
		return err
	}

	linkSQL, linkArgs, err := squirrel.
		Insert("monitored_links").
		Columns(
			"id", "tenant_id", "sku", "url", "name", "store", "status",
			"my_price", "now_price", "last_price", "image", "seller", "rating_seller",
			"is_full", "is_catalog", "tags", "history", "created_at", "updated_at",
		).
		Values(
			link.ID, link.TenantID, link.SKU, link.URL, link.Name, link.StoreName, link.Status,
			link.MyPrice, link.NowPrice, link.LastPrice, link.Image, link.Seller, link.RatingSeller,
			link.Full, link.Catalog, tagsJSON, historyJSON, link.CreatedAt, link.UpdatedAt,
		).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	_, err = r.conn.Exec(linkSQL, linkArgs...)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return fmt.Errorf("database error: %w (code: %s)", pqErr, pqErr.Code)
		}
		return fmt.Errorf("failed to execute query: %w", err)
	}

	return nil
}

func (r *linkRepository) Update(link *domain.MonitoredLink) error {
	tagsJSON, historyJSON, err := serializeLinkDocuments(link)
	if err != nil {
		return err
	}

	linkSQL, linkArgs, err := squirrel.
		Update("monitored_links").
		Set("url", link.URL).
		Set("name", link.Name).
		Set("status", link.Status).
		Set("my_price", link.MyPrice).
		Set("now_price", link.NowPrice).
		Set("last_price", link.LastPrice).
		Set("image", link.Image).
		Set("seller", link.Seller).
		Set("rating_seller", link.RatingSeller).
		Set("is_full", link.Full).
		Set("is_catalog", link.Catalog).
		Set("tags", tagsJSON).
		Set("history", historyJSON).
		Set("updated_at", link.UpdatedAt).
		Where(squirrel.Eq{"id": link.ID, "tenant_id": link.TenantID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	result, err := r.conn.Exec(linkSQL, linkArgs...)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return fmt.Errorf("database error: %w (code: %s)", pqErr, pqErr.Code)
		}
		return fmt.Errorf("failed to execute query: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return sql.ErrNoRows
	}

	return nil
}

func (r *linkRepository) List(tenantID string, store *domain.StoreName) ([]*domain.MonitoredLink, error) {
	queryBuilder := squirrel.
		Select(linkColumns).
		From(monitoredLinksTable).
		Where(squirrel.Eq{"ml.tenant_id": tenantID}).
		OrderBy("ml.created_at ASC").
		PlaceholderFormat(squirrel.Dollar)

	if store != nil {
		queryBuilder = queryBuilder.Where(squirrel.Eq{"ml.store": *store})
	}

	linksSQL, linksArgs, err := queryBuilder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.conn.Query(linksSQL, linksArgs...)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	defer rows.Close()

	links := make([]*domain.MonitoredLink, 0)

	for rows.Next() {
		link, err := deserializeLink(rows)
		if err != nil {
			return nil, err
		}

		links = append(links, link)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao iterar sobre os resultados: %w", err)
	}

	return links, nil
}

func (r *linkRepository) DeleteBySKU(tenantID, sku string) (int64, error) {
	return r.deleteWhere(squirrel.Eq{"tenant_id": tenantID, "sku": sku})
}

func (r *linkRepository) DeleteByStore(tenantID string, store domain.StoreName) (int64, error) {
	return r.deleteWhere(squirrel.Eq{"tenant_id": tenantID, "store": store})
}

func (r *linkRepository) deleteWhere(whereClause map[string]interface{}) (int64, error) {
	deleteSQL, deleteArgs, err := squirrel.
		Delete("monitored_links").
		Where(whereClause).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build query: %w", err)
	}

	result, err := r.conn.Exec(deleteSQL, deleteArgs...)
	if err != nil {
		return 0, fmt.Errorf("failed to execute query: %w", err)
	}

	return result.RowsAffected()
}

// ClearRates reinicia a base de comparação: lastPrice passa a ser o preço
// atual, zerando a variação exibida nos painéis.
func (r *linkRepository) ClearRates(tenantID string, store domain.StoreName) error {
	clearSQL, clearArgs, err := squirrel.
		Update("monitored_links").
		Set("last_price", squirrel.Expr("now_price")).
		Where(squirrel.Eq{"tenant_id": tenantID, "store": store}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	_, err = r.conn.Exec(clearSQL, clearArgs...)
	if err != nil {
		return fmt.Errorf("failed to execute query: %w", err)
	}

	return nil
}

func (r *linkRepository) UniqueTags(tenantID string) ([]string, error) {
	tagsSQL, tagsArgs, err := squirrel.
		Select("DISTINCT jsonb_array_elements_text(ml.tags) AS tag").
		From(monitoredLinksTable).
		Where(squirrel.Eq{"ml.tenant_id": tenantID}).
		OrderBy("tag ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.conn.Query(tagsSQL, tagsArgs...)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	defer rows.Close()

	tags := make([]string, 0)

	for rows.Next() {
		var tag string
		if err := rows.Scan(&tag); err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao iterar sobre os resultados: %w", err)
	}

	return tags, nil
}

func serializeLinkDocuments(link *domain.MonitoredLink) ([]byte, []byte, error) {
	tags := link.Tags
	if tags == nil {
		tags = []string{}
	}

	history := link.History
	if history == nil {
		history = []domain.PriceEntry{}
	}

	tagsJSON, err := json.Marshal(tags)
	if err != nil {
		return nil, nil, fmt.Errorf("erro ao serializar tags: %w", err)
	}

	historyJSON, err := json.Marshal(history)
	if err != nil {
		return nil, nil, fmt.Errorf("erro ao serializar histórico: %w", err)
	}

	return tagsJSON, historyJSON, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func deserializeLink(row rowScanner) (*domain.MonitoredLink, error) {
	link := &domain.MonitoredLink{}

	var tagsJSON, historyJSON []byte

	if err := row.Scan(
		&link.ID,
		&link.TenantID,
		&link.SKU,
		&link.URL,
		&link.Name,
		&link.StoreName,
		&link.Status,
		&link.MyPrice,
		&link.NowPrice,
		&link.LastPrice,
		&link.Image,
		&link.Seller,
		&link.RatingSeller,
		&link.Full,
		&link.Catalog,
		&tagsJSON,
		&historyJSON,
		&link.CreatedAt,
		&link.UpdatedAt,
	); err != nil {
		return nil, err
	}

	if len(tagsJSON) > 0 {
		if err := json.Unmarshal(tagsJSON, &link.Tags); err != nil {
			return nil, fmt.Errorf("erro ao deserializar tags: %w", err)
		}
	}

	if len(historyJSON) > 0 {
		if err := json.Unmarshal(historyJSON, &link.History); err != nil {
			return nil, fmt.Errorf("erro ao deserializar histórico: %w", err)
		}
	}

	return link, nil
}
