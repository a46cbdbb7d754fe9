package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	_ "github.com/lib/pq"
	"github.com/lrodrigues/costura-backoffice-api/infrastructure/database/postgres"
	"github.com/lrodrigues/costura-backoffice-api/internal/domain"
)

const (
	expedicaoRegistrosTable = "expedicao_registros er"
	expedicaoDiasTable      = "expedicao_dias_encerrados de"
	expedicaoMetasTable     = "expedicao_metas em"
)

type ExpedicaoRepository interface {
	GetRegistroByOrderID(orderID string) (*domain.ExpedicaoRegistro, error)
	CreateRegistro(registro *domain.ExpedicaoRegistro) error
	CountByDataContabilizacao(data time.Time) (int, error)
	ListByDataContabilizacao(data time.Time) ([]*domain.ExpedicaoRegistro, error)
	CountByMesaSince(mesaID domain.MesaID, since time.Time) (int, error)
	GetDiaEncerrado(data time.Time) (*domain.ExpedicaoDiaEncerrado, error)
	CreateDiaEncerrado(dia *domain.ExpedicaoDiaEncerrado) error
	GetMeta(data time.Time) (*domain.ExpedicaoMeta, error)
	UpsertMeta(meta *domain.ExpedicaoMeta) error
}

type expedicaoRepository struct {
	conn *postgres.Connection
}

func NewExpedicaoRepository(conn *postgres.Connection) ExpedicaoRepository {
	return &expedicaoRepository{
		conn: conn,
	}
}

func (r *expedicaoRepository) GetRegistroByOrderID(orderID string) (*domain.ExpedicaoRegistro, error) {
	registroSQL, registroArgs, err := squirrel.
		Select("er.id, er.order_id, er.mesa_id, er.seller, er.data_contabilizacao, er.created_at").
		From(expedicaoRegistrosTable).
		Where(squirrel.Eq{"er.order_id": orderID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	row := r.conn.QueryRow(registroSQL, registroArgs...)

	registro, err := deserializeRegistro(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return registro, nil
}

func (r *expedicaoRepository) CreateRegistro(registro *domain.ExpedicaoRegistro) error {
	registroSQL, registroArgs, err := squirrel.
		Insert("expedicao_registros").
		Columns("id", "order_id", "mesa_id", "seller", "data_contabilizacao", "created_at").
		Values(
			registro.ID,
			registro.OrderID,
			registro.MesaID,
			registro.Seller,
			registro.DataContabilizacao,
			registro.CreatedAt,
		).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	_, err = r.conn.Exec(registroSQL, registroArgs...)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return fmt.Errorf("database error: %w (code: %s)", pqErr, pqErr.Code)
		}
		return fmt.Errorf("failed to execute query: %w", err)
	}

	return nil
}

func (r *expedicaoRepository) CountByDataContabilizacao(data time.Time) (int, error) {
	countSQL, countArgs, err := squirrel.
		Select("COUNT(*)").
		From(expedicaoRegistrosTable).
		Where(squirrel.Eq{"er.data_contabilizacao": data}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, err
	}

	var total int
	if err := r.conn.QueryRow(countSQL, countArgs...).Scan(&total); err != nil {
		return 0, err
	}

	return total, nil
}

func (r *expedicaoRepository) ListByDataContabilizacao(data time.Time) ([]*domain.ExpedicaoRegistro, error) {
	registrosSQL, registrosArgs, err := squirrel.
		Select("er.id, er.order_id, er.mesa_id, er.seller, er.data_contabilizacao, er.created_at").
		From(expedicaoRegistrosTable).
		Where(squirrel.Eq{"er.data_contabilizacao": data}).
		OrderBy("er.created_at ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.conn.Query(registrosSQL, registrosArgs...)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	defer rows.Close()

	registros := make([]*domain.ExpedicaoRegistro, 0)

	for rows.Next() {
		registro, err := deserializeRegistro(rows)
		if err != nil {
			return nil, err
		}

		registros = append(registros, registro)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao iterar sobre os resultados: %w", err)
	}

	return registros, nil
}

// CountByMesaSince conta pelo relógio de parede (created_at), não pela data
// contábil. É a base do ritmo da última hora nos painéis.
func (r *expedicaoRepository) CountByMesaSince(mesaID domain.MesaID, since time.Time) (int, error) {
	countSQL, countArgs, err := squirrel.
		Select("COUNT(*)").
		From(expedicaoRegistrosTable).
		Where(squirrel.Eq{"er.mesa_id": mesaID}).
		Where(squirrel.GtOrEq{"er.created_at": since}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, err
	}

	var total int
	if err := r.conn.QueryRow(countSQL, countArgs...).Scan(&total); err != nil {
		return 0, err
	}

	return total, nil
}

func (r *expedicaoRepository) GetDiaEncerrado(data time.Time) (*domain.ExpedicaoDiaEncerrado, error) {
	diaSQL, diaArgs, err := squirrel.
		Select("de.id, de.data, de.encerrado_em, de.encerrado_por, de.total_pacotes, de.created_at").
		From(expedicaoDiasTable).
		Where(squirrel.Eq{"de.data": data}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	dia := &domain.ExpedicaoDiaEncerrado{}

	err = r.conn.QueryRow(diaSQL, diaArgs...).Scan(
		&dia.ID,
		&dia.Data,
		&dia.EncerradoEm,
		&dia.EncerradoPor,
		&dia.TotalPacotes,
		&dia.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return dia, nil
}

func (r *expedicaoRepository) CreateDiaEncerrado(dia *domain.ExpedicaoDiaEncerrado) error {
	diaSQL, diaArgs, err := squirrel.
		Insert("expedicao_dias_encerrados").
		Columns("id", "data", "encerrado_em", "encerrado_por", "total_pacotes", "created_at").
		Values(dia.ID, dia.Data, dia.EncerradoEm, dia.EncerradoPor, dia.TotalPacotes, dia.CreatedAt).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	_, err = r.conn.Exec(diaSQL, diaArgs...)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return fmt.Errorf("database error: %w (code: %s)", pqErr, pqErr.Code)
		}
		return fmt.Errorf("failed to execute query: %w", err)
	}

	return nil
}

func (r *expedicaoRepository) GetMeta(data time.Time) (*domain.ExpedicaoMeta, error) {
	metaSQL, metaArgs, err := squirrel.
		Select("em.id, em.data, em.tipo_configuracao, em.total, em.por_seller, em.horarios_coleta, em.created_at, em.updated_at").
		From(expedicaoMetasTable).
		Where(squirrel.Eq{"em.data": data}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	meta := &domain.ExpedicaoMeta{}

	var porSellerJSON, horariosJSON []byte

	err = r.conn.QueryRow(metaSQL, metaArgs...).Scan(
		&meta.ID,
		&meta.Data,
		&meta.TipoConfiguracao,
		&meta.Total,
		&porSellerJSON,
		&horariosJSON,
		&meta.CreatedAt,
		&meta.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	if len(porSellerJSON) > 0 {
		if err := json.Unmarshal(porSellerJSON, &meta.PorSeller); err != nil {
			return nil, fmt.Errorf("erro ao deserializar meta por seller: %w", err)
		}
	}

	if len(horariosJSON) > 0 {
		if err := json.Unmarshal(horariosJSON, &meta.HorariosColeta); err != nil {
			return nil, fmt.Errorf("erro ao deserializar horários de coleta: %w", err)
		}
	}

	return meta, nil
}

// UpsertMeta sobrescreve a meta da data. A restrição de unicidade em data
// garante no máximo uma configuração por dia.
func (r *expedicaoRepository) UpsertMeta(meta *domain.ExpedicaoMeta) error {
	var porSellerJSON []byte
	if meta.PorSeller != nil {
		serialized, err := json.Marshal(meta.PorSeller)
		if err != nil {
			return fmt.Errorf("erro ao serializar meta por seller: %w", err)
		}
		porSellerJSON = serialized
	}

	horariosJSON, err := json.Marshal(meta.HorariosColeta)
	if err != nil {
		return fmt.Errorf("erro ao serializar horários de coleta: %w", err)
	}

	metaSQL, metaArgs, err := squirrel.
		Insert("expedicao_metas").
		Columns("id", "data", "tipo_configuracao", "total", "por_seller", "horarios_coleta", "created_at", "updated_at").
		Values(
			meta.ID,
			meta.Data,
			meta.TipoConfiguracao,
			meta.Total,
			porSellerJSON,
			horariosJSON,
			meta.CreatedAt,
			meta.UpdatedAt,
		).
		Suffix(`
			ON CONFLICT (data) DO UPDATE SET
				tipo_configuracao = EXCLUDED.tipo_configuracao,
				total = EXCLUDED.total,
				por_seller = EXCLUDED.por_seller,
				horarios_coleta = EXCLUDED.horarios_coleta,
				updated_at = EXCLUDED.updated_at
		`).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	_, err = r.conn.Exec(metaSQL, metaArgs...)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return fmt.Errorf("database error: %w (code: %s)", pqErr, pqErr.Code)
		}
		return fmt.Errorf("failed to execute query: %w", err)
	}

	return nil
}

func deserializeRegistro(row rowScanner) (*domain.ExpedicaoRegistro, error) {
	registro := &domain.ExpedicaoRegistro{}

	var seller sql.NullString

	if err := row.Scan(
		&registro.ID,
		&registro.OrderID,
		&registro.MesaID,
		&seller,
		&registro.DataContabilizacao,
		&registro.CreatedAt,
	); err != nil {
		return nil, err
	}

	if seller.Valid {
		value := domain.ExpedicaoSeller(seller.String)
		registro.Seller = &value
	}

	return registro, nil
}
