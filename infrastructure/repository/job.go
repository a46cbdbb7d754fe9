package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	_ "github.com/lib/pq"
	"github.com/lrodrigues/costura-backoffice-api/infrastructure/database/postgres"
	"github.com/lrodrigues/costura-backoffice-api/internal/domain"
)

const jobsTable = "jobs j"

// JobFilter controla a listagem de jobs. Arquivados ficam de fora por padrão;
// a inclusão é sempre uma decisão explícita de quem consulta.
type JobFilter struct {
	OwnerID         string
	FaccionistaID   string
	Lote            string
	From            *time.Time
	To              *time.Time
	IncludeArchived bool
}

type JobRepository interface {
	GetByID(id, ownerID string) (*domain.Job, error)
	ListByIDs(ids []string, ownerID string) ([]*domain.Job, error)
	Create(job *domain.Job) error
	Update(job *domain.Job) error
	List(filter JobFilter) ([]*domain.Job, error)
}

type jobRepository struct {
	conn *postgres.Connection
}

func NewJobRepository(conn *postgres.Connection) JobRepository {
	return &jobRepository{
		conn: conn,
	}
}

const jobColumns = "j.id, j.lote, j.data, j.qtd, j.larg, j.compr, j.emenda, " +
	"j.tot_metros, j.orcamento, j.recebido_conferido, j.data_recebido_conferido, " +
	"j.lote_pronto, j.data_lote_pronto, j.recebido, j.aprovado, j.em_analise, " +
	"j.pago, j.data_pgto, j.rate_lote, j.advanced_money_payment, j.observacao, " +
	"j.is_archived, j.faccionista_id, j.owner_id, j.created_at, j.updated_at"

func (r *jobRepository) GetByID(id, ownerID string) (*domain.Job, error) {
	jobSQL, jobArgs, err := squirrel.
		Select(jobColumns).
		From(jobsTable).
		Where(squirrel.Eq{"j.id": id, "j.owner_id": ownerID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	row := r.conn.QueryRow(jobSQL, jobArgs...)

	job, err := deserializeJob(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return job, nil
}

func (r *jobRepository) ListByIDs(ids []string, ownerID string) ([]*domain.Job, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	jobsSQL, jobsArgs, err := squirrel.
		Select(jobColumns).
		From(jobsTable).
		Where(squirrel.Eq{"j.id": ids, "j.owner_id": ownerID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	return r.queryJobs(jobsSQL, jobsArgs)
}

func (r *jobRepository) Create(job *domain.Job) error {
	jobSQL, jobArgs, err := squirrel.
		Insert("jobs").
		Columns(
			"id", "lote", "data", "qtd", "larg", "compr", "emenda",
			"tot_metros", "orcamento", "recebido_conferido", "data_recebido_conferido",
			"lote_pronto", "data_lote_pronto", "recebido", "aprovado", "em_analise",
			"pago", "data_pgto", "rate_lote", "advanced_money_payment", "observacao",
			"is_archived", "faccionista_id", "owner_id", "created_at", "updated_at",
		).
		Values(
			job.ID, job.Lote, job.Data, job.Qtd, job.Larg, job.Compr, job.Emenda,
			job.TotMetros, job.Orcamento, job.RecebidoConferido, job.DataRecebidoConferido,
			job.LotePronto, job.DataLotePronto, job.Recebido, job.Aprovado, job.EmAnalise,
			job.Pago, job.DataPgto, job.RateLote, job.AdvancedMoneyPayment, job.Observacao,
			job.IsArchived, job.FaccionistaID, job.OwnerID, job.CreatedAt, job.UpdatedAt,
		).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	_, err = r.conn.Exec(jobSQL, jobArgs...)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return fmt.Errorf("database error: %w (code: %s)", pqErr, pqErr.Code)
		}
		return fmt.Errorf("failed to execute query: %w", err)
	}

	return nil
}

func (r *jobRepository) Update(job *domain.Job) error {
	jobSQL, jobArgs, err := squirrel.
		Update("jobs").
		Set("lote", job.Lote).
		Set("data", job.Data).
		Set("qtd", job.Qtd).
		Set("larg", job.Larg).
		Set("compr", job.Compr).
		Set("emenda", job.Emenda).
		Set("tot_metros", job.TotMetros).
		Set("orcamento", job.Orcamento).
		Set("recebido_conferido", job.RecebidoConferido).
		Set("data_recebido_conferido", job.DataRecebidoConferido).
		Set("lote_pronto", job.LotePronto).
		Set("data_lote_pronto", job.DataLotePronto).
		Set("recebido", job.Recebido).
		Set("aprovado", job.Aprovado).
		Set("em_analise", job.EmAnalise).
		Set("pago", job.Pago).
		Set("data_pgto", job.DataPgto).
		Set("rate_lote", job.RateLote).
		Set("advanced_money_payment", job.AdvancedMoneyPayment).
		Set("observacao", job.Observacao).
		Set("is_archived", job.IsArchived).
		Set("updated_at", job.UpdatedAt).
		Where(squirrel.Eq{"id": job.ID, "owner_id": job.OwnerID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	result, err := r.conn.Exec(jobSQL, jobArgs...)
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

func (r *jobRepository) List(filter JobFilter) ([]*domain.Job, error) {
	queryBuilder := squirrel.
		Select(jobColumns).
		From(jobsTable).
		Where(squirrel.Eq{"j.owner_id": filter.OwnerID}).
		OrderBy("j.data DESC, j.created_at DESC").
		PlaceholderFormat(squirrel.Dollar)

	if !filter.IncludeArchived {
		queryBuilder = queryBuilder.Where(squirrel.NotEq{"j.is_archived": true})
	}

	if filter.FaccionistaID != "" {
		queryBuilder = queryBuilder.Where(squirrel.Eq{"j.faccionista_id": filter.FaccionistaID})
	}

	if filter.Lote != "" {
		queryBuilder = queryBuilder.Where(squirrel.Eq{"j.lote": filter.Lote})
	}

	if filter.From != nil {
		queryBuilder = queryBuilder.Where(squirrel.GtOrEq{"j.data": *filter.From})
	}

	if filter.To != nil {
		queryBuilder = queryBuilder.Where(squirrel.LtOrEq{"j.data": *filter.To})
	}

	jobsSQL, jobsArgs, err := queryBuilder.ToSql()
	if err != nil {
		return nil, err
	}

	return r.queryJobs(jobsSQL, jobsArgs)
}

func (r *jobRepository) queryJobs(jobsSQL string, jobsArgs []interface{}) ([]*domain.Job, error) {
	rows, err := r.conn.Query(jobsSQL, jobsArgs...)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	defer rows.Close()

	jobs := make([]*domain.Job, 0)

	for rows.Next() {
		job, err := deserializeJob(rows)
		if err != nil {
			return nil, err
		}

		jobs = append(jobs, job)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao iterar sobre os resultados: %w", err)
	}

	return jobs, nil
}

func deserializeJob(row rowScanner) (*domain.Job, error) {
	job := &domain.Job{}

	if err := row.Scan(
		&job.ID,
		&job.Lote,
		&job.Data,
		&job.Qtd,
		&job.Larg,
		&job.Compr,
		&job.Emenda,
		&job.TotMetros,
		&job.Orcamento,
		&job.RecebidoConferido,
		&job.DataRecebidoConferido,
		&job.LotePronto,
		&job.DataLotePronto,
		&job.Recebido,
		&job.Aprovado,
		&job.EmAnalise,
		&job.Pago,
		&job.DataPgto,
		&job.RateLote,
		&job.AdvancedMoneyPayment,
		&job.Observacao,
		&job.IsArchived,
		&job.FaccionistaID,
		&job.OwnerID,
		&job.CreatedAt,
		&job.UpdatedAt,
	); err != nil {
		return nil, err
	}

	return job, nil
}
