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

const jobChangesTable = "job_changes jc"

// JobChangeFilter restringe a consulta do log de auditoria
type JobChangeFilter struct {
	OwnerID string
	JobID   string
	Lote    string
	From    *time.Time
	To      *time.Time
	Limit   uint64
}

// JobLogRepository é o log de auditoria dos jobs. Apenas inserção e leitura;
// não existe atualização nem remoção de entradas.
type JobLogRepository interface {
	Append(change *domain.JobChange) error
	List(filter JobChangeFilter) ([]*domain.JobChange, error)
}

type jobLogRepository struct {
	conn *postgres.Connection
}

func NewJobLogRepository(conn *postgres.Connection) JobLogRepository {
	return &jobLogRepository{
		conn: conn,
	}
}

func (r *jobLogRepository) Append(change *domain.JobChange) error {
	changeSQL, changeArgs, err := squirrel.
		Insert("job_changes").
		Columns("id", "job_id", "user_id", "action", "field", "old_value", "new_value", "owner_id", "timestamp").
		Values(
			change.ID,
			change.JobID,
			change.UserID,
			change.Action,
			change.Field,
			change.OldValue,
			change.NewValue,
			change.OwnerID,
			change.Timestamp,
		).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	_, err = r.conn.Exec(changeSQL, changeArgs...)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return fmt.Errorf("database error: %w (code: %s)", pqErr, pqErr.Code)
		}
		return fmt.Errorf("failed to execute query: %w", err)
	}

	return nil
}

func (r *jobLogRepository) List(filter JobChangeFilter) ([]*domain.JobChange, error) {
	queryBuilder := squirrel.
		Select("jc.id, jc.job_id, jc.user_id, jc.action, jc.field, jc.old_value, jc.new_value, jc.owner_id, jc.timestamp").
		From(jobChangesTable).
		Where(squirrel.Eq{"jc.owner_id": filter.OwnerID}).
		OrderBy("jc.timestamp DESC").
		PlaceholderFormat(squirrel.Dollar)

	if filter.JobID != "" {
		queryBuilder = queryBuilder.Where(squirrel.Eq{"jc.job_id": filter.JobID})
	}

	if filter.Lote != "" {
		queryBuilder = queryBuilder.
			Join("jobs j ON jc.job_id = j.id").
			Where(squirrel.Eq{"j.lote": filter.Lote})
	}

	if filter.From != nil {
		queryBuilder = queryBuilder.Where(squirrel.GtOrEq{"jc.timestamp": *filter.From})
	}

	if filter.To != nil {
		queryBuilder = queryBuilder.Where(squirrel.LtOrEq{"jc.timestamp": *filter.To})
	}

	if filter.Limit > 0 {
		queryBuilder = queryBuilder.Limit(filter.Limit)
	}

	changesSQL, changesArgs, err := queryBuilder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.conn.Query(changesSQL, changesArgs...)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	defer rows.Close()

	changes := make([]*domain.JobChange, 0)

	for rows.Next() {
		change := &domain.JobChange{}

		if err := rows.Scan(
			&change.ID,
			&change.JobID,
			&change.UserID,
			&change.Action,
			&change.Field,
			&change.OldValue,
			&change.NewValue,
			&change.OwnerID,
			&change.Timestamp,
		); err != nil {
			return nil, err
		}

		changes = append(changes, change)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao iterar sobre os resultados: %w", err)
	}

	return changes, nil
}
