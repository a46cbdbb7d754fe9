package repository

import (
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	_ "github.com/lib/pq"
	"github.com/lrodrigues/costura-backoffice-api/infrastructure/database/postgres"
	"github.com/lrodrigues/costura-backoffice-api/internal/domain"
)

const usersTable = "users u"

type UserRepository interface {
	GetByID(id string) (*domain.User, error)
	ListOwners() ([]*domain.User, error)
	GetNotifiableUsers(ownerID string) ([]*domain.User, error)
}

type userRepository struct {
	conn *postgres.Connection
}

func NewUserRepository(conn *postgres.Connection) UserRepository {
	return &userRepository{
		conn: conn,
	}
}

const userColumns = "u.id, u.username, u.email, u.role, u.owner_id, u.email_notify, u.send_email, u.created_at"

func (r *userRepository) GetByID(id string) (*domain.User, error) {
	userSQL, userArgs, err := squirrel.
		Select(userColumns).
		From(usersTable).
		Where(squirrel.Eq{"u.id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	row := r.conn.QueryRow(userSQL, userArgs...)

	user, err := deserializeUser(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return user, nil
}

// ListOwners devolve os donos de conta, que são a unidade de agendamento do
// refresh de links.
func (r *userRepository) ListOwners() ([]*domain.User, error) {
	usersSQL, usersArgs, err := squirrel.
		Select(userColumns).
		From(usersTable).
		Where(squirrel.Eq{"u.role": domain.RoleOwner}).
		OrderBy("u.created_at ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	return r.queryUsers(usersSQL, usersArgs)
}

// GetNotifiableUsers lista quem recebe o relatório de preços por e-mail após
// um refresh do tenant.
func (r *userRepository) GetNotifiableUsers(ownerID string) ([]*domain.User, error) {
	usersSQL, usersArgs, err := squirrel.
		Select(userColumns).
		From(usersTable).
		Where(squirrel.Or{
			squirrel.Eq{"u.id": ownerID},
			squirrel.Eq{"u.owner_id": ownerID},
		}).
		Where(squirrel.Eq{"u.send_email": true}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	return r.queryUsers(usersSQL, usersArgs)
}

func (r *userRepository) queryUsers(usersSQL string, usersArgs []interface{}) ([]*domain.User, error) {
	rows, err := r.conn.Query(usersSQL, usersArgs...)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	defer rows.Close()

	users := make([]*domain.User, 0)

	for rows.Next() {
		user, err := deserializeUser(rows)
		if err != nil {
			return nil, err
		}

		users = append(users, user)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao iterar sobre os resultados: %w", err)
	}

	return users, nil
}

func deserializeUser(row rowScanner) (*domain.User, error) {
	user := &domain.User{}

	var ownerID sql.NullString

	if err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.Role,
		&ownerID,
		&user.EmailNotify,
		&user.SendEmail,
		&user.CreatedAt,
	); err != nil {
		return nil, err
	}

	if ownerID.Valid {
		user.OwnerID = ownerID.String
	}

	return user, nil
}
