package repository

import (
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/Mwenda-Eric/bvaccess-api/infrastructure/database/postgres"
	"github.com/Mwenda-Eric/bvaccess-api/internal/domain"
)

const (
	operatorsTable  = "operators o"
	operatorColumns = "o.id, o.username, o.full_name, o.location_id, l.name, o.active, o.created_at, o.updated_at"
)

type OperatorRepository interface {
	List(onlyActive bool) ([]*domain.Operator, error)
	GetByID(id string) (*domain.Operator, error)
	Insert(operator *domain.Operator) error
	Update(request *domain.UpdateOperatorRequest) error
	Count(onlyActive bool) (int, error)
}

type operatorRepository struct {
	conn *postgres.Connection
}

func NewOperatorRepository(conn *postgres.Connection) OperatorRepository {
	return &operatorRepository{
		conn: conn,
	}
}

func (r *operatorRepository) List(onlyActive bool) ([]*domain.Operator, error) {
	builder := squirrel.
		Select(operatorColumns).
		From(operatorsTable).
		Join("locations l ON l.id = o.location_id")

	if onlyActive {
		builder = builder.Where(squirrel.Eq{"o.active": true})
	}

	query, args, err := builder.
		OrderBy("o.full_name ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(query, args...)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	operators := make([]*domain.Operator, 0)
	for rows.Next() {
		operator, err := r.scanOperator(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear operadores: %w", err)
		}
		operators = append(operators, operator)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return operators, nil
}

func (r *operatorRepository) GetByID(id string) (*domain.Operator, error) {
	query, args, err := squirrel.
		Select(operatorColumns).
		From(operatorsTable).
		Join("locations l ON l.id = o.location_id").
		Where(squirrel.Eq{"o.id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	row := r.conn.QueryRow(query, args...)
	operator, err := r.scanOperator(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear operador: %w", err)
	}

	return operator, nil
}

func (r *operatorRepository) Insert(operator *domain.Operator) error {
	query, args, err := squirrel.
		Insert("operators").
		Columns("id", "username", "full_name", "location_id", "active").
		Values(
			operator.ID,
			operator.Username,
			operator.FullName,
			operator.LocationID,
			operator.Active,
		).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	_, err = r.conn.Exec(query, args...)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return fmt.Errorf("erro no banco de dados: %w (código: %s)", pqErr, pqErr.Code)
		}
		return fmt.Errorf("erro ao executar a query: %w", err)
	}

	return nil
}

func (r *operatorRepository) Update(request *domain.UpdateOperatorRequest) error {
	builder := squirrel.
		Update("operators").
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": request.ID})

	if request.FullName != nil {
		builder = builder.Set("full_name", *request.FullName)
	}
	if request.LocationID != nil {
		builder = builder.Set("location_id", *request.LocationID)
	}
	if request.Active != nil {
		builder = builder.Set("active", *request.Active)
	}

	query, args, err := builder.
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	_, err = r.conn.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("erro ao executar a query: %w", err)
	}

	return nil
}

func (r *operatorRepository) Count(onlyActive bool) (int, error) {
	builder := squirrel.
		Select("COUNT(o.id)").
		From(operatorsTable)

	if onlyActive {
		builder = builder.Where(squirrel.Eq{"o.active": true})
	}

	query, args, err := builder.
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	var count int
	if err := r.conn.QueryRow(query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("erro ao escanear contagem de operadores: %w", err)
	}

	return count, nil
}

func (r *operatorRepository) scanOperator(row rowScanner) (*domain.Operator, error) {
	operator := &domain.Operator{}

	err := row.Scan(
		&operator.ID,
		&operator.Username,
		&operator.FullName,
		&operator.LocationID,
		&operator.LocationName,
		&operator.Active,
		&operator.CreatedAt,
		&operator.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return operator, nil
}
