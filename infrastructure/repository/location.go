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
	locationsTable  = "locations l"
	locationColumns = "l.id, l.name, l.address, l.active, l.created_at, l.updated_at"
)

type LocationRepository interface {
	List(onlyActive bool) ([]*domain.Location, error)
	GetByID(id string) (*domain.Location, error)
	Insert(location *domain.Location) error
	Update(request *domain.UpdateLocationRequest) error
}

type locationRepository struct {
	conn *postgres.Connection
}

func NewLocationRepository(conn *postgres.Connection) LocationRepository {
	return &locationRepository{
		conn: conn,
	}
}

func (r *locationRepository) List(onlyActive bool) ([]*domain.Location, error) {
	builder := squirrel.
		Select(locationColumns).
		From(locationsTable)

	if onlyActive {
		builder = builder.Where(squirrel.Eq{"l.active": true})
	}

	query, args, err := builder.
		OrderBy("l.name ASC").
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

	locations := make([]*domain.Location, 0)
	for rows.Next() {
		location, err := r.scanLocation(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear localidades: %w", err)
		}
		locations = append(locations, location)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return locations, nil
}

func (r *locationRepository) GetByID(id string) (*domain.Location, error) {
	query, args, err := squirrel.
		Select(locationColumns).
		From(locationsTable).
		Where(squirrel.Eq{"l.id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	row := r.conn.QueryRow(query, args...)
	location, err := r.scanLocation(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear localidade: %w", err)
	}

	return location, nil
}

func (r *locationRepository) Insert(location *domain.Location) error {
	query, args, err := squirrel.
		Insert("locations").
		Columns("id", "name", "address", "active").
		Values(location.ID, location.Name, location.Address, location.Active).
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

func (r *locationRepository) Update(request *domain.UpdateLocationRequest) error {
	builder := squirrel.
		Update("locations").
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": request.ID})

	if request.Name != nil {
		builder = builder.Set("name", *request.Name)
	}
	if request.Address != nil {
		builder = builder.Set("address", *request.Address)
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

func (r *locationRepository) scanLocation(row rowScanner) (*domain.Location, error) {
	location := &domain.Location{}
	var address sql.NullString

	err := row.Scan(
		&location.ID,
		&location.Name,
		&address,
		&location.Active,
		&location.CreatedAt,
		&location.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if address.Valid {
		location.Address = &address.String
	}

	return location, nil
}
