package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	jsoniter "github.com/json-iterator/go"
	"github.com/lib/pq"

	"github.com/Mwenda-Eric/bvaccess-api/infrastructure/database/postgres"
	"github.com/Mwenda-Eric/bvaccess-api/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	reportSnapshotsTable = "report_snapshots rs"
)

// ReportSnapshotRepository persiste relatórios diários já montados. O
// relatório completo vai em uma coluna JSONB; dias fechados não mudam, então
// o snapshot serve leituras históricas sem reagregar vouchers.
type ReportSnapshotRepository interface {
	GetByDate(date time.Time) (*domain.DailyReport, error)
	SaveOrUpdate(report *domain.DailyReport) error
	DeleteOlderThan(days int) (int64, error)
}

type reportSnapshotRepository struct {
	conn *postgres.Connection
}

func NewReportSnapshotRepository(conn *postgres.Connection) ReportSnapshotRepository {
	return &reportSnapshotRepository{
		conn: conn,
	}
}

func (r *reportSnapshotRepository) GetByDate(date time.Time) (*domain.DailyReport, error) {
	query, args, err := squirrel.
		Select("rs.report").
		From(reportSnapshotsTable).
		Where(squirrel.Eq{"rs.date": date.Format(time.DateOnly)}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	var reportJSON []byte
	if err := r.conn.QueryRow(query, args...).Scan(&reportJSON); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear snapshot: %w", err)
	}

	report := &domain.DailyReport{}
	if err := json.Unmarshal(reportJSON, report); err != nil {
		return nil, fmt.Errorf("erro ao deserializar JSON do relatório: %w", err)
	}

	return report, nil
}

func (r *reportSnapshotRepository) SaveOrUpdate(report *domain.DailyReport) error {
	reportJSON, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("erro ao serializar relatório para JSON: %w", err)
	}

	query := squirrel.StatementBuilder.
		Insert("report_snapshots").
		Columns("date", "report").
		Values(report.Date, reportJSON).
		Suffix(`
			ON CONFLICT (date) DO UPDATE SET
				report = EXCLUDED.report,
				updated_at = NOW()
		`).
		PlaceholderFormat(squirrel.Dollar)

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	_, err = r.conn.Exec(sqlQuery, args...)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return fmt.Errorf("erro no banco de dados: %w (código: %s)", pqErr, pqErr.Code)
		}
		return fmt.Errorf("erro ao executar a query: %w", err)
	}

	return nil
}

func (r *reportSnapshotRepository) DeleteOlderThan(days int) (int64, error) {
	cutoffDate := time.Now().AddDate(0, 0, -days).Format(time.DateOnly)

	query, args, err := squirrel.
		Delete("report_snapshots").
		Where(squirrel.Lt{"date": cutoffDate}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	result, err := r.conn.Exec(query, args...)
	if err != nil {
		return 0, fmt.Errorf("erro ao executar a query: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("erro ao obter número de linhas afetadas: %w", err)
	}

	return rowsAffected, nil
}
