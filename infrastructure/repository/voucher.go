package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/Mwenda-Eric/bvaccess-api/infrastructure/database/postgres"
	"github.com/Mwenda-Eric/bvaccess-api/internal/domain"
)

const (
	vouchersTable   = "vouchers v"
	voucherColumns  = "v.id, v.code, v.created_at, v.price, v.duration_minutes, v.bandwidth, v.payment_method, v.buyer_info, v.location_id, v.location_name, v.operator_id, v.operator_name, v.expires_at, v.is_void, v.voided_at, v.voided_by_id, v.voided_by_name, v.void_reason"
	maxVoucherLimit = 500
)

type VoucherRepository interface {
	GetByID(id string) (*domain.VoucherRecord, error)
	GetByActivityRange(start, end time.Time) ([]*domain.VoucherRecord, error)
	List(filters domain.VoucherFilters) ([]*domain.VoucherRecord, error)
	ListRecent(limit int) ([]*domain.VoucherRecord, error)
	Insert(voucher *domain.VoucherRecord) error
	SaveOrUpdate(voucher *domain.VoucherRecord) error
	MarkVoid(id string, voidedAt time.Time, reason, byID, byName string) error
	CountDistinctOperatorsSince(since time.Time) (int, error)
}

type voucherRepository struct {
	conn *postgres.Connection
}

func NewVoucherRepository(conn *postgres.Connection) VoucherRepository {
	return &voucherRepository{
		conn: conn,
	}
}

func (r *voucherRepository) GetByID(id string) (*domain.VoucherRecord, error) {
	query, args, err := squirrel.
		Select(voucherColumns).
		From(vouchersTable).
		Where(squirrel.Eq{"v.id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	row := r.conn.QueryRow(query, args...)
	voucher, err := r.scanVoucher(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear voucher: %w", err)
	}

	return voucher, nil
}

// GetByActivityRange retorna vouchers com atividade no intervalo meio-aberto
// [start, end): criados nele ou anulados nele. Os agregadores precisam das
// duas populações para atribuir anulações à janela da anulação.
func (r *voucherRepository) GetByActivityRange(start, end time.Time) ([]*domain.VoucherRecord, error) {
	query, args, err := squirrel.
		Select(voucherColumns).
		From(vouchersTable).
		Where(squirrel.Or{
			squirrel.And{
				squirrel.GtOrEq{"v.created_at": start},
				squirrel.Lt{"v.created_at": end},
			},
			squirrel.And{
				squirrel.GtOrEq{"v.voided_at": start},
				squirrel.Lt{"v.voided_at": end},
			},
		}).
		OrderBy("v.created_at ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	return r.queryVouchers(query, args...)
}

// List aplica os filtros armazenáveis no banco. O status efetivo depende do
// relógio, então o filtro por status fica na camada de caso de uso.
func (r *voucherRepository) List(filters domain.VoucherFilters) ([]*domain.VoucherRecord, error) {
	builder := squirrel.
		Select(voucherColumns).
		From(vouchersTable)

	if len(filters.LocationIDs) > 0 {
		builder = builder.Where(squirrel.Eq{"v.location_id": filters.LocationIDs})
	}
	if len(filters.OperatorIDs) > 0 {
		builder = builder.Where(squirrel.Eq{"v.operator_id": filters.OperatorIDs})
	}
	if filters.PaymentMethod != nil {
		builder = builder.Where(squirrel.Eq{"v.payment_method": string(*filters.PaymentMethod)})
	}
	if filters.DurationMinutes != nil {
		builder = builder.Where(squirrel.Eq{"v.duration_minutes": *filters.DurationMinutes})
	}
	if filters.DateFrom != nil {
		builder = builder.Where(squirrel.GtOrEq{"v.created_at": *filters.DateFrom})
	}
	if filters.DateTo != nil {
		builder = builder.Where(squirrel.Lt{"v.created_at": *filters.DateTo})
	}
	if filters.Search != "" {
		builder = builder.Where(squirrel.ILike{"v.code": "%" + filters.Search + "%"})
	}

	limit := filters.Limit
	if limit <= 0 || limit > maxVoucherLimit {
		limit = maxVoucherLimit
	}
	offset := filters.Offset
	if offset < 0 {
		offset = 0
	}

	query, args, err := builder.
		OrderBy("v.created_at DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	return r.queryVouchers(query, args...)
}

func (r *voucherRepository) ListRecent(limit int) ([]*domain.VoucherRecord, error) {
	if limit <= 0 || limit > maxVoucherLimit {
		limit = 10
	}

	query, args, err := squirrel.
		Select(voucherColumns).
		From(vouchersTable).
		OrderBy("v.created_at DESC").
		Limit(uint64(limit)).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	return r.queryVouchers(query, args...)
}

func (r *voucherRepository) Insert(voucher *domain.VoucherRecord) error {
	query, args, err := squirrel.
		Insert("vouchers").
		Columns(voucherInsertColumns()...).
		Values(voucherInsertValues(voucher)...).
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

// SaveOrUpdate é o caminho da sincronização com o hotspot: registros já
// vistos são atualizados, mas uma anulação nunca é desfeita pelo upsert.
func (r *voucherRepository) SaveOrUpdate(voucher *domain.VoucherRecord) error {
	query := squirrel.StatementBuilder.
		Insert("vouchers").
		Columns(voucherInsertColumns()...).
		Values(voucherInsertValues(voucher)...).
		Suffix(`
			ON CONFLICT (id) DO UPDATE SET
				location_name = EXCLUDED.location_name,
				operator_name = EXCLUDED.operator_name,
				buyer_info = COALESCE(EXCLUDED.buyer_info, vouchers.buyer_info),
				is_void = vouchers.is_void OR EXCLUDED.is_void,
				voided_at = COALESCE(vouchers.voided_at, EXCLUDED.voided_at),
				voided_by_id = COALESCE(vouchers.voided_by_id, EXCLUDED.voided_by_id),
				voided_by_name = COALESCE(vouchers.voided_by_name, EXCLUDED.voided_by_name),
				void_reason = COALESCE(vouchers.void_reason, EXCLUDED.void_reason),
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

func (r *voucherRepository) MarkVoid(id string, voidedAt time.Time, reason, byID, byName string) error {
	query, args, err := squirrel.
		Update("vouchers").
		Set("is_void", true).
		Set("voided_at", voidedAt).
		Set("void_reason", reason).
		Set("voided_by_id", byID).
		Set("voided_by_name", byName).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "is_void": false}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	result, err := r.conn.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("erro ao executar a query: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("erro ao obter número de linhas afetadas: %w", err)
	}
	if rowsAffected == 0 {
		return domain.ErrVoucherAlreadyVoid
	}

	return nil
}

func (r *voucherRepository) CountDistinctOperatorsSince(since time.Time) (int, error) {
	query, args, err := squirrel.
		Select("COUNT(DISTINCT v.operator_id)").
		From(vouchersTable).
		Where(squirrel.GtOrEq{"v.created_at": since}).
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

func (r *voucherRepository) queryVouchers(query string, args ...interface{}) ([]*domain.VoucherRecord, error) {
	rows, err := r.conn.Query(query, args...)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	vouchers := make([]*domain.VoucherRecord, 0)
	for rows.Next() {
		voucher, err := r.scanVoucher(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear vouchers: %w", err)
		}
		vouchers = append(vouchers, voucher)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return vouchers, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *voucherRepository) scanVoucher(row rowScanner) (*domain.VoucherRecord, error) {
	voucher := &domain.VoucherRecord{}
	var price string
	var buyerInfo, voidedByID, voidedByName, voidReason sql.NullString
	var voidedAt sql.NullTime

	err := row.Scan(
		&voucher.ID,
		&voucher.Code,
		&voucher.CreatedAt,
		&price,
		&voucher.DurationMinutes,
		&voucher.Bandwidth,
		&voucher.PaymentMethod,
		&buyerInfo,
		&voucher.LocationID,
		&voucher.LocationName,
		&voucher.OperatorID,
		&voucher.OperatorName,
		&voucher.ExpiresAt,
		&voucher.IsVoid,
		&voidedAt,
		&voidedByID,
		&voidedByName,
		&voidReason,
	)
	if err != nil {
		return nil, err
	}

	parsedPrice, err := decimal.NewFromString(price)
	if err != nil {
		return nil, fmt.Errorf("erro ao converter preço: %w", err)
	}
	voucher.Price = parsedPrice

	if buyerInfo.Valid {
		voucher.BuyerInfo = &buyerInfo.String
	}
	if voidedAt.Valid {
		voucher.VoidedAt = &voidedAt.Time
	}
	if voidedByID.Valid {
		voucher.VoidedByID = &voidedByID.String
	}
	if voidedByName.Valid {
		voucher.VoidedByName = &voidedByName.String
	}
	if voidReason.Valid {
		voucher.VoidReason = &voidReason.String
	}

	return voucher, nil
}

func voucherInsertColumns() []string {
	return []string{
		"id", "code", "created_at", "price", "duration_minutes", "bandwidth",
		"payment_method", "buyer_info", "location_id", "location_name",
		"operator_id", "operator_name", "expires_at", "is_void", "voided_at",
		"voided_by_id", "voided_by_name", "void_reason",
	}
}

func voucherInsertValues(voucher *domain.VoucherRecord) []interface{} {
	return []interface{}{
		voucher.ID,
		voucher.Code,
		voucher.CreatedAt,
		voucher.Price,
		voucher.DurationMinutes,
		string(voucher.Bandwidth),
		string(voucher.PaymentMethod),
		voucher.BuyerInfo,
		voucher.LocationID,
		voucher.LocationName,
		voucher.OperatorID,
		voucher.OperatorName,
		voucher.ExpiresAt,
		voucher.IsVoid,
		voucher.VoidedAt,
		voucher.VoidedByID,
		voucher.VoidedByName,
		voucher.VoidReason,
	}
}
