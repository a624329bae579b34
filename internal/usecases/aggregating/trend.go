package aggregating

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Mwenda-Eric/bvaccess-api/internal/domain"
)

// monthLabelFormat segue o formato mm-yyyy usado nas visões de 12 meses
const monthLabelFormat = "01-2006"

// BuildTrend produz a série temporal da janela na granularidade pedida.
//
// A lista completa de buckets é gerada ANTES de distribuir os registros,
// de modo que buckets vazios apareçam zerados em vez de sumirem da série.
// Cada registro cai em exatamente um bucket pela semântica semiaberta:
// um voucher criado exatamente na fronteira pertence ao bucket seguinte.
func BuildTrend(records []*domain.VoucherRecord, window domain.TimeRange, bucket domain.BucketSize, loc *time.Location) ([]domain.TrendPoint, error) {
	if !window.End.After(window.Start) {
		return nil, domain.ErrInvalidRange
	}
	if loc == nil {
		loc = time.UTC
	}

	points, index, err := seedBuckets(window, bucket, loc)
	if err != nil {
		return nil, err
	}

	for _, rec := range records {
		if rec == nil {
			continue
		}

		if !rec.IsVoid && window.Contains(rec.CreatedAt) {
			if i, ok := index[truncate(rec.CreatedAt, bucket, loc).Unix()]; ok {
				points[i].SalesCount++
				points[i].Revenue = points[i].Revenue.Add(rec.Price)
			}
		}

		// Anulações entram na série pelo instante da anulação
		if rec.IsVoid && rec.VoidedAt != nil && window.Contains(*rec.VoidedAt) {
			if i, ok := index[truncate(*rec.VoidedAt, bucket, loc).Unix()]; ok {
				points[i].VoidedCount++
			}
		}
	}

	return points, nil
}

// seedBuckets gera todos os buckets da janela, vazios, em ordem cronológica
func seedBuckets(window domain.TimeRange, bucket domain.BucketSize, loc *time.Location) ([]domain.TrendPoint, map[int64]int, error) {
	points := make([]domain.TrendPoint, 0)
	index := make(map[int64]int)

	cursor := truncate(window.Start, bucket, loc)
	for cursor.Before(window.End) {
		index[cursor.Unix()] = len(points)
		points = append(points, domain.TrendPoint{
			Bucket:  cursor,
			Label:   bucketLabel(cursor, bucket),
			Revenue: decimal.Zero,
		})
		cursor = advance(cursor, bucket)
	}

	if len(points) == 0 {
		return nil, nil, domain.ErrInvalidRange
	}

	return points, index, nil
}

// truncate normaliza o instante para o início do bucket que o contém
func truncate(t time.Time, bucket domain.BucketSize, loc *time.Location) time.Time {
	t = t.In(loc)
	switch bucket {
	case domain.BucketHour:
		return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), 0, 0, 0, loc)
	case domain.BucketMonth:
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, loc)
	default:
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
	}
}

func advance(t time.Time, bucket domain.BucketSize) time.Time {
	switch bucket {
	case domain.BucketHour:
		return t.Add(time.Hour)
	case domain.BucketMonth:
		return t.AddDate(0, 1, 0)
	default:
		return t.AddDate(0, 0, 1)
	}
}

func bucketLabel(t time.Time, bucket domain.BucketSize) string {
	switch bucket {
	case domain.BucketHour:
		return fmt.Sprintf("%02d:00", t.Hour())
	case domain.BucketMonth:
		return t.Format(monthLabelFormat)
	default:
		return t.Format(time.DateOnly)
	}
}
