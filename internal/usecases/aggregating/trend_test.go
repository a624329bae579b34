package aggregating

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mwenda-Eric/bvaccess-api/internal/domain"
)

func TestBuildTrend_GapFilling(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	window := domain.TimeRange{Start: start, End: start.AddDate(0, 0, 7)}

	// Vendas em apenas 2 dos 7 dias
	records := []*domain.VoucherRecord{
		voucherAt("v1", start.Add(26*time.Hour), 50),
		voucherAt("v2", start.Add(27*time.Hour), 75),
		voucherAt("v3", start.AddDate(0, 0, 5).Add(10*time.Hour), 25),
	}

	points, err := BuildTrend(records, window, domain.BucketDay, time.UTC)
	require.NoError(t, err)
	require.Len(t, points, 7, "série de 7 dias deve ter exatamente 7 pontos")

	empty := 0
	for _, p := range points {
		if p.SalesCount == 0 {
			empty++
			assert.True(t, p.Revenue.IsZero())
		}
	}
	assert.Equal(t, 5, empty, "dias sem venda aparecem zerados, não somem")

	assert.Equal(t, "2024-01-02", points[1].Label)
	assert.Equal(t, 2, points[1].SalesCount)
	assert.True(t, decimal.NewFromInt(125).Equal(points[1].Revenue))
}

func TestBuildTrend_HourlySingleDay(t *testing.T) {
	day := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	window := domain.DayRange(day, time.UTC)

	records := []*domain.VoucherRecord{
		voucherAt("v1", day.Add(14*time.Hour+30*time.Minute), 50),
	}

	points, err := BuildTrend(records, window, domain.BucketHour, time.UTC)
	require.NoError(t, err)
	require.Len(t, points, 24)

	assert.Equal(t, "14:00", points[14].Label)
	assert.Equal(t, 1, points[14].SalesCount)
	assert.Equal(t, 0, points[13].SalesCount)
}

func TestBuildTrend_Monthly(t *testing.T) {
	start := time.Date(2023, 2, 1, 0, 0, 0, 0, time.UTC)
	window := domain.TimeRange{Start: start, End: start.AddDate(1, 0, 0)}

	records := []*domain.VoucherRecord{
		voucherAt("v1", time.Date(2023, 7, 15, 12, 0, 0, 0, time.UTC), 150),
	}

	points, err := BuildTrend(records, window, domain.BucketMonth, time.UTC)
	require.NoError(t, err)
	require.Len(t, points, 12)

	assert.Equal(t, "02-2023", points[0].Label)
	assert.Equal(t, "07-2023", points[5].Label)
	assert.Equal(t, 1, points[5].SalesCount)
}

func TestBuildTrend_BoundaryBelongsToNextBucket(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	window := domain.TimeRange{Start: start, End: start.AddDate(0, 0, 2)}

	// Criado exatamente à meia-noite do dia 2: pertence ao bucket do dia 2
	records := []*domain.VoucherRecord{
		voucherAt("v1", start.AddDate(0, 0, 1), 50),
	}

	points, err := BuildTrend(records, window, domain.BucketDay, time.UTC)
	require.NoError(t, err)
	require.Len(t, points, 2)

	assert.Equal(t, 0, points[0].SalesCount)
	assert.Equal(t, 1, points[1].SalesCount)
}

func TestBuildTrend_VoidsCountedByVoidInstant(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	window := domain.TimeRange{Start: start, End: start.AddDate(0, 0, 3)}

	// Criado no dia 1, anulado no dia 3
	records := []*domain.VoucherRecord{
		voidedVoucherAt("v1", start.Add(10*time.Hour), start.AddDate(0, 0, 2).Add(9*time.Hour), 50),
	}

	points, err := BuildTrend(records, window, domain.BucketDay, time.UTC)
	require.NoError(t, err)
	require.Len(t, points, 3)

	assert.Equal(t, 0, points[0].VoidedCount)
	assert.Equal(t, 1, points[2].VoidedCount)
	assert.Equal(t, 0, points[0].SalesCount, "voucher anulado não conta como venda")
}

func TestBuildTrend_InvalidRange(t *testing.T) {
	start := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	window := domain.TimeRange{Start: start, End: start.AddDate(0, 0, -1)}

	_, err := BuildTrend(nil, window, domain.BucketDay, time.UTC)
	assert.ErrorIs(t, err, domain.ErrInvalidRange)
}
