package aggregating

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mwenda-Eric/bvaccess-api/internal/domain"
)

func voucherAt(id string, createdAt time.Time, price int64) *domain.VoucherRecord {
	return &domain.VoucherRecord{
		ID:              id,
		Code:            "WIFI-" + id,
		CreatedAt:       createdAt,
		Price:           decimal.NewFromInt(price),
		DurationMinutes: 60,
		PaymentMethod:   domain.PaymentMethodCash,
		LocationID:      "loc-1",
		LocationName:    "Terminal Norte",
		OperatorID:      "op-1",
		OperatorName:    "Marie Joseph",
		ExpiresAt:       domain.ExpiresAtFrom(createdAt, 60),
	}
}

func voidedVoucherAt(id string, createdAt, voidedAt time.Time, price int64) *domain.VoucherRecord {
	rec := voucherAt(id, createdAt, price)
	rec.IsVoid = true
	rec.VoidedAt = &voidedAt
	reason := "erro de digitação"
	rec.VoidReason = &reason
	return rec
}

func dayWindow(t *testing.T, date string) domain.TimeRange {
	t.Helper()
	day, err := time.Parse(time.DateOnly, date)
	require.NoError(t, err)
	return domain.DayRange(day, time.UTC)
}

func TestAggregate(t *testing.T) {
	day := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	window := dayWindow(t, "2024-01-01")

	tests := []struct {
		name     string
		records  []*domain.VoucherRecord
		window   domain.TimeRange
		expected domain.PeriodStats
	}{
		{
			name:    "janela sem registros produz estatísticas zeradas, sem erro",
			records: nil,
			window:  window,
			expected: domain.PeriodStats{
				TotalRevenue:  decimal.Zero,
				AverageTicket: decimal.Zero,
				VoidedAmount:  decimal.Zero,
			},
		},
		{
			name: "exemplo de referência: três vendas e uma anulação no mesmo dia",
			records: []*domain.VoucherRecord{
				voucherAt("v1", day.Add(9*time.Hour), 25),
				voucherAt("v2", day.Add(12*time.Hour), 50),
				voucherAt("v3", day.Add(15*time.Hour), 75),
				voidedVoucherAt("v4", day.Add(10*time.Hour), day.Add(11*time.Hour), 100),
			},
			window: window,
			expected: domain.PeriodStats{
				TotalSales:    3,
				TotalRevenue:  decimal.NewFromInt(150),
				AverageTicket: decimal.NewFromInt(50),
				VoidedCount:   1,
				VoidedAmount:  decimal.NewFromInt(100),
			},
		},
		{
			name: "anulação de voucher criado em período anterior conta no período da anulação",
			records: []*domain.VoucherRecord{
				voidedVoucherAt("v5", day.AddDate(0, 0, -3), day.Add(14*time.Hour), 80),
			},
			window: window,
			expected: domain.PeriodStats{
				TotalRevenue:  decimal.Zero,
				AverageTicket: decimal.Zero,
				VoidedCount:   1,
				VoidedAmount:  decimal.NewFromInt(80),
			},
		},
		{
			name: "registro exatamente no fim da janela é excluído (intervalo semiaberto)",
			records: []*domain.VoucherRecord{
				voucherAt("v6", window.Start, 30),
				voucherAt("v7", window.End, 40),
			},
			window: window,
			expected: domain.PeriodStats{
				TotalSales:    1,
				TotalRevenue:  decimal.NewFromInt(30),
				AverageTicket: decimal.NewFromInt(30),
				VoidedAmount:  decimal.Zero,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stats := Aggregate(tt.records, tt.window)

			assert.Equal(t, tt.expected.TotalSales, stats.TotalSales)
			assert.True(t, tt.expected.TotalRevenue.Equal(stats.TotalRevenue),
				"receita esperada %s, obtida %s", tt.expected.TotalRevenue, stats.TotalRevenue)
			assert.True(t, tt.expected.AverageTicket.Equal(stats.AverageTicket),
				"ticket médio esperado %s, obtido %s", tt.expected.AverageTicket, stats.AverageTicket)
			assert.Equal(t, tt.expected.VoidedCount, stats.VoidedCount)
			assert.True(t, tt.expected.VoidedAmount.Equal(stats.VoidedAmount))
		})
	}
}

func TestAggregate_NetRevenue(t *testing.T) {
	day := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	records := []*domain.VoucherRecord{
		voucherAt("v1", day.Add(9*time.Hour), 150),
		voidedVoucherAt("v2", day.Add(10*time.Hour), day.Add(11*time.Hour), 100),
	}

	stats := Aggregate(records, dayWindow(t, "2024-01-01"))
	assert.True(t, decimal.NewFromInt(50).Equal(stats.NetRevenue()))
}

// Propriedade: a receita total da janela é exatamente a soma dos preços dos
// registros não anulados criados dentro dela, para conjuntos gerados
// pseudoaleatoriamente (semente fixa para reprodutibilidade).
func TestAggregate_SumInvariant(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	window := domain.TimeRange{Start: base.AddDate(0, 0, 3), End: base.AddDate(0, 0, 10)}

	for round := 0; round < 50; round++ {
		var records []*domain.VoucherRecord
		expected := decimal.Zero
		expectedCount := 0

		for i := 0; i < rng.Intn(60); i++ {
			createdAt := base.Add(time.Duration(rng.Intn(14*24)) * time.Hour)
			price := int64(rng.Intn(200))
			rec := voucherAt(fmt.Sprintf("r%d-%d", round, i), createdAt, price)

			if rng.Intn(5) == 0 {
				voidedAt := createdAt.Add(time.Hour)
				rec = voidedVoucherAt(rec.ID, createdAt, voidedAt, price)
			}

			if !rec.IsVoid && window.Contains(createdAt) {
				expected = expected.Add(rec.Price)
				expectedCount++
			}
			records = append(records, rec)
		}

		stats := Aggregate(records, window)
		require.True(t, expected.Equal(stats.TotalRevenue),
			"rodada %d: receita esperada %s, obtida %s", round, expected, stats.TotalRevenue)
		require.Equal(t, expectedCount, stats.TotalSales, "rodada %d", round)
	}
}

// Janelas adjacentes não duplicam nem perdem registros na fronteira
func TestAggregate_AdjacentWindows(t *testing.T) {
	boundary := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	rec := voucherAt("na-fronteira", boundary, 50)

	day1 := dayWindow(t, "2024-01-01")
	day2 := dayWindow(t, "2024-01-02")

	statsDay1 := Aggregate([]*domain.VoucherRecord{rec}, day1)
	statsDay2 := Aggregate([]*domain.VoucherRecord{rec}, day2)

	assert.Equal(t, 0, statsDay1.TotalSales, "não deve contar no dia anterior")
	assert.Equal(t, 1, statsDay2.TotalSales, "deve contar no dia seguinte")
}
