package reporting

import (
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mwenda-Eric/bvaccess-api/internal/domain"
)

func saleAt(t time.Time, price int64) *domain.VoucherRecord {
	return &domain.VoucherRecord{
		ID:            fmt.Sprintf("v-%d-%d", t.Unix(), price),
		Code:          "BV-TEST",
		CreatedAt:     t,
		Price:         decimal.NewFromInt(price),
		PaymentMethod: domain.PaymentMethodCash,
		LocationID:    "loc-1",
		LocationName:  "Carrefour Feuilles",
		OperatorID:    "op-1",
		OperatorName:  "Jean Baptiste",
	}
}

func voidedSaleAt(created, voided time.Time, price int64) *domain.VoucherRecord {
	rec := saleAt(created, price)
	rec.ID = fmt.Sprintf("void-%d-%d", created.Unix(), price)
	rec.IsVoid = true
	rec.VoidedAt = &voided
	return rec
}

func TestBuildDailyReport(t *testing.T) {
	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	records := []*domain.VoucherRecord{
		saleAt(day.Add(9*time.Hour), 25),
		saleAt(day.Add(14*time.Hour), 50),
		saleAt(day.Add(14*time.Hour+30*time.Minute), 75),
		voidedSaleAt(day.Add(-20*time.Hour), day.Add(11*time.Hour), 100),
	}

	report, err := BuildDailyReport(records, day, nil, time.UTC)
	require.NoError(t, err)

	assert.Equal(t, "2026-03-10", report.Date)
	assert.Equal(t, 3, report.Summary.TotalSales)
	assert.True(t, report.Summary.TotalRevenue.Equal(decimal.NewFromInt(150)))
	assert.True(t, report.Summary.AverageTicket.Equal(decimal.NewFromInt(50)))
	assert.Equal(t, 1, report.Summary.VoidedCount)
	assert.True(t, report.Summary.VoidedAmount.Equal(decimal.NewFromInt(100)))
	assert.True(t, report.Summary.NetRevenue.Equal(decimal.NewFromInt(50)),
		"receita líquida deve ser receita total menos anulações")

	assert.Equal(t, 14, report.Summary.PeakHour)
	assert.Equal(t, 2, report.Summary.PeakHourSales)

	require.Len(t, report.HourlyBreakdown, 24)
	assert.Equal(t, 1, report.HourlyBreakdown[9].SalesCount)
	assert.Equal(t, 2, report.HourlyBreakdown[14].SalesCount)
	assert.Equal(t, 0, report.HourlyBreakdown[3].SalesCount)

	require.Len(t, report.LocationBreakdown, 1)
	assert.Equal(t, "Carrefour Feuilles", report.LocationBreakdown[0].LocationName)
	assert.InDelta(t, 100.0, report.LocationBreakdown[0].Percentage, 0.01)

	require.Len(t, report.OperatorBreakdown, 1)
	assert.Equal(t, 3, report.OperatorBreakdown[0].SalesCount)
	assert.True(t, report.OperatorBreakdown[0].AverageTicket.Equal(decimal.NewFromInt(50)))
}

func TestBuildDailyReport_PeakHourTieResolvesToLowestHour(t *testing.T) {
	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	records := []*domain.VoucherRecord{
		saleAt(day.Add(8*time.Hour), 25),
		saleAt(day.Add(8*time.Hour+10*time.Minute), 25),
		saleAt(day.Add(17*time.Hour), 50),
		saleAt(day.Add(17*time.Hour+5*time.Minute), 50),
	}

	report, err := BuildDailyReport(records, day, nil, time.UTC)
	require.NoError(t, err)

	assert.Equal(t, 8, report.Summary.PeakHour)
	assert.Equal(t, 2, report.Summary.PeakHourSales)
}

func TestBuildDailyReport_EmptyDay(t *testing.T) {
	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	report, err := BuildDailyReport(nil, day, nil, time.UTC)
	require.NoError(t, err)

	assert.Equal(t, 0, report.Summary.TotalSales)
	assert.True(t, report.Summary.TotalRevenue.IsZero())
	assert.True(t, report.Summary.AverageTicket.IsZero())
	assert.Equal(t, 0, report.Summary.PeakHour)
	assert.Len(t, report.HourlyBreakdown, 24)
	assert.Empty(t, report.LocationBreakdown)
}

func TestBuildPeriodReport(t *testing.T) {
	start := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC)

	records := []*domain.VoucherRecord{
		saleAt(start.Add(10*time.Hour), 50),
		saleAt(start.AddDate(0, 0, 2).Add(9*time.Hour), 150),
		saleAt(start.AddDate(0, 0, 2).Add(15*time.Hour), 75),
		saleAt(start.AddDate(0, 0, 6).Add(12*time.Hour), 25),
	}

	report, err := BuildPeriodReport(records, start, end, false, nil, time.UTC)
	require.NoError(t, err)

	assert.Equal(t, "2026-03-02", report.StartDate)
	assert.Equal(t, "2026-03-08", report.EndDate)
	assert.Equal(t, 7, report.Summary.TotalDays)
	assert.Equal(t, 4, report.Summary.TotalSales)
	assert.True(t, report.Summary.TotalRevenue.Equal(decimal.NewFromInt(300)))

	assert.InDelta(t, 0.57, report.Summary.AverageDailySales, 0.001)
	assert.True(t, report.Summary.AverageDailyRevenue.Equal(decimal.RequireFromString("42.86")),
		"média diária esperada 42.86, obtida %s", report.Summary.AverageDailyRevenue)

	assert.Equal(t, "2026-03-04", report.Summary.BestDay.Date)
	assert.True(t, report.Summary.BestDay.Revenue.Equal(decimal.NewFromInt(225)))
	// Pior dia é o primeiro dia sem venda alguma
	assert.Equal(t, "2026-03-03", report.Summary.WorstDay.Date)
	assert.True(t, report.Summary.WorstDay.Revenue.IsZero())

	require.Len(t, report.DailyTrend, 7)
	assert.Nil(t, report.Comparison)
}

func TestBuildPeriodReport_BestDayTieResolvesToEarliest(t *testing.T) {
	start := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC)

	records := []*domain.VoucherRecord{
		saleAt(start.Add(10*time.Hour), 100),
		saleAt(start.AddDate(0, 0, 2).Add(10*time.Hour), 100),
	}

	report, err := BuildPeriodReport(records, start, end, false, nil, time.UTC)
	require.NoError(t, err)

	assert.Equal(t, "2026-03-02", report.Summary.BestDay.Date)
	assert.Equal(t, "2026-03-03", report.Summary.WorstDay.Date)
}

func TestBuildPeriodReport_WithComparison(t *testing.T) {
	start := time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)

	records := []*domain.VoucherRecord{
		// Período anterior (01/03 a 07/03): 100 em 2 vendas
		saleAt(time.Date(2026, 3, 3, 10, 0, 0, 0, time.UTC), 50),
		saleAt(time.Date(2026, 3, 5, 16, 0, 0, 0, time.UTC), 50),
		// Período corrente: 150 em 2 vendas
		saleAt(time.Date(2026, 3, 9, 11, 0, 0, 0, time.UTC), 75),
		saleAt(time.Date(2026, 3, 12, 18, 0, 0, 0, time.UTC), 75),
	}

	report, err := BuildPeriodReport(records, start, end, true, nil, time.UTC)
	require.NoError(t, err)

	require.NotNil(t, report.Comparison)
	assert.True(t, report.Comparison.PreviousPeriodRevenue.Equal(decimal.NewFromInt(100)))
	assert.True(t, report.Comparison.RevenueChange.Equal(decimal.NewFromInt(50)))
	require.NotNil(t, report.Comparison.RevenueChangePercentage)
	assert.InDelta(t, 50.0, *report.Comparison.RevenueChangePercentage, 0.001)
	assert.Equal(t, 2, report.Comparison.PreviousPeriodSales)
	assert.Equal(t, 0, report.Comparison.SalesChange)
	require.NotNil(t, report.Comparison.SalesChangePercentage)
	assert.InDelta(t, 0.0, *report.Comparison.SalesChangePercentage, 0.001)
}

func TestBuildPeriodReport_ComparisonFromEmptyPrevious(t *testing.T) {
	start := time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)

	records := []*domain.VoucherRecord{
		saleAt(time.Date(2026, 3, 9, 11, 0, 0, 0, time.UTC), 75),
	}

	report, err := BuildPeriodReport(records, start, end, true, nil, time.UTC)
	require.NoError(t, err)

	require.NotNil(t, report.Comparison)
	// Crescimento a partir do zero não tem percentual definível
	assert.Nil(t, report.Comparison.RevenueChangePercentage)
	assert.Nil(t, report.Comparison.SalesChangePercentage)
	assert.True(t, report.Comparison.RevenueChange.Equal(decimal.NewFromInt(75)))
}

func TestBuildPeriodReport_InvalidRange(t *testing.T) {
	start := time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	_, err := BuildPeriodReport(nil, start, end, false, nil, time.UTC)
	assert.ErrorIs(t, err, domain.ErrInvalidRange)
}

func TestBuildPeriodReport_Idempotent(t *testing.T) {
	start := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC)

	records := []*domain.VoucherRecord{
		saleAt(start.Add(10*time.Hour), 50),
		saleAt(start.AddDate(0, 0, 3).Add(14*time.Hour), 150),
		voidedSaleAt(start.Add(11*time.Hour), start.AddDate(0, 0, 1).Add(9*time.Hour), 25),
	}

	first, err := BuildPeriodReport(records, start, end, true, nil, time.UTC)
	require.NoError(t, err)

	second, err := BuildPeriodReport(records, start, end, true, nil, time.UTC)
	require.NoError(t, err)

	assert.Equal(t, first, second, "mesma entrada deve produzir o mesmo relatório")
}
