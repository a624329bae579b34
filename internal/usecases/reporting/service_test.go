package reporting

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	repomocks "github.com/Mwenda-Eric/bvaccess-api/infrastructure/repository/mocks"
	"github.com/Mwenda-Eric/bvaccess-api/internal/config"
	"github.com/Mwenda-Eric/bvaccess-api/internal/domain"
)

func newReportService(t *testing.T, withSnapshots bool) (*Service, *repomocks.MockVoucherRepository, *repomocks.MockReportSnapshotRepository) {
	ctrl := gomock.NewController(t)

	voucherRepo := repomocks.NewMockVoucherRepository(ctrl)
	snapshotRepo := repomocks.NewMockReportSnapshotRepository(ctrl)

	cfg := &config.Config{
		Report: config.Report{Timezone: "UTC"},
	}

	service := NewService(cfg, voucherRepo)
	if withSnapshots {
		service = service.WithSnapshots(snapshotRepo)
	}

	return service, voucherRepo, snapshotRepo
}

// closedDay devolve a meia-noite UTC de um dia já encerrado
func closedDay() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, -30)
}

func TestDailyReportServesClosedDayFromSnapshot(t *testing.T) {
	service, _, snapshotRepo := newReportService(t, true)

	date := closedDay()
	stored := &domain.DailyReport{Date: date.Format(time.DateOnly)}

	snapshotRepo.EXPECT().
		GetByDate(date).
		Return(stored, nil)

	report, err := service.DailyReport(date)
	require.NoError(t, err)
	assert.Same(t, stored, report)
}

func TestDailyReportReaggregatesWithoutSnapshot(t *testing.T) {
	service, voucherRepo, snapshotRepo := newReportService(t, true)

	date := closedDay()

	snapshotRepo.EXPECT().
		GetByDate(date).
		Return(nil, nil)

	voucherRepo.EXPECT().
		GetByActivityRange(date, date.AddDate(0, 0, 1)).
		Return([]*domain.VoucherRecord{saleAt(date.Add(10*time.Hour), 50)}, nil)

	report, err := service.DailyReport(date)
	require.NoError(t, err)
	assert.Equal(t, date.Format(time.DateOnly), report.Date)
	assert.Equal(t, 1, report.Summary.TotalSales)
	assert.True(t, report.Summary.TotalRevenue.Equal(decimal.NewFromInt(50)))
}

func TestDailyReportReaggregatesOnSnapshotError(t *testing.T) {
	service, voucherRepo, snapshotRepo := newReportService(t, true)

	date := closedDay()

	snapshotRepo.EXPECT().
		GetByDate(date).
		Return(nil, errors.New("conexão perdida"))

	voucherRepo.EXPECT().
		GetByActivityRange(date, date.AddDate(0, 0, 1)).
		Return(nil, nil)

	report, err := service.DailyReport(date)
	require.NoError(t, err)
	assert.Equal(t, 0, report.Summary.TotalSales)
}

func TestDailyReportCurrentDaySkipsSnapshot(t *testing.T) {
	service, voucherRepo, _ := newReportService(t, true)

	now := time.Now().UTC()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	// Nenhuma expectativa no snapshotRepo: o dia corrente nunca vem do cache
	voucherRepo.EXPECT().
		GetByActivityRange(dayStart, dayStart.AddDate(0, 0, 1)).
		Return(nil, nil)

	_, err := service.DailyReport(now)
	require.NoError(t, err)
}

func TestDailyReportWithoutSnapshotSupport(t *testing.T) {
	service, voucherRepo, _ := newReportService(t, false)

	date := time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)

	voucherRepo.EXPECT().
		GetByActivityRange(date, date.AddDate(0, 0, 1)).
		Return(nil, nil)

	_, err := service.DailyReport(date)
	require.NoError(t, err)
}

func TestPeriodReportRejectsInvertedRange(t *testing.T) {
	service, _, _ := newReportService(t, false)

	start := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)

	_, err := service.PeriodReport(start, end, false)
	assert.ErrorIs(t, err, domain.ErrInvalidRange)
}

func TestPeriodReportComparisonWidensFetchWindow(t *testing.T) {
	service, voucherRepo, _ := newReportService(t, false)

	start := time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)

	// Com comparação, a busca recua mais 7 dias para cobrir o período anterior
	voucherRepo.EXPECT().
		GetByActivityRange(
			time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
		).
		Return([]*domain.VoucherRecord{
			saleAt(time.Date(2026, 3, 3, 12, 0, 0, 0, time.UTC), 50),
			saleAt(time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC), 100),
		}, nil)

	report, err := service.PeriodReport(start, end, true)
	require.NoError(t, err)

	assert.Equal(t, 1, report.Summary.TotalSales, "venda do período anterior não entra no resumo")
	require.NotNil(t, report.Comparison)
	assert.Equal(t, 1, report.Comparison.PreviousPeriodSales)
}

func TestPeriodReportWithoutComparison(t *testing.T) {
	service, voucherRepo, _ := newReportService(t, false)

	start := time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)

	voucherRepo.EXPECT().
		GetByActivityRange(start, time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)).
		Return(nil, nil)

	report, err := service.PeriodReport(start, end, false)
	require.NoError(t, err)
	assert.Nil(t, report.Comparison)
}
