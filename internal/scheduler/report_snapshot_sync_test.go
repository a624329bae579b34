package scheduler

import (
	"errors"
	"testing"
	"time"

	repomocks "github.com/Mwenda-Eric/bvaccess-api/infrastructure/repository/mocks"
	"github.com/Mwenda-Eric/bvaccess-api/internal/config"
	"github.com/Mwenda-Eric/bvaccess-api/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newSnapshotSyncService(t *testing.T, retentionDays int) (*ReportSnapshotSyncService, *repomocks.MockVoucherRepository, *repomocks.MockReportSnapshotRepository) {
	ctrl := gomock.NewController(t)

	voucherRepo := repomocks.NewMockVoucherRepository(ctrl)
	snapshotRepo := repomocks.NewMockReportSnapshotRepository(ctrl)

	cfg := &config.Config{
		Report: config.Report{Timezone: "UTC"},
		ReportSnapshotSync: config.ReportSnapshotSync{
			CronSchedule:  "30 0 * * *",
			RetentionDays: retentionDays,
			Enabled:       true,
		},
	}

	return NewReportSnapshotSyncService(voucherRepo, snapshotRepo, cfg), voucherRepo, snapshotRepo
}

func TestCloseDay(t *testing.T) {
	service, voucherRepo, snapshotRepo := newSnapshotSyncService(t, 365)

	date := time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)
	createdAt := date.Add(14 * time.Hour)

	records := []*domain.VoucherRecord{
		{
			ID:              "vch-1",
			Code:            "BV-vch-1",
			CreatedAt:       createdAt,
			Price:           decimal.NewFromInt(50),
			DurationMinutes: 60,
			Bandwidth:       domain.BandwidthUnlimited,
			PaymentMethod:   domain.PaymentMethodCash,
			LocationID:      "loc-1",
			LocationName:    "Boutik Centre-Ville",
			OperatorID:      "op-1",
			OperatorName:    "jean",
			ExpiresAt:       createdAt.Add(time.Hour),
		},
	}

	voucherRepo.EXPECT().
		GetByActivityRange(date, date.AddDate(0, 0, 1)).
		Return(records, nil)

	var saved *domain.DailyReport
	snapshotRepo.EXPECT().
		SaveOrUpdate(gomock.Any()).
		DoAndReturn(func(report *domain.DailyReport) error {
			saved = report
			return nil
		})

	err := service.closeDay(date, time.UTC)
	require.NoError(t, err)

	require.NotNil(t, saved)
	assert.Equal(t, "2026-03-05", saved.Date)
	assert.Equal(t, 1, saved.Summary.TotalSales)
	assert.True(t, saved.Summary.NetRevenue.Equal(decimal.NewFromInt(50)))
}

func TestCloseDay_FetchError(t *testing.T) {
	service, voucherRepo, _ := newSnapshotSyncService(t, 365)

	date := time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)

	voucherRepo.EXPECT().
		GetByActivityRange(gomock.Any(), gomock.Any()).
		Return(nil, errors.New("conexão perdida"))

	err := service.closeDay(date, time.UTC)
	assert.Error(t, err)
}

func TestPurgeOldSnapshots(t *testing.T) {
	service, _, snapshotRepo := newSnapshotSyncService(t, 365)

	snapshotRepo.EXPECT().DeleteOlderThan(365).Return(int64(3), nil)

	service.purgeOldSnapshots()
}

func TestPurgeOldSnapshots_SkippedWithoutRetention(t *testing.T) {
	service, _, _ := newSnapshotSyncService(t, 0)

	// Sem política de retenção, nada é expurgado
	service.purgeOldSnapshots()
}
