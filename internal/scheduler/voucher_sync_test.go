package scheduler

import (
	"errors"
	"testing"
	"time"

	hotspotmocks "github.com/Mwenda-Eric/bvaccess-api/infrastructure/integrator/hotspot/mocks"
	repomocks "github.com/Mwenda-Eric/bvaccess-api/infrastructure/repository/mocks"
	"github.com/Mwenda-Eric/bvaccess-api/internal/config"
	"github.com/Mwenda-Eric/bvaccess-api/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func syncedVoucher(id string) *domain.VoucherRecord {
	createdAt := time.Now().Add(-2 * time.Hour)
	return &domain.VoucherRecord{
		ID:              id,
		Code:            "BV-" + id,
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
	}
}

func newVoucherSyncService(t *testing.T, lookbackDays int) (*VoucherSyncService, *repomocks.MockVoucherRepository, *hotspotmocks.MockHotspotIntegrator) {
	ctrl := gomock.NewController(t)

	voucherRepo := repomocks.NewMockVoucherRepository(ctrl)
	hotspotService := hotspotmocks.NewMockHotspotIntegrator(ctrl)

	cfg := &config.Config{
		VoucherSync: config.VoucherSync{
			CronSchedule: "*/15 * * * *",
			LookbackDays: lookbackDays,
			Enabled:      true,
		},
	}

	return NewVoucherSyncService(voucherRepo, hotspotService, cfg), voucherRepo, hotspotService
}

func TestSyncVouchers_SavesFetchedRecords(t *testing.T) {
	service, voucherRepo, hotspotService := newVoucherSyncService(t, 1)

	records := []*domain.VoucherRecord{syncedVoucher("vch-1"), syncedVoucher("vch-2")}

	hotspotService.EXPECT().
		GetVouchers(gomock.Any(), gomock.Any()).
		Return(records, nil)

	voucherRepo.EXPECT().SaveOrUpdate(records[0]).Return(nil)
	voucherRepo.EXPECT().SaveOrUpdate(records[1]).Return(nil)

	service.syncVouchers()

	status := service.GetStatus()
	completedAt, ok := status["last_sync_completed_at"].(time.Time)
	require.True(t, ok)
	assert.False(t, completedAt.IsZero())
}

func TestSyncVouchers_ContinuesAfterSaveFailure(t *testing.T) {
	service, voucherRepo, hotspotService := newVoucherSyncService(t, 1)

	records := []*domain.VoucherRecord{syncedVoucher("vch-1"), syncedVoucher("vch-2")}

	hotspotService.EXPECT().
		GetVouchers(gomock.Any(), gomock.Any()).
		Return(records, nil)

	voucherRepo.EXPECT().SaveOrUpdate(records[0]).Return(errors.New("conexão perdida"))
	voucherRepo.EXPECT().SaveOrUpdate(records[1]).Return(nil)

	saved, failed := service.syncWindow(time.Now().Add(-time.Hour), time.Now())

	assert.Equal(t, 1, saved)
	assert.Equal(t, 1, failed)
}

func TestSyncVouchers_FetchesOneWindowPerDay(t *testing.T) {
	service, voucherRepo, hotspotService := newVoucherSyncService(t, 2)

	hotspotService.EXPECT().
		GetVouchers(gomock.Any(), gomock.Any()).
		Return([]*domain.VoucherRecord{syncedVoucher("vch-1")}, nil).
		Times(2)

	voucherRepo.EXPECT().SaveOrUpdate(gomock.Any()).Return(nil).Times(2)

	service.syncVouchers()
}

func TestSyncWindow_FetchErrorSavesNothing(t *testing.T) {
	service, _, hotspotService := newVoucherSyncService(t, 1)

	hotspotService.EXPECT().
		GetVouchers(gomock.Any(), gomock.Any()).
		Return(nil, errors.New("controlador indisponível"))

	saved, failed := service.syncWindow(time.Now().Add(-time.Hour), time.Now())

	assert.Zero(t, saved)
	assert.Zero(t, failed)
}
