package vouchering

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/Mwenda-Eric/bvaccess-api/infrastructure/repository/mocks"
	"github.com/Mwenda-Eric/bvaccess-api/internal/config"
	"github.com/Mwenda-Eric/bvaccess-api/internal/domain"
)

var testNow = time.Date(2026, 3, 11, 15, 0, 0, 0, time.UTC)

type testMocks struct {
	voucherRepo  *mocks.MockVoucherRepository
	locationRepo *mocks.MockLocationRepository
	operatorRepo *mocks.MockOperatorRepository
}

func newTestService(t *testing.T) (*Service, testMocks) {
	ctrl := gomock.NewController(t)

	m := testMocks{
		voucherRepo:  mocks.NewMockVoucherRepository(ctrl),
		locationRepo: mocks.NewMockLocationRepository(ctrl),
		operatorRepo: mocks.NewMockOperatorRepository(ctrl),
	}

	cfg := &config.Config{}

	service := NewService(cfg, m.voucherRepo, m.locationRepo, m.operatorRepo)
	service.now = func() time.Time { return testNow }

	return service, m
}

func activeLocation() *domain.Location {
	return &domain.Location{ID: "loc-1", Name: "Delmas 33", Active: true}
}

func activeOperator() *domain.Operator {
	return &domain.Operator{
		ID:         "op-1",
		Username:   "jbaptiste",
		FullName:   "Jean Baptiste",
		LocationID: "loc-1",
		Active:     true,
	}
}

func TestCreate(t *testing.T) {
	service, m := newTestService(t)

	m.locationRepo.EXPECT().GetByID("loc-1").Return(activeLocation(), nil)
	m.operatorRepo.EXPECT().GetByID("op-1").Return(activeOperator(), nil)

	var inserted *domain.VoucherRecord
	m.voucherRepo.EXPECT().
		Insert(gomock.Any()).
		DoAndReturn(func(v *domain.VoucherRecord) error {
			inserted = v
			return nil
		})

	voucher, err := service.Create(&CreateVoucherRequest{
		LocationID:      "loc-1",
		OperatorID:      "op-1",
		DurationMinutes: 60,
		PaymentMethod:   domain.PaymentMethodCash,
	})
	require.NoError(t, err)
	require.NotNil(t, inserted)

	// Preço vem da tabela de durações, nunca da requisição
	assert.True(t, voucher.Price.Equal(decimal.NewFromInt(50)))
	assert.True(t, strings.HasPrefix(voucher.Code, "BV-"))
	assert.NotEmpty(t, voucher.ID)
	assert.Equal(t, "Delmas 33", voucher.LocationName)
	assert.Equal(t, "Jean Baptiste", voucher.OperatorName)
	assert.Equal(t, domain.BandwidthUnlimited, voucher.Bandwidth)
	assert.Equal(t, testNow.Add(time.Hour), voucher.ExpiresAt)
	assert.False(t, voucher.IsVoid)
}

func TestCreate_UnknownDuration(t *testing.T) {
	service, _ := newTestService(t)

	_, err := service.Create(&CreateVoucherRequest{
		LocationID:      "loc-1",
		OperatorID:      "op-1",
		DurationMinutes: 45,
		PaymentMethod:   domain.PaymentMethodCash,
	})
	assert.ErrorIs(t, err, domain.ErrUnknownDuration)
}

func TestCreate_InactiveLocation(t *testing.T) {
	service, m := newTestService(t)

	location := activeLocation()
	location.Active = false
	m.locationRepo.EXPECT().GetByID("loc-1").Return(location, nil)

	_, err := service.Create(&CreateVoucherRequest{
		LocationID:      "loc-1",
		OperatorID:      "op-1",
		DurationMinutes: 30,
		PaymentMethod:   domain.PaymentMethodCash,
	})
	assert.ErrorIs(t, err, ErrLocationInactive)
}

func TestCreate_OperatorNotFound(t *testing.T) {
	service, m := newTestService(t)

	m.locationRepo.EXPECT().GetByID("loc-1").Return(activeLocation(), nil)
	m.operatorRepo.EXPECT().GetByID("op-9").Return(nil, nil)

	_, err := service.Create(&CreateVoucherRequest{
		LocationID:      "loc-1",
		OperatorID:      "op-9",
		DurationMinutes: 30,
		PaymentMethod:   domain.PaymentMethodCash,
	})
	assert.ErrorIs(t, err, ErrOperatorNotFound)
}

func TestVoid(t *testing.T) {
	service, m := newTestService(t)

	m.voucherRepo.EXPECT().
		GetByID("vch-1").
		Return(&domain.VoucherRecord{ID: "vch-1", Price: decimal.NewFromInt(50)}, nil)

	m.voucherRepo.EXPECT().
		MarkVoid("vch-1", testNow, "Cobrança duplicada", "7", "Ana Admin").
		Return(nil)

	claims := &domain.Claims{UserID: 7, UserName: "Ana Admin"}

	voucher, err := service.Void("vch-1", "Cobrança duplicada", claims)
	require.NoError(t, err)

	assert.True(t, voucher.IsVoid)
	require.NotNil(t, voucher.VoidedAt)
	assert.Equal(t, testNow, *voucher.VoidedAt)
	assert.Equal(t, "Cobrança duplicada", *voucher.VoidReason)
	assert.Equal(t, "Ana Admin", *voucher.VoidedByName)
}

func TestVoid_AlreadyVoid(t *testing.T) {
	service, m := newTestService(t)

	m.voucherRepo.EXPECT().
		GetByID("vch-1").
		Return(&domain.VoucherRecord{ID: "vch-1", IsVoid: true}, nil)

	_, err := service.Void("vch-1", "qualquer motivo", &domain.Claims{UserID: 7})
	assert.ErrorIs(t, err, domain.ErrVoucherAlreadyVoid)
}

func TestVoid_RequiresReason(t *testing.T) {
	service, _ := newTestService(t)

	_, err := service.Void("vch-1", "", &domain.Claims{UserID: 7})
	assert.ErrorIs(t, err, ErrEmptyVoidReason)
}

func TestVoid_NotFound(t *testing.T) {
	service, m := newTestService(t)

	m.voucherRepo.EXPECT().GetByID("missing").Return(nil, nil)

	_, err := service.Void("missing", "motivo", &domain.Claims{UserID: 7})
	assert.ErrorIs(t, err, domain.ErrVoucherNotFound)
}

func TestList_FiltersStatusInMemory(t *testing.T) {
	service, m := newTestService(t)

	records := []*domain.VoucherRecord{
		{ID: "active", ExpiresAt: testNow.Add(time.Hour)},
		{ID: "expired", ExpiresAt: testNow.Add(-time.Hour)},
		{ID: "void", IsVoid: true, ExpiresAt: testNow.Add(time.Hour)},
	}

	// O filtro de status não chega ao repositório
	m.voucherRepo.EXPECT().
		List(gomock.Any()).
		DoAndReturn(func(filters domain.VoucherFilters) ([]*domain.VoucherRecord, error) {
			assert.Nil(t, filters.Status)
			return records, nil
		})

	status := domain.VoucherStatusExpired
	vouchers, err := service.List(domain.VoucherFilters{Status: &status})
	require.NoError(t, err)

	require.Len(t, vouchers, 1)
	assert.Equal(t, "expired", vouchers[0].ID)
}

func TestSummary(t *testing.T) {
	service, m := newTestService(t)

	records := []*domain.VoucherRecord{
		{ID: "a", Price: decimal.NewFromInt(50), ExpiresAt: testNow.Add(time.Hour)},
		{ID: "b", Price: decimal.NewFromInt(25), ExpiresAt: testNow.Add(-time.Hour)},
		{ID: "c", Price: decimal.NewFromInt(100), IsVoid: true, ExpiresAt: testNow.Add(time.Hour)},
	}

	m.voucherRepo.EXPECT().List(gomock.Any()).Return(records, nil)

	summary, err := service.Summary(domain.VoucherFilters{})
	require.NoError(t, err)

	assert.Equal(t, 3, summary.TotalCount)
	assert.Equal(t, 1, summary.ActiveCount)
	assert.Equal(t, 1, summary.ExpiredCount)
	assert.Equal(t, 1, summary.VoidedCount)
	assert.True(t, summary.TotalRevenue.Equal(decimal.NewFromInt(75)))
	assert.True(t, summary.VoidedRevenue.Equal(decimal.NewFromInt(100)))
}
