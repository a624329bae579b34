package hotspot

import (
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	hotspotdomain "github.com/Mwenda-Eric/bvaccess-api/infrastructure/integrator/hotspot/domain"
	"github.com/Mwenda-Eric/bvaccess-api/infrastructure/integrator/hotspot/hotspotclient"
	"github.com/Mwenda-Eric/bvaccess-api/internal/config"
)

type fakeClient struct {
	pages [][]hotspotdomain.VoucherPayload
	calls []hotspotclient.VoucherConsultationParams
}

func (f *fakeClient) ListVouchers(params hotspotclient.VoucherConsultationParams) (*hotspotclient.VoucherConsultationResponse, error) {
	f.calls = append(f.calls, params)

	index := params.Page - 1
	if index >= len(f.pages) {
		return &hotspotclient.VoucherConsultationResponse{Page: params.Page}, nil
	}

	return &hotspotclient.VoucherConsultationResponse{
		Items: f.pages[index],
		Page:  params.Page,
	}, nil
}

func validPayload(id string) hotspotdomain.VoucherPayload {
	return hotspotdomain.VoucherPayload{
		ID:              id,
		Code:            fmt.Sprintf("BV-%s", id),
		CreatedAt:       time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC),
		Price:           decimal.NewFromInt(50),
		DurationMinutes: 60,
		PaymentMethod:   "Cash",
	}
}

func TestGetVouchers_PaginatesUntilShortPage(t *testing.T) {
	client := &fakeClient{
		pages: [][]hotspotdomain.VoucherPayload{
			{validPayload("a"), validPayload("b")},
			{validPayload("c")},
		},
	}

	cfg := &config.Config{
		Hotspot: config.Hotspot{PageSize: 2},
	}

	service := New(cfg, client)

	records, err := service.GetVouchers(
		time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)

	assert.Len(t, records, 3)
	require.Len(t, client.calls, 2)
	assert.Equal(t, 1, client.calls[0].Page)
	assert.Equal(t, 2, client.calls[1].Page)
	assert.Equal(t, 2, client.calls[0].PageSize)
}

func TestGetVouchers_SkipsInvalidPayloads(t *testing.T) {
	invalid := validPayload("bad")
	invalid.PaymentMethod = "Bitcoin"

	client := &fakeClient{
		pages: [][]hotspotdomain.VoucherPayload{
			{validPayload("ok"), invalid},
		},
	}

	cfg := &config.Config{
		Hotspot: config.Hotspot{PageSize: 10},
	}

	service := New(cfg, client)

	records, err := service.GetVouchers(
		time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)

	require.Len(t, records, 1)
	assert.Equal(t, "ok", records[0].ID)
}

func TestCheckConnection(t *testing.T) {
	client := &fakeClient{}

	cfg := &config.Config{
		Hotspot: config.Hotspot{PageSize: 10},
	}

	service := New(cfg, client)

	ok, err := service.CheckConnection()
	require.NoError(t, err)
	assert.True(t, ok)
	require.Len(t, client.calls, 1)
	assert.Equal(t, 1, client.calls[0].PageSize)
}
