package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apidomain "github.com/Mwenda-Eric/bvaccess-api/internal/domain"
)

func TestVoucherPayload_UnmarshalCamelCase(t *testing.T) {
	payload := &VoucherPayload{}
	raw := `{
		"id": "vch-001",
		"code": "BV-4821",
		"createdAt": "2026-03-10T14:30:00Z",
		"price": 50,
		"durationMinutes": 60,
		"bandwidth": "Unlimited",
		"paymentMethod": "Cash",
		"locationId": "loc-1",
		"locationName": "Delmas 33",
		"operatorId": "op-1",
		"operatorName": "Jean Baptiste",
		"isVoid": false
	}`

	require.NoError(t, json.Unmarshal([]byte(raw), payload))

	assert.Equal(t, "vch-001", payload.ID)
	assert.Equal(t, "BV-4821", payload.Code)
	assert.True(t, payload.Price.Equal(decimal.NewFromInt(50)))
	assert.Equal(t, 60, payload.DurationMinutes)
	assert.Equal(t, "Delmas 33", payload.LocationName)
}

func TestVoucherPayload_UnmarshalPascalCase(t *testing.T) {
	payload := &VoucherPayload{}
	raw := `{
		"Id": "vch-002",
		"Code": "BV-4822",
		"CreatedAt": "2026-03-10T09:00:00Z",
		"Price": "25.00",
		"DurationMinutes": 30,
		"Bandwidth": "Unlimited",
		"PaymentMethod": "EWallet",
		"LocationId": "loc-2",
		"LocationName": "Carrefour Feuilles",
		"OperatorId": "op-2",
		"OperatorName": "Marie Claire",
		"IsVoid": true,
		"VoidedAt": "2026-03-10T16:00:00Z",
		"VoidReason": "Erro de digitação"
	}`

	require.NoError(t, json.Unmarshal([]byte(raw), payload))

	assert.Equal(t, "vch-002", payload.ID)
	assert.True(t, payload.Price.Equal(decimal.RequireFromString("25.00")))
	assert.Equal(t, "EWallet", payload.PaymentMethod)
	assert.True(t, payload.IsVoid)
	require.NotNil(t, payload.VoidedAt)
	assert.Equal(t, time.Date(2026, 3, 10, 16, 0, 0, 0, time.UTC), payload.VoidedAt.UTC())
	require.NotNil(t, payload.VoidReason)
	assert.Equal(t, "Erro de digitação", *payload.VoidReason)
}

func TestVoucherPayload_Normalize(t *testing.T) {
	createdAt := time.Date(2026, 3, 10, 14, 30, 0, 0, time.UTC)

	payload := &VoucherPayload{
		ID:              "vch-003",
		Code:            "BV-4823",
		CreatedAt:       createdAt,
		Price:           decimal.NewFromInt(75),
		DurationMinutes: 120,
		Bandwidth:       "unlimited",
		PaymentMethod:   "cash",
		LocationID:      "loc-1",
		LocationName:    "Delmas 33",
		OperatorID:      "op-1",
		OperatorName:    "Jean Baptiste",
	}

	record, err := payload.Normalize()
	require.NoError(t, err)

	assert.Equal(t, apidomain.PaymentMethodCash, record.PaymentMethod)
	assert.Equal(t, apidomain.BandwidthUnlimited, record.Bandwidth)
	assert.Equal(t, createdAt.Add(2*time.Hour), record.ExpiresAt)
}

func TestVoucherPayload_NormalizeRejectsInvalid(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*VoucherPayload)
		wantErr error
	}{
		{
			name:    "sem identificador",
			mutate:  func(p *VoucherPayload) { p.ID = "" },
			wantErr: apidomain.ErrEmptyVoucherID,
		},
		{
			name:    "preço negativo",
			mutate:  func(p *VoucherPayload) { p.Price = decimal.NewFromInt(-10) },
			wantErr: apidomain.ErrNegativePrice,
		},
		{
			name:    "duração zero",
			mutate:  func(p *VoucherPayload) { p.DurationMinutes = 0 },
			wantErr: apidomain.ErrNonPositiveMinutes,
		},
		{
			name:    "forma de pagamento desconhecida",
			mutate:  func(p *VoucherPayload) { p.PaymentMethod = "Bitcoin" },
			wantErr: apidomain.ErrInvalidPayment,
		},
		{
			name:    "anulado sem data",
			mutate:  func(p *VoucherPayload) { p.IsVoid = true },
			wantErr: apidomain.ErrVoidWithoutDate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload := &VoucherPayload{
				ID:              "vch-ok",
				Code:            "BV-0000",
				CreatedAt:       time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC),
				Price:           decimal.NewFromInt(25),
				DurationMinutes: 30,
				PaymentMethod:   "Cash",
			}
			tt.mutate(payload)

			_, err := payload.Normalize()
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
