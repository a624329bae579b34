package aggregating

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mwenda-Eric/bvaccess-api/internal/domain"
)

func TestSelectorFor(t *testing.T) {
	dims := []domain.Dimension{
		domain.DimensionLocation,
		domain.DimensionOperator,
		domain.DimensionPaymentMethod,
		domain.DimensionDuration,
		domain.DimensionHourOfDay,
	}

	for _, dim := range dims {
		sel, err := SelectorFor(dim, nil, nil)
		require.NoError(t, err, "dimensão %s deveria ser suportada", dim)
		assert.Equal(t, dim, sel.Dimension())
	}

	_, err := SelectorFor(domain.Dimension("weather"), nil, nil)
	assert.ErrorIs(t, err, domain.ErrUnknownDimension)
}

func TestBreakdownBy_Location(t *testing.T) {
	day := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	window := dayWindow(t, "2024-01-01")

	atLocation := func(id string, loc string, price int64) *domain.VoucherRecord {
		rec := voucherAt(id, day.Add(10*time.Hour), price)
		rec.LocationID = loc
		rec.LocationName = "Hotspot " + loc
		return rec
	}

	records := []*domain.VoucherRecord{
		atLocation("v1", "A", 50),
		atLocation("v2", "A", 50),
		atLocation("v3", "B", 150),
		atLocation("v4", "C", 25),
		voidedVoucherAt("v5", day.Add(9*time.Hour), day.Add(10*time.Hour), 500), // anulado fica fora
	}

	items, err := BreakdownBy(records, LocationSelector{}, window)
	require.NoError(t, err)
	require.Len(t, items, 3)

	// Ordenação: receita desc (B=150, A=100, C=25)
	assert.Equal(t, "B", items[0].Key)
	assert.Equal(t, "A", items[1].Key)
	assert.Equal(t, "C", items[2].Key)

	// Percentuais sobre o total da própria dimensão
	assert.InDelta(t, 54.55, items[0].Percentage, 0.01)
	assert.InDelta(t, 36.36, items[1].Percentage, 0.01)
	assert.InDelta(t, 9.09, items[2].Percentage, 0.01)

	sum := 0.0
	for _, item := range items {
		sum += item.Percentage
	}
	assert.InDelta(t, 100.0, sum, 0.1, "percentuais devem somar 100 dentro da tolerância")
}

func TestBreakdownBy_TieBreaking(t *testing.T) {
	day := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	window := dayWindow(t, "2024-01-01")

	atLocation := func(id, loc string, price int64) *domain.VoucherRecord {
		rec := voucherAt(id, day.Add(10*time.Hour), price)
		rec.LocationID = loc
		rec.LocationName = loc
		return rec
	}

	// B e A empatam em receita e contagem: desempate por chave ascendente
	records := []*domain.VoucherRecord{
		atLocation("v1", "B", 50),
		atLocation("v2", "A", 50),
	}

	items, err := BreakdownBy(records, LocationSelector{}, window)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "A", items[0].Key)
	assert.Equal(t, "B", items[1].Key)
}

func TestBreakdownBy_ZeroRevenueWindow(t *testing.T) {
	window := dayWindow(t, "2024-01-01")

	items, err := BreakdownBy(nil, PaymentMethodSelector{}, window)
	require.NoError(t, err)
	require.Len(t, items, len(domain.PaymentMethods), "formas de pagamento são um conjunto fechado")

	for _, item := range items {
		assert.Equal(t, 0.0, item.Percentage, "sem receita todo percentual é 0, nunca NaN")
		assert.True(t, item.Revenue.IsZero())
	}
}

func TestBreakdownBy_DurationTiers(t *testing.T) {
	day := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	window := dayWindow(t, "2024-01-01")

	withDuration := func(id string, minutes int, price int64) *domain.VoucherRecord {
		rec := voucherAt(id, day.Add(10*time.Hour), price)
		rec.DurationMinutes = minutes
		return rec
	}

	records := []*domain.VoucherRecord{
		withDuration("v1", 30, 25),
		withDuration("v2", 60, 50),
		withDuration("v3", 60, 50),
		withDuration("v4", 45, 99), // fora da tabela, cai em Custom
	}

	sel := DurationSelector{Tiers: domain.DefaultDurationTiers()}
	items, err := BreakdownBy(records, sel, window)
	require.NoError(t, err)

	// 4 tiers da tabela + bucket custom
	require.Len(t, items, 5)

	byLabel := make(map[string]domain.BreakdownItem)
	for _, item := range items {
		byLabel[item.Label] = item
	}

	assert.Equal(t, 2, byLabel["1 hour"].SalesCount)
	assert.Equal(t, 1, byLabel["30 minutes"].SalesCount)
	assert.Equal(t, 1, byLabel["Custom"].SalesCount)
	assert.Equal(t, 0, byLabel["24 hours"].SalesCount, "tier sem vendas aparece zerado")
	assert.True(t, decimal.NewFromInt(99).Equal(byLabel["Custom"].Revenue))
}

func TestBreakdownBy_HourOfDayProducesAllBuckets(t *testing.T) {
	day := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	window := dayWindow(t, "2024-01-01")

	records := []*domain.VoucherRecord{
		voucherAt("v1", day.Add(9*time.Hour+15*time.Minute), 50),
		voucherAt("v2", day.Add(9*time.Hour+45*time.Minute), 50),
		voucherAt("v3", day.Add(18*time.Hour), 25),
	}

	items, err := BreakdownBy(records, HourOfDaySelector{Location: time.UTC}, window)
	require.NoError(t, err)
	require.Len(t, items, 24, "todas as 24 horas devem aparecer, mesmo vazias")

	byKey := make(map[string]domain.BreakdownItem)
	for _, item := range items {
		byKey[item.Key] = item
	}
	assert.Equal(t, 2, byKey["09"].SalesCount)
	assert.Equal(t, 1, byKey["18"].SalesCount)
	assert.Equal(t, 0, byKey["03"].SalesCount)
}
