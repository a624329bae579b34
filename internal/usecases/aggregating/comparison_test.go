package aggregating

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mwenda-Eric/bvaccess-api/internal/domain"
)

func TestCompare(t *testing.T) {
	tests := []struct {
		name              string
		current, previous int64
		expectedPct       *float64
		expectedDirection domain.ChangeDirection
	}{
		{
			name:              "crescimento simples",
			previous:          100,
			current:           150,
			expectedPct:       floatPtr(50),
			expectedDirection: domain.ChangeIncrease,
		},
		{
			name:              "queda simples",
			previous:          200,
			current:           150,
			expectedPct:       floatPtr(-25),
			expectedDirection: domain.ChangeDecrease,
		},
		{
			name:              "queda total para zero",
			previous:          80,
			current:           0,
			expectedPct:       floatPtr(-100),
			expectedDirection: domain.ChangeDecrease,
		},
		{
			name:              "sem variação é neutro, não queda",
			previous:          75,
			current:           75,
			expectedPct:       floatPtr(0),
			expectedDirection: domain.ChangeNeutral,
		},
		{
			name:              "zero para zero é 0%, não indefinido",
			previous:          0,
			current:           0,
			expectedPct:       floatPtr(0),
			expectedDirection: domain.ChangeNeutral,
		},
		{
			name:              "crescimento a partir de zero usa o sentinela nil",
			previous:          0,
			current:           500,
			expectedPct:       nil,
			expectedDirection: domain.ChangeNew,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Compare(decimal.NewFromInt(tt.current), decimal.NewFromInt(tt.previous))

			assert.True(t, decimal.NewFromInt(tt.current-tt.previous).Equal(result.AbsoluteChange))
			assert.Equal(t, tt.expectedDirection, result.Direction)

			if tt.expectedPct == nil {
				assert.Nil(t, result.PercentageChange, "sentinela de crescimento infinito deve ser nil")
			} else {
				require.NotNil(t, result.PercentageChange)
				assert.InDelta(t, *tt.expectedPct, *result.PercentageChange, 0.001)
			}
		})
	}
}

func TestCompare_FractionalPercent(t *testing.T) {
	// 150 -> 200: +33.33% com arredondamento em duas casas
	result := Compare(decimal.NewFromInt(200), decimal.NewFromInt(150))

	require.NotNil(t, result.PercentageChange)
	assert.InDelta(t, 33.33, *result.PercentageChange, 0.001)
}

func TestCompareCounts(t *testing.T) {
	result := CompareCounts(30, 20)

	require.NotNil(t, result.PercentageChange)
	assert.InDelta(t, 50.0, *result.PercentageChange, 0.001)
	assert.Equal(t, domain.ChangeIncrease, result.Direction)
}

func floatPtr(f float64) *float64 { return &f }
