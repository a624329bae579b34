package aggregating

import (
	"github.com/shopspring/decimal"

	"github.com/Mwenda-Eric/bvaccess-api/internal/domain"
	"github.com/Mwenda-Eric/bvaccess-api/pkg/utils"
)

var hundred = decimal.NewFromInt(100)

// Compare calcula a variação de uma métrica entre o período atual e o
// anterior. Política dos casos de borda, testada explicitamente:
//
//   - anterior = 0 e atual = 0: variação de 0%, direção neutra;
//   - anterior = 0 e atual > 0: percentual indefinível — PercentageChange
//     fica nil (null no JSON) e a direção é "new". Nunca 0% nem infinito.
func Compare(current, previous decimal.Decimal) domain.ComparisonResult {
	result := domain.ComparisonResult{
		PreviousValue:  previous,
		CurrentValue:   current,
		AbsoluteChange: current.Sub(previous),
	}

	switch {
	case previous.IsZero() && current.IsZero():
		zero := 0.0
		result.PercentageChange = &zero
		result.Direction = domain.ChangeNeutral

	case previous.IsZero():
		result.Direction = domain.ChangeNew

	default:
		pct := utils.RoundWithTwoDecimalPlace(
			result.AbsoluteChange.Div(previous).Mul(hundred).InexactFloat64(),
		)
		result.PercentageChange = &pct
		result.Direction = directionOf(result.AbsoluteChange)
	}

	return result
}

// CompareCounts é a variante de Compare para métricas de contagem
func CompareCounts(current, previous int) domain.ComparisonResult {
	return Compare(decimal.NewFromInt(int64(current)), decimal.NewFromInt(int64(previous)))
}

// directionOf classifica a variação pelo sinal: zero é neutro, não queda
func directionOf(change decimal.Decimal) domain.ChangeDirection {
	switch change.Sign() {
	case 1:
		return domain.ChangeIncrease
	case -1:
		return domain.ChangeDecrease
	default:
		return domain.ChangeNeutral
	}
}
