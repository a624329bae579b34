package domain

import "github.com/shopspring/decimal"

// ChangeDirection classifica uma variação pelo sinal: zero é neutro, nunca queda
type ChangeDirection string

const (
	ChangeIncrease ChangeDirection = "increase"
	ChangeDecrease ChangeDirection = "decrease"
	ChangeNeutral  ChangeDirection = "neutral"
	// ChangeNew marca crescimento a partir de zero: o percentual não é
	// definível e PercentageChange vai como null na resposta
	ChangeNew ChangeDirection = "new"
)

// ComparisonResult compara uma métrica entre dois períodos.
// Convenção do sentinela de "crescimento infinito": quando o período
// anterior é zero e o atual é positivo, PercentageChange é nil (null no
// JSON) e Direction é "new". Nunca propagamos NaN ou infinito.
type ComparisonResult struct {
	PreviousValue    decimal.Decimal `json:"previousValue"`
	CurrentValue     decimal.Decimal `json:"currentValue"`
	AbsoluteChange   decimal.Decimal `json:"absoluteChange"`
	PercentageChange *float64        `json:"percentageChange"`
	Direction        ChangeDirection `json:"direction"`
}
