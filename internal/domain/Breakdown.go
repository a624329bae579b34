package domain

import (
	"errors"

	"github.com/shopspring/decimal"
)

// Dimension identifica por qual eixo os registros serão agrupados
type Dimension string

const (
	DimensionLocation      Dimension = "location"
	DimensionOperator      Dimension = "operator"
	DimensionPaymentMethod Dimension = "paymentMethod"
	DimensionDuration      Dimension = "durationBucket"
	DimensionHourOfDay     Dimension = "hourOfDay"
)

// ErrUnknownDimension indica um pedido de breakdown por dimensão não suportada
var ErrUnknownDimension = errors.New("dimensão de breakdown desconhecida")

// BreakdownItem é o agregado de um valor de dimensão dentro de uma janela.
// Percentage é calculado sobre o total da própria dimensão na janela, o que
// garante que os percentuais de um breakdown somem 100 quando há receita.
type BreakdownItem struct {
	Key        string          `json:"key"`
	Label      string          `json:"label"`
	SalesCount int             `json:"salesCount"`
	Revenue    decimal.Decimal `json:"revenue"`
	Percentage float64         `json:"percentage"`
}

// Itens tipados dos relatórios, no mesmo formato consumido pelo painel

type HourlyBreakdownItem struct {
	Hour       int             `json:"hour"`
	SalesCount int             `json:"salesCount"`
	Revenue    decimal.Decimal `json:"revenue"`
}

type LocationBreakdownItem struct {
	LocationID   string          `json:"locationId"`
	LocationName string          `json:"locationName"`
	SalesCount   int             `json:"salesCount"`
	Revenue      decimal.Decimal `json:"revenue"`
	Percentage   float64         `json:"percentage"`
}

type OperatorBreakdownItem struct {
	OperatorID    string          `json:"operatorId"`
	OperatorName  string          `json:"operatorName"`
	LocationName  string          `json:"locationName"`
	SalesCount    int             `json:"salesCount"`
	Revenue       decimal.Decimal `json:"revenue"`
	AverageTicket decimal.Decimal `json:"averageTicket"`
}

type DurationBreakdownItem struct {
	DurationMinutes int             `json:"durationMinutes"`
	Label           string          `json:"label"`
	SalesCount      int             `json:"salesCount"`
	Revenue         decimal.Decimal `json:"revenue"`
	Percentage      float64         `json:"percentage"`
}

type PaymentBreakdownItem struct {
	Method     PaymentMethod   `json:"method"`
	SalesCount int             `json:"salesCount"`
	Revenue    decimal.Decimal `json:"revenue"`
	Percentage float64         `json:"percentage"`
}
