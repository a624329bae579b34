package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BucketSize é a granularidade de uma série temporal
type BucketSize string

const (
	BucketHour  BucketSize = "hour"
	BucketDay   BucketSize = "day"
	BucketMonth BucketSize = "month"
)

// TrendPoint é um ponto de uma série temporal com preenchimento de lacunas:
// todo bucket do intervalo pedido aparece na série, mesmo com valores zerados.
// Buckets vazios importam para gráficos contínuos e para a detecção de
// "pior dia", que precisa considerar dias sem vendas.
type TrendPoint struct {
	Bucket      time.Time       `json:"-"`
	Label       string          `json:"label"`
	SalesCount  int             `json:"salesCount"`
	Revenue     decimal.Decimal `json:"revenue"`
	VoidedCount int             `json:"voidedCount"`
}

// DailyTrendItem é o formato da série diária dos relatórios de período
type DailyTrendItem struct {
	Date        string          `json:"date"`
	SalesCount  int             `json:"salesCount"`
	Revenue     decimal.Decimal `json:"revenue"`
	VoidedCount int             `json:"voidedCount"`
}

// ChartPeriod são os períodos pré-definidos do painel
type ChartPeriod string

const (
	ChartPeriod7D  ChartPeriod = "7d"
	ChartPeriod30D ChartPeriod = "30d"
	ChartPeriod90D ChartPeriod = "90d"
	ChartPeriod12M ChartPeriod = "12m"
)

// ChartDataset e ChartData seguem o formato de séries consumido pelos
// componentes de gráfico do painel (labels + datasets)
type ChartDataset struct {
	Label string            `json:"label"`
	Data  []decimal.Decimal `json:"data"`
}

type ChartData struct {
	Labels   []string       `json:"labels"`
	Datasets []ChartDataset `json:"datasets"`
}
