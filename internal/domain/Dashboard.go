package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DashboardSummary alimenta os cartões principais do painel
type DashboardSummary struct {
	Today             PeriodStats       `json:"today"`
	Yesterday         PeriodStats       `json:"yesterday"`
	ThisWeek          PeriodStats       `json:"thisWeek"`
	LastWeek          PeriodStats       `json:"lastWeek"`
	ThisMonth         PeriodStats       `json:"thisMonth"`
	LastMonth         PeriodStats       `json:"lastMonth"`
	PercentageChanges PercentageChanges `json:"percentageChanges"`
}

// PercentageChanges usa a mesma convenção de sentinela dos relatórios:
// null significa crescimento a partir de um período anterior zerado
type PercentageChanges struct {
	SalesToday   *float64 `json:"salesToday"`
	RevenueToday *float64 `json:"revenueToday"`
	SalesWeek    *float64 `json:"salesWeek"`
	RevenueWeek  *float64 `json:"revenueWeek"`
	SalesMonth   *float64 `json:"salesMonth"`
	RevenueMonth *float64 `json:"revenueMonth"`
}

// HourlyDistribution é uma linha do heatmap de horários
type HourlyDistribution struct {
	Hour       int             `json:"hour"`
	SalesCount int             `json:"salesCount"`
	Revenue    decimal.Decimal `json:"revenue"`
}

// TopOperator é uma linha do ranking de operadores do painel
type TopOperator struct {
	ID            string          `json:"id"`
	FullName      string          `json:"fullName"`
	Username      string          `json:"username"`
	TotalSales    int             `json:"totalSales"`
	TotalRevenue  decimal.Decimal `json:"totalRevenue"`
	AverageTicket decimal.Decimal `json:"averageTicket"`
}

// RecentVoucher é a projeção enxuta da tabela de últimas vendas
type RecentVoucher struct {
	ID           string          `json:"id"`
	Code         string          `json:"code"`
	LocationName string          `json:"locationName"`
	DurationMin  int             `json:"durationMinutes"`
	Price        decimal.Decimal `json:"price"`
	OperatorName string          `json:"operatorName"`
	CreatedAt    time.Time       `json:"createdAt"`
	IsVoid       bool            `json:"isVoid"`
}

// ActiveOperatorsCount resume operadores com venda no dia corrente
type ActiveOperatorsCount struct {
	ActiveToday int `json:"activeToday"`
	Total       int `json:"total"`
}
