package domain

import "github.com/shopspring/decimal"

// DailyReport é o relatório fechado de um único dia
type DailyReport struct {
	Date              string                  `json:"date"`
	Summary           DailyReportSummary      `json:"summary"`
	HourlyBreakdown   []HourlyBreakdownItem   `json:"hourlyBreakdown"`
	LocationBreakdown []LocationBreakdownItem `json:"locationBreakdown"`
	OperatorBreakdown []OperatorBreakdownItem `json:"operatorBreakdown"`
	DurationBreakdown []DurationBreakdownItem `json:"durationBreakdown"`
	PaymentBreakdown  []PaymentBreakdownItem  `json:"paymentBreakdown"`
}

type DailyReportSummary struct {
	TotalSales    int             `json:"totalSales"`
	TotalRevenue  decimal.Decimal `json:"totalRevenue"`
	AverageTicket decimal.Decimal `json:"averageTicket"`
	VoidedCount   int             `json:"voidedCount"`
	VoidedAmount  decimal.Decimal `json:"voidedAmount"`
	NetRevenue    decimal.Decimal `json:"netRevenue"`
	PeakHour      int             `json:"peakHour"`
	PeakHourSales int             `json:"peakHourSales"`
}

// DayStat identifica o melhor/pior dia de um período
type DayStat struct {
	Date       string          `json:"date"`
	Revenue    decimal.Decimal `json:"revenue"`
	SalesCount int             `json:"salesCount"`
}

// PeriodReport é o relatório consolidado de um intervalo de dias
type PeriodReport struct {
	StartDate         string                  `json:"startDate"`
	EndDate           string                  `json:"endDate"`
	Summary           PeriodReportSummary     `json:"summary"`
	DailyTrend        []DailyTrendItem        `json:"dailyTrend"`
	LocationBreakdown []LocationBreakdownItem `json:"locationBreakdown"`
	OperatorBreakdown []OperatorBreakdownItem `json:"operatorBreakdown"`
	Comparison        *PeriodComparison       `json:"comparison,omitempty"`
}

type PeriodReportSummary struct {
	TotalDays           int             `json:"totalDays"`
	TotalSales          int             `json:"totalSales"`
	TotalRevenue        decimal.Decimal `json:"totalRevenue"`
	AverageTicket       decimal.Decimal `json:"averageTicket"`
	AverageDailySales   float64         `json:"averageDailySales"`
	AverageDailyRevenue decimal.Decimal `json:"averageDailyRevenue"`
	VoidedCount         int             `json:"voidedCount"`
	VoidedAmount        decimal.Decimal `json:"voidedAmount"`
	NetRevenue          decimal.Decimal `json:"netRevenue"`
	BestDay             DayStat         `json:"bestDay"`
	WorstDay            DayStat         `json:"worstDay"`
}

// PeriodComparison compara o período pedido com o período de mesmo
// comprimento imediatamente anterior. Os campos de percentual seguem a
// convenção do sentinela de ComparisonResult (null = crescimento do zero).
type PeriodComparison struct {
	PreviousPeriodRevenue   decimal.Decimal `json:"previousPeriodRevenue"`
	RevenueChange           decimal.Decimal `json:"revenueChange"`
	RevenueChangePercentage *float64        `json:"revenueChangePercentage"`
	PreviousPeriodSales     int             `json:"previousPeriodSales"`
	SalesChange             int             `json:"salesChange"`
	SalesChangePercentage   *float64        `json:"salesChangePercentage"`
}
