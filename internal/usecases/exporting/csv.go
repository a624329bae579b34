package exporting

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/Mwenda-Eric/bvaccess-api/internal/domain"
)

// dailyReportCSV monta o relatório diário em seções empilhadas, cada uma
// com o próprio cabeçalho, no mesmo arquivo
func dailyReportCSV(report *domain.DailyReport) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	rows := [][]string{
		{"Relatório diário", report.Date},
		{},
		{"Vendas", "Receita bruta", "Ticket médio", "Anulados", "Valor anulado", "Receita líquida", "Hora de pico", "Vendas na hora de pico"},
		{
			strconv.Itoa(report.Summary.TotalSales),
			report.Summary.TotalRevenue.String(),
			report.Summary.AverageTicket.String(),
			strconv.Itoa(report.Summary.VoidedCount),
			report.Summary.VoidedAmount.String(),
			report.Summary.NetRevenue.String(),
			strconv.Itoa(report.Summary.PeakHour),
			strconv.Itoa(report.Summary.PeakHourSales),
		},
		{},
		{"Hora", "Vendas", "Receita"},
	}

	for _, item := range report.HourlyBreakdown {
		rows = append(rows, []string{
			strconv.Itoa(item.Hour),
			strconv.Itoa(item.SalesCount),
			item.Revenue.String(),
		})
	}

	rows = append(rows, []string{}, []string{"Local", "Vendas", "Receita", "Percentual"})
	for _, item := range report.LocationBreakdown {
		rows = append(rows, []string{
			item.LocationName,
			strconv.Itoa(item.SalesCount),
			item.Revenue.String(),
			formatPercentage(item.Percentage),
		})
	}

	rows = append(rows, []string{}, []string{"Operador", "Local", "Vendas", "Receita", "Ticket médio"})
	for _, item := range report.OperatorBreakdown {
		rows = append(rows, []string{
			item.OperatorName,
			item.LocationName,
			strconv.Itoa(item.SalesCount),
			item.Revenue.String(),
			item.AverageTicket.String(),
		})
	}

	rows = append(rows, []string{}, []string{"Duração", "Vendas", "Receita", "Percentual"})
	for _, item := range report.DurationBreakdown {
		rows = append(rows, []string{
			item.Label,
			strconv.Itoa(item.SalesCount),
			item.Revenue.String(),
			formatPercentage(item.Percentage),
		})
	}

	rows = append(rows, []string{}, []string{"Forma de pagamento", "Vendas", "Receita", "Percentual"})
	for _, item := range report.PaymentBreakdown {
		rows = append(rows, []string{
			string(item.Method),
			strconv.Itoa(item.SalesCount),
			item.Revenue.String(),
			formatPercentage(item.Percentage),
		})
	}

	if err := w.WriteAll(rows); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func periodReportCSV(report *domain.PeriodReport) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	rows := [][]string{
		{"Relatório de período", report.StartDate, report.EndDate},
		{},
		{"Dias", "Vendas", "Receita bruta", "Ticket médio", "Vendas/dia", "Receita/dia", "Anulados", "Valor anulado", "Receita líquida"},
		{
			strconv.Itoa(report.Summary.TotalDays),
			strconv.Itoa(report.Summary.TotalSales),
			report.Summary.TotalRevenue.String(),
			report.Summary.AverageTicket.String(),
			strconv.FormatFloat(report.Summary.AverageDailySales, 'f', 2, 64),
			report.Summary.AverageDailyRevenue.String(),
			strconv.Itoa(report.Summary.VoidedCount),
			report.Summary.VoidedAmount.String(),
			report.Summary.NetRevenue.String(),
		},
		{},
		{"Melhor dia", report.Summary.BestDay.Date, report.Summary.BestDay.Revenue.String(), strconv.Itoa(report.Summary.BestDay.SalesCount)},
		{"Pior dia", report.Summary.WorstDay.Date, report.Summary.WorstDay.Revenue.String(), strconv.Itoa(report.Summary.WorstDay.SalesCount)},
	}

	if report.Comparison != nil {
		rows = append(rows,
			[]string{},
			[]string{"Período anterior", "Receita", "Variação", "Variação %", "Vendas", "Variação vendas", "Variação vendas %"},
			[]string{
				"",
				report.Comparison.PreviousPeriodRevenue.String(),
				report.Comparison.RevenueChange.String(),
				formatOptionalPercentage(report.Comparison.RevenueChangePercentage),
				strconv.Itoa(report.Comparison.PreviousPeriodSales),
				strconv.Itoa(report.Comparison.SalesChange),
				formatOptionalPercentage(report.Comparison.SalesChangePercentage),
			},
		)
	}

	rows = append(rows, []string{}, []string{"Data", "Vendas", "Receita", "Anulados"})
	for _, item := range report.DailyTrend {
		rows = append(rows, []string{
			item.Date,
			strconv.Itoa(item.SalesCount),
			item.Revenue.String(),
			strconv.Itoa(item.VoidedCount),
		})
	}

	rows = append(rows, []string{}, []string{"Local", "Vendas", "Receita", "Percentual"})
	for _, item := range report.LocationBreakdown {
		rows = append(rows, []string{
			item.LocationName,
			strconv.Itoa(item.SalesCount),
			item.Revenue.String(),
			formatPercentage(item.Percentage),
		})
	}

	rows = append(rows, []string{}, []string{"Operador", "Local", "Vendas", "Receita", "Ticket médio"})
	for _, item := range report.OperatorBreakdown {
		rows = append(rows, []string{
			item.OperatorName,
			item.LocationName,
			strconv.Itoa(item.SalesCount),
			item.Revenue.String(),
			item.AverageTicket.String(),
		})
	}

	if err := w.WriteAll(rows); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func formatPercentage(value float64) string {
	return strconv.FormatFloat(value, 'f', 2, 64)
}

// formatOptionalPercentage trata o sentinela de crescimento a partir do zero
func formatOptionalPercentage(value *float64) string {
	if value == nil {
		return "N/A"
	}
	return formatPercentage(*value)
}
