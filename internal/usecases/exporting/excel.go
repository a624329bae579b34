package exporting

import (
	"fmt"

	"github.com/Mwenda-Eric/bvaccess-api/internal/domain"
	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

const summarySheet = "Resumo"

func dailyReportExcel(report *domain.DailyReport) ([]byte, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			logrus.WithFields(logrus.Fields{"error": err.Error()}).Warn("Erro ao fechar arquivo de exportação")
		}
	}()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, fmt.Errorf("erro ao montar a planilha: %w", err)
	}

	summaryRows := [][]any{
		{"Relatório diário", report.Date},
		{},
		{"Vendas", report.Summary.TotalSales},
		{"Receita bruta", report.Summary.TotalRevenue.InexactFloat64()},
		{"Ticket médio", report.Summary.AverageTicket.InexactFloat64()},
		{"Anulados", report.Summary.VoidedCount},
		{"Valor anulado", report.Summary.VoidedAmount.InexactFloat64()},
		{"Receita líquida", report.Summary.NetRevenue.InexactFloat64()},
		{"Hora de pico", report.Summary.PeakHour},
		{"Vendas na hora de pico", report.Summary.PeakHourSales},
	}
	if err := writeSheet(f, summarySheet, summaryRows); err != nil {
		return nil, err
	}

	hourlyRows := [][]any{{"Hora", "Vendas", "Receita"}}
	for _, item := range report.HourlyBreakdown {
		hourlyRows = append(hourlyRows, []any{item.Hour, item.SalesCount, item.Revenue.InexactFloat64()})
	}
	if err := addSheet(f, "Por hora", hourlyRows); err != nil {
		return nil, err
	}

	if err := addSheet(f, "Por local", locationRows(report.LocationBreakdown)); err != nil {
		return nil, err
	}

	if err := addSheet(f, "Por operador", operatorRows(report.OperatorBreakdown)); err != nil {
		return nil, err
	}

	durationRows := [][]any{{"Duração", "Vendas", "Receita", "Percentual"}}
	for _, item := range report.DurationBreakdown {
		durationRows = append(durationRows, []any{item.Label, item.SalesCount, item.Revenue.InexactFloat64(), item.Percentage})
	}
	if err := addSheet(f, "Por duração", durationRows); err != nil {
		return nil, err
	}

	paymentRows := [][]any{{"Forma de pagamento", "Vendas", "Receita", "Percentual"}}
	for _, item := range report.PaymentBreakdown {
		paymentRows = append(paymentRows, []any{string(item.Method), item.SalesCount, item.Revenue.InexactFloat64(), item.Percentage})
	}
	if err := addSheet(f, "Por pagamento", paymentRows); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("erro ao gravar a planilha: %w", err)
	}

	return buf.Bytes(), nil
}

func periodReportExcel(report *domain.PeriodReport) ([]byte, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			logrus.WithFields(logrus.Fields{"error": err.Error()}).Warn("Erro ao fechar arquivo de exportação")
		}
	}()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, fmt.Errorf("erro ao montar a planilha: %w", err)
	}

	summaryRows := [][]any{
		{"Relatório de período", report.StartDate, report.EndDate},
		{},
		{"Dias", report.Summary.TotalDays},
		{"Vendas", report.Summary.TotalSales},
		{"Receita bruta", report.Summary.TotalRevenue.InexactFloat64()},
		{"Ticket médio", report.Summary.AverageTicket.InexactFloat64()},
		{"Vendas/dia", report.Summary.AverageDailySales},
		{"Receita/dia", report.Summary.AverageDailyRevenue.InexactFloat64()},
		{"Anulados", report.Summary.VoidedCount},
		{"Valor anulado", report.Summary.VoidedAmount.InexactFloat64()},
		{"Receita líquida", report.Summary.NetRevenue.InexactFloat64()},
		{},
		{"Melhor dia", report.Summary.BestDay.Date, report.Summary.BestDay.Revenue.InexactFloat64(), report.Summary.BestDay.SalesCount},
		{"Pior dia", report.Summary.WorstDay.Date, report.Summary.WorstDay.Revenue.InexactFloat64(), report.Summary.WorstDay.SalesCount},
	}

	if report.Comparison != nil {
		summaryRows = append(summaryRows,
			[]any{},
			[]any{"Receita do período anterior", report.Comparison.PreviousPeriodRevenue.InexactFloat64()},
			[]any{"Variação de receita", report.Comparison.RevenueChange.InexactFloat64()},
			[]any{"Variação de receita %", optionalPercentageCell(report.Comparison.RevenueChangePercentage)},
			[]any{"Vendas do período anterior", report.Comparison.PreviousPeriodSales},
			[]any{"Variação de vendas", report.Comparison.SalesChange},
			[]any{"Variação de vendas %", optionalPercentageCell(report.Comparison.SalesChangePercentage)},
		)
	}

	if err := writeSheet(f, summarySheet, summaryRows); err != nil {
		return nil, err
	}

	trendRows := [][]any{{"Data", "Vendas", "Receita", "Anulados"}}
	for _, item := range report.DailyTrend {
		trendRows = append(trendRows, []any{item.Date, item.SalesCount, item.Revenue.InexactFloat64(), item.VoidedCount})
	}
	if err := addSheet(f, "Tendência diária", trendRows); err != nil {
		return nil, err
	}

	if err := addSheet(f, "Por local", locationRows(report.LocationBreakdown)); err != nil {
		return nil, err
	}

	if err := addSheet(f, "Por operador", operatorRows(report.OperatorBreakdown)); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("erro ao gravar a planilha: %w", err)
	}

	return buf.Bytes(), nil
}

func locationRows(items []domain.LocationBreakdownItem) [][]any {
	rows := [][]any{{"Local", "Vendas", "Receita", "Percentual"}}
	for _, item := range items {
		rows = append(rows, []any{item.LocationName, item.SalesCount, item.Revenue.InexactFloat64(), item.Percentage})
	}
	return rows
}

func operatorRows(items []domain.OperatorBreakdownItem) [][]any {
	rows := [][]any{{"Operador", "Local", "Vendas", "Receita", "Ticket médio"}}
	for _, item := range items {
		rows = append(rows, []any{item.OperatorName, item.LocationName, item.SalesCount, item.Revenue.InexactFloat64(), item.AverageTicket.InexactFloat64()})
	}
	return rows
}

func addSheet(f *excelize.File, name string, rows [][]any) error {
	if _, err := f.NewSheet(name); err != nil {
		return fmt.Errorf("erro ao montar a planilha: %w", err)
	}
	return writeSheet(f, name, rows)
}

func writeSheet(f *excelize.File, name string, rows [][]any) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("erro ao montar a planilha: %w", err)
		}
		if err := f.SetSheetRow(name, cell, &row); err != nil {
			return fmt.Errorf("erro ao montar a planilha: %w", err)
		}
	}
	return nil
}

// optionalPercentageCell trata o sentinela de crescimento a partir do zero
func optionalPercentageCell(value *float64) any {
	if value == nil {
		return "N/A"
	}
	return *value
}
