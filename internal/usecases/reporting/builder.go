// Package reporting monta os dois relatórios externos do painel (diário e
// de período) combinando o agregador de janelas, os breakdowns por dimensão
// e o construtor de séries temporais. Os builders são funções puras sobre
// uma coleção já materializada; o Service por cima busca os registros.
package reporting

import (
	"sort"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Mwenda-Eric/bvaccess-api/internal/domain"
	"github.com/Mwenda-Eric/bvaccess-api/internal/usecases/aggregating"
	"github.com/Mwenda-Eric/bvaccess-api/pkg/utils"
)

// BuildDailyReport fecha o relatório de um único dia a partir dos registros
// informados. A coleção deve cobrir o dia inteiro (criações e anulações);
// registros fora da janela são ignorados pelos agregadores.
func BuildDailyReport(records []*domain.VoucherRecord, date time.Time, tiers []domain.DurationTier, loc *time.Location) (*domain.DailyReport, error) {
	if loc == nil {
		loc = time.UTC
	}
	window := domain.DayRange(date, loc)

	stats := aggregating.Aggregate(records, window)

	hourly, err := aggregating.BuildTrend(records, window, domain.BucketHour, loc)
	if err != nil {
		return nil, err
	}

	hourlyBreakdown := make([]domain.HourlyBreakdownItem, 0, len(hourly))
	peakHour, peakHourSales := 0, 0
	for _, point := range hourly {
		hour := point.Bucket.In(loc).Hour()
		hourlyBreakdown = append(hourlyBreakdown, domain.HourlyBreakdownItem{
			Hour:       hour,
			SalesCount: point.SalesCount,
			Revenue:    point.Revenue,
		})
		// Empate de pico resolve para a menor hora: só troca se for maior estrito
		if point.SalesCount > peakHourSales {
			peakHourSales = point.SalesCount
			peakHour = hour
		}
	}

	locationBreakdown, err := buildLocationBreakdown(records, window)
	if err != nil {
		return nil, err
	}

	durationBreakdown, err := buildDurationBreakdown(records, window, tiers)
	if err != nil {
		return nil, err
	}

	paymentBreakdown, err := buildPaymentBreakdown(records, window)
	if err != nil {
		return nil, err
	}

	return &domain.DailyReport{
		Date: window.Start.Format(time.DateOnly),
		Summary: domain.DailyReportSummary{
			TotalSales:    stats.TotalSales,
			TotalRevenue:  stats.TotalRevenue,
			AverageTicket: stats.AverageTicket,
			VoidedCount:   stats.VoidedCount,
			VoidedAmount:  stats.VoidedAmount,
			NetRevenue:    stats.NetRevenue(),
			PeakHour:      peakHour,
			PeakHourSales: peakHourSales,
		},
		HourlyBreakdown:   hourlyBreakdown,
		LocationBreakdown: locationBreakdown,
		OperatorBreakdown: buildOperatorBreakdown(records, window),
		DurationBreakdown: durationBreakdown,
		PaymentBreakdown:  paymentBreakdown,
	}, nil
}

// BuildPeriodReport fecha o relatório de um intervalo inclusivo de datas.
// Com comparePrevious, a coleção também deve cobrir o período de mesmo
// comprimento imediatamente anterior ao início.
func BuildPeriodReport(records []*domain.VoucherRecord, startDate, endDate time.Time, comparePrevious bool, tiers []domain.DurationTier, loc *time.Location) (*domain.PeriodReport, error) {
	if loc == nil {
		loc = time.UTC
	}

	window, err := domain.DateSpanRange(startDate, endDate, loc)
	if err != nil {
		return nil, err
	}

	stats := aggregating.Aggregate(records, window)

	daily, err := aggregating.BuildTrend(records, window, domain.BucketDay, loc)
	if err != nil {
		return nil, err
	}

	dailyTrend := make([]domain.DailyTrendItem, 0, len(daily))
	for _, point := range daily {
		dailyTrend = append(dailyTrend, domain.DailyTrendItem{
			Date:        point.Label,
			SalesCount:  point.SalesCount,
			Revenue:     point.Revenue,
			VoidedCount: point.VoidedCount,
		})
	}

	best, worst := pickBestAndWorstDays(daily)

	totalDays := len(daily)
	summary := domain.PeriodReportSummary{
		TotalDays:     totalDays,
		TotalSales:    stats.TotalSales,
		TotalRevenue:  stats.TotalRevenue,
		AverageTicket: stats.AverageTicket,
		AverageDailySales: utils.RoundWithTwoDecimalPlace(
			float64(stats.TotalSales) / float64(totalDays),
		),
		AverageDailyRevenue: stats.TotalRevenue.
			Div(decimal.NewFromInt(int64(totalDays))).
			Round(2),
		VoidedCount:  stats.VoidedCount,
		VoidedAmount: stats.VoidedAmount,
		NetRevenue:   stats.NetRevenue(),
		BestDay:      best,
		WorstDay:     worst,
	}

	locationBreakdown, err := buildLocationBreakdown(records, window)
	if err != nil {
		return nil, err
	}

	report := &domain.PeriodReport{
		StartDate:         window.Start.Format(time.DateOnly),
		EndDate:           window.End.AddDate(0, 0, -1).Format(time.DateOnly),
		Summary:           summary,
		DailyTrend:        dailyTrend,
		LocationBreakdown: locationBreakdown,
		OperatorBreakdown: buildOperatorBreakdown(records, window),
	}

	if comparePrevious {
		previous := aggregating.Aggregate(records, window.Previous())
		revenue := aggregating.Compare(stats.TotalRevenue, previous.TotalRevenue)
		sales := aggregating.CompareCounts(stats.TotalSales, previous.TotalSales)

		report.Comparison = &domain.PeriodComparison{
			PreviousPeriodRevenue:   previous.TotalRevenue,
			RevenueChange:           revenue.AbsoluteChange,
			RevenueChangePercentage: revenue.PercentageChange,
			PreviousPeriodSales:     previous.TotalSales,
			SalesChange:             stats.TotalSales - previous.TotalSales,
			SalesChangePercentage:   sales.PercentageChange,
		}
	}

	return report, nil
}

// pickBestAndWorstDays varre a série diária completa: dias sem venda são
// candidatos válidos a pior dia, e empates resolvem para a data mais antiga
func pickBestAndWorstDays(daily []domain.TrendPoint) (best, worst domain.DayStat) {
	if len(daily) == 0 {
		return best, worst
	}

	bestPoint, worstPoint := daily[0], daily[0]
	for _, point := range daily[1:] {
		if point.Revenue.GreaterThan(bestPoint.Revenue) {
			bestPoint = point
		}
		if point.Revenue.LessThan(worstPoint.Revenue) {
			worstPoint = point
		}
	}

	best = domain.DayStat{Date: bestPoint.Label, Revenue: bestPoint.Revenue, SalesCount: bestPoint.SalesCount}
	worst = domain.DayStat{Date: worstPoint.Label, Revenue: worstPoint.Revenue, SalesCount: worstPoint.SalesCount}
	return best, worst
}

func buildLocationBreakdown(records []*domain.VoucherRecord, window domain.TimeRange) ([]domain.LocationBreakdownItem, error) {
	items, err := aggregating.BreakdownBy(records, aggregating.LocationSelector{}, window)
	if err != nil {
		return nil, err
	}

	result := make([]domain.LocationBreakdownItem, 0, len(items))
	for _, item := range items {
		result = append(result, domain.LocationBreakdownItem{
			LocationID:   item.Key,
			LocationName: item.Label,
			SalesCount:   item.SalesCount,
			Revenue:      item.Revenue,
			Percentage:   item.Percentage,
		})
	}
	return result, nil
}

func buildDurationBreakdown(records []*domain.VoucherRecord, window domain.TimeRange, tiers []domain.DurationTier) ([]domain.DurationBreakdownItem, error) {
	if tiers == nil {
		tiers = domain.DefaultDurationTiers()
	}

	items, err := aggregating.BreakdownBy(records, aggregating.DurationSelector{Tiers: tiers}, window)
	if err != nil {
		return nil, err
	}

	result := make([]domain.DurationBreakdownItem, 0, len(items))
	for _, item := range items {
		// O bucket custom não tem uma duração única; fica com zero minutos
		minutes, _ := strconv.Atoi(item.Key)
		result = append(result, domain.DurationBreakdownItem{
			DurationMinutes: minutes,
			Label:           item.Label,
			SalesCount:      item.SalesCount,
			Revenue:         item.Revenue,
			Percentage:      item.Percentage,
		})
	}
	return result, nil
}

func buildPaymentBreakdown(records []*domain.VoucherRecord, window domain.TimeRange) ([]domain.PaymentBreakdownItem, error) {
	items, err := aggregating.BreakdownBy(records, aggregating.PaymentMethodSelector{}, window)
	if err != nil {
		return nil, err
	}

	result := make([]domain.PaymentBreakdownItem, 0, len(items))
	for _, item := range items {
		result = append(result, domain.PaymentBreakdownItem{
			Method:     domain.PaymentMethod(item.Key),
			SalesCount: item.SalesCount,
			Revenue:    item.Revenue,
			Percentage: item.Percentage,
		})
	}
	return result, nil
}

// buildOperatorBreakdown acumula direto dos registros porque a linha de
// operador carrega campos que o BreakdownItem genérico não tem (localidade
// e ticket médio por operador)
func buildOperatorBreakdown(records []*domain.VoucherRecord, window domain.TimeRange) []domain.OperatorBreakdownItem {
	byOperator := make(map[string]*domain.OperatorBreakdownItem)

	for _, rec := range records {
		if rec == nil || rec.IsVoid || !window.Contains(rec.CreatedAt) {
			continue
		}

		item, ok := byOperator[rec.OperatorID]
		if !ok {
			item = &domain.OperatorBreakdownItem{
				OperatorID:   rec.OperatorID,
				OperatorName: rec.OperatorName,
				LocationName: rec.LocationName,
				Revenue:      decimal.Zero,
			}
			byOperator[rec.OperatorID] = item
		}

		item.SalesCount++
		item.Revenue = item.Revenue.Add(rec.Price)
	}

	result := make([]domain.OperatorBreakdownItem, 0, len(byOperator))
	for _, item := range byOperator {
		item.AverageTicket = item.Revenue.
			Div(decimal.NewFromInt(int64(item.SalesCount))).
			Round(2)
		result = append(result, *item)
	}

	sort.Slice(result, func(i, j int) bool {
		if cmp := result[i].Revenue.Cmp(result[j].Revenue); cmp != 0 {
			return cmp > 0
		}
		if result[i].SalesCount != result[j].SalesCount {
			return result[i].SalesCount > result[j].SalesCount
		}
		return result[i].OperatorID < result[j].OperatorID
	})

	return result
}
