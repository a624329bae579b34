// Package dashboarding serve os cartões, gráficos e listas da tela inicial
// do painel. Todas as janelas são calculadas no fuso configurado para
// relatórios e os percentuais seguem o sentinela de ComparisonResult.
package dashboarding

import (
	"errors"
	"sort"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/Mwenda-Eric/bvaccess-api/infrastructure/repository"
	"github.com/Mwenda-Eric/bvaccess-api/internal/config"
	"github.com/Mwenda-Eric/bvaccess-api/internal/domain"
	"github.com/Mwenda-Eric/bvaccess-api/internal/usecases/aggregating"
)

// ErrUnknownChartPeriod indica um período de gráfico fora de 7d/30d/90d/12m
var ErrUnknownChartPeriod = errors.New("período de gráfico desconhecido")

// Dashboarder expõe os dados consumidos pela tela inicial do painel
type Dashboarder interface {
	GetSummary() (*domain.DashboardSummary, error)
	RevenueChart(period domain.ChartPeriod) (*domain.ChartData, error)
	SalesByLocationChart(period domain.ChartPeriod) (*domain.ChartData, error)
	SalesByDurationChart(period domain.ChartPeriod) (*domain.ChartData, error)
	PaymentMethodsChart(period domain.ChartPeriod) (*domain.ChartData, error)
	HourlyHeatmap(period domain.ChartPeriod) ([]domain.HourlyDistribution, error)
	TopOperators(limit int) ([]domain.TopOperator, error)
	RecentVouchers(limit int) ([]domain.RecentVoucher, error)
	ActiveOperators() (*domain.ActiveOperatorsCount, error)
}

type Service struct {
	cfg                *config.Config
	voucherRepository  repository.VoucherRepository
	operatorRepository repository.OperatorRepository

	// Substituível nos testes para janelas determinísticas
	now func() time.Time
}

func NewService(
	cfg *config.Config,
	voucherRepo repository.VoucherRepository,
	operatorRepo repository.OperatorRepository,
) *Service {
	return &Service{
		cfg:                cfg,
		voucherRepository:  voucherRepo,
		operatorRepository: operatorRepo,
		now:                time.Now,
	}
}

// GetSummary calcula os seis cartões do painel em uma única busca.
// A semana começa na segunda-feira; semana e mês correntes são parciais
// (até o fim do dia de hoje), comparados com os períodos anteriores completos.
func (s *Service) GetSummary() (*domain.DashboardSummary, error) {
	loc := s.cfg.Report.Location()
	now := s.now().In(loc)

	today := domain.DayRange(now, loc)
	yesterday := today.Previous()

	weekStart := startOfWeek(now, loc)
	thisWeek := domain.TimeRange{Start: weekStart, End: today.End}
	lastWeek := domain.TimeRange{Start: weekStart.AddDate(0, 0, -7), End: weekStart}

	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)
	thisMonth := domain.TimeRange{Start: monthStart, End: today.End}
	lastMonth := domain.TimeRange{Start: monthStart.AddDate(0, -1, 0), End: monthStart}

	// O início do mês anterior antecede qualquer outra janela do resumo
	records, err := s.voucherRepository.GetByActivityRange(lastMonth.Start, today.End)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"error": err,
		}).Error("Erro ao buscar vouchers para o resumo do painel")
		return nil, err
	}

	summary := &domain.DashboardSummary{
		Today:     aggregating.Aggregate(records, today),
		Yesterday: aggregating.Aggregate(records, yesterday),
		ThisWeek:  aggregating.Aggregate(records, thisWeek),
		LastWeek:  aggregating.Aggregate(records, lastWeek),
		ThisMonth: aggregating.Aggregate(records, thisMonth),
		LastMonth: aggregating.Aggregate(records, lastMonth),
	}

	summary.PercentageChanges = domain.PercentageChanges{
		SalesToday:   aggregating.CompareCounts(summary.Today.TotalSales, summary.Yesterday.TotalSales).PercentageChange,
		RevenueToday: aggregating.Compare(summary.Today.TotalRevenue, summary.Yesterday.TotalRevenue).PercentageChange,
		SalesWeek:    aggregating.CompareCounts(summary.ThisWeek.TotalSales, summary.LastWeek.TotalSales).PercentageChange,
		RevenueWeek:  aggregating.Compare(summary.ThisWeek.TotalRevenue, summary.LastWeek.TotalRevenue).PercentageChange,
		SalesMonth:   aggregating.CompareCounts(summary.ThisMonth.TotalSales, summary.LastMonth.TotalSales).PercentageChange,
		RevenueMonth: aggregating.Compare(summary.ThisMonth.TotalRevenue, summary.LastMonth.TotalRevenue).PercentageChange,
	}

	return summary, nil
}

// RevenueChart retorna a série de receita do período: diária para 7d/30d/90d
// e mensal para 12m, sempre com buckets vazios preenchidos
func (s *Service) RevenueChart(period domain.ChartPeriod) (*domain.ChartData, error) {
	loc := s.cfg.Report.Location()

	window, bucket, err := s.chartWindow(period, loc)
	if err != nil {
		return nil, err
	}

	records, err := s.voucherRepository.GetByActivityRange(window.Start, window.End)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"period": period,
			"error":  err,
		}).Error("Erro ao buscar vouchers para o gráfico de receita")
		return nil, err
	}

	points, err := aggregating.BuildTrend(records, window, bucket, loc)
	if err != nil {
		return nil, err
	}

	labels := make([]string, 0, len(points))
	data := make([]decimal.Decimal, 0, len(points))
	for _, point := range points {
		labels = append(labels, point.Label)
		data = append(data, point.Revenue)
	}

	return &domain.ChartData{
		Labels: labels,
		Datasets: []domain.ChartDataset{
			{Label: "Revenue", Data: data},
		},
	}, nil
}

func (s *Service) SalesByLocationChart(period domain.ChartPeriod) (*domain.ChartData, error) {
	return s.breakdownChart(period, aggregating.LocationSelector{}, "Revenue", pickRevenue)
}

// SalesByDurationChart usa contagem de vendas: o gráfico de durações mostra
// popularidade de cada pacote, não receita
func (s *Service) SalesByDurationChart(period domain.ChartPeriod) (*domain.ChartData, error) {
	selector := aggregating.DurationSelector{Tiers: s.cfg.Report.Tiers()}
	return s.breakdownChart(period, selector, "Sales", pickSalesCount)
}

func (s *Service) PaymentMethodsChart(period domain.ChartPeriod) (*domain.ChartData, error) {
	return s.breakdownChart(period, aggregating.PaymentMethodSelector{}, "Revenue", pickRevenue)
}

// HourlyHeatmap retorna as 24 linhas do mapa de calor, ordenadas por hora
func (s *Service) HourlyHeatmap(period domain.ChartPeriod) ([]domain.HourlyDistribution, error) {
	loc := s.cfg.Report.Location()

	window, _, err := s.chartWindow(period, loc)
	if err != nil {
		return nil, err
	}

	records, err := s.voucherRepository.GetByActivityRange(window.Start, window.End)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"period": period,
			"error":  err,
		}).Error("Erro ao buscar vouchers para o heatmap de horários")
		return nil, err
	}

	items, err := aggregating.BreakdownBy(records, aggregating.HourOfDaySelector{Location: loc}, window)
	if err != nil {
		return nil, err
	}

	distribution := make([]domain.HourlyDistribution, 0, len(items))
	for _, item := range items {
		hour, err := strconv.Atoi(item.Key)
		if err != nil {
			continue
		}
		distribution = append(distribution, domain.HourlyDistribution{
			Hour:       hour,
			SalesCount: item.SalesCount,
			Revenue:    item.Revenue,
		})
	}

	sort.Slice(distribution, func(i, j int) bool {
		return distribution[i].Hour < distribution[j].Hour
	})

	return distribution, nil
}

// TopOperators ranqueia operadores por receita nos últimos 30 dias
func (s *Service) TopOperators(limit int) ([]domain.TopOperator, error) {
	if limit <= 0 {
		limit = 5
	}

	loc := s.cfg.Report.Location()
	window, _, err := s.chartWindow(domain.ChartPeriod30D, loc)
	if err != nil {
		return nil, err
	}

	records, err := s.voucherRepository.GetByActivityRange(window.Start, window.End)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"error": err,
		}).Error("Erro ao buscar vouchers para o ranking de operadores")
		return nil, err
	}

	usernames := s.operatorUsernames()

	byOperator := make(map[string]*domain.TopOperator)
	for _, rec := range records {
		if rec == nil || rec.IsVoid || !window.Contains(rec.CreatedAt) {
			continue
		}

		operator, ok := byOperator[rec.OperatorID]
		if !ok {
			operator = &domain.TopOperator{
				ID:           rec.OperatorID,
				FullName:     rec.OperatorName,
				Username:     usernames[rec.OperatorID],
				TotalRevenue: decimal.Zero,
			}
			byOperator[rec.OperatorID] = operator
		}

		operator.TotalSales++
		operator.TotalRevenue = operator.TotalRevenue.Add(rec.Price)
	}

	ranking := make([]domain.TopOperator, 0, len(byOperator))
	for _, operator := range byOperator {
		operator.AverageTicket = operator.TotalRevenue.
			Div(decimal.NewFromInt(int64(operator.TotalSales))).
			Round(2)
		ranking = append(ranking, *operator)
	}

	sort.Slice(ranking, func(i, j int) bool {
		if cmp := ranking[i].TotalRevenue.Cmp(ranking[j].TotalRevenue); cmp != 0 {
			return cmp > 0
		}
		if ranking[i].TotalSales != ranking[j].TotalSales {
			return ranking[i].TotalSales > ranking[j].TotalSales
		}
		return ranking[i].ID < ranking[j].ID
	})

	if len(ranking) > limit {
		ranking = ranking[:limit]
	}

	return ranking, nil
}

func (s *Service) RecentVouchers(limit int) ([]domain.RecentVoucher, error) {
	if limit <= 0 {
		limit = 10
	}

	records, err := s.voucherRepository.ListRecent(limit)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"error": err,
		}).Error("Erro ao buscar últimas vendas")
		return nil, err
	}

	recent := make([]domain.RecentVoucher, 0, len(records))
	for _, rec := range records {
		recent = append(recent, domain.RecentVoucher{
			ID:           rec.ID,
			Code:         rec.Code,
			LocationName: rec.LocationName,
			DurationMin:  rec.DurationMinutes,
			Price:        rec.Price,
			OperatorName: rec.OperatorName,
			CreatedAt:    rec.CreatedAt,
			IsVoid:       rec.IsVoid,
		})
	}

	return recent, nil
}

func (s *Service) ActiveOperators() (*domain.ActiveOperatorsCount, error) {
	loc := s.cfg.Report.Location()
	today := domain.DayRange(s.now().In(loc), loc)

	activeToday, err := s.voucherRepository.CountDistinctOperatorsSince(today.Start)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"error": err,
		}).Error("Erro ao contar operadores com venda hoje")
		return nil, err
	}

	total, err := s.operatorRepository.Count(true)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"error": err,
		}).Error("Erro ao contar operadores ativos")
		return nil, err
	}

	return &domain.ActiveOperatorsCount{
		ActiveToday: activeToday,
		Total:       total,
	}, nil
}

type metricPicker func(domain.BreakdownItem) decimal.Decimal

func pickRevenue(item domain.BreakdownItem) decimal.Decimal {
	return item.Revenue
}

func pickSalesCount(item domain.BreakdownItem) decimal.Decimal {
	return decimal.NewFromInt(int64(item.SalesCount))
}

func (s *Service) breakdownChart(
	period domain.ChartPeriod,
	selector aggregating.DimensionSelector,
	datasetLabel string,
	pick metricPicker,
) (*domain.ChartData, error) {
	loc := s.cfg.Report.Location()

	window, _, err := s.chartWindow(period, loc)
	if err != nil {
		return nil, err
	}

	records, err := s.voucherRepository.GetByActivityRange(window.Start, window.End)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"period":    period,
			"dimension": selector.Dimension(),
			"error":     err,
		}).Error("Erro ao buscar vouchers para gráfico de breakdown")
		return nil, err
	}

	items, err := aggregating.BreakdownBy(records, selector, window)
	if err != nil {
		return nil, err
	}

	labels := make([]string, 0, len(items))
	data := make([]decimal.Decimal, 0, len(items))
	for _, item := range items {
		labels = append(labels, item.Label)
		data = append(data, pick(item))
	}

	return &domain.ChartData{
		Labels: labels,
		Datasets: []domain.ChartDataset{
			{Label: datasetLabel, Data: data},
		},
	}, nil
}

// chartWindow traduz o período pré-definido em uma janela meio-aberta
// terminando no fim do dia corrente (ou do mês corrente, para 12m)
func (s *Service) chartWindow(period domain.ChartPeriod, loc *time.Location) (domain.TimeRange, domain.BucketSize, error) {
	now := s.now().In(loc)
	endOfToday := domain.DayRange(now, loc).End

	switch period {
	case domain.ChartPeriod7D:
		return domain.TimeRange{Start: endOfToday.AddDate(0, 0, -7), End: endOfToday}, domain.BucketDay, nil
	case domain.ChartPeriod30D:
		return domain.TimeRange{Start: endOfToday.AddDate(0, 0, -30), End: endOfToday}, domain.BucketDay, nil
	case domain.ChartPeriod90D:
		return domain.TimeRange{Start: endOfToday.AddDate(0, 0, -90), End: endOfToday}, domain.BucketDay, nil
	case domain.ChartPeriod12M:
		monthEnd := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc).AddDate(0, 1, 0)
		return domain.TimeRange{Start: monthEnd.AddDate(-1, 0, 0), End: monthEnd}, domain.BucketMonth, nil
	default:
		return domain.TimeRange{}, "", ErrUnknownChartPeriod
	}
}

// startOfWeek retorna a meia-noite da segunda-feira da semana corrente
func startOfWeek(now time.Time, loc *time.Location) time.Time {
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	offset := (int(midnight.Weekday()) + 6) % 7
	return midnight.AddDate(0, 0, -offset)
}

func (s *Service) operatorUsernames() map[string]string {
	operators, err := s.operatorRepository.List(false)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"error": err,
		}).Warn("Erro ao buscar operadores para enriquecer o ranking")
		return map[string]string{}
	}

	usernames := make(map[string]string, len(operators))
	for _, operator := range operators {
		usernames[operator.ID] = operator.Username
	}
	return usernames
}
