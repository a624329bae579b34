package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/Mwenda-Eric/bvaccess-api/internal/domain"
	"github.com/Mwenda-Eric/bvaccess-api/internal/usecases/dashboarding"
	"github.com/Mwenda-Eric/bvaccess-api/pkg/apiErrors"
	"github.com/sirupsen/logrus"
)

// chartPeriodFromQuery lê o período do gráfico da query string, com 30d como padrão
func chartPeriodFromQuery(r *http.Request) domain.ChartPeriod {
	period := r.URL.Query().Get("period")
	if period == "" {
		return domain.ChartPeriod30D
	}
	return domain.ChartPeriod(period)
}

// limitFromQuery lê um limite opcional da query string; zero delega o padrão ao usecase
func limitFromQuery(r *http.Request) int {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return 0
	}

	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 0 {
		return 0
	}
	return limit
}

func writeJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logrus.Error(err)
	}
}

// GetDashboardSummary retorna os cartões principais do painel
func GetDashboardSummary(service dashboarding.Dashboarder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		summary, err := service.GetSummary()
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao montar resumo do painel", nil)
			return
		}

		writeJSON(w, summary)
	}
}

// chartHandler compartilha o tratamento de período entre os gráficos do painel
func chartHandler(fetch func(domain.ChartPeriod) (*domain.ChartData, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		chart, err := fetch(chartPeriodFromQuery(r))
		if err != nil {
			if errors.Is(err, dashboarding.ErrUnknownChartPeriod) {
				apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Período inválido. Valores aceitos: 7d, 30d, 90d, 12m", nil)
				return
			}
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao montar gráfico", nil)
			return
		}

		writeJSON(w, chart)
	}
}

// GetRevenueChart retorna a série de receita do período pedido
func GetRevenueChart(service dashboarding.Dashboarder) http.HandlerFunc {
	return chartHandler(service.RevenueChart)
}

// GetSalesByLocationChart retorna a distribuição de receita por localidade
func GetSalesByLocationChart(service dashboarding.Dashboarder) http.HandlerFunc {
	return chartHandler(service.SalesByLocationChart)
}

// GetSalesByDurationChart retorna a popularidade de cada duração
func GetSalesByDurationChart(service dashboarding.Dashboarder) http.HandlerFunc {
	return chartHandler(service.SalesByDurationChart)
}

// GetPaymentMethodsChart retorna a distribuição de receita por forma de pagamento
func GetPaymentMethodsChart(service dashboarding.Dashboarder) http.HandlerFunc {
	return chartHandler(service.PaymentMethodsChart)
}

// GetHourlyHeatmap retorna a distribuição de vendas por hora do dia
func GetHourlyHeatmap(service dashboarding.Dashboarder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		heatmap, err := service.HourlyHeatmap(chartPeriodFromQuery(r))
		if err != nil {
			if errors.Is(err, dashboarding.ErrUnknownChartPeriod) {
				apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Período inválido. Valores aceitos: 7d, 30d, 90d, 12m", nil)
				return
			}
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao montar mapa de calor", nil)
			return
		}

		writeJSON(w, heatmap)
	}
}

// GetTopOperators retorna os operadores com maior receita nos últimos 30 dias
func GetTopOperators(service dashboarding.Dashboarder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		operators, err := service.TopOperators(limitFromQuery(r))
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao buscar ranking de operadores", nil)
			return
		}

		writeJSON(w, operators)
	}
}

// GetRecentVouchers retorna as vendas mais recentes
func GetRecentVouchers(service dashboarding.Dashboarder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vouchers, err := service.RecentVouchers(limitFromQuery(r))
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao buscar vendas recentes", nil)
			return
		}

		writeJSON(w, vouchers)
	}
}

// GetActiveOperators retorna quantos operadores venderam hoje
func GetActiveOperators(service dashboarding.Dashboarder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		count, err := service.ActiveOperators()
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao contar operadores ativos", nil)
			return
		}

		writeJSON(w, count)
	}
}
