// Package aggregating contém o núcleo analítico do painel: funções puras
// que transformam coleções de vouchers em agregados de período, breakdowns
// por dimensão, séries temporais e comparações entre períodos. Nenhuma
// função deste pacote tem efeito colateral ou estado escondido: mesma
// entrada, mesma saída, sempre.
package aggregating

import (
	"github.com/shopspring/decimal"

	"github.com/Mwenda-Eric/bvaccess-api/internal/domain"
)

// Aggregate calcula o agregado de uma janela semiaberta [start, end).
//
// A receita soma apenas vouchers não anulados criados dentro da janela.
// O montante anulado soma vouchers anulados cuja anulação aconteceu dentro
// da janela, independente de quando foram criados: anular hoje um voucher
// de semana passada conta como anulação de hoje.
func Aggregate(records []*domain.VoucherRecord, window domain.TimeRange) domain.PeriodStats {
	stats := domain.EmptyPeriodStats()

	for _, rec := range records {
		if rec == nil {
			continue
		}

		if !rec.IsVoid && window.Contains(rec.CreatedAt) {
			stats.TotalSales++
			stats.TotalRevenue = stats.TotalRevenue.Add(rec.Price)
		}

		if rec.IsVoid && rec.VoidedAt != nil && window.Contains(*rec.VoidedAt) {
			stats.VoidedCount++
			stats.VoidedAmount = stats.VoidedAmount.Add(rec.Price)
		}
	}

	// Ticket médio com ramo explícito para o caso zero
	if stats.TotalSales > 0 {
		stats.AverageTicket = stats.TotalRevenue.
			Div(decimal.NewFromInt(int64(stats.TotalSales))).
			Round(2)
	}

	return stats
}
