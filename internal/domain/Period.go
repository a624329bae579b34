package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// ErrInvalidRange indica uma janela com fim anterior (ou igual) ao início
var ErrInvalidRange = errors.New("janela de tempo inválida: fim deve ser posterior ao início")

// TimeRange é uma janela semiaberta [Start, End). O fim exclusivo evita
// contagem dupla de registros exatamente na fronteira entre janelas adjacentes.
type TimeRange struct {
	Start time.Time
	End   time.Time
}

// NewTimeRange valida e cria uma janela semiaberta
func NewTimeRange(start, end time.Time) (TimeRange, error) {
	if !end.After(start) {
		return TimeRange{}, ErrInvalidRange
	}
	return TimeRange{Start: start, End: end}, nil
}

// Contains verifica se o instante pertence à janela (início inclusivo, fim exclusivo)
func (r TimeRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && t.Before(r.End)
}

// Duration retorna o comprimento da janela
func (r TimeRange) Duration() time.Duration {
	return r.End.Sub(r.Start)
}

// Days retorna o número de dias calendário cobertos pela janela
func (r TimeRange) Days() int {
	days := int(r.End.Sub(r.Start).Hours() / 24)
	if days < 1 {
		return 1
	}
	return days
}

// Previous retorna a janela de mesmo comprimento imediatamente anterior,
// usada na comparação "período atual vs. período anterior"
func (r TimeRange) Previous() TimeRange {
	length := r.End.Sub(r.Start)
	return TimeRange{Start: r.Start.Add(-length), End: r.Start}
}

// DayRange retorna a janela [meia-noite, meia-noite+24h) do dia informado
func DayRange(date time.Time, loc *time.Location) TimeRange {
	start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, loc)
	return TimeRange{Start: start, End: start.AddDate(0, 0, 1)}
}

// DateSpanRange converte um intervalo de datas inclusivo (como o painel envia)
// em uma janela semiaberta que cobre os dois dias por completo
func DateSpanRange(startDate, endDate time.Time, loc *time.Location) (TimeRange, error) {
	start := time.Date(startDate.Year(), startDate.Month(), startDate.Day(), 0, 0, 0, 0, loc)
	end := time.Date(endDate.Year(), endDate.Month(), endDate.Day(), 0, 0, 0, 0, loc).AddDate(0, 0, 1)
	return NewTimeRange(start, end)
}

// PeriodStats é o agregado imutável de uma janela. Receita total exclui
// vouchers anulados; o montante anulado é acompanhado em separado e
// atribuído à janela em que a anulação aconteceu.
type PeriodStats struct {
	TotalSales    int             `json:"totalSales"`
	TotalRevenue  decimal.Decimal `json:"totalRevenue"`
	AverageTicket decimal.Decimal `json:"averageTicket"`
	VoidedCount   int             `json:"voidedCount"`
	VoidedAmount  decimal.Decimal `json:"voidedAmount"`
}

// NetRevenue retorna a receita líquida (receita total menos anulações)
func (s PeriodStats) NetRevenue() decimal.Decimal {
	return s.TotalRevenue.Sub(s.VoidedAmount)
}

// EmptyPeriodStats retorna o agregado de uma janela sem registros.
// Janela vazia é um resultado válido, nunca um erro.
func EmptyPeriodStats() PeriodStats {
	return PeriodStats{
		TotalRevenue:  decimal.Zero,
		AverageTicket: decimal.Zero,
		VoidedAmount:  decimal.Zero,
	}
}
