package aggregating

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Mwenda-Eric/bvaccess-api/internal/domain"
	"github.com/Mwenda-Eric/bvaccess-api/pkg/utils"
)

// DimensionSelector mapeia um voucher para a chave e o rótulo do grupo ao
// qual ele pertence dentro de uma dimensão de breakdown
type DimensionSelector interface {
	Dimension() domain.Dimension
	GroupKey(rec *domain.VoucherRecord) (key string, label string)
	// SeedBuckets retorna os buckets fixos da dimensão, que devem aparecer
	// no resultado mesmo sem registros (as 24 horas do dia, as formas de
	// pagamento conhecidas). Dimensões abertas retornam nil.
	SeedBuckets() []domain.BreakdownItem
}

// SelectorFor resolve o seletor de uma dimensão suportada.
// Dimensão fora do conjunto suportado é rejeitada aqui, na chamada,
// nunca dentro do loop de agregação.
func SelectorFor(dim domain.Dimension, tiers []domain.DurationTier, loc *time.Location) (DimensionSelector, error) {
	switch dim {
	case domain.DimensionLocation:
		return LocationSelector{}, nil
	case domain.DimensionOperator:
		return OperatorSelector{}, nil
	case domain.DimensionPaymentMethod:
		return PaymentMethodSelector{}, nil
	case domain.DimensionDuration:
		if tiers == nil {
			tiers = domain.DefaultDurationTiers()
		}
		return DurationSelector{Tiers: tiers}, nil
	case domain.DimensionHourOfDay:
		if loc == nil {
			loc = time.UTC
		}
		return HourOfDaySelector{Location: loc}, nil
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownDimension, dim)
	}
}

// BreakdownBy agrupa os vouchers não anulados criados dentro da janela pela
// dimensão do seletor e calcula a fatia de cada grupo sobre o total da
// própria dimensão — o que garante que os percentuais somem 100 quando há
// receita. Sem receita na janela, todo percentual é 0, nunca NaN.
//
// Ordenação determinística: receita desc, depois vendas desc, depois chave
// asc. Ela importa porque os gráficos truncam em "top N".
func BreakdownBy(records []*domain.VoucherRecord, sel DimensionSelector, window domain.TimeRange) ([]domain.BreakdownItem, error) {
	if sel == nil {
		return nil, domain.ErrUnknownDimension
	}

	groups := make(map[string]*domain.BreakdownItem)
	for _, seed := range sel.SeedBuckets() {
		bucket := seed
		bucket.Revenue = decimal.Zero
		groups[bucket.Key] = &bucket
	}

	for _, rec := range records {
		if rec == nil || rec.IsVoid || !window.Contains(rec.CreatedAt) {
			continue
		}

		key, label := sel.GroupKey(rec)
		item, ok := groups[key]
		if !ok {
			item = &domain.BreakdownItem{Key: key, Label: label, Revenue: decimal.Zero}
			groups[key] = item
		}

		item.SalesCount++
		item.Revenue = item.Revenue.Add(rec.Price)
	}

	total := decimal.Zero
	for _, item := range groups {
		total = total.Add(item.Revenue)
	}

	items := make([]domain.BreakdownItem, 0, len(groups))
	for _, item := range groups {
		if total.IsPositive() {
			item.Percentage = utils.RoundWithTwoDecimalPlace(
				item.Revenue.Div(total).Mul(hundred).InexactFloat64(),
			)
		}
		items = append(items, *item)
	}

	sort.Slice(items, func(i, j int) bool {
		if cmp := items[i].Revenue.Cmp(items[j].Revenue); cmp != 0 {
			return cmp > 0
		}
		if items[i].SalesCount != items[j].SalesCount {
			return items[i].SalesCount > items[j].SalesCount
		}
		return items[i].Key < items[j].Key
	})

	return items, nil
}

// LocationSelector agrupa por localidade
type LocationSelector struct{}

func (LocationSelector) Dimension() domain.Dimension { return domain.DimensionLocation }

func (LocationSelector) GroupKey(rec *domain.VoucherRecord) (string, string) {
	return rec.LocationID, rec.LocationName
}

func (LocationSelector) SeedBuckets() []domain.BreakdownItem { return nil }

// OperatorSelector agrupa por operador
type OperatorSelector struct{}

func (OperatorSelector) Dimension() domain.Dimension { return domain.DimensionOperator }

func (OperatorSelector) GroupKey(rec *domain.VoucherRecord) (string, string) {
	return rec.OperatorID, rec.OperatorName
}

func (OperatorSelector) SeedBuckets() []domain.BreakdownItem { return nil }

// PaymentMethodSelector agrupa pela forma de pagamento. O conjunto é
// fechado, então todas as formas aparecem no resultado mesmo zeradas.
type PaymentMethodSelector struct{}

func (PaymentMethodSelector) Dimension() domain.Dimension { return domain.DimensionPaymentMethod }

func (PaymentMethodSelector) GroupKey(rec *domain.VoucherRecord) (string, string) {
	return string(rec.PaymentMethod), string(rec.PaymentMethod)
}

func (PaymentMethodSelector) SeedBuckets() []domain.BreakdownItem {
	seeds := make([]domain.BreakdownItem, 0, len(domain.PaymentMethods))
	for _, method := range domain.PaymentMethods {
		seeds = append(seeds, domain.BreakdownItem{Key: string(method), Label: string(method)})
	}
	return seeds
}

// DurationSelector agrupa pela tabela de tiers de duração. Durações que não
// batem com nenhum tier caem no bucket "custom" — a tabela é configurável,
// nunca um switch engessado no chamador.
type DurationSelector struct {
	Tiers []domain.DurationTier
}

const customDurationKey = "custom"

func (DurationSelector) Dimension() domain.Dimension { return domain.DimensionDuration }

func (s DurationSelector) GroupKey(rec *domain.VoucherRecord) (string, string) {
	for _, tier := range s.Tiers {
		if rec.DurationMinutes == tier.Minutes {
			return fmt.Sprintf("%06d", tier.Minutes), tier.Label
		}
	}
	return customDurationKey, "Custom"
}

func (s DurationSelector) SeedBuckets() []domain.BreakdownItem {
	seeds := make([]domain.BreakdownItem, 0, len(s.Tiers))
	for _, tier := range s.Tiers {
		seeds = append(seeds, domain.BreakdownItem{
			Key:   fmt.Sprintf("%06d", tier.Minutes),
			Label: tier.Label,
		})
	}
	return seeds
}

// HourOfDaySelector agrupa pela hora local de criação, em [0, 23].
// As 24 horas sempre aparecem, com ou sem vendas, porque o heatmap e a
// detecção de hora de pico precisam das lacunas.
type HourOfDaySelector struct {
	Location *time.Location
}

func (HourOfDaySelector) Dimension() domain.Dimension { return domain.DimensionHourOfDay }

func (s HourOfDaySelector) GroupKey(rec *domain.VoucherRecord) (string, string) {
	hour := rec.CreatedAt.In(s.Location).Hour()
	return fmt.Sprintf("%02d", hour), fmt.Sprintf("%02d:00", hour)
}

func (s HourOfDaySelector) SeedBuckets() []domain.BreakdownItem {
	seeds := make([]domain.BreakdownItem, 0, 24)
	for hour := 0; hour < 24; hour++ {
		seeds = append(seeds, domain.BreakdownItem{
			Key:   fmt.Sprintf("%02d", hour),
			Label: fmt.Sprintf("%02d:00", hour),
		})
	}
	return seeds
}
