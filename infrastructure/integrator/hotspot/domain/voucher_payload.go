// Package domain descreve o payload de vouchers do backend do hotspot.
// O backend serializa ora em camelCase ora em PascalCase dependendo da
// versão, então a decodificação dobra as chaves para minúsculas antes de
// atribuir os campos.
package domain

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	apidomain "github.com/Mwenda-Eric/bvaccess-api/internal/domain"
)

type VoucherPayload struct {
	ID              string
	Code            string
	CreatedAt       time.Time
	Price           decimal.Decimal
	DurationMinutes int
	Bandwidth       string
	PaymentMethod   string
	BuyerInfo       *string
	LocationID      string
	LocationName    string
	OperatorID      string
	OperatorName    string
	IsVoid          bool
	VoidedAt        *time.Time
	VoidedByID      *string
	VoidedByName    *string
	VoidReason      *string
}

// UnmarshalJSON aceita qualquer capitalização de chave ("Id", "id", "ID")
func (p *VoucherPayload) UnmarshalJSON(data []byte) error {
	raw := make(map[string]json.RawMessage)
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	folded := make(map[string]json.RawMessage, len(raw))
	for key, value := range raw {
		folded[strings.ToLower(key)] = value
	}

	assign := func(key string, target any) error {
		value, ok := folded[key]
		if !ok || string(value) == "null" {
			return nil
		}
		return json.Unmarshal(value, target)
	}

	fields := map[string]any{
		"id":              &p.ID,
		"code":            &p.Code,
		"createdat":       &p.CreatedAt,
		"price":           &p.Price,
		"durationminutes": &p.DurationMinutes,
		"bandwidth":       &p.Bandwidth,
		"paymentmethod":   &p.PaymentMethod,
		"buyerinfo":       &p.BuyerInfo,
		"locationid":      &p.LocationID,
		"locationname":    &p.LocationName,
		"operatorid":      &p.OperatorID,
		"operatorname":    &p.OperatorName,
		"isvoid":          &p.IsVoid,
		"voidedat":        &p.VoidedAt,
		"voidedbyid":      &p.VoidedByID,
		"voidedbyname":    &p.VoidedByName,
		"voidreason":      &p.VoidReason,
	}

	for key, target := range fields {
		if err := assign(key, target); err != nil {
			return err
		}
	}

	return nil
}

// Normalize converte o payload em um VoucherRecord canônico e validado.
// Registros que não passam na validação não entram no núcleo de agregação.
func (p *VoucherPayload) Normalize() (*apidomain.VoucherRecord, error) {
	record := &apidomain.VoucherRecord{
		ID:              p.ID,
		Code:            p.Code,
		CreatedAt:       p.CreatedAt,
		Price:           p.Price,
		DurationMinutes: p.DurationMinutes,
		Bandwidth:       normalizeBandwidth(p.Bandwidth),
		PaymentMethod:   normalizePaymentMethod(p.PaymentMethod),
		BuyerInfo:       p.BuyerInfo,
		LocationID:      p.LocationID,
		LocationName:    p.LocationName,
		OperatorID:      p.OperatorID,
		OperatorName:    p.OperatorName,
		ExpiresAt:       apidomain.ExpiresAtFrom(p.CreatedAt, p.DurationMinutes),
		IsVoid:          p.IsVoid,
		VoidedAt:        p.VoidedAt,
		VoidedByID:      p.VoidedByID,
		VoidedByName:    p.VoidedByName,
		VoidReason:      p.VoidReason,
	}

	if err := record.Validate(); err != nil {
		return nil, err
	}

	return record, nil
}

// normalizePaymentMethod resolve variações de capitalização ("cash",
// "CASH", "ewallet"). Valores desconhecidos passam adiante e caem na
// validação do registro.
func normalizePaymentMethod(method string) apidomain.PaymentMethod {
	for _, known := range apidomain.PaymentMethods {
		if strings.EqualFold(method, string(known)) {
			return known
		}
	}
	return apidomain.PaymentMethod(method)
}

func normalizeBandwidth(bandwidth string) apidomain.BandwidthType {
	if strings.EqualFold(bandwidth, string(apidomain.BandwidthLimited)) {
		return apidomain.BandwidthLimited
	}
	return apidomain.BandwidthUnlimited
}
