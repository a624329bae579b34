package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethod representa a forma de pagamento de um voucher
type PaymentMethod string

const (
	PaymentMethodCash    PaymentMethod = "Cash"
	PaymentMethodEWallet PaymentMethod = "EWallet"
)

// PaymentMethods lista as formas de pagamento aceitas pelo sistema
var PaymentMethods = []PaymentMethod{
	PaymentMethodCash,
	PaymentMethodEWallet,
}

func (m PaymentMethod) Valid() bool {
	for _, known := range PaymentMethods {
		if m == known {
			return true
		}
	}
	return false
}

// BandwidthType representa o tipo de banda contratada no voucher
type BandwidthType string

const (
	BandwidthUnlimited BandwidthType = "Unlimited"
	BandwidthLimited   BandwidthType = "Limited"
)

// VoucherStatus é derivado de (isVoid, expiresAt, now) e nunca armazenado
type VoucherStatus string

const (
	VoucherStatusActive  VoucherStatus = "active"
	VoucherStatusExpired VoucherStatus = "expired"
	VoucherStatusVoid    VoucherStatus = "void"
)

func (s VoucherStatus) Valid() bool {
	switch s {
	case VoucherStatusActive, VoucherStatusExpired, VoucherStatusVoid:
		return true
	}
	return false
}

// Erros de validação de registros na fronteira de ingestão
var (
	ErrEmptyVoucherID     = errors.New("voucher sem identificador")
	ErrNegativePrice      = errors.New("preço do voucher não pode ser negativo")
	ErrNonPositiveMinutes = errors.New("duração do voucher deve ser positiva")
	ErrInvalidPayment     = errors.New("forma de pagamento desconhecida")
	ErrMissingCreatedAt   = errors.New("voucher sem data de criação")
	ErrVoidWithoutDate    = errors.New("voucher anulado sem data de anulação")
)

// Erros das operações de escrita sobre vouchers
var (
	ErrVoucherNotFound    = errors.New("voucher não encontrado")
	ErrVoucherAlreadyVoid = errors.New("voucher já anulado")
	ErrUnknownDuration    = errors.New("duração sem preço na tabela de durações")
)

// VoucherRecord é o fato atômico do sistema: um voucher vendido.
// Os campos de localização e operador chegam achatados do backend do
// hotspot, exatamente como a camada de apresentação os consome.
type VoucherRecord struct {
	ID              string          `json:"id"`
	Code            string          `json:"code"`
	CreatedAt       time.Time       `json:"createdAt"`
	Price           decimal.Decimal `json:"price"`
	DurationMinutes int             `json:"durationMinutes"`
	Bandwidth       BandwidthType   `json:"bandwidth"`
	PaymentMethod   PaymentMethod   `json:"paymentMethod"`
	BuyerInfo       *string         `json:"buyerInfo,omitempty"`
	LocationID      string          `json:"locationId"`
	LocationName    string          `json:"locationName"`
	OperatorID      string          `json:"operatorId"`
	OperatorName    string          `json:"operatorName"`
	ExpiresAt       time.Time       `json:"expiresAt"`
	IsVoid          bool            `json:"isVoid"`
	VoidedAt        *time.Time      `json:"voidedAt,omitempty"`
	VoidedByID      *string         `json:"voidedById,omitempty"`
	VoidedByName    *string         `json:"voidedByName,omitempty"`
	VoidReason      *string         `json:"voidReason,omitempty"`
}

// Status calcula o status efetivo do voucher em um instante de referência.
// Anulação prevalece sobre expiração; o restante é comparação com expiresAt.
func (v *VoucherRecord) Status(now time.Time) VoucherStatus {
	if v.IsVoid {
		return VoucherStatusVoid
	}
	if !now.Before(v.ExpiresAt) {
		return VoucherStatusExpired
	}
	return VoucherStatusActive
}

// Validate rejeita registros malformados antes de entrarem no núcleo de
// agregação. Os agregadores assumem entrada limpa e não revalidam.
func (v *VoucherRecord) Validate() error {
	if v.ID == "" {
		return ErrEmptyVoucherID
	}
	if v.CreatedAt.IsZero() {
		return fmt.Errorf("voucher %s: %w", v.ID, ErrMissingCreatedAt)
	}
	if v.Price.IsNegative() {
		return fmt.Errorf("voucher %s: %w", v.ID, ErrNegativePrice)
	}
	if v.DurationMinutes <= 0 {
		return fmt.Errorf("voucher %s: %w", v.ID, ErrNonPositiveMinutes)
	}
	if !v.PaymentMethod.Valid() {
		return fmt.Errorf("voucher %s (%q): %w", v.ID, v.PaymentMethod, ErrInvalidPayment)
	}
	if v.IsVoid && v.VoidedAt == nil {
		return fmt.Errorf("voucher %s: %w", v.ID, ErrVoidWithoutDate)
	}
	return nil
}

// ExpiresAtFrom deriva o instante de expiração a partir da criação
func ExpiresAtFrom(createdAt time.Time, durationMinutes int) time.Time {
	return createdAt.Add(time.Duration(durationMinutes) * time.Minute)
}

// FormatDuration converte minutos em um rótulo amigável ("30 min", "2 hrs", "1 day")
func FormatDuration(minutes int) string {
	switch {
	case minutes < 60:
		return fmt.Sprintf("%d min", minutes)
	case minutes < 1440:
		if minutes == 60 {
			return "1 hr"
		}
		return fmt.Sprintf("%g hrs", float64(minutes)/60)
	case minutes == 1440:
		return "1 day"
	default:
		return fmt.Sprintf("%g days", float64(minutes)/1440)
	}
}

// VoucherFilters são os filtros aceitos pela listagem de vouchers
type VoucherFilters struct {
	LocationIDs     []string
	OperatorIDs     []string
	Status          *VoucherStatus
	PaymentMethod   *PaymentMethod
	DurationMinutes *int
	DateFrom        *time.Time
	DateTo          *time.Time
	Search          string
	Limit           int
	Offset          int
}

// VoucherSummary resume a base de vouchers para os cartões da listagem
type VoucherSummary struct {
	TotalCount    int             `json:"totalCount"`
	ActiveCount   int             `json:"activeCount"`
	VoidedCount   int             `json:"voidedCount"`
	ExpiredCount  int             `json:"expiredCount"`
	TotalRevenue  decimal.Decimal `json:"totalRevenue"`
	VoidedRevenue decimal.Decimal `json:"voidedRevenue"`
}

// DurationTier é uma linha da tabela de precificação por duração.
// A tabela é configurável; durações fora dela caem no bucket "Custom".
type DurationTier struct {
	Minutes int
	Label   string
	Price   decimal.Decimal
}

// DefaultDurationTiers replica a tabela padrão do painel
func DefaultDurationTiers() []DurationTier {
	return []DurationTier{
		{Minutes: 30, Label: "30 minutes", Price: decimal.NewFromInt(25)},
		{Minutes: 60, Label: "1 hour", Price: decimal.NewFromInt(50)},
		{Minutes: 120, Label: "2 hours", Price: decimal.NewFromInt(75)},
		{Minutes: 1440, Label: "24 hours", Price: decimal.NewFromInt(150)},
	}
}
