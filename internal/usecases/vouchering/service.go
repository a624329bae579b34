// Package vouchering cobre o ciclo de vida do voucher no painel: emissão
// manual, anulação, listagem com filtros e o resumo da base. A anulação é
// monotônica: voucher anulado nunca volta a ser válido.
package vouchering

import (
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/Mwenda-Eric/bvaccess-api/infrastructure/repository"
	"github.com/Mwenda-Eric/bvaccess-api/internal/config"
	"github.com/Mwenda-Eric/bvaccess-api/internal/domain"
	"github.com/Mwenda-Eric/bvaccess-api/pkg/utils"
)

type CreateVoucherRequest struct {
	LocationID      string               `json:"locationId"`
	OperatorID      string               `json:"operatorId"`
	DurationMinutes int                  `json:"durationMinutes"`
	PaymentMethod   domain.PaymentMethod `json:"paymentMethod"`
	Bandwidth       domain.BandwidthType `json:"bandwidth"`
	BuyerInfo       *string              `json:"buyerInfo,omitempty"`
}

type Voucherer interface {
	Create(request *CreateVoucherRequest) (*domain.VoucherRecord, error)
	Void(id, reason string, claims *domain.Claims) (*domain.VoucherRecord, error)
	GetByID(id string) (*domain.VoucherRecord, error)
	List(filters domain.VoucherFilters) ([]*domain.VoucherRecord, error)
	Summary(filters domain.VoucherFilters) (*domain.VoucherSummary, error)
}

type Service struct {
	cfg                *config.Config
	voucherRepository  repository.VoucherRepository
	locationRepository repository.LocationRepository
	operatorRepository repository.OperatorRepository

	now func() time.Time
}

func NewService(
	cfg *config.Config,
	voucherRepo repository.VoucherRepository,
	locationRepo repository.LocationRepository,
	operatorRepo repository.OperatorRepository,
) *Service {
	return &Service{
		cfg:                cfg,
		voucherRepository:  voucherRepo,
		locationRepository: locationRepo,
		operatorRepository: operatorRepo,
		now:                time.Now,
	}
}

// Create emite um voucher manual. O preço nunca vem do cliente: é resolvido
// pela tabela de durações configurada.
func (s *Service) Create(request *CreateVoucherRequest) (*domain.VoucherRecord, error) {
	price, err := s.priceFor(request.DurationMinutes)
	if err != nil {
		return nil, err
	}

	location, err := s.locationRepository.GetByID(request.LocationID)
	if err != nil {
		return nil, err
	}
	if location == nil {
		return nil, ErrLocationNotFound
	}
	if !location.Active {
		return nil, ErrLocationInactive
	}

	operator, err := s.operatorRepository.GetByID(request.OperatorID)
	if err != nil {
		return nil, err
	}
	if operator == nil {
		return nil, ErrOperatorNotFound
	}
	if !operator.Active {
		return nil, ErrOperatorInactive
	}

	code, err := utils.GenerateID()
	if err != nil {
		return nil, fmt.Errorf("erro ao gerar código do voucher: %w", err)
	}

	bandwidth := request.Bandwidth
	if bandwidth == "" {
		bandwidth = domain.BandwidthUnlimited
	}

	createdAt := s.now()
	voucher := &domain.VoucherRecord{
		ID:              uuid.NewString(),
		Code:            fmt.Sprintf("BV-%s", code),
		CreatedAt:       createdAt,
		Price:           price,
		DurationMinutes: request.DurationMinutes,
		Bandwidth:       bandwidth,
		PaymentMethod:   request.PaymentMethod,
		BuyerInfo:       request.BuyerInfo,
		LocationID:      location.ID,
		LocationName:    location.Name,
		OperatorID:      operator.ID,
		OperatorName:    operator.FullName,
		ExpiresAt:       domain.ExpiresAtFrom(createdAt, request.DurationMinutes),
	}

	if err := voucher.Validate(); err != nil {
		return nil, err
	}

	if err := s.voucherRepository.Insert(voucher); err != nil {
		logrus.WithFields(logrus.Fields{
			"voucherID": voucher.ID,
			"error":     err,
		}).Error("Erro ao persistir voucher")
		return nil, err
	}

	return voucher, nil
}

// Void anula um voucher registrando quem anulou e por quê. A operação é
// idempotente apenas na recusa: repetir a anulação retorna erro, nunca
// sobrescreve a anulação original.
func (s *Service) Void(id, reason string, claims *domain.Claims) (*domain.VoucherRecord, error) {
	if reason == "" {
		return nil, ErrEmptyVoidReason
	}

	voucher, err := s.voucherRepository.GetByID(id)
	if err != nil {
		return nil, err
	}
	if voucher == nil {
		return nil, domain.ErrVoucherNotFound
	}
	if voucher.IsVoid {
		return nil, domain.ErrVoucherAlreadyVoid
	}

	voidedAt := s.now()
	byID := strconv.Itoa(claims.UserID)
	byName := claims.UserName

	if err := s.voucherRepository.MarkVoid(id, voidedAt, reason, byID, byName); err != nil {
		return nil, err
	}

	voucher.IsVoid = true
	voucher.VoidedAt = &voidedAt
	voucher.VoidReason = &reason
	voucher.VoidedByID = &byID
	voucher.VoidedByName = &byName

	return voucher, nil
}

func (s *Service) GetByID(id string) (*domain.VoucherRecord, error) {
	voucher, err := s.voucherRepository.GetByID(id)
	if err != nil {
		return nil, err
	}
	if voucher == nil {
		return nil, domain.ErrVoucherNotFound
	}
	return voucher, nil
}

// List aplica os filtros persistidos no banco e o filtro de status em
// memória, já que o status depende do relógio
func (s *Service) List(filters domain.VoucherFilters) ([]*domain.VoucherRecord, error) {
	status := filters.Status
	filters.Status = nil

	vouchers, err := s.voucherRepository.List(filters)
	if err != nil {
		return nil, err
	}

	if status == nil {
		return vouchers, nil
	}

	now := s.now()
	filtered := make([]*domain.VoucherRecord, 0, len(vouchers))
	for _, voucher := range vouchers {
		if voucher.Status(now) == *status {
			filtered = append(filtered, voucher)
		}
	}

	return filtered, nil
}

// Summary resume a base filtrada para os cartões da listagem
func (s *Service) Summary(filters domain.VoucherFilters) (*domain.VoucherSummary, error) {
	filters.Status = nil
	filters.Limit = 0
	filters.Offset = 0

	vouchers, err := s.voucherRepository.List(filters)
	if err != nil {
		return nil, err
	}

	now := s.now()
	summary := &domain.VoucherSummary{
		TotalRevenue:  decimal.Zero,
		VoidedRevenue: decimal.Zero,
	}

	for _, voucher := range vouchers {
		summary.TotalCount++
		switch voucher.Status(now) {
		case domain.VoucherStatusVoid:
			summary.VoidedCount++
			summary.VoidedRevenue = summary.VoidedRevenue.Add(voucher.Price)
		case domain.VoucherStatusExpired:
			summary.ExpiredCount++
			summary.TotalRevenue = summary.TotalRevenue.Add(voucher.Price)
		default:
			summary.ActiveCount++
			summary.TotalRevenue = summary.TotalRevenue.Add(voucher.Price)
		}
	}

	return summary, nil
}

// priceFor exige uma duração presente na tabela: fora dela a emissão manual
// é recusada, nunca precificada por aproximação
func (s *Service) priceFor(minutes int) (decimal.Decimal, error) {
	for _, tier := range s.cfg.Report.Tiers() {
		if tier.Minutes == minutes {
			return tier.Price, nil
		}
	}
	return decimal.Zero, fmt.Errorf("%d minutos: %w", minutes, domain.ErrUnknownDuration)
}
