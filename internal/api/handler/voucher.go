package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/Mwenda-Eric/bvaccess-api/internal/domain"
	"github.com/Mwenda-Eric/bvaccess-api/internal/usecases/vouchering"
	"github.com/Mwenda-Eric/bvaccess-api/pkg/apiErrors"
	"github.com/Mwenda-Eric/bvaccess-api/pkg/middleware"
	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
)

type VoidVoucherRequest struct {
	Reason string `json:"reason"`
}

// voucherFiltersFromQuery monta os filtros persistíveis da listagem.
// O filtro de status é resolvido em memória pelo usecase.
func voucherFiltersFromQuery(r *http.Request) (domain.VoucherFilters, error) {
	query := r.URL.Query()

	filters := domain.VoucherFilters{
		LocationIDs: query["locationId"],
		OperatorIDs: query["operatorId"],
		Search:      query.Get("search"),
	}

	if raw := query.Get("status"); raw != "" {
		status := domain.VoucherStatus(raw)
		if !status.Valid() {
			return filters, errors.New("status inválido. Valores aceitos: active, expired, void")
		}
		filters.Status = &status
	}

	if raw := query.Get("paymentMethod"); raw != "" {
		method := domain.PaymentMethod(raw)
		if !method.Valid() {
			return filters, errors.New("forma de pagamento inválida")
		}
		filters.PaymentMethod = &method
	}

	if raw := query.Get("durationMinutes"); raw != "" {
		minutes, err := strconv.Atoi(raw)
		if err != nil || minutes <= 0 {
			return filters, errors.New("durationMinutes inválido")
		}
		filters.DurationMinutes = &minutes
	}

	if raw := query.Get("dateFrom"); raw != "" {
		from, err := time.Parse(time.DateOnly, raw)
		if err != nil {
			return filters, errors.New("dateFrom inválida. Formato esperado: YYYY-MM-DD")
		}
		filters.DateFrom = &from
	}

	if raw := query.Get("dateTo"); raw != "" {
		to, err := time.Parse(time.DateOnly, raw)
		if err != nil {
			return filters, errors.New("dateTo inválida. Formato esperado: YYYY-MM-DD")
		}
		// Fim exclusivo: inclui o dia pedido inteiro
		to = to.AddDate(0, 0, 1)
		filters.DateTo = &to
	}

	if raw := query.Get("limit"); raw != "" {
		if limit, err := strconv.Atoi(raw); err == nil && limit > 0 {
			filters.Limit = limit
		}
	}

	if raw := query.Get("offset"); raw != "" {
		if offset, err := strconv.Atoi(raw); err == nil && offset > 0 {
			filters.Offset = offset
		}
	}

	return filters, nil
}

// ListVouchers lista vouchers com filtros de consulta
func ListVouchers(service vouchering.Voucherer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filters, err := voucherFiltersFromQuery(r)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, err.Error(), nil)
			return
		}

		vouchers, err := service.List(filters)
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao listar vouchers", nil)
			return
		}

		writeJSON(w, vouchers)
	}
}

// GetVoucherSummary retorna os contadores da base filtrada
func GetVoucherSummary(service vouchering.Voucherer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filters, err := voucherFiltersFromQuery(r)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, err.Error(), nil)
			return
		}

		summary, err := service.Summary(filters)
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao montar resumo de vouchers", nil)
			return
		}

		writeJSON(w, summary)
	}
}

// GetVoucher retorna um voucher por ID
func GetVoucher(service vouchering.Voucherer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if id == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID do voucher não fornecido", nil)
			return
		}

		voucher, err := service.GetByID(id)
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao buscar voucher", nil)
			return
		}

		if voucher == nil {
			apiErrors.WriteError(w, apiErrors.ErrResourceNotFound, "Voucher não encontrado", nil)
			return
		}

		writeJSON(w, voucher)
	}
}

// CreateVoucher emite um voucher manualmente pelo painel
func CreateVoucher(service vouchering.Voucherer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - CreateVoucher")

		var req vouchering.CreateVoucherRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao decodificar requisição", nil)
			return
		}

		voucher, err := service.Create(&req)
		if err != nil {
			handleVoucherWriteError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode(voucher); err != nil {
			logrus.Error(err)
		}
	}
}

// VoidVoucher anula um voucher. A anulação é definitiva e exige um motivo.
func VoidVoucher(service vouchering.Voucherer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - VoidVoucher")

		id := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if id == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID do voucher não fornecido", nil)
			return
		}

		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		var req VoidVoucherRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao decodificar requisição", nil)
			return
		}

		voucher, err := service.Void(id, req.Reason, userClaims)
		if err != nil {
			handleVoucherWriteError(w, err)
			return
		}

		writeJSON(w, voucher)
	}
}

// handleVoucherWriteError traduz erros de emissão e anulação para a API
func handleVoucherWriteError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrUnknownDuration):
		apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Duração sem preço na tabela de durações", nil)

	case errors.Is(err, vouchering.ErrLocationNotFound),
		errors.Is(err, vouchering.ErrOperatorNotFound):
		apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, err.Error(), nil)

	case errors.Is(err, vouchering.ErrLocationInactive),
		errors.Is(err, vouchering.ErrOperatorInactive):
		apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, err.Error(), nil)

	case errors.Is(err, vouchering.ErrEmptyVoidReason):
		apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Motivo da anulação é obrigatório", nil)

	case errors.Is(err, domain.ErrVoucherNotFound):
		apiErrors.WriteError(w, apiErrors.ErrResourceNotFound, "Voucher não encontrado", nil)

	case errors.Is(err, domain.ErrVoucherAlreadyVoid):
		apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Voucher já anulado", nil)

	default:
		logrus.Error(err)
		apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao gravar voucher", nil)
	}
}
