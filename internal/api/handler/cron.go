package handler

import (
	"encoding/json"
	"net/http"

	"github.com/Mwenda-Eric/bvaccess-api/internal/domain"
	"github.com/Mwenda-Eric/bvaccess-api/internal/scheduler"
	"github.com/Mwenda-Eric/bvaccess-api/pkg/apiErrors"
	"github.com/Mwenda-Eric/bvaccess-api/pkg/middleware"
	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
)

// CronJobType define o tipo de cron job que será executada
const (
	CronJobTypeVouchers       = "vouchers"
	CronJobTypeReportSnapshot = "report-snapshot"
	CronJobTypeAll            = "all"
)

// CronJobServices contém os serviços de cron necessários para executar manualmente
type CronJobServices struct {
	VoucherSyncService        *scheduler.VoucherSyncService
	ReportSnapshotSyncService *scheduler.ReportSnapshotSyncService
}

// RunCronJob executa manualmente uma cron job específica
func RunCronJob(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - RunCronJob")

		// Apenas super administradores podem executar cron jobs
		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok || userClaims.UserRoleID != domain.RoleSuperAdmin {
			apiErrors.WriteError(w, apiErrors.ErrInsufficientPrivilege, "Apenas administradores podem executar cron jobs", nil)
			return
		}

		cronType := httprouter.ParamsFromContext(r.Context()).ByName("type")
		if cronType == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Tipo de cron job não especificado", nil)
			return
		}

		switch cronType {
		case CronJobTypeVouchers:
			if services.VoucherSyncService == nil {
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Serviço de sincronização de vouchers não disponível", nil)
				return
			}
			services.VoucherSyncService.TriggerManualSync()

		case CronJobTypeReportSnapshot:
			if services.ReportSnapshotSyncService == nil {
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Serviço de fechamento de relatórios não disponível", nil)
				return
			}
			services.ReportSnapshotSyncService.TriggerManualSync()

		case CronJobTypeAll:
			if services.VoucherSyncService != nil {
				services.VoucherSyncService.TriggerManualSync()
			}
			if services.ReportSnapshotSyncService != nil {
				services.ReportSnapshotSyncService.TriggerManualSync()
			}

		default:
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Tipo de cron job inválido. Valores aceitos: vouchers, report-snapshot, all", nil)
			return
		}

		response := map[string]any{
			"message": "Cron job iniciada com sucesso",
			"type":    cronType,
		}
		json.NewEncoder(w).Encode(response)
	}
}

// GetCronStatus retorna o status das cron jobs
func GetCronStatus(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - GetCronStatus")

		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok || userClaims.UserRoleID != domain.RoleSuperAdmin {
			apiErrors.WriteError(w, apiErrors.ErrInsufficientPrivilege, "Apenas administradores podem verificar status de cron jobs", nil)
			return
		}

		status := map[string]any{
			"vouchers":        services.VoucherSyncService.GetStatus(),
			"report-snapshot": services.ReportSnapshotSyncService.GetStatus(),
		}

		json.NewEncoder(w).Encode(status)
	}
}
